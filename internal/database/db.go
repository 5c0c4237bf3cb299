package database

import (
	"errors"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/models"
)

var DB *gorm.DB

func Connect(dsn string) error {
	if dsn == "" {
		return errors.New("empty DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(60 * time.Minute)

	DB = db
	return nil
}

func AutoMigrateAndSeed(cfg *config.Config) error {
	if err := Migrate(); err != nil {
		return err
	}
	return SeedProjects(cfg.Projects)
}

func Migrate() error {
	return DB.AutoMigrate(
		&models.Project{},
		&models.Version{},
		&models.Build{},
	)
}

// SeedProjects ensures the configured projects exist. Existing projects
// are left untouched; this subsystem never mutates or deletes them.
func SeedProjects(seeds []config.ProjectSeed) error {
	for _, seed := range seeds {
		if seed.Name == "" {
			continue
		}
		var count int64
		DB.Model(&models.Project{}).Where("name = ?", seed.Name).Count(&count)
		if count > 0 {
			continue
		}
		project := models.Project{Name: seed.Name, FriendlyName: seed.FriendlyName}
		if err := DB.Create(&project).Error; err != nil {
			return err
		}
		log.Printf("seeded project %q", seed.Name)
	}
	return nil
}
