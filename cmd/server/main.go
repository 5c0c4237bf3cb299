package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/database"
	"github.com/hpfxd/bibliothek/internal/server"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := database.Connect(config.Current.DatabaseURL); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}

	if err := database.AutoMigrateAndSeed(&config.Current); err != nil {
		log.Fatalf("migration/seed failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		ServerHeader: "bibliothek",
		AppName:      "bibliothek",
	})

	server.RegisterRoutes(app, &config.Current)

	log.Printf("Server listening on %s", config.Current.ListenAddr)
	if err := app.Listen(config.Current.ListenAddr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
