package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hpfxd/bibliothek/internal/models"
)

// LatestAlias resolves at request time to the most recently created
// version (or the highest-numbered build) rather than naming a record.
const LatestAlias = "latest"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrVersionNotFound  = errors.New("version not found")
	ErrBuildNotFound    = errors.New("build not found")
	ErrDuplicateProject = errors.New("project already exists")
	ErrDuplicateBuild   = errors.New("build already exists")
)

func FindProjectByName(name string) (*models.Project, error) {
	var project models.Project
	if err := DB.Where("name = ?", name).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := DB.Order("name").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func CreateProject(name, friendlyName string) (*models.Project, error) {
	project := models.Project{Name: name, FriendlyName: friendlyName}
	if err := DB.Create(&project).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateProject
		}
		return nil, err
	}
	return &project, nil
}

// FindCorrectVersion resolves a version path segment: the "latest"
// alias picks the most recently created version of the project, any
// other value is an exact name match.
func FindCorrectVersion(projectID uint, nameOrAlias string) (*models.Version, error) {
	if nameOrAlias == LatestAlias {
		var version models.Version
		err := DB.Where("project_id = ?", projectID).
			Order("created_at DESC, id DESC").
			First(&version).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVersionNotFound
			}
			return nil, err
		}
		return &version, nil
	}
	return FindVersionByName(projectID, nameOrAlias)
}

func FindVersionByName(projectID uint, name string) (*models.Version, error) {
	var version models.Version
	err := DB.Where("project_id = ? AND name = ?", projectID, name).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	return &version, nil
}

// FindOrCreateVersion returns the existing version or creates a new one
// with no group assigned. A concurrent creation racing on the
// (project, name) unique index falls back to re-reading the winner.
func FindOrCreateVersion(projectID uint, name string) (*models.Version, error) {
	version, err := FindVersionByName(projectID, name)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, ErrVersionNotFound) {
		return nil, err
	}
	created := models.Version{ProjectID: projectID, Name: name}
	if err := DB.Create(&created).Error; err != nil {
		if isDuplicateKey(err) {
			return FindVersionByName(projectID, name)
		}
		return nil, err
	}
	return &created, nil
}

func ListVersions(projectID uint) ([]models.Version, error) {
	var versions []models.Version
	err := DB.Where("project_id = ?", projectID).
		Order("created_at, id").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

// FindLatestBuild returns the build with the highest number for the
// version. A version that exists but has no builds yet (its first
// retrieval failed) yields ErrBuildNotFound.
func FindLatestBuild(projectID, versionID uint) (*models.Build, error) {
	var build models.Build
	err := DB.Where("project_id = ? AND version_id = ?", projectID, versionID).
		Order("number DESC").
		First(&build).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildNotFound
		}
		return nil, err
	}
	return &build, nil
}

func FindBuild(projectID, versionID uint, number int) (*models.Build, error) {
	var build models.Build
	err := DB.Where("project_id = ? AND version_id = ? AND number = ?", projectID, versionID, number).
		First(&build).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildNotFound
		}
		return nil, err
	}
	return &build, nil
}

// InsertBuild strictly inserts: a second build with the same
// (project, version, number) triple is rejected with ErrDuplicateBuild
// and leaves the existing record untouched.
func InsertBuild(build *models.Build) error {
	if err := DB.Create(build).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateBuild
		}
		return err
	}
	return nil
}

// isDuplicateKey also string-matches because not every driver
// translates unique-index violations to gorm.ErrDuplicatedKey.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
