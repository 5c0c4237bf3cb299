package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hpfxd/bibliothek/internal/models"
)

func openTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	DB = db
	require.NoError(t, Migrate())
}

func mustProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project, err := CreateProject(name, name)
	require.NoError(t, err)
	return project
}

func mustVersion(t *testing.T, projectID uint, name string, createdAt time.Time) *models.Version {
	t.Helper()
	version := models.Version{ProjectID: projectID, Name: name}
	version.CreatedAt = createdAt
	require.NoError(t, DB.Create(&version).Error)
	return &version
}

func TestFindCorrectVersion(t *testing.T) {
	openTestDB(t)
	project := mustProject(t, "pandaspigot")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mustVersion(t, project.ID, "1.8.8", base)
	newest := mustVersion(t, project.ID, "1.8.9", base.Add(time.Hour))

	latest, err := FindCorrectVersion(project.ID, "latest")
	require.NoError(t, err)
	assert.Equal(t, newest.Name, latest.Name)

	exact, err := FindCorrectVersion(project.ID, "1.8.8")
	require.NoError(t, err)
	assert.Equal(t, "1.8.8", exact.Name)

	_, err = FindCorrectVersion(project.ID, "9.9.9")
	assert.ErrorIs(t, err, ErrVersionNotFound)

	empty := mustProject(t, "emptyproject")
	_, err = FindCorrectVersion(empty.ID, "latest")
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestFindOrCreateVersion(t *testing.T) {
	openTestDB(t)
	project := mustProject(t, "pandaspigot")

	created, err := FindOrCreateVersion(project.ID, "1.8.8")
	require.NoError(t, err)
	assert.Empty(t, created.Group)

	again, err := FindOrCreateVersion(project.ID, "1.8.8")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	DB.Model(&models.Version{}).Where("project_id = ?", project.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBuildLookups(t *testing.T) {
	openTestDB(t)
	project := mustProject(t, "pandaspigot")
	version := mustVersion(t, project.ID, "1.8.8", time.Now())

	for _, number := range []int{10, 30, 20} {
		require.NoError(t, InsertBuild(&models.Build{
			ProjectID: project.ID,
			VersionID: version.ID,
			Number:    number,
			Time:      time.Now(),
			Downloads: map[string]models.Download{"application": {Name: "app.jar", Sha256: "aa"}},
		}))
	}

	latest, err := FindLatestBuild(project.ID, version.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, latest.Number)

	exact, err := FindBuild(project.ID, version.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, exact.Number)
	assert.Equal(t, "app.jar", exact.Downloads["application"].Name)

	_, err = FindBuild(project.ID, version.ID, 999)
	assert.ErrorIs(t, err, ErrBuildNotFound)

	emptyVersion := mustVersion(t, project.ID, "1.9.0", time.Now())
	_, err = FindLatestBuild(project.ID, emptyVersion.ID)
	assert.ErrorIs(t, err, ErrBuildNotFound)
}

func TestInsertBuildRejectsDuplicates(t *testing.T) {
	openTestDB(t)
	project := mustProject(t, "pandaspigot")
	version := mustVersion(t, project.ID, "1.8.8", time.Now())

	build := models.Build{
		ProjectID: project.ID,
		VersionID: version.ID,
		Number:    1271,
		Time:      time.Now(),
		Downloads: map[string]models.Download{"application": {Name: "app.jar", Sha256: "aa"}},
	}
	require.NoError(t, InsertBuild(&build))

	duplicate := models.Build{
		ProjectID: project.ID,
		VersionID: version.ID,
		Number:    1271,
		Time:      time.Now(),
		Downloads: map[string]models.Download{"application": {Name: "other.jar", Sha256: "bb"}},
	}
	err := InsertBuild(&duplicate)
	require.ErrorIs(t, err, ErrDuplicateBuild)

	// The original record is untouched.
	stored, err := FindBuild(project.ID, version.ID, 1271)
	require.NoError(t, err)
	assert.Equal(t, "app.jar", stored.Downloads["application"].Name)
}

func TestCreateProjectDuplicate(t *testing.T) {
	openTestDB(t)
	mustProject(t, "pandaspigot")
	_, err := CreateProject("pandaspigot", "PandaSpigot")
	assert.ErrorIs(t, err, ErrDuplicateProject)
}
