package handlers

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/database"
	"github.com/hpfxd/bibliothek/internal/models"
)

var (
	projectNameRe = regexp.MustCompile(`^[a-z]+$`)
	downloadKeyRe = regexp.MustCompile(`^[a-z]+$`)
)

// Path segments that do not match their pattern are treated the same as
// records that do not exist.
func paramProjectName(c *fiber.Ctx) (string, error) {
	name := c.Params("project")
	if !projectNameRe.MatchString(name) {
		return "", fiber.ErrNotFound
	}
	return name, nil
}

func paramVersionName(c *fiber.Ctx) (string, error) {
	name := c.Params("version")
	if !models.VersionNamePattern.MatchString(name) {
		return "", fiber.ErrNotFound
	}
	return name, nil
}

func paramBuildNumber(c *fiber.Ctx) (int, error) {
	number, err := strconv.Atoi(c.Params("build"))
	if err != nil || number <= 0 {
		return 0, fiber.ErrNotFound
	}
	return number, nil
}

func paramDownloadKey(c *fiber.Ctx) (string, error) {
	key := c.Params("download")
	if !downloadKeyRe.MatchString(key) {
		return "", fiber.ErrNotFound
	}
	return key, nil
}

// resolveProjectVersion runs the shared lookup chain for the read
// endpoints: project by name, then version by name or "latest" alias.
// The raw version segment is returned so callers can tell whether the
// alias was used.
func resolveProjectVersion(c *fiber.Ctx) (*models.Project, *models.Version, string, error) {
	projectName, err := paramProjectName(c)
	if err != nil {
		return nil, nil, "", err
	}
	versionName, err := paramVersionName(c)
	if err != nil {
		return nil, nil, "", err
	}

	project, err := database.FindProjectByName(projectName)
	if err != nil {
		return nil, nil, "", notFoundOr(err, database.ErrProjectNotFound, "project not found")
	}
	version, err := database.FindCorrectVersion(project.ID, versionName)
	if err != nil {
		return nil, nil, "", notFoundOr(err, database.ErrVersionNotFound, "version not found")
	}
	return project, version, versionName, nil
}

func notFoundOr(err, sentinel error, message string) error {
	if errors.Is(err, sentinel) {
		return fiber.NewError(fiber.StatusNotFound, message)
	}
	return fiber.ErrInternalServerError
}
