package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/database"
	"github.com/hpfxd/bibliothek/internal/models"
)

type buildResponse struct {
	ProjectID   string                     `json:"project_id"`
	ProjectName string                     `json:"project_name"`
	Version     string                     `json:"version"`
	Build       int                        `json:"build"`
	Time        time.Time                  `json:"time"`
	Channel     string                     `json:"channel,omitempty"`
	Promoted    bool                       `json:"promoted"`
	Changes     []models.Change            `json:"changes"`
	Downloads   map[string]models.Download `json:"downloads"`
}

func buildURL(project, version string, build int) string {
	return fmt.Sprintf("/v2/projects/%s/versions/%s/builds/%d", project, version, build)
}

// BuildLatest redirects to the metadata URL of the version's newest
// build.
func BuildLatest(c *fiber.Ctx) error {
	project, version, _, err := resolveProjectVersion(c)
	if err != nil {
		return err
	}
	build, err := database.FindLatestBuild(project.ID, version.ID)
	if err != nil {
		return notFoundOr(err, database.ErrBuildNotFound, "build not found")
	}
	return redirectResult(buildURL(project.Name, version.Name, build.Number), cacheLatest).send(c)
}

// BuildSpecific returns metadata for one build. Requests under the
// "latest" version alias redirect to the canonical version-name URL.
func BuildSpecific(c *fiber.Ctx) error {
	project, version, versionName, err := resolveProjectVersion(c)
	if err != nil {
		return err
	}
	buildNumber, err := paramBuildNumber(c)
	if err != nil {
		return err
	}
	build, err := database.FindBuild(project.ID, version.ID, buildNumber)
	if err != nil {
		return notFoundOr(err, database.ErrBuildNotFound, "build not found")
	}

	if versionName == database.LatestAlias {
		return redirectResult(buildURL(project.Name, version.Name, build.Number), cacheLatest).send(c)
	}

	changes := build.Changes
	if changes == nil {
		changes = []models.Change{}
	}
	return cachedJSON(c, cacheSpecificBuild, buildResponse{
		ProjectID:   project.Name,
		ProjectName: project.FriendlyName,
		Version:     version.Name,
		Build:       build.Number,
		Time:        build.Time,
		Channel:     build.Channel,
		Promoted:    build.Promoted,
		Changes:     changes,
		Downloads:   build.Downloads,
	})
}
