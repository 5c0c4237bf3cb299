package handlers

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/database"
)

func downloadURL(project, version string, build int, download string) string {
	return fmt.Sprintf("/v2/projects/%s/versions/%s/builds/%d/downloads/%s", project, version, build, download)
}

// DownloadLatest redirects to the canonical URL of the named download
// in the version's newest build. The redirect target changes as builds
// arrive, so the response is only briefly cacheable.
func DownloadLatest(c *fiber.Ctx) error {
	project, version, _, err := resolveProjectVersion(c)
	if err != nil {
		return err
	}
	downloadKey, err := paramDownloadKey(c)
	if err != nil {
		return err
	}

	build, err := database.FindLatestBuild(project.ID, version.ID)
	if err != nil {
		return notFoundOr(err, database.ErrBuildNotFound, "build not found")
	}
	if _, ok := build.Downloads[downloadKey]; !ok {
		return fiber.NewError(fiber.StatusNotFound, "download not found")
	}

	return redirectResult(downloadURL(project.Name, version.Name, build.Number, downloadKey), cacheLatest).send(c)
}

// DownloadSpecific serves the file of a specific build directly. When
// the version path segment was the "latest" alias it redirects to the
// canonical version-name URL instead; alias paths never serve bytes.
func DownloadSpecific(c *fiber.Ctx) error {
	project, version, versionName, err := resolveProjectVersion(c)
	if err != nil {
		return err
	}
	buildNumber, err := paramBuildNumber(c)
	if err != nil {
		return err
	}
	downloadKey, err := paramDownloadKey(c)
	if err != nil {
		return err
	}

	build, err := database.FindBuild(project.ID, version.ID, buildNumber)
	if err != nil {
		return notFoundOr(err, database.ErrBuildNotFound, "build not found")
	}
	download, ok := build.Downloads[downloadKey]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "download not found")
	}

	if versionName == database.LatestAlias {
		return redirectResult(downloadURL(project.Name, version.Name, build.Number, downloadKey), cacheLatest).send(c)
	}

	path := filepath.Join(cfg.StorageRoot, project.Name, version.Name, strconv.Itoa(build.Number), download.Name)
	return fileResult(path, cacheSpecificDownload).send(c)
}
