package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/utils"
)

// Cache lifetimes: anything reached through the "latest" alias can
// change underneath the client, so it is only briefly cacheable.
// Specific builds are immutable and cache for much longer.
const (
	cacheLatest           = time.Minute
	cacheSpecificBuild    = 7 * 24 * time.Hour
	cacheSpecificDownload = 14 * 24 * time.Hour
)

// downloadResult is the shaped outcome of a download request, decided
// by the resolver chain and dispatched once at the HTTP boundary:
// either a cacheable redirect or a cacheable file response.
type downloadResult struct {
	location string
	filePath string
	cache    time.Duration
}

func redirectResult(location string, cache time.Duration) downloadResult {
	return downloadResult{location: location, cache: cache}
}

func fileResult(path string, cache time.Duration) downloadResult {
	return downloadResult{filePath: path, cache: cache}
}

func (r downloadResult) send(c *fiber.Ctx) error {
	setCacheControl(c, r.cache)
	if r.location != "" {
		return c.Redirect(r.location, fiber.StatusFound)
	}

	info, err := os.Stat(r.filePath)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "download failed")
	}
	file, err := os.Open(r.filePath)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "download failed")
	}

	name := filepath.Base(r.filePath)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Set(fiber.HeaderContentType, utils.MediaTypeFor(name))
	c.Set(fiber.HeaderLastModified, info.ModTime().UTC().Format(http.TimeFormat))
	return c.SendStream(file, int(info.Size()))
}

func setCacheControl(c *fiber.Ctx, d time.Duration) {
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, s-maxage=%d", int(d.Seconds())))
}

func cachedJSON(c *fiber.Ctx, d time.Duration, body interface{}) error {
	setCacheControl(c, d)
	return c.JSON(body)
}
