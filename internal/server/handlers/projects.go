package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/database"
	"github.com/hpfxd/bibliothek/internal/models"
)

func ProjectList(c *fiber.Ctx) error {
	projects, err := database.ListProjects()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return c.JSON(fiber.Map{"projects": names})
}

// ProjectDetail lists a project's versions in creation order, plus the
// distinct version groups derived from their names.
func ProjectDetail(c *fiber.Ctx) error {
	name, err := paramProjectName(c)
	if err != nil {
		return err
	}
	project, err := database.FindProjectByName(name)
	if err != nil {
		return notFoundOr(err, database.ErrProjectNotFound, "project not found")
	}
	versions, err := database.ListVersions(project.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	versionNames := make([]string, 0, len(versions))
	groups := make([]string, 0)
	seen := make(map[string]bool)
	for _, v := range versions {
		versionNames = append(versionNames, v.Name)
		group := v.Group
		if group == "" {
			group = models.VersionGroup(v.Name)
		}
		if group != "" && !seen[group] {
			seen[group] = true
			groups = append(groups, group)
		}
	}

	return c.JSON(fiber.Map{
		"project_id":     project.Name,
		"project_name":   project.FriendlyName,
		"version_groups": groups,
		"versions":       versionNames,
	})
}
