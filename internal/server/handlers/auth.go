package handlers

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/database"
	"github.com/hpfxd/bibliothek/internal/services"
)

// AdminLogin exchanges the configured admin credentials for a JWT.
// Disabled (always 401) when no admin password is configured.
func AdminLogin(c *fiber.Ctx) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if cfg.AdminPassword == "" {
		return fiber.ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		return fiber.ErrUnauthorized
	}
	token, err := services.GenerateAdminToken(cfg, in.Username, 24*time.Hour)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"token": token})
}

// ProjectCreate registers a new project. Projects cannot be created by
// the publication pipeline, only seeded or added here.
func ProjectCreate(c *fiber.Ctx) error {
	var in struct {
		Name         string `json:"name"`
		FriendlyName string `json:"friendly_name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if !projectNameRe.MatchString(in.Name) {
		return fiber.NewError(fiber.StatusBadRequest, "project name must match [a-z]+")
	}
	if in.FriendlyName == "" {
		in.FriendlyName = in.Name
	}
	project, err := database.CreateProject(in.Name, in.FriendlyName)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateProject) {
			return fiber.NewError(fiber.StatusConflict, "project already exists")
		}
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}
