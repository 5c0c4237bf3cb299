package handlers

import (
	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/services"
)

var (
	cfg       *config.Config
	artifacts *services.ArtifactService
)

// Setup wires the handler package to its configuration and services.
// Must be called before routes are registered.
func Setup(c *config.Config) {
	cfg = c
	artifacts = services.NewArtifactService(c)
}
