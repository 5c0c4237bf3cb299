package models

import (
	"regexp"
	"strings"
	"time"
)

// VersionNamePattern constrains version path segments.
var VersionNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Version is a named release line of a project. Versions are created
// lazily by the webhook the first time a build for an unseen version
// name arrives, and are never mutated afterwards.
type Version struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ProjectID uint   `gorm:"not null;index;uniqueIndex:uniq_project_version"`
	Name      string `gorm:"size:64;not null;uniqueIndex:uniq_project_version"`
	Group     string `gorm:"column:version_group;size:64"`
}

// VersionGroup derives the group of a version name: the text before the
// last '.' separator. "1.8.8" groups under "1.8"; a name without a
// separator has no group.
func VersionGroup(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return ""
}
