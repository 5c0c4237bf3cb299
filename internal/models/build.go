package models

import (
	"strings"
	"time"
)

// Build is one immutable artifact-producing CI run within a version,
// numbered by its upstream run number. Builds are only ever inserted;
// the unique index rejects a second insert for the same run number.
// Numbers come from the CI provider, so gaps are normal.
type Build struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ProjectID uint `gorm:"not null;index;uniqueIndex:uniq_build_number"`
	VersionID uint `gorm:"not null;index;uniqueIndex:uniq_build_number"`
	Number    int  `gorm:"not null;uniqueIndex:uniq_build_number"`

	// Time is when the upstream workflow run started, not when the
	// record was inserted.
	Time      time.Time           `json:"time"`
	Changes   []Change            `gorm:"serializer:json" json:"changes"`
	Downloads map[string]Download `gorm:"serializer:json" json:"downloads"`
	Channel   string              `gorm:"size:32" json:"channel,omitempty"`
	Promoted  bool                `gorm:"default:false" json:"promoted"`
}

// Change references one source-control commit, embedded in a build.
type Change struct {
	Commit  string `json:"commit"`
	Summary string `json:"summary"`
	Message string `json:"message"`
}

// Download is one named file produced by a build, identified by its
// SHA-256 content hash. The bytes live on disk under
// storageRoot/project/version/number/; the store holds only this pair.
type Download struct {
	Name   string `json:"name"`
	Sha256 string `json:"sha256"`
}

// ChangeFromCommit builds a Change from a commit id and full message,
// using the first message line as the summary.
func ChangeFromCommit(id, message string) Change {
	summary, _, _ := strings.Cut(message, "\n")
	summary = strings.TrimSuffix(summary, "\r")
	return Change{Commit: id, Summary: summary, Message: message}
}
