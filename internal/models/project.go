package models

import "time"

// Project is a published software product. Projects are created by
// seeding or the admin API, never by the publication pipeline.
type Project struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name         string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	FriendlyName string `gorm:"size:128" json:"friendly_name"`
}
