package entities

import "time"

// SearchEntry is the derived, searchable representation of one job posting.
// One row per job, created lazily on first sync. The relational store owns
// it; ExternalObjectID is set only while the job is mirrored to the hosted
// search service.
type SearchEntry struct {
	ID               int    `gorm:"primaryKey"`
	JobID            string `gorm:"uniqueIndex"`
	SearchableText   string
	IndexedAt        time.Time
	LastSyncedAt     time.Time
	ExternalObjectID *string
}
