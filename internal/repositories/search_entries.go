package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SearchEntries struct {
	db *gorm.DB
}

func NewSearchEntriesRepository(db *gorm.DB) *SearchEntries {
	return &SearchEntries{db: db}
}

// Upsert writes the derived entry for a job, keyed by job id. Calling it
// repeatedly for an unchanged job leaves one row with the same text.
func (s SearchEntries) Upsert(ctx context.Context, entry entities.SearchEntry) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"searchable_text", "indexed_at", "last_synced_at"}),
		}).
		Create(&entry).Error
}

func (s SearchEntries) GetByJobID(ctx context.Context, jobID string) (*entities.SearchEntry, error) {
	var entry entities.SearchEntry
	err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (s SearchEntries) SetExternalObjectID(ctx context.Context, jobID string, externalObjectID *string) error {
	return s.db.WithContext(ctx).
		Model(&entities.SearchEntry{}).
		Where("job_id = ?", jobID).
		Updates(map[string]interface{}{
			"external_object_id": externalObjectID,
			"last_synced_at":     time.Now(),
		}).Error
}

// DeleteByJobID is a no-op when the job was never synced.
func (s SearchEntries) DeleteByJobID(ctx context.Context, jobID string) error {
	return s.db.WithContext(ctx).
		Delete(&entities.SearchEntry{}, "job_id = ?", jobID).Error
}

func (s SearchEntries) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&entities.SearchEntry{}).Error
}

func (s SearchEntries) CreateBatch(ctx context.Context, entries []entities.SearchEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&entries).Error
}

func (s SearchEntries) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entities.SearchEntry{}).
		Count(&count).Error
	return count, err
}
