package repositories

import (
	"context"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"gorm.io/gorm"
)

type Resumes struct {
	db *gorm.DB
}

func NewResumesRepository(db *gorm.DB) *Resumes {
	return &Resumes{db: db}
}

func (r Resumes) GetByUser(ctx context.Context, userID string) ([]entities.Resume, error) {
	var resumes []entities.Resume
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	return resumes, err
}
