package repository

import (
	"context"
	"errors"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row. Boot seeds it, so absence is a defect
// surfaced as ErrNotFound rather than papered over.
func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
