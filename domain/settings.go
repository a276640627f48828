package domain

import (
	"context"
	"time"
)

// Settings is the single persisted configuration record. It replaces the
// process-wide mutable settings object with a repository-backed row that is
// seeded at boot and updated in place.
type Settings struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	CooperativeName     string    `gorm:"not null" json:"cooperativeName"`
	Email               string    `gorm:"not null" json:"email"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	Currency            string    `gorm:"not null;default:USD" json:"currency"`
	InterestRate        float64   `gorm:"type:decimal(5,2);not null;default:5" json:"interestRate"`
	MinimumSavings      float64   `gorm:"type:decimal(10,2);not null;default:100" json:"minimumSavings"`
	EnableNotifications bool      `gorm:"not null;default:true" json:"enableNotifications"`
	EnableAutoApproval  bool      `gorm:"not null;default:false" json:"enableAutoApproval"`
	EnableTwoFactor     bool      `gorm:"not null;default:true" json:"enableTwoFactor"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UpdateSettingsInput carries a partial update: nil pointers keep the stored
// value, matching the original system's merge-on-update behavior.
type UpdateSettingsInput struct {
	CooperativeName     *string
	Email               *string
	Phone               *string
	Address             *string
	Currency            *string
	InterestRate        *float64
	MinimumSavings      *float64
	EnableNotifications *bool
	EnableAutoApproval  *bool
	EnableTwoFactor     *bool
}

type SettingsRepository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

type SettingsUseCase interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*Settings, error)
}
