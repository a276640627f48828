package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MemberStatusActive    = "active"
	MemberStatusInactive  = "inactive"
	MemberStatusSuspended = "suspended"
)

type Member struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;index" json:"userId"`
	MembershipNumber string    `gorm:"uniqueIndex;not null" json:"membershipNumber"`
	FirstName        string    `gorm:"not null" json:"firstName"`
	LastName         string    `gorm:"not null" json:"lastName"`
	Phone            string    `gorm:"not null" json:"phone"`
	Address          string    `gorm:"not null" json:"address"`
	DateOfBirth      time.Time `gorm:"not null" json:"dateOfBirth"`
	JoinDate         time.Time `gorm:"not null" json:"joinDate"`
	Status           string    `gorm:"not null;default:active" json:"status"`
	ShareCapital     float64   `gorm:"type:decimal(10,2);not null;default:0" json:"shareCapital"`
	Savings          float64   `gorm:"type:decimal(10,2);not null;default:0" json:"savings"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	GetAll(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByUserID(ctx context.Context, userID string) (*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type MemberUseCase interface {
	CreateMember(ctx context.Context, member *Member) error
	GetAllMembers(ctx context.Context) ([]Member, error)
	GetMemberByID(ctx context.Context, id string) (*Member, error)
	UpdateMember(ctx context.Context, member *Member) (*Member, error)
	DeleteMember(ctx context.Context, id string) error
}
