package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleStaff  = "staff"
)

const (
	TwoFAMethodEmail = "email"
	TwoFAMethodSMS   = "sms"
)

// User is the credential record: one row per principal, holding the password
// hash plus all verification, two-factor and reset state. Secrets and tokens
// are never serialized.
type User struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string  `gorm:"uniqueIndex;not null" json:"phone"`
	Password  string  `gorm:"not null" json:"-"`
	Role      string  `gorm:"not null;default:member" json:"role"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`

	IsEmailVerified        bool    `gorm:"not null;default:false" json:"isEmailVerified"`
	EmailVerificationToken *string `gorm:"index" json:"-"`
	IsPhoneVerified        bool    `gorm:"not null;default:false" json:"isPhoneVerified"`
	PhoneVerificationCode  *string `json:"-"`

	TwoFAEnabled     bool       `gorm:"not null;default:false" json:"twoFAEnabled"`
	TwoFAMethod      *string    `json:"twoFAMethod,omitempty"` // email | sms
	TwoFACode        *string    `json:"-"`
	TwoFACodeExpires *time.Time `json:"-"`

	PasswordResetToken   *string    `gorm:"index" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicUser is the projection returned to clients. It never carries the
// password hash or any verification token.
type PublicUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     string  `json:"phone"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	GetByEmailVerificationToken(ctx context.Context, token string) (*User, error)
	GetByPhoneAndCode(ctx context.Context, phone, code string) (*User, error)
	// GetByLiveResetToken matches only while the reset expiry is still in the
	// future relative to now.
	GetByLiveResetToken(ctx context.Context, token string, now time.Time) (*User, error)
}
