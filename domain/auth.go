package domain

import (
	"context"

	"github.com/anchordtai/Cooperative-Management-Software/utils"
)

// RegisterInput carries the fields accepted at registration. Role defaults to
// member when empty.
type RegisterInput struct {
	Email     string
	Password  string
	Phone     string
	Role      string
	FirstName *string
	LastName  *string
}

// LoginResult is the outcome of Login or Verify2FA. When Require2FA is set no
// session token has been issued yet.
type LoginResult struct {
	User        *PublicUser
	Token       string
	Require2FA  bool
	TwoFAMethod string
	RedirectTo  string
}

type AuthUseCase interface {
	GetAccessTokenManager() *utils.JWTManager
	Register(ctx context.Context, in RegisterInput) (*User, error)
	VerifyEmail(ctx context.Context, token string) error
	VerifyPhone(ctx context.Context, phone, code string) error
	ResendEmail(ctx context.Context, email string) error
	ResendSMS(ctx context.Context, phone string) error
	Login(ctx context.Context, email, password, preferredTwoFAMethod string) (*LoginResult, error)
	Verify2FA(ctx context.Context, email, code string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Me(ctx context.Context, id string) (*PublicUser, error)
}

// EmailSender and SMSSender are the notification collaborators. Both are
// best-effort from the auth flows' perspective: send failures are logged by
// the caller and never fail the triggering operation.
type EmailSender interface {
	Send(to, subject, text, html string) error
}

type SMSSender interface {
	Send(to, message string) error
}
