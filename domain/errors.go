package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrNotFound           = errors.New("record not found")

	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrNoPendingCode         = errors.New("no 2FA code found, please login again")
	ErrInvalid2FACode        = errors.New("invalid 2FA code")
	ErrCodeExpired           = errors.New("2FA code expired, please login again")

	ErrUnauthenticated = errors.New("no token provided")
	ErrInvalidSession  = errors.New("invalid token, please log in again")
	ErrForbidden       = errors.New("you do not have permission to perform this action")

	ErrLoanNotPending = errors.New("loan is not in pending status")
)

// VerificationRequiredError signals that login was refused because a
// verification channel is still pending. It carries the channel so clients
// know which remediation flow to start.
type VerificationRequiredError struct {
	Channel string // email | phone
}

func (e *VerificationRequiredError) Error() string {
	return fmt.Sprintf("please verify your %s before logging in", e.Channel)
}

// ValidationError reports missing or malformed input detected past the
// binding layer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
