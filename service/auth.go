package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL        = 24 * time.Hour
	twoFACodeTTL      = 10 * time.Minute
	resetTokenTTL     = time.Hour
	verifyTokenLength = 32 // bytes of entropy, hex-encoded
)

type authService struct {
	users       domain.UserRepository
	mailer      domain.EmailSender
	sms         domain.SMSSender
	accessToken *utils.JWTManager
	frontendURL string
}

func NewAuthService(users domain.UserRepository, mailer domain.EmailSender, sms domain.SMSSender, secret, frontendURL string) domain.AuthUseCase {
	return &authService{
		users:       users,
		mailer:      mailer,
		sms:         sms,
		accessToken: utils.NewJWTManager(secret, sessionTTL),
		frontendURL: frontendURL,
	}
}

func (s *authService) GetAccessTokenManager() *utils.JWTManager {
	return s.accessToken
}

func (s *authService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.Phone == "" {
		return nil, &domain.ValidationError{Message: "email, password, and phone are required"}
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	emailToken, err := utils.GenerateSecureToken(verifyTokenLength)
	if err != nil {
		return nil, err
	}
	phoneCode, err := utils.GenerateNumericCode()
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleMember
	}

	user := &domain.User{
		Email:                  in.Email,
		Phone:                  in.Phone,
		Password:               string(hashed),
		Role:                   role,
		FirstName:              in.FirstName,
		LastName:               in.LastName,
		EmailVerificationToken: &emailToken,
		PhoneVerificationCode:  &phoneCode,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Account creation succeeds even when delivery fails; the tokens stay on
	// the record and can be resent.
	s.sendVerificationEmail(user.Email, emailToken)
	s.sendVerificationSMS(user.Phone, phoneCode)

	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return &domain.ValidationError{Message: "verification token is required"}
	}

	user, err := s.users.GetByEmailVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	return s.users.Update(ctx, user)
}

func (s *authService) VerifyPhone(ctx context.Context, phone, code string) error {
	if phone == "" || code == "" {
		return &domain.ValidationError{Message: "phone and code are required"}
	}

	// Single lookup on the pair: a wrong code and an unknown phone produce
	// the same response, so accounts cannot be enumerated.
	user, err := s.users.GetByPhoneAndCode(ctx, phone, code)
	if err != nil {
		return err
	}

	user.IsPhoneVerified = true
	user.PhoneVerificationCode = nil
	return s.users.Update(ctx, user)
}

func (s *authService) ResendEmail(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := utils.GenerateSecureToken(verifyTokenLength)
	if err != nil {
		return err
	}
	user.EmailVerificationToken = &token
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.sendVerificationEmail(user.Email, token)
	return nil
}

func (s *authService) ResendSMS(ctx context.Context, phone string) error {
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}

	code, err := utils.GenerateNumericCode()
	if err != nil {
		return err
	}
	user.PhoneVerificationCode = &code
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.sendVerificationSMS(user.Phone, code)
	return nil
}

func (s *authService) Login(ctx context.Context, email, password, preferredTwoFAMethod string) (*domain.LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same error as a wrong password so responses do not reveal whether
		// the account exists.
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, &domain.VerificationRequiredError{Channel: "email"}
	}
	if !user.IsPhoneVerified {
		return nil, &domain.VerificationRequiredError{Channel: "phone"}
	}

	if user.TwoFAEnabled {
		code, err := utils.GenerateNumericCode()
		if err != nil {
			return nil, err
		}
		expires := time.Now().Add(twoFACodeTTL)
		user.TwoFACode = &code
		user.TwoFACodeExpires = &expires
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}

		method := preferredTwoFAMethod
		if method == "" && user.TwoFAMethod != nil {
			method = *user.TwoFAMethod
		}
		if method == "" {
			method = domain.TwoFAMethodEmail
		}

		if method == domain.TwoFAMethodSMS {
			if err := s.sms.Send(user.Phone, fmt.Sprintf("Your 2FA code is: %s", code)); err != nil {
				log.Warn().Err(err).Str("phone", user.Phone).Msg("failed to send 2FA SMS")
			}
		} else {
			if err := s.mailer.Send(user.Email, "Your 2FA Code",
				fmt.Sprintf("Your 2FA code is: %s", code),
				fmt.Sprintf("<p>Your 2FA code is: <b>%s</b></p>", code)); err != nil {
				log.Warn().Err(err).Str("email", user.Email).Msg("failed to send 2FA email")
			}
		}

		return &domain.LoginResult{Require2FA: true, TwoFAMethod: method}, nil
	}

	return s.issueSession(user)
}

func (s *authService) Verify2FA(ctx context.Context, email, code string) (*domain.LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.TwoFACode == nil || user.TwoFACodeExpires == nil {
		return nil, domain.ErrNoPendingCode
	}
	// Mismatched and expired codes keep the stored state so the caller can
	// retry or restart login; only success consumes the code.
	if *user.TwoFACode != code {
		return nil, domain.ErrInvalid2FACode
	}
	if time.Now().After(*user.TwoFACodeExpires) {
		return nil, domain.ErrCodeExpired
	}

	user.TwoFACode = nil
	user.TwoFACodeExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Identical acknowledgment for unknown addresses.
			return nil
		}
		return err
	}

	token, err := utils.GenerateSecureToken(verifyTokenLength)
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	if err := s.mailer.Send(user.Email, "Password Reset",
		fmt.Sprintf("Click the link to reset your password: %s", resetURL),
		fmt.Sprintf(`<p>Click the link to reset your password: <a href="%s">Reset Password</a></p>`, resetURL)); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send password reset email")
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return &domain.ValidationError{Message: "token and new password are required"}
	}

	user, err := s.users.GetByLiveResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidOrExpiredToken
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	return s.users.Update(ctx, user)
}

func (s *authService) Me(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *authService) issueSession(user *domain.User) (*domain.LoginResult, error) {
	token, err := s.accessToken.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	redirect := "/dashboard"
	if user.Role == domain.RoleAdmin {
		redirect = "/admin/dashboard"
	}

	return &domain.LoginResult{
		User:       user.Public(),
		Token:      token,
		RedirectTo: redirect,
	}, nil
}

func (s *authService) sendVerificationEmail(email, token string) {
	verifyURL := fmt.Sprintf("%s/verify-account?token=%s", s.frontendURL, token)
	err := s.mailer.Send(email, "Verify your email",
		fmt.Sprintf("Click the link to verify your email: %s", verifyURL),
		fmt.Sprintf(`<p>Click the link to verify your email: <a href="%s">Verify Email</a></p>`, verifyURL))
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("failed to send verification email")
	}
}

func (s *authService) sendVerificationSMS(phone, code string) {
	if err := s.sms.Send(phone, fmt.Sprintf("Your verification code is: %s", code)); err != nil {
		log.Warn().Err(err).Str("phone", phone).Msg("failed to send verification SMS")
	}
}
