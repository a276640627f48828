package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key-at-least-32-characters!!"

// fakeUserRepo is an in-memory UserRepository keyed by ID.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Phone == phone })
}

func (r *fakeUserRepo) GetByEmailVerificationToken(_ context.Context, token string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == token
	})
}

func (r *fakeUserRepo) GetByPhoneAndCode(_ context.Context, phone, code string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.Phone == phone && u.PhoneVerificationCode != nil && *u.PhoneVerificationCode == code
	})
}

func (r *fakeUserRepo) GetByLiveResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == token &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now)
	})
}

type sentEmail struct {
	To      string
	Subject string
	Text    string
}

type fakeMailer struct {
	sent []sentEmail
	fail bool
}

func (m *fakeMailer) Send(to, subject, text, _ string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Text: text})
	return nil
}

type sentSMS struct {
	To      string
	Message string
}

type fakeSMS struct {
	sent []sentSMS
	fail bool
}

func (s *fakeSMS) Send(to, message string) error {
	if s.fail {
		return errors.New("gateway unavailable")
	}
	s.sent = append(s.sent, sentSMS{To: to, Message: message})
	return nil
}

type authFixture struct {
	repo   *fakeUserRepo
	mailer *fakeMailer
	sms    *fakeSMS
	auth   domain.AuthUseCase
}

func newAuthFixture() *authFixture {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	sms := &fakeSMS{}
	return &authFixture{
		repo:   repo,
		mailer: mailer,
		sms:    sms,
		auth:   NewAuthService(repo, mailer, sms, testJWTSecret, "http://localhost:5173"),
	}
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:    "alice@example.com",
		Password: "correct-horse",
		Phone:    "+2348012345678",
	}
}

func (f *authFixture) register(t *testing.T) *domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), registerInput())
	require.NoError(t, err)
	return user
}

func (f *authFixture) registerVerified(t *testing.T) *domain.User {
	t.Helper()
	user := f.register(t)
	require.NoError(t, f.auth.VerifyEmail(context.Background(), *user.EmailVerificationToken))
	require.NoError(t, f.auth.VerifyPhone(context.Background(), user.Phone, *user.PhoneVerificationCode))
	return user
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)

	assert.Equal(t, domain.RoleMember, user.Role)
	assert.False(t, user.IsEmailVerified)
	assert.False(t, user.IsPhoneVerified)
	require.NotNil(t, user.EmailVerificationToken)
	require.NotNil(t, user.PhoneVerificationCode)
	assert.Len(t, *user.EmailVerificationToken, 64)
	assert.Len(t, *user.PhoneVerificationCode, 6)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, user.Email, f.mailer.sent[0].To)
	assert.Contains(t, f.mailer.sent[0].Text, *user.EmailVerificationToken)
	require.Len(t, f.sms.sent, 1)
	assert.Contains(t, f.sms.sent[0].Message, *user.PhoneVerificationCode)

	// Password is stored hashed.
	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct-horse")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.auth.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestRegister_MissingFields(t *testing.T) {
	f := newAuthFixture()
	_, err := f.auth.Register(context.Background(), domain.RegisterInput{Email: "a@b.co"})

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRegister_SucceedsWhenNotificationsFail(t *testing.T) {
	f := newAuthFixture()
	f.mailer.fail = true
	f.sms.fail = true

	user, err := f.auth.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.NotNil(t, user.EmailVerificationToken)
}

func TestVerifyEmail_ConsumesToken(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	token := *user.EmailVerificationToken

	require.NoError(t, f.auth.VerifyEmail(context.Background(), token))

	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.True(t, stored.IsEmailVerified)
	assert.Nil(t, stored.EmailVerificationToken)

	// Single use: replaying the token fails.
	assert.ErrorIs(t, f.auth.VerifyEmail(context.Background(), token), domain.ErrNotFound)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	f := newAuthFixture()
	assert.ErrorIs(t, f.auth.VerifyEmail(context.Background(), "no-such-token"), domain.ErrNotFound)
}

func TestVerifyPhone_ConsumesCode(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	code := *user.PhoneVerificationCode

	require.NoError(t, f.auth.VerifyPhone(context.Background(), user.Phone, code))

	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.True(t, stored.IsPhoneVerified)
	assert.Nil(t, stored.PhoneVerificationCode)

	assert.ErrorIs(t, f.auth.VerifyPhone(context.Background(), user.Phone, code), domain.ErrNotFound)
}

func TestVerifyPhone_WrongCode(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)

	wrong := "000000"
	if *user.PhoneVerificationCode == wrong {
		wrong = "000001"
	}
	assert.ErrorIs(t, f.auth.VerifyPhone(context.Background(), user.Phone, wrong), domain.ErrNotFound)
}

func TestResendEmail_RotatesToken(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	oldToken := *user.EmailVerificationToken

	require.NoError(t, f.auth.ResendEmail(context.Background(), user.Email))

	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotNil(t, stored.EmailVerificationToken)
	assert.NotEqual(t, oldToken, *stored.EmailVerificationToken)

	// The replaced token is dead, the fresh one works.
	assert.ErrorIs(t, f.auth.VerifyEmail(context.Background(), oldToken), domain.ErrNotFound)
	assert.NoError(t, f.auth.VerifyEmail(context.Background(), *stored.EmailVerificationToken))
}

func TestResendSMS_RotatesCode(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)

	require.NoError(t, f.auth.ResendSMS(context.Background(), user.Phone))

	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotNil(t, stored.PhoneVerificationCode)
	require.Len(t, f.sms.sent, 2)
	assert.Contains(t, f.sms.sent[1].Message, *stored.PhoneVerificationCode)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t)

	result, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", "")
	require.NoError(t, err)
	assert.False(t, result.Require2FA)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "/dashboard", result.RedirectTo)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice@example.com", result.User.Email)

	userID, email, role, err := f.auth.GetAccessTokenManager().VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
	assert.Equal(t, "alice@example.com", email)
	assert.Equal(t, domain.RoleMember, role)
}

func TestLogin_AdminRedirect(t *testing.T) {
	f := newAuthFixture()
	in := registerInput()
	in.Role = domain.RoleAdmin
	user, err := f.auth.Register(context.Background(), in)
	require.NoError(t, err)
	require.NoError(t, f.auth.VerifyEmail(context.Background(), *user.EmailVerificationToken))
	require.NoError(t, f.auth.VerifyPhone(context.Background(), user.Phone, *user.PhoneVerificationCode))

	result, err := f.auth.Login(context.Background(), user.Email, "correct-horse", "")
	require.NoError(t, err)
	assert.Equal(t, "/admin/dashboard", result.RedirectTo)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t)

	_, errWrongPass := f.auth.Login(context.Background(), "alice@example.com", "bad", "")
	_, errNoUser := f.auth.Login(context.Background(), "nobody@example.com", "bad", "")

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestLogin_RequiresEmailVerificationFirst(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", "")

	var vre *domain.VerificationRequiredError
	require.ErrorAs(t, err, &vre)
	assert.Equal(t, "email", vre.Channel)
}

func TestLogin_RequiresPhoneVerificationSecond(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	require.NoError(t, f.auth.VerifyEmail(context.Background(), *user.EmailVerificationToken))

	_, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", "")

	var vre *domain.VerificationRequiredError
	require.ErrorAs(t, err, &vre)
	assert.Equal(t, "phone", vre.Channel)
}

func enable2FA(t *testing.T, f *authFixture, method string) *domain.User {
	t.Helper()
	user := f.registerVerified(t)
	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	stored.TwoFAEnabled = true
	if method != "" {
		stored.TwoFAMethod = &method
	}
	require.NoError(t, f.repo.Update(context.Background(), stored))
	return stored
}

func TestLogin_With2FAChallengesInsteadOfIssuingSession(t *testing.T) {
	f := newAuthFixture()
	enable2FA(t, f, "")
	emailsBefore := len(f.mailer.sent)

	result, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", "")
	require.NoError(t, err)
	assert.True(t, result.Require2FA)
	assert.Equal(t, domain.TwoFAMethodEmail, result.TwoFAMethod)
	assert.Empty(t, result.Token)

	stored, err := f.repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.TwoFACode)
	require.NotNil(t, stored.TwoFACodeExpires)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *stored.TwoFACodeExpires, time.Minute)

	require.Len(t, f.mailer.sent, emailsBefore+1)
	assert.Contains(t, f.mailer.sent[emailsBefore].Text, *stored.TwoFACode)
}

func TestLogin_With2FAPreferredMethodSMS(t *testing.T) {
	f := newAuthFixture()
	enable2FA(t, f, "")
	smsBefore := len(f.sms.sent)

	result, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", domain.TwoFAMethodSMS)
	require.NoError(t, err)
	assert.Equal(t, domain.TwoFAMethodSMS, result.TwoFAMethod)

	stored, err := f.repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Len(t, f.sms.sent, smsBefore+1)
	assert.Contains(t, f.sms.sent[smsBefore].Message, *stored.TwoFACode)
}

func TestVerify2FA_Success(t *testing.T) {
	f := newAuthFixture()
	enable2FA(t, f, "")
	_, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", "")
	require.NoError(t, err)

	stored, err := f.repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	result, err := f.auth.Verify2FA(context.Background(), "alice@example.com", *stored.TwoFACode)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.Require2FA)

	// The code is single use.
	after, err := f.repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, after.TwoFACode)
	assert.Nil(t, after.TwoFACodeExpires)
}

func TestVerify2FA_NoPendingCode(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t)

	_, err := f.auth.Verify2FA(context.Background(), "alice@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrNoPendingCode)
}

func TestVerify2FA_WrongCodeKeepsState(t *testing.T) {
	f := newAuthFixture()
	enable2FA(t, f, "")
	_, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", "")
	require.NoError(t, err)

	stored, err := f.repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	wrong := "000000"
	if *stored.TwoFACode == wrong {
		wrong = "000001"
	}

	_, err = f.auth.Verify2FA(context.Background(), "alice@example.com", wrong)
	assert.ErrorIs(t, err, domain.ErrInvalid2FACode)

	// The pending code survives a failed attempt and still works.
	result, err := f.auth.Verify2FA(context.Background(), "alice@example.com", *stored.TwoFACode)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestVerify2FA_ExpiredCode(t *testing.T) {
	f := newAuthFixture()
	enable2FA(t, f, "")
	_, err := f.auth.Login(context.Background(), "alice@example.com", "correct-horse", "")
	require.NoError(t, err)

	stored, err := f.repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	stored.TwoFACodeExpires = &past
	require.NoError(t, f.repo.Update(context.Background(), stored))

	_, err = f.auth.Verify2FA(context.Background(), "alice@example.com", *stored.TwoFACode)
	assert.ErrorIs(t, err, domain.ErrCodeExpired)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()
	err := f.auth.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, f.mailer.sent)
}

func TestForgotPassword_SetsTokenAndEmailsLink(t *testing.T) {
	f := newAuthFixture()
	user := f.registerVerified(t)
	emailsBefore := len(f.mailer.sent)

	require.NoError(t, f.auth.ForgotPassword(context.Background(), user.Email))

	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordResetExpires)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.PasswordResetExpires, time.Minute)

	require.Len(t, f.mailer.sent, emailsBefore+1)
	assert.Contains(t, f.mailer.sent[emailsBefore].Text, *stored.PasswordResetToken)
}

func TestResetPassword_LiveToken(t *testing.T) {
	f := newAuthFixture()
	user := f.registerVerified(t)
	require.NoError(t, f.auth.ForgotPassword(context.Background(), user.Email))

	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	token := *stored.PasswordResetToken

	require.NoError(t, f.auth.ResetPassword(context.Background(), token, "new-password-1"))

	// Old password dead, new one works, token consumed.
	_, err = f.auth.Login(context.Background(), user.Email, "correct-horse", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.auth.Login(context.Background(), user.Email, "new-password-1", "")
	assert.NoError(t, err)
	assert.ErrorIs(t,
		f.auth.ResetPassword(context.Background(), token, "another-password"),
		domain.ErrInvalidOrExpiredToken)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	f := newAuthFixture()
	user := f.registerVerified(t)
	require.NoError(t, f.auth.ForgotPassword(context.Background(), user.Email))

	stored, err := f.repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	stored.PasswordResetExpires = &past
	require.NoError(t, f.repo.Update(context.Background(), stored))

	err = f.auth.ResetPassword(context.Background(), *stored.PasswordResetToken, "new-password-1")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestMe(t *testing.T) {
	f := newAuthFixture()
	user := f.registerVerified(t)

	public, err := f.auth.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, public.Email)

	_, err = f.auth.Me(context.Background(), "missing-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
