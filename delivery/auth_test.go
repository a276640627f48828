package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/repository"
	"github.com/anchordtai/Cooperative-Management-Software/service"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret-key-at-least-32-characters!!"

type nullMailer struct{}

func (nullMailer) Send(_, _, _, _ string) error { return nil }

type nullSMS struct{}

func (nullSMS) Send(_, _ string) error { return nil }

type testServer struct {
	router *gin.Engine
	users  domain.UserRepository
	db     *gorm.DB
	jwt    *utils.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Member{},
		&domain.Loan{},
		&domain.Transaction{},
		&domain.Settings{},
	))
	require.NoError(t, db.Create(&domain.Settings{
		CooperativeName: "Test Co-op",
		Email:           "ops@test.example",
		Currency:        "USD",
		InterestRate:    5,
		MinimumSavings:  100,
	}).Error)

	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authService := service.NewAuthService(userRepo, nullMailer{}, nullSMS{}, testSecret, "http://localhost:5173")
	jwtManager := authService.GetAccessTokenManager()

	router := gin.New()
	NewAuthHandler(router, authService, nil)
	NewMemberHandler(router, service.NewMemberService(memberRepo), jwtManager)
	NewFinancialHandler(router,
		service.NewTransactionService(transactionRepo, memberRepo),
		service.NewLoanService(loanRepo, memberRepo, settingsRepo),
		jwtManager)
	NewSettingsHandler(router, service.NewSettingsService(settingsRepo), jwtManager)
	NewReportHandler(router, service.NewReportService(reportRepo), jwtManager)

	return &testServer{router: router, users: userRepo, db: db, jwt: jwtManager}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, modify ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range modify {
		m(req)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCookie(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
}

const (
	testEmail    = "alice@example.com"
	testPhone    = "+2348012345678"
	testPassword = "correct-horse"
)

func (s *testServer) register(t *testing.T) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    testEmail,
		"password": testPassword,
		"phone":    testPhone,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// verifyViaDB completes both verification channels using the stored token and
// code, standing in for the email link and the SMS.
func (s *testServer) verifyViaDB(t *testing.T) {
	t.Helper()
	user, err := s.users.GetByEmail(context.Background(), testEmail)
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/auth/verify-email?token="+*user.EmailVerificationToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/auth/verify-phone", gin.H{
		"phone": testPhone,
		"code":  *user.PhoneVerificationCode,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("no session cookie in login response")
	return ""
}

func TestRegisterEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    testEmail,
		"password": testPassword,
		"phone":    testPhone,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, testEmail, data["email"])
	assert.Equal(t, true, data["requiresVerification"])
	assert.Equal(t, "verify-account", data["nextStep"])

	// No token or code ever leaves the server.
	assert.NotContains(t, rec.Body.String(), "verificationToken")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "not-an-email",
		"password": testPassword,
		"phone":    testPhone,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    testEmail,
		"password": "short",
		"phone":    testPhone,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    testEmail,
		"password": testPassword,
		"phone":    "abc",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.register(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    testEmail,
		"password": testPassword,
		"phone":    "+2348099999999",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already in use")
}

func TestVerifyEmailEndpoint_UnknownToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/auth/verify-email?token=bogus", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginEndpoint_UnverifiedIsBlocked(t *testing.T) {
	s := newTestServer(t)
	s.register(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["requiresVerification"])
	assert.Equal(t, "email", body["verificationType"])
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginEndpoint_FullFlow(t *testing.T) {
	s := newTestServer(t)
	s.register(t)
	s.verifyViaDB(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "/dashboard", data["redirectTo"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, testEmail, user["email"])

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestLoginEndpoint_BadCredentialsLookIdentical(t *testing.T) {
	s := newTestServer(t)
	s.register(t)
	s.verifyViaDB(t)

	wrongPass := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    testEmail,
		"password": "wrong-password",
	})
	unknownUser := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestLoginEndpoint_With2FA(t *testing.T) {
	s := newTestServer(t)
	s.register(t)
	s.verifyViaDB(t)

	user, err := s.users.GetByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	user.TwoFAEnabled = true
	require.NoError(t, s.users.Update(context.Background(), user))

	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["require2FA"])
	assert.Equal(t, "email", body["twoFAMethod"])
	assert.Empty(t, rec.Result().Cookies(), "no session before the code is verified")

	// Wrong code is rejected and keeps the challenge alive.
	pending, err := s.users.GetByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	wrong := "000000"
	if *pending.TwoFACode == wrong {
		wrong = "000001"
	}
	rec = s.do(t, http.MethodPost, "/api/auth/verify-2fa", gin.H{
		"email": testEmail,
		"code":  wrong,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/verify-2fa", gin.H{
		"email": testEmail,
		"code":  *pending.TwoFACode,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotEmpty(t, rec.Result().Cookies())
}

func TestMeEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.register(t)
	s.verifyViaDB(t)
	token := s.login(t)

	// Cookie and bearer header both authenticate the same session.
	for name, modify := range map[string]func(*http.Request){
		"cookie": withCookie(token),
		"bearer": withBearer(token),
	} {
		rec := s.do(t, http.MethodGet, "/api/auth/me", nil, modify)
		require.Equal(t, http.StatusOK, rec.Code, name)

		body := decodeBody(t, rec)
		user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
		assert.Equal(t, testEmail, user["email"], name)
	}

	rec := s.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint_Idempotent(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodPost, "/api/auth/logout", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var cleared bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == "token" && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "logout should expire the session cookie")
	}
}

func TestRefreshTokenEndpoint_Stub(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/auth/refresh-token", gin.H{"refreshToken": "anything"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not implemented yet")
}

func TestForgotPasswordEndpoint_GenericAck(t *testing.T) {
	s := newTestServer(t)
	s.register(t)

	known := s.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": testEmail})
	unknown := s.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "nobody@example.com"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestResetPasswordEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.register(t)
	s.verifyViaDB(t)

	rec := s.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": testEmail})
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := s.users.GetByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	require.NotNil(t, user.PasswordResetToken)

	rec = s.do(t, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":    *user.PasswordResetToken,
		"password": "brand-new-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Old password is dead, the new one logs in.
	rec = s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    testEmail,
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    testEmail,
		"password": "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// The consumed token cannot be replayed.
	rec = s.do(t, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":    *user.PasswordResetToken,
		"password": "yet-another-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResendEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.register(t)

	before, err := s.users.GetByEmail(context.Background(), testEmail)
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/auth/resend-email", gin.H{"email": testEmail})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/auth/resend-sms", gin.H{"phone": testPhone})
	require.Equal(t, http.StatusOK, rec.Code)

	after, err := s.users.GetByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	assert.NotEqual(t, *before.EmailVerificationToken, *after.EmailVerificationToken)
	assert.NotEqual(t, *before.PhoneVerificationCode, *after.PhoneVerificationCode)
}
