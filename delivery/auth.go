package delivery

import (
	"net/http"
	"os"
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/dto"
	"github.com/anchordtai/Cooperative-Management-Software/middleware"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "token"

const sessionCookieMaxAge = int(24 * time.Hour / time.Second)

type AuthHandler struct {
	auth domain.AuthUseCase
}

// NewAuthHandler registers the authentication routes. The rate limiter may be
// nil, in which case the per-endpoint budgets are not enforced.
func NewAuthHandler(router *gin.Engine, auth domain.AuthUseCase, limiter *middleware.RateLimiter) *AuthHandler {
	h := &AuthHandler{auth: auth}

	group := router.Group("/api/auth")
	{
		group.POST("/register", limiter.Limit("register", middleware.RuleRegister), h.Register)
		group.GET("/verify-email", limiter.Limit("verify", middleware.RuleVerify), h.VerifyEmail)
		group.POST("/verify-phone", limiter.Limit("verify", middleware.RuleVerify), h.VerifyPhone)
		group.POST("/resend-email", limiter.Limit("resend", middleware.RuleResend), h.ResendEmail)
		group.POST("/resend-sms", limiter.Limit("resend", middleware.RuleResend), h.ResendSMS)
		group.POST("/login", limiter.Limit("login", middleware.RuleLogin), h.Login)
		group.POST("/verify-2fa", limiter.Limit("verify", middleware.RuleVerify), h.Verify2FA)
		group.POST("/logout", h.Logout)
		group.POST("/refresh-token", h.RefreshToken)
		group.POST("/forgot-password", limiter.Limit("forgot-password", middleware.RuleForgotPassword), h.ForgotPassword)
		group.POST("/reset-password", limiter.Limit("forgot-password", middleware.RuleForgotPassword), h.ResetPassword)
		group.GET("/me", middleware.Authenticate(auth.GetAccessTokenManager()), h.Me)
	}

	return h
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "register", err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		RespondError(c, "register", &req.Email, err)
		return
	}

	utils.LogOutcome(&user.Email, http.StatusCreated, "register", nil)
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Registration successful. Please verify your email and phone number.",
		"data": gin.H{
			"email":                user.Email,
			"phone":                user.Phone,
			"firstName":            user.FirstName,
			"lastName":             user.LastName,
			"requiresVerification": true,
			"nextStep":             "verify-account",
		},
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Verification token is required"})
		return
	}

	if err := h.auth.VerifyEmail(c.Request.Context(), token); err != nil {
		RespondError(c, "verify-email", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "verify-email", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Email verified successfully."})
}

func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	var req dto.VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "verify-phone", err)
		return
	}

	if err := h.auth.VerifyPhone(c.Request.Context(), req.Phone, req.Code); err != nil {
		RespondError(c, "verify-phone", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "verify-phone", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Phone number verified successfully."})
}

func (h *AuthHandler) ResendEmail(c *gin.Context) {
	var req dto.ResendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "resend-email", err)
		return
	}

	if err := h.auth.ResendEmail(c.Request.Context(), req.Email); err != nil {
		RespondError(c, "resend-email", &req.Email, err)
		return
	}

	utils.LogOutcome(&req.Email, http.StatusOK, "resend-email", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Verification email sent."})
}

func (h *AuthHandler) ResendSMS(c *gin.Context) {
	var req dto.ResendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "resend-sms", err)
		return
	}

	if err := h.auth.ResendSMS(c.Request.Context(), req.Phone); err != nil {
		RespondError(c, "resend-sms", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "resend-sms", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Verification code sent."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "login", err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, req.TwoFAMethod)
	if err != nil {
		RespondError(c, "login", &req.Email, err)
		return
	}

	if result.Require2FA {
		utils.LogOutcome(&req.Email, http.StatusOK, "login-2fa-challenge", nil)
		c.JSON(http.StatusOK, gin.H{
			"require2FA":  true,
			"message":     "2FA code sent via " + result.TwoFAMethod,
			"twoFAMethod": result.TwoFAMethod,
		})
		return
	}

	h.setSessionCookie(c, result.Token)
	utils.LogOutcome(&req.Email, http.StatusOK, "login", nil)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"user":       result.User,
			"redirectTo": result.RedirectTo,
		},
	})
}

func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req dto.Verify2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "verify-2fa", err)
		return
	}

	result, err := h.auth.Verify2FA(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		RespondError(c, "verify-2fa", &req.Email, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	utils.LogOutcome(&req.Email, http.StatusOK, "verify-2fa", nil)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"user":       result.User,
			"redirectTo": result.RedirectTo,
		},
	})
}

// Logout clears the session cookie. It succeeds whether or not a session
// existed.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", secureCookies(), true)
	utils.LogOutcome(nil, http.StatusOK, "logout", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Logged out successfully"})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Token refresh not implemented yet"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "forgot-password", err)
		return
	}

	if req.Email != "" {
		if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
			RespondError(c, "forgot-password", &req.Email, err)
			return
		}
	}

	// Same acknowledgement whether or not the account exists.
	utils.LogOutcome(&req.Email, http.StatusOK, "forgot-password", nil)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "If that email exists, a reset link has been sent.",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "reset-password", err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		RespondError(c, "reset-password", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "reset-password", nil)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password reset successful. You can now log in.",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, "me", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user}})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, sessionCookieMaxAge, "/", "", secureCookies(), true)
}

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}
