package delivery

import (
	"errors"
	"net/http"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RespondError is the single place where error kinds become HTTP responses.
// It logs the outcome and writes a user-safe message; anything unrecognized
// is a 500 with a translated database message.
func RespondError(c *gin.Context, operation string, subject *string, err error) {
	status, body := classify(err)
	utils.LogOutcome(subject, status, operation, err)
	c.JSON(status, body)
}

// RespondBindingError handles ShouldBindJSON failures: malformed JSON and
// validation tag violations both map to 400.
func RespondBindingError(c *gin.Context, operation string, err error) {
	utils.LogOutcome(nil, http.StatusBadRequest, operation, err)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request body",
	})
}

func classify(err error) (int, gin.H) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Message}
	}

	var verificationErr *domain.VerificationRequiredError
	if errors.As(err, &verificationErr) {
		return http.StatusForbidden, gin.H{
			"message":              verificationErr.Error(),
			"requiresVerification": true,
			"verificationType":     verificationErr.Channel,
		}
	}

	switch {
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusBadRequest, gin.H{"success": false, "message": "Email already in use"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, gin.H{"success": false, "message": "Record not found"}
	case errors.Is(err, domain.ErrInvalidOrExpiredToken),
		errors.Is(err, domain.ErrNoPendingCode),
		errors.Is(err, domain.ErrInvalid2FACode),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrLoanNotPending):
		return http.StatusBadRequest, gin.H{"success": false, "message": err.Error()}
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidSession):
		return http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, gin.H{"success": false, "message": err.Error()}
	}

	return http.StatusInternalServerError, gin.H{
		"success": false,
		"message": utils.TranslateDBError(err),
	}
}
