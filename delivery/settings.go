package delivery

import (
	"net/http"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/dto"
	"github.com/anchordtai/Cooperative-Management-Software/middleware"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings domain.SettingsUseCase
}

// NewSettingsHandler registers the cooperative settings routes. Anyone
// authenticated may read them; only admins may change them.
func NewSettingsHandler(router *gin.Engine, settings domain.SettingsUseCase, jwtManager *utils.JWTManager) *SettingsHandler {
	h := &SettingsHandler{settings: settings}

	group := router.Group("/api/settings", middleware.Authenticate(jwtManager))
	{
		group.GET("", h.Get)
		group.PUT("", middleware.RestrictTo(domain.RoleAdmin), h.Update)
	}

	return h
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.GetSettings(c.Request.Context())
	if err != nil {
		RespondError(c, "get-settings", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": settings})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "update-settings", err)
		return
	}

	settings, err := h.settings.UpdateSettings(c.Request.Context(), req.ToInput())
	if err != nil {
		RespondError(c, "update-settings", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "update-settings", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": settings})
}
