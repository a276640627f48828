package delivery

import (
	"net/http"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/middleware"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports domain.ReportUseCase
}

func NewReportHandler(router *gin.Engine, reports domain.ReportUseCase, jwtManager *utils.JWTManager) *ReportHandler {
	h := &ReportHandler{reports: reports}

	group := router.Group("/api/reports", middleware.Authenticate(jwtManager))
	{
		group.GET("/summary", h.GetSummary)
	}

	return h
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reports.GetSummary(c.Request.Context())
	if err != nil {
		RespondError(c, "report-summary", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": summary})
}
