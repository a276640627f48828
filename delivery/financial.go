package delivery

import (
	"math"
	"net/http"
	"strconv"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/dto"
	"github.com/anchordtai/Cooperative-Management-Software/middleware"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
)

type FinancialHandler struct {
	transactions domain.TransactionUseCase
	loans        domain.LoanUseCase
}

// NewFinancialHandler registers the transaction ledger and loan routes under
// /api/financial and /api/transactions.
func NewFinancialHandler(router *gin.Engine, transactions domain.TransactionUseCase, loans domain.LoanUseCase, jwtManager *utils.JWTManager) *FinancialHandler {
	h := &FinancialHandler{transactions: transactions, loans: loans}

	auth := middleware.Authenticate(jwtManager)

	txGroup := router.Group("/api/transactions", auth)
	{
		txGroup.GET("", h.GetAllTransactions)
		txGroup.GET("/:id", h.GetTransactionByID)
		txGroup.POST("", h.CreateTransaction)
	}

	finGroup := router.Group("/api/financial", auth)
	{
		finGroup.GET("/my-loans", h.GetMyLoans)
		finGroup.GET("/loans", h.GetAllLoans)
		finGroup.GET("/loans/:id", h.GetLoanByID)
		finGroup.POST("/loans", h.CreateLoan)
		finGroup.PUT("/loans/:id", h.UpdateLoan)
		finGroup.PATCH("/loans/:id/approve", h.ApproveLoan)
		finGroup.PATCH("/loans/:id/reject", h.RejectLoan)
	}

	return h
}

func (h *FinancialHandler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "create-transaction", err)
		return
	}

	tx, err := h.transactions.CreateTransaction(c.Request.Context(), req.MemberID, req.Type, req.Amount, req.Description)
	if err != nil {
		RespondError(c, "create-transaction", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusCreated, "create-transaction", nil)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": tx})
}

func (h *FinancialHandler) GetAllTransactions(c *gin.Context) {
	filter := domain.TransactionFilter{
		Type:     c.Query("type"),
		MemberID: c.Query("memberId"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}

	items, total, err := h.transactions.GetAllTransactions(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, "list-transactions", nil, err)
		return
	}

	c.JSON(http.StatusOK, pagedResponse(items, total, filter.Page, filter.Limit))
}

func (h *FinancialHandler) GetTransactionByID(c *gin.Context) {
	tx, err := h.transactions.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, "get-transaction", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": tx})
}

func (h *FinancialHandler) CreateLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "create-loan", err)
		return
	}

	loan, err := h.loans.CreateLoan(c.Request.Context(), req.ToInput())
	if err != nil {
		RespondError(c, "create-loan", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusCreated, "create-loan", nil)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": loan})
}

func (h *FinancialHandler) GetAllLoans(c *gin.Context) {
	filter := domain.LoanFilter{
		Status:   c.Query("status"),
		MemberID: c.Query("memberId"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}

	items, total, err := h.loans.GetAllLoans(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, "list-loans", nil, err)
		return
	}

	c.JSON(http.StatusOK, pagedResponse(items, total, filter.Page, filter.Limit))
}

// GetMyLoans returns the loans of the member record linked to the
// authenticated user.
func (h *FinancialHandler) GetMyLoans(c *gin.Context) {
	loans, err := h.loans.GetLoansForUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		RespondError(c, "my-loans", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(loans),
		"data":    loans,
	})
}

func (h *FinancialHandler) GetLoanByID(c *gin.Context) {
	loan, err := h.loans.GetLoanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, "get-loan", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": loan})
}

func (h *FinancialHandler) UpdateLoan(c *gin.Context) {
	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "update-loan", err)
		return
	}

	loan, err := h.loans.UpdateLoan(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		RespondError(c, "update-loan", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "update-loan", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": loan})
}

func (h *FinancialHandler) ApproveLoan(c *gin.Context) {
	loan, err := h.loans.ApproveLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, "approve-loan", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "approve-loan", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": loan})
}

func (h *FinancialHandler) RejectLoan(c *gin.Context) {
	loan, err := h.loans.RejectLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, "reject-loan", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "reject-loan", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": loan})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func pagedResponse[T any](items []T, total int64, page, limit int) gin.H {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = int64(math.Ceil(float64(total) / float64(limit)))
	}
	return gin.H{
		"status":      "success",
		"results":     total,
		"totalPages":  totalPages,
		"currentPage": page,
		"data":        items,
	}
}
