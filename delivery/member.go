package delivery

import (
	"net/http"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/anchordtai/Cooperative-Management-Software/dto"
	"github.com/anchordtai/Cooperative-Management-Software/middleware"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	members domain.MemberUseCase
}

// NewMemberHandler registers the member registry routes, all behind a
// session.
func NewMemberHandler(router *gin.Engine, members domain.MemberUseCase, jwtManager *utils.JWTManager) *MemberHandler {
	h := &MemberHandler{members: members}

	group := router.Group("/api/members", middleware.Authenticate(jwtManager))
	{
		group.GET("", h.GetAll)
		group.GET("/:id", h.GetByID)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}

	return h
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "create-member", err)
		return
	}

	member := req.ToMember()
	if err := h.members.CreateMember(c.Request.Context(), member); err != nil {
		RespondError(c, "create-member", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusCreated, "create-member", nil)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": member})
}

func (h *MemberHandler) GetAll(c *gin.Context) {
	members, err := h.members.GetAllMembers(c.Request.Context())
	if err != nil {
		RespondError(c, "list-members", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(members),
		"data":    members,
	})
}

func (h *MemberHandler) GetByID(c *gin.Context) {
	member, err := h.members.GetMemberByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, "get-member", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": member})
}

func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, "update-member", err)
		return
	}

	member, err := h.members.UpdateMember(c.Request.Context(), req.ToMember(c.Param("id")))
	if err != nil {
		RespondError(c, "update-member", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "update-member", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": member})
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.members.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, "delete-member", nil, err)
		return
	}

	utils.LogOutcome(nil, http.StatusOK, "delete-member", nil)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Member deleted successfully"})
}
