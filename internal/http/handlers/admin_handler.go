package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mehrabhossain1/midwife-backend/internal/http/handlers/common"
	"github.com/mehrabhossain1/midwife-backend/internal/service"
)

// AdminHandler is the HTTP layer for administrative account triage.
type AdminHandler struct {
	users *service.UserService
}

// NewAdminHandler creates the handler.
func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// VerifyUser handles PATCH /api/v1/admin/verify-user/:email.
// Without a body the flag is set to true; the operation is idempotent.
func (h *AdminHandler) VerifyUser(c *gin.Context) {
	email := c.Param("email")

	var req struct {
		IsVerified *bool `json:"isVerified"`
	}
	isVerified := true
	if err := c.ShouldBindJSON(&req); err == nil && req.IsVerified != nil {
		isVerified = *req.IsVerified
	}

	if err := h.users.SetVerification(c.Request.Context(), email, isVerified); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User verification updated"})
}

// BlockUser handles PATCH /api/v1/admin/block-user/:email.
// Both flags are required and applied in one atomic update.
func (h *AdminHandler) BlockUser(c *gin.Context) {
	email := c.Param("email")

	var req struct {
		IsBlocked  *bool `json:"isBlocked" binding:"required"`
		IsVerified *bool `json:"isVerified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.users.SetBlockedAndVerified(c.Request.Context(), email, *req.IsBlocked, *req.IsVerified); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(users),
		"users": users,
	})
}

// DeleteUser handles DELETE /api/v1/admin/users. The target email comes in
// the request body; a missing email is a validation failure.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	// A missing body is treated the same as a missing email.
	_ = c.ShouldBindJSON(&req)

	if err := h.users.Delete(c.Request.Context(), req.Email); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// RecentUsers handles GET /api/v1/admin/recent-users.
func (h *AdminHandler) RecentUsers(c *gin.Context) {
	windows, err := h.users.RecentWindows(c.Request.Context(), time.Now().UTC())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}
