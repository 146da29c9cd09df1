package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehrabhossain1/midwife-backend/internal/http/handlers/common"
	"github.com/mehrabhossain1/midwife-backend/internal/models"
	"github.com/mehrabhossain1/midwife-backend/internal/service"
)

// AuthHandler is the HTTP layer for registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates the handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type geoLocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// Register handles POST /api/v1/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name            string             `json:"name" binding:"required"`
		Email           string             `json:"email" binding:"required"`
		Password        string             `json:"password" binding:"required"`
		ConfirmPassword string             `json:"confirmPassword" binding:"required"`
		Location        geoLocationRequest `json:"location" binding:"required"`
		Institution     string             `json:"institution" binding:"required"`
		Designation     *string            `json:"designation"`
		MobileNumber    string             `json:"mobileNumber" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Location:        models.GeoLocation{Lat: *req.Location.Lat, Lng: *req.Location.Lng},
		Institution:     req.Institution,
		Designation:     req.Designation,
		MobileNumber:    req.MobileNumber,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}

// Login handles POST /api/v1/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.Claims,
	})
}
