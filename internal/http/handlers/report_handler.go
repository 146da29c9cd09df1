package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mehrabhossain1/midwife-backend/internal/http/handlers/common"
	"github.com/mehrabhossain1/midwife-backend/internal/models"
	"github.com/mehrabhossain1/midwife-backend/internal/service"
)

// ReportHandler is the HTTP layer for incident reports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates the handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Submit handles POST /api/v1/reports.
func (h *ReportHandler) Submit(c *gin.Context) {
	var req struct {
		Name         string             `json:"name" binding:"required"`
		MobileNumber string             `json:"mobileNumber" binding:"required"`
		Address      string             `json:"address" binding:"required"`
		Location     geoLocationRequest `json:"location" binding:"required"`
		Cause        string             `json:"cause" binding:"required"`
		OtherCause   *string            `json:"otherCause"`
		CreatedAt    *time.Time         `json:"createdAt"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.reports.Submit(c.Request.Context(), service.SubmitInput{
		Name:         req.Name,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
		Location:     models.GeoLocation{Lat: *req.Location.Lat, Lng: *req.Location.Lng},
		Cause:        req.Cause,
		OtherCause:   req.OtherCause,
		CreatedAt:    req.CreatedAt,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report submitted",
		"report":  report,
	})
}

// List handles GET /api/v1/reports.
func (h *ReportHandler) List(c *gin.Context) {
	result, err := h.reports.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Resolve handles PATCH /api/v1/reports/:reportId.
func (h *ReportHandler) Resolve(c *gin.Context) {
	var req struct {
		IsSolved   bool   `json:"isSolved"`
		Solution   string `json:"solution"`
		SolverName string `json:"solverName"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.reports.Resolve(c.Request.Context(), c.Param("reportId"), service.ResolveInput{
		IsSolved:   req.IsSolved,
		Solution:   req.Solution,
		SolverName: req.SolverName,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report resolved",
		"report":  report,
	})
}
