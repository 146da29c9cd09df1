package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mehrabhossain1/midwife-backend/internal/apperror"
	"github.com/mehrabhossain1/midwife-backend/internal/http/middleware"
	"github.com/mehrabhossain1/midwife-backend/internal/logger"
)

// CurrentEmail extracts the authenticated email from the Gin context.
func CurrentEmail(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.ContextEmailKey)
	if !exists {
		return "", false
	}
	email, ok := raw.(string)
	return email, ok && email != ""
}

// RespondError maps a registry error to a status code and a stable message.
// Anything outside the typed taxonomy is logged and reported as a generic
// 500; internal detail never reaches the caller.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperror.ErrCodeStorage && logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("storage error")
		}
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
		return
	}

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("unexpected error")
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// RespondBadRequest sends a 400 with the given message.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
