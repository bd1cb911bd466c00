package controllers

import (
	"errors"
	"net/http"

	"github.com/dishiq/dishiq-api/models"
	"github.com/gin-gonic/gin"
)

// respondOK writes the standard success envelope
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondCreated writes the success envelope with a 201 status
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError maps a core failure kind to a transport status and the
// standard error envelope
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, models.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, models.ErrInsufficientFunds):
		status, code = http.StatusPaymentRequired, "INSUFFICIENT_FUNDS"
	case errors.Is(err, models.ErrUnauthorized):
		status, code = http.StatusForbidden, "UNAUTHORIZED"
	case errors.Is(err, models.ErrDuplicateRegistration):
		status, code = http.StatusConflict, "DUPLICATE_REGISTRATION"
	case errors.Is(err, models.ErrBlacklisted):
		status, code = http.StatusForbidden, "BLACKLISTED"
	case errors.Is(err, models.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, models.ErrInvalidStateTransition):
		status, code = http.StatusConflict, "INVALID_STATE"
	}
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

// respondBadRequest writes a request-level validation failure
func respondBadRequest(c *gin.Context, message string, err error) {
	body := gin.H{
		"code":    "VALIDATION_ERROR",
		"message": message,
	}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   body,
	})
}

// respondNotFound writes a lookup failure for the given entity kind
func respondNotFound(c *gin.Context, code, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondForbidden writes a permission failure
func respondForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": message,
		},
	})
}
