package controllers

import (
	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/store"
	"github.com/dishiq/dishiq-api/utils"
	"github.com/gin-gonic/gin"
)

// SubmitFeedbackRequest represents the request body for filing feedback
type SubmitFeedbackRequest struct {
	FeedbackType string `json:"feedback_type" binding:"required"`
	TargetType   string `json:"target_type" binding:"required"`
	TargetID     string `json:"target_id" binding:"required"`
	Content      string `json:"content" binding:"required"`
}

// SubmitFeedback handles POST /api/v1/customers/:id/feedback (customers only)
func SubmitFeedback(c *gin.Context) {
	registry := store.Default()
	customer, ok := registry.GetCustomer(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Customer not found")
		return
	}
	if !actorMatches(c, customer.UserID) {
		respondForbidden(c, "Customers may only file feedback with their own account")
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	feedbackType := models.FeedbackType(req.FeedbackType)
	if feedbackType != models.FeedbackComplaint && feedbackType != models.FeedbackCompliment {
		respondBadRequest(c, "feedback_type must be complaint or compliment", nil)
		return
	}
	if req.TargetType != models.FeedbackTargetCustomer && req.TargetType != models.FeedbackTargetChef {
		respondBadRequest(c, "target_type must be customer or chef", nil)
		return
	}

	var fb *models.Feedback
	err := registry.Serialize(func() error {
		fb = models.NewFeedback(
			utils.NewID("F"),
			customer.UserID,
			feedbackType,
			req.TargetType,
			req.TargetID,
			req.Content,
			customer.Role == models.RoleVIPCustomer,
		)
		registry.PutFeedback(fb)
		customer.FeedbackSubmitted = append(customer.FeedbackSubmitted, fb)
		if req.TargetType == models.FeedbackTargetChef {
			if chef, ok := registry.GetChef(req.TargetID); ok {
				chef.FeedbackReceived = append(chef.FeedbackReceived, fb)
				registry.SaveUser(chef)
			}
		}
		registry.SaveUser(mustUser(registry, customer.UserID))
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, fb)
}

// RespondToFeedbackRequest represents the manager's response body
type RespondToFeedbackRequest struct {
	Response string `json:"response" binding:"required"`
}

// RespondToFeedback handles POST /api/v1/feedback/:id/response (managers only)
func RespondToFeedback(c *gin.Context) {
	registry := store.Default()
	fb, ok := registry.GetFeedback(c.Param("id"))
	if !ok {
		respondNotFound(c, "FEEDBACK_NOT_FOUND", "Feedback not found")
		return
	}

	var req RespondToFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	_ = registry.Serialize(func() error {
		fb.AddResponse(req.Response)
		registry.SaveFeedback(fb)
		return nil
	})

	respondOK(c, fb)
}

// CancelWithCompliment handles POST /api/v1/feedback/:id/cancel-with-compliment.
// The cancellation is one-shot; a repeat call reports cancelled=false.
func CancelWithCompliment(c *gin.Context) {
	registry := store.Default()
	fb, ok := registry.GetFeedback(c.Param("id"))
	if !ok {
		respondNotFound(c, "FEEDBACK_NOT_FOUND", "Feedback not found")
		return
	}

	var cancelled bool
	_ = registry.Serialize(func() error {
		cancelled = fb.CancelWithCompliment()
		if cancelled {
			registry.SaveFeedback(fb)
		}
		return nil
	})

	respondOK(c, gin.H{"cancelled": cancelled, "feedback": fb})
}

// ChefFeedback handles GET /api/v1/chefs/:id/feedback (chefs only)
func ChefFeedback(c *gin.Context) {
	registry := store.Default()
	chef, ok := registry.GetChef(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Chef not found")
		return
	}
	if !actorMatches(c, chef.UserID) {
		respondForbidden(c, "Chefs may only view their own feedback")
		return
	}
	respondOK(c, chef.ViewFeedback())
}
