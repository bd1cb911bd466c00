package controllers

import (
	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/store"
	"github.com/gin-gonic/gin"
)

// managerFromPath resolves the manager the route is addressed to and checks
// the acting user is that manager
func managerFromPath(c *gin.Context) (*models.Manager, bool) {
	manager, ok := store.Default().GetManager(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Manager not found")
		return nil, false
	}
	if !actorMatches(c, manager.UserID) {
		respondForbidden(c, "Managers may only act through their own account")
		return nil, false
	}
	return manager, true
}

// ReviewFeedbackRequest optionally narrows the review to specific feedback ids
type ReviewFeedbackRequest struct {
	FeedbackIDs []string `json:"feedback_ids"`
}

// ReviewFeedback handles POST /api/v1/managers/:id/review-feedback (managers
// only). Complaints against customers add warnings and suspend at the
// threshold; compliments bump the compliment counter.
func ReviewFeedback(c *gin.Context) {
	registry := store.Default()
	manager, ok := managerFromPath(c)
	if !ok {
		return
	}

	var req ReviewFeedbackRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request data", err)
			return
		}
	}

	var reviewed []*models.Feedback
	if len(req.FeedbackIDs) == 0 {
		reviewed = registry.AllFeedback()
	} else {
		for _, id := range req.FeedbackIDs {
			fb, ok := registry.GetFeedback(id)
			if !ok {
				respondNotFound(c, "FEEDBACK_NOT_FOUND", "Feedback "+id+" not found")
				return
			}
			reviewed = append(reviewed, fb)
		}
	}

	_ = registry.Serialize(func() error {
		customers := registry.Customers()
		manager.ReviewFeedback(reviewed, customers)
		for id := range customers {
			registry.SaveUser(mustUser(registry, id))
		}
		return nil
	})

	respondOK(c, gin.H{"reviewed": len(reviewed)})
}

// HRActionRequest represents the request body for an HR action
type HRActionRequest struct {
	TargetID string `json:"target_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// PerformHRAction handles POST /api/v1/managers/:id/hr-actions (managers
// only). A promote that yields a VIP variant replaces the stored record.
func PerformHRAction(c *gin.Context) {
	registry := store.Default()
	manager, ok := managerFromPath(c)
	if !ok {
		return
	}

	var req HRActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	target, ok := registry.GetUser(req.TargetID)
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Target user not found")
		return
	}

	var stored models.User
	err := registry.Serialize(func() error {
		replacement, err := manager.PerformHRAction(target, req.Action)
		if err != nil {
			return err
		}
		stored = target
		if replacement != nil {
			// Promotion is copy-based; storing the returned variant is
			// this call site's decision.
			registry.PutUser(replacement)
			stored = replacement
		} else {
			registry.SaveUser(target)
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, stored)
}

// CloseAccountRequest represents the request body for an account closure
type CloseAccountRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

// CloseAccount handles POST /api/v1/managers/:id/account-closures (managers only)
func CloseAccount(c *gin.Context) {
	registry := store.Default()
	manager, ok := managerFromPath(c)
	if !ok {
		return
	}

	var req CloseAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	target, ok := registry.GetUser(req.TargetID)
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Target user not found")
		return
	}

	err := registry.Serialize(func() error {
		err := manager.CloseAccount(target)
		if err == nil {
			registry.SaveUser(target)
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateMenuCache(c)
	respondOK(c, target)
}

// ListApplications handles GET /api/v1/managers/:id/applications (managers
// only) - returns the pending registration applications
func ListApplications(c *gin.Context) {
	registry := store.Default()
	if _, ok := managerFromPath(c); !ok {
		return
	}

	applications := make([]models.RegistrationApplication, 0)
	for _, user := range registry.AllUsers() {
		if visitor, ok := user.(*models.Visitor); ok && visitor.Application != nil && visitor.Application.Status == "pending" {
			applications = append(applications, *visitor.Application)
		}
	}

	respondOK(c, applications)
}

// ApproveApplication handles POST /api/v1/managers/:id/applications/:visitorID/approve
// (managers only) - turns a pending application into a live customer account
// under the applicant's existing user id
func ApproveApplication(c *gin.Context) {
	registry := store.Default()
	if _, ok := managerFromPath(c); !ok {
		return
	}

	visitor, ok := registry.GetVisitor(c.Param("visitorID"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Visitor not found")
		return
	}
	if visitor.Application == nil || visitor.Application.Status != "pending" {
		respondBadRequest(c, "Visitor has no pending application", nil)
		return
	}

	var customer *models.Customer
	_ = registry.Serialize(func() error {
		app := visitor.Application
		app.Status = "approved"
		customer = models.NewCustomer(
			visitor.UserID,
			app.Username,
			app.Email,
			app.FullName,
			app.Phone,
			app.Address,
			app.PasswordHash,
		)
		registry.PutUser(customer)
		return nil
	})

	respondCreated(c, customer)
}
