package controllers

import (
	"github.com/dishiq/dishiq-api/config"
	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/store"
	"github.com/dishiq/dishiq-api/utils"
	"github.com/gin-gonic/gin"
)

// blacklist holds the registration blacklist loaded at startup
var blacklist []string

// Init wires startup configuration into the controller layer
func Init(cfg *config.Config) {
	blacklist = cfg.BlacklistedEmails
}

// SetBlacklist replaces the registration blacklist (primarily for testing)
func SetBlacklist(emails []string) {
	blacklist = emails
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser handles POST /api/v1/users - registers a visitor, chef, or
// manager in the registry. Customers are not created here; they enter the
// system through registration approval.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	registry := store.Default()
	var user models.User
	switch models.UserRole(req.Role) {
	case models.RoleVisitor:
		userID := req.UserID
		if userID == "" {
			userID = utils.NewID("V")
		}
		user = models.NewVisitor(userID, req.Username, req.Email)
	case models.RoleChef:
		userID := req.UserID
		if userID == "" {
			userID = utils.NewID("CH")
		}
		user = models.NewChef(userID, req.Username, req.Email)
	case models.RoleManager:
		userID := req.UserID
		if userID == "" {
			userID = utils.NewID("MG")
		}
		user = models.NewManager(userID, req.Username, req.Email)
	default:
		respondBadRequest(c, "Role must be visitor, chef, or manager", nil)
		return
	}

	if _, exists := registry.GetUser(user.ID()); exists {
		respondBadRequest(c, "User id already exists", nil)
		return
	}

	registry.PutUser(user)
	respondCreated(c, user)
}

// GetUser handles GET /api/v1/users/:id
func GetUser(c *gin.Context) {
	user, ok := store.Default().GetUser(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "User not found")
		return
	}
	respondOK(c, user)
}

// RegistrationRequest represents the request body for a visitor's
// registration application
type RegistrationRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ApplyForRegistration handles POST /api/v1/visitors/:id/registration
func ApplyForRegistration(c *gin.Context) {
	registry := store.Default()
	visitor, ok := registry.GetVisitor(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Visitor not found")
		return
	}
	if !actorMatches(c, visitor.UserID) {
		respondForbidden(c, "Visitors may only apply with their own account")
		return
	}

	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	var application models.RegistrationApplication
	err := registry.Serialize(func() error {
		var err error
		application, err = visitor.ApplyForRegistration(req.FullName, req.Phone, req.Address, req.Password, blacklist)
		if err == nil {
			registry.SaveUser(visitor)
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, application)
}

// DepositRequest represents the request body for deposits and withdrawals
type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// DepositFunds handles POST /api/v1/customers/:id/deposits
func DepositFunds(c *gin.Context) {
	registry := store.Default()
	customer, ok := registry.GetCustomer(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Customer not found")
		return
	}
	if !actorMatches(c, customer.UserID) {
		respondForbidden(c, "Customers may only manage their own funds")
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	var balance float64
	err := registry.Serialize(func() error {
		var err error
		balance, err = customer.DepositFunds(req.Amount)
		if err == nil {
			registry.SaveUser(mustUser(registry, customer.UserID))
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"balance": balance})
}

// WithdrawFunds handles POST /api/v1/customers/:id/withdrawals
func WithdrawFunds(c *gin.Context) {
	registry := store.Default()
	customer, ok := registry.GetCustomer(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Customer not found")
		return
	}
	if !actorMatches(c, customer.UserID) {
		respondForbidden(c, "Customers may only manage their own funds")
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	var balance float64
	err := registry.Serialize(func() error {
		var err error
		balance, err = customer.WithdrawFunds(req.Amount)
		if err == nil {
			registry.SaveUser(mustUser(registry, customer.UserID))
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"balance": balance})
}

// mustUser fetches the stored user record for re-snapshotting after a
// mutation; the record is known to exist at this point.
func mustUser(registry *store.Registry, userID string) models.User {
	user, _ := registry.GetUser(userID)
	return user
}
