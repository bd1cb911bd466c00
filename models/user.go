package models

import (
	"fmt"
	"time"

	"github.com/dishiq/dishiq-api/utils"
)

// Capability action names. The API layer authorizes requests against these
// before invoking core operations.
const (
	ActionBrowseMenu           = "browse_menu"
	ActionApplyForRegistration = "apply_for_registration"
	ActionPlaceOrder           = "place_order"
	ActionRateDish             = "rate_dish"
	ActionDepositFunds         = "deposit_funds"
	ActionWithdrawFunds        = "withdraw_funds"
	ActionVIPDiscount          = "vip_discount"
	ActionEarlyAccess          = "early_access"
	ActionCreateMenuItem       = "create_menu_item"
	ActionUpdateMenuItem       = "update_menu_item"
	ActionViewFeedback         = "view_feedback"
	ActionReviewFeedback       = "review_feedback"
	ActionPerformHRAction      = "perform_hr_action"
	ActionCloseAccount         = "close_account"
)

// rolePermissions is the fixed capability set per role. Membership here is
// the entire permission model; there is no per-user grant.
var rolePermissions = map[UserRole][]string{
	RoleVisitor:  {ActionBrowseMenu, ActionApplyForRegistration},
	RoleCustomer: {ActionPlaceOrder, ActionRateDish, ActionDepositFunds, ActionWithdrawFunds},
	RoleVIPCustomer: {
		ActionPlaceOrder, ActionRateDish, ActionDepositFunds, ActionWithdrawFunds,
		ActionVIPDiscount, ActionEarlyAccess,
	},
	RoleChef:    {ActionCreateMenuItem, ActionUpdateMenuItem, ActionViewFeedback},
	RoleManager: {ActionReviewFeedback, ActionPerformHRAction, ActionCloseAccount},
}

// Identity is the shared record every user variant carries.
type Identity struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newIdentity(userID, username, email string, role UserRole) Identity {
	identity := Identity{
		UserID:    userID,
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	emit(userID, "user.created", map[string]any{"role": string(role), "username": username})
	return identity
}

// ID returns the unique, immutable user id.
func (i *Identity) ID() string { return i.UserID }

// GetRole returns the current role tag.
func (i *Identity) GetRole() UserRole { return i.Role }

// Permissions returns the capability set for the user's current role.
func (i *Identity) Permissions() []string {
	return rolePermissions[i.Role]
}

// HasPermission is a pure membership test against the role's capability set.
func (i *Identity) HasPermission(action string) bool {
	for _, allowed := range i.Permissions() {
		if allowed == action {
			return true
		}
	}
	return false
}

// User is satisfied by every role variant through its embedded Identity.
type User interface {
	ID() string
	GetRole() UserRole
	Permissions() []string
	HasPermission(action string) bool
}

// RegistrationApplication is the pending application a visitor submits.
type RegistrationApplication struct {
	ApplicantID     string    `json:"applicant_id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	PasswordHash    string    `json:"password_hash"`
	ApplicationDate time.Time `json:"application_date"`
	Status          string    `json:"status"`
}

// Visitor is a non-registered user browsing menus.
type Visitor struct {
	Identity
	Application *RegistrationApplication `json:"application,omitempty"`
}

// NewVisitor creates a visitor with no pending application.
func NewVisitor(userID, username, email string) *Visitor {
	return &Visitor{Identity: newIdentity(userID, username, email, RoleVisitor)}
}

// BrowseMenu returns the items visible to unregistered users, hiding
// early-access dishes.
func (v *Visitor) BrowseMenu(items []*MenuItem) []*MenuItem {
	visible := make([]*MenuItem, 0, len(items))
	for _, item := range items {
		if !item.IsEarlyAccess {
			visible = append(visible, item)
		}
	}
	emit(v.UserID, "visitor.browsed_menu", map[string]any{"visible_items": len(visible)})
	return visible
}

// ApplyForRegistration records a pending application, exactly once per
// visitor. The password is hashed before it is stored. A copy of the
// application is returned so callers cannot mutate the recorded one.
func (v *Visitor) ApplyForRegistration(fullName, phone, address, password string, blacklist []string) (RegistrationApplication, error) {
	if v.Application != nil {
		return RegistrationApplication{}, ErrDuplicateRegistration
	}
	if BlacklistEnabled {
		for _, blocked := range blacklist {
			if blocked == v.Email {
				return RegistrationApplication{}, fmt.Errorf("%w: %s", ErrBlacklisted, v.Email)
			}
		}
	}
	v.Application = &RegistrationApplication{
		ApplicantID:     v.UserID,
		Username:        v.Username,
		Email:           v.Email,
		FullName:        fullName,
		Phone:           phone,
		Address:         address,
		PasswordHash:    utils.HashPassword(password),
		ApplicationDate: time.Now(),
		Status:          "pending",
	}
	emit(v.UserID, "visitor.applied_for_registration", nil)
	return *v.Application, nil
}
