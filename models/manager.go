package models

import "fmt"

// HR action names accepted by PerformHRAction.
const (
	HRActionPromote   = "promote"
	HRActionDemote    = "demote"
	HRActionTerminate = "terminate"
)

// Manager enforces account-standing policy: feedback review, HR actions, and
// account closure.
type Manager struct {
	Identity
	ManagedCustomers map[string]*Customer `json:"-"`
	ManagedChefs     map[string]*Chef     `json:"-"`
}

// NewManager creates a manager.
func NewManager(userID, username, email string) *Manager {
	return &Manager{
		Identity:         newIdentity(userID, username, email, RoleManager),
		ManagedCustomers: make(map[string]*Customer),
		ManagedChefs:     make(map[string]*Chef),
	}
}

// ReviewFeedback walks the feedback list and applies standing policy to the
// targeted customers: each complaint adds a warning and suspends the account
// once the target's own warning threshold is reached; each compliment
// increments the compliment counter. The feedback records themselves are
// never resolved here.
func (m *Manager) ReviewFeedback(feedbackList []*Feedback, customers map[string]*Customer) {
	for _, fb := range feedbackList {
		if fb.TargetType != FeedbackTargetCustomer {
			continue
		}
		customer, ok := customers[fb.TargetID]
		if !ok {
			continue
		}
		switch fb.FeedbackType {
		case FeedbackComplaint:
			customer.Warnings++
			emit(m.UserID, "manager.issued_warning", map[string]any{
				"customer_id": customer.UserID,
				"warnings":    customer.Warnings,
			})
			if customer.Warnings >= customer.MaxWarnings {
				customer.AccountStatus = AccountSuspended
				emit(m.UserID, "manager.suspended_customer", map[string]any{"customer_id": customer.UserID})
			}
		case FeedbackCompliment:
			customer.ComplimentsReceived++
			emit(m.UserID, "manager.recorded_compliment", map[string]any{"customer_id": customer.UserID})
		}
	}
}

// PerformHRAction applies promote, demote, or terminate to a customer or
// chef. Promotion is copy-based: when the target is an eligible customer the
// new VIP variant is returned and the caller decides what to store; an
// ineligible target yields a nil replacement without error. Demotion reverts
// a VIP's role tag in place.
func (m *Manager) PerformHRAction(target User, action string) (User, error) {
	switch t := target.(type) {
	case *VIPCustomer:
		switch action {
		case HRActionPromote:
			// Already VIP; nothing to promote to.
			return nil, nil
		case HRActionDemote:
			t.Role = RoleCustomer
			emit(m.UserID, "manager.demoted", map[string]any{"user_id": t.UserID})
			return nil, nil
		case HRActionTerminate:
			t.AccountStatus = AccountClosed
			emit(m.UserID, "manager.terminated", map[string]any{"user_id": t.UserID})
			return nil, nil
		}
	case *Customer:
		switch action {
		case HRActionPromote:
			if vip, ok := (CustomerManager{}).PromoteToVIP(t); ok {
				return vip, nil
			}
			return nil, nil
		case HRActionDemote:
			// Not VIP; demotion has no effect.
			return nil, nil
		case HRActionTerminate:
			t.AccountStatus = AccountClosed
			emit(m.UserID, "manager.terminated", map[string]any{"user_id": t.UserID})
			return nil, nil
		}
	case *Chef:
		switch action {
		case HRActionPromote, HRActionDemote:
			return nil, nil
		case HRActionTerminate:
			t.AccountStatus = AccountClosed
			emit(m.UserID, "manager.terminated", map[string]any{"user_id": t.UserID})
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("%w: HR actions only apply to customers or chefs", ErrUnauthorized)
	}
	return nil, fmt.Errorf("%w: invalid HR action %q", ErrValidation, action)
}

// CloseAccount closes a customer or chef account. A customer account cannot
// close while any order is still in a non-terminal state; on success the
// balance is zeroed. Closing a chef clears the owned menu items.
func (m *Manager) CloseAccount(target User) error {
	switch t := target.(type) {
	case *VIPCustomer:
		return m.closeCustomer(&t.Customer)
	case *Customer:
		return m.closeCustomer(t)
	case *Chef:
		t.MenuItems = make(map[string]*MenuItem)
		t.AccountStatus = AccountClosed
		emit(m.UserID, "manager.closed_account", map[string]any{"user_id": t.UserID})
		return nil
	default:
		return fmt.Errorf("%w: only customer or chef accounts can be closed", ErrUnauthorized)
	}
}

func (m *Manager) closeCustomer(customer *Customer) error {
	for _, order := range customer.OrderHistory {
		if !order.Status.IsTerminal() {
			return fmt.Errorf("%w: order %s is still %s", ErrInvalidStateTransition, order.OrderID, order.Status)
		}
	}
	customer.AccountStatus = AccountClosed
	customer.AccountBalance = 0
	emit(m.UserID, "manager.closed_account", map[string]any{"user_id": customer.UserID})
	return nil
}
