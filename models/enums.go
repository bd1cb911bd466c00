package models

// UserRole identifies the kind of user and selects its capability set
type UserRole string

const (
	RoleVisitor     UserRole = "visitor"
	RoleCustomer    UserRole = "customer"
	RoleVIPCustomer UserRole = "vip_customer"
	RoleChef        UserRole = "chef"
	RoleManager     UserRole = "manager"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// FeedbackType distinguishes complaints from compliments
type FeedbackType string

const (
	FeedbackComplaint  FeedbackType = "complaint"
	FeedbackCompliment FeedbackType = "compliment"
)

// AccountStatus is the standing of a customer or chef account
type AccountStatus string

const (
	AccountActive      AccountStatus = "active"
	AccountSuspended   AccountStatus = "suspended"
	AccountBlacklisted AccountStatus = "blacklisted"
	AccountClosed      AccountStatus = "closed"
)

// System-wide policy constants, read-only after startup
const (
	// VIPSpendingThreshold is the minimum cumulative spending for VIP promotion
	VIPSpendingThreshold = 100.00

	// VIPOrderThreshold is the minimum order count for VIP promotion
	VIPOrderThreshold = 3

	// MaxWarnings suspends a regular customer account once reached
	MaxWarnings = 3

	// VIPMaxWarnings is the stricter threshold applied to VIP customers
	VIPMaxWarnings = 2

	// DefaultDeliveryFee is the standard per-order delivery charge
	DefaultDeliveryFee = 5.0

	// VIPDiscountRate is the flat discount applied to a VIP order's subtotal
	VIPDiscountRate = 0.05

	// BlacklistEnabled toggles the registration blacklist check
	BlacklistEnabled = true
)
