package models

import (
	"fmt"
	"time"
)

// Customer is a registered customer with a funded account and order history.
type Customer struct {
	Identity
	FullName             string        `json:"full_name"`
	Phone                string        `json:"phone"`
	Address              string        `json:"address"`
	PasswordHash         string        `json:"-"`
	AccountStatus        AccountStatus `json:"account_status"`
	AccountBalance       float64       `json:"account_balance"`
	TotalSpending        float64       `json:"total_spending"`
	OrderHistory         []*Order      `json:"order_history"`
	SuccessfulOrders     int           `json:"successful_orders"`
	Warnings             int           `json:"warnings"`
	MaxWarnings          int           `json:"max_warnings"`
	FeedbackSubmitted    []*Feedback   `json:"-"`
	ComplaintsReceived   int           `json:"complaints_received"`
	ComplimentsReceived  int           `json:"compliments_received"`
}

// NewCustomer creates an active customer with a zero balance.
func NewCustomer(userID, username, email, fullName, phone, address, passwordHash string) *Customer {
	return &Customer{
		Identity:      newIdentity(userID, username, email, RoleCustomer),
		FullName:      fullName,
		Phone:         phone,
		Address:       address,
		PasswordHash:  passwordHash,
		AccountStatus: AccountActive,
		MaxWarnings:   MaxWarnings,
	}
}

// IsActive reports whether the account can perform gated actions.
func (c *Customer) IsActive() bool {
	return c.AccountStatus == AccountActive
}

// DepositFunds adds a positive amount to the balance of an active account
// and returns the new balance.
func (c *Customer) DepositFunds(amount float64) (float64, error) {
	if !c.IsActive() {
		return 0, fmt.Errorf("%w: account %s", ErrUnauthorized, c.AccountStatus)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: deposit must be positive, got %.2f", ErrValidation, amount)
	}
	c.AccountBalance += amount
	emit(c.UserID, "customer.deposited", map[string]any{"amount": amount, "balance": c.AccountBalance})
	return c.AccountBalance, nil
}

// WithdrawFunds removes an amount from the balance and returns the new
// balance. Withdrawing more than the balance fails without mutation.
func (c *Customer) WithdrawFunds(amount float64) (float64, error) {
	if amount > c.AccountBalance {
		return 0, fmt.Errorf("%w: balance is $%.2f", ErrInsufficientFunds, c.AccountBalance)
	}
	c.AccountBalance -= amount
	emit(c.UserID, "customer.withdrew", map[string]any{"amount": amount, "balance": c.AccountBalance})
	return c.AccountBalance, nil
}

// nextOrderID builds the order id from the customer's history position.
func (c *Customer) nextOrderID() string {
	return fmt.Sprintf("ORD-%s-%d-%d", c.UserID, len(c.OrderHistory)+1, time.Now().Unix())
}

// snapshotItems captures immutable order lines from the menu items.
func snapshotItems(items []*MenuItem, quantities []int) []OrderItem {
	orderItems := make([]OrderItem, 0, len(items))
	for i, item := range items {
		orderItems = append(orderItems, OrderItem{
			MenuItemID: item.ItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   quantities[i],
		})
	}
	return orderItems
}

// PlaceOrder constructs an order, debits the balance, and appends to the
// order history. If the balance cannot cover the total the customer receives
// a warning and the order is discarded: balance, spending, and history are
// left untouched.
func (c *Customer) PlaceOrder(items []*MenuItem, quantities []int, deliveryFee float64) (*Order, error) {
	if !c.IsActive() {
		return nil, fmt.Errorf("%w: account %s", ErrUnauthorized, c.AccountStatus)
	}
	if len(items) != len(quantities) {
		return nil, fmt.Errorf("%w: items and quantities mismatch", ErrValidation)
	}
	order, err := NewOrder(c.nextOrderID(), c.UserID, snapshotItems(items, quantities), deliveryFee, 0, c.Address)
	if err != nil {
		return nil, err
	}
	if c.AccountBalance < order.TotalAmount {
		c.Warnings++
		emit(c.UserID, "customer.warned", map[string]any{"reason": "insufficient funds", "warnings": c.Warnings})
		return nil, fmt.Errorf("%w: need $%.2f, have $%.2f", ErrInsufficientFunds, order.TotalAmount, c.AccountBalance)
	}
	c.commitOrder(order)
	return order, nil
}

func (c *Customer) commitOrder(order *Order) {
	c.AccountBalance -= order.TotalAmount
	c.TotalSpending += order.TotalAmount
	c.OrderHistory = append(c.OrderHistory, order)
	emit(c.UserID, "customer.placed_order", map[string]any{
		"order_id":     order.OrderID,
		"total_amount": order.TotalAmount,
		"balance":      c.AccountBalance,
	})
}

// RateDish forwards the rating to the menu item. VIP weighting follows the
// customer's current role tag, so a demoted VIP rates at regular weight.
func (c *Customer) RateDish(item *MenuItem, rating float64, comment string) error {
	if err := item.UpdateRating(rating, c.Role == RoleVIPCustomer); err != nil {
		return err
	}
	emit(c.UserID, "customer.rated_dish", map[string]any{
		"item_id": item.ItemID,
		"rating":  rating,
		"comment": comment,
	})
	return nil
}

// VIPCustomer is a customer promoted to VIP standing, with discounts, early
// access, and a stricter warning threshold.
type VIPCustomer struct {
	Customer
}

// NewVIPCustomer builds a VIP view from a customer snapshot. All state is
// copied by value at promotion time, including a fresh backing array for the
// order history, so the two records never share mutable storage.
func NewVIPCustomer(base *Customer) *VIPCustomer {
	vip := &VIPCustomer{Customer: *base}
	vip.Role = RoleVIPCustomer
	vip.MaxWarnings = VIPMaxWarnings
	vip.OrderHistory = append([]*Order(nil), base.OrderHistory...)
	vip.FeedbackSubmitted = append([]*Feedback(nil), base.FeedbackSubmitted...)
	emit(vip.UserID, "customer.promoted_to_vip", map[string]any{
		"total_spending": vip.TotalSpending,
		"order_count":    len(vip.OrderHistory),
	})
	return vip
}

// PlaceOrder applies the VIP rules: a flat 5% discount on the pre-fee
// subtotal, and free delivery on every 3rd order in the cumulative history.
// The deliveryFee argument is ignored; the VIP schedule decides the fee.
// Unlike the base customer path, a failed funds check does not add a warning.
func (v *VIPCustomer) PlaceOrder(items []*MenuItem, quantities []int, deliveryFee float64) (*Order, error) {
	if !v.IsActive() {
		return nil, fmt.Errorf("%w: account %s", ErrUnauthorized, v.AccountStatus)
	}
	if len(items) != len(quantities) {
		return nil, fmt.Errorf("%w: items and quantities mismatch", ErrValidation)
	}
	fee := DefaultDeliveryFee
	if (len(v.OrderHistory)+1)%3 == 0 {
		fee = 0.0
	}
	orderItems := snapshotItems(items, quantities)
	subtotal := 0.0
	for _, item := range orderItems {
		subtotal += item.Subtotal()
	}
	discount := subtotal * VIPDiscountRate
	order, err := NewOrder(v.nextOrderID(), v.UserID, orderItems, fee, discount, v.Address)
	if err != nil {
		return nil, err
	}
	if v.AccountBalance < order.TotalAmount {
		return nil, fmt.Errorf("%w: need $%.2f, have $%.2f", ErrInsufficientFunds, order.TotalAmount, v.AccountBalance)
	}
	v.commitOrder(order)
	return order, nil
}

// CustomerManager evaluates the VIP promotion policy.
type CustomerManager struct{}

// PromoteToVIP returns a VIP view of the customer when the spending or order
// threshold is met. Absence of a promotion is a valid outcome, not an error.
// The caller decides whether to store the returned variant in place of the
// original record.
func (CustomerManager) PromoteToVIP(customer *Customer) (*VIPCustomer, bool) {
	if customer.TotalSpending >= VIPSpendingThreshold || len(customer.OrderHistory) >= VIPOrderThreshold {
		return NewVIPCustomer(customer), true
	}
	return nil, false
}
