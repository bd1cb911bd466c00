package models

import (
	"fmt"
	"time"
)

// OrderItem is an immutable snapshot of a dish at order time. Later price
// changes on the MenuItem never affect orders already placed.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order represents a customer order with items, delivery details, and a
// lifecycle status. Amounts are computed once at construction and are
// immutable afterwards; status changes never recompute totals.
type Order struct {
	OrderID          string      `json:"order_id"`
	CustomerID       string      `json:"customer_id"`
	Items            []OrderItem `json:"items"`
	Subtotal         float64     `json:"subtotal"`
	DeliveryFee      float64     `json:"delivery_fee"`
	Discount         float64     `json:"discount"`
	TotalAmount      float64     `json:"total_amount"`
	DeliveryAddress  string      `json:"delivery_address"`
	Status           OrderStatus `json:"status"`
	Timestamp        time.Time   `json:"timestamp"`
	DeliveryPersonID string      `json:"delivery_person_id,omitempty"`
	HasComplaint     bool        `json:"has_complaint"`
}

// NewOrder builds an order from item snapshots. The item list must not be
// empty. Discount is an absolute currency amount, not a rate.
func NewOrder(orderID, customerID string, items []OrderItem, deliveryFee, discount float64, deliveryAddress string) (*Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Subtotal()
	}
	order := &Order{
		OrderID:         orderID,
		CustomerID:      customerID,
		Items:           items,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		Discount:        discount,
		TotalAmount:     subtotal - discount + deliveryFee,
		DeliveryAddress: deliveryAddress,
		Status:          OrderPending,
		Timestamp:       time.Now(),
	}
	emit(orderID, "order.created", map[string]any{
		"customer_id":  customerID,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

// UpdateStatus writes the new status unconditionally and reports the
// old -> new transition through the event sink.
func (o *Order) UpdateStatus(newStatus OrderStatus) {
	oldStatus := o.Status
	o.Status = newStatus
	emit(o.OrderID, "order.status_updated", map[string]any{
		"old_status": string(oldStatus),
		"new_status": string(newStatus),
	})
}

// AssignDeliveryPerson records the assignee and forces the order to
// Confirmed regardless of its prior state, so re-assignment mid-flow is
// allowed.
func (o *Order) AssignDeliveryPerson(deliveryPersonID string) {
	o.DeliveryPersonID = deliveryPersonID
	o.UpdateStatus(OrderConfirmed)
}

// MarkDelivered moves the order to its successful terminal state.
func (o *Order) MarkDelivered() {
	o.UpdateStatus(OrderDelivered)
}

// Cancel transitions to Cancelled from any state except Delivered.
func (o *Order) Cancel() error {
	if o.Status == OrderDelivered {
		return fmt.Errorf("%w: cannot cancel a delivered order", ErrInvalidStateTransition)
	}
	o.UpdateStatus(OrderCancelled)
	return nil
}

// FileComplaint flags the order without altering its status.
func (o *Order) FileComplaint() {
	o.HasComplaint = true
	emit(o.OrderID, "order.complaint_filed", nil)
}

// IsSuccessful reports whether the order was delivered without a complaint.
func (o *Order) IsSuccessful() bool {
	return o.Status == OrderDelivered && !o.HasComplaint
}
