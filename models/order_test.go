package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderItems() []OrderItem {
	return []OrderItem{
		{MenuItemID: "M001", Name: "Pasta", Price: 12.99, Quantity: 2},
		{MenuItemID: "M002", Name: "Pizza", Price: 15.99, Quantity: 1},
	}
}

func TestNewOrderAmounts(t *testing.T) {
	order, err := NewOrder("ORD-1", "C001", testOrderItems(), 5.0, 2.0, "456 Oak Ave")
	require.NoError(t, err)

	assert.InDelta(t, 41.97, order.Subtotal, 0.0001, "Subtotal should sum price*quantity per line")
	assert.InDelta(t, 44.97, order.TotalAmount, 0.0001, "Total should be subtotal - discount + fee")
	assert.Equal(t, OrderPending, order.Status)
	assert.Empty(t, order.DeliveryPersonID)
	assert.False(t, order.HasComplaint)
}

func TestNewOrderEmptyItems(t *testing.T) {
	order, err := NewOrder("ORD-1", "C001", nil, 5.0, 0, "456 Oak Ave")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatusChangesNeverRecomputeTotals(t *testing.T) {
	order, err := NewOrder("ORD-1", "C001", testOrderItems(), 5.0, 2.0, "456 Oak Ave")
	require.NoError(t, err)
	total := order.TotalAmount

	order.AssignDeliveryPerson("D001")
	order.UpdateStatus(OrderPreparing)
	order.UpdateStatus(OrderOutForDelivery)
	order.MarkDelivered()

	assert.Equal(t, total, order.TotalAmount, "Totals are fixed at construction")
}

func TestAssignDeliveryPersonForcesConfirmed(t *testing.T) {
	order, err := NewOrder("ORD-1", "C001", testOrderItems(), 5.0, 0, "456 Oak Ave")
	require.NoError(t, err)

	order.UpdateStatus(OrderOutForDelivery)
	order.AssignDeliveryPerson("D002")

	assert.Equal(t, "D002", order.DeliveryPersonID, "Re-assignment mid-flow is allowed")
	assert.Equal(t, OrderConfirmed, order.Status, "Assignment forces Confirmed from any state")
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name      string
		status    OrderStatus
		expectErr bool
	}{
		{"cancel pending order", OrderPending, false},
		{"cancel confirmed order", OrderConfirmed, false},
		{"cancel preparing order", OrderPreparing, false},
		{"cancel order out for delivery", OrderOutForDelivery, false},
		{"cancel delivered order", OrderDelivered, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder("ORD-1", "C001", testOrderItems(), 5.0, 0, "456 Oak Ave")
			require.NoError(t, err)
			order.UpdateStatus(tt.status)

			err = order.Cancel()
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidStateTransition)
				assert.Equal(t, OrderDelivered, order.Status)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, OrderCancelled, order.Status)
			}
		})
	}
}

func TestFileComplaintKeepsStatus(t *testing.T) {
	order, err := NewOrder("ORD-1", "C001", testOrderItems(), 5.0, 0, "456 Oak Ave")
	require.NoError(t, err)
	order.MarkDelivered()

	order.FileComplaint()

	assert.True(t, order.HasComplaint)
	assert.Equal(t, OrderDelivered, order.Status, "Complaint must not alter status")
}

func TestIsSuccessful(t *testing.T) {
	order, err := NewOrder("ORD-1", "C001", testOrderItems(), 5.0, 0, "456 Oak Ave")
	require.NoError(t, err)

	assert.False(t, order.IsSuccessful(), "Pending order is not successful")

	order.MarkDelivered()
	assert.True(t, order.IsSuccessful())

	order.FileComplaint()
	assert.False(t, order.IsSuccessful(), "Delivered order with complaint is not successful")
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderConfirmed.IsTerminal())
	assert.False(t, OrderPreparing.IsTerminal())
	assert.False(t, OrderOutForDelivery.IsTerminal())
}
