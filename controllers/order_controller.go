package controllers

import (
	"fmt"
	"net/http"

	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/services"
	"github.com/dishiq/dishiq-api/store"
	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	Items []struct {
		ItemID   string `json:"item_id" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,gt=0"`
	} `json:"items" binding:"required"`
	DeliveryFee *float64 `json:"delivery_fee"`
}

// PlaceOrder handles POST /api/v1/customers/:id/orders (customers only).
// The VIP variant's own ordering rules apply when the stored record is VIP.
func PlaceOrder(c *gin.Context) {
	registry := store.Default()
	user, ok := registry.GetUser(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Customer not found")
		return
	}
	if !actorMatches(c, user.ID()) {
		respondForbidden(c, "Customers may only order with their own account")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	items := make([]*models.MenuItem, 0, len(req.Items))
	quantities := make([]int, 0, len(req.Items))
	for _, line := range req.Items {
		item, ok := registry.GetMenuItem(line.ItemID)
		if !ok {
			respondNotFound(c, "MENU_ITEM_NOT_FOUND", fmt.Sprintf("Menu item %s not found", line.ItemID))
			return
		}
		items = append(items, item)
		quantities = append(quantities, line.Quantity)
	}

	deliveryFee := models.DefaultDeliveryFee
	if req.DeliveryFee != nil {
		deliveryFee = *req.DeliveryFee
	}

	var order *models.Order
	err := registry.Serialize(func() error {
		var err error
		switch customer := user.(type) {
		case *models.VIPCustomer:
			order, err = customer.PlaceOrder(items, quantities, deliveryFee)
		case *models.Customer:
			order, err = customer.PlaceOrder(items, quantities, deliveryFee)
		default:
			return fmt.Errorf("%w: only customers place orders", models.ErrUnauthorized)
		}
		if err == nil {
			registry.PutOrder(order)
			registry.SaveUser(user)
		}
		return err
	})
	if err != nil {
		// A failed funds check may still have added a warning; keep the
		// stored snapshot in sync with that.
		registry.SaveUser(user)
		respondError(c, err)
		return
	}

	respondCreated(c, order)
}

// ListOrders handles GET /api/v1/customers/:id/orders
func ListOrders(c *gin.Context) {
	registry := store.Default()
	customer, ok := registry.GetCustomer(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Customer not found")
		return
	}
	respondOK(c, customer.OrderHistory)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel
func CancelOrder(c *gin.Context) {
	registry := store.Default()
	order, ok := registry.GetOrder(c.Param("id"))
	if !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	err := registry.Serialize(func() error {
		err := order.Cancel()
		if err == nil {
			registry.SaveOrder(order)
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, order)
}

// UpdateOrderStatusRequest represents the request body for a status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var validOrderStatuses = map[models.OrderStatus]bool{
	models.OrderPending:        true,
	models.OrderConfirmed:      true,
	models.OrderPreparing:      true,
	models.OrderOutForDelivery: true,
	models.OrderDelivered:      true,
	models.OrderCancelled:      true,
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	registry := store.Default()
	order, ok := registry.GetOrder(c.Param("id"))
	if !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}
	status := models.OrderStatus(req.Status)
	if !validOrderStatuses[status] {
		respondBadRequest(c, fmt.Sprintf("Unknown order status %q", req.Status), nil)
		return
	}

	_ = registry.Serialize(func() error {
		order.UpdateStatus(status)
		registry.SaveOrder(order)
		return nil
	})

	respondOK(c, order)
}

// FileComplaint handles POST /api/v1/orders/:id/complaint
func FileComplaint(c *gin.Context) {
	registry := store.Default()
	order, ok := registry.GetOrder(c.Param("id"))
	if !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	_ = registry.Serialize(func() error {
		order.FileComplaint()
		registry.SaveOrder(order)
		return nil
	})

	respondOK(c, order)
}

// OrderQR handles GET /api/v1/orders/:id/qr - returns a PNG QR code that
// links to the order tracking page
func OrderQR(c *gin.Context) {
	registry := store.Default()
	order, ok := registry.GetOrder(c.Param("id"))
	if !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	qrService := services.GetQRCodeService()
	if qrService == nil {
		respondError(c, fmt.Errorf("QR code service not configured"))
		return
	}

	png, err := qrService.GenerateOrderQR(order.OrderID)
	if err != nil {
		respondError(c, fmt.Errorf("failed to generate QR code: %w", err))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
