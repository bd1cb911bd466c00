package controllers

import (
	"time"

	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/store"
	"github.com/dishiq/dishiq-api/utils"
	"github.com/gin-gonic/gin"
)

// SubmitBidRequest represents the request body for a delivery bid
type SubmitBidRequest struct {
	OrderID          string  `json:"order_id" binding:"required"`
	DeliveryPersonID string  `json:"delivery_person_id" binding:"required"`
	BidPrice         float64 `json:"bid_price" binding:"required,gt=0"`
}

// SubmitBid handles POST /api/v1/delivery/bids
func SubmitBid(c *gin.Context) {
	registry := store.Default()

	var req SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	order, ok := registry.GetOrder(req.OrderID)
	if !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	if order.Status.IsTerminal() {
		respondBadRequest(c, "Order is no longer open for delivery bids", nil)
		return
	}

	bid := &store.DeliveryBid{
		BidID:            utils.NewID("B"),
		OrderID:          req.OrderID,
		DeliveryPersonID: req.DeliveryPersonID,
		BidPrice:         req.BidPrice,
		Status:           store.BidPending,
		Timestamp:        time.Now(),
	}
	registry.AddBid(bid)

	respondCreated(c, bid)
}

// ListBids handles GET /api/v1/delivery/orders/:id/bids
func ListBids(c *gin.Context) {
	registry := store.Default()
	if _, ok := registry.GetOrder(c.Param("id")); !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	respondOK(c, registry.BidsForOrder(c.Param("id")))
}

// AssignDelivery handles PUT /api/v1/delivery/orders/:id/assign/:deliveryID -
// accepts the delivery person's bid, rejects the others, and assigns them to
// the order (which forces the order to Confirmed)
func AssignDelivery(c *gin.Context) {
	registry := store.Default()
	order, ok := registry.GetOrder(c.Param("id"))
	if !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	var accepted *store.DeliveryBid
	err := registry.Serialize(func() error {
		var err error
		accepted, err = registry.AcceptBid(order.OrderID, c.Param("deliveryID"))
		if err != nil {
			return err
		}
		order.AssignDeliveryPerson(accepted.DeliveryPersonID)
		registry.SaveOrder(order)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"order": order, "accepted_bid": accepted})
}

// UpdateDeliveryStatusRequest represents the request body for a delivery
// progress update
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// deliveryStatuses are the order transitions a delivery person may drive
var deliveryStatuses = map[models.OrderStatus]bool{
	models.OrderOutForDelivery: true,
	models.OrderDelivered:      true,
}

// UpdateDeliveryStatus handles PUT /api/v1/delivery/orders/:id/status
func UpdateDeliveryStatus(c *gin.Context) {
	registry := store.Default()
	order, ok := registry.GetOrder(c.Param("id"))
	if !ok {
		respondNotFound(c, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	if order.DeliveryPersonID == "" {
		respondBadRequest(c, "Order has no assigned delivery person", nil)
		return
	}

	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}
	status := models.OrderStatus(req.Status)
	if !deliveryStatuses[status] {
		respondBadRequest(c, "Delivery may only move orders to out_for_delivery or delivered", nil)
		return
	}

	_ = registry.Serialize(func() error {
		order.UpdateStatus(status)
		registry.SaveOrder(order)
		return nil
	})

	respondOK(c, order)
}
