package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dishiq/dishiq-api/middleware"
	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/services"
	"github.com/dishiq/dishiq-api/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupTest resets the global state the handlers depend on and returns the
// fresh in-memory registry
func setupTest(t *testing.T) *store.Registry {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := store.NewRegistry(nil)
	store.SetDefault(registry)

	SetBlacklist(nil)
	models.SetEventSink(nil)
	services.SetMenuCacheService(nil)
	services.InitQRCodeService("http://localhost:8080")

	return registry
}

// testRouter wires the handlers the way the server does
func testRouter() *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")

	v1.POST("/users", CreateUser)
	v1.GET("/users/:id", GetUser)

	v1.GET("/menu", BrowseMenu)
	v1.POST("/visitors/:id/registration",
		middleware.RequirePermission(models.ActionApplyForRegistration), ApplyForRegistration)

	v1.POST("/customers/:id/deposits",
		middleware.RequirePermission(models.ActionDepositFunds), DepositFunds)
	v1.POST("/customers/:id/withdrawals",
		middleware.RequirePermission(models.ActionWithdrawFunds), WithdrawFunds)
	v1.POST("/customers/:id/orders",
		middleware.RequirePermission(models.ActionPlaceOrder), PlaceOrder)
	v1.GET("/customers/:id/orders", ListOrders)
	v1.POST("/customers/:id/ratings",
		middleware.RequirePermission(models.ActionRateDish), RateDish)
	v1.POST("/customers/:id/feedback", middleware.RequireUser(), SubmitFeedback)

	v1.POST("/chefs/:id/menu-items",
		middleware.RequirePermission(models.ActionCreateMenuItem), CreateMenuItem)
	v1.PATCH("/chefs/:id/menu-items/:itemID",
		middleware.RequirePermission(models.ActionUpdateMenuItem), UpdateMenuItem)
	v1.GET("/chefs/:id/feedback",
		middleware.RequirePermission(models.ActionViewFeedback), ChefFeedback)

	v1.POST("/orders/:id/cancel", middleware.RequireUser(), CancelOrder)
	v1.PUT("/orders/:id/status", middleware.RequireUser(), UpdateOrderStatus)
	v1.POST("/orders/:id/complaint", middleware.RequireUser(), FileComplaint)
	v1.GET("/orders/:id/qr", OrderQR)

	v1.POST("/delivery/bids", SubmitBid)
	v1.GET("/delivery/orders/:id/bids", ListBids)
	v1.PUT("/delivery/orders/:id/assign/:deliveryID", AssignDelivery)
	v1.PUT("/delivery/orders/:id/status", UpdateDeliveryStatus)

	v1.POST("/feedback/:id/response",
		middleware.RequirePermission(models.ActionReviewFeedback), RespondToFeedback)
	v1.POST("/feedback/:id/cancel-with-compliment",
		middleware.RequireUser(), CancelWithCompliment)

	v1.POST("/managers/:id/review-feedback",
		middleware.RequirePermission(models.ActionReviewFeedback), ReviewFeedback)
	v1.POST("/managers/:id/hr-actions",
		middleware.RequirePermission(models.ActionPerformHRAction), PerformHRAction)
	v1.POST("/managers/:id/account-closures",
		middleware.RequirePermission(models.ActionCloseAccount), CloseAccount)
	v1.GET("/managers/:id/applications", middleware.RequireUser(), ListApplications)
	v1.POST("/managers/:id/applications/:visitorID/approve",
		middleware.RequireUser(), ApproveApplication)

	return router
}

// perform issues a request against the test router, acting as the given user
func perform(t *testing.T, router *gin.Engine, method, path string, body any, actingUserID string) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if actingUserID != "" {
		req.Header.Set(middleware.UserIDHeader, actingUserID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseBody decodes the standard response envelope
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// errorCode extracts the error code from a failure envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseBody(t, w)
	require.Equal(t, false, body["success"])
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error object in response")
	code, _ := errObj["code"].(string)
	return code
}

// dataField extracts the data payload from a success envelope
func dataField(t *testing.T, w *httptest.ResponseRecorder) any {
	t.Helper()
	body := parseBody(t, w)
	require.Equal(t, true, body["success"])
	return body["data"]
}

// seedCustomer stores an active customer with the given balance
func seedCustomer(registry *store.Registry, userID string, balance float64) *models.Customer {
	customer := models.NewCustomer(userID, "user_"+userID, userID+"@example.com", "Test User", "555-0100", "1 Main St", "hash")
	customer.AccountBalance = balance
	registry.PutUser(customer)
	return customer
}

// seedChefWithItem stores a chef owning one menu item
func seedChefWithItem(t *testing.T, registry *store.Registry, chefID, itemID string, price float64, earlyAccess bool) (*models.Chef, *models.MenuItem) {
	t.Helper()
	chef := models.NewChef(chefID, "chef_"+chefID, chefID+"@example.com")
	item, err := chef.CreateMenuItem(itemID, "Dish "+itemID, "A test dish", price, earlyAccess)
	require.NoError(t, err)
	registry.PutUser(chef)
	registry.PutMenuItem(item)
	return chef, item
}

// seedOrder stores a pending order for the given customer
func seedOrder(t *testing.T, registry *store.Registry, orderID, customerID string) *models.Order {
	t.Helper()
	order, err := models.NewOrder(orderID, customerID, []models.OrderItem{
		{MenuItemID: "item-1", Name: "Dish", Price: 10.0, Quantity: 1},
	}, 5.0, 0, "1 Main St")
	require.NoError(t, err)
	registry.PutOrder(order)
	return order
}
