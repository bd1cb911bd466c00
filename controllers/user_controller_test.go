package controllers

import (
	"net/http"
	"testing"

	"github.com/dishiq/dishiq-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name:           "creates a visitor",
			body:           map[string]any{"username": "vera", "email": "vera@example.com", "role": "visitor"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "creates a chef",
			body:           map[string]any{"username": "carlo", "email": "carlo@example.com", "role": "chef"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "creates a manager",
			body:           map[string]any{"username": "mona", "email": "mona@example.com", "role": "manager"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rejects customer role",
			body:           map[string]any{"username": "carl", "email": "carl@example.com", "role": "customer"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects unknown role",
			body:           map[string]any{"username": "x", "email": "x@example.com", "role": "pirate"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects missing email",
			body:           map[string]any{"username": "x", "role": "visitor"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTest(t)
			router := testRouter()

			w := perform(t, router, http.MethodPost, "/api/v1/users", tt.body, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCreateUserDuplicateID(t *testing.T) {
	setupTest(t)
	router := testRouter()

	body := map[string]any{"user_id": "V-1", "username": "vera", "email": "vera@example.com", "role": "visitor"}
	w := perform(t, router, http.MethodPost, "/api/v1/users", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(t, router, http.MethodPost, "/api/v1/users", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	seedCustomer(registry, "C-1", 50.0)

	w := perform(t, router, http.MethodGet, "/api/v1/users/C-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w).(map[string]any)
	assert.Equal(t, "C-1", data["user_id"])
	assert.Equal(t, string(models.RoleCustomer), data["role"])

	w = perform(t, router, http.MethodGet, "/api/v1/users/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
}

func TestApplyForRegistration(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	registry.PutUser(models.NewVisitor("V-1", "vera", "vera@example.com"))

	body := map[string]any{
		"full_name": "Vera Example",
		"phone":     "555-0100",
		"address":   "1 Main St",
		"password":  "supersecret",
	}

	w := perform(t, router, http.MethodPost, "/api/v1/visitors/V-1/registration", body, "V-1")
	require.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w).(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "V-1", data["applicant_id"])
	assert.NotEqual(t, "supersecret", data["password_hash"])

	// A second application from the same visitor is rejected
	w = perform(t, router, http.MethodPost, "/api/v1/visitors/V-1/registration", body, "V-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_REGISTRATION", errorCode(t, w))
}

func TestApplyForRegistrationBlacklisted(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	SetBlacklist([]string{"banned@example.com"})
	registry.PutUser(models.NewVisitor("V-2", "banned", "banned@example.com"))

	body := map[string]any{
		"full_name": "Banned User",
		"phone":     "555-0100",
		"address":   "1 Main St",
		"password":  "supersecret",
	}
	w := perform(t, router, http.MethodPost, "/api/v1/visitors/V-2/registration", body, "V-2")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "BLACKLISTED", errorCode(t, w))
}

func TestApplyForRegistrationActorMismatch(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	registry.PutUser(models.NewVisitor("V-1", "vera", "vera@example.com"))
	registry.PutUser(models.NewVisitor("V-2", "vick", "vick@example.com"))

	body := map[string]any{
		"full_name": "Vera Example",
		"phone":     "555-0100",
		"address":   "1 Main St",
		"password":  "supersecret",
	}
	w := perform(t, router, http.MethodPost, "/api/v1/visitors/V-1/registration", body, "V-2")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDepositAndWithdraw(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	seedCustomer(registry, "C-1", 0)

	w := perform(t, router, http.MethodPost, "/api/v1/customers/C-1/deposits",
		map[string]any{"amount": 100.0}, "C-1")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w).(map[string]any)
	assert.InDelta(t, 100.0, data["balance"], 0.001)

	w = perform(t, router, http.MethodPost, "/api/v1/customers/C-1/withdrawals",
		map[string]any{"amount": 30.0}, "C-1")
	require.Equal(t, http.StatusOK, w.Code)
	data = dataField(t, w).(map[string]any)
	assert.InDelta(t, 70.0, data["balance"], 0.001)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	seedCustomer(registry, "C-1", 10.0)

	w := perform(t, router, http.MethodPost, "/api/v1/customers/C-1/withdrawals",
		map[string]any{"amount": 50.0}, "C-1")
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "INSUFFICIENT_FUNDS", errorCode(t, w))
}

func TestDepositRequiresPermission(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	seedCustomer(registry, "C-1", 0)
	registry.PutUser(models.NewVisitor("V-1", "vera", "vera@example.com"))

	// Missing header
	w := perform(t, router, http.MethodPost, "/api/v1/customers/C-1/deposits",
		map[string]any{"amount": 10.0}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Visitors cannot deposit funds
	w = perform(t, router, http.MethodPost, "/api/v1/customers/C-1/deposits",
		map[string]any{"amount": 10.0}, "V-1")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDepositActorMismatch(t *testing.T) {
	registry := setupTest(t)
	router := testRouter()
	seedCustomer(registry, "C-1", 0)
	seedCustomer(registry, "C-2", 0)

	w := perform(t, router, http.MethodPost, "/api/v1/customers/C-1/deposits",
		map[string]any{"amount": 10.0}, "C-2")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
