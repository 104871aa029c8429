package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentalops/backend/internal/interfaces/http/handler"
	"github.com/rentalops/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
)

func revenueEngine(enforce bool) *gin.Engine {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(RevenueRoutes(handler.NewRevenueHandler(handler.RevenueHandlerDeps{}), middleware.PermissionConfig{Enforce: enforce}))
	r.Setup()
	return engine
}

func TestRevenueRoutes_Registered(t *testing.T) {
	engine := revenueEngine(false)

	routes := map[string]bool{}
	for _, ri := range engine.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}

	expected := []string{
		"GET /api/v1/revenue/settings",
		"PUT /api/v1/revenue/settings",
		"GET /api/v1/revenue/overview",
		"GET /api/v1/revenue/payouts/owners",
		"GET /api/v1/revenue/payouts/property-managers",
		"GET /api/v1/revenue/payouts/referral-agents",
		"GET /api/v1/revenue/payouts/retail-agents",
		"GET /api/v1/revenue/payouts/staff",
		"POST /api/v1/revenue/payouts/mark-paid",
		"POST /api/v1/revenue/payouts/queue",
		"GET /api/v1/revenue/payouts/:type/export",
		"POST /api/v1/revenue/payouts/:type/archive",
		"GET /api/v1/revenue/bookings/:id/breakdown",
		"POST /api/v1/revenue/bookings/:id/commissions",
		"PUT /api/v1/revenue/bookings/:id/override",
		"DELETE /api/v1/revenue/bookings/:id/override",
		"GET /api/v1/revenue/properties/:id/defaults",
		"PUT /api/v1/revenue/properties/:id/override",
		"DELETE /api/v1/revenue/properties/:id/override",
		"PUT /api/v1/revenue/properties/:id/channel-routing/:channel",
		"PUT /api/v1/revenue/properties/:id/expenses",
		"POST /api/v1/revenue/staff-wages",
		"GET /api/v1/revenue/staff-wages",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "missing route %s", route)
	}
	assert.Len(t, routes, len(expected))
}

func TestRevenueRoutes_Permissions(t *testing.T) {
	tests := []struct {
		name    string
		enforce bool
		method  string
		path    string
		want    int
	}{
		{"enforced read", true, http.MethodGet, "/api/v1/revenue/overview", http.StatusForbidden},
		{"enforced settings write", true, http.MethodPut, "/api/v1/revenue/settings", http.StatusForbidden},
		{"enforced payout write", true, http.MethodPost, "/api/v1/revenue/payouts/mark-paid", http.StatusForbidden},
		// without enforcement the handler runs and refuses the missing organization
		{"relaxed read", false, http.MethodGet, "/api/v1/revenue/overview", http.StatusUnauthorized},
		{"relaxed payout write", false, http.MethodPost, "/api/v1/revenue/payouts/queue", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := revenueEngine(tt.enforce)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(SystemRoutes(handler.NewSystemHandler("rentalops", "test", nil))).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
