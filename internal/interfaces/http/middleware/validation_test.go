package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rentalops/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratesRequest struct {
	ManagementFeePct *decimal.Decimal `json:"management_fee_pct" binding:"required,percent"`
	PMSplitPct       *decimal.Decimal `json:"pm_split_pct" binding:"omitempty,percent"`
	Basis            string           `json:"basis" binding:"omitempty,oneof=management_fee gross"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidations(v)
	return v
}

func TestPercentTag(t *testing.T) {
	v := newValidator()
	pct := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name  string
		req   ratesRequest
		valid bool
	}{
		{"zero", ratesRequest{ManagementFeePct: pct("0")}, true},
		{"hundred", ratesRequest{ManagementFeePct: pct("100")}, true},
		{"fraction", ratesRequest{ManagementFeePct: pct("12.5"), PMSplitPct: pct("50")}, true},
		// range is checked by the domain so it can answer INVALID_PERCENTAGE
		{"negative", ratesRequest{ManagementFeePct: pct("-0.01")}, true},
		{"above hundred", ratesRequest{ManagementFeePct: pct("100.01")}, true},
		{"optional above hundred", ratesRequest{ManagementFeePct: pct("10"), PMSplitPct: pct("150")}, true},
		{"missing required", ratesRequest{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.PUT("/settings", func(c *gin.Context) {
		var req ratesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("field details use json names", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"pm_split_pct": 120, "basis": "net"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(router, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "management_fee_pct", resp.Error.Details[0].Field)
		assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
		assert.Equal(t, "basis", resp.Error.Details[1].Field)
		assert.Equal(t, w.Header().Get(RequestIDHeader), resp.Error.RequestID)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"management_fee_pct":`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(router, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidJSON)
	})

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"management_fee_pct": "15"}`))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusOK, serve(router, req).Code)
	})
}
