package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	revenueapp "github.com/rentalops/backend/internal/application/revenue"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/interfaces/http/dto"
	"github.com/rentalops/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type revenueFixture struct {
	orgID     uuid.UUID
	settings  *mockSettings
	breakdown *mockBreakdown
	earnings  *mockEarnings
	payouts   *mockPayouts
	ledger    *mockLedger
	exports   *mockExports
	engine    *gin.Engine
}

func newRevenueFixture() *revenueFixture {
	f := &revenueFixture{
		orgID:     uuid.New(),
		settings:  new(mockSettings),
		breakdown: new(mockBreakdown),
		earnings:  new(mockEarnings),
		payouts:   new(mockPayouts),
		ledger:    new(mockLedger),
		exports:   new(mockExports),
	}
	h := NewRevenueHandler(RevenueHandlerDeps{
		Settings:  f.settings,
		Breakdown: f.breakdown,
		Earnings:  f.earnings,
		Payouts:   f.payouts,
		Ledger:    f.ledger,
		Exports:   f.exports,
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Organization(middleware.OrganizationConfig{
		HeaderEnabled:         true,
		DefaultOrganizationID: f.orgID.String(),
	}))
	g := engine.Group("/api/v1/revenue")
	g.GET("/settings", h.GetSettings)
	g.PUT("/settings", h.UpdateSettings)
	g.GET("/overview", h.GetOverview)
	g.GET("/payouts/owners", h.ListOwnerEarnings)
	g.GET("/payouts/staff", h.ListStaffEarnings)
	g.POST("/payouts/mark-paid", h.MarkPaid)
	g.POST("/payouts/queue", h.QueuePayout)
	g.GET("/payouts/:type/export", h.ExportPayouts)
	g.POST("/payouts/:type/archive", h.ArchivePayouts)
	g.GET("/bookings/:id/breakdown", h.GetBookingBreakdown)
	g.POST("/bookings/:id/commissions", h.PostBookingCommissions)
	g.PUT("/bookings/:id/override", h.SaveBookingOverride)
	g.DELETE("/properties/:id/override", h.DeletePropertyOverride)
	g.GET("/properties/:id/defaults", h.GetPropertyDefaults)
	g.PUT("/properties/:id/channel-routing/:channel", h.SaveChannelRouting)
	g.PUT("/properties/:id/expenses", h.ReplaceDefaultExpenses)
	g.POST("/staff-wages", h.CreateStaffWage)
	g.GET("/staff-wages", h.ListStaffWages)
	f.engine = engine
	return f
}

func (f *revenueFixture) do(method, path, body string) *httptest.ResponseRecorder {
	return f.doWithHeaders(method, path, body, nil)
}

func (f *revenueFixture) doWithHeaders(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, code, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRevenueHandler_GetSettings(t *testing.T) {
	f := newRevenueFixture()
	propertyID := uuid.New()
	settings := revenue.CommissionSettings{CommissionRates: revenue.DefaultCommissionRates()}
	f.settings.On("GetSettings", mock.Anything, f.orgID,
		mock.MatchedBy(func(id *uuid.UUID) bool { return id != nil && *id == propertyID }),
		(*uuid.UUID)(nil),
	).Return(settings, nil)

	w := f.do(http.MethodGet, "/api/v1/revenue/settings?property_id="+propertyID.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "15", data["management_fee_pct"])
	assert.Equal(t, "management_fee", data["retail_agent_basis"])
	f.settings.AssertExpectations(t)
}

func TestRevenueHandler_GetSettings_InvalidPropertyID(t *testing.T) {
	f := newRevenueFixture()

	w := f.do(http.MethodGet, "/api/v1/revenue/settings?property_id=abc", "")

	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	f.settings.AssertNotCalled(t, "GetSettings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRevenueHandler_GetSettings_OrganizationHeader(t *testing.T) {
	f := newRevenueFixture()
	other := uuid.New()
	f.settings.On("GetSettings", mock.Anything, other, (*uuid.UUID)(nil), (*uuid.UUID)(nil)).
		Return(revenue.CommissionSettings{CommissionRates: revenue.DefaultCommissionRates()}, nil)

	w := f.doWithHeaders(http.MethodGet, "/api/v1/revenue/settings", "",
		map[string]string{middleware.OrganizationHeader: other.String()})

	assert.Equal(t, http.StatusOK, w.Code)
	f.settings.AssertExpectations(t)
}

func TestRevenueHandler_UpdateSettings(t *testing.T) {
	f := newRevenueFixture()
	rates := revenue.CommissionRates{
		ManagementFeePct: d("20"),
		PMSplitPct:       d("40"),
		ReferralAgentPct: d("5"),
		RetailAgentPct:   d("7.5"),
		RetailAgentBasis: revenue.RetailBasisGross,
	}
	f.settings.On("UpdateOrganizationRates", mock.Anything, f.orgID, mock.MatchedBy(func(r revenue.CommissionRates) bool {
		return r.ManagementFeePct.Equal(rates.ManagementFeePct) &&
			r.RetailAgentPct.Equal(rates.RetailAgentPct) &&
			r.RetailAgentBasis == revenue.RetailBasisGross
	})).Return(revenue.CommissionSettings{CommissionRates: rates}, nil)

	w := f.do(http.MethodPut, "/api/v1/revenue/settings",
		`{"management_fee_pct":"20","pm_split_pct":"40","referral_agent_pct":"5","retail_agent_pct":"7.5","retail_agent_basis":"gross"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	f.settings.AssertExpectations(t)
}

func TestRevenueHandler_UpdateSettings_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			name:   "missing field",
			body:   `{"management_fee_pct":"15","pm_split_pct":"40","referral_agent_pct":"5"}`,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeValidation,
		},
		{
			name:   "unknown basis",
			body:   `{"management_fee_pct":"15","pm_split_pct":"40","referral_agent_pct":"5","retail_agent_pct":"5","retail_agent_basis":"net"}`,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeValidation,
		},
		{
			name:   "malformed json",
			body:   `{"management_fee_pct":`,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidJSON,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRevenueFixture()

			w := f.do(http.MethodPut, "/api/v1/revenue/settings", tt.body)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			f.settings.AssertNotCalled(t, "UpdateOrganizationRates", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRevenueHandler_UpdateSettings_DomainRejection(t *testing.T) {
	f := newRevenueFixture()
	f.settings.On("UpdateOrganizationRates", mock.Anything, f.orgID, mock.Anything).
		Return(revenue.CommissionSettings{}, shared.ErrInvalidPercentage)

	w := f.do(http.MethodPut, "/api/v1/revenue/settings",
		`{"management_fee_pct":"15","pm_split_pct":"40","referral_agent_pct":"5","retail_agent_pct":"5"}`)

	assertErrorCode(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidPercentage)
}

func TestRevenueHandler_PercentageOutOfRangeIsUnprocessable(t *testing.T) {
	outOfRange := func(r revenue.CommissionRates) bool { return r.ManagementFeePct.Equal(d("120")) }
	rejection := revenue.CommissionRates{
		ManagementFeePct: d("120"),
		RetailAgentBasis: revenue.RetailBasisManagementFee,
	}.Validate()
	require.Error(t, rejection)

	f := newRevenueFixture()
	f.settings.On("UpdateOrganizationRates", mock.Anything, f.orgID, mock.MatchedBy(outOfRange)).
		Return(revenue.CommissionSettings{}, rejection)
	f.settings.On("SaveBookingOverride", mock.Anything, f.orgID, mock.Anything, mock.Anything).
		Return(revenue.CommissionSettings{}, revenue.ValidatePercent("pm_split_pct", d("-5")))

	w := f.do(http.MethodPut, "/api/v1/revenue/settings",
		`{"management_fee_pct":"120","pm_split_pct":"40","referral_agent_pct":"5","retail_agent_pct":"5"}`)
	assertErrorCode(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidPercentage)

	w = f.do(http.MethodPut, "/api/v1/revenue/bookings/"+uuid.New().String()+"/override", `{"pm_split_pct":"-5"}`)
	assertErrorCode(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidPercentage)
}

func TestRevenueHandler_ListOwnerEarnings(t *testing.T) {
	f := newRevenueFixture()
	propertyID := uuid.New()
	earnings := []revenue.StakeholderEarning{
		{StakeholderID: uuid.New(), StakeholderType: revenue.StakeholderOwner, Gross: d("10000"), Net: d("8200"), Deductions: d("1800"), BookingCount: 2},
		{StakeholderID: uuid.New(), StakeholderType: revenue.StakeholderOwner, Gross: d("500"), Net: d("410"), Deductions: d("90"), BookingCount: 1},
	}
	f.earnings.On("Earnings", mock.Anything, f.orgID, revenue.StakeholderOwner, mock.MatchedBy(func(filter revenue.EarningsFilter) bool {
		return filter.StartDate != nil && filter.StartDate.Format("2006-01-02") == "2024-03-01" &&
			len(filter.PropertyIDs) == 1 && filter.PropertyIDs[0] == propertyID
	})).Return(earnings, nil)

	w := f.do(http.MethodGet, "/api/v1/revenue/payouts/owners?start_date=2024-03-01&end_date=2024-03-31&property_ids="+propertyID.String(), "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data revenueapp.EarningsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "owner", resp.Data.StakeholderType)
	assert.Equal(t, "2024-03-31", resp.Data.EndDate)
	assert.Len(t, resp.Data.Earnings, 2)
	assert.True(t, d("8610").Equal(resp.Data.Totals.Net))
	assert.Equal(t, 3, resp.Data.Totals.BookingCount)
}

func TestRevenueHandler_ListEarnings_InvalidFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"bad date format", "?start_date=03/01/2024", dto.ErrCodeValidation},
		{"reversed range", "?start_date=2024-03-31&end_date=2024-03-01", dto.ErrCodeInvalidInput},
		{"bad stakeholder id", "?stakeholder_ids=nope", dto.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRevenueFixture()

			w := f.do(http.MethodGet, "/api/v1/revenue/payouts/staff"+tt.query, "")

			assertErrorCode(t, w, http.StatusBadRequest, tt.code)
			f.earnings.AssertNotCalled(t, "Earnings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRevenueHandler_GetOverview(t *testing.T) {
	f := newRevenueFixture()
	f.earnings.On("Overview", mock.Anything, f.orgID, mock.Anything).Return(revenue.FinancialOverview{
		BookingCount: 4,
		GrossRevenue: d("12000"),
	}, nil)

	w := f.do(http.MethodGet, "/api/v1/revenue/overview", "")

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, float64(4), data["booking_count"])
	assert.Equal(t, "12000", data["gross_revenue"])
}

func TestRevenueHandler_MarkPaid(t *testing.T) {
	f := newRevenueFixture()
	stakeholderID := uuid.New()
	period := revenue.NewReportPeriod(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	payout, err := revenue.NewStakeholderPayout(f.orgID, stakeholderID, revenue.StakeholderOwner, period, d("8200"))
	require.NoError(t, err)
	require.NoError(t, payout.MarkPaid("wire", "TRX-9", time.Now()))

	f.payouts.On("MarkPaid", mock.Anything, f.orgID, mock.MatchedBy(func(a revenueapp.PayoutAction) bool {
		return a.StakeholderID == stakeholderID && a.IdempotencyKey == "key-1" && a.PaymentMethod == "wire"
	})).Return(payout, nil)

	body := `{"stakeholder_id":"` + stakeholderID.String() + `","stakeholder_type":"owner","start_date":"2024-03-01","end_date":"2024-03-31","amount":"8200","payment_method":"wire","reference":"TRX-9"}`
	w := f.doWithHeaders(http.MethodPost, "/api/v1/revenue/payouts/mark-paid", body,
		map[string]string{middleware.IdempotencyKeyHeader: "key-1"})

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "paid", data["status"])
	assert.Equal(t, "2024-03-01", data["start_date"])
	f.payouts.AssertExpectations(t)
}

func TestRevenueHandler_PayoutErrors(t *testing.T) {
	body := `{"stakeholder_id":"` + uuid.NewString() + `","stakeholder_type":"property_manager","start_date":"2024-03-01","end_date":"2024-03-31","payment_method":"cash"}`
	tests := []struct {
		name   string
		path   string
		method string
		err    error
		status int
		code   string
	}{
		{"duplicate key", "/api/v1/revenue/payouts/mark-paid", "MarkPaid", shared.ErrDuplicateRequest, http.StatusConflict, dto.ErrCodeDuplicateRequest},
		{"lost race", "/api/v1/revenue/payouts/mark-paid", "MarkPaid", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"already paid", "/api/v1/revenue/payouts/queue", "Queue", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"persistence failure", "/api/v1/revenue/payouts/queue", "Queue", errors.New("pq: connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRevenueFixture()
			f.payouts.On(tt.method, mock.Anything, f.orgID, mock.Anything).Return(nil, tt.err)

			w := f.do(http.MethodPost, tt.path, body)

			assertErrorCode(t, w, tt.status, tt.code)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestRevenueHandler_MarkPaid_InvalidBody(t *testing.T) {
	f := newRevenueFixture()

	w := f.do(http.MethodPost, "/api/v1/revenue/payouts/mark-paid",
		`{"stakeholder_id":"`+uuid.NewString()+`","stakeholder_type":"landlord","start_date":"2024-03-01","end_date":"2024-03-31"}`)

	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	f.payouts.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestRevenueHandler_ExportPayouts(t *testing.T) {
	f := newRevenueFixture()
	report := &revenueapp.Report{
		Filename:    "property-manager-payouts-20240301-20240331.csv",
		ContentType: revenueapp.CSVContentType,
		Data:        []byte("Manager ID,Manager Name\n"),
		Rows:        0,
	}
	f.exports.On("Export", mock.Anything, f.orgID, revenue.StakeholderPropertyManager, mock.Anything).Return(report, nil)

	w := f.do(http.MethodGet, "/api/v1/revenue/payouts/property-managers/export?start_date=2024-03-01&end_date=2024-03-31", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, revenueapp.CSVContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="property-manager-payouts-20240301-20240331.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Manager ID,Manager Name\n", w.Body.String())
}

func TestRevenueHandler_ExportPayouts_UnknownType(t *testing.T) {
	f := newRevenueFixture()

	w := f.do(http.MethodGet, "/api/v1/revenue/payouts/landlords/export", "")

	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
}

func TestRevenueHandler_ArchivePayouts(t *testing.T) {
	t.Run("archived", func(t *testing.T) {
		f := newRevenueFixture()
		f.exports.On("Archive", mock.Anything, f.orgID, revenue.StakeholderRetailAgent, mock.Anything).
			Return(&revenueapp.ArchivedReport{Key: "k", URL: "https://s3.local/k", Rows: 3}, nil)

		w := f.do(http.MethodPost, "/api/v1/revenue/payouts/retail-agents/archive", "")

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "https://s3.local/k", data["url"])
	})

	t.Run("storage not configured", func(t *testing.T) {
		f := newRevenueFixture()
		f.exports.On("Archive", mock.Anything, f.orgID, revenue.StakeholderOwner, mock.Anything).
			Return(nil, revenueapp.ErrArchiveUnavailable)

		w := f.do(http.MethodPost, "/api/v1/revenue/payouts/owners/archive", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRevenueHandler_GetBookingBreakdown(t *testing.T) {
	f := newRevenueFixture()
	bookingID := uuid.New()
	f.breakdown.On("CalculateForBooking", mock.Anything, f.orgID, bookingID, mock.MatchedBy(func(o revenueapp.BreakdownOverrides) bool {
		return o.Gross != nil && o.Gross.Equal(d("1500")) && o.Channel != nil && *o.Channel == "vrbo" && o.PlatformFees == nil
	})).Return(revenue.BookingFinancialBreakdown{BookingID: bookingID, GrossBookingRevenue: d("1500")}, nil)

	w := f.do(http.MethodGet, "/api/v1/revenue/bookings/"+bookingID.String()+"/breakdown?gross=1500&channel=vrbo", "")

	assert.Equal(t, http.StatusOK, w.Code)
	f.breakdown.AssertExpectations(t)
}

func TestRevenueHandler_GetBookingBreakdown_Errors(t *testing.T) {
	f := newRevenueFixture()
	missing := uuid.New()
	f.breakdown.On("CalculateForBooking", mock.Anything, f.orgID, missing, mock.Anything).
		Return(revenue.BookingFinancialBreakdown{}, shared.ErrNotFound)

	w := f.do(http.MethodGet, "/api/v1/revenue/bookings/"+missing.String()+"/breakdown", "")
	assertErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	w = f.do(http.MethodGet, "/api/v1/revenue/bookings/not-a-uuid/breakdown", "")
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)

	w = f.do(http.MethodGet, "/api/v1/revenue/bookings/"+missing.String()+"/breakdown?gross=-10", "")
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
}

func TestRevenueHandler_PostBookingCommissions(t *testing.T) {
	f := newRevenueFixture()
	bookingID := uuid.New()
	agentID := uuid.New()
	entry := revenue.CommissionLedgerEntry{
		BookingID: bookingID,
		AgentID:   agentID,
		AgentType: revenue.AgentTypeReferral,
		Amount:    d("150"),
		EarnedAt:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	entry.ID = uuid.New()
	posting := &revenueapp.LedgerPosting{
		Breakdown: revenue.BookingFinancialBreakdown{BookingID: bookingID},
		Entries:   []revenue.CommissionLedgerEntry{entry},
		Inserted:  1,
	}
	f.ledger.On("PostForBooking", mock.Anything, f.orgID, bookingID).Return(posting, nil)

	w := f.do(http.MethodPost, "/api/v1/revenue/bookings/"+bookingID.String()+"/commissions", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, float64(1), data["inserted"])
	entries := data["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-05", entries[0].(map[string]any)["earned_at"])
}

func TestRevenueHandler_Overrides(t *testing.T) {
	f := newRevenueFixture()
	bookingID := uuid.New()
	propertyID := uuid.New()
	f.settings.On("SaveBookingOverride", mock.Anything, f.orgID, bookingID, mock.MatchedBy(func(o revenue.CommissionOverride) bool {
		return o.ManagementFeePct != nil && o.ManagementFeePct.Equal(d("12")) && o.PMSplitPct == nil
	})).Return(revenue.CommissionSettings{CommissionRates: revenue.DefaultCommissionRates()}, nil)
	f.settings.On("DeletePropertyOverride", mock.Anything, f.orgID, propertyID).Return(nil)

	w := f.do(http.MethodPut, "/api/v1/revenue/bookings/"+bookingID.String()+"/override", `{"management_fee_pct":"12"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/revenue/properties/"+propertyID.String()+"/override", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodPut, "/api/v1/revenue/bookings/"+bookingID.String()+"/override", `{"retail_agent_basis":"net"}`)
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)

	f.settings.AssertExpectations(t)
}

func TestRevenueHandler_PropertyConfiguration(t *testing.T) {
	f := newRevenueFixture()
	propertyID := uuid.New()
	expenses := []revenue.DefaultExpense{{ExpenseType: "cleaning", Amount: d("80")}}
	f.settings.On("SaveChannelRouting", mock.Anything, f.orgID, propertyID, "airbnb", revenue.RoutingSplit,
		mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(d("70")) }),
		mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(d("30")) }),
	).Return(revenue.SplitRouting{OwnerSplitPct: d("70"), CompanySplitPct: d("30")}, nil)
	f.settings.On("ReplaceDefaultExpenses", mock.Anything, f.orgID, propertyID, mock.Anything).Return(expenses, nil)
	f.settings.On("GetPropertyDefaults", mock.Anything, f.orgID, propertyID).Return(revenue.PropertyDefaults{}, shared.ErrNotFound)

	w := f.do(http.MethodPut, "/api/v1/revenue/properties/"+propertyID.String()+"/channel-routing/airbnb",
		`{"routing_type":"split","owner_split_pct":"70","company_split_pct":"30"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "split", decodeResponse(t, w).Data.(map[string]any)["routing_type"])

	w = f.do(http.MethodPut, "/api/v1/revenue/properties/"+propertyID.String()+"/expenses",
		`{"expenses":[{"expense_type":"cleaning","amount":"80"}]}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/revenue/properties/"+propertyID.String()+"/defaults", "")
	assertErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	w = f.do(http.MethodPut, "/api/v1/revenue/properties/"+propertyID.String()+"/channel-routing/airbnb",
		`{"routing_type":"owner_90"}`)
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestRevenueHandler_StaffWages(t *testing.T) {
	f := newRevenueFixture()
	staffID := uuid.New()
	cfg, err := revenue.NewStaffWageConfig(f.orgID, staffID, "Carla", d("1200"), revenue.BillToCompany, nil)
	require.NoError(t, err)
	f.settings.On("CreateStaffWage", mock.Anything, f.orgID, mock.MatchedBy(func(in revenueapp.StaffWageInput) bool {
		return in.StaffID == staffID && in.StaffName == "Carla" && in.BillTo == revenue.BillToCompany
	})).Return(cfg, nil)
	f.settings.On("ListStaffWages", mock.Anything, f.orgID, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 2 && filter.PageSize == 1
	})).Return(shared.NewPaginated([]revenue.StaffWageConfig{*cfg}, 3, 2, 1), nil)

	w := f.do(http.MethodPost, "/api/v1/revenue/staff-wages",
		`{"staff_id":"`+staffID.String()+`","staff_name":" Carla ","monthly_wage":"1200","bill_to":"company"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(http.MethodGet, "/api/v1/revenue/staff-wages?page=2&page_size=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Len(t, resp.Data.([]any), 1)
}

func TestRevenueHandler_RequiresOrganization(t *testing.T) {
	h := NewRevenueHandler(RevenueHandlerDeps{})
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/overview", h.GetOverview)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/overview", nil))

	assertErrorCode(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
}
