package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	revenueapp "github.com/rentalops/backend/internal/application/revenue"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// SettingsUseCase reads and writes commission configuration
type SettingsUseCase interface {
	GetSettings(ctx context.Context, tenantID uuid.UUID, propertyID, bookingID *uuid.UUID) (revenue.CommissionSettings, error)
	UpdateOrganizationRates(ctx context.Context, tenantID uuid.UUID, rates revenue.CommissionRates) (revenue.CommissionSettings, error)
	SavePropertyOverride(ctx context.Context, tenantID, propertyID uuid.UUID, override revenue.CommissionOverride) (revenue.CommissionSettings, error)
	SaveBookingOverride(ctx context.Context, tenantID, bookingID uuid.UUID, override revenue.CommissionOverride) (revenue.CommissionSettings, error)
	DeletePropertyOverride(ctx context.Context, tenantID, propertyID uuid.UUID) error
	DeleteBookingOverride(ctx context.Context, tenantID, bookingID uuid.UUID) error
	GetPropertyDefaults(ctx context.Context, tenantID, propertyID uuid.UUID) (revenue.PropertyDefaults, error)
	SaveChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID, channel string, routingType revenue.RoutingType, ownerPct, companyPct decimal.Decimal) (revenue.ChannelPayoutRouting, error)
	ReplaceDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID, expenses []revenue.DefaultExpense) ([]revenue.DefaultExpense, error)
	CreateStaffWage(ctx context.Context, tenantID uuid.UUID, in revenueapp.StaffWageInput) (*revenue.StaffWageConfig, error)
	ListStaffWages(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[revenue.StaffWageConfig], error)
}

// BreakdownUseCase computes single booking breakdowns
type BreakdownUseCase interface {
	CalculateForBooking(ctx context.Context, tenantID, bookingID uuid.UUID, overrides revenueapp.BreakdownOverrides) (revenue.BookingFinancialBreakdown, error)
}

// EarningsUseCase aggregates stakeholder earnings
type EarningsUseCase interface {
	Earnings(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) ([]revenue.StakeholderEarning, error)
	Overview(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) (revenue.FinancialOverview, error)
}

// PayoutUseCase advances stakeholder payouts
type PayoutUseCase interface {
	MarkPaid(ctx context.Context, tenantID uuid.UUID, action revenueapp.PayoutAction) (*revenue.StakeholderPayout, error)
	Queue(ctx context.Context, tenantID uuid.UUID, action revenueapp.PayoutAction) (*revenue.StakeholderPayout, error)
}

// LedgerUseCase posts agent commissions
type LedgerUseCase interface {
	PostForBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*revenueapp.LedgerPosting, error)
}

// ExportUseCase renders and archives payout reports
type ExportUseCase interface {
	Export(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (*revenueapp.Report, error)
	Archive(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (*revenueapp.ArchivedReport, error)
}

// RevenueHandler handles revenue split, payout and commission endpoints
type RevenueHandler struct {
	BaseHandler
	settings  SettingsUseCase
	breakdown BreakdownUseCase
	earnings  EarningsUseCase
	payouts   PayoutUseCase
	ledger    LedgerUseCase
	exports   ExportUseCase
}

// RevenueHandlerDeps groups the use cases behind the revenue API
type RevenueHandlerDeps struct {
	Settings  SettingsUseCase
	Breakdown BreakdownUseCase
	Earnings  EarningsUseCase
	Payouts   PayoutUseCase
	Ledger    LedgerUseCase
	Exports   ExportUseCase
}

// NewRevenueHandler creates a new RevenueHandler
func NewRevenueHandler(deps RevenueHandlerDeps) *RevenueHandler {
	return &RevenueHandler{
		settings:  deps.Settings,
		breakdown: deps.Breakdown,
		earnings:  deps.Earnings,
		payouts:   deps.Payouts,
		ledger:    deps.Ledger,
		exports:   deps.Exports,
	}
}

// SettingsQuery selects the layers merged into the resolved settings
type SettingsQuery struct {
	PropertyID string `form:"property_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	BookingID  string `form:"booking_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// GetSettings godoc
// @Summary      Get commission settings
// @Description  Resolve the effective commission settings. Organization defaults are merged with the property and booking overrides when their ids are given.
// @Tags         revenue-settings
// @Produce      json
// @Param        property_id query string false "Property ID"
// @Param        booking_id query string false "Booking ID"
// @Success      200 {object} APIResponse[revenueapp.SettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/settings [get]
func (h *RevenueHandler) GetSettings(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}

	var q SettingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	propertyID, err := optionalID("property_id", q.PropertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	bookingID, err := optionalID("booking_id", q.BookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	settings, err := h.settings.GetSettings(c.Request.Context(), tenantID, propertyID, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenueapp.ToSettingsResponse(settings))
}

// UpdateSettings godoc
// @Summary      Update organization commission rates
// @Description  Replace the organization-wide commission defaults. Every percentage must be within 0 and 100.
// @Tags         revenue-settings
// @Accept       json
// @Produce      json
// @Param        request body revenueapp.UpdateSettingsRequest true "Commission rates"
// @Success      200 {object} APIResponse[revenueapp.SettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/settings [put]
func (h *RevenueHandler) UpdateSettings(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}

	var req revenueapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	settings, err := h.settings.UpdateOrganizationRates(c.Request.Context(), tenantID, req.ToRates())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenueapp.ToSettingsResponse(settings))
}

// SavePropertyOverride godoc
// @Summary      Save property commission override
// @Description  Store a sparse override for one property. Omitted fields fall back to the organization defaults.
// @Tags         revenue-settings
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body revenueapp.OverrideRequest true "Override"
// @Success      200 {object} APIResponse[revenueapp.SettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/properties/{id}/override [put]
func (h *RevenueHandler) SavePropertyOverride(c *gin.Context) {
	h.saveOverride(c, "property", func(ctx context.Context, tenantID, id uuid.UUID, o revenue.CommissionOverride) (revenue.CommissionSettings, error) {
		return h.settings.SavePropertyOverride(ctx, tenantID, id, o)
	})
}

// SaveBookingOverride godoc
// @Summary      Save booking commission override
// @Description  Store a sparse override for one booking. It takes precedence over the property override.
// @Tags         revenue-settings
// @Accept       json
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        request body revenueapp.OverrideRequest true "Override"
// @Success      200 {object} APIResponse[revenueapp.SettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/bookings/{id}/override [put]
func (h *RevenueHandler) SaveBookingOverride(c *gin.Context) {
	h.saveOverride(c, "booking", func(ctx context.Context, tenantID, id uuid.UUID, o revenue.CommissionOverride) (revenue.CommissionSettings, error) {
		return h.settings.SaveBookingOverride(ctx, tenantID, id, o)
	})
}

type overrideSaver func(ctx context.Context, tenantID, targetID uuid.UUID, override revenue.CommissionOverride) (revenue.CommissionSettings, error)

func (h *RevenueHandler) saveOverride(c *gin.Context, entity string, save overrideSaver) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	targetID, ok := h.pathID(c, entity)
	if !ok {
		return
	}

	var req revenueapp.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	settings, err := save(c.Request.Context(), tenantID, targetID, req.ToOverride())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenueapp.ToSettingsResponse(settings))
}

// DeletePropertyOverride godoc
// @Summary      Delete property commission override
// @Tags         revenue-settings
// @Param        id path string true "Property ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/properties/{id}/override [delete]
func (h *RevenueHandler) DeletePropertyOverride(c *gin.Context) {
	h.deleteOverride(c, "property", func(ctx context.Context, tenantID, id uuid.UUID) error {
		return h.settings.DeletePropertyOverride(ctx, tenantID, id)
	})
}

// DeleteBookingOverride godoc
// @Summary      Delete booking commission override
// @Tags         revenue-settings
// @Param        id path string true "Booking ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/bookings/{id}/override [delete]
func (h *RevenueHandler) DeleteBookingOverride(c *gin.Context) {
	h.deleteOverride(c, "booking", func(ctx context.Context, tenantID, id uuid.UUID) error {
		return h.settings.DeleteBookingOverride(ctx, tenantID, id)
	})
}

func (h *RevenueHandler) deleteOverride(c *gin.Context, entity string, remove func(context.Context, uuid.UUID, uuid.UUID) error) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	targetID, ok := h.pathID(c, entity)
	if !ok {
		return
	}
	if err := remove(c.Request.Context(), tenantID, targetID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetPropertyDefaults godoc
// @Summary      Get property defaults
// @Description  Load the channel routing, default expenses, manager and agents of a property
// @Tags         revenue-properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200 {object} APIResponse[revenueapp.PropertyDefaultsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/properties/{id}/defaults [get]
func (h *RevenueHandler) GetPropertyDefaults(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	propertyID, ok := h.pathID(c, "property")
	if !ok {
		return
	}

	defaults, err := h.settings.GetPropertyDefaults(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenueapp.ToPropertyDefaultsResponse(defaults))
}

// SaveChannelRouting godoc
// @Summary      Save channel payout routing
// @Description  Set how a booking channel's gross is credited before commissions. Split percentages must add up to 100.
// @Tags         revenue-properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        channel path string true "Booking channel" example(airbnb)
// @Param        request body revenueapp.ChannelRoutingRequest true "Routing"
// @Success      200 {object} APIResponse[revenue.RoutingView]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/properties/{id}/channel-routing/{channel} [put]
func (h *RevenueHandler) SaveChannelRouting(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	propertyID, ok := h.pathID(c, "property")
	if !ok {
		return
	}

	var req revenueapp.ChannelRoutingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	routing, err := h.settings.SaveChannelRouting(c.Request.Context(), tenantID, propertyID,
		c.Param("channel"), revenue.RoutingType(req.RoutingType),
		decimalOrZero(req.OwnerSplitPct), decimalOrZero(req.CompanySplitPct))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenue.ViewOf(routing))
}

// ReplaceDefaultExpenses godoc
// @Summary      Replace property default expenses
// @Description  Replace every default expense line of a property. Amounts must not be negative.
// @Tags         revenue-properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body revenueapp.ReplaceExpensesRequest true "Expenses"
// @Success      200 {object} APIResponse[[]revenue.DefaultExpense]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/properties/{id}/expenses [put]
func (h *RevenueHandler) ReplaceDefaultExpenses(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	propertyID, ok := h.pathID(c, "property")
	if !ok {
		return
	}

	var req revenueapp.ReplaceExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	expenses, err := h.settings.ReplaceDefaultExpenses(c.Request.Context(), tenantID, propertyID, req.ToExpenses())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if expenses == nil {
		expenses = []revenue.DefaultExpense{}
	}
	h.Success(c, expenses)
}

// CreateStaffWage godoc
// @Summary      Create staff wage
// @Description  Configure a standing monthly wage billed to the owner or the company
// @Tags         revenue-staff
// @Accept       json
// @Produce      json
// @Param        request body revenueapp.CreateStaffWageRequest true "Staff wage"
// @Success      201 {object} APIResponse[revenueapp.StaffWageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/staff-wages [post]
func (h *RevenueHandler) CreateStaffWage(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}

	var req revenueapp.CreateStaffWageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	cfg, err := h.settings.CreateStaffWage(c.Request.Context(), tenantID, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, revenueapp.ToStaffWageResponse(cfg))
}

// ListStaffWages godoc
// @Summary      List staff wages
// @Tags         revenue-staff
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by staff name"
// @Param        order_by query string false "Sort field" Enums(staff_name, monthly_wage, created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]revenueapp.StaffWageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/staff-wages [get]
func (h *RevenueHandler) ListStaffWages(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}

	var q revenueapp.StaffWageListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.settings.ListStaffWages(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]revenueapp.StaffWageResponse, len(page.Items))
	for i := range page.Items {
		items[i] = revenueapp.ToStaffWageResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// GetOverview godoc
// @Summary      Get financial overview
// @Description  Organization totals of gross revenue, fees, commissions, owner share and company net for the period
// @Tags         revenue-payouts
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Success      200 {object} APIResponse[revenue.FinancialOverview]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/overview [get]
func (h *RevenueHandler) GetOverview(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	filter, ok := h.earningsFilter(c)
	if !ok {
		return
	}

	overview, err := h.earnings.Overview(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// ListOwnerEarnings godoc
// @Summary      List owner earnings
// @Description  Owner share per owner after management fee, platform fees and owner-billed expenses
// @Tags         revenue-payouts
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Param        stakeholder_ids query string false "Comma separated owner IDs"
// @Success      200 {object} APIResponse[revenueapp.EarningsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/owners [get]
func (h *RevenueHandler) ListOwnerEarnings(c *gin.Context) {
	h.listEarnings(c, revenue.StakeholderOwner)
}

// ListPropertyManagerEarnings godoc
// @Summary      List property manager earnings
// @Description  Property manager split of the management fee per manager
// @Tags         revenue-payouts
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Param        stakeholder_ids query string false "Comma separated manager IDs"
// @Success      200 {object} APIResponse[revenueapp.EarningsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/property-managers [get]
func (h *RevenueHandler) ListPropertyManagerEarnings(c *gin.Context) {
	h.listEarnings(c, revenue.StakeholderPropertyManager)
}

// ListReferralAgentEarnings godoc
// @Summary      List referral agent earnings
// @Description  Referral commissions per agent, taken from the commission ledger
// @Tags         revenue-payouts
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Param        stakeholder_ids query string false "Comma separated agent IDs"
// @Success      200 {object} APIResponse[revenueapp.EarningsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/referral-agents [get]
func (h *RevenueHandler) ListReferralAgentEarnings(c *gin.Context) {
	h.listEarnings(c, revenue.StakeholderReferralAgent)
}

// ListRetailAgentEarnings godoc
// @Summary      List retail agent earnings
// @Description  Retail commissions per agent, taken from the commission ledger
// @Tags         revenue-payouts
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Param        stakeholder_ids query string false "Comma separated agent IDs"
// @Success      200 {object} APIResponse[revenueapp.EarningsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/retail-agents [get]
func (h *RevenueHandler) ListRetailAgentEarnings(c *gin.Context) {
	h.listEarnings(c, revenue.StakeholderRetailAgent)
}

// ListStaffEarnings godoc
// @Summary      List staff earnings
// @Description  Prorated monthly wages of active staff for the period
// @Tags         revenue-payouts
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Param        stakeholder_ids query string false "Comma separated staff IDs"
// @Success      200 {object} APIResponse[revenueapp.EarningsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/staff [get]
func (h *RevenueHandler) ListStaffEarnings(c *gin.Context) {
	h.listEarnings(c, revenue.StakeholderStaff)
}

func (h *RevenueHandler) listEarnings(c *gin.Context, kind revenue.StakeholderType) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	filter, ok := h.earningsFilter(c)
	if !ok {
		return
	}

	earnings, err := h.earnings.Earnings(c.Request.Context(), tenantID, kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenueapp.ToEarningsResponse(kind, filter, earnings))
}

// MarkPaid godoc
// @Summary      Mark payout paid
// @Description  Record payment of a stakeholder payout for a period. The payout is created when missing. Repeating a request with the same Idempotency-Key answers 409.
// @Tags         revenue-payouts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key"
// @Param        request body revenueapp.PayoutRequest true "Payout"
// @Success      200 {object} APIResponse[revenueapp.PayoutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/mark-paid [post]
func (h *RevenueHandler) MarkPaid(c *gin.Context) {
	h.advancePayout(c, func(ctx context.Context, tenantID uuid.UUID, a revenueapp.PayoutAction) (*revenue.StakeholderPayout, error) {
		return h.payouts.MarkPaid(ctx, tenantID, a)
	})
}

// QueuePayout godoc
// @Summary      Queue payout
// @Description  Move a pending stakeholder payout to queued. The payout is created when missing.
// @Tags         revenue-payouts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key"
// @Param        request body revenueapp.PayoutRequest true "Payout"
// @Success      200 {object} APIResponse[revenueapp.PayoutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/queue [post]
func (h *RevenueHandler) QueuePayout(c *gin.Context) {
	h.advancePayout(c, func(ctx context.Context, tenantID uuid.UUID, a revenueapp.PayoutAction) (*revenue.StakeholderPayout, error) {
		return h.payouts.Queue(ctx, tenantID, a)
	})
}

type payoutStep func(ctx context.Context, tenantID uuid.UUID, action revenueapp.PayoutAction) (*revenue.StakeholderPayout, error)

func (h *RevenueHandler) advancePayout(c *gin.Context, step payoutStep) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}

	var req revenueapp.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	action, err := req.ToAction(c.GetHeader(middleware.IdempotencyKeyHeader))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payout, err := step(c.Request.Context(), tenantID, action)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenueapp.ToPayoutResponse(payout))
}

// ExportPayouts godoc
// @Summary      Export payouts as CSV
// @Description  Download the earnings of one stakeholder type as CSV with a fixed header
// @Tags         revenue-payouts
// @Produce      text/csv
// @Param        type path string true "Stakeholder type" Enums(owners, property-managers, referral-agents, retail-agents, staff)
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Param        stakeholder_ids query string false "Comma separated stakeholder IDs"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/{type}/export [get]
func (h *RevenueHandler) ExportPayouts(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	kind, ok := h.stakeholderType(c)
	if !ok {
		return
	}
	filter, ok := h.earningsFilter(c)
	if !ok {
		return
	}

	report, err := h.exports.Export(c.Request.Context(), tenantID, kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}

// ArchivePayouts godoc
// @Summary      Archive payout export
// @Description  Write the CSV export to object storage and return a temporary download link
// @Tags         revenue-payouts
// @Produce      json
// @Param        type path string true "Stakeholder type" Enums(owners, property-managers, referral-agents, retail-agents, staff)
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        property_ids query string false "Comma separated property IDs"
// @Param        stakeholder_ids query string false "Comma separated stakeholder IDs"
// @Success      201 {object} APIResponse[revenueapp.ArchivedReport]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/payouts/{type}/archive [post]
func (h *RevenueHandler) ArchivePayouts(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	kind, ok := h.stakeholderType(c)
	if !ok {
		return
	}
	filter, ok := h.earningsFilter(c)
	if !ok {
		return
	}

	archived, err := h.exports.Archive(c.Request.Context(), tenantID, kind, filter)
	if errors.Is(err, revenueapp.ErrArchiveUnavailable) {
		h.ServiceUnavailable(c, "Report archiving is not configured")
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, archived)
}

// GetBookingBreakdown godoc
// @Summary      Get booking breakdown
// @Description  Split one booking's gross between owner, company, manager and agents. Query values replace the stored gross, channel and platform fees.
// @Tags         revenue-bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        gross query string false "Gross amount"
// @Param        channel query string false "Booking channel"
// @Param        platform_fees query string false "Platform fees"
// @Success      200 {object} APIResponse[revenue.BookingFinancialBreakdown]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/bookings/{id}/breakdown [get]
func (h *RevenueHandler) GetBookingBreakdown(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c, "booking")
	if !ok {
		return
	}

	var q revenueapp.BreakdownQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	overrides, err := q.ToOverrides()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	breakdown, err := h.breakdown.CalculateForBooking(c.Request.Context(), tenantID, bookingID, overrides)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, breakdown)
}

// PostBookingCommissions godoc
// @Summary      Post booking commissions
// @Description  Write the referral and retail agent commissions of a booking to the commission ledger. Posting twice does not duplicate entries.
// @Tags         revenue-bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} APIResponse[revenueapp.LedgerPostingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /revenue/bookings/{id}/commissions [post]
func (h *RevenueHandler) PostBookingCommissions(c *gin.Context) {
	tenantID, ok := h.organization(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c, "booking")
	if !ok {
		return
	}

	posting, err := h.ledger.PostForBooking(c.Request.Context(), tenantID, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenueapp.ToLedgerPostingResponse(posting))
}

func (h *RevenueHandler) organization(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization is required")
		return uuid.Nil, false
	}
	return tenantID, true
}

func (h *RevenueHandler) pathID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid "+entity+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *RevenueHandler) stakeholderType(c *gin.Context) (revenue.StakeholderType, bool) {
	kind, err := revenueapp.ParseStakeholderType(c.Param("type"))
	if err != nil {
		h.HandleError(c, err)
		return "", false
	}
	return kind, true
}

func (h *RevenueHandler) earningsFilter(c *gin.Context) (revenue.EarningsFilter, bool) {
	var q revenueapp.EarningsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return revenue.EarningsFilter{}, false
	}
	filter, err := q.ToFilter()
	if err != nil {
		h.HandleError(c, err)
		return revenue.EarningsFilter{}, false
	}
	return filter, true
}

func optionalID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "%s must be a valid UUID", field)
	}
	return &id, nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
