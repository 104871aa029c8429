package revenue

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format of report dates
const dateLayout = "2006-01-02"

// UpdateSettingsRequest replaces the organization defaults
type UpdateSettingsRequest struct {
	ManagementFeePct *decimal.Decimal `json:"management_fee_pct" binding:"required,percent"`
	PMSplitPct       *decimal.Decimal `json:"pm_split_pct" binding:"required,percent"`
	ReferralAgentPct *decimal.Decimal `json:"referral_agent_pct" binding:"required,percent"`
	RetailAgentPct   *decimal.Decimal `json:"retail_agent_pct" binding:"required,percent"`
	RetailAgentBasis string           `json:"retail_agent_basis" binding:"omitempty,oneof=management_fee gross"`
}

// ToRates converts the request. An omitted basis means management_fee.
func (r UpdateSettingsRequest) ToRates() revenue.CommissionRates {
	basis := revenue.RetailAgentBasis(r.RetailAgentBasis)
	if basis == "" {
		basis = revenue.RetailBasisManagementFee
	}
	return revenue.CommissionRates{
		ManagementFeePct: deref(r.ManagementFeePct),
		PMSplitPct:       deref(r.PMSplitPct),
		ReferralAgentPct: deref(r.ReferralAgentPct),
		RetailAgentPct:   deref(r.RetailAgentPct),
		RetailAgentBasis: basis,
	}
}

// OverrideRequest is a sparse property or booking override
type OverrideRequest struct {
	ManagementFeePct *decimal.Decimal `json:"management_fee_pct" binding:"omitempty,percent"`
	PMSplitPct       *decimal.Decimal `json:"pm_split_pct" binding:"omitempty,percent"`
	ReferralAgentPct *decimal.Decimal `json:"referral_agent_pct" binding:"omitempty,percent"`
	RetailAgentPct   *decimal.Decimal `json:"retail_agent_pct" binding:"omitempty,percent"`
	RetailAgentBasis *string          `json:"retail_agent_basis" binding:"omitempty,oneof=management_fee gross"`
	PMUserID         *uuid.UUID       `json:"pm_user_id"`
}

// ToOverride converts the request
func (r OverrideRequest) ToOverride() revenue.CommissionOverride {
	o := revenue.CommissionOverride{
		ManagementFeePct: r.ManagementFeePct,
		PMSplitPct:       r.PMSplitPct,
		ReferralAgentPct: r.ReferralAgentPct,
		RetailAgentPct:   r.RetailAgentPct,
		PMUserID:         r.PMUserID,
	}
	if r.RetailAgentBasis != nil {
		basis := revenue.RetailAgentBasis(*r.RetailAgentBasis)
		o.RetailAgentBasis = &basis
	}
	return o
}

// SettingsResponse is the resolved commission configuration
type SettingsResponse struct {
	ManagementFeePct  decimal.Decimal                       `json:"management_fee_pct"`
	PMSplitPct        decimal.Decimal                       `json:"pm_split_pct"`
	ReferralAgentPct  decimal.Decimal                       `json:"referral_agent_pct"`
	RetailAgentPct    decimal.Decimal                       `json:"retail_agent_pct"`
	RetailAgentBasis  string                                `json:"retail_agent_basis"`
	PropertyOverrides map[string]revenue.CommissionOverride `json:"property_overrides"`
	PropertyManagers  map[string]uuid.UUID                  `json:"property_managers"`
}

// ToSettingsResponse converts resolved settings
func ToSettingsResponse(s revenue.CommissionSettings) SettingsResponse {
	resp := SettingsResponse{
		ManagementFeePct:  s.ManagementFeePct,
		PMSplitPct:        s.PMSplitPct,
		ReferralAgentPct:  s.ReferralAgentPct,
		RetailAgentPct:    s.RetailAgentPct,
		RetailAgentBasis:  s.RetailAgentBasis.String(),
		PropertyOverrides: make(map[string]revenue.CommissionOverride, len(s.PropertyOverrides)),
		PropertyManagers:  make(map[string]uuid.UUID, len(s.PropertyManagers)),
	}
	for id, o := range s.PropertyOverrides {
		resp.PropertyOverrides[id.String()] = o
	}
	for id, pm := range s.PropertyManagers {
		resp.PropertyManagers[id.String()] = pm
	}
	return resp
}

// PropertyDefaultsResponse is the loaded configuration of one property
type PropertyDefaultsResponse struct {
	revenue.PropertyDefaults
	ChannelRouting map[string]revenue.RoutingView `json:"channel_routing"`
}

// ToPropertyDefaultsResponse converts property defaults
func ToPropertyDefaultsResponse(d revenue.PropertyDefaults) PropertyDefaultsResponse {
	routing := make(map[string]revenue.RoutingView, len(d.ChannelRouting))
	for channel, r := range d.ChannelRouting {
		routing[channel] = revenue.ViewOf(r)
	}
	return PropertyDefaultsResponse{PropertyDefaults: d, ChannelRouting: routing}
}

// ChannelRoutingRequest sets how a channel's gross is initially credited
type ChannelRoutingRequest struct {
	RoutingType     string           `json:"routing_type" binding:"required,oneof=company_100 owner_100 split"`
	OwnerSplitPct   *decimal.Decimal `json:"owner_split_pct" binding:"omitempty,percent"`
	CompanySplitPct *decimal.Decimal `json:"company_split_pct" binding:"omitempty,percent"`
}

// ExpenseItem is one default expense line
type ExpenseItem struct {
	ExpenseType string          `json:"expense_type" binding:"required,max=50"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=255"`
}

// ReplaceExpensesRequest replaces every default expense of a property
type ReplaceExpensesRequest struct {
	Expenses []ExpenseItem `json:"expenses" binding:"dive"`
}

// ToExpenses converts the request
func (r ReplaceExpensesRequest) ToExpenses() []revenue.DefaultExpense {
	out := make([]revenue.DefaultExpense, len(r.Expenses))
	for i, e := range r.Expenses {
		out[i] = revenue.DefaultExpense{
			ExpenseType: strings.TrimSpace(e.ExpenseType),
			Amount:      e.Amount,
			Description: e.Description,
		}
	}
	return out
}

// CreateStaffWageRequest configures a standing monthly wage
type CreateStaffWageRequest struct {
	StaffID     uuid.UUID        `json:"staff_id" binding:"required"`
	StaffName   string           `json:"staff_name" binding:"required,max=200"`
	MonthlyWage *decimal.Decimal `json:"monthly_wage" binding:"required"`
	BillTo      string           `json:"bill_to" binding:"required,oneof=owner company"`
	PropertyID  *uuid.UUID       `json:"property_id"`
}

// ToInput converts the request
func (r CreateStaffWageRequest) ToInput() StaffWageInput {
	return StaffWageInput{
		StaffID:     r.StaffID,
		StaffName:   strings.TrimSpace(r.StaffName),
		MonthlyWage: deref(r.MonthlyWage),
		BillTo:      revenue.BillTo(r.BillTo),
		PropertyID:  r.PropertyID,
	}
}

// StaffWageResponse is a staff wage configuration in API responses
type StaffWageResponse struct {
	ID          uuid.UUID       `json:"id"`
	StaffID     uuid.UUID       `json:"staff_id"`
	StaffName   string          `json:"staff_name"`
	MonthlyWage decimal.Decimal `json:"monthly_wage"`
	BillTo      string          `json:"bill_to"`
	PropertyID  *uuid.UUID      `json:"property_id,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToStaffWageResponse converts a wage configuration
func ToStaffWageResponse(c *revenue.StaffWageConfig) StaffWageResponse {
	return StaffWageResponse{
		ID:          c.ID,
		StaffID:     c.StaffID,
		StaffName:   c.StaffName,
		MonthlyWage: c.MonthlyWage,
		BillTo:      string(c.BillTo),
		PropertyID:  c.PropertyID,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}

// StaffWageListQuery is the paging query of the staff wage list
type StaffWageListQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=staff_name monthly_wage created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query
func (q StaffWageListQuery) ToFilter() shared.Filter {
	f := shared.DefaultFilter()
	f.Page = q.Page
	f.PageSize = q.PageSize
	f.Search = q.Search
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	return f
}

// EarningsQuery is the list filter shared by every payout report
type EarningsQuery struct {
	StartDate      string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate        string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	PropertyIDs    string `form:"property_ids"`
	StakeholderIDs string `form:"stakeholder_ids"`
}

// ToFilter parses the query into an earnings filter
func (q EarningsQuery) ToFilter() (revenue.EarningsFilter, error) {
	var f revenue.EarningsFilter
	var err error
	if f.StartDate, err = parseDate("start_date", q.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate("end_date", q.EndDate); err != nil {
		return f, err
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, shared.Newf(shared.ErrInvalidInput.Code, "end_date must not be before start_date")
	}
	if f.PropertyIDs, err = ParseIDList("property_ids", q.PropertyIDs); err != nil {
		return f, err
	}
	if f.StakeholderIDs, err = ParseIDList("stakeholder_ids", q.StakeholderIDs); err != nil {
		return f, err
	}
	return f, nil
}

// ParseIDList parses a comma separated list of UUIDs. Blank items are ignored.
func ParseIDList(field, raw string) ([]uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, shared.Newf(shared.ErrInvalidInput.Code, "%s contains an invalid id %q", field, p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "%s must be YYYY-MM-DD", field)
	}
	return &t, nil
}

// EarningsTotals sums a report
type EarningsTotals struct {
	Gross        decimal.Decimal `json:"gross"`
	Net          decimal.Decimal `json:"net"`
	Deductions   decimal.Decimal `json:"deductions"`
	BookingCount int             `json:"booking_count"`
}

// EarningsResponse is a stakeholder payout report
type EarningsResponse struct {
	StakeholderType string                       `json:"stakeholder_type"`
	StartDate       string                       `json:"start_date,omitempty"`
	EndDate         string                       `json:"end_date,omitempty"`
	Earnings        []revenue.StakeholderEarning `json:"earnings"`
	Totals          EarningsTotals               `json:"totals"`
}

// ToEarningsResponse builds a report response with totals
func ToEarningsResponse(kind revenue.StakeholderType, filter revenue.EarningsFilter, earnings []revenue.StakeholderEarning) EarningsResponse {
	if earnings == nil {
		earnings = []revenue.StakeholderEarning{}
	}
	resp := EarningsResponse{
		StakeholderType: kind.String(),
		Earnings:        earnings,
		Totals: EarningsTotals{
			Gross:      decimal.Zero,
			Net:        decimal.Zero,
			Deductions: decimal.Zero,
		},
	}
	if filter.StartDate != nil {
		resp.StartDate = filter.StartDate.Format(dateLayout)
	}
	if filter.EndDate != nil {
		resp.EndDate = filter.EndDate.Format(dateLayout)
	}
	for _, e := range earnings {
		resp.Totals.Gross = resp.Totals.Gross.Add(e.Gross)
		resp.Totals.Net = resp.Totals.Net.Add(e.Net)
		resp.Totals.Deductions = resp.Totals.Deductions.Add(e.Deductions)
		resp.Totals.BookingCount += e.BookingCount
	}
	return resp
}

// PayoutRequest identifies a stakeholder payout to move forward
type PayoutRequest struct {
	StakeholderID   uuid.UUID        `json:"stakeholder_id" binding:"required"`
	StakeholderType string           `json:"stakeholder_type" binding:"required,oneof=owner property_manager referral_agent retail_agent staff"`
	StartDate       string           `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate         string           `json:"end_date" binding:"required,datetime=2006-01-02"`
	Amount          *decimal.Decimal `json:"amount"`
	PaymentMethod   string           `json:"payment_method" binding:"max=50"`
	Reference       string           `json:"reference" binding:"max=100"`
}

// ToAction converts the request. idempotencyKey comes from the request header.
func (r PayoutRequest) ToAction(idempotencyKey string) (PayoutAction, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return PayoutAction{}, err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return PayoutAction{}, err
	}
	if start == nil || end == nil {
		return PayoutAction{}, shared.Newf(shared.ErrInvalidInput.Code, "start_date and end_date are required")
	}
	if end.Before(*start) {
		return PayoutAction{}, shared.Newf(shared.ErrInvalidInput.Code, "end_date must not be before start_date")
	}
	return PayoutAction{
		StakeholderID:   r.StakeholderID,
		StakeholderType: revenue.StakeholderType(r.StakeholderType),
		Period:          revenue.NewReportPeriod(*start, *end),
		Amount:          deref(r.Amount),
		PaymentMethod:   r.PaymentMethod,
		Reference:       r.Reference,
		IdempotencyKey:  idempotencyKey,
	}, nil
}

// PayoutResponse is a stakeholder payout in API responses
type PayoutResponse struct {
	ID              uuid.UUID       `json:"id"`
	StakeholderID   uuid.UUID       `json:"stakeholder_id"`
	StakeholderType string          `json:"stakeholder_type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	QueuedAt        *time.Time      `json:"queued_at,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	Version         int             `json:"version"`
}

// ToPayoutResponse converts a payout
func ToPayoutResponse(p *revenue.StakeholderPayout) PayoutResponse {
	return PayoutResponse{
		ID:              p.ID,
		StakeholderID:   p.StakeholderID,
		StakeholderType: p.StakeholderType.String(),
		StartDate:       p.Period.Start.Format(dateLayout),
		EndDate:         p.Period.End.Format(dateLayout),
		Amount:          p.Amount,
		Status:          string(p.Status),
		PaymentMethod:   p.PaymentMethod,
		Reference:       p.Reference,
		QueuedAt:        p.QueuedAt,
		PaidAt:          p.PaidAt,
		Version:         p.Version,
	}
}

// BreakdownQuery optionally replaces the stored booking values
type BreakdownQuery struct {
	Gross        string `form:"gross"`
	Channel      string `form:"channel" binding:"max=50"`
	PlatformFees string `form:"platform_fees"`
}

// ToOverrides parses the query
func (q BreakdownQuery) ToOverrides() (BreakdownOverrides, error) {
	var o BreakdownOverrides
	var err error
	if o.Gross, err = parseAmount("gross", q.Gross); err != nil {
		return o, err
	}
	if o.PlatformFees, err = parseAmount("platform_fees", q.PlatformFees); err != nil {
		return o, err
	}
	if q.Channel != "" {
		channel := q.Channel
		o.Channel = &channel
	}
	return o, nil
}

func parseAmount(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "%s must be a decimal number", field)
	}
	if d.IsNegative() {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "%s must not be negative", field)
	}
	return &d, nil
}

// LedgerEntryResponse is a posted agent commission
type LedgerEntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	AgentID   uuid.UUID       `json:"agent_id"`
	AgentType string          `json:"agent_type"`
	Amount    decimal.Decimal `json:"amount"`
	EarnedAt  string          `json:"earned_at"`
}

// LedgerPostingResponse is the outcome of posting a booking's commissions
type LedgerPostingResponse struct {
	BookingID uuid.UUID             `json:"booking_id"`
	Entries   []LedgerEntryResponse `json:"entries"`
	Inserted  int64                 `json:"inserted"`
}

// ToLedgerPostingResponse converts a posting
func ToLedgerPostingResponse(p *LedgerPosting) LedgerPostingResponse {
	entries := make([]LedgerEntryResponse, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = LedgerEntryResponse{
			ID:        e.ID,
			AgentID:   e.AgentID,
			AgentType: string(e.AgentType),
			Amount:    e.Amount,
			EarnedAt:  e.EarnedAt.Format(dateLayout),
		}
	}
	return LedgerPostingResponse{
		BookingID: p.Breakdown.BookingID,
		Entries:   entries,
		Inserted:  p.Inserted,
	}
}

// ParseStakeholderType validates a stakeholder type path segment. Both the underscore
// form and the URL form (property-managers, referral-agents) are accepted.
func ParseStakeholderType(raw string) (revenue.StakeholderType, error) {
	normalized := strings.TrimSuffix(strings.ReplaceAll(strings.ToLower(raw), "-", "_"), "s")
	kind := revenue.StakeholderType(normalized)
	if !kind.IsValid() {
		return "", shared.Newf(shared.ErrInvalidInput.Code, "unknown stakeholder type %q", raw)
	}
	return kind, nil
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

