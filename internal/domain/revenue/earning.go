package revenue

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StakeholderType is the class of party a payout goes to
type StakeholderType string

const (
	StakeholderOwner           StakeholderType = "owner"
	StakeholderPropertyManager StakeholderType = "property_manager"
	StakeholderReferralAgent   StakeholderType = "referral_agent"
	StakeholderRetailAgent     StakeholderType = "retail_agent"
	StakeholderStaff           StakeholderType = "staff"
)

// AllStakeholderTypes lists every stakeholder class in report order
var AllStakeholderTypes = []StakeholderType{
	StakeholderOwner,
	StakeholderPropertyManager,
	StakeholderReferralAgent,
	StakeholderRetailAgent,
	StakeholderStaff,
}

// IsValid checks if the type is known
func (t StakeholderType) IsValid() bool {
	for _, known := range AllStakeholderTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation of StakeholderType
func (t StakeholderType) String() string {
	return string(t)
}

// EarningsFilter narrows an aggregation. Zero values mean "no restriction".
type EarningsFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	PropertyIDs    []uuid.UUID
	StakeholderIDs []uuid.UUID
}

// IncludesStakeholder reports whether id passes the stakeholder allow-list
func (f EarningsFilter) IncludesStakeholder(id uuid.UUID) bool {
	return containsID(f.StakeholderIDs, id)
}

// IncludesProperty reports whether id passes the property allow-list
func (f EarningsFilter) IncludesProperty(id uuid.UUID) bool {
	return containsID(f.PropertyIDs, id)
}

// Period returns the reporting period, or false when the filter is open-ended
func (f EarningsFilter) Period() (ReportPeriod, bool) {
	if f.StartDate == nil || f.EndDate == nil {
		return ReportPeriod{}, false
	}
	return NewReportPeriod(*f.StartDate, *f.EndDate), true
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	if len(ids) == 0 {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// ReportPeriod is an inclusive date range, truncated to whole days in UTC
type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewReportPeriod normalizes start and end to midnight UTC
func NewReportPeriod(start, end time.Time) ReportPeriod {
	return ReportPeriod{Start: truncateDay(start), End: truncateDay(end)}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PropertyEarningLine is the per-property part of a stakeholder's earning
type PropertyEarningLine struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	BookingCount int             `json:"booking_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	Payout       decimal.Decimal `json:"payout"`
}

// StakeholderEarning aggregates what one stakeholder is owed over a period
type StakeholderEarning struct {
	StakeholderID   uuid.UUID             `json:"stakeholder_id"`
	StakeholderName string                `json:"stakeholder_name"`
	StakeholderType StakeholderType       `json:"stakeholder_type"`
	Gross           decimal.Decimal       `json:"gross"`
	Net             decimal.Decimal       `json:"net"`
	Deductions      decimal.Decimal       `json:"deductions"`
	BookingCount    int                   `json:"booking_count"`
	Status          PayoutStatus          `json:"status"`
	Properties      []PropertyEarningLine `json:"properties"`
}

// EarningsBook accumulates earnings for one stakeholder class
type EarningsBook struct {
	kind    StakeholderType
	entries map[uuid.UUID]*StakeholderEarning
	lines   map[uuid.UUID]map[uuid.UUID]*PropertyEarningLine
}

// NewEarningsBook creates an empty book for the given stakeholder class
func NewEarningsBook(kind StakeholderType) *EarningsBook {
	return &EarningsBook{
		kind:    kind,
		entries: make(map[uuid.UUID]*StakeholderEarning),
		lines:   make(map[uuid.UUID]map[uuid.UUID]*PropertyEarningLine),
	}
}

// Add accumulates one contribution for stakeholderID, merging it into the per-property line
func (b *EarningsBook) Add(stakeholderID, propertyID uuid.UUID, propertyName string, gross, net, deductions decimal.Decimal) {
	e, ok := b.entries[stakeholderID]
	if !ok {
		e = &StakeholderEarning{
			StakeholderID:   stakeholderID,
			StakeholderType: b.kind,
			Gross:           decimal.Zero,
			Net:             decimal.Zero,
			Deductions:      decimal.Zero,
			Status:          PayoutStatusPending,
		}
		b.entries[stakeholderID] = e
		b.lines[stakeholderID] = make(map[uuid.UUID]*PropertyEarningLine)
	}
	e.Gross = e.Gross.Add(gross)
	e.Net = e.Net.Add(net)
	e.Deductions = e.Deductions.Add(deductions)
	e.BookingCount++

	line, ok := b.lines[stakeholderID][propertyID]
	if !ok {
		line = &PropertyEarningLine{PropertyID: propertyID, PropertyName: propertyName, Revenue: decimal.Zero, Payout: decimal.Zero}
		b.lines[stakeholderID][propertyID] = line
	}
	line.BookingCount++
	line.Revenue = line.Revenue.Add(gross)
	line.Payout = line.Payout.Add(net)
}

// AddOwnerBreakdown credits a booking to its property's owner
func (b *EarningsBook) AddOwnerBreakdown(bd BookingFinancialBreakdown, propertyName string) {
	b.Add(bd.OwnerID, bd.PropertyID, propertyName,
		bd.GrossBookingRevenue,
		bd.FinalOwnerPayout,
		bd.ManagementFeeAmount.Add(bd.OwnerBillableExpenses))
}

// AddManagerBreakdown credits the PM share to the assigned manager.
// Returns false when the booking has no manager.
func (b *EarningsBook) AddManagerBreakdown(bd BookingFinancialBreakdown, propertyName string) bool {
	if bd.PMUserID == nil {
		return false
	}
	b.Add(*bd.PMUserID, bd.PropertyID, propertyName,
		bd.ManagementFeeAmount,
		bd.PMShare,
		bd.ManagementFeeAmount.Sub(bd.PMShare))
	return true
}

// AddLedgerEntry credits a posted agent commission
func (b *EarningsBook) AddLedgerEntry(entry CommissionLedgerEntry, propertyName string) {
	b.Add(entry.AgentID, entry.PropertyID, propertyName, entry.Amount, entry.Amount, decimal.Zero)
}

// Earnings returns the accumulated earnings sorted by stakeholder id, each with its
// property lines sorted by property id
func (b *EarningsBook) Earnings() []StakeholderEarning {
	out := make([]StakeholderEarning, 0, len(b.entries))
	for id, e := range b.entries {
		earning := *e
		earning.Properties = make([]PropertyEarningLine, 0, len(b.lines[id]))
		for _, line := range b.lines[id] {
			earning.Properties = append(earning.Properties, *line)
		}
		sort.Slice(earning.Properties, func(i, j int) bool {
			return earning.Properties[i].PropertyID.String() < earning.Properties[j].PropertyID.String()
		})
		out = append(out, earning)
	}
	SortEarnings(out)
	return out
}

// SortEarnings orders earnings by stakeholder id
func SortEarnings(earnings []StakeholderEarning) {
	sort.SliceStable(earnings, func(i, j int) bool {
		return earnings[i].StakeholderID.String() < earnings[j].StakeholderID.String()
	})
}

// ApplyNames fills StakeholderName from names, falling back to the id
func ApplyNames(earnings []StakeholderEarning, names map[uuid.UUID]string) {
	for i := range earnings {
		if earnings[i].StakeholderName != "" {
			continue
		}
		if name, ok := names[earnings[i].StakeholderID]; ok && name != "" {
			earnings[i].StakeholderName = name
			continue
		}
		earnings[i].StakeholderName = earnings[i].StakeholderID.String()
	}
}

// ApplyStatuses copies the persisted payout status onto matching earnings
func ApplyStatuses(earnings []StakeholderEarning, payouts []StakeholderPayout) {
	byStakeholder := make(map[uuid.UUID]PayoutStatus, len(payouts))
	for _, p := range payouts {
		byStakeholder[p.StakeholderID] = p.Status
	}
	for i := range earnings {
		if status, ok := byStakeholder[earnings[i].StakeholderID]; ok {
			earnings[i].Status = status
		}
	}
}

// StakeholderIDs returns the ids of the given earnings
func StakeholderIDs(earnings []StakeholderEarning) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(earnings))
	for _, e := range earnings {
		ids = append(ids, e.StakeholderID)
	}
	return ids
}
