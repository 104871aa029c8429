package revenue

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property is the slice of a rental property the revenue engine needs
type Property struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	OwnerID         uuid.UUID
	ReferralAgentID *uuid.UUID
	RetailAgentID   *uuid.UUID
	IsActive        bool
}

// DefaultExpense is a recurring owner-billable expense line
type DefaultExpense struct {
	ExpenseType string          `json:"expense_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// PropertyDefaults is the per-property configuration fed into the calculator
type PropertyDefaults struct {
	PropertyID       uuid.UUID                       `json:"property_id"`
	PropertyName     string                          `json:"property_name"`
	OwnerID          uuid.UUID                       `json:"owner_id"`
	ManagementFeePct decimal.Decimal                 `json:"management_fee_pct"`
	PMUserID         *uuid.UUID                      `json:"pm_user_id,omitempty"`
	PMSplitPct       decimal.Decimal                 `json:"pm_split_pct"`
	ReferralAgentID  *uuid.UUID                      `json:"referral_agent_id,omitempty"`
	RetailAgentID    *uuid.UUID                      `json:"retail_agent_id,omitempty"`
	DefaultExpenses  []DefaultExpense                `json:"default_expenses"`
	ChannelRouting   map[string]ChannelPayoutRouting `json:"-"`
}

// NewPropertyDefaults assembles defaults from a property row, its resolved settings and
// the two auxiliary collections. Nil collections become empty.
func NewPropertyDefaults(p Property, settings CommissionSettings, expenses []DefaultExpense, routing map[string]ChannelPayoutRouting) PropertyDefaults {
	if expenses == nil {
		expenses = []DefaultExpense{}
	}
	if routing == nil {
		routing = map[string]ChannelPayoutRouting{}
	}
	return PropertyDefaults{
		PropertyID:       p.ID,
		PropertyName:     p.Name,
		OwnerID:          p.OwnerID,
		ManagementFeePct: settings.ManagementFeePct,
		PMUserID:         settings.ManagerFor(p.ID),
		PMSplitPct:       settings.PMSplitPct,
		ReferralAgentID:  p.ReferralAgentID,
		RetailAgentID:    p.RetailAgentID,
		DefaultExpenses:  expenses,
		ChannelRouting:   routing,
	}
}

// RoutingFor returns the routing configured for channel, company_100 when none is
func (d PropertyDefaults) RoutingFor(channel string) ChannelPayoutRouting {
	if r, ok := d.ChannelRouting[channel]; ok && r != nil {
		return r
	}
	return CompanyFullRouting{}
}

// ExpenseTotal sums the default expense amounts
func (d PropertyDefaults) ExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range d.DefaultExpenses {
		total = total.Add(e.Amount)
	}
	return total
}

// BookingStatus is the lifecycle state of a booking as recorded by the PMS
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the read model of a reservation
type Booking struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	PropertyID   uuid.UUID
	Channel      string
	GuestName    string
	CheckIn      time.Time
	CheckOut     time.Time
	TotalAmount  decimal.Decimal
	PlatformFees *decimal.Decimal
	Status       BookingStatus
}

// EffectivePlatformFees returns the recorded platform fees, or defaultPct of the total when
// nothing was recorded
func (b Booking) EffectivePlatformFees(defaultPct decimal.Decimal) decimal.Decimal {
	if b.PlatformFees != nil {
		return *b.PlatformFees
	}
	return b.TotalAmount.Mul(defaultPct).Div(hundred)
}
