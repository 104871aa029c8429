package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/shopspring/decimal"
)

// PropertyModel is the revenue engine's view of the properties table
type PropertyModel struct {
	TenantModel
	Name            string     `gorm:"type:varchar(200);not null"`
	OwnerID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReferralAgentID *uuid.UUID `gorm:"type:uuid"`
	RetailAgentID   *uuid.UUID `gorm:"type:uuid"`
	IsActive        bool       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the model to a domain Property
func (m *PropertyModel) ToDomain() *revenue.Property {
	return &revenue.Property{
		ID:              m.ID,
		TenantID:        m.TenantID,
		Name:            m.Name,
		OwnerID:         m.OwnerID,
		ReferralAgentID: m.ReferralAgentID,
		RetailAgentID:   m.RetailAgentID,
		IsActive:        m.IsActive,
	}
}

// CommissionSettingsModel holds one organization's default rates
type CommissionSettingsModel struct {
	TenantModel
	ManagementFeePct decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	PMSplitPct       decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	ReferralAgentPct decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	RetailAgentPct   decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	RetailAgentBasis string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (CommissionSettingsModel) TableName() string {
	return "commission_settings"
}

// ToDomain converts the model to CommissionRates
func (m *CommissionSettingsModel) ToDomain() *revenue.CommissionRates {
	return &revenue.CommissionRates{
		ManagementFeePct: m.ManagementFeePct,
		PMSplitPct:       m.PMSplitPct,
		ReferralAgentPct: m.ReferralAgentPct,
		RetailAgentPct:   m.RetailAgentPct,
		RetailAgentBasis: revenue.RetailAgentBasis(m.RetailAgentBasis),
	}
}

// FromDomain copies rates into the model
func (m *CommissionSettingsModel) FromDomain(r revenue.CommissionRates) {
	m.ManagementFeePct = r.ManagementFeePct
	m.PMSplitPct = r.PMSplitPct
	m.ReferralAgentPct = r.ReferralAgentPct
	m.RetailAgentPct = r.RetailAgentPct
	m.RetailAgentBasis = string(r.RetailAgentBasis)
}

// CommissionOverrideModel is a sparse property- or booking-level override row.
// NULL columns are "not set at this layer".
type CommissionOverrideModel struct {
	TenantModel
	Scope            string              `gorm:"type:varchar(20);not null;uniqueIndex:idx_override_target,priority:1"`
	TargetID         uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_override_target,priority:2"`
	ManagementFeePct decimal.NullDecimal `gorm:"type:decimal(7,4)"`
	PMSplitPct       decimal.NullDecimal `gorm:"type:decimal(7,4)"`
	ReferralAgentPct decimal.NullDecimal `gorm:"type:decimal(7,4)"`
	RetailAgentPct   decimal.NullDecimal `gorm:"type:decimal(7,4)"`
	RetailAgentBasis *string             `gorm:"type:varchar(20)"`
	PMUserID         *uuid.UUID          `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CommissionOverrideModel) TableName() string {
	return "commission_overrides"
}

// ToDomain converts the row to a CommissionOverride
func (m *CommissionOverrideModel) ToDomain() *revenue.CommissionOverride {
	o := &revenue.CommissionOverride{
		ManagementFeePct: fromNull(m.ManagementFeePct),
		PMSplitPct:       fromNull(m.PMSplitPct),
		ReferralAgentPct: fromNull(m.ReferralAgentPct),
		RetailAgentPct:   fromNull(m.RetailAgentPct),
		PMUserID:         m.PMUserID,
	}
	if m.RetailAgentBasis != nil {
		basis := revenue.RetailAgentBasis(*m.RetailAgentBasis)
		o.RetailAgentBasis = &basis
	}
	return o
}

// FromDomain copies an override into the row
func (m *CommissionOverrideModel) FromDomain(o revenue.CommissionOverride) {
	m.ManagementFeePct = toNull(o.ManagementFeePct)
	m.PMSplitPct = toNull(o.PMSplitPct)
	m.ReferralAgentPct = toNull(o.ReferralAgentPct)
	m.RetailAgentPct = toNull(o.RetailAgentPct)
	m.RetailAgentBasis = nil
	if o.RetailAgentBasis != nil {
		basis := string(*o.RetailAgentBasis)
		m.RetailAgentBasis = &basis
	}
	m.PMUserID = o.PMUserID
}

func fromNull(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// ChannelRoutingModel stores one channel's payout routing for a property
type ChannelRoutingModel struct {
	TenantModel
	PropertyID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_routing_property_channel,priority:1"`
	Channel         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_routing_property_channel,priority:2"`
	RoutingType     string          `gorm:"type:varchar(20);not null"`
	OwnerSplitPct   decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	CompanySplitPct decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ChannelRoutingModel) TableName() string {
	return "channel_payout_routings"
}

// ToDomain rebuilds the routing without validation
func (m *ChannelRoutingModel) ToDomain() revenue.ChannelPayoutRouting {
	return revenue.RoutingFromRecord(revenue.RoutingType(m.RoutingType), m.OwnerSplitPct, m.CompanySplitPct)
}

// FromDomain copies a routing into the row
func (m *ChannelRoutingModel) FromDomain(r revenue.ChannelPayoutRouting) {
	view := revenue.ViewOf(r)
	m.RoutingType = string(view.RoutingType)
	m.OwnerSplitPct = decimal.Zero
	m.CompanySplitPct = decimal.Zero
	if view.OwnerSplitPct != nil {
		m.OwnerSplitPct = *view.OwnerSplitPct
	}
	if view.CompanySplitPct != nil {
		m.CompanySplitPct = *view.CompanySplitPct
	}
}

// DefaultExpenseModel is a recurring owner-billable expense line
type DefaultExpenseModel struct {
	TenantModel
	PropertyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExpenseType string          `gorm:"type:varchar(50);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description string          `gorm:"type:text"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DefaultExpenseModel) TableName() string {
	return "property_default_expenses"
}

// ToDomain converts the row to a DefaultExpense
func (m *DefaultExpenseModel) ToDomain() revenue.DefaultExpense {
	return revenue.DefaultExpense{
		ExpenseType: m.ExpenseType,
		Amount:      m.Amount,
		Description: m.Description,
	}
}

// BookingModel is the revenue engine's view of the bookings table
type BookingModel struct {
	TenantModel
	PropertyID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Channel      string              `gorm:"type:varchar(50);not null"`
	GuestName    string              `gorm:"type:varchar(200)"`
	CheckIn      time.Time           `gorm:"not null;index"`
	CheckOut     time.Time           `gorm:"not null"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	PlatformFees decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Status       string              `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the row to a domain Booking
func (m *BookingModel) ToDomain() *revenue.Booking {
	return &revenue.Booking{
		ID:           m.ID,
		TenantID:     m.TenantID,
		PropertyID:   m.PropertyID,
		Channel:      m.Channel,
		GuestName:    m.GuestName,
		CheckIn:      m.CheckIn,
		CheckOut:     m.CheckOut,
		TotalAmount:  m.TotalAmount,
		PlatformFees: fromNull(m.PlatformFees),
		Status:       revenue.BookingStatus(m.Status),
	}
}

// CommissionLedgerEntryModel is a posted agent commission
type CommissionLedgerEntryModel struct {
	TenantModel
	BookingID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_booking_agent,priority:1"`
	PropertyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AgentID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AgentType  string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_ledger_booking_agent,priority:2"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EarnedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CommissionLedgerEntryModel) TableName() string {
	return "commission_ledger_entries"
}

// ToDomain converts the row to a ledger entry
func (m *CommissionLedgerEntryModel) ToDomain() revenue.CommissionLedgerEntry {
	return revenue.CommissionLedgerEntry{
		TenantEntity: m.ToTenantEntity(),
		BookingID:    m.BookingID,
		PropertyID:   m.PropertyID,
		AgentID:      m.AgentID,
		AgentType:    revenue.AgentType(m.AgentType),
		Amount:       m.Amount,
		EarnedAt:     m.EarnedAt,
	}
}

// CommissionLedgerEntryModelFromDomain builds a row from a ledger entry
func CommissionLedgerEntryModelFromDomain(e revenue.CommissionLedgerEntry) *CommissionLedgerEntryModel {
	m := &CommissionLedgerEntryModel{
		BookingID:  e.BookingID,
		PropertyID: e.PropertyID,
		AgentID:    e.AgentID,
		AgentType:  string(e.AgentType),
		Amount:     e.Amount,
		EarnedAt:   e.EarnedAt,
	}
	m.FromTenantEntity(e.TenantEntity)
	return m
}

// StaffWageConfigModel stores a staff member's standing wage
type StaffWageConfigModel struct {
	TenantModel
	StaffID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffName   string          `gorm:"type:varchar(200)"`
	MonthlyWage decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BillTo      string          `gorm:"type:varchar(20);not null"`
	PropertyID  *uuid.UUID      `gorm:"type:uuid"`
	Active      bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StaffWageConfigModel) TableName() string {
	return "staff_wage_configs"
}

// ToDomain converts the row to a StaffWageConfig
func (m *StaffWageConfigModel) ToDomain() revenue.StaffWageConfig {
	return revenue.StaffWageConfig{
		TenantEntity: m.ToTenantEntity(),
		StaffID:      m.StaffID,
		StaffName:    m.StaffName,
		MonthlyWage:  m.MonthlyWage,
		BillTo:       revenue.BillTo(m.BillTo),
		PropertyID:   m.PropertyID,
		Active:       m.Active,
	}
}

// StaffWageConfigModelFromDomain builds a row from a wage config
func StaffWageConfigModelFromDomain(c *revenue.StaffWageConfig) *StaffWageConfigModel {
	m := &StaffWageConfigModel{
		StaffID:     c.StaffID,
		StaffName:   c.StaffName,
		MonthlyWage: c.MonthlyWage,
		BillTo:      string(c.BillTo),
		PropertyID:  c.PropertyID,
		Active:      c.Active,
	}
	m.FromTenantEntity(c.TenantEntity)
	return m
}

// StakeholderModel is the display directory for owners, managers, agents and staff
type StakeholderModel struct {
	TenantModel
	Name  string `gorm:"type:varchar(200);not null"`
	Kind  string `gorm:"type:varchar(30);not null"`
	Email string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (StakeholderModel) TableName() string {
	return "stakeholders"
}

// StakeholderPayoutModel stores settlement state per stakeholder and period
type StakeholderPayoutModel struct {
	TenantModel
	StakeholderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payout_period,priority:1"`
	StakeholderType string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_payout_period,priority:2"`
	PeriodStart     time.Time       `gorm:"type:date;not null;uniqueIndex:idx_payout_period,priority:3"`
	PeriodEnd       time.Time       `gorm:"type:date;not null;uniqueIndex:idx_payout_period,priority:4"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod   string          `gorm:"type:varchar(50)"`
	Reference       string          `gorm:"type:varchar(100)"`
	QueuedAt        *time.Time
	PaidAt          *time.Time
	Version         int `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (StakeholderPayoutModel) TableName() string {
	return "stakeholder_payouts"
}

// ToDomain converts the row to a StakeholderPayout
func (m *StakeholderPayoutModel) ToDomain() *revenue.StakeholderPayout {
	return &revenue.StakeholderPayout{
		TenantEntity:    m.ToTenantEntity(),
		StakeholderID:   m.StakeholderID,
		StakeholderType: revenue.StakeholderType(m.StakeholderType),
		Period:          revenue.NewReportPeriod(m.PeriodStart, m.PeriodEnd),
		Amount:          m.Amount,
		Status:          revenue.PayoutStatus(m.Status),
		PaymentMethod:   m.PaymentMethod,
		Reference:       m.Reference,
		QueuedAt:        m.QueuedAt,
		PaidAt:          m.PaidAt,
		Version:         m.Version,
	}
}

// StakeholderPayoutModelFromDomain builds a row from a payout
func StakeholderPayoutModelFromDomain(p *revenue.StakeholderPayout) *StakeholderPayoutModel {
	m := &StakeholderPayoutModel{
		StakeholderID:   p.StakeholderID,
		StakeholderType: string(p.StakeholderType),
		PeriodStart:     p.Period.Start,
		PeriodEnd:       p.Period.End,
		Amount:          p.Amount,
		Status:          string(p.Status),
		PaymentMethod:   p.PaymentMethod,
		Reference:       p.Reference,
		QueuedAt:        p.QueuedAt,
		PaidAt:          p.PaidAt,
		Version:         p.Version,
	}
	m.FromTenantEntity(p.TenantEntity)
	return m
}
