package revenue

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AgentType distinguishes the two commission-earning sales partner roles
type AgentType string

const (
	AgentTypeReferral AgentType = "referral"
	AgentTypeRetail   AgentType = "retail"
)

// StakeholderType maps the agent role to its stakeholder class
func (a AgentType) StakeholderType() StakeholderType {
	if a == AgentTypeRetail {
		return StakeholderRetailAgent
	}
	return StakeholderReferralAgent
}

// CommissionLedgerEntry is a posted agent commission for one booking
type CommissionLedgerEntry struct {
	shared.TenantEntity
	BookingID  uuid.UUID
	PropertyID uuid.UUID
	AgentID    uuid.UUID
	AgentType  AgentType
	Amount     decimal.Decimal
	EarnedAt   time.Time
}

// LedgerEntriesFromBreakdown produces the entries to post for a booking: one per assigned
// agent. Zero commissions are still posted so the booking is marked as handled.
func LedgerEntriesFromBreakdown(tenantID uuid.UUID, bd BookingFinancialBreakdown, earnedAt time.Time) []CommissionLedgerEntry {
	var entries []CommissionLedgerEntry
	if bd.ReferralAgentID != nil {
		entries = append(entries, CommissionLedgerEntry{
			TenantEntity: shared.NewTenantEntity(tenantID),
			BookingID:    bd.BookingID,
			PropertyID:   bd.PropertyID,
			AgentID:      *bd.ReferralAgentID,
			AgentType:    AgentTypeReferral,
			Amount:       bd.ReferralAgentCommission,
			EarnedAt:     earnedAt,
		})
	}
	if bd.RetailAgentID != nil {
		entries = append(entries, CommissionLedgerEntry{
			TenantEntity: shared.NewTenantEntity(tenantID),
			BookingID:    bd.BookingID,
			PropertyID:   bd.PropertyID,
			AgentID:      *bd.RetailAgentID,
			AgentType:    AgentTypeRetail,
			Amount:       bd.RetailAgentCommission,
			EarnedAt:     earnedAt,
		})
	}
	return entries
}
