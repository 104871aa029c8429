package revenue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/shared"
)

// CommissionSettingsRepository persists the configuration layers.
// Find methods return shared.ErrNotFound when the layer has no row.
type CommissionSettingsRepository interface {
	FindOrganizationRates(ctx context.Context, tenantID uuid.UUID) (*CommissionRates, error)
	SaveOrganizationRates(ctx context.Context, tenantID uuid.UUID, rates CommissionRates) error
	FindOverride(ctx context.Context, tenantID uuid.UUID, scope OverrideScope, targetID uuid.UUID) (*CommissionOverride, error)
	SaveOverride(ctx context.Context, tenantID uuid.UUID, scope OverrideScope, targetID uuid.UUID, override CommissionOverride) error
	DeleteOverride(ctx context.Context, tenantID uuid.UUID, scope OverrideScope, targetID uuid.UUID) error
}

// PropertyRepository reads properties and their auxiliary configuration
type PropertyRepository interface {
	// FindByID returns shared.ErrNotFound when the property is not in the organization
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Property, error)
	FindChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID) (map[string]ChannelPayoutRouting, error)
	SaveChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID, channel string, routing ChannelPayoutRouting) error
	FindDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID) ([]DefaultExpense, error)
	ReplaceDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID, expenses []DefaultExpense) error
}

// BookingQuery selects bookings for aggregation
type BookingQuery struct {
	CheckInFrom *time.Time
	CheckInTo   *time.Time
	PropertyIDs []uuid.UUID
}

// BookingRepository reads bookings
type BookingRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Booking, error)
	// FindForPeriod returns non-cancelled bookings ordered by check-in then id
	FindForPeriod(ctx context.Context, tenantID uuid.UUID, query BookingQuery) ([]Booking, error)
}

// CommissionLedgerRepository stores posted agent commissions
type CommissionLedgerRepository interface {
	FindEntries(ctx context.Context, tenantID uuid.UUID, agentType AgentType, filter EarningsFilter) ([]CommissionLedgerEntry, error)
	// SaveEntries inserts entries, skipping any (booking, agent type) already posted.
	// Returns the number of rows written.
	SaveEntries(ctx context.Context, entries []CommissionLedgerEntry) (int64, error)
}

// StaffWageRepository stores staff wage configuration
type StaffWageRepository interface {
	FindActive(ctx context.Context, tenantID uuid.UUID, filter EarningsFilter) ([]StaffWageConfig, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StaffWageConfig, int64, error)
	Save(ctx context.Context, config *StaffWageConfig) error
}

// StakeholderDirectory resolves display names
type StakeholderDirectory interface {
	FindNames(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// PayoutRepository stores payout settlement state
type PayoutRepository interface {
	FindForStakeholder(ctx context.Context, tenantID uuid.UUID, kind StakeholderType, stakeholderID uuid.UUID, period ReportPeriod) (*StakeholderPayout, error)
	FindForPeriod(ctx context.Context, tenantID uuid.UUID, kind StakeholderType, period ReportPeriod) ([]StakeholderPayout, error)
	Create(ctx context.Context, payout *StakeholderPayout) error
	// CompareAndSetStatus persists payout only if the stored row still has expected status
	// and version payout.Version-1. Returns shared.ErrConcurrencyConflict otherwise.
	CompareAndSetStatus(ctx context.Context, payout *StakeholderPayout, expected PayoutStatus) error
}
