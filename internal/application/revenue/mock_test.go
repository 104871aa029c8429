package revenue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockSettingsRepository is a mock implementation of revenue.CommissionSettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindOrganizationRates(ctx context.Context, tenantID uuid.UUID) (*revenue.CommissionRates, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.CommissionRates), args.Error(1)
}

func (m *MockSettingsRepository) SaveOrganizationRates(ctx context.Context, tenantID uuid.UUID, rates revenue.CommissionRates) error {
	args := m.Called(ctx, tenantID, rates)
	return args.Error(0)
}

func (m *MockSettingsRepository) FindOverride(ctx context.Context, tenantID uuid.UUID, scope revenue.OverrideScope, targetID uuid.UUID) (*revenue.CommissionOverride, error) {
	args := m.Called(ctx, tenantID, scope, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.CommissionOverride), args.Error(1)
}

func (m *MockSettingsRepository) SaveOverride(ctx context.Context, tenantID uuid.UUID, scope revenue.OverrideScope, targetID uuid.UUID, override revenue.CommissionOverride) error {
	args := m.Called(ctx, tenantID, scope, targetID, override)
	return args.Error(0)
}

func (m *MockSettingsRepository) DeleteOverride(ctx context.Context, tenantID uuid.UUID, scope revenue.OverrideScope, targetID uuid.UUID) error {
	args := m.Called(ctx, tenantID, scope, targetID)
	return args.Error(0)
}

// MockPropertyRepository is a mock implementation of revenue.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*revenue.Property, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]revenue.Property, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID) (map[string]revenue.ChannelPayoutRouting, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]revenue.ChannelPayoutRouting), args.Error(1)
}

func (m *MockPropertyRepository) SaveChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID, channel string, routing revenue.ChannelPayoutRouting) error {
	args := m.Called(ctx, tenantID, propertyID, channel, routing)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID) ([]revenue.DefaultExpense, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.DefaultExpense), args.Error(1)
}

func (m *MockPropertyRepository) ReplaceDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID, expenses []revenue.DefaultExpense) error {
	args := m.Called(ctx, tenantID, propertyID, expenses)
	return args.Error(0)
}

// MockBookingRepository is a mock implementation of revenue.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*revenue.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindForPeriod(ctx context.Context, tenantID uuid.UUID, query revenue.BookingQuery) ([]revenue.Booking, error) {
	args := m.Called(ctx, tenantID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.Booking), args.Error(1)
}

// MockLedgerRepository is a mock implementation of revenue.CommissionLedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntries(ctx context.Context, tenantID uuid.UUID, agentType revenue.AgentType, filter revenue.EarningsFilter) ([]revenue.CommissionLedgerEntry, error) {
	args := m.Called(ctx, tenantID, agentType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.CommissionLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntries(ctx context.Context, entries []revenue.CommissionLedgerEntry) (int64, error) {
	args := m.Called(ctx, entries)
	return args.Get(0).(int64), args.Error(1)
}

// MockStaffWageRepository is a mock implementation of revenue.StaffWageRepository
type MockStaffWageRepository struct {
	mock.Mock
}

func (m *MockStaffWageRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) ([]revenue.StaffWageConfig, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.StaffWageConfig), args.Error(1)
}

func (m *MockStaffWageRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]revenue.StaffWageConfig, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]revenue.StaffWageConfig), args.Get(1).(int64), args.Error(2)
}

func (m *MockStaffWageRepository) Save(ctx context.Context, config *revenue.StaffWageConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// MockStakeholderDirectory is a mock implementation of revenue.StakeholderDirectory
type MockStakeholderDirectory struct {
	mock.Mock
}

func (m *MockStakeholderDirectory) FindNames(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

// MockPayoutRepository is a mock implementation of revenue.PayoutRepository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) FindForStakeholder(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, stakeholderID uuid.UUID, period revenue.ReportPeriod) (*revenue.StakeholderPayout, error) {
	args := m.Called(ctx, tenantID, kind, stakeholderID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.StakeholderPayout), args.Error(1)
}

func (m *MockPayoutRepository) FindForPeriod(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, period revenue.ReportPeriod) ([]revenue.StakeholderPayout, error) {
	args := m.Called(ctx, tenantID, kind, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.StakeholderPayout), args.Error(1)
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *revenue.StakeholderPayout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

func (m *MockPayoutRepository) CompareAndSetStatus(ctx context.Context, payout *revenue.StakeholderPayout, expected revenue.PayoutStatus) error {
	args := m.Called(ctx, payout, expected)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Forget(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// Helper functions

func newTestLogger() *zap.Logger {
	return zap.NewNop()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixture is a one-property organization with an owner, a manager and a referral agent
type fixture struct {
	tenantID   uuid.UUID
	property   revenue.Property
	pmID       uuid.UUID
	routing    map[string]revenue.ChannelPayoutRouting
	expenses   []revenue.DefaultExpense
	settings   *MockSettingsRepository
	properties *MockPropertyRepository
	bookings   *MockBookingRepository
	resolver   *ConfigurationResolver
	loader     *DefaultsLoader
	breakdowns *BreakdownService
}

func newFixture() *fixture {
	tenantID := uuid.New()
	referral := uuid.New()
	f := &fixture{
		tenantID: tenantID,
		property: revenue.Property{
			ID:              uuid.New(),
			TenantID:        tenantID,
			Name:            "Villa Azul",
			OwnerID:         uuid.New(),
			ReferralAgentID: &referral,
			IsActive:        true,
		},
		pmID:       uuid.New(),
		settings:   new(MockSettingsRepository),
		properties: new(MockPropertyRepository),
		bookings:   new(MockBookingRepository),
	}
	logger := newTestLogger()
	f.resolver = NewConfigurationResolver(f.settings, logger)
	f.loader = NewDefaultsLoader(f.properties, f.resolver, logger)
	f.breakdowns = NewBreakdownService(f.bookings, f.loader, f.resolver, decimal.NewFromInt(3), nil, logger)
	return f
}

// withDefaultLayers stubs hardcoded organization defaults, a property override assigning
// the manager and no booking overrides. Routing and expenses come from the fixture.
func (f *fixture) withDefaultLayers() {
	routing := f.routing
	if routing == nil {
		routing = map[string]revenue.ChannelPayoutRouting{}
	}
	expenses := f.expenses
	if expenses == nil {
		expenses = []revenue.DefaultExpense{}
	}
	f.settings.On("FindOrganizationRates", mock.Anything, f.tenantID).Return(nil, shared.ErrNotFound)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeProperty, f.property.ID).
		Return(&revenue.CommissionOverride{PMUserID: &f.pmID}, nil)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeBooking, mock.Anything).
		Return(nil, shared.ErrNotFound)
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)
	f.properties.On("FindChannelRouting", mock.Anything, f.tenantID, f.property.ID).
		Return(routing, nil)
	f.properties.On("FindDefaultExpenses", mock.Anything, f.tenantID, f.property.ID).
		Return(expenses, nil)
}

func (f *fixture) booking(total string, checkIn string) revenue.Booking {
	return revenue.Booking{
		ID:          uuid.New(),
		TenantID:    f.tenantID,
		PropertyID:  f.property.ID,
		Channel:     "direct",
		CheckIn:     date(checkIn),
		CheckOut:    date(checkIn).AddDate(0, 0, 3),
		TotalAmount: dec(total),
		Status:      revenue.BookingStatusConfirmed,
	}
}
