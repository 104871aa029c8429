package handler

import (
	"context"

	"github.com/google/uuid"
	revenueapp "github.com/rentalops/backend/internal/application/revenue"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockSettings struct{ mock.Mock }

func (m *mockSettings) GetSettings(ctx context.Context, tenantID uuid.UUID, propertyID, bookingID *uuid.UUID) (revenue.CommissionSettings, error) {
	args := m.Called(ctx, tenantID, propertyID, bookingID)
	return args.Get(0).(revenue.CommissionSettings), args.Error(1)
}

func (m *mockSettings) UpdateOrganizationRates(ctx context.Context, tenantID uuid.UUID, rates revenue.CommissionRates) (revenue.CommissionSettings, error) {
	args := m.Called(ctx, tenantID, rates)
	return args.Get(0).(revenue.CommissionSettings), args.Error(1)
}

func (m *mockSettings) SavePropertyOverride(ctx context.Context, tenantID, propertyID uuid.UUID, override revenue.CommissionOverride) (revenue.CommissionSettings, error) {
	args := m.Called(ctx, tenantID, propertyID, override)
	return args.Get(0).(revenue.CommissionSettings), args.Error(1)
}

func (m *mockSettings) SaveBookingOverride(ctx context.Context, tenantID, bookingID uuid.UUID, override revenue.CommissionOverride) (revenue.CommissionSettings, error) {
	args := m.Called(ctx, tenantID, bookingID, override)
	return args.Get(0).(revenue.CommissionSettings), args.Error(1)
}

func (m *mockSettings) DeletePropertyOverride(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	return m.Called(ctx, tenantID, propertyID).Error(0)
}

func (m *mockSettings) DeleteBookingOverride(ctx context.Context, tenantID, bookingID uuid.UUID) error {
	return m.Called(ctx, tenantID, bookingID).Error(0)
}

func (m *mockSettings) GetPropertyDefaults(ctx context.Context, tenantID, propertyID uuid.UUID) (revenue.PropertyDefaults, error) {
	args := m.Called(ctx, tenantID, propertyID)
	return args.Get(0).(revenue.PropertyDefaults), args.Error(1)
}

func (m *mockSettings) SaveChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID, channel string, routingType revenue.RoutingType, ownerPct, companyPct decimal.Decimal) (revenue.ChannelPayoutRouting, error) {
	args := m.Called(ctx, tenantID, propertyID, channel, routingType, ownerPct, companyPct)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(revenue.ChannelPayoutRouting), args.Error(1)
}

func (m *mockSettings) ReplaceDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID, expenses []revenue.DefaultExpense) ([]revenue.DefaultExpense, error) {
	args := m.Called(ctx, tenantID, propertyID, expenses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.DefaultExpense), args.Error(1)
}

func (m *mockSettings) CreateStaffWage(ctx context.Context, tenantID uuid.UUID, in revenueapp.StaffWageInput) (*revenue.StaffWageConfig, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.StaffWageConfig), args.Error(1)
}

func (m *mockSettings) ListStaffWages(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[revenue.StaffWageConfig], error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(shared.Paginated[revenue.StaffWageConfig]), args.Error(1)
}

type mockBreakdown struct{ mock.Mock }

func (m *mockBreakdown) CalculateForBooking(ctx context.Context, tenantID, bookingID uuid.UUID, overrides revenueapp.BreakdownOverrides) (revenue.BookingFinancialBreakdown, error) {
	args := m.Called(ctx, tenantID, bookingID, overrides)
	return args.Get(0).(revenue.BookingFinancialBreakdown), args.Error(1)
}

type mockEarnings struct{ mock.Mock }

func (m *mockEarnings) Earnings(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) ([]revenue.StakeholderEarning, error) {
	args := m.Called(ctx, tenantID, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]revenue.StakeholderEarning), args.Error(1)
}

func (m *mockEarnings) Overview(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) (revenue.FinancialOverview, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(revenue.FinancialOverview), args.Error(1)
}

type mockPayouts struct{ mock.Mock }

func (m *mockPayouts) MarkPaid(ctx context.Context, tenantID uuid.UUID, action revenueapp.PayoutAction) (*revenue.StakeholderPayout, error) {
	args := m.Called(ctx, tenantID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.StakeholderPayout), args.Error(1)
}

func (m *mockPayouts) Queue(ctx context.Context, tenantID uuid.UUID, action revenueapp.PayoutAction) (*revenue.StakeholderPayout, error) {
	args := m.Called(ctx, tenantID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.StakeholderPayout), args.Error(1)
}

type mockLedger struct{ mock.Mock }

func (m *mockLedger) PostForBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*revenueapp.LedgerPosting, error) {
	args := m.Called(ctx, tenantID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenueapp.LedgerPosting), args.Error(1)
}

type mockExports struct{ mock.Mock }

func (m *mockExports) Export(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (*revenueapp.Report, error) {
	args := m.Called(ctx, tenantID, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenueapp.Report), args.Error(1)
}

func (m *mockExports) Archive(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (*revenueapp.ArchivedReport, error) {
	args := m.Called(ctx, tenantID, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenueapp.ArchivedReport), args.Error(1)
}
