package revenue

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDefaultsLoader_LoadDefaults(t *testing.T) {
	f := newFixture()
	f.routing = map[string]revenue.ChannelPayoutRouting{
		"airbnb": revenue.OwnerFullRouting{},
	}
	f.expenses = []revenue.DefaultExpense{
		{ExpenseType: "cleaning", Amount: dec("120")},
		{ExpenseType: "laundry", Amount: dec("30")},
	}
	f.withDefaultLayers()

	defaults, err := f.loader.LoadDefaults(context.Background(), f.tenantID, f.property.ID)

	require.NoError(t, err)
	assert.Equal(t, f.property.ID, defaults.PropertyID)
	assert.Equal(t, "Villa Azul", defaults.PropertyName)
	assert.Equal(t, f.property.OwnerID, defaults.OwnerID)
	assert.Equal(t, &f.pmID, defaults.PMUserID)
	assert.True(t, dec("15").Equal(defaults.ManagementFeePct))
	assert.True(t, dec("150").Equal(defaults.ExpenseTotal()))
	assert.Equal(t, revenue.RoutingOwner100, defaults.RoutingFor("airbnb").Type())
	assert.Equal(t, revenue.RoutingCompany100, defaults.RoutingFor("vrbo").Type())
}

func TestDefaultsLoader_LoadDefaults_PropertyNotFound(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.properties.On("FindByID", mock.Anything, f.tenantID, missing).Return(nil, shared.ErrNotFound)

	_, err := f.loader.LoadDefaults(context.Background(), f.tenantID, missing)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.properties.AssertNotCalled(t, "FindChannelRouting", mock.Anything, mock.Anything, mock.Anything)
}

func TestDefaultsLoader_LoadDefaults_RoutingFailurePropagates(t *testing.T) {
	f := newFixture()
	f.settings.On("FindOrganizationRates", mock.Anything, f.tenantID).Return(nil, shared.ErrNotFound)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeProperty, f.property.ID).
		Return(nil, shared.ErrNotFound)
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)
	f.properties.On("FindChannelRouting", mock.Anything, f.tenantID, f.property.ID).
		Return(nil, errors.New("relation does not exist"))

	_, err := f.loader.LoadDefaults(context.Background(), f.tenantID, f.property.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load channel routing")
}

func TestBreakdownService_CalculateForBooking_StoredValues(t *testing.T) {
	f := newFixture()
	f.withDefaultLayers()
	booking := f.booking("10000", "2024-03-05")
	f.bookings.On("FindByID", mock.Anything, f.tenantID, booking.ID).Return(&booking, nil)

	bd, err := f.breakdowns.CalculateForBooking(context.Background(), f.tenantID, booking.ID, BreakdownOverrides{})

	require.NoError(t, err)
	assert.Equal(t, booking.ID, bd.BookingID)
	assert.True(t, dec("300").Equal(bd.PlatformFees), "3 percent of gross when none recorded")
	assert.True(t, dec("1500").Equal(bd.ManagementFeeAmount))
	assert.True(t, dec("750").Equal(bd.PMShare))
	assert.Equal(t, &f.pmID, bd.PMUserID)
	assert.True(t, dec("150").Equal(bd.ReferralAgentCommission))
	assert.True(t, dec("600").Equal(bd.FinalCompanyRetention))
	assert.True(t, dec("8500").Equal(bd.FinalOwnerPayout))
	assert.True(t, bd.IsBalanced())
}

func TestBreakdownService_Calculate_ExplicitValuesAndSplitRouting(t *testing.T) {
	f := newFixture()
	split, err := revenue.NewChannelRouting(revenue.RoutingSplit, dec("60"), dec("40"))
	require.NoError(t, err)
	f.routing = map[string]revenue.ChannelPayoutRouting{"airbnb": split}
	f.withDefaultLayers()
	booking := f.booking("10000", "2024-03-05")
	f.bookings.On("FindByID", mock.Anything, f.tenantID, booking.ID).Return(&booking, nil)

	bd, err := f.breakdowns.Calculate(context.Background(), f.tenantID, booking.ID, dec("2000"), "airbnb", dec("50"))

	require.NoError(t, err)
	assert.True(t, dec("2000").Equal(bd.GrossBookingRevenue))
	assert.True(t, dec("50").Equal(bd.PlatformFees))
	assert.True(t, dec("1950").Equal(bd.NetBasis))
	assert.Equal(t, revenue.RoutingSplit, bd.Routing)
	assert.True(t, dec("1200").Equal(bd.InitialPayoutToOwner))
	assert.True(t, dec("800").Equal(bd.InitialPayoutToCompany))
	// routing never changes the fee math
	assert.True(t, dec("300").Equal(bd.ManagementFeeAmount))
	assert.True(t, dec("1700").Equal(bd.FinalOwnerPayout))
}

func TestBreakdownService_CalculateForBooking_BookingLayerManagerAndAgentRates(t *testing.T) {
	f := newFixture()
	bookingPM := uuid.New()
	booking := f.booking("10000", "2024-03-05")
	f.settings.On("FindOrganizationRates", mock.Anything, f.tenantID).Return(nil, shared.ErrNotFound)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeProperty, f.property.ID).
		Return(&revenue.CommissionOverride{PMUserID: &f.pmID}, nil)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeBooking, booking.ID).
		Return(&revenue.CommissionOverride{
			ManagementFeePct: decPtr("30"),
			ReferralAgentPct: decPtr("20"),
			PMUserID:         &bookingPM,
		}, nil)
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)
	f.properties.On("FindChannelRouting", mock.Anything, f.tenantID, f.property.ID).Return(nil, shared.ErrNotFound)
	f.properties.On("FindDefaultExpenses", mock.Anything, f.tenantID, f.property.ID).Return(nil, shared.ErrNotFound)
	f.bookings.On("FindByID", mock.Anything, f.tenantID, booking.ID).Return(&booking, nil)

	bd, err := f.breakdowns.CalculateForBooking(context.Background(), f.tenantID, booking.ID, BreakdownOverrides{})

	require.NoError(t, err)
	// fee percentage comes from the property defaults, not the booking layer
	assert.True(t, dec("1500").Equal(bd.ManagementFeeAmount))
	assert.Equal(t, &bookingPM, bd.PMUserID)
	// agent rate comes from the full resolution
	assert.True(t, dec("300").Equal(bd.ReferralAgentCommission))
	assert.True(t, bd.IsBalanced())
}

func TestBreakdownService_CalculateForBooking_BookingNotFound(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.bookings.On("FindByID", mock.Anything, f.tenantID, missing).Return(nil, shared.ErrNotFound)

	_, err := f.breakdowns.CalculateForBooking(context.Background(), f.tenantID, missing, BreakdownOverrides{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
