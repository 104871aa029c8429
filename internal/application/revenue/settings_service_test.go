package revenue

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type settingsFixture struct {
	*fixture
	staff   *MockStaffWageRepository
	service *SettingsService
}

func newSettingsFixture() *settingsFixture {
	f := &settingsFixture{fixture: newFixture(), staff: new(MockStaffWageRepository)}
	f.service = NewSettingsService(f.settings, f.properties, f.bookings, f.staff, f.resolver, f.loader, newTestLogger())
	return f
}

func TestSettingsService_UpdateOrganizationRates(t *testing.T) {
	f := newSettingsFixture()
	rates := revenue.CommissionRates{
		ManagementFeePct: dec("20"),
		PMSplitPct:       dec("40"),
		ReferralAgentPct: dec("5"),
		RetailAgentPct:   dec("7.5"),
		RetailAgentBasis: revenue.RetailBasisGross,
	}
	f.settings.On("SaveOrganizationRates", mock.Anything, f.tenantID, rates).Return(nil)
	f.settings.On("FindOrganizationRates", mock.Anything, f.tenantID).Return(&rates, nil)

	settings, err := f.service.UpdateOrganizationRates(context.Background(), f.tenantID, rates)

	require.NoError(t, err)
	assert.True(t, dec("20").Equal(settings.ManagementFeePct))
	assert.True(t, dec("7.5").Equal(settings.RetailAgentPct))
	assert.Equal(t, revenue.RetailBasisGross, settings.RetailAgentBasis)
	f.settings.AssertExpectations(t)
}

func TestSettingsService_UpdateOrganizationRates_RejectsOutOfRange(t *testing.T) {
	f := newSettingsFixture()
	rates := revenue.DefaultCommissionRates()
	rates.PMSplitPct = dec("120")

	_, err := f.service.UpdateOrganizationRates(context.Background(), f.tenantID, rates)

	assert.ErrorIs(t, err, shared.ErrInvalidPercentage)
	f.settings.AssertNotCalled(t, "SaveOrganizationRates", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsService_SavePropertyOverride(t *testing.T) {
	f := newSettingsFixture()
	override := revenue.CommissionOverride{ManagementFeePct: decPtr("18")}
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)
	f.settings.On("SaveOverride", mock.Anything, f.tenantID, revenue.OverrideScopeProperty, f.property.ID, override).Return(nil)
	f.settings.On("FindOrganizationRates", mock.Anything, f.tenantID).Return(nil, shared.ErrNotFound)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeProperty, f.property.ID).Return(&override, nil)

	settings, err := f.service.SavePropertyOverride(context.Background(), f.tenantID, f.property.ID, override)

	require.NoError(t, err)
	assert.True(t, dec("18").Equal(settings.ManagementFeePct))
	assert.Contains(t, settings.PropertyOverrides, f.property.ID)
}

func TestSettingsService_SavePropertyOverride_Rejections(t *testing.T) {
	f := newSettingsFixture()
	missing := uuid.New()
	f.properties.On("FindByID", mock.Anything, f.tenantID, missing).Return(nil, shared.ErrNotFound)
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)

	_, err := f.service.SavePropertyOverride(context.Background(), f.tenantID, missing, revenue.CommissionOverride{ManagementFeePct: decPtr("10")})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.service.SavePropertyOverride(context.Background(), f.tenantID, f.property.ID, revenue.CommissionOverride{ManagementFeePct: decPtr("-1")})
	assert.ErrorIs(t, err, shared.ErrInvalidPercentage)

	_, err = f.service.SavePropertyOverride(context.Background(), f.tenantID, f.property.ID, revenue.CommissionOverride{})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	f.settings.AssertNotCalled(t, "SaveOverride", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsService_SaveBookingOverride(t *testing.T) {
	f := newSettingsFixture()
	booking := f.booking("1000", "2024-03-01")
	pm := uuid.New()
	override := revenue.CommissionOverride{PMUserID: &pm}
	f.bookings.On("FindByID", mock.Anything, f.tenantID, booking.ID).Return(&booking, nil)
	f.settings.On("SaveOverride", mock.Anything, f.tenantID, revenue.OverrideScopeBooking, booking.ID, override).Return(nil)
	f.settings.On("FindOrganizationRates", mock.Anything, f.tenantID).Return(nil, shared.ErrNotFound)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeProperty, f.property.ID).Return(nil, shared.ErrNotFound)
	f.settings.On("FindOverride", mock.Anything, f.tenantID, revenue.OverrideScopeBooking, booking.ID).Return(&override, nil)

	settings, err := f.service.SaveBookingOverride(context.Background(), f.tenantID, booking.ID, override)

	require.NoError(t, err)
	assert.Equal(t, &pm, settings.ManagerFor(f.property.ID))
}

func TestSettingsService_DeleteOverrides(t *testing.T) {
	f := newSettingsFixture()
	bookingID := uuid.New()
	f.settings.On("DeleteOverride", mock.Anything, f.tenantID, revenue.OverrideScopeProperty, f.property.ID).Return(nil)
	f.settings.On("DeleteOverride", mock.Anything, f.tenantID, revenue.OverrideScopeBooking, bookingID).Return(shared.ErrNotFound)

	assert.NoError(t, f.service.DeletePropertyOverride(context.Background(), f.tenantID, f.property.ID))
	assert.ErrorIs(t, f.service.DeleteBookingOverride(context.Background(), f.tenantID, bookingID), shared.ErrNotFound)
}

func TestSettingsService_GetSettings_BookingImpliesProperty(t *testing.T) {
	f := newSettingsFixture()
	f.withDefaultLayers()
	booking := f.booking("1000", "2024-03-01")
	f.bookings.On("FindByID", mock.Anything, f.tenantID, booking.ID).Return(&booking, nil)

	settings, err := f.service.GetSettings(context.Background(), f.tenantID, nil, &booking.ID)

	require.NoError(t, err)
	assert.Equal(t, &f.pmID, settings.ManagerFor(f.property.ID))
}

func TestSettingsService_SaveChannelRouting(t *testing.T) {
	f := newSettingsFixture()
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)
	f.properties.On("SaveChannelRouting", mock.Anything, f.tenantID, f.property.ID, "airbnb", mock.Anything).Return(nil)

	routing, err := f.service.SaveChannelRouting(context.Background(), f.tenantID, f.property.ID, " airbnb ", revenue.RoutingSplit, dec("70"), dec("30"))

	require.NoError(t, err)
	assert.Equal(t, revenue.RoutingSplit, routing.Type())

	_, err = f.service.SaveChannelRouting(context.Background(), f.tenantID, f.property.ID, "vrbo", revenue.RoutingSplit, dec("70"), dec("20"))
	assert.ErrorIs(t, err, shared.ErrInvalidPercentage)

	_, err = f.service.SaveChannelRouting(context.Background(), f.tenantID, f.property.ID, "", revenue.RoutingOwner100, dec("0"), dec("0"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	f.properties.AssertNumberOfCalls(t, "SaveChannelRouting", 1)
}

func TestSettingsService_ReplaceDefaultExpenses(t *testing.T) {
	f := newSettingsFixture()
	expenses := []revenue.DefaultExpense{{ExpenseType: "cleaning", Amount: dec("80")}}
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)
	f.properties.On("ReplaceDefaultExpenses", mock.Anything, f.tenantID, f.property.ID, expenses).Return(nil)
	f.properties.On("FindDefaultExpenses", mock.Anything, f.tenantID, f.property.ID).Return(expenses, nil)

	saved, err := f.service.ReplaceDefaultExpenses(context.Background(), f.tenantID, f.property.ID, expenses)
	require.NoError(t, err)
	assert.Equal(t, expenses, saved)

	_, err = f.service.ReplaceDefaultExpenses(context.Background(), f.tenantID, f.property.ID,
		[]revenue.DefaultExpense{{ExpenseType: "cleaning", Amount: dec("-5")}})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestSettingsService_CreateStaffWage(t *testing.T) {
	f := newSettingsFixture()
	f.properties.On("FindByID", mock.Anything, f.tenantID, f.property.ID).Return(&f.property, nil)
	f.staff.On("FindActive", mock.Anything, f.tenantID, mock.Anything).Return([]revenue.StaffWageConfig{}, nil)
	f.staff.On("Save", mock.Anything, mock.AnythingOfType("*revenue.StaffWageConfig")).Return(nil)

	cfg, err := f.service.CreateStaffWage(context.Background(), f.tenantID, StaffWageInput{
		StaffID:     uuid.New(),
		StaffName:   "Carla",
		MonthlyWage: dec("1200"),
		BillTo:      revenue.BillToOwner,
		PropertyID:  &f.property.ID,
	})

	require.NoError(t, err)
	assert.True(t, cfg.Active)
	assert.Equal(t, f.tenantID, cfg.TenantID)

	_, err = f.service.CreateStaffWage(context.Background(), f.tenantID, StaffWageInput{
		StaffID:     uuid.New(),
		MonthlyWage: dec("1200"),
		BillTo:      revenue.BillToOwner,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	f.staff.AssertNumberOfCalls(t, "Save", 1)
}

func TestSettingsService_CreateStaffWage_RejectsSecondActiveConfig(t *testing.T) {
	f := newSettingsFixture()
	staffID := uuid.New()
	current, err := revenue.NewStaffWageConfig(f.tenantID, staffID, "Carla", dec("1200"), revenue.BillToCompany, nil)
	require.NoError(t, err)
	f.staff.On("FindActive", mock.Anything, f.tenantID, revenue.EarningsFilter{StakeholderIDs: []uuid.UUID{staffID}}).
		Return([]revenue.StaffWageConfig{*current}, nil)

	_, err = f.service.CreateStaffWage(context.Background(), f.tenantID, StaffWageInput{
		StaffID:     staffID,
		StaffName:   "Carla",
		MonthlyWage: dec("1500"),
		BillTo:      revenue.BillToCompany,
	})

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	f.staff.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsService_ListStaffWages(t *testing.T) {
	f := newSettingsFixture()
	filter := shared.DefaultFilter()
	filter.PageSize = 1
	cfg, err := revenue.NewStaffWageConfig(f.tenantID, uuid.New(), "Carla", dec("1200"), revenue.BillToCompany, nil)
	require.NoError(t, err)
	f.staff.On("List", mock.Anything, f.tenantID, filter).Return([]revenue.StaffWageConfig{*cfg}, int64(3), nil)

	page, err := f.service.ListStaffWages(context.Background(), f.tenantID, filter)

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}
