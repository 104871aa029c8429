package revenue

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettingsService administers the configuration layers. Every write validates
// percentages so misconfiguration is rejected here rather than at calculation time.
type SettingsService struct {
	settingsRepo revenue.CommissionSettingsRepository
	propertyRepo revenue.PropertyRepository
	bookingRepo  revenue.BookingRepository
	staffRepo    revenue.StaffWageRepository
	resolver     *ConfigurationResolver
	loader       *DefaultsLoader
	logger       *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsRepo revenue.CommissionSettingsRepository,
	propertyRepo revenue.PropertyRepository,
	bookingRepo revenue.BookingRepository,
	staffRepo revenue.StaffWageRepository,
	resolver *ConfigurationResolver,
	loader *DefaultsLoader,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		resolver:     resolver,
		loader:       loader,
		logger:       logger,
	}
}

// GetSettings returns the resolved settings, optionally for a property and booking.
// A referenced property or booking must exist in the organization.
func (s *SettingsService) GetSettings(ctx context.Context, tenantID uuid.UUID, propertyID, bookingID *uuid.UUID) (revenue.CommissionSettings, error) {
	if propertyID != nil {
		if _, err := s.propertyRepo.FindByID(ctx, tenantID, *propertyID); err != nil {
			return revenue.CommissionSettings{}, err
		}
	}
	if bookingID != nil {
		booking, err := s.bookingRepo.FindByID(ctx, tenantID, *bookingID)
		if err != nil {
			return revenue.CommissionSettings{}, err
		}
		if propertyID == nil {
			propertyID = &booking.PropertyID
		}
	}
	return s.resolver.Resolve(ctx, tenantID, propertyID, bookingID), nil
}

// UpdateOrganizationRates replaces the organization defaults and returns the new
// organization-level settings
func (s *SettingsService) UpdateOrganizationRates(ctx context.Context, tenantID uuid.UUID, rates revenue.CommissionRates) (revenue.CommissionSettings, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "commission_settings", "update",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
	)
	defer span.End()

	if err := rates.Validate(); err != nil {
		return revenue.CommissionSettings{}, err
	}
	if err := s.settingsRepo.SaveOrganizationRates(ctx, tenantID, rates); err != nil {
		telemetry.RecordError(span, err)
		return revenue.CommissionSettings{}, err
	}

	s.logger.Info("Organization commission settings updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("management_fee_pct", rates.ManagementFeePct.String()),
		zap.String("pm_split_pct", rates.PMSplitPct.String()),
	)
	return s.resolver.Resolve(ctx, tenantID, nil, nil), nil
}

// SavePropertyOverride writes the property layer
func (s *SettingsService) SavePropertyOverride(ctx context.Context, tenantID, propertyID uuid.UUID, override revenue.CommissionOverride) (revenue.CommissionSettings, error) {
	if _, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID); err != nil {
		return revenue.CommissionSettings{}, err
	}
	if err := s.saveOverride(ctx, tenantID, revenue.OverrideScopeProperty, propertyID, override); err != nil {
		return revenue.CommissionSettings{}, err
	}
	return s.resolver.Resolve(ctx, tenantID, &propertyID, nil), nil
}

// SaveBookingOverride writes the booking layer
func (s *SettingsService) SaveBookingOverride(ctx context.Context, tenantID, bookingID uuid.UUID, override revenue.CommissionOverride) (revenue.CommissionSettings, error) {
	booking, err := s.bookingRepo.FindByID(ctx, tenantID, bookingID)
	if err != nil {
		return revenue.CommissionSettings{}, err
	}
	if err := s.saveOverride(ctx, tenantID, revenue.OverrideScopeBooking, bookingID, override); err != nil {
		return revenue.CommissionSettings{}, err
	}
	return s.resolver.Resolve(ctx, tenantID, &booking.PropertyID, &bookingID), nil
}

func (s *SettingsService) saveOverride(ctx context.Context, tenantID uuid.UUID, scope revenue.OverrideScope, targetID uuid.UUID, override revenue.CommissionOverride) error {
	if err := override.Validate(); err != nil {
		return err
	}
	if override.IsEmpty() {
		return shared.Newf(shared.ErrInvalidInput.Code, "override sets no fields; delete it instead")
	}
	if err := s.settingsRepo.SaveOverride(ctx, tenantID, scope, targetID, override); err != nil {
		return err
	}
	s.logger.Info("Commission override saved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("scope", string(scope)),
		zap.String("target_id", targetID.String()),
	)
	return nil
}

// DeletePropertyOverride removes the property layer
func (s *SettingsService) DeletePropertyOverride(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	return s.settingsRepo.DeleteOverride(ctx, tenantID, revenue.OverrideScopeProperty, propertyID)
}

// DeleteBookingOverride removes the booking layer
func (s *SettingsService) DeleteBookingOverride(ctx context.Context, tenantID, bookingID uuid.UUID) error {
	return s.settingsRepo.DeleteOverride(ctx, tenantID, revenue.OverrideScopeBooking, bookingID)
}

// GetPropertyDefaults returns the loaded defaults of a property
func (s *SettingsService) GetPropertyDefaults(ctx context.Context, tenantID, propertyID uuid.UUID) (revenue.PropertyDefaults, error) {
	return s.loader.LoadDefaults(ctx, tenantID, propertyID)
}

// SaveChannelRouting sets how a channel's gross is initially credited for a property
func (s *SettingsService) SaveChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID, channel string, routingType revenue.RoutingType, ownerPct, companyPct decimal.Decimal) (revenue.ChannelPayoutRouting, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "channel is required")
	}
	routing, err := revenue.NewChannelRouting(routingType, ownerPct, companyPct)
	if err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.SaveChannelRouting(ctx, tenantID, propertyID, channel, routing); err != nil {
		return nil, err
	}
	s.logger.Info("Channel routing saved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("property_id", propertyID.String()),
		zap.String("channel", channel),
		zap.String("routing_type", string(routing.Type())),
	)
	return routing, nil
}

// ReplaceDefaultExpenses replaces the owner-billable expense lines of a property
func (s *SettingsService) ReplaceDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID, expenses []revenue.DefaultExpense) ([]revenue.DefaultExpense, error) {
	for i, e := range expenses {
		if strings.TrimSpace(e.ExpenseType) == "" {
			return nil, shared.Newf(shared.ErrInvalidInput.Code, "expenses[%d].expense_type is required", i)
		}
		if e.Amount.IsNegative() {
			return nil, shared.Newf(shared.ErrInvalidInput.Code, "expenses[%d].amount must not be negative", i)
		}
	}
	if _, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.ReplaceDefaultExpenses(ctx, tenantID, propertyID, expenses); err != nil {
		return nil, err
	}
	return s.propertyRepo.FindDefaultExpenses(ctx, tenantID, propertyID)
}

// StaffWageInput describes a staff wage configuration to create
type StaffWageInput struct {
	StaffID     uuid.UUID
	StaffName   string
	MonthlyWage decimal.Decimal
	BillTo      revenue.BillTo
	PropertyID  *uuid.UUID
}

// CreateStaffWage stores a staff wage configuration. A staff member has at most one
// active configuration, so their earning and payout status stay one-to-one.
func (s *SettingsService) CreateStaffWage(ctx context.Context, tenantID uuid.UUID, in StaffWageInput) (*revenue.StaffWageConfig, error) {
	cfg, err := revenue.NewStaffWageConfig(tenantID, in.StaffID, in.StaffName, in.MonthlyWage, in.BillTo, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if in.PropertyID != nil {
		if _, err := s.propertyRepo.FindByID(ctx, tenantID, *in.PropertyID); err != nil {
			return nil, err
		}
	}
	existing, err := s.staffRepo.FindActive(ctx, tenantID, revenue.EarningsFilter{StakeholderIDs: []uuid.UUID{in.StaffID}})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, revenue.ErrStaffWageExists(in.StaffID)
	}
	if err := s.staffRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ListStaffWages pages through staff wage configurations
func (s *SettingsService) ListStaffWages(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[revenue.StaffWageConfig], error) {
	items, total, err := s.staffRepo.List(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[revenue.StaffWageConfig]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
