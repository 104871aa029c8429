package revenue

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultsLoader assembles per-property configuration
type DefaultsLoader struct {
	propertyRepo revenue.PropertyRepository
	resolver     *ConfigurationResolver
	logger       *zap.Logger
}

// NewDefaultsLoader creates a new DefaultsLoader
func NewDefaultsLoader(propertyRepo revenue.PropertyRepository, resolver *ConfigurationResolver, logger *zap.Logger) *DefaultsLoader {
	return &DefaultsLoader{
		propertyRepo: propertyRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

// LoadDefaults returns the property's defaults: fee percentages and manager from the
// organization and property layers, agents from the property row, plus its channel
// routing and default expenses. Returns shared.ErrNotFound when the property is not
// in the organization.
func (l *DefaultsLoader) LoadDefaults(ctx context.Context, tenantID, propertyID uuid.UUID) (revenue.PropertyDefaults, error) {
	property, err := l.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return revenue.PropertyDefaults{}, err
	}
	return l.loadFor(ctx, *property)
}

func (l *DefaultsLoader) loadFor(ctx context.Context, property revenue.Property) (revenue.PropertyDefaults, error) {
	settings := l.resolver.Resolve(ctx, property.TenantID, &property.ID, nil)

	routing, err := l.propertyRepo.FindChannelRouting(ctx, property.TenantID, property.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return revenue.PropertyDefaults{}, fmt.Errorf("load channel routing for property %s: %w", property.ID, err)
	}

	expenses, err := l.propertyRepo.FindDefaultExpenses(ctx, property.TenantID, property.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return revenue.PropertyDefaults{}, fmt.Errorf("load default expenses for property %s: %w", property.ID, err)
	}

	return revenue.NewPropertyDefaults(property, settings, expenses, routing), nil
}

// BreakdownService computes per-booking financial breakdowns
type BreakdownService struct {
	bookingRepo        revenue.BookingRepository
	loader             *DefaultsLoader
	resolver           *ConfigurationResolver
	defaultPlatformPct decimal.Decimal
	metrics            *telemetry.RevenueMetrics
	logger             *zap.Logger
}

// NewBreakdownService creates a new BreakdownService. defaultPlatformPct is the share of
// gross assumed as platform fees when a booking has none recorded.
func NewBreakdownService(
	bookingRepo revenue.BookingRepository,
	loader *DefaultsLoader,
	resolver *ConfigurationResolver,
	defaultPlatformPct decimal.Decimal,
	metrics *telemetry.RevenueMetrics,
	logger *zap.Logger,
) *BreakdownService {
	return &BreakdownService{
		bookingRepo:        bookingRepo,
		loader:             loader,
		resolver:           resolver,
		defaultPlatformPct: defaultPlatformPct,
		metrics:            metrics,
		logger:             logger,
	}
}

// BreakdownOverrides replaces the stored booking values used by CalculateForBooking
type BreakdownOverrides struct {
	Gross        *decimal.Decimal
	Channel      *string
	PlatformFees *decimal.Decimal
}

// Calculate computes the breakdown of a booking for the given gross, channel and
// platform fees. Fails with shared.ErrNotFound when the booking or its property is
// not in the organization.
func (s *BreakdownService) Calculate(ctx context.Context, tenantID, bookingID uuid.UUID, gross decimal.Decimal, channel string, platformFees decimal.Decimal) (revenue.BookingFinancialBreakdown, error) {
	return s.CalculateForBooking(ctx, tenantID, bookingID, BreakdownOverrides{
		Gross:        &gross,
		Channel:      &channel,
		PlatformFees: &platformFees,
	})
}

// CalculateForBooking computes the breakdown from the stored booking, replacing any
// value given in overrides
func (s *BreakdownService) CalculateForBooking(ctx context.Context, tenantID, bookingID uuid.UUID, overrides BreakdownOverrides) (revenue.BookingFinancialBreakdown, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "breakdown", "calculate",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrBookingID, bookingID.String()),
	)
	defer span.End()

	booking, err := s.bookingRepo.FindByID(ctx, tenantID, bookingID)
	if err != nil {
		telemetry.RecordError(span, err)
		return revenue.BookingFinancialBreakdown{}, err
	}

	defaults, err := s.loader.LoadDefaults(ctx, tenantID, booking.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return revenue.BookingFinancialBreakdown{}, err
	}

	in := s.inputFor(*booking, defaults)
	if overrides.Gross != nil {
		in.Gross = *overrides.Gross
	}
	if overrides.Channel != nil {
		in.Channel = *overrides.Channel
	}
	if overrides.PlatformFees != nil {
		in.PlatformFees = *overrides.PlatformFees
	}
	in.Settings = s.resolver.Resolve(ctx, tenantID, &booking.PropertyID, &booking.ID)

	return s.compute(ctx, tenantID, in), nil
}

// inputFor builds the calculator input from the stored booking
func (s *BreakdownService) inputFor(booking revenue.Booking, defaults revenue.PropertyDefaults) revenue.BreakdownInput {
	return revenue.BreakdownInput{
		BookingID:    booking.ID,
		Gross:        booking.TotalAmount,
		Channel:      booking.Channel,
		PlatformFees: booking.EffectivePlatformFees(s.defaultPlatformPct),
		Defaults:     defaults,
	}
}

// compute runs the calculator. A manager assigned at the booking layer replaces the
// property's manager; fee percentages stay those of the property defaults.
func (s *BreakdownService) compute(ctx context.Context, tenantID uuid.UUID, in revenue.BreakdownInput) revenue.BookingFinancialBreakdown {
	if pm := in.Settings.ManagerFor(in.Defaults.PropertyID); pm != nil {
		in.Defaults.PMUserID = pm
	}
	bd := revenue.ComputeBreakdown(in)
	s.metrics.RecordBreakdown(ctx, tenantID, bd.Channel, string(bd.Routing))
	return bd
}

// bookingBreakdown pairs a booking with its computed breakdown
type bookingBreakdown struct {
	booking      revenue.Booking
	propertyName string
	breakdown    revenue.BookingFinancialBreakdown
}

// breakdownsFor computes breakdowns for every booking in scope, loading each property's
// defaults once
func (s *BreakdownService) breakdownsFor(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) ([]bookingBreakdown, error) {
	bookings, err := s.bookingRepo.FindForPeriod(ctx, tenantID, revenue.BookingQuery{
		CheckInFrom: filter.StartDate,
		CheckInTo:   filter.EndDate,
		PropertyIDs: filter.PropertyIDs,
	})
	if err != nil {
		return nil, err
	}

	defaultsByProperty := make(map[uuid.UUID]revenue.PropertyDefaults)
	out := make([]bookingBreakdown, 0, len(bookings))
	for _, b := range bookings {
		defaults, ok := defaultsByProperty[b.PropertyID]
		if !ok {
			defaults, err = s.loader.LoadDefaults(ctx, tenantID, b.PropertyID)
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("Skipping booking whose property is missing",
					zap.String("tenant_id", tenantID.String()),
					zap.String("booking_id", b.ID.String()),
					zap.String("property_id", b.PropertyID.String()),
				)
				continue
			}
			if err != nil {
				return nil, err
			}
			defaultsByProperty[b.PropertyID] = defaults
		}

		in := s.inputFor(b, defaults)
		in.Settings = s.resolver.Resolve(ctx, tenantID, &b.PropertyID, &b.ID)
		out = append(out, bookingBreakdown{
			booking:      b,
			propertyName: defaults.PropertyName,
			breakdown:    s.compute(ctx, tenantID, in),
		})
	}
	return out, nil
}
