package revenue

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ConfigurationResolver merges organization defaults, property overrides and booking
// overrides into effective commission settings.
//
// Resolve never fails: a missing layer falls through to the next broader one, and a
// layer that cannot be read is logged and treated as missing.
type ConfigurationResolver struct {
	settingsRepo revenue.CommissionSettingsRepository
	logger       *zap.Logger
}

// NewConfigurationResolver creates a new ConfigurationResolver
func NewConfigurationResolver(settingsRepo revenue.CommissionSettingsRepository, logger *zap.Logger) *ConfigurationResolver {
	return &ConfigurationResolver{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Resolve returns the effective settings for the organization, optionally narrowed to a
// property and a booking
func (r *ConfigurationResolver) Resolve(ctx context.Context, tenantID uuid.UUID, propertyID, bookingID *uuid.UUID) revenue.CommissionSettings {
	ctx, span := telemetry.StartServiceSpan(ctx, "commission_settings", "resolve",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
	)
	defer span.End()

	layers := revenue.ConfigurationLayers{PropertyID: propertyID}

	rates, err := r.settingsRepo.FindOrganizationRates(ctx, tenantID)
	if r.usable(err, "organization", tenantID, tenantID) {
		layers.Organization = rates
	}

	if propertyID != nil {
		override, err := r.settingsRepo.FindOverride(ctx, tenantID, revenue.OverrideScopeProperty, *propertyID)
		if r.usable(err, "property", tenantID, *propertyID) {
			layers.Property = override
		}
	}

	if bookingID != nil {
		override, err := r.settingsRepo.FindOverride(ctx, tenantID, revenue.OverrideScopeBooking, *bookingID)
		if r.usable(err, "booking", tenantID, *bookingID) {
			layers.Booking = override
		}
	}

	return revenue.Merge(layers)
}

// usable reports whether a layer lookup produced a row, logging absence and failure
func (r *ConfigurationResolver) usable(err error, layer string, tenantID, targetID uuid.UUID) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, shared.ErrNotFound):
		r.logger.Debug("Commission settings layer absent",
			zap.String("layer", layer),
			zap.String("tenant_id", tenantID.String()),
			zap.String("target_id", targetID.String()),
		)
	default:
		r.logger.Warn("Commission settings layer lookup failed, treating as absent",
			zap.String("layer", layer),
			zap.String("tenant_id", tenantID.String()),
			zap.String("target_id", targetID.String()),
			zap.Error(err),
		)
	}
	return false
}
