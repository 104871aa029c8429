package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommissionSettingsRepository implements revenue.CommissionSettingsRepository
type GormCommissionSettingsRepository struct {
	db *gorm.DB
}

// NewGormCommissionSettingsRepository creates a new GormCommissionSettingsRepository
func NewGormCommissionSettingsRepository(db *gorm.DB) *GormCommissionSettingsRepository {
	return &GormCommissionSettingsRepository{db: db}
}

// FindOrganizationRates returns the organization's default rates
func (r *GormCommissionSettingsRepository) FindOrganizationRates(ctx context.Context, tenantID uuid.UUID) (*revenue.CommissionRates, error) {
	var model models.CommissionSettingsModel
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&model).Error
	if err != nil {
		return nil, translateError("find commission settings", err)
	}
	return model.ToDomain(), nil
}

// SaveOrganizationRates replaces the organization's default rates
func (r *GormCommissionSettingsRepository) SaveOrganizationRates(ctx context.Context, tenantID uuid.UUID, rates revenue.CommissionRates) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CommissionSettingsModel
		err := tx.Where("tenant_id = ?", tenantID).First(&model).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model = models.CommissionSettingsModel{TenantModel: models.NewTenantModel(tenantID)}
			model.FromDomain(rates)
			return tx.Create(&model).Error
		case err != nil:
			return err
		}
		model.FromDomain(rates)
		model.UpdatedAt = time.Now()
		return tx.Save(&model).Error
	})
	return translateError("save commission settings", err)
}

// FindOverride returns the override row for a property or booking
func (r *GormCommissionSettingsRepository) FindOverride(ctx context.Context, tenantID uuid.UUID, scope revenue.OverrideScope, targetID uuid.UUID) (*revenue.CommissionOverride, error) {
	var model models.CommissionOverrideModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND scope = ? AND target_id = ?", tenantID, string(scope), targetID).
		First(&model).Error
	if err != nil {
		return nil, translateError("find commission override", err)
	}
	return model.ToDomain(), nil
}

// SaveOverride creates or replaces the override row for a property or booking
func (r *GormCommissionSettingsRepository) SaveOverride(ctx context.Context, tenantID uuid.UUID, scope revenue.OverrideScope, targetID uuid.UUID, override revenue.CommissionOverride) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CommissionOverrideModel
		err := tx.Where("tenant_id = ? AND scope = ? AND target_id = ?", tenantID, string(scope), targetID).First(&model).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model = models.CommissionOverrideModel{
				TenantModel: models.NewTenantModel(tenantID),
				Scope:       string(scope),
				TargetID:    targetID,
			}
			model.FromDomain(override)
			return tx.Create(&model).Error
		case err != nil:
			return err
		}
		model.FromDomain(override)
		model.UpdatedAt = time.Now()
		// Save writes NULLs for cleared fields as well.
		return tx.Save(&model).Error
	})
	return translateError("save commission override", err)
}

// DeleteOverride removes the override row. Deleting a missing row returns shared.ErrNotFound.
func (r *GormCommissionSettingsRepository) DeleteOverride(ctx context.Context, tenantID uuid.UUID, scope revenue.OverrideScope, targetID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND scope = ? AND target_id = ?", tenantID, string(scope), targetID).
		Delete(&models.CommissionOverrideModel{})
	if result.Error != nil {
		return translateError("delete commission override", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ revenue.CommissionSettingsRepository = (*GormCommissionSettingsRepository)(nil)
