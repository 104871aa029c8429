package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPayoutRepository implements revenue.PayoutRepository
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewGormPayoutRepository creates a new GormPayoutRepository
func NewGormPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// FindForStakeholder finds the payout row for one stakeholder and exact period
func (r *GormPayoutRepository) FindForStakeholder(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, stakeholderID uuid.UUID, period revenue.ReportPeriod) (*revenue.StakeholderPayout, error) {
	var model models.StakeholderPayoutModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stakeholder_type = ? AND stakeholder_id = ?", tenantID, string(kind), stakeholderID).
		Where("period_start = ? AND period_end = ?", period.Start, period.End).
		First(&model).Error
	if err != nil {
		return nil, translateError("find payout", err)
	}
	return model.ToDomain(), nil
}

// FindForPeriod returns every payout row of a stakeholder type for the exact period
func (r *GormPayoutRepository) FindForPeriod(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, period revenue.ReportPeriod) ([]revenue.StakeholderPayout, error) {
	var rows []models.StakeholderPayoutModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stakeholder_type = ?", tenantID, string(kind)).
		Where("period_start = ? AND period_end = ?", period.Start, period.End).
		Order("stakeholder_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("find payouts", err)
	}
	payouts := make([]revenue.StakeholderPayout, len(rows))
	for i := range rows {
		payouts[i] = *rows[i].ToDomain()
	}
	return payouts, nil
}

// Create inserts a new payout row. A row for the same stakeholder and period
// already existing is reported as shared.ErrConcurrencyConflict.
func (r *GormPayoutRepository) Create(ctx context.Context, payout *revenue.StakeholderPayout) error {
	model := models.StakeholderPayoutModelFromDomain(payout)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return shared.ErrConcurrencyConflict
		}
		return translateError("create payout", result.Error)
	}
	return nil
}

// CompareAndSetStatus writes the new status only if nobody moved the row since it was read
func (r *GormPayoutRepository) CompareAndSetStatus(ctx context.Context, payout *revenue.StakeholderPayout, expected revenue.PayoutStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.StakeholderPayoutModel{}).
		Where("id = ? AND tenant_id = ? AND status = ? AND version = ?",
			payout.ID, payout.TenantID, string(expected), payout.Version-1).
		Updates(map[string]interface{}{
			"status":         string(payout.Status),
			"amount":         payout.Amount,
			"payment_method": payout.PaymentMethod,
			"reference":      payout.Reference,
			"queued_at":      payout.QueuedAt,
			"paid_at":        payout.PaidAt,
			"version":        payout.Version,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return translateError("update payout status", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ revenue.PayoutRepository = (*GormPayoutRepository)(nil)
