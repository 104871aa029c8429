package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommissionLedgerRepository implements revenue.CommissionLedgerRepository
type GormCommissionLedgerRepository struct {
	db *gorm.DB
}

// NewGormCommissionLedgerRepository creates a new GormCommissionLedgerRepository
func NewGormCommissionLedgerRepository(db *gorm.DB) *GormCommissionLedgerRepository {
	return &GormCommissionLedgerRepository{db: db}
}

// FindEntries returns the agent type's entries earned inside the filter's date range
func (r *GormCommissionLedgerRepository) FindEntries(ctx context.Context, tenantID uuid.UUID, agentType revenue.AgentType, filter revenue.EarningsFilter) ([]revenue.CommissionLedgerEntry, error) {
	q := r.db.WithContext(ctx).
		Model(&models.CommissionLedgerEntryModel{}).
		Where("tenant_id = ? AND agent_type = ?", tenantID, string(agentType))
	if filter.StartDate != nil {
		q = q.Where("earned_at >= ?", startOfDay(*filter.StartDate))
	}
	if filter.EndDate != nil {
		q = q.Where("earned_at < ?", startOfDay(*filter.EndDate).AddDate(0, 0, 1))
	}
	if len(filter.PropertyIDs) > 0 {
		q = q.Where("property_id IN ?", filter.PropertyIDs)
	}
	if len(filter.StakeholderIDs) > 0 {
		q = q.Where("agent_id IN ?", filter.StakeholderIDs)
	}

	var rows []models.CommissionLedgerEntryModel
	if err := q.Order("earned_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError("find ledger entries", err)
	}
	entries := make([]revenue.CommissionLedgerEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// SaveEntries inserts entries; rows for an already posted (booking, agent type) are skipped
func (r *GormCommissionLedgerRepository) SaveEntries(ctx context.Context, entries []revenue.CommissionLedgerEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	rows := make([]*models.CommissionLedgerEntryModel, len(entries))
	for i, e := range entries {
		rows[i] = models.CommissionLedgerEntryModelFromDomain(e)
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}, {Name: "agent_type"}},
			DoNothing: true,
		}).
		Create(&rows)
	if result.Error != nil {
		return 0, translateError("save ledger entries", result.Error)
	}
	return result.RowsAffected, nil
}

var _ revenue.CommissionLedgerRepository = (*GormCommissionLedgerRepository)(nil)
