package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStakeholderDirectory implements revenue.StakeholderDirectory
type GormStakeholderDirectory struct {
	db *gorm.DB
}

// NewGormStakeholderDirectory creates a new GormStakeholderDirectory
func NewGormStakeholderDirectory(db *gorm.DB) *GormStakeholderDirectory {
	return &GormStakeholderDirectory{db: db}
}

// FindNames returns display names for the ids that exist; unknown ids are absent
func (r *GormStakeholderDirectory) FindNames(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []models.StakeholderModel
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).Error
	if err != nil {
		return nil, translateError("find stakeholder names", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

var _ revenue.StakeholderDirectory = (*GormStakeholderDirectory)(nil)
