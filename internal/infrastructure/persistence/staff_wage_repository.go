package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStaffWageRepository implements revenue.StaffWageRepository
type GormStaffWageRepository struct {
	db *gorm.DB
}

// NewGormStaffWageRepository creates a new GormStaffWageRepository
func NewGormStaffWageRepository(db *gorm.DB) *GormStaffWageRepository {
	return &GormStaffWageRepository{db: db}
}

// FindActive returns active wage configs ordered by staff id, then id.
// A property filter keeps company-billed staff and owner-billed staff of those properties.
func (r *GormStaffWageRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) ([]revenue.StaffWageConfig, error) {
	q := r.db.WithContext(ctx).
		Model(&models.StaffWageConfigModel{}).
		Where("tenant_id = ? AND active = ?", tenantID, true)
	if len(filter.StakeholderIDs) > 0 {
		q = q.Where("staff_id IN ?", filter.StakeholderIDs)
	}
	if len(filter.PropertyIDs) > 0 {
		q = q.Where("(property_id IS NULL OR property_id IN ?)", filter.PropertyIDs)
	}

	var rows []models.StaffWageConfigModel
	if err := q.Order("staff_id ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, translateError("find staff wages", err)
	}
	configs := make([]revenue.StaffWageConfig, len(rows))
	for i := range rows {
		configs[i] = rows[i].ToDomain()
	}
	return configs, nil
}

// List returns a page of wage configs, active or not
func (r *GormStaffWageRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]revenue.StaffWageConfig, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.StaffWageConfigModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		q = q.Where("staff_name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError("count staff wages", err)
	}

	sortField := ValidateSortField(filter.OrderBy, StaffWageSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var rows []models.StaffWageConfigModel
	err := q.Order(fmt.Sprintf("%s %s", sortField, sortOrder)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateError("list staff wages", err)
	}
	configs := make([]revenue.StaffWageConfig, len(rows))
	for i := range rows {
		configs[i] = rows[i].ToDomain()
	}
	return configs, total, nil
}

// Save creates or updates a wage config
func (r *GormStaffWageRepository) Save(ctx context.Context, config *revenue.StaffWageConfig) error {
	model := models.StaffWageConfigModelFromDomain(config)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if IsUniqueViolation(err) {
			return revenue.ErrStaffWageExists(config.StaffID)
		}
		return translateError("save staff wage", err)
	}
	return nil
}

var _ revenue.StaffWageRepository = (*GormStaffWageRepository)(nil)
