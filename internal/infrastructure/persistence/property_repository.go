package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPropertyRepository implements revenue.PropertyRepository
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by ID within the organization
func (r *GormPropertyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*revenue.Property, error) {
	var model models.PropertyModel
	err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error
	if err != nil {
		return nil, translateError("find property", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the properties that exist among ids, in id order
func (r *GormPropertyRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]revenue.Property, error) {
	if len(ids) == 0 {
		return []revenue.Property{}, nil
	}
	var rows []models.PropertyModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("find properties", err)
	}
	properties := make([]revenue.Property, len(rows))
	for i := range rows {
		properties[i] = *rows[i].ToDomain()
	}
	return properties, nil
}

// FindActiveOrganizationIDs lists organizations owning at least one active property.
// Used by background jobs that run across organizations.
func (r *GormPropertyRepository) FindActiveOrganizationIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.PropertyModel{}).
		Where("is_active = ?", true).
		Distinct().
		Order("tenant_id").
		Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, translateError("find active organizations", err)
	}
	return ids, nil
}

// FindChannelRouting returns the configured routing per channel; missing channels are absent from the map
func (r *GormPropertyRepository) FindChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID) (map[string]revenue.ChannelPayoutRouting, error) {
	var rows []models.ChannelRoutingModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Find(&rows).Error
	if err != nil {
		return nil, translateError("find channel routing", err)
	}
	routing := make(map[string]revenue.ChannelPayoutRouting, len(rows))
	for i := range rows {
		routing[rows[i].Channel] = rows[i].ToDomain()
	}
	return routing, nil
}

// SaveChannelRouting creates or replaces the routing for one channel
func (r *GormPropertyRepository) SaveChannelRouting(ctx context.Context, tenantID, propertyID uuid.UUID, channel string, routing revenue.ChannelPayoutRouting) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ChannelRoutingModel
		err := tx.Where("tenant_id = ? AND property_id = ? AND channel = ?", tenantID, propertyID, channel).First(&model).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model = models.ChannelRoutingModel{
				TenantModel: models.NewTenantModel(tenantID),
				PropertyID:  propertyID,
				Channel:     channel,
			}
			model.FromDomain(routing)
			return tx.Create(&model).Error
		case err != nil:
			return err
		}
		model.FromDomain(routing)
		model.UpdatedAt = time.Now()
		return tx.Save(&model).Error
	})
	return translateError("save channel routing", err)
}

// FindDefaultExpenses returns the property's expense lines in their stored order
func (r *GormPropertyRepository) FindDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID) ([]revenue.DefaultExpense, error) {
	var rows []models.DefaultExpenseModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("find default expenses", err)
	}
	expenses := make([]revenue.DefaultExpense, len(rows))
	for i := range rows {
		expenses[i] = rows[i].ToDomain()
	}
	return expenses, nil
}

// ReplaceDefaultExpenses swaps the property's expense lines in one transaction
func (r *GormPropertyRepository) ReplaceDefaultExpenses(ctx context.Context, tenantID, propertyID uuid.UUID, expenses []revenue.DefaultExpense) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
			Delete(&models.DefaultExpenseModel{}).Error; err != nil {
			return err
		}
		if len(expenses) == 0 {
			return nil
		}
		rows := make([]models.DefaultExpenseModel, len(expenses))
		for i, e := range expenses {
			rows[i] = models.DefaultExpenseModel{
				TenantModel: models.NewTenantModel(tenantID),
				PropertyID:  propertyID,
				ExpenseType: e.ExpenseType,
				Amount:      e.Amount,
				Description: e.Description,
				SortOrder:   i,
			}
		}
		return tx.Create(&rows).Error
	})
	return translateError("replace default expenses", err)
}

var _ revenue.PropertyRepository = (*GormPropertyRepository)(nil)
