package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TenantModel adds the owning organization to BaseModel
type TenantModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromTenantEntity populates TenantModel from a domain TenantEntity
func (m *TenantModel) FromTenantEntity(e shared.TenantEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.TenantID = e.TenantID
}

// ToTenantEntity converts TenantModel to a domain TenantEntity
func (m *TenantModel) ToTenantEntity() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID: m.TenantID,
	}
}

// NewTenantModel creates a model with a fresh id and timestamps
func NewTenantModel(tenantID uuid.UUID) TenantModel {
	return TenantModel{
		BaseModel: BaseModel{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		TenantID:  tenantID,
	}
}
