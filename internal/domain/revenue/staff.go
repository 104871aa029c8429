package revenue

import (
	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillTo says who bears a staff member's wage
type BillTo string

const (
	BillToOwner   BillTo = "owner"
	BillToCompany BillTo = "company"
)

// IsValid checks if the bill-to value is known
func (b BillTo) IsValid() bool {
	return b == BillToOwner || b == BillToCompany
}

// StaffWageConfig is a standing monthly wage, not derived from bookings
type StaffWageConfig struct {
	shared.TenantEntity
	StaffID     uuid.UUID
	StaffName   string
	MonthlyWage decimal.Decimal
	BillTo      BillTo
	PropertyID  *uuid.UUID
	Active      bool
}

// ErrStaffWageExists reports a second active wage configuration for one staff member
func ErrStaffWageExists(staffID uuid.UUID) error {
	return shared.Newf(shared.ErrInvalidState.Code, "staff member %s already has an active wage configuration", staffID)
}

// NewStaffWageConfig validates and creates a wage configuration.
// Owner-billed wages must name the property whose owner pays them.
func NewStaffWageConfig(tenantID, staffID uuid.UUID, staffName string, wage decimal.Decimal, billTo BillTo, propertyID *uuid.UUID) (*StaffWageConfig, error) {
	if staffID == uuid.Nil {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "staff_id is required")
	}
	if wage.IsNegative() {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "monthly_wage must not be negative")
	}
	if !billTo.IsValid() {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "bill_to must be owner or company, got %q", billTo)
	}
	if billTo == BillToOwner && propertyID == nil {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "property_id is required when bill_to is owner")
	}
	if billTo == BillToCompany {
		propertyID = nil
	}
	return &StaffWageConfig{
		TenantEntity: shared.NewTenantEntity(tenantID),
		StaffID:      staffID,
		StaffName:    staffName,
		MonthlyWage:  wage,
		BillTo:       billTo,
		PropertyID:   propertyID,
		Active:       true,
	}, nil
}

// StaffEarnings turns wage configs into earnings, one per config, sorted by staff id.
// Names come from the config and fall back to the id.
func StaffEarnings(configs []StaffWageConfig, propertyNames map[uuid.UUID]string) []StakeholderEarning {
	out := make([]StakeholderEarning, 0, len(configs))
	for _, c := range configs {
		e := StakeholderEarning{
			StakeholderID:   c.StaffID,
			StakeholderName: c.StaffName,
			StakeholderType: StakeholderStaff,
			Gross:           c.MonthlyWage,
			Net:             c.MonthlyWage,
			Deductions:      decimal.Zero,
			Status:          PayoutStatusPending,
			Properties:      []PropertyEarningLine{},
		}
		if c.PropertyID != nil {
			e.Properties = append(e.Properties, PropertyEarningLine{
				PropertyID:   *c.PropertyID,
				PropertyName: propertyNames[*c.PropertyID],
				Revenue:      decimal.Zero,
				Payout:       c.MonthlyWage,
			})
		}
		out = append(out, e)
	}
	SortEarnings(out)
	return out
}
