package revenue

import (
	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RetailAgentBasis selects the amount a retail agent commission is taken from
type RetailAgentBasis string

const (
	RetailBasisManagementFee RetailAgentBasis = "management_fee"
	RetailBasisGross         RetailAgentBasis = "gross"
)

// IsValid checks if the basis is a known value
func (b RetailAgentBasis) IsValid() bool {
	return b == RetailBasisManagementFee || b == RetailBasisGross
}

// String returns the string representation of RetailAgentBasis
func (b RetailAgentBasis) String() string {
	return string(b)
}

// Default rates used when an organization has never saved its own.
var (
	DefaultManagementFeePct = decimal.NewFromInt(15)
	DefaultPMSplitPct       = decimal.NewFromInt(50)
	DefaultReferralAgentPct = decimal.NewFromInt(10)
	DefaultRetailAgentPct   = decimal.NewFromInt(10)
)

// CommissionRates is the flat set of percentages every configuration layer contributes to
type CommissionRates struct {
	ManagementFeePct decimal.Decimal  `json:"management_fee_pct"`
	PMSplitPct       decimal.Decimal  `json:"pm_split_pct"`
	ReferralAgentPct decimal.Decimal  `json:"referral_agent_pct"`
	RetailAgentPct   decimal.Decimal  `json:"retail_agent_pct"`
	RetailAgentBasis RetailAgentBasis `json:"retail_agent_basis"`
}

// DefaultCommissionRates returns the hardcoded fallback rates
func DefaultCommissionRates() CommissionRates {
	return CommissionRates{
		ManagementFeePct: DefaultManagementFeePct,
		PMSplitPct:       DefaultPMSplitPct,
		ReferralAgentPct: DefaultReferralAgentPct,
		RetailAgentPct:   DefaultRetailAgentPct,
		RetailAgentBasis: RetailBasisManagementFee,
	}
}

// Validate rejects percentages outside 0..100 and unknown bases.
// Only write paths call this; calculation accepts whatever is stored.
func (r CommissionRates) Validate() error {
	checks := []struct {
		name  string
		value decimal.Decimal
	}{
		{"management_fee_pct", r.ManagementFeePct},
		{"pm_split_pct", r.PMSplitPct},
		{"referral_agent_pct", r.ReferralAgentPct},
		{"retail_agent_pct", r.RetailAgentPct},
	}
	for _, c := range checks {
		if err := ValidatePercent(c.name, c.value); err != nil {
			return err
		}
	}
	if !r.RetailAgentBasis.IsValid() {
		return shared.Newf(shared.ErrInvalidPercentage.Code, "retail_agent_basis must be management_fee or gross, got %q", r.RetailAgentBasis)
	}
	return nil
}

// Apply overwrites every field the override sets and returns the result
func (r CommissionRates) Apply(o CommissionOverride) CommissionRates {
	if o.ManagementFeePct != nil {
		r.ManagementFeePct = *o.ManagementFeePct
	}
	if o.PMSplitPct != nil {
		r.PMSplitPct = *o.PMSplitPct
	}
	if o.ReferralAgentPct != nil {
		r.ReferralAgentPct = *o.ReferralAgentPct
	}
	if o.RetailAgentPct != nil {
		r.RetailAgentPct = *o.RetailAgentPct
	}
	if o.RetailAgentBasis != nil {
		r.RetailAgentBasis = *o.RetailAgentBasis
	}
	return r
}

// ValidatePercent checks that value lies in [0, 100]
func ValidatePercent(name string, value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return shared.Newf(shared.ErrInvalidPercentage.Code, "%s must be between 0 and 100, got %s", name, value.String())
	}
	return nil
}

// OverrideScope identifies which configuration layer an override row belongs to
type OverrideScope string

const (
	OverrideScopeProperty OverrideScope = "property"
	OverrideScopeBooking  OverrideScope = "booking"
)

// IsValid checks if the scope is a known value
func (s OverrideScope) IsValid() bool {
	return s == OverrideScopeProperty || s == OverrideScopeBooking
}

// CommissionOverride is a sparse patch over CommissionRates.
// A nil field means "not set at this layer".
type CommissionOverride struct {
	ManagementFeePct *decimal.Decimal  `json:"management_fee_pct,omitempty"`
	PMSplitPct       *decimal.Decimal  `json:"pm_split_pct,omitempty"`
	ReferralAgentPct *decimal.Decimal  `json:"referral_agent_pct,omitempty"`
	RetailAgentPct   *decimal.Decimal  `json:"retail_agent_pct,omitempty"`
	RetailAgentBasis *RetailAgentBasis `json:"retail_agent_basis,omitempty"`
	PMUserID         *uuid.UUID        `json:"pm_user_id,omitempty"`
}

// IsEmpty reports whether no field is set
func (o CommissionOverride) IsEmpty() bool {
	return o.ManagementFeePct == nil && o.PMSplitPct == nil && o.ReferralAgentPct == nil &&
		o.RetailAgentPct == nil && o.RetailAgentBasis == nil && o.PMUserID == nil
}

// Validate checks every set percentage and the basis
func (o CommissionOverride) Validate() error {
	pcts := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"management_fee_pct", o.ManagementFeePct},
		{"pm_split_pct", o.PMSplitPct},
		{"referral_agent_pct", o.ReferralAgentPct},
		{"retail_agent_pct", o.RetailAgentPct},
	}
	for _, p := range pcts {
		if p.value == nil {
			continue
		}
		if err := ValidatePercent(p.name, *p.value); err != nil {
			return err
		}
	}
	if o.RetailAgentBasis != nil && !o.RetailAgentBasis.IsValid() {
		return shared.Newf(shared.ErrInvalidPercentage.Code, "retail_agent_basis must be management_fee or gross, got %q", *o.RetailAgentBasis)
	}
	if o.PMUserID != nil && *o.PMUserID == uuid.Nil {
		return shared.Newf(shared.ErrInvalidInput.Code, "pm_user_id must not be the nil uuid")
	}
	return nil
}

// CommissionSettings is the effective configuration after merging every layer.
// It is never persisted in this form.
type CommissionSettings struct {
	CommissionRates
	PropertyOverrides map[uuid.UUID]CommissionOverride `json:"property_overrides"`
	PropertyManagers  map[uuid.UUID]uuid.UUID          `json:"property_managers"`
}

// ManagerFor returns the property manager assigned to the property, if any
func (s CommissionSettings) ManagerFor(propertyID uuid.UUID) *uuid.UUID {
	id, ok := s.PropertyManagers[propertyID]
	if !ok {
		return nil
	}
	return &id
}

// ConfigurationLayers holds whatever rows were found for one resolution.
// Any of them may be nil.
type ConfigurationLayers struct {
	Organization *CommissionRates
	PropertyID   *uuid.UUID
	Property     *CommissionOverride
	Booking      *CommissionOverride
}

// Merge applies organization, property and booking layers in that order.
// A field missing at a narrower layer keeps the broader layer's value.
func Merge(layers ConfigurationLayers) CommissionSettings {
	rates := DefaultCommissionRates()
	if layers.Organization != nil {
		rates = *layers.Organization
	}

	settings := CommissionSettings{
		PropertyOverrides: make(map[uuid.UUID]CommissionOverride),
		PropertyManagers:  make(map[uuid.UUID]uuid.UUID),
	}

	if layers.Property != nil {
		rates = rates.Apply(*layers.Property)
		if layers.PropertyID != nil {
			settings.PropertyOverrides[*layers.PropertyID] = *layers.Property
			if layers.Property.PMUserID != nil {
				settings.PropertyManagers[*layers.PropertyID] = *layers.Property.PMUserID
			}
		}
	}

	if layers.Booking != nil {
		rates = rates.Apply(*layers.Booking)
		if layers.PropertyID != nil && layers.Booking.PMUserID != nil {
			settings.PropertyManagers[*layers.PropertyID] = *layers.Booking.PMUserID
		}
	}

	settings.CommissionRates = rates
	return settings
}
