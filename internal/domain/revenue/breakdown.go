package revenue

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BreakdownInput carries everything the calculator reads. It is assembled by the
// application layer so the arithmetic below never touches storage.
type BreakdownInput struct {
	BookingID    uuid.UUID
	Gross        decimal.Decimal
	Channel      string
	PlatformFees decimal.Decimal
	Defaults     PropertyDefaults
	// Settings is the full org/property/booking resolution; only agent rates and the
	// retail basis are read from it.
	Settings CommissionSettings
}

// BookingFinancialBreakdown is the computed money flow of a single booking
type BookingFinancialBreakdown struct {
	BookingID  uuid.UUID   `json:"booking_id"`
	PropertyID uuid.UUID   `json:"property_id"`
	OwnerID    uuid.UUID   `json:"owner_id"`
	Channel    string      `json:"channel"`
	Routing    RoutingType `json:"routing_type"`

	GrossBookingRevenue    decimal.Decimal `json:"gross_booking_revenue"`
	PlatformFees           decimal.Decimal `json:"platform_fees"`
	NetBasis               decimal.Decimal `json:"net_basis"`
	InitialPayoutToCompany decimal.Decimal `json:"initial_payout_to_company"`
	InitialPayoutToOwner   decimal.Decimal `json:"initial_payout_to_owner"`

	ManagementFeePct    decimal.Decimal `json:"management_fee_pct"`
	ManagementFeeAmount decimal.Decimal `json:"management_fee_amount"`
	PMUserID            *uuid.UUID      `json:"pm_user_id,omitempty"`
	PMSplitPct          decimal.Decimal `json:"pm_split_pct"`
	PMShare             decimal.Decimal `json:"pm_share"`
	CompanyShare        decimal.Decimal `json:"company_share"`

	ReferralAgentID         *uuid.UUID       `json:"referral_agent_id,omitempty"`
	ReferralAgentCommission decimal.Decimal  `json:"referral_agent_commission"`
	RetailAgentID           *uuid.UUID       `json:"retail_agent_id,omitempty"`
	RetailAgentBasis        RetailAgentBasis `json:"retail_agent_basis"`
	RetailAgentCommission   decimal.Decimal  `json:"retail_agent_commission"`

	OwnerBillableExpenses decimal.Decimal `json:"owner_billable_expenses"`
	FinalOwnerPayout      decimal.Decimal `json:"final_owner_payout"`
	FinalCompanyRetention decimal.Decimal `json:"final_company_retention"`
}

// ComputeBreakdown runs the fee and split stages. Percentages are not clamped, so an
// out-of-range configuration yields negative remainders rather than an error.
func ComputeBreakdown(in BreakdownInput) BookingFinancialBreakdown {
	d := in.Defaults
	gross := in.Gross

	routing := d.RoutingFor(in.Channel)
	toCompany, toOwner := InitialCustody(routing, gross)

	// Informational only. Fees below are always taken from gross.
	netBasis := gross.Sub(in.PlatformFees)

	mgmtFee := percentOf(gross, d.ManagementFeePct)
	pmShare := percentOf(mgmtFee, d.PMSplitPct)
	companyShare := mgmtFee.Sub(pmShare)

	referral := decimal.Zero
	if d.ReferralAgentID != nil {
		referral = percentOf(mgmtFee, in.Settings.ReferralAgentPct)
	}

	basis := in.Settings.RetailAgentBasis
	if !basis.IsValid() {
		basis = RetailBasisManagementFee
	}
	retail := decimal.Zero
	if d.RetailAgentID != nil {
		retailBase := mgmtFee
		if basis == RetailBasisGross {
			retailBase = gross
		}
		retail = percentOf(retailBase, in.Settings.RetailAgentPct)
	}

	expenses := d.ExpenseTotal()

	return BookingFinancialBreakdown{
		BookingID:               in.BookingID,
		PropertyID:              d.PropertyID,
		OwnerID:                 d.OwnerID,
		Channel:                 in.Channel,
		Routing:                 routing.Type(),
		GrossBookingRevenue:     gross,
		PlatformFees:            in.PlatformFees,
		NetBasis:                netBasis,
		InitialPayoutToCompany:  toCompany,
		InitialPayoutToOwner:    toOwner,
		ManagementFeePct:        d.ManagementFeePct,
		ManagementFeeAmount:     mgmtFee,
		PMUserID:                d.PMUserID,
		PMSplitPct:              d.PMSplitPct,
		PMShare:                 pmShare,
		CompanyShare:            companyShare,
		ReferralAgentID:         d.ReferralAgentID,
		ReferralAgentCommission: referral,
		RetailAgentID:           d.RetailAgentID,
		RetailAgentBasis:        basis,
		RetailAgentCommission:   retail,
		OwnerBillableExpenses:   expenses,
		FinalOwnerPayout:        gross.Sub(mgmtFee).Sub(expenses),
		FinalCompanyRetention:   companyShare.Sub(referral).Sub(retail),
	}
}

// IsBalanced checks the conservation identities of the breakdown. The management fee
// is fully distributed between the PM, the agents and the company's retention.
func (b BookingFinancialBreakdown) IsBalanced() bool {
	ownerSide := b.FinalOwnerPayout.Add(b.ManagementFeeAmount).Add(b.OwnerBillableExpenses)
	feeSide := b.PMShare.Add(b.ReferralAgentCommission).Add(b.RetailAgentCommission).Add(b.FinalCompanyRetention)
	companySide := b.ReferralAgentCommission.Add(b.RetailAgentCommission).Add(b.FinalCompanyRetention)
	custody := b.InitialPayoutToCompany.Add(b.InitialPayoutToOwner)
	return ownerSide.Equal(b.GrossBookingRevenue) &&
		feeSide.Equal(b.ManagementFeeAmount) &&
		companySide.Equal(b.CompanyShare) &&
		custody.Equal(b.GrossBookingRevenue)
}

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}
