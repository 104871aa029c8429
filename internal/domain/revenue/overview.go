package revenue

import (
	"github.com/shopspring/decimal"
)

// FinancialOverview is the organization-wide summary for a reporting period
type FinancialOverview struct {
	BookingCount          int             `json:"booking_count"`
	GrossRevenue          decimal.Decimal `json:"gross_revenue"`
	PlatformFees          decimal.Decimal `json:"platform_fees"`
	ManagementFeeEarned   decimal.Decimal `json:"management_fee_earned"`
	OwnerPayout           decimal.Decimal `json:"owner_payout"`
	OwnerBillableExpenses decimal.Decimal `json:"owner_billable_expenses"`
	PMEarnings            decimal.Decimal `json:"pm_earnings"`
	ReferralCommission    decimal.Decimal `json:"referral_commission"`
	RetailCommission      decimal.Decimal `json:"retail_commission"`
	AgentCommission       decimal.Decimal `json:"agent_commission"`
	StaffWages            decimal.Decimal `json:"staff_wages"`
	CompanyRetention      decimal.Decimal `json:"company_retention"`
	// NetCompanyIncome is CompanyRetention less the wages of company-billed staff
	NetCompanyIncome decimal.Decimal `json:"net_company_income"`
}

// Summarize totals breakdowns and active staff wages into an overview
func Summarize(breakdowns []BookingFinancialBreakdown, staff []StaffWageConfig) FinancialOverview {
	o := FinancialOverview{
		GrossRevenue:          decimal.Zero,
		PlatformFees:          decimal.Zero,
		ManagementFeeEarned:   decimal.Zero,
		OwnerPayout:           decimal.Zero,
		OwnerBillableExpenses: decimal.Zero,
		PMEarnings:            decimal.Zero,
		ReferralCommission:    decimal.Zero,
		RetailCommission:      decimal.Zero,
		StaffWages:            decimal.Zero,
		CompanyRetention:      decimal.Zero,
	}
	for _, bd := range breakdowns {
		o.BookingCount++
		o.GrossRevenue = o.GrossRevenue.Add(bd.GrossBookingRevenue)
		o.PlatformFees = o.PlatformFees.Add(bd.PlatformFees)
		o.ManagementFeeEarned = o.ManagementFeeEarned.Add(bd.ManagementFeeAmount)
		o.OwnerPayout = o.OwnerPayout.Add(bd.FinalOwnerPayout)
		o.OwnerBillableExpenses = o.OwnerBillableExpenses.Add(bd.OwnerBillableExpenses)
		o.PMEarnings = o.PMEarnings.Add(bd.PMShare)
		o.ReferralCommission = o.ReferralCommission.Add(bd.ReferralAgentCommission)
		o.RetailCommission = o.RetailCommission.Add(bd.RetailAgentCommission)
		o.CompanyRetention = o.CompanyRetention.Add(bd.FinalCompanyRetention)
	}
	o.AgentCommission = o.ReferralCommission.Add(o.RetailCommission)

	companyWages := decimal.Zero
	for _, s := range staff {
		o.StaffWages = o.StaffWages.Add(s.MonthlyWage)
		if s.BillTo == BillToCompany {
			companyWages = companyWages.Add(s.MonthlyWage)
		}
	}
	o.NetCompanyIncome = o.CompanyRetention.Sub(companyWages)
	return o
}
