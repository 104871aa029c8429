package revenue

import (
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RoutingType is the persisted discriminator of a ChannelPayoutRouting
type RoutingType string

const (
	RoutingCompany100 RoutingType = "company_100"
	RoutingOwner100   RoutingType = "owner_100"
	RoutingSplit      RoutingType = "split"
)

// IsValid checks if the routing type is known
func (t RoutingType) IsValid() bool {
	switch t {
	case RoutingCompany100, RoutingOwner100, RoutingSplit:
		return true
	}
	return false
}

// ChannelPayoutRouting decides who initially holds a booking's gross payout.
// The set of implementations is closed: CompanyFullRouting, OwnerFullRouting, SplitRouting.
type ChannelPayoutRouting interface {
	Type() RoutingType
	channelPayoutRouting()
}

// CompanyFullRouting credits all gross revenue to the company
type CompanyFullRouting struct{}

// OwnerFullRouting credits all gross revenue to the owner
type OwnerFullRouting struct{}

// SplitRouting divides gross revenue between owner and company
type SplitRouting struct {
	OwnerSplitPct   decimal.Decimal `json:"owner_split_pct"`
	CompanySplitPct decimal.Decimal `json:"company_split_pct"`
}

func (CompanyFullRouting) Type() RoutingType { return RoutingCompany100 }
func (OwnerFullRouting) Type() RoutingType   { return RoutingOwner100 }
func (SplitRouting) Type() RoutingType       { return RoutingSplit }

func (CompanyFullRouting) channelPayoutRouting() {}
func (OwnerFullRouting) channelPayoutRouting()   {}
func (SplitRouting) channelPayoutRouting()       {}

// NewChannelRouting builds a validated routing for a configuration write.
// Split percentages must each lie in 0..100 and sum to exactly 100.
func NewChannelRouting(t RoutingType, ownerPct, companyPct decimal.Decimal) (ChannelPayoutRouting, error) {
	switch t {
	case RoutingCompany100:
		return CompanyFullRouting{}, nil
	case RoutingOwner100:
		return OwnerFullRouting{}, nil
	case RoutingSplit:
		if err := ValidatePercent("owner_split_pct", ownerPct); err != nil {
			return nil, err
		}
		if err := ValidatePercent("company_split_pct", companyPct); err != nil {
			return nil, err
		}
		if !ownerPct.Add(companyPct).Equal(hundred) {
			return nil, shared.Newf(shared.ErrInvalidPercentage.Code,
				"split percentages must sum to 100, got %s + %s", ownerPct.String(), companyPct.String())
		}
		return SplitRouting{OwnerSplitPct: ownerPct, CompanySplitPct: companyPct}, nil
	default:
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "unknown routing type %q", t)
	}
}

// RoutingFromRecord rebuilds a stored routing without validation.
// Unknown types read back as company_100 so calculation never fails on bad rows.
func RoutingFromRecord(t RoutingType, ownerPct, companyPct decimal.Decimal) ChannelPayoutRouting {
	switch t {
	case RoutingOwner100:
		return OwnerFullRouting{}
	case RoutingSplit:
		return SplitRouting{OwnerSplitPct: ownerPct, CompanySplitPct: companyPct}
	default:
		return CompanyFullRouting{}
	}
}

// InitialCustody returns the gross split between company and owner.
// The company side of a split is the remainder so both sides always add up to gross.
func InitialCustody(r ChannelPayoutRouting, gross decimal.Decimal) (toCompany, toOwner decimal.Decimal) {
	switch rt := r.(type) {
	case OwnerFullRouting:
		return decimal.Zero, gross
	case SplitRouting:
		toOwner = gross.Mul(rt.OwnerSplitPct).Div(hundred)
		return gross.Sub(toOwner), toOwner
	case CompanyFullRouting, nil:
		return gross, decimal.Zero
	default:
		return gross, decimal.Zero
	}
}

// RoutingView is the flat representation used by persistence and JSON
type RoutingView struct {
	RoutingType     RoutingType      `json:"routing_type"`
	OwnerSplitPct   *decimal.Decimal `json:"owner_split_pct,omitempty"`
	CompanySplitPct *decimal.Decimal `json:"company_split_pct,omitempty"`
}

// ViewOf flattens a routing
func ViewOf(r ChannelPayoutRouting) RoutingView {
	switch rt := r.(type) {
	case SplitRouting:
		owner, company := rt.OwnerSplitPct, rt.CompanySplitPct
		return RoutingView{RoutingType: RoutingSplit, OwnerSplitPct: &owner, CompanySplitPct: &company}
	case OwnerFullRouting:
		return RoutingView{RoutingType: RoutingOwner100}
	default:
		return RoutingView{RoutingType: RoutingCompany100}
	}
}
