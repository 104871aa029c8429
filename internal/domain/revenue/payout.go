package revenue

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PayoutStatus is the settlement state of a stakeholder payout
type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "pending"
	PayoutStatusQueued  PayoutStatus = "queued"
	PayoutStatusPaid    PayoutStatus = "paid"
)

func (s PayoutStatus) rank() int {
	switch s {
	case PayoutStatusPending:
		return 0
	case PayoutStatusQueued:
		return 1
	case PayoutStatusPaid:
		return 2
	}
	return -1
}

// IsValid checks if the status is known
func (s PayoutStatus) IsValid() bool {
	return s.rank() >= 0
}

// CanTransitionTo reports whether moving to next goes strictly forward
func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	return s.IsValid() && next.IsValid() && next.rank() > s.rank()
}

// StakeholderPayout records the settlement of one stakeholder's earning for a period
type StakeholderPayout struct {
	shared.TenantEntity
	StakeholderID   uuid.UUID
	StakeholderType StakeholderType
	Period          ReportPeriod
	Amount          decimal.Decimal
	Status          PayoutStatus
	PaymentMethod   string
	Reference       string
	QueuedAt        *time.Time
	PaidAt          *time.Time
	Version         int
}

// NewStakeholderPayout creates a pending payout
func NewStakeholderPayout(tenantID, stakeholderID uuid.UUID, kind StakeholderType, period ReportPeriod, amount decimal.Decimal) (*StakeholderPayout, error) {
	if stakeholderID == uuid.Nil {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "stakeholder_id is required")
	}
	if !kind.IsValid() {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "unknown stakeholder type %q", kind)
	}
	if period.End.Before(period.Start) {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "period end is before period start")
	}
	if amount.IsNegative() {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "amount must not be negative")
	}
	return &StakeholderPayout{
		TenantEntity:    shared.NewTenantEntity(tenantID),
		StakeholderID:   stakeholderID,
		StakeholderType: kind,
		Period:          period,
		Amount:          amount,
		Status:          PayoutStatusPending,
		Version:         1,
	}, nil
}

func (p *StakeholderPayout) transition(next PayoutStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return shared.Newf(shared.ErrInvalidState.Code, "payout cannot move from %s to %s", p.Status, next)
	}
	p.Status = next
	p.Version++
	p.Touch()
	return nil
}

// Queue moves a pending payout into the payment queue
func (p *StakeholderPayout) Queue(at time.Time) error {
	if err := p.transition(PayoutStatusQueued); err != nil {
		return err
	}
	p.QueuedAt = &at
	return nil
}

// MarkPaid records payment. The amount recorded on the payout is not recomputed.
func (p *StakeholderPayout) MarkPaid(method, reference string, at time.Time) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return shared.Newf(shared.ErrInvalidInput.Code, "payment_method is required")
	}
	if err := p.transition(PayoutStatusPaid); err != nil {
		return err
	}
	p.PaymentMethod = method
	p.Reference = reference
	p.PaidAt = &at
	return nil
}
