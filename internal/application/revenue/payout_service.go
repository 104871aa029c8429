package revenue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayoutAction identifies the payout of one stakeholder for one period
type PayoutAction struct {
	StakeholderID   uuid.UUID
	StakeholderType revenue.StakeholderType
	Period          revenue.ReportPeriod
	// Amount is recorded only when the payout row does not exist yet
	Amount         decimal.Decimal
	PaymentMethod  string
	Reference      string
	IdempotencyKey string
}

// PayoutService moves stakeholder payouts forward through pending, queued and paid
type PayoutService struct {
	payoutRepo  revenue.PayoutRepository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	metrics     *telemetry.RevenueMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewPayoutService creates a new PayoutService. idempotency may be nil.
func NewPayoutService(
	payoutRepo revenue.PayoutRepository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	metrics *telemetry.RevenueMetrics,
	logger *zap.Logger,
) *PayoutService {
	return &PayoutService{
		payoutRepo:  payoutRepo,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// MarkPaid records payment of a payout. The payout is created when the stakeholder has
// none for the period.
func (s *PayoutService) MarkPaid(ctx context.Context, tenantID uuid.UUID, action PayoutAction) (*revenue.StakeholderPayout, error) {
	return s.advance(ctx, tenantID, action, revenue.PayoutStatusPaid, func(p *revenue.StakeholderPayout) error {
		return p.MarkPaid(action.PaymentMethod, action.Reference, s.now())
	})
}

// Queue moves a pending payout into the payment queue
func (s *PayoutService) Queue(ctx context.Context, tenantID uuid.UUID, action PayoutAction) (*revenue.StakeholderPayout, error) {
	return s.advance(ctx, tenantID, action, revenue.PayoutStatusQueued, func(p *revenue.StakeholderPayout) error {
		return p.Queue(s.now())
	})
}

func (s *PayoutService) advance(
	ctx context.Context,
	tenantID uuid.UUID,
	action PayoutAction,
	target revenue.PayoutStatus,
	apply func(*revenue.StakeholderPayout) error,
) (*revenue.StakeholderPayout, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payout", string(target),
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStakeholderID, action.StakeholderID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStakeholderType, string(action.StakeholderType)),
	)
	defer span.End()

	if !action.StakeholderType.IsValid() {
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "unknown stakeholder type %q", action.StakeholderType)
	}

	key, err := s.claim(ctx, tenantID, action.IdempotencyKey)
	if err != nil {
		s.metrics.RecordPayoutTransition(ctx, string(action.StakeholderType), string(target), telemetry.OutcomeConflict)
		return nil, err
	}

	payout, err := s.transition(ctx, tenantID, action, apply)
	if err != nil {
		s.release(ctx, key)
		telemetry.RecordError(span, err)
		s.metrics.RecordPayoutTransition(ctx, string(action.StakeholderType), string(target), outcomeOf(err))
		return nil, err
	}

	s.metrics.RecordPayoutTransition(ctx, string(action.StakeholderType), string(target), telemetry.OutcomeSuccess)
	s.logger.Info("Payout status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("stakeholder_id", action.StakeholderID.String()),
		zap.String("stakeholder_type", string(action.StakeholderType)),
		zap.String("status", string(payout.Status)),
		zap.Time("period_start", payout.Period.Start),
		zap.Time("period_end", payout.Period.End),
	)
	return payout, nil
}

// transition loads or creates the payout, applies the change and persists it with a
// compare-and-set on the previous status
func (s *PayoutService) transition(
	ctx context.Context,
	tenantID uuid.UUID,
	action PayoutAction,
	apply func(*revenue.StakeholderPayout) error,
) (*revenue.StakeholderPayout, error) {
	payout, err := s.payoutRepo.FindForStakeholder(ctx, tenantID, action.StakeholderType, action.StakeholderID, action.Period)
	if errors.Is(err, shared.ErrNotFound) {
		payout, err = revenue.NewStakeholderPayout(tenantID, action.StakeholderID, action.StakeholderType, action.Period, action.Amount)
		if err != nil {
			return nil, err
		}
		if err := apply(payout); err != nil {
			return nil, err
		}
		if err := s.payoutRepo.Create(ctx, payout); err != nil {
			return nil, fmt.Errorf("create payout: %w", err)
		}
		return payout, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load payout: %w", err)
	}

	expected := payout.Status
	if err := apply(payout); err != nil {
		return nil, err
	}
	if err := s.payoutRepo.CompareAndSetStatus(ctx, payout, expected); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update payout: %w", err)
	}
	return payout, nil
}

// claim records the idempotency key, returning the stored key or "" when none applies
func (s *PayoutService) claim(ctx context.Context, tenantID uuid.UUID, key string) (string, error) {
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return "", nil
	}
	scoped := "payout:" + tenantID.String() + ":" + key
	fresh, err := s.idempotency.MarkProcessed(ctx, scoped, s.idemConfig.TTL)
	if err != nil {
		// an unavailable store must not block settlement
		s.logger.Warn("Idempotency store unavailable",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		return "", nil
	}
	if !fresh {
		return "", shared.ErrDuplicateRequest
	}
	return scoped, nil
}

func (s *PayoutService) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idempotency.Forget(ctx, key); err != nil {
		s.logger.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, shared.ErrConcurrencyConflict):
		return telemetry.OutcomeConflict
	case errors.Is(err, shared.ErrInvalidState), errors.Is(err, shared.ErrInvalidInput):
		return telemetry.OutcomeRejected
	default:
		return telemetry.OutcomeError
	}
}
