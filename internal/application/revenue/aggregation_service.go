package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// AggregationService groups booking breakdowns and ledger entries into stakeholder
// earnings over a period
type AggregationService struct {
	breakdowns   *BreakdownService
	ledgerRepo   revenue.CommissionLedgerRepository
	staffRepo    revenue.StaffWageRepository
	propertyRepo revenue.PropertyRepository
	directory    revenue.StakeholderDirectory
	payoutRepo   revenue.PayoutRepository
	metrics      *telemetry.RevenueMetrics
	logger       *zap.Logger
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	breakdowns *BreakdownService,
	ledgerRepo revenue.CommissionLedgerRepository,
	staffRepo revenue.StaffWageRepository,
	propertyRepo revenue.PropertyRepository,
	directory revenue.StakeholderDirectory,
	payoutRepo revenue.PayoutRepository,
	metrics *telemetry.RevenueMetrics,
	logger *zap.Logger,
) *AggregationService {
	return &AggregationService{
		breakdowns:   breakdowns,
		ledgerRepo:   ledgerRepo,
		staffRepo:    staffRepo,
		propertyRepo: propertyRepo,
		directory:    directory,
		payoutRepo:   payoutRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Earnings dispatches to the aggregation for kind
func (s *AggregationService) Earnings(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) ([]revenue.StakeholderEarning, error) {
	switch kind {
	case revenue.StakeholderOwner:
		return s.OwnerEarnings(ctx, tenantID, filter)
	case revenue.StakeholderPropertyManager:
		return s.PropertyManagerEarnings(ctx, tenantID, filter)
	case revenue.StakeholderReferralAgent:
		return s.AgentEarnings(ctx, tenantID, revenue.AgentTypeReferral, filter)
	case revenue.StakeholderRetailAgent:
		return s.AgentEarnings(ctx, tenantID, revenue.AgentTypeRetail, filter)
	case revenue.StakeholderStaff:
		return s.StaffEarnings(ctx, tenantID, filter)
	default:
		return nil, shared.Newf(shared.ErrInvalidInput.Code, "unknown stakeholder type %q", kind)
	}
}

// OwnerEarnings groups bookings by the owner of their property
func (s *AggregationService) OwnerEarnings(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) ([]revenue.StakeholderEarning, error) {
	return s.fromBreakdowns(ctx, tenantID, revenue.StakeholderOwner, filter,
		func(book *revenue.EarningsBook, bb bookingBreakdown) {
			if filter.IncludesStakeholder(bb.breakdown.OwnerID) {
				book.AddOwnerBreakdown(bb.breakdown, bb.propertyName)
			}
		})
}

// PropertyManagerEarnings groups bookings by their resolved property manager. Bookings
// without a manager are skipped.
func (s *AggregationService) PropertyManagerEarnings(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) ([]revenue.StakeholderEarning, error) {
	return s.fromBreakdowns(ctx, tenantID, revenue.StakeholderPropertyManager, filter,
		func(book *revenue.EarningsBook, bb bookingBreakdown) {
			pm := bb.breakdown.PMUserID
			if pm == nil || !filter.IncludesStakeholder(*pm) {
				return
			}
			book.AddManagerBreakdown(bb.breakdown, bb.propertyName)
		})
}

func (s *AggregationService) fromBreakdowns(
	ctx context.Context,
	tenantID uuid.UUID,
	kind revenue.StakeholderType,
	filter revenue.EarningsFilter,
	add func(*revenue.EarningsBook, bookingBreakdown),
) ([]revenue.StakeholderEarning, error) {
	ctx, span := s.startSpan(ctx, tenantID, kind, filter)
	defer span.End()
	start := time.Now()

	bds, err := s.breakdowns.breakdownsFor(ctx, tenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("aggregate %s earnings: %w", kind, err)
	}

	book := revenue.NewEarningsBook(kind)
	for _, bb := range bds {
		add(book, bb)
	}

	earnings := s.finish(ctx, tenantID, kind, filter, book.Earnings())
	telemetry.SetAttributes(span, telemetry.SpanAttrResultCount, len(earnings))
	s.metrics.RecordAggregation(ctx, string(kind), time.Since(start), len(earnings))
	return earnings, nil
}

// AgentEarnings groups posted commission ledger entries by agent
func (s *AggregationService) AgentEarnings(ctx context.Context, tenantID uuid.UUID, agentType revenue.AgentType, filter revenue.EarningsFilter) ([]revenue.StakeholderEarning, error) {
	kind := agentType.StakeholderType()
	ctx, span := s.startSpan(ctx, tenantID, kind, filter)
	defer span.End()
	start := time.Now()

	entries, err := s.ledgerRepo.FindEntries(ctx, tenantID, agentType, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("aggregate %s earnings: %w", kind, err)
	}

	propertyIDs := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		propertyIDs = append(propertyIDs, e.PropertyID)
	}
	names := s.propertyNames(ctx, tenantID, propertyIDs)

	book := revenue.NewEarningsBook(kind)
	for _, e := range entries {
		book.AddLedgerEntry(e, names[e.PropertyID])
	}

	earnings := s.finish(ctx, tenantID, kind, filter, book.Earnings())
	telemetry.SetAttributes(span, telemetry.SpanAttrResultCount, len(earnings))
	s.metrics.RecordAggregation(ctx, string(kind), time.Since(start), len(earnings))
	return earnings, nil
}

// StaffEarnings returns one earning per active wage configuration
func (s *AggregationService) StaffEarnings(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) ([]revenue.StakeholderEarning, error) {
	ctx, span := s.startSpan(ctx, tenantID, revenue.StakeholderStaff, filter)
	defer span.End()
	start := time.Now()

	configs, err := s.staffRepo.FindActive(ctx, tenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("aggregate staff earnings: %w", err)
	}

	var propertyIDs []uuid.UUID
	for _, c := range configs {
		if c.PropertyID != nil {
			propertyIDs = append(propertyIDs, *c.PropertyID)
		}
	}
	earnings := revenue.StaffEarnings(configs, s.propertyNames(ctx, tenantID, propertyIDs))

	earnings = s.finish(ctx, tenantID, revenue.StakeholderStaff, filter, earnings)
	s.metrics.RecordAggregation(ctx, string(revenue.StakeholderStaff), time.Since(start), len(earnings))
	return earnings, nil
}

// Overview summarizes every booking in scope plus active staff wages
func (s *AggregationService) Overview(ctx context.Context, tenantID uuid.UUID, filter revenue.EarningsFilter) (revenue.FinancialOverview, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "revenue", "overview",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
	)
	defer span.End()

	bds, err := s.breakdowns.breakdownsFor(ctx, tenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return revenue.FinancialOverview{}, fmt.Errorf("overview: %w", err)
	}
	breakdowns := make([]revenue.BookingFinancialBreakdown, len(bds))
	for i, bb := range bds {
		breakdowns[i] = bb.breakdown
	}

	staff, err := s.staffRepo.FindActive(ctx, tenantID, revenue.EarningsFilter{PropertyIDs: filter.PropertyIDs})
	if err != nil {
		telemetry.RecordError(span, err)
		return revenue.FinancialOverview{}, fmt.Errorf("overview: %w", err)
	}

	return revenue.Summarize(breakdowns, staff), nil
}

// finish fills display names and persisted payout statuses
func (s *AggregationService) finish(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter, earnings []revenue.StakeholderEarning) []revenue.StakeholderEarning {
	if len(earnings) == 0 {
		return earnings
	}

	names, err := s.directory.FindNames(ctx, tenantID, revenue.StakeholderIDs(earnings))
	if err != nil {
		s.logger.Warn("Stakeholder name lookup failed, using ids",
			zap.String("tenant_id", tenantID.String()),
			zap.String("stakeholder_type", string(kind)),
			zap.Error(err),
		)
		names = nil
	}
	revenue.ApplyNames(earnings, names)

	period, ok := filter.Period()
	if !ok {
		return earnings
	}
	payouts, err := s.payoutRepo.FindForPeriod(ctx, tenantID, kind, period)
	if err != nil {
		s.logger.Warn("Payout status lookup failed, reporting pending",
			zap.String("tenant_id", tenantID.String()),
			zap.String("stakeholder_type", string(kind)),
			zap.Error(err),
		)
		return earnings
	}
	revenue.ApplyStatuses(earnings, payouts)
	return earnings
}

func (s *AggregationService) propertyNames(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	if len(ids) == 0 {
		return names
	}
	properties, err := s.propertyRepo.FindByIDs(ctx, tenantID, uniqueIDs(ids))
	if err != nil {
		s.logger.Warn("Property name lookup failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		return names
	}
	for _, p := range properties {
		names[p.ID] = p.Name
	}
	return names
}

func (s *AggregationService) startSpan(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (context.Context, trace.Span) {
	opts := []telemetry.SpanOption{
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStakeholderType, string(kind)),
	}
	if filter.StartDate != nil {
		opts = append(opts, telemetry.WithAttribute(telemetry.SpanAttrPeriodStart, filter.StartDate.Format(time.DateOnly)))
	}
	if filter.EndDate != nil {
		opts = append(opts, telemetry.WithAttribute(telemetry.SpanAttrPeriodEnd, filter.EndDate.Format(time.DateOnly)))
	}
	return telemetry.StartServiceSpan(ctx, "payout_aggregation", string(kind), opts...)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
