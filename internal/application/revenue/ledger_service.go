package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LedgerPosting is the result of posting a booking's agent commissions
type LedgerPosting struct {
	Breakdown revenue.BookingFinancialBreakdown
	Entries   []revenue.CommissionLedgerEntry
	// Inserted counts entries written now; already posted ones are skipped
	Inserted int64
}

// LedgerPostingService posts agent commissions to the commission ledger
type LedgerPostingService struct {
	breakdowns *BreakdownService
	ledgerRepo revenue.CommissionLedgerRepository
	metrics    *telemetry.RevenueMetrics
	logger     *zap.Logger
}

// NewLedgerPostingService creates a new LedgerPostingService
func NewLedgerPostingService(
	breakdowns *BreakdownService,
	ledgerRepo revenue.CommissionLedgerRepository,
	metrics *telemetry.RevenueMetrics,
	logger *zap.Logger,
) *LedgerPostingService {
	return &LedgerPostingService{
		breakdowns: breakdowns,
		ledgerRepo: ledgerRepo,
		metrics:    metrics,
		logger:     logger,
	}
}

// PostForBooking computes the booking's breakdown from its stored values and posts one
// entry per assigned agent, dated at check-in. Posting twice writes nothing new.
func (s *LedgerPostingService) PostForBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*LedgerPosting, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "commission_ledger", "post",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrBookingID, bookingID.String()),
	)
	defer span.End()

	booking, err := s.breakdowns.bookingRepo.FindByID(ctx, tenantID, bookingID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	bd, err := s.breakdowns.CalculateForBooking(ctx, tenantID, bookingID, BreakdownOverrides{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	entries := revenue.LedgerEntriesFromBreakdown(tenantID, bd, booking.CheckIn)
	posting := &LedgerPosting{Breakdown: bd, Entries: entries}
	if len(entries) == 0 {
		return posting, nil
	}

	inserted, err := s.ledgerRepo.SaveEntries(ctx, entries)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("post commissions for booking %s: %w", bookingID, err)
	}
	posting.Inserted = inserted
	s.metrics.RecordLedgerPosting(ctx, inserted)

	s.logger.Info("Agent commissions posted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("entries", len(entries)),
		zap.Int64("inserted", inserted),
	)
	return posting, nil
}

// PeriodPosting summarizes a batch posting over a check-in range
type PeriodPosting struct {
	Bookings int
	Entries  int
	Inserted int64
}

// PostForPeriod posts agent commissions for every non-cancelled booking checking in
// between from and to (inclusive days). Bookings without agents are counted but write
// nothing. Stops at the first failing booking.
func (s *LedgerPostingService) PostForPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*PeriodPosting, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "commission_ledger", "post_period",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
	)
	defer span.End()

	bookings, err := s.breakdowns.bookingRepo.FindForPeriod(ctx, tenantID, revenue.BookingQuery{
		CheckInFrom: &from,
		CheckInTo:   &to,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &PeriodPosting{}
	for _, booking := range bookings {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		posting, err := s.PostForBooking(ctx, tenantID, booking.ID)
		if err != nil {
			telemetry.RecordError(span, err)
			return result, err
		}
		result.Bookings++
		result.Entries += len(posting.Entries)
		result.Inserted += posting.Inserted
	}

	s.logger.Info("Period commissions posted",
		zap.String("tenant_id", tenantID.String()),
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("bookings", result.Bookings),
		zap.Int64("inserted", result.Inserted),
	)
	return result, nil
}
