package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives no meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Outcome values for AttrOutcome.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// RevenueMetrics holds the revenue engine's instruments. A nil *RevenueMetrics
// is valid and records nothing.
type RevenueMetrics struct {
	breakdowns          *Counter
	aggregationDuration *Histogram
	earningsReturned    *Counter
	payoutTransitions   *Counter
	ledgerEntriesPosted *Counter
	exportsWritten      *Counter
}

// NewRevenueMetrics registers the revenue instruments on meter.
func NewRevenueMetrics(meter metric.Meter) (*RevenueMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   RevenueMetrics
		err error
	)
	if m.breakdowns, err = NewCounter(meter,
		"revenue_breakdowns_total", "Booking financial breakdowns computed", "{breakdowns}"); err != nil {
		return nil, err
	}
	if m.aggregationDuration, err = NewHistogram(meter,
		"revenue_aggregation_duration_seconds", "Time spent aggregating stakeholder earnings", "s",
		DurationBuckets...); err != nil {
		return nil, err
	}
	if m.earningsReturned, err = NewCounter(meter,
		"revenue_earnings_returned_total", "Stakeholder earnings rows returned by aggregations", "{earnings}"); err != nil {
		return nil, err
	}
	if m.payoutTransitions, err = NewCounter(meter,
		"revenue_payout_transitions_total", "Payout status transitions attempted", "{transitions}"); err != nil {
		return nil, err
	}
	if m.ledgerEntriesPosted, err = NewCounter(meter,
		"revenue_ledger_entries_posted_total", "Commission ledger entries inserted", "{entries}"); err != nil {
		return nil, err
	}
	if m.exportsWritten, err = NewCounter(meter,
		"revenue_exports_total", "Payout CSV exports rendered", "{exports}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordBreakdown counts one computed breakdown.
func (m *RevenueMetrics) RecordBreakdown(ctx context.Context, tenantID uuid.UUID, channel, routingType string) {
	if m == nil {
		return
	}
	m.breakdowns.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrChannel.String(channel),
		AttrRoutingType.String(routingType),
	)
}

// RecordAggregation records one aggregation run and the rows it produced.
func (m *RevenueMetrics) RecordAggregation(ctx context.Context, stakeholderType string, d time.Duration, rows int) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrStakeholderType.String(stakeholderType)}
	m.aggregationDuration.RecordDuration(ctx, d, attrs...)
	m.earningsReturned.Add(ctx, int64(rows), attrs...)
}

// RecordPayoutTransition counts one attempted payout status change.
func (m *RevenueMetrics) RecordPayoutTransition(ctx context.Context, stakeholderType, status, outcome string) {
	if m == nil {
		return
	}
	m.payoutTransitions.Inc(ctx,
		AttrStakeholderType.String(stakeholderType),
		AttrPayoutStatus.String(status),
		AttrOutcome.String(outcome),
	)
}

// RecordLedgerPosting counts newly inserted commission ledger entries.
func (m *RevenueMetrics) RecordLedgerPosting(ctx context.Context, inserted int64) {
	if m == nil || inserted == 0 {
		return
	}
	m.ledgerEntriesPosted.Add(ctx, inserted)
}

// RecordExport counts one rendered export.
func (m *RevenueMetrics) RecordExport(ctx context.Context, stakeholderType string, archived bool) {
	if m == nil {
		return
	}
	m.exportsWritten.Inc(ctx,
		AttrStakeholderType.String(stakeholderType),
		attribute.Bool("archived", archived),
	)
}
