package revenue

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	csvexport "github.com/rentalops/backend/internal/infrastructure/export"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CSVContentType is the media type of rendered reports
const CSVContentType = "text/csv; charset=utf-8"

// ErrArchiveUnavailable is returned by Archive when no object storage is configured
var ErrArchiveUnavailable = errors.New("report archive storage is not configured")

// ObjectStore stores rendered reports and issues temporary download links
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// Report is a rendered earnings export
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

// ArchivedReport points at a report written to object storage
type ArchivedReport struct {
	Key       string    `json:"key"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Rows      int       `json:"rows"`
}

// ExportService renders stakeholder earnings as CSV and archives them
type ExportService struct {
	aggregation *AggregationService
	writer      *csvexport.Writer
	store       ObjectStore
	prefix      string
	urlExpiry   time.Duration
	metrics     *telemetry.RevenueMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService creates a new ExportService. store may be nil, in which case Archive
// is unavailable.
func NewExportService(
	aggregation *AggregationService,
	writer *csvexport.Writer,
	store ObjectStore,
	prefix string,
	urlExpiry time.Duration,
	metrics *telemetry.RevenueMetrics,
	logger *zap.Logger,
) *ExportService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &ExportService{
		aggregation: aggregation,
		writer:      writer,
		store:       store,
		prefix:      strings.Trim(prefix, "/"),
		urlExpiry:   urlExpiry,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Export renders the earnings of kind for the filter
func (s *ExportService) Export(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (*Report, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payout_export", string(kind),
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStakeholderType, string(kind)),
	)
	defer span.End()

	report, err := s.render(ctx, tenantID, kind, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.RecordExport(ctx, string(kind), false)
	return report, nil
}

// Archive renders the export, writes it under the organization's prefix and returns a
// presigned download link
func (s *ExportService) Archive(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (*ArchivedReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payout_export", "archive",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStakeholderType, string(kind)),
	)
	defer span.End()

	if s.store == nil {
		return nil, ErrArchiveUnavailable
	}

	report, err := s.render(ctx, tenantID, kind, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	key := path.Join(s.prefix, tenantID.String(), s.now().UTC().Format("20060102T150405Z")+"-"+report.Filename)
	if err := s.store.Put(ctx, key, report.Data, report.ContentType); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("archive %s report: %w", kind, err)
	}

	url, expiresAt, err := s.store.DownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("presign %s report: %w", kind, err)
	}

	s.metrics.RecordExport(ctx, string(kind), true)
	s.logger.Info("Payout report archived",
		zap.String("tenant_id", tenantID.String()),
		zap.String("stakeholder_type", string(kind)),
		zap.String("key", key),
		zap.Int("rows", report.Rows),
	)
	return &ArchivedReport{
		Key:       key,
		Filename:  report.Filename,
		URL:       url,
		ExpiresAt: expiresAt,
		Rows:      report.Rows,
	}, nil
}

func (s *ExportService) render(ctx context.Context, tenantID uuid.UUID, kind revenue.StakeholderType, filter revenue.EarningsFilter) (*Report, error) {
	earnings, err := s.aggregation.Earnings(ctx, tenantID, kind, filter)
	if err != nil {
		return nil, err
	}
	data, err := s.writer.Render(kind, earnings)
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", kind, err)
	}
	return &Report{
		Filename:    reportFilename(kind, filter),
		ContentType: CSVContentType,
		Data:        data,
		Rows:        len(earnings),
	}, nil
}

func reportFilename(kind revenue.StakeholderType, filter revenue.EarningsFilter) string {
	if period, ok := filter.Period(); ok {
		return csvexport.Filename(kind, period)
	}
	return strings.ReplaceAll(kind.String(), "_", "-") + "-payouts.csv"
}
