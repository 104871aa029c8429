package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	apprevenue "github.com/rentalops/backend/internal/application/revenue"
	"go.uber.org/zap"
)

// PeriodPoster posts agent commissions over a check-in range
type PeriodPoster interface {
	PostForPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*apprevenue.PeriodPosting, error)
}

// PostingExecutor runs posting jobs against the ledger service
type PostingExecutor struct {
	poster PeriodPoster
	logger *zap.Logger
}

// NewPostingExecutor creates a new PostingExecutor
func NewPostingExecutor(poster PeriodPoster, logger *zap.Logger) *PostingExecutor {
	return &PostingExecutor{poster: poster, logger: logger}
}

// Execute posts the job's period for its organization
func (e *PostingExecutor) Execute(ctx context.Context, job *Job) error {
	result, err := e.poster.PostForPeriod(ctx, job.TenantID, job.PeriodStart, job.PeriodEnd)
	if err != nil {
		return fmt.Errorf("post commissions for organization %s: %w", job.TenantID, err)
	}
	e.logger.Debug("Posting job result",
		zap.String("job_id", job.ID.String()),
		zap.Int("bookings", result.Bookings),
		zap.Int("entries", result.Entries),
		zap.Int64("inserted", result.Inserted),
	)
	return nil
}

var _ JobExecutor = (*PostingExecutor)(nil)
