package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrganizationProvider lists the organizations a run covers
type OrganizationProvider interface {
	FindActiveOrganizationIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CronTriggerConfig holds configuration for the daily trigger
type CronTriggerConfig struct {
	// Hour and Minute are the local time of day to run (24h)
	Hour   int
	Minute int

	// LookbackDays is the number of check-in days covered, ending yesterday
	LookbackDays int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		Hour:          2,
		Minute:        0,
		LookbackDays:  7,
		CheckInterval: time.Minute,
	}
}

// CronTrigger submits the nightly posting jobs
type CronTrigger struct {
	config        CronTriggerConfig
	scheduler     *Scheduler
	organizations OrganizationProvider
	logger        *zap.Logger
	now           func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(
	config CronTriggerConfig,
	scheduler *Scheduler,
	organizations OrganizationProvider,
	logger *zap.Logger,
) *CronTrigger {
	if config.LookbackDays <= 0 {
		config.LookbackDays = DefaultCronTriggerConfig().LookbackDays
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultCronTriggerConfig().CheckInterval
	}
	return &CronTrigger{
		config:        config,
		scheduler:     scheduler,
		organizations: organizations,
		logger:        logger,
		now:           time.Now,
	}
}

// Start starts the trigger loop
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRunning {
		return nil
	}
	c.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Posting cron trigger started",
		zap.Int("hour", c.config.Hour),
		zap.Int("minute", c.config.Minute),
		zap.Int("lookback_days", c.config.LookbackDays),
	)
	return nil
}

// Stop stops the trigger loop
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Posting cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

func (c *CronTrigger) shouldRun(now time.Time) bool {
	return now.Hour() == c.config.Hour && now.Minute() == c.config.Minute
}

// checkAndTrigger fires at most once per calendar day
func (c *CronTrigger) checkAndTrigger(ctx context.Context) {
	now := c.now()
	if !c.shouldRun(now) {
		return
	}

	currentDate := now.Format(time.DateOnly)
	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return
	}
	c.lastRunDate = currentDate
	c.mu.Unlock()

	start, end := PostingWindow(now, c.config.LookbackDays)
	if _, err := c.TriggerAll(ctx, start, end); err != nil {
		c.logger.Error("Failed to trigger nightly posting", zap.Error(err))
	}
}

// TriggerAll submits one job per active organization and returns how many were queued.
// A failed submission is logged and skipped.
func (c *CronTrigger) TriggerAll(ctx context.Context, periodStart, periodEnd time.Time) (int, error) {
	tenantIDs, err := c.organizations.FindActiveOrganizationIDs(ctx)
	if err != nil {
		return 0, err
	}

	c.logger.Info("Scheduling commission posting",
		zap.Int("organization_count", len(tenantIDs)),
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
	)

	submitted := 0
	for _, tenantID := range tenantIDs {
		if err := c.scheduler.SchedulePosting(tenantID, periodStart, periodEnd); err != nil {
			c.logger.Error("Failed to schedule posting for organization",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		submitted++
	}
	return submitted, nil
}

// PostingWindow returns the lookbackDays whole days ending the day before now
func PostingWindow(now time.Time, lookbackDays int) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(lookbackDays - 1))
	return start, end
}
