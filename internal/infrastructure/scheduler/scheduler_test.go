package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	apprevenue "github.com/rentalops/backend/internal/application/revenue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type funcExecutor func(ctx context.Context, job *Job) error

func (f funcExecutor) Execute(ctx context.Context, job *Job) error {
	return f(ctx, job)
}

type MockOrganizationProvider struct {
	mock.Mock
}

func (m *MockOrganizationProvider) FindActiveOrganizationIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockPeriodPoster struct {
	mock.Mock
}

func (m *MockPeriodPoster) PostForPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*apprevenue.PeriodPosting, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprevenue.PeriodPosting), args.Error(1)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewJob(t *testing.T) {
	tenantID := uuid.New()

	job, err := NewJob(tenantID, day(2024, 3, 1), day(2024, 3, 7), 3)
	require.NoError(t, err)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, tenantID, job.TenantID)

	_, err = NewJob(tenantID, day(2024, 3, 7), day(2024, 3, 1), 3)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestJob_Lifecycle(t *testing.T) {
	job, err := NewJob(uuid.New(), day(2024, 3, 1), day(2024, 3, 1), 1)
	require.NoError(t, err)

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	assert.NotNil(t, job.StartedAt)

	job.Fail("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.Error)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Minute)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.Empty(t, job.Error)
	require.NotNil(t, job.NextRetryAt)

	job.Fail("boom again")
	assert.False(t, job.ShouldRetry())

	job.Complete()
	assert.Equal(t, JobStatusSuccess, job.Status)
}

func TestScheduler_SubmitRequiresRunning(t *testing.T) {
	s := NewScheduler(DefaultConfig(), funcExecutor(func(context.Context, *Job) error { return nil }), zap.NewNop())

	err := s.SchedulePosting(uuid.New(), day(2024, 3, 1), day(2024, 3, 2))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
	assert.False(t, s.IsRunning())
}

func TestScheduler_RunsJobs(t *testing.T) {
	var mu sync.Mutex
	seen := map[uuid.UUID]bool{}
	var wg sync.WaitGroup
	wg.Add(3)
	s := NewScheduler(Config{Workers: 2}, funcExecutor(func(_ context.Context, job *Job) error {
		mu.Lock()
		seen[job.TenantID] = true
		mu.Unlock()
		wg.Done()
		return nil
	}), zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	tenants := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range tenants {
		require.NoError(t, s.SchedulePosting(id, day(2024, 3, 1), day(2024, 3, 7)))
	}
	waitOrFail(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	for _, id := range tenants {
		assert.True(t, seen[id])
	}
}

func TestScheduler_RetriesFailedJob(t *testing.T) {
	var attempts atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)
	s := NewScheduler(Config{Workers: 1, RetryAttempts: 2, RetryDelay: time.Millisecond},
		funcExecutor(func(context.Context, *Job) error {
			if attempts.Add(1) < 3 {
				return errors.New("database unavailable")
			}
			wg.Done()
			return nil
		}), zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	require.NoError(t, s.SchedulePosting(uuid.New(), day(2024, 3, 1), day(2024, 3, 1)))
	waitOrFail(t, &wg)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestScheduler_QueueFull(t *testing.T) {
	block := make(chan struct{})
	s := NewScheduler(Config{Workers: 1, QueueSize: 1}, funcExecutor(func(ctx context.Context, _ *Job) error {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}), zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		close(block)
		_ = s.Stop(context.Background())
	})

	var full bool
	for i := 0; i < 5; i++ {
		if err := s.SchedulePosting(uuid.New(), day(2024, 3, 1), day(2024, 3, 1)); errors.Is(err, ErrJobQueueFull) {
			full = true
			break
		}
	}
	assert.True(t, full)
}

func TestPostingWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)

	start, end := PostingWindow(now, 7)
	assert.Equal(t, day(2024, 3, 3), start)
	assert.Equal(t, day(2024, 3, 9), end)

	start, end = PostingWindow(time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, day(2024, 2, 29), start)
	assert.Equal(t, day(2024, 2, 29), end)
}

func TestCronTrigger_ShouldRun(t *testing.T) {
	c := NewCronTrigger(CronTriggerConfig{Hour: 2, Minute: 30}, nil, nil, zap.NewNop())

	tests := []struct {
		name     string
		time     time.Time
		expected bool
	}{
		{"exact match", time.Date(2026, 1, 15, 2, 30, 0, 0, time.UTC), true},
		{"wrong hour", time.Date(2026, 1, 15, 3, 30, 0, 0, time.UTC), false},
		{"wrong minute", time.Date(2026, 1, 15, 2, 31, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.shouldRun(tt.time))
		})
	}
}

func TestCronTrigger_FiresOncePerDay(t *testing.T) {
	orgA, orgB := uuid.New(), uuid.New()
	provider := new(MockOrganizationProvider)
	provider.On("FindActiveOrganizationIDs", mock.Anything).Return([]uuid.UUID{orgA, orgB}, nil).Once()

	var mu sync.Mutex
	var jobs []*Job
	var wg sync.WaitGroup
	wg.Add(2)
	s := NewScheduler(Config{Workers: 1}, funcExecutor(func(_ context.Context, job *Job) error {
		mu.Lock()
		jobs = append(jobs, job)
		mu.Unlock()
		wg.Done()
		return nil
	}), zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	c := NewCronTrigger(CronTriggerConfig{Hour: 2, LookbackDays: 3}, s, provider, zap.NewNop())
	c.now = func() time.Time { return time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC) }

	c.checkAndTrigger(context.Background())
	c.checkAndTrigger(context.Background())
	waitOrFail(t, &wg)

	provider.AssertNumberOfCalls(t, "FindActiveOrganizationIDs", 1)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, jobs, 2)
	for _, job := range jobs {
		assert.Equal(t, day(2024, 3, 7), job.PeriodStart)
		assert.Equal(t, day(2024, 3, 9), job.PeriodEnd)
	}
}

func TestCronTrigger_TriggerAll_ProviderError(t *testing.T) {
	provider := new(MockOrganizationProvider)
	provider.On("FindActiveOrganizationIDs", mock.Anything).Return(nil, errors.New("timeout"))
	c := NewCronTrigger(DefaultCronTriggerConfig(), nil, provider, zap.NewNop())

	n, err := c.TriggerAll(context.Background(), day(2024, 3, 1), day(2024, 3, 7))
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestCronTrigger_StartStop(t *testing.T) {
	c := NewCronTrigger(DefaultCronTriggerConfig(), nil, new(MockOrganizationProvider), zap.NewNop())
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
}

func TestPostingExecutor_Execute(t *testing.T) {
	tenantID := uuid.New()
	job, err := NewJob(tenantID, day(2024, 3, 1), day(2024, 3, 7), 0)
	require.NoError(t, err)

	poster := new(MockPeriodPoster)
	poster.On("PostForPeriod", mock.Anything, tenantID, job.PeriodStart, job.PeriodEnd).
		Return(&apprevenue.PeriodPosting{Bookings: 4, Entries: 2, Inserted: 2}, nil).Once()
	poster.On("PostForPeriod", mock.Anything, tenantID, job.PeriodStart, job.PeriodEnd).
		Return(nil, errors.New("deadlock detected")).Once()
	executor := NewPostingExecutor(poster, zap.NewNop())

	require.NoError(t, executor.Execute(context.Background(), job))

	err = executor.Execute(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), tenantID.String())
	poster.AssertExpectations(t)
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for jobs")
	}
}
