package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/rentalops/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type queryStartKey struct{}

// DBTracer adds otelgorm spans to a gorm.DB and flags slow statements.
type DBTracer struct {
	logFullSQL    bool
	slowThreshold time.Duration
	logger        *zap.Logger
}

// NewDBTracer builds a tracer from the telemetry settings.
func NewDBTracer(cfg config.TelemetryConfig, logger *zap.Logger) *DBTracer {
	return &DBTracer{
		logFullSQL:    cfg.DBLogFullSQL,
		slowThreshold: cfg.DBSlowQueryThresh,
		logger:        logger,
	}
}

// Register installs timing callbacks and the otelgorm plugin on db.
func (t *DBTracer) Register(db *gorm.DB) error {
	cb := db.Callback()
	steps := []struct {
		name          string
		before, after gormRegistrar
	}{
		{"create", cb.Create().Before("gorm:create"), cb.Create().After("gorm:create")},
		{"query", cb.Query().Before("gorm:query"), cb.Query().After("gorm:query")},
		{"update", cb.Update().Before("gorm:update"), cb.Update().After("gorm:update")},
		{"delete", cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete")},
		{"row", cb.Row().Before("gorm:row"), cb.Row().After("gorm:row")},
		{"raw", cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw")},
	}
	for _, st := range steps {
		if err := st.before.Register("rentalops_timing:before_"+st.name, markQueryStart); err != nil {
			return err
		}
		if err := st.after.Register("rentalops_timing:after_"+st.name, t.afterQuery); err != nil {
			return err
		}
	}

	// Registered after the timing hooks so the span is still open when afterQuery runs.
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !t.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	t.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", t.logFullSQL),
		zap.Duration("slow_query_threshold", t.slowThreshold),
	)
	return nil
}

// gormRegistrar is the subset of gorm's callback processor used by Register.
type gormRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (t *DBTracer) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)

	if err := db.Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		span.SetAttributes(attribute.Bool("db.error", true))
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok || t.slowThreshold <= 0 {
		return
	}
	elapsed := time.Since(start)
	if elapsed < t.slowThreshold {
		return
	}
	span.SetAttributes(
		attribute.Bool("db.slow_query", true),
		attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
	)
	t.logger.Warn("Slow query",
		zap.String("table", db.Statement.Table),
		zap.Duration("elapsed", elapsed),
		zap.Duration("threshold", t.slowThreshold),
	)
}
