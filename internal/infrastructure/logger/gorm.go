package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowQuery = 200 * time.Millisecond
	defaultMaxSQLLen = 2048
)

// GormLogger sends GORM's statement log to zap. Every line carries the request and
// organization of the calling context, so a slow report query can be traced back to
// the organization that asked for it.
type GormLogger struct {
	base      *zap.Logger
	level     gormlogger.LogLevel
	slowQuery time.Duration
	maxSQLLen int
	expected  func(error) bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as slow.
// Zero disables slow query logging.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowQuery = threshold
	}
}

// WithMaxSQLLength caps the logged statement text. Bulk ledger inserts can be long.
func WithMaxSQLLength(n int) GormLoggerOption {
	return func(l *GormLogger) {
		l.maxSQLLen = n
	}
}

// WithExpectedErrors marks errors the repositories translate into domain outcomes.
// They are logged at debug instead of error.
func WithExpectedErrors(match func(error) bool) GormLoggerOption {
	return func(l *GormLogger) {
		prev := l.expected
		l.expected = func(err error) bool { return prev(err) || match(err) }
	}
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		base:      zapLogger.Named("gorm"),
		level:     level,
		slowQuery: defaultSlowQuery,
		maxSQLLen: defaultMaxSQLLen,
		expected: func(err error) bool {
			return errors.Is(err, gormlogger.ErrRecordNotFound)
		},
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.forContext(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.forContext(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.forContext(ctx).Sugar().Errorf(msg, data...)
	}
}

// Trace logs one executed statement. Failures win over slowness, and plain queries
// are only logged at the Info level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowQuery > 0 && elapsed > l.slowQuery

	var (
		lvl zapcore.Level
		msg string
	)
	switch {
	case err != nil && l.expected(err):
		if l.level < gormlogger.Info {
			return
		}
		lvl, msg = zapcore.DebugLevel, "SQL rejected"
	case err != nil:
		if l.level < gormlogger.Error {
			return
		}
		lvl, msg = zapcore.ErrorLevel, "SQL Error"
	case slow:
		if l.level < gormlogger.Warn {
			return
		}
		lvl, msg = zapcore.WarnLevel, "Slow SQL"
	default:
		if l.level < gormlogger.Info {
			return
		}
		lvl, msg = zapcore.DebugLevel, "SQL Query"
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", l.clip(sql)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if slow {
		fields = append(fields, zap.Duration("threshold", l.slowQuery))
	}
	l.forContext(ctx).Log(lvl, msg, fields...)
}

func (l *GormLogger) forContext(ctx context.Context) *zap.Logger {
	log := l.base
	if id := GetRequestID(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	if id := GetOrganizationID(ctx); id != "" {
		log = log.With(zap.String("organization_id", id))
	}
	return log
}

func (l *GormLogger) clip(sql string) string {
	if l.maxSQLLen <= 0 || len(sql) <= l.maxSQLLen {
		return sql
	}
	return fmt.Sprintf("%s... (%d bytes)", sql[:l.maxSQLLen], len(sql))
}

// MapGormLogLevel derives the statement log level from the application log level.
// "silent" turns statement logging off; debug and info log every statement.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	if level == "silent" {
		return gormlogger.Silent
	}
	switch ParseLevel(level) {
	case zapcore.DebugLevel, zapcore.InfoLevel:
		return gormlogger.Info
	case zapcore.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
