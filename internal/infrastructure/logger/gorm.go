package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger writes gorm statements to zap. Statements show placeholders
// unless bound values were asked for, since the values carry tenant names,
// phone numbers and ID numbers.
type GormLogger struct {
	logger        *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	showValues    bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the slow statement threshold; zero disables it
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowThreshold = threshold
	}
}

// WithBoundValues logs statements with their arguments inlined
func WithBoundValues(show bool) GormLoggerOption {
	return func(l *GormLogger) {
		l.showValues = show
	}
}

func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:        zapLogger.Named("gorm"),
		level:         level,
		slowThreshold: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		L(ctx, l.logger).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		L(ctx, l.logger).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		L(ctx, l.logger).Sugar().Errorf(msg, data...)
	}
}

// ParamsFilter implements gorm.ParamsFilter. Returning no params makes gorm
// render the statement with placeholders.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.showValues {
		return sql, params
	}
	return sql, nil
}

type statementOutcome int

const (
	outcomeOK statementOutcome = iota
	outcomeMiss
	outcomeConflict
	outcomeFailed
)

// classify separates lookups that found nothing and unique-key clashes,
// which are ordinary outcomes for the services, from real failures.
func classify(err error) statementOutcome {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, gormlogger.ErrRecordNotFound):
		return outcomeMiss
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return outcomeConflict
	default:
		return outcomeFailed
	}
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold
	outcome := classify(err)

	var emit func(string, ...zap.Field)
	log := L(ctx, l.logger)
	msg := "SQL"
	switch {
	case outcome == outcomeFailed && l.level >= gormlogger.Error:
		emit, msg = log.Error, "SQL error"
	case outcome == outcomeConflict && l.level >= gormlogger.Warn:
		emit, msg = log.Warn, "SQL conflict"
	case slow && l.level >= gormlogger.Warn:
		emit, msg = log.Warn, "Slow SQL"
	case l.level >= gormlogger.Info:
		emit = log.Debug
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if slow {
		fields = append(fields, zap.Duration("threshold", l.slowThreshold))
	}
	if outcome == outcomeFailed || outcome == outcomeConflict {
		fields = append(fields, zap.Error(err))
	}
	emit(msg, fields...)
}

// MapGormLogLevel maps a log level name to gorm's levels
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
