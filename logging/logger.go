package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface for mindspace. This allows
// users to provide their own logger implementation or use the built-in
// adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// MindspaceLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. It is cheap to copy via With* methods.
type MindspaceLogger struct {
	logger    *slog.Logger
	level     LogLevel
	context   map[string]interface{}
	component string
	cycle     int
	hasCycle  bool
}

// LoggerConfig configures construction of a MindspaceLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout, AddSource: false}
}

// NewLogger builds a MindspaceLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *MindspaceLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return &MindspaceLogger{logger: slog.New(handler), level: cfg.Level, context: map[string]interface{}{}, component: cfg.Component}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *MindspaceLogger) clone() *MindspaceLogger {
	nl := *l
	nl.context = map[string]interface{}{}
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute attached to every log entry.
func (l *MindspaceLogger) WithContext(key string, value interface{}) *MindspaceLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (workspace, module, gate, etc.).
func (l *MindspaceLogger) WithComponent(c string) *MindspaceLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithCycle attaches the cycle index to every log entry.
func (l *MindspaceLogger) WithCycle(cycle int) *MindspaceLogger {
	nl := l.clone()
	nl.cycle = cycle
	nl.hasCycle = true
	return nl
}

func (l *MindspaceLogger) buildAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(l.context)+3)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.hasCycle {
		attrs = append(attrs, slog.Int("cycle", l.cycle))
	}
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (l *MindspaceLogger) log(level slog.Level, allowed bool, msg string, args ...interface{}) {
	if !allowed {
		return
	}
	attrs := l.buildAttrs()
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level.
func (l *MindspaceLogger) Debug(msg string, args ...interface{}) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *MindspaceLogger) Info(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *MindspaceLogger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *MindspaceLogger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogCompetition records the outcome of one cycle's proposal competition.
func (l *MindspaceLogger) LogCompetition(candidates int, winnerSource, winnerKind string, score float64) {
	attrs := l.buildAttrs()
	attrs = append(attrs,
		slog.Int("candidates", candidates),
		slog.String("winner_source", winnerSource),
		slog.String("winner_kind", winnerKind),
		slog.Float64("gated_score", score),
	)
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Competition resolved", attrs...)
}

// LogIgnition records a proposal crossing the ignition threshold.
func (l *MindspaceLogger) LogIgnition(contentID, kind string, score float64, preempted bool) {
	attrs := l.buildAttrs()
	attrs = append(attrs,
		slog.String("content_id", contentID),
		slog.String("kind", kind),
		slog.Float64("gated_score", score),
		slog.Bool("preempted", preempted),
	)
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Ignition", attrs...)
}

// LogDecay records a persistence decay step, including content clearing.
func (l *MindspaceLogger) LogDecay(contentID string, activation float64, cleared bool) {
	attrs := l.buildAttrs()
	attrs = append(attrs,
		slog.String("content_id", contentID),
		slog.Float64("activation", activation),
		slog.Bool("cleared", cleared),
	)
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Persistence decay", attrs...)
}

// LogBroadcast records a completed broadcast round.
func (l *MindspaceLogger) LogBroadcast(modules int, dur time.Duration, hasContent bool) {
	attrs := l.buildAttrs()
	attrs = append(attrs,
		slog.Int("modules", modules),
		slog.Duration("duration", dur),
		slog.Bool("has_content", hasContent),
	)
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Broadcast completed", attrs...)
}

// LogModuleFault records a module that failed to produce proposals.
func (l *MindspaceLogger) LogModuleFault(module string, err error) {
	attrs := l.buildAttrs()
	attrs = append(attrs, slog.String("module", module))
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, "Module fault", attrs...)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is
// disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
