package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel represents logging levels
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Format selects the slog handler
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds logger configuration
type Config struct {
	Level       LogLevel
	Format      Format
	ServiceName string
	Environment string
	Version     string
	Output      io.Writer
	AddSource   bool
}

// DefaultConfig returns a default logger configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		Level:       LevelInfo,
		Format:      FormatJSON,
		ServiceName: serviceName,
		Environment: getEnv("ENVIRONMENT", "development"),
		Version:     getEnv("VERSION", "unknown"),
		Output:      os.Stderr,
		AddSource:   false,
	}
}

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
	serviceName string
}

// New creates a new Logger instance
func New(config *Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(config.Level),
		AddSource: config.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if config.Format == FormatText {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	baseLogger := slog.New(handler).With(
		"service", config.ServiceName,
		"environment", config.Environment,
		"version", config.Version,
	)

	return &Logger{
		Logger:      baseLogger,
		serviceName: config.ServiceName,
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps a configured level onto slog, defaulting to info
func ParseLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{
		Logger:      l.Logger.With(args...),
		serviceName: l.serviceName,
	}
}

// WithContext adds the call attributes stored in ctx
func (l *Logger) WithContext(ctx context.Context) *Logger {
	attrs := callAttrs(ctx)
	if len(attrs) == 0 {
		return l
	}
	return l.with(attrs...)
}

// WithError adds an error to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with("error", err.Error())
}

// WithComponent adds a component name to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// quietOutcomes are logged at debug: successes, and calls the caller or a
// session teardown cancelled
var quietOutcomes = map[string]bool{
	"success":     true,
	"passthrough": true,
	"cancelled":   true,
}

// HTTPCall logs one outgoing call to the WMS backend. Successful calls are
// logged at debug so interactive use stays quiet.
func (l *Logger) HTTPCall(ctx context.Context, method, path string, status int, duration time.Duration, outcome string) {
	level := slog.LevelWarn
	switch {
	case quietOutcomes[outcome]:
		level = slog.LevelDebug
	case status >= 500 || status == 0:
		level = slog.LevelError
	}

	l.WithContext(ctx).Log(ctx, level, "WMS call",
		"method", method,
		"path", path,
		"status", status,
		"outcome", outcome,
		"durationMs", duration.Milliseconds(),
	)
}

type callKey int

const (
	requestIDKey callKey = iota
	operationKey
	usernameKey
)

// ContextWithCall tags ctx with the request ID and operation of one WMS call
func ContextWithCall(ctx context.Context, requestID, operation string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return context.WithValue(ctx, operationKey, operation)
}

// ContextWithUsername tags ctx with the signed-in user
func ContextWithUsername(ctx context.Context, username string) context.Context {
	if username == "" {
		return ctx
	}
	return context.WithValue(ctx, usernameKey, username)
}

// RequestID returns the request ID stored by ContextWithCall
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func callAttrs(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var attrs []any
	for _, kv := range []struct {
		key  callKey
		name string
	}{
		{requestIDKey, "requestId"},
		{operationKey, "operation"},
		{usernameKey, "user"},
	} {
		if v, ok := ctx.Value(kv.key).(string); ok && v != "" {
			attrs = append(attrs, kv.name, v)
		}
	}
	return attrs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
