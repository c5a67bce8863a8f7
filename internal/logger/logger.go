package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger is a leveled printf-style logger with optional prefix and fields.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	level    Level
	prefix   string
	fields   map[string]any
	colorize bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sets the output destination.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(l *Logger) { l.level = level }
}

// WithColors enables or disables colorized level tags.
func WithColors(enabled bool) Option {
	return func(l *Logger) { l.colorize = enabled }
}

// New creates a new Logger with the given options.
func New(opts ...Option) *Logger {
	l := &Logger{
		out:      os.Stdout,
		level:    INFO,
		fields:   map[string]any{},
		colorize: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLogger = New()

// SetDefault sets the default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

func (l *Logger) clone() *Logger {
	fields := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{
		out:      l.out,
		level:    l.level,
		prefix:   l.prefix,
		fields:   fields,
		colorize: l.colorize,
	}
}

// WithPrefix returns a new logger with the given prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	next := l.clone()
	next.prefix = prefix
	return next
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	next := l.clone()
	next.fields[key] = value
	return next
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	return next
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" ")
	if l.colorize {
		sb.WriteString(colorize(level))
	} else {
		fmt.Fprintf(&sb, "%-5s", level.String())
	}
	sb.WriteString(" ")
	if l.prefix != "" {
		sb.WriteString("[")
		sb.WriteString(l.prefix)
		sb.WriteString("] ")
	}
	sb.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, l.fields[k])
		}
	}
	sb.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, sb.String())
}

func colorize(level Level) string {
	var color string
	switch level {
	case DEBUG:
		color = "\033[36m"
	case INFO:
		color = "\033[32m"
	case WARN:
		color = "\033[33m"
	case ERROR:
		color = "\033[31m"
	default:
		color = "\033[0m"
	}
	return fmt.Sprintf("%s%-5s\033[0m", color, level.String())
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) { l.log(DEBUG, msg, args...) }

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) { l.log(INFO, msg, args...) }

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) { l.log(WARN, msg, args...) }

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) { l.log(ERROR, msg, args...) }

// Package-level functions that use the default logger.

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

type ctxKey struct{}

// FromContext returns the logger stored in the context, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// NewContext returns a new context carrying the given logger.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}
