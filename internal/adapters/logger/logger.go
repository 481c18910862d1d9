package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
// Informational messages go to stdout prefixed with the product tag.
// Debug output, warnings and errors go to stderr.
type Logger struct {
	mu       sync.RWMutex
	level    *slog.LevelVar
	jsonMode bool
	tag      string
	stdout   io.Writer
	stderr   io.Writer
	out      *slog.Logger
	diag     *slog.Logger
}

// New creates a new Logger instance.
func New() ports.Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		tag:    domain.ProductTag,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destinations.
// A nil writer selects the corresponding standard stream.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	l.stdout = stdout
	l.stderr = stderr
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetDebug enables or disables debug output.
func (l *Logger) SetDebug(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// SetTag replaces the product tag. An empty tag disables the prefix.
func (l *Logger) SetTag(tag string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tag = tag
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		l.out = slog.New(slog.NewJSONHandler(l.stdout, opts))
		l.diag = slog.New(slog.NewJSONHandler(l.stderr, opts))
		return
	}
	l.out = slog.New(NewPrettyHandler(l.stdout, opts))
	l.diag = slog.New(NewPrettyHandler(l.stderr, opts))
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.diag.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.tag == "" {
		l.out.Info(msg)
		return
	}
	l.out.Info(msg, TagKey, l.tag)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.diag.Warn(msg)
}

// Error logs an error message with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.diag.Error("bootstrap failed", "error", err)
		return
	}

	l.diag.Error(formatErrorEntries(collectErrorEntries(err)))
}
