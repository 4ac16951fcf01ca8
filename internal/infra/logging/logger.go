// Package logging provides file-based logging for issues.
// The TUI owns the terminal, so all diagnostics go to a log file
// (<state dir>/issues/issues.log) instead of stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// CategoryKey is the attribute that names the log category of a logger.
// Loggers created with logger.With(CategoryKey, "api") write "[api]" lines.
const CategoryKey = "category"

// Logger writes formatted log lines to a lazily opened file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file  *os.File
	path  string
	mu    sync.Mutex
	level slog.Level
}

// New creates a new Logger that appends to path.
// If path is empty, logging is disabled (all records are dropped).
func New(path string, level slog.Level) *Logger {
	return &Logger{
		path:  path,
		level: level,
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog returns a *slog.Logger backed by this Logger.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(&handler{logger: l, category: "app"})
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// ensureFile opens or returns the log file.
// Caller must hold l.mu.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) write(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, err := l.ensureFile(); err == nil {
		_, _ = io.WriteString(f, entry)
	}
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [api] message key=value ...
func formatLog(t time.Time, level slog.Level, category, msg, attrs string) string {
	line := fmt.Sprintf("[%s] [%s] [%s] %s",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		category,
		msg,
	)
	if attrs != "" {
		line += " " + attrs
	}
	return line + "\n"
}

func levelToString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// handler adapts Logger to slog.Handler.
type handler struct {
	logger   *Logger
	category string
	attrs    string // Pre-formatted attributes from With
	group    string // Dotted group prefix from WithGroup
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.path != "" && level >= h.logger.level
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	if !h.Enabled(context.Background(), r.Level) {
		return nil
	}

	parts := make([]string, 0, r.NumAttrs()+1)
	if h.attrs != "" {
		parts = append(parts, h.attrs)
	}
	r.Attrs(func(a slog.Attr) bool {
		if s := formatAttr(h.group, a); s != "" {
			parts = append(parts, s)
		}
		return true
	})

	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}
	h.logger.write(formatLog(t, r.Level, h.category, r.Message, strings.Join(parts, " ")))
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	parts := make([]string, 0, len(attrs)+1)
	if c.attrs != "" {
		parts = append(parts, c.attrs)
	}
	for _, a := range attrs {
		if a.Key == CategoryKey && h.group == "" {
			c.category = a.Value.String()
			continue
		}
		if s := formatAttr(h.group, a); s != "" {
			parts = append(parts, s)
		}
	}
	c.attrs = strings.Join(parts, " ")
	return &c
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	if c.group != "" {
		c.group += "."
	}
	c.group += name
	return &c
}

// formatAttr renders an attribute as key=value, quoting values with spaces.
func formatAttr(group string, a slog.Attr) string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return ""
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		parts := make([]string, 0, len(a.Value.Group()))
		for _, ga := range a.Value.Group() {
			if s := formatAttr(key, ga); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\"=") || val == "" {
		val = fmt.Sprintf("%q", val)
	}
	return key + "=" + val
}
