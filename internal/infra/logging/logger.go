// Package logging provides the operational logger for workforce.
// Entries go to a writer (stderr by default) and, when a log directory is
// configured, to a global log file (workforce.log) and per-task files
// (task-N.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/workforce/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries for the domain.Logger port.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out        io.Writer
	globalFile *os.File
	taskFiles  map[int64]*os.File
	clock      domain.Clock
	logDir     string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger.
// A nil out and an empty logDir together disable logging.
func New(out io.Writer, logDir string, level slog.Level) *Logger {
	return &Logger{
		out:       out,
		logDir:    logDir,
		level:     level,
		clock:     domain.RealClock{},
		taskFiles: make(map[int64]*os.File),
	}
}

// WithClock replaces the clock used for entry timestamps.
func (l *Logger) WithClock(clock domain.Clock) *Logger {
	l.clock = clock
	return l
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

// NewSlog returns a text slog.Logger writing to out at the given level.
func NewSlog(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func (l *Logger) openLocked(path string) (*os.File, error) {
	if err := os.MkdirAll(l.logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.taskFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.taskFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [task-1] [category] message
func formatLog(t time.Time, level slog.Level, taskID int64, category, msg string) string {
	taskStr := "global"
	if taskID > 0 {
		taskStr = fmt.Sprintf("task-%d", taskID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		taskStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the writer and, with a log directory, to the
// global file plus the task file when taskID > 0.
func (l *Logger) log(level slog.Level, taskID int64, category, msg string) {
	if level < l.level {
		return
	}
	if l.out == nil && l.logDir == "" {
		return
	}

	entry := formatLog(l.clock.Now(), level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out != nil {
		_, _ = io.WriteString(l.out, entry)
	}
	if l.logDir == "" {
		return
	}

	if l.globalFile == nil {
		f, err := l.openLocked(domain.GlobalLogPath(l.logDir))
		if err != nil {
			return
		}
		l.globalFile = f
	}
	_, _ = io.WriteString(l.globalFile, entry)

	if taskID <= 0 {
		return
	}
	tf, ok := l.taskFiles[taskID]
	if !ok {
		f, err := l.openLocked(domain.TaskLogPath(l.logDir, taskID))
		if err != nil {
			return
		}
		l.taskFiles[taskID] = f
		tf = f
	}
	_, _ = io.WriteString(tf, entry)
}

// Info logs an info message.
func (l *Logger) Info(taskID int64, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int64, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int64, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID int64, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
