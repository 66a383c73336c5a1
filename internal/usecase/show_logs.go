package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/workforce/internal/domain"
)

// ShowLogsInput contains the parameters for showing operational logs.
type ShowLogsInput struct {
	TaskID int64 // Task ID to show logs for (0 = global log)
	Lines  int   // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing operational logs.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for reading the files written under [log] dir.
// Task ids are not checked against the store: the files usually outlive the
// process that wrote them.
type ShowLogs struct {
	logDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(logDir string) *ShowLogs {
	return &ShowLogs{logDir: logDir}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	if uc.logDir == "" {
		return nil, domain.ErrLogDirNotSet
	}

	logPath := domain.GlobalLogPath(uc.logDir)
	if in.TaskID > 0 {
		logPath = domain.TaskLogPath(uc.logDir, in.TaskID)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", logPath, domain.ErrNoLogFile)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	// If lines is specified, get only the last N lines
	result := string(content)
	if in.Lines > 0 {
		lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
		if len(lines) > in.Lines {
			lines = lines[len(lines)-in.Lines:]
		}
		result = strings.Join(lines, "\n") + "\n"
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}
