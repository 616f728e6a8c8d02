package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/harrison/dirindex/internal/indexer"
)

// LatestLogName is the symlink that points at the most recent run log.
const LatestLogName = "latest.log"

// FileLogger writes one log file per run into a log directory and maintains
// a latest.log symlink pointing to it. It is thread-safe.
type FileLogger struct {
	logDir   string
	runID    string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed and opens
// run-YYYYMMDD-HHMMSS-<id>.log in it, where <id> is the first eight
// characters of runID.
func NewFileLogger(logDir, logLevel, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	name := fmt.Sprintf("run-%s", time.Now().Format("20060102-150405"))
	if short != "" {
		name += "-" + short
	}
	runFile := filepath.Join(logDir, name+".log")

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, LatestLogName)
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runID:    runID,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== dirindex Run Log ===\n")
	if runID != "" {
		fl.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	}
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !shouldLog(fl.logLevel, strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogSummary writes the run outcome. It is always written regardless of level.
func (fl *FileLogger) LogSummary(result *indexer.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("\n=== Index Summary ===\n")
	sb.WriteString(fmt.Sprintf("Source: %s\n", result.SourceDir))
	sb.WriteString(fmt.Sprintf("Index: %s\n", result.TargetPath))
	sb.WriteString(fmt.Sprintf("Format: %s\n", result.Format))
	sb.WriteString(fmt.Sprintf("Total directories: %d\n", result.TotalDirs))
	sb.WriteString(fmt.Sprintf("Total files: %d\n", result.TotalFiles))
	sb.WriteString(fmt.Sprintf("Size: %s (%d bytes)\n", humanize.Bytes(uint64(result.Bytes)), result.Bytes))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", formatDuration(result.Duration)))
	fl.writeRunLog(sb.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
