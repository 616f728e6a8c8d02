// Package logger provides logging implementations for dirindex runs.
//
// ConsoleLogger writes timestamped, optionally colored lines to a terminal or
// any io.Writer. FileLogger keeps one log file per run. MultiLogger fans out
// to several loggers. All implementations are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/harrison/dirindex/internal/indexer"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is enabled for terminals unless NO_COLOR is set.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a TTY that should receive colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func shouldLog(configured, messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(configured)
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration renders run durations, which are usually well under a second.
// Examples: "850ms", "2.4s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !shouldLog(cl.logLevel, strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch level {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogSummary logs the outcome of a generate run at INFO level.
// Format: "[HH:MM:SS] === Index Summary ===" followed by one line per field.
func (cl *ConsoleLogger) LogSummary(result *indexer.Result) {
	if cl.writer == nil || result == nil {
		return
	}
	if !shouldLog(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	dirs := english.Plural(result.TotalDirs, "directory", "directories")
	files := english.Plural(result.TotalFiles, "file", "files")
	size := humanize.Bytes(uint64(result.Bytes))

	var sb strings.Builder
	if cl.colorOutput {
		scheme := newColorScheme()
		sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, scheme.header.Sprint("=== Index Summary ===")))
		sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Source", result.SourceDir, scheme.path, scheme)))
		sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Index", result.TargetPath, scheme.path, scheme)))
		sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Indexed", dirs+", "+files, scheme.count, scheme)))
		sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Format", fmt.Sprintf("%s (%s)", result.Format, size), color.New(), scheme)))
		sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Duration", formatDuration(result.Duration), color.New(), scheme)))
	} else {
		sb.WriteString(fmt.Sprintf("[%s] === Index Summary ===\n", ts))
		sb.WriteString(fmt.Sprintf("[%s] Source: %s\n", ts, result.SourceDir))
		sb.WriteString(fmt.Sprintf("[%s] Index: %s\n", ts, result.TargetPath))
		sb.WriteString(fmt.Sprintf("[%s] Indexed: %s, %s\n", ts, dirs, files))
		sb.WriteString(fmt.Sprintf("[%s] Format: %s (%s)\n", ts, result.Format, size))
		sb.WriteString(fmt.Sprintf("[%s] Duration: %s\n", ts, formatDuration(result.Duration)))
	}

	cl.writer.Write([]byte(sb.String()))
}

// NoOpLogger discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string)            {}
func (n *NoOpLogger) LogDebug(string)            {}
func (n *NoOpLogger) LogInfo(string)             {}
func (n *NoOpLogger) LogWarn(string)             {}
func (n *NoOpLogger) LogError(string)            {}
func (n *NoOpLogger) LogSummary(*indexer.Result) {}
