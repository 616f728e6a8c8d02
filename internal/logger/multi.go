package logger

import "github.com/harrison/dirindex/internal/indexer"

// Logger is implemented by ConsoleLogger, FileLogger and NoOpLogger.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSummary(result *indexer.Result)
}

var (
	_ Logger         = (*ConsoleLogger)(nil)
	_ Logger         = (*FileLogger)(nil)
	_ Logger         = (*NoOpLogger)(nil)
	_ indexer.Logger = (*MultiLogger)(nil)
)

// MultiLogger forwards every call to each of its loggers in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger returns a MultiLogger over the non-nil loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

// LogTrace forwards to all loggers
func (ml *MultiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers
func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *MultiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *MultiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *MultiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogSummary forwards to all loggers
func (ml *MultiLogger) LogSummary(result *indexer.Result) {
	for _, l := range ml.loggers {
		l.LogSummary(result)
	}
}
