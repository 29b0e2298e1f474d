package logger

import (
	"go.uber.org/zap"
)

// LoggerAdapter provides a unified interface over the categorized
// MultiLogger and a plain zap logger, so components and tests can run
// against either.
type LoggerAdapter struct {
	multiLogger  *MultiLogger
	singleLogger *zap.Logger
	useMulti     bool
}

// NewLoggerAdapter creates an adapter backed by a MultiLogger
func NewLoggerAdapter(multiLogger *MultiLogger) *LoggerAdapter {
	return &LoggerAdapter{
		multiLogger: multiLogger,
		useMulti:    true,
	}
}

// NewSingleLoggerAdapter creates an adapter backed by a single logger
func NewSingleLoggerAdapter(logger *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		singleLogger: logger,
		useMulti:     false,
	}
}

// Run returns the run lifecycle logger
func (la *LoggerAdapter) Run() *zap.Logger {
	if la.useMulti {
		return la.multiLogger.Run()
	}
	return la.singleLogger
}

// Download returns the per-video download logger
func (la *LoggerAdapter) Download() *zap.Logger {
	if la.useMulti {
		return la.multiLogger.Download()
	}
	return la.singleLogger
}

// Web returns the status API access logger
func (la *LoggerAdapter) Web() *zap.Logger {
	if la.useMulti {
		return la.multiLogger.Web()
	}
	return la.singleLogger
}

// Error returns the error logger
func (la *LoggerAdapter) Error() *zap.Logger {
	if la.useMulti {
		return la.multiLogger.Error()
	}
	return la.singleLogger
}

// LogRunEvent logs a run or channel lifecycle event
func (la *LoggerAdapter) LogRunEvent(event string, fields ...zap.Field) {
	if la.useMulti {
		la.multiLogger.LogRunEvent(event, fields...)
	} else {
		la.singleLogger.Info(event, fields...)
	}
}

// LogDownloadEvent logs a per-video download event
func (la *LoggerAdapter) LogDownloadEvent(event string, fields ...zap.Field) {
	if la.useMulti {
		la.multiLogger.LogDownloadEvent(event, fields...)
	} else {
		la.singleLogger.Info(event, fields...)
	}
}

// LogError logs an error to the error log
func (la *LoggerAdapter) LogError(msg string, fields ...zap.Field) {
	if la.useMulti {
		la.multiLogger.LogAppError(msg, fields...)
	} else {
		la.singleLogger.Error(msg, fields...)
	}
}
