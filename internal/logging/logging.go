// Package logging wraps a process-wide zap.SugaredLogger.
//
// The logger starts as a nop so library code can log before Initialize runs
// (tests in particular never initialize it). Binaries call Initialize once
// at startup and Cleanup on the way out.
package logging

import "go.uber.org/zap"

var logger = zap.NewNop().Sugar()

// Initialize builds the global logger. jsonOutput selects the production
// JSON encoder; otherwise the development console encoder is used. debug
// lowers the level to include debug entries.
func Initialize(jsonOutput, debug bool) error {
	cfg := zap.NewDevelopmentConfig()
	if jsonOutput {
		cfg = zap.NewProductionConfig()
	}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	logger = built.Sugar()
	return nil
}

// Cleanup flushes buffered log entries.
func Cleanup() {
	_ = logger.Sync()
}

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

func Debugw(msg string, keysAndValues ...any) { logger.Debugw(msg, keysAndValues...) }
func Infow(msg string, keysAndValues ...any)  { logger.Infow(msg, keysAndValues...) }
func Warnw(msg string, keysAndValues ...any)  { logger.Warnw(msg, keysAndValues...) }
func Errorw(msg string, keysAndValues ...any) { logger.Errorw(msg, keysAndValues...) }
