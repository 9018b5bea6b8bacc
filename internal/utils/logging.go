// internal/utils/logging.go
package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogFileName = "bulkrest.log"
	LogFileMode = 0644
)

// Logger defaults to a no-op logger so library code can log before
// Init runs (and so tests don't have to).
var Logger = zap.NewNop()

// Init configures zap to write to both console and a log file.
// This should be called once at application startup.
func Init() error {
	logFile, err := os.OpenFile(LogFileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, LogFileMode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", LogFileName, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)

	// Level comes from LOG_LEVEL (default: info)
	envLevel := os.Getenv("LOG_LEVEL")
	var level zapcore.Level
	if envLevel == "" {
		level = zapcore.InfoLevel
	} else {
		if err := level.UnmarshalText([]byte(envLevel)); err != nil {
			fmt.Printf("unknown LOG_LEVEL '%s', defaulting to 'info'\n", envLevel)
			level = zapcore.InfoLevel
		}
	}

	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)
	fileCore := zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), level)

	core := zapcore.NewTee(consoleCore, fileCore)
	Logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	Logger.Info("logging initialized", zap.String("log_level", level.String()))

	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	if Logger != nil {
		return Logger.Sync()
	}
	return nil
}

// WithComponent returns a logger pre-bound with a `component` field so callers
// don't have to repeat the same field across messages in a component.
func WithComponent(component string) *zap.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.With(zap.String("component", component))
}
