package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the application logger.
// level: "debug", "info", "warn", "error" (default "info").
// format: "console" or "json" (default "console" - this is a terminal app,
// stdout belongs to the TUI, so console logs go to a file).
func New(level, format, logPath string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if format == "json" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	// The alternate screen owns stdout while the TUI runs; log to a file
	// and keep stderr for fatal startup errors only.
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return nil, err
		}
		config.OutputPaths = []string{logPath}
		config.ErrorOutputPaths = []string{logPath}
	} else {
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
	}

	base, err := config.Build()
	if err != nil {
		return nil, err
	}

	return base.Named("labops"), nil
}

// Nop returns a no-op logger for tests and optional call sites.
func Nop() *zap.Logger {
	return zap.NewNop()
}
