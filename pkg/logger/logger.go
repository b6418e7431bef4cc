package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger for the given application environment: JSON
// to stdout in production, colored console output everywhere else. The level
// comes from LOG_LEVEL and defaults to info.
func New(environment string) (*zap.Logger, error) {
	production := environment == "production"

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level()),
		Development:      !production,
		Encoding:         "console",
		EncoderConfig:    encoderConfig(production),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if production {
		cfg.Encoding = "json"
	}

	return cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
}

func encoderConfig(production bool) zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.MessageKey = "message"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if !production {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return ec
}

func level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
