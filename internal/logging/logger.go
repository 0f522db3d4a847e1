package logging

import (
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "VECTORSCAN_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks the VECTORSCAN_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built

	return nil
}

// parseLevel maps a level name to a zap level. Unknown names fall back to
// info, since the caller explicitly asked for some output.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitializeFromEnv initializes the logger from the VECTORSCAN_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogProbe logs the result of probing a single candidate address.
func LogProbe(l *zap.Logger, address, iface, state string, mac net.HardwareAddr, err error) {
	fields := []zap.Field{
		zap.String("address", address),
		zap.String("interface", iface),
		zap.String("state", state),
	}
	if mac != nil {
		fields = append(fields, zap.String("mac", mac.String()))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		l.Warn("Probe failed", fields...)
		return
	}
	l.Debug("Probe result", fields...)
}

// LogSweep logs the end of a subnet sweep.
func LogSweep(l *zap.Logger, network, iface string, probed int, found bool, elapsed time.Duration) {
	l.Info("Subnet sweep finished",
		zap.String("network", network),
		zap.String("interface", iface),
		zap.Int("probed", probed),
		zap.Bool("found", found),
		zap.Duration("elapsed", elapsed),
	)
}

// LogDecision logs an identity resolution outcome.
func LogDecision(l *zap.Logger, action, address, serial string) {
	l.Info("Identity decision",
		zap.String("action", action),
		zap.String("address", address),
		zap.String("serial", serial),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
