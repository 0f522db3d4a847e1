package logging

import (
	"errors"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected nop logger when no level is configured")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")

	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	defer func() { logger = nil }()

	core := GetLogger().Core()
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn level should be enabled")
	}
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info level should be disabled at warn")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetLogger_NeverNil(t *testing.T) {
	logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
}

func TestDomainHelpers_DoNotPanic(t *testing.T) {
	l := zap.NewNop()
	mac, _ := net.ParseMAC("00:11:22:33:44:55")

	LogProbe(l, "192.168.1.5", "eth0", "alive", mac, nil)
	LogProbe(l, "192.168.1.6", "eth0", "error", nil, errors.New("boom"))
	LogSweep(l, "192.168.1", "eth0", 254, false, time.Second)
	LogDecision(l, "scan", "192.168.1.5", "00e20100")
}
