package logging

import (
	"testing"

	"github.com/ogurasousui/employees-management/internal/platform/config"
	"go.uber.org/zap/zapcore"
)

func TestNew_JSONAtWarn(t *testing.T) {
	t.Parallel()

	logger, err := New(config.LoggingConfig{Level: "warn", Format: config.LogFormatJSON})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info level should be disabled")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn level should be enabled")
	}
}

func TestNew_ConsoleDebug(t *testing.T) {
	t.Parallel()

	logger, err := New(config.LoggingConfig{Level: "debug", Format: config.LogFormatConsole})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level should be enabled")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(config.LoggingConfig{Level: "loud", Format: config.LogFormatJSON}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestNew_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := New(config.LoggingConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}
