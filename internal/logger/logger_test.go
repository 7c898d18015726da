package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	log.ErrorObj("event publish failed", "event_error", map[string]any{"event_type": "SURVEY_LAUNCHED"})
	log.DebugObj("event published", "event_meta", "ok")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel || entries[0].Message != "event publish failed" {
		t.Fatalf("unexpected entry: %#v", entries[0])
	}
	if _, ok := entries[0].ContextMap()["event_error"]; !ok {
		t.Fatalf("event_error field missing: %#v", entries[0].ContextMap())
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != zapcore.InfoLevel {
		t.Fatalf("parseLevel = %s", got)
	}
	if got := parseLevel("warning"); got != zapcore.WarnLevel {
		t.Fatalf("parseLevel = %s", got)
	}
}

func TestNewNilFallsBackToNop(t *testing.T) {
	if _, ok := New(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger")
	}
}
