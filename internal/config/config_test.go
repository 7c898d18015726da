package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppName != "event-gateway" || cfg.JournalType != "bbolt" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JournalTTL != 7*24*time.Hour || cfg.JournalCleanupInterval != 6*time.Hour {
		t.Fatalf("durations not derived: ttl=%s cleanup=%s", cfg.JournalTTL, cfg.JournalCleanupInterval)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("JOURNAL_TYPE", "none")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JournalType != "none" || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ROUTING_KEY", "from.env")

	fs := Flags("test")
	if err := fs.Parse([]string{"--routing-key", "rh.survey", "--event-type", "SURVEY_LAUNCHED"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RoutingKey != "rh.survey" || cfg.EventType != "SURVEY_LAUNCHED" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.PayloadFile != "-" {
		t.Fatalf("payload default lost: %q", cfg.PayloadFile)
	}
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JOURNAL_TTL_SECONDS", "0")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}

func TestLoadLookupFlag(t *testing.T) {
	fs := Flags("test")
	if err := fs.Parse([]string{"--lookup", "tx-42"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LookupID != "tx-42" || cfg.EventType != "" {
		t.Fatalf("lookup not applied: %+v", cfg)
	}
}
