package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ctp-hq/event-gateway/internal/journal"
)

func TestWriteEntryPrintsJSON(t *testing.T) {
	entry := journal.Entry{
		TransactionID: "tx-1",
		EventType:     "SURVEY_LAUNCHED",
		RoutingKey:    "rh.survey",
		PublishedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := writeEntry(&buf, "tx-1", entry, true); err != nil {
		t.Fatalf("writeEntry: %v", err)
	}

	var got journal.Entry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output %q: %v", buf.String(), err)
	}
	if got.TransactionID != "tx-1" || got.RoutingKey != "rh.survey" || !got.PublishedAt.Equal(entry.PublishedAt) {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestWriteEntryMissing(t *testing.T) {
	var buf bytes.Buffer
	err := writeEntry(&buf, "tx-404", journal.Entry{}, false)
	if err == nil || !strings.Contains(err.Error(), "tx-404") {
		t.Fatalf("expected missing-entry error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestRunRequiresEventTypeWithoutLookup(t *testing.T) {
	t.Setenv("EVENT_TYPE", "")
	err := run([]string{"--routing-key", "rh.survey"})
	if err == nil || !strings.Contains(err.Error(), "--event-type") {
		t.Fatalf("expected missing flag error, got %v", err)
	}
}
