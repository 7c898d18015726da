package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ctp-hq/event-gateway/internal/app"
	"github.com/ctp-hq/event-gateway/internal/config"
	"github.com/ctp-hq/event-gateway/internal/journal"
	"github.com/ctp-hq/event-gateway/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gateway failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.Flags("gateway")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.LookupID == "" && (cfg.EventType == "" || cfg.RoutingKey == "") {
		return fmt.Errorf("--event-type and --routing-key are required")
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway, err := app.NewGateway(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize gateway", "error", err.Error())
		return err
	}
	defer gateway.Close()

	if cfg.LookupID != "" {
		entry, found, err := gateway.Lookup(ctx, cfg.LookupID)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", cfg.LookupID, err)
		}
		return writeEntry(os.Stdout, cfg.LookupID, entry, found)
	}

	in, closeIn, err := openPayload(cfg.PayloadFile)
	if err != nil {
		return err
	}
	defer closeIn()

	txID, err := gateway.PublishDocument(ctx, cfg.RoutingKey, cfg.EventType, in)
	if err != nil {
		return fmt.Errorf("publish %s: %w", cfg.EventType, err)
	}

	logger.InfoObj("event published", "event_meta", map[string]string{
		"event_type":     cfg.EventType,
		"routing_key":    cfg.RoutingKey,
		"transaction_id": txID,
	})
	fmt.Println(txID)
	return nil
}

// writeEntry prints a journal entry as JSON, or an error when none is recorded.
func writeEntry(w io.Writer, transactionID string, entry journal.Entry, found bool) error {
	if !found {
		return fmt.Errorf("no journal entry for transaction %s", transactionID)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}

func openPayload(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open payload: %w", err)
	}
	return f, func() { f.Close() }, nil
}
