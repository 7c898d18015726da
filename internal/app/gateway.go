package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ctp-hq/event-gateway/internal/config"
	"github.com/ctp-hq/event-gateway/internal/journal"
	"github.com/ctp-hq/event-gateway/internal/logger"
	"github.com/ctp-hq/event-gateway/pkg/event"
	"github.com/ctp-hq/event-gateway/pkg/publishers"
)

// Gateway wires the configured sinks, the publish journal and the event publisher.
type Gateway struct {
	cfg       *config.Config
	fanout    *publishers.Fanout
	store     journal.Store
	publisher *event.EventPublisher
	log       logger.Logger
}

// NewGateway builds a gateway runtime from config files.
func NewGateway(ctx context.Context, cfg *config.Config, log logger.Logger) (*Gateway, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := journal.NewStore(ctx, cfg.JournalType, journal.Options{
		Path:            cfg.BBoltPath,
		DSN:             cfg.PostgresDSN,
		TTL:             cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init journal: %w", err)
	}
	log.InfoObj("journal initialized", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	g, err := newGateway(cfg, fanout, store, log)
	if err != nil {
		_ = fanout.Close()
		_ = store.Close()
		return nil, err
	}
	return g, nil
}

func newGateway(cfg *config.Config, fanout *publishers.Fanout, store journal.Store, log logger.Logger) (*Gateway, error) {
	publisher, err := event.NewEventPublisher(journal.NewSender(fanout, store, log), log)
	if err != nil {
		return nil, fmt.Errorf("init event publisher: %w", err)
	}
	return &Gateway{
		cfg:       cfg,
		fanout:    fanout,
		store:     store,
		publisher: publisher,
		log:       log,
	}, nil
}

// Publish converts payload into an envelope and hands it to every sink.
func (g *Gateway) Publish(ctx context.Context, routingKey string, payload event.Payload) (string, error) {
	if g == nil || g.publisher == nil {
		return "", fmt.Errorf("gateway is not initialized")
	}
	return g.publisher.SendEvent(ctx, routingKey, payload)
}

// PublishDocument decodes a JSON business payload of the named event type and publishes it.
func (g *Gateway) PublishDocument(ctx context.Context, routingKey, eventType string, r io.Reader) (string, error) {
	typ, err := event.DefaultCatalog().ParseEventType(eventType)
	if err != nil {
		return "", err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	payload, err := event.DecodePayload(typ, raw)
	if err != nil {
		return "", err
	}
	return g.Publish(ctx, routingKey, payload)
}

// Lookup returns the journal entry recorded for a transaction id.
func (g *Gateway) Lookup(ctx context.Context, transactionID string) (journal.Entry, bool, error) {
	if g == nil || g.store == nil {
		return journal.Entry{}, false, nil
	}
	return g.store.Lookup(ctx, transactionID)
}

// Close releases sink connections and the journal.
func (g *Gateway) Close() error {
	if g == nil {
		return nil
	}
	var errs []error
	if err := g.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	return errors.Join(errs...)
}
