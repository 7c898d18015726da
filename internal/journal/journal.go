// Package journal keeps a short-lived record of envelopes handed to the transport.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Entry describes one published envelope.
type Entry struct {
	TransactionID string    `json:"transactionId"`
	EventType     string    `json:"eventType"`
	RoutingKey    string    `json:"routingKey"`
	PublishedAt   time.Time `json:"publishedAt"`
}

// Store records published envelopes by transaction id.
type Store interface {
	Close() error
	Record(ctx context.Context, e Entry) error
	Lookup(ctx context.Context, transactionID string) (Entry, bool, error)
}

// Options controls where entries are kept and for how long.
type Options struct {
	Path            string
	DSN             string
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 7 * 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured journal backend.
func NewStore(ctx context.Context, typ string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("bbolt journal requires a path")
		}
		return openBolt(opts.Path, opts)
	case "postgres":
		if strings.TrimSpace(opts.DSN) == "" {
			return nil, fmt.Errorf("postgres journal requires a dsn")
		}
		return openPostgres(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported journal type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                        { return nil }
func (noopStore) Record(context.Context, Entry) error { return nil }
func (noopStore) Lookup(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, nil
}
