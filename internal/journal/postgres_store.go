package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createJournalTable = `
	CREATE TABLE IF NOT EXISTS event_journal (
		transaction_id TEXT PRIMARY KEY,
		event_type     TEXT NOT NULL,
		routing_key    TEXT NOT NULL,
		published_at   TIMESTAMPTZ NOT NULL,
		expires_at     TIMESTAMPTZ NOT NULL
	)
`

// pgxDB is the subset of pgxpool.Pool the journal uses.
type pgxDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresStore implements a Store backed by a Postgres table.
type postgresStore struct {
	db              pgxDB
	close           func()
	ttl             time.Duration
	cleanupInterval time.Duration

	cleanupMu   sync.Mutex
	lastCleanup time.Time
}

// openPostgres connects a pool, verifies it and makes sure the table exists.
func openPostgres(ctx context.Context, opts Options) (Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store, err := newPostgresStore(ctx, pool, pool.Close, opts)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func newPostgresStore(ctx context.Context, db pgxDB, closeFn func(), opts Options) (*postgresStore, error) {
	if _, err := db.Exec(ctx, createJournalTable); err != nil {
		return nil, fmt.Errorf("create event_journal table: %w", err)
	}
	return &postgresStore{
		db:              db,
		close:           closeFn,
		ttl:             opts.TTL,
		cleanupInterval: opts.CleanupInterval,
		lastCleanup:     time.Now(),
	}, nil
}

func (p *postgresStore) Close() error {
	if p == nil || p.close == nil {
		return nil
	}
	p.close()
	return nil
}

// Record inserts the entry; a transaction id already journaled is left untouched.
func (p *postgresStore) Record(ctx context.Context, e Entry) error {
	if e.TransactionID == "" {
		return fmt.Errorf("journal entry has no transaction id")
	}
	now := time.Now()
	if err := p.maybeCleanupExpired(ctx, now); err != nil {
		return err
	}

	const sql = `
		INSERT INTO event_journal (transaction_id, event_type, routing_key, published_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (transaction_id) DO NOTHING
	`
	if _, err := p.db.Exec(ctx, sql, e.TransactionID, e.EventType, e.RoutingKey, e.PublishedAt, now.Add(p.ttl)); err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (p *postgresStore) Lookup(ctx context.Context, transactionID string) (Entry, bool, error) {
	const sql = `
		SELECT transaction_id, event_type, routing_key, published_at
		FROM event_journal
		WHERE transaction_id = $1 AND expires_at > NOW()
	`
	var e Entry
	err := p.db.QueryRow(ctx, sql, transactionID).Scan(&e.TransactionID, &e.EventType, &e.RoutingKey, &e.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query journal entry: %w", err)
	}
	return e, true, nil
}

func (p *postgresStore) maybeCleanupExpired(ctx context.Context, now time.Time) error {
	p.cleanupMu.Lock()
	defer p.cleanupMu.Unlock()

	if now.Sub(p.lastCleanup) < p.cleanupInterval {
		return nil
	}
	if _, err := p.db.Exec(ctx, `DELETE FROM event_journal WHERE expires_at <= $1`, now); err != nil {
		return fmt.Errorf("purge expired journal entries: %w", err)
	}
	p.lastCleanup = now
	return nil
}
