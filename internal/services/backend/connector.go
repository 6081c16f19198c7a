// Package backend keeps one connection pool to the hosted backend, reopened
// when the credentials change.
package backend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/KirkDiggler/character-sheet/internal/services/settings"
	"github.com/KirkDiggler/character-sheet/internal/storage/postgres"
)

// PoolOpener opens a pool; postgres.NewPool outside tests
type PoolOpener func(ctx context.Context, cfg postgres.Config) (*postgres.Pool, error)

type Connector struct {
	mu      sync.Mutex
	open    PoolOpener
	timeout time.Duration
	logger  *zap.Logger

	pool *postgres.Pool
	dsn  string
}

type ConnectorConfig struct {
	Open PoolOpener
	// Timeout bounds each connection attempt
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewConnector(cfg *ConnectorConfig) *Connector {
	if cfg == nil {
		panic("cfg cannot be nil")
	}

	c := &Connector{
		open:    cfg.Open,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
	if c.open == nil {
		c.open = postgres.NewPool
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("backend")

	return c
}

// Initialize opens a pool for s, or keeps the current one when the
// credentials have not changed
func (c *Connector) Initialize(ctx context.Context, s settings.Settings) error {
	cfg := postgres.Config{URL: s.SupabaseURL, ServiceKey: s.SupabaseServiceKey}
	dsn, err := cfg.DSN()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil && c.dsn == dsn {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pool, err := c.open(ctx, cfg)
	if err != nil {
		return sheeterr.Wrap(err, "failed to connect to backend")
	}

	if c.pool != nil {
		c.pool.Close()
	}
	c.pool, c.dsn = pool, dsn
	c.logger.Info("connected to backend")

	return nil
}

// Pool returns the open pool, or an unavailable error before a successful
// Initialize
func (c *Connector) Pool() (*postgres.Pool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool == nil {
		return nil, sheeterr.Unavailable("backend is not configured")
	}
	return c.pool, nil
}

// Health pings the open pool within the connect timeout
func (c *Connector) Health(ctx context.Context) error {
	pool, err := c.Pool()
	if err != nil {
		return err
	}
	return pool.Health(ctx, c.timeout)
}

func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pool.Close()
	c.pool, c.dsn = nil, ""
}
