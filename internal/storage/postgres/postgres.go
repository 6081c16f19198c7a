// Package postgres connects to the hosted backend and owns its schema.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// Config locates the hosted backend. URL is a postgres connection URL; a
// non-empty ServiceKey replaces its password.
type Config struct {
	URL        string
	ServiceKey string
	MaxConns   int32
}

// DSN renders the connection URL with the service key applied
func (c Config) DSN() (string, error) {
	if c.URL == "" {
		return "", sheeterr.Unavailable("backend url is not configured")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return "", sheeterr.InvalidArgumentf("backend url: %v", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", sheeterr.InvalidArgumentf("backend url scheme %q must be postgres", u.Scheme).
			WithMeta("scheme", u.Scheme)
	}

	if c.ServiceKey != "" {
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, c.ServiceKey)
	}

	return u.String(), nil
}

// Pool wraps a pgx connection pool with health-check and lifecycle methods.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects and pings. The pool is ready for queries when it returns.
func NewPool(ctx context.Context, cfg Config) (*Pool, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeUnavailable, "pinging database")
	}

	return &Pool{pool: pool}, nil
}

// Health checks that the database is reachable within the given timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	if p == nil || p.pool == nil {
		return sheeterr.Unavailable("connection pool is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return sheeterr.WrapWithCode(err, sheeterr.CodeUnavailable, "pinging database")
	}
	return nil
}

// Close releases all pool resources. Safe on a nil pool.
func (p *Pool) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for use by repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
