// Package postgres implements store.Store on PostgreSQL through
// database/sql with the pgx driver. Fuzzy search relies on the pg_trgm
// extension (similarity, word_similarity) and websearch_to_tsquery; the
// narration numbering table stores one integer array per reading.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Config holds connection parameters for Open.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string

	// Pool limits; zero values pick the defaults below.
	MaxOpenConns int
	MaxIdleConns int
}

// DSN renders the config as a pgx connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", c.User, c.Password, c.Host, c.Port, c.Database)
}

// Store is the PostgreSQL-backed implementation of store.Store.
type Store struct {
	db *sql.DB
}

// Open connects, configures the pool, and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 16
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 4
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Ping verifies connectivity for the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// splitKeywords splits a text array rendered with the unit separator,
// which unlike a comma cannot occur inside a keyword.
func splitKeywords(s string) []string {
	return strings.Split(s, "\x1f")
}

// intArray parses a Postgres integer array selected as
// array_to_string(col, ','). NULL arrays scan as empty strings and parse
// to nil.
func intArray(s sql.NullString) ([]int, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	parts := strings.Split(s.String, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse int array element %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
