// Package store provides the Postgres-backed data-access layer behind
// the table/column contracts in §6.1. It owns connection pooling
// (pgx/v5) and the query surface the core pipeline reads through; it
// never embeds scoring, feature, or model logic.
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds database connection pool configuration.
type Config struct {
	DatabaseURL string
	MaxConns    int32 // default 25
	MinConns    int32 // default 5
}

// Store wraps a pgx connection pool and exposes the query methods the
// core pipeline needs (players, games, box scores, team-defense rows,
// scoring rulesets, historical injuries).
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to PostgreSQL with the given
// configuration, mirroring the pooling defaults and health-check
// discipline used throughout this codebase.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	config, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute
	config.ConnConfig.ConnectTimeout = 10 * time.Second

	config.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		return conn.Ping(ctx) == nil
	}
	config.AfterRelease = func(conn *pgx.Conn) bool {
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Printf("store: connected to PostgreSQL (MaxConns: %d, MinConns: %d)", cfg.MaxConns, cfg.MinConns)
	return &Store{pool: pool}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
		log.Println("store: connection pool closed")
	}
}

// HealthCheck verifies database connectivity.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s.pool == nil {
		return fmt.Errorf("store: connection pool not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("store: health check failed: %w", err)
	}
	return nil
}

// PoolMetrics returns pool utilization metrics. No HTTP handler calls
// it.
func (s *Store) PoolMetrics() map[string]any {
	if s.pool == nil {
		return map[string]any{"error": "pool not initialized"}
	}
	stat := s.pool.Stat()
	return map[string]any{
		"acquired_conns":      stat.AcquiredConns(),
		"idle_conns":          stat.IdleConns(),
		"max_conns":           stat.MaxConns(),
		"total_conns":         stat.TotalConns(),
		"acquire_count":       stat.AcquireCount(),
		"acquire_duration_ms": stat.AcquireDuration().Milliseconds(),
	}
}
