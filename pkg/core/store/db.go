package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB opens the shared connection pool from DATABASE_URL. Only the first
// call dials; later calls return the first outcome, so the archive either
// works for the whole process or not at all.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		cfg, parseErr := pgxpool.ParseConfig(url)
		if parseErr != nil {
			err = fmt.Errorf("parse database url: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, cfg)
	})
	return err
}

// GetPool returns the shared pool, or nil before a successful InitDB.
// Repositories check for nil instead of dialing on their own.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close releases the pool. Safe to call when InitDB never succeeded.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
