package db

import (
	"context"
	"fmt"

	"shopfx/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreatePoolAndPing opens a pgx pool and verifies connectivity before
// handing it out.
func CreatePoolAndPing(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return pool, nil
}
