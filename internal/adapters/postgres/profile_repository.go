package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

// PreferredCurrency returns the shopper's stored currency preference, or
// an empty code when the shopper is unknown or has no preference.
func (r *ProfileRepository) PreferredCurrency(ctx context.Context, shopperID string) (string, error) {
	const q = `select currency_code from shopper_profiles where shopper_id = $1;`

	var code *string
	if err := r.pool.QueryRow(ctx, q, shopperID).Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to select preference for shopper %q: %w", shopperID, err)
	}
	if code == nil {
		return "", nil
	}
	return *code, nil
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}
