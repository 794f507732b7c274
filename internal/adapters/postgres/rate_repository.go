package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopfx/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

func (r *RateRepository) LatestRate(ctx context.Context, code string) (decimal.Decimal, error) {
	const q = `
		select rate from exchange_rates
		where currency_code = $1
		order by date desc
		limit 1;
	`

	var rate decimal.Decimal
	if err := r.pool.QueryRow(ctx, q, code).Scan(&rate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, domain.ErrNoRateAvailable
		}
		return decimal.Decimal{}, fmt.Errorf("failed to select latest rate for %q: %w", code, err)
	}
	return rate, nil
}

// InsertRate appends one daily rate. A rate already recorded for the same
// (currency, date) stays untouched and the insert reports created=false;
// a concurrent duplicate surfacing as a unique violation is folded into
// the same no-op outcome.
func (r *RateRepository) InsertRate(ctx context.Context, code string, day time.Time, rate decimal.Decimal) (bool, error) {
	const q = `
		insert into exchange_rates (currency_code, date, rate)
		values ($1, $2, $3)
		on conflict (currency_code, date) do nothing;
	`

	tag, err := r.pool.Exec(ctx, q, code, day, rate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert rate for %q on %s: %w", code, day.Format(time.DateOnly), err)
	}
	return tag.RowsAffected() > 0, nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
