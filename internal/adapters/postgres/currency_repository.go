package postgres

import (
	"context"
	"errors"
	"fmt"

	"shopfx/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

const currencyColumns = `
	c.code, c.name, c.symbol, c.minor_symbol, c."primary", c.accepted,
	coalesce(array_agg(cc.country_code) filter (where cc.country_code is not null), '{}')
`

const currencyFrom = `
	from currencies c
	left join currency_countries cc on cc.currency_code = c.code
`

func (r *CurrencyRepository) GetPrimary(ctx context.Context) (domain.Currency, error) {
	q := `select ` + currencyColumns + currencyFrom + `
		where c."primary"
		group by c.code;
	`

	cur, err := r.scanOne(r.pool.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, domain.ErrNotConfigured
		}
		return domain.Currency{}, fmt.Errorf("failed to select primary currency: %w", err)
	}
	return cur, nil
}

func (r *CurrencyRepository) Lookup(ctx context.Context, code string) (domain.Currency, error) {
	q := `select ` + currencyColumns + currencyFrom + `
		where c.code = $1
		group by c.code;
	`

	cur, err := r.scanOne(r.pool.QueryRow(ctx, q, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, domain.ErrUnknownCurrency
		}
		return domain.Currency{}, fmt.Errorf("failed to select currency %q: %w", code, err)
	}
	return cur, nil
}

func (r *CurrencyRepository) ListAccepted(ctx context.Context) ([]domain.Currency, error) {
	q := `select ` + currencyColumns + currencyFrom + `
		where c.accepted
		group by c.code
		order by c.code;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query accepted currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]domain.Currency, 0, 16)
	for rows.Next() {
		cur, scanErr := r.scanOne(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", scanErr)
		}
		currencies = append(currencies, cur)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accepted currencies: %w", err)
	}
	return currencies, nil
}

// ByCountry returns the accepted currency associated with the given
// ISO 3166-1 alpha-2 country code.
func (r *CurrencyRepository) ByCountry(ctx context.Context, countryCode string) (domain.Currency, error) {
	q := `select ` + currencyColumns + currencyFrom + `
		where c.accepted and c.code in (
			select currency_code from currency_countries where country_code = $1
		)
		group by c.code
		order by c.code
		limit 1;
	`

	cur, err := r.scanOne(r.pool.QueryRow(ctx, q, countryCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, domain.ErrUnknownCurrency
		}
		return domain.Currency{}, fmt.Errorf("failed to select currency for country %q: %w", countryCode, err)
	}
	return cur, nil
}

// SetPrimary promotes the named currency in a single transaction: the flag
// is cleared from every other currency first, then set together with
// accepted on the target. Readers never observe zero or two primaries.
func (r *CurrencyRepository) SetPrimary(ctx context.Context, code string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `update currencies set "primary" = false where "primary" and code <> $1`, code); err != nil {
		return fmt.Errorf("failed to clear primary flag: %w", err)
	}

	tag, err := tx.Exec(ctx, `update currencies set "primary" = true, accepted = true where code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to set primary currency %q: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownCurrency
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *CurrencyRepository) scanOne(row pgx.Row) (domain.Currency, error) {
	var cur domain.Currency
	err := row.Scan(
		&cur.Code,
		&cur.Name,
		&cur.Symbol,
		&cur.MinorSymbol,
		&cur.Primary,
		&cur.Accepted,
		&cur.Countries,
	)
	return cur, err
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}
