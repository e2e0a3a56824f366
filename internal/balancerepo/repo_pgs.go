// Package balancerepo manages repository layer of balance entries.
package balancerepo

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/pkg/dbpkg"
	"github.com/nwtrack/networth/pkg/errorspkg"
)

// RepoPGS facilitates balance entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns balance entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const setQuery = `
INSERT INTO
    balances (account_id, entry_date, value)
VALUES
    ($1, $2, $3)
ON CONFLICT (account_id, entry_date)
DO UPDATE SET value = EXCLUDED.value
RETURNING account_id, entry_date, value
`

// Set records the observed value of an account on the given date.
// A second observation for the same date replaces the first, keeping
// at most one entry per account and day.
func (r *RepoPGS) Set(ctx context.Context, accountID int32, date time.Time, value decimal.Decimal) (domain.BalanceEntry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setQuery, accountID, domain.NormalizeDate(date), value)

	var e domain.BalanceEntry

	err := row.Scan(
		&e.AccountID,
		&e.Date,
		&e.Value,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "balances_account_id_fkey" {
				return e, domain.ErrAccountNotFound
			}
		}

		return e, errorspkg.ErrInternal
	}

	e.Date = domain.NormalizeDate(e.Date)

	return e, nil
}

const listByAccountQuery = `
SELECT
	account_id, entry_date, value
FROM balances
WHERE account_id = $1
ORDER BY entry_date
`

// ListByAccount returns all balance entries of an account in date ascending order.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int32) ([]domain.BalanceEntry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.BalanceEntry{}

	for rows.Next() {
		var e domain.BalanceEntry
		if err := rows.Scan(&e.AccountID, &e.Date, &e.Value); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		e.Date = domain.NormalizeDate(e.Date)

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM balances
WHERE account_id = $1 AND entry_date = $2
`

// Delete removes the balance entry of an account on the given date.
func (r *RepoPGS) Delete(ctx context.Context, accountID int32, date time.Time) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, accountID, domain.NormalizeDate(date))
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrBalanceNotFound
	}

	return nil
}
