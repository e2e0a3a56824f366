// Package categoryrepo manages repository layer of categories.
package categoryrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/pkg/dbpkg"
	"github.com/nwtrack/networth/pkg/errorspkg"
)

// RepoPGS facilitates category repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns category RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    categories (key, name, kind)
VALUES
    ($1, $2, $3)
RETURNING key, name, kind
`

// Create creates the category and then returns it.
func (r *RepoPGS) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, c.Key, c.Name, c.Kind)

	var out domain.Category

	err := row.Scan(&out.Key, &out.Name, &out.Kind)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "categories_pkey" {
				return out, domain.ErrCategoryAlreadyExists
			}
		}

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

const getQuery = `
SELECT
	key, name, kind
FROM categories
WHERE key = $1
`

// Get returns the category with the given key.
func (r *RepoPGS) Get(ctx context.Context, key string) (domain.Category, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, key)

	var c domain.Category

	err := row.Scan(&c.Key, &c.Name, &c.Kind)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCategoryNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const listQuery = `
SELECT
	key, name, kind
FROM categories
ORDER BY key
`

// List returns all categories ordered by key.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Category, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Category{}

	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Key, &c.Name, &c.Kind); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
