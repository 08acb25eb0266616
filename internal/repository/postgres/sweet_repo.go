package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Maneesh0032/Sweets-Shop/internal/errs"
	"github.com/Maneesh0032/Sweets-Shop/internal/model"
)

// SweetRepo implements SweetRepository using PostgreSQL.
type SweetRepo struct{ db *DB }

// NewSweetRepo constructs a catalog repository.
func NewSweetRepo(db *DB) *SweetRepo { return &SweetRepo{db: db} }

const sweetColumns = `id, name, category, price, quantity, created_at, updated_at`

// List returns the whole catalog ordered by ID.
func (r *SweetRepo) List(ctx context.Context) ([]model.Sweet, error) {
	const q = `
SELECT id, name, category, price, quantity, created_at, updated_at
FROM sweets ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectSweets(rows)
}

// Get returns a single sweet by ID.
func (r *SweetRepo) Get(ctx context.Context, id int64) (*model.Sweet, error) {
	const q = `
SELECT id, name, category, price, quantity, created_at, updated_at
FROM sweets WHERE id=$1`
	return scanSweet(r.db.Pool.QueryRow(ctx, q, id))
}

// Create inserts a new sweet row.
func (r *SweetRepo) Create(ctx context.Context, f model.SweetFields) (*model.Sweet, error) {
	const q = `
INSERT INTO sweets (name, category, price, quantity)
VALUES ($1, $2, $3, $4)
RETURNING id, name, category, price, quantity, created_at, updated_at`
	return scanSweet(r.db.Pool.QueryRow(ctx, q, f.Name, f.Category, f.Price, f.Quantity))
}

// Update replaces all four fields unconditionally and refreshes updated_at.
func (r *SweetRepo) Update(ctx context.Context, id int64, f model.SweetFields) (*model.Sweet, error) {
	const q = `
UPDATE sweets SET name=$2, category=$3, price=$4, quantity=$5, updated_at=now()
WHERE id=$1
RETURNING id, name, category, price, quantity, created_at, updated_at`
	return scanSweet(r.db.Pool.QueryRow(ctx, q, id, f.Name, f.Category, f.Price, f.Quantity))
}

// Delete hard-deletes the sweet, returning its last known state.
func (r *SweetRepo) Delete(ctx context.Context, id int64) (*model.Sweet, error) {
	const q = `
DELETE FROM sweets WHERE id=$1
RETURNING id, name, category, price, quantity, created_at, updated_at`
	return scanSweet(r.db.Pool.QueryRow(ctx, q, id))
}

// Search builds a conjunctive WHERE clause from the provided filters.
func (r *SweetRepo) Search(ctx context.Context, f model.SearchFilters) ([]model.Sweet, error) {
	var (
		conds []string
		args  []any
	)
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	q := "SELECT " + sweetColumns + " FROM sweets"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectSweets(rows)
}

// Purchase decrements quantity by one in a single conditional statement.
// The quantity > 0 guard makes concurrent purchases of the last unit safe:
// exactly one of them matches the row, the rest see out-of-stock.
func (r *SweetRepo) Purchase(ctx context.Context, id int64) (*model.Sweet, error) {
	const q = `
UPDATE sweets SET quantity = quantity - 1, updated_at=now()
WHERE id=$1 AND quantity > 0
RETURNING id, name, category, price, quantity, created_at, updated_at`
	s, err := scanSweet(r.db.Pool.QueryRow(ctx, q, id))
	if errors.Is(err, errs.ErrNotFound) {
		// No row matched: either the sweet is gone or the shelf is empty.
		if _, gerr := r.Get(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, errs.ErrOutOfStock
	}
	return s, err
}

// Restock increments quantity by amount in a single statement.
func (r *SweetRepo) Restock(ctx context.Context, id int64, amount int64) (*model.Sweet, error) {
	const q = `
UPDATE sweets SET quantity = quantity + $2, updated_at=now()
WHERE id=$1
RETURNING id, name, category, price, quantity, created_at, updated_at`
	return scanSweet(r.db.Pool.QueryRow(ctx, q, id, amount))
}

func scanSweet(row pgx.Row) (*model.Sweet, error) {
	var s model.Sweet
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func collectSweets(rows pgx.Rows) ([]model.Sweet, error) {
	defer rows.Close()
	out := []model.Sweet{}
	for rows.Next() {
		var s model.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
