package repository

import (
	"context"

	"github.com/Maneesh0032/Sweets-Shop/internal/model"
)

// SweetRepository provides CRUD and stock mutations over the catalog.
type SweetRepository interface {
	// List returns all sweets ordered by ID ascending.
	List(ctx context.Context) ([]model.Sweet, error)

	// Get returns a single sweet by ID.
	Get(ctx context.Context, id int64) (*model.Sweet, error)

	// Create inserts a new sweet and returns it with assigned ID and timestamps.
	Create(ctx context.Context, f model.SweetFields) (*model.Sweet, error)

	// Update replaces all four caller-supplied fields and refreshes updated_at.
	Update(ctx context.Context, id int64, f model.SweetFields) (*model.Sweet, error)

	// Delete hard-deletes the sweet and returns its last known state.
	Delete(ctx context.Context, id int64) (*model.Sweet, error)

	// Search applies conjunctive optional filters, ordered by ID ascending.
	Search(ctx context.Context, f model.SearchFilters) ([]model.Sweet, error)

	// Purchase atomically decrements quantity by one if stock remains.
	// Returns errs.ErrOutOfStock when quantity is zero.
	Purchase(ctx context.Context, id int64) (*model.Sweet, error)

	// Restock atomically increments quantity by amount.
	Restock(ctx context.Context, id int64, amount int64) (*model.Sweet, error)
}
