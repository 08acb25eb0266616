package service

import (
	"context"

	"github.com/Maneesh0032/Sweets-Shop/internal/errs"
	"github.com/Maneesh0032/Sweets-Shop/internal/model"
	"github.com/Maneesh0032/Sweets-Shop/internal/repository"
)

// SweetService defines catalog operations. All of them assume the caller is
// already authenticated; the admin gate lives in the HTTP middleware.
type SweetService interface {
	// List returns the whole catalog ordered by ID.
	List(ctx context.Context) ([]model.Sweet, error)
	// Search applies conjunctive optional filters.
	Search(ctx context.Context, f model.SearchFilters) ([]model.Sweet, error)
	// GetByID returns a single sweet.
	GetByID(ctx context.Context, id int64) (*model.Sweet, error)
	// Create validates fields and inserts a new sweet.
	Create(ctx context.Context, f model.SweetFields) (*model.Sweet, error)
	// Update validates fields and replaces all of them.
	Update(ctx context.Context, id int64, f model.SweetFields) (*model.Sweet, error)
	// Remove hard-deletes a sweet and returns its last state.
	Remove(ctx context.Context, id int64) (*model.Sweet, error)
	// Purchase decrements stock by one; open to any authenticated user.
	Purchase(ctx context.Context, id int64) (*model.Sweet, error)
	// Restock increments stock by amount; admin-only at the gate.
	Restock(ctx context.Context, id int64, amount int64) (*model.Sweet, error)
}

type SweetServiceImpl struct {
	repo repository.SweetRepository
}

// NewSweetService constructs SweetService.
func NewSweetService(repo repository.SweetRepository) *SweetServiceImpl {
	return &SweetServiceImpl{repo: repo}
}

func (s *SweetServiceImpl) List(ctx context.Context) ([]model.Sweet, error) {
	return s.repo.List(ctx)
}

func (s *SweetServiceImpl) Search(ctx context.Context, f model.SearchFilters) ([]model.Sweet, error) {
	return s.repo.Search(ctx, f)
}

func (s *SweetServiceImpl) GetByID(ctx context.Context, id int64) (*model.Sweet, error) {
	return s.repo.Get(ctx, id)
}

// validateFields applies the shared create/update rules.
func validateFields(f model.SweetFields) error {
	if f.Name == "" || f.Category == "" {
		return errs.Validation("All fields are required")
	}
	if f.Price < 0 || f.Quantity < 0 {
		return errs.Validation("Price and quantity must be non-negative")
	}
	return nil
}

func (s *SweetServiceImpl) Create(ctx context.Context, f model.SweetFields) (*model.Sweet, error) {
	if err := validateFields(f); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, f)
}

func (s *SweetServiceImpl) Update(ctx context.Context, id int64, f model.SweetFields) (*model.Sweet, error) {
	if err := validateFields(f); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, f)
}

func (s *SweetServiceImpl) Remove(ctx context.Context, id int64) (*model.Sweet, error) {
	return s.repo.Delete(ctx, id)
}

func (s *SweetServiceImpl) Purchase(ctx context.Context, id int64) (*model.Sweet, error) {
	return s.repo.Purchase(ctx, id)
}

func (s *SweetServiceImpl) Restock(ctx context.Context, id int64, amount int64) (*model.Sweet, error) {
	if amount <= 0 {
		return nil, errs.Validation("Quantity must be positive")
	}
	return s.repo.Restock(ctx, id, amount)
}

var _ SweetService = (*SweetServiceImpl)(nil)
