// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/Maneesh0032/Sweets-Shop/internal/model"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	// Create inserts a new user and fills in the store-assigned ID and timestamps.
	// Returns errs.ErrAlreadyExists if the email is taken.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
