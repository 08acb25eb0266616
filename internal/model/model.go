// Package model defines domain entities used by services and repositories.
package model

import "time"

// User represents an account stored on the server. Passwords are never stored in plaintext.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"` // unique
	PasswordHash string    `json:"-"`     // bcrypt
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sweet is a single catalog entry with available stock.
type Sweet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`    // >= 0
	Quantity  int64     `json:"quantity"` // >= 0, enforced by conditional purchase
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"` // refreshed on every mutation
}

// SweetFields are the caller-supplied attributes for create/update.
// Update replaces all four fields unconditionally (no partial patch).
type SweetFields struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// SearchFilters are optional, conjunctive catalog filters.
// Nil pointer means the filter is not applied.
type SearchFilters struct {
	Name     string   // case-insensitive substring match
	Category string   // exact match
	MinPrice *float64 // inclusive
	MaxPrice *float64 // inclusive
}

// Tokens collects an issued access token and its expiry (for diagnostics).
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}
