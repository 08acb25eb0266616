// Package seed installs the demo accounts and catalog on first run.
package seed

import (
	"context"

	"go.uber.org/zap"

	pkgcrypto "github.com/Maneesh0032/Sweets-Shop/internal/crypto"
	"github.com/Maneesh0032/Sweets-Shop/internal/repository/postgres"
)

type demoSweet struct {
	id       int64
	name     string
	category string
	price    float64
	quantity int64
}

var demoSweets = []demoSweet{
	{1, "Gummy Bears", "Gummies", 2.99, 50},
	{2, "Dark Chocolate", "Chocolate", 5.99, 30},
	{3, "Lollipops", "Candy", 1.49, 100},
	{4, "Licorice Strips", "Licorice", 3.49, 25},
	{5, "Jelly Beans", "Gummies", 2.49, 60},
	{6, "Mint Candies", "Candy", 1.99, 80},
}

// Run inserts the demo users and sweets if the users table is empty.
// Fixture data only; skipped entirely once any user exists.
func Run(ctx context.Context, db *postgres.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminHash, err := pkgcrypto.HashPassword("admin")
	if err != nil {
		return err
	}
	userHash, err := pkgcrypto.HashPassword("user123")
	if err != nil {
		return err
	}

	const insUser = `INSERT INTO users (email, password_hash, is_admin) VALUES ($1, $2, $3)`
	if _, err := db.Pool.Exec(ctx, insUser, "admin@gmail.com", adminHash, true); err != nil {
		return err
	}
	if _, err := db.Pool.Exec(ctx, insUser, "user@gmail.com", userHash, false); err != nil {
		return err
	}

	const insSweet = `INSERT INTO sweets (id, name, category, price, quantity) VALUES ($1, $2, $3, $4, $5)`
	for _, s := range demoSweets {
		if _, err := db.Pool.Exec(ctx, insSweet, s.id, s.name, s.category, s.price, s.quantity); err != nil {
			return err
		}
	}
	// Demo sweets carry fixed IDs; move the sequence past them.
	if _, err := db.Pool.Exec(ctx, `SELECT setval('sweets_id_seq', $1)`, int64(len(demoSweets))); err != nil {
		return err
	}

	logger.Info("seeded demo data",
		zap.Int("users", 2),
		zap.Int("sweets", len(demoSweets)),
	)
	return nil
}
