package httpserver

import (
	"context"

	"github.com/Maneesh0032/Sweets-Shop/internal/service"
)

type ctxKey string

const claimsKey ctxKey = "sweetshop.claims"

// WithClaims stores validated token claims in context.
func WithClaims(ctx context.Context, c *service.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromCtx fetches token claims from context.
func ClaimsFromCtx(ctx context.Context) (*service.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*service.Claims)
	return c, ok
}
