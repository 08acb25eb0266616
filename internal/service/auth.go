// Package service contains application services for authentication and the catalog.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/Maneesh0032/Sweets-Shop/internal/crypto"
	"github.com/Maneesh0032/Sweets-Shop/internal/errs"
	"github.com/Maneesh0032/Sweets-Shop/internal/limiter"
	"github.com/Maneesh0032/Sweets-Shop/internal/model"
	"github.com/Maneesh0032/Sweets-Shop/internal/repository"
)

// MinPasswordLen is the minimum accepted password length at registration.
const MinPasswordLen = 6

// Claims is the signed assertion embedded in every access token.
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// UserID parses the token subject back into a user ID.
func (c *Claims) UserID() int64 {
	id, _ := parseID(c.Subject)
	return id
}

// AuthService defines registration and authentication operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password, confirmPassword string) (*model.User, error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, *model.User, error)
	// ValidateToken checks signature and expiry and returns the embedded claims.
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register validates input, hashes the password, and inserts the user.
// Admin status is derived from the email containing "admin" — kept for
// compatibility with existing accounts even though it lets anyone
// self-provision an admin. See DESIGN.md.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, confirmPassword string) (*model.User, error) {
	if email == "" || password == "" || confirmPassword == "" {
		return nil, errs.Validation("All fields are required")
	}
	if password != confirmPassword {
		return nil, errs.Validation("Passwords do not match")
	}
	if len(password) < MinPasswordLen {
		return nil, errs.Validation("Password must be at least 6 characters")
	}

	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      strings.Contains(email, "admin"),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, *model.User, error) {
	if email == "" || password == "" {
		return model.Tokens{}, nil, errs.Validation("Email and password are required")
	}

	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	if !allowed {
		return model.Tokens{}, nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, nil, errs.ErrRateLimited
		}
		// unknown email and wrong password are indistinguishable to the caller
		return model.Tokens{}, nil, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.issueAccessToken(u)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, u, nil
}

// issueAccessToken creates a signed HS256 JWT embedding id, email, and role.
func (s *AuthServiceImpl) issueAccessToken(u *model.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := Claims{
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   formatID(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.Must(uuid.NewV4()).String(),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// ValidateToken parses and verifies an access token.
func (s *AuthServiceImpl) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}

var _ AuthService = (*AuthServiceImpl)(nil)

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("bad id")
	}
	return id, nil
}
