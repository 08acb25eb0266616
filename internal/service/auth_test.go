package service

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgcrypto "github.com/Maneesh0032/Sweets-Shop/internal/crypto"
	"github.com/Maneesh0032/Sweets-Shop/internal/errs"
	"github.com/Maneesh0032/Sweets-Shop/internal/limiter"
	"github.com/Maneesh0032/Sweets-Shop/internal/model"
	"github.com/Maneesh0032/Sweets-Shop/internal/repository"
)

type fakeUsers struct {
	byEmail map[string]*model.User
	nextID  int64

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*model.User{}
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	successErr error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return l.successErr
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

func TestAuth_Register_Validation(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byEmail: map[string]*model.User{}}
	s := NewAuthService(users, []byte("k"), time.Minute, &fakeLimiter{})
	ctx := context.Background()

	cases := []struct {
		name                     string
		email, password, confirm string
	}{
		{"empty email", "", "secret1", "secret1"},
		{"empty password", "a@b.c", "", ""},
		{"missing confirm", "a@b.c", "secret1", ""},
		{"mismatch", "a@b.c", "secret1", "secret2"},
		{"too short", "a@b.c", "abc12", "abc12"},
	}
	for _, tc := range cases {
		if _, err := s.Register(ctx, tc.email, tc.password, tc.confirm); !errs.IsValidation(err) {
			t.Fatalf("%s: want validation error, got %v", tc.name, err)
		}
	}
	if len(users.byEmail) != 0 {
		t.Fatalf("validation failures must not create users, got %d", len(users.byEmail))
	}
}

func TestAuth_Register_HashesAndDerivesAdmin(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byEmail: map[string]*model.User{}}
	s := NewAuthService(users, []byte("k"), time.Minute, &fakeLimiter{})
	ctx := context.Background()

	u, err := s.Register(ctx, "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("store must assign an id")
	}
	if u.IsAdmin {
		t.Fatalf("plain email must not be admin")
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Fatalf("password stored in plaintext or empty")
	}
	if !pkgcrypto.VerifyPassword("secret1", u.PasswordHash) {
		t.Fatalf("stored hash does not verify")
	}

	admin, err := s.Register(ctx, "shopadmin@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("Register admin: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatalf(`email containing "admin" must yield an admin account`)
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byEmail: map[string]*model.User{}}
	s := NewAuthService(users, []byte("k"), time.Minute, &fakeLimiter{})
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, "alice@example.com", "other99", "other99"); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func loginFixture(t *testing.T) (*fakeUsers, *model.User) {
	t.Helper()
	hash, err := pkgcrypto.HashPassword("correct1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u := &model.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}
	return &fakeUsers{byEmail: map[string]*model.User{u.Email: u}, nextID: 1}, u
}

func TestAuth_Login_RateLimiterAndCreds(t *testing.T) {
	t.Parallel()

	users, _ := loginFixture(t)
	lim := &fakeLimiter{allowOK: true}
	s := NewAuthService(users, []byte("secret"), 2*time.Minute, lim)
	ctx := context.Background()

	lim.allowErr = errors.New("lim-err")
	if _, _, err := s.LoginWithIP(ctx, "alice@example.com", "correct1", "1.2.3.4"); err == nil {
		t.Fatalf("want limiter error propagate")
	}
	lim.allowErr = nil

	lim.allowOK = false
	if _, _, err := s.LoginWithIP(ctx, "alice@example.com", "correct1", "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited, got %v", err)
	}
	lim.allowOK = true

	// wrong password and unknown email yield the identical error
	_, _, errWrong := s.LoginWithIP(ctx, "alice@example.com", "wrong", "1.2.3.4")
	_, _, errUnknown := s.LoginWithIP(ctx, "nobody@example.com", "correct1", "1.2.3.4")
	if !errors.Is(errWrong, errs.ErrUnauthorized) || !errors.Is(errUnknown, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for both, got %v / %v", errWrong, errUnknown)
	}
	if lim.failureCalls != 2 {
		t.Fatalf("each bad attempt must record a failure, got %d", lim.failureCalls)
	}

	// failure threshold reached mid-attempt
	lim.failBlocked = true
	if _, _, err := s.LoginWithIP(ctx, "alice@example.com", "wrong", "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited at threshold, got %v", err)
	}
	lim.failBlocked = false

	tokens, u, err := s.LoginWithIP(ctx, "alice@example.com", "correct1", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.AccessToken == "" || u.Email != "alice@example.com" {
		t.Fatalf("unexpected login result: %+v %+v", tokens, u)
	}
	if lim.successCalls == 0 {
		t.Fatalf("successful login must reset limiter counters")
	}
}

func TestAuth_Login_MissingFields(t *testing.T) {
	t.Parallel()
	users, _ := loginFixture(t)
	s := NewAuthService(users, []byte("secret"), time.Minute, &fakeLimiter{allowOK: true})

	if _, _, err := s.LoginWithIP(context.Background(), "", "pw", "ip"); !errs.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if _, _, err := s.LoginWithIP(context.Background(), "a@b.c", "", "ip"); !errs.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestAuth_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	hash, _ := pkgcrypto.HashPassword("correct1")
	admin := &model.User{ID: 42, Email: "admin@gmail.com", PasswordHash: hash, IsAdmin: true}
	users := &fakeUsers{byEmail: map[string]*model.User{admin.Email: admin}, nextID: 42}
	s := NewAuthService(users, []byte("secret"), time.Hour, &fakeLimiter{allowOK: true})

	tokens, _, err := s.LoginWithIP(context.Background(), "admin@gmail.com", "correct1", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := s.ValidateToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID() != 42 || claims.Email != "admin@gmail.com" || !claims.IsAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("token must carry a jti")
	}

	// wrong key
	other := NewAuthService(users, []byte("other"), time.Hour, &fakeLimiter{allowOK: true})
	if _, err := other.ValidateToken(tokens.AccessToken); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for wrong key, got %v", err)
	}

	// garbage
	if _, err := s.ValidateToken("not.a.token"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for garbage, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	users, _ := loginFixture(t)
	s := NewAuthService(users, []byte("secret"), -time.Minute, &fakeLimiter{allowOK: true})

	tokens, _, err := s.LoginWithIP(context.Background(), "alice@example.com", "correct1", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := s.ValidateToken(tokens.AccessToken); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for expired token, got %v", err)
	}
}
