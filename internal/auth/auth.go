// Package auth is the admin login gate. It keeps a single stored flag and
// gates the admin pages in the UI; it does not protect the store itself.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/repository"
	"github.com/Zachkp/folio/internal/store"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// Credentials is what the login form submits.
type Credentials struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type Gate struct {
	kv       store.KV
	username string
	password string
}

// NewGate returns a gate accepting username and password. Empty values fall
// back to the defaults.
func NewGate(kv store.KV, username, password string) *Gate {
	if username == "" {
		username = DefaultUsername
	}
	if password == "" {
		password = DefaultPassword
	}
	return &Gate{kv: kv, username: username, password: password}
}

// UsesDefaultUsername reports whether the built-in development username is active.
func (g *Gate) UsesDefaultUsername() bool {
	return g.username == DefaultUsername
}

// UsesDefaultPassword reports whether the built-in development password is active.
func (g *Gate) UsesDefaultPassword() bool {
	return g.password == DefaultPassword
}

// Login checks creds and sets the authenticated flag. Empty fields give a
// *domain.ValidationError; a mismatch gives ErrInvalidCredentials and leaves
// the state alone.
func (g *Gate) Login(ctx context.Context, creds Credentials) error {
	if err := domain.Validate(creds); err != nil {
		return err
	}
	if !equal(creds.Username, g.username) || !equal(creds.Password, g.password) {
		return ErrInvalidCredentials
	}
	return g.kv.Set(ctx, repository.KeyAuthenticated, []byte("true"))
}

// Logout removes the flag. Logging out twice is not an error.
func (g *Gate) Logout(ctx context.Context) error {
	err := g.kv.Delete(ctx, repository.KeyAuthenticated)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// State reads the flag. Anything but the exact value "true" is logged out.
func (g *Gate) State(ctx context.Context) (State, error) {
	value, err := g.kv.Get(ctx, repository.KeyAuthenticated)
	if errors.Is(err, store.ErrNotFound) {
		return LoggedOut, nil
	}
	if err != nil {
		return LoggedOut, err
	}
	if string(value) == "true" {
		return LoggedIn, nil
	}
	return LoggedOut, nil
}

func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	state, err := g.State(ctx)
	return err == nil && state == LoggedIn
}

// equal compares digests so the time taken does not depend on the input length.
func equal(got, want string) bool {
	a := sha256.Sum256([]byte(got))
	b := sha256.Sum256([]byte(want))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// HashIP shortens a salted hash of ip for log lines.
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}
