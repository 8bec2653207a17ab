package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/repository"
	"github.com/Zachkp/folio/internal/store"
)

func newGate(t *testing.T) (*Gate, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemory())
	t.Cleanup(func() { s.Close() })
	return NewGate(s, "", ""), s
}

func TestLoginWithDefaults(t *testing.T) {
	ctx := context.Background()
	gate, s := newGate(t)

	if gate.IsAuthenticated(ctx) {
		t.Fatal("expected logged out initially")
	}
	if !gate.UsesDefaultUsername() || !gate.UsesDefaultPassword() {
		t.Fatal("expected default credentials")
	}

	if err := gate.Login(ctx, Credentials{Username: "admin", Password: "admin123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	state, _ := gate.State(ctx)
	if state != LoggedIn {
		t.Fatalf("expected logged in, got %s", state)
	}
	raw, err := s.Get(ctx, repository.KeyAuthenticated)
	if err != nil || string(raw) != "true" {
		t.Fatalf("expected flag stored, got %q err=%v", raw, err)
	}

	if err := gate.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if gate.IsAuthenticated(ctx) {
		t.Fatal("expected logged out after logout")
	}
	if err := gate.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	gate, _ := newGate(t)

	err := gate.Login(ctx, Credentials{Username: "admin", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if gate.IsAuthenticated(ctx) {
		t.Fatal("failed login changed the state")
	}
}

func TestLoginEmptyFields(t *testing.T) {
	gate, _ := newGate(t)

	err := gate.Login(context.Background(), Credentials{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field("username") == "" || verr.Field("password") == "" {
		t.Fatalf("expected both fields reported, got %v", verr.Fields)
	}
}

func TestConfiguredCredentials(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	defer s.Close()
	gate := NewGate(s, "zach", "s3cret")

	if gate.UsesDefaultUsername() || gate.UsesDefaultPassword() {
		t.Fatal("expected configured credentials")
	}
	if err := gate.Login(ctx, Credentials{Username: "admin", Password: "admin123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("defaults must not work once configured, got %v", err)
	}
	if err := gate.Login(ctx, Credentials{Username: "zach", Password: "s3cret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestOnlyExactFlagCounts(t *testing.T) {
	ctx := context.Background()
	gate, s := newGate(t)

	s.Set(ctx, repository.KeyAuthenticated, []byte("yes"))
	if gate.IsAuthenticated(ctx) {
		t.Fatal("expected any value but true to mean logged out")
	}
}

func TestHashIP(t *testing.T) {
	a := HashIP("10.0.0.1", "salt")
	if len(a) != 16 || a != HashIP("10.0.0.1", "salt") {
		t.Fatalf("expected stable 16 char hash, got %q", a)
	}
	if a == HashIP("10.0.0.2", "salt") || a == HashIP("10.0.0.1", "pepper") {
		t.Fatal("expected different inputs to hash differently")
	}
}

func TestDefaultsReportedPerField(t *testing.T) {
	s := store.New(store.NewMemory())
	defer s.Close()

	gate := NewGate(s, "", "s3cret")
	if !gate.UsesDefaultUsername() {
		t.Fatal("expected the default username")
	}
	if gate.UsesDefaultPassword() {
		t.Fatal("a configured password must not be reported as the default")
	}

	gate = NewGate(s, "zach", "")
	if gate.UsesDefaultUsername() || !gate.UsesDefaultPassword() {
		t.Fatal("expected a configured username and the default password")
	}
}
