package auth

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

func TestNoopHasher_AcceptsAnything(t *testing.T) {
	var h NoopHasher
	hash, err := h.Hash("secret")
	if err != nil || hash != "" {
		t.Fatalf("expected empty hash, got %q (%v)", hash, err)
	}
	if err := h.Compare("", "whatever"); err != nil {
		t.Fatalf("expected noop compare to succeed: %v", err)
	}
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", h.cost)
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "secret" {
		t.Fatalf("expected hashed password, got %q", hash)
	}
	if err := h.Compare(hash, "secret"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected compare error for wrong password")
	}
	if err := h.Compare("", "secret"); err == nil {
		t.Fatal("expected compare error for missing hash")
	}
}

func TestRandomTokens_Generate(t *testing.T) {
	g := RandomTokens{}
	a, err := g.Generate(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _ := g.Generate(nil)

	if !strings.HasPrefix(a, DefaultTokenTag) {
		t.Fatalf("expected %q prefix, got %q", DefaultTokenTag, a)
	}
	if len(a) <= len(DefaultTokenTag) {
		t.Fatalf("expected random fragment after tag, got %q", a)
	}
	if a == b {
		t.Fatalf("expected distinct tokens, got %q twice", a)
	}
	for _, r := range strings.TrimPrefix(a, DefaultTokenTag) {
		if !strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", r) {
			t.Fatalf("fragment is not base-36: %q", a)
		}
	}
}

func TestRandomTokens_CustomTag(t *testing.T) {
	tok, err := RandomTokens{Tag: "sess-"}.Generate(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(tok, "sess-") {
		t.Fatalf("unexpected token %q", tok)
	}
}

func TestJWTTokens_RoundTrip(t *testing.T) {
	g := NewJWTTokens("secret", time.Hour)
	tok, err := g.Generate(&domain.User{ID: "7", Email: "a@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	id, err := g.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "7" {
		t.Fatalf("expected subject 7, got %q", id)
	}

	other := NewJWTTokens("other", time.Hour)
	if _, err := other.Parse(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
	if _, err := g.Parse("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
