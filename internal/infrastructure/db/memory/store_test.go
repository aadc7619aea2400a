package memory

import (
	"context"
	"testing"
)

func TestStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, found, err := s.Get(ctx, "users"); err != nil || found {
		t.Fatalf("expected missing key, got found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "users", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, found, err := s.Get(ctx, "users")
	if err != nil || !found || v != "[]" {
		t.Fatalf("unexpected get result %q found=%v err=%v", v, found, err)
	}

	if err := s.Set(ctx, "users", `[{"id":"1"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "users"); v != `[{"id":"1"}]` {
		t.Fatalf("expected overwritten value, got %q", v)
	}

	if err := s.Remove(ctx, "users"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, found, _ := s.Get(ctx, "users"); found {
		t.Fatalf("expected key to be removed")
	}
	if err := s.Remove(ctx, "users"); err != nil {
		t.Fatalf("removing an absent key must succeed: %v", err)
	}
}
