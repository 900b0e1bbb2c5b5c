package inmemkv

import (
	"context"
	"testing"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/storage/kv/kvtest"
)

func TestStore(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !core.IsKeyNotFound(err) {
		t.Errorf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if val, err := s.Get(ctx, "k"); err != nil || val != "v1" {
		t.Errorf("Get() = (%q, %v), want (v1, nil)", val, err)
	}

	// overwrite, not append
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if val, _ := s.Get(ctx, "k"); val != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", val)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestStore_contract(t *testing.T) {
	kvtest.Run(t, New())
}
