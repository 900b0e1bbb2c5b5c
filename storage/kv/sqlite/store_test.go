package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/storage/kv/kvtest"
)

func TestStore_contract(t *testing.T) {
	s, err := Open(core.StorageConfig{SQLitePath: filepath.Join(t.TempDir(), "kv.db")})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	kvtest.Run(t, s)
}

func TestStore_reopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")
	conf := core.StorageConfig{SQLitePath: path}

	s, err := Open(conf)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Set(ctx, "homeworks", `[{"id":"hw1"}]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	s, err = Open(conf)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	if val, err := s.Get(ctx, "homeworks"); err != nil || val != `[{"id":"hw1"}]` {
		t.Errorf("Get() after reopen = (%q, %v)", val, err)
	}
}
