// Package kvtest is the behavioural suite every KeyValueStore backend must
// pass. Backend tests open their store and hand it to Run; backends whose
// medium needs a live server skip themselves when it is not reachable.
package kvtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

// Run exercises the KeyValueStore contract against an open store. Keys are
// namespaced per run so suites can share a long-lived server. Closing the
// store stays with the caller.
func Run(t *testing.T, store core.KeyValueStore) {
	t.Helper()
	ctx := context.Background()
	key := fmt.Sprintf("kvtest:%d", time.Now().UnixNano())

	if _, err := store.Get(ctx, key+":missing"); !core.IsKeyNotFound(err) {
		t.Errorf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}

	if err := store.Set(ctx, key, "v1"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if val, err := store.Get(ctx, key); err != nil || val != "v1" {
		t.Errorf("Get() = (%q, %v), want (v1, nil)", val, err)
	}

	// overwrite in full, not append
	if err := store.Set(ctx, key, "v2"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if val, _ := store.Get(ctx, key); val != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", val)
	}

	// collection blobs grow with the school; a realistic one round-trips intact
	blob := `[{"id":"` + strings.Repeat("a7f3", 4096) + `"}]`
	if err := store.Set(ctx, key, blob); err != nil {
		t.Fatalf("Set(blob) failed: %v", err)
	}
	if val, err := store.Get(ctx, key); err != nil || val != blob {
		t.Errorf("blob round trip mangled: len = %d, err = %v, want len %d", len(val), err, len(blob))
	}
}
