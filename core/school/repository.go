package school

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

type entity interface {
	EntityID() string
}

// repository holds one persisted collection in insertion order. Every
// mutation flushes the full collection to the durable medium before
// returning; reads always see the latest in-memory state. The mutex is a
// concession to the concurrent HTTP surface, not part of the store contract.
type repository[T entity] struct {
	key string
	kv  core.KeyValueStore
	log core.Logger

	mu    sync.RWMutex
	items []T
}

func openRepository[T entity](ctx context.Context, kv core.KeyValueStore, log core.Logger, key string) *repository[T] {
	repo := &repository[T]{key: key, kv: kv, log: log}
	repo.load(ctx)
	return repo
}

// load reads the stored blob for the collection key. An absent or unparsable
// blob reads as "no data yet"; startup never fails on corruption.
func (r *repository[T]) load(ctx context.Context) {
	r.items = []T{}
	blob, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if !core.IsKeyNotFound(err) {
			r.log.Warn("reading collection; starting empty", "key", r.key, "error", err)
		}
		return
	}
	var items []T
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		r.log.Warn("unparsable collection blob; starting empty", "key", r.key, "error", err)
		return
	}
	if items != nil {
		r.items = items
	}
}

// flush serializes the full collection and overwrites the stored blob.
// Callers hold the write lock.
func (r *repository[T]) flush(ctx context.Context) error {
	blob, err := json.Marshal(r.items)
	if err != nil {
		return errors.Wrapf(err, "serializing %q", r.key)
	}
	return errors.Wrapf(r.kv.Set(ctx, r.key, string(blob)), "flushing %q", r.key)
}

// add appends the item and flushes. Identity and audit metadata are the
// caller's (the store's) responsibility.
func (r *repository[T]) add(ctx context.Context, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return r.flush(ctx)
}

// update applies patch to the item with the given id and flushes.
// A missing id is a reported no-op, not an error.
func (r *repository[T]) update(ctx context.Context, id string, patch func(*T)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].EntityID() == id {
			patch(&r.items[i])
			return true, r.flush(ctx)
		}
	}
	return false, nil
}

// delete removes the matching entry if present; deleting a non-existent id
// is a no-op, not an error.
func (r *repository[T]) delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].EntityID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return r.flush(ctx)
		}
	}
	return nil
}

// all returns a copy of the full collection in insertion order, unfiltered.
// Filtering is the scope filter's job, never the repository's.
func (r *repository[T]) all() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]T, len(r.items))
	copy(items, r.items)
	return items
}

func (r *repository[T]) find(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
