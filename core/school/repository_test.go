package school

import (
	"context"
	"strings"
	"testing"

	inmemkv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/inmem"
	testutil "github.com/Axioms-Product/axiom-school-sub000/tests"
)

func newNotice(id, title string) Notice {
	return Notice{Meta: Meta{ID: id}, Title: title, AssignedClass: "Form 1"}
}

func Test_repository_flushOnMutation(t *testing.T) {
	kv := inmemkv.New()
	ctx := context.Background()
	repo := openRepository[Notice](ctx, kv, testutil.Logger{T: t}, "notices")

	if err := repo.add(ctx, newNotice("n1", "Sports day")); err != nil {
		t.Fatalf("add() failed: %v", err)
	}
	blob, err := kv.Get(ctx, "notices")
	if err != nil {
		t.Fatalf("kv.Get() after add failed: %v", err)
	}
	if !strings.Contains(blob, "Sports day") {
		t.Errorf("stored blob missing the entry: %s", blob)
	}

	// a fresh repository over the same medium sees the flushed state
	reopened := openRepository[Notice](ctx, kv, testutil.Logger{T: t}, "notices")
	if items := reopened.all(); len(items) != 1 || items[0].ID != "n1" {
		t.Errorf("reopened repository items = %+v", items)
	}
}

func Test_repository_update(t *testing.T) {
	kv := inmemkv.New()
	ctx := context.Background()
	repo := openRepository[Notice](ctx, kv, testutil.Logger{T: t}, "notices")
	if err := repo.add(ctx, newNotice("n1", "Old title")); err != nil {
		t.Fatalf("add() failed: %v", err)
	}

	found, err := repo.update(ctx, "n1", func(n *Notice) { n.Title = "New title" })
	if err != nil || !found {
		t.Fatalf("update() = (%v, %v), want (true, nil)", found, err)
	}
	if n, _ := repo.find("n1"); n.Title != "New title" {
		t.Errorf("update() not applied: %+v", n)
	}

	// a missing id is a reported no-op
	found, err = repo.update(ctx, "ghost", func(n *Notice) { n.Title = "x" })
	if err != nil || found {
		t.Errorf("update(missing) = (%v, %v), want (false, nil)", found, err)
	}
}

func Test_repository_deleteIsIdempotent(t *testing.T) {
	kv := inmemkv.New()
	ctx := context.Background()
	repo := openRepository[Notice](ctx, kv, testutil.Logger{T: t}, "notices")
	if err := repo.add(ctx, newNotice("n1", "Sports day")); err != nil {
		t.Fatalf("add() failed: %v", err)
	}

	if err := repo.delete(ctx, "n1"); err != nil {
		t.Fatalf("delete() failed: %v", err)
	}
	if err := repo.delete(ctx, "n1"); err != nil {
		t.Errorf("second delete() error = %v, want nil", err)
	}
	if err := repo.delete(ctx, "never-existed"); err != nil {
		t.Errorf("delete(unknown) error = %v, want nil", err)
	}
	if items := repo.all(); len(items) != 0 {
		t.Errorf("items after delete = %+v", items)
	}
}

func Test_repository_loadCorruptBlob(t *testing.T) {
	kv := inmemkv.New()
	ctx := context.Background()
	if err := kv.Set(ctx, "notices", "{definitely not json"); err != nil {
		t.Fatalf("kv.Set() failed: %v", err)
	}

	repo := openRepository[Notice](ctx, kv, testutil.Logger{T: t}, "notices")
	if items := repo.all(); len(items) != 0 {
		t.Errorf("corrupt blob loaded as %+v, want empty", items)
	}

	// the store stays usable and the next flush overwrites the junk
	if err := repo.add(ctx, newNotice("n1", "Fresh start")); err != nil {
		t.Fatalf("add() after corrupt load failed: %v", err)
	}
	blob, err := kv.Get(ctx, "notices")
	if err != nil || !strings.Contains(blob, "Fresh start") {
		t.Errorf("blob after recovery = %q, err %v", blob, err)
	}
}
