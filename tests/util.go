package testutil

import (
	"context"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

// Logger is a no-op core.Logger that fails the test on Fatal.
type Logger struct {
	T *testing.T
}

func (l Logger) Enable(bool)                        {}
func (l Logger) Debug(string, ...interface{})       {}
func (l Logger) Info(string, ...interface{})        {}
func (l Logger) Warn(string, ...interface{})        {}
func (l Logger) Error(string, ...interface{})       {}
func (l Logger) Fatal(msg string, _ ...interface{}) { l.T.Fatalf("logger.Fatal: %s", msg) }

// RegisterActor creates an actor account through the service.
func RegisterActor(t *testing.T, svc *actor.Service, na actor.NewActor) actor.Actor {
	t.Helper()
	if na.Secret == "" {
		na.Secret = "secret"
	}
	act, err := svc.Register(context.Background(), na)
	if err != nil {
		t.Fatalf("RegisterActor(%s) failed: %v", na.Username, err)
	}
	return act
}

func NewStudent(name, uname, class string) actor.NewActor {
	return actor.NewActor{
		Name:          name,
		Username:      uname,
		Email:         uname + "@test.cd",
		Role:          actor.RoleStudent,
		AssignedClass: class,
	}
}

func NewTeacher(name, uname, class, subject string) actor.NewActor {
	return actor.NewActor{
		Name:            name,
		Username:        uname,
		Email:           uname + "@test.cd",
		Role:            actor.RoleTeacher,
		AssignedClass:   class,
		AssignedSubject: subject,
	}
}

func NewAdmin(name, uname string) actor.NewActor {
	return actor.NewActor{
		Name:     name,
		Username: uname,
		Email:    uname + "@test.cd",
		Role:     actor.RoleAdmin,
	}
}

// AssertEqualText compares two multi-line strings and reports a unified diff
// on mismatch.
func AssertEqualText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("diffing failed: %v", err)
	}
	t.Errorf("text mismatch:\n%s", diff)
}
