package school

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
	emailsvc "github.com/Axioms-Product/axiom-school-sub000/services/email"
	actordir "github.com/Axioms-Product/axiom-school-sub000/storage/directory"
	inmemkv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/inmem"
	testutil "github.com/Axioms-Product/axiom-school-sub000/tests"
)

// testEnv wires a Store over an in-memory medium with a small school:
// two Form 1 students, a Form 1 Math teacher, a Form 2 student and an admin.
type testEnv struct {
	store    *Store
	kv       *inmemkv.Store
	actorSvc *actor.Service

	teacher  actor.Actor // Form 1, Math
	student1 actor.Actor // Form 1
	student2 actor.Actor // Form 1
	outsider actor.Actor // Form 2 student
	admin    actor.Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := inmemkv.New()
	actorSvc := actor.NewService(actordir.New(kv))

	env := &testEnv{
		kv:       kv,
		actorSvc: actorSvc,
		teacher:  testutil.RegisterActor(t, actorSvc, testutil.NewTeacher("Teach", "teach", "Form 1", "Math")),
		student1: testutil.RegisterActor(t, actorSvc, testutil.NewStudent("Awe", "awe", "Form 1")),
		student2: testutil.RegisterActor(t, actorSvc, testutil.NewStudent("Hero", "hero", "Form 1")),
		outsider: testutil.RegisterActor(t, actorSvc, testutil.NewStudent("Zola", "zola", "Form 2")),
		admin:    testutil.RegisterActor(t, actorSvc, testutil.NewAdmin("Admin", "admin")),
	}
	env.store = NewStore(
		context.Background(), kv, actorSvc,
		emailsvc.NewConsoleServiceMock(), testutil.Logger{T: t},
	)
	return env
}

func isValidationError(err error) bool {
	var vErr *core.ValidationError
	return errors.As(err, &vErr)
}

func TestStore_AddHomework(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	nh := NewHomework{Title: "Fractions", Subject: "Math", AssignedClass: "Form 1", DueDate: "2026-09-01"}

	if _, err := env.store.AddHomework(ctx, actor.Actor{}, nh); !isValidationError(err) {
		t.Errorf("AddHomework(no actor) error = %v, want validation error", err)
	}
	if _, err := env.store.AddHomework(ctx, env.student1, nh); !isValidationError(err) {
		t.Errorf("AddHomework(student) error = %v, want validation error", err)
	}

	foreign := nh
	foreign.Subject = "English"
	if _, err := env.store.AddHomework(ctx, env.teacher, foreign); !isValidationError(err) {
		t.Errorf("AddHomework(foreign subject) error = %v, want validation error", err)
	}

	bad := nh
	bad.DueDate = "01/09/2026"
	if _, err := env.store.AddHomework(ctx, env.teacher, bad); err == nil {
		t.Error("AddHomework(bad due date) expected an error")
	}

	hw, err := env.store.AddHomework(ctx, env.teacher, nh)
	if err != nil {
		t.Fatalf("AddHomework() failed: %v", err)
	}
	if hw.ID == "" || hw.CreatedBy != env.teacher.ID || hw.CreatorName != env.teacher.Name {
		t.Errorf("AddHomework() meta = %+v", hw.Meta)
	}
	if hw.CompletedBy == nil || len(hw.CompletedBy) != 0 {
		t.Errorf("AddHomework() CompletedBy = %v, want empty", hw.CompletedBy)
	}
}

func TestStore_ToggleHomeworkCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hw, err := env.store.AddHomework(ctx, env.teacher, NewHomework{
		Title: "Fractions", Subject: "Math", AssignedClass: "Form 1", DueDate: "2026-09-01",
	})
	if err != nil {
		t.Fatalf("AddHomework() failed: %v", err)
	}

	if _, err := env.store.ToggleHomeworkCompletion(ctx, env.teacher, hw.ID); !isValidationError(err) {
		t.Errorf("Toggle(teacher) error = %v, want validation error", err)
	}
	if _, err := env.store.ToggleHomeworkCompletion(ctx, env.outsider, hw.ID); err != ErrNotFound {
		t.Errorf("Toggle(other class) error = %v, want ErrNotFound", err)
	}
	if _, err := env.store.ToggleHomeworkCompletion(ctx, env.student1, "ghost"); err != ErrNotFound {
		t.Errorf("Toggle(unknown id) error = %v, want ErrNotFound", err)
	}

	toggled, err := env.store.ToggleHomeworkCompletion(ctx, env.student1, hw.ID)
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if !toggled.CompletedByStudent(env.student1.ID) {
		t.Error("first toggle did not mark completion")
	}

	// second toggle reverts; other students are untouched
	if _, err = env.store.ToggleHomeworkCompletion(ctx, env.student2, hw.ID); err != nil {
		t.Fatalf("Toggle(student2) failed: %v", err)
	}
	toggled, err = env.store.ToggleHomeworkCompletion(ctx, env.student1, hw.ID)
	if err != nil {
		t.Fatalf("second Toggle() failed: %v", err)
	}
	if toggled.CompletedByStudent(env.student1.ID) {
		t.Error("second toggle did not revert completion")
	}
	if !toggled.CompletedByStudent(env.student2.ID) {
		t.Error("toggle clobbered another student's completion")
	}
}

func TestStore_ToggleHomeworkCompletion_returnedCopiesStayStable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hw, err := env.store.AddHomework(ctx, env.teacher, NewHomework{
		Title: "Fractions", Subject: "Math", AssignedClass: "Form 1", DueDate: "2026-09-01",
	})
	if err != nil {
		t.Fatalf("AddHomework() failed: %v", err)
	}
	for _, st := range []actor.Actor{env.student1, env.student2} {
		if _, err := env.store.ToggleHomeworkCompletion(ctx, st, hw.ID); err != nil {
			t.Fatalf("Toggle(%s) failed: %v", st.Username, err)
		}
	}

	hws, err := env.store.Homeworks(ctx, env.teacher)
	if err != nil || len(hws) != 1 {
		t.Fatalf("Homeworks() = %v, %v", hws, err)
	}
	snapshot := hws[0]

	// later toggles must not reach back into a copy already handed out
	if _, err := env.store.ToggleHomeworkCompletion(ctx, env.student2, hw.ID); err != nil {
		t.Fatalf("Toggle(student2 off) failed: %v", err)
	}
	if !snapshot.CompletedByStudent(env.student1.ID) || !snapshot.CompletedByStudent(env.student2.ID) {
		t.Errorf("snapshot mutated underfoot: CompletedBy = %v", snapshot.CompletedBy)
	}

	hws, _ = env.store.Homeworks(ctx, env.teacher)
	snapshot = hws[0]
	if _, err := env.store.ToggleHomeworkCompletion(ctx, env.student2, hw.ID); err != nil {
		t.Fatalf("Toggle(student2 back on) failed: %v", err)
	}
	if snapshot.CompletedByStudent(env.student2.ID) {
		t.Errorf("snapshot gained a completion it never had: CompletedBy = %v", snapshot.CompletedBy)
	}
}

func TestStore_MarkMessageRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	direct, err := env.store.SendMessage(ctx, env.teacher, NewMessage{ReceiverID: env.student1.ID, Content: "See me after class"})
	if err != nil {
		t.Fatalf("SendMessage() failed: %v", err)
	}
	broadcast, err := env.store.SendMessage(ctx, env.teacher, NewMessage{ReceiverID: ClassBroadcastToken("Form 1"), Content: "Test moved to Friday"})
	if err != nil {
		t.Fatalf("SendMessage(broadcast) failed: %v", err)
	}

	tests := []struct {
		name    string
		act     actor.Actor
		id      string
		wantErr error
	}{
		{name: "recipient", act: env.student1, id: direct.ID},
		{name: "broadcast member", act: env.student2, id: broadcast.ID},
		{name: "unknown id", act: env.student1, id: "ghost", wantErr: ErrNotFound},
		{name: "out of scope", act: env.outsider, id: direct.ID, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := env.store.MarkMessageRead(ctx, tt.act, tt.id); err != tt.wantErr {
				t.Errorf("MarkMessageRead() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// the sender is not the recipient
	if err := env.store.MarkMessageRead(ctx, env.teacher, direct.ID); !isValidationError(err) {
		t.Errorf("MarkMessageRead(sender) error = %v, want validation error", err)
	}

	msgs, err := env.store.Messages(ctx, env.student1)
	if err != nil {
		t.Fatalf("Messages() failed: %v", err)
	}
	for _, msg := range msgs {
		if msg.ID == direct.ID && !msg.Read {
			t.Error("message not flagged read")
		}
	}
}

func TestStore_AddMark(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	nm := NewMark{StudentID: env.student1.ID, Subject: "Math", Score: 45, TotalScore: 50, TestName: "Midterm"}

	if _, err := env.store.AddMark(ctx, env.student1, nm); !isValidationError(err) {
		t.Errorf("AddMark(student) error = %v, want validation error", err)
	}
	if _, err := env.store.AddMark(ctx, env.admin, nm); !isValidationError(err) {
		t.Errorf("AddMark(admin) error = %v, want validation error", err)
	}

	foreign := nm
	foreign.Subject = "English"
	if _, err := env.store.AddMark(ctx, env.teacher, foreign); !isValidationError(err) {
		t.Errorf("AddMark(foreign subject) error = %v, want validation error", err)
	}

	badTotal := nm
	badTotal.TotalScore = 0
	if _, err := env.store.AddMark(ctx, env.teacher, badTotal); err == nil {
		t.Error("AddMark(totalScore=0) expected an error")
	}
	tooHigh := nm
	tooHigh.Score = 60
	if _, err := env.store.AddMark(ctx, env.teacher, tooHigh); err == nil {
		t.Error("AddMark(score>totalScore) expected an error")
	}

	mk, err := env.store.AddMark(ctx, env.teacher, nm)
	if err != nil {
		t.Fatalf("AddMark() failed: %v", err)
	}
	if mk.Percent() != 90 {
		t.Errorf("Percent() = %d, want 90", mk.Percent())
	}
}

func TestStore_Marks_scoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	add := func(studentID string, score float64) {
		t.Helper()
		if _, err := env.store.AddMark(ctx, env.teacher, NewMark{
			StudentID: studentID, Subject: "Math", Score: score, TotalScore: 100, TestName: "Quiz",
		}); err != nil {
			t.Fatalf("AddMark() failed: %v", err)
		}
	}
	add(env.student1.ID, 80)
	add(env.student2.ID, 70)

	// students see only their own, whatever target they ask for
	mks, err := env.store.Marks(ctx, env.student1, env.student2.ID)
	if err != nil {
		t.Fatalf("Marks() failed: %v", err)
	}
	if len(mks) != 1 || mks[0].StudentID != env.student1.ID {
		t.Errorf("Marks(student) = %+v", mks)
	}

	// teachers can narrow to one student
	mks, err = env.store.Marks(ctx, env.teacher, env.student2.ID)
	if err != nil {
		t.Fatalf("Marks() failed: %v", err)
	}
	if len(mks) != 1 || mks[0].StudentID != env.student2.ID {
		t.Errorf("Marks(teacher, target) = %+v", mks)
	}

	// admins see everything
	mks, err = env.store.Marks(ctx, env.admin)
	if err != nil {
		t.Fatalf("Marks() failed: %v", err)
	}
	if len(mks) != 2 {
		t.Errorf("Marks(admin) returned %d marks, want 2", len(mks))
	}
}

func TestStore_SetFeePaid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fee, err := env.store.AddFeePayment(ctx, env.admin, NewFeePayment{
		StudentID: env.student1.ID, Month: "September", Amount: 150, DueDate: "2026-09-10",
	})
	if err != nil {
		t.Fatalf("AddFeePayment() failed: %v", err)
	}
	if fee.IsPaid || fee.PaidDate != "" {
		t.Errorf("new fee = %+v, want unpaid", fee)
	}

	if _, err := env.store.SetFeePaid(ctx, env.student2, fee.ID); err != ErrNotFound {
		t.Errorf("SetFeePaid(other student) error = %v, want ErrNotFound", err)
	}

	paid, err := env.store.SetFeePaid(ctx, env.student1, fee.ID)
	if err != nil {
		t.Fatalf("SetFeePaid() failed: %v", err)
	}
	if !paid.IsPaid || paid.PaidDate == "" {
		t.Errorf("SetFeePaid() = %+v, want paid with date", paid)
	}

	// paying again changes nothing
	again, err := env.store.SetFeePaid(ctx, env.student1, fee.ID)
	if err != nil {
		t.Fatalf("second SetFeePaid() failed: %v", err)
	}
	if again.PaidDate != paid.PaidDate {
		t.Errorf("second SetFeePaid() moved PaidDate: %s != %s", again.PaidDate, paid.PaidDate)
	}
}

func TestStore_Notices_scoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.store.AddNotice(ctx, env.teacher, NewNotice{Title: "Sports day", Content: "Friday", AssignedClass: "Form 1"}); err != nil {
		t.Fatalf("AddNotice() failed: %v", err)
	}
	if _, err := env.store.AddNotice(ctx, env.admin, NewNotice{Title: "Fees due", Content: "Soon", AssignedClass: "Form 2"}); err != nil {
		t.Fatalf("AddNotice() failed: %v", err)
	}

	ns, err := env.store.Notices(ctx, env.student1)
	if err != nil {
		t.Fatalf("Notices() failed: %v", err)
	}
	if len(ns) != 1 || ns[0].Title != "Sports day" {
		t.Errorf("Notices(Form 1 student) = %+v", ns)
	}

	ns, err = env.store.Notices(ctx, env.outsider)
	if err != nil {
		t.Fatalf("Notices() failed: %v", err)
	}
	if len(ns) != 1 || ns[0].Title != "Fees due" {
		t.Errorf("Notices(Form 2 student) = %+v", ns)
	}
}
