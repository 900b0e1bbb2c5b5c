package school

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

var (
	// errors
	ErrNotFound     = errors.New("record not found")
	ErrNoActor      = errors.New("no active actor")
	errTeacherOnly  = errors.New("only teachers can perform this action")
	errStudentOnly  = errors.New("only students can perform this action")
	errStaffOnly    = errors.New("students cannot perform this action")
	errOwnSubject   = errors.New("teachers can only act on their own subject")
	errNotRecipient = errors.New("only the recipient can mark a message as read")
)

// Persisted collection keys.
const (
	keyHomeworks     = "homeworks"
	keyNotices       = "notices"
	keyEvents        = "events"
	keyMessages      = "messages"
	keyMarks         = "marks"
	keyFees          = "fees"
	keyExamSchedules = "examSchedules"
	keyAttendance    = "attendance"
	keyNotifications = "attendanceNotifications"
)

// Store is the role-scoped records store: one repository per entity kind,
// each loaded from and flushed to the durable key-value medium. Every
// operation takes the acting actor explicitly; nothing is read from ambient
// state.
type Store struct {
	actors *actor.Service
	mail   core.EmailService
	log    core.Logger

	// attendanceMu serializes the lookup-and-write pairs of the attendance
	// workflow: the per-repository locks cannot cover a check-then-act that
	// spans two calls.
	attendanceMu sync.Mutex

	homeworks     *repository[Homework]
	notices       *repository[Notice]
	events        *repository[Event]
	messages      *repository[Message]
	marks         *repository[Mark]
	fees          *repository[FeePayment]
	examSchedules *repository[ExamSchedule]
	attendance    *repository[AttendanceRecord]
	notifications *repository[AttendanceNotification]
}

func NewStore(ctx context.Context, kv core.KeyValueStore, actors *actor.Service, mail core.EmailService, log core.Logger) *Store {
	return &Store{
		actors:        actors,
		mail:          mail,
		log:           log,
		homeworks:     openRepository[Homework](ctx, kv, log, keyHomeworks),
		notices:       openRepository[Notice](ctx, kv, log, keyNotices),
		events:        openRepository[Event](ctx, kv, log, keyEvents),
		messages:      openRepository[Message](ctx, kv, log, keyMessages),
		marks:         openRepository[Mark](ctx, kv, log, keyMarks),
		fees:          openRepository[FeePayment](ctx, kv, log, keyFees),
		examSchedules: openRepository[ExamSchedule](ctx, kv, log, keyExamSchedules),
		attendance:    openRepository[AttendanceRecord](ctx, kv, log, keyAttendance),
		notifications: openRepository[AttendanceNotification](ctx, kv, log, keyNotifications),
	}
}

// newMeta assigns identity and audit metadata for a fresh entity.
func (s *Store) newMeta(act actor.Actor) Meta {
	return Meta{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		CreatedBy:   act.ID,
		CreatorName: act.Name,
	}
}

func requireActor(act actor.Actor) error {
	if act.IsZero() {
		return core.NewValidationError(ErrNoActor)
	}
	return nil
}

func requireTeacher(act actor.Actor) error {
	if err := requireActor(act); err != nil {
		return err
	}
	if !act.IsTeacher() {
		return core.NewValidationError(errTeacherOnly)
	}
	return nil
}

func requireStudent(act actor.Actor) error {
	if err := requireActor(act); err != nil {
		return err
	}
	if !act.IsStudent() {
		return core.NewValidationError(errStudentOnly)
	}
	return nil
}

func requireStaff(act actor.Actor) error {
	if err := requireActor(act); err != nil {
		return err
	}
	if act.IsStudent() {
		return core.NewValidationError(errStaffOnly)
	}
	return nil
}

// classStudentIDs derives the roster ids for the actor's class. Only needed
// for teacher-scoped filters.
func (s *Store) classStudentIDs(ctx context.Context, act actor.Actor) ([]string, error) {
	if !act.IsTeacher() {
		return nil, nil
	}
	students, err := s.actors.StudentsOf(ctx, act.AssignedClass)
	if err != nil {
		return nil, errors.Wrap(err, "deriving class roster")
	}
	ids := make([]string, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	return ids, nil
}

// Homework

func (s *Store) AddHomework(ctx context.Context, act actor.Actor, nh NewHomework) (Homework, error) {
	if err := requireStaff(act); err != nil {
		return Homework{}, err
	}
	if err := nh.Validate(); err != nil {
		return Homework{}, err
	}
	if act.IsTeacher() && nh.Subject != act.AssignedSubject {
		return Homework{}, core.NewValidationError(errOwnSubject, core.FieldError{Field: "subject", Error: errOwnSubject.Error()})
	}

	hw := Homework{
		Meta:          s.newMeta(act),
		Title:         nh.Title,
		Description:   nh.Description,
		Subject:       nh.Subject,
		AssignedClass: nh.AssignedClass,
		DueDate:       nh.DueDate,
		CompletedBy:   []string{},
	}
	if err := s.homeworks.add(ctx, hw); err != nil {
		return Homework{}, err
	}
	return hw, nil
}

func (s *Store) DeleteHomework(ctx context.Context, act actor.Actor, id string) error {
	if err := requireActor(act); err != nil {
		return err
	}
	return s.homeworks.delete(ctx, id)
}

// ToggleHomeworkCompletion flips the acting student's completion flag on the
// homework: marking twice returns it to "not completed".
func (s *Store) ToggleHomeworkCompletion(ctx context.Context, act actor.Actor, id string) (Homework, error) {
	if err := requireStudent(act); err != nil {
		return Homework{}, err
	}
	if hw, ok := s.homeworks.find(id); !ok || hw.AssignedClass != act.AssignedClass {
		return Homework{}, ErrNotFound
	}
	var toggled Homework
	found, err := s.homeworks.update(ctx, id, func(hw *Homework) {
		// Rebuild into a fresh slice either way: copies handed out by
		// Homeworks() share the old backing array and must not change.
		done := make([]string, 0, len(hw.CompletedBy)+1)
		for _, sid := range hw.CompletedBy {
			if sid != act.ID {
				done = append(done, sid)
			}
		}
		if !hw.CompletedByStudent(act.ID) {
			done = append(done, act.ID)
		}
		hw.CompletedBy = done
		toggled = *hw
	})
	if err != nil {
		return Homework{}, err
	}
	if !found {
		return Homework{}, ErrNotFound
	}
	return toggled, nil
}

func (s *Store) Homeworks(ctx context.Context, act actor.Actor) ([]Homework, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	return scopeHomeworks(act, s.homeworks.all()), nil
}

// Notices

func (s *Store) AddNotice(ctx context.Context, act actor.Actor, nn NewNotice) (Notice, error) {
	if err := requireStaff(act); err != nil {
		return Notice{}, err
	}
	if err := nn.Validate(); err != nil {
		return Notice{}, err
	}
	n := Notice{
		Meta:          s.newMeta(act),
		Title:         nn.Title,
		Content:       nn.Content,
		AssignedClass: nn.AssignedClass,
	}
	if err := s.notices.add(ctx, n); err != nil {
		return Notice{}, err
	}
	return n, nil
}

func (s *Store) DeleteNotice(ctx context.Context, act actor.Actor, id string) error {
	if err := requireActor(act); err != nil {
		return err
	}
	return s.notices.delete(ctx, id)
}

func (s *Store) Notices(ctx context.Context, act actor.Actor) ([]Notice, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	return scopeNotices(act, s.notices.all()), nil
}

// Events

func (s *Store) AddEvent(ctx context.Context, act actor.Actor, ne NewEvent) (Event, error) {
	if err := requireStaff(act); err != nil {
		return Event{}, err
	}
	if err := ne.Validate(); err != nil {
		return Event{}, err
	}
	ev := Event{
		Meta:          s.newMeta(act),
		Title:         ne.Title,
		Description:   ne.Description,
		Location:      ne.Location,
		Date:          ne.Date,
		Time:          ne.Time,
		AssignedClass: ne.AssignedClass,
	}
	if err := s.events.add(ctx, ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

func (s *Store) DeleteEvent(ctx context.Context, act actor.Actor, id string) error {
	if err := requireActor(act); err != nil {
		return err
	}
	return s.events.delete(ctx, id)
}

func (s *Store) Events(ctx context.Context, act actor.Actor) ([]Event, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	return scopeEvents(act, s.events.all()), nil
}

// Messages

func (s *Store) SendMessage(ctx context.Context, act actor.Actor, nm NewMessage) (Message, error) {
	if err := requireActor(act); err != nil {
		return Message{}, err
	}
	if err := nm.Validate(); err != nil {
		return Message{}, err
	}
	msg := Message{
		Meta:       s.newMeta(act),
		SenderID:   act.ID,
		ReceiverID: nm.ReceiverID,
		Content:    nm.Content,
	}
	if err := s.messages.add(ctx, msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// MarkMessageRead flags a message read by its recipient. Senders cannot mark
// their own messages; a message outside the actor's scope reads as absent.
func (s *Store) MarkMessageRead(ctx context.Context, act actor.Actor, id string) error {
	if err := requireActor(act); err != nil {
		return err
	}
	msg, ok := s.messages.find(id)
	if !ok {
		return ErrNotFound
	}
	if msg.ReceiverID != act.ID && msg.ReceiverID != ClassBroadcastToken(act.AssignedClass) {
		if msg.SenderID == act.ID {
			return core.NewValidationError(errNotRecipient)
		}
		return ErrNotFound
	}
	_, err := s.messages.update(ctx, id, func(m *Message) { m.Read = true })
	return err
}

func (s *Store) Messages(ctx context.Context, act actor.Actor) ([]Message, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	return scopeMessages(act, s.messages.all()), nil
}

// Marks

func (s *Store) AddMark(ctx context.Context, act actor.Actor, nm NewMark) (Mark, error) {
	if err := requireTeacher(act); err != nil {
		return Mark{}, err
	}
	if err := nm.Validate(); err != nil {
		return Mark{}, err
	}
	if nm.Subject != act.AssignedSubject {
		return Mark{}, core.NewValidationError(errOwnSubject, core.FieldError{Field: "subject", Error: errOwnSubject.Error()})
	}
	mk := Mark{
		Meta:       s.newMeta(act),
		StudentID:  nm.StudentID,
		Subject:    nm.Subject,
		Score:      nm.Score,
		TotalScore: nm.TotalScore,
		TestName:   nm.TestName,
	}
	if err := s.marks.add(ctx, mk); err != nil {
		return Mark{}, err
	}
	return mk, nil
}

// Marks returns the actor's visible marks. A teacher may pass a target
// student id to narrow the slice for reporting; students always get their own.
func (s *Store) Marks(ctx context.Context, act actor.Actor, targetID ...string) ([]Mark, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	var target string
	if len(targetID) > 0 {
		target = targetID[0]
	}
	roster, err := s.classStudentIDs(ctx, act)
	if err != nil {
		return nil, err
	}
	return scopeMarks(act, s.marks.all(), roster, target), nil
}

// Fees

func (s *Store) AddFeePayment(ctx context.Context, act actor.Actor, nf NewFeePayment) (FeePayment, error) {
	if err := requireStaff(act); err != nil {
		return FeePayment{}, err
	}
	if err := nf.Validate(); err != nil {
		return FeePayment{}, err
	}
	fee := FeePayment{
		Meta:      s.newMeta(act),
		StudentID: nf.StudentID,
		Month:     nf.Month,
		Amount:    nf.Amount,
		DueDate:   nf.DueDate,
	}
	if err := s.fees.add(ctx, fee); err != nil {
		return FeePayment{}, err
	}
	return fee, nil
}

// SetFeePaid marks a fee paid and stamps the payment date. Paying an already
// paid fee is a no-op. Students may only pay their own fees.
func (s *Store) SetFeePaid(ctx context.Context, act actor.Actor, id string) (FeePayment, error) {
	if err := requireActor(act); err != nil {
		return FeePayment{}, err
	}
	fee, ok := s.fees.find(id)
	if !ok {
		return FeePayment{}, ErrNotFound
	}
	if act.IsStudent() && fee.StudentID != act.ID {
		return FeePayment{}, ErrNotFound
	}
	if fee.IsPaid {
		return fee, nil
	}
	var paid FeePayment
	if _, err := s.fees.update(ctx, id, func(f *FeePayment) {
		f.IsPaid = true
		f.PaidDate = time.Now().UTC().Format(core.DateLayout)
		paid = *f
	}); err != nil {
		return FeePayment{}, err
	}
	return paid, nil
}

func (s *Store) Fees(ctx context.Context, act actor.Actor) ([]FeePayment, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	roster, err := s.classStudentIDs(ctx, act)
	if err != nil {
		return nil, err
	}
	return scopeFees(act, s.fees.all(), roster), nil
}

// Exam schedules

func (s *Store) AddExamSchedule(ctx context.Context, act actor.Actor, ne NewExamSchedule) (ExamSchedule, error) {
	if err := requireStaff(act); err != nil {
		return ExamSchedule{}, err
	}
	if err := ne.Validate(); err != nil {
		return ExamSchedule{}, err
	}
	ex := ExamSchedule{
		Meta:          s.newMeta(act),
		Subject:       ne.Subject,
		Date:          ne.Date,
		Time:          ne.Time,
		Duration:      ne.Duration,
		AssignedClass: ne.AssignedClass,
	}
	if err := s.examSchedules.add(ctx, ex); err != nil {
		return ExamSchedule{}, err
	}
	return ex, nil
}

func (s *Store) DeleteExamSchedule(ctx context.Context, act actor.Actor, id string) error {
	if err := requireActor(act); err != nil {
		return err
	}
	return s.examSchedules.delete(ctx, id)
}

func (s *Store) ExamSchedules(ctx context.Context, act actor.Actor) ([]ExamSchedule, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	return scopeExamSchedules(act, s.examSchedules.all()), nil
}
