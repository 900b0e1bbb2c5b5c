package school

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

// Attendance confirmation workflow. Per (studentId, date) the states are
// Unmarked -> Marked -> Notified -> Confirmed | Disputed. Creating the
// notification IS the transition into Notified; the presentation layer
// delivers it by reading the student's unresponded notifications.

// MarkAttendance records attendance for a set of students on one date.
// Re-marking the same (student, date) before a response overwrites the prior
// status (last write wins) instead of creating a duplicate record; each batch
// entry always raises a fresh notification. A courtesy email is dispatched to
// each student; delivery is best-effort and never part of the transition.
func (s *Store) MarkAttendance(ctx context.Context, act actor.Actor, sheet AttendanceSheet) ([]AttendanceRecord, error) {
	if err := requireTeacher(act); err != nil {
		return nil, err
	}
	if err := sheet.Validate(); err != nil {
		return nil, err
	}

	records := make([]AttendanceRecord, 0, len(sheet.StudentIDs))
	emails := make([]*core.EmailMessage, 0, len(sheet.StudentIDs))
	for _, sid := range sheet.StudentIDs {
		rec, err := s.upsertAttendance(ctx, act, sid, sheet.Date, sheet.Status)
		if err != nil {
			return records, err
		}
		records = append(records, rec)

		n := AttendanceNotification{
			Meta:        s.newMeta(act),
			StudentID:   sid,
			TeacherID:   act.ID,
			TeacherName: act.Name,
			Status:      sheet.Status,
		}
		if err := s.notifications.add(ctx, n); err != nil {
			return records, err
		}

		if msg := s.attendanceEmail(ctx, act, sid, sheet.Date, sheet.Status); msg != nil {
			emails = append(emails, msg)
		}
	}
	if len(emails) > 0 && s.mail != nil {
		s.mail.SendMessages(emails...)
	}
	return records, nil
}

// upsertAttendance creates or overwrites the record keyed by (studentID, date).
// This is the one place mutation-on-conflict, not append-only, is required:
// it keeps the at-most-one-record-per-(student, date) invariant. The store
// mutex keeps the lookup and the write atomic against concurrent marks.
func (s *Store) upsertAttendance(ctx context.Context, act actor.Actor, studentID, date string, status AttendanceStatus) (AttendanceRecord, error) {
	s.attendanceMu.Lock()
	defer s.attendanceMu.Unlock()

	var existingID string
	for _, rec := range s.attendance.all() {
		if rec.StudentID == studentID && rec.Date == date {
			existingID = rec.ID
			break
		}
	}

	if existingID != "" {
		var updated AttendanceRecord
		_, err := s.attendance.update(ctx, existingID, func(rec *AttendanceRecord) {
			rec.Timestamp = time.Now().UTC()
			rec.CreatedBy = act.ID
			rec.CreatorName = act.Name
			rec.Status = status
			rec.Responded = false
			rec.StudentResponse = ""
			updated = *rec
		})
		return updated, err
	}

	rec := AttendanceRecord{
		Meta:      s.newMeta(act),
		StudentID: studentID,
		Date:      date,
		Status:    status,
	}
	if err := s.attendance.add(ctx, rec); err != nil {
		return AttendanceRecord{}, err
	}
	return rec, nil
}

// RespondAttendance lets a student confirm or dispute a notification. The
// notification and the student's attendance record created on the current
// calendar day are both stamped. The first response is terminal: responding
// again, with the same value or a different one, changes nothing. An unknown
// (or foreign) notification id is a no-op.
func (s *Store) RespondAttendance(ctx context.Context, act actor.Actor, notificationID string, response AttendanceResponse) error {
	if err := requireStudent(act); err != nil {
		return err
	}
	if !response.Valid() {
		return core.NewValidationError(
			errors.New("invalid attendance response"),
			core.FieldError{Field: "response", Error: "must be confirmed or disputed"},
		)
	}

	s.attendanceMu.Lock()
	defer s.attendanceMu.Unlock()

	n, ok := s.notifications.find(notificationID)
	if !ok || n.StudentID != act.ID {
		return nil // lookup miss: idempotent no-op
	}
	if n.Responded {
		return nil // terminal state: a repeat response never rewrites it
	}

	if _, err := s.notifications.update(ctx, notificationID, func(n *AttendanceNotification) {
		n.Responded = true
	}); err != nil {
		return err
	}

	today := time.Now().UTC().Format(core.DateLayout)
	for _, rec := range s.attendance.all() {
		if rec.StudentID != act.ID || rec.Timestamp.UTC().Format(core.DateLayout) != today {
			continue
		}
		if _, err := s.attendance.update(ctx, rec.ID, func(r *AttendanceRecord) {
			if r.Responded {
				return // already in a terminal state from an earlier notification
			}
			r.Responded = true
			r.StudentResponse = response
		}); err != nil {
			return err
		}
	}
	return nil
}

// AttendanceRecords returns the attendance slice visible to the actor.
func (s *Store) AttendanceRecords(ctx context.Context, act actor.Actor) ([]AttendanceRecord, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	roster, err := s.classStudentIDs(ctx, act)
	if err != nil {
		return nil, err
	}
	return scopeAttendance(act, s.attendance.all(), roster), nil
}

// AttendanceNotifications returns the notifications visible to the actor.
func (s *Store) AttendanceNotifications(ctx context.Context, act actor.Actor) ([]AttendanceNotification, error) {
	if err := requireActor(act); err != nil {
		return nil, err
	}
	return scopeNotifications(act, s.notifications.all()), nil
}

// attendanceEmail builds the courtesy note for one student, or nil when the
// student has no email on file.
func (s *Store) attendanceEmail(ctx context.Context, teacher actor.Actor, studentID, date string, status AttendanceStatus) *core.EmailMessage {
	student, err := s.actors.Get(ctx, studentID)
	if err != nil || student.Email == "" {
		return nil
	}
	return &core.EmailMessage{
		To:      []mail.Address{{Name: student.Name, Address: student.Email}},
		Subject: fmt.Sprintf("Attendance recorded for %s", date),
		Body: fmt.Sprintf(
			"Hi %s,\n\n%s marked you %q on %s. Please confirm or dispute this in the app.\n",
			student.Name, teacher.Name, status, date,
		),
	}
}
