package school

import (
	"sort"

	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

// Role scope filters: pure, stateless functions deciding what slice of a full
// collection a given actor may see. Repositories never filter; these do.

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// scopeHomeworks keeps homework of the actor's class; teachers additionally
// only see homework for their own subject. Admins are unrestricted.
func scopeHomeworks(act actor.Actor, items []Homework) []Homework {
	out := make([]Homework, 0, len(items))
	for _, hw := range items {
		if !act.IsAdmin() && hw.AssignedClass != act.AssignedClass {
			continue
		}
		if act.IsTeacher() && hw.Subject != act.AssignedSubject {
			continue
		}
		out = append(out, hw)
	}
	return out
}

func scopeNotices(act actor.Actor, items []Notice) []Notice {
	out := make([]Notice, 0, len(items))
	for _, n := range items {
		if act.IsAdmin() || n.AssignedClass == act.AssignedClass {
			out = append(out, n)
		}
	}
	return out
}

func scopeEvents(act actor.Actor, items []Event) []Event {
	out := make([]Event, 0, len(items))
	for _, ev := range items {
		if act.IsAdmin() || ev.AssignedClass == act.AssignedClass {
			out = append(out, ev)
		}
	}
	return out
}

func scopeExamSchedules(act actor.Actor, items []ExamSchedule) []ExamSchedule {
	out := make([]ExamSchedule, 0, len(items))
	for _, ex := range items {
		if act.IsAdmin() || ex.AssignedClass == act.AssignedClass {
			out = append(out, ex)
		}
	}
	return out
}

// scopeMessages keeps messages broadcast to the actor's class, sent by the
// actor, or addressed to the actor. Messages are the one collection with a
// non-insertion display order: most recent first.
func scopeMessages(act actor.Actor, items []Message) []Message {
	broadcast := ClassBroadcastToken(act.AssignedClass)
	out := make([]Message, 0, len(items))
	for _, msg := range items {
		if msg.ReceiverID == broadcast || msg.SenderID == act.ID || msg.ReceiverID == act.ID {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// scopeMarks: teachers see marks matching their own subject for students of
// their class (optionally narrowed to one student for reporting); students
// see only their own; admins see everything (optionally narrowed).
func scopeMarks(act actor.Actor, items []Mark, classStudents []string, targetID string) []Mark {
	out := make([]Mark, 0, len(items))
	for _, mk := range items {
		switch {
		case act.IsTeacher():
			if mk.Subject != act.AssignedSubject || !containsID(classStudents, mk.StudentID) {
				continue
			}
			if targetID != "" && mk.StudentID != targetID {
				continue
			}
		case act.IsStudent():
			if mk.StudentID != act.ID {
				continue
			}
		default: // admin
			if targetID != "" && mk.StudentID != targetID {
				continue
			}
		}
		out = append(out, mk)
	}
	return out
}

func scopeFees(act actor.Actor, items []FeePayment, classStudents []string) []FeePayment {
	out := make([]FeePayment, 0, len(items))
	for _, fee := range items {
		switch {
		case act.IsStudent():
			if fee.StudentID != act.ID {
				continue
			}
		case act.IsTeacher():
			if !containsID(classStudents, fee.StudentID) {
				continue
			}
		}
		out = append(out, fee)
	}
	return out
}

func scopeAttendance(act actor.Actor, items []AttendanceRecord, classStudents []string) []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(items))
	for _, rec := range items {
		switch {
		case act.IsStudent():
			if rec.StudentID != act.ID {
				continue
			}
		case act.IsTeacher():
			if !containsID(classStudents, rec.StudentID) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// scopeNotifications: students see their own, teachers the ones they raised.
func scopeNotifications(act actor.Actor, items []AttendanceNotification) []AttendanceNotification {
	out := make([]AttendanceNotification, 0, len(items))
	for _, n := range items {
		switch {
		case act.IsStudent():
			if n.StudentID != act.ID {
				continue
			}
		case act.IsTeacher():
			if n.TeacherID != act.ID {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
