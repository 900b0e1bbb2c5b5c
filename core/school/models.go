package school

import (
	"time"
)

// Meta carries the audit attributes every entity is stamped with at creation.
// CreatorName is denormalized on purpose: renaming an actor must not
// retroactively change historical entries.
type Meta struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatorName string    `json:"creatorName,omitempty"`
}

func (m Meta) EntityID() string { return m.ID }

type Homework struct {
	Meta
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Subject       string   `json:"subject"`
	AssignedClass string   `json:"assignedClass"`
	DueDate       string   `json:"dueDate"`
	CompletedBy   []string `json:"completedBy"`
}

// CompletedByStudent reports whether the given student marked this homework done.
func (hw Homework) CompletedByStudent(studentID string) bool {
	for _, id := range hw.CompletedBy {
		if id == studentID {
			return true
		}
	}
	return false
}

type Notice struct {
	Meta
	Title         string `json:"title"`
	Content       string `json:"content"`
	AssignedClass string `json:"assignedClass"`
}

type Event struct {
	Meta
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	AssignedClass string `json:"assignedClass"`
}

type Message struct {
	Meta
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"` // an actor id, or a class-broadcast token
	Content    string `json:"content"`
	Read       bool   `json:"read"`
}

type Mark struct {
	Meta
	StudentID  string  `json:"studentId"`
	Subject    string  `json:"subject"`
	Score      float64 `json:"score"`
	TotalScore float64 `json:"totalScore"`
	TestName   string  `json:"testName"`
}

// Percent is this mark's score as a percentage, rounded to the nearest integer.
func (m Mark) Percent() int {
	return roundPercent(m.Score / m.TotalScore)
}

type FeePayment struct {
	Meta
	StudentID string  `json:"studentId"`
	Month     string  `json:"month"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"dueDate"`
	IsPaid    bool    `json:"isPaid"`
	PaidDate  string  `json:"paidDate,omitempty"` // set iff IsPaid
}

type ExamSchedule struct {
	Meta
	Subject       string `json:"subject"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Duration      string `json:"duration"`
	AssignedClass string `json:"assignedClass"`
}

// AttendanceStatus is the closed set of statuses a teacher can mark.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// AttendanceResponse is the closed set of student responses.
type AttendanceResponse string

const (
	ResponseConfirmed AttendanceResponse = "confirmed"
	ResponseDisputed  AttendanceResponse = "disputed"
)

func (r AttendanceResponse) Valid() bool {
	switch r {
	case ResponseConfirmed, ResponseDisputed:
		return true
	}
	return false
}

// AttendanceRecord holds at most one entry per (StudentID, Date).
// StudentResponse is only ever set once Responded is true.
type AttendanceRecord struct {
	Meta
	StudentID       string             `json:"studentId"`
	Date            string             `json:"date"`
	Status          AttendanceStatus   `json:"status"`
	Responded       bool               `json:"responded"`
	StudentResponse AttendanceResponse `json:"studentResponse,omitempty"`
}

// AttendanceNotification is created per mark-attendance batch entry and is
// immutable except for Responded.
type AttendanceNotification struct {
	Meta
	StudentID   string           `json:"studentId"`
	TeacherID   string           `json:"teacherId"`
	TeacherName string           `json:"teacherName"`
	Status      AttendanceStatus `json:"status"`
	Responded   bool             `json:"responded"`
}

// ClassBroadcastToken is the receiver id meaning "all actors assigned to the
// given class", used by class-wide messages.
func ClassBroadcastToken(class string) string {
	return "class:" + class
}
