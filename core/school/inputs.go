package school

import (
	"github.com/Axioms-Product/axiom-school-sub000/core"
)

// NewHomework contains information needed to assign homework.
type NewHomework struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Subject       string `json:"subject" validate:"required"`
	AssignedClass string `json:"assignedClass" validate:"required"`
	DueDate       string `json:"dueDate" validate:"required,dateonly"`
}

func (nh *NewHomework) Validate() error {
	nh.Title = core.CleanString(nh.Title)
	nh.Description = core.CleanString(nh.Description)
	nh.Subject = core.CleanString(nh.Subject)
	nh.AssignedClass = core.CleanString(nh.AssignedClass)
	return core.Validate.Struct(nh)
}

type NewNotice struct {
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	AssignedClass string `json:"assignedClass" validate:"required"`
}

func (nn *NewNotice) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Content = core.CleanString(nn.Content)
	nn.AssignedClass = core.CleanString(nn.AssignedClass)
	return core.Validate.Struct(nn)
}

type NewEvent struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Date          string `json:"date" validate:"required,dateonly"`
	Time          string `json:"time"`
	AssignedClass string `json:"assignedClass" validate:"required"`
}

func (ne *NewEvent) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Description = core.CleanString(ne.Description)
	ne.Location = core.CleanString(ne.Location)
	ne.AssignedClass = core.CleanString(ne.AssignedClass)
	return core.Validate.Struct(ne)
}

// NewMessage is a direct or class-broadcast message. ReceiverID is either an
// actor id or a class-broadcast token (see ClassBroadcastToken).
type NewMessage struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

func (nm *NewMessage) Validate() error {
	nm.ReceiverID = core.CleanString(nm.ReceiverID)
	nm.Content = core.CleanString(nm.Content)
	return core.Validate.Struct(nm)
}

// NewMark records a test result. The ltefield/gt tags encode the
// score <= totalScore and totalScore > 0 invariants.
type NewMark struct {
	StudentID  string  `json:"studentId" validate:"required"`
	Subject    string  `json:"subject" validate:"required"`
	Score      float64 `json:"score" validate:"min=0,ltefield=TotalScore"`
	TotalScore float64 `json:"totalScore" validate:"required,gt=0"`
	TestName   string  `json:"testName" validate:"required"`
}

func (nm *NewMark) Validate() error {
	nm.StudentID = core.CleanString(nm.StudentID)
	nm.Subject = core.CleanString(nm.Subject)
	nm.TestName = core.CleanString(nm.TestName)
	return core.Validate.Struct(nm)
}

type NewFeePayment struct {
	StudentID string  `json:"studentId" validate:"required"`
	Month     string  `json:"month" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	DueDate   string  `json:"dueDate" validate:"required,dateonly"`
}

func (nf *NewFeePayment) Validate() error {
	nf.StudentID = core.CleanString(nf.StudentID)
	nf.Month = core.CleanString(nf.Month)
	return core.Validate.Struct(nf)
}

type NewExamSchedule struct {
	Subject       string `json:"subject" validate:"required"`
	Date          string `json:"date" validate:"required,dateonly"`
	Time          string `json:"time" validate:"required"`
	Duration      string `json:"duration"`
	AssignedClass string `json:"assignedClass" validate:"required"`
}

func (ne *NewExamSchedule) Validate() error {
	ne.Subject = core.CleanString(ne.Subject)
	ne.Duration = core.CleanString(ne.Duration)
	ne.AssignedClass = core.CleanString(ne.AssignedClass)
	return core.Validate.Struct(ne)
}

// AttendanceSheet is a teacher's bulk attendance marking for one date.
type AttendanceSheet struct {
	Date       string           `json:"date" validate:"required,dateonly"`
	Status     AttendanceStatus `json:"status" validate:"required,oneof=present absent late"`
	StudentIDs []string         `json:"studentIds" validate:"required,min=1,dive,required"`
}

func (as *AttendanceSheet) Validate() error {
	as.Date = core.CleanString(as.Date)
	return core.Validate.Struct(as)
}
