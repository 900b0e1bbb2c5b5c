package school

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

// Report synthesizer: pure aggregation of role-scoped marks and attendance
// into a section-delimited text document. The rendered text is the one true
// input for any downstream (PDF) renderer; there is no second formatting
// code path.

type (
	Report struct {
		Title    string
		Sections []Section
	}

	Section struct {
		Heading string
		Lines   []string
	}
)

// Render produces the plain-text document. Unchanged input state renders to
// byte-identical output.
func (r Report) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", len(r.Title)+4)
	b.WriteString(rule + "\n")
	b.WriteString("  " + r.Title + "\n")
	b.WriteString(rule + "\n")
	for _, sec := range r.Sections {
		b.WriteString("\n-- " + sec.Heading + " --\n")
		for _, line := range sec.Lines {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func roundPercent(frac float64) int {
	return int(math.Round(frac * 100))
}

// averagePercent is the mean of score/totalScore over all marks, as a rounded
// percentage. ok is false when there are no marks: "no marks" must render as
// N/A, never as 0% (0% implies a score was recorded).
func averagePercent(marks []Mark) (avg int, ok bool) {
	if len(marks) == 0 {
		return 0, false
	}
	var sum float64
	for _, mk := range marks {
		sum += mk.Score / mk.TotalScore
	}
	return roundPercent(sum / float64(len(marks))), true
}

// attendancePercent is presentDays/totalDays as a rounded percentage. Unlike
// marks, no records means 0%: attendance is recorded proactively, so absence
// of data is zero attendance rather than "unknown".
func attendancePercent(records []AttendanceRecord) int {
	if len(records) == 0 {
		return 0
	}
	var present int
	for _, rec := range records {
		if rec.Status == AttendancePresent {
			present++
		}
	}
	return roundPercent(float64(present) / float64(len(records)))
}

func formatAverage(marks []Mark) string {
	avg, ok := averagePercent(marks)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", avg)
}

func marksOf(studentID string, marks []Mark) []Mark {
	out := make([]Mark, 0, len(marks))
	for _, mk := range marks {
		if mk.StudentID == studentID {
			out = append(out, mk)
		}
	}
	return out
}

func attendanceOf(studentID string, records []AttendanceRecord) []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	return out
}

func buildStudentReport(student actor.Actor, marks []Mark, records []AttendanceRecord) Report {
	var present int
	for _, rec := range records {
		if rec.Status == AttendancePresent {
			present++
		}
	}
	return Report{
		Title: "Axiom School Progress Report",
		Sections: []Section{
			{
				Heading: "Student",
				Lines: []string{
					fmt.Sprintf("Name: %s (%s)", student.Name, student.ID),
					fmt.Sprintf("Class: %s", student.AssignedClass),
				},
			},
			{
				Heading: "Academic",
				Lines: []string{
					fmt.Sprintf("Average: %s", formatAverage(marks)),
					fmt.Sprintf("Tests recorded: %d", len(marks)),
				},
			},
			{
				Heading: "Attendance",
				Lines: []string{
					fmt.Sprintf("Present: %d/%d days (%d%%)", present, len(records), attendancePercent(records)),
				},
			},
		},
	}
}

// buildClassReport emits one line per student in roster order (never sorted
// by score) so successive generations over unchanged input are identical.
func buildClassReport(class string, roster []actor.Actor, marks []Mark, records []AttendanceRecord) Report {
	lines := make([]string, 0, len(roster))
	for _, st := range roster {
		lines = append(lines, fmt.Sprintf(
			"%s (%s): average %s, attendance %d%%",
			st.Name, st.ID,
			formatAverage(marksOf(st.ID, marks)),
			attendancePercent(attendanceOf(st.ID, records)),
		))
	}
	if len(lines) == 0 {
		lines = []string{"No students on roster"}
	}
	return Report{
		Title: "Axiom School Class Report",
		Sections: []Section{
			{Heading: "Class", Lines: []string{fmt.Sprintf("Class: %s", class), fmt.Sprintf("Students: %d", len(roster))}},
			{Heading: "Students", Lines: lines},
		},
	}
}

// StudentReport synthesizes one student's report from the slices visible to
// the acting actor. Students can only report on themselves; teachers on
// students of their class (marks limited to their own subject).
func (s *Store) StudentReport(ctx context.Context, act actor.Actor, targetID string) (Report, error) {
	if err := requireActor(act); err != nil {
		return Report{}, err
	}
	if targetID == "" {
		targetID = act.ID
	}
	if act.IsStudent() && targetID != act.ID {
		return Report{}, core.NewValidationError(errors.New("students can only view their own report"))
	}

	student, err := s.actors.Get(ctx, targetID)
	if err != nil {
		if errors.Cause(err) == actor.ErrNotFound {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	if act.IsTeacher() && student.AssignedClass != act.AssignedClass {
		return Report{}, ErrNotFound
	}

	marks, err := s.Marks(ctx, act, targetID)
	if err != nil {
		return Report{}, err
	}
	records, err := s.AttendanceRecords(ctx, act)
	if err != nil {
		return Report{}, err
	}
	return buildStudentReport(student, marks, attendanceOf(targetID, records)), nil
}

// ClassReport synthesizes the acting teacher's (or admin's) class summary.
func (s *Store) ClassReport(ctx context.Context, act actor.Actor) (Report, error) {
	if err := requireStaff(act); err != nil {
		return Report{}, err
	}
	roster, err := s.actors.StudentsOf(ctx, act.AssignedClass)
	if err != nil {
		return Report{}, errors.Wrap(err, "deriving class roster")
	}
	marks, err := s.Marks(ctx, act)
	if err != nil {
		return Report{}, err
	}
	records, err := s.AttendanceRecords(ctx, act)
	if err != nil {
		return Report{}, err
	}
	return buildClassReport(act.AssignedClass, roster, marks, records), nil
}
