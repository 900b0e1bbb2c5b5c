package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	. "github.com/Axioms-Product/axiom-school-sub000/apps/api/echo"
	"github.com/Axioms-Product/axiom-school-sub000/core/school"
)

func Test_schoolApi_homeworks(t *testing.T) {
	teacherToken := getToken(t, teacher)
	studentToken := getToken(t, student1)

	nh := school.NewHomework{Title: "Fractions", Subject: "Math", AssignedClass: "Form 1", DueDate: "2026-09-01"}

	// create
	var hw school.Homework
	t.Run("create", func(t *testing.T) {
		body := checkCase(t, httpTest{
			method: http.MethodPost, path: "/v1/school/homeworks",
			body: marshalObj(t, nh), token: teacherToken, wantCode: http.StatusCreated,
		})
		if err := json.Unmarshal(body, &hw); err != nil || hw.ID == "" {
			t.Fatalf("create response = %s, err %v", body, err)
		}
	})

	tests := []httpTest{
		{name: "auth required", path: "/v1/school/homeworks", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "students cannot create", method: http.MethodPost, path: "/v1/school/homeworks",
			body: marshalObj(t, nh), token: studentToken,
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "students cannot perform this action"}),
		},
		{
			name: "foreign subject rejected", method: http.MethodPost, path: "/v1/school/homeworks",
			body:     marshalObj(t, school.NewHomework{Title: "Essay", Subject: "English", AssignedClass: "Form 1", DueDate: "2026-09-01"}),
			token:    teacherToken,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"subject": "teachers can only act on their own subject"}),
		},
		{
			name: "toggle unknown id", method: http.MethodPost, path: "/v1/school/homeworks/ghost/toggle",
			token: studentToken, wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCase(t, tt)
		})
	}

	t.Run("student toggles completion", func(t *testing.T) {
		body := checkCase(t, httpTest{
			method: http.MethodPost, path: "/v1/school/homeworks/" + hw.ID + "/toggle", token: studentToken,
		})
		var toggled school.Homework
		if err := json.Unmarshal(body, &toggled); err != nil || !toggled.CompletedByStudent(student1.ID) {
			t.Errorf("toggle response = %s, err %v", body, err)
		}
	})

	t.Run("list is scoped", func(t *testing.T) {
		body := checkCase(t, httpTest{path: "/v1/school/homeworks", token: studentToken})
		var hws []school.Homework
		if err := json.Unmarshal(body, &hws); err != nil || len(hws) != 1 || hws[0].ID != hw.ID {
			t.Errorf("list response = %s, err %v", body, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		checkCase(t, httpTest{
			method: http.MethodDelete, path: "/v1/school/homeworks/" + hw.ID,
			token: teacherToken, wantCode: http.StatusNoContent,
		})
	})
}

func Test_schoolApi_attendanceFlow(t *testing.T) {
	teacherToken := getToken(t, teacher)
	s1Token := getToken(t, student1)
	s2Token := getToken(t, student2)

	t.Run("students cannot mark", func(t *testing.T) {
		checkCase(t, httpTest{
			method: http.MethodPost, path: "/v1/school/attendance",
			body: marshalObj(t, school.AttendanceSheet{
				Date: "2026-08-28", Status: school.AttendanceAbsent, StudentIDs: []string{student1.ID},
			}),
			token:    s1Token,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "only teachers can perform this action"}),
		})
	})

	t.Run("teacher marks the class", func(t *testing.T) {
		body := checkCase(t, httpTest{
			method: http.MethodPost, path: "/v1/school/attendance",
			body: marshalObj(t, school.AttendanceSheet{
				Date: "2026-08-28", Status: school.AttendanceAbsent, StudentIDs: []string{student1.ID, student2.ID},
			}),
			token: teacherToken, wantCode: http.StatusCreated,
		})
		var recs []school.AttendanceRecord
		if err := json.Unmarshal(body, &recs); err != nil || len(recs) != 2 {
			t.Fatalf("mark response = %s, err %v", body, err)
		}
	})

	var notificationID string
	t.Run("student sees the notification", func(t *testing.T) {
		body := checkCase(t, httpTest{path: "/v1/school/attendance/notifications", token: s1Token})
		var ns []school.AttendanceNotification
		if err := json.Unmarshal(body, &ns); err != nil || len(ns) != 1 {
			t.Fatalf("notifications = %s, err %v", body, err)
		}
		if ns[0].StudentID != student1.ID || ns[0].TeacherName != teacher.Name || ns[0].Responded {
			t.Errorf("notification = %+v", ns[0])
		}
		notificationID = ns[0].ID
	})

	t.Run("student disputes", func(t *testing.T) {
		checkCase(t, httpTest{
			method: http.MethodPost, path: "/v1/school/attendance/notifications/" + notificationID + "/respond",
			body: marshalObj(t, RespondRequest{Response: "disputed"}), token: s1Token,
			wantData: marshalObj(t, SuccessResponse{Success: "response recorded"}),
		})
	})

	t.Run("invalid response rejected", func(t *testing.T) {
		checkCase(t, httpTest{
			method: http.MethodPost, path: "/v1/school/attendance/notifications/" + notificationID + "/respond",
			body: marshalObj(t, RespondRequest{Response: "maybe"}), token: s1Token,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"response": "response must be one of [confirmed disputed]"}),
		})
	})

	t.Run("record reflects the dispute", func(t *testing.T) {
		body := checkCase(t, httpTest{path: "/v1/school/attendance", token: s1Token})
		var recs []school.AttendanceRecord
		if err := json.Unmarshal(body, &recs); err != nil || len(recs) != 1 {
			t.Fatalf("records = %s, err %v", body, err)
		}
		if !recs[0].Responded || recs[0].StudentResponse != school.ResponseDisputed {
			t.Errorf("record = %+v", recs[0])
		}
	})

	t.Run("classmate stays unresponded", func(t *testing.T) {
		body := checkCase(t, httpTest{path: "/v1/school/attendance", token: s2Token})
		var recs []school.AttendanceRecord
		if err := json.Unmarshal(body, &recs); err != nil || len(recs) != 1 {
			t.Fatalf("records = %s, err %v", body, err)
		}
		if recs[0].Responded || recs[0].StudentResponse != "" {
			t.Errorf("record = %+v", recs[0])
		}
	})
}

func Test_schoolApi_reports(t *testing.T) {
	teacherToken := getToken(t, teacher)
	s1Token := getToken(t, student1)

	checkCase(t, httpTest{
		method: http.MethodPost, path: "/v1/school/marks",
		body: marshalObj(t, school.NewMark{
			StudentID: student1.ID, Subject: "Math", Score: 45, TotalScore: 50, TestName: "Midterm",
		}),
		token: teacherToken, wantCode: http.StatusCreated,
	})

	t.Run("student report is plain text", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/school/reports/student/"+student1.ID, teacherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("Content-Type = %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "Average: 90%") {
			t.Errorf("report body:\n%s", rec.Body.String())
		}
	})

	t.Run("students cannot report on others", func(t *testing.T) {
		checkCase(t, httpTest{
			path: "/v1/school/reports/student/" + student2.ID, token: s1Token,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "students can only view their own report"}),
		})
	})

	t.Run("class report", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/school/reports/class", teacherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Awe (") {
			t.Errorf("class report body:\n%s", rec.Body.String())
		}
	})
}
