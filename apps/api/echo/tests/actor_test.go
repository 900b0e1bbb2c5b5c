package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/Axioms-Product/axiom-school-sub000/apps/api/echo"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

func Test_actorApi_login(t *testing.T) {
	tests := []httpTest{
		{
			name: "empty credentials", method: http.MethodPost, path: "/v1/actors/login",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"username": "this field is required", "secret": "this field is required"}),
		},
		{
			name: "bad credentials", method: http.MethodPost, path: "/v1/actors/login",
			body:     marshalObj(t, LoginRequest{Username: "teach", Secret: "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "unknown username", method: http.MethodPost, path: "/v1/actors/login",
			body:     marshalObj(t, LoginRequest{Username: "ghost", Secret: "secret"}),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "ok", method: http.MethodPost, path: "/v1/actors/login",
			body: marshalObj(t, LoginRequest{Username: "teach", Secret: "secret"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := checkCase(t, tt)
			if tt.name == "ok" {
				var resp LoginResponse
				if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
					t.Errorf("login response = %s, err %v", body, err)
				}
			}
		})
	}
}

func Test_actorApi_me(t *testing.T) {
	tests := []httpTest{
		{name: "auth required", path: "/v1/actors/me", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "teacher", path: "/v1/actors/me", token: getToken(t, teacher), wantData: marshalObj(t, teacher)},
		{name: "student", path: "/v1/actors/me", token: getToken(t, student1), wantData: marshalObj(t, student1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCase(t, tt)
		})
	}
}

func Test_actorApi_register(t *testing.T) {
	na := actor.NewActor{
		Name: "Zola", Username: "zola", Role: actor.RoleStudent,
		AssignedClass: "Form 2", Secret: "secret",
	}

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/v1/actors/register",
			body: marshalObj(t, na), wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken),
		},
		{
			name: "admin required", method: http.MethodPost, path: "/v1/actors/register",
			body: marshalObj(t, na), token: getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "ok", method: http.MethodPost, path: "/v1/actors/register",
			body: marshalObj(t, na), token: getToken(t, admin), wantCode: http.StatusCreated,
		},
		{
			name: "duplicate username", method: http.MethodPost, path: "/v1/actors/register",
			body: marshalObj(t, na), token: getToken(t, admin),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"username": "an actor with this username already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := checkCase(t, tt)
			if tt.name == "ok" {
				var act actor.Actor
				if err := json.Unmarshal(body, &act); err != nil || act.ID == "" || act.Username != "zola" {
					t.Errorf("register response = %s, err %v", body, err)
				}
			}
		})
	}
}
