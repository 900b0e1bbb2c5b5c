package actor

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

// Role is the closed set of actor roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var AllRoles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Actor is the currently signed-in student, teacher or admin. The records
// store treats it as read-only input: it is passed explicitly into every
// operation and never cached.
type Actor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	Role            Role   `json:"role"`
	AssignedClass   string `json:"assignedClass,omitempty"`
	AssignedSubject string `json:"assignedSubject,omitempty"`
}

func (a Actor) IsZero() bool    { return a.ID == "" }
func (a Actor) IsStudent() bool { return a.Role == RoleStudent }
func (a Actor) IsTeacher() bool { return a.Role == RoleTeacher }
func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }

// Account is the persisted directory entry: the actor plus its credential.
// The secret hash never leaves the directory.
type Account struct {
	Actor            Actor  `json:"actor"`
	CredentialSecret []byte `json:"credentialSecret"`
}

func (acct *Account) SetSecret(secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	acct.CredentialSecret = hash
	return nil
}

func (acct *Account) CheckSecret(secret string) error {
	return bcrypt.CompareHashAndPassword(acct.CredentialSecret, []byte(secret))
}

// NewActor contains information needed to register a new Actor.
type NewActor struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required,min=3,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	Role            Role   `json:"role" validate:"required,oneof=student teacher admin"`
	AssignedClass   string `json:"assignedClass" validate:"required_unless=Role admin"`
	AssignedSubject string `json:"assignedSubject" validate:"required_if=Role teacher"`
	Secret          string `json:"secret" validate:"required,min=6"`
}

func (na *NewActor) Validate(svc *Service) error {
	na.Name = core.CleanString(na.Name)
	na.Username = core.CleanString(na.Username, true /* lower */)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.AssignedClass = core.CleanString(na.AssignedClass)
	na.AssignedSubject = core.CleanString(na.AssignedSubject)

	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	return svc.checkUniqueness(na.Username)
}
