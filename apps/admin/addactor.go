package main

import (
	"context"

	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

// addActor registers a new actor account.
func (cli *commandLine) addActor(name, uname, email, role, class, subject, secret string) error {
	na := actor.NewActor{
		Name:            name,
		Username:        uname,
		Email:           email,
		Role:            actor.Role(role),
		AssignedClass:   class,
		AssignedSubject: subject,
		Secret:          secret,
	}
	act, err := cli.actorSvc.Register(context.Background(), na)
	if err != nil {
		return err
	}
	logger.Printf("registered %s %q (%s)\n", act.Role, act.Username, act.ID)
	return nil
}
