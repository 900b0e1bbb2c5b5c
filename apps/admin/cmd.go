package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

var (
	readSecretFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	actorSvc *actor.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addactor -name NAME -username USERNAME -role ROLE [-email EMAIL] [-class CLASS] [-subject SUBJECT] - register a new actor")
	fmt.Println("  resetsecret -username USERNAME - reset an actor's credential secret")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addActorCmd := flag.NewFlagSet("addactor", flag.ExitOnError)
	addActorName := addActorCmd.String("name", "", "The actor's display name.")
	addActorUname := addActorCmd.String("username", "", "The actor's username. The secret will be prompted next.")
	addActorEmail := addActorCmd.String("email", "", "The actor's email address (optional).")
	addActorRole := addActorCmd.String("role", "", "One of: student, teacher, admin.")
	addActorClass := addActorCmd.String("class", "", "The assigned class.")
	addActorSubject := addActorCmd.String("subject", "", "The assigned subject (teachers only).")

	resetSecretCmd := flag.NewFlagSet("resetsecret", flag.ExitOnError)
	resetSecretUname := resetSecretCmd.String("username", "", "The actor's username. The secret will be prompted next.")

	switch args[1] {
	case "addactor":
		if err := addActorCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addActorName == "" || *addActorUname == "" || *addActorRole == "" {
			addActorCmd.Usage()
			return errHelp
		}
		secret, err := promptSecret()
		if err != nil {
			return err
		}
		if secret == "" {
			addActorCmd.Usage()
			return errHelp
		}
		return cli.addActor(*addActorName, *addActorUname, *addActorEmail, *addActorRole, *addActorClass, *addActorSubject, secret)
	case "resetsecret":
		if err := resetSecretCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetSecretUname == "" {
			resetSecretCmd.Usage()
			return errHelp
		}
		secret, err := promptSecret()
		if err != nil {
			return err
		}
		if secret == "" {
			resetSecretCmd.Usage()
			return errHelp
		}
		return cli.resetSecret(*resetSecretUname, secret)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptSecret() (string, error) {
	fmt.Print("Enter secret:")
	secret, err := readSecretFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
