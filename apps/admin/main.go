package main

import (
	"log"
	"os"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
	actordir "github.com/Axioms-Product/axiom-school-sub000/storage/directory"
	inmemkv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/inmem"
	pgkv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/postgres"
	rediskv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/redis"
	sqlitekv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/sqlite"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up the actor directory on the configured medium
	kv, err := openKV()
	errAndDie(err)
	defer kv.Close()

	// start CLI
	cli := commandLine{
		actorSvc: actor.NewService(actordir.New(kv)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func openKV() (core.KeyValueStore, error) {
	conf := core.Conf.Storage
	switch conf.Backend {
	case "redis":
		return rediskv.Open(conf)
	case "postgres":
		return pgkv.Open(conf)
	case "sqlite":
		return sqlitekv.Open(conf)
	}
	// memory is useless for a one-shot CLI outside tests, but harmless
	return inmemkv.New(), nil
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
