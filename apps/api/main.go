package main

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"

	echoapi "github.com/Axioms-Product/axiom-school-sub000/apps/api/echo"
	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
	"github.com/Axioms-Product/axiom-school-sub000/core/school"
	emailsvc "github.com/Axioms-Product/axiom-school-sub000/services/email"
	logsvc "github.com/Axioms-Product/axiom-school-sub000/services/logger"
	actordir "github.com/Axioms-Product/axiom-school-sub000/storage/directory"
	inmemkv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/inmem"
	pgkv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/postgres"
	rediskv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/redis"
	sqlitekv "github.com/Axioms-Product/axiom-school-sub000/storage/kv/sqlite"
)

// TODO: graceful shutdown on SIGTERM
func main() {
	stdLog := log.New(os.Stdout, "", log.LstdFlags)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(stdLog)
	} else {
		logger = logsvc.NewRollbarLogger(stdLog, core.Conf)
	}

	// set up the records store medium
	kv, err := openKV()
	errAndDie(err)
	defer kv.Close()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	actorSvc := actor.NewService(actordir.New(kv))
	store := school.NewStore(context.Background(), kv, actorSvc, mailSvc, logger)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:  core.Conf.Server.Address(),
			ActorSvc: actorSvc,
			Store:    store,
		},
	)
	app.Start()
}

func openKV() (core.KeyValueStore, error) {
	conf := core.Conf.Storage
	switch conf.Backend {
	case "", "memory":
		return inmemkv.New(), nil
	case "redis":
		return rediskv.Open(conf)
	case "postgres":
		return pgkv.Open(conf)
	case "sqlite":
		return sqlitekv.Open(conf)
	}
	return nil, errors.Errorf("unknown storage backend %q", conf.Backend)
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
