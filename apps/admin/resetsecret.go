package main

import (
	"context"
)

func (cli *commandLine) resetSecret(uname, secret string) error {
	return cli.actorSvc.SetSecret(context.Background(), uname, secret)
}
