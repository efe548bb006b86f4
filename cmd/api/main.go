package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/photon-storage/go-common/log"

	"github.com/bounties-network/bounties-indexer/api/server"
	"github.com/bounties-network/bounties-indexer/api/service"
	"github.com/bounties-network/bounties-indexer/cmd"
	"github.com/bounties-network/bounties-indexer/cmd/runtime/version"
	"github.com/bounties-network/bounties-indexer/config"
	"github.com/bounties-network/bounties-indexer/database/mysql"
)

func main() {
	app := cli.App{
		Name:    "bounties-indexer",
		Usage:   "this is an event indexer implementation for the bounties contract",
		Action:  exec,
		Version: version.Get(),
		Flags: []cli.Flag{
			cmd.ConfigPathFlag,
			cmd.VerbosityFlag,
			cmd.LogFormatFlag,
		},
	}

	app.Before = func(ctx *cli.Context) error {
		logLvl, err := log.ParseLevel(ctx.String(cmd.VerbosityFlag.Name))
		if err != nil {
			return err
		}

		logFmt, err := log.ParseFormat(ctx.String(cmd.LogFormatFlag.Name))
		if err != nil {
			return err
		}

		return log.Init(logLvl, logFmt)
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("running api application failed", "error", err)
	}
}

func exec(ctx *cli.Context) error {
	cfg := &Config{}
	if err := config.Load(ctx.String(cmd.ConfigPathFlag.Name), cfg); err != nil {
		log.Fatal("reading api config failed", "error", err)
	}

	db, err := mysql.NewMySQLDB(cfg.MySQL)
	if err != nil {
		log.Fatal("initialize mysql db error", "error", err)
	}

	server.New(cfg.Port, service.New(db)).Run()
	return nil
}

// Config defines the config for api service.
type Config struct {
	Port  int          `yaml:"port"`
	MySQL mysql.Config `yaml:"mysql"`
}
