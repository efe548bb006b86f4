package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/photon-storage/go-common/log"

	"github.com/bounties-network/bounties-indexer/bounties"
	"github.com/bounties-network/bounties-indexer/chain"
	"github.com/bounties-network/bounties-indexer/cmd"
	"github.com/bounties-network/bounties-indexer/cmd/runtime/version"
	"github.com/bounties-network/bounties-indexer/config"
	"github.com/bounties-network/bounties-indexer/database"
	"github.com/bounties-network/bounties-indexer/database/mysql"
	"github.com/bounties-network/bounties-indexer/indexer"
	"github.com/bounties-network/bounties-indexer/ipfs"
	"github.com/bounties-network/bounties-indexer/notifications"
	"github.com/bounties-network/bounties-indexer/pricing"
	"github.com/bounties-network/bounties-indexer/tokens"
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
			cmd.LogFilenameFlag,
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

		if err := log.Init(logLvl, logFmt); err != nil {
			return err
		}

		logFilename := ctx.String(cmd.LogFilenameFlag.Name)
		if logFilename != "" {
			if err := log.ConfigurePersistentLogging(logFilename, false); err != nil {
				log.Error("Failed to configuring logging to disk",
					"error", err)
			}
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("running application failed", "error", err)
	}
}

func exec(ctx *cli.Context) error {
	cfg := &Config{}
	if err := config.Load(ctx.String(cmd.ConfigPathFlag.Name), cfg); err != nil {
		log.Fatal("fail on read config", "error", err)
	}

	db, err := mysql.NewMySQLDB(cfg.MySQL)
	if err != nil {
		log.Fatal("initialize mysql db error", "error", err)
	}

	chainClient, err := chain.NewClient(
		cfg.EthEndpoint,
		cfg.ContractAddress,
		cfg.ContractVersion,
	)
	if err != nil {
		log.Fatal("initialize ethereum client error", "error", err)
	}

	tokenResolver, err := tokens.NewResolver(chainClient.Eth())
	if err != nil {
		log.Fatal("initialize token resolver error", "error", err)
	}

	bountyClient := bounties.NewClient(
		ipfs.NewResolver(cfg.IpfsEndpoint),
		tokenResolver,
		pricing.NewGateway(database.NewStore(db), cfg.OracleEndpoint),
	)

	eventProcessor := indexer.NewEventProcessor(
		ctx.Context,
		cfg.RefreshInterval,
		cfg.BatchBlocks,
		db,
		chainClient,
		bountyClient,
		notifications.NewProjector(),
	)

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)
		<-sigc
		log.Info("Got interrupt, shutting down...")

		go eventProcessor.Stop()
		for i := 10; i > 0; i-- {
			<-sigc
			if i > 1 {
				log.Info("Already shutting down, interrupt more to panic", "times", i-1)
			}
		}
		panic("Panic closing the indexer service")
	}()
	eventProcessor.Run()
	return nil
}

// Config defines the config for indexer service.
type Config struct {
	MySQL           mysql.Config `yaml:"mysql"`
	RefreshInterval uint64       `yaml:"refresh_interval"`
	BatchBlocks     uint64       `yaml:"batch_blocks"`
	EthEndpoint     string       `yaml:"eth_endpoint"`
	ContractAddress string       `yaml:"contract_address"`
	ContractVersion uint         `yaml:"contract_version"`
	IpfsEndpoint    string       `yaml:"ipfs_endpoint"`
	OracleEndpoint  string       `yaml:"oracle_endpoint"`
}
