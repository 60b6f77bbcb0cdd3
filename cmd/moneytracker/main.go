package main

import (
	"fmt"
	"os"
	"time"

	"moneytracker/internal/backend"
	"moneytracker/internal/cli"
	"moneytracker/internal/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := cli.SetupLogger(cfg, os.Stderr, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: close log file: %v\n", err)
		}
	}()

	ctx, stop := cli.SignalContext()
	defer stop()

	logger.Debug("Starting moneytracker",
		log.FieldBackend, cfg.DataBackend,
		log.FieldDBPath, cfg.DBPath)

	app := &cli.App{
		Out:          os.Stdout,
		Err:          os.Stderr,
		Now:          time.Now,
		Logger:       logger,
		OpenService:  cli.ServiceOpener(cfg, backend.NewFactory(logger), logger, time.Now),
		OpenExporter: cli.ExporterOpener(cfg, logger),
	}
	return app.Run(ctx, os.Args[1:])
}
