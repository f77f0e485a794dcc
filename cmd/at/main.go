package main

import (
	"fmt"
	"os"

	"assignment-tracker/internal/cli"
	"assignment-tracker/internal/config"
	"assignment-tracker/internal/logging"
)

func main() {
	// Configuration: defaults, then .env, then AT_* variables
	cfg, err := config.NewLoader(".env").Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyEnvironment(cfg, getEnvironment())

	logger := logging.NewOrNop(cfg.Application.Verbose)
	defer func() { _ = logger.Sync() }()

	// The API is built after global flags are applied
	app := cli.NewApp(nil, cfg, cli.WithLogger(logger))
	root := cli.NewRootCommand(app, newAPIFactory())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
