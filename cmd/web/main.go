package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"procurepulse/internal/app"
	"procurepulse/internal/config"
	"procurepulse/internal/infrastructure"
	"procurepulse/pkg/contracts"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run loads the configuration and the dataset, then serves until
// interrupted. A dataset that cannot be loaded or fails the header check
// stops startup with its message printed as is.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "configuration file (defaults to config.yaml or $PULSE_CONFIG_FILE)")
	dataset := fs.String("dataset", "", "dataset path, overrides the configured one")
	port := fs.Int("port", 0, "listen port, overrides the configured one")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Println(contracts.Build().String())
		return 0
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *dataset != "" {
		cfg.Dataset.Path = *dataset
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		return 1
	}

	if err := application.LoadDataset(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
