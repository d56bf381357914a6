package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/iudanet/vidtube/internal/server"
	"github.com/iudanet/vidtube/internal/server/config"
	"github.com/iudanet/vidtube/internal/server/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	if opts.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	cfg := opts.Config
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := server.New(ctx, cfg, log, Version)
	if err != nil {
		log.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	log.Info("VidTube auth server starting",
		"version", Version,
		"env", cfg.Env,
		"storage", cfg.Storage.Driver,
		"addr", cfg.HTTP.Address)

	runErr := make(chan error, 1)
	go func() {
		runErr <- srv.Run(ctx)
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.HTTP.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Info("Graceful shutdown initiated...")
				cancel()
				return srv.Shutdown(ctx)
			},
		},
	)

	select {
	case err := <-runErr:
		// Сервер упал сам (например, порт занят)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Server stopped with error", "error", err)
			os.Exit(1)
		}
	case exitCode := <-wait:
		log.Info("Application exited", "code", exitCode)
		os.Exit(exitCode)
	}
}

func printVersion() {
	fmt.Printf("VidTube Auth Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
