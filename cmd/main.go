package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shopbridge/payment-payload-service/internal/app"
	"github.com/shopbridge/payment-payload-service/internal/config"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/server"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to the configuration file")
	envFile := flag.String("env", ".env", "optional file with environment overrides for secrets")
	flag.Parse()

	logger := logging.NoCtx()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatal("failed to read %s: %v", *envFile, err)
	}

	conf, err := config.LoadConfiguration(*configFile, func(format string, v ...interface{}) {
		logger.Error(format, v...)
	})
	if err != nil {
		logger.Fatal("%v", err)
	}

	logging.SetSeverity(conf.Logging.Severity)
	logging.SetupLibraryLogging(conf.Logging.Severity, conf.Logging.Style == config.Json)

	if err := run(conf, logger); err != nil {
		logger.Fatal("%v", err)
	}
}

func run(conf *config.Application, logger logging.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := app.Assemble(conf, logger)
	if err != nil {
		return err
	}

	interactor, err := components.Interactor()
	if err != nil {
		return fmt.Errorf("failed to set up interaction layer: %w", err)
	}

	router, err := server.CreateRouter(interactor, &conf.Security)
	if err != nil {
		return fmt.Errorf("failed to set up authentication: %w", err)
	}
	srv := server.NewServer(ctx, &conf.Server, router)

	return server.Serve(ctx, srv)
}
