package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jdewael/steekkaart-backend/internal/adapters/listing"
	"github.com/jdewael/steekkaart-backend/internal/api"
	"github.com/jdewael/steekkaart-backend/internal/application/roster"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/config"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/logging"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/storage"
)

func main() {
	var (
		configFile = flag.String("config", "config.yaml", "Configuration file path")
		port       = flag.Int("port", 0, "Override the HTTP port")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configFile)

	logLevel := cfg.Observability.Logging.Level
	if *verbose {
		logLevel = "debug"
	}
	logger := logging.NewLoggerWithSystem(logLevel, "api")

	if *port != 0 {
		cfg.Server.Port = *port
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	source, err := buildSource(cfg)
	if err != nil {
		return err
	}
	logger.Info("file host configured", "source", source.Name())

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer repo.Close()

	rosterCfg := roster.DefaultConfig()
	if cfg.Roster.Sheet != "" {
		rosterCfg.Sheet = cfg.Roster.Sheet
	}
	if len(cfg.Roster.Columns) > 0 {
		rosterCfg.Columns = cfg.Roster.Columns
	}
	rosterCfg.ScanAnywhere = cfg.Roster.ScanAnywhere
	rosterCfg.CacheTTL = time.Duration(cfg.Roster.CacheTTLSeconds) * time.Second

	svc := roster.New(rosterCfg, source, repo, logger.With("system", "roster"))

	serverCfg := api.DefaultConfig()
	serverCfg.Port = cfg.Server.Port
	if len(cfg.Server.AllowedOrigins) > 0 {
		serverCfg.AllowedOrigins = cfg.Server.AllowedOrigins
	}
	server := api.NewServer(serverCfg, svc, repo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildSource picks the file host from config.
func buildSource(cfg *config.Config) (listing.Source, error) {
	switch cfg.Source.Kind {
	case "dir":
		if cfg.Source.Dir == "" {
			return nil, fmt.Errorf("source kind 'dir' requires a directory")
		}
		return listing.NewDirSource(cfg.Source.Dir), nil
	case "", "ftp":
		if cfg.FTP.Host == "" {
			return nil, fmt.Errorf("FTP host is not configured")
		}
		return listing.NewFTPSource(listing.FTPConfig{
			Host:     cfg.FTP.Host,
			Port:     cfg.FTP.Port,
			User:     cfg.FTP.User,
			Password: cfg.FTP.Password,
			Dir:      cfg.FTP.Dir,
		}), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}
