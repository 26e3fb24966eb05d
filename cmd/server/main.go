// Entry point of the youto API. It loads the configuration, opens the
// relational store, bootstraps the SQLite schema when that driver is used
// and serves HTTP until SIGINT or SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/youto/internal/api"
	"github.com/nao1215/youto/internal/config"
	"github.com/nao1215/youto/internal/rowgateway"
	"github.com/nao1215/youto/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("youto stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := telemetry.SetupLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"driver", cfg.Database.Driver,
		"password_scheme", cfg.Auth.PasswordScheme,
		"gate_writes", cfg.Auth.GateWrites,
	)

	db, err := rowgateway.Open(rowgateway.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		QueryTimeout: cfg.Database.QueryTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if db.Driver() == rowgateway.DriverSQLite {
		if err := api.InitSchema(ctx, db); err != nil {
			return err
		}
	}

	server, err := api.NewServer(cfg, db, logger)
	if err != nil {
		return err
	}
	return server.Run(ctx)
}
