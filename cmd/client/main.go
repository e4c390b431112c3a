package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/trace-backup/internal/adapter"
	"github.com/MKhiriev/trace-backup/internal/client"
	"github.com/MKhiriev/trace-backup/internal/config"
	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/internal/service"
	"github.com/MKhiriev/trace-backup/internal/store"
	"github.com/MKhiriev/trace-backup/internal/tui"
	"github.com/MKhiriev/trace-backup/internal/vault"
	"github.com/MKhiriev/trace-backup/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace-backup: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewClientLogger("trace-backup", cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = log.WithContext(ctx)

	code := run(ctx, cfg, log)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) int {
	v, err := vault.New(cfg.Vault)
	if err != nil {
		log.Error().Err(err).Msg("create secure vault")
		fmt.Fprintf(os.Stderr, "trace-backup: %v\n", err)
		return 2
	}

	keys := crypto.NewKeyManager(v, cfg.Vault.KeyID)
	backupStore := store.NewClientStore(cfg.Storage, keys, log)

	diagnostics, err := adapter.NewDiagnosticReporter(cfg.Diagnostics, log)
	if err != nil {
		log.Error().Err(err).Msg("create diagnostic reporter")
		fmt.Fprintf(os.Stderr, "trace-backup: %v\n", err)
		return 2
	}

	backups := service.NewBackupService(backupStore, diagnostics, tui.NewTerminalNotifier(os.Stderr), log)
	app := client.NewApp(backups, cfg.App, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), os.Stdout, log)

	if err = app.Run(ctx, cfg.Args); err != nil {
		log.Error().Err(err).Strs("args", cfg.Args).Msg("client run error")
		if errors.Is(err, client.ErrNoCommand) || errors.Is(err, client.ErrUnknownCommand) {
			return 2
		}
		fmt.Fprintln(os.Stderr, tui.HumanizeError(err))
		return 1
	}

	return 0
}
