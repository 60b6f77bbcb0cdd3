// Package cli wires configuration, logging and the ledger service into the
// moneytracker command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"moneytracker/internal/backend"
	"moneytracker/internal/config"
	"moneytracker/internal/ledger"
	"moneytracker/internal/log"
	"moneytracker/internal/sheets"
	"moneytracker/internal/sheets/google"
)

// LoadEnvFile loads the .env file for local use.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger from cfg and sets it as the slog
// default. The returned function closes the log file, if any.
func SetupLogger(cfg *config.Config, console io.Writer, now time.Time) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	lc := log.DefaultConfig()
	lc.Level = level
	lc.Output = console
	lc.Dir = cfg.LogDir
	logger, closeFn, err := log.Open(lc, now)
	if err != nil {
		return nil, nil, err
	}
	log.SetDefault(logger)
	return logger, closeFn, nil
}

// ServiceOpener returns a function that opens a fresh ledger service on the
// configured backend. The caller closes the service.
func ServiceOpener(cfg *config.Config, factory backend.Factory, logger *log.Logger, now func() time.Time) func(context.Context) (*ledger.Service, error) {
	return func(ctx context.Context) (*ledger.Service, error) {
		bc, err := backend.FromAppConfig(cfg)
		if err != nil {
			return nil, err
		}
		res, err := factory.CreateBackend(ctx, bc)
		if err != nil {
			return nil, err
		}
		opts := []ledger.Option{ledger.WithClock(now)}
		if res.Publisher != nil {
			opts = append(opts, ledger.WithPublisher(res.Publisher))
		}
		return ledger.NewService(res.Store, logger, opts...), nil
	}
}

// ExporterOpener returns the Sheets exporter factory, or nil when no
// spreadsheet is configured.
func ExporterOpener(cfg *config.Config, logger *log.Logger) func(context.Context) (sheets.SummaryExporter, error) {
	if !cfg.SheetsEnabled() {
		return nil
	}
	return func(ctx context.Context) (sheets.SummaryExporter, error) {
		client, err := google.NewClient(ctx, google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		return client, nil
	}
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
