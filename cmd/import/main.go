// Command import loads reading texts and word catalogs into the WordFlash
// database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vytor/wordflash/internal/config"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/services"
)

type rootOptions struct {
	dbPath   string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{dbPath: cfg.DBPath, logLevel: cfg.LogLevel}

	cmd := &cobra.Command{
		Use:           "import",
		Short:         "Import reading texts and word catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDefault(logger.New(logger.WithLevel(logger.ParseLevel(opts.logLevel))))
		},
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", opts.dbPath, "database path")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (DEBUG, INFO, WARN, ERROR)")

	cmd.AddCommand(newTextsCommand(opts, cfg), newCatalogCommand(opts))
	return cmd
}

// openImporter opens the database and builds an import service on it. The
// returned func closes the database.
func openImporter(opts *rootOptions, importCfg services.ImportConfig) (services.ImportService, func(), error) {
	database, err := db.Open(opts.dbPath)
	if err != nil {
		return nil, nil, err
	}
	svc := services.NewImportService(
		sqlite.NewReadingRepository(database.DB),
		sqlite.NewCatalogRepository(database.DB),
		nil,
		importCfg,
	)
	return svc, func() { database.Close() }, nil
}
