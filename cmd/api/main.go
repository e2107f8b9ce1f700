package main

import (
	"fmt"
	"os"

	"github.com/library-service/cmd/api/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, loadErr := config.Load(os.Getenv)

	root := &cobra.Command{
		Use:          "api",
		Short:        "Library service: catalog, circulation and receipts",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadErr
		},
	}

	root.PersistentFlags().StringVar(&cfg.Store, "store", cfg.Store, "catalog store: postgres or memory")
	root.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres connection string")
	root.PersistentFlags().StringVar(&cfg.DatabaseMigrationsPath, "migrations", cfg.DatabaseMigrationsPath, "directory of the sql migrations")
	root.PersistentFlags().StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "base url of the library api, used by the client commands")

	root.AddCommand(
		newServeCmd(&cfg),
		newMigrateCmd(&cfg),
		newCheckoutCmd(&cfg),
		newCheckinCmd(&cfg),
		newBooksCmd(&cfg),
	)
	return root
}

/* Console output on a terminal, JSON lines everywhere else. */
func newLogger() (*zap.Logger, error) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return zap.NewDevelopment()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
