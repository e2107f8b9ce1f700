package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/library-service/cmd/api/config"
	"github.com/library-service/cmd/api/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert the postgres schema",
	}

	run := func(name string, apply func(*database.Store, string) error) *cobra.Command {
		return &cobra.Command{
			Use:  name,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if cfg.DatabaseURL == "" {
					return errors.New("migrate needs DATABASE_URL or --database-url")
				}
				db, err := database.ConnectDb(cmd.Context(), cfg.DatabaseURL)
				if err != nil {
					return fmt.Errorf("connecting with db: %w", err)
				}
				defer db.Close()

				err = apply(database.NewStore(db), cfg.DatabaseMigrationsPath)
				if errors.Is(err, migrate.ErrNoChange) {
					fmt.Fprintln(cmd.OutOrStdout(), "no change")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", name)
				return nil
			},
		}
	}

	cmd.AddCommand(
		run("up", database.MigrationUp),
		run("down", database.MigrationDown),
	)
	return cmd
}
