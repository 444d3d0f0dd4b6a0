package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/5w1tchy/book-catalog/internal/repository/sqlconnect"
	"github.com/5w1tchy/book-catalog/internal/store/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, dialect, err := sqlconnect.ConnectDB(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := migrations.Up(ctx, db, dialect)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			logger.Info("schema up to date")
			return nil
		}
		logger.Info("migrations applied", zap.Int64s("versions", applied))
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, dialect, err := sqlconnect.ConnectDB(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		v, err := migrations.Down(ctx, db, dialect)
		if err != nil {
			return err
		}
		logger.Info("migration rolled back", zap.Int64("version", v))
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print applied and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, dialect, err := sqlconnect.ConnectDB(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		sts, err := migrations.List(ctx, db, dialect)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tSOURCE")
		for _, s := range sts {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(tw, "%05d\t%s\t%s\n", s.Version, state, s.Path)
		}
		return tw.Flush()
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}
