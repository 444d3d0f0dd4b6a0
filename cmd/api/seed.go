package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/repository/sqlconnect"
	"github.com/5w1tchy/book-catalog/internal/seed"
	storebooks "github.com/5w1tchy/book-catalog/internal/store/books"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load books from a YAML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		file, err := seed.Parse(f)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, dialect, err := sqlconnect.ConnectDB(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := catalog.NewService(storebooks.New(db, dialect))
		rep, err := seed.Run(ctx, svc, file, logger)
		if err != nil {
			return err
		}
		logger.Info("seed complete",
			zap.String("file", seedFile),
			zap.Int("created", rep.Created),
			zap.Int("skipped", rep.Skipped))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seeds/books.yaml", "YAML file with a top-level books list")
}
