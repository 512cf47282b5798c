package main

import (
	"github.com/spf13/cobra"

	"github.com/zaqqye/weld_backend_v1/internal/database"
	"github.com/zaqqye/weld_backend_v1/internal/repository"
)

func migrateCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the welds table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("migration complete")
			if !seed {
				return nil
			}
			return database.SeedDemoWelds(cmd.Context(), repository.NewGormWeldRepository(db), log)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo welds when the table is empty")
	return cmd
}
