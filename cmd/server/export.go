package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/database"
	"github.com/zaqqye/weld_backend_v1/internal/export"
	"github.com/zaqqye/weld_backend_v1/internal/repository"
)

func exportCmd() *cobra.Command {
	var (
		out    string
		object string
		search string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the registry to an xlsx workbook straight from the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			repo, err := database.OpenRepository(cfg, log)
			if err != nil {
				return err
			}
			welds, _, err := repo.ListWelds(cmd.Context(), repository.WeldFilter{ObjectName: object, Search: search})
			if err != nil {
				return fmt.Errorf("list welds: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteWeldsXLSX(f, welds); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Info("registry exported", zap.String("file", out), zap.Int("rows", len(welds)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "welds.xlsx", "output file")
	cmd.Flags().StringVar(&object, "object", "", "only welds of this construction object")
	cmd.Flags().StringVar(&search, "search", "", "weld number substring")
	return cmd
}
