package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/config"
	"github.com/zaqqye/weld_backend_v1/internal/logger"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "weld-server",
		Short: "Weld inspection registry API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		exportCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// bootstrap reads the environment and builds the process logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "weld-api")
	if err != nil {
		return nil, nil, fmt.Errorf("logger init failed: %w", err)
	}
	return cfg, log, nil
}
