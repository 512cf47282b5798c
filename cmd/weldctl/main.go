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

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/config"
	"github.com/zaqqye/weld_backend_v1/internal/logger"
)

// cli carries what every subcommand shares.
type cli struct {
	cfg     *config.Config
	apiURL  string
	verbose bool
	log     *zap.Logger
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(config.Load()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd(cfg *config.Config) *cobra.Command {
	c := &cli{cfg: cfg, log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "weldctl",
		Short: "Terminal client for the weld inspection registry",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !c.verbose {
				return nil
			}
			log, err := logger.NewLogger("debug", "console", "weldctl")
			if err != nil {
				return err
			}
			c.log = log
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api", cfg.APIURL, "base URL of the weld API")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stdout")

	root.AddCommand(
		c.listCmd(),
		c.getCmd(),
		c.deleteCmd(),
		c.exportCmd(),
		c.watchCmd(),
		c.themeCmd(),
		c.tuiCmd(),
	)
	return root
}

func (c *cli) client() *client.WeldClient {
	return client.NewWeldClient(c.apiURL, c.log)
}
