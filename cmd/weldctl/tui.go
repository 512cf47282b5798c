package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/dashboard"
	"github.com/zaqqye/weld_backend_v1/internal/layout"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/registry"
	"github.com/zaqqye/weld_backend_v1/internal/tui"
)

func (c *cli) tuiCmd() *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			svc, closeFn, err := c.themeService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			// The alt screen owns stdout; request logs would tear it.
			log := zap.NewNop()
			api := client.NewWeldClient(c.apiURL, log)

			deps := tui.Deps{
				Table:     registry.NewTable(api, log),
				Dashboard: dashboard.New(api, log),
				Layout:    layout.NewService(svc),
				Theme:     svc,
				Log:       log,
			}
			if live {
				events := make(chan models.WeldEvent, 16)
				go func() {
					defer close(events)
					err := client.Watch(ctx, c.apiURL, "", log, func(ev models.WeldEvent) {
						select {
						case events <- ev:
						default:
						}
					})
					if err != nil {
						log.Warn("change feed stopped", zap.Error(err))
					}
				}()
				deps.Events = events
			}
			return tui.Run(ctx, deps)
		},
	}
	cmd.Flags().BoolVar(&live, "live", true, "reload the registry when another client changes it")
	return cmd
}
