package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/models"
)

func (c *cli) watchCmd() *cobra.Command {
	var object string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print weld changes as they happen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return client.Watch(cmd.Context(), c.apiURL, object, c.log, func(ev models.WeldEvent) {
				fmt.Fprintln(out, describeEvent(ev))
			})
		},
	}
	cmd.Flags().StringVar(&object, "object", "", "only changes for this construction object")
	return cmd
}

func describeEvent(ev models.WeldEvent) string {
	number := ev.ID
	if ev.Weld != nil {
		number = ev.Weld.WeldNumber
	}
	switch ev.Type {
	case models.WeldCreated:
		return fmt.Sprintf("+ %s", number)
	case models.WeldUpdated:
		return fmt.Sprintf("~ %s", number)
	case models.WeldDeleted:
		return fmt.Sprintf("- %s", number)
	}
	return fmt.Sprintf("? %s %s", ev.Type, number)
}
