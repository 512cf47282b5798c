package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/registry"
	"github.com/zaqqye/weld_backend_v1/internal/view"
)

func (c *cli) listCmd() *cobra.Command {
	var (
		q      client.ListQuery
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the weld registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := c.client()
			welds, err := api.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(welds)
			}
			rows := make([]registry.Row, len(welds))
			for i, w := range welds {
				rows[i] = registry.Row{Weld: w}
			}
			st, err := c.styles(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, view.RegistryTable(st, view.TableView{
				Rows:    rows,
				Columns: defaultColumns(),
				Cursor:  -1,
			}))
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "weld number substring")
	cmd.Flags().StringVar(&q.ObjectName, "object", "", "construction object name")
	cmd.Flags().IntVar(&q.Page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size; 0 lists everything")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// defaultColumns is the column set a fresh registry page shows.
func defaultColumns() []registry.Column {
	hidden := map[string]bool{}
	for _, f := range registry.HiddenByDefault {
		hidden[f] = true
	}
	var cols []registry.Column
	for _, col := range registry.Columns {
		if !hidden[col.Field] {
			cols = append(cols, col)
		}
	}
	return cols
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Print one weld as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(w)
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a weld after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := c.client()
			w, err := api.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Удалить стык %q? (y/n) ", w.WeldNumber)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Отменено")
				return nil
			}
			if err := api.Delete(cmd.Context(), w.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Стык %q удалён\n", w.WeldNumber)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}

func (c *cli) exportCmd() *cobra.Command {
	var (
		q   client.ListQuery
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the registry as an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := c.client().Export(cmd.Context(), q)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Сохранено: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "weld number substring")
	cmd.Flags().StringVar(&q.ObjectName, "object", "", "construction object name")
	cmd.Flags().StringVarP(&out, "out", "o", "welds.xlsx", "output file")
	return cmd
}
