package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/zaqqye/weld_backend_v1/internal/config"
	"github.com/zaqqye/weld_backend_v1/internal/theme"
	"github.com/zaqqye/weld_backend_v1/internal/view"
)

// themeStorage picks the config store named by THEME_STORE. The returned
// func releases whatever the store holds open.
func themeStorage(cfg *config.Config) (theme.Storage, func(), error) {
	switch cfg.ThemeStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return theme.NewRedisStorage(rdb, ""), func() { rdb.Close() }, nil
	case "file", "":
		path := cfg.ThemeFile
		if path == "" {
			var err error
			if path, err = theme.DefaultFilePath(); err != nil {
				return nil, nil, err
			}
		}
		return theme.NewFileStorage(path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown THEME_STORE %q", cfg.ThemeStore)
	}
}

func (c *cli) themeService(ctx context.Context) (*theme.Service, func(), error) {
	store, closeFn, err := themeStorage(c.cfg)
	if err != nil {
		return nil, nil, err
	}
	return theme.NewService(ctx, store, nil, c.log), closeFn, nil
}

func (c *cli) styles(cmd *cobra.Command) (view.Styles, error) {
	svc, closeFn, err := c.themeService(cmd.Context())
	if err != nil {
		return view.Styles{}, err
	}
	defer closeFn()
	return view.NewStyles(svc.Palette()), nil
}

func (c *cli) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the stored theme config",
	}
	cmd.AddCommand(c.themeShowCmd(), c.themeSetCmd(), c.themeResetCmd())
	return cmd
}

func (c *cli) themeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current config and its options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := c.themeService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return printTheme(cmd, svc)
		},
	}
}

func printTheme(cmd *cobra.Command, svc *theme.Service) error {
	out := cmd.OutOrStdout()
	data, err := json.MarshalIndent(svc.Config(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	fmt.Fprintln(out, "classes:", strings.Join(svc.ClassNames(), " "))
	fmt.Fprintln(out, view.ConfigPanel(view.NewStyles(svc.Palette()), svc.Config(), svc.Catalog()))
	return nil
}

func (c *cli) themeSetCmd() *cobra.Command {
	var (
		preset, primary, surface, menuMode string
		dark                               bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more theme settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := c.themeService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			flags := cmd.Flags()
			if flags.Changed("preset") {
				if err := svc.SetPreset(preset); err != nil {
					return err
				}
			}
			if flags.Changed("primary") {
				if err := svc.SetPrimary(primary); err != nil {
					return err
				}
			}
			if flags.Changed("surface") {
				if err := svc.SetSurface(surface); err != nil {
					return err
				}
			}
			if flags.Changed("menu-mode") {
				if err := svc.SetMenuMode(theme.MenuMode(menuMode)); err != nil {
					return err
				}
			}
			if flags.Changed("dark") {
				svc.SetDarkMode(dark)
			}
			return printTheme(cmd, svc)
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "Aura, Lara or Nora")
	cmd.Flags().StringVar(&primary, "primary", "", "primary colour name or noir")
	cmd.Flags().StringVar(&surface, "surface", "", "surface palette name")
	cmd.Flags().StringVar(&menuMode, "menu-mode", "", "static or overlay")
	cmd.Flags().BoolVar(&dark, "dark", false, "dark mode")
	return cmd
}

func (c *cli) themeResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the factory theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := c.themeService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			svc.ResetToDefaults()
			return printTheme(cmd, svc)
		},
	}
}
