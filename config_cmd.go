package main

import (
	"fmt"
	"os"

	"peek/config"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
)

func newConfigCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
	}
	cmd.AddCommand(newConfigInitCmd(cfgPath))
	cmd.AddCommand(newConfigShowCmd(cfgPath))
	return cmd
}

func newConfigInitCmd(cfgPath *string) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg := config.Default()
			if *cfgPath != "" {
				cfg.Path = *cfgPath
			}
			if _, err := os.Stat(cfg.Path); err == nil && !overwrite {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.Path)
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			logger.Info("config wrote", "path", cfg.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:              %s\n", cfg.Path)
			fmt.Fprintf(out, "tab_stop:          %d\n", cfg.TabStop)
			fmt.Fprintf(out, "theme:             %s\n", cfg.Theme)
			fmt.Fprintf(out, "welcome:           %s\n", cfg.Welcome)
			fmt.Fprintf(out, "show_language:     %t\n", cfg.ShowLanguage)
			fmt.Fprintf(out, "remember_position: %t\n", cfg.RememberPosition)
			return nil
		},
	}
}
