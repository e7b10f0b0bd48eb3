package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cornerman/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the cornerman configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := path
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = defaultPath
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if _, err := os.Stat(expanded); err == nil && !overwrite {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", expanded)
			}
			if err := config.CreateSample(expanded); err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Wrote sample configuration to %s\n", expanded)
			fmt.Fprintln(stdout, "Edit the file to set api_key, or export SPORTARR_API_KEY instead.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Destination path (defaults to the standard config location)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report problems",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, resolvedPath, exists, err := config.Load(ctx.configFlag)
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Config path: %s\n", resolvedPath)
			if !exists {
				fmt.Fprintln(stdout, "Config file did not exist; defaults were used.")
			}
			fmt.Fprintf(stdout, "Sportarr server: %s\n", cfg.Server.URL)
			fmt.Fprintf(stdout, "Log directory: %s\n", cfg.Paths.LogDir)
			fmt.Fprintln(stdout, "Configuration valid.")
			return nil
		},
	}
}
