// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lars-sh/jarrunner/internal/config"
)

// newConfigCommand creates the `jarrunner config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jarrunner configuration",
		Long: `Manage jarrunner configuration.

Configuration is stored in:
  - Linux: ~/.config/jarrunner/config.cue
  - macOS: ~/Library/Application Support/jarrunner/config.cue
  - Windows: %APPDATA%\jarrunner\config.cue

Every key can be overridden with a JARRUNNER_ environment variable, for
example JARRUNNER_OFFLINE=true or JARRUNNER_HTTP_TIMEOUT=30s.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := config.FindConfigFile(app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, w io.Writer) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, found, err := config.FindConfigFile(app.loadOptions())
	if err == nil && found {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("repositories"))
	if len(cfg.Repositories) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, repo := range cfg.Repositories {
		line := fmt.Sprintf("  - %s %s", valueStyle.Render(repo.ID), repo.URL)
		if repo.Username != "" {
			line += " " + SubtitleStyle.Render("(user: "+repo.Username+")")
		}
		fmt.Fprintln(w, line)
	}

	localRepository := cfg.LocalRepository
	if localRepository == "" {
		localRepository = SubtitleStyle.Render("(default)")
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("local_repository"), localRepository)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("offline"), valueStyle.Render(fmt.Sprintf("%v", cfg.Offline)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("checksum_policy"), valueStyle.Render(cfg.ChecksumPolicy.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("java"))
	javaPath := cfg.Java.Path
	if javaPath == "" {
		javaPath = SubtitleStyle.Render("(auto)")
	}
	fmt.Fprintf(w, "  path: %s\n", javaPath)
	fmt.Fprintf(w, "  options: %s\n", valueStyle.Render(strings.Join(cfg.Java.Options, " ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("http"))
	fmt.Fprintf(w, "  timeout: %s\n", valueStyle.Render(cfg.HTTP.Timeout.String()))
	fmt.Fprintf(w, "  retries: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.HTTP.Retries)))
	fmt.Fprintf(w, "  user_agent: %s\n", valueStyle.Render(cfg.HTTP.UserAgent))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}
