// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cmd implements the typedconf command line.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/typedconf/internal/config"
	"github.com/MKhiriev/typedconf/internal/logger"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// SetBuildInfo records the values injected at link time. Empty values stay
// "N/A".
func SetBuildInfo(version, date, commit string) {
	if version != "" {
		buildVersion = version
	}
	if date != "" {
		buildDate = date
	}
	if commit != "" {
		buildCommit = commit
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

type rootOptions struct {
	configDir string
	envName   string
	dotenv    string
	prefix    string
	set       config.Assignments

	cfg *config.AppConfig
	log *logger.Logger
}

// NewRootCommand builds the command tree. Running it without a subcommand
// loads the configuration and prints a summary.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "typedconf",
		Short: "Load layered configuration and talk to the configured model",
		Long: `typedconf resolves the application configuration from explicit
--set values, environment variables, a dotenv file, a secrets directory and
config.default.toml / config.{env}.toml / config.local.toml, validates it and
uses it to call an OpenAI-compatible chat model.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: model %s\n", opts.cfg.AppName, opts.cfg.Model.ID)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "", "directory with config.*.toml files (default: {PREFIX}CONFIG_DIR or .)")
	flags.StringVar(&opts.envName, "env", "", "environment name selecting config.{env}.toml (default: {PREFIX}ENV or development)")
	flags.StringVar(&opts.dotenv, "dotenv", "", "dotenv file to read (default: {PREFIX}DOTENV_FILE or .env)")
	flags.StringVar(&opts.prefix, "env-prefix", config.DefaultPrefix, "environment variable prefix")
	flags.Var(&opts.set, "set", "override a config value, e.g. --set model.temperature=0.2 (repeatable)")

	root.AddCommand(newShowCommand(opts), newAskCommand(opts), newVersionCommand())
	return root
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	bootstrap := logger.NewWithWriter(cmd.ErrOrStderr(), "typedconf", "warn", logger.FormatConsole)

	loadOpts := []config.Option{
		config.WithPrefix(o.prefix),
		config.WithValues(o.set.Values()),
		config.WithLogger(bootstrap),
	}
	if cmd.Flags().Changed("config-dir") {
		loadOpts = append(loadOpts, config.WithConfigDir(o.configDir))
	}
	if cmd.Flags().Changed("env") {
		loadOpts = append(loadOpts, config.WithEnvName(o.envName))
	}
	if cmd.Flags().Changed("dotenv") {
		loadOpts = append(loadOpts, config.WithDotenvFile(o.dotenv))
	}

	cfg, err := config.LoadAppConfig(loadOpts...)
	if err != nil {
		bootstrap.Error().Err(err).Msg("error getting configs")
		return err
	}

	o.cfg = cfg
	o.log = logger.NewWithWriter(cmd.ErrOrStderr(), "typedconf", cfg.Log.Level, cfg.Log.Format)
	o.log.Debug().Str("app_name", cfg.AppName).Str("model", cfg.Model.ID).Msg("received configs")
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", buildVersion)
			fmt.Fprintf(out, "Build date: %s\n", buildDate)
			fmt.Fprintf(out, "Build commit: %s\n", buildCommit)
		},
	}
}
