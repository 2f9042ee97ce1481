// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line host for the Cougardb notebook interpreter.
// The root command wires configuration, logging and the interpreter registry
// the way a notebook server's startup sequence would, and the subcommands
// run paragraphs through that host using the Cobra CLI framework.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"cougardb/cli/internal/config"
	"cougardb/cli/internal/cougardb"
	"cougardb/cli/internal/host"
	"cougardb/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	cfgFile     string
)

// errQueryFailed signals an ERROR outcome that was already shown to the user.
var errQueryFailed = errors.New("query failed")

// flagKeys binds persistent flags to setting keys.
var flagKeys = map[string]string{
	"url":        cougardb.PropURL,
	"timeout":    cougardb.PropTimeout,
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "cougar",
	Short:         "Run SQL against a Cougardb service from the terminal",
	Long:          `cougar sends SQL paragraphs to a Cougardb query service over HTTP JSON-RPC and prints the result the way a notebook cell would show it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "cougar %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errQueryFailed) {
			pterm.Error.WithWriter(os.Stderr).Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/cougardb/config.yaml)")
	pf.String("url", "", "Cougardb API URL (env COUGARDB_URL)")
	pf.String("timeout", "", "Transport timeout for one query, e.g. 90s (env COUGARDB_TIMEOUT)")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error, off (env COUGARDB_LOG_LEVEL)")
	pf.String("log-format", "", "Log format: text or json (env COUGARDB_LOG_FORMAT)")
}

// hostEnv is what the startup sequence hands to every command.
type hostEnv struct {
	cfg      *config.Config
	log      *logging.Logger
	registry *host.Registry
}

// bootstrap loads configuration, builds the logger and registers interpreters.
func bootstrap(cmd *cobra.Command) (*hostEnv, error) {
	cfg, err := config.Load(config.Options{File: cfgFile, Flags: cmd.Flags(), FlagKeys: flagKeys})
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel(), cfg.LogFormat(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if f := cfg.File(); f != "" {
		log.Debug("loaded config", "file", f)
	}

	reg := host.NewRegistry()
	if err := cougardb.Register(reg, cougardb.Options{Logger: log}); err != nil {
		return nil, err
	}
	return &hostEnv{cfg: cfg, log: log, registry: reg}, nil
}

// openCougardb opens a session on the cougardb.sql interpreter.
func (h *hostEnv) openCougardb() (*host.Session, error) {
	s, err := h.registry.Open(cougardb.Group, cougardb.Name, h.cfg.Lookup)
	if err != nil {
		return nil, err
	}
	h.log.Debug("interpreter opened", "interpreter", s.Registration.Key(), "url", s.Properties[cougardb.PropURL])
	return s, nil
}
