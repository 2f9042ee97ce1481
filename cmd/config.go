package cmd

import (
	"fmt"
	"sort"
	"strings"

	"cougardb/cli/internal/config"
	"cougardb/cli/internal/cougardb"
	"cougardb/cli/internal/jsonrpc"
	"cougardb/cli/internal/logging"
	"cougardb/cli/internal/xdg"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the config file",
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Write a setting to the config file",
	Example: `  cougar config set cougardb.url http://localhost:8080/cql/api`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := strings.ToLower(args[0]), args[1]
		if err := validateSetting(key, value); err != nil {
			return err
		}
		path, err := configPath()
		if err != nil {
			return err
		}
		if err := config.Set(path, key, value); err != nil {
			return err
		}
		pterm.Success.Printfln("%s set in %s", key, path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return xdg.ConfigFile()
}

// settableKeys lists every key the config file may hold.
func settableKeys() []string {
	keys := []string{cougardb.PropURL, cougardb.PropTimeout, config.KeyLogLevel, config.KeyLogFormat}
	sort.Strings(keys)
	return keys
}

// validateSetting rejects unknown keys and values the CLI would refuse at startup.
func validateSetting(key, value string) error {
	switch key {
	case cougardb.PropURL:
		return jsonrpc.ValidateURL(value)
	case cougardb.PropTimeout:
		_, err := cougardb.ParseTimeout(value)
		return err
	case config.KeyLogLevel:
		_, err := logging.ParseLevel(value)
		return err
	case config.KeyLogFormat:
		if value != "text" && value != "json" {
			return fmt.Errorf("unknown log format %q (want text or json)", value)
		}
		return nil
	}
	return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(settableKeys(), ", "))
}
