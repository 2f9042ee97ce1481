// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cougardb/cli/internal/cougardb"
	"cougardb/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var queryPretty bool

// queryCmd runs a single paragraph and prints its outcome.
var queryCmd = &cobra.Command{
	Use:   "query [SQL...]",
	Short: "Run one query and print the rendered result",
	Long: `Runs one SQL paragraph against the configured Cougardb service.
The arguments are joined with spaces; with no arguments the whole of stdin is read.
Successful results are printed exactly as a notebook receives them unless --pretty is set.`,
	Example: `  cougar query "SELECT a, b FROM t"
  echo "EXPLAIN SELECT 1" | cougar query
  cougar query --pretty --url http://localhost:8080/cql/api "SELECT 1"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := queryText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		env, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		session, err := env.openCougardb()
		if err != nil {
			return err
		}
		defer session.Close()

		interactive := terminal.IsTerminal(os.Stdout) && terminal.IsTerminal(os.Stderr)
		res := runParagraph(cmd.Context(), session, text, cmd.ErrOrStderr(), interactive)
		return showResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, session.Properties[cougardb.PropURL], queryPretty)
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryPretty, "pretty", false, "Render tables with borders instead of the raw notebook output")
	rootCmd.AddCommand(queryCmd)
}

// queryText joins args, or reads r to the end when there are none.
func queryText(args []string, r io.Reader) (string, error) {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read query from stdin: %w", err)
		}
		text = string(b)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no query given: pass SQL as arguments or on stdin")
	}
	return text, nil
}
