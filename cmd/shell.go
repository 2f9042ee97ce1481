// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cougardb/cli/internal/cougardb"
	"cougardb/cli/internal/host"
	"cougardb/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	shellPrompt     = "cougar> "
	shellContinue   = "    -> "
	maxParagraphLen = 4 << 20
)

var shellPretty bool

// shellCmd reads paragraphs and runs them one at a time through one session.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run paragraphs interactively",
	Long: `Reads SQL paragraphs from stdin and runs each one in order through a single interpreter session.
A paragraph ends at a line holding only ";" or at end of input, and is sent exactly as typed,
blank lines included. Blank lines before a paragraph starts are skipped.
Type \q or exit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		session, err := env.openCougardb()
		if err != nil {
			return err
		}
		defer session.Close()

		interactive := terminal.IsTerminal(os.Stdin) && terminal.IsTerminal(os.Stdout)
		if interactive {
			pterm.Info.Printfln("Connected to %s. End a paragraph with a line holding only \";\".", session.Properties[cougardb.PropURL])
		}

		failed := 0
		err = readParagraphs(cmd.InOrStdin(), promptFunc(cmd.ErrOrStderr(), interactive), func(p string) {
			res := runParagraph(cmd.Context(), session, p, cmd.ErrOrStderr(), interactive)
			if showResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, session.Properties[cougardb.PropURL], shellPretty) != nil {
				failed++
			}
			if res.Code == host.Success && !strings.HasSuffix(res.Message, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
		})
		if err != nil {
			return err
		}
		if failed > 0 && !interactive {
			return errQueryFailed
		}
		return nil
	},
}

func init() {
	shellCmd.Flags().BoolVar(&shellPretty, "pretty", false, "Render tables with borders instead of the raw notebook output")
	rootCmd.AddCommand(shellCmd)
}

// promptFunc returns the prompt printer for the shell, or a no-op when not interactive.
func promptFunc(w io.Writer, interactive bool) func(continuation bool) {
	if !interactive {
		return func(bool) {}
	}
	return func(continuation bool) {
		if continuation {
			fmt.Fprint(w, shellContinue)
			return
		}
		fmt.Fprint(w, shellPrompt)
	}
}

// readParagraphs splits r into paragraphs at lines holding only ";" and calls
// run for each one that is not blank, in input order. Paragraph lines are kept
// verbatim. prompt is called before every line is read.
func readParagraphs(r io.Reader, prompt func(continuation bool), run func(paragraph string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxParagraphLen)

	var buf []string
	flush := func() {
		p := strings.Join(buf, "\n")
		buf = buf[:0]
		if strings.TrimSpace(p) != "" {
			run(p)
		}
	}

	for {
		prompt(len(buf) > 0)
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case len(buf) == 0 && isExitCommand(trimmed):
			return nil
		case trimmed == ";":
			flush()
		case len(buf) == 0 && trimmed == "":
			// blank lines between paragraphs
		default:
			buf = append(buf, line)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read paragraphs: %w", err)
	}
	flush()
	return nil
}

func isExitCommand(s string) bool {
	switch strings.ToLower(s) {
	case `\q`, "exit", "quit":
		return true
	}
	return false
}
