package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cougardb/cli/internal/cougardb"
	"cougardb/cli/internal/host"
	"cougardb/cli/internal/httperrors"
	"cougardb/cli/internal/render"
	"cougardb/cli/internal/terminal"

	"github.com/pterm/pterm"
)

// runParagraph runs text through the session scheduler. In interactive mode a
// status line and spinner are shown on status while the query is in flight.
func runParagraph(ctx context.Context, s *host.Session, text string, status io.Writer, interactive bool) host.Result {
	var res host.Result
	if !interactive {
		return s.Run(ctx, text)
	}

	line := fmt.Sprintf("Sending to %s", httperrors.ExtractHostFromURL(s.Properties[cougardb.PropURL]))
	fmt.Fprintln(status, line)
	runWithSpinner(status, true, "Waiting for result", func() {
		res = s.Run(ctx, text)
	})
	terminal.ClearPreviousLines(status, len(line))
	return res
}

// showResult prints a SUCCESS outcome to w, or presents an ERROR outcome on
// errw and returns errQueryFailed. Only %table output is redrawn when pretty is set.
func showResult(w, errw io.Writer, res host.Result, endpoint string, pretty bool) error {
	if res.Code == host.Error {
		httperrors.Present(errw, res.Message, endpoint)
		return errQueryFailed
	}
	if !pretty || !strings.HasPrefix(res.Message, render.TableMarker) {
		_, err := io.WriteString(w, res.Message)
		return err
	}
	return renderPretty(w, res.Message)
}

// renderPretty draws tab-separated output as a bordered table.
func renderPretty(w io.Writer, msg string) error {
	body := strings.TrimPrefix(msg, render.TableMarker)
	rows := tableRows(body)
	if len(rows) == 0 {
		_, err := io.WriteString(w, msg)
		return err
	}
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(rows).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// tableRows splits tab-separated lines into cells. Short rows are padded so
// every row has as many cells as the header.
func tableRows(body string) [][]string {
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	rows := make([][]string, 0, len(lines))
	width := 0
	for _, l := range lines {
		cells := strings.Split(l, "\t")
		if len(cells) > width {
			width = len(cells)
		}
		rows = append(rows, cells)
	}
	for i, r := range rows {
		for len(r) < width {
			r = append(r, "")
		}
		rows[i] = r
	}
	return rows
}
