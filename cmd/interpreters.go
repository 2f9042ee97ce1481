package cmd

import (
	"cougardb/cli/internal/host"
	"cougardb/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// interpretersCmd lists registered interpreters with their properties.
var interpretersCmd = &cobra.Command{
	Use:   "interpreters",
	Short: "List registered interpreters and their effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		rows := interpreterRows(env.registry.List(), env.cfg.Lookup)
		return pterm.DefaultTable.
			WithHasHeader().
			WithData(rows).
			WithWriter(cmd.OutOrStdout()).
			Render()
	},
}

func init() {
	rootCmd.AddCommand(interpretersCmd)
}

// interpreterRows builds one row per declared property. Effective values are masked.
func interpreterRows(regs []host.Registration, lookup host.Lookup) [][]string {
	rows := [][]string{{"Interpreter", "Property", "Default", "Effective", "Description"}}
	for _, r := range regs {
		effective := r.Resolve(lookup)
		if len(r.Properties) == 0 {
			rows = append(rows, []string{r.Key(), "", "", "", r.Description})
			continue
		}
		for _, p := range r.Properties {
			rows = append(rows, []string{r.Key(), p.Key, p.Default, logging.Mask(effective[p.Key]), p.Description})
		}
	}
	return rows
}
