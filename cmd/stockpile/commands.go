package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gravitas-games/stockpile/internal/scenario"
)

const version = "0.3.0"

var flagJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stockpile v%s\n", version)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the item definitions in the configured catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := catalog.Export()
		if flagJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(defs)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tVARIANT\tMAX\tNAME\tCATEGORY")
		for _, d := range defs {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n", d.NumericID, d.Kind, d.Variant, d.StackLimit(), d.Name, d.Category)
		}
		return w.Flush()
	},
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>...",
	Short: "Replay transaction scenarios and report each step",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := scenario.NewRunner(newManager(), log)
		out := cmd.OutOrStdout()
		failures := 0
		for _, path := range args {
			doc, err := scenario.ParseFile(path)
			if err != nil {
				return err
			}
			report, err := runner.Run(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			name := doc.Name
			if name == "" {
				name = path
			}
			fmt.Fprintf(out, "== %s\n", name)
			for _, res := range report.Results {
				mark := "  "
				if res.Failed {
					mark = "!!"
				}
				fmt.Fprintf(out, "%s %2d %-8s %s", mark, res.Index, res.Step.Op, res.Outcome())
				if res.Failed {
					fmt.Fprintf(out, " (expected %s)", res.Step.Expect)
				}
				fmt.Fprintln(out)
			}
			for _, id := range report.Containers.IDs() {
				c, _ := report.Containers.Container(id)
				fmt.Fprintf(out, "   %s %s\n", id, scenario.FormatContainer(c))
			}
			failures += report.Failures()
		}
		if failures > 0 {
			return fmt.Errorf("%w: %d step(s)", errExpectations, failures)
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
}
