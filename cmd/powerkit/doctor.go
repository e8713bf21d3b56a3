package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/tui"
)

func newDoctorCmd(flags *rootFlags) *cobra.Command {
	var noTUI bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and run every widget once",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			build := func() (*tui.Report, error) {
				return tui.BuildReport(app.cfg, app.pipeline, app.cache), nil
			}

			var report *tui.Report
			if noTUI {
				report, _ = build()
				printReport(cmd.OutOrStdout(), report)
			} else {
				final, err := tea.NewProgram(tui.NewModel(build)).Run()
				if err != nil {
					return err
				}
				report = final.(tui.Model).Report()
			}

			if report != nil && !report.Healthy() {
				return fmt.Errorf("diagnostics reported problems")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print a plain report instead of the interactive view")

	return cmd
}

func printReport(out io.Writer, report *tui.Report) {
	fmt.Fprintln(out, "Environment:")
	for _, c := range report.Checks {
		mark := "ok"
		if !c.OK {
			mark = "FAIL"
		}
		fmt.Fprintf(out, "  [%s] %s %s\n", mark, c.Name, c.Detail)
	}

	fmt.Fprintln(out, "Widgets:")
	for _, w := range report.Widgets {
		fmt.Fprintf(out, "  %-20s %-10s %s", w.ID, w.Source, w.State)
		if w.Err != nil {
			fmt.Fprintf(out, " (%v)", w.Err)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Cache: %d entries, %d bytes\n", report.CacheStats.Entries, report.CacheStats.Bytes)
	if len(report.StoreOwners) > 0 {
		fmt.Fprintf(out, "Datastore owners: %s\n", strings.Join(report.StoreOwners, ", "))
	}
}
