package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/pipeline"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/render"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/tmux"
)

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var line int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the status line to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}

			out := buildOutput(cmd, app)

			if line >= 0 {
				if line < len(out.Lines) {
					fmt.Fprintln(cmd.OutOrStdout(), out.Lines[line])
				}
				return nil
			}
			for _, l := range out.Lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&line, "line", -1, "Print only the given line index (for status-format hooks)")

	return cmd
}

// buildOutput runs the pipeline and composes the full line set, pulling
// session topology from the host when attached.
func buildOutput(cmd *cobra.Command, app *appContext) render.Output {
	result := app.pipeline.Run()

	in := render.Input{
		Widgets: pipeline.BuildSegments(app.resolver, result),
		Layout:  app.cfg.Layout,
	}

	if tmux.InsideSession() {
		fillFromHost(cmd, app, &in)
	}

	return render.NewBuilder(app.resolver).Build(in)
}

// fillFromHost queries the attached tmux server for session topology.
func fillFromHost(cmd *cobra.Command, app *appContext, in *render.Input) {
	client := tmux.NewClient()
	ctx := cmd.Context()

	if name, err := client.SessionName(ctx); err == nil {
		in.SessionName = name
	} else {
		app.log.Error(err, "querying session name failed")
	}
	if windows, err := client.ListWindows(ctx); err == nil {
		for _, w := range windows {
			in.Windows = append(in.Windows, render.WindowEntry{Index: w.Index, Name: w.Name})
		}
	} else {
		app.log.Error(err, "listing windows failed")
	}
}
