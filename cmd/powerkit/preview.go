package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/pipeline"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/preview"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/render"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/tmux"
)

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	var showPalette bool
	var width int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the status line as ANSI in the current terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			r := preview.NewRenderer()
			r.SetWidth(width)
			out := cmd.OutOrStdout()

			if showPalette {
				for _, s := range preview.Swatches(app.pal) {
					fmt.Fprintln(out, r.SwatchLine(s))
				}
				return nil
			}

			result := app.pipeline.Run()
			in := render.Input{
				Widgets: pipeline.BuildSegments(app.resolver, result),
				Layout:  app.cfg.Layout,
			}
			if tmux.InsideSession() {
				fillFromHost(cmd, app, &in)
			} else {
				// Sample topology keeps the preview meaningful outside tmux.
				in.SessionName = "main"
				in.Windows = []render.WindowEntry{{Index: 1, Name: "vim"}, {Index: 2, Name: "logs"}}
			}

			for _, line := range render.NewBuilder(app.resolver).Build(in).Lines {
				fmt.Fprintln(out, r.Line(line))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPalette, "palette", false, "Show the resolved palette swatches instead of the line")
	cmd.Flags().IntVar(&width, "width", 0, "Override the detected terminal width")

	return cmd
}
