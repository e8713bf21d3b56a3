package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/registry"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured widgets with their current lifecycle state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			result := app.pipeline.Run()

			fmt.Fprintf(out, "%-20s %-10s %-15s %-10s %-8s %s\n",
				"ID", "SOURCE", "LIFECYCLE", "STATE", "HEALTH", "VISIBLE")
			for _, d := range result.Descriptors {
				rec := result.Records[d.ID]
				fmt.Fprintf(out, "%-20s %-10s %-15s %-10s %-8s %v\n",
					d.ID, d.Source, d.State, rec.State, rec.Health, rec.Visible)
			}

			fmt.Fprintln(out, "\nAvailable built-ins:")
			for _, id := range registry.IDs() {
				fmt.Fprintf(out, "  %s\n", id)
			}

			if app.cfg.WidgetsDir != "" {
				fmt.Fprintf(out, "\nScripts in %s:\n", app.cfg.WidgetsDir)
				for _, name := range scriptNames(app.cfg.WidgetsDir) {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}
			return nil
		},
	}
}

func scriptNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
	}
	return names
}
