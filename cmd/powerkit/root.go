package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "powerkit",
		Short:         "powerkit renders a widget-driven tmux status line",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to the config file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newDoctorCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newCacheCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
