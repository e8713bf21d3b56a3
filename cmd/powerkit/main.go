package main

import (
	"fmt"
	"os"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets"
)

func main() {
	if err := widgets.RegisterBuiltins(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register widgets: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
