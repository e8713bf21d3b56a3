// Package tmux is a thin exec wrapper over the host multiplexer. The engine
// only needs session/window topology and option plumbing; widgets own any
// further probing.
package tmux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// commandTimeout bounds every host invocation so a wedged server cannot
// stall the render.
const commandTimeout = 2 * time.Second

// Window is one host window at query time.
type Window struct {
	Index  int
	Name   string
	Active bool
}

// Client runs tmux commands. The zero value is not usable; call NewClient.
type Client struct {
	bin string
}

// NewClient returns a Client using the tmux binary on PATH.
func NewClient() *Client {
	return &Client{bin: "tmux"}
}

// InsideSession reports whether the current process runs under tmux.
func InsideSession() bool {
	return os.Getenv("TMUX") != ""
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, c.bin, args...).Output()
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// SessionName returns the attached session's name.
func (c *Client) SessionName(ctx context.Context) (string, error) {
	return c.run(ctx, "display-message", "-p", "#S")
}

// ListWindows returns the current session's windows in index order.
func (c *Client) ListWindows(ctx context.Context) ([]Window, error) {
	out, err := c.run(ctx, "list-windows", "-F", "#{window_index}\t#{window_name}\t#{window_active}")
	if err != nil {
		return nil, err
	}

	var windows []Window
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		index, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		windows = append(windows, Window{
			Index:  index,
			Name:   parts[1],
			Active: parts[2] == "1",
		})
	}
	return windows, nil
}

// ShowOption reads a global option value; unset options return "".
func (c *Client) ShowOption(ctx context.Context, name string) (string, error) {
	return c.run(ctx, "show-option", "-gqv", name)
}

// SetOption writes a global option.
func (c *Client) SetOption(ctx context.Context, name, value string) error {
	_, err := c.run(ctx, "set-option", "-g", name, value)
	return err
}

// BindKey installs a key binding in the prefix table.
func (c *Client) BindKey(ctx context.Context, key, command string) error {
	_, err := c.run(ctx, "bind-key", key, "run-shell", command)
	return err
}
