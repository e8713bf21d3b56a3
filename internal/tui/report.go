// Package tui implements the interactive doctor view: environment checks
// plus a per-widget lifecycle report from one live pipeline run.
package tui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/cache"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/config"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/pipeline"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/tmux"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

// Check is one environment probe result.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// WidgetStatus is one widget's outcome from the diagnostic pipeline run.
type WidgetStatus struct {
	ID      string
	Source  widget.SourceKind
	State   widget.LifecycleState
	Visible bool
	Content string
	Err     error
}

// Report is everything the doctor view displays.
type Report struct {
	Checks      []Check
	Widgets     []WidgetStatus
	CacheStats  cache.Stats
	StoreOwners []string
}

// BuildReport runs the environment checks and one full pipeline pass.
func BuildReport(cfg *config.Config, p *pipeline.Pipeline, store *cache.Store) *Report {
	report := &Report{Checks: environmentChecks(cfg)}

	result := p.Run()
	for _, d := range result.Descriptors {
		rec := result.Records[d.ID]
		report.Widgets = append(report.Widgets, WidgetStatus{
			ID:      d.ID,
			Source:  d.Source,
			State:   d.State,
			Visible: rec.Visible,
			Content: rec.Content,
			Err:     d.Err,
		})
	}

	if stats, err := store.Stats(); err == nil {
		report.CacheStats = stats
	}

	owners := p.Datastore().Root().Owners()
	sort.Strings(owners)
	report.StoreOwners = owners

	return report
}

// Healthy reports whether every check passed and no widget failed a stage.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	for _, w := range r.Widgets {
		if w.Err != nil {
			return false
		}
	}
	return true
}

func environmentChecks(cfg *config.Config) []Check {
	var checks []Check

	if path, err := exec.LookPath("tmux"); err == nil {
		checks = append(checks, Check{Name: "tmux binary", OK: true, Detail: path})
	} else {
		checks = append(checks, Check{Name: "tmux binary", OK: false, Detail: "not found on PATH"})
	}

	if tmux.InsideSession() {
		checks = append(checks, Check{Name: "tmux session", OK: true, Detail: "attached"})
	} else {
		checks = append(checks, Check{Name: "tmux session", OK: false, Detail: "not inside a session"})
	}

	configPath := config.DefaultPath()
	if _, err := os.Stat(configPath); err == nil {
		checks = append(checks, Check{Name: "config file", OK: true, Detail: configPath})
	} else {
		checks = append(checks, Check{Name: "config file", OK: true, Detail: "using defaults"})
	}

	cacheDir := cfg.ResolveCacheDir()
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		checks = append(checks, Check{Name: "cache dir", OK: false, Detail: err.Error()})
	} else if err := writable(cacheDir); err != nil {
		checks = append(checks, Check{Name: "cache dir", OK: false, Detail: err.Error()})
	} else {
		checks = append(checks, Check{Name: "cache dir", OK: true, Detail: cacheDir})
	}

	if cfg.WidgetsDir != "" {
		if info, err := os.Stat(cfg.WidgetsDir); err != nil || !info.IsDir() {
			checks = append(checks, Check{Name: "widgets dir", OK: false, Detail: fmt.Sprintf("%s is not a directory", cfg.WidgetsDir)})
		} else {
			checks = append(checks, Check{Name: "widgets dir", OK: true, Detail: cfg.WidgetsDir})
		}
	}

	return checks
}

func writable(dir string) error {
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}
