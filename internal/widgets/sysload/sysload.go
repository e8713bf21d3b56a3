// Package sysloadwidget shows system pressure: 1-minute load average and
// memory utilization. Probes go through the data cache so repeated renders
// inside the probe TTL reuse one measurement.
package sysloadwidget

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

type Widget struct {
	widget.Base

	load1      float64
	memPercent float64
	warnPerCPU float64
	critPerCPU float64
}

func New() widget.Widget { return &Widget{} }

func (w *Widget) ID() string { return "sysload" }

func (w *Widget) DeclareOptions(opts *widget.Options) {
	// Thresholds are load-average per CPU.
	opts.Declare("warn_per_cpu", "0.7")
	opts.Declare("crit_per_cpu", "1.0")
	opts.Declare("probe_ttl", "10")
}

func (w *Widget) Collect(rc *widget.RunContext) error {
	w.warnPerCPU = floatOption(rc.Options, "warn_per_cpu", 0.7)
	w.critPerCPU = floatOption(rc.Options, "crit_per_cpu", 1.0)

	probeTTL := rc.Options.Duration("probe_ttl", 0)
	if cached, ok := rc.Cache.Get("probe", probeTTL); ok {
		if w.decodeProbe(cached) {
			return nil
		}
	}

	avg, err := load.Avg()
	if err != nil {
		return fmt.Errorf("load average: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}

	w.load1 = avg.Load1
	w.memPercent = vm.UsedPercent

	if err := rc.Cache.Set("probe", w.encodeProbe()); err != nil {
		rc.Log.Error(err, "caching sysload probe failed")
	}
	rc.Store.Set("load1", strconv.FormatFloat(w.load1, 'f', 2, 64))
	return nil
}

func (w *Widget) encodeProbe() string {
	return fmt.Sprintf("%.2f %.1f", w.load1, w.memPercent)
}

func (w *Widget) decodeProbe(s string) bool {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return false
	}
	load1, err1 := strconv.ParseFloat(parts[0], 64)
	memPercent, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return false
	}
	w.load1 = load1
	w.memPercent = memPercent
	return true
}

func (w *Widget) perCPU() float64 {
	cpus := runtime.NumCPU()
	if cpus == 0 {
		cpus = 1
	}
	return w.load1 / float64(cpus)
}

func (w *Widget) ContentType() widget.ContentType { return widget.ContentStatic }
func (w *Widget) Presence() widget.Presence       { return widget.PresenceAlways }

func (w *Widget) State() widget.State {
	if w.perCPU() >= w.critPerCPU {
		return widget.StateDegraded
	}
	return widget.StateActive
}

func (w *Widget) Health() widget.Health {
	switch {
	case w.perCPU() >= w.critPerCPU:
		return widget.HealthError
	case w.perCPU() >= w.warnPerCPU:
		return widget.HealthWarning
	default:
		return widget.HealthOK
	}
}

func (w *Widget) Icon() string { return "󰍛" }

func (w *Widget) Render() string {
	return fmt.Sprintf("%.2f %.0f%%", w.load1, w.memPercent)
}

func floatOption(opts *widget.Options, key string, fallback float64) float64 {
	v := opts.Get(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
