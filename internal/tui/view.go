package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return failStyle.Render("doctor failed: "+m.err.Error()) + "\n"
	}
	if m.report == nil {
		return fmt.Sprintf("%s running diagnostics…\n", m.spin.View())
	}

	var sections []string
	sections = append(sections, titleStyle.Render("powerkit • doctor"))

	sections = append(sections, sectionStyle.Render("Environment"))
	sections = append(sections, renderChecks(m.report.Checks))

	if len(m.report.Widgets) > 0 {
		sections = append(sections, sectionStyle.Render("Widgets"))
		sections = append(sections, renderWidgets(m.report.Widgets))
	}

	sections = append(sections, sectionStyle.Render("Cache"))
	sections = append(sections, fmt.Sprintf(" %d entries, %d bytes", m.report.CacheStats.Entries, m.report.CacheStats.Bytes))

	if len(m.report.StoreOwners) > 0 {
		sections = append(sections, sectionStyle.Render("Datastore"))
		sections = append(sections, " owners: "+strings.Join(m.report.StoreOwners, ", "))
	}

	sections = append(sections, footerStyle.Render("q to quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderChecks(checks []Check) string {
	var lines []string
	for _, c := range checks {
		icon := okStyle.Render("✓")
		if !c.OK {
			icon = failStyle.Render("✗")
		}
		line := fmt.Sprintf(" %s %s", icon, c.Name)
		if c.Detail != "" {
			line = fmt.Sprintf("%s - %s", line, mutedStyle.Render(c.Detail))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderWidgets(widgets []WidgetStatus) string {
	var lines []string
	for _, w := range widgets {
		line := fmt.Sprintf(" %s %s %s", stateIcon(w.State), w.ID, mutedStyle.Render(string(w.Source)))
		if w.Err != nil {
			line = fmt.Sprintf("%s - %s", line, failStyle.Render(w.Err.Error()))
		} else if !w.Visible {
			line = fmt.Sprintf("%s - %s", line, mutedStyle.Render("hidden"))
		} else if w.Content != "" {
			line = fmt.Sprintf("%s - %s", line, w.Content)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// stateIcon returns the glyph representing a lifecycle state.
func stateIcon(state widget.LifecycleState) string {
	switch state {
	case widget.StateResolved:
		return okStyle.Render("✓")
	case widget.StateInvalid, widget.StateInitFailed, widget.StateCollectFailed:
		return failStyle.Render("✗")
	default:
		return mutedStyle.Render("…")
	}
}
