package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// reportMsg carries the finished diagnostic report into the model.
type reportMsg struct {
	report *Report
}

// errMsg carries a diagnostic failure.
type errMsg struct {
	err error
}

// Model contains the Bubbletea state for the doctor view. The report is
// built off the UI goroutine; the spinner runs until it arrives.
type Model struct {
	spin     spinner.Model
	build    func() (*Report, error)
	report   *Report
	err      error
	quitting bool
}

// NewModel constructs a doctor model around a report builder.
func NewModel(build func() (*Report, error)) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{spin: sp, build: build}
}

// Init kicks off the spinner and the report build.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.buildCmd())
}

func (m Model) buildCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.build()
		if err != nil {
			return errMsg{err: err}
		}
		return reportMsg{report: report}
	}
}

// Report returns the finished report, or nil while it is still building.
func (m Model) Report() *Report {
	return m.report
}
