package render

import (
	"fmt"
	"strings"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/config"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

// Powerline separator glyphs. Orientation follows the ordering toggle: a
// session-led line points right, a widget-led line points left.
const (
	sepRight = ""
	sepLeft  = ""
)

// WindowEntry is one host window known at generation time. Which window is
// active is NOT known: its colors are emitted as host conditionals.
type WindowEntry struct {
	Index int
	Name  string
}

// WidgetSegment is the builder-facing form of one visible widget record.
type WidgetSegment struct {
	ID      string
	Icon    string
	Content string
	Style   Style
}

// Input carries everything the builder needs for one render.
type Input struct {
	// SessionName overrides the "#S" placeholder when non-empty.
	SessionName string
	Windows     []WindowEntry
	Widgets     []WidgetSegment
	Layout      config.Layout
}

// Output holds the composed template strings, one per render target line.
type Output struct {
	Lines []string
}

// run is a contiguous styled span in the emitted template.
type run struct {
	fg    Value
	bg    Value
	text  string
	isSep bool
}

// segment is an ordered list of cells; the first cell's background is the
// segment's leading background, the last cell's its trailing background.
type segment struct {
	runs []run
}

func (s segment) lead() Value  { return s.runs[0].bg }
func (s segment) trail() Value { return s.runs[len(s.runs)-1].bg }

// Builder assembles the final template strings.
type Builder struct {
	res *Resolver
}

// NewBuilder creates a Builder over the resolver.
func NewBuilder(res *Resolver) *Builder {
	return &Builder{res: res}
}

// Build produces one template string per line. Two-line layout restarts the
// separator adjacency chain independently per line.
func (b *Builder) Build(in Input) Output {
	_, lines := b.buildRuns(in)

	out := Output{}
	for _, runs := range lines {
		out.Lines = append(out.Lines, renderRuns(runs))
	}
	return out
}

// buildRuns assembles the run lists per line plus the bar background the
// chains terminate against.
func (b *Builder) buildRuns(in Input) (Value, [][]run) {
	glyph := sepRight
	if in.Layout.WidgetsFirst {
		glyph = sepLeft
	}

	session := b.sessionSegment(in.SessionName)
	windows := b.windowSegments(in.Windows)
	widgets := b.widgetSegments(in.Widgets, glyph)

	sessionSide := append([]segment{session}, windows...)

	var lines [][]segment
	switch {
	case in.Layout.TwoLine && in.Layout.WidgetsFirst:
		lines = [][]segment{widgets, sessionSide}
	case in.Layout.TwoLine:
		lines = [][]segment{sessionSide, widgets}
	case in.Layout.WidgetsFirst:
		lines = [][]segment{append(widgets, sessionSide...)}
	default:
		lines = [][]segment{append(sessionSide, widgets...)}
	}

	barBg := Value(b.res.Resolve("background"))
	if in.Layout.Transparent {
		barBg = Literal("default")
	}
	gap := b.res.Resolve("gap")

	runLines := make([][]run, 0, len(lines))
	for _, segs := range lines {
		runLines = append(runLines, chain(segs, barBg, in.Layout.Spacing, gap, glyph))
	}
	return barBg, runLines
}

// chain joins segments with adjacency-correct separators: every separator
// before a segment B is drawn with fg = upstream trailing background and
// bg = B's leading background. Spacing mode splits each inner junction into
// two separators against the gap color. Both edges terminate against the
// bar background, which transparency swaps for the terminal default.
func chain(segs []segment, barBg Value, spacing bool, gap Value, glyph string) []run {
	var runs []run
	prevBg := barBg

	for i, seg := range segs {
		if spacing && i > 0 {
			runs = append(runs,
				run{fg: prevBg, bg: gap, text: glyph, isSep: true},
				run{fg: gap, bg: gap, text: " "},
			)
			prevBg = gap
		}
		runs = append(runs, run{fg: prevBg, bg: seg.lead(), text: glyph, isSep: true})
		runs = append(runs, seg.runs...)
		prevBg = seg.trail()
	}

	if len(segs) > 0 {
		runs = append(runs, run{fg: prevBg, bg: barBg, text: glyph, isSep: true})
	}
	return runs
}

// renderRuns serializes runs into tmux style tokens and text.
func renderRuns(runs []run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString("#[fg=")
		sb.WriteString(r.fg.Tmux())
		sb.WriteString(",bg=")
		sb.WriteString(r.bg.Tmux())
		sb.WriteString("]")
		sb.WriteString(r.text)
	}
	sb.WriteString("#[default]")
	return sb.String()
}

func (b *Builder) sessionSegment(name string) segment {
	text := name
	if text == "" {
		text = "#S"
	}
	return segment{runs: []run{{
		fg:   b.res.Resolve("background"),
		bg:   b.res.Resolve("session"),
		text: "  " + text + " ",
	}}}
}

// windowSegments emits one segment per window. Active-window coloring is a
// host-evaluated conditional comparing this window's position to the active
// position; it cannot be precomputed.
func (b *Builder) windowSegments(windows []WindowEntry) []segment {
	activeBg := b.res.Resolve("primary")
	normalBg := b.res.Resolve("window")
	activeFg := b.res.Resolve("background")
	normalFg := b.res.Resolve("subtle")

	segs := make([]segment, 0, len(windows))
	for _, w := range windows {
		cond := fmt.Sprintf("#{==:#{active_window_index},%d}", w.Index)
		segs = append(segs, segment{runs: []run{{
			fg:   HostConditional{Cond: cond, Then: activeFg, Else: normalFg},
			bg:   HostConditional{Cond: cond, Then: activeBg, Else: normalBg},
			text: fmt.Sprintf(" %d:%s ", w.Index, w.Name),
		}}})
	}
	return segs
}

func (b *Builder) widgetSegments(widgets []WidgetSegment, glyph string) []segment {
	segs := make([]segment, 0, len(widgets))
	for _, w := range widgets {
		segs = append(segs, b.widgetSegment(w, glyph))
	}
	return segs
}

// widgetSegment lays out one widget as an icon cell and a content cell with
// an internal separator obeying the same adjacency rule. The separator glyph
// matches the surrounding chain's orientation.
func (b *Builder) widgetSegment(w WidgetSegment, glyph string) segment {
	var runs []run
	if w.Icon != "" {
		runs = append(runs,
			run{fg: w.Style.IconFg, bg: w.Style.IconBg, text: " " + w.Icon + " "},
			run{fg: w.Style.IconBg, bg: w.Style.ContentBg, text: glyph, isSep: true},
		)
	}
	runs = append(runs, run{
		fg:   w.Style.ContentFg,
		bg:   w.Style.ContentBg,
		text: " " + w.Content + " ",
	})
	return segment{runs: runs}
}

// RecordSegment converts a pipeline record into the builder's widget form.
func RecordSegment(id string, rec widget.Record, res *Resolver) WidgetSegment {
	return WidgetSegment{
		ID:      id,
		Icon:    rec.Icon,
		Content: rec.Content,
		Style:   res.StyleFor(rec.State, rec.Health),
	}
}
