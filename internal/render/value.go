// Package render resolves semantic color names against the palette and
// assembles the tmux-format template strings for the host's status line.
package render

// Value is a color value emitted into the template. A Literal is fully
// resolved at generation time; a HostConditional stays a tmux format
// expression the host evaluates at display time (active-window colors
// cannot be known earlier).
type Value interface {
	// Tmux renders the value as a tmux format fragment usable inside a
	// #[fg=...] style token.
	Tmux() string
}

// Literal is a resolved color: "#rrggbb", "default", or "none".
type Literal string

// Tmux returns the literal color text.
func (l Literal) Tmux() string { return string(l) }

// HostConditional selects between two colors based on a tmux format
// condition, e.g. comparing a window's position to the active position.
type HostConditional struct {
	Cond string
	Then Value
	Else Value
}

// Tmux renders the conditional in #{?cond,then,else} form. tmux expands
// formats inside style tokens, so the expression is valid wherever a
// literal color is.
func (h HostConditional) Tmux() string {
	return "#{?" + h.Cond + "," + h.Then.Tmux() + "," + h.Else.Tmux() + "}"
}
