package widget

// ContentType tells the builder whether a widget's content is stable text or
// something the host must re-evaluate (a tmux format placeholder).
type ContentType string

const (
	ContentStatic  ContentType = "static"
	ContentDynamic ContentType = "dynamic"
)

// Presence is a widget's visibility policy.
type Presence string

const (
	PresenceAlways      Presence = "always"
	PresenceConditional Presence = "conditional"
	PresenceHidden      Presence = "hidden"
)

// State is a widget's operational state.
type State string

const (
	StateActive   State = "active"
	StateInactive State = "inactive"
	StateDegraded State = "degraded"
	StateFailed   State = "failed"
)

// Health classifies a widget's condition independent of operational state.
type Health string

const (
	HealthOK      Health = "ok"
	HealthGood    Health = "good"
	HealthInfo    Health = "info"
	HealthWarning Health = "warning"
	HealthError   Health = "error"
)

// Visibility computes whether a widget is shown: hidden presence always
// hides, conditional presence hides only when the widget is inactive.
func Visibility(p Presence, s State) bool {
	return !(p == PresenceHidden || (p == PresenceConditional && s == StateInactive))
}

// ParseState validates a state string, defaulting to inactive.
func ParseState(s string) State {
	switch State(s) {
	case StateActive, StateInactive, StateDegraded, StateFailed:
		return State(s)
	default:
		return StateInactive
	}
}

// ParseHealth validates a health string, defaulting to ok.
func ParseHealth(s string) Health {
	switch Health(s) {
	case HealthOK, HealthGood, HealthInfo, HealthWarning, HealthError:
		return Health(s)
	default:
		return HealthOK
	}
}

// ParsePresence validates a presence string, defaulting to always.
func ParsePresence(s string) Presence {
	switch Presence(s) {
	case PresenceAlways, PresenceConditional, PresenceHidden:
		return Presence(s)
	default:
		return PresenceAlways
	}
}

// ParseContentType validates a content-type string, defaulting to dynamic.
func ParseContentType(s string) ContentType {
	switch ContentType(s) {
	case ContentStatic, ContentDynamic:
		return ContentType(s)
	default:
		return ContentDynamic
	}
}
