package widget

import (
	"fmt"
	"strings"

	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

// recordSeparator delimits render-cache record fields. The unit separator
// byte cannot appear in widget content; Encode strips it defensively.
const recordSeparator = "\x1f"

// HiddenSentinel is cached in place of a record when a widget resolves to
// hidden, so hidden-widget checks are not repeated every refresh cycle.
const HiddenSentinel = "HIDDEN"

// Record is the normalized per-widget output the pipeline produces and the
// format builder consumes.
type Record struct {
	Icon        string
	Content     string
	ContentType ContentType
	Presence    Presence
	State       State
	Health      Health
	Context     string
	Visible     bool
}

// Encode flattens the record to the 4-field render-cache form
// (icon, content, state, health), or the HIDDEN sentinel for an invisible
// record.
func (r Record) Encode() string {
	if !r.Visible {
		return HiddenSentinel
	}
	fields := []string{
		sanitizeField(r.Icon),
		sanitizeField(r.Content),
		string(r.State),
		string(r.Health),
	}
	return strings.Join(fields, recordSeparator)
}

func sanitizeField(s string) string {
	return strings.ReplaceAll(s, recordSeparator, " ")
}

// DecodeRecord parses an Encode result. The HIDDEN sentinel yields an
// invisible record; anything else must be exactly 4 fields.
func DecodeRecord(s string) (Record, error) {
	if s == HiddenSentinel {
		return Record{Presence: PresenceHidden, Visible: false}, nil
	}

	fields := strings.Split(s, recordSeparator)
	if len(fields) != 4 {
		return Record{}, pkerrors.NewParseError("record", 0, fmt.Errorf("expected 4 fields, got %d", len(fields)))
	}

	return Record{
		Icon:    fields[0],
		Content: fields[1],
		State:   ParseState(fields[2]),
		Health:  ParseHealth(fields[3]),
		Visible: true,
	}, nil
}
