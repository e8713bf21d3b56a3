package widget

import (
	"fmt"
	"strings"
	"time"

	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

// externalPrefix marks an inline widget spec in the configured widget list.
const externalPrefix = "external:"

// ExternalSpec is an inline widget definition. Grammar:
//
//	external:content=<text>[;icon=<glyph>][;accent=<color>][;accent_icon=<color>][;ttl=<seconds>]
//
// Fields are semicolon-separated key=value pairs; content is mandatory.
// Content beginning with "#(" is a tmux command placeholder the host
// evaluates at display time.
type ExternalSpec struct {
	Icon       string
	Content    string
	Accent     string
	AccentIcon string
	TTL        time.Duration
}

// IsExternalSpec reports whether a widget-list entry is an inline spec.
func IsExternalSpec(entry string) bool {
	return strings.HasPrefix(entry, externalPrefix)
}

// ParseExternalSpec parses an inline widget spec. It is called exactly once
// per entry, at discovery.
func ParseExternalSpec(entry string) (*ExternalSpec, error) {
	if !IsExternalSpec(entry) {
		return nil, pkerrors.NewValidationError("external", fmt.Sprintf("missing %q prefix in %q", externalPrefix, entry), nil)
	}

	spec := &ExternalSpec{TTL: 5 * time.Second}
	body := strings.TrimPrefix(entry, externalPrefix)
	if body == "" {
		return nil, pkerrors.NewValidationError("external", "empty spec body", nil)
	}

	for _, field := range strings.Split(body, ";") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, pkerrors.NewValidationError("external", fmt.Sprintf("malformed field %q, want key=value", field), nil)
		}
		switch key {
		case "icon":
			spec.Icon = value
		case "content":
			spec.Content = value
		case "accent":
			spec.Accent = value
		case "accent_icon":
			spec.AccentIcon = value
		case "ttl":
			d := NewOptions(map[string]string{"ttl": value}).TTL(-1)
			if d < 0 {
				return nil, pkerrors.NewValidationError("external", fmt.Sprintf("invalid ttl %q", value), nil)
			}
			spec.TTL = d
		default:
			return nil, pkerrors.NewValidationError("external", fmt.Sprintf("unknown field %q", key), nil)
		}
	}

	if spec.Content == "" {
		return nil, pkerrors.NewValidationError("external", "content field is required", nil)
	}
	if spec.AccentIcon == "" {
		spec.AccentIcon = spec.Accent
	}
	return spec, nil
}

// IsCommand reports whether the spec's content is a tmux command placeholder
// rather than literal text.
func (s *ExternalSpec) IsCommand() bool {
	return strings.HasPrefix(s.Content, "#(")
}
