package palette

import (
	"fmt"
	"strconv"
	"strings"

	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

// RGB is a parsed 6-hex-digit color. Parsing happens once per base color;
// all variant derivations reuse the parsed channels.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseHex parses a "#rrggbb" or "rrggbb" color string.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "#")
	if len(h) != 6 {
		return RGB{}, pkerrors.NewValidationError("color", fmt.Sprintf("expected 6 hex digits, got %q", s), nil)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, pkerrors.NewValidationError("color", fmt.Sprintf("invalid hex color %q", s), err)
	}
	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsHex reports whether s looks like a 6-hex-digit color, with or without
// the leading "#".
func IsHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// PerMille is a percentage with one decimal of precision stored as an
// integer scaled by 10: 100% == 1000. All tint/shade math stays integral.
type PerMille int

// ParsePerMille converts a percent string such as "20" or "12.3" to a
// PerMille. Digits beyond the first decimal place are truncated, negative
// values clamp to 0 and values above 100% clamp to 1000.
func ParsePerMille(s string) (PerMille, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, pkerrors.NewValidationError("percent", "empty percentage", nil)
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var n int
	if whole != "" {
		parsed, err := strconv.Atoi(whole)
		if err != nil {
			return 0, pkerrors.NewValidationError("percent", fmt.Sprintf("invalid percentage %q", s), err)
		}
		n = parsed
	}
	n *= 10
	if frac != "" {
		d := frac[0]
		if d < '0' || d > '9' {
			return 0, pkerrors.NewValidationError("percent", fmt.Sprintf("invalid percentage %q", s), nil)
		}
		n += int(d - '0')
	}

	if neg {
		return 0, nil
	}
	return clampPerMille(PerMille(n)), nil
}

func clampPerMille(p PerMille) PerMille {
	if p < 0 {
		return 0
	}
	if p > 1000 {
		return 1000
	}
	return p
}

// Lighten moves each channel toward 255 by p/1000 of the remaining headroom.
// Lighten(c, 0) == c and Lighten(c, 1000) == white; the result is monotonic
// in p. Integer division truncates.
func Lighten(c RGB, p PerMille) RGB {
	p = clampPerMille(p)
	return RGB{
		R: lightenChannel(c.R, p),
		G: lightenChannel(c.G, p),
		B: lightenChannel(c.B, p),
	}
}

func lightenChannel(ch uint8, p PerMille) uint8 {
	v := int(ch) + (255-int(ch))*int(p)/1000
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// Darken scales each channel toward 0 by p/1000. Darken(c, 0) == c and
// Darken(c, 1000) == black.
func Darken(c RGB, p PerMille) RGB {
	p = clampPerMille(p)
	return RGB{
		R: darkenChannel(c.R, p),
		G: darkenChannel(c.G, p),
		B: darkenChannel(c.B, p),
	}
}

func darkenChannel(ch uint8, p PerMille) uint8 {
	v := int(ch) * (1000 - int(p)) / 1000
	if v < 0 {
		v = 0
	}
	return uint8(v)
}
