package palette

import (
	"fmt"
	"sort"
	"strings"

	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

// Reserved sentinel names. They bypass variant generation and are merged
// into every palette unconditionally.
const (
	SentinelTransparent = "transparent"
	SentinelNone        = "none"
	SentinelWhite       = "white"
	SentinelBlack       = "black"
)

// sentinelValues maps sentinel names to the value handed to the host.
// "transparent" becomes the terminal default color in tmux format syntax.
var sentinelValues = map[string]string{
	SentinelTransparent: "default",
	SentinelNone:        "none",
	SentinelWhite:       "#ffffff",
	SentinelBlack:       "#000000",
}

// IsSentinel reports whether name is one of the reserved sentinel names.
func IsSentinel(name string) bool {
	_, ok := sentinelValues[name]
	return ok
}

// SentinelValue returns the host value for a sentinel name, or "" when name
// is not a sentinel.
func SentinelValue(name string) string {
	return sentinelValues[name]
}

// Tiers holds the six variant percentages. Lighter tiers move toward white,
// darker tiers toward black.
type Tiers struct {
	Light    PerMille
	Lighter  PerMille
	Lightest PerMille
	Dark     PerMille
	Darker   PerMille
	Darkest  PerMille
}

// DefaultTiers returns the stock tint/shade percentages.
func DefaultTiers() Tiers {
	return Tiers{
		Light:    200,
		Lighter:  500,
		Lightest: 800,
		Dark:     200,
		Darker:   500,
		Darkest:  800,
	}
}

// variantSuffixes is ordered so serialization output is deterministic.
var variantSuffixes = []string{"-light", "-lighter", "-lightest", "-dark", "-darker", "-darkest"}

// VariantSuffix reports whether name carries a variant suffix and returns it.
func VariantSuffix(name string) (string, bool) {
	for _, suffix := range variantSuffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return suffix, true
		}
	}
	return "", false
}

// Palette is the usable color namespace: the base semantic names loaded from
// a theme plus the generated variant entries and the reserved sentinels.
type Palette struct {
	base     map[string]string
	variants map[string]string
}

// New builds a Palette from a theme mapping. Variants are computed once per
// load: each hex-valued base name yields six suffixed entries. Non-hex values
// (the "none" sentinel value in a theme file) are kept as-is with no variants.
func New(theme map[string]string, tiers Tiers) (*Palette, error) {
	p := &Palette{
		base:     make(map[string]string, len(theme)+len(sentinelValues)),
		variants: make(map[string]string, len(theme)*len(variantSuffixes)),
	}

	for name, value := range theme {
		if IsSentinel(name) {
			continue
		}
		p.base[name] = value

		if !IsHex(value) {
			continue
		}
		// Parse once, derive all six from the same RGB.
		rgb, err := ParseHex(value)
		if err != nil {
			return nil, pkerrors.NewValidationError(name, fmt.Sprintf("bad theme color %q", value), err)
		}
		p.variants[name+"-light"] = Lighten(rgb, tiers.Light).Hex()
		p.variants[name+"-lighter"] = Lighten(rgb, tiers.Lighter).Hex()
		p.variants[name+"-lightest"] = Lighten(rgb, tiers.Lightest).Hex()
		p.variants[name+"-dark"] = Darken(rgb, tiers.Dark).Hex()
		p.variants[name+"-darker"] = Darken(rgb, tiers.Darker).Hex()
		p.variants[name+"-darkest"] = Darken(rgb, tiers.Darkest).Hex()
	}

	for name, value := range sentinelValues {
		p.base[name] = value
	}

	return p, nil
}

// Base looks up a base palette entry.
func (p *Palette) Base(name string) (string, bool) {
	v, ok := p.base[name]
	return v, ok
}

// Variant looks up a generated variant entry.
func (p *Palette) Variant(name string) (string, bool) {
	v, ok := p.variants[name]
	return v, ok
}

// Names returns all base names in sorted order.
func (p *Palette) Names() []string {
	names := make([]string, 0, len(p.base))
	for name := range p.base {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// entrySeparator joins serialized entries. It cannot occur in a semantic
// name ([a-z0-9-]) or a hex value, so round-trips are lossless.
const entrySeparator = ";"

// Serialize flattens the full namespace (base plus variants) into a single
// string of name=value entries for persistence across runs.
func (p *Palette) Serialize() string {
	entries := make([]string, 0, len(p.base)+len(p.variants))
	for name, value := range p.base {
		entries = append(entries, name+"="+value)
	}
	for name, value := range p.variants {
		entries = append(entries, name+"="+value)
	}
	sort.Strings(entries)
	return strings.Join(entries, entrySeparator)
}

// Deserialize rebuilds a Palette from Serialize output. Entries are
// partitioned back into base and variant sets purely by name suffix.
func Deserialize(s string) (*Palette, error) {
	p := &Palette{
		base:     make(map[string]string),
		variants: make(map[string]string),
	}
	if s == "" {
		return p, nil
	}

	for _, entry := range strings.Split(s, entrySeparator) {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, pkerrors.NewParseError("palette", 0, fmt.Errorf("malformed entry %q", entry))
		}
		if _, isVariant := VariantSuffix(name); isVariant {
			p.variants[name] = value
		} else {
			p.base[name] = value
		}
	}
	return p, nil
}

// Equal reports whether two palettes hold identical namespaces.
func (p *Palette) Equal(other *Palette) bool {
	if len(p.base) != len(other.base) || len(p.variants) != len(other.variants) {
		return false
	}
	for k, v := range p.base {
		if other.base[k] != v {
			return false
		}
	}
	for k, v := range p.variants {
		if other.variants[k] != v {
			return false
		}
	}
	return true
}
