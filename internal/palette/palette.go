// Package palette provides ordered color palettes for choropleth buckets.
package palette

import (
	_ "embed"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// MinColors is the smallest palette that still yields visually distinct
// buckets.
const MinColors = 4

// Default is the scheme used when none is configured.
const Default = "YlGnBu"

//go:embed schemes.yaml
var schemesYAML []byte

// Palette is an ordered list of #rrggbb colors, lightest bucket first.
type Palette []string

type file struct {
	Palettes map[string]Palette `yaml:"palettes"`
}

var builtin map[string]Palette

func init() {
	var f file
	if err := yaml.Unmarshal(schemesYAML, &f); err != nil {
		panic(eris.Wrap(err, "palette: parse embedded schemes"))
	}
	builtin = f.Palettes
}

// Validate checks the palette length and color syntax.
func (p Palette) Validate() error {
	if len(p) < MinColors {
		return eris.Errorf("palette: need at least %d colors, got %d", MinColors, len(p))
	}
	seen := make(map[string]bool, len(p))
	for i, c := range p {
		if _, err := parseHex(c); err != nil {
			return eris.Wrapf(err, "palette: color %d", i)
		}
		key := strings.ToLower(c)
		if seen[key] {
			return eris.Errorf("palette: duplicate color %s", c)
		}
		seen[key] = true
	}
	return nil
}

// Len returns the number of colors.
func (p Palette) Len() int { return len(p) }

// Index returns the position of c in the palette, or -1. Comparison is
// case-insensitive.
func (p Palette) Index(c string) int {
	for i, pc := range p {
		if strings.EqualFold(pc, c) {
			return i
		}
	}
	return -1
}

// RGBA returns color i as an opaque color.RGBA.
func (p Palette) RGBA(i int) (color.RGBA, error) {
	if i < 0 || i >= len(p) {
		return color.RGBA{}, eris.Errorf("palette: index %d out of range", i)
	}
	return parseHex(p[i])
}

// Lookup returns a built-in palette by name (case-insensitive).
func Lookup(name string) (Palette, error) {
	for k, p := range builtin {
		if strings.EqualFold(k, name) {
			out := make(Palette, len(p))
			copy(out, p)
			return out, nil
		}
	}
	return nil, eris.Errorf("palette: unknown palette %q", name)
}

// Names returns the built-in palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for k := range builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads palettes from a YAML file in the same layout as the
// built-in schemes and returns the one called name. An empty name is
// accepted when the file holds exactly one palette.
func LoadFile(path, name string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "palette: read %s", path)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "palette: parse %s", path)
	}
	if name == "" {
		if len(f.Palettes) != 1 {
			return nil, eris.Errorf("palette: %s defines %d palettes, name one", path, len(f.Palettes))
		}
		for _, p := range f.Palettes {
			return p, p.Validate()
		}
	}
	p, ok := f.Palettes[name]
	if !ok {
		return nil, eris.Errorf("palette: %q not found in %s", name, path)
	}
	return p, p.Validate()
}

// Resolve picks the palette from a file when path is set, otherwise from
// the built-ins, and validates it.
func Resolve(name, path string) (Palette, error) {
	if path != "" {
		return LoadFile(path, name)
	}
	if name == "" {
		name = Default
	}
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return p, p.Validate()
}

func parseHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, eris.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, eris.Wrapf(err, "invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
