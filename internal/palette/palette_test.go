package palette

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Lookup(name)
			require.NoError(t, err)
			assert.NoError(t, p.Validate())
			assert.Len(t, p, 9)
		})
	}
}

func TestDefaultMatchesYlGnBu(t *testing.T) {
	p, err := Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, "#ffffd9", p[0])
	assert.Equal(t, "#081d58", p[8])
}

func TestLookupCaseInsensitive(t *testing.T) {
	p, err := Lookup("blues")
	require.NoError(t, err)
	assert.Equal(t, "#f7fbff", p[0])
}

func TestLookupReturnsCopy(t *testing.T) {
	p, err := Lookup("Greens")
	require.NoError(t, err)
	p[0] = "#000000"

	again, err := Lookup("Greens")
	require.NoError(t, err)
	assert.Equal(t, "#f7fcf5", again[0])
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("Rainbow")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Palette
		wantErr bool
	}{
		{"ok", Palette{"#000000", "#111111", "#222222", "#333333"}, false},
		{"too short", Palette{"#000000", "#111111", "#222222"}, true},
		{"bad hex", Palette{"#000000", "#111111", "#222222", "#33333g"}, true},
		{"missing hash", Palette{"000000", "#111111", "#222222", "#333333"}, true},
		{"duplicate", Palette{"#000000", "#111111", "#222222", "#111111"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	p := Palette{"#aabbcc", "#112233", "#445566", "#778899"}
	assert.Equal(t, 1, p.Index("#112233"))
	assert.Equal(t, 0, p.Index("#AABBCC"))
	assert.Equal(t, -1, p.Index("#ffffff"))
}

func TestRGBA(t *testing.T) {
	p := Palette{"#ff8000", "#000000", "#ffffff", "#123456"}

	c, err := p.RGBA(0)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, c)

	_, err = p.RGBA(4)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palettes.yaml")
	content := `
palettes:
  mine:
    - "#000000"
    - "#444444"
    - "#888888"
    - "#cccccc"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadFile(path, "mine")
	require.NoError(t, err)
	assert.Len(t, p, 4)

	p, err = LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "#cccccc", p[3])

	_, err = LoadFile(path, "other")
	assert.Error(t, err)

	p, err = Resolve("mine", path)
	require.NoError(t, err)
	assert.Len(t, p, 4)
}

func TestLoadFileInvalidPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palettes:\n  tiny: [\"#000000\", \"#ffffff\"]\n"), 0o644))

	_, err := LoadFile(path, "tiny")
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), "x")
	assert.Error(t, err)
}
