package assets

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Sprite is a text-cell image. Depending on the asset it carries fixed
// Lines, a repeating Pattern, or Fill/Cap runes for stretched shapes.
type Sprite struct {
	ColorName string   `yaml:"color"`
	Lines     []string `yaml:"lines"`
	Pattern   string   `yaml:"pattern"`
	Fill      string   `yaml:"fill"`
	Cap       string   `yaml:"cap"`

	Color core.Color `yaml:"-"`
}

// FillRune returns the first rune of Fill, or fallback when unset.
func (s Sprite) FillRune(fallback rune) rune {
	return firstRune(s.Fill, fallback)
}

// CapRune returns the first rune of Cap, or fallback when unset.
func (s Sprite) CapRune(fallback rune) rune {
	return firstRune(s.Cap, fallback)
}

// PatternAt returns the pattern rune at column i, wrapping around.
func (s Sprite) PatternAt(i int) rune {
	runes := []rune(s.Pattern)
	if len(runes) == 0 {
		return s.FillRune(' ')
	}
	i %= len(runes)
	if i < 0 {
		i += len(runes)
	}
	return runes[i]
}

// Width is the widest line in runes.
func (s Sprite) Width() int {
	w := 0
	for _, l := range s.Lines {
		if n := utf8.RuneCountInString(l); n > w {
			w = n
		}
	}
	return w
}

func firstRune(s string, fallback rune) rune {
	if s == "" {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// DecodeSprite parses a YAML sprite document.
func DecodeSprite(data []byte) (any, error) {
	var s Sprite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Width() == 0 && s.Pattern == "" && s.Fill == "" {
		return nil, fmt.Errorf("sprite has no lines, pattern or fill")
	}
	if s.ColorName != "" {
		c, ok := core.ParseColor(s.ColorName)
		if !ok {
			return nil, fmt.Errorf("unknown color %q", s.ColorName)
		}
		s.Color = c
	}
	return s, nil
}

// Font maps digit characters to fixed-height glyphs.
type Font struct {
	Height int                 `yaml:"height"`
	Glyphs map[string][]string `yaml:"glyphs"`
}

// Glyph returns the rows for ch.
func (f Font) Glyph(ch rune) ([]string, bool) {
	g, ok := f.Glyphs[string(ch)]
	return g, ok
}

// Render lays out text glyph by glyph with one blank column between them.
// Characters without a glyph are skipped.
func (f Font) Render(text string) []string {
	rows := make([]string, f.Height)
	first := true
	for _, ch := range text {
		g, ok := f.Glyph(ch)
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i] += " "
			}
			if i < len(g) {
				rows[i] += g[i]
			}
		}
		first = false
	}
	return rows
}

// DecodeFont parses a YAML font document. Every glyph must have Height rows.
func DecodeFont(data []byte) (any, error) {
	var f Font
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Height <= 0 {
		return nil, fmt.Errorf("font height must be positive")
	}
	for d := '0'; d <= '9'; d++ {
		g, ok := f.Glyphs[string(d)]
		if !ok {
			return nil, fmt.Errorf("font is missing digit %c", d)
		}
		if len(g) != f.Height {
			return nil, fmt.Errorf("glyph %c has %d rows, want %d", d, len(g), f.Height)
		}
	}
	return f, nil
}
