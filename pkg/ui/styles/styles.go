// Package styles holds the terminal palette used by the rich renderer.
//
// Colors and styles are declared in styles.yaml with adaptive light and dark
// variants, and bound to a lipgloss renderer so that color detection follows
// the writer being rendered to rather than stdout.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Style names used by the terminal renderer
const (
	Title   = "Title"
	Label   = "Label"
	Path    = "Path"
	Tag     = "Tag"
	Success = "Success"
	Warning = "Warning"
	Error   = "Error"
	Muted   = "Muted"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles file
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Sheet maps style names to lipgloss styles bound to one renderer
type Sheet struct {
	renderer *lipgloss.Renderer
	styles   map[string]lipgloss.Style
}

// Load parses a styles file for the given renderer
func Load(data []byte, r *lipgloss.Renderer) (*Sheet, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	sheet := &Sheet{renderer: r, styles: make(map[string]lipgloss.Style, len(config.Styles))}
	for name, def := range config.Styles {
		sheet.styles[name] = buildStyle(r, def, colors)
	}
	return sheet, nil
}

// Default returns the embedded sheet. If it cannot be parsed every style is
// plain, so output never depends on the palette loading.
func Default(r *lipgloss.Renderer) *Sheet {
	sheet, err := Load(embeddedStyles, r)
	if err != nil {
		return &Sheet{renderer: r, styles: map[string]lipgloss.Style{}}
	}
	return sheet
}

// Get returns the named style, or a plain one when it is not defined
func (s *Sheet) Get(name string) lipgloss.Style {
	if style, ok := s.styles[name]; ok {
		return style
	}
	return s.renderer.NewStyle()
}

// Render applies the named style to text
func (s *Sheet) Render(name, text string) string {
	return s.Get(name).Render(text)
}

func buildStyle(r *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	return style
}
