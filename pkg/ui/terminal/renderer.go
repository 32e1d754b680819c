// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/ui/display"
	"github.com/arthur-debert/savelink/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// Renderer lays out documents with the styles sheet
type Renderer struct {
	output io.Writer
	sheet  *styles.Sheet
}

// New creates a terminal renderer whose color profile follows w
func New(w io.Writer) (*Renderer, error) {
	return NewWithRenderer(w, lipgloss.NewRenderer(w))
}

// NewWithRenderer uses an existing lipgloss renderer, which lets callers
// force a color profile.
func NewWithRenderer(w io.Writer, lr *lipgloss.Renderer) (*Renderer, error) {
	logger := logging.GetLogger("ui.terminal")
	logger.Debug().
		Str("profile", fmt.Sprintf("%v", lr.ColorProfile())).
		Bool("dark", lr.HasDarkBackground()).
		Msg("terminal renderer created")

	return &Renderer{output: w, sheet: styles.Default(lr)}, nil
}

// RenderResult renders any result type with terminal styling
func (r *Renderer) RenderResult(result interface{}) error {
	doc, ok := display.Convert(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := io.WriteString(r.output, r.layout(doc))
	return err
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	line := r.sheet.Render(styles.Error, "Error:") + " " + errors.Message(err)
	_, werr := fmt.Fprintln(r.output, line)
	return werr
}

// RenderMessage renders a simple message. A leading log tag is colored.
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.logLine(msg))
	return err
}

func (r *Renderer) layout(doc display.Document) string {
	var b strings.Builder

	if doc.Title != "" {
		b.WriteString(r.sheet.Render(styles.Title, doc.Title))
		b.WriteString("\n")
	}

	width := doc.LabelWidth()
	for _, f := range doc.Fields {
		label := fmt.Sprintf("%-*s", width+1, f.Label+":")
		b.WriteString("  ")
		b.WriteString(r.sheet.Render(styles.Label, label))
		b.WriteString("  ")
		b.WriteString(r.field(f))
		b.WriteString("\n")
	}

	for _, line := range doc.Log {
		b.WriteString(r.logLine(line))
		b.WriteString("\n")
	}

	for _, n := range doc.Notes {
		b.WriteString(r.sheet.Render(toneStyle(n.Tone), n.Text))
		b.WriteString("\n")
	}

	if doc.Summary != "" {
		b.WriteString(r.sheet.Render(toneStyle(doc.Tone), doc.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) field(f display.Field) string {
	switch {
	case f.Tone != display.ToneNeutral:
		return r.sheet.Render(toneStyle(f.Tone), f.Value)
	case f.Path:
		return r.sheet.Render(styles.Path, f.Value)
	default:
		return f.Value
	}
}

func (r *Renderer) logLine(line string) string {
	tag := display.LineTag(line)
	if tag == "" {
		return line
	}
	name := toneStyle(display.TagTone(tag))
	if name == "" {
		name = styles.Tag
	}
	return r.sheet.Render(name, tag) + line[len(tag):]
}

func toneStyle(t display.Tone) string {
	switch t {
	case display.ToneSuccess:
		return styles.Success
	case display.ToneWarning:
		return styles.Warning
	case display.ToneError:
		return styles.Error
	default:
		return ""
	}
}
