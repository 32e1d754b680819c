// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	doc, ok := display.Convert(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := io.WriteString(r.output, Layout(doc))
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", errors.Message(err))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Layout writes a document as plain lines
func Layout(doc display.Document) string {
	var b strings.Builder

	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n")
	}

	width := doc.LabelWidth()
	for _, f := range doc.Fields {
		fmt.Fprintf(&b, "  %-*s  %s\n", width+1, f.Label+":", f.Value)
	}

	for _, line := range doc.Log {
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, n := range doc.Notes {
		b.WriteString(n.Text)
		b.WriteString("\n")
	}

	if doc.Summary != "" {
		b.WriteString(doc.Summary)
		b.WriteString("\n")
	}
	return b.String()
}
