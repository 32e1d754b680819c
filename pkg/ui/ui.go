// Package ui renders command results in the format the user picked.
// Terminal and text output lay out a display.Document; JSON and YAML write
// the result values themselves.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/savelink/pkg/ui/json"
	"github.com/arthur-debert/savelink/pkg/ui/terminal"
	"github.com/arthur-debert/savelink/pkg/ui/text"
	"github.com/arthur-debert/savelink/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders an operation result, detection result or status view
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output when it is a file and falls back to text.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(Resolve(format, output), output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// Resolve turns FormatAuto into a concrete format for output
func Resolve(format Format, output io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if file, ok := output.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}
