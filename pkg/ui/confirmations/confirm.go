// Package confirmations asks the user before destructive steps.
package confirmations

import (
	"github.com/pterm/pterm"
)

// Confirmer asks a yes or no question
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Prompt asks on the terminal with pterm. The default answer is no.
type Prompt struct {
	Default bool
}

// NewPrompt creates a terminal prompt defaulting to no
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Confirm shows the question and waits for an answer
func (p *Prompt) Confirm(question string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(p.Default).
		Show(question)
}

// Static answers every question the same way. It is used for --yes and for
// output that nobody is watching.
type Static struct {
	Answer bool
	Asked  []string
}

// Confirm records the question and returns the fixed answer
func (s *Static) Confirm(question string) (bool, error) {
	s.Asked = append(s.Asked, question)
	return s.Answer, nil
}
