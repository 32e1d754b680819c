// Package display turns command results into a format-neutral document that
// the text and terminal renderers lay out.
package display

import (
	"github.com/arthur-debert/savelink/pkg/state"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Tone says how a line should be presented
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneWarning
	ToneError
)

// Field is one labelled value
type Field struct {
	Label string
	Value string
	Tone  Tone
	Path  bool
}

// Note is a free-standing line after the fields
type Note struct {
	Text string
	Tone Tone
}

// Document is what renderers lay out. Log lines keep their bracketed tag.
type Document struct {
	Title   string
	Fields  []Field
	Log     []string
	Notes   []Note
	Summary string
	Tone    Tone
}

// StatusView is the status command's result: what lives at a save folder
// path and whether a backup is known for it.
type StatusView struct {
	state.LinkReport `yaml:",inline"`
	IsHealthy        bool                `json:"healthy" yaml:"healthy"`
	HasBackup        bool                `json:"has_backup" yaml:"has_backup"`
	Backup           *types.BackupRecord `json:"backup,omitempty" yaml:"backup,omitempty"`
}

// NewStatusView combines an inspection with the known backup, if any
func NewStatusView(report state.LinkReport, record types.BackupRecord, hasBackup bool) *StatusView {
	view := &StatusView{LinkReport: report, IsHealthy: report.Healthy(), HasBackup: hasBackup}
	if hasBackup {
		view.Backup = &record
	}
	return view
}

// Message is a single line of output, used by RenderMessage
type Message struct {
	Message string `json:"message" yaml:"message"`
}

// Outcome closes an operation whose log lines were already streamed
type Outcome struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}

// ErrorView is how an error is written in machine formats
type ErrorView struct {
	Error string `json:"error" yaml:"error"`
	Code  string `json:"code,omitempty" yaml:"code,omitempty"`
}
