package display

import (
	"strings"

	"github.com/arthur-debert/savelink/pkg/detection"
	"github.com/arthur-debert/savelink/pkg/operations"
	"github.com/arthur-debert/savelink/pkg/types"
)

// NotFound is shown in place of a path that detection could not find
const NotFound = "not found"

// BackupTimeLayout is how backup creation times are shown
const BackupTimeLayout = "2006-01-02 15:04:05"

// Convert builds the document for a known result type. The second return is
// false for types the renderers do not know how to lay out.
func Convert(v interface{}) (Document, bool) {
	switch r := v.(type) {
	case *types.OperationResult:
		return fromOperation(r), true
	case types.OperationResult:
		return fromOperation(&r), true
	case *detection.Result:
		return fromDetection(r), true
	case detection.Result:
		return fromDetection(&r), true
	case *StatusView:
		return fromStatus(r), true
	case *Message:
		return Document{Summary: r.Message}, true
	case *Outcome:
		doc := Document{Summary: r.Message, Tone: ToneSuccess}
		if !r.Success {
			doc.Tone = ToneError
		}
		return doc, true
	default:
		return Document{}, false
	}
}

func fromOperation(r *types.OperationResult) Document {
	doc := Document{
		Title:   strings.ToUpper(r.Kind.String()[:1]) + r.Kind.String()[1:],
		Log:     r.Log,
		Summary: r.Message,
		Tone:    ToneSuccess,
	}
	if !r.Success {
		doc.Tone = ToneError
	}
	return doc
}

func fromDetection(r *detection.Result) Document {
	doc := Document{
		Title: "Detection",
		Fields: []Field{
			{Label: "Platform", Value: r.Platform},
			pathField("Installation", r.Installation),
			pathField("Saves", r.Saves),
		},
		Tone: ToneSuccess,
	}
	if !r.Found() {
		doc.Tone = ToneWarning
		doc.Notes = append(doc.Notes, Note{
			Text: "Save folder not found. " + r.Hint,
			Tone: ToneWarning,
		})
	}
	return doc
}

func pathField(label, value string) Field {
	if value == "" {
		return Field{Label: label, Value: NotFound, Tone: ToneWarning}
	}
	return Field{Label: label, Value: value, Path: true}
}

func fromStatus(v *StatusView) Document {
	doc := Document{
		Title: "Status",
		Fields: []Field{
			{Label: "Path", Value: v.Path, Path: true},
			{Label: "State", Value: v.State.Kind.String()},
		},
		Tone: ToneSuccess,
	}
	if v.State.IsLink() {
		doc.Fields = append(doc.Fields, Field{Label: "Target", Value: v.State.Target, Path: true})
	}
	if v.ExpectedTarget != "" {
		doc.Fields = append(doc.Fields, Field{Label: "Expected", Value: v.ExpectedTarget, Path: true})
	}
	if v.Backup != nil {
		doc.Fields = append(doc.Fields,
			Field{Label: "Backup", Value: v.Backup.BackupPath, Path: true},
			Field{Label: "Backed up", Value: v.Backup.CreatedAt.Local().Format(BackupTimeLayout)},
		)
	} else {
		doc.Fields = append(doc.Fields, Field{Label: "Backup", Value: "none", Tone: ToneWarning})
	}
	if v.Problem != "" {
		doc.Tone = ToneWarning
		doc.Notes = append(doc.Notes, Note{Text: v.Problem, Tone: ToneWarning})
	}
	return doc
}

// LabelWidth is the width of the widest label, for aligning values
func (d Document) LabelWidth() int {
	width := 0
	for _, f := range d.Fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	return width
}

// LineTag returns the bracketed tag a log line starts with, or ""
func LineTag(line string) string {
	if !strings.HasPrefix(line, "[") {
		return ""
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return ""
	}
	return line[:end+1]
}

// TagTone maps a log tag to how it should be shown
func TagTone(tag string) Tone {
	switch tag {
	case operations.TagOK:
		return ToneSuccess
	case operations.TagWarning:
		return ToneWarning
	case operations.TagError:
		return ToneError
	default:
		return ToneNeutral
	}
}
