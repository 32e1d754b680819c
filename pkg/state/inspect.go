package state

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Problems reported by Inspect
const (
	ProblemTargetMissing  = "link target missing"
	ProblemTargetNotDir   = "link target is not a directory"
	ProblemWrongTarget    = "link points somewhere else"
	ProblemNotADirectory  = "save location is a file"
	ProblemUnreadableLink = "cannot read link target"
)

// LinkReport describes a save location as found on disk
type LinkReport struct {
	Path           string          `json:"path" yaml:"path"`
	State          types.LinkState `json:"state" yaml:"state"`
	ExpectedTarget string          `json:"expected_target,omitempty" yaml:"expected_target,omitempty"`
	Problem        string          `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// Healthy reports whether no problem was found
func (r LinkReport) Healthy() bool {
	return r.Problem == ""
}

// Inspect classifies path and checks a link's chain. When expectedTarget is
// set, a link pointing anywhere else is reported as a problem.
func Inspect(path, expectedTarget string) (LinkReport, error) {
	logger := logging.GetLogger("state.inspect")

	st, err := paths.Classify(path)
	if err != nil {
		return LinkReport{}, err
	}

	report := LinkReport{Path: path, State: st, ExpectedTarget: expectedTarget}

	switch st.Kind {
	case types.StateRegularFile:
		report.Problem = ProblemNotADirectory
	case types.StateLink:
		report.Problem = checkLinkTarget(st.Target, expectedTarget)
	}

	logger.Debug().
		Str("path", path).
		Str("state", st.Kind.String()).
		Str("target", st.Target).
		Str("problem", report.Problem).
		Msg("Inspected save location")

	return report, nil
}

func checkLinkTarget(target, expected string) string {
	if target == "" {
		return ProblemUnreadableLink
	}

	info, err := os.Stat(target)
	if err != nil {
		return ProblemTargetMissing
	}
	if !info.IsDir() {
		return ProblemTargetNotDir
	}

	if expected != "" && !samePath(target, expected) {
		return ProblemWrongTarget
	}
	return ""
}

// samePath compares two paths after resolving symlinks where possible
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	return errA == nil && errB == nil && ra == rb
}
