package types

// StateKind classifies what currently lives at a path.
type StateKind int

const (
	// StateMissing means nothing exists at the path, not even a dangling link.
	StateMissing StateKind = iota
	// StateRegularDirectory is a real directory (not a link or junction).
	StateRegularDirectory
	// StateRegularFile is a plain file where a directory was expected.
	StateRegularFile
	// StateLink is a symbolic link or directory junction, dangling or not.
	StateLink
)

// String returns the string representation of the state kind
func (k StateKind) String() string {
	switch k {
	case StateMissing:
		return "missing"
	case StateRegularDirectory:
		return "directory"
	case StateRegularFile:
		return "file"
	case StateLink:
		return "link"
	default:
		return "unknown"
	}
}

// LinkState is the classification of a single path at a point in time.
// Target is only set when Kind is StateLink.
type LinkState struct {
	Kind   StateKind `json:"kind" yaml:"kind"`
	Target string    `json:"target,omitempty" yaml:"target,omitempty"`
}

// IsLink reports whether the path is a link or junction
func (s LinkState) IsLink() bool {
	return s.Kind == StateLink
}

// MarshalText renders the kind by name so JSON and YAML output stay readable
func (k StateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
