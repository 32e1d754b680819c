package types

// OperationKind selects which sequence of steps an operation runs
type OperationKind int

const (
	OperationMigrate OperationKind = iota
	OperationLink
	OperationRestore
)

// String returns the string representation of the operation kind
func (k OperationKind) String() string {
	switch k {
	case OperationMigrate:
		return "migrate"
	case OperationLink:
		return "link"
	case OperationRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name
func (k OperationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// OperationResult is what every operation hands back to the caller. Log holds
// the steps in the order they happened, so a failed result still tells how
// far the operation got.
type OperationResult struct {
	Kind    OperationKind `json:"kind" yaml:"kind"`
	Success bool          `json:"success" yaml:"success"`
	Message string        `json:"message" yaml:"message"`
	Log     []string      `json:"log" yaml:"log"`
}
