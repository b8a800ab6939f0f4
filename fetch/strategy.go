package fetch

// Strategy selects how a handle combines its value with what the context
// already holds.
type Strategy int

const (
	// SetOnce writes the field only if it is empty and fails otherwise.
	SetOnce Strategy = iota
	// Replace overwrites the field unconditionally.
	Replace
	// Merge combines the new value with the existing one.
	Merge
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case SetOnce:
		return "set-once"
	case Replace:
		return "replace"
	case Merge:
		return "merge"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= SetOnce && s <= Merge
}
