package liveroute

// State is the lifecycle state of a live route.
type State uint8

const (
	// StateOnInit is the state before the first evaluation.
	StateOnInit State = iota

	// StateMatched means the primary path matched and the view renders
	// normally.
	StateMatched

	// StateHidden means only a live path matched; the view stays mounted
	// with display suppressed.
	StateHidden

	// StateUnmatched means nothing matched (or the view was force
	// unmounted) and nothing is rendered.
	StateUnmatched
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateOnInit:
		return "ON_INIT"
	case StateMatched:
		return "MATCHED"
	case StateHidden:
		return "HIDDEN"
	case StateUnmatched:
		return "UNMATCHED"
	default:
		return "UNKNOWN"
	}
}
