package xedi

// Composable is a sub-entity that composes itself into one or more segments,
// such as a NAD block added to a Report.
type Composable interface {
	// Compose validates and builds the segments. Errors are returned to the
	// parent composer unchanged.
	Compose() error
	// Composed returns the segments built by the last successful Compose.
	Composed() []Segment
}

var _ Composable = (*NameAndAddress)(nil)
