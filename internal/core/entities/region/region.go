package region

// Region is the resolved network region of a single server instance,
// kept in a side cache keyed by server id rather than on the server
// record itself, so records from a replaced scan never resolve late.
type Region struct {
	Label   string
	Loading bool
}

var Blank Region // nolint: gochecknoglobals

// Pending marks a resolution in flight. The marker is written
// synchronously before any probe is issued, which is what makes
// duplicate resolutions for the same id short-circuit.
func Pending() Region {
	return Region{Loading: true}
}

func Resolved(label string) Region {
	return Region{Label: label}
}

func (r Region) IsResolved() bool {
	return !r.Loading
}
