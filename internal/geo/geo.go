package geo

import (
	"context"
	"fmt"
)

// Place is a coarse human-readable location derived from an IP address.
type Place struct {
	City        string
	CountryCode string
}

func (p Place) IsZero() bool {
	return p.City == "" && p.CountryCode == ""
}

// Label renders the place as the display string attached to a server,
// e.g. "Frankfurt, DE".
func (p Place) Label() string {
	switch {
	case p.City == "":
		return p.CountryCode
	case p.CountryCode == "":
		return p.City
	default:
		return fmt.Sprintf("%s, %s", p.City, p.CountryCode)
	}
}

// Resolver maps an IP address to a Place. Lookups are best effort:
// callers treat any failure as non-fatal and fall back to the raw address.
type Resolver interface {
	Locate(ctx context.Context, ip string) (Place, error)
}
