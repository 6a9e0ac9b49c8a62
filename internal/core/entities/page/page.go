package page

import (
	"github.com/placescout/placescout/internal/core/entities/server"
)

// Page is one page of a cursor-paginated server listing.
// An empty NextCursor means the listing is exhausted.
type Page struct {
	Servers    []server.Server
	NextCursor string
}

func New(servers []server.Server, nextCursor string) Page {
	return Page{
		Servers:    servers,
		NextCursor: nextCursor,
	}
}

func (p Page) IsLast() bool {
	return p.NextCursor == ""
}
