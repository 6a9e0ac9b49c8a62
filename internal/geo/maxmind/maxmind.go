package maxmind

import (
	"context"
	"errors"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/placescout/placescout/internal/geo"
)

var (
	ErrInvalidIP = errors.New("address is not a valid ip")
	ErrNoRecord  = errors.New("database has no record for the ip")
)

// Resolver looks locations up in a local MaxMind city database,
// as an offline alternative to the web resolver.
type Resolver struct {
	db *geoip2.Reader
}

func Open(path string) (*Resolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Resolver{db: db}, nil
}

func (r *Resolver) Close() error {
	return r.db.Close()
}

func (r *Resolver) Locate(_ context.Context, ip string) (geo.Place, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return geo.Place{}, ErrInvalidIP
	}

	record, err := r.db.City(parsed)
	if err != nil {
		return geo.Place{}, err
	}

	place := geo.Place{
		City:        record.City.Names["en"],
		CountryCode: record.Country.IsoCode,
	}
	if place.IsZero() {
		return geo.Place{}, ErrNoRecord
	}
	return place, nil
}
