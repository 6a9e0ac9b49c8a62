package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/placescout/placescout/internal/geo"
)

var ErrEmptyLookup = errors.New("geo lookup returned no location")

type lookupResponse struct {
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
}

// Resolver queries an external HTTP geolocation service.
type Resolver struct {
	http    *http.Client
	baseURL string
}

func New(baseURL string) *Resolver {
	return &Resolver{
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (r *Resolver) Locate(ctx context.Context, ip string) (geo.Place, error) {
	endpoint := fmt.Sprintf("%s/json/%s?fields=city,countryCode", r.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return geo.Place{}, err
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return geo.Place{}, err
	}
	defer resp.Body.Close() // nolint: errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return geo.Place{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return geo.Place{}, fmt.Errorf("geo lookup returned status %d", resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return geo.Place{}, err
	}

	place := geo.Place{City: parsed.City, CountryCode: parsed.CountryCode}
	if place.IsZero() {
		return geo.Place{}, ErrEmptyLookup
	}
	return place, nil
}
