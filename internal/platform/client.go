package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/placescout/placescout/internal/metrics"
)

const maxResponseSize = 1 << 20

type Config struct {
	GamesBaseURL      string
	ThumbnailsBaseURL string
	UsersBaseURL      string
	JoinBaseURL       string

	ViewerID        int64
	PageLimit       int
	FingerprintSize string

	RequestsPerSecond float64
	Burst             int
}

// Client talks to the game platform's public API.
// All calls are context-aware and throttled by a shared client-side
// rate limiter so that scans and probes cannot flood the upstream.
type Client struct {
	http    *http.Client
	cfg     Config
	limiter *rate.Limiter
	metrics *metrics.Collector
	logger  *zerolog.Logger
}

func NewClient(cfg Config, collector *metrics.Collector, logger *zerolog.Logger) *Client {
	dialer := &net.Dialer{
		Timeout:   6 * time.Second,
		KeepAlive: 15 * time.Second,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: 4,
	}
	return &Client{
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		metrics: collector,
		logger:  logger,
	}
}

func (c *Client) call(ctx context.Context, endpoint, method, url string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.ViewerID != 0 {
		req.Header.Set("X-Viewer-Id", strconv.FormatInt(c.cfg.ViewerID, 10))
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.PlatformRequestDurations.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	if err != nil {
		c.metrics.PlatformRequestErrors.WithLabelValues(endpoint).Inc()
		return err
	}
	defer resp.Body.Close() // nolint: errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.metrics.PlatformRequestErrors.WithLabelValues(endpoint).Inc()
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.PlatformRequestErrors.WithLabelValues(endpoint).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).Int("status", resp.StatusCode).
			Msg("Platform API request failed")
		return fmt.Errorf("platform api: %s returned status %d", endpoint, resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}
