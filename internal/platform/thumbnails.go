package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

var ErrNoThumbnail = errors.New("no thumbnail was resolved for the subject")

type thumbnailRequest struct {
	RequestID string `json:"requestId"`
	Type      string `json:"type"`
	TargetID  int64  `json:"targetId"`
	Token     string `json:"token,omitempty"`
	Size      string `json:"size"`
	Format    string `json:"format"`
}

type thumbnailData struct {
	RequestID string `json:"requestId"`
	TargetID  int64  `json:"targetId"`
	ImageURL  string `json:"imageUrl"`
}

type thumbnailsResponse struct {
	Data []thumbnailData `json:"data"`
}

// Headshot resolves the canonical avatar thumbnail URL for one user at
// the configured fingerprint size. The returned URL is the sole
// correlation key the locator has for player tokens.
func (c *Client) Headshot(ctx context.Context, userID int64) (string, error) {
	query := url.Values{}
	query.Set("userIds", strconv.FormatInt(userID, 10))
	query.Set("size", c.cfg.FingerprintSize)
	query.Set("format", "png")
	endpoint := fmt.Sprintf("%s/v1/users/avatar-headshot?%s", c.cfg.ThumbnailsBaseURL, query.Encode())

	var resp thumbnailsResponse
	if err := c.call(ctx, "headshot", http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].ImageURL == "" {
		return "", ErrNoThumbnail
	}
	return resp.Data[0].ImageURL, nil
}

// Thumbnails resolves a server's player tokens to avatar thumbnail URLs
// in a single batched round trip. The result preserves token order;
// tokens the upstream failed to resolve yield an empty string.
func (c *Client) Thumbnails(ctx context.Context, serverID string, tokens []string) ([]string, error) {
	batch := make([]thumbnailRequest, 0, len(tokens))
	for i, token := range tokens {
		batch = append(batch, thumbnailRequest{
			RequestID: fmt.Sprintf("%s:%d", serverID, i),
			Type:      "AvatarHeadShot",
			Token:     token,
			Size:      c.cfg.FingerprintSize,
			Format:    "png",
		})
	}
	endpoint := fmt.Sprintf("%s/v1/batch", c.cfg.ThumbnailsBaseURL)

	var resp thumbnailsResponse
	if err := c.call(ctx, "thumbnails", http.MethodPost, endpoint, batch, &resp); err != nil {
		return nil, err
	}

	// upstream does not guarantee response order, match by request id
	byRequest := make(map[string]string, len(resp.Data))
	for _, data := range resp.Data {
		byRequest[data.RequestID] = data.ImageURL
	}
	urls := make([]string, len(tokens))
	for i := range tokens {
		urls[i] = byRequest[fmt.Sprintf("%s:%d", serverID, i)]
	}
	return urls, nil
}
