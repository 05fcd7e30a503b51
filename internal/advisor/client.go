// Package advisor fetches narrative commentary for computed advice
// from a remote advisory service, with a deterministic local fallback.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finsight/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the API key is missing or rejected.
	ErrUnauthorized = errors.New("advisor: unauthorized (api key rejected)")
	// ErrRateLimited indicates the service rate limit was hit.
	ErrRateLimited = errors.New("advisor: rate limited")
)

// Client talks to the remote advisory service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client for the given endpoint. Returns nil if
// the base URL is empty, which callers treat as "fallback only".
func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{},
	}
}

// commentaryRequest is the wire payload sent to the service. Only the
// figures needed for narrative generation cross the wire.
type commentaryRequest struct {
	PersonalRate     float64  `json:"personal_rate"`
	LocationBaseline float64  `json:"location_baseline"`
	Severity         string   `json:"severity"`
	Tier             string   `json:"tier"`
	TopCategories    []string `json:"top_categories"`
	GoalCount        int      `json:"goal_count"`
	Recommendations  []string `json:"recommendations"`
}

type commentaryResponse struct {
	Commentary string `json:"commentary"`
}

// Commentary requests a narrative summary for the advice. The service
// sees aggregates only, never the raw profile.
func (c *Client) Commentary(ctx context.Context, res model.AdviceResult) (string, error) {
	payload := commentaryRequest{
		PersonalRate:     res.Inflation.PersonalRate,
		LocationBaseline: res.Inflation.LocationBaseline,
		Severity:         res.Inflation.Severity.String(),
		Tier:             res.Inflation.Tier,
		GoalCount:        len(res.Goals),
	}
	for i, contrib := range res.Inflation.Breakdown {
		if i >= 3 {
			break
		}
		payload.TopCategories = append(payload.TopCategories, contrib.Category)
	}
	for _, rec := range res.Recommendations {
		payload.Recommendations = append(payload.Recommendations, rec.Title)
	}

	body, err := c.post(ctx, "/v1/commentary", payload)
	if err != nil {
		return "", err
	}

	var parsed commentaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("advisor: parsing commentary: %w", err)
	}
	if strings.TrimSpace(parsed.Commentary) == "" {
		return "", errors.New("advisor: empty commentary")
	}
	return parsed.Commentary, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("advisor: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("advisor: creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advisor: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("advisor: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("advisor: reading response: %w", err)
	}
	return body, nil
}
