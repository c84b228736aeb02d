package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/spelltimer/pkg/logger"
)

// requestIDHeader matches the header the service echoes back.
const requestIDHeader = "X-Request-ID"

// HTTPClient is a small JSON client for the spell timer API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string) *HTTPClient {
	// Timeouts come from the per-call context; awaits may legitimately run
	// for minutes.
	return &HTTPClient{client: &http.Client{}, baseURL: baseURL}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// PostJSON performs a POST request with a JSON body and the given request id.
func (c *HTTPClient) PostJSON(ctx context.Context, path, requestID string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}
	return c.client.Do(req)
}

// decodeBody reads and closes the response body into v.
func decodeBody(resp *http.Response, v any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// awaitPath builds the GET /spell/await query for a registered cooldown.
func awaitPath(summonerID int64, champion, spellName string) string {
	q := url.Values{}
	q.Set("summoner_id", strconv.FormatInt(summonerID, 10))
	q.Set("champion_name", champion)
	q.Set("spell_name", spellName)
	return "/spell/await?" + q.Encode()
}
