// Package sender drains the durable buffer in batches and ships them to the
// ingest endpoint, parking failed batches on the retry queue.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// APIClient abstracts the ingest endpoint so tests can swap in a fake.
type APIClient interface {
	// SendPayload POSTs one payload; any non-2xx response is an error.
	SendPayload(ctx context.Context, p wire.Payload) error
}

type httpAPIClient struct {
	url        string
	httpClient *http.Client
}

// NewAPIClient constructs a client for the ingest endpoint with a bounded
// per-request timeout.
func NewAPIClient(url string, timeout time.Duration) APIClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpAPIClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *httpAPIClient) SendPayload(ctx context.Context, p wire.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("sender: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sender: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sender: http do: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sender: unexpected status %d", resp.StatusCode)
	}
	return nil
}
