package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/roomtimes/internal/schedule"
)

// ResponsePoster posts formatted results as JSON to a webhook response URL.
type ResponsePoster struct {
	httpClient *http.Client
}

// NewResponsePoster constructs a poster. A non-positive timeout disables the
// client-side bound; delivery is still bounded by the handler's context.
func NewResponsePoster(timeout time.Duration) *ResponsePoster {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &ResponsePoster{httpClient: client}
}

// Post serializes the result and delivers it to responseURL.
func (p *ResponsePoster) Post(ctx context.Context, responseURL string, result schedule.Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, responseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver reply: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delivery rejected with status %d", resp.StatusCode)
	}
	return nil
}
