package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"passenger-stats/utils"
)

// HTTPSource downloads the data set, e.g. an open-data JSON export.
// Network errors and 5xx responses are retried; other statuses are not.
type HTTPSource struct {
	url    string
	client *http.Client
	retry  *utils.RetryConfig
}

// NewHTTPSource creates an HTTPSource for url.
func NewHTTPSource(url string, timeout time.Duration, retry *utils.RetryConfig) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		retry:  retry,
	}
}

func (h *HTTPSource) Read(ctx context.Context) (string, error) {
	var body string
	err := h.retry.Do(ctx, "download-dataset", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
		if err != nil {
			return utils.Permanent(fmt.Errorf("http: build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := h.client.Do(req)
		if err != nil {
			return fmt.Errorf("http: get %s: %w", h.url, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("http: read body: %w", err)
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("http: server error %d", resp.StatusCode)
		}
		if resp.StatusCode >= 300 {
			return utils.Permanent(fmt.Errorf("http: unexpected status %d", resp.StatusCode))
		}
		body = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

func (h *HTTPSource) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
