package breaker

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient wraps a standard http.Client with circuit breaker behavior.
// Responses with a 5xx status count as failures.
type HTTPClient struct {
	Client *http.Client
	brk    *Breaker
}

func NewHTTPClient(name string, cfg Config, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{Client: httpClient, brk: New(name, cfg)}
}

func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	err := h.brk.Execute(req.Context(), func(ctx context.Context) error {
		r, err := h.Client.Do(req.WithContext(ctx))
		if err != nil {
			return err
		}
		if r.StatusCode >= 500 {
			_ = r.Body.Close()
			return fmt.Errorf("upstream status %d", r.StatusCode)
		}
		resp = r
		return nil
	})
	return resp, err
}

func (h *HTTPClient) State() State {
	return h.brk.State()
}
