package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "app-state-sync-client"

// HTTPClient is the resty client the device uses to talk to the relay.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. A zero timeout leaves
// requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
