package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client. Embedding exposes the full resty API while
// leaving room for agent-specific behaviour (shared headers, base URL).
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent, default-configured HTTP client with
// its own connection pool and state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
