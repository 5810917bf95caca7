// Package native makes HTTP requests with the net/http package.
package native

import (
	"context"
	"fmt"
	net_http "net/http"

	"github.com/jacobpatterson1549/codenames/ui/http"
)

// HTTPClient makes requests that accept JSON responses.
type HTTPClient struct {
	net_http.Client
}

// Do makes a HTTP request, authorizing it with the access token if the request has one.
func (c *HTTPClient) Do(ctx context.Context, req http.Request) (*http.Response, error) {
	httpRequest, err := net_http.NewRequestWithContext(ctx, req.Method, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %v request: %w", req.Method, err)
	}
	httpRequest.Header.Set("Accept", "application/json")
	if len(req.AccessToken) != 0 {
		httpRequest.Header.Set("Authorization", "Bearer "+req.AccessToken)
	}
	httpResponse, err := c.Client.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("requesting %v: %w", req.URL, err)
	}
	resp := http.Response{
		Code: httpResponse.StatusCode,
		Body: httpResponse.Body,
	}
	return &resp, nil
}
