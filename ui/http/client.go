// Package http describes the requests the client makes to the service.
package http

import (
	"context"
	"io"
)

type (
	// Client makes HTTP requests.
	Client interface {
		// Do makes a HTTP request.
		Do(ctx context.Context, req Request) (*Response, error)
	}

	// Request is a call to an endpoint of the service.  Parameters are in the query of the url.
	Request struct {
		// Method is the HTTP method (GET/POST).
		Method string
		// URL is the address of the endpoint, with the query.
		URL string
		// AccessToken proves the identity of the player.  It is sent as a bearer token if set.
		AccessToken string
	}

	// Response is the answer of the service.  Successful responses have JSON bodies.  Failed ones have text bodies.
	Response struct {
		// Code is the HTTP status code.
		Code int
		// Body contains the response data.
		Body io.ReadCloser
	}
)

// Failed determines if the service could not handle the request.
func (r Response) Failed() bool {
	return r.Code >= 400
}
