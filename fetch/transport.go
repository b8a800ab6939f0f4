package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// Transport sends a request built by a Fetcher. It is the only I/O
// boundary: errors it returns reach the caller unchanged.
type Transport interface {
	Fetch(ctx context.Context, target string, init RequestInit) (*http.Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, target string, init RequestInit) (*http.Response, error)

// Fetch calls f.
func (f TransportFunc) Fetch(ctx context.Context, target string, init RequestInit) (*http.Response, error) {
	return f(ctx, target, init)
}

// ClientTransport sends requests with client. A nil client means
// http.DefaultClient.
func ClientTransport(client *http.Client) Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return TransportFunc(func(ctx context.Context, target string, init RequestInit) (*http.Response, error) {
		req, err := NewHTTPRequest(ctx, target, init)
		if err != nil {
			return nil, err
		}
		return client.Do(req)
	})
}

// NewHTTPRequest builds the *http.Request described by target and init.
func NewHTTPRequest(ctx context.Context, target string, init RequestInit) (*http.Request, error) {
	var body io.Reader
	if init.Body != nil {
		body = bytes.NewReader(init.Body)
	}
	req, err := http.NewRequestWithContext(ctx, init.Method, target, body)
	if err != nil {
		return nil, err
	}
	if len(init.Header) > 0 {
		req.Header = init.Header.HTTP()
	}
	return req, nil
}
