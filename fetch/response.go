package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Response is a fully buffered view of a transport response. The body is
// read once; every accessor works on that buffer, so any number of
// responders can read it, concurrently and in any order.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the reason phrase for StatusCode (e.g. "Not Found").
	Status string
	// Header holds the response headers.
	Header http.Header

	body []byte
}

// NewResponse builds a Response from its parts.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}
	return &Response{
		StatusCode: statusCode,
		Status:     statusReason(statusCode, ""),
		Header:     header,
		body:       body,
	}
}

// readResponse drains and closes the transport body.
func readResponse(res *http.Response) (*Response, error) {
	var body []byte
	if res.Body != nil {
		defer func() { _ = res.Body.Close() }()
		var err error
		body, err = io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("fetch: read response body: %w", err)
		}
	}
	header := res.Header
	if header == nil {
		header = make(http.Header)
	}
	return &Response{
		StatusCode: res.StatusCode,
		Status:     statusReason(res.StatusCode, res.Status),
		Header:     header,
		body:       body,
	}, nil
}

// OK returns true if the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Bytes returns a copy of the body.
func (r *Response) Bytes() []byte {
	return bytes.Clone(r.body)
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.body)
}

// Body returns a fresh reader over the body.
func (r *Response) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(r.body))
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.body, v)
}

// Len returns the body size in bytes.
func (r *Response) Len() int {
	return len(r.body)
}

// statusReason returns the reason phrase for code. Codes unknown to
// net/http fall back to the phrase of the raw status line ("599 Custom").
func statusReason(code int, status string) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason != "" {
		return reason
	}
	return strconv.Itoa(code)
}
