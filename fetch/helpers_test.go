package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
)

type recordedCall struct {
	Target string
	Init   RequestInit
}

// recorder is a Transport that records every call and answers with a
// canned response.
type recorder struct {
	mu     sync.Mutex
	calls  []recordedCall
	status int
	header http.Header
	body   string
	err    error
}

func newRecorder(status int, contentType, body string) *recorder {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &recorder{status: status, header: h, body: body}
}

func (r *recorder) Fetch(_ context.Context, target string, init RequestInit) (*http.Response, error) {
	r.mu.Lock()
	r.calls = append(r.calls, recordedCall{Target: target, Init: init})
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode: r.status,
		Status:     http.StatusText(r.status),
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body)),
	}, nil
}

func (r *recorder) last() recordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func constant(v any) Responder {
	return func(context.Context, *Response) (any, error) { return v, nil }
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
