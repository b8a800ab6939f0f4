package dataprovider

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/kbukum/fetchkit/fetch"
)

type call struct {
	Target string
	Init   fetch.RequestInit
}

// stubTransport records calls and answers every request with one response.
type stubTransport struct {
	mu     sync.Mutex
	calls  []call
	status int
	header http.Header
	body   string
}

func newStub(status int, body string, kv ...string) *stubTransport {
	h := http.Header{"Content-Type": []string{"application/json"}}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return &stubTransport{status: status, header: h, body: body}
}

func (s *stubTransport) Fetch(_ context.Context, target string, init fetch.RequestInit) (*http.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{Target: target, Init: init})
	s.mu.Unlock()
	return &http.Response{
		StatusCode: s.status,
		Header:     s.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func (s *stubTransport) last() call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}
