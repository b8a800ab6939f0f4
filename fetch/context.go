package fetch

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Param is one entry of an ordered multi-map.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered multi-map of query parameters. Duplicate keys are
// allowed and insertion order is preserved.
type Query []Param

// NewQuery builds a Query from alternating key/value pairs. A trailing key
// without a value is dropped.
func NewQuery(kvs ...string) Query {
	q := make(Query, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		q = append(q, Param{Key: kvs[i], Value: kvs[i+1]})
	}
	return q
}

// QueryFromValues converts url.Values into a Query. Keys are emitted in
// sorted order, values keep their order within a key.
func QueryFromValues(v url.Values) Query {
	q := make(Query, 0, len(v))
	for _, k := range slices.Sorted(maps.Keys(v)) {
		for _, val := range v[k] {
			q = append(q, Param{Key: k, Value: val})
		}
	}
	return q
}

// Add returns a new Query with key=value appended. The receiver is not modified.
func (q Query) Add(key, value string) Query {
	out := make(Query, len(q), len(q)+1)
	copy(out, q)
	return append(out, Param{Key: key, Value: value})
}

// Get returns the first value for key, or "".
func (q Query) Get(key string) string {
	for _, p := range q {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// Values returns every value stored for key in insertion order.
func (q Query) Values(key string) []string {
	var out []string
	for _, p := range q {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Encode returns the URL-encoded query string ("a=1&b=2") in insertion order.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func (q Query) concat(other Query) Query {
	out := make(Query, 0, len(q)+len(other))
	out = append(out, q...)
	return append(out, other...)
}

// Header is an ordered multi-map of header fields. Lookups compare names
// case-insensitively; a name present several times keeps every value.
type Header []Param

// NewHeader builds a Header from alternating name/value pairs.
func NewHeader(kvs ...string) Header {
	return Header(NewQuery(kvs...))
}

// Get returns the first value for name, or "".
func (h Header) Get(name string) string {
	for _, p := range h {
		if strings.EqualFold(p.Key, name) {
			return p.Value
		}
	}
	return ""
}

// Values returns every value stored for name in insertion order.
func (h Header) Values(name string) []string {
	var out []string
	for _, p := range h {
		if strings.EqualFold(p.Key, name) {
			out = append(out, p.Value)
		}
	}
	return out
}

// Has reports whether name is present.
func (h Header) Has(name string) bool {
	for _, p := range h {
		if strings.EqualFold(p.Key, name) {
			return true
		}
	}
	return false
}

// Add returns a new Header with name: value appended.
func (h Header) Add(name, value string) Header {
	out := make(Header, len(h), len(h)+1)
	copy(out, h)
	return append(out, Param{Key: name, Value: value})
}

// Set returns a new Header where name holds only value.
func (h Header) Set(name, value string) Header {
	out := make(Header, 0, len(h)+1)
	for _, p := range h {
		if !strings.EqualFold(p.Key, name) {
			out = append(out, p)
		}
	}
	return append(out, Param{Key: name, Value: value})
}

// HTTP converts the header into a net/http header.
func (h Header) HTTP() http.Header {
	out := make(http.Header, len(h))
	for _, p := range h {
		out.Add(p.Key, p.Value)
	}
	return out
}

// merge returns the case-insensitive union of h and other. Both values of a
// name present on each side are kept.
func (h Header) merge(other Header) Header {
	out := make(Header, 0, len(h)+len(other))
	out = append(out, h...)
	return append(out, other...)
}

func (h Header) hasPair(name, value string) bool {
	for _, p := range h {
		if strings.EqualFold(p.Key, name) && p.Value == value {
			return true
		}
	}
	return false
}

// RequestInit holds the request options handed to the transport.
type RequestInit struct {
	// Method is the HTTP method. Empty lets the transport pick its default (GET).
	Method string
	// Header holds the request headers.
	Header Header
	// Body is the raw request payload. Nil means no body.
	Body []byte
}

// clone copies the receiver, including its header slice. A nil receiver
// yields an empty RequestInit.
func (i *RequestInit) clone() *RequestInit {
	if i == nil {
		return &RequestInit{}
	}
	out := *i
	if i.Header != nil {
		out.Header = append(Header(nil), i.Header...)
	}
	return &out
}

// merge returns init with the populated fields of other written over it.
func (i *RequestInit) merge(other RequestInit) *RequestInit {
	out := i.clone()
	if other.Method != "" {
		out.Method = other.Method
	}
	if other.Header != nil {
		out.Header = append(Header(nil), other.Header...)
	}
	if other.Body != nil {
		out.Body = other.Body
	}
	return out
}

// Context is the request descriptor accumulated by handles.
//
// Handles treat every slice and the Init pointer as immutable: a change is
// made on a fresh copy that replaces the field. That is what keeps the
// shallow copy taken per call independent from the base context.
type Context struct {
	// Paths are joined with "/" to build the request target.
	Paths []string
	// Query is appended to the target when non-empty.
	Query Query
	// Init holds method, headers and body. Nil until a handle sets it.
	Init *RequestInit
	// Responders all run against the response, in registration order.
	Responders []Responder
	// Responder is returned unwrapped when it is the only responder.
	Responder Responder
	// Transport sends the request.
	Transport Transport
}

// Clone returns a shallow copy of c.
func (c *Context) Clone() *Context {
	cp := *c
	return &cp
}

// Target joins the paths and appends the encoded query. Each boundary gets
// exactly one "/" and empty segments are skipped. It fails with
// ErrMissingPath when no segment is left.
func (c *Context) Target() (string, error) {
	target := ""
	for _, p := range c.Paths {
		if p == "" {
			continue
		}
		if target == "" {
			target = p
			continue
		}
		target = strings.TrimRight(target, "/") + "/" + strings.TrimLeft(p, "/")
	}
	if target == "" {
		return "", missingPath()
	}
	if len(c.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + c.Query.Encode()
	}
	return target, nil
}

// RequestInit returns a copy of the accumulated request options.
func (c *Context) RequestInit() RequestInit {
	return *c.Init.clone()
}
