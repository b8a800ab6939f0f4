package dataprovider

import "github.com/kbukum/fetchkit/fetch"

// Defaults used when NewSimple receives empty values.
const (
	DefaultBase        = "/"
	DefaultCountHeader = "X-Total-Count"
)

// Simple holds the two fetchers every data provider operation goes through.
type Simple struct {
	// FetchOne returns the decoded JSON body.
	FetchOne *fetch.Fetcher
	// FetchMany returns []any{total int, body}.
	FetchMany *fetch.Fetcher
}

// NewSimple binds base as the leading path segment and a JSON responder,
// then applies handles. FetchMany extends FetchOne with a responder reading
// countHeader as an integer.
func NewSimple(base, countHeader string, handles ...fetch.Handle) (*Simple, error) {
	if base == "" {
		base = DefaultBase
	}
	if countHeader == "" {
		countHeader = DefaultCountHeader
	}

	baseHandles := make([]fetch.Handle, 0, len(handles)+2)
	baseHandles = append(baseHandles,
		fetch.WithPath(base, fetch.SetOnce),
		fetch.WithResponder(fetch.RespondJSON, fetch.SetOnce),
	)
	baseHandles = append(baseHandles, handles...)

	one, err := fetch.New(baseHandles...)
	if err != nil {
		return nil, err
	}
	many, err := one.Extend(fetch.WithResponders(
		[]fetch.Responder{fetch.RespondHeader(countHeader, fetch.HeaderInt)},
		fetch.Merge,
	))
	if err != nil {
		return nil, err
	}
	return &Simple{FetchOne: one, FetchMany: many}, nil
}
