package fetch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Responder derives a value from a completed response.
type Responder func(ctx context.Context, res *Response) (any, error)

// RespondJSON decodes a successful response body as JSON. Any non-2xx
// response fails with a *FetchError; a JSON error body is decoded into its
// Data field.
func RespondJSON(_ context.Context, res *Response) (any, error) {
	return decodeJSON[any](res)
}

// RespondJSONAs is RespondJSON decoding into T.
func RespondJSONAs[T any]() Responder {
	return func(_ context.Context, res *Response) (any, error) {
		v, err := decodeJSON[T](res)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// RespondText returns a successful response body as a string. Any non-2xx
// response fails with a *FetchError.
func RespondText(_ context.Context, res *Response) (any, error) {
	if !res.OK() {
		return nil, NewFetchError(res)
	}
	return res.Text(), nil
}

// HeaderTransform converts a header value.
type HeaderTransform func(value string) (any, error)

// RespondHeader reads one response header, joining repeated values with
// ", ". When transform is non-nil its result is returned instead of the
// raw value. The status code is not inspected.
func RespondHeader(name string, transform HeaderTransform) Responder {
	return func(_ context.Context, res *Response) (any, error) {
		value := strings.Join(res.Header.Values(name), ", ")
		if transform == nil {
			return value, nil
		}
		return transform(value)
	}
}

// HeaderInt parses a header value as a base-10 integer. A missing header
// yields 0.
func HeaderInt(value string) (any, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse header value %q: %w", value, err)
	}
	return n, nil
}

// decodeJSON decodes a success body into T. An empty success body yields
// the zero value.
func decodeJSON[T any](res *Response) (T, error) {
	var v T
	if !res.OK() {
		return v, NewFetchError(res)
	}
	if res.Len() == 0 {
		return v, nil
	}
	if err := res.JSON(&v); err != nil {
		return v, fmt.Errorf("fetch: decode response: %w", err)
	}
	return v, nil
}
