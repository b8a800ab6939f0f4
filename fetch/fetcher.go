package fetch

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Fetcher sends requests built from a fixed base context. It is safe for
// concurrent use: the base context is never modified after New returns.
type Fetcher struct {
	base *Context
}

// New applies the binding-time handles once and returns the Fetcher. The
// base context starts with ClientTransport(http.DefaultClient).
func New(handles ...Handle) (*Fetcher, error) {
	base := &Context{Transport: ClientTransport(http.DefaultClient)}
	if err := apply(base, handles); err != nil {
		return nil, err
	}
	return &Fetcher{base: base}, nil
}

// Extend returns a new Fetcher whose base context is a copy of f's with
// handles applied on top. f is left unchanged.
func (f *Fetcher) Extend(handles ...Handle) (*Fetcher, error) {
	base := f.base.Clone()
	if err := apply(base, handles); err != nil {
		return nil, err
	}
	return &Fetcher{base: base}, nil
}

// Do copies the base context, applies handles in order, sends the request
// and dispatches the response.
//
// With a single responder and an empty responder list the responder's value
// is returned directly. Otherwise the responder list followed by the single
// responder run concurrently and Do returns their values as []any in that
// order. The first responder error is returned and the other values are
// discarded.
func (f *Fetcher) Do(ctx context.Context, handles ...Handle) (any, error) {
	c, err := f.Prepare(handles...)
	if err != nil {
		return nil, err
	}
	target, err := c.Target()
	if err != nil {
		return nil, err
	}
	if c.Responder == nil && len(c.Responders) == 0 {
		return nil, missingResponder()
	}
	if c.Transport == nil {
		return nil, missingTransport()
	}

	raw, err := c.Transport.Fetch(ctx, target, c.RequestInit())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, emptyResponse(target)
	}
	res, err := readResponse(raw)
	if err != nil {
		return nil, err
	}
	return dispatch(ctx, c, res)
}

// Prepare returns the per-call context: a copy of the base context with
// handles applied. Nothing is sent.
func (f *Fetcher) Prepare(handles ...Handle) (*Context, error) {
	c := f.base.Clone()
	if err := apply(c, handles); err != nil {
		return nil, err
	}
	return c, nil
}

func dispatch(ctx context.Context, c *Context, res *Response) (any, error) {
	if c.Responder != nil && len(c.Responders) == 0 {
		return c.Responder(ctx, res)
	}

	responders := make([]Responder, 0, len(c.Responders)+1)
	responders = append(responders, c.Responders...)
	if c.Responder != nil {
		responders = append(responders, c.Responder)
	}

	results := make([]any, len(responders))
	g, gctx := errgroup.WithContext(ctx)
	for i, respond := range responders {
		g.Go(func() error {
			v, err := respond(gctx, res)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
