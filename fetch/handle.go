package fetch

// Handle mutates a request context. It returns an error when its value
// cannot be applied.
type Handle func(*Context) error

// Compose chains handles into one. Later handles see the effects of earlier
// ones and the first error stops the chain.
func Compose(handles ...Handle) Handle {
	return func(ctx *Context) error {
		return apply(ctx, handles)
	}
}

func apply(ctx *Context, handles []Handle) error {
	for _, h := range handles {
		if h == nil {
			continue
		}
		if err := h(ctx); err != nil {
			return err
		}
	}
	return nil
}

// WithPath sets a path segment. Merge appends the segment after the
// existing ones.
func WithPath(path string, strategy Strategy) Handle {
	switch strategy {
	case SetOnce:
		return func(ctx *Context) error {
			if len(ctx.Paths) > 0 {
				return conflict("WithPath", "paths")
			}
			ctx.Paths = []string{path}
			return nil
		}
	case Replace:
		return func(ctx *Context) error {
			ctx.Paths = []string{path}
			return nil
		}
	case Merge:
		return func(ctx *Context) error {
			paths := make([]string, 0, len(ctx.Paths)+1)
			paths = append(paths, ctx.Paths...)
			ctx.Paths = append(paths, path)
			return nil
		}
	default:
		return invalidStrategy("WithPath", strategy)
	}
}

// WithQuery sets query parameters. Merge appends the new pairs after the
// existing ones and keeps both values on a key collision.
func WithQuery(query Query, strategy Strategy) Handle {
	query = append(Query(nil), query...)
	switch strategy {
	case SetOnce:
		return func(ctx *Context) error {
			if len(ctx.Query) > 0 {
				return conflict("WithQuery", "query")
			}
			ctx.Query = query.concat(nil)
			return nil
		}
	case Replace:
		return func(ctx *Context) error {
			ctx.Query = query.concat(nil)
			return nil
		}
	case Merge:
		return func(ctx *Context) error {
			ctx.Query = ctx.Query.concat(query)
			return nil
		}
	default:
		return invalidStrategy("WithQuery", strategy)
	}
}

// WithRequestInit sets the request options as a whole. Merge writes the
// populated fields of init over the existing ones.
func WithRequestInit(init RequestInit, strategy Strategy) Handle {
	switch strategy {
	case SetOnce:
		return func(ctx *Context) error {
			if ctx.Init != nil {
				return conflict("WithRequestInit", "init")
			}
			ctx.Init = init.clone()
			return nil
		}
	case Replace:
		return func(ctx *Context) error {
			ctx.Init = init.clone()
			return nil
		}
	case Merge:
		return func(ctx *Context) error {
			if ctx.Init == nil {
				ctx.Init = init.clone()
				return nil
			}
			ctx.Init = ctx.Init.merge(init)
			return nil
		}
	default:
		return invalidStrategy("WithRequestInit", strategy)
	}
}

// WithHeaders sets request headers. Merge is a case-insensitive union that
// keeps every value of a name present on both sides.
func WithHeaders(header Header, strategy Strategy) Handle {
	header = append(Header(nil), header...)
	switch strategy {
	case SetOnce:
		return func(ctx *Context) error {
			if ctx.Init != nil && len(ctx.Init.Header) > 0 {
				return conflict("WithHeaders", "headers")
			}
			init := ctx.Init.clone()
			init.Header = header.merge(nil)
			ctx.Init = init
			return nil
		}
	case Replace:
		return func(ctx *Context) error {
			init := ctx.Init.clone()
			init.Header = header.merge(nil)
			ctx.Init = init
			return nil
		}
	case Merge:
		return func(ctx *Context) error {
			init := ctx.Init.clone()
			init.Header = init.Header.merge(header)
			ctx.Init = init
			return nil
		}
	default:
		return invalidStrategy("WithHeaders", strategy)
	}
}

// WithHeader merges a single header field.
func WithHeader(name, value string) Handle {
	return WithHeaders(NewHeader(name, value), Merge)
}

// WithResponder sets the single responder. A single value has nothing to
// merge with, so Merge behaves like Replace.
func WithResponder(responder Responder, strategy Strategy) Handle {
	switch strategy {
	case SetOnce:
		return func(ctx *Context) error {
			if ctx.Responder != nil {
				return conflict("WithResponder", "responder")
			}
			ctx.Responder = responder
			return nil
		}
	case Replace, Merge:
		return func(ctx *Context) error {
			ctx.Responder = responder
			return nil
		}
	default:
		return invalidStrategy("WithResponder", strategy)
	}
}

// WithResponders sets the responder list. Merge puts the supplied
// responders in front of the existing ones.
func WithResponders(responders []Responder, strategy Strategy) Handle {
	responders = append([]Responder(nil), responders...)
	switch strategy {
	case SetOnce:
		return func(ctx *Context) error {
			if len(ctx.Responders) > 0 {
				return conflict("WithResponders", "responders")
			}
			ctx.Responders = append([]Responder(nil), responders...)
			return nil
		}
	case Replace:
		return func(ctx *Context) error {
			ctx.Responders = append([]Responder(nil), responders...)
			return nil
		}
	case Merge:
		return func(ctx *Context) error {
			merged := make([]Responder, 0, len(responders)+len(ctx.Responders))
			merged = append(merged, responders...)
			ctx.Responders = append(merged, ctx.Responders...)
			return nil
		}
	default:
		return invalidStrategy("WithResponders", strategy)
	}
}

// WithTransport overrides the transport.
func WithTransport(t Transport) Handle {
	return func(ctx *Context) error {
		ctx.Transport = t
		return nil
	}
}
