package fetch

import "encoding/base64"

// DefaultAPIKeyHeader is the header used by WithAPIKeyHeader when name is empty.
const DefaultAPIKeyHeader = "X-API-Key"

// WithBearerAuth sets "Authorization: Bearer <token>", replacing any
// Authorization header already configured.
func WithBearerAuth(token string) Handle {
	return withAuthorization("Bearer " + token)
}

// WithBasicAuth sets HTTP Basic credentials, replacing any Authorization
// header already configured.
func WithBasicAuth(username, password string) Handle {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return withAuthorization("Basic " + cred)
}

// WithAPIKeyHeader sends key in the named header. An empty name means X-API-Key.
func WithAPIKeyHeader(name, key string) Handle {
	if name == "" {
		name = DefaultAPIKeyHeader
	}
	return func(ctx *Context) error {
		init := ctx.Init.clone()
		init.Header = init.Header.Set(name, key)
		ctx.Init = init
		return nil
	}
}

// WithAPIKeyQuery sends key as the named query parameter.
func WithAPIKeyQuery(name, key string) Handle {
	return WithQuery(NewQuery(name, key), Merge)
}

func withAuthorization(value string) Handle {
	return func(ctx *Context) error {
		init := ctx.Init.clone()
		init.Header = init.Header.Set("Authorization", value)
		ctx.Init = init
		return nil
	}
}
