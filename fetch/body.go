package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"

	apperrors "github.com/kbukum/fetchkit/errors"
)

const (
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"
	contentTypeForm   = "application/x-www-form-urlencoded"
)

// WithMethod sets the request method, keeping the other request options.
func WithMethod(method string) Handle {
	return func(ctx *Context) error {
		init := ctx.Init.clone()
		init.Method = method
		ctx.Init = init
		return nil
	}
}

// WithBody sets the raw request body, keeping the other request options.
// body is copied when the handle is built.
func WithBody(body []byte) Handle {
	body = bytes.Clone(body)
	return func(ctx *Context) error {
		init := ctx.Init.clone()
		init.Body = body
		ctx.Init = init
		return nil
	}
}

// WithJSONBody sets a JSON request body and merges Content-Type:
// application/json into the headers. Strings, []byte and json.RawMessage
// are sent as they are; any other value, nil included, is encoded with
// encoding/json.
// The value is encoded once, when the handle is built.
func WithJSONBody(body any) Handle {
	var (
		data []byte
		err  error
	)
	switch v := body.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = bytes.Clone(v)
	case json.RawMessage:
		data = bytes.Clone(v)
	default:
		data, err = json.Marshal(v)
		if err != nil {
			err = apperrors.InvalidInput("body", fmt.Sprintf("encode JSON body: %v", err)).WithCause(err)
		}
	}
	return func(ctx *Context) error {
		if err != nil {
			return err
		}
		return setBody(ctx, data, contentTypeJSON)
	}
}

// WithFormBody sets an application/x-www-form-urlencoded body.
func WithFormBody(values url.Values) Handle {
	data := []byte(QueryFromValues(values).Encode())
	return func(ctx *Context) error {
		return setBody(ctx, data, contentTypeForm)
	}
}

// WithFormData sets a multipart/form-data body built from form. The form is
// encoded once, when the handle is built.
func WithFormData(form *MultipartBody) Handle {
	data, contentType, err := form.encode()
	return func(ctx *Context) error {
		if err != nil {
			return apperrors.InvalidInput("body", fmt.Sprintf("encode multipart body: %v", err)).WithCause(err)
		}
		return setBody(ctx, data, contentType)
	}
}

// setBody writes the body and merges the content type without dropping the
// headers already configured. An identical Content-Type pair is not repeated.
func setBody(ctx *Context, body []byte, contentType string) error {
	init := ctx.Init.clone()
	if !init.Header.hasPair(contentTypeHeader, contentType) {
		init.Header = init.Header.merge(NewHeader(contentTypeHeader, contentType))
	}
	init.Body = body
	ctx.Init = init
	return nil
}
