package fetch

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/kbukum/fetchkit/errors"
)

// Sentinels for errors.Is checks. Returned errors are fresh values that carry
// call details and match these by code.
var (
	// ErrConfigurationConflict is returned by a SetOnce handle whose field is already set.
	ErrConfigurationConflict = apperrors.New(apperrors.ErrCodeConfigurationConflict, "configuration conflict")
	// ErrMissingPath is returned when a request is dispatched without a path.
	ErrMissingPath = apperrors.New(apperrors.ErrCodeMissingPath, "no path provided")
	// ErrMissingResponder is returned when a request is dispatched without a responder.
	ErrMissingResponder = apperrors.New(apperrors.ErrCodeMissingResponder, "no responder provided")
	// ErrMissingTransport is returned when a request is dispatched without a transport.
	ErrMissingTransport = apperrors.New(apperrors.ErrCodeMissingTransport, "no transport configured")
	// ErrFetchFailed matches every *FetchError.
	ErrFetchFailed = apperrors.New(apperrors.ErrCodeFetchFailed, "fetch failed")
)

func conflict(handle, field string) error {
	return apperrors.ConfigurationConflict(field).WithDetail("handle", handle)
}

func invalidStrategy(handle string, s Strategy) Handle {
	return func(*Context) error {
		return apperrors.InvalidInput("strategy", "unknown strategy "+strconv.Itoa(int(s))).
			WithDetail("handle", handle)
	}
}

func missingPath() error {
	return apperrors.New(apperrors.ErrCodeMissingPath, "no path provided")
}

func missingResponder() error {
	return apperrors.New(apperrors.ErrCodeMissingResponder, "no responder provided")
}

func missingTransport() error {
	return apperrors.New(apperrors.ErrCodeMissingTransport, "no transport configured")
}

func emptyResponse(target string) error {
	return apperrors.New(apperrors.ErrCodeMissingTransport, "transport returned no response").
		WithDetail("target", target)
}

// FetchError reports a response whose status is not a success. Its message
// is the status reason phrase and it keeps the buffered response, so the
// status code, headers and body stay available to the caller.
type FetchError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Message is the status reason phrase (e.g. "Not Found").
	Message string
	// Response is the buffered response. Its body can still be read.
	Response *Response
	// Data is the decoded body when the server answered with JSON.
	Data any
}

// Error returns the status reason phrase.
func (e *FetchError) Error() string {
	return e.Message
}

// Is matches ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*apperrors.AppError)
	return ok && t.Code == apperrors.ErrCodeFetchFailed
}

// NewFetchError builds the error for a failed response. A JSON body is
// decoded into Data when possible.
func NewFetchError(res *Response) *FetchError {
	fe := &FetchError{
		StatusCode: res.StatusCode,
		Message:    res.Status,
		Response:   res,
	}
	if isJSON(res.Header.Get("Content-Type")) {
		var data any
		if err := res.JSON(&data); err == nil {
			fe.Data = data
		}
	}
	return fe
}

// AsFetchError returns the first *FetchError in err's chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsFetchError checks if an error is a FetchError.
func IsFetchError(err error) bool {
	_, ok := AsFetchError(err)
	return ok
}

// IsNotFound checks if the error is a FetchError with status 404.
func IsNotFound(err error) bool {
	fe, ok := AsFetchError(err)
	return ok && fe.StatusCode == http.StatusNotFound
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(strings.TrimSpace(contentType), "application/json")
}
