// Package fetch builds HTTP requests from small composable handles and turns
// the response into typed values through responders.
//
// A Fetcher is created once from binding-time handles (base URL, transport,
// default responder). Every call copies that base context, applies the
// call-time handles in order, validates the result and hands the request to
// the transport. The buffered response is then dispatched to one responder
// (its value is returned as is) or to several responders running
// concurrently (their values are returned as []any in registration order).
//
// # Basic Usage
//
//	users, err := fetch.New(
//	    fetch.WithPath("https://api.example.com/users", fetch.SetOnce),
//	    fetch.WithResponder(fetch.RespondJSON, fetch.SetOnce),
//	)
//	if err != nil {
//	    return err
//	}
//
//	user, err := users.Do(ctx,
//	    fetch.WithPath("5", fetch.Merge),
//	    fetch.WithMethod(http.MethodPatch),
//	    fetch.WithJSONBody(map[string]any{"name": "x"}),
//	)
//
// # Strategies
//
// Field-writing handles take a Strategy. SetOnce fails with
// ErrConfigurationConflict when the field is already populated, Replace
// overwrites it and Merge combines the new value with the existing one.
// Handles never write through collections shared with another context, so
// the base context of a Fetcher is never changed by call-time handles.
package fetch
