// Package httpclient provides the production fetch.Transport for fetchkit.
//
// The Adapter owns an *http.Client configured with timeouts and TLS. For each
// exchange it resolves relative targets against BaseURL, fills in default
// headers, a user agent and a request id, traces the call with OpenTelemetry,
// records client metrics and logs the result. Failures to reach the server
// are classified as timeout or connection errors; HTTP status handling is
// left to fetch responders.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    Name:    "users",
//	    BaseURL: "https://api.example.com",
//	    Timeout: 10 * time.Second,
//	}, httpclient.WithLogger(log))
//
//	f, err := fetch.New(fetch.WithTransport(adapter), fetch.WithPath("users", fetch.SetOnce))
package httpclient
