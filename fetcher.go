package harvest

import "context"

// Response is the outcome of a completed HTTP exchange. The body is
// returned for every status code; interpreting the status is the caller's
// concern (the traversal controller treats 403 as a blocking response).
type Response struct {
	StatusCode int
	Body       []byte
}

// Fetcher retrieves raw page bodies over HTTP.
//
// Implementations return an error only for transport-level failures
// (connect, DNS, timeout); a response with a non-2xx status is not an
// error. A hardened implementation may present browser-grade request
// characteristics to get past automated-access denial.
type Fetcher interface {
	// Fetch performs a GET request against url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
