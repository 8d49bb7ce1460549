package ports

import "net/http"

// HTTPClient abstracts request execution so tests can stub the transport.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
