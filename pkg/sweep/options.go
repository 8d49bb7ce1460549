package sweep

import (
	"io"

	"github.com/patrolio/sessionsweep/internal/ports"
	"github.com/patrolio/sessionsweep/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Option configures optional behavior of Run.
type Option func(*options)

type options struct {
	httpClient HTTPClient
	logger     log.Logger
	out        io.Writer
	runID      string
}

// WithHTTPClient replaces the default client. The default client adds no
// headers of its own and honours Config.HTTPTimeout.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutput sets where a successful response body is written.
// If not provided, the body is discarded.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithRunID fixes the id attached to log lines instead of a random one.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}
