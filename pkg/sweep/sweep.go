package sweep

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/patrolio/sessionsweep/internal/domain"
	"github.com/patrolio/sessionsweep/internal/invoker"
	"github.com/patrolio/sessionsweep/pkg/log"
)

// Errors returned by Run. Use errors.Is to test for them.
var (
	ErrMissingAPIKey    = domain.ErrMissingAPIKey
	ErrTransport        = domain.ErrTransport
	ErrUnexpectedStatus = domain.ErrUnexpectedStatus
)

// StatusError describes a non-2xx response. Retrieve it with errors.As.
type StatusError = domain.StatusError

// Result summarises a successful sweep.
type Result = invoker.Result

// DefaultServiceURL is the patrol sessions service.
const DefaultServiceURL = invoker.DefaultBaseURL

// Config holds what a sweep needs.
type Config struct {
	// ServiceURL is the service base. Tests point it at a local server.
	ServiceURL string
	// APIKey is sent as X-API-KEY.
	APIKey string
	// HTTPTimeout bounds the whole request when the default client is used.
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config pointing at the production service.
func DefaultConfig() Config {
	return Config{
		ServiceURL:  DefaultServiceURL,
		HTTPTimeout: 30 * time.Second,
	}
}

// Endpoint returns the URL a sweep with cfg would hit.
func (c Config) Endpoint() string {
	base := c.ServiceURL
	if base == "" {
		base = DefaultServiceURL
	}
	return invoker.TargetURL(base, invoker.InactiveMinutes)
}

// Run performs one sweep.
func Run(ctx context.Context, cfg Config, opts ...Option) (Result, error) {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = invoker.NewHTTPClient(cfg.HTTPTimeout)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}

	inv := invoker.New(o.httpClient, o.logger, o.out)
	return inv.Invoke(ctx, invoker.Request{
		URL:    cfg.Endpoint(),
		APIKey: cfg.APIKey,
		RunID:  o.runID,
	})
}
