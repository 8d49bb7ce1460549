// Package invoker performs the single authenticated GET against the
// inactive-sessions endpoint and maps the outcome to an error.
package invoker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrolio/sessionsweep/internal/domain"
	"github.com/patrolio/sessionsweep/internal/ports"
	"github.com/patrolio/sessionsweep/pkg/log"
)

const (
	// DefaultBaseURL is the patrol sessions service.
	DefaultBaseURL = "https://patrolio-patrol-sessions.onrender.com"

	// InactiveMinutes is the inactivity window baked into the endpoint path.
	InactiveMinutes = 15

	// APIKeyHeader is written with exactly this casing.
	APIKeyHeader = "X-API-KEY"

	// maxExcerpt bounds how much of an error body ends up in StatusError.
	maxExcerpt = 512
)

// TargetURL returns <base>/inactive_sessions/<minutes>.
func TargetURL(base string, minutes int) string {
	return fmt.Sprintf("%s/inactive_sessions/%d", strings.TrimRight(base, "/"), minutes)
}

// Request describes one invocation.
type Request struct {
	URL    string
	APIKey string
	// RunID only correlates log lines; it is never sent.
	RunID string
}

// Result summarises a successful invocation.
type Result struct {
	StatusCode int
	BodyBytes  int64
	Elapsed    time.Duration
}

// Invoker issues the request. It holds no state between calls.
type Invoker struct {
	client ports.HTTPClient
	logger log.Logger
	out    io.Writer
}

// New creates an Invoker. A nil logger disables logging and a nil out
// discards the response body.
func New(client ports.HTTPClient, logger log.Logger, out io.Writer) *Invoker {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if out == nil {
		out = io.Discard
	}
	return &Invoker{client: client, logger: logger, out: out}
}

// NewHTTPClient returns a client whose transport adds no headers of its own:
// compression is disabled so Accept-Encoding is never set. Redirects are not
// followed; a 3xx is returned as is and fails the status check, so the key
// never reaches another host.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DisableCompression = true
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Invoke sends one GET. A 2xx response copies the body to the configured
// writer and returns nil; everything else is an error.
func (i *Invoker) Invoke(ctx context.Context, r Request) (Result, error) {
	if r.APIKey == "" {
		return Result{}, domain.ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	// Assigned directly to keep the header name uncanonicalized on the wire.
	req.Header[APIKeyHeader] = []string{r.APIKey}
	// Present-but-empty suppresses net/http's default User-Agent.
	req.Header["User-Agent"] = []string{""}

	i.logger.Debug("sending request", log.String("run_id", r.RunID), log.String("url", r.URL))

	start := time.Now()
	resp, err := i.client.Do(req)
	if err != nil {
		i.logger.Error("request failed", log.String("run_id", r.RunID), log.Err(err))
		return Result{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxExcerpt))
		serr := &domain.StatusError{
			StatusCode: resp.StatusCode,
			Excerpt:    strings.TrimSpace(string(excerpt)),
		}
		i.logger.Error("sweep rejected", log.String("run_id", r.RunID), log.Int("status", resp.StatusCode), log.Err(serr))
		return Result{}, serr
	}

	n, err := io.Copy(i.out, resp.Body)
	if err != nil {
		i.logger.Error("reading response failed", log.String("run_id", r.RunID), log.Err(err))
		return Result{}, fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}

	res := Result{StatusCode: resp.StatusCode, BodyBytes: n, Elapsed: time.Since(start)}
	i.logger.Info("inactive sessions swept",
		log.String("run_id", r.RunID),
		log.Int("status", res.StatusCode),
		log.Int64("bytes", res.BodyBytes),
		log.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
