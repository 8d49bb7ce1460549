package sweep

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/patrolio/sessionsweep/pkg/log"
)

func TestConfig_Endpoint(t *testing.T) {
	if got := DefaultConfig().Endpoint(); got != "https://patrolio-patrol-sessions.onrender.com/inactive_sessions/15" {
		t.Errorf("Endpoint() = %v", got)
	}
	if got := (Config{}).Endpoint(); got != "https://patrolio-patrol-sessions.onrender.com/inactive_sessions/15" {
		t.Errorf("Endpoint() with empty ServiceURL = %v", got)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		apiKey  string
		wantErr error
	}{
		{name: "ok", status: http.StatusOK, apiKey: "k"},
		{name: "no content", status: http.StatusNoContent, apiKey: "k"},
		{name: "forbidden", status: http.StatusForbidden, apiKey: "k", wantErr: ErrUnexpectedStatus},
		{name: "server error", status: http.StatusInternalServerError, apiKey: "k", wantErr: ErrUnexpectedStatus},
		{name: "missing key", status: http.StatusOK, wantErr: ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits++
				if r.Header.Get("X-API-KEY") != tt.apiKey {
					t.Errorf("X-API-KEY = %v, want %v", r.Header.Get("X-API-KEY"), tt.apiKey)
				}
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			cfg := Config{ServiceURL: ts.URL, APIKey: tt.apiKey, HTTPTimeout: 5 * time.Second}
			_, err := Run(context.Background(), cfg)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}

			wantHits := 1
			if errors.Is(tt.wantErr, ErrMissingAPIKey) {
				wantHits = 0
			}
			if hits != wantHits {
				t.Errorf("server hit %d times, want %d", hits, wantHits)
			}
		})
	}
}

func TestRun_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := Run(context.Background(), Config{ServiceURL: url, APIKey: "k", HTTPTimeout: time.Second})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Run() error = %v, want ErrTransport", err)
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{ServiceURL: ts.URL, APIKey: "k", HTTPTimeout: time.Second})
	if !errors.Is(err, ErrTransport) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want ErrTransport wrapping context.Canceled", err)
	}
}

func TestRun_LogsRunIDWithoutKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	var logs, out bytes.Buffer
	logger := log.NewZerologLogger(zerolog.New(&logs).Level(zerolog.DebugLevel))

	_, err := Run(context.Background(),
		Config{ServiceURL: ts.URL, APIKey: "very-secret-key", HTTPTimeout: time.Second},
		WithLogger(logger), WithOutput(&out), WithRunID("run-42"),
	)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if out.String() != "ok" {
		t.Errorf("output = %q, want ok", out.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte(`"run_id":"run-42"`)) {
		t.Errorf("logs missing run_id: %s", logs.String())
	}
	if bytes.Contains(logs.Bytes(), []byte("very-secret-key")) {
		t.Errorf("logs leaked the API key: %s", logs.String())
	}
}

func TestRun_LogsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	var logs bytes.Buffer
	logger := log.NewZerologLogger(zerolog.New(&logs))

	_, err := Run(context.Background(),
		Config{ServiceURL: ts.URL, APIKey: "very-secret-key", HTTPTimeout: time.Second},
		WithLogger(logger), WithRunID("run-7"),
	)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("Run() error = %v, want ErrUnexpectedStatus", err)
	}
	for _, want := range []string{`"level":"error"`, `"run_id":"run-7"`, `"status":500`, `"error":"server returned 500: boom"`} {
		if !bytes.Contains(logs.Bytes(), []byte(want)) {
			t.Errorf("logs missing %s: %s", want, logs.String())
		}
	}
	if bytes.Contains(logs.Bytes(), []byte("very-secret-key")) {
		t.Errorf("logs leaked the API key: %s", logs.String())
	}
}

type stubClient struct {
	calls int
}

func (s *stubClient) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	return nil, errors.New("dial tcp: no route to host")
}

func TestRun_WithHTTPClient(t *testing.T) {
	sc := &stubClient{}
	_, err := Run(context.Background(), Config{APIKey: "k"}, WithHTTPClient(sc))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Run() error = %v, want ErrTransport", err)
	}
	if sc.calls != 1 {
		t.Errorf("client called %d times, want exactly 1", sc.calls)
	}
}
