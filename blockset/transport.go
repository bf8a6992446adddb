package blockset

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

type (
	// Transport executes one HTTP request asynchronously and hands the raw
	// status and body (or the underlying I/O failure) to completion. It
	// never blocks the caller and must support any number of concurrent
	// in-flight requests.
	Transport interface {
		Execute(req *http.Request, completion func(status int, body []byte, err error))
	}

	// TransportMetrics records the outcome of one executed request.
	TransportMetrics interface {
		Observe(operation string, status int, err error, started time.Time)
	}
)

// HTTPTransport is the default Transport. Connection pooling and
// concurrent-caller safety come from the wrapped http.Client; each request
// runs on its own goroutine and the completion is invoked from there.
type HTTPTransport struct {
	client  *http.Client
	rl      ratelimit.Limiter
	metrics TransportMetrics
	logger  *zap.Logger
}

// NewHTTPTransport wraps client, pacing sends at rps requests per second
// when rps > 0. A nil client uses http.DefaultClient; metrics may be nil.
func NewHTTPTransport(client *http.Client, rps int, metrics TransportMetrics, logger *zap.Logger) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &HTTPTransport{
		client:  client,
		rl:      rl,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute sends req on a fresh goroutine and invokes completion exactly
// once with the terminal outcome.
func (t *HTTPTransport) Execute(req *http.Request, completion func(status int, body []byte, err error)) {
	go func() {
		started := time.Now()
		operation := req.Method + " " + req.URL.Path

		t.rl.Take()
		t.logger.Debug("request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()))

		res, err := t.client.Do(req)
		if err != nil {
			t.observe(operation, 0, err, started)
			t.logger.Error("request failed", zap.String("operation", operation), zap.Error(err))
			completion(0, nil, err)
			return
		}
		defer func() {
			_ = res.Body.Close()
		}()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			t.observe(operation, res.StatusCode, err, started)
			t.logger.Error("read response", zap.String("operation", operation), zap.Error(err))
			completion(0, nil, err)
			return
		}

		t.observe(operation, res.StatusCode, nil, started)
		completion(res.StatusCode, body, nil)
	}()
}

func (t *HTTPTransport) observe(operation string, status int, err error, started time.Time) {
	if t.metrics != nil {
		t.metrics.Observe(operation, status, err, started)
	}
}
