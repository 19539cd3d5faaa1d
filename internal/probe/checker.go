package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/nao1215/subscan/internal/config"
	"github.com/nao1215/subscan/internal/model"
)

// Checker probes URLs and nodes for reachability and fetches subscription
// bodies. One Checker, holding one shared http.Client, serves every
// concurrent task in the pipeline.
//
// Design decision: the http.Client is injected rather than constructed
// here. Client configuration (outer timeout, transport) is decided at
// startup, connection pooling works best with a single shared client, and
// tests can swap in httptest-backed clients.
type Checker struct {
	// client is the shared HTTP client. Per-operation deadlines are
	// applied via context; the client's own timeout is only a backstop.
	client *http.Client

	// urlTimeout boxes one subscription URL probe or fetch.
	urlTimeout time.Duration

	// nodeTimeout boxes one node probe.
	nodeTimeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithURLTimeout overrides the subscription URL probe/fetch timeout.
func WithURLTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		c.urlTimeout = timeout
	}
}

// WithNodeTimeout overrides the node probe timeout.
func WithNodeTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		c.nodeTimeout = timeout
	}
}

// WithLogger sets a custom logger for the checker.
func WithLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a Checker around the given HTTP client.
func NewChecker(client *http.Client, opts ...CheckerOption) *Checker {
	c := &Checker{
		client:      client,
		urlTimeout:  config.URLTimeout,
		nodeTimeout: config.NodeTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckURL probes one subscription URL: HEAD first, GET when HEAD returns
// a status of 400 or above or fails outright. Latency covers the whole
// attempt (including the GET retry) and is reported only when a definitive
// response arrived; a timeout leaves both status and latency absent.
func (c *Checker) CheckURL(ctx context.Context, url string) model.URLResult {
	status, latency := c.check(ctx, url, c.urlTimeout)
	return model.URLResult{URL: url, Status: status, Latency: latency}
}

// CheckNode probes one node endpoint at its synthesized http://host:port
// address, with the shorter node timeout.
func (c *Checker) CheckNode(ctx context.Context, node model.Node) model.NodeResult {
	status, latency := c.check(ctx, node.Address(), c.nodeTimeout)
	return model.NodeResult{Node: node, Status: status, Latency: latency}
}

// check runs the HEAD-then-GET probe under the given timeout. It returns
// (0, 0) when no definitive response arrived.
func (c *Checker) check(ctx context.Context, url string, timeout time.Duration) (int, float64) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.roundTrip(ctx, http.MethodHead, url)
	if err != nil || resp.StatusCode >= http.StatusBadRequest {
		if err == nil {
			closeBody(resp)
		}
		resp, err = c.roundTrip(ctx, http.MethodGet, url)
	}
	if err != nil {
		c.logger.Debug("probe failed", "url", url, "error", err)
		return 0, 0
	}
	defer closeBody(resp)

	return resp.StatusCode, float64(time.Since(start).Microseconds()) / 1000.0
}

// FetchBody retrieves one subscription body with a single GET under the
// URL timeout. The body is decoded to text using the response charset when
// one is declared. The read is capped just past the oversize threshold so
// an adversarial endpoint cannot exhaust memory; the parse stage still
// sees enough bytes to apply its own skip rule.
func (c *Checker) FetchBody(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.urlTimeout)
	defer cancel()

	resp, err := c.roundTrip(ctx, http.MethodGet, url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer closeBody(resp)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, config.OversizeBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	return decodeBody(raw, resp.Header.Get("Content-Type")), nil
}

// roundTrip issues one request with the given method.
func (c *Checker) roundTrip(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// decodeBody converts raw response bytes to text. When the Content-Type
// declares a non-UTF-8 charset known to the WHATWG encoding index, the
// bytes are transcoded; otherwise they pass through unchanged.
func decodeBody(raw []byte, contentType string) string {
	if contentType == "" {
		return string(raw)
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(raw)
	}

	charset, ok := params["charset"]
	if !ok || strings.EqualFold(charset, "utf-8") {
		return string(raw)
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return string(raw)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// closeBody drains and closes a response body so the underlying connection
// can be reused by the shared client.
func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
