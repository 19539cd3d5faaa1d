package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/subscan/internal/config"
	"github.com/nao1215/subscan/internal/model"
	"github.com/nao1215/subscan/internal/parser"
	"github.com/nao1215/subscan/internal/probe"
	"github.com/nao1215/subscan/internal/source"
)

// Pipeline runs the full scan over one gathered text blob.
// It owns no network or parsing logic itself; it wires the checker and
// dispatcher into four bounded waves with deduplication between them.
type Pipeline struct {
	// cfg provides the worker caps.
	cfg *config.Config

	// checker probes URLs and nodes and fetches bodies.
	checker *probe.Checker

	// dispatcher parses fetched bodies into nodes.
	dispatcher *parser.Dispatcher

	// urlReport, when set, is invoked with the working URL results right
	// after the probe wave, before any body is fetched. Writing the URL
	// report at this point means a run interrupted during node testing
	// still leaves it behind.
	urlReport func([]model.URLResult) error

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithURLReportFunc registers a callback that receives the working URL
// results between the probe and fetch waves. A callback error aborts the
// run; it means the report file cannot be written, which is a setup
// failure, not a per-item one.
func WithURLReportFunc(fn func([]model.URLResult) error) Option {
	return func(p *Pipeline) {
		p.urlReport = fn
	}
}

// New creates a Pipeline.
func New(cfg *config.Config, checker *probe.Checker, dispatcher *parser.Dispatcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		checker:    checker,
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// body pairs a fetched subscription body with its source URL.
type body struct {
	url  string
	text string
}

// Result collects everything a completed run produced.
type Result struct {
	// URLResults holds one entry per distinct candidate URL.
	URLResults []model.URLResult

	// WorkingURLs is the subset of URLResults that probed as exactly 200.
	WorkingURLs []model.URLResult

	// Nodes is the deduplicated set of endpoints across all bodies.
	Nodes []model.Node

	// NodeResults holds one probe result per distinct node.
	NodeResults []model.NodeResult
}

// Run extracts candidate URLs from text and drives the four waves.
// Per-item failures are absorbed into the result; the returned error is
// non-nil only on context cancellation or a URL-report callback failure.
func (p *Pipeline) Run(ctx context.Context, text string) (*Result, error) {
	urls := dedupStrings(source.ExtractURLs(text))

	total, preNode := estimateTotalTime(len(urls), p.cfg.MaxIOWorkers, p.cfg.MaxParseWorkers)
	p.logger.Info("found candidate URLs",
		"count", len(urls),
		"estimated_total", formatDuration(total),
		"estimated_node_testing", formatDuration(total-preNode),
	)

	// Wave 1: probe every candidate URL.
	p.logger.Info("testing subscription URLs", "count", len(urls), "workers", p.cfg.MaxIOWorkers)
	urlResults, err := runWave(ctx, p.cfg.MaxIOWorkers, urls,
		func(ctx context.Context, url string) model.URLResult {
			return p.checker.CheckURL(ctx, url)
		},
		func(done int, r model.URLResult) {
			p.logger.Info("url probed",
				"progress", fmt.Sprintf("%d/%d", done, len(urls)),
				"url", r.URL, "status", r.Status, "latency_ms", r.Latency,
			)
		})
	if err != nil {
		return nil, err
	}

	working := make([]model.URLResult, 0, len(urlResults))
	for _, r := range urlResults {
		if r.Working() {
			working = append(working, r)
		}
	}
	p.logger.Info("working URLs identified", "working", len(working), "total", len(urls))

	if p.urlReport != nil {
		if err := p.urlReport(working); err != nil {
			return nil, err
		}
	}

	// Wave 2: fetch bodies of working URLs. A URL whose fetch fails
	// contributes nothing downstream but keeps its probe result.
	p.logger.Info("fetching subscription bodies", "count", len(working), "workers", p.cfg.MaxIOWorkers)
	fetched, err := runWave(ctx, p.cfg.MaxIOWorkers, working,
		func(ctx context.Context, r model.URLResult) body {
			text, err := p.checker.FetchBody(ctx, r.URL)
			if err != nil {
				p.logger.Debug("fetch failed", "url", r.URL, "error", err)
				return body{url: r.URL}
			}
			return body{url: r.URL, text: text}
		},
		func(done int, b body) {
			p.logger.Info("body fetched",
				"progress", fmt.Sprintf("%d/%d", done, len(working)),
				"url", b.url, "bytes", len(b.text),
			)
		})
	if err != nil {
		return nil, err
	}

	bodies := make([]body, 0, len(fetched))
	for _, b := range fetched {
		if b.text != "" {
			bodies = append(bodies, b)
		}
	}

	// Wave 3: parse bodies into nodes, then deduplicate across all
	// bodies. The node set is only materialized once the wave barrier
	// has passed.
	p.logger.Info("parsing subscription bodies", "count", len(bodies), "workers", p.cfg.MaxParseWorkers)
	parsed, err := runWave(ctx, p.cfg.MaxParseWorkers, bodies,
		func(ctx context.Context, b body) []model.Node {
			return p.dispatcher.ParseSubscription(ctx, b.url, b.text)
		},
		func(done int, nodes []model.Node) {
			p.logger.Info("body parsed",
				"progress", fmt.Sprintf("%d/%d", done, len(bodies)),
				"nodes", len(nodes),
			)
		})
	if err != nil {
		return nil, err
	}

	seen := make(map[model.Node]struct{})
	nodes := make([]model.Node, 0)
	for _, batch := range parsed {
		for _, n := range batch {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			nodes = append(nodes, n)
		}
	}
	p.logger.Info("distinct nodes parsed", "count", len(nodes))

	// Wave 4: probe every distinct node.
	p.logger.Info("testing nodes", "count", len(nodes), "workers", p.cfg.MaxIOWorkers)
	nodeResults, err := runWave(ctx, p.cfg.MaxIOWorkers, nodes,
		func(ctx context.Context, n model.Node) model.NodeResult {
			return p.checker.CheckNode(ctx, n)
		},
		func(done int, r model.NodeResult) {
			p.logger.Info("node probed",
				"progress", fmt.Sprintf("%d/%d", done, len(nodes)),
				"node", r.Node.String(), "status", r.Status, "latency_ms", r.Latency,
			)
		})
	if err != nil {
		return nil, err
	}

	return &Result{
		URLResults:  urlResults,
		WorkingURLs: working,
		Nodes:       nodes,
		NodeResults: nodeResults,
	}, nil
}

// dedupStrings collapses duplicates while preserving first-seen order.
// Order is not semantically meaningful (wave completion reorders anyway),
// but a stable input makes runs reproducible in logs.
func dedupStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
