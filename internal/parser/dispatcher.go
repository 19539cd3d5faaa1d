package parser

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/subscan/internal/config"
	"github.com/nao1215/subscan/internal/model"
)

// Dispatcher selects and applies the right decoder for a subscription body.
// It owns the shared pattern table and the ordered parser chain; one
// Dispatcher serves all concurrent parse tasks.
//
// Design decision: the chain is a fixed slice of strategies, each carrying
// its own trigger predicate and decode function, rather than a registry
// with dynamic dispatch. The priority order is a manually tuned specificity
// gradient (structured configs before single-URI schemes before weak
// syntactic heuristics) and first-non-empty-wins keeps the same endpoints
// from being counted under two encodings. A slice makes that order
// explicit and trivially extensible.
type Dispatcher struct {
	// patterns is the shared compiled pattern table, read-only.
	patterns *Patterns

	// strategies is the parser chain in priority order. The last entry has
	// a nil trigger and always runs.
	strategies []strategy

	// timeout is the whole-body parse budget.
	timeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// strategy is one entry in the parser chain.
type strategy struct {
	// name identifies the encoding in debug logs.
	name string

	// trigger reports whether the body looks like this encoding. It gets
	// both the original text and a lowercased copy so case-insensitive
	// keyword sniffing never affects what the parser decodes. A nil
	// trigger always fires.
	trigger func(text, lower string) bool

	// parse decodes the original-case text into nodes.
	parse func(text string) []model.Node
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithParseTimeout overrides the whole-body parse budget.
// Intended for tests; production uses config.ParseTimeout.
func WithParseTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// NewDispatcher creates a Dispatcher around the given pattern table.
func NewDispatcher(patterns *Patterns, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		patterns: patterns,
		timeout:  config.ParseTimeout,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.strategies = []strategy{
		{
			name: "clash-yaml",
			trigger: func(_, lower string) bool {
				return strings.Contains(lower, "proxies:") || strings.Contains(lower, "proxy-groups:")
			},
			parse: parseClashYAML,
		},
		{
			name: "v2ray-json",
			trigger: func(text, lower string) bool {
				return strings.HasPrefix(strings.TrimSpace(text), "{") &&
					(strings.Contains(lower, "outbounds") || strings.Contains(lower, "inbounds"))
			},
			parse: parseV2RayJSON,
		},
		{
			name: "vmess",
			trigger: func(text, _ string) bool {
				return strings.Contains(text, "vmess://")
			},
			parse: func(text string) []model.Node {
				return parseVMess(text, d.patterns)
			},
		},
		{
			name: "vless",
			trigger: func(text, _ string) bool {
				return strings.Contains(text, "vless://")
			},
			parse: func(text string) []model.Node {
				return parseSchemeURL(text, d.patterns, "vless")
			},
		},
		{
			name: "trojan",
			trigger: func(text, _ string) bool {
				return strings.Contains(text, "trojan://")
			},
			parse: func(text string) []model.Node {
				return parseSchemeURL(text, d.patterns, "trojan")
			},
		},
		{
			name: "ss",
			trigger: func(text, _ string) bool {
				return strings.Contains(text, "ss://")
			},
			parse: func(text string) []model.Node {
				return parseSchemeURL(text, d.patterns, "ss")
			},
		},
		{
			name: "ssr",
			trigger: func(text, _ string) bool {
				return strings.Contains(text, "ssr://")
			},
			parse: func(text string) []model.Node {
				return parseSSR(text, d.patterns)
			},
		},
		{
			name: "inline-json",
			trigger: func(text, lower string) bool {
				return strings.Contains(text, "{") &&
					(strings.Contains(lower, "server") || strings.Contains(lower, "address"))
			},
			parse: func(text string) []model.Node {
				return parseInlineJSON(text, d.patterns)
			},
		},
		{
			name:    "generic-hostport",
			trigger: nil,
			parse: func(text string) []model.Node {
				return parseGeneric(text, d.patterns)
			},
		},
	}

	return d
}

// DetectAndParse runs the parser chain over one body and returns the nodes
// of the first parser that yields any. A parser that matches but decodes
// nothing falls through to the next; only a non-empty result stops the
// chain. An empty or whitespace-only body returns nil without invoking any
// parser.
func (d *Dispatcher) DetectAndParse(text string) []model.Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = limitText(text)
	lower := strings.ToLower(text)

	d.logger.Debug("detecting subscription format", "size", len(text))

	for _, s := range d.strategies {
		if s.trigger != nil && !s.trigger(text, lower) {
			continue
		}
		if nodes := s.parse(text); len(nodes) > 0 {
			d.logger.Debug("parser matched", "format", s.name, "nodes", len(nodes))
			return nodes
		}
	}
	return nil
}

// ParseSubscription parses one fetched body under the parse budget.
// Bodies over config.OversizeBodySize are skipped outright: truncating
// them would cost a copy of the full body before any parser runs.
//
// The budget works by abandonment, not cancellation: the parse goroutine
// is left to finish on its own when the deadline fires, and its eventual
// result is discarded. Sibling parse tasks are unaffected.
func (d *Dispatcher) ParseSubscription(ctx context.Context, url, body string) []model.Node {
	if body == "" {
		return nil
	}
	if len(body) > config.OversizeBodySize {
		d.logger.Warn("skipping oversized body", "url", url, "bytes", len(body))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan []model.Node, 1)
	go func() {
		done <- d.DetectAndParse(body)
	}()

	select {
	case nodes := <-done:
		return nodes
	case <-ctx.Done():
		d.logger.Warn("parse timeout, discarding body", "url", url)
		return nil
	}
}
