package config

import "time"

// Default configuration values.
// The split reflects where time is spent: generous I/O
// parallelism because probe tasks spend almost all their time blocked on
// the network, and a smaller parse pool because parsing is CPU-bound.
const (
	// DefaultURLOutput is the default path for the working-URL report.
	DefaultURLOutput = "working_links.md"

	// DefaultNodeOutput is the default path for the node latency report.
	DefaultNodeOutput = "node_latencies.md"

	// DefaultMaxIOWorkers caps concurrent network operations (URL probes,
	// body fetches, node probes). 100 keeps a typical subscription list
	// saturated without exhausting file descriptors.
	DefaultMaxIOWorkers = 100

	// DefaultMaxParseWorkers caps concurrent body parsing. Parsing is
	// CPU-bound regex and YAML/JSON work, so the cap is much lower than
	// the I/O cap.
	DefaultMaxParseWorkers = 30
)

// Fixed tunables. These are not exposed on the CLI; they bound the
// worst-case work of every stage regardless of input.
const (
	// URLTimeout boxes one subscription URL probe or body fetch.
	URLTimeout = 3 * time.Second

	// NodeTimeout boxes one node reachability probe. Shorter than
	// URLTimeout because node counts are typically 50x URL counts.
	NodeTimeout = 2 * time.Second

	// ParseTimeout is the whole-body parse budget. A body that cannot be
	// parsed within it contributes zero nodes rather than partial results.
	ParseTimeout = 5 * time.Second

	// ClientTimeout is the outer timeout on the shared HTTP client. It is
	// a backstop only; every operation carries its own tighter deadline.
	ClientTimeout = 10 * time.Second

	// MaxTextSize is the byte cap applied to a body before parsing.
	// Larger bodies are truncated, not rejected.
	MaxTextSize = 50 * 1024 * 1024

	// MaxLines is the line cap applied after the byte cap. Trailing lines
	// beyond it are dropped.
	MaxLines = 50000

	// OversizeBodySize is the hard skip threshold. A body this large is
	// treated as zero nodes without truncation; truncating it would still
	// cost a 100MB copy before any parser runs.
	OversizeBodySize = 100 * 1024 * 1024

	// MaxProxiesPerConfig caps entries read from one proxies sequence.
	MaxProxiesPerConfig = 2000

	// MaxHostPortMatches caps matches taken by the generic host:port parser.
	MaxHostPortMatches = 5000

	// MaxJSONMatches caps matches taken by the inline-JSON parser.
	MaxJSONMatches = 1000
)

// Config holds all runtime settings for one subscan invocation.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
//
// Design decision: a single flat struct instead of nested sub-configs.
// The option count is small, and nesting would add indirection without
// buying anything.
type Config struct {
	// Input is the file or directory to gather subscription text from.
	// Required. A directory is read non-recursively.
	Input string

	// URLOutput is the path for the working-URL markdown report.
	URLOutput string

	// NodeOutput is the path for the node latency markdown report.
	NodeOutput string

	// Verbose enables slog.LevelDebug output. When false, progress and
	// warnings are still logged at Info and above.
	Verbose bool

	// MaxIOWorkers caps concurrent network operations per wave.
	MaxIOWorkers int

	// MaxParseWorkers caps concurrent body parsing.
	MaxParseWorkers int
}

// NewConfig creates a Config with default values.
// The Input field has no default and must be set by the caller.
//
// Design decision: a constructor instead of relying on zero values because
// most defaults are non-zero, and the constructor doubles as documentation
// of what the defaults are.
func NewConfig() *Config {
	return &Config{
		URLOutput:       DefaultURLOutput,
		NodeOutput:      DefaultNodeOutput,
		MaxIOWorkers:    DefaultMaxIOWorkers,
		MaxParseWorkers: DefaultMaxParseWorkers,
	}
}

// Validate checks the configuration and returns the first problem found.
// It is called once after CLI parsing, before any I/O begins, so that a
// bad invocation fails fast with a specific message.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}
	if c.URLOutput == "" || c.NodeOutput == "" {
		return ErrNoOutput
	}
	if c.MaxIOWorkers <= 0 {
		return ErrInvalidIOWorkers
	}
	if c.MaxParseWorkers <= 0 {
		return ErrInvalidParseWorkers
	}
	return nil
}
