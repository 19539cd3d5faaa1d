package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/subscan/internal/config"
	"github.com/nao1215/subscan/internal/log"
	"github.com/nao1215/subscan/internal/model"
	"github.com/nao1215/subscan/internal/parser"
	"github.com/nao1215/subscan/internal/pipeline"
	"github.com/nao1215/subscan/internal/probe"
	"github.com/nao1215/subscan/internal/report"
	"github.com/nao1215/subscan/internal/source"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <file-or-directory>",
		Short: "Scan text for subscription URLs and test every node they list",
		Long: `Scan reads a text file (or every file in a directory), extracts the
subscription URLs it mentions, and runs them through four stages:

1. Probe each URL (HEAD, falling back to GET) and record its latency
2. Fetch the body of every working (status 200) URL
3. Parse each body for proxy nodes: Clash YAML, V2Ray JSON,
   vmess/vless/trojan/ss/ssr links, inline JSON, plain host:port
4. Probe every distinct node and record its latency

Two markdown reports are written: the working URLs (fastest first) and
the node latencies (by host and port, with unreachable nodes kept).

Examples:
  # Scan a single text file
  subscan scan links.txt

  # Scan every file in a directory
  subscan scan ./collected/

  # Custom report paths and worker caps
  subscan scan -u urls.md -n nodes.md --max-io-workers 50 links.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	// Report flags
	cmd.Flags().StringP("url-out", "u", config.DefaultURLOutput,
		"Output path for the working subscription URL report")
	cmd.Flags().StringP("node-out", "n", config.DefaultNodeOutput,
		"Output path for the node latency report")

	// Concurrency flags
	cmd.Flags().Int("max-io-workers", config.DefaultMaxIOWorkers,
		"Maximum concurrent URL and node probes")
	cmd.Flags().Int("max-parse-workers", config.DefaultMaxParseWorkers,
		"Maximum concurrent subscription body parses")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Input = args[0]

	var err error

	cfg.URLOutput, err = cmd.Flags().GetString("url-out")
	if err != nil {
		return nil, err
	}
	cfg.NodeOutput, err = cmd.Flags().GetString("node-out")
	if err != nil {
		return nil, err
	}
	cfg.MaxIOWorkers, err = cmd.Flags().GetInt("max-io-workers")
	if err != nil {
		return nil, err
	}
	cfg.MaxParseWorkers, err = cmd.Flags().GetInt("max-parse-workers")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runScan gathers input text, runs the scan pipeline, and writes both
// reports. The URL report is written as soon as the probe stage finishes
// so a long node-testing phase cannot lose it.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	text, err := source.Gather(cfg.Input)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: config.ClientTimeout}
	checker := probe.NewChecker(client, probe.WithLogger(logger))
	dispatcher := parser.NewDispatcher(parser.NewPatterns(), parser.WithLogger(logger))

	p := pipeline.New(cfg, checker, dispatcher,
		pipeline.WithLogger(logger),
		pipeline.WithURLReportFunc(func(working []model.URLResult) error {
			return writeURLReport(cfg.URLOutput, working)
		}),
	)

	result, err := p.Run(ctx, text)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := writeNodeReport(cfg.NodeOutput, result.NodeResults); err != nil {
		return err
	}

	logger.Info("scan complete",
		"urls", len(result.URLResults),
		"working", len(result.WorkingURLs),
		"nodes", len(result.NodeResults),
	)
	return nil
}

// writeURLReport writes the working-URL markdown report to path.
func writeURLReport(path string, working []model.URLResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create URL report %s: %w", path, err)
	}
	if err := report.WriteURLReport(f, working); err != nil {
		_ = f.Close()
		return fmt.Errorf("write URL report %s: %w", path, err)
	}
	return f.Close()
}

// writeNodeReport writes the node latency markdown report to path.
func writeNodeReport(path string, results []model.NodeResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create node report %s: %w", path, err)
	}
	if err := report.WriteNodeReport(f, results); err != nil {
		_ = f.Close()
		return fmt.Errorf("write node report %s: %w", path, err)
	}
	return f.Close()
}
