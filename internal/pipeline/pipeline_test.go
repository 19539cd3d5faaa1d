package pipeline

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/nao1215/subscan/internal/config"
	"github.com/nao1215/subscan/internal/model"
	"github.com/nao1215/subscan/internal/parser"
	"github.com/nao1215/subscan/internal/probe"
)

// TestPipelineRun drives the full four-wave scan against local servers.
func TestPipelineRun(t *testing.T) {
	t.Parallel()

	// A "node" endpoint that later gets probed by wave 4.
	nodeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer nodeSrv.Close()

	nodeHost, nodePortStr, err := net.SplitHostPort(nodeSrv.Listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	nodePort, err := strconv.Atoi(nodePortStr)
	if err != nil {
		t.Fatal(err)
	}

	// A subscription server: /sub serves a body naming the node endpoint,
	// /broken answers probes but kills the fetch connection.
	mux := http.NewServeMux()
	mux.HandleFunc("/sub", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		fmt.Fprintf(w, "endpoint %s:%d listed here\n", nodeHost, nodePort)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		// Probes use HEAD only (accepted above); any GET is the fetch.
		// Killing the connection makes the fetch fail after a clean probe.
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		_ = conn.Close()
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	subSrv := httptest.NewServer(mux)
	defer subSrv.Close()

	// The same /sub URL appears twice: extraction dedup must collapse it.
	text := fmt.Sprintf("see %[1]s/sub and %[1]s/sub and %[1]s/broken and %[1]s/missing",
		subSrv.URL)

	cfg := config.NewConfig()
	cfg.Input = "unused"
	cfg.MaxIOWorkers = 4
	cfg.MaxParseWorkers = 2

	checker := probe.NewChecker(&http.Client{})
	dispatcher := parser.NewDispatcher(parser.NewPatterns())

	var reported []model.URLResult
	p := New(cfg, checker, dispatcher, WithURLReportFunc(func(working []model.URLResult) error {
		reported = working
		return nil
	}))

	result, err := p.Run(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("duplicate URLs collapse before probing", func(t *testing.T) {
		if len(result.URLResults) != 3 {
			t.Errorf("got %d URL results, expected 3 distinct URLs", len(result.URLResults))
		}
	})

	t.Run("only status 200 URLs count as working", func(t *testing.T) {
		if len(result.WorkingURLs) != 2 {
			t.Fatalf("got %d working URLs, expected 2", len(result.WorkingURLs))
		}
		for _, r := range result.WorkingURLs {
			if r.Status != http.StatusOK {
				t.Errorf("working URL %s has status %d", r.URL, r.Status)
			}
		}
	})

	t.Run("URL report callback runs on working URLs", func(t *testing.T) {
		if len(reported) != 2 {
			t.Errorf("report callback saw %d URLs, expected 2", len(reported))
		}
	})

	t.Run("failed fetch contributes zero nodes without failing the run", func(t *testing.T) {
		if len(result.Nodes) != 1 {
			t.Fatalf("got nodes %v, expected exactly the one listed endpoint", result.Nodes)
		}
		if result.Nodes[0] != model.NewNode(nodeHost, nodePort) {
			t.Errorf("got node %v, expected %s:%d", result.Nodes[0], nodeHost, nodePort)
		}
	})

	t.Run("every distinct node is probed", func(t *testing.T) {
		if len(result.NodeResults) != 1 {
			t.Fatalf("got %d node results, expected 1", len(result.NodeResults))
		}
		if result.NodeResults[0].Status != http.StatusOK {
			t.Errorf("node status = %d, expected 200", result.NodeResults[0].Status)
		}
	})
}

// TestPipelineRunNoURLs tests a run over text with nothing to scan.
func TestPipelineRunNoURLs(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Input = "unused"

	p := New(cfg, probe.NewChecker(&http.Client{}), parser.NewDispatcher(parser.NewPatterns()))

	result, err := p.Run(context.Background(), "no links in here at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.URLResults) != 0 || len(result.Nodes) != 0 || len(result.NodeResults) != 0 {
		t.Errorf("expected an empty result, got %+v", result)
	}
}

// TestPipelineURLReportError tests that a failing report callback aborts.
func TestPipelineURLReportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.NewConfig()
	cfg.Input = "unused"

	wantErr := fmt.Errorf("disk full")
	p := New(cfg, probe.NewChecker(&http.Client{}), parser.NewDispatcher(parser.NewPatterns()),
		WithURLReportFunc(func([]model.URLResult) error { return wantErr }))

	if _, err := p.Run(context.Background(), "link "+srv.URL+"/sub"); err == nil {
		t.Error("expected the report callback error to propagate")
	}
}
