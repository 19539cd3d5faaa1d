package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/subscan/internal/model"
)

// placeholder stands in for an absent status or latency in report tables.
const placeholder = "—"

// WriteURLReport renders the working-URL table to w, sorted ascending by
// latency so the fastest mirrors come first. Callers pass only working
// (status 200) results; anything else in the slice is rendered as-is.
func WriteURLReport(w io.Writer, results []model.URLResult) error {
	sorted := slices.Clone(results)
	slices.SortFunc(sorted, func(a, b model.URLResult) int {
		return cmp.Compare(a.Latency, b.Latency)
	})

	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{r.URL, fmt.Sprintf("%.1f", r.Latency)})
	}

	md := markdown.NewMarkdown(w)
	md.H1("Working Subscription URLs")
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Latency (ms)"},
		Rows:   rows,
	})
	return md.Build()
}

// WriteNodeReport renders the node latency table to w, sorted by host and
// then numerically by port. Nodes that never answered keep their row with
// placeholder status and latency; an unreachable node is a result, not a
// gap in the report.
func WriteNodeReport(w io.Writer, results []model.NodeResult) error {
	sorted := slices.Clone(results)
	slices.SortFunc(sorted, func(a, b model.NodeResult) int {
		if c := cmp.Compare(a.Node.Host, b.Node.Host); c != 0 {
			return c
		}
		return cmp.Compare(a.Node.Port, b.Node.Port)
	})

	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		status := placeholder
		latency := placeholder
		if r.Reachable() {
			status = strconv.Itoa(r.Status)
			latency = fmt.Sprintf("%.1f", r.Latency)
		}
		rows = append(rows, []string{r.Node.Host, strconv.Itoa(r.Node.Port), status, latency})
	}

	md := markdown.NewMarkdown(w)
	md.H1("Node URL Latencies")
	md.Table(markdown.TableSet{
		Header: []string{"Host", "Port", "Status", "Latency (ms)"},
		Rows:   rows,
	})
	return md.Build()
}
