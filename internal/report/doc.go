// Package report renders scan results as markdown tables.
//
// Two reports are produced: the working-URL report (URLs that probed as
// 200, sorted fastest first) and the node latency report (every probed
// node, sorted by host then port, with an em dash standing in for absent
// status or latency). Sorting happens here, at render time; the pipeline
// hands over results in completion order.
package report
