// Package pipeline orchestrates the four-stage scan: probe subscription
// URLs, fetch the bodies of working ones, parse the bodies into node
// endpoints, and probe every distinct node.
//
// Each stage runs as a wave: one goroutine is spawned per input item
// immediately, but execution is gated by a counting semaphore so at most
// the configured number of tasks run at once. Stages are strict barriers;
// no stage starts until every task of the previous one has finished.
// Within a wave, completion order is whatever the network gives us, and
// nothing downstream depends on it.
//
// Failures never cross task boundaries: a timed-out probe, a failed fetch,
// or an unparseable body affects only its own item. The only errors the
// pipeline itself returns are context cancellation and report-callback
// failures.
package pipeline
