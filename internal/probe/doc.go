// Package probe implements HTTP reachability checking and body fetching.
//
// A probe issues a HEAD request and falls back to GET when HEAD is
// rejected or fails; the definitive response's status and round-trip
// latency are recorded. Timeouts and transport errors are absorbed into
// the result as "unreachable" rather than surfaced as errors, because a
// dead endpoint is an ordinary outcome of this tool, not a failure.
package probe
