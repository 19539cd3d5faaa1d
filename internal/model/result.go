package model

import "net/http"

// URLResult records the outcome of probing one subscription URL.
//
// Status and Latency are both meaningful or both absent: a definitive HTTP
// response sets Status to the response code and Latency to the measured
// round-trip; a timeout or transport error leaves Status at zero, and the
// partial latency measured up to the failure is never reported.
type URLResult struct {
	// URL is the probed subscription URL.
	URL string

	// Status is the HTTP status code of the definitive response, or zero
	// when the probe failed without one.
	Status int

	// Latency is the wall-clock round-trip time in milliseconds.
	// Meaningful only when Reachable reports true.
	Latency float64
}

// Reachable reports whether the probe got a definitive HTTP response.
func (r URLResult) Reachable() bool {
	return r.Status != 0
}

// Working reports whether the URL qualifies for body fetching. The gate is
// exactly 200: redirects and other sub-400 statuses count as reachable but
// do not continue into the fetch stage.
func (r URLResult) Working() bool {
	return r.Status == http.StatusOK
}

// NodeResult records the outcome of probing one node endpoint.
// Absence semantics match URLResult: Status zero means no definitive
// response, and Latency is meaningful only when Status is set.
type NodeResult struct {
	// Node is the probed endpoint.
	Node Node

	// Status is the HTTP status code of the definitive response, or zero.
	Status int

	// Latency is the round-trip time in milliseconds when Status is set.
	Latency float64
}

// Reachable reports whether the node probe got a definitive HTTP response.
func (r NodeResult) Reachable() bool {
	return r.Status != 0
}
