// Package main provides the entry point for the subscan CLI.
//
// Subscan extracts subscription URLs from text files, probes them for
// reachability, parses the subscription bodies they serve, and measures
// the latency of every proxy node they list.
//
// Usage:
//
//	subscan scan <file-or-directory>
//	subscan scan --url-out links.md --node-out nodes.md <file>
//
// See --help for all available options.
package main

// main is the entry point for subscan.
func main() {
	Execute()
}
