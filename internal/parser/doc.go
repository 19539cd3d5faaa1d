// Package parser implements the format dispatcher: given one fetched
// subscription body, it decides which of the supported encodings the body
// contains and extracts node endpoints from it.
//
// Supported encodings, in detection priority order: Clash-style YAML
// configs, V2Ray JSON configs, vmess:// URIs (base64-wrapped JSON),
// vless:// / trojan:// / ss:// URIs, ssr:// URIs (base64-wrapped
// colon-delimited fields), inline JSON fragments, and a last-resort bare
// host:port scan. The first parser that yields at least one node wins;
// parsers that match but decode nothing fall through to the next.
//
// All input is treated as adversarial: bodies are size- and line-capped
// before any parser runs, individual malformed matches are dropped without
// aborting their parser, and whole-body parsing is boxed in a time budget.
package parser
