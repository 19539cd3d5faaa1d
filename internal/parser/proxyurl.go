package parser

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/subscan/internal/model"
)

// parseVMess extracts nodes from vmess:// URIs. The payload after the
// scheme is standard base64 wrapping a JSON object whose "add" and "port"
// fields name the endpoint. A match whose payload fails base64 decoding,
// is not valid JSON, or carries an out-of-range port is dropped; the
// remaining matches are still processed.
func parseVMess(text string, patterns *Patterns) []model.Node {
	var nodes []model.Node
	for _, match := range patterns.VMess.FindAllStringSubmatch(text, -1) {
		decoded, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil {
			continue
		}
		var cfg map[string]any
		if err := json.Unmarshal(decoded, &cfg); err != nil {
			continue
		}
		host, ok := cfg["add"].(string)
		if !ok {
			continue
		}
		port, ok := asPort(cfg["port"])
		if !ok {
			continue
		}
		nodes = append(nodes, model.NewNode(host, port))
	}
	return nodes
}

// parseSchemeURL extracts nodes from vless://, trojan://, or ss:// URIs.
// The captured segment after the userinfo "@" may itself contain colons
// (IPv6 literals), so the host/port split happens at the RIGHTMOST colon.
// A segment with no colon, or whose port substring does not parse as an
// integer within range, is dropped.
func parseSchemeURL(text string, patterns *Patterns, scheme string) []model.Node {
	pattern := patterns.schemePattern(scheme)
	if pattern == nil {
		return nil
	}

	var nodes []model.Node
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		hostport := match[1]
		colon := strings.LastIndex(hostport, ":")
		if colon < 0 {
			continue
		}
		port, err := strconv.Atoi(hostport[colon+1:])
		if err != nil || port < 0 || port > model.MaxPort {
			continue
		}
		nodes = append(nodes, model.NewNode(hostport[:colon], port))
	}
	return nodes
}

// parseSSR extracts nodes from ssr:// URIs. The base64 payload decodes to
// colon-delimited fields "host:port:protocol:method:obfs:password..."; at
// least six fields are required, with host first and port second.
func parseSSR(text string, patterns *Patterns) []model.Node {
	var nodes []model.Node
	for _, match := range patterns.SSR.FindAllStringSubmatch(text, -1) {
		decoded, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil || !utf8.Valid(decoded) {
			continue
		}
		parts := strings.Split(string(decoded), ":")
		if len(parts) < 6 {
			continue
		}
		port, err := strconv.Atoi(parts[1])
		if err != nil || port < 0 || port > model.MaxPort {
			continue
		}
		nodes = append(nodes, model.NewNode(parts[0], port))
	}
	return nodes
}
