package parser

import (
	"encoding/json"
	"strconv"

	"github.com/nao1215/subscan/internal/config"
	"github.com/nao1215/subscan/internal/model"
)

// parseInlineJSON extracts nodes from inline "- {...}" fragments, the shape
// a YAML proxy list takes when written in flow style. Each fragment is
// parsed as a standalone JSON object reading "server" (or "address" as a
// fallback) and "port". Fragments that are not valid JSON are dropped
// individually. At most config.MaxJSONMatches fragments are considered.
func parseInlineJSON(text string, patterns *Patterns) []model.Node {
	matches := patterns.InlineJSON.FindAllStringSubmatch(text, config.MaxJSONMatches)

	var nodes []model.Node
	for _, match := range matches {
		var obj map[string]any
		if err := json.Unmarshal([]byte(match[1]), &obj); err != nil {
			continue
		}
		host, ok := obj["server"].(string)
		if !ok {
			host, ok = obj["address"].(string)
			if !ok {
				continue
			}
		}
		port, ok := asPort(obj["port"])
		if !ok {
			continue
		}
		nodes = append(nodes, model.NewNode(host, port))
	}
	return nodes
}

// parseGeneric is the last-resort parser: it scans for bare host:port
// pairs anywhere in the text, capped at config.MaxHostPortMatches. It has
// no trigger condition and will happily match timestamps and version
// strings; that imprecision is a known trade-off of running it only after
// every format-specific parser came up empty.
func parseGeneric(text string, patterns *Patterns) []model.Node {
	matches := patterns.HostPort.FindAllStringSubmatch(text, config.MaxHostPortMatches)

	var nodes []model.Node
	for _, match := range matches {
		port, err := strconv.Atoi(match[2])
		if err != nil || port > model.MaxPort {
			continue
		}
		nodes = append(nodes, model.NewNode(match[1], port))
	}
	return nodes
}
