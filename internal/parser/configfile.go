package parser

import (
	"encoding/json"

	"github.com/nao1215/subscan/internal/config"
	"github.com/nao1215/subscan/internal/model"
	"gopkg.in/yaml.v3"
)

// parseClashYAML extracts nodes from a Clash-style YAML config. It decodes
// the document generically and reads server/port pairs from the top-level
// "proxies" sequence, capped at config.MaxProxiesPerConfig entries.
//
// A document that fails to decode yields no nodes; the dispatcher then
// falls through to the next parser. Individual proxies with a missing or
// non-integer port, or a port out of range, are skipped without affecting
// their siblings.
func parseClashYAML(text string) []model.Node {
	var doc struct {
		Proxies []map[string]any `yaml:"proxies"`
	}
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}

	proxies := doc.Proxies
	if len(proxies) > config.MaxProxiesPerConfig {
		proxies = proxies[:config.MaxProxiesPerConfig]
	}

	var nodes []model.Node
	for _, proxy := range proxies {
		server, ok := proxy["server"].(string)
		if !ok {
			continue
		}
		port, ok := asPort(proxy["port"])
		if !ok {
			continue
		}
		nodes = append(nodes, model.NewNode(server, port))
	}
	return nodes
}

// parseV2RayJSON extracts nodes from a V2Ray JSON config by walking
// outbounds[].settings.vnext[] and reading address/port pairs.
func parseV2RayJSON(text string) []model.Node {
	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}

	outbounds, ok := doc["outbounds"].([]any)
	if !ok {
		return nil
	}

	var nodes []model.Node
	for _, raw := range outbounds {
		outbound, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		settings, ok := outbound["settings"].(map[string]any)
		if !ok {
			continue
		}
		vnext, ok := settings["vnext"].([]any)
		if !ok {
			continue
		}
		for _, rawServer := range vnext {
			server, ok := rawServer.(map[string]any)
			if !ok {
				continue
			}
			address, ok := server["address"].(string)
			if !ok {
				continue
			}
			port, ok := asPort(server["port"])
			if !ok {
				continue
			}
			nodes = append(nodes, model.NewNode(address, port))
		}
	}
	return nodes
}

// asPort converts a decoded YAML/JSON value to a valid port number.
// YAML integers arrive as int (or int64 for large values); JSON numbers
// arrive as float64 and must be integral. String ports are rejected, as
// are values outside 0-65535.
func asPort(v any) (int, bool) {
	var port int
	switch n := v.(type) {
	case int:
		port = n
	case int64:
		if n > int64(model.MaxPort) || n < 0 {
			return 0, false
		}
		port = int(n)
	case float64:
		port = int(n)
		if float64(port) != n {
			return 0, false
		}
	default:
		return 0, false
	}
	if port < 0 || port > model.MaxPort {
		return 0, false
	}
	return port, true
}
