package parser

import (
	"encoding/base64"
	"testing"

	"github.com/nao1215/subscan/internal/model"
)

// TestParseClashYAML tests the Clash-style YAML config parser.
func TestParseClashYAML(t *testing.T) {
	t.Parallel()

	t.Run("extracts server and port pairs", func(t *testing.T) {
		t.Parallel()

		text := `proxies:
  - name: one
    server: a.example
    port: 443
  - name: two
    server: b.example
    port: 8080
`
		nodes := parseClashYAML(text)

		want := []model.Node{
			model.NewNode("a.example", 443),
			model.NewNode("b.example", 8080),
		}
		assertNodes(t, nodes, want)
	})

	t.Run("skips entries with out-of-range port", func(t *testing.T) {
		t.Parallel()

		text := `proxies:
  - server: bad.example
    port: 99999
  - server: good.example
    port: 443
`
		nodes := parseClashYAML(text)

		assertNodes(t, nodes, []model.Node{model.NewNode("good.example", 443)})
	})

	t.Run("skips entries with string port", func(t *testing.T) {
		t.Parallel()

		text := `proxies:
  - server: a.example
    port: "443"
`
		if nodes := parseClashYAML(text); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})

	t.Run("malformed YAML yields no nodes", func(t *testing.T) {
		t.Parallel()

		if nodes := parseClashYAML("proxies: [unclosed"); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})
}

// TestParseV2RayJSON tests the V2Ray JSON config parser.
func TestParseV2RayJSON(t *testing.T) {
	t.Parallel()

	t.Run("walks outbounds settings vnext", func(t *testing.T) {
		t.Parallel()

		text := `{
  "outbounds": [
    {"settings": {"vnext": [{"address": "a.example", "port": 443}]}},
    {"settings": {"vnext": [{"address": "b.example", "port": 8443}]}}
  ]
}`
		nodes := parseV2RayJSON(text)

		want := []model.Node{
			model.NewNode("a.example", 443),
			model.NewNode("b.example", 8443),
		}
		assertNodes(t, nodes, want)
	})

	t.Run("skips non-integral port", func(t *testing.T) {
		t.Parallel()

		text := `{"outbounds": [{"settings": {"vnext": [{"address": "a.example", "port": 443.5}]}}]}`
		if nodes := parseV2RayJSON(text); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})

	t.Run("invalid JSON yields no nodes", func(t *testing.T) {
		t.Parallel()

		if nodes := parseV2RayJSON(`{"outbounds": [`); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})
}

// TestParseVMess tests the vmess:// base64-JSON parser.
func TestParseVMess(t *testing.T) {
	t.Parallel()

	patterns := NewPatterns()

	t.Run("decodes base64 payload as JSON", func(t *testing.T) {
		t.Parallel()

		payload := base64.StdEncoding.EncodeToString([]byte(`{"add": "vm.example", "port": 443}`))
		nodes := parseVMess("vmess://"+payload, patterns)

		assertNodes(t, nodes, []model.Node{model.NewNode("vm.example", 443)})
	})

	t.Run("invalid base64 match is dropped, siblings survive", func(t *testing.T) {
		t.Parallel()

		good := base64.StdEncoding.EncodeToString([]byte(`{"add": "vm.example", "port": 443}`))
		// "AAA=AAA" matches the payload pattern but is not decodable base64.
		text := "vmess://AAA=AAA\nvmess://" + good
		nodes := parseVMess(text, patterns)

		assertNodes(t, nodes, []model.Node{model.NewNode("vm.example", 443)})
	})

	t.Run("payload that is not JSON is dropped", func(t *testing.T) {
		t.Parallel()

		payload := base64.StdEncoding.EncodeToString([]byte("not json at all"))
		if nodes := parseVMess("vmess://"+payload, patterns); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})
}

// TestParseSchemeURL tests the vless/trojan/ss user-info URI parsers.
func TestParseSchemeURL(t *testing.T) {
	t.Parallel()

	patterns := NewPatterns()

	tests := []struct {
		name   string
		scheme string
		text   string
		want   []model.Node
	}{
		{
			name:   "vless with plain host",
			scheme: "vless",
			text:   "vless://uuid@host.example:443?type=tcp#label",
			want:   []model.Node{model.NewNode("host.example", 443)},
		},
		{
			name:   "vless IPv6 host splits at rightmost colon",
			scheme: "vless",
			text:   "vless://user@2001:db8::1:8443",
			want:   []model.Node{model.NewNode("2001:db8::1", 8443)},
		},
		{
			name:   "trojan",
			scheme: "trojan",
			text:   "trojan://pw@t.example:8443/path",
			want:   []model.Node{model.NewNode("t.example", 8443)},
		},
		{
			name:   "ss",
			scheme: "ss",
			text:   "ss://method:pw@s.example:8388#tag",
			want:   []model.Node{model.NewNode("s.example", 8388)},
		},
		{
			name:   "segment without port is dropped",
			scheme: "vless",
			text:   "vless://uuid@hostonly",
			want:   nil,
		},
		{
			name:   "port above 65535 is dropped",
			scheme: "vless",
			text:   "vless://uuid@host.example:70000",
			want:   nil,
		},
		{
			name:   "two URIs on separate lines both parse",
			scheme: "vless",
			text:   "vless://a@h1.example:80\nvless://b@h2.example:81",
			want: []model.Node{
				model.NewNode("h1.example", 80),
				model.NewNode("h2.example", 81),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nodes := parseSchemeURL(tt.text, patterns, tt.scheme)
			assertNodes(t, nodes, tt.want)
		})
	}
}

// TestParseSSR tests the ssr:// base64 colon-field parser.
func TestParseSSR(t *testing.T) {
	t.Parallel()

	patterns := NewPatterns()

	t.Run("reads host and port from first two fields", func(t *testing.T) {
		t.Parallel()

		payload := base64.StdEncoding.EncodeToString(
			[]byte("ssr.example:8443:origin:aes-256-cfb:plain:cGFzcw"))
		nodes := parseSSR("ssr://"+payload, patterns)

		assertNodes(t, nodes, []model.Node{model.NewNode("ssr.example", 8443)})
	})

	t.Run("fewer than six fields is dropped", func(t *testing.T) {
		t.Parallel()

		payload := base64.StdEncoding.EncodeToString([]byte("host:443:origin"))
		if nodes := parseSSR("ssr://"+payload, patterns); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})

	t.Run("non-numeric port is dropped", func(t *testing.T) {
		t.Parallel()

		payload := base64.StdEncoding.EncodeToString(
			[]byte("host:notaport:origin:aes:plain:pw"))
		if nodes := parseSSR("ssr://"+payload, patterns); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})
}

// TestParseInlineJSON tests the inline "- {...}" fragment parser.
func TestParseInlineJSON(t *testing.T) {
	t.Parallel()

	patterns := NewPatterns()

	t.Run("reads server field", func(t *testing.T) {
		t.Parallel()

		text := `- {"server": "i.example", "port": 443}`
		nodes := parseInlineJSON(text, patterns)

		assertNodes(t, nodes, []model.Node{model.NewNode("i.example", 443)})
	})

	t.Run("falls back to address field", func(t *testing.T) {
		t.Parallel()

		text := `- {"address": "j.example", "port": 8080}`
		nodes := parseInlineJSON(text, patterns)

		assertNodes(t, nodes, []model.Node{model.NewNode("j.example", 8080)})
	})

	t.Run("invalid fragment is dropped, siblings survive", func(t *testing.T) {
		t.Parallel()

		text := "- {broken json}\n- {\"server\": \"k.example\", \"port\": 80}"
		nodes := parseInlineJSON(text, patterns)

		assertNodes(t, nodes, []model.Node{model.NewNode("k.example", 80)})
	})
}

// TestParseGeneric tests the last-resort bare host:port parser.
func TestParseGeneric(t *testing.T) {
	t.Parallel()

	patterns := NewPatterns()

	t.Run("matches bare host:port pairs", func(t *testing.T) {
		t.Parallel()

		text := "node1.example:8080 some text node2.example:443"
		nodes := parseGeneric(text, patterns)

		want := []model.Node{
			model.NewNode("node1.example", 8080),
			model.NewNode("node2.example", 443),
		}
		assertNodes(t, nodes, want)
	})

	t.Run("single-digit port does not match", func(t *testing.T) {
		t.Parallel()

		if nodes := parseGeneric("host.example:7", patterns); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})

	t.Run("five-digit port above 65535 is dropped", func(t *testing.T) {
		t.Parallel()

		if nodes := parseGeneric("host.example:99999", patterns); len(nodes) != 0 {
			t.Errorf("expected no nodes, got %v", nodes)
		}
	})
}

// assertNodes fails the test unless got matches want element-wise.
func assertNodes(t *testing.T, got, want []model.Node) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d nodes %v, expected %d nodes %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d: got %v, expected %v", i, got[i], want[i])
		}
	}
}
