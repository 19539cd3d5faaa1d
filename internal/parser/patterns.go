package parser

import "regexp"

// Patterns is the compiled pattern table shared by all parse operations.
// It is constructed once at startup and only ever read afterwards, so a
// single instance can be shared across every concurrent parse task without
// synchronization (compiled regexps are safe for concurrent use).
type Patterns struct {
	// HostPort matches a bare host:port pair anywhere in text. The host
	// class is deliberately loose (letters, digits, dots, hyphens) and the
	// port is 2-5 digits; this is the weakest heuristic in the chain and
	// only runs when every other parser came up empty.
	HostPort *regexp.Regexp

	// VMess captures the base64 payload after a vmess:// scheme.
	VMess *regexp.Regexp

	// VLess captures the user-info@host-port segment of a vless:// URI,
	// up to the path, query, or fragment.
	VLess *regexp.Regexp

	// Trojan captures the host-port segment of a trojan:// URI.
	Trojan *regexp.Regexp

	// SS captures the host-port segment of an ss:// URI.
	SS *regexp.Regexp

	// SSR captures the base64 payload after an ssr:// scheme.
	SSR *regexp.Regexp

	// InlineJSON matches YAML-list-item-looking inline objects ("- {...}").
	InlineJSON *regexp.Regexp
}

// schemePattern returns the compiled pattern for a user-info URI scheme,
// or nil for schemes the table does not know.
func (p *Patterns) schemePattern(scheme string) *regexp.Regexp {
	switch scheme {
	case "vless":
		return p.VLess
	case "trojan":
		return p.Trojan
	case "ss":
		return p.SS
	default:
		return nil
	}
}

// NewPatterns compiles the pattern table.
func NewPatterns() *Patterns {
	return &Patterns{
		HostPort:   regexp.MustCompile(`([0-9a-zA-Z.\-]+):(\d{2,5})`),
		VMess:      regexp.MustCompile(`vmess://([A-Za-z0-9+/=]+)`),
		VLess:      regexp.MustCompile(`vless://[^@\s]+@([^/?#\s]+)`),
		Trojan:     regexp.MustCompile(`trojan://[^@\s]+@([^/?#\s]+)`),
		SS:         regexp.MustCompile(`ss://[^@\s]+@([^/?#\s]+)`),
		SSR:        regexp.MustCompile(`ssr://([A-Za-z0-9+/=]+)`),
		InlineJSON: regexp.MustCompile(`-\s*(\{[^}]*\})`),
	}
}
