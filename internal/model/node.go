package model

import (
	"fmt"
)

// MaxPort is the largest valid TCP port number. Parsers reject any
// candidate whose port exceeds this value.
const MaxPort = 65535

// Node is a candidate network endpoint extracted from subscription content.
// Identity is structural on (Host, Port): two nodes are the same endpoint
// iff both fields match exactly. Host case is deliberately NOT normalized;
// subscription formats are inconsistent about casing and collapsing case
// here would silently merge endpoints the source considers distinct.
//
// Design decision: Node is a comparable value type rather than a struct
// with unexported fields because the pipeline deduplicates nodes with a
// map[Node]struct{}. Go's built-in struct equality gives us exactly the
// structural identity the dedup needs, with no Equal method to keep in sync.
type Node struct {
	// Host is the endpoint hostname or IP address, as it appeared in the
	// subscription. May contain colons for IPv6 literals.
	Host string

	// Port is the endpoint TCP port in the range 0-65535.
	Port int
}

// NewNode creates a Node from a host and port.
func NewNode(host string, port int) Node {
	return Node{Host: host, Port: port}
}

// Address returns the synthesized HTTP address used for reachability
// probing, in the form "http://host:port".
//
// Note: connectivity is tested with plain HTTP against host:port, not with
// the proxy protocol the node actually speaks. A reachable node is one
// whose host accepts TCP and answers something on that port.
func (n Node) Address() string {
	return fmt.Sprintf("http://%s:%d", n.Host, n.Port)
}

// String returns the node in "host:port" form for logging.
func (n Node) String() string {
	return fmt.Sprintf("%s:%d", n.Host, n.Port)
}
