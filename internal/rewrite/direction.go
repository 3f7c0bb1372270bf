// Package rewrite implements the direction-dependent message transformation
// pipeline: URI/path translation, PID patching, and on-demand
// materialization of container-only files. It operates on the parsed JSON
// tree of a frame's payload and never needs to know which LSP method a
// message belongs to.
package rewrite

// Direction distinguishes which way a frame is travelling, since URI
// rewriting is asymmetric.
type Direction int

const (
	// ToServer is client -> server.
	ToServer Direction = iota
	// ToClient is server -> client.
	ToClient
)

func (d Direction) String() string {
	if d == ToServer {
		return "to-server"
	}
	return "to-client"
}
