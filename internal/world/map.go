// Package world provides the wasteland map: a ring graph of explorable
// nodes classified by tier, distance, and risk.
package world

import "fmt"

// Tier classifies a node's danger and loot quality, T0 (settlement
// surroundings) through T5 (deep wasteland).
type Tier uint8

const (
	T0 Tier = iota
	T1
	T2
	T3
	T4
	T5
)

func (t Tier) String() string {
	return fmt.Sprintf("T%d", uint8(t))
}

// NodeState tracks how far the settlement's knowledge of a node has
// progressed. Transitions are strictly forward.
type NodeState uint8

const (
	NodeUndiscovered NodeState = iota
	NodeDiscovered
	NodeExplored
	NodeCleared
)

func (s NodeState) String() string {
	switch s {
	case NodeUndiscovered:
		return "undiscovered"
	case NodeDiscovered:
		return "discovered"
	case NodeExplored:
		return "explored"
	case NodeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// NodeID identifies a map node.
type NodeID string

// Node is one explorable location.
type Node struct {
	ID       NodeID    `json:"id"`
	Tier     Tier      `json:"tier"`
	Distance int       `json:"distance"` // travel distance from the settlement
	Risk     float64   `json:"risk"`     // 0.0 (quiet) to 1.0 (lethal)
	State    NodeState `json:"state"`
}

// Advance upgrades the node state monotonically. A regression (e.g.
// explored back to discovered, or cleared down to explored) is ignored and
// reported false.
func (n *Node) Advance(to NodeState) bool {
	if to <= n.State {
		return false
	}
	n.State = to
	return true
}

// Map is the generated node graph, ordered by distance then ring index.
type Map struct {
	Nodes map[NodeID]*Node `json:"nodes"`
	Order []NodeID         `json:"order"`
}

// Node returns the node by id, nil if unknown.
func (m *Map) Node(id NodeID) *Node {
	return m.Nodes[id]
}

// NodesWithin returns all nodes at or under the given distance, in map
// order.
func (m *Map) NodesWithin(distance int) []*Node {
	var out []*Node
	for _, id := range m.Order {
		if n := m.Nodes[id]; n.Distance <= distance {
			out = append(out, n)
		}
	}
	return out
}

// FirstUndiscovered returns the nearest undiscovered node within the given
// distance, nil if none.
func (m *Map) FirstUndiscovered(distance int) *Node {
	for _, id := range m.Order {
		n := m.Nodes[id]
		if n.State == NodeUndiscovered && n.Distance <= distance {
			return n
		}
	}
	return nil
}
