package dependency

import (
	"fmt"
	"strings"
)

// NodeID is the unique identifier for a node inside a dependency graph.
type NodeID string

// NodeKind categorises nodes.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindCoordination
	KindBroker
)

func (k NodeKind) String() string {
	switch k {
	case KindCoordination:
		return "coordination"
	case KindBroker:
		return "broker"
	default:
		return "unknown"
	}
}

// Node represents one supervised service together with its dependency list.
type Node struct {
	ID           NodeID
	FriendlyName string
	Kind         NodeKind
	DependsOn    []NodeID
}

// Graph answers dependency and ordering queries. It is not thread-safe;
// it is built once and then only read.
type Graph struct {
	nodes map[NodeID]*Node
	// insertion order, used to break ties so orderings are deterministic
	order []NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// AddNode adds (or replaces) a node in the graph.
func (g *Graph) AddNode(n Node) {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*Node)
	}
	if _, exists := g.nodes[n.ID]; !exists {
		g.order = append(g.order, n.ID)
	}
	copied := n
	copied.DependsOn = append([]NodeID(nil), n.DependsOn...)
	g.nodes[n.ID] = &copied
}

// Get returns a pointer to the stored node or nil if it does not exist.
func (g *Graph) Get(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns a slice of immediate dependency IDs for the given node.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		depsCopy := make([]NodeID, len(n.DependsOn))
		copy(depsCopy, n.DependsOn)
		return depsCopy
	}
	return nil
}

// Dependents returns all node IDs that have a direct dependency on the given
// node, in insertion order.
func (g *Graph) Dependents(id NodeID) []NodeID {
	var res []NodeID
	for _, nid := range g.order {
		for _, dep := range g.nodes[nid].DependsOn {
			if dep == id {
				res = append(res, nid)
				break
			}
		}
	}
	return res
}

// StartOrder returns every node such that each appears after all of its
// dependencies. Ties keep insertion order. It fails on a dependency that is
// not in the graph or on a cycle.
func (g *Graph) StartOrder() ([]NodeID, error) {
	indegree := make(map[NodeID]int, len(g.nodes))
	for _, id := range g.order {
		n := g.nodes[id]
		for _, dep := range n.DependsOn {
			if _, ok := g.nodes[dep]; !ok {
				return nil, fmt.Errorf("node %s depends on unknown node %s", id, dep)
			}
		}
		indegree[id] = len(n.DependsOn)
	}

	result := make([]NodeID, 0, len(g.nodes))
	done := make(map[NodeID]bool, len(g.nodes))
	for len(result) < len(g.nodes) {
		progressed := false
		for _, id := range g.order {
			if done[id] || indegree[id] > 0 {
				continue
			}
			done[id] = true
			result = append(result, id)
			progressed = true
			for _, dependent := range g.Dependents(id) {
				indegree[dependent]--
			}
		}
		if !progressed {
			var stuck []string
			for _, id := range g.order {
				if !done[id] {
					stuck = append(stuck, string(id))
				}
			}
			return nil, fmt.Errorf("dependency cycle between: %s", strings.Join(stuck, ", "))
		}
	}
	return result, nil
}

// StopOrder returns the reverse of StartOrder: dependents stop before the
// nodes they depend on.
func (g *Graph) StopOrder() ([]NodeID, error) {
	start, err := g.StartOrder()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(start)-1; i < j; i, j = i+1, j-1 {
		start[i], start[j] = start[j], start[i]
	}
	return start, nil
}
