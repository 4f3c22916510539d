// Package workflow models a declarative automation workflow: typed
// processing nodes connected by directed, typed edges.
//
// The model is read-only. Scans treat a Workflow as immutable for the
// duration of one invocation, so accessors never mutate state and
// tolerate structurally sloppy input (dangling edge targets, unknown
// node types) instead of failing.
package workflow

import "sort"

// Node is a single processing step. Identity is by Name, which is
// unique within a workflow. Type is a namespaced identifier (for
// example "n8n-nodes-base.httpRequest") and drives classification.
type Node struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Connection is one directed edge. A node may fan out: each output
// slot of each connection type holds zero or more edges.
type Connection struct {
	From        string `json:"-"`
	Type        string `json:"type"`
	OutputIndex int    `json:"-"`
	To          string `json:"node"`
	InputIndex  int    `json:"index"`
}

// ConnMain is the primary data-flow connection type. ConnAITool wires
// a tool node into an agent node.
const (
	ConnMain   = "main"
	ConnAITool = "ai_tool"
)

// Workflow is the graph: nodes plus a connection map keyed by source
// node name, then connection type, then output slot.
type Workflow struct {
	Name        string
	Nodes       []Node
	Connections map[string]map[string][][]Connection
}

// NodeByName returns the node with the given name, or nil.
func (w *Workflow) NodeByName(name string) *Node {
	if w == nil {
		return nil
	}
	for i := range w.Nodes {
		if w.Nodes[i].Name == name {
			return &w.Nodes[i]
		}
	}
	return nil
}

// AllNodes returns the nodes in document order.
func (w *Workflow) AllNodes() []Node {
	if w == nil {
		return nil
	}
	return w.Nodes
}

// ConnectionsFrom returns every outgoing edge of the named node,
// flattened across connection types and output slots. Edges pointing
// at nodes that do not exist are still returned; traversal decides
// whether to skip them. Order is deterministic: connection types
// sorted, then slot order, then edge order.
func (w *Workflow) ConnectionsFrom(name string) []Connection {
	if w == nil {
		return nil
	}
	byType, ok := w.Connections[name]
	if !ok {
		return nil
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	var out []Connection
	for _, t := range types {
		for slot, edges := range byType[t] {
			for _, edge := range edges {
				edge.From = name
				edge.Type = t
				edge.OutputIndex = slot
				out = append(out, edge)
			}
		}
	}
	return out
}

// ConnectionsOfType returns outgoing edges of one connection type only.
func (w *Workflow) ConnectionsOfType(name, connType string) []Connection {
	var out []Connection
	for _, c := range w.ConnectionsFrom(name) {
		if c.Type == connType {
			out = append(out, c)
		}
	}
	return out
}
