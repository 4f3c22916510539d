package scan

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// buildWorkflow wires nodes with main-type edges described as "A>B".
func buildWorkflow(nodeNames []string, edges []string) *workflow.Workflow {
	wf := &workflow.Workflow{Connections: map[string]map[string][][]workflow.Connection{}}
	for _, name := range nodeNames {
		wf.Nodes = append(wf.Nodes, workflow.Node{Name: name, Type: "n8n-nodes-base.set"})
	}
	for _, e := range edges {
		var from, to string
		fmt.Sscanf(e, "%1s>%1s", &from, &to)
		addEdge(wf, from, to, workflow.ConnMain)
	}
	return wf
}

func addEdge(wf *workflow.Workflow, from, to, connType string) {
	if wf.Connections[from] == nil {
		wf.Connections[from] = map[string][][]workflow.Connection{}
	}
	slots := wf.Connections[from][connType]
	if len(slots) == 0 {
		slots = [][]workflow.Connection{{}}
	}
	slots[0] = append(slots[0], workflow.Connection{To: to})
	wf.Connections[from][connType] = slots
}

// dfsClosure is the independent oracle: exhaustive depth-first
// reachability over the same graph.
func dfsClosure(wf *workflow.Workflow, start string) map[string]bool {
	seen := map[string]bool{start: true}
	var visit func(string)
	visit = func(name string) {
		for _, edge := range wf.ConnectionsFrom(name) {
			if wf.NodeByName(edge.To) == nil || seen[edge.To] {
				continue
			}
			seen[edge.To] = true
			visit(edge.To)
		}
	}
	visit(start)
	return seen
}

func TestReachMatchesDFS(t *testing.T) {
	graphs := []struct {
		name  string
		nodes []string
		edges []string
	}{
		{"chain", []string{"A", "B", "C", "D"}, []string{"A>B", "B>C", "C>D"}},
		{"diamond", []string{"A", "B", "C", "D"}, []string{"A>B", "A>C", "B>D", "C>D"}},
		{"cycle", []string{"A", "B", "C"}, []string{"A>B", "B>C", "C>A"}},
		{"disconnected", []string{"A", "B", "C"}, []string{"B>C"}},
		{"self loop", []string{"A", "B"}, []string{"A>A", "A>B"}},
	}
	for _, g := range graphs {
		t.Run(g.name, func(t *testing.T) {
			wf := buildWorkflow(g.nodes, g.edges)
			r := reachFrom(wf, "A")
			if diff := cmp.Diff(dfsClosure(wf, "A"), r.visited); diff != "" {
				t.Errorf("BFS and DFS disagree (-dfs +bfs):\n%s", diff)
			}
		})
	}
}

func TestReachSkipsDanglingTargets(t *testing.T) {
	wf := buildWorkflow([]string{"A", "B"}, []string{"A>B"})
	addEdge(wf, "B", "Z", workflow.ConnMain) // Z does not exist
	r := reachFrom(wf, "A")
	if r.visited["Z"] {
		t.Error("dangling target must not be visited")
	}
	if !r.visited["B"] {
		t.Error("B should be reached")
	}
}

func TestReachSpansConnectionTypes(t *testing.T) {
	wf := buildWorkflow([]string{"A", "B", "C"}, nil)
	addEdge(wf, "A", "B", workflow.ConnAITool)
	addEdge(wf, "B", "C", workflow.ConnMain)
	r := reachFrom(wf, "A")
	if !r.visited["C"] {
		t.Error("traversal must span the union of connection types")
	}
}

func TestReconstructPath(t *testing.T) {
	wf := buildWorkflow([]string{"A", "B", "C", "D", "E"},
		[]string{"A>B", "B>C", "C>D", "A>E", "E>D"})
	r := reachFrom(wf, "A")

	path := reconstructPath(r, "D")
	if len(path) != 3 {
		t.Fatalf("BFS must find a shortest path, got %v", path)
	}
	if path[0] != "A" || path[len(path)-1] != "D" {
		t.Errorf("path endpoints wrong: %v", path)
	}
	if got := reconstructPath(r, "missing"); got != nil {
		t.Errorf("unreachable target must yield nil, got %v", got)
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"A"}, "A"},
		{[]string{"A", "B", "C"}, "A → B → C"},
		{[]string{"A", "B", "C", "D", "E"}, "A → B → C → D → E"},
		{[]string{"A", "B", "C", "D", "E", "F"}, "A → B → … → F"},
		{[]string{"A", "B", "C", "D", "E", "F", "G", "H"}, "A → B → … → H"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
