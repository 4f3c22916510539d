package scan

import (
	"strings"

	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// maxPathHops is the hop count above which a rendered path collapses
// its middle. maxDataFlowPaths caps how many paths a whole scan emits.
const (
	maxPathHops      = 5
	maxDataFlowPaths = 10
)

// reachability is the result of one BFS from a trigger node: the set
// of reachable nodes and the predecessor map for shortest-path
// reconstruction (first discovery wins, so hop counts are minimal).
type reachability struct {
	origin  string
	visited map[string]bool
	pred    map[string]string
}

// reachFrom walks forward from start over the union of all connection
// types. Edges whose target does not exist in the workflow are skipped
// silently; a dangling reference is an input-contract violation, not
// an error.
func reachFrom(wf *workflow.Workflow, start string) reachability {
	r := reachability{
		origin:  start,
		visited: map[string]bool{start: true},
		pred:    map[string]string{},
	}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edge := range wf.ConnectionsFrom(current) {
			if wf.NodeByName(edge.To) == nil {
				continue
			}
			if r.visited[edge.To] {
				continue
			}
			r.visited[edge.To] = true
			r.pred[edge.To] = current
			queue = append(queue, edge.To)
		}
	}
	return r
}

// reconstructPath rebuilds the shortest discovered path from the BFS
// origin to target using the predecessor map. Returns nil if target
// was never reached. Kept separate from the traversal so it is
// independently testable.
func reconstructPath(r reachability, target string) []string {
	if !r.visited[target] {
		return nil
	}
	var path []string
	for at := target; ; {
		path = append([]string{at}, path...)
		if at == r.origin {
			return path
		}
		prev, ok := r.pred[at]
		if !ok {
			return nil
		}
		at = prev
	}
}

// formatPath renders a node path as "A → B → C". Paths longer than
// maxPathHops collapse the middle: "A → B → … → Z".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	if len(path) > maxPathHops {
		kept := append([]string{}, path[0], path[1], "…", path[len(path)-1])
		return strings.Join(kept, " → ")
	}
	return strings.Join(path, " → ")
}
