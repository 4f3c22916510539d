package scan

import (
	"fmt"
	"sort"
	"strings"
)

// fanOutThreshold is the number of distinct external-service nodes one
// trigger must reach before its blast radius is flagged.
const fanOutThreshold = 5

// checkDataExposure walks the reachable set of every trigger and
// reports each external-service node that trigger-supplied data can
// flow into. One finding per external node, naming every trigger that
// reaches it.
func checkDataExposure(sc *scanContext) ([]Finding, error) {
	reachedBy := map[string][]string{}
	for _, r := range sc.reaches {
		for _, node := range sc.wf.AllNodes() {
			if node.Name == r.origin || !r.visited[node.Name] {
				continue
			}
			if sc.tags[node.Name].externalService {
				reachedBy[node.Name] = append(reachedBy[node.Name], r.origin)
			}
		}
	}

	names := make([]string, 0, len(reachedBy))
	for name := range reachedBy {
		names = append(names, name)
	}
	sort.Strings(names)

	var findings []Finding
	for _, name := range names {
		triggers := reachedBy[name]
		findings = append(findings, Finding{
			Severity:    SeverityInfo,
			Category:    CategoryDataExposure,
			Title:       fmt.Sprintf("External service %q receives trigger data", name),
			Description: fmt.Sprintf("Data entering through %s can reach the external service node %q.", strings.Join(triggers, ", "), name),
			NodeName:    name,
		})
	}
	return findings, nil
}

// checkFanOut flags triggers whose reachable set spans many distinct
// external services: a single inbound request fanning out to five or
// more third parties is a wide blast radius for one entry point.
func checkFanOut(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, r := range sc.reaches {
		count := 0
		for _, node := range sc.wf.AllNodes() {
			if node.Name != r.origin && r.visited[node.Name] && sc.tags[node.Name].externalService {
				count++
			}
		}
		if count >= fanOutThreshold {
			findings = append(findings, Finding{
				Severity:    SeverityWarning,
				Category:    CategoryDataExposure,
				Title:       "Wide external fan-out from one trigger",
				Description: fmt.Sprintf("Trigger %q reaches %d distinct external services; one inbound request spreads data across all of them.", r.origin, count),
				NodeName:    r.origin,
			})
		}
	}
	return findings, nil
}

// dataFlowPaths renders the shortest path from each trigger to each
// reachable external-service node, capped at maxDataFlowPaths across
// the whole scan in trigger iteration order.
func dataFlowPaths(sc *scanContext) []string {
	var paths []string
	for _, r := range sc.reaches {
		for _, node := range sc.wf.AllNodes() {
			if len(paths) >= maxDataFlowPaths {
				return paths
			}
			if node.Name == r.origin || !r.visited[node.Name] {
				continue
			}
			if !sc.tags[node.Name].externalService {
				continue
			}
			if p := reconstructPath(r, node.Name); p != nil {
				paths = append(paths, formatPath(p))
			}
		}
	}
	return paths
}
