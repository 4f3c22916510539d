package scan

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// buildOverview renders a compact picture of the graph: node names,
// types and edges. Parameter values are deliberately absent so the
// overview can never leak something redaction was not applied to.
func buildOverview(wf *workflow.Workflow, tags map[string]capabilities) string {
	nodes := wf.AllNodes()
	if len(nodes) == 0 {
		return "empty workflow"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d nodes\n", len(nodes))
	for _, node := range nodes {
		var marks []string
		t := tags[node.Name]
		if t.trigger {
			marks = append(marks, "trigger")
		}
		if t.externalService {
			marks = append(marks, "external")
		}
		if t.aiNode {
			marks = append(marks, "ai")
		}
		if t.codeExecution {
			marks = append(marks, "code")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " [" + strings.Join(marks, ",") + "]"
		}
		fmt.Fprintf(&sb, "- %s (%s)%s\n", node.Name, node.Type, suffix)
		for _, edge := range wf.ConnectionsFrom(node.Name) {
			fmt.Fprintf(&sb, "    %s→ %s\n", edgeLabel(edge), edge.To)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func edgeLabel(edge workflow.Connection) string {
	if edge.Type == workflow.ConnMain {
		return ""
	}
	return edge.Type + " "
}

// externalServices lists the external-service nodes once each, with
// any literal URL parameters sanitized down to scheme, host and path.
// Queries and fragments are stripped because tokens ride there.
func externalServices(wf *workflow.Workflow, tags map[string]capabilities) []string {
	seen := map[string]bool{}
	var out []string
	for _, node := range wf.AllNodes() {
		if !tags[node.Name].externalService || seen[node.Name] {
			continue
		}
		seen[node.Name] = true

		entry := fmt.Sprintf("%s (%s)", node.Name, node.Type)
		if u := firstLiteralURL(node); u != "" {
			entry += " → " + u
		}
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

// firstLiteralURL finds the first literal http(s) URL in a node's
// parameters, sanitized. Walk order is deterministic, so "first" is
// stable.
func firstLiteralURL(node workflow.Node) string {
	var found string
	_ = workflow.Walk(node.Parameters, func(value, path string, expression bool) {
		if expression || found != "" {
			return
		}
		u, err := url.Parse(strings.TrimSpace(value))
		if err != nil || u.Host == "" {
			return
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		found = SanitizeURL(u)
	})
	return found
}

// SanitizeURL reduces a URL to scheme://host/path.
func SanitizeURL(u *url.URL) string {
	clean := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return clean.String()
}
