package scan

import (
	"fmt"

	"github.com/prasanaa-pigment/n8n-sub000/pattern"
	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// walkLiterals visits every literal string parameter of a node.
// Dynamic expressions are excluded here: their content is resolved at
// run time, so matching signature tables against them produces noise.
func walkLiterals(node workflow.Node, visit func(value, path string)) error {
	return workflow.Walk(node.Parameters, func(value, path string, expression bool) {
		if expression {
			return
		}
		visit(value, path)
	})
}

// checkHardcodedSecrets flags literal parameter values that look like
// credentials: first the provider signature table (first match wins
// per value), then the generic credential-name/token-shape heuristic,
// which runs independently so unbranded tokens are still caught.
func checkHardcodedSecrets(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		err := walkLiterals(node, func(value, path string) {
			if label, matched, ok := pattern.MatchSecretWith(sc.extraSecrets, value); ok {
				findings = append(findings, Finding{
					Severity:      SeverityCritical,
					Category:      CategoryHardcodedSecret,
					Title:         fmt.Sprintf("Hardcoded %s", label),
					Description:   fmt.Sprintf("Node %q contains what appears to be a %s in parameter %q. Move it into a credential.", node.Name, label, path),
					NodeName:      node.Name,
					ParameterPath: path,
					MatchedValue:  pattern.Redact(matched),
				})
				return
			}
			field := workflow.LastPathSegment(path)
			if pattern.GenericToken(field, value) || (pattern.IsSensitiveFieldName(field) && len(value) >= 8) {
				findings = append(findings, Finding{
					Severity:      SeverityCritical,
					Category:      CategoryHardcodedSecret,
					Title:         "Possible hardcoded API token",
					Description:   fmt.Sprintf("Parameter %q on node %q is named like a credential and holds a token-shaped literal value.", path, node.Name),
					NodeName:      node.Name,
					ParameterPath: path,
					MatchedValue:  pattern.Redact(value),
				})
			}
		})
		if err != nil {
			return findings, err
		}
	}
	return findings, nil
}

// checkPII flags literal parameter values matching PII shapes. The
// common case is test data left behind in a production workflow.
func checkPII(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		err := walkLiterals(node, func(value, path string) {
			if label, matched, ok := pattern.MatchPII(value); ok {
				findings = append(findings, Finding{
					Severity:      SeverityWarning,
					Category:      CategoryPII,
					Title:         fmt.Sprintf("Exposed %s", label),
					Description:   fmt.Sprintf("Node %q has a literal %s in parameter %q.", node.Name, label, path),
					NodeName:      node.Name,
					ParameterPath: path,
					MatchedValue:  pattern.Redact(matched),
				})
			}
		})
		if err != nil {
			return findings, err
		}
	}
	return findings, nil
}
