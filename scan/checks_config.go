package scan

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/prasanaa-pigment/n8n-sub000/pattern"
	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// skipTLSParamNames are boolean parameters that disable certificate
// verification when set.
var skipTLSParamNames = map[string]bool{
	"allowunauthorizedcerts": true,
	"ignoressl":              true,
	"ignoressslissues":       true,
	"skipsslverification":    true,
	"insecure":               true,
	"rejectunauthorized":     false, // true means verify; false is the insecure setting
}

// checkInsecureConfig flags plain-HTTP URLs to non-local hosts,
// disabled TLS verification, and triggers that accept unauthenticated
// input.
func checkInsecureConfig(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		err := workflow.Walk(node.Parameters, func(value, path string, expression bool) {
			if expression {
				return
			}
			if u, err := url.Parse(strings.TrimSpace(value)); err == nil && u.Scheme == "http" && u.Host != "" {
				if !pattern.IsLocalOnlyHost(u.Hostname()) {
					findings = append(findings, Finding{
						Severity:      SeverityWarning,
						Category:      CategoryInsecureConfig,
						Title:         "Unencrypted HTTP URL",
						Description:   fmt.Sprintf("Node %q calls %q over plain HTTP; anything in the request, including credentials, crosses the network unencrypted.", node.Name, u.Hostname()),
						NodeName:      node.Name,
						ParameterPath: path,
					})
				}
			}
		})
		if err != nil {
			return findings, err
		}

		if path, ok := findSkipTLS(node.Parameters); ok {
			findings = append(findings, Finding{
				Severity:      SeverityWarning,
				Category:      CategoryInsecureConfig,
				Title:         "TLS certificate verification disabled",
				Description:   fmt.Sprintf("Node %q is configured to accept any TLS certificate, which allows man-in-the-middle interception.", node.Name),
				NodeName:      node.Name,
				ParameterPath: path,
			})
		}

		if sc.tags[node.Name].trigger && hasNetworkSurface(node.Type) && isUnauthenticatedTrigger(node) {
			findings = append(findings, Finding{
				Severity:    SeverityWarning,
				Category:    CategoryInsecureConfig,
				Title:       "Unauthenticated trigger",
				Description: fmt.Sprintf("Trigger node %q accepts requests without authentication; anyone who discovers the endpoint can start this workflow.", node.Name),
				NodeName:    node.Name,
			})
		}
	}
	return findings, nil
}

// findSkipTLS looks for a boolean parameter whose name and value mean
// "do not verify certificates".
func findSkipTLS(params map[string]any) (string, bool) {
	var hit string
	walkBools(params, "", func(name, path string, value bool) {
		insecureWhen, known := skipTLSParamNames[strings.ToLower(name)]
		if known && value == insecureWhen && hit == "" {
			hit = path
		}
	})
	return hit, hit != ""
}

func walkBools(v any, path string, visit func(name, path string, value bool)) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			childPath := k
			if path != "" {
				childPath = path + "." + k
			}
			if b, ok := child.(bool); ok {
				visit(k, childPath, b)
				continue
			}
			walkBools(child, childPath, visit)
		}
	case []any:
		for i, child := range val {
			walkBools(child, fmt.Sprintf("%s[%d]", path, i), visit)
		}
	}
}

// hasNetworkSurface filters out trigger types with nothing to
// authenticate: clocks and manual starts accept no external requests.
func hasNetworkSurface(typeName string) bool {
	lower := strings.ToLower(typeName)
	for _, quiet := range []string{"cron", "schedule", "manualtrigger", "interval", ".start"} {
		if strings.Contains(lower, quiet) {
			return false
		}
	}
	return true
}

// isUnauthenticatedTrigger reports whether a trigger node has its
// authentication parameter unset or explicitly "none".
func isUnauthenticatedTrigger(node workflow.Node) bool {
	auth, ok := node.Parameters["authentication"]
	if !ok {
		return true
	}
	s, ok := auth.(string)
	if !ok {
		return false
	}
	return s == "" || strings.EqualFold(s, "none")
}

// checkExpressionRisk examines dynamic expressions only. Expressions
// that read process environment variables or reference credential-like
// names leak secret material into run-time data.
func checkExpressionRisk(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		err := workflow.Walk(node.Parameters, func(value, path string, expression bool) {
			if !expression {
				return
			}
			switch {
			case pattern.ExpressionEnvAccess.MatchString(value):
				findings = append(findings, Finding{
					Severity:      SeverityInfo,
					Category:      CategoryExpressionRisk,
					Title:         "Expression reads environment variables",
					Description:   fmt.Sprintf("Parameter %q on node %q resolves environment variables at run time; their values flow into workflow data.", path, node.Name),
					NodeName:      node.Name,
					ParameterPath: path,
				})
			case pattern.ExpressionCredentialRef.MatchString(value):
				findings = append(findings, Finding{
					Severity:      SeverityInfo,
					Category:      CategoryExpressionRisk,
					Title:         "Expression references credential-like field",
					Description:   fmt.Sprintf("Parameter %q on node %q references a credential-named field in an expression.", path, node.Name),
					NodeName:      node.Name,
					ParameterPath: path,
				})
			}
		})
		if err != nil {
			return findings, err
		}
	}
	return findings, nil
}

// codeBodyParamNames hold script source on code-execution nodes.
var codeBodyParamNames = []string{"jsCode", "pythonCode", "functionCode", "code", "command"}

// checkCodeInjection matches code-execution node bodies against the
// dangerous-construct table. Bodies are never parsed, so malformed
// code cannot fail the check; it just matches nothing.
func checkCodeInjection(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !sc.tags[node.Name].codeExecution {
			continue
		}
		for _, param := range codeBodyParamNames {
			body, ok := node.Parameters[param].(string)
			if !ok || body == "" {
				continue
			}
			for _, hit := range pattern.MatchCode(body) {
				findings = append(findings, Finding{
					Severity:      SeverityWarning,
					Category:      CategoryCodeInjection,
					Title:         fmt.Sprintf("Code node uses %s", hit.Label),
					Description:   fmt.Sprintf("The script body of node %q contains %s. Review whether untrusted workflow data can reach it.", node.Name, hit.Label),
					NodeName:      node.Name,
					ParameterPath: param,
				})
			}
		}
	}
	return findings, nil
}

// checkSSRF flags literal internal-network URLs on HTTP-request nodes,
// but only in workflows that expose a webhook trigger: without an
// attacker-reachable entry point there is nobody to steer the request.
func checkSSRF(sc *scanContext) ([]Finding, error) {
	hasWebhook := false
	for _, node := range sc.wf.AllNodes() {
		if sc.tags[node.Name].webhookTrigger {
			hasWebhook = true
			break
		}
	}
	if !hasWebhook {
		return nil, nil
	}

	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !sc.tags[node.Name].httpRequest {
			continue
		}
		err := workflow.Walk(node.Parameters, func(value, path string, expression bool) {
			if expression {
				return
			}
			if pattern.IsInternalURL(value) {
				findings = append(findings, Finding{
					Severity:      SeverityWarning,
					Category:      CategoryDataExposure,
					Title:         "HTTP request targets internal network",
					Description:   fmt.Sprintf("Node %q sends requests to an internal address (%s); combined with the webhook entry point this is a server-side request forgery risk.", node.Name, path),
					NodeName:      node.Name,
					ParameterPath: path,
				})
			}
		})
		if err != nil {
			return findings, err
		}
	}
	return findings, nil
}
