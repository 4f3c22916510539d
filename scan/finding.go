// Package scan is the static security-analysis engine. Given a
// workflow graph and a node-type catalog it runs an independent set of
// checks (hardcoded secrets, PII, insecure configuration, risky
// expressions, code injection, data-flow exposure, AI-specific rules)
// and produces a severity-ranked, redacted report.
//
// The engine is a pure function of its input: no I/O, no mutation of
// the workflow, identical output for identical input whether checks
// run sequentially or in parallel.
package scan

// Severity ranks a finding. Sort order is critical first.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// Rank returns the sort rank of a severity; unknown severities sort
// last.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Category classifies what kind of problem a finding reports.
type Category string

const (
	CategoryHardcodedSecret Category = "hardcoded-secret"
	CategoryPII             Category = "pii"
	CategoryInsecureConfig  Category = "insecure-config"
	CategoryExpressionRisk  Category = "expression-risk"
	CategoryDataExposure    Category = "data-exposure"
	CategoryCodeInjection   Category = "code-injection"
)

// Finding is one security observation. Findings are value objects:
// created by a check, never mutated afterward. MatchedValue is always
// redacted before the finding is constructed.
type Finding struct {
	Severity      Severity `json:"severity"`
	Category      Category `json:"category"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	NodeName      string   `json:"nodeName"`
	ParameterPath string   `json:"parameterPath,omitempty"`
	MatchedValue  string   `json:"matchedValue,omitempty"`
}

// Report is the result of one scan invocation. It has no identity
// beyond the call that produced it.
type Report struct {
	ScanID           string    `json:"scanId"`
	WorkflowName     string    `json:"workflowName,omitempty"`
	Findings         []Finding `json:"findings"`
	WorkflowOverview string    `json:"workflowOverview"`
	ExternalServices []string  `json:"externalServices"`
	DataFlowPaths    []string  `json:"dataFlowPaths"`
}
