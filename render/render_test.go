package render

import (
	"strings"
	"testing"

	"github.com/prasanaa-pigment/n8n-sub000/scan"
)

func sampleReport() *scan.Report {
	return &scan.Report{
		ScanID:       "2b7e1516-28ae-5a2a-abf7-158809cf4f3c",
		WorkflowName: "order sync",
		Findings: []scan.Finding{
			{
				Severity:      scan.SeverityCritical,
				Category:      scan.CategoryHardcodedSecret,
				Title:         "Hardcoded Stripe API key",
				Description:   "Node \"Charge\" contains what appears to be a Stripe API key.",
				NodeName:      "Charge",
				ParameterPath: "headerParameters.parameters[0].value",
				MatchedValue:  "sk_t********00xx",
			},
			{
				Severity:    scan.SeverityWarning,
				Category:    scan.CategoryInsecureConfig,
				Title:       "Unauthenticated trigger",
				Description: "Trigger node \"Hook\" accepts requests without authentication.",
				NodeName:    "Hook",
			},
			{
				Severity:    scan.SeverityInfo,
				Category:    scan.CategoryDataExposure,
				Title:       "External service \"Notify\" receives trigger data",
				Description: "Data entering through Hook can reach \"Notify\".",
				NodeName:    "Notify",
			},
		},
		WorkflowOverview: "nodes:\n- Hook (n8n-nodes-base.webhook) [trigger]",
		ExternalServices: []string{"Charge (n8n-nodes-base.httpRequest) → https://billing.example.com/charge"},
		DataFlowPaths:    []string{"Hook → Agent → Charge"},
	}
}

func TestTextSections(t *testing.T) {
	out := Text(sampleReport())

	sections := []string{"[SUMMARY]", "[FINDINGS]", "[WORKFLOW]", "[EXTERNAL_SERVICES]", "[DATA_FLOWS]"}
	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		if idx < 0 {
			t.Fatalf("section %s missing:\n%s", section, out)
		}
		if idx < last {
			t.Errorf("section %s out of order", section)
		}
		last = idx
	}

	for _, want := range []string{
		"workflow: order sync",
		"findings: 3 (critical: 1, warning: 1, info: 1)",
		"1. [CRITICAL] Hardcoded Secret — Hardcoded Stripe API key",
		"node: Charge, parameter: headerParameters.parameters[0].value",
		"matched: sk_t********00xx",
		"2. [WARNING] Insecure Config — Unauthenticated trigger",
		"- Hook → Agent → Charge",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextEmptyReport(t *testing.T) {
	out := Text(&scan.Report{WorkflowOverview: "empty workflow"})
	for _, want := range []string{
		"findings: 0 (critical: 0, warning: 0, info: 0)",
		"[FINDINGS]\nnone",
		"[EXTERNAL_SERVICES]\nnone",
		"[DATA_FLOWS]\nnone",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if got := Text(nil); got != "" {
		t.Errorf("nil report should render empty, got %q", got)
	}
}

func TestSARIF(t *testing.T) {
	report := sampleReport()
	// A second finding in an existing category must not duplicate the rule.
	report.Findings = append(report.Findings, scan.Finding{
		Severity: scan.SeverityCritical,
		Category: scan.CategoryHardcodedSecret,
		Title:    "Possible hardcoded API token",
		NodeName: "Charge",
	})

	log, err := SARIF(report)
	if err != nil {
		t.Fatal(err)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(log.Runs))
	}
	run := log.Runs[0]

	if got := len(run.Results); got != len(report.Findings) {
		t.Fatalf("results = %d, want %d", got, len(report.Findings))
	}
	if got := len(run.Tool.Driver.Rules); got != 3 {
		t.Errorf("rules = %d, want 3 (one per category)", got)
	}

	wantLevels := []string{"error", "warning", "note", "error"}
	for i, result := range run.Results {
		if result.Level == nil || *result.Level != wantLevels[i] {
			t.Errorf("result %d level = %v, want %s", i, result.Level, wantLevels[i])
		}
	}

	first := run.Results[0]
	if first.RuleID == nil || *first.RuleID != string(scan.CategoryHardcodedSecret) {
		t.Errorf("ruleId = %v", first.RuleID)
	}
	uri := first.Locations[0].PhysicalLocation.ArtifactLocation.URI
	if uri == nil || *uri != "workflow://Charge#headerParameters.parameters[0].value" {
		t.Errorf("uri = %v", uri)
	}

	// A finding without a parameter path addresses the node alone.
	second := run.Results[1]
	if got := *second.Locations[0].PhysicalLocation.ArtifactLocation.URI; got != "workflow://Hook" {
		t.Errorf("uri = %q", got)
	}
}
