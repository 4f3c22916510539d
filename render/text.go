// Package render serializes scan reports for specific consumers. The
// engine prescribes no wire format; these are the two renderings the
// surrounding system uses: a tagged-section text block for LLM
// consumption and a SARIF log for security tooling.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/prasanaa-pigment/n8n-sub000/scan"
)

var titleCaser = cases.Title(language.English)

// Text renders a report as a tagged-section block. Sections are always
// present, in fixed order, so a model consuming the output can rely on
// the structure.
func Text(report *scan.Report) string {
	if report == nil {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("[SUMMARY]\n")
	if report.WorkflowName != "" {
		fmt.Fprintf(&sb, "workflow: %s\n", report.WorkflowName)
	}
	counts := map[scan.Severity]int{}
	for _, f := range report.Findings {
		counts[f.Severity]++
	}
	fmt.Fprintf(&sb, "findings: %d (critical: %d, warning: %d, info: %d)\n",
		len(report.Findings), counts[scan.SeverityCritical], counts[scan.SeverityWarning], counts[scan.SeverityInfo])

	sb.WriteString("\n[FINDINGS]\n")
	if len(report.Findings) == 0 {
		sb.WriteString("none\n")
	}
	for i, f := range report.Findings {
		fmt.Fprintf(&sb, "%d. [%s] %s — %s\n", i+1, strings.ToUpper(string(f.Severity)), categoryLabel(f.Category), f.Title)
		fmt.Fprintf(&sb, "   node: %s", f.NodeName)
		if f.ParameterPath != "" {
			fmt.Fprintf(&sb, ", parameter: %s", f.ParameterPath)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "   %s\n", f.Description)
		if f.MatchedValue != "" {
			fmt.Fprintf(&sb, "   matched: %s\n", f.MatchedValue)
		}
	}

	sb.WriteString("\n[WORKFLOW]\n")
	sb.WriteString(report.WorkflowOverview)
	sb.WriteString("\n")

	sb.WriteString("\n[EXTERNAL_SERVICES]\n")
	if len(report.ExternalServices) == 0 {
		sb.WriteString("none\n")
	}
	for _, svc := range report.ExternalServices {
		fmt.Fprintf(&sb, "- %s\n", svc)
	}

	sb.WriteString("\n[DATA_FLOWS]\n")
	if len(report.DataFlowPaths) == 0 {
		sb.WriteString("none\n")
	}
	for _, p := range report.DataFlowPaths {
		fmt.Fprintf(&sb, "- %s\n", p)
	}

	return sb.String()
}

// categoryLabel turns "hardcoded-secret" into "Hardcoded Secret".
func categoryLabel(c scan.Category) string {
	return titleCaser.String(strings.ReplaceAll(string(c), "-", " "))
}
