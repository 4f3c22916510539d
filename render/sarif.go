package render

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/prasanaa-pigment/n8n-sub000/scan"
)

const (
	toolName = "workflow-scan"
	toolURI  = "https://github.com/prasanaa-pigment/n8n-sub000"
)

// SARIF converts a report into a SARIF v2.1.0 log with a single run.
// Rules are created per finding category; node names stand in for
// artifact locations since workflow nodes have no file coordinates.
func SARIF(report *scan.Report) (*sarif.Report, error) {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("create sarif log: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	seenRules := map[string]bool{}
	for _, f := range report.Findings {
		ruleID := string(f.Category)
		if !seenRules[ruleID] {
			seenRules[ruleID] = true
			run.AddRule(ruleID).
				WithDescription(categoryLabel(f.Category)).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: sarifLevel(f.Severity),
				})
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(nodeURI(f))),
		)
		result := sarif.NewRuleResult(ruleID).
			WithMessage(sarif.NewTextMessage(f.Title + ": " + f.Description)).
			WithLevel(sarifLevel(f.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}

	log.AddRun(run)
	return log, nil
}

func nodeURI(f scan.Finding) string {
	if f.ParameterPath != "" {
		return fmt.Sprintf("workflow://%s#%s", f.NodeName, f.ParameterPath)
	}
	return "workflow://" + f.NodeName
}

func sarifLevel(s scan.Severity) string {
	switch s {
	case scan.SeverityCritical:
		return "error"
	case scan.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
