package scan

import (
	"fmt"
	"strings"

	"github.com/prasanaa-pigment/n8n-sub000/pattern"
	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// promptParamNames designate the parameters of an AI node whose
// content becomes model instructions.
var promptParamNames = map[string]bool{
	"systemmessage": true,
	"prompt":        true,
	"text":          true,
	"messages":      true,
	"systemprompt":  true,
}

func isPromptParam(path string) bool {
	return promptParamNames[strings.ToLower(workflow.LastPathSegment(path))]
}

// dangerousToolTypes are tool node types that hand an agent open-ended
// capabilities: arbitrary HTTP and arbitrary code execution.
func isDangerousToolType(typeName string) bool {
	lower := strings.ToLower(typeName)
	for _, marker := range []string{"httprequest", "toolhttp", "code", "toolcode", "executecommand"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// checkPromptInjection flags dynamic expressions in prompt parameters
// that interpolate upstream input. Text a caller controls becoming
// model instructions is the canonical prompt-injection setup.
func checkPromptInjection(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !sc.tags[node.Name].aiNode {
			continue
		}
		err := workflow.Walk(node.Parameters, func(value, path string, expression bool) {
			if !expression || !isPromptParam(path) {
				return
			}
			if pattern.ExpressionUpstreamInput.MatchString(value) {
				findings = append(findings, Finding{
					Severity:      SeverityWarning,
					Category:      CategoryExpressionRisk,
					Title:         "Prompt built from upstream input",
					Description:   fmt.Sprintf("Parameter %q on AI node %q interpolates upstream data into the prompt; callers can inject instructions.", path, node.Name),
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

// checkSecretInPrompt matches literal prompt values against the secret
// signature tables. Secrets pasted into prompts end up in provider
// logs and possibly model output.
func checkSecretInPrompt(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !sc.tags[node.Name].aiNode {
			continue
		}
		err := walkLiterals(node, func(value, path string) {
			if !isPromptParam(path) {
				return
			}
			if label, matched, ok := pattern.MatchSecretWith(sc.extraSecrets, value); ok {
				findings = append(findings, Finding{
					Severity:      SeverityCritical,
					Category:      CategoryHardcodedSecret,
					Title:         fmt.Sprintf("%s embedded in prompt", label),
					Description:   fmt.Sprintf("The prompt parameter %q on node %q contains a %s; it will be sent to the model provider on every run.", path, node.Name, label),
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

// checkTriggerToAI flags a trigger wired straight into an AI node with
// no intermediate validation step.
func checkTriggerToAI(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !sc.tags[node.Name].trigger {
			continue
		}
		for _, edge := range sc.wf.ConnectionsOfType(node.Name, workflow.ConnMain) {
			if sc.wf.NodeByName(edge.To) == nil {
				continue
			}
			if sc.tags[edge.To].aiNode {
				findings = append(findings, Finding{
					Severity:    SeverityWarning,
					Category:    CategoryDataExposure,
					Title:       "Trigger feeds AI node directly",
					Description: fmt.Sprintf("Trigger %q connects straight into AI node %q; raw external input reaches the model without any validation step.", node.Name, edge.To),
					NodeName:    node.Name,
				})
			}
		}
	}
	return findings, nil
}

// checkOverPrivilegedTools flags dangerous tool types wired into an
// agent over the AI-tool connection. An agent choosing its own HTTP
// calls or code execution has whatever reach the tool has.
func checkOverPrivilegedTools(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !isDangerousToolType(node.Type) {
			continue
		}
		for _, edge := range sc.wf.ConnectionsOfType(node.Name, workflow.ConnAITool) {
			if sc.wf.NodeByName(edge.To) == nil || !sc.tags[edge.To].agent {
				continue
			}
			findings = append(findings, Finding{
				Severity:    SeverityInfo,
				Category:    CategoryDataExposure,
				Title:       "Agent has open-ended tool",
				Description: fmt.Sprintf("Tool node %q (%s) is attached to agent %q; the agent can invoke it with arguments of its own choosing.", node.Name, node.Type, edge.To),
				NodeName:    node.Name,
			})
		}
	}
	return findings, nil
}

// checkAIToExternal flags AI output flowing straight into an external
// service, and checkAIChaining flags AI nodes feeding other AI nodes.
func checkAIToExternal(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !sc.tags[node.Name].aiNode {
			continue
		}
		for _, edge := range sc.wf.ConnectionsOfType(node.Name, workflow.ConnMain) {
			if sc.wf.NodeByName(edge.To) == nil {
				continue
			}
			if sc.tags[edge.To].externalService && !sc.tags[edge.To].aiNode {
				findings = append(findings, Finding{
					Severity:    SeverityInfo,
					Category:    CategoryDataExposure,
					Title:       "AI output sent to external service",
					Description: fmt.Sprintf("AI node %q sends its output directly to external service %q; model output is not a trusted value.", node.Name, edge.To),
					NodeName:    node.Name,
				})
			}
		}
	}
	return findings, nil
}

func checkAIChaining(sc *scanContext) ([]Finding, error) {
	var findings []Finding
	for _, node := range sc.wf.AllNodes() {
		if !sc.tags[node.Name].aiNode {
			continue
		}
		for _, edge := range sc.wf.ConnectionsOfType(node.Name, workflow.ConnMain) {
			if sc.wf.NodeByName(edge.To) == nil {
				continue
			}
			if sc.tags[edge.To].aiNode {
				findings = append(findings, Finding{
					Severity:    SeverityWarning,
					Category:    CategoryDataExposure,
					Title:       "AI node chained into AI node",
					Description: fmt.Sprintf("Output of AI node %q feeds AI node %q; injected instructions survive the hop and compound.", node.Name, edge.To),
					NodeName:    node.Name,
				})
			}
		}
	}
	return findings, nil
}
