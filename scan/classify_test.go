package scan

import (
	"testing"

	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

func classifyTypes(t *testing.T, catalog workflow.Catalog, types ...string) map[string]capabilities {
	t.Helper()
	wf := &workflow.Workflow{}
	for _, typeName := range types {
		wf.Nodes = append(wf.Nodes, workflow.Node{Name: typeName, Type: typeName})
	}
	return classify(wf, catalog)
}

func TestHeuristicClassification(t *testing.T) {
	tags := classifyTypes(t, nil,
		"n8n-nodes-base.webhook",
		"n8n-nodes-base.scheduleTrigger",
		"n8n-nodes-base.httpRequest",
		"n8n-nodes-base.slack",
		"n8n-nodes-base.set",
		"n8n-nodes-base.code",
		"@n8n/n8n-nodes-langchain.agent",
		"@n8n/n8n-nodes-langchain.lmChatOpenAi",
	)

	tests := []struct {
		typeName string
		want     capabilities
	}{
		{"n8n-nodes-base.webhook", capabilities{trigger: true, webhookTrigger: true}},
		{"n8n-nodes-base.scheduleTrigger", capabilities{trigger: true}},
		{"n8n-nodes-base.httpRequest", capabilities{externalService: true, httpRequest: true}},
		{"n8n-nodes-base.slack", capabilities{externalService: true}},
		{"n8n-nodes-base.set", capabilities{}},
		{"n8n-nodes-base.code", capabilities{codeExecution: true}},
		{"@n8n/n8n-nodes-langchain.agent", capabilities{aiNode: true, agent: true}},
		{"@n8n/n8n-nodes-langchain.lmChatOpenAi", capabilities{aiNode: true}},
	}
	for _, tt := range tests {
		if got := tags[tt.typeName]; got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.typeName, got, tt.want)
		}
	}
}

func TestCatalogTakesPrecedence(t *testing.T) {
	catalog := workflow.StaticCatalog{
		"custom.mystery": {ExternalService: true},
	}
	tags := classifyTypes(t, catalog, "custom.mystery")
	if !tags["custom.mystery"].externalService {
		t.Error("catalog classification ignored")
	}

	// Unknown to the catalog: falls back to the name heuristic.
	tags = classifyTypes(t, catalog, "vendor.thingTrigger")
	if !tags["vendor.thingTrigger"].trigger {
		t.Error("heuristic fallback did not classify trigger")
	}
}
