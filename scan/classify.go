package scan

import (
	"strings"

	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// capabilities are the closed set of tags a check may ask about.
// Classification runs once per node at scan start; checks consume tags
// and never re-derive type semantics inline.
type capabilities struct {
	trigger         bool
	webhookTrigger  bool
	externalService bool
	aiNode          bool
	agent           bool
	codeExecution   bool
	httpRequest     bool
}

// classify resolves every node's capability tags, preferring the
// catalog and falling back to the name heuristic for types the catalog
// does not know. The fallback is deterministic and documented, not a
// silent failure mode.
func classify(wf *workflow.Workflow, catalog workflow.Catalog) map[string]capabilities {
	tags := make(map[string]capabilities, len(wf.AllNodes()))
	for _, node := range wf.AllNodes() {
		var c capabilities
		if catalog != nil {
			if info, ok := catalog.TypeInfo(node.Type); ok {
				c.trigger = info.Trigger
				c.externalService = info.ExternalService
				c.aiNode = info.AINode
			} else {
				c = heuristicCapabilities(node.Type)
			}
		} else {
			c = heuristicCapabilities(node.Type)
		}
		// Name-derived tags not carried by catalogs.
		lower := strings.ToLower(node.Type)
		if strings.Contains(lower, "webhook") {
			c.trigger = true
			c.webhookTrigger = true
		}
		c.httpRequest = strings.Contains(lower, "httprequest") || strings.HasSuffix(lower, ".http")
		c.codeExecution = strings.Contains(lower, ".code") || strings.Contains(lower, "function") || strings.Contains(lower, "executecommand")
		c.agent = strings.Contains(lower, "agent")
		if c.agent {
			c.aiNode = true
		}
		if c.httpRequest {
			// The generic HTTP node is the canonical external caller.
			c.externalService = true
		}
		tags[node.Name] = c
	}
	return tags
}

// heuristicCapabilities classifies a namespaced type name when the
// catalog has no entry. The rules mirror how platform type names are
// spelled: triggers end in "trigger" or are webhook/cron/schedule
// types, AI nodes live under the langchain namespace or carry
// agent/llm/chain/openai names, and anything naming a third-party
// product is assumed to need credentials.
func heuristicCapabilities(typeName string) capabilities {
	lower := strings.ToLower(typeName)
	short := lower
	if i := strings.LastIndex(lower, "."); i >= 0 {
		short = lower[i+1:]
	}

	var c capabilities
	c.trigger = strings.HasSuffix(short, "trigger") ||
		short == "webhook" || short == "cron" || short == "schedule" ||
		short == "manualtrigger" || short == "start"

	c.aiNode = strings.Contains(lower, "langchain") ||
		strings.Contains(short, "agent") || strings.Contains(short, "openai") ||
		strings.Contains(short, "anthropic") || strings.Contains(short, "gemini") ||
		strings.Contains(short, "llm") || strings.HasPrefix(short, "chain") ||
		strings.HasPrefix(short, "lm")

	switch {
	case strings.Contains(short, "httprequest"):
		c.externalService = true
	case c.trigger || c.aiNode:
		// Entry points and model wiring are not outbound services.
	case short == "set" || short == "if" || short == "switch" || short == "merge" ||
		short == "code" || short == "function" || short == "functionitem" ||
		short == "noop" || short == "wait" || short == "filter" ||
		short == "splitinbatches" || short == "itemlists" || short == "datetime":
		// Pure data-shaping nodes stay internal.
	default:
		// Remaining named types (slack, postgres, gmail, ...) declare
		// credentials on the platform; treat them as external calls.
		c.externalService = strings.Contains(lower, "nodes-base.") || strings.Contains(lower, "n8n-nodes-")
	}
	return c
}
