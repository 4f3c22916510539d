package workflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the minimum shape a workflow document must
// have before decoding. It is deliberately loose: unknown node types,
// extra fields and dangling connection targets are all valid input.
const documentSchema = `{
	"type": "object",
	"required": ["nodes"],
	"properties": {
		"name": {"type": "string"},
		"nodes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "type"],
				"properties": {
					"name": {"type": "string"},
					"type": {"type": "string"},
					"parameters": {"type": "object"}
				}
			}
		},
		"connections": {"type": "object"}
	}
}`

var compiledSchema = gojsonschema.NewStringLoader(documentSchema)

type document struct {
	Name        string                                `json:"name"`
	Nodes       []Node                                `json:"nodes"`
	Connections map[string]map[string][][]Connection `json:"connections"`
}

// ParseJSON validates and decodes a workflow document.
//
// Validation covers structure only. Content problems the scan engine
// is required to tolerate (unknown types, edges to missing nodes) are
// not errors here.
func ParseJSON(data []byte) (*Workflow, error) {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("workflow document is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("workflow document failed validation: %s", strings.Join(msgs, "; "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode workflow document: %w", err)
	}

	wf := &Workflow{
		Name:        doc.Name,
		Nodes:       doc.Nodes,
		Connections: doc.Connections,
	}
	if wf.Connections == nil {
		wf.Connections = map[string]map[string][][]Connection{}
	}
	return wf, nil
}
