package workflow

// TypeInfo is what a node-type catalog knows about one namespaced
// type name.
type TypeInfo struct {
	// Trigger marks workflow entry points that receive external input.
	Trigger bool
	// ExternalService marks types that call out to third-party
	// systems: anything declaring required credentials, plus the
	// generic HTTP request type.
	ExternalService bool
	// AINode marks types belonging to the LLM/agent subsystem.
	AINode bool
}

// Catalog resolves node types to their classification. Lookups may
// fail for types the catalog has never seen; callers fall back to a
// deterministic name heuristic in that case.
type Catalog interface {
	TypeInfo(typeName string) (TypeInfo, bool)
}

// StaticCatalog is a map-backed Catalog, useful for callers that load
// type metadata ahead of time and for tests.
type StaticCatalog map[string]TypeInfo

func (c StaticCatalog) TypeInfo(typeName string) (TypeInfo, bool) {
	info, ok := c[typeName]
	return info, ok
}
