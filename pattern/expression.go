package pattern

import "regexp"

// Expression-risk patterns apply only to dynamic-expression values.
// Literal values are never matched against these; they go through the
// secret and PII tables instead.
var (
	// ExpressionEnvAccess matches expressions reading process
	// environment variables at run time.
	ExpressionEnvAccess = regexp.MustCompile(`\$env(?:\.|\[)|process\.env`)

	// ExpressionCredentialRef matches expressions that reference
	// credential-like fields by name.
	ExpressionCredentialRef = regexp.MustCompile(`(?i)(?:api[_\-]?key|secret|token|password|credential)`)

	// ExpressionUpstreamInput matches expressions that pull upstream
	// node output or request input into the current parameter; inside
	// an AI prompt this is attacker-reachable text.
	ExpressionUpstreamInput = regexp.MustCompile(`\$json|\$input|\$node\[|\$\(['"]|\$items\(`)
)
