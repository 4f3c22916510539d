// Package pattern holds the compiled signature tables the scan checks
// match against: provider secret shapes, PII, dangerous code
// constructs, internal network addresses and sensitive field names.
//
// Signature order matters. Secret detection is first-match-wins per
// value, so the built-in tables are fixed ordered slices; results are
// identical across runs regardless of how a workflow was built.
package pattern

import (
	"regexp"
	"strings"
)

// SecretSignature pairs a compiled secret shape with the label used in
// finding titles.
type SecretSignature struct {
	Label   string
	Pattern *regexp.Regexp
}

// SecretSignatures is the built-in provider table, checked in order.
// More specific prefixes come before generic shapes so the first match
// names the right provider.
var SecretSignatures = []SecretSignature{
	{Label: "Stripe API key", Pattern: regexp.MustCompile(`\b(?:sk|pk|rk)_(?:test|live)_[0-9a-zA-Z]{16,}\b`)},
	{Label: "AWS access key", Pattern: regexp.MustCompile(`\b(?:AKIA|ABIA|ACCA|ASIA)[0-9A-Z]{16}\b`)},
	{Label: "GitHub token", Pattern: regexp.MustCompile(`\b(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9_]{36,255}\b`)},
	{Label: "Slack token", Pattern: regexp.MustCompile(`\bxox[baprs]-[0-9]{10,13}-[0-9A-Za-z-]{10,}\b`)},
	{Label: "Google API key", Pattern: regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{35}\b`)},
	{Label: "OpenAI API key", Pattern: regexp.MustCompile(`\bsk-[A-Za-z0-9\-_]{20,}\b`)},
	{Label: "JWT", Pattern: regexp.MustCompile(`\beyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\b`)},
	{Label: "private key", Pattern: regexp.MustCompile(`-----BEGIN\s+(?:RSA|DSA|EC|OPENSSH|PGP)?\s*PRIVATE KEY-----`)},
	{Label: "database connection string", Pattern: regexp.MustCompile(`(?i)\b(?:mongodb(?:\+srv)?|postgres(?:ql)?|mysql|redis)://[^:/\s]+:[^@\s]+@`)},
}

// MatchSecret checks a literal value against the signature table and
// returns the label of the first signature that matches.
func MatchSecret(value string) (label, matched string, ok bool) {
	return matchSignatures(SecretSignatures, value)
}

func matchSignatures(sigs []SecretSignature, value string) (label, matched string, ok bool) {
	for _, sig := range sigs {
		if m := sig.Pattern.FindString(value); m != "" {
			return sig.Label, m, true
		}
	}
	return "", "", false
}

// credentialNameHints are the final-path-segment names that mark a
// field as credential-bearing, compared case-insensitively with
// separators removed.
var credentialNameHints = []string{
	"apikey", "api_key", "secret", "token", "auth", "authorization",
	"bearer", "clientsecret", "client_secret", "password", "passwd",
	"pwd", "accesskey", "access_key", "privatekey", "private_key",
	"credential", "credentials",
}

var genericTokenShape = regexp.MustCompile(`^[A-Za-z0-9+/=_\-.]{16,}$`)

// IsCredentialName reports whether a parameter or header name looks
// credential-bearing.
func IsCredentialName(name string) bool {
	n := strings.ToLower(name)
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	for _, hint := range credentialNameHints {
		h := strings.ReplaceAll(hint, "_", "")
		if strings.Contains(n, h) {
			return true
		}
	}
	return false
}

// GenericToken flags a credential-named field holding a literal value
// that looks like an opaque token: at least 16 characters drawn from
// the base64/token class. Runs independently of the provider table so
// unbranded tokens are still caught.
func GenericToken(fieldName, value string) bool {
	if !IsCredentialName(fieldName) {
		return false
	}
	return genericTokenShape.MatchString(value)
}

// SensitiveFieldNames is the case-insensitive set of header and field
// names treated as secret-bearing regardless of the value's shape.
var SensitiveFieldNames = map[string]struct{}{
	"authorization":       {},
	"x-api-key":           {},
	"api-key":             {},
	"x-auth-token":        {},
	"proxy-authorization": {},
	"cookie":              {},
	"set-cookie":          {},
}

// IsSensitiveFieldName reports whether the name is in the sensitive
// header/field set.
func IsSensitiveFieldName(name string) bool {
	_, ok := SensitiveFieldNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
