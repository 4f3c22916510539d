package pattern

import "regexp"

// PIISignature pairs a compiled PII shape with its label.
type PIISignature struct {
	Label   string
	Pattern *regexp.Regexp
}

// PIISignatures is the built-in PII table, checked in order. Credit
// cards are restricted to the major BIN prefixes at Luhn-shaped
// lengths so arbitrary digit runs do not match.
var PIISignatures = []PIISignature{
	{Label: "email address", Pattern: regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)},
	{Label: "social security number", Pattern: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{Label: "credit card number", Pattern: regexp.MustCompile(`\b(?:4\d{3}|5[1-5]\d{2}|3[47]\d{2}|6011)[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{1,4}\b`)},
	{Label: "phone number", Pattern: regexp.MustCompile(`\b(?:\+?1[\s\-.]?)?\(?\d{3}\)?[\s\-.]\d{3}[\s\-.]\d{4}\b`)},
}

// MatchPII checks a literal value against the PII table and returns
// the label of the first signature that matches.
func MatchPII(value string) (label, matched string, ok bool) {
	for _, sig := range PIISignatures {
		if m := sig.Pattern.FindString(value); m != "" {
			return sig.Label, m, true
		}
	}
	return "", "", false
}
