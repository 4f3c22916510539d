package pattern

import "regexp"

// CodeSignature pairs a dangerous code construct with its label.
// These are substring-level signatures applied to the script body of
// code-execution nodes; nothing is parsed, so invalid code simply
// matches nothing.
type CodeSignature struct {
	Label   string
	Pattern *regexp.Regexp
}

// CodeSignatures is checked in order against code node bodies.
var CodeSignatures = []CodeSignature{
	{Label: "dynamic code evaluation", Pattern: regexp.MustCompile(`\beval\s*\(`)},
	{Label: "dynamic function construction", Pattern: regexp.MustCompile(`\bnew\s+Function\s*\(`)},
	{Label: "child process execution", Pattern: regexp.MustCompile(`(?:\brequire\s*\(\s*['"]child_process['"]\s*\)|\bchild_process\b|\bexecSync\s*\(|\bspawnSync\s*\()`)},
	{Label: "process spawning", Pattern: regexp.MustCompile(`\b(?:exec|spawn|fork)\s*\(\s*['"]`)},
	{Label: "raw filesystem access", Pattern: regexp.MustCompile(`(?:\brequire\s*\(\s*['"]fs['"]\s*\)|\bfs\.(?:readFileSync|writeFileSync|unlinkSync|rmSync)\b)`)},
	{Label: "python subprocess execution", Pattern: regexp.MustCompile(`\b(?:subprocess|os\.system|os\.popen)\b`)},
}

// MatchCode returns every code signature the body matches, in table
// order. Unlike secret matching this is not first-match-wins: each
// dangerous construct in a script is its own finding.
func MatchCode(body string) []CodeSignature {
	var hits []CodeSignature
	for _, sig := range CodeSignatures {
		if sig.Pattern.MatchString(body) {
			hits = append(hits, sig)
		}
	}
	return hits
}
