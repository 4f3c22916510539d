package pattern

import (
	"fmt"
	"regexp"

	"github.com/goccy/go-yaml"
)

// RulePack is a caller-supplied set of extra secret signatures, loaded
// from YAML. Built-in signatures always run first so the documented
// first-match-wins order is unchanged; pack rules append after them in
// file order.
//
//	rules:
//	  - name: ACME service token
//	    regex: 'acme_[A-Za-z0-9]{24,}'
type RulePack struct {
	Rules []RulePackRule `yaml:"rules"`
}

// RulePackRule is one extra signature definition.
type RulePackRule struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
}

// LoadRulePack parses a YAML rule pack into compiled signatures. A
// rule with an empty name, empty regex, or a regex that does not
// compile fails the whole load; a half-applied pack would make scan
// output depend on which rules happened to parse.
func LoadRulePack(data []byte) ([]SecretSignature, error) {
	var pack RulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse rule pack: %w", err)
	}
	sigs := make([]SecretSignature, 0, len(pack.Rules))
	for i, rule := range pack.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if rule.Regex == "" {
			return nil, fmt.Errorf("rule %q: regex is required", rule.Name)
		}
		re, err := regexp.Compile(rule.Regex)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		sigs = append(sigs, SecretSignature{Label: rule.Name, Pattern: re})
	}
	return sigs, nil
}

// MatchSecretWith checks a value against the built-in table followed
// by extra pack signatures, preserving first-match-wins across the
// combined list.
func MatchSecretWith(extra []SecretSignature, value string) (label, matched string, ok bool) {
	if label, matched, ok = matchSignatures(SecretSignatures, value); ok {
		return label, matched, true
	}
	return matchSignatures(extra, value)
}
