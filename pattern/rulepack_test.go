package pattern

import (
	"strings"
	"testing"
)

const samplePack = `
rules:
  - name: ACME service token
    regex: 'acme_[A-Za-z0-9]{24,}'
  - name: Internal session cookie
    regex: 'sess-[0-9a-f]{32}'
`

func TestLoadRulePack(t *testing.T) {
	sigs, err := LoadRulePack([]byte(samplePack))
	if err != nil {
		t.Fatal(err)
	}
	if len(sigs) != 2 {
		t.Fatalf("expected 2 signatures, got %d", len(sigs))
	}
	if sigs[0].Label != "ACME service token" {
		t.Errorf("label = %q", sigs[0].Label)
	}
	if !sigs[0].Pattern.MatchString("acme_abcdefghij0123456789klmn") {
		t.Error("pack pattern should match")
	}
}

func TestLoadRulePackRejectsBadRules(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "rules:\n  - regex: 'a+'\n"},
		{"missing regex", "rules:\n  - name: broken\n"},
		{"invalid regex", "rules:\n  - name: broken\n    regex: '['\n"},
		{"not yaml", ":\t:::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRulePack([]byte(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMatchSecretWithPreservesBuiltinOrder(t *testing.T) {
	extra, err := LoadRulePack([]byte("rules:\n  - name: greedy\n    regex: '[a-z_]{5,}'\n"))
	if err != nil {
		t.Fatal(err)
	}

	// A built-in hit must win even when a pack rule also matches.
	label, _, ok := MatchSecretWith(extra, "sk_test_FAKE0000000000000000xx")
	if !ok || label != "Stripe API key" {
		t.Fatalf("label = %q (ok=%v), want built-in Stripe API key", label, ok)
	}

	// A value only the pack matches falls through to it.
	label, matched, ok := MatchSecretWith(extra, "plain_lowercase_value")
	if !ok || label != "greedy" {
		t.Fatalf("label = %q (ok=%v), want greedy", label, ok)
	}
	if !strings.Contains("plain_lowercase_value", matched) {
		t.Errorf("matched %q not from input", matched)
	}
}
