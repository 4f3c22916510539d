package workflow

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type visitRecord struct {
	Value      string
	Path       string
	Expression bool
}

func collect(t *testing.T, params map[string]any) []visitRecord {
	t.Helper()
	var got []visitRecord
	if err := Walk(params, func(value, path string, expression bool) {
		got = append(got, visitRecord{value, path, expression})
	}); err != nil {
		t.Fatal(err)
	}
	return got
}

func TestWalkPaths(t *testing.T) {
	params := map[string]any{
		"url": "https://example.com",
		"options": map[string]any{
			"headers": []any{
				map[string]any{"name": "X-Api-Key", "value": "abc"},
			},
			"timeout": 30.0,
			"retry":   true,
			"proxy":   nil,
		},
	}

	got := collect(t, params)
	want := []visitRecord{
		{"X-Api-Key", "options.headers[0].name", false},
		{"abc", "options.headers[0].value", false},
		{"https://example.com", "url", false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDeterministic(t *testing.T) {
	params := map[string]any{
		"zeta": "1", "alpha": "2", "mid": map[string]any{"b": "3", "a": "4"},
	}
	first := collect(t, params)
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, collect(t, params)); diff != "" {
			t.Fatalf("walk order changed between runs:\n%s", diff)
		}
	}
}

func TestWalkDepthCap(t *testing.T) {
	leaf := map[string]any{"secret": "value"}
	current := leaf
	for i := 0; i < maxWalkDepth+5; i++ {
		current = map[string]any{"nested": current}
	}
	err := Walk(current, func(string, string, bool) {})
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}
}

func TestIsExpression(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"={{ $json.token }}", true},
		{"=prefix {{ $env.KEY }} suffix", true},
		{"plain literal", false},
		{"=not templated", false},
		{"{{ looks templated but no marker }}", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsExpression(tt.value); got != tt.want {
			t.Errorf("IsExpression(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLastPathSegment(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"options.headers[2].apiKey", "apiKey"},
		{"values[3]", "values"},
		{"token", "token"},
		{"a.b.c", "c"},
	}
	for _, tt := range tests {
		if got := LastPathSegment(tt.path); got != tt.want {
			t.Errorf("LastPathSegment(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNormalizeSortsObjectKeys(t *testing.T) {
	v := NormalizeParams(map[string]any{"c": "3", "a": "1", "b": "2"})
	if v.Kind != KindObject || len(v.Fields) != 3 {
		t.Fatalf("unexpected normalization: %+v", v)
	}
	for i, want := range []string{"a", "b", "c"} {
		if v.Fields[i].Key != want {
			t.Errorf("field %d key = %q, want %q", i, v.Fields[i].Key, want)
		}
	}
}
