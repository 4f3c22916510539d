package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// ParamKind tags the variants of a parameter tree value.
type ParamKind int

const (
	KindNull ParamKind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// ParamValue is one value in a node's parameter tree. Parameter trees
// are plain nested data decoded from JSON; they cannot be cyclic.
type ParamValue struct {
	Kind   ParamKind
	Str    string
	Num    float64
	Bool   bool
	Items  []ParamValue
	Fields []ParamField
}

// ParamField is a single object property. Fields are sorted by key so
// that walks over the same tree always visit values in the same order.
type ParamField struct {
	Key   string
	Value ParamValue
}

// NormalizeParams converts a raw decoded parameter map into the tagged
// variant tree.
func NormalizeParams(params map[string]any) ParamValue {
	return normalizeValue(params)
}

func normalizeValue(v any) ParamValue {
	switch val := v.(type) {
	case nil:
		return ParamValue{Kind: KindNull}
	case string:
		return ParamValue{Kind: KindString, Str: val}
	case bool:
		return ParamValue{Kind: KindBool, Bool: val}
	case float64:
		return ParamValue{Kind: KindNumber, Num: val}
	case int:
		return ParamValue{Kind: KindNumber, Num: float64(val)}
	case []any:
		items := make([]ParamValue, 0, len(val))
		for _, item := range val {
			items = append(items, normalizeValue(item))
		}
		return ParamValue{Kind: KindArray, Items: items}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]ParamField, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, ParamField{Key: k, Value: normalizeValue(val[k])})
		}
		return ParamValue{Kind: KindObject, Fields: fields}
	default:
		// Anything the JSON decoder cannot produce is treated as an
		// opaque string so string checks still see it.
		return ParamValue{Kind: KindString, Str: fmt.Sprintf("%v", val)}
	}
}

// maxWalkDepth caps recursion against malformed input. Real parameter
// trees are a handful of levels deep.
const maxWalkDepth = 64

// ErrDepthExceeded is returned when a walk hits maxWalkDepth.
var ErrDepthExceeded = fmt.Errorf("parameter tree deeper than %d levels", maxWalkDepth)

// Visitor receives every string leaf of a parameter tree. The path is
// dotted for object keys and bracketed for array indexes, for example
// "headers.parameters[0].value". expression reports whether the value
// is a dynamic expression rather than a literal.
type Visitor func(value, path string, expression bool)

// Walk visits every string leaf of a node's parameters. Numbers,
// booleans and nulls are skipped; string-oriented checks never match
// them.
func Walk(params map[string]any, visit Visitor) error {
	return walkValue(NormalizeParams(params), "", 0, visit)
}

func walkValue(v ParamValue, path string, depth int, visit Visitor) error {
	if depth > maxWalkDepth {
		return ErrDepthExceeded
	}
	switch v.Kind {
	case KindString:
		visit(v.Str, path, IsExpression(v.Str))
	case KindArray:
		for i, item := range v.Items {
			if err := walkValue(item, fmt.Sprintf("%s[%d]", path, i), depth+1, visit); err != nil {
				return err
			}
		}
	case KindObject:
		for _, f := range v.Fields {
			child := f.Key
			if path != "" {
				child = path + "." + f.Key
			}
			if err := walkValue(f.Value, child, depth+1, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsExpression reports whether a parameter value is written in the
// platform's expression syntax: a leading "=" marker with a templated
// "{{ ... }}" body, evaluated at run time instead of used literally.
// Literal checks must skip expressions and expression checks must skip
// literals.
func IsExpression(value string) bool {
	return strings.HasPrefix(value, "=") && strings.Contains(value, "{{")
}

// LastPathSegment returns the final key of a walk path, with any array
// index stripped: "options.headers[2].apiKey" yields "apiKey" and
// "values[3]" yields "values".
func LastPathSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.Index(path, "["); i >= 0 {
		path = path[:i]
	}
	return path
}
