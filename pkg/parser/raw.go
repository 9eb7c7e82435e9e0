package parser

import (
	"encoding/json"
	"fmt"
	"sort"
)

// rawNode is one decoded JSON object from a compiler AST document. All field
// access goes through the typed accessors below so that a missing or
// mistyped field surfaces as ErrMalformedNode instead of a panic, and so
// the two dispatchers never touch map indexing directly.
type rawNode map[string]any

func (r rawNode) has(key string) bool {
	_, ok := r[key]
	return ok
}

// fields returns the node's field names, sorted, for error reports.
func (r rawNode) fields() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// str reads a required string field.
func (r rawNode) str(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedNode, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q holds %T, want string", ErrMalformedNode, key, v)
	}
	return s, nil
}

// strOr reads an optional string field; missing or null yields def.
func (r rawNode) strOr(key, def string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q holds %T, want string", ErrMalformedNode, key, v)
	}
	return s, nil
}

// nullableStr reads a required field whose value is either a string or null.
func (r rawNode) nullableStr(key string) (*string, error) {
	v, ok := r[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedNode, key)
	}
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T, want string or null", ErrMalformedNode, key, v)
	}
	return &s, nil
}

// optStr reads an optional field whose value, when present, is a string or
// null; missing and null both yield nil.
func (r rawNode) optStr(key string) (*string, error) {
	if !r.has(key) {
		return nil, nil
	}
	return r.nullableStr(key)
}

// boolean reads a required bool field.
func (r rawNode) boolean(key string) (bool, error) {
	v, ok := r[key]
	if !ok {
		return false, fmt.Errorf("%w: missing field %q", ErrMalformedNode, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: field %q holds %T, want bool", ErrMalformedNode, key, v)
	}
	return b, nil
}

// boolOr reads an optional bool field; missing or null yields def.
func (r rawNode) boolOr(key string, def bool) (bool, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: field %q holds %T, want bool", ErrMalformedNode, key, v)
	}
	return b, nil
}

// integer reads a required integral number field. encoding/json decodes
// numbers as float64; hand-built nodes may carry native ints, so both are
// accepted as long as the value is integral.
func (r rawNode) integer(key string) (int, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", ErrMalformedNode, key)
	}
	return asInt(key, v)
}

func asInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case float64:
		i := int(n)
		if float64(i) != n {
			return 0, fmt.Errorf("%w: field %q holds non-integral %v", ErrMalformedNode, key, n)
		}
		return i, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: field %q holds non-integral %v", ErrMalformedNode, key, n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%w: field %q holds %T, want integer", ErrMalformedNode, key, v)
	}
}

// object reads a required field holding a JSON object.
func (r rawNode) object(key string) (rawNode, error) {
	v, ok := r[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedNode, key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T, want object", ErrMalformedNode, key, v)
	}
	return rawNode(m), nil
}

// objectOr reads an optional object field; missing or null yields an empty
// node so required reads against it fail with a missing-field cause.
func (r rawNode) objectOr(key string) (rawNode, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return rawNode{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T, want object", ErrMalformedNode, key, v)
	}
	return rawNode(m), nil
}

// child reads a required field holding a nested node object.
func (r rawNode) child(key string) (rawNode, error) {
	return r.object(key)
}

// optChild reads an optional nested node; missing and null both yield nil.
func (r rawNode) optChild(key string) (rawNode, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T, want object", ErrMalformedNode, key, v)
	}
	return rawNode(m), nil
}

// list reads a required array field.
func (r rawNode) list(key string) ([]any, error) {
	v, ok := r[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedNode, key)
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T, want array", ErrMalformedNode, key, v)
	}
	return l, nil
}

// listOr reads an optional array field; missing or null yields nil.
func (r rawNode) listOr(key string) ([]any, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T, want array", ErrMalformedNode, key, v)
	}
	return l, nil
}

// childList reads a required array of node objects.
func (r rawNode) childList(key string) ([]rawNode, error) {
	l, err := r.list(key)
	if err != nil {
		return nil, err
	}
	return asRawNodes(key, l)
}

// childListOr is childList for an optional array; missing or null yields nil.
func (r rawNode) childListOr(key string) ([]rawNode, error) {
	l, err := r.listOr(key)
	if err != nil || l == nil {
		return nil, err
	}
	return asRawNodes(key, l)
}

func asRawNodes(key string, l []any) ([]rawNode, error) {
	out := make([]rawNode, len(l))
	for i, v := range l {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: field %q element %d holds %T, want object", ErrMalformedNode, key, i, v)
		}
		out[i] = rawNode(m)
	}
	return out, nil
}

// strList reads a required array of strings.
func (r rawNode) strList(key string) ([]string, error) {
	l, err := r.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(l))
	for i, v := range l {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q element %d holds %T, want string", ErrMalformedNode, key, i, v)
		}
		out[i] = s
	}
	return out, nil
}

// strListOr reads an optional array of strings; missing or null yields nil.
func (r rawNode) strListOr(key string) ([]string, error) {
	if v, ok := r[key]; !ok || v == nil {
		return nil, nil
	}
	return r.strList(key)
}

// intList reads a required array of integral numbers.
func (r rawNode) intList(key string) ([]int, error) {
	l, err := r.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(l))
	for i, v := range l {
		n, err := asInt(key, v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
