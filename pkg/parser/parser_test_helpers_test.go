package parser

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"solast/pkg/ast"
)

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func mustParseCompact(t testing.TB, raw map[string]any) ast.Node {
	t.Helper()
	node, err := ParseCompactNode(raw)
	if err != nil {
		t.Fatalf("ParseCompactNode error: %v", err)
	}
	return node
}

func mustParseLegacy(t testing.TB, raw map[string]any) ast.Node {
	t.Helper()
	node, err := ParseLegacyNode(raw)
	if err != nil {
		t.Fatalf("ParseLegacyNode error: %v", err)
	}
	return node
}

func decodeRaw(t testing.TB, src string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("unmarshal test document: %v", err)
	}
	return raw
}

func assertNodesEqual(t testing.TB, expected, actual any) {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		return
	}
	wantPretty, _ := json.MarshalIndent(expected, "", "  ")
	gotPretty, _ := json.MarshalIndent(actual, "", "  ")
	t.Fatalf("node mismatch\nexpected: %s\n  actual: %s", wantPretty, gotPretty)
}

// wantNodeError checks that err is a NodeError carrying the given sentinel
// in its cause chain and tagged with the given format and kind.
func wantNodeError(t testing.TB, err error, sentinel error, format Format, kind string) *NodeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
	var nodeErr *NodeError
	if !errors.As(err, &nodeErr) {
		t.Fatalf("error %v (%T) is not a NodeError", err, err)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("error %v does not wrap %v", err, sentinel)
	}
	if nodeErr.Format != format {
		t.Fatalf("error format = %q, want %q", nodeErr.Format, format)
	}
	if nodeErr.Kind != kind {
		t.Fatalf("error kind = %q, want %q", nodeErr.Kind, kind)
	}
	return nodeErr
}

// Compact raw-node builders. Every builder uses the same src so expected
// trees are easy to spell out.

const testSrc = "0:0:0"

func cNode(kind string, id int, fields map[string]any) map[string]any {
	node := map[string]any{"nodeType": kind, "id": id, "src": testSrc}
	for k, v := range fields {
		node[k] = v
	}
	return node
}

func cExpr(kind string, id int, typeString string, fields map[string]any) map[string]any {
	node := cNode(kind, id, fields)
	node["typeDescriptions"] = map[string]any{"typeString": typeString}
	return node
}

func cIdent(id int, name string) map[string]any {
	return cExpr("Identifier", id, "uint256", map[string]any{"name": name})
}

func cNumber(id int, value string) map[string]any {
	return cExpr("Literal", id, "int_const "+value, map[string]any{
		"kind": "number", "value": value, "hexValue": "", "subdenomination": nil,
	})
}

func cElementary(id int, name string) map[string]any {
	return cNode("ElementaryTypeName", id, map[string]any{"name": name})
}

func cUserDefined(id int, name string) map[string]any {
	return cNode("UserDefinedTypeName", id, map[string]any{"name": name})
}

func cParameters(id int, params ...any) map[string]any {
	if params == nil {
		params = []any{}
	}
	return cNode("ParameterList", id, map[string]any{"parameters": params})
}

func cBlock(id int, statements ...any) map[string]any {
	if statements == nil {
		statements = []any{}
	}
	return cNode("Block", id, map[string]any{"statements": statements})
}

func cVariable(id int, name, typ string) map[string]any {
	node := cNode("VariableDeclaration", id, map[string]any{
		"name": name, "typeName": cElementary(id+100, typ), "value": nil, "constant": false, "visibility": "internal",
	})
	node["typeDescriptions"] = map[string]any{"typeString": typ}
	return node
}

func cCall(id int, calleeName string) map[string]any {
	return cExpr("FunctionCall", id, "tuple()", map[string]any{
		"kind": "functionCall", "expression": cIdent(id+1, calleeName), "names": []any{}, "arguments": []any{},
	})
}

// Legacy raw-node builders.

func lNode(name string, id int, attrs map[string]any, children ...any) map[string]any {
	node := map[string]any{"name": name, "id": id, "src": testSrc}
	if attrs != nil {
		node["attributes"] = attrs
	}
	if children != nil {
		node["children"] = children
	}
	return node
}

func lIdent(id int, name string) map[string]any {
	return lNode("Identifier", id, map[string]any{"value": name, "type": "uint256"})
}

func lNumber(id int, value string) map[string]any {
	return lNode("Literal", id, map[string]any{
		"token": "number", "value": value, "hexvalue": "", "subdenomination": nil, "type": "int_const " + value,
	})
}

func lElementary(id int, name string) map[string]any {
	return lNode("ElementaryTypeName", id, map[string]any{"name": name})
}

func lParameters(id int, params ...any) map[string]any {
	node := lNode("ParameterList", id, nil)
	if params == nil {
		params = []any{}
	}
	node["children"] = params
	return node
}

func lBlock(id int, statements ...any) map[string]any {
	node := lNode("Block", id, nil)
	if statements == nil {
		statements = []any{}
	}
	node["children"] = statements
	return node
}

func lVariable(id int, name, typ string) map[string]any {
	return lNode("VariableDeclaration", id,
		map[string]any{"name": name, "type": typ, "constant": false},
		lElementary(id+100, typ))
}

func lExprStatement(id int, expr any) map[string]any {
	return lNode("ExpressionStatement", id, nil, expr)
}

func lAssignStatement(id int, target, value string) map[string]any {
	return lExprStatement(id, lNode("Assignment", id+1,
		map[string]any{"operator": "=", "type": "uint256"},
		lIdent(id+2, target), lNumber(id+3, value)))
}
