package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestUnsupportedNodeKind(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		_, err := ParseCompactNode(cNode("NotARealKind", 1, nil))
		nodeErr := wantNodeError(t, err, ErrUnsupportedNode, FormatCompact, "NotARealKind")
		if want := []string{"id", "nodeType", "src"}; !reflect.DeepEqual(nodeErr.Fields, want) {
			t.Fatalf("Fields = %v, want %v", nodeErr.Fields, want)
		}
	})
	t.Run("Legacy", func(t *testing.T) {
		_, err := ParseLegacyNode(lNode("NotARealKind", 1, nil))
		wantNodeError(t, err, ErrUnsupportedNode, FormatLegacy, "NotARealKind")
	})
}

// The rendered message is part of the package contract: it names the
// format, the kind and the raw field set so an unhandled construct can be
// reproduced from the log line alone.
func TestNodeErrorRendering(t *testing.T) {
	_, err := ParseCompactNode(cNode("NotARealKind", 1, nil))
	if err == nil {
		t.Fatalf("expected an error")
	}
	want := `parser: could not parse compact node of kind "NotARealKind" (fields: id nodeType src): unsupported node kind "NotARealKind"`
	if err.Error() != want {
		t.Fatalf("error rendering\n got: %s\nwant: %s", err, want)
	}
}

func TestNodeErrorCarriesLegacyChildTags(t *testing.T) {
	raw := lNode("IfStatement", 1, nil, lIdent(2, "ok"))
	_, err := ParseLegacyNode(raw)
	nodeErr := wantNodeError(t, err, ErrAmbiguousChildList, FormatLegacy, "IfStatement")
	if want := []string{"Identifier"}; !reflect.DeepEqual(nodeErr.Children, want) {
		t.Fatalf("Children = %v, want %v", nodeErr.Children, want)
	}
	if !strings.Contains(err.Error(), "(children: Identifier)") {
		t.Fatalf("rendering lacks child tags: %s", err)
	}
}

func TestMissingKindTag(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		_, err := ParseCompactNode(map[string]any{"id": 1, "src": testSrc})
		nodeErr := wantNodeError(t, err, ErrMalformedNode, FormatCompact, "")
		if !strings.Contains(nodeErr.Error(), `missing field "nodeType"`) {
			t.Fatalf("error does not name the missing tag: %s", nodeErr)
		}
	})
	t.Run("Legacy", func(t *testing.T) {
		_, err := ParseLegacyNode(map[string]any{"id": 1, "src": testSrc})
		nodeErr := wantNodeError(t, err, ErrMalformedNode, FormatLegacy, "")
		if !strings.Contains(nodeErr.Error(), `missing field "name"`) {
			t.Fatalf("error does not name the missing tag: %s", nodeErr)
		}
	})
}

func TestMalformedFieldTypes(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{
			name: "MissingRequiredField",
			raw:  cExpr("Identifier", 1, "uint256", nil),
		},
		{
			name: "MistypedId",
			raw:  map[string]any{"nodeType": "Identifier", "id": "five", "src": testSrc, "name": "x", "typeDescriptions": map[string]any{"typeString": "uint256"}},
		},
		{
			name: "NonIntegralId",
			raw:  map[string]any{"nodeType": "Identifier", "id": 1.5, "src": testSrc, "name": "x", "typeDescriptions": map[string]any{"typeString": "uint256"}},
		},
		{
			name: "MistypedTypeDescriptions",
			raw:  cNode("Identifier", 1, map[string]any{"name": "x", "typeDescriptions": "uint256"}),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCompactNode(tc.raw)
			wantNodeError(t, err, ErrMalformedNode, FormatCompact, "Identifier")
		})
	}
}

// A failure is wrapped into a NodeError at the boundary of the node being
// extracted when it happened; enclosing nodes pass it through, so the
// error names the broken node, not the document root.
func TestNodeErrorWrappedOnce(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		inner := cExpr("Identifier", 3, "uint256", nil) // no name field
		raw := cBlock(1, cNode("ExpressionStatement", 2, map[string]any{"expression": inner}))
		_, err := ParseCompactNode(raw)
		nodeErr := wantNodeError(t, err, ErrMalformedNode, FormatCompact, "Identifier")
		var nested *NodeError
		if errors.As(nodeErr.Err, &nested) {
			t.Fatalf("NodeError wraps another NodeError: %v", nodeErr)
		}
	})
	t.Run("Legacy", func(t *testing.T) {
		inner := lNode("Identifier", 3, map[string]any{"type": "uint256"}) // no value attribute
		raw := lBlock(1, lExprStatement(2, inner))
		_, err := ParseLegacyNode(raw)
		nodeErr := wantNodeError(t, err, ErrMalformedNode, FormatLegacy, "Identifier")
		var nested *NodeError
		if errors.As(nodeErr.Err, &nested) {
			t.Fatalf("NodeError wraps another NodeError: %v", nodeErr)
		}
	})
}

func TestDepthGuard(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		node := cIdent(0, "x")
		for i := 1; i <= DefaultMaxDepth+200; i++ {
			node = cExpr("UnaryOperation", i, "uint256", map[string]any{
				"operator": "!", "prefix": true, "subExpression": node,
			})
		}
		_, err := ParseCompactNode(node)
		wantNodeError(t, err, ErrMaxDepth, FormatCompact, "UnaryOperation")
	})
	t.Run("Legacy", func(t *testing.T) {
		node := lIdent(0, "x")
		for i := 1; i <= DefaultMaxDepth+200; i++ {
			node = lNode("UnaryOperation", i, map[string]any{
				"operator": "!", "prefix": true, "type": "uint256",
			}, node)
		}
		_, err := ParseLegacyNode(node)
		wantNodeError(t, err, ErrMaxDepth, FormatLegacy, "UnaryOperation")
	})
}

// Nesting below the guard parses fine; the limit exists for hostile input,
// not real contracts.
func TestDeepButLegalNesting(t *testing.T) {
	node := cIdent(0, "x")
	for i := 1; i <= 500; i++ {
		node = cExpr("UnaryOperation", i, "uint256", map[string]any{
			"operator": "!", "prefix": true, "subExpression": node,
		})
	}
	mustParseCompact(t, node)
}

func TestLegacyArityErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		kind string
	}{
		{"AssignmentOneChild", lNode("Assignment", 1, map[string]any{"operator": "=", "type": "uint256"}, lIdent(2, "a")), "Assignment"},
		{"BinaryOperationNoChildren", lNode("BinaryOperation", 1, map[string]any{"operator": "+", "type": "uint256"}), "BinaryOperation"},
		{"MappingOneChild", lNode("Mapping", 1, nil, lElementary(2, "uint256")), "Mapping"},
		{"FunctionDefinitionOneChild", lNode("FunctionDefinition", 1, map[string]any{"name": "f", "stateMutability": "nonpayable", "kind": "function"}, lParameters(2)), "FunctionDefinition"},
		{"EmitWithoutCall", lNode("EmitStatement", 1, nil), "EmitStatement"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLegacyNode(tc.raw)
			wantNodeError(t, err, ErrAmbiguousChildList, FormatLegacy, tc.kind)
		})
	}
}

func TestLegacyChildCapabilityErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		kind string
	}{
		{
			// A type name where an expression belongs.
			name: "ExpressionSlotHoldsTypeName",
			raw:  lNode("Return", 1, nil, lElementary(2, "uint256")),
			kind: "Return",
		},
		{
			// An expression where the emit's event call belongs.
			name: "EmitCallSlotHoldsIdentifier",
			raw:  lNode("EmitStatement", 1, nil, lIdent(2, "Transfer")),
			kind: "EmitStatement",
		},
		{
			// A block where the for statement's leading slots belong.
			name: "ForLeadingSlotHoldsBlock",
			raw:  lNode("ForStatement", 1, nil, lBlock(2), lBlock(3)),
			kind: "ForStatement",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLegacyNode(tc.raw)
			wantNodeError(t, err, ErrMalformedNode, FormatLegacy, tc.kind)
		})
	}
}
