package parser

import (
	"strings"
	"testing"

	"solast/pkg/ast"
)

const compactDoc = `{
  "nodeType": "SourceUnit",
  "id": 11,
  "src": "0:120:0",
  "nodes": [
    {
      "nodeType": "PragmaDirective",
      "id": 1,
      "src": "0:24:0",
      "literals": ["solidity", "^", "0.8", ".0"]
    },
    {
      "nodeType": "ContractDefinition",
      "id": 10,
      "src": "26:94:0",
      "name": "Counter",
      "canonicalName": "Counter",
      "contractKind": "contract",
      "linearizedBaseContracts": [10],
      "nodes": [
        {
          "nodeType": "VariableDeclaration",
          "id": 3,
          "src": "47:14:0",
          "name": "count",
          "visibility": "internal",
          "constant": false,
          "stateVariable": true,
          "storageLocation": "default",
          "typeDescriptions": {"typeString": "uint256"},
          "typeName": {
            "nodeType": "ElementaryTypeName",
            "id": 2,
            "src": "47:7:0",
            "name": "uint256"
          },
          "value": null
        },
        {
          "nodeType": "FunctionDefinition",
          "id": 9,
          "src": "68:50:0",
          "name": "bump",
          "kind": "function",
          "visibility": "public",
          "stateMutability": "nonpayable",
          "modifiers": [],
          "parameters": {"nodeType": "ParameterList", "id": 4, "src": "81:2:0", "parameters": []},
          "returnParameters": {"nodeType": "ParameterList", "id": 5, "src": "91:0:0", "parameters": []},
          "body": {
            "nodeType": "Block",
            "id": 8,
            "src": "91:27:0",
            "statements": [
              {
                "nodeType": "ExpressionStatement",
                "id": 7,
                "src": "101:7:0",
                "expression": {
                  "nodeType": "UnaryOperation",
                  "id": 6,
                  "src": "101:7:0",
                  "operator": "++",
                  "prefix": false,
                  "subExpression": {
                    "nodeType": "Identifier",
                    "id": 12,
                    "src": "101:5:0",
                    "name": "count",
                    "typeDescriptions": {"typeString": "uint256"}
                  },
                  "typeDescriptions": {"typeString": "uint256"}
                }
              }
            ]
          }
        }
      ]
    }
  ]
}`

const legacyDoc = `{
  "name": "SourceUnit",
  "children": [
    {
      "name": "PragmaDirective",
      "id": 1,
      "src": "0:24:0",
      "attributes": {"literals": ["solidity", "^", "0.4", ".24"]}
    },
    {
      "name": "ContractDefinition",
      "id": 10,
      "src": "26:94:0",
      "attributes": {
        "name": "Counter",
        "contractKind": "contract",
        "linearizedBaseContracts": [10]
      },
      "children": [
        {
          "name": "VariableDeclaration",
          "id": 3,
          "src": "47:14:0",
          "attributes": {
            "name": "count",
            "type": "uint256",
            "visibility": "internal",
            "constant": false,
            "stateVariable": true,
            "storageLocation": "default"
          },
          "children": [
            {"name": "ElementaryTypeName", "id": 2, "src": "47:7:0", "attributes": {"name": "uint256"}}
          ]
        },
        {
          "name": "FunctionDefinition",
          "id": 9,
          "src": "68:50:0",
          "attributes": {
            "name": "bump",
            "kind": "function",
            "visibility": "public",
            "stateMutability": "nonpayable"
          },
          "children": [
            {"name": "ParameterList", "id": 4, "src": "81:2:0", "children": []},
            {"name": "ParameterList", "id": 5, "src": "91:0:0", "children": []},
            {
              "name": "Block",
              "id": 8,
              "src": "91:27:0",
              "children": [
                {
                  "name": "ExpressionStatement",
                  "id": 7,
                  "src": "101:7:0",
                  "children": [
                    {
                      "name": "UnaryOperation",
                      "id": 6,
                      "src": "101:7:0",
                      "attributes": {"operator": "++", "prefix": false, "type": "uint256"},
                      "children": [
                        {
                          "name": "Identifier",
                          "id": 12,
                          "src": "101:5:0",
                          "attributes": {"value": "count", "type": "uint256"}
                        }
                      ]
                    }
                  ]
                }
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want Format
	}{
		{"Compact", compactDoc, FormatCompact},
		{"Legacy", legacyDoc, FormatLegacy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			format, err := DetectFormat(decodeRaw(t, tc.doc))
			if err != nil {
				t.Fatalf("DetectFormat: %v", err)
			}
			if format != tc.want {
				t.Fatalf("DetectFormat = %q, want %q", format, tc.want)
			}
		})
	}

	t.Run("NeitherTag", func(t *testing.T) {
		_, err := DetectFormat(map[string]any{"absolutePath": "a.sol"})
		if err == nil || !strings.Contains(err.Error(), "cannot detect AST format") {
			t.Fatalf("DetectFormat error = %v, want format-detection failure", err)
		}
	})
}

// Parse routes on the root tag; both documents land in the same model.
func TestParseRoutesByFormat(t *testing.T) {
	compact, err := Parse([]byte(compactDoc))
	if err != nil {
		t.Fatalf("Parse(compact): %v", err)
	}
	if compact.Meta().ID != 11 || len(compact.Nodes) != 2 {
		t.Fatalf("compact root = id %d with %d nodes, want id 11 with 2", compact.Meta().ID, len(compact.Nodes))
	}

	legacy, err := Parse([]byte(legacyDoc))
	if err != nil {
		t.Fatalf("Parse(legacy): %v", err)
	}
	if legacy.Meta().ID != ast.RootID || len(legacy.Nodes) != 2 {
		t.Fatalf("legacy root = id %d with %d nodes, want sentinel id with 2", legacy.Meta().ID, len(legacy.Nodes))
	}
}

// The same function body encoded in both formats must come out as the
// same model subtree: consumers are never supposed to know which format a
// document used.
func TestFormatsConvergeOnSameModel(t *testing.T) {
	compact, err := ParseCompact([]byte(compactDoc))
	if err != nil {
		t.Fatalf("ParseCompact: %v", err)
	}
	legacy, err := ParseLegacy([]byte(legacyDoc))
	if err != nil {
		t.Fatalf("ParseLegacy: %v", err)
	}

	compactFn := findFunction(t, compact, "bump")
	legacyFn := findFunction(t, legacy, "bump")
	assertNodesEqual(t, compactFn.Body, legacyFn.Body)
	assertNodesEqual(t, compactFn.Parameters, legacyFn.Parameters)
	if compactFn.Mutability != legacyFn.Mutability || compactFn.Kind != legacyFn.Kind {
		t.Fatalf("headers diverge: compact %s/%s, legacy %s/%s",
			compactFn.Mutability, compactFn.Kind, legacyFn.Mutability, legacyFn.Kind)
	}
}

func findFunction(t *testing.T, unit *ast.SourceUnit, name string) *ast.FunctionDefinition {
	t.Helper()
	for _, node := range unit.Nodes {
		contract, ok := node.(*ast.ContractDefinition)
		if !ok {
			continue
		}
		for _, member := range contract.Nodes {
			if fn, ok := member.(*ast.FunctionDefinition); ok && fn.Name == name {
				return fn
			}
		}
	}
	t.Fatalf("function %q not found", name)
	return nil
}

func TestParseCompactDocument(t *testing.T) {
	unit, err := ParseCompact([]byte(compactDoc))
	if err != nil {
		t.Fatalf("ParseCompact: %v", err)
	}
	contract, ok := unit.Nodes[1].(*ast.ContractDefinition)
	if !ok {
		t.Fatalf("node 1 is %T, want ContractDefinition", unit.Nodes[1])
	}
	if contract.Name != "Counter" || contract.Kind != "contract" {
		t.Fatalf("contract = %s %q, want contract Counter", contract.Kind, contract.Name)
	}
	state, ok := contract.Nodes[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("member 0 is %T, want VariableDeclaration", contract.Nodes[0])
	}
	if !state.StateVariable || state.TypeString != "uint256" {
		t.Fatalf("state variable = %+v, want uint256 state variable", state)
	}
}

func TestParseLegacyDocument(t *testing.T) {
	unit, err := ParseLegacy([]byte(legacyDoc))
	if err != nil {
		t.Fatalf("ParseLegacy: %v", err)
	}
	if unit.Meta().Src != "" {
		t.Fatalf("legacy root src = %q, want empty", unit.Meta().Src)
	}
	contract, ok := unit.Nodes[1].(*ast.ContractDefinition)
	if !ok {
		t.Fatalf("node 1 is %T, want ContractDefinition", unit.Nodes[1])
	}
	// canonicalName predates nothing here: absent in the document, the
	// declaration carries the empty-string default of this format.
	if contract.CanonicalName == nil || *contract.CanonicalName != "" {
		t.Fatalf("contract canonical name = %v, want empty string pointer", contract.CanonicalName)
	}
	fn := findFunction(t, unit, "bump")
	if fn.Modifiers != nil {
		t.Fatalf("legacy function without modifiers parsed Modifiers = %#v, want nil", fn.Modifiers)
	}
}

func TestParseRootMustBeSourceUnit(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		doc := `{"nodeType": "Identifier", "id": 1, "src": "0:1:0", "name": "x", "typeDescriptions": {"typeString": "uint256"}}`
		_, err := ParseCompact([]byte(doc))
		if err == nil || !strings.Contains(err.Error(), "document root is Identifier, want SourceUnit") {
			t.Fatalf("ParseCompact error = %v, want root-kind failure", err)
		}
	})
	t.Run("Legacy", func(t *testing.T) {
		doc := `{"name": "Literal", "id": 1, "src": "0:1:0", "attributes": {"token": "number", "value": "1", "hexvalue": "31", "subdenomination": null, "type": "int_const 1"}}`
		_, err := ParseLegacy([]byte(doc))
		if err == nil || !strings.Contains(err.Error(), "document root is Literal, want SourceUnit") {
			t.Fatalf("ParseLegacy error = %v, want root-kind failure", err)
		}
	})
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := Parse([]byte(`{"nodeType": `))
	if err == nil || !strings.Contains(err.Error(), "decode AST document") {
		t.Fatalf("Parse error = %v, want decode failure", err)
	}
}
