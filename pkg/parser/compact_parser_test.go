package parser

import (
	"testing"

	"solast/pkg/ast"
)

func TestCompactLiteralExample(t *testing.T) {
	raw := decodeRaw(t, `{"nodeType":"Literal","id":5,"src":"0:1:0","kind":"number","value":"1","hexValue":"31","subdenomination":null,"typeDescriptions":{"typeString":"int_const 1"}}`)
	node := mustParseCompact(t, raw)
	want := ast.NewLiteral(
		ast.NodeMeta{ID: 5, Src: "0:1:0"},
		ast.ExprMeta{TypeString: "int_const 1"},
		"number", strptr("1"), "31", nil,
	)
	assertNodesEqual(t, want, node)
}

func TestCompactExpressionFlagDefaults(t *testing.T) {
	// isConstant and isPure are omitted by older compilers; both default to
	// false, and explicit values are carried through.
	bare := mustParseCompact(t, cIdent(1, "x")).(*ast.Identifier)
	if bare.Constant || bare.Pure {
		t.Fatalf("omitted flags parsed as Constant=%v Pure=%v, want false/false", bare.Constant, bare.Pure)
	}

	flagged := cIdent(2, "y")
	flagged["isConstant"] = true
	flagged["isPure"] = true
	node := mustParseCompact(t, flagged).(*ast.Identifier)
	if !node.Constant || !node.Pure {
		t.Fatalf("explicit flags parsed as Constant=%v Pure=%v, want true/true", node.Constant, node.Pure)
	}
}

func TestCompactNullTypeString(t *testing.T) {
	raw := cNode("Identifier", 1, map[string]any{"name": "x"})
	raw["typeDescriptions"] = map[string]any{"typeString": nil}
	node := mustParseCompact(t, raw).(*ast.Identifier)
	if node.TypeString != "" {
		t.Fatalf("null typeString parsed as %q, want empty", node.TypeString)
	}
}

func TestCompactExpressions(t *testing.T) {
	ident := func(id int, name string) *ast.Identifier {
		return ast.NewIdentifier(ast.NodeMeta{ID: id, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"}, name)
	}
	number := func(id int, value string) *ast.Literal {
		return ast.NewLiteral(ast.NodeMeta{ID: id, Src: testSrc}, ast.ExprMeta{TypeString: "int_const " + value}, "number", strptr(value), "", nil)
	}

	cases := []struct {
		name string
		raw  map[string]any
		want ast.Node
	}{
		{
			name: "Assignment",
			raw: cExpr("Assignment", 1, "uint256", map[string]any{
				"operator": "+=", "leftHandSide": cIdent(2, "a"), "rightHandSide": cNumber(3, "1"),
			}),
			want: ast.NewAssignment(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				ident(2, "a"), "+=", number(3, "1")),
		},
		{
			name: "BinaryOperation",
			raw: cExpr("BinaryOperation", 1, "uint256", map[string]any{
				"operator": "*", "leftExpression": cIdent(2, "a"), "rightExpression": cIdent(3, "b"),
			}),
			want: ast.NewBinaryOperation(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				ident(2, "a"), "*", ident(3, "b")),
		},
		{
			name: "UnaryOperation",
			raw: cExpr("UnaryOperation", 1, "uint256", map[string]any{
				"operator": "++", "prefix": false, "subExpression": cIdent(2, "i"),
			}),
			want: ast.NewUnaryOperation(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				"++", ident(2, "i"), false),
		},
		{
			name: "Conditional",
			raw: cExpr("Conditional", 1, "uint256", map[string]any{
				"condition": cIdent(2, "ok"), "trueExpression": cNumber(3, "1"), "falseExpression": cNumber(4, "2"),
			}),
			want: ast.NewConditional(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				ident(2, "ok"), number(3, "1"), number(4, "2")),
		},
		{
			name: "TupleExpressionWithHole",
			raw: cExpr("TupleExpression", 1, "tuple(uint256,,uint256)", map[string]any{
				"isInlineArray": false, "components": []any{cIdent(2, "a"), nil, cIdent(3, "b")},
			}),
			want: ast.NewTupleExpression(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "tuple(uint256,,uint256)"},
				[]ast.Expression{ident(2, "a"), nil, ident(3, "b")}, false),
		},
		{
			name: "FunctionCall",
			raw: cExpr("FunctionCall", 1, "uint256", map[string]any{
				"kind": "functionCall", "expression": cIdent(2, "f"), "names": []any{}, "arguments": []any{cNumber(3, "7")},
			}),
			want: ast.NewFunctionCall(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				"functionCall", ident(2, "f"), []string{}, []ast.Expression{number(3, "7")}),
		},
		{
			name: "FunctionCallWithNames",
			raw: cExpr("FunctionCall", 1, "uint256", map[string]any{
				"kind": "functionCall", "expression": cIdent(2, "f"), "names": []any{"amount"}, "arguments": []any{cNumber(3, "7")},
			}),
			want: ast.NewFunctionCall(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				"functionCall", ident(2, "f"), []string{"amount"}, []ast.Expression{number(3, "7")}),
		},
		{
			name: "FunctionCallOptions",
			raw: cExpr("FunctionCallOptions", 1, "function () payable", map[string]any{
				"expression": cIdent(2, "f"), "names": []any{"value"}, "options": []any{cNumber(3, "1")},
			}),
			want: ast.NewFunctionCallOptions(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "function () payable"},
				ident(2, "f"), []string{"value"}, []ast.Expression{number(3, "1")}),
		},
		{
			name: "NewExpression",
			raw: cExpr("NewExpression", 1, "function () returns (contract C)", map[string]any{
				"typeName": cUserDefined(2, "C"),
			}),
			want: ast.NewNewExpression(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "function () returns (contract C)"},
				ast.NewUserDefinedTypeName(ast.NodeMeta{ID: 2, Src: testSrc}, "C")),
		},
		{
			name: "MemberAccess",
			raw: cExpr("MemberAccess", 1, "uint256", map[string]any{
				"expression": cIdent(2, "msg"), "memberName": "value",
			}),
			want: ast.NewMemberAccess(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				ident(2, "msg"), "value"),
		},
		{
			name: "IndexAccess",
			raw: cExpr("IndexAccess", 1, "uint256", map[string]any{
				"baseExpression": cIdent(2, "balances"), "indexExpression": cIdent(3, "who"),
			}),
			want: ast.NewIndexAccess(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
				ident(2, "balances"), ident(3, "who")),
		},
		{
			name: "IndexAccessWithoutIndex",
			raw: cExpr("IndexAccess", 1, "uint256[]", map[string]any{
				"baseExpression": cIdent(2, "values"), "indexExpression": nil,
			}),
			want: ast.NewIndexAccess(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "uint256[]"},
				ident(2, "values"), nil),
		},
		{
			name: "IndexRangeAccess",
			raw: cExpr("IndexRangeAccess", 1, "bytes calldata", map[string]any{
				"baseExpression": cIdent(2, "data"), "startExpression": cNumber(3, "4"), "endExpression": nil,
			}),
			want: ast.NewIndexRangeAccess(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "bytes calldata"},
				ident(2, "data"), number(3, "4"), nil),
		},
		{
			name: "ElementaryTypeNameExpression",
			raw: cExpr("ElementaryTypeNameExpression", 1, "type(address)", map[string]any{
				"typeName": cElementary(2, "address"),
			}),
			want: ast.NewElementaryTypeNameExpression(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "type(address)"},
				ast.NewElementaryTypeName(ast.NodeMeta{ID: 2, Src: testSrc}, "address", nil)),
		},
		{
			name: "HexLiteralWithNullValue",
			raw: cExpr("Literal", 1, `literal_string hex"c0ffee"`, map[string]any{
				"kind": "string", "value": nil, "hexValue": "c0ffee", "subdenomination": nil,
			}),
			want: ast.NewLiteral(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: `literal_string hex"c0ffee"`},
				"string", nil, "c0ffee", nil),
		},
		{
			name: "LiteralWithSubdenomination",
			raw: cExpr("Literal", 1, "int_const 1000000000000000000", map[string]any{
				"kind": "number", "value": "1", "hexValue": "31", "subdenomination": "ether",
			}),
			want: ast.NewLiteral(ast.NodeMeta{ID: 1, Src: testSrc}, ast.ExprMeta{TypeString: "int_const 1000000000000000000"},
				"number", strptr("1"), "31", strptr("ether")),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertNodesEqual(t, tc.want, mustParseCompact(t, tc.raw))
		})
	}
}

func TestCompactStatements(t *testing.T) {
	ident := func(id int, name string) *ast.Identifier {
		return ast.NewIdentifier(ast.NodeMeta{ID: id, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"}, name)
	}
	assign := func(id int, target, value string) map[string]any {
		return cExpr("Assignment", id, "uint256", map[string]any{
			"operator": "=", "leftHandSide": cIdent(id+1, target), "rightHandSide": cNumber(id+2, value),
		})
	}
	wantAssign := func(id int, target, value string) *ast.Assignment {
		return ast.NewAssignment(ast.NodeMeta{ID: id, Src: testSrc}, ast.ExprMeta{TypeString: "uint256"},
			ident(id+1, target),
			"=",
			ast.NewLiteral(ast.NodeMeta{ID: id + 2, Src: testSrc}, ast.ExprMeta{TypeString: "int_const " + value}, "number", strptr(value), "", nil))
	}
	exprStmt := func(id int, expr map[string]any) map[string]any {
		return cNode("ExpressionStatement", id, map[string]any{"expression": expr})
	}
	wantExprStmt := func(id int, expr ast.Expression) *ast.ExpressionStatement {
		return ast.NewExpressionStatement(ast.NodeMeta{ID: id, Src: testSrc}, expr)
	}
	meta := func(id int) ast.NodeMeta { return ast.NodeMeta{ID: id, Src: testSrc} }

	cases := []struct {
		name string
		raw  map[string]any
		want ast.Node
	}{
		{
			name: "EmptyBlock",
			raw:  cBlock(1),
			want: ast.NewBlock(meta(1), []ast.Statement{}),
		},
		{
			name: "BlockWithStatements",
			raw:  cBlock(1, exprStmt(2, assign(3, "a", "1"))),
			want: ast.NewBlock(meta(1), []ast.Statement{wantExprStmt(2, wantAssign(3, "a", "1"))}),
		},
		{
			name: "PlaceholderStatement",
			raw:  cNode("PlaceholderStatement", 1, nil),
			want: ast.NewPlaceholderStatement(meta(1)),
		},
		{
			name: "IfWithoutElse",
			raw: cNode("IfStatement", 1, map[string]any{
				"condition": cIdent(2, "ok"), "trueBody": cBlock(3), "falseBody": nil,
			}),
			want: ast.NewIfStatement(meta(1), ident(2, "ok"), ast.NewBlock(meta(3), []ast.Statement{}), nil),
		},
		{
			name: "IfWithElse",
			raw: cNode("IfStatement", 1, map[string]any{
				"condition": cIdent(2, "ok"), "trueBody": cBlock(3), "falseBody": cBlock(4),
			}),
			want: ast.NewIfStatement(meta(1), ident(2, "ok"),
				ast.NewBlock(meta(3), []ast.Statement{}), ast.NewBlock(meta(4), []ast.Statement{})),
		},
		{
			name: "WhileStatement",
			raw: cNode("WhileStatement", 1, map[string]any{
				"condition": cIdent(2, "running"), "body": cBlock(3),
			}),
			want: ast.NewWhileStatement(meta(1), ident(2, "running"), ast.NewBlock(meta(3), []ast.Statement{}), false),
		},
		{
			name: "DoWhileStatement",
			raw: cNode("DoWhileStatement", 1, map[string]any{
				"condition": cIdent(2, "running"), "body": cBlock(3),
			}),
			want: ast.NewWhileStatement(meta(1), ident(2, "running"), ast.NewBlock(meta(3), []ast.Statement{}), true),
		},
		{
			name: "ForWithFullHeader",
			raw: cNode("ForStatement", 1, map[string]any{
				"initializationExpression": cNode("VariableDeclarationStatement", 2, map[string]any{
					"declarations": []any{cVariable(3, "i", "uint256")}, "initialValue": cNumber(5, "0"),
				}),
				"condition":      cIdent(6, "cond"),
				"loopExpression": exprStmt(7, assign(8, "i", "1")),
				"body":           cBlock(11),
			}),
			want: ast.NewForStatement(meta(1),
				ast.NewVariableDeclarationStatement(meta(2),
					[]*ast.VariableDeclaration{wantCompactVariable(3, "i", "uint256")},
					ast.NewLiteral(meta(5), ast.ExprMeta{TypeString: "int_const 0"}, "number", strptr("0"), "", nil)),
				ident(6, "cond"),
				wantExprStmt(7, wantAssign(8, "i", "1")),
				ast.NewBlock(meta(11), []ast.Statement{})),
		},
		{
			name: "ForWithEmptyHeader",
			raw: cNode("ForStatement", 1, map[string]any{
				"initializationExpression": nil, "condition": nil, "loopExpression": nil, "body": cBlock(2),
			}),
			want: ast.NewForStatement(meta(1), nil, nil, nil, ast.NewBlock(meta(2), []ast.Statement{})),
		},
		{
			name: "Continue",
			raw:  cNode("Continue", 1, nil),
			want: ast.NewContinue(meta(1)),
		},
		{
			name: "Break",
			raw:  cNode("Break", 1, nil),
			want: ast.NewBreak(meta(1)),
		},
		{
			name: "ReturnWithExpression",
			raw:  cNode("Return", 1, map[string]any{"expression": cIdent(2, "total")}),
			want: ast.NewReturn(meta(1), ident(2, "total")),
		},
		{
			name: "BareReturn",
			raw:  cNode("Return", 1, nil),
			want: ast.NewReturn(meta(1), nil),
		},
		{
			name: "Throw",
			raw:  cNode("Throw", 1, nil),
			want: ast.NewThrow(meta(1)),
		},
		{
			name: "EmitStatement",
			raw: cNode("EmitStatement", 1, map[string]any{
				"eventCall": cCall(2, "Transfer"),
			}),
			want: ast.NewEmitStatement(meta(1),
				ast.NewFunctionCall(meta(2), ast.ExprMeta{TypeString: "tuple()"}, "functionCall",
					ident(3, "Transfer"), []string{}, []ast.Expression{})),
		},
		{
			name: "VariableDeclarationStatementWithHole",
			raw: cNode("VariableDeclarationStatement", 1, map[string]any{
				"declarations": []any{cVariable(2, "a", "uint256"), nil},
				"initialValue": cCall(4, "f"),
			}),
			want: ast.NewVariableDeclarationStatement(meta(1),
				[]*ast.VariableDeclaration{wantCompactVariable(2, "a", "uint256"), nil},
				ast.NewFunctionCall(meta(4), ast.ExprMeta{TypeString: "tuple()"}, "functionCall",
					ident(5, "f"), []string{}, []ast.Expression{})),
		},
		{
			name: "TryStatement",
			raw: cNode("TryStatement", 1, map[string]any{
				"externalCall": cCall(2, "remote"),
				"clauses": []any{
					cNode("TryCatchClause", 4, map[string]any{"errorName": "", "parameters": cParameters(5), "block": cBlock(6)}),
					cNode("TryCatchClause", 7, map[string]any{"errorName": "Error", "parameters": nil, "block": cBlock(8)}),
				},
			}),
			want: ast.NewTryStatement(meta(1),
				ast.NewFunctionCall(meta(2), ast.ExprMeta{TypeString: "tuple()"}, "functionCall",
					ident(3, "remote"), []string{}, []ast.Expression{}),
				[]*ast.TryCatchClause{
					ast.NewTryCatchClause(meta(4), "", ast.NewParameterList(meta(5), []*ast.VariableDeclaration{}), ast.NewBlock(meta(6), []ast.Statement{})),
					ast.NewTryCatchClause(meta(7), "Error", nil, ast.NewBlock(meta(8), []ast.Statement{})),
				}),
		},
		{
			name: "ModernInlineAssembly",
			raw: cNode("InlineAssembly", 1, map[string]any{
				"AST": map[string]any{"nodeType": "YulBlock", "statements": []any{}},
			}),
			want: ast.NewInlineAssembly(meta(1), map[string]any{"nodeType": "YulBlock", "statements": []any{}}),
		},
		{
			name: "LegacyStyleInlineAssembly",
			raw: cNode("InlineAssembly", 1, map[string]any{
				"operations": "{ let x := 1 }",
			}),
			want: ast.NewInlineAssembly(meta(1), "{ let x := 1 }"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertNodesEqual(t, tc.want, mustParseCompact(t, tc.raw))
		})
	}
}

// wantCompactVariable mirrors what parsing cVariable produces.
func wantCompactVariable(id int, name, typ string) *ast.VariableDeclaration {
	decl := ast.DeclMeta{Name: name, CanonicalName: strptr(""), Visibility: "internal"}
	typeName := ast.NewElementaryTypeName(ast.NodeMeta{ID: id + 100, Src: testSrc}, typ, nil)
	return ast.NewVariableDeclaration(ast.NodeMeta{ID: id, Src: testSrc}, decl, typeName, nil, typ, false)
}

func TestCompactDeclarations(t *testing.T) {
	meta := func(id int) ast.NodeMeta { return ast.NodeMeta{ID: id, Src: testSrc} }
	decl := func(name, visibility string) ast.DeclMeta {
		return ast.DeclMeta{Name: name, CanonicalName: strptr(""), Visibility: visibility}
	}

	cases := []struct {
		name string
		raw  map[string]any
		want ast.Node
	}{
		{
			name: "SourceUnit",
			raw: cNode("SourceUnit", 0, map[string]any{
				"nodes": []any{cNode("PragmaDirective", 1, map[string]any{"literals": []any{"solidity", "^", "0.8", ".0"}})},
			}),
			want: ast.NewSourceUnit(meta(0), []ast.Node{
				ast.NewPragmaDirective(meta(1), []string{"solidity", "^", "0.8", ".0"}),
			}),
		},
		{
			name: "ImportDirective",
			raw:  cNode("ImportDirective", 1, map[string]any{"absolutePath": "lib/SafeMath.sol"}),
			want: ast.NewImportDirective(meta(1), "lib/SafeMath.sol"),
		},
		{
			name: "ContractDefinition",
			raw: cNode("ContractDefinition", 1, map[string]any{
				"name": "Token", "canonicalName": "Token", "contractKind": "contract",
				"linearizedBaseContracts": []any{1, 9},
				"nodes":                   []any{},
			}),
			want: ast.NewContractDefinition(meta(1),
				ast.DeclMeta{Name: "Token", CanonicalName: strptr("Token")},
				"contract", []int{1, 9}, []ast.Node{}),
		},
		{
			name: "InheritanceSpecifierWithoutArguments",
			raw: cNode("InheritanceSpecifier", 1, map[string]any{
				"baseName": cUserDefined(2, "Ownable"),
			}),
			want: ast.NewInheritanceSpecifier(meta(1), ast.NewUserDefinedTypeName(meta(2), "Ownable"), nil),
		},
		{
			name: "InheritanceSpecifierWithArguments",
			raw: cNode("InheritanceSpecifier", 1, map[string]any{
				"baseName": cUserDefined(2, "Base"), "arguments": []any{cNumber(3, "1")},
			}),
			want: ast.NewInheritanceSpecifier(meta(1), ast.NewUserDefinedTypeName(meta(2), "Base"),
				[]ast.Expression{ast.NewLiteral(meta(3), ast.ExprMeta{TypeString: "int_const 1"}, "number", strptr("1"), "", nil)}),
		},
		{
			name: "UsingForDirective",
			raw: cNode("UsingForDirective", 1, map[string]any{
				"libraryName": cUserDefined(2, "SafeMath"), "typeName": cElementary(3, "uint256"),
			}),
			want: ast.NewUsingForDirective(meta(1), ast.NewUserDefinedTypeName(meta(2), "SafeMath"),
				ast.NewElementaryTypeName(meta(3), "uint256", nil)),
		},
		{
			name: "UsingForDirectiveWildcard",
			raw: cNode("UsingForDirective", 1, map[string]any{
				"libraryName": cUserDefined(2, "SafeMath"), "typeName": nil,
			}),
			want: ast.NewUsingForDirective(meta(1), ast.NewUserDefinedTypeName(meta(2), "SafeMath"), nil),
		},
		{
			name: "StructDefinition",
			raw: cNode("StructDefinition", 1, map[string]any{
				"name": "Position", "canonicalName": "Pool.Position", "visibility": "public",
				"members": []any{cVariable(2, "owner", "address")},
			}),
			want: ast.NewStructDefinition(meta(1),
				ast.DeclMeta{Name: "Position", CanonicalName: strptr("Pool.Position"), Visibility: "public"},
				[]*ast.VariableDeclaration{wantCompactVariable(2, "owner", "address")}),
		},
		{
			name: "EnumDefinition",
			raw: cNode("EnumDefinition", 1, map[string]any{
				"name": "State", "canonicalName": "Pool.State",
				"members": []any{
					cNode("EnumValue", 2, map[string]any{"name": "Open"}),
					cNode("EnumValue", 3, map[string]any{"name": "Closed"}),
				},
			}),
			want: ast.NewEnumDefinition(meta(1),
				ast.DeclMeta{Name: "State", CanonicalName: strptr("Pool.State")},
				[]*ast.EnumValue{
					ast.NewEnumValue(meta(2), decl("Open", "")),
					ast.NewEnumValue(meta(3), decl("Closed", "")),
				}),
		},
		{
			name: "ParameterListWithHole",
			raw:  cParameters(1, cVariable(2, "x", "uint256"), nil),
			want: ast.NewParameterList(meta(1), []*ast.VariableDeclaration{wantCompactVariable(2, "x", "uint256"), nil}),
		},
		{
			name: "FunctionDefinition",
			raw: cNode("FunctionDefinition", 1, map[string]any{
				"name": "transfer", "visibility": "public", "stateMutability": "nonpayable", "kind": "function",
				"parameters":       cParameters(2, cVariable(3, "to", "address")),
				"returnParameters": cParameters(4),
				"modifiers":        []any{},
				"body":             cBlock(5),
			}),
			want: ast.NewFunctionDefinition(meta(1), ast.CallableMeta{
				DeclMeta:   decl("transfer", "public"),
				Parameters: ast.NewParameterList(meta(2), []*ast.VariableDeclaration{wantCompactVariable(3, "to", "address")}),
				Returns:    ast.NewParameterList(meta(4), []*ast.VariableDeclaration{}),
			}, "nonpayable", "function", []*ast.ModifierInvocation{}, ast.NewBlock(meta(5), []ast.Statement{})),
		},
		{
			name: "UnimplementedFunction",
			raw: cNode("FunctionDefinition", 1, map[string]any{
				"name": "decimals", "visibility": "external", "stateMutability": "view", "kind": "function",
				"parameters":       cParameters(2),
				"returnParameters": cParameters(3, cVariable(4, "", "uint8")),
				"modifiers":        []any{},
				"body":             nil,
			}),
			want: ast.NewFunctionDefinition(meta(1), ast.CallableMeta{
				DeclMeta:   decl("decimals", "external"),
				Parameters: ast.NewParameterList(meta(2), []*ast.VariableDeclaration{}),
				Returns:    ast.NewParameterList(meta(3), []*ast.VariableDeclaration{wantCompactVariable(4, "", "uint8")}),
			}, "view", "function", []*ast.ModifierInvocation{}, nil),
		},
		{
			name: "StateVariable",
			raw: func() map[string]any {
				raw := cVariable(1, "totalSupply", "uint256")
				raw["stateVariable"] = true
				raw["storageLocation"] = "default"
				return raw
			}(),
			want: func() ast.Node {
				v := wantCompactVariable(1, "totalSupply", "uint256")
				v.StateVariable = true
				v.StorageLocation = "default"
				return v
			}(),
		},
		{
			name: "IndexedEventParameter",
			raw: func() map[string]any {
				raw := cVariable(1, "from", "address")
				raw["indexed"] = true
				return raw
			}(),
			want: func() ast.Node {
				v := wantCompactVariable(1, "from", "address")
				v.Indexed = boolptr(true)
				return v
			}(),
		},
		{
			name: "ModifierDefinition",
			raw: cNode("ModifierDefinition", 1, map[string]any{
				"name": "onlyOwner", "visibility": "internal",
				"parameters": cParameters(2),
				"body":       cBlock(3, cNode("PlaceholderStatement", 4, nil)),
			}),
			want: ast.NewModifierDefinition(meta(1), ast.CallableMeta{
				DeclMeta:   decl("onlyOwner", "internal"),
				Parameters: ast.NewParameterList(meta(2), []*ast.VariableDeclaration{}),
			}, ast.NewBlock(meta(3), []ast.Statement{ast.NewPlaceholderStatement(meta(4))})),
		},
		{
			name: "ModifierInvocation",
			raw: cNode("ModifierInvocation", 1, map[string]any{
				"modifierName": cIdent(2, "onlyOwner"), "arguments": nil,
			}),
			want: ast.NewModifierInvocation(meta(1),
				ast.NewIdentifier(meta(2), ast.ExprMeta{TypeString: "uint256"}, "onlyOwner"), nil),
		},
		{
			name: "EventDefinition",
			raw: cNode("EventDefinition", 1, map[string]any{
				"name": "Transfer", "anonymous": false,
				"parameters": cParameters(2),
			}),
			want: ast.NewEventDefinition(meta(1), ast.CallableMeta{
				DeclMeta:   decl("Transfer", ""),
				Parameters: ast.NewParameterList(meta(2), []*ast.VariableDeclaration{}),
			}, false),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertNodesEqual(t, tc.want, mustParseCompact(t, tc.raw))
		})
	}
}

func TestCompactTypeNames(t *testing.T) {
	meta := func(id int) ast.NodeMeta { return ast.NodeMeta{ID: id, Src: testSrc} }

	cases := []struct {
		name string
		raw  map[string]any
		want ast.Node
	}{
		{
			name: "ElementaryTypeName",
			raw:  cElementary(1, "uint256"),
			want: ast.NewElementaryTypeName(meta(1), "uint256", nil),
		},
		{
			name: "PayableAddress",
			raw: cNode("ElementaryTypeName", 1, map[string]any{
				"name": "address", "stateMutability": "payable",
			}),
			want: ast.NewElementaryTypeName(meta(1), "address", strptr("payable")),
		},
		{
			name: "UserDefinedTypeNameFlat",
			raw:  cUserDefined(1, "Token"),
			want: ast.NewUserDefinedTypeName(meta(1), "Token"),
		},
		{
			name: "UserDefinedTypeNamePathNode",
			raw: cNode("UserDefinedTypeName", 1, map[string]any{
				"pathNode": map[string]any{"id": 2, "name": "Token", "nodeType": "IdentifierPath", "src": testSrc},
			}),
			want: ast.NewUserDefinedTypeName(meta(1), "Token"),
		},
		{
			name: "FunctionTypeName",
			raw: cNode("FunctionTypeName", 1, map[string]any{
				"parameterTypes":       cParameters(2),
				"returnParameterTypes": cParameters(3),
				"stateMutability":      "view",
				"visibility":           "external",
			}),
			want: ast.NewFunctionTypeName(meta(1),
				ast.NewParameterList(meta(2), []*ast.VariableDeclaration{}),
				ast.NewParameterList(meta(3), []*ast.VariableDeclaration{}),
				"view", "external"),
		},
		{
			name: "Mapping",
			raw: cNode("Mapping", 1, map[string]any{
				"keyType": cElementary(2, "address"), "valueType": cElementary(3, "uint256"),
			}),
			want: ast.NewMapping(meta(1),
				ast.NewElementaryTypeName(meta(2), "address", nil),
				ast.NewElementaryTypeName(meta(3), "uint256", nil)),
		},
		{
			name: "DynamicArray",
			raw: cNode("ArrayTypeName", 1, map[string]any{
				"baseType": cElementary(2, "uint256"), "length": nil,
			}),
			want: ast.NewArrayTypeName(meta(1), ast.NewElementaryTypeName(meta(2), "uint256", nil), nil),
		},
		{
			name: "FixedArray",
			raw: cNode("ArrayTypeName", 1, map[string]any{
				"baseType": cElementary(2, "uint256"), "length": cNumber(3, "3"),
			}),
			want: ast.NewArrayTypeName(meta(1), ast.NewElementaryTypeName(meta(2), "uint256", nil),
				ast.NewLiteral(meta(3), ast.ExprMeta{TypeString: "int_const 3"}, "number", strptr("3"), "", nil)),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertNodesEqual(t, tc.want, mustParseCompact(t, tc.raw))
		})
	}
}
