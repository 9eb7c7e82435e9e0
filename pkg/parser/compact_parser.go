package parser

import (
	"errors"
	"fmt"

	"solast/pkg/ast"
)

// compactParser walks compact-format nodes. Dispatch is the closed switch
// in parseKind; every recursive descent step funnels through parseNode so
// depth accounting and error wrapping happen in exactly one place.
type compactParser struct {
	depth    int
	maxDepth int
}

// parseNode is the dispatch boundary. A failure raised while extracting a
// node is wrapped into a NodeError tagged with that node's kind and field
// names; a NodeError bubbling up from a child passes through untouched, so
// the error always points at the node where parsing actually broke.
func (p *compactParser) parseNode(raw rawNode) (ast.Node, error) {
	kind, err := raw.str("nodeType")
	if err != nil {
		return nil, &NodeError{Format: FormatCompact, Fields: raw.fields(), Err: err}
	}
	if p.depth >= p.maxDepth {
		return nil, &NodeError{Format: FormatCompact, Kind: kind, Fields: raw.fields(), Err: ErrMaxDepth}
	}
	p.depth++
	node, err := p.parseKind(kind, raw)
	p.depth--
	if err != nil {
		var nodeErr *NodeError
		if errors.As(err, &nodeErr) {
			return nil, err
		}
		return nil, &NodeError{Format: FormatCompact, Kind: kind, Fields: raw.fields(), Err: err}
	}
	return node, nil
}

func (p *compactParser) parseKind(kind string, raw rawNode) (ast.Node, error) {
	switch kind {
	case "SourceUnit":
		return p.parseSourceUnit(raw)
	case "PragmaDirective":
		return p.parsePragmaDirective(raw)
	case "ImportDirective":
		return p.parseImportDirective(raw)
	case "ContractDefinition":
		return p.parseContractDefinition(raw)
	case "InheritanceSpecifier":
		return p.parseInheritanceSpecifier(raw)
	case "UsingForDirective":
		return p.parseUsingForDirective(raw)
	case "StructDefinition":
		return p.parseStructDefinition(raw)
	case "EnumDefinition":
		return p.parseEnumDefinition(raw)
	case "EnumValue":
		return p.parseEnumValue(raw)
	case "ParameterList":
		return p.parseParameterList(raw)
	case "FunctionDefinition":
		return p.parseFunctionDefinition(raw)
	case "VariableDeclaration":
		return p.parseVariableDeclaration(raw)
	case "ModifierDefinition":
		return p.parseModifierDefinition(raw)
	case "ModifierInvocation":
		return p.parseModifierInvocation(raw)
	case "EventDefinition":
		return p.parseEventDefinition(raw)
	case "ElementaryTypeName":
		return p.parseElementaryTypeName(raw)
	case "UserDefinedTypeName":
		return p.parseUserDefinedTypeName(raw)
	case "FunctionTypeName":
		return p.parseFunctionTypeName(raw)
	case "Mapping":
		return p.parseMapping(raw)
	case "ArrayTypeName":
		return p.parseArrayTypeName(raw)
	case "InlineAssembly":
		return p.parseInlineAssembly(raw)
	case "Block":
		return p.parseBlock(raw)
	case "PlaceholderStatement":
		return p.parsePlaceholderStatement(raw)
	case "IfStatement":
		return p.parseIfStatement(raw)
	case "TryCatchClause":
		return p.parseTryCatchClause(raw)
	case "TryStatement":
		return p.parseTryStatement(raw)
	case "WhileStatement":
		return p.parseWhileStatement(raw, false)
	case "DoWhileStatement":
		return p.parseWhileStatement(raw, true)
	case "ForStatement":
		return p.parseForStatement(raw)
	case "Continue":
		return p.parseContinue(raw)
	case "Break":
		return p.parseBreak(raw)
	case "Return":
		return p.parseReturn(raw)
	case "Throw":
		return p.parseThrow(raw)
	case "EmitStatement":
		return p.parseEmitStatement(raw)
	case "VariableDeclarationStatement":
		return p.parseVariableDeclarationStatement(raw)
	case "ExpressionStatement":
		return p.parseExpressionStatement(raw)
	case "Conditional":
		return p.parseConditional(raw)
	case "Assignment":
		return p.parseAssignment(raw)
	case "TupleExpression":
		return p.parseTupleExpression(raw)
	case "UnaryOperation":
		return p.parseUnaryOperation(raw)
	case "BinaryOperation":
		return p.parseBinaryOperation(raw)
	case "FunctionCall":
		return p.parseFunctionCall(raw)
	case "FunctionCallOptions":
		return p.parseFunctionCallOptions(raw)
	case "NewExpression":
		return p.parseNewExpression(raw)
	case "MemberAccess":
		return p.parseMemberAccess(raw)
	case "IndexAccess":
		return p.parseIndexAccess(raw)
	case "IndexRangeAccess":
		return p.parseIndexRangeAccess(raw)
	case "Identifier":
		return p.parseIdentifier(raw)
	case "ElementaryTypeNameExpression":
		return p.parseElementaryTypeNameExpression(raw)
	case "Literal":
		return p.parseLiteral(raw)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedNode, kind)
	}
}

// compactNodeMeta extracts the id/src header every compact node carries.
func compactNodeMeta(raw rawNode) (ast.NodeMeta, error) {
	id, err := raw.integer("id")
	if err != nil {
		return ast.NodeMeta{}, err
	}
	src, err := raw.str("src")
	if err != nil {
		return ast.NodeMeta{}, err
	}
	return ast.NodeMeta{ID: id, Src: src}, nil
}

// compactExprMeta extracts the header shared by all expression kinds. The
// type string lives under typeDescriptions and may be null; the constness
// and purity flags default to false when the compiler omits them.
func compactExprMeta(raw rawNode) (ast.NodeMeta, ast.ExprMeta, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, err
	}
	descriptions, err := raw.object("typeDescriptions")
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, err
	}
	typeString, err := descriptions.nullableStr("typeString")
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, err
	}
	constant, err := raw.boolOr("isConstant", false)
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, err
	}
	pure, err := raw.boolOr("isPure", false)
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, err
	}
	expr := ast.ExprMeta{Constant: constant, Pure: pure}
	if typeString != nil {
		expr.TypeString = *typeString
	}
	return meta, expr, nil
}

// compactDeclMeta extracts the header shared by all declaration kinds.
// canonicalName defaults to the empty string and visibility stays unset
// when the compiler omits them.
func compactDeclMeta(raw rawNode) (ast.NodeMeta, ast.DeclMeta, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, err
	}
	name, err := raw.str("name")
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, err
	}
	canonical, err := raw.strOr("canonicalName", "")
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, err
	}
	visibility, err := raw.strOr("visibility", "")
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, err
	}
	return meta, ast.DeclMeta{Name: name, CanonicalName: &canonical, Visibility: visibility}, nil
}

// callableMeta extracts the declaration header plus the parameter lists of
// function-like kinds. returnParameters is carried only when the key is
// present; event and modifier definitions never have one.
func (p *compactParser) callableMeta(raw rawNode) (ast.NodeMeta, ast.CallableMeta, error) {
	meta, decl, err := compactDeclMeta(raw)
	if err != nil {
		return ast.NodeMeta{}, ast.CallableMeta{}, err
	}
	params, err := p.parameterList(raw, "parameters")
	if err != nil {
		return ast.NodeMeta{}, ast.CallableMeta{}, err
	}
	var returns *ast.ParameterList
	if raw.has("returnParameters") {
		returns, err = p.parameterList(raw, "returnParameters")
		if err != nil {
			return ast.NodeMeta{}, ast.CallableMeta{}, err
		}
	}
	return meta, ast.CallableMeta{DeclMeta: decl, Parameters: params, Returns: returns}, nil
}

// Typed child readers. Each fetches a named field, recurses through the
// dispatch boundary and checks the capability group the position demands.

func (p *compactParser) expression(raw rawNode, key string) (ast.Expression, error) {
	child, err := raw.child(key)
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want an expression", ErrMalformedNode, key, node.NodeType())
	}
	return expr, nil
}

// optExpression reads an expression field that may be absent or null.
func (p *compactParser) optExpression(raw rawNode, key string) (ast.Expression, error) {
	child, err := raw.optChild(key)
	if err != nil || child == nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want an expression", ErrMalformedNode, key, node.NodeType())
	}
	return expr, nil
}

func (p *compactParser) statement(raw rawNode, key string) (ast.Statement, error) {
	child, err := raw.child(key)
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want a statement", ErrMalformedNode, key, node.NodeType())
	}
	return stmt, nil
}

// optStatement reads a statement field that may be absent or null.
func (p *compactParser) optStatement(raw rawNode, key string) (ast.Statement, error) {
	child, err := raw.optChild(key)
	if err != nil || child == nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want a statement", ErrMalformedNode, key, node.NodeType())
	}
	return stmt, nil
}

func (p *compactParser) typeName(raw rawNode, key string) (ast.TypeName, error) {
	child, err := raw.child(key)
	if err != nil {
		return nil, err
	}
	return p.typeNameNode(child, key)
}

// optTypeName reads a type name field that may be absent or null.
func (p *compactParser) optTypeName(raw rawNode, key string) (ast.TypeName, error) {
	child, err := raw.optChild(key)
	if err != nil || child == nil {
		return nil, err
	}
	return p.typeNameNode(child, key)
}

func (p *compactParser) typeNameNode(child rawNode, key string) (ast.TypeName, error) {
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	typ, ok := node.(ast.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want a type name", ErrMalformedNode, key, node.NodeType())
	}
	return typ, nil
}

func (p *compactParser) parameterList(raw rawNode, key string) (*ast.ParameterList, error) {
	child, err := raw.child(key)
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	list, ok := node.(*ast.ParameterList)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, key, node.NodeType(), ast.NodeParameterList)
	}
	return list, nil
}

func (p *compactParser) block(raw rawNode, key string) (*ast.Block, error) {
	child, err := raw.child(key)
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	block, ok := node.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, key, node.NodeType(), ast.NodeBlock)
	}
	return block, nil
}

// optBlock reads a block field that may be absent or null.
func (p *compactParser) optBlock(raw rawNode, key string) (*ast.Block, error) {
	if child, err := raw.optChild(key); err != nil || child == nil {
		return nil, err
	}
	return p.block(raw, key)
}

// nodeList parses a required array of child nodes of any kind.
func (p *compactParser) nodeList(raw rawNode, key string) ([]ast.Node, error) {
	children, err := raw.childList(key)
	if err != nil {
		return nil, err
	}
	nodes := make([]ast.Node, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// expressionList parses a required array of expressions. Empty stays an
// empty list; call arguments distinguish f() from an absent argument list.
func (p *compactParser) expressionList(raw rawNode, key string) ([]ast.Expression, error) {
	children, err := raw.childList(key)
	if err != nil {
		return nil, err
	}
	return p.expressions(children, key)
}

// collapsedExpressionList parses an optional array of expressions where
// absent, null and empty all mean the same thing: no list at all.
func (p *compactParser) collapsedExpressionList(raw rawNode, key string) ([]ast.Expression, error) {
	children, err := raw.childListOr(key)
	if err != nil || len(children) == 0 {
		return nil, err
	}
	return p.expressions(children, key)
}

func (p *compactParser) expressions(children []rawNode, key string) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		expr, ok := node.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want an expression", ErrMalformedNode, key, node.NodeType())
		}
		out = append(out, expr)
	}
	return out, nil
}
