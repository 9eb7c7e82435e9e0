package parser

import (
	"errors"
	"fmt"

	"solast/pkg/ast"
)

// legacyParser walks legacy-format nodes. The legacy shape carries scalars
// in an "attributes" object and child nodes in one flat "children" array
// that never marks which grammar slot an element fills; each kind's child
// handling lives in its own function and relies on list length and the
// concrete types of parsed children, never on position alone.
type legacyParser struct {
	depth    int
	maxDepth int
}

// parseNode is the dispatch boundary, mirroring the compact one. Legacy
// errors additionally carry the tags of the immediate children, since with
// a flat child list the field names alone rarely identify the problem.
func (p *legacyParser) parseNode(raw rawNode) (ast.Node, error) {
	kind, err := raw.str("name")
	if err != nil {
		return nil, &NodeError{Format: FormatLegacy, Fields: raw.fields(), Err: err}
	}
	if p.depth >= p.maxDepth {
		return nil, &NodeError{Format: FormatLegacy, Kind: kind, Fields: raw.fields(), Children: legacyChildTags(raw), Err: ErrMaxDepth}
	}
	p.depth++
	node, err := p.parseKind(kind, raw)
	p.depth--
	if err != nil {
		var nodeErr *NodeError
		if errors.As(err, &nodeErr) {
			return nil, err
		}
		return nil, &NodeError{Format: FormatLegacy, Kind: kind, Fields: raw.fields(), Children: legacyChildTags(raw), Err: err}
	}
	return node, nil
}

func (p *legacyParser) parseKind(kind string, raw rawNode) (ast.Node, error) {
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
	// VariableDefinitionStatement is the pre-0.4.7 tag for the same node.
	case "VariableDeclarationStatement", "VariableDefinitionStatement":
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

// legacyNodeMeta extracts the id/src header. The legacy root is special:
// it carries neither, so it gets the RootID sentinel and an empty range.
func legacyNodeMeta(raw rawNode, kind string) (ast.NodeMeta, error) {
	if kind == "SourceUnit" {
		return ast.NodeMeta{ID: ast.RootID, Src: ""}, nil
	}
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

// legacyAttributes returns the attributes object, or an empty one when the
// compiler omitted it, so required attribute reads fail with a clear
// missing-field cause instead of a missing-attributes one.
func legacyAttributes(raw rawNode) (rawNode, error) {
	return raw.objectOr("attributes")
}

// legacyDeclMeta extracts the declaration header. Old compilers leave
// visibility implicit, and everything implicit was public back then.
func legacyDeclMeta(raw rawNode, kind string) (ast.NodeMeta, ast.DeclMeta, rawNode, error) {
	meta, err := legacyNodeMeta(raw, kind)
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, nil, err
	}
	name, err := attrs.str("name")
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, nil, err
	}
	canonical, err := attrs.strOr("canonicalName", "")
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, nil, err
	}
	visibility, err := attrs.strOr("visibility", "public")
	if err != nil {
		return ast.NodeMeta{}, ast.DeclMeta{}, nil, err
	}
	return meta, ast.DeclMeta{Name: name, CanonicalName: &canonical, Visibility: visibility}, attrs, nil
}

// legacyExprMeta extracts the expression header. The type string sits in
// attributes under "type"; constness and purity flags are attached there
// too on the compiler versions that emit them.
func legacyExprMeta(raw rawNode, kind string) (ast.NodeMeta, ast.ExprMeta, rawNode, error) {
	meta, err := legacyNodeMeta(raw, kind)
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, nil, err
	}
	typeString, err := attrs.nullableStr("type")
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, nil, err
	}
	constant, err := attrs.boolOr("isConstant", false)
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, nil, err
	}
	pure, err := attrs.boolOr("isPure", false)
	if err != nil {
		return ast.NodeMeta{}, ast.ExprMeta{}, nil, err
	}
	return meta, ast.ExprMeta{TypeString: strOrEmpty(typeString), Constant: constant, Pure: pure}, attrs, nil
}

// legacyChildren reads the flat child list; an absent or null list is the
// same as an empty one.
func legacyChildren(raw rawNode) ([]rawNode, error) {
	return raw.childListOr("children")
}

// requireChildren enforces a kind's minimum arity before any child is
// parsed. A list that is too short cannot be attributed to grammar slots.
func requireChildren(kind string, children []rawNode, min int) error {
	if len(children) < min {
		return fmt.Errorf("%w: %s needs at least %d children, got %d", ErrAmbiguousChildList, kind, min, len(children))
	}
	return nil
}

// parseChildren parses every element of a flat child list in order.
func (p *legacyParser) parseChildren(children []rawNode) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func legacyChildTags(raw rawNode) []string {
	list, ok := raw["children"].([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(list))
	for _, v := range list {
		child, ok := v.(map[string]any)
		if !ok {
			tags = append(tags, "?")
			continue
		}
		if name, ok := child["name"].(string); ok {
			tags = append(tags, name)
		} else {
			tags = append(tags, "?")
		}
	}
	return tags
}

// Positional capability checks applied to parsed children.

func expressionAt(kind string, nodes []ast.Node, i int) (ast.Expression, error) {
	expr, ok := nodes[i].(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%w: %s child %d holds %s, want an expression", ErrMalformedNode, kind, i, nodes[i].NodeType())
	}
	return expr, nil
}

func statementAt(kind string, nodes []ast.Node, i int) (ast.Statement, error) {
	stmt, ok := nodes[i].(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("%w: %s child %d holds %s, want a statement", ErrMalformedNode, kind, i, nodes[i].NodeType())
	}
	return stmt, nil
}

func typeNameAt(kind string, nodes []ast.Node, i int) (ast.TypeName, error) {
	typ, ok := nodes[i].(ast.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s child %d holds %s, want a type name", ErrMalformedNode, kind, i, nodes[i].NodeType())
	}
	return typ, nil
}

func blockAt(kind string, nodes []ast.Node, i int) (*ast.Block, error) {
	block, ok := nodes[i].(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("%w: %s child %d holds %s, want %s", ErrMalformedNode, kind, i, nodes[i].NodeType(), ast.NodeBlock)
	}
	return block, nil
}

func parameterListAt(kind string, nodes []ast.Node, i int) (*ast.ParameterList, error) {
	list, ok := nodes[i].(*ast.ParameterList)
	if !ok {
		return nil, fmt.Errorf("%w: %s child %d holds %s, want %s", ErrMalformedNode, kind, i, nodes[i].NodeType(), ast.NodeParameterList)
	}
	return list, nil
}
