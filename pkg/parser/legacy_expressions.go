package parser

import (
	"fmt"

	"solast/pkg/ast"
)

func (p *legacyParser) parseConditional(raw rawNode) (ast.Node, error) {
	meta, expr, _, err := legacyExprMeta(raw, "Conditional")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("Conditional", children, 3); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	condition, err := expressionAt("Conditional", nodes, 0)
	if err != nil {
		return nil, err
	}
	trueExpr, err := expressionAt("Conditional", nodes, 1)
	if err != nil {
		return nil, err
	}
	falseExpr, err := expressionAt("Conditional", nodes, 2)
	if err != nil {
		return nil, err
	}
	return ast.NewConditional(meta, expr, condition, trueExpr, falseExpr), nil
}

func (p *legacyParser) parseAssignment(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "Assignment")
	if err != nil {
		return nil, err
	}
	operator, err := attrs.str("operator")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("Assignment", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	left, err := expressionAt("Assignment", nodes, 0)
	if err != nil {
		return nil, err
	}
	right, err := expressionAt("Assignment", nodes, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewAssignment(meta, expr, left, operator, right), nil
}

func (p *legacyParser) parseTupleExpression(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "TupleExpression")
	if err != nil {
		return nil, err
	}
	isInlineArray, err := attrs.boolOr("isInlineArray", false)
	if err != nil {
		return nil, err
	}
	slots, err := raw.listOr("children")
	if err != nil {
		return nil, err
	}
	components := make([]ast.Expression, len(slots))
	for i, slot := range slots {
		if slot == nil {
			continue
		}
		child, ok := slot.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: TupleExpression child %d holds %T, want object or null", ErrMalformedNode, i, slot)
		}
		node, err := p.parseNode(rawNode(child))
		if err != nil {
			return nil, err
		}
		component, ok := node.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("%w: TupleExpression child %d holds %s, want an expression", ErrMalformedNode, i, node.NodeType())
		}
		components[i] = component
	}
	return ast.NewTupleExpression(meta, expr, components, isInlineArray), nil
}

func (p *legacyParser) parseUnaryOperation(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "UnaryOperation")
	if err != nil {
		return nil, err
	}
	operator, err := attrs.str("operator")
	if err != nil {
		return nil, err
	}
	prefix, err := attrs.boolean("prefix")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("UnaryOperation", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children[:1])
	if err != nil {
		return nil, err
	}
	sub, err := expressionAt("UnaryOperation", nodes, 0)
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryOperation(meta, expr, operator, sub, prefix), nil
}

func (p *legacyParser) parseBinaryOperation(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "BinaryOperation")
	if err != nil {
		return nil, err
	}
	operator, err := attrs.str("operator")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("BinaryOperation", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	left, err := expressionAt("BinaryOperation", nodes, 0)
	if err != nil {
		return nil, err
	}
	right, err := expressionAt("BinaryOperation", nodes, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOperation(meta, expr, left, operator, right), nil
}

// parseFunctionCall: the callee is the first child and every further child
// is an argument. The call kind is not stored directly on older output and
// goes through the presence-based resolution chain.
func (p *legacyParser) parseFunctionCall(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "FunctionCall")
	if err != nil {
		return nil, err
	}
	kind, err := resolveCallKind(attrs, expr.TypeString)
	if err != nil {
		return nil, err
	}
	names, err := resolveCallNames(attrs)
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("FunctionCall", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	callee, err := expressionAt("FunctionCall", nodes, 0)
	if err != nil {
		return nil, err
	}
	arguments := make([]ast.Expression, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		argument, err := expressionAt("FunctionCall", nodes, i)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
	}
	return ast.NewFunctionCall(meta, expr, kind, callee, names, arguments), nil
}

func (p *legacyParser) parseFunctionCallOptions(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "FunctionCallOptions")
	if err != nil {
		return nil, err
	}
	names, err := attrs.strList("names")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("FunctionCallOptions", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	callee, err := expressionAt("FunctionCallOptions", nodes, 0)
	if err != nil {
		return nil, err
	}
	options := make([]ast.Expression, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		option, err := expressionAt("FunctionCallOptions", nodes, i)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return ast.NewFunctionCallOptions(meta, expr, callee, names, options), nil
}

func (p *legacyParser) parseNewExpression(raw rawNode) (ast.Node, error) {
	meta, expr, _, err := legacyExprMeta(raw, "NewExpression")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("NewExpression", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children[:1])
	if err != nil {
		return nil, err
	}
	typeName, err := typeNameAt("NewExpression", nodes, 0)
	if err != nil {
		return nil, err
	}
	return ast.NewNewExpression(meta, expr, typeName), nil
}

func (p *legacyParser) parseMemberAccess(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "MemberAccess")
	if err != nil {
		return nil, err
	}
	memberName, err := attrs.str("member_name")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("MemberAccess", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children[:1])
	if err != nil {
		return nil, err
	}
	object, err := expressionAt("MemberAccess", nodes, 0)
	if err != nil {
		return nil, err
	}
	return ast.NewMemberAccess(meta, expr, object, memberName), nil
}

func (p *legacyParser) parseIndexAccess(raw rawNode) (ast.Node, error) {
	meta, expr, _, err := legacyExprMeta(raw, "IndexAccess")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("IndexAccess", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	base, err := expressionAt("IndexAccess", nodes, 0)
	if err != nil {
		return nil, err
	}
	var index ast.Expression
	if len(nodes) > 1 {
		if index, err = expressionAt("IndexAccess", nodes, 1); err != nil {
			return nil, err
		}
	}
	return ast.NewIndexAccess(meta, expr, base, index), nil
}

func (p *legacyParser) parseIndexRangeAccess(raw rawNode) (ast.Node, error) {
	meta, expr, _, err := legacyExprMeta(raw, "IndexRangeAccess")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("IndexRangeAccess", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	base, err := expressionAt("IndexRangeAccess", nodes, 0)
	if err != nil {
		return nil, err
	}
	start, err := expressionAt("IndexRangeAccess", nodes, 1)
	if err != nil {
		return nil, err
	}
	var end ast.Expression
	if len(nodes) > 2 {
		if end, err = expressionAt("IndexRangeAccess", nodes, 2); err != nil {
			return nil, err
		}
	}
	return ast.NewIndexRangeAccess(meta, expr, base, start, end), nil
}

// parseIdentifier: the referenced name sits in the value attribute; the
// name attribute is the node tag itself in this format.
func (p *legacyParser) parseIdentifier(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "Identifier")
	if err != nil {
		return nil, err
	}
	name, err := attrs.str("value")
	if err != nil {
		return nil, err
	}
	return ast.NewIdentifier(meta, expr, name), nil
}

func (p *legacyParser) parseElementaryTypeNameExpression(raw rawNode) (ast.Node, error) {
	meta, expr, _, err := legacyExprMeta(raw, "ElementaryTypeNameExpression")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("ElementaryTypeNameExpression", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children[:1])
	if err != nil {
		return nil, err
	}
	typeName, ok := nodes[0].(*ast.ElementaryTypeName)
	if !ok {
		return nil, fmt.Errorf("%w: ElementaryTypeNameExpression child 0 holds %s, want %s", ErrMalformedNode, nodes[0].NodeType(), ast.NodeElementaryTypeName)
	}
	return ast.NewElementaryTypeNameExpression(meta, expr, typeName), nil
}

// parseLiteral: the literal kind is stored under token, and hexvalue is
// all lowercase in this format. All four attributes are emitted for every
// literal, with null standing in where a value does not apply.
func (p *legacyParser) parseLiteral(raw rawNode) (ast.Node, error) {
	meta, expr, attrs, err := legacyExprMeta(raw, "Literal")
	if err != nil {
		return nil, err
	}
	token, err := attrs.nullableStr("token")
	if err != nil {
		return nil, err
	}
	value, err := attrs.nullableStr("value")
	if err != nil {
		return nil, err
	}
	hexValue, err := attrs.nullableStr("hexvalue")
	if err != nil {
		return nil, err
	}
	subdenomination, err := attrs.nullableStr("subdenomination")
	if err != nil {
		return nil, err
	}
	return ast.NewLiteral(meta, expr, strOrEmpty(token), value, strOrEmpty(hexValue), subdenomination), nil
}
