package parser

import (
	"fmt"

	"solast/pkg/ast"
)

func (p *compactParser) parseConditional(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	condition, err := p.expression(raw, "condition")
	if err != nil {
		return nil, err
	}
	trueExpr, err := p.expression(raw, "trueExpression")
	if err != nil {
		return nil, err
	}
	falseExpr, err := p.expression(raw, "falseExpression")
	if err != nil {
		return nil, err
	}
	return ast.NewConditional(meta, expr, condition, trueExpr, falseExpr), nil
}

func (p *compactParser) parseAssignment(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	operator, err := raw.str("operator")
	if err != nil {
		return nil, err
	}
	left, err := p.expression(raw, "leftHandSide")
	if err != nil {
		return nil, err
	}
	right, err := p.expression(raw, "rightHandSide")
	if err != nil {
		return nil, err
	}
	return ast.NewAssignment(meta, expr, left, operator, right), nil
}

// parseTupleExpression keeps null slots in the component list; (a, , c)
// has a hole in the middle and the positions matter.
func (p *compactParser) parseTupleExpression(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	isInlineArray, err := raw.boolean("isInlineArray")
	if err != nil {
		return nil, err
	}
	slots, err := raw.list("components")
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
			return nil, fmt.Errorf("%w: field %q element %d holds %T, want object or null", ErrMalformedNode, "components", i, slot)
		}
		node, err := p.parseNode(rawNode(child))
		if err != nil {
			return nil, err
		}
		component, ok := node.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want an expression", ErrMalformedNode, "components", node.NodeType())
		}
		components[i] = component
	}
	return ast.NewTupleExpression(meta, expr, components, isInlineArray), nil
}

func (p *compactParser) parseUnaryOperation(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	operator, err := raw.str("operator")
	if err != nil {
		return nil, err
	}
	sub, err := p.expression(raw, "subExpression")
	if err != nil {
		return nil, err
	}
	prefix, err := raw.boolean("prefix")
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryOperation(meta, expr, operator, sub, prefix), nil
}

func (p *compactParser) parseBinaryOperation(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	left, err := p.expression(raw, "leftExpression")
	if err != nil {
		return nil, err
	}
	operator, err := raw.str("operator")
	if err != nil {
		return nil, err
	}
	right, err := p.expression(raw, "rightExpression")
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOperation(meta, expr, left, operator, right), nil
}

func (p *compactParser) parseFunctionCall(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	kind, err := raw.str("kind")
	if err != nil {
		return nil, err
	}
	callee, err := p.expression(raw, "expression")
	if err != nil {
		return nil, err
	}
	names, err := raw.strList("names")
	if err != nil {
		return nil, err
	}
	arguments, err := p.expressionList(raw, "arguments")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionCall(meta, expr, kind, callee, names, arguments), nil
}

func (p *compactParser) parseFunctionCallOptions(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	callee, err := p.expression(raw, "expression")
	if err != nil {
		return nil, err
	}
	names, err := raw.strList("names")
	if err != nil {
		return nil, err
	}
	options, err := p.expressionList(raw, "options")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionCallOptions(meta, expr, callee, names, options), nil
}

func (p *compactParser) parseNewExpression(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	typeName, err := p.typeName(raw, "typeName")
	if err != nil {
		return nil, err
	}
	return ast.NewNewExpression(meta, expr, typeName), nil
}

func (p *compactParser) parseMemberAccess(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	object, err := p.expression(raw, "expression")
	if err != nil {
		return nil, err
	}
	memberName, err := raw.str("memberName")
	if err != nil {
		return nil, err
	}
	return ast.NewMemberAccess(meta, expr, object, memberName), nil
}

// parseIndexAccess allows a missing index: abi.decode(data, (uint[]))
// mentions uint[] through an IndexAccess with no index expression.
func (p *compactParser) parseIndexAccess(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	base, err := p.expression(raw, "baseExpression")
	if err != nil {
		return nil, err
	}
	index, err := p.optExpression(raw, "indexExpression")
	if err != nil {
		return nil, err
	}
	return ast.NewIndexAccess(meta, expr, base, index), nil
}

func (p *compactParser) parseIndexRangeAccess(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	base, err := p.expression(raw, "baseExpression")
	if err != nil {
		return nil, err
	}
	start, err := p.optExpression(raw, "startExpression")
	if err != nil {
		return nil, err
	}
	end, err := p.optExpression(raw, "endExpression")
	if err != nil {
		return nil, err
	}
	return ast.NewIndexRangeAccess(meta, expr, base, start, end), nil
}

func (p *compactParser) parseIdentifier(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	name, err := raw.str("name")
	if err != nil {
		return nil, err
	}
	return ast.NewIdentifier(meta, expr, name), nil
}

func (p *compactParser) parseElementaryTypeNameExpression(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	child, err := raw.child("typeName")
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	typeName, ok := node.(*ast.ElementaryTypeName)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, "typeName", node.NodeType(), ast.NodeElementaryTypeName)
	}
	return ast.NewElementaryTypeNameExpression(meta, expr, typeName), nil
}

// parseLiteral: value is null for hex string literals whose bytes do not
// form valid UTF-8, and subdenomination is null unless a unit suffix like
// wei or days is present. Both keys are always emitted.
func (p *compactParser) parseLiteral(raw rawNode) (ast.Node, error) {
	meta, expr, err := compactExprMeta(raw)
	if err != nil {
		return nil, err
	}
	kind, err := raw.str("kind")
	if err != nil {
		return nil, err
	}
	value, err := raw.nullableStr("value")
	if err != nil {
		return nil, err
	}
	hexValue, err := raw.str("hexValue")
	if err != nil {
		return nil, err
	}
	subdenomination, err := raw.nullableStr("subdenomination")
	if err != nil {
		return nil, err
	}
	return ast.NewLiteral(meta, expr, kind, value, hexValue, subdenomination), nil
}
