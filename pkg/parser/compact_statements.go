package parser

import (
	"fmt"

	"solast/pkg/ast"
)

// parseInlineAssembly carries the assembly body through opaquely. Modern
// compilers attach a structured Yul tree under "AST"; 0.4-era output holds
// a flat string under "operations". Neither is interpreted here.
func (p *compactParser) parseInlineAssembly(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	payload, ok := raw["AST"]
	if !ok {
		if payload, ok = raw["operations"]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedNode, "AST")
		}
	}
	return ast.NewInlineAssembly(meta, payload), nil
}

func (p *compactParser) parseBlock(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	children, err := raw.childList("statements")
	if err != nil {
		return nil, err
	}
	statements := make([]ast.Statement, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want a statement", ErrMalformedNode, "statements", node.NodeType())
		}
		statements = append(statements, stmt)
	}
	return ast.NewBlock(meta, statements), nil
}

func (p *compactParser) parsePlaceholderStatement(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	return ast.NewPlaceholderStatement(meta), nil
}

func (p *compactParser) parseIfStatement(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	condition, err := p.expression(raw, "condition")
	if err != nil {
		return nil, err
	}
	trueBody, err := p.statement(raw, "trueBody")
	if err != nil {
		return nil, err
	}
	falseBody, err := p.optStatement(raw, "falseBody")
	if err != nil {
		return nil, err
	}
	return ast.NewIfStatement(meta, condition, trueBody, falseBody), nil
}

func (p *compactParser) parseTryCatchClause(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	errorName, err := raw.str("errorName")
	if err != nil {
		return nil, err
	}
	var parameters *ast.ParameterList
	if child, err := raw.optChild("parameters"); err != nil {
		return nil, err
	} else if child != nil {
		if parameters, err = p.parameterList(raw, "parameters"); err != nil {
			return nil, err
		}
	}
	block, err := p.block(raw, "block")
	if err != nil {
		return nil, err
	}
	return ast.NewTryCatchClause(meta, errorName, parameters, block), nil
}

func (p *compactParser) parseTryStatement(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	externalCall, err := p.expression(raw, "externalCall")
	if err != nil {
		return nil, err
	}
	children, err := raw.childList("clauses")
	if err != nil {
		return nil, err
	}
	clauses := make([]*ast.TryCatchClause, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		clause, ok := node.(*ast.TryCatchClause)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, "clauses", node.NodeType(), ast.NodeTryCatchClause)
		}
		clauses = append(clauses, clause)
	}
	return ast.NewTryStatement(meta, externalCall, clauses), nil
}

func (p *compactParser) parseWhileStatement(raw rawNode, isDoWhile bool) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	condition, err := p.expression(raw, "condition")
	if err != nil {
		return nil, err
	}
	body, err := p.statement(raw, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(meta, condition, body, isDoWhile), nil
}

// parseForStatement reads the three header parts as optional: for (;;) {}
// is legal and the compiler emits null or omits each absent part.
func (p *compactParser) parseForStatement(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	init, err := p.optStatement(raw, "initializationExpression")
	if err != nil {
		return nil, err
	}
	condition, err := p.optExpression(raw, "condition")
	if err != nil {
		return nil, err
	}
	var loop *ast.ExpressionStatement
	if child, err := raw.optChild("loopExpression"); err != nil {
		return nil, err
	} else if child != nil {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		if loop, err = asExpressionStatement(node, "loopExpression"); err != nil {
			return nil, err
		}
	}
	body, err := p.statement(raw, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewForStatement(meta, init, condition, loop, body), nil
}

func (p *compactParser) parseContinue(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	return ast.NewContinue(meta), nil
}

func (p *compactParser) parseBreak(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	return ast.NewBreak(meta), nil
}

func (p *compactParser) parseReturn(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	expression, err := p.optExpression(raw, "expression")
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(meta, expression), nil
}

func (p *compactParser) parseThrow(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	return ast.NewThrow(meta), nil
}

func (p *compactParser) parseEmitStatement(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	child, err := raw.child("eventCall")
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	call, ok := node.(*ast.FunctionCall)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, "eventCall", node.NodeType(), ast.NodeFunctionCall)
	}
	return ast.NewEmitStatement(meta, call), nil
}

// parseVariableDeclarationStatement keeps null slots in the declarations
// list: in tuple destructuring like (a, , c) = f() the skipped position is
// part of the statement's meaning.
func (p *compactParser) parseVariableDeclarationStatement(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	slots, err := raw.list("declarations")
	if err != nil {
		return nil, err
	}
	variables := make([]*ast.VariableDeclaration, len(slots))
	for i, slot := range slots {
		if slot == nil {
			continue
		}
		child, ok := slot.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: field %q element %d holds %T, want object or null", ErrMalformedNode, "declarations", i, slot)
		}
		node, err := p.parseNode(rawNode(child))
		if err != nil {
			return nil, err
		}
		variable, ok := node.(*ast.VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, "declarations", node.NodeType(), ast.NodeVariableDeclaration)
		}
		variables[i] = variable
	}
	initialValue, err := p.optExpression(raw, "initialValue")
	if err != nil {
		return nil, err
	}
	return ast.NewVariableDeclarationStatement(meta, variables, initialValue), nil
}

func (p *compactParser) parseExpressionStatement(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	expression, err := p.expression(raw, "expression")
	if err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(meta, expression), nil
}

func asExpressionStatement(node ast.Node, key string) (*ast.ExpressionStatement, error) {
	stmt, ok := node.(*ast.ExpressionStatement)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, key, node.NodeType(), ast.NodeExpressionStatement)
	}
	return stmt, nil
}
