package parser

import (
	"fmt"

	"solast/pkg/ast"
)

func (p *legacyParser) parseInlineAssembly(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "InlineAssembly")
	if err != nil {
		return nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return nil, err
	}
	operations, err := attrs.str("operations")
	if err != nil {
		return nil, err
	}
	return ast.NewInlineAssembly(meta, operations), nil
}

func (p *legacyParser) parseBlock(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "Block")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	statements := make([]ast.Statement, 0, len(nodes))
	for i := range nodes {
		stmt, err := statementAt("Block", nodes, i)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return ast.NewBlock(meta, statements), nil
}

func (p *legacyParser) parsePlaceholderStatement(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "PlaceholderStatement")
	if err != nil {
		return nil, err
	}
	return ast.NewPlaceholderStatement(meta), nil
}

func (p *legacyParser) parseIfStatement(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "IfStatement")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("IfStatement", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	condition, err := expressionAt("IfStatement", nodes, 0)
	if err != nil {
		return nil, err
	}
	trueBody, err := statementAt("IfStatement", nodes, 1)
	if err != nil {
		return nil, err
	}
	var falseBody ast.Statement
	if len(nodes) > 2 {
		if falseBody, err = statementAt("IfStatement", nodes, 2); err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(meta, condition, trueBody, falseBody), nil
}

// parseTryCatchClause: a catch-all clause has just the block; a clause
// binding error data carries its parameter list first.
func (p *legacyParser) parseTryCatchClause(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "TryCatchClause")
	if err != nil {
		return nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return nil, err
	}
	errorName, err := attrs.strOr("errorName", "")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("TryCatchClause", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	var parameters *ast.ParameterList
	if len(nodes) > 1 {
		if parameters, err = parameterListAt("TryCatchClause", nodes, 0); err != nil {
			return nil, err
		}
	}
	block, err := blockAt("TryCatchClause", nodes, len(nodes)-1)
	if err != nil {
		return nil, err
	}
	return ast.NewTryCatchClause(meta, errorName, parameters, block), nil
}

func (p *legacyParser) parseTryStatement(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "TryStatement")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("TryStatement", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	externalCall, err := expressionAt("TryStatement", nodes, 0)
	if err != nil {
		return nil, err
	}
	clauses := make([]*ast.TryCatchClause, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		clause, ok := nodes[i].(*ast.TryCatchClause)
		if !ok {
			return nil, fmt.Errorf("%w: TryStatement child %d holds %s, want %s", ErrMalformedNode, i, nodes[i].NodeType(), ast.NodeTryCatchClause)
		}
		clauses = append(clauses, clause)
	}
	return ast.NewTryStatement(meta, externalCall, clauses), nil
}

func (p *legacyParser) parseWhileStatement(raw rawNode, isDoWhile bool) (ast.Node, error) {
	kind := "WhileStatement"
	if isDoWhile {
		kind = "DoWhileStatement"
	}
	meta, err := legacyNodeMeta(raw, kind)
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren(kind, children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	condition, err := expressionAt(kind, nodes, 0)
	if err != nil {
		return nil, err
	}
	body, err := statementAt(kind, nodes, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(meta, condition, body, isDoWhile), nil
}

func (p *legacyParser) parseForStatement(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ForStatement")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("ForStatement", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	init, condition, loop, body, err := classifyForChildren(nodes)
	if err != nil {
		return nil, err
	}
	return ast.NewForStatement(meta, init, condition, loop, body), nil
}

// classifyForChildren attributes a for statement's flat child list to its
// grammar slots. The last child is always the body; the leading children
// are a subsequence of [init, condition, loop] and are told apart by
// concrete type: a declaration statement can only be the init, a bare
// expression can only be the condition, and an expression statement is the
// init when something follows it, the loop when it sits last. One leading
// expression statement alone is unrecoverable: for (x = 0; ;) and
// for (; ; x++) produce identical trees.
func classifyForChildren(nodes []ast.Node) (ast.Statement, ast.Expression, *ast.ExpressionStatement, ast.Statement, error) {
	body, err := statementAt("ForStatement", nodes, len(nodes)-1)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	leading := nodes[:len(nodes)-1]

	var init ast.Statement
	var condition ast.Expression
	var loop *ast.ExpressionStatement
	switch len(leading) {
	case 0:
	case 1:
		switch first := leading[0].(type) {
		case *ast.VariableDeclarationStatement:
			init = first
		case *ast.ExpressionStatement:
			return nil, nil, nil, nil, fmt.Errorf("%w: ForStatement with one leading expression statement, could be init or loop", ErrAmbiguousChildList)
		default:
			if condition, err = expressionAt("ForStatement", leading, 0); err != nil {
				return nil, nil, nil, nil, err
			}
		}
	case 2:
		switch first := leading[0].(type) {
		case *ast.VariableDeclarationStatement:
			init = first
		case *ast.ExpressionStatement:
			init = first
		default:
			if condition, err = expressionAt("ForStatement", leading, 0); err != nil {
				return nil, nil, nil, nil, err
			}
		}
		if second, ok := leading[1].(*ast.ExpressionStatement); ok {
			loop = second
		} else if condition != nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: ForStatement child 1 holds %s, want %s", ErrMalformedNode, leading[1].NodeType(), ast.NodeExpressionStatement)
		} else if condition, err = expressionAt("ForStatement", leading, 1); err != nil {
			return nil, nil, nil, nil, err
		}
	case 3:
		if init, err = statementAt("ForStatement", leading, 0); err != nil {
			return nil, nil, nil, nil, err
		}
		if condition, err = expressionAt("ForStatement", leading, 1); err != nil {
			return nil, nil, nil, nil, err
		}
		last, ok := leading[2].(*ast.ExpressionStatement)
		if !ok {
			return nil, nil, nil, nil, fmt.Errorf("%w: ForStatement child 2 holds %s, want %s", ErrMalformedNode, leading[2].NodeType(), ast.NodeExpressionStatement)
		}
		loop = last
	default:
		return nil, nil, nil, nil, fmt.Errorf("%w: ForStatement has %d children before the body, want at most 3", ErrMalformedNode, len(leading))
	}
	return init, condition, loop, body, nil
}

func (p *legacyParser) parseContinue(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "Continue")
	if err != nil {
		return nil, err
	}
	return ast.NewContinue(meta), nil
}

func (p *legacyParser) parseBreak(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "Break")
	if err != nil {
		return nil, err
	}
	return ast.NewBreak(meta), nil
}

func (p *legacyParser) parseReturn(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "Return")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	var expression ast.Expression
	if len(children) > 0 {
		nodes, err := p.parseChildren(children[:1])
		if err != nil {
			return nil, err
		}
		if expression, err = expressionAt("Return", nodes, 0); err != nil {
			return nil, err
		}
	}
	return ast.NewReturn(meta, expression), nil
}

func (p *legacyParser) parseThrow(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "Throw")
	if err != nil {
		return nil, err
	}
	return ast.NewThrow(meta), nil
}

func (p *legacyParser) parseEmitStatement(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "EmitStatement")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("EmitStatement", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children[:1])
	if err != nil {
		return nil, err
	}
	call, ok := nodes[0].(*ast.FunctionCall)
	if !ok {
		return nil, fmt.Errorf("%w: EmitStatement child 0 holds %s, want %s", ErrMalformedNode, nodes[0].NodeType(), ast.NodeFunctionCall)
	}
	return ast.NewEmitStatement(meta, call), nil
}

// parseVariableDeclarationStatement: every child but possibly the last is
// a declared variable; whether the last child is another variable or the
// initializer expression is decided by its concrete type. The statement
// also answers to its pre-0.4.7 tag, VariableDefinitionStatement.
func (p *legacyParser) parseVariableDeclarationStatement(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "VariableDeclarationStatement")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("VariableDeclarationStatement", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	variables := make([]*ast.VariableDeclaration, 0, len(nodes))
	for i := range nodes[:len(nodes)-1] {
		variable, err := variableDeclarationAt("VariableDeclarationStatement", nodes, i)
		if err != nil {
			return nil, err
		}
		variables = append(variables, variable)
	}
	var initialValue ast.Expression
	last := nodes[len(nodes)-1]
	if variable, ok := last.(*ast.VariableDeclaration); ok {
		variables = append(variables, variable)
	} else if initialValue, err = expressionAt("VariableDeclarationStatement", nodes, len(nodes)-1); err != nil {
		return nil, err
	}
	return ast.NewVariableDeclarationStatement(meta, variables, initialValue), nil
}

func (p *legacyParser) parseExpressionStatement(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ExpressionStatement")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("ExpressionStatement", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children[:1])
	if err != nil {
		return nil, err
	}
	expression, err := expressionAt("ExpressionStatement", nodes, 0)
	if err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(meta, expression), nil
}
