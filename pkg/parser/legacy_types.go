package parser

import (
	"solast/pkg/ast"
)

func (p *legacyParser) parseElementaryTypeName(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ElementaryTypeName")
	if err != nil {
		return nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return nil, err
	}
	name, err := attrs.str("name")
	if err != nil {
		return nil, err
	}
	mutability, err := resolveElementaryMutability(attrs, name)
	if err != nil {
		return nil, err
	}
	return ast.NewElementaryTypeName(meta, name, mutability), nil
}

func (p *legacyParser) parseUserDefinedTypeName(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "UserDefinedTypeName")
	if err != nil {
		return nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return nil, err
	}
	name, err := attrs.str("name")
	if err != nil {
		return nil, err
	}
	return ast.NewUserDefinedTypeName(meta, name), nil
}

func (p *legacyParser) parseFunctionTypeName(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "FunctionTypeName")
	if err != nil {
		return nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return nil, err
	}
	mutability, err := resolveFunctionMutability(attrs)
	if err != nil {
		return nil, err
	}
	visibility, err := attrs.strOr("visibility", "")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("FunctionTypeName", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	parameters, err := parameterListAt("FunctionTypeName", nodes, 0)
	if err != nil {
		return nil, err
	}
	returns, err := parameterListAt("FunctionTypeName", nodes, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionTypeName(meta, parameters, returns, mutability, visibility), nil
}

func (p *legacyParser) parseMapping(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "Mapping")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("Mapping", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	keyType, err := typeNameAt("Mapping", nodes, 0)
	if err != nil {
		return nil, err
	}
	valueType, err := typeNameAt("Mapping", nodes, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewMapping(meta, keyType, valueType), nil
}

func (p *legacyParser) parseArrayTypeName(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ArrayTypeName")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("ArrayTypeName", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	baseType, err := typeNameAt("ArrayTypeName", nodes, 0)
	if err != nil {
		return nil, err
	}
	var length ast.Expression
	if len(nodes) > 1 {
		if length, err = expressionAt("ArrayTypeName", nodes, 1); err != nil {
			return nil, err
		}
	}
	return ast.NewArrayTypeName(meta, baseType, length), nil
}
