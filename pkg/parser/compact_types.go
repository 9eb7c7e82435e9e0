package parser

import (
	"solast/pkg/ast"
)

// parseElementaryTypeName: stateMutability appears only on address types
// from 0.5.0 on ("payable" or "nonpayable"); its absence is meaningful and
// kept distinct from an explicit value.
func (p *compactParser) parseElementaryTypeName(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	name, err := raw.str("name")
	if err != nil {
		return nil, err
	}
	var mutability *string
	if raw.has("stateMutability") {
		value, err := raw.str("stateMutability")
		if err != nil {
			return nil, err
		}
		mutability = &value
	}
	return ast.NewElementaryTypeName(meta, name, mutability), nil
}

// parseUserDefinedTypeName: 0.8.0 moved the referenced name under a
// pathNode child; earlier compact output holds it in a top-level field.
func (p *compactParser) parseUserDefinedTypeName(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	var name string
	if raw.has("name") {
		if name, err = raw.str("name"); err != nil {
			return nil, err
		}
	} else {
		path, err := raw.object("pathNode")
		if err != nil {
			return nil, err
		}
		if name, err = path.str("name"); err != nil {
			return nil, err
		}
	}
	return ast.NewUserDefinedTypeName(meta, name), nil
}

func (p *compactParser) parseFunctionTypeName(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	parameters, err := p.parameterList(raw, "parameterTypes")
	if err != nil {
		return nil, err
	}
	returns, err := p.parameterList(raw, "returnParameterTypes")
	if err != nil {
		return nil, err
	}
	mutability, err := raw.str("stateMutability")
	if err != nil {
		return nil, err
	}
	visibility, err := raw.str("visibility")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionTypeName(meta, parameters, returns, mutability, visibility), nil
}

func (p *compactParser) parseMapping(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	keyType, err := p.typeName(raw, "keyType")
	if err != nil {
		return nil, err
	}
	valueType, err := p.typeName(raw, "valueType")
	if err != nil {
		return nil, err
	}
	return ast.NewMapping(meta, keyType, valueType), nil
}

func (p *compactParser) parseArrayTypeName(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	baseType, err := p.typeName(raw, "baseType")
	if err != nil {
		return nil, err
	}
	length, err := p.optExpression(raw, "length")
	if err != nil {
		return nil, err
	}
	return ast.NewArrayTypeName(meta, baseType, length), nil
}
