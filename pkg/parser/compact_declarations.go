package parser

import (
	"fmt"

	"solast/pkg/ast"
)

func (p *compactParser) parseSourceUnit(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	nodes, err := p.nodeList(raw, "nodes")
	if err != nil {
		return nil, err
	}
	return ast.NewSourceUnit(meta, nodes), nil
}

func (p *compactParser) parsePragmaDirective(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	literals, err := raw.strList("literals")
	if err != nil {
		return nil, err
	}
	return ast.NewPragmaDirective(meta, literals), nil
}

func (p *compactParser) parseImportDirective(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	path, err := raw.str("absolutePath")
	if err != nil {
		return nil, err
	}
	return ast.NewImportDirective(meta, path), nil
}

func (p *compactParser) parseContractDefinition(raw rawNode) (ast.Node, error) {
	meta, decl, err := compactDeclMeta(raw)
	if err != nil {
		return nil, err
	}
	kind, err := raw.str("contractKind")
	if err != nil {
		return nil, err
	}
	linearized, err := raw.intList("linearizedBaseContracts")
	if err != nil {
		return nil, err
	}
	nodes, err := p.nodeList(raw, "nodes")
	if err != nil {
		return nil, err
	}
	return ast.NewContractDefinition(meta, decl, kind, linearized, nodes), nil
}

func (p *compactParser) parseInheritanceSpecifier(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	baseName, err := p.userDefinedTypeName(raw, "baseName")
	if err != nil {
		return nil, err
	}
	arguments, err := p.collapsedExpressionList(raw, "arguments")
	if err != nil {
		return nil, err
	}
	return ast.NewInheritanceSpecifier(meta, baseName, arguments), nil
}

// parseUsingForDirective handles both shapes of the directive: a bound
// type, and the wildcard form where typeName is null.
func (p *compactParser) parseUsingForDirective(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	library, err := p.userDefinedTypeName(raw, "libraryName")
	if err != nil {
		return nil, err
	}
	typeName, err := p.optTypeName(raw, "typeName")
	if err != nil {
		return nil, err
	}
	return ast.NewUsingForDirective(meta, library, typeName), nil
}

func (p *compactParser) parseStructDefinition(raw rawNode) (ast.Node, error) {
	meta, decl, err := compactDeclMeta(raw)
	if err != nil {
		return nil, err
	}
	members, err := p.variableDeclarationList(raw, "members")
	if err != nil {
		return nil, err
	}
	return ast.NewStructDefinition(meta, decl, members), nil
}

func (p *compactParser) parseEnumDefinition(raw rawNode) (ast.Node, error) {
	meta, decl, err := compactDeclMeta(raw)
	if err != nil {
		return nil, err
	}
	children, err := raw.childList("members")
	if err != nil {
		return nil, err
	}
	members := make([]*ast.EnumValue, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		value, ok := node.(*ast.EnumValue)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, "members", node.NodeType(), ast.NodeEnumValue)
		}
		members = append(members, value)
	}
	return ast.NewEnumDefinition(meta, decl, members), nil
}

func (p *compactParser) parseEnumValue(raw rawNode) (ast.Node, error) {
	meta, decl, err := compactDeclMeta(raw)
	if err != nil {
		return nil, err
	}
	return ast.NewEnumValue(meta, decl), nil
}

// parseParameterList keeps null slots: a parameter position can be
// syntactically present but empty, and downstream consumers match
// positions against call sites.
func (p *compactParser) parseParameterList(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	slots, err := raw.list("parameters")
	if err != nil {
		return nil, err
	}
	parameters := make([]*ast.VariableDeclaration, len(slots))
	for i, slot := range slots {
		if slot == nil {
			continue
		}
		child, ok := slot.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: field %q element %d holds %T, want object or null", ErrMalformedNode, "parameters", i, slot)
		}
		node, err := p.parseNode(rawNode(child))
		if err != nil {
			return nil, err
		}
		variable, ok := node.(*ast.VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, "parameters", node.NodeType(), ast.NodeVariableDeclaration)
		}
		parameters[i] = variable
	}
	return ast.NewParameterList(meta, parameters), nil
}

func (p *compactParser) parseFunctionDefinition(raw rawNode) (ast.Node, error) {
	meta, callable, err := p.callableMeta(raw)
	if err != nil {
		return nil, err
	}
	mutability, err := raw.str("stateMutability")
	if err != nil {
		return nil, err
	}
	kind, err := raw.str("kind")
	if err != nil {
		return nil, err
	}
	modifiers, err := p.modifierInvocationList(raw, "modifiers")
	if err != nil {
		return nil, err
	}
	body, err := p.optBlock(raw, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(meta, callable, mutability, kind, modifiers, body), nil
}

func (p *compactParser) parseVariableDeclaration(raw rawNode) (ast.Node, error) {
	meta, decl, err := compactDeclMeta(raw)
	if err != nil {
		return nil, err
	}
	typeName, err := p.optTypeName(raw, "typeName")
	if err != nil {
		return nil, err
	}
	value, err := p.optExpression(raw, "value")
	if err != nil {
		return nil, err
	}
	descriptions, err := raw.object("typeDescriptions")
	if err != nil {
		return nil, err
	}
	typeString, err := descriptions.nullableStr("typeString")
	if err != nil {
		return nil, err
	}
	constant, err := raw.boolean("constant")
	if err != nil {
		return nil, err
	}
	variable := ast.NewVariableDeclaration(meta, decl, typeName, value, strOrEmpty(typeString), constant)
	if variable.StateVariable, err = raw.boolOr("stateVariable", false); err != nil {
		return nil, err
	}
	if variable.StorageLocation, err = raw.strOr("storageLocation", ""); err != nil {
		return nil, err
	}
	if raw.has("indexed") {
		indexed, err := raw.boolean("indexed")
		if err != nil {
			return nil, err
		}
		variable.Indexed = &indexed
	}
	return variable, nil
}

func (p *compactParser) parseModifierDefinition(raw rawNode) (ast.Node, error) {
	meta, callable, err := p.callableMeta(raw)
	if err != nil {
		return nil, err
	}
	body, err := p.block(raw, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewModifierDefinition(meta, callable, body), nil
}

func (p *compactParser) parseModifierInvocation(raw rawNode) (ast.Node, error) {
	meta, err := compactNodeMeta(raw)
	if err != nil {
		return nil, err
	}
	name, err := p.identifier(raw, "modifierName")
	if err != nil {
		return nil, err
	}
	arguments, err := p.collapsedExpressionList(raw, "arguments")
	if err != nil {
		return nil, err
	}
	return ast.NewModifierInvocation(meta, name, arguments), nil
}

func (p *compactParser) parseEventDefinition(raw rawNode) (ast.Node, error) {
	meta, callable, err := p.callableMeta(raw)
	if err != nil {
		return nil, err
	}
	anonymous, err := raw.boolean("anonymous")
	if err != nil {
		return nil, err
	}
	return ast.NewEventDefinition(meta, callable, anonymous), nil
}

func (p *compactParser) variableDeclarationList(raw rawNode, key string) ([]*ast.VariableDeclaration, error) {
	children, err := raw.childList(key)
	if err != nil {
		return nil, err
	}
	out := make([]*ast.VariableDeclaration, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		variable, ok := node.(*ast.VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, key, node.NodeType(), ast.NodeVariableDeclaration)
		}
		out = append(out, variable)
	}
	return out, nil
}

func (p *compactParser) modifierInvocationList(raw rawNode, key string) ([]*ast.ModifierInvocation, error) {
	children, err := raw.childList(key)
	if err != nil {
		return nil, err
	}
	out := make([]*ast.ModifierInvocation, 0, len(children))
	for _, child := range children {
		node, err := p.parseNode(child)
		if err != nil {
			return nil, err
		}
		invocation, ok := node.(*ast.ModifierInvocation)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, key, node.NodeType(), ast.NodeModifierInvocation)
		}
		out = append(out, invocation)
	}
	return out, nil
}

func (p *compactParser) userDefinedTypeName(raw rawNode, key string) (*ast.UserDefinedTypeName, error) {
	child, err := raw.child(key)
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	name, ok := node.(*ast.UserDefinedTypeName)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, key, node.NodeType(), ast.NodeUserDefinedTypeName)
	}
	return name, nil
}

func (p *compactParser) identifier(raw rawNode, key string) (*ast.Identifier, error) {
	child, err := raw.child(key)
	if err != nil {
		return nil, err
	}
	node, err := p.parseNode(child)
	if err != nil {
		return nil, err
	}
	ident, ok := node.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s", ErrMalformedNode, key, node.NodeType(), ast.NodeIdentifier)
	}
	return ident, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
