package parser

import (
	"fmt"

	"solast/pkg/ast"
)

func (p *legacyParser) parseSourceUnit(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "SourceUnit")
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
	return ast.NewSourceUnit(meta, nodes), nil
}

func (p *legacyParser) parsePragmaDirective(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "PragmaDirective")
	if err != nil {
		return nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return nil, err
	}
	literals, err := attrs.strList("literals")
	if err != nil {
		return nil, err
	}
	return ast.NewPragmaDirective(meta, literals), nil
}

func (p *legacyParser) parseImportDirective(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ImportDirective")
	if err != nil {
		return nil, err
	}
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return nil, err
	}
	path, err := resolveImportPath(attrs)
	if err != nil {
		return nil, err
	}
	return ast.NewImportDirective(meta, path), nil
}

// parseContractDefinition: the children hold base contracts and member
// definitions interleaved, and a contract with neither has no child list
// at all.
func (p *legacyParser) parseContractDefinition(raw rawNode) (ast.Node, error) {
	meta, decl, attrs, err := legacyDeclMeta(raw, "ContractDefinition")
	if err != nil {
		return nil, err
	}
	kind, err := resolveContractKind(attrs)
	if err != nil {
		return nil, err
	}
	linearized, err := attrs.intList("linearizedBaseContracts")
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
	return ast.NewContractDefinition(meta, decl, kind, linearized, nodes), nil
}

func (p *legacyParser) parseInheritanceSpecifier(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "InheritanceSpecifier")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("InheritanceSpecifier", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	baseName, err := userDefinedTypeNameAt("InheritanceSpecifier", nodes, 0)
	if err != nil {
		return nil, err
	}
	var arguments []ast.Expression
	for i := 1; i < len(nodes); i++ {
		argument, err := expressionAt("InheritanceSpecifier", nodes, i)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
	}
	return ast.NewInheritanceSpecifier(meta, baseName, arguments), nil
}

func (p *legacyParser) parseUsingForDirective(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "UsingForDirective")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("UsingForDirective", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	library, err := userDefinedTypeNameAt("UsingForDirective", nodes, 0)
	if err != nil {
		return nil, err
	}
	var typeName ast.TypeName
	if len(nodes) > 1 {
		if typeName, err = typeNameAt("UsingForDirective", nodes, 1); err != nil {
			return nil, err
		}
	}
	return ast.NewUsingForDirective(meta, library, typeName), nil
}

func (p *legacyParser) parseStructDefinition(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "StructDefinition")
	if err != nil {
		return nil, err
	}
	decl, err := p.bareDeclMeta(raw)
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
	members := make([]*ast.VariableDeclaration, 0, len(nodes))
	for i := range nodes {
		member, err := variableDeclarationAt("StructDefinition", nodes, i)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return ast.NewStructDefinition(meta, decl, members), nil
}

func (p *legacyParser) parseEnumDefinition(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "EnumDefinition")
	if err != nil {
		return nil, err
	}
	decl, err := p.bareDeclMeta(raw)
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
	members := make([]*ast.EnumValue, 0, len(nodes))
	for i, node := range nodes {
		value, ok := node.(*ast.EnumValue)
		if !ok {
			return nil, fmt.Errorf("%w: EnumDefinition child %d holds %s, want %s", ErrMalformedNode, i, node.NodeType(), ast.NodeEnumValue)
		}
		members = append(members, value)
	}
	return ast.NewEnumDefinition(meta, decl, members), nil
}

func (p *legacyParser) parseEnumValue(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "EnumValue")
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
	return ast.NewEnumValue(meta, ast.DeclMeta{Name: name}), nil
}

// parseParameterList keeps null slots, same as the compact side.
func (p *legacyParser) parseParameterList(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ParameterList")
	if err != nil {
		return nil, err
	}
	slots, err := raw.listOr("children")
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
			return nil, fmt.Errorf("%w: ParameterList child %d holds %T, want object or null", ErrMalformedNode, i, slot)
		}
		node, err := p.parseNode(rawNode(child))
		if err != nil {
			return nil, err
		}
		variable, ok := node.(*ast.VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("%w: ParameterList child %d holds %s, want %s", ErrMalformedNode, i, node.NodeType(), ast.NodeVariableDeclaration)
		}
		parameters[i] = variable
	}
	return ast.NewParameterList(meta, parameters), nil
}

// parseFunctionDefinition: children are [parameters, returns, modifiers...,
// body], but the body is absent on unimplemented functions, so whether the
// trailing child is the body is decided by its concrete type.
func (p *legacyParser) parseFunctionDefinition(raw rawNode) (ast.Node, error) {
	meta, decl, attrs, err := legacyDeclMeta(raw, "FunctionDefinition")
	if err != nil {
		return nil, err
	}
	mutability, err := resolveFunctionMutability(attrs)
	if err != nil {
		return nil, err
	}
	kind, err := resolveFunctionKind(attrs, decl.Name)
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("FunctionDefinition", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	params, err := parameterListAt("FunctionDefinition", nodes, 0)
	if err != nil {
		return nil, err
	}
	returns, err := parameterListAt("FunctionDefinition", nodes, 1)
	if err != nil {
		return nil, err
	}
	trailing := nodes[2:]
	var body *ast.Block
	if len(trailing) > 0 {
		if block, ok := trailing[len(trailing)-1].(*ast.Block); ok {
			body = block
			trailing = trailing[:len(trailing)-1]
		}
	}
	var modifiers []*ast.ModifierInvocation
	for i, node := range trailing {
		invocation, ok := node.(*ast.ModifierInvocation)
		if !ok {
			return nil, fmt.Errorf("%w: FunctionDefinition child %d holds %s, want %s", ErrMalformedNode, i+2, node.NodeType(), ast.NodeModifierInvocation)
		}
		modifiers = append(modifiers, invocation)
	}
	callable := ast.CallableMeta{DeclMeta: decl, Parameters: params, Returns: returns}
	return ast.NewFunctionDefinition(meta, callable, mutability, kind, modifiers, body), nil
}

// parseVariableDeclaration: a declaration inside var-style statements may
// carry no type name at all; otherwise the type is the first child and an
// initializer, when inline, the second.
func (p *legacyParser) parseVariableDeclaration(raw rawNode) (ast.Node, error) {
	meta, decl, attrs, err := legacyDeclMeta(raw, "VariableDeclaration")
	if err != nil {
		return nil, err
	}
	typeString, err := attrs.nullableStr("type")
	if err != nil {
		return nil, err
	}
	constant, err := attrs.boolOr("constant", false)
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
	var typeName ast.TypeName
	var value ast.Expression
	if len(nodes) > 0 {
		if typeName, err = typeNameAt("VariableDeclaration", nodes, 0); err != nil {
			return nil, err
		}
	}
	if len(nodes) > 1 {
		if value, err = expressionAt("VariableDeclaration", nodes, 1); err != nil {
			return nil, err
		}
	}
	variable := ast.NewVariableDeclaration(meta, decl, typeName, value, strOrEmpty(typeString), constant)
	if variable.StateVariable, err = attrs.boolOr("stateVariable", false); err != nil {
		return nil, err
	}
	if variable.StorageLocation, err = attrs.strOr("storageLocation", ""); err != nil {
		return nil, err
	}
	if attrs.has("indexed") {
		indexed, err := attrs.boolean("indexed")
		if err != nil {
			return nil, err
		}
		variable.Indexed = &indexed
	}
	return variable, nil
}

func (p *legacyParser) parseModifierDefinition(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ModifierDefinition")
	if err != nil {
		return nil, err
	}
	decl, err := p.bareDeclMeta(raw)
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("ModifierDefinition", children, 2); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	params, err := parameterListAt("ModifierDefinition", nodes, 0)
	if err != nil {
		return nil, err
	}
	body, err := blockAt("ModifierDefinition", nodes, 1)
	if err != nil {
		return nil, err
	}
	callable := ast.CallableMeta{DeclMeta: decl, Parameters: params}
	return ast.NewModifierDefinition(meta, callable, body), nil
}

func (p *legacyParser) parseModifierInvocation(raw rawNode) (ast.Node, error) {
	meta, err := legacyNodeMeta(raw, "ModifierInvocation")
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("ModifierInvocation", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	name, ok := nodes[0].(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("%w: ModifierInvocation child 0 holds %s, want %s", ErrMalformedNode, nodes[0].NodeType(), ast.NodeIdentifier)
	}
	var arguments []ast.Expression
	for i := 1; i < len(nodes); i++ {
		argument, err := expressionAt("ModifierInvocation", nodes, i)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
	}
	return ast.NewModifierInvocation(meta, name, arguments), nil
}

func (p *legacyParser) parseEventDefinition(raw rawNode) (ast.Node, error) {
	meta, decl, attrs, err := legacyDeclMeta(raw, "EventDefinition")
	if err != nil {
		return nil, err
	}
	anonymous, err := attrs.boolOr("anonymous", false)
	if err != nil {
		return nil, err
	}
	children, err := legacyChildren(raw)
	if err != nil {
		return nil, err
	}
	if err := requireChildren("EventDefinition", children, 1); err != nil {
		return nil, err
	}
	nodes, err := p.parseChildren(children)
	if err != nil {
		return nil, err
	}
	params, err := parameterListAt("EventDefinition", nodes, 0)
	if err != nil {
		return nil, err
	}
	callable := ast.CallableMeta{DeclMeta: decl, Parameters: params}
	return ast.NewEventDefinition(meta, callable, anonymous), nil
}

// bareDeclMeta is for declaration kinds that never carry a canonical name
// or visibility in this format: structs, enums and modifier definitions.
func (p *legacyParser) bareDeclMeta(raw rawNode) (ast.DeclMeta, error) {
	attrs, err := legacyAttributes(raw)
	if err != nil {
		return ast.DeclMeta{}, err
	}
	name, err := attrs.str("name")
	if err != nil {
		return ast.DeclMeta{}, err
	}
	canonical, err := resolveCanonicalName(attrs)
	if err != nil {
		return ast.DeclMeta{}, err
	}
	return ast.DeclMeta{Name: name, CanonicalName: canonical}, nil
}

func userDefinedTypeNameAt(kind string, nodes []ast.Node, i int) (*ast.UserDefinedTypeName, error) {
	name, ok := nodes[i].(*ast.UserDefinedTypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s child %d holds %s, want %s", ErrMalformedNode, kind, i, nodes[i].NodeType(), ast.NodeUserDefinedTypeName)
	}
	return name, nil
}

func variableDeclarationAt(kind string, nodes []ast.Node, i int) (*ast.VariableDeclaration, error) {
	variable, ok := nodes[i].(*ast.VariableDeclaration)
	if !ok {
		return nil, fmt.Errorf("%w: %s child %d holds %s, want %s", ErrMalformedNode, kind, i, nodes[i].NodeType(), ast.NodeVariableDeclaration)
	}
	return variable, nil
}
