package ast

// Definitions

// SourceUnit is the root of every parsed document. Its declaration header
// is empty; a legacy root additionally carries the RootID sentinel because
// the legacy format gives the root no id or source range of its own.
type SourceUnit struct {
	nodeImpl
	DeclMeta

	Nodes []Node `json:"nodes"`
}

func NewSourceUnit(meta NodeMeta, nodes []Node) *SourceUnit {
	return &SourceUnit{nodeImpl: newNodeImpl(NodeSourceUnit, meta), Nodes: nodes}
}

type PragmaDirective struct {
	nodeImpl

	Literals []string `json:"literals"`
}

func NewPragmaDirective(meta NodeMeta, literals []string) *PragmaDirective {
	return &PragmaDirective{nodeImpl: newNodeImpl(NodePragmaDirective, meta), Literals: literals}
}

type ImportDirective struct {
	nodeImpl

	Path string `json:"absolutePath"`
}

func NewImportDirective(meta NodeMeta, path string) *ImportDirective {
	return &ImportDirective{nodeImpl: newNodeImpl(NodeImportDirective, meta), Path: path}
}

type ContractDefinition struct {
	nodeImpl
	DeclMeta

	Kind                    string `json:"contractKind"`
	LinearizedBaseContracts []int  `json:"linearizedBaseContracts"`
	Nodes                   []Node `json:"nodes"`
}

func NewContractDefinition(meta NodeMeta, decl DeclMeta, kind string, linearized []int, nodes []Node) *ContractDefinition {
	return &ContractDefinition{nodeImpl: newNodeImpl(NodeContractDefinition, meta), DeclMeta: decl, Kind: kind, LinearizedBaseContracts: linearized, Nodes: nodes}
}

// InheritanceSpecifier's Arguments are nil when the base contract is named
// without a constructor argument list.
type InheritanceSpecifier struct {
	nodeImpl

	BaseName  *UserDefinedTypeName `json:"baseName"`
	Arguments []Expression         `json:"arguments,omitempty"`
}

func NewInheritanceSpecifier(meta NodeMeta, baseName *UserDefinedTypeName, arguments []Expression) *InheritanceSpecifier {
	return &InheritanceSpecifier{nodeImpl: newNodeImpl(NodeInheritanceSpecifier, meta), BaseName: baseName, Arguments: arguments}
}

// UsingForDirective's TypeName is nil for the wildcard form
// `using Library for *`.
type UsingForDirective struct {
	nodeImpl

	Library  *UserDefinedTypeName `json:"libraryName"`
	TypeName TypeName             `json:"typeName,omitempty"`
}

func NewUsingForDirective(meta NodeMeta, library *UserDefinedTypeName, typeName TypeName) *UsingForDirective {
	return &UsingForDirective{nodeImpl: newNodeImpl(NodeUsingForDirective, meta), Library: library, TypeName: typeName}
}

type StructDefinition struct {
	nodeImpl
	DeclMeta

	Members []*VariableDeclaration `json:"members"`
}

func NewStructDefinition(meta NodeMeta, decl DeclMeta, members []*VariableDeclaration) *StructDefinition {
	return &StructDefinition{nodeImpl: newNodeImpl(NodeStructDefinition, meta), DeclMeta: decl, Members: members}
}

type EnumDefinition struct {
	nodeImpl
	DeclMeta

	Members []*EnumValue `json:"members"`
}

func NewEnumDefinition(meta NodeMeta, decl DeclMeta, members []*EnumValue) *EnumDefinition {
	return &EnumDefinition{nodeImpl: newNodeImpl(NodeEnumDefinition, meta), DeclMeta: decl, Members: members}
}

type EnumValue struct {
	nodeImpl
	DeclMeta
}

func NewEnumValue(meta NodeMeta, decl DeclMeta) *EnumValue {
	return &EnumValue{nodeImpl: newNodeImpl(NodeEnumValue, meta), DeclMeta: decl}
}

// ParameterList preserves slot presence: a legacy encoding may omit an
// unnamed parameter as a null placeholder, which stays a nil element here
// rather than being compacted away.
type ParameterList struct {
	nodeImpl

	Parameters []*VariableDeclaration `json:"parameters"`
}

func NewParameterList(meta NodeMeta, parameters []*VariableDeclaration) *ParameterList {
	return &ParameterList{nodeImpl: newNodeImpl(NodeParameterList, meta), Parameters: parameters}
}

// FunctionDefinition carries its raw mutability and call-kind strings
// verbatim ("payable", "view", "constructor", "fallback", ...). Body is nil
// for unimplemented functions.
type FunctionDefinition struct {
	nodeImpl
	CallableMeta

	Mutability string                `json:"stateMutability"`
	Kind       string                `json:"kind"`
	Modifiers  []*ModifierInvocation `json:"modifiers"`
	Body       *Block                `json:"body,omitempty"`
}

func NewFunctionDefinition(meta NodeMeta, callable CallableMeta, mutability, kind string, modifiers []*ModifierInvocation, body *Block) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition, meta), CallableMeta: callable, Mutability: mutability, Kind: kind, Modifiers: modifiers, Body: body}
}

// VariableDeclaration's TypeName is nil only for pre-0.5 `var`
// declarations; Indexed is set only for event parameters.
type VariableDeclaration struct {
	nodeImpl
	DeclMeta

	TypeName        TypeName   `json:"typeName"`
	Value           Expression `json:"value,omitempty"`
	TypeString      string     `json:"typeString"`
	Constant        bool       `json:"constant"`
	StateVariable   bool       `json:"stateVariable"`
	StorageLocation string     `json:"storageLocation,omitempty"`
	Indexed         *bool      `json:"indexed,omitempty"`
}

func NewVariableDeclaration(meta NodeMeta, decl DeclMeta, typeName TypeName, value Expression, typeString string, constant bool) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration, meta), DeclMeta: decl, TypeName: typeName, Value: value, TypeString: typeString, Constant: constant}
}

type ModifierDefinition struct {
	nodeImpl
	CallableMeta

	Body *Block `json:"body"`
}

func NewModifierDefinition(meta NodeMeta, callable CallableMeta, body *Block) *ModifierDefinition {
	return &ModifierDefinition{nodeImpl: newNodeImpl(NodeModifierDefinition, meta), CallableMeta: callable, Body: body}
}

// ModifierInvocation's Arguments are nil both when absent and when the raw
// form carries an empty list.
type ModifierInvocation struct {
	nodeImpl

	Name      *Identifier  `json:"modifierName"`
	Arguments []Expression `json:"arguments,omitempty"`
}

func NewModifierInvocation(meta NodeMeta, name *Identifier, arguments []Expression) *ModifierInvocation {
	return &ModifierInvocation{nodeImpl: newNodeImpl(NodeModifierInvocation, meta), Name: name, Arguments: arguments}
}

type EventDefinition struct {
	nodeImpl
	CallableMeta

	Anonymous bool `json:"anonymous"`
}

func NewEventDefinition(meta NodeMeta, callable CallableMeta, anonymous bool) *EventDefinition {
	return &EventDefinition{nodeImpl: newNodeImpl(NodeEventDefinition, meta), CallableMeta: callable, Anonymous: anonymous}
}
