package ast

type NodeType string

const (
	NodeSourceUnit                   NodeType = "SourceUnit"
	NodePragmaDirective              NodeType = "PragmaDirective"
	NodeImportDirective              NodeType = "ImportDirective"
	NodeContractDefinition           NodeType = "ContractDefinition"
	NodeInheritanceSpecifier         NodeType = "InheritanceSpecifier"
	NodeUsingForDirective            NodeType = "UsingForDirective"
	NodeStructDefinition             NodeType = "StructDefinition"
	NodeEnumDefinition               NodeType = "EnumDefinition"
	NodeEnumValue                    NodeType = "EnumValue"
	NodeParameterList                NodeType = "ParameterList"
	NodeFunctionDefinition           NodeType = "FunctionDefinition"
	NodeVariableDeclaration          NodeType = "VariableDeclaration"
	NodeModifierDefinition           NodeType = "ModifierDefinition"
	NodeModifierInvocation           NodeType = "ModifierInvocation"
	NodeEventDefinition              NodeType = "EventDefinition"
	NodeElementaryTypeName           NodeType = "ElementaryTypeName"
	NodeUserDefinedTypeName          NodeType = "UserDefinedTypeName"
	NodeFunctionTypeName             NodeType = "FunctionTypeName"
	NodeMapping                      NodeType = "Mapping"
	NodeArrayTypeName                NodeType = "ArrayTypeName"
	NodeInlineAssembly               NodeType = "InlineAssembly"
	NodeBlock                        NodeType = "Block"
	NodePlaceholderStatement         NodeType = "PlaceholderStatement"
	NodeIfStatement                  NodeType = "IfStatement"
	NodeTryCatchClause               NodeType = "TryCatchClause"
	NodeTryStatement                 NodeType = "TryStatement"
	NodeWhileStatement               NodeType = "WhileStatement"
	NodeForStatement                 NodeType = "ForStatement"
	NodeContinue                     NodeType = "Continue"
	NodeBreak                        NodeType = "Break"
	NodeReturn                       NodeType = "Return"
	NodeThrow                        NodeType = "Throw"
	NodeEmitStatement                NodeType = "EmitStatement"
	NodeVariableDeclarationStatement NodeType = "VariableDeclarationStatement"
	NodeExpressionStatement          NodeType = "ExpressionStatement"
	NodeConditional                  NodeType = "Conditional"
	NodeAssignment                   NodeType = "Assignment"
	NodeTupleExpression              NodeType = "TupleExpression"
	NodeUnaryOperation               NodeType = "UnaryOperation"
	NodeBinaryOperation              NodeType = "BinaryOperation"
	NodeFunctionCall                 NodeType = "FunctionCall"
	NodeFunctionCallOptions          NodeType = "FunctionCallOptions"
	NodeNewExpression                NodeType = "NewExpression"
	NodeMemberAccess                 NodeType = "MemberAccess"
	NodeIndexAccess                  NodeType = "IndexAccess"
	NodeIndexRangeAccess             NodeType = "IndexRangeAccess"
	NodeIdentifier                   NodeType = "Identifier"
	NodeElementaryTypeNameExpression NodeType = "ElementaryTypeNameExpression"
	NodeLiteral                      NodeType = "Literal"
)

// RootID is the synthesized id of a root node whose raw form carries none
// (the legacy SourceUnit).
const RootID = -1

// NodeMeta is the header every node carries: the compiler-assigned id and
// the opaque "offset:length:fileIndex" source range, passed through
// uninterpreted.
type NodeMeta struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
}

type Node interface {
	NodeType() NodeType
	Meta() NodeMeta
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"nodeType"`
	NodeMeta
}

func newNodeImpl(kind NodeType, meta NodeMeta) nodeImpl {
	return nodeImpl{Type: kind, NodeMeta: meta}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Meta() NodeMeta     { return n.NodeMeta }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// ExprMeta carries the fields shared by every expression node. TypeString
// is the compiler's textual type descriptor ("" when the compiler emitted
// null); Constant and Pure default to false when the raw form omits them.
type ExprMeta struct {
	TypeString string `json:"typeString"`
	Constant   bool   `json:"isConstant,omitempty"`
	Pure       bool   `json:"isPure,omitempty"`
}

func (ExprMeta) expressionNode() {}

type Expression interface {
	Node
	expressionNode()
}

// DeclMeta carries the fields shared by every declaration node.
// CanonicalName is nil when the producing compiler predates the attribute;
// Visibility is "" when the raw form leaves it unset.
type DeclMeta struct {
	Name          string  `json:"name"`
	CanonicalName *string `json:"canonicalName,omitempty"`
	Visibility    string  `json:"visibility,omitempty"`
}

func (d DeclMeta) DeclName() string { return d.Name }
func (DeclMeta) declarationNode()   {}

type Declaration interface {
	Node
	DeclName() string
	declarationNode()
}

// CallableMeta extends DeclMeta for definitions with a parameter list.
// Returns is nil when the raw form has no return list at all (modifiers,
// events).
type CallableMeta struct {
	DeclMeta
	Parameters *ParameterList `json:"parameters"`
	Returns    *ParameterList `json:"returnParameters,omitempty"`
}

type TypeName interface {
	Node
	typeNameNode()
}

type typeNameMarker struct{}

func (typeNameMarker) typeNameNode() {}

// Expressions

type Identifier struct {
	nodeImpl
	ExprMeta

	Name string `json:"name"`
}

func NewIdentifier(meta NodeMeta, expr ExprMeta, name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier, meta), ExprMeta: expr, Name: name}
}

type Literal struct {
	nodeImpl
	ExprMeta

	Kind            string  `json:"kind"`
	Value           *string `json:"value"`
	HexValue        string  `json:"hexValue"`
	Subdenomination *string `json:"subdenomination,omitempty"`
}

func NewLiteral(meta NodeMeta, expr ExprMeta, kind string, value *string, hexValue string, subdenomination *string) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral, meta), ExprMeta: expr, Kind: kind, Value: value, HexValue: hexValue, Subdenomination: subdenomination}
}

type Assignment struct {
	nodeImpl
	ExprMeta

	Left     Expression `json:"leftHandSide"`
	Operator string     `json:"operator"`
	Right    Expression `json:"rightHandSide"`
}

func NewAssignment(meta NodeMeta, expr ExprMeta, left Expression, operator string, right Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment, meta), ExprMeta: expr, Left: left, Operator: operator, Right: right}
}

type BinaryOperation struct {
	nodeImpl
	ExprMeta

	Left     Expression `json:"leftExpression"`
	Operator string     `json:"operator"`
	Right    Expression `json:"rightExpression"`
}

func NewBinaryOperation(meta NodeMeta, expr ExprMeta, left Expression, operator string, right Expression) *BinaryOperation {
	return &BinaryOperation{nodeImpl: newNodeImpl(NodeBinaryOperation, meta), ExprMeta: expr, Left: left, Operator: operator, Right: right}
}

type UnaryOperation struct {
	nodeImpl
	ExprMeta

	Operator      string     `json:"operator"`
	SubExpression Expression `json:"subExpression"`
	Prefix        bool       `json:"prefix"`
}

func NewUnaryOperation(meta NodeMeta, expr ExprMeta, operator string, sub Expression, prefix bool) *UnaryOperation {
	return &UnaryOperation{nodeImpl: newNodeImpl(NodeUnaryOperation, meta), ExprMeta: expr, Operator: operator, SubExpression: sub, Prefix: prefix}
}

type Conditional struct {
	nodeImpl
	ExprMeta

	Condition       Expression `json:"condition"`
	TrueExpression  Expression `json:"trueExpression"`
	FalseExpression Expression `json:"falseExpression"`
}

func NewConditional(meta NodeMeta, expr ExprMeta, condition, trueExpr, falseExpr Expression) *Conditional {
	return &Conditional{nodeImpl: newNodeImpl(NodeConditional, meta), ExprMeta: expr, Condition: condition, TrueExpression: trueExpr, FalseExpression: falseExpr}
}

// TupleExpression preserves syntactically empty slots as nil components,
// e.g. (a, , b).
type TupleExpression struct {
	nodeImpl
	ExprMeta

	Components    []Expression `json:"components"`
	IsInlineArray bool         `json:"isInlineArray,omitempty"`
}

func NewTupleExpression(meta NodeMeta, expr ExprMeta, components []Expression, isInlineArray bool) *TupleExpression {
	return &TupleExpression{nodeImpl: newNodeImpl(NodeTupleExpression, meta), ExprMeta: expr, Components: components, IsInlineArray: isInlineArray}
}

type FunctionCall struct {
	nodeImpl
	ExprMeta

	Kind       string       `json:"kind"`
	Expression Expression   `json:"expression"`
	Names      []string     `json:"names"`
	Arguments  []Expression `json:"arguments"`
}

func NewFunctionCall(meta NodeMeta, expr ExprMeta, kind string, callee Expression, names []string, arguments []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall, meta), ExprMeta: expr, Kind: kind, Expression: callee, Names: names, Arguments: arguments}
}

type FunctionCallOptions struct {
	nodeImpl
	ExprMeta

	Expression Expression   `json:"expression"`
	Names      []string     `json:"names"`
	Options    []Expression `json:"options"`
}

func NewFunctionCallOptions(meta NodeMeta, expr ExprMeta, callee Expression, names []string, options []Expression) *FunctionCallOptions {
	return &FunctionCallOptions{nodeImpl: newNodeImpl(NodeFunctionCallOptions, meta), ExprMeta: expr, Expression: callee, Names: names, Options: options}
}

type NewExpression struct {
	nodeImpl
	ExprMeta

	TypeName TypeName `json:"typeName"`
}

func NewNewExpression(meta NodeMeta, expr ExprMeta, typeName TypeName) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression, meta), ExprMeta: expr, TypeName: typeName}
}

type MemberAccess struct {
	nodeImpl
	ExprMeta

	Expression Expression `json:"expression"`
	MemberName string     `json:"memberName"`
}

func NewMemberAccess(meta NodeMeta, expr ExprMeta, object Expression, memberName string) *MemberAccess {
	return &MemberAccess{nodeImpl: newNodeImpl(NodeMemberAccess, meta), ExprMeta: expr, Expression: object, MemberName: memberName}
}

type IndexAccess struct {
	nodeImpl
	ExprMeta

	Base  Expression `json:"baseExpression"`
	Index Expression `json:"indexExpression,omitempty"`
}

func NewIndexAccess(meta NodeMeta, expr ExprMeta, base, index Expression) *IndexAccess {
	return &IndexAccess{nodeImpl: newNodeImpl(NodeIndexAccess, meta), ExprMeta: expr, Base: base, Index: index}
}

type IndexRangeAccess struct {
	nodeImpl
	ExprMeta

	Base  Expression `json:"baseExpression"`
	Start Expression `json:"startExpression"`
	End   Expression `json:"endExpression,omitempty"`
}

func NewIndexRangeAccess(meta NodeMeta, expr ExprMeta, base, start, end Expression) *IndexRangeAccess {
	return &IndexRangeAccess{nodeImpl: newNodeImpl(NodeIndexRangeAccess, meta), ExprMeta: expr, Base: base, Start: start, End: end}
}

type ElementaryTypeNameExpression struct {
	nodeImpl
	ExprMeta

	TypeName *ElementaryTypeName `json:"typeName"`
}

func NewElementaryTypeNameExpression(meta NodeMeta, expr ExprMeta, typeName *ElementaryTypeName) *ElementaryTypeNameExpression {
	return &ElementaryTypeNameExpression{nodeImpl: newNodeImpl(NodeElementaryTypeNameExpression, meta), ExprMeta: expr, TypeName: typeName}
}

// Statements

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(meta NodeMeta, statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, meta), Statements: statements}
}

// PlaceholderStatement is the `_` marker inside a modifier body.
type PlaceholderStatement struct {
	nodeImpl
	statementMarker
}

func NewPlaceholderStatement(meta NodeMeta) *PlaceholderStatement {
	return &PlaceholderStatement{nodeImpl: newNodeImpl(NodePlaceholderStatement, meta)}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	TrueBody  Statement  `json:"trueBody"`
	FalseBody Statement  `json:"falseBody,omitempty"`
}

func NewIfStatement(meta NodeMeta, condition Expression, trueBody, falseBody Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement, meta), Condition: condition, TrueBody: trueBody, FalseBody: falseBody}
}

type TryCatchClause struct {
	nodeImpl

	ErrorName  string         `json:"errorName"`
	Parameters *ParameterList `json:"parameters,omitempty"`
	Block      *Block         `json:"block"`
}

func NewTryCatchClause(meta NodeMeta, errorName string, parameters *ParameterList, block *Block) *TryCatchClause {
	return &TryCatchClause{nodeImpl: newNodeImpl(NodeTryCatchClause, meta), ErrorName: errorName, Parameters: parameters, Block: block}
}

type TryStatement struct {
	nodeImpl
	statementMarker

	ExternalCall Expression        `json:"externalCall"`
	Clauses      []*TryCatchClause `json:"clauses"`
}

func NewTryStatement(meta NodeMeta, externalCall Expression, clauses []*TryCatchClause) *TryStatement {
	return &TryStatement{nodeImpl: newNodeImpl(NodeTryStatement, meta), ExternalCall: externalCall, Clauses: clauses}
}

// WhileStatement covers both while and do-while loops; the raw tags differ
// but the shape is identical.
type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
	IsDoWhile bool       `json:"isDoWhile,omitempty"`
}

func NewWhileStatement(meta NodeMeta, condition Expression, body Statement, isDoWhile bool) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement, meta), Condition: condition, Body: body, IsDoWhile: isDoWhile}
}

type ForStatement struct {
	nodeImpl
	statementMarker

	Init      Statement            `json:"initializationExpression,omitempty"`
	Condition Expression           `json:"condition,omitempty"`
	Loop      *ExpressionStatement `json:"loopExpression,omitempty"`
	Body      Statement            `json:"body"`
}

func NewForStatement(meta NodeMeta, init Statement, condition Expression, loop *ExpressionStatement, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement, meta), Init: init, Condition: condition, Loop: loop, Body: body}
}

type Continue struct {
	nodeImpl
	statementMarker
}

func NewContinue(meta NodeMeta) *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue, meta)}
}

type Break struct {
	nodeImpl
	statementMarker
}

func NewBreak(meta NodeMeta) *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak, meta)}
}

type Return struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression,omitempty"`
}

func NewReturn(meta NodeMeta, expression Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn, meta), Expression: expression}
}

type Throw struct {
	nodeImpl
	statementMarker
}

func NewThrow(meta NodeMeta) *Throw {
	return &Throw{nodeImpl: newNodeImpl(NodeThrow, meta)}
}

type EmitStatement struct {
	nodeImpl
	statementMarker

	EventCall *FunctionCall `json:"eventCall"`
}

func NewEmitStatement(meta NodeMeta, eventCall *FunctionCall) *EmitStatement {
	return &EmitStatement{nodeImpl: newNodeImpl(NodeEmitStatement, meta), EventCall: eventCall}
}

// VariableDeclarationStatement preserves omitted tuple-destructuring slots
// as nil variables, e.g. (x, , y) = f().
type VariableDeclarationStatement struct {
	nodeImpl
	statementMarker

	Variables    []*VariableDeclaration `json:"declarations"`
	InitialValue Expression             `json:"initialValue,omitempty"`
}

func NewVariableDeclarationStatement(meta NodeMeta, variables []*VariableDeclaration, initialValue Expression) *VariableDeclarationStatement {
	return &VariableDeclarationStatement{nodeImpl: newNodeImpl(NodeVariableDeclarationStatement, meta), Variables: variables, InitialValue: initialValue}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(meta NodeMeta, expression Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement, meta), Expression: expression}
}

// InlineAssembly carries its assembly payload opaquely: the raw Yul subtree
// for newer compilers, the flat operations string for older ones. It is
// never parsed further.
type InlineAssembly struct {
	nodeImpl
	statementMarker

	Payload any `json:"payload,omitempty"`
}

func NewInlineAssembly(meta NodeMeta, payload any) *InlineAssembly {
	return &InlineAssembly{nodeImpl: newNodeImpl(NodeInlineAssembly, meta), Payload: payload}
}

// Type names

type ElementaryTypeName struct {
	nodeImpl
	typeNameMarker

	Name       string  `json:"name"`
	Mutability *string `json:"stateMutability,omitempty"`
}

func NewElementaryTypeName(meta NodeMeta, name string, mutability *string) *ElementaryTypeName {
	return &ElementaryTypeName{nodeImpl: newNodeImpl(NodeElementaryTypeName, meta), Name: name, Mutability: mutability}
}

type UserDefinedTypeName struct {
	nodeImpl
	typeNameMarker

	Name string `json:"name"`
}

func NewUserDefinedTypeName(meta NodeMeta, name string) *UserDefinedTypeName {
	return &UserDefinedTypeName{nodeImpl: newNodeImpl(NodeUserDefinedTypeName, meta), Name: name}
}

type FunctionTypeName struct {
	nodeImpl
	typeNameMarker

	Parameters *ParameterList `json:"parameterTypes"`
	Returns    *ParameterList `json:"returnParameterTypes"`
	Mutability string         `json:"stateMutability"`
	Visibility string         `json:"visibility"`
}

func NewFunctionTypeName(meta NodeMeta, parameters, returns *ParameterList, mutability, visibility string) *FunctionTypeName {
	return &FunctionTypeName{nodeImpl: newNodeImpl(NodeFunctionTypeName, meta), Parameters: parameters, Returns: returns, Mutability: mutability, Visibility: visibility}
}

type Mapping struct {
	nodeImpl
	typeNameMarker

	KeyType   TypeName `json:"keyType"`
	ValueType TypeName `json:"valueType"`
}

func NewMapping(meta NodeMeta, keyType, valueType TypeName) *Mapping {
	return &Mapping{nodeImpl: newNodeImpl(NodeMapping, meta), KeyType: keyType, ValueType: valueType}
}

type ArrayTypeName struct {
	nodeImpl
	typeNameMarker

	BaseType TypeName   `json:"baseType"`
	Length   Expression `json:"length,omitempty"`
}

func NewArrayTypeName(meta NodeMeta, baseType TypeName, length Expression) *ArrayTypeName {
	return &ArrayTypeName{nodeImpl: newNodeImpl(NodeArrayTypeName, meta), BaseType: baseType, Length: length}
}
