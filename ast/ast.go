package ast

// Loc identifies where a node came from: a source file identifier and a
// 1-based line number. The evaluator copies it into diagnostic frames.
type Loc struct {
	File string
	Line int
}

// Node is the interface all AST nodes implement.
type Node interface {
	Pos() Loc
	nodeType() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) Pos() Loc {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return Loc{File: p.File, Line: 1}
}
func (p *Program) nodeType() string { return "Program" }

// ---------- Statements ----------

type ExpressionStatement struct {
	Loc        Loc
	Expression Expression
}

type ReturnStatement struct {
	Loc      Loc
	Argument Expression // may be nil
}

type BlockStatement struct {
	Loc        Loc
	Statements []Statement
}

type VariableDeclaration struct {
	Loc          Loc
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	Loc  Loc
	Name string
	Init Expression // may be nil
}

type FunctionDeclaration struct {
	Loc Loc
	Fn  *FunctionLiteral
}

// ---------- Expressions ----------

type Identifier struct {
	Loc  Loc
	Name string
}

type NumberLiteral struct {
	Loc   Loc
	Value float64
}

type StringLiteral struct {
	Loc   Loc
	Value string
}

type BooleanLiteral struct {
	Loc   Loc
	Value bool
}

type NullLiteral struct {
	Loc Loc
}

type ThisExpression struct {
	Loc Loc
}

type ArrayLiteral struct {
	Loc      Loc
	Elements []Expression
}

type ObjectLiteral struct {
	Loc        Loc
	Properties []*ObjectProperty
}

type ObjectProperty struct {
	Loc   Loc
	Key   string
	Value Expression
}

// FunctionLiteral is shared by function declarations and function
// expressions; Name is empty for anonymous functions.
type FunctionLiteral struct {
	Loc    Loc
	Name   string
	Params []string
	Body   *BlockStatement
}

type UnaryExpression struct {
	Loc      Loc
	Operator string
	Operand  Expression
}

type BinaryExpression struct {
	Loc      Loc
	Operator string
	Left     Expression
	Right    Expression
}

type AssignmentExpression struct {
	Loc      Loc
	Operator string
	Left     Expression
	Right    Expression
}

type ConditionalExpression struct {
	Loc        Loc
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

type CallExpression struct {
	Loc       Loc
	Callee    Expression
	Arguments []Expression
}

type NewExpression struct {
	Loc       Loc
	Callee    Expression
	Arguments []Expression
}

// MemberExpression is dot access: obj.name.
type MemberExpression struct {
	Loc      Loc
	Object   Expression
	Property string
}

// IndexExpression is bracket access: obj[index].
type IndexExpression struct {
	Loc    Loc
	Object Expression
	Index  Expression
}

type SequenceExpression struct {
	Loc         Loc
	Expressions []Expression
}

// --- Node interface implementations ---

func (s *ExpressionStatement) statementNode() {}
func (s *ReturnStatement) statementNode()     {}
func (s *BlockStatement) statementNode()      {}
func (s *VariableDeclaration) statementNode() {}
func (s *FunctionDeclaration) statementNode() {}

func (e *Identifier) expressionNode()            {}
func (e *NumberLiteral) expressionNode()         {}
func (e *StringLiteral) expressionNode()         {}
func (e *BooleanLiteral) expressionNode()        {}
func (e *NullLiteral) expressionNode()           {}
func (e *ThisExpression) expressionNode()        {}
func (e *ArrayLiteral) expressionNode()          {}
func (e *ObjectLiteral) expressionNode()         {}
func (e *FunctionLiteral) expressionNode()       {}
func (e *UnaryExpression) expressionNode()       {}
func (e *BinaryExpression) expressionNode()      {}
func (e *AssignmentExpression) expressionNode()  {}
func (e *ConditionalExpression) expressionNode() {}
func (e *CallExpression) expressionNode()        {}
func (e *NewExpression) expressionNode()         {}
func (e *MemberExpression) expressionNode()      {}
func (e *IndexExpression) expressionNode()       {}
func (e *SequenceExpression) expressionNode()    {}

func (s *ExpressionStatement) Pos() Loc { return s.Loc }
func (s *ReturnStatement) Pos() Loc     { return s.Loc }
func (s *BlockStatement) Pos() Loc      { return s.Loc }
func (s *VariableDeclaration) Pos() Loc { return s.Loc }
func (s *VariableDeclarator) Pos() Loc  { return s.Loc }
func (s *FunctionDeclaration) Pos() Loc { return s.Loc }

func (e *Identifier) Pos() Loc            { return e.Loc }
func (e *NumberLiteral) Pos() Loc         { return e.Loc }
func (e *StringLiteral) Pos() Loc         { return e.Loc }
func (e *BooleanLiteral) Pos() Loc        { return e.Loc }
func (e *NullLiteral) Pos() Loc           { return e.Loc }
func (e *ThisExpression) Pos() Loc        { return e.Loc }
func (e *ArrayLiteral) Pos() Loc          { return e.Loc }
func (e *ObjectLiteral) Pos() Loc         { return e.Loc }
func (e *ObjectProperty) Pos() Loc        { return e.Loc }
func (e *FunctionLiteral) Pos() Loc       { return e.Loc }
func (e *UnaryExpression) Pos() Loc       { return e.Loc }
func (e *BinaryExpression) Pos() Loc      { return e.Loc }
func (e *AssignmentExpression) Pos() Loc  { return e.Loc }
func (e *ConditionalExpression) Pos() Loc { return e.Loc }
func (e *CallExpression) Pos() Loc        { return e.Loc }
func (e *NewExpression) Pos() Loc         { return e.Loc }
func (e *MemberExpression) Pos() Loc      { return e.Loc }
func (e *IndexExpression) Pos() Loc       { return e.Loc }
func (e *SequenceExpression) Pos() Loc    { return e.Loc }

func (s *ExpressionStatement) nodeType() string { return "ExpressionStatement" }
func (s *ReturnStatement) nodeType() string     { return "ReturnStatement" }
func (s *BlockStatement) nodeType() string      { return "BlockStatement" }
func (s *VariableDeclaration) nodeType() string { return "VariableDeclaration" }
func (s *VariableDeclarator) nodeType() string  { return "VariableDeclarator" }
func (s *FunctionDeclaration) nodeType() string { return "FunctionDeclaration" }

func (e *Identifier) nodeType() string            { return "Identifier" }
func (e *NumberLiteral) nodeType() string         { return "NumberLiteral" }
func (e *StringLiteral) nodeType() string         { return "StringLiteral" }
func (e *BooleanLiteral) nodeType() string        { return "BooleanLiteral" }
func (e *NullLiteral) nodeType() string           { return "NullLiteral" }
func (e *ThisExpression) nodeType() string        { return "ThisExpression" }
func (e *ArrayLiteral) nodeType() string          { return "ArrayLiteral" }
func (e *ObjectLiteral) nodeType() string         { return "ObjectLiteral" }
func (e *ObjectProperty) nodeType() string        { return "ObjectProperty" }
func (e *FunctionLiteral) nodeType() string       { return "FunctionLiteral" }
func (e *UnaryExpression) nodeType() string       { return "UnaryExpression" }
func (e *BinaryExpression) nodeType() string      { return "BinaryExpression" }
func (e *AssignmentExpression) nodeType() string  { return "AssignmentExpression" }
func (e *ConditionalExpression) nodeType() string { return "ConditionalExpression" }
func (e *CallExpression) nodeType() string        { return "CallExpression" }
func (e *NewExpression) nodeType() string         { return "NewExpression" }
func (e *MemberExpression) nodeType() string      { return "MemberExpression" }
func (e *IndexExpression) nodeType() string       { return "IndexExpression" }
func (e *SequenceExpression) nodeType() string    { return "SequenceExpression" }
