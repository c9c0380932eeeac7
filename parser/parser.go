package parser

import (
	"fmt"
	"strconv"

	"github.com/fadilhim/dartJSEngine/ast"
	"github.com/fadilhim/dartJSEngine/lexer"
	"github.com/fadilhim/dartJSEngine/token"
)

// Precedence levels for Pratt parsing
const (
	_ int = iota
	precComma
	precAssignment
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precCall
)

type Parser struct {
	file      string
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	errors    []error
}

// New builds a parser over source; file is the source identifier stamped
// into every node's location.
func New(file, source string) *Parser {
	p := &Parser{
		file: file,
		l:    lexer.New(source),
	}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) ParseProgram() (*ast.Program, []error) {
	program := &ast.Program{File: p.file}
	for p.curToken.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > 0 {
			break
		}
	}
	return program, p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) loc() ast.Loc {
	return ast.Loc{File: p.file, Line: p.curToken.Line}
}

func (p *Parser) expect(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("expected %s, got %q", tokenName(t), p.curToken.Literal)
	return false
}

func (p *Parser) addError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	err := fmt.Errorf("parse error at %d:%d: %s", p.curToken.Line, p.curToken.Column, msg)
	p.errors = append(p.errors, err)
}

// ---------- Statements ----------

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.Var:
		return p.parseVariableDeclaration()
	case token.LeftBrace:
		return p.parseBlockStatement()
	case token.Return:
		return p.parseReturnStatement()
	case token.Function:
		return p.parseFunctionDeclaration()
	case token.Semicolon:
		p.nextToken()
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{Loc: p.loc()}
	p.nextToken() // consume var

	for {
		decl.Declarations = append(decl.Declarations, p.parseVariableDeclarator())
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken()
	}
	p.consumeSemicolon()
	return decl
}

func (p *Parser) parseVariableDeclarator() *ast.VariableDeclarator {
	d := &ast.VariableDeclarator{Loc: p.loc(), Name: p.curToken.Literal}
	if !p.curTokenIs(token.Identifier) {
		p.addError("expected identifier in declaration, got %q", p.curToken.Literal)
	}
	p.nextToken()
	if p.curTokenIs(token.Assign) {
		p.nextToken()
		d.Init = p.parseAssignmentExpression()
	}
	return d
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Loc: p.loc()}
	p.nextToken() // consume {
	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.errors) > 0 {
			break
		}
	}
	p.expect(token.RightBrace)
	return block
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Loc: p.loc()}
	returnLine := p.curToken.Line
	p.nextToken() // consume return
	if !p.curTokenIs(token.Semicolon) && !p.curTokenIs(token.RightBrace) &&
		!p.curTokenIs(token.EOF) && p.curToken.Line == returnLine {
		stmt.Argument = p.parseExpression(0)
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	loc := p.loc()
	fn := p.parseFunctionLiteral()
	if fn.Name == "" {
		// "function (...) {...}" at statement position: treat as an
		// expression statement so the evaluator reports it naturally.
		return &ast.ExpressionStatement{Loc: loc, Expression: fn}
	}
	return &ast.FunctionDeclaration{Loc: loc, Fn: fn}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Loc: p.loc()}
	stmt.Expression = p.parseExpression(0)
	p.consumeSemicolon()
	return stmt
}

// ---------- Expression Parsing (Pratt) ----------

func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefixExpression()
	for {
		prec := p.infixPrecedence()
		if prec <= minPrec {
			break
		}
		left = p.parseInfixExpression(left, prec)
	}
	return left
}

func (p *Parser) parseAssignmentExpression() ast.Expression {
	return p.parseExpression(precComma)
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	switch p.curToken.Type {
	case token.Identifier:
		return p.parseIdentifier()
	case token.Number:
		return p.parseNumberLiteral()
	case token.String:
		lit := &ast.StringLiteral{Loc: p.loc(), Value: p.curToken.Literal}
		p.nextToken()
		return lit
	case token.True, token.False:
		lit := &ast.BooleanLiteral{Loc: p.loc(), Value: p.curTokenIs(token.True)}
		p.nextToken()
		return lit
	case token.Null:
		lit := &ast.NullLiteral{Loc: p.loc()}
		p.nextToken()
		return lit
	case token.This:
		expr := &ast.ThisExpression{Loc: p.loc()}
		p.nextToken()
		return expr
	case token.LeftParen:
		return p.parseGroupExpression()
	case token.LeftBracket:
		return p.parseArrayLiteral()
	case token.LeftBrace:
		return p.parseObjectLiteral()
	case token.Function:
		return p.parseFunctionLiteral()
	case token.New:
		return p.parseNewExpression()
	case token.Not, token.BitwiseNot, token.Typeof, token.Void, token.Delete,
		token.Plus, token.Minus:
		return p.parseUnaryExpression()
	default:
		p.addError("unexpected token %q", p.curToken.Literal)
		loc := p.loc()
		p.nextToken()
		return &ast.NullLiteral{Loc: loc}
	}
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	ident := &ast.Identifier{Loc: p.loc(), Name: p.curToken.Literal}
	p.nextToken()
	return ident
}

func (p *Parser) parseNumberLiteral() *ast.NumberLiteral {
	lit := &ast.NumberLiteral{Loc: p.loc()}
	val, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("invalid number: %s", p.curToken.Literal)
	}
	lit.Value = val
	p.nextToken()
	return lit
}

func (p *Parser) parseGroupExpression() ast.Expression {
	p.nextToken() // consume (
	expr := p.parseExpression(0)
	p.expect(token.RightParen)
	return expr
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	arr := &ast.ArrayLiteral{Loc: p.loc()}
	p.nextToken() // consume [
	for !p.curTokenIs(token.RightBracket) && !p.curTokenIs(token.EOF) {
		arr.Elements = append(arr.Elements, p.parseAssignmentExpression())
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken()
	}
	p.expect(token.RightBracket)
	return arr
}

func (p *Parser) parseObjectLiteral() *ast.ObjectLiteral {
	obj := &ast.ObjectLiteral{Loc: p.loc()}
	p.nextToken() // consume {
	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		prop := &ast.ObjectProperty{Loc: p.loc()}
		switch p.curToken.Type {
		case token.Identifier, token.String, token.Number:
			prop.Key = p.curToken.Literal
		default:
			if _, isKeyword := token.Keywords[p.curToken.Literal]; isKeyword {
				prop.Key = p.curToken.Literal
			} else {
				p.addError("invalid property key %q", p.curToken.Literal)
			}
		}
		p.nextToken()
		p.expect(token.Colon)
		prop.Value = p.parseAssignmentExpression()
		obj.Properties = append(obj.Properties, prop)
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken()
	}
	p.expect(token.RightBrace)
	return obj
}

func (p *Parser) parseFunctionLiteral() *ast.FunctionLiteral {
	fn := &ast.FunctionLiteral{Loc: p.loc()}
	p.nextToken() // consume function

	if p.curTokenIs(token.Identifier) {
		fn.Name = p.curToken.Literal
		p.nextToken()
	}

	p.expect(token.LeftParen)
	for !p.curTokenIs(token.RightParen) && !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.Identifier) {
			p.addError("expected parameter name, got %q", p.curToken.Literal)
			break
		}
		fn.Params = append(fn.Params, p.curToken.Literal)
		p.nextToken()
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken()
	}
	p.expect(token.RightParen)

	if !p.curTokenIs(token.LeftBrace) {
		p.addError("expected function body, got %q", p.curToken.Literal)
		return fn
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseNewExpression() ast.Expression {
	loc := p.loc()
	p.nextToken() // consume new

	callee := p.parseMemberChain(p.parsePrefixExpression())

	expr := &ast.NewExpression{Loc: loc, Callee: callee}
	if p.curTokenIs(token.LeftParen) {
		expr.Arguments = p.parseArguments()
	}
	return p.parsePostfixOps(expr)
}

// parseMemberChain consumes only .name and [expr] suffixes, leaving a
// trailing call for the caller (so `new a.b()` news a.b, not a.b()).
func (p *Parser) parseMemberChain(left ast.Expression) ast.Expression {
	for {
		if p.curTokenIs(token.Dot) {
			loc := p.loc()
			p.nextToken()
			left = &ast.MemberExpression{Loc: loc, Object: left, Property: p.parsePropertyName()}
		} else if p.curTokenIs(token.LeftBracket) {
			loc := p.loc()
			p.nextToken()
			index := p.parseExpression(0)
			p.expect(token.RightBracket)
			left = &ast.IndexExpression{Loc: loc, Object: left, Index: index}
		} else {
			return left
		}
	}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	loc := p.loc()
	op := p.curToken.Literal
	p.nextToken()
	operand := p.parseExpression(precUnary)
	return &ast.UnaryExpression{Loc: loc, Operator: op, Operand: operand}
}

func (p *Parser) parsePropertyName() string {
	name := p.curToken.Literal
	if !p.curTokenIs(token.Identifier) {
		if _, isKeyword := token.Keywords[name]; !isKeyword {
			p.addError("expected property name, got %q", name)
		}
	}
	p.nextToken()
	return name
}

// ---------- Infix Parsing ----------

func (p *Parser) infixPrecedence() int {
	switch p.curToken.Type {
	case token.Comma:
		return precComma
	case token.Assign, token.PlusAssign, token.MinusAssign, token.AsteriskAssign,
		token.SlashAssign, token.PercentAssign, token.AmpersandAssign,
		token.PipeAssign, token.CaretAssign, token.LeftShiftAssign,
		token.RightShiftAssign, token.UnsignedRightShiftAssign:
		return precAssignment
	case token.QuestionMark:
		return precConditional
	case token.Or:
		return precLogicalOr
	case token.And:
		return precLogicalAnd
	case token.BitwiseOr:
		return precBitwiseOr
	case token.BitwiseXor:
		return precBitwiseXor
	case token.BitwiseAnd:
		return precBitwiseAnd
	case token.Equal, token.StrictEqual:
		return precEquality
	case token.LessThan, token.GreaterThan, token.LessThanOrEqual, token.GreaterThanOrEqual:
		return precRelational
	case token.LeftShift, token.RightShift, token.UnsignedRightShift:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Asterisk, token.Slash, token.Percent:
		return precMultiplicative
	case token.LeftParen, token.Dot, token.LeftBracket:
		return precCall
	default:
		return 0
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression, prec int) ast.Expression {
	switch p.curToken.Type {
	case token.Comma:
		return p.parseSequenceExpression(left)
	case token.Assign, token.PlusAssign, token.MinusAssign, token.AsteriskAssign,
		token.SlashAssign, token.PercentAssign, token.AmpersandAssign,
		token.PipeAssign, token.CaretAssign, token.LeftShiftAssign,
		token.RightShiftAssign, token.UnsignedRightShiftAssign:
		return p.parseAssignmentInfix(left)
	case token.QuestionMark:
		return p.parseConditionalExpression(left)
	case token.LeftParen:
		loc := p.loc()
		args := p.parseArguments()
		return p.parsePostfixOps(&ast.CallExpression{Loc: loc, Callee: left, Arguments: args})
	case token.Dot:
		loc := p.loc()
		p.nextToken()
		prop := p.parsePropertyName()
		return p.parsePostfixOps(&ast.MemberExpression{Loc: loc, Object: left, Property: prop})
	case token.LeftBracket:
		loc := p.loc()
		p.nextToken()
		index := p.parseExpression(0)
		p.expect(token.RightBracket)
		return p.parsePostfixOps(&ast.IndexExpression{Loc: loc, Object: left, Index: index})
	default:
		return p.parseBinaryInfix(left, prec)
	}
}

func (p *Parser) parseSequenceExpression(left ast.Expression) ast.Expression {
	seq := &ast.SequenceExpression{Loc: p.loc(), Expressions: []ast.Expression{left}}
	for p.curTokenIs(token.Comma) {
		p.nextToken()
		seq.Expressions = append(seq.Expressions, p.parseAssignmentExpression())
	}
	return seq
}

func (p *Parser) parseAssignmentInfix(left ast.Expression) ast.Expression {
	loc := p.loc()
	op := p.curToken.Literal
	p.nextToken()
	right := p.parseAssignmentExpression()
	return &ast.AssignmentExpression{Loc: loc, Operator: op, Left: left, Right: right}
}

func (p *Parser) parseConditionalExpression(left ast.Expression) ast.Expression {
	loc := p.loc()
	p.nextToken() // consume ?
	consequent := p.parseAssignmentExpression()
	p.expect(token.Colon)
	alternate := p.parseAssignmentExpression()
	return &ast.ConditionalExpression{Loc: loc, Test: left, Consequent: consequent, Alternate: alternate}
}

func (p *Parser) parseBinaryInfix(left ast.Expression, prec int) ast.Expression {
	loc := p.loc()
	op := p.curToken.Literal
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Loc: loc, Operator: op, Left: left, Right: right}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.nextToken() // consume (
	var args []ast.Expression
	for !p.curTokenIs(token.RightParen) && !p.curTokenIs(token.EOF) {
		args = append(args, p.parseAssignmentExpression())
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken()
	}
	p.expect(token.RightParen)
	return args
}

func (p *Parser) parsePostfixOps(expr ast.Expression) ast.Expression {
	for {
		switch p.curToken.Type {
		case token.Dot:
			loc := p.loc()
			p.nextToken()
			expr = &ast.MemberExpression{Loc: loc, Object: expr, Property: p.parsePropertyName()}
		case token.LeftBracket:
			loc := p.loc()
			p.nextToken()
			index := p.parseExpression(0)
			p.expect(token.RightBracket)
			expr = &ast.IndexExpression{Loc: loc, Object: expr, Index: index}
		case token.LeftParen:
			loc := p.loc()
			args := p.parseArguments()
			expr = &ast.CallExpression{Loc: loc, Callee: expr, Arguments: args}
		default:
			return expr
		}
	}
}

// ---------- Helpers ----------

func (p *Parser) consumeSemicolon() {
	if p.curTokenIs(token.Semicolon) {
		p.nextToken()
	}
}

func tokenName(t token.TokenType) string {
	names := map[token.TokenType]string{
		token.EOF:          "EOF",
		token.Identifier:   "IDENTIFIER",
		token.Number:       "NUMBER",
		token.String:       "STRING",
		token.LeftParen:    "(",
		token.RightParen:   ")",
		token.LeftBrace:    "{",
		token.RightBrace:   "}",
		token.LeftBracket:  "[",
		token.RightBracket: "]",
		token.Semicolon:    ";",
		token.Colon:        ":",
		token.Comma:        ",",
		token.Dot:          ".",
	}
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}
