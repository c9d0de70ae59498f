// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-arithc/pkg/lang/ast"
	"github.com/consensys/go-arithc/pkg/lang/ast/expr"
	"github.com/consensys/go-arithc/pkg/lang/ast/stmt"
	"github.com/consensys/go-arithc/pkg/util/source"
	"github.com/consensys/go-arithc/pkg/util/source/lex"
)

// UnlinkedSourceFile captures a source file has been successfully parsed but
// which has not yet been linked.  As such, it may refer to templates or
// functions declared in other (included) files.
type UnlinkedSourceFile struct {
	// Files included by this file, in order of appearance.
	Includes []*string
	// Templates and functions declared in this file, in order of appearance.
	Templates []*ast.Template
	Functions []*ast.Function
	// Main component (if declared in this file)
	Main *expr.Call
	// Signals of the main component declared public
	Public []string
	// Mapping of statements and expressions back to the source file.
	SourceMap *source.Map[any]
}

// Parse accepts a given source file and parses it into its declarations.
func Parse(srcfile *source.File) (UnlinkedSourceFile, []source.SyntaxError) {
	parser := NewParser(srcfile)
	// Parse declarations
	return parser.Parse()
}

// Binary operators in order of increasing precedence.  Exponentiation and
// unary operators bind more tightly than all of these.
var precedence = [][]uint{
	{LOGICAL_OR},
	{LOGICAL_AND},
	{BITWISE_OR},
	{BITWISE_XOR},
	{BITWISE_AND},
	{EQUALS_EQUALS, NOT_EQUALS},
	{LESS_THAN, GREATER_THAN, LESS_THAN_EQUALS, GREATER_THAN_EQUALS},
	{SHL, SHR},
	{ADD, SUB},
	{MUL, DIV, INT_DIV, MOD},
}

var infixOps = map[uint]expr.InfixOp{
	ADD:                 expr.ADD,
	SUB:                 expr.SUB,
	MUL:                 expr.MUL,
	DIV:                 expr.DIV,
	INT_DIV:             expr.INT_DIV,
	MOD:                 expr.MOD,
	POW:                 expr.POW,
	SHL:                 expr.SHL,
	SHR:                 expr.SHR,
	EQUALS_EQUALS:       expr.EQ,
	NOT_EQUALS:          expr.NEQ,
	LESS_THAN:           expr.LT,
	GREATER_THAN:        expr.GT,
	LESS_THAN_EQUALS:    expr.LTEQ,
	GREATER_THAN_EQUALS: expr.GTEQ,
	LOGICAL_OR:          expr.BOOL_OR,
	LOGICAL_AND:         expr.BOOL_AND,
	BITWISE_OR:          expr.BIT_OR,
	BITWISE_AND:         expr.BIT_AND,
	BITWISE_XOR:         expr.XOR,
}

// Compound assignments and the operator they apply.
var compoundOps = map[uint]expr.InfixOp{
	ADD_EQUALS: expr.ADD,
	SUB_EQUALS: expr.SUB,
	MUL_EQUALS: expr.MUL,
	DIV_EQUALS: expr.DIV,
	MOD_EQUALS: expr.MOD,
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a recursive descent parser for the circuit language.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Source mapping
	srcmap *source.Map[any]
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[any](srcfile)
	//
	return &Parser{srcfile, nil, srcmap, 0}
}

// Parse the given source file into a sequence of zero or more declarations
// and/or some number of syntax errors.
func (p *Parser) Parse() (UnlinkedSourceFile, []source.SyntaxError) {
	var (
		item   UnlinkedSourceFile
		errors []source.SyntaxError
	)
	// Convert source file into tokens
	if p.tokens, errors = Lex(p.srcfile); len(errors) > 0 {
		return item, errors
	}
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		var lookahead = p.lookahead()
		// Determine type of declaration
		switch lookahead.Kind {
		case KEYWORD_PRAGMA:
			errors = p.parsePragma()
		case KEYWORD_INCLUDE:
			var include *string
			//
			if include, errors = p.parseInclude(); len(errors) == 0 {
				item.Includes = append(item.Includes, include)
			}
		case KEYWORD_TEMPLATE:
			var template *ast.Template
			//
			if template, errors = p.parseTemplate(); len(errors) == 0 {
				item.Templates = append(item.Templates, template)
			}
		case KEYWORD_FUNCTION:
			var function *ast.Function
			//
			if function, errors = p.parseFunction(); len(errors) == 0 {
				item.Functions = append(item.Functions, function)
			}
		case KEYWORD_COMPONENT:
			if item.Main != nil {
				return item, p.syntaxErrors(lookahead, "duplicate main component")
			}
			//
			item.Main, item.Public, errors = p.parseMain()
		default:
			errors = p.syntaxErrors(lookahead, "unknown declaration")
		}
		//
		if len(errors) > 0 {
			return item, errors
		}
	}
	// Copy over source map
	item.SourceMap = p.srcmap
	//
	return item, nil
}

// A pragma (e.g. "pragma circom 2.0.0;") is accepted and ignored.
func (p *Parser) parsePragma() []source.SyntaxError {
	p.match(KEYWORD_PRAGMA)
	//
	for !p.follows(SEMICOLON, END_OF) {
		p.index++
	}
	//
	_, errs := p.expect(SEMICOLON)
	//
	return errs
}

func (p *Parser) parseInclude() (*string, []source.SyntaxError) {
	// Parse include declaration
	if _, errs := p.expect(KEYWORD_INCLUDE); len(errs) > 0 {
		return nil, errs
	}
	//
	tok, errs := p.expect(STRING)
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	// Strip quotes
	str := p.string(tok)
	str = str[1 : len(str)-1]
	// Record source mapping
	p.srcmap.Put(&str, tok.Span)
	//
	return &str, nil
}

func (p *Parser) parseTemplate() (*ast.Template, []source.SyntaxError) {
	var start = p.index
	//
	p.match(KEYWORD_TEMPLATE)
	//
	callable, errs := p.parseCallable()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	template := &ast.Template{Callable: callable}
	p.srcmap.Put(template, p.spanOf(start, start+1))
	//
	return template, nil
}

func (p *Parser) parseFunction() (*ast.Function, []source.SyntaxError) {
	var start = p.index
	//
	p.match(KEYWORD_FUNCTION)
	//
	callable, errs := p.parseCallable()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	function := &ast.Function{Callable: callable}
	p.srcmap.Put(function, p.spanOf(start, start+1))
	//
	return function, nil
}

// Parse the name, parameters and body of a template or function.
func (p *Parser) parseCallable() (ast.Callable, []source.SyntaxError) {
	var (
		callable ast.Callable
		errs     []source.SyntaxError
	)
	//
	if callable.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return callable, errs
	} else if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return callable, errs
	}
	// Parameters
	for !p.match(RBRACE) {
		var param string
		//
		if len(callable.Params) > 0 {
			if _, errs = p.expect(COMMA); len(errs) > 0 {
				return callable, errs
			}
		}
		//
		if param, errs = p.parseIdentifier(); len(errs) > 0 {
			return callable, errs
		} else if slices.Contains(callable.Params, param) {
			return callable, p.syntaxErrors(p.tokens[p.index-1], "duplicate parameter")
		}
		//
		callable.Params = append(callable.Params, param)
	}
	//
	callable.Body, errs = p.parseBlock()
	//
	return callable, errs
}

func (p *Parser) parseMain() (*expr.Call, []string, []source.SyntaxError) {
	var (
		public []string
		call   expr.Expr
		errs   []source.SyntaxError
		tok    lex.Token
	)
	//
	p.match(KEYWORD_COMPONENT)
	//
	if tok, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return nil, nil, errs
	} else if p.string(tok) != "main" {
		return nil, nil, p.syntaxErrors(tok, "expected main component")
	}
	// Optional public signals
	if p.match(LCURLY) {
		if _, errs = p.expect(KEYWORD_PUBLIC); len(errs) > 0 {
			return nil, nil, errs
		} else if _, errs = p.expect(LSQUARE); len(errs) > 0 {
			return nil, nil, errs
		}
		//
		for !p.match(RSQUARE) {
			var name string
			//
			if len(public) > 0 {
				if _, errs = p.expect(COMMA); len(errs) > 0 {
					return nil, nil, errs
				}
			}
			//
			if name, errs = p.parseIdentifier(); len(errs) > 0 {
				return nil, nil, errs
			}
			//
			public = append(public, name)
		}
		//
		if _, errs = p.expect(RCURLY); len(errs) > 0 {
			return nil, nil, errs
		}
	}
	//
	if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, nil, errs
	}
	//
	lookahead := p.lookahead()
	//
	if call, errs = p.parseExpr(); len(errs) > 0 {
		return nil, nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, nil, errs
	}
	//
	if c, ok := call.(*expr.Call); ok {
		return c, public, nil
	}
	//
	return nil, nil, p.syntaxErrors(lookahead, "expected template instantiation")
}

// ============================================================================
// Statements
// ============================================================================

func (p *Parser) parseBlock() (*stmt.Block, []source.SyntaxError) {
	var (
		start = p.index
		block = &stmt.Block{}
	)
	//
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(RCURLY) {
		if p.follows(END_OF) {
			return nil, p.syntaxErrors(p.lookahead(), "missing }")
		}
		//
		s, errs := p.parseStatement()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		block.Stmts = append(block.Stmts, s)
	}
	//
	p.srcmap.Put(block, p.spanOf(start, p.index-1))
	//
	return block, nil
}

func (p *Parser) parseStatement() (stmt.Stmt, []source.SyntaxError) {
	var (
		start = p.index
		s     stmt.Stmt
		errs  []source.SyntaxError
	)
	//
	switch p.lookahead().Kind {
	case LCURLY:
		// Already mapped
		return p.parseBlock()
	case KEYWORD_IF:
		s, errs = p.parseIfElse()
	case KEYWORD_WHILE:
		s, errs = p.parseWhile()
	case KEYWORD_FOR:
		// Already mapped
		return p.parseFor()
	case KEYWORD_RETURN:
		s, errs = p.parseReturn()
	default:
		if s, errs = p.parseSimpleStatement(); len(errs) == 0 {
			_, errs = p.expect(SEMICOLON)
		}
	}
	//
	if len(errs) > 0 {
		return nil, errs
	} else if !p.srcmap.Has(s) {
		p.srcmap.Put(s, p.spanOf(start, p.index-1))
	}
	//
	return s, nil
}

func (p *Parser) parseIfElse() (stmt.Stmt, []source.SyntaxError) {
	var (
		s    stmt.IfThenElse
		errs []source.SyntaxError
	)
	//
	p.match(KEYWORD_IF)
	//
	if s.Cond, errs = p.parseCondition(); len(errs) > 0 {
		return nil, errs
	} else if s.Then, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	} else if p.match(KEYWORD_ELSE) {
		if s.Else, errs = p.parseStatement(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return &s, nil
}

func (p *Parser) parseWhile() (stmt.Stmt, []source.SyntaxError) {
	var (
		s    stmt.While
		errs []source.SyntaxError
	)
	//
	p.match(KEYWORD_WHILE)
	//
	if s.Cond, errs = p.parseCondition(); len(errs) > 0 {
		return nil, errs
	} else if s.Body, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	return &s, nil
}

// A for loop "for (init; cond; step) body" is translated into the equivalent
// "{ init; while (cond) { body; step } }".
func (p *Parser) parseFor() (stmt.Stmt, []source.SyntaxError) {
	var (
		start                 = p.index
		init, step, body      stmt.Stmt
		cond                  expr.Expr
		errs                  []source.SyntaxError
		initStart, stepStart  int
		bodyBlock, outerBlock *stmt.Block
	)
	//
	p.match(KEYWORD_FOR)
	//
	if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	initStart = p.index
	//
	if init, errs = p.parseSimpleStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(init, p.spanOf(initStart, p.index-1))
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	} else if cond, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	stepStart = p.index
	//
	if step, errs = p.parseSimpleStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(step, p.spanOf(stepStart, p.index-1))
	//
	if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	} else if body, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	bodyBlock = &stmt.Block{Stmts: []stmt.Stmt{body, step}}
	loop := &stmt.While{Cond: cond, Body: bodyBlock}
	outerBlock = &stmt.Block{Stmts: []stmt.Stmt{init, loop}}
	//
	span := p.spanOf(start, p.index-1)
	p.srcmap.Put(bodyBlock, span)
	p.srcmap.Put(loop, span)
	p.srcmap.Put(outerBlock, span)
	//
	return outerBlock, nil
}

func (p *Parser) parseReturn() (stmt.Stmt, []source.SyntaxError) {
	p.match(KEYWORD_RETURN)
	//
	value, errs := p.parseExpr()
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return &stmt.Return{Value: value}, nil
}

// Parse a statement which is not terminated by a semicolon, such as a
// declaration, an assignment or an increment.
func (p *Parser) parseSimpleStatement() (stmt.Stmt, []source.SyntaxError) {
	switch p.lookahead().Kind {
	case KEYWORD_VAR:
		p.match(KEYWORD_VAR)
		return p.parseDeclarations(stmt.VAR, stmt.INTERMEDIATE)
	case KEYWORD_SIGNAL:
		var role = stmt.INTERMEDIATE
		//
		p.match(KEYWORD_SIGNAL)
		//
		if p.match(KEYWORD_INPUT) {
			role = stmt.INPUT
		} else if p.match(KEYWORD_OUTPUT) {
			role = stmt.OUTPUT
		}
		//
		return p.parseDeclarations(stmt.SIGNAL, role)
	case KEYWORD_COMPONENT:
		p.match(KEYWORD_COMPONENT)
		return p.parseDeclarations(stmt.COMPONENT, stmt.INTERMEDIATE)
	}
	//
	return p.parseAssignment()
}

// Parse one or more comma-separated declarations, each with optional
// initialiser.
func (p *Parser) parseDeclarations(kind stmt.Kind, role stmt.Role) (stmt.Stmt, []source.SyntaxError) {
	var block stmt.InitializationBlock
	//
	for first := true; first || p.match(COMMA); first = false {
		var (
			start = p.index
			decl  = &stmt.Declaration{Kind: kind, Role: role}
			errs  []source.SyntaxError
		)
		//
		if decl.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		} else if decl.Dims, errs = p.parseDimensions(); len(errs) > 0 {
			return nil, errs
		}
		//
		p.srcmap.Put(decl, p.spanOf(start, p.index-1))
		block.Stmts = append(block.Stmts, decl)
		// Optional initialiser
		if op, ok := p.initialiser(kind); ok {
			var rhs expr.Expr
			//
			if rhs, errs = p.parseExpr(); len(errs) > 0 {
				return nil, errs
			}
			//
			init := &stmt.Substitution{Target: expr.NewAccess(decl.Name), Op: op, Rhs: rhs}
			p.srcmap.Put(init, p.spanOf(start, p.index-1))
			block.Stmts = append(block.Stmts, init)
		}
	}
	//
	return &block, nil
}

// Match the initialising operator permitted for a given kind of declaration.
func (p *Parser) initialiser(kind stmt.Kind) (stmt.AssignOp, bool) {
	switch {
	case kind != stmt.SIGNAL && p.match(EQUALS):
		return stmt.ASSIGN, true
	case kind == stmt.SIGNAL && p.match(LEFT_CONSTRAIN):
		return stmt.CONSTRAIN, true
	case kind == stmt.SIGNAL && p.match(LEFT_WIRE):
		return stmt.WIRE, true
	default:
		return stmt.ASSIGN, false
	}
}

func (p *Parser) parseDimensions() ([]expr.Expr, []source.SyntaxError) {
	var dims []expr.Expr
	//
	for p.match(LSQUARE) {
		dim, errs := p.parseExpr()
		//
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		dims = append(dims, dim)
	}
	//
	return dims, nil
}

func (p *Parser) parseAssignment() (stmt.Stmt, []source.SyntaxError) {
	var (
		lookahead = p.lookahead()
		lhs, errs = p.parseExpr()
		rhs       expr.Expr
		op        = p.lookahead()
	)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	target, isAccess := lhs.(*expr.Access)
	//
	switch op.Kind {
	case EQUALS, LEFT_CONSTRAIN, LEFT_WIRE, ADD_EQUALS, SUB_EQUALS, MUL_EQUALS, DIV_EQUALS, MOD_EQUALS:
		if !isAccess {
			return nil, p.syntaxErrors(lookahead, "invalid assignment target")
		}
		//
		p.match(op.Kind)
		//
		if rhs, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		return p.substitution(target, op.Kind, rhs), nil
	case INCREMENT, DECREMENT:
		if !isAccess {
			return nil, p.syntaxErrors(lookahead, "invalid assignment target")
		}
		//
		p.match(op.Kind)
		//
		arith := expr.ADD
		if op.Kind == DECREMENT {
			arith = expr.SUB
		}
		//
		one := expr.NewNumber(1)
		p.srcmap.Put(one, op.Span)
		//
		return &stmt.Substitution{Target: target, Op: stmt.ASSIGN, Rhs: expr.NewInfix(arith, target, one)}, nil
	case RIGHT_CONSTRAIN, RIGHT_WIRE:
		p.match(op.Kind)
		//
		lookahead = p.lookahead()
		//
		if rhs, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		} else if target, isAccess = rhs.(*expr.Access); !isAccess {
			return nil, p.syntaxErrors(lookahead, "invalid assignment target")
		}
		//
		if op.Kind == RIGHT_CONSTRAIN {
			return &stmt.Substitution{Target: target, Op: stmt.CONSTRAIN, Rhs: lhs}, nil
		}
		//
		return &stmt.Substitution{Target: target, Op: stmt.WIRE, Rhs: lhs}, nil
	case CONSTRAINT_EQUALS:
		p.match(op.Kind)
		//
		if rhs, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		return &stmt.ConstraintEquality{Lhs: lhs, Rhs: rhs}, nil
	default:
		return nil, p.syntaxErrors(op, "expected assignment")
	}
}

func (p *Parser) substitution(target *expr.Access, op uint, rhs expr.Expr) stmt.Stmt {
	switch op {
	case LEFT_CONSTRAIN:
		return &stmt.Substitution{Target: target, Op: stmt.CONSTRAIN, Rhs: rhs}
	case LEFT_WIRE:
		return &stmt.Substitution{Target: target, Op: stmt.WIRE, Rhs: rhs}
	case EQUALS:
		return &stmt.Substitution{Target: target, Op: stmt.ASSIGN, Rhs: rhs}
	default:
		return &stmt.Substitution{Target: target, Op: stmt.ASSIGN, Rhs: expr.NewInfix(compoundOps[op], target, rhs)}
	}
}

func (p *Parser) parseCondition() (expr.Expr, []source.SyntaxError) {
	if _, errs := p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	cond, errs := p.parseExpr()
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return cond, nil
}

// ============================================================================
// Expressions
// ============================================================================

func (p *Parser) parseExpr() (expr.Expr, []source.SyntaxError) {
	var (
		start     = p.index
		cond, err = p.parseBinary(0)
		ternary   expr.Ternary
	)
	//
	if len(err) > 0 || !p.match(QUESTION) {
		return cond, err
	}
	//
	ternary.Cond = cond
	//
	if ternary.Then, err = p.parseExpr(); len(err) > 0 {
		return nil, err
	} else if _, err = p.expect(COLON); len(err) > 0 {
		return nil, err
	} else if ternary.Else, err = p.parseExpr(); len(err) > 0 {
		return nil, err
	}
	//
	p.srcmap.Put(&ternary, p.spanOf(start, p.index-1))
	//
	return &ternary, nil
}

// Parse binary operators of a given precedence level (or higher), which are
// left associative.
func (p *Parser) parseBinary(level int) (expr.Expr, []source.SyntaxError) {
	if level == len(precedence) {
		return p.parsePower()
	}
	//
	var (
		start     = p.index
		lhs, errs = p.parseBinary(level + 1)
		rhs       expr.Expr
	)
	//
	for len(errs) == 0 && p.follows(precedence[level]...) {
		op := p.lookahead().Kind
		p.match(op)
		//
		if rhs, errs = p.parseBinary(level + 1); len(errs) > 0 {
			return nil, errs
		}
		//
		lhs = expr.NewInfix(infixOps[op], lhs, rhs)
		p.srcmap.Put(lhs, p.spanOf(start, p.index-1))
	}
	//
	return lhs, errs
}

// Exponentiation is right associative.
func (p *Parser) parsePower() (expr.Expr, []source.SyntaxError) {
	var (
		start      = p.index
		base, errs = p.parseUnary()
		exponent   expr.Expr
	)
	//
	if len(errs) > 0 || !p.match(POW) {
		return base, errs
	} else if exponent, errs = p.parsePower(); len(errs) > 0 {
		return nil, errs
	}
	//
	e := expr.NewInfix(expr.POW, base, exponent)
	p.srcmap.Put(e, p.spanOf(start, p.index-1))
	//
	return e, nil
}

func (p *Parser) parseUnary() (expr.Expr, []source.SyntaxError) {
	var (
		start = p.index
		op    expr.PrefixOp
	)
	//
	switch {
	case p.match(SUB):
		op = expr.NEG
	case p.match(LOGICAL_NOT):
		op = expr.NOT
	case p.match(BITWISE_NOT):
		op = expr.COMPLEMENT
	default:
		return p.parsePrimary()
	}
	//
	arg, errs := p.parseUnary()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	e := expr.NewPrefix(op, arg)
	p.srcmap.Put(e, p.spanOf(start, p.index-1))
	//
	return e, nil
}

func (p *Parser) parsePrimary() (expr.Expr, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		atom      expr.Expr
		errs      []source.SyntaxError
	)
	//
	switch lookahead.Kind {
	case NUMBER:
		var val uint32
		//
		p.match(NUMBER)
		//
		if val, errs = p.number(lookahead); len(errs) > 0 {
			return nil, errs
		}
		//
		atom = expr.NewNumber(val)
	case IDENTIFIER:
		name := p.string(lookahead)
		p.match(IDENTIFIER)
		//
		if p.follows(LBRACE) {
			var args []expr.Expr
			//
			if args, errs = p.parseExprList(LBRACE, RBRACE); len(errs) > 0 {
				return nil, errs
			}
			//
			atom = expr.NewCall(name, args...)
		} else {
			var selectors []expr.Selector
			//
			if selectors, errs = p.parseSelectors(); len(errs) > 0 {
				return nil, errs
			}
			//
			atom = expr.NewAccess(name, selectors...)
		}
	case LSQUARE:
		var elements []expr.Expr
		//
		if elements, errs = p.parseExprList(LSQUARE, RSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		atom = expr.NewArray(elements...)
	case LBRACE:
		p.match(LBRACE)
		//
		if atom, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
		// Don't add to source map, since it will already have been added.
		return atom, nil
	default:
		return nil, p.syntaxErrors(lookahead, "unexpected token")
	}
	//
	p.srcmap.Put(atom, p.spanOf(start, p.index-1))
	//
	return atom, nil
}

func (p *Parser) parseSelectors() ([]expr.Selector, []source.SyntaxError) {
	var selectors []expr.Selector
	//
	for {
		switch {
		case p.match(LSQUARE):
			index, errs := p.parseExpr()
			//
			if len(errs) > 0 {
				return nil, errs
			} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
				return nil, errs
			}
			//
			selectors = append(selectors, expr.Selector{Index: index})
		case p.match(DOT):
			member, errs := p.parseIdentifier()
			//
			if len(errs) > 0 {
				return nil, errs
			}
			//
			selectors = append(selectors, expr.Selector{Member: member})
		default:
			return selectors, nil
		}
	}
}

// Parse a possibly empty sequence of comma-separated expressions between two
// delimiters.
func (p *Parser) parseExprList(open, end uint) ([]expr.Expr, []source.SyntaxError) {
	var exprs []expr.Expr
	//
	if _, errs := p.expect(open); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(end) {
		if len(exprs) > 0 {
			if _, errs := p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		e, errs := p.parseExpr()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		exprs = append(exprs, e)
	}
	//
	return exprs, nil
}

func (p *Parser) parseIdentifier() (string, []source.SyntaxError) {
	tok, errs := p.expect(IDENTIFIER)
	//
	if len(errs) > 0 {
		return "", errs
	}
	//
	return p.string(tok), nil
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Parse a numeric literal, which must fit within 32 bits.
func (p *Parser) number(token lex.Token) (uint32, []source.SyntaxError) {
	var (
		numstr = p.string(token)
		val    uint64
		err    error
	)
	//
	if hex, ok := strings.CutPrefix(numstr, "0x"); ok {
		val, err = strconv.ParseUint(hex, 16, 32)
	} else {
		val, err = strconv.ParseUint(numstr, 10, 32)
	}
	//
	if err != nil {
		return 0, p.syntaxErrors(token, "malformed numeric literal")
	}
	//
	return uint32(val), nil
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect reurns an arror if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		errs := p.syntaxErrors(lookahead, "unexpected token")
		return lookahead, errs
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	//
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[max(firstToken, lastToken)].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
