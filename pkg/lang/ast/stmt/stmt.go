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
package stmt

import (
	"fmt"
	"strings"

	"github.com/consensys/go-arithc/pkg/lang/ast/expr"
)

// Stmt represents an arbitrary statement of the source language.
type Stmt interface {
	// String returns a string representation of this statement.
	String() string
}

// Kind identifies what a declaration declares.
type Kind uint8

// VAR declares a variable.
const VAR Kind = 0

// SIGNAL declares a signal.
const SIGNAL Kind = 1

// COMPONENT declares a component.
const COMPONENT Kind = 2

// Role identifies the direction of a signal.
type Role uint8

// INTERMEDIATE signals are internal to a template.
const INTERMEDIATE Role = 0

// INPUT signals are inputs of a template.
const INPUT Role = 1

// OUTPUT signals are outputs of a template.
const OUTPUT Role = 2

// Declaration introduces a named variable, signal or component, possibly with
// one or more array dimensions.
type Declaration struct {
	Kind Kind
	Role Role
	Name string
	Dims []expr.Expr
}

func (p *Declaration) String() string {
	var builder strings.Builder
	//
	switch p.Kind {
	case VAR:
		builder.WriteString("var ")
	case SIGNAL:
		builder.WriteString("signal ")
		//
		switch p.Role {
		case INPUT:
			builder.WriteString("input ")
		case OUTPUT:
			builder.WriteString("output ")
		}
	case COMPONENT:
		builder.WriteString("component ")
	}
	//
	builder.WriteString(p.Name)
	//
	for _, d := range p.Dims {
		builder.WriteString("[")
		builder.WriteString(d.String())
		builder.WriteString("]")
	}
	//
	return builder.String()
}

// AssignOp distinguishes the forms of substitution.
type AssignOp uint8

// ASSIGN represents "=" (variables and components).
const ASSIGN AssignOp = 0

// CONSTRAIN represents "<==" (and "==>").
const CONSTRAIN AssignOp = 1

// WIRE represents "<--" (and "-->").
const WIRE AssignOp = 2

func (op AssignOp) String() string {
	switch op {
	case CONSTRAIN:
		return "<=="
	case WIRE:
		return "<--"
	default:
		return "="
	}
}

// Substitution assigns the value of an expression to a target access.
type Substitution struct {
	Target *expr.Access
	Op     AssignOp
	Rhs    expr.Expr
}

func (p *Substitution) String() string {
	return fmt.Sprintf("%s %s %s", p.Target, p.Op, p.Rhs)
}

// InitializationBlock groups one or more declarations together with their
// initialising substitutions, such as "var x = 1, y;".
type InitializationBlock struct {
	Stmts []Stmt
}

func (p *InitializationBlock) String() string {
	return join(p.Stmts, ", ")
}

// Block is a braced sequence of statements, which introduces a new scope.
type Block struct {
	Stmts []Stmt
}

func (p *Block) String() string {
	return fmt.Sprintf("{ %s }", join(p.Stmts, "; "))
}

// While represents a loop.
type While struct {
	Cond expr.Expr
	Body Stmt
}

func (p *While) String() string {
	return fmt.Sprintf("while (%s) %s", p.Cond, p.Body)
}

// IfThenElse represents a conditional, where Else may be nil.
type IfThenElse struct {
	Cond expr.Expr
	Then Stmt
	Else Stmt
}

func (p *IfThenElse) String() string {
	if p.Else == nil {
		return fmt.Sprintf("if (%s) %s", p.Cond, p.Then)
	}
	//
	return fmt.Sprintf("if (%s) %s else %s", p.Cond, p.Then, p.Else)
}

// Return ends a function, producing a value.
type Return struct {
	Value expr.Expr
}

func (p *Return) String() string {
	return fmt.Sprintf("return %s", p.Value)
}

// ConstraintEquality asserts two expressions are equal ("a === b").  This adds
// no gates to the circuit.
type ConstraintEquality struct {
	Lhs expr.Expr
	Rhs expr.Expr
}

func (p *ConstraintEquality) String() string {
	return fmt.Sprintf("%s === %s", p.Lhs, p.Rhs)
}

func join(stmts []Stmt, sep string) string {
	var builder strings.Builder
	//
	for i, s := range stmts {
		if i != 0 {
			builder.WriteString(sep)
		}
		//
		builder.WriteString(s.String())
	}
	//
	return builder.String()
}
