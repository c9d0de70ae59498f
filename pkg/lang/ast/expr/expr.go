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
package expr

import (
	"fmt"
	"strings"
)

// Expr represents an arbitrary expression of the source language.  Expressions
// are evaluated by the interpreter either to a concrete value, or to a wire of
// the circuit being constructed.
type Expr interface {
	// String returns a string representation of this expression.
	String() string
}

// Number represents a numeric literal.
type Number struct {
	Value uint32
}

// NewNumber constructs a numeric literal.
func NewNumber(value uint32) *Number {
	return &Number{value}
}

func (p *Number) String() string {
	return fmt.Sprintf("%d", p.Value)
}

// Selector is one step of an access: either an index expression, or the name
// of a component member.
type Selector struct {
	Index  Expr
	Member string
}

// IsMember checks whether this selects a component member.
func (s Selector) IsMember() bool {
	return s.Index == nil
}

// Access represents a reference to a named item, or some part of it, such as
// "x", "in[i+1]" or "c[j].out".  Index expressions are only evaluated when the
// access itself is evaluated.
type Access struct {
	Name      string
	Selectors []Selector
}

// NewAccess constructs an access expression.
func NewAccess(name string, selectors ...Selector) *Access {
	return &Access{name, selectors}
}

func (p *Access) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Name)
	//
	for _, s := range p.Selectors {
		if s.IsMember() {
			builder.WriteString(".")
			builder.WriteString(s.Member)
		} else {
			builder.WriteString("[")
			builder.WriteString(s.Index.String())
			builder.WriteString("]")
		}
	}
	//
	return builder.String()
}

// Call represents a call to a function or template.
type Call struct {
	Name string
	Args []Expr
}

// NewCall constructs a call expression.
func NewCall(name string, args ...Expr) *Call {
	return &Call{name, args}
}

func (p *Call) String() string {
	return fmt.Sprintf("%s(%s)", p.Name, join(p.Args))
}

// Array represents an inline array, such as "[1, 2, x]".
type Array struct {
	Elements []Expr
}

// NewArray constructs an inline array.
func NewArray(elements ...Expr) *Array {
	return &Array{elements}
}

func (p *Array) String() string {
	return fmt.Sprintf("[%s]", join(p.Elements))
}

// Ternary represents a conditional expression "c ? t : f".
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (p *Ternary) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", p.Cond, p.Then, p.Else)
}

func join(exprs []Expr) string {
	var builder strings.Builder
	//
	for i, e := range exprs {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(e.String())
	}
	//
	return builder.String()
}
