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
package ast

import (
	"github.com/consensys/go-arithc/pkg/lang/ast/expr"
	"github.com/consensys/go-arithc/pkg/lang/ast/stmt"
	"github.com/consensys/go-arithc/pkg/util/source"
)

// Callable is a named template or function with zero or more parameters.
type Callable struct {
	Name   string
	Params []string
	Body   *stmt.Block
}

// Template is a parameterised circuit fragment, instantiated as a component.
type Template struct {
	Callable
}

// Inputs returns the names of the input signals declared at the top level of
// this template, in declaration order.
func (p *Template) Inputs() []string {
	return p.ports(stmt.INPUT)
}

// Outputs returns the names of the output signals declared at the top level of
// this template, in declaration order.
func (p *Template) Outputs() []string {
	return p.ports(stmt.OUTPUT)
}

func (p *Template) ports(role stmt.Role) []string {
	var names []string
	//
	for _, d := range declarations(p.Body.Stmts) {
		if d.Kind == stmt.SIGNAL && d.Role == role {
			names = append(names, d.Name)
		}
	}
	//
	return names
}

// Function is a parameterised computation producing a value.
type Function struct {
	Callable
}

// Program is a fully linked program, consisting of the templates and functions
// from all source files along with the main component.
type Program struct {
	Templates map[string]*Template
	Functions map[string]*Function
	// Instantiation of the main component
	Main *expr.Call
	// Signals of the main component declared public.
	Public []string
	// Source mapping for statements and expressions
	SourceMap *source.Maps[any]
}

// NewProgram constructs an empty program.
func NewProgram() *Program {
	return &Program{
		Templates: make(map[string]*Template),
		Functions: make(map[string]*Function),
		SourceMap: source.NewSourceMaps[any](),
	}
}

// Top-level declarations of a statement list, including those within
// initialisation blocks.
func declarations(stmts []stmt.Stmt) []*stmt.Declaration {
	var decls []*stmt.Declaration
	//
	for _, s := range stmts {
		switch s := s.(type) {
		case *stmt.Declaration:
			decls = append(decls, s)
		case *stmt.InitializationBlock:
			decls = append(decls, declarations(s.Stmts)...)
		}
	}
	//
	return decls
}
