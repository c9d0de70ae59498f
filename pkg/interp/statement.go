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
package interp

import (
	"fmt"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/interp/scope"
	"github.com/consensys/go-arithc/pkg/lang/ast/expr"
	"github.com/consensys/go-arithc/pkg/lang/ast/stmt"
	"github.com/consensys/go-arithc/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Execute a sequence of statements in the current context, stopping early if a
// return statement is executed.
func (p *Interpreter) execAll(stmts []stmt.Stmt) error {
	for _, s := range stmts {
		if err := p.exec(s); err != nil {
			return err
		} else if p.result != nil {
			return nil
		}
	}
	//
	return nil
}

func (p *Interpreter) exec(s stmt.Stmt) error {
	var err error
	//
	switch s := s.(type) {
	case *stmt.Block:
		err = p.execBlock(s)
	case *stmt.ConstraintEquality:
		log.Debugf("ignoring constraint %s", s)
	case *stmt.Declaration:
		err = p.execDeclaration(s)
	case *stmt.IfThenElse:
		err = p.execIfThenElse(s)
	case *stmt.InitializationBlock:
		err = p.execAll(s.Stmts)
	case *stmt.Return:
		err = p.execReturn(s)
	case *stmt.Substitution:
		err = p.execSubstitution(s)
	case *stmt.While:
		err = p.execWhile(s)
	default:
		panic(fmt.Sprintf("unknown statement %s", s.String()))
	}
	//
	return p.locate(s, err)
}

// A block is executed in a fresh (non-call) context, such that items declared
// within are not visible after the block.
func (p *Interpreter) execBlock(s *stmt.Block) error {
	p.stack.PushContext(false)
	//
	err := p.execAll(s.Stmts)
	//
	p.stack.PopContext()
	//
	return err
}

func (p *Interpreter) execDeclaration(s *stmt.Declaration) error {
	var shape = make([]uint32, len(s.Dims))
	//
	for i, dim := range s.Dims {
		n, err := p.evalConcrete(dim, "array dimension")
		//
		if err != nil {
			return err
		}
		//
		shape[i] = n
	}
	//
	switch s.Kind {
	case stmt.VAR:
		_, err := p.stack.DeclareItem(scope.VARIABLE, s.Name, shape)
		return err
	case stmt.SIGNAL:
		return p.declareSignal(s, shape)
	case stmt.COMPONENT:
		_, err := p.stack.DeclareItem(scope.COMPONENT, s.Name, shape)
		return err
	default:
		panic(fmt.Sprintf("unknown declaration kind %d", s.Kind))
	}
}

// Every cell of a signal is registered as a free wire in the circuit as soon
// as it is declared.
func (p *Interpreter) declareSignal(s *stmt.Declaration, shape []uint32) error {
	if p.calls > 0 {
		return fault.New(fault.INVALID_DATA_TYPE, "signal %s declared within a function", s.Name)
	}
	//
	ids, err := p.stack.DeclareItem(scope.SIGNAL, s.Name, shape)
	//
	if err != nil {
		return err
	}
	//
	for i, id := range ids {
		if err := p.circuit.AddVar(id, scope.CellName(p.path, s.Name, shape, uint32(i))); err != nil {
			return err
		}
	}
	//
	item, err := p.stack.Lookup(s.Name)
	//
	if err != nil {
		return err
	}
	//
	switch s.Role {
	case stmt.INPUT:
		item.Role = scope.INPUT
	case stmt.OUTPUT:
		item.Role = scope.OUTPUT
	}
	//
	return nil
}

func (p *Interpreter) execIfThenElse(s *stmt.IfThenElse) error {
	cond, err := p.evalConcrete(s.Cond, "condition")
	//
	switch {
	case err != nil:
		return err
	case cond != 0:
		return p.exec(s.Then)
	case s.Else != nil:
		return p.exec(s.Else)
	default:
		return nil
	}
}

// Loops are unrolled during interpretation, hence the condition must be known
// at compile time on every iteration.
func (p *Interpreter) execWhile(s *stmt.While) error {
	for n := uint(0); ; n++ {
		cond, err := p.evalConcrete(s.Cond, "condition")
		//
		if err != nil {
			return err
		} else if cond == 0 {
			return nil
		} else if p.maxUnroll != 0 && n >= p.maxUnroll {
			return fault.New(fault.LOOP_BOUND_EXCEEDED, "more than %d iterations", p.maxUnroll)
		} else if err = p.exec(s.Body); err != nil || p.result != nil {
			return err
		}
	}
}

func (p *Interpreter) execReturn(s *stmt.Return) error {
	if p.calls == 0 {
		return fault.New(fault.INVALID_DATA_TYPE, "return outside of function")
	}
	//
	val, err := p.eval(s.Value)
	//
	if err == nil {
		p.result = &val
	}
	//
	return err
}

func (p *Interpreter) execSubstitution(s *stmt.Substitution) error {
	access, err := p.evalAccess(s.Target)
	//
	if err != nil {
		return err
	}
	//
	target, err := p.stack.Resolve(access)
	//
	if err != nil {
		return err
	}
	//
	switch target.Kind() {
	case scope.VARIABLE:
		return p.assignVariable(s, access, target)
	case scope.SIGNAL:
		return p.assignSignal(s, access, target)
	case scope.COMPONENT:
		return p.assignComponent(s, target)
	default:
		panic(fmt.Sprintf("unknown data type %d", target.Kind()))
	}
}

// Assigning a variable overwrites its value(s) in place.
func (p *Interpreter) assignVariable(s *stmt.Substitution, access scope.Access, target scope.Target) error {
	if s.Op != stmt.ASSIGN {
		return fault.New(fault.INVALID_DATA_TYPE, "variable %s assigned with %s", access, s.Op)
	}
	//
	val, err := p.evalShaped(s.Rhs, target)
	//
	if err != nil {
		return err
	} else if !val.IsConcrete() {
		return fault.New(fault.INVALID_DATA_TYPE, "variable %s assigned a signal", access)
	} else if val.IsScalar() && len(target.Shape) == 0 {
		return p.stack.SetVariable(access, val.Scalar().Value())
	}
	//
	for i, c := range val.cells {
		target.Item.Values[target.Offset+uint32(i)] = util.Some(c.Value())
	}
	//
	return nil
}

// Assigning a signal merges the wire of each assigned cell into the target
// cell, such that the target identifier is canonical.  Concrete values are
// first materialised as constant wires.
func (p *Interpreter) assignSignal(s *stmt.Substitution, access scope.Access, target scope.Target) error {
	if s.Op == stmt.ASSIGN {
		return fault.New(fault.INVALID_DATA_TYPE, "signal %s assigned with =", access)
	} else if target.External && target.Item.Role != scope.INPUT {
		return fault.New(fault.INVALID_DATA_TYPE, "cannot assign %s which is not a component input", access)
	}
	//
	val, err := p.evalShaped(s.Rhs, target)
	//
	if err != nil {
		return err
	}
	//
	for i, c := range val.cells {
		var (
			src = p.wire(c)
			dst = target.Item.Ids[target.Offset+uint32(i)]
		)
		//
		if target.External {
			err = p.stack.AddConnection(cellAccess(access, target.Shape, uint32(i)), src)
		} else {
			err = p.circuit.AddConnection(dst, src)
		}
		//
		if err != nil {
			return err
		}
	}
	//
	return nil
}

// Assigning a component instantiates a template.  Each component cell may be
// instantiated at most once.
func (p *Interpreter) assignComponent(s *stmt.Substitution, target scope.Target) error {
	var (
		item = target.Item
		call *expr.Call
		ok   bool
	)
	//
	switch {
	case p.calls > 0:
		return fault.New(fault.INVALID_DATA_TYPE, "component %s instantiated within a function", s.Target)
	case s.Op != stmt.ASSIGN:
		return fault.New(fault.INVALID_DATA_TYPE, "component %s assigned with %s", s.Target, s.Op)
	case len(target.Shape) != 0:
		return fault.New(fault.INVALID_DATA_TYPE, "component array %s assigned", s.Target)
	case item.Instances[target.Offset] != nil:
		return fault.New(fault.DUPLICATE_DECLARATION, "component %s already instantiated", s.Target)
	}
	//
	if call, ok = s.Rhs.(*expr.Call); !ok {
		return fault.New(fault.INVALID_DATA_TYPE, "component %s assigned %s", s.Target, s.Rhs)
	}
	//
	template, ok := p.program.Templates[call.Name]
	//
	if !ok {
		return p.unknownCallable(call.Name)
	}
	//
	args, err := p.evalArgs(call.Args)
	//
	if err != nil {
		return err
	}
	//
	path := scope.CellName(p.path, item.Name, item.Shape, target.Offset)
	instance, err := p.instantiate(template, args, path)
	//
	if err != nil {
		return err
	}
	//
	item.Instances[target.Offset] = instance
	//
	return nil
}

// Construct an access to a single cell within a (possibly multi-dimensional)
// target.
func cellAccess(access scope.Access, shape []uint32, cell uint32) scope.Access {
	var selectors = make([]scope.Selector, len(access.Selectors), len(access.Selectors)+len(shape))
	//
	copy(selectors, access.Selectors)
	//
	for i := range shape {
		stride := scope.Size(shape[i+1:])
		selectors = append(selectors, scope.Index(cell/stride))
		cell %= stride
	}
	//
	return scope.NewAccess(access.Name, selectors...)
}
