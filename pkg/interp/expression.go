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
	"slices"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/interp/scope"
	"github.com/consensys/go-arithc/pkg/lang/ast/expr"
)

// Gate computing each binary operator.
var gates = [...]circuit.GateType{
	expr.ADD:      circuit.ADD,
	expr.SUB:      circuit.SUB,
	expr.MUL:      circuit.MUL,
	expr.DIV:      circuit.DIV,
	expr.INT_DIV:  circuit.INT_DIV,
	expr.MOD:      circuit.MOD,
	expr.POW:      circuit.POW,
	expr.SHL:      circuit.SHL,
	expr.SHR:      circuit.SHR,
	expr.EQ:       circuit.EQ,
	expr.NEQ:      circuit.NEQ,
	expr.LT:       circuit.LT,
	expr.GT:       circuit.GT,
	expr.LTEQ:     circuit.LTEQ,
	expr.GTEQ:     circuit.GTEQ,
	expr.BOOL_OR:  circuit.BOOL_OR,
	expr.BOOL_AND: circuit.BOOL_AND,
	expr.BIT_OR:   circuit.BIT_OR,
	expr.BIT_AND:  circuit.BIT_AND,
	expr.XOR:      circuit.XOR,
}

func (p *Interpreter) eval(e expr.Expr) (Value, error) {
	var (
		val Value
		err error
	)
	//
	switch e := e.(type) {
	case *expr.Access:
		val, err = p.evalRead(e)
	case *expr.Array:
		val, err = p.evalArray(e)
	case *expr.Call:
		val, err = p.evalCall(e)
	case *expr.Infix:
		val, err = p.evalInfix(e)
	case *expr.Number:
		val = Concrete(e.Value)
	case *expr.Prefix:
		val, err = p.evalPrefix(e)
	case *expr.Ternary:
		val, err = p.evalTernary(e)
	default:
		panic(fmt.Sprintf("unknown expression %s", e.String()))
	}
	//
	return val, p.locate(e, err)
}

// Evaluate an expression which must produce a single value known at compile
// time, such as a loop condition or an array index.
func (p *Interpreter) evalConcrete(e expr.Expr, what string) (uint32, error) {
	val, err := p.eval(e)
	//
	if err != nil {
		return 0, err
	} else if !val.IsScalar() || !val.IsConcrete() {
		return 0, p.locate(e, fault.New(fault.INVALID_DATA_TYPE, "%s %s not known at compile time", what, e))
	}
	//
	return val.Scalar().Value(), nil
}

// Evaluate an expression whose value is assigned to a given target, and hence
// must have the same number of cells.
func (p *Interpreter) evalShaped(e expr.Expr, target scope.Target) (Value, error) {
	val, err := p.eval(e)
	//
	if err != nil {
		return val, err
	} else if uint32(len(val.cells)) != target.Size() {
		return val, fault.New(fault.INVALID_DATA_TYPE, "cannot assign %s of shape %v to shape %v", e, val.shape,
			target.Shape)
	}
	//
	return val, nil
}

func (p *Interpreter) evalArgs(args []expr.Expr) ([]Value, error) {
	var vals = make([]Value, len(args))
	//
	for i, arg := range args {
		val, err := p.eval(arg)
		//
		if err != nil {
			return nil, err
		}
		//
		vals[i] = val
	}
	//
	return vals, nil
}

// Evaluate the selectors of an access expression, thus producing an access
// with concrete indices.
func (p *Interpreter) evalAccess(e *expr.Access) (scope.Access, error) {
	var selectors = make([]scope.Selector, len(e.Selectors))
	//
	for i, s := range e.Selectors {
		if s.IsMember() {
			selectors[i] = scope.Member(s.Member)
		} else if index, err := p.evalConcrete(s.Index, "index"); err != nil {
			return scope.Access{}, err
		} else {
			selectors[i] = scope.Index(index)
		}
	}
	//
	return scope.NewAccess(e.Name, selectors...), nil
}

// Read the cells addressed by an access expression.
func (p *Interpreter) evalRead(e *expr.Access) (Value, error) {
	access, err := p.evalAccess(e)
	//
	if err != nil {
		return Value{}, err
	}
	//
	target, err := p.stack.Resolve(access)
	//
	if err != nil {
		return Value{}, err
	}
	//
	var val = Value{target.Shape, make([]Cell, target.Size())}
	//
	switch target.Kind() {
	case scope.VARIABLE:
		if len(target.Shape) == 0 {
			v, err := p.stack.GetVariable(access)
			return Concrete(v), err
		}
		//
		for i := range val.cells {
			v := target.Item.Values[target.Offset+uint32(i)]
			//
			if v.IsEmpty() {
				return Value{}, fault.New(fault.EMPTY_DATA_ITEM, "%s", cellAccess(access, target.Shape, uint32(i)))
			}
			//
			val.cells[i] = Cell{scope.VARIABLE, v.Unwrap()}
		}
	case scope.SIGNAL:
		for i, id := range target.Ids() {
			val.cells[i] = Cell{scope.SIGNAL, id}
		}
	case scope.COMPONENT:
		return Value{}, fault.New(fault.INVALID_DATA_TYPE, "component %s used as a value", access)
	default:
		panic(fmt.Sprintf("unknown data type %d", target.Kind()))
	}
	//
	return val, nil
}

// Inline arrays must have elements of identical shape.
func (p *Interpreter) evalArray(e *expr.Array) (Value, error) {
	var val = Value{[]uint32{uint32(len(e.Elements))}, nil}
	//
	for i, elem := range e.Elements {
		v, err := p.eval(elem)
		//
		if err != nil {
			return Value{}, err
		} else if i == 0 {
			val.shape = append(val.shape, v.shape...)
		} else if !slices.Equal(v.shape, val.shape[1:]) {
			return Value{}, fault.New(fault.INVALID_DATA_TYPE, "inconsistent array element %s", elem)
		}
		//
		val.cells = append(val.cells, v.cells...)
	}
	//
	return val, nil
}

func (p *Interpreter) evalTernary(e *expr.Ternary) (Value, error) {
	cond, err := p.evalConcrete(e.Cond, "condition")
	//
	if err != nil {
		return Value{}, err
	} else if cond != 0 {
		return p.eval(e.Then)
	}
	//
	return p.eval(e.Else)
}

func (p *Interpreter) evalInfix(e *expr.Infix) (Value, error) {
	lhs, err := p.evalScalar(e.Lhs)
	//
	if err != nil {
		return Value{}, err
	}
	//
	rhs, err := p.evalScalar(e.Rhs)
	//
	if err != nil {
		return Value{}, err
	}
	//
	return p.apply(gates[e.Op], lhs, rhs)
}

// Unary operators are computed as gates with a constant operand when applied
// to signals.
func (p *Interpreter) evalPrefix(e *expr.Prefix) (Value, error) {
	arg, err := p.evalScalar(e.Arg)
	//
	if err != nil {
		return Value{}, err
	}
	//
	switch e.Op {
	case expr.NEG:
		return p.apply(circuit.SUB, Cell{scope.VARIABLE, 0}, arg)
	case expr.NOT:
		return p.apply(circuit.EQ, arg, Cell{scope.VARIABLE, 0})
	case expr.COMPLEMENT:
		return p.apply(circuit.XOR, arg, Cell{scope.VARIABLE, 0xffffffff})
	default:
		panic(fmt.Sprintf("unknown prefix operator %d", e.Op))
	}
}

func (p *Interpreter) evalScalar(e expr.Expr) (Cell, error) {
	val, err := p.eval(e)
	//
	if err != nil {
		return Cell{}, err
	} else if !val.IsScalar() {
		return Cell{}, p.locate(e, fault.New(fault.INVALID_DATA_TYPE, "array %s used as a scalar", e))
	}
	//
	return val.Scalar(), nil
}

// Apply a binary operation.  When both operands are known at compile time the
// operation is computed directly.  Otherwise, a gate is emitted whose output
// is a fresh temporary signal.
func (p *Interpreter) apply(kind circuit.GateType, lhs, rhs Cell) (Value, error) {
	if lhs.IsConcrete() && rhs.IsConcrete() {
		v, err := kind.Eval(lhs.Value(), rhs.Value())
		return Concrete(v), err
	}
	//
	out, err := p.temporary()
	//
	if err != nil {
		return Value{}, err
	} else if err = p.circuit.AddGate(kind, p.wire(lhs), p.wire(rhs), out); err != nil {
		return Value{}, err
	}
	//
	return Signal(out), nil
}

// Allocate a fresh anonymous signal in the current context.
func (p *Interpreter) temporary() (uint32, error) {
	name, id, err := p.stack.DeclareRandomItem(scope.SIGNAL)
	//
	if err != nil {
		return 0, err
	}
	//
	return id, p.circuit.AddVar(id, scope.CellName(p.path, name, nil, 0))
}

// Determine the wire holding a given cell, materialising concrete values as
// constant wires.
func (p *Interpreter) wire(c Cell) uint32 {
	if c.IsConcrete() {
		return p.circuit.AddConstVar(c.Value())
	}
	//
	return c.Wire()
}
