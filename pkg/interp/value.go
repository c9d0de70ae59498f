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
	"strings"

	"github.com/consensys/go-arithc/pkg/interp/scope"
)

// Cell is a single scalar produced by evaluating an expression.  A variable
// cell holds a concrete value known at compile time, whilst a signal cell
// holds the identifier of a wire whose value is only known when the circuit is
// evaluated.
type Cell struct {
	kind scope.DataType
	// Concrete value (variables) or wire identifier (signals)
	value uint32
}

// Kind returns the data type of this cell, which is either VARIABLE or SIGNAL.
func (c Cell) Kind() scope.DataType {
	return c.kind
}

// IsConcrete checks whether this cell holds a value known at compile time.
func (c Cell) IsConcrete() bool {
	return c.kind == scope.VARIABLE
}

// Value returns the concrete value of this cell.
func (c Cell) Value() uint32 {
	if c.kind != scope.VARIABLE {
		panic("signal has no concrete value")
	}
	//
	return c.value
}

// Wire returns the wire identifier of this cell.
func (c Cell) Wire() uint32 {
	if c.kind != scope.SIGNAL {
		panic("variable has no wire")
	}
	//
	return c.value
}

func (c Cell) String() string {
	if c.kind == scope.SIGNAL {
		return fmt.Sprintf("#%d", c.value)
	}
	//
	return fmt.Sprintf("%d", c.value)
}

// Value is the result of evaluating an expression, which is an array of cells
// laid out in row-major order.  A scalar has an empty shape.
type Value struct {
	shape []uint32
	cells []Cell
}

// Concrete constructs a scalar value known at compile time.
func Concrete(value uint32) Value {
	return Value{nil, []Cell{{scope.VARIABLE, value}}}
}

// Signal constructs a scalar value held on a given wire.
func Signal(wire uint32) Value {
	return Value{nil, []Cell{{scope.SIGNAL, wire}}}
}

// Shape returns the dimensions of this value.
func (v Value) Shape() []uint32 {
	return v.shape
}

// Cells returns the cells of this value.
func (v Value) Cells() []Cell {
	return v.cells
}

// IsScalar checks whether this value is a single cell.
func (v Value) IsScalar() bool {
	return len(v.shape) == 0
}

// IsConcrete checks whether every cell of this value is known at compile time.
func (v Value) IsConcrete() bool {
	for _, c := range v.cells {
		if !c.IsConcrete() {
			return false
		}
	}
	//
	return true
}

// Scalar returns the only cell of a scalar value.
func (v Value) Scalar() Cell {
	if !v.IsScalar() {
		panic("value is not a scalar")
	}
	//
	return v.cells[0]
}

func (v Value) String() string {
	if v.IsScalar() {
		return v.cells[0].String()
	}
	//
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, c := range v.cells {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(c.String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
