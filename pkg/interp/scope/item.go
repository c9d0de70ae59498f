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
package scope

import (
	"fmt"
	"strings"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/util"
)

// MaxCells bounds the number of cells of any single item.
const MaxCells = 1 << 24

// DataType classifies every named item which can be declared.
type DataType uint8

// VARIABLE is a compile-time value, which is always concrete when read.
const VARIABLE DataType = 0

// SIGNAL is a wire of the circuit being constructed.
const SIGNAL DataType = 1

// COMPONENT is an instance of a template.
const COMPONENT DataType = 2

func (t DataType) String() string {
	switch t {
	case VARIABLE:
		return "variable"
	case SIGNAL:
		return "signal"
	case COMPONENT:
		return "component"
	default:
		panic(fmt.Sprintf("unknown data type %d", t))
	}
}

// Role distinguishes the ports of a template from its internal signals.
type Role uint8

// INTERMEDIATE signals are internal to a template.
const INTERMEDIATE Role = 0

// INPUT signals are written by the enclosing template.
const INPUT Role = 1

// OUTPUT signals are written by the template itself.
const OUTPUT Role = 2

// Item is a declared (possibly multi-dimensional) array of cells of a given
// kind.  Scalars have an empty shape and exactly one cell.  Cells are laid out
// in row-major order.
type Item struct {
	Name  string
	Kind  DataType
	Role  Role
	Shape []uint32
	// Identifier of each cell.
	Ids []uint32
	// Value of each cell (variables only).
	Values []util.Option[uint32]
	// Instance of each cell (components only).
	Instances []*Instance
}

// Size returns the number of cells in this item.
func (p *Item) Size() uint32 {
	return Size(p.Shape)
}

// Instance is an instantiated template.  Its ports are the input and output
// signals declared at the top level of the template body.
type Instance struct {
	Template string
	// Hierarchical path of this instance (e.g. "0.c[1]").
	Path  string
	Ports map[string]*Item
	// Port names in declaration order.
	Order []string
}

// NewInstance constructs an instance with no ports.
func NewInstance(template, path string) *Instance {
	return &Instance{template, path, make(map[string]*Item), nil}
}

// AddPort registers a port of this instance.
func (p *Instance) AddPort(port *Item) {
	p.Ports[port.Name] = port
	p.Order = append(p.Order, port.Name)
}

// CellName constructs the hierarchical name of a given cell of an item, such as
// "0.in[1][0]".
func CellName(path string, name string, shape []uint32, cell uint32) string {
	var builder strings.Builder
	//
	builder.WriteString(path)
	builder.WriteString(".")
	builder.WriteString(name)
	//
	for i := range shape {
		stride := Size(shape[i+1:])
		fmt.Fprintf(&builder, "[%d]", cell/stride)
		cell = cell % stride
	}
	//
	return builder.String()
}

// CheckSize returns the number of cells in an array of a given shape, failing
// if this exceeds MaxCells.
func CheckSize(shape []uint32) (uint32, error) {
	var n = uint64(1)
	//
	for _, d := range shape {
		if n *= uint64(d); n > MaxCells {
			return 0, fault.New(fault.INDEX_OUT_OF_BOUNDS, "array of shape %v exceeds %d cells", shape, MaxCells)
		}
	}
	//
	return uint32(n), nil
}

// Size returns the number of cells in an array of a given shape, which is
// assumed to have passed CheckSize.
func Size(shape []uint32) uint32 {
	var n = uint32(1)
	//
	for _, d := range shape {
		n *= d
	}
	//
	return n
}
