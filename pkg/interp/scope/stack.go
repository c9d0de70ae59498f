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

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/util"
	"github.com/consensys/go-arithc/pkg/util/collection/stack"
)

// Wires is the part of the circuit on which the context engine depends: the
// identifier allocator, and the operation connecting two wires.
type Wires interface {
	// NextId allocates a fresh identifier.
	NextId() uint32
	// AddConnection merges the wire src into the wire dst.
	AddConnection(dst, src uint32) error
}

// Context holds the items declared within one scope.  A call context begins a
// new function or template body, whilst other contexts correspond to nested
// blocks.
type Context struct {
	call  bool
	items map[string]*Item
	// Item names in declaration order
	order []string
}

func newContext(call bool) *Context {
	return &Context{call, make(map[string]*Item), nil}
}

// IsCall checks whether this context begins a function or template body.
func (p *Context) IsCall() bool {
	return p.call
}

// Items returns the items declared in this context, in declaration order.
func (p *Context) Items() []*Item {
	items := make([]*Item, len(p.order))
	//
	for i, name := range p.order {
		items[i] = p.items[name]
	}
	//
	return items
}

// Stack is the stack of contexts maintained during interpretation.  Name
// lookup starts at the innermost context, and proceeds outwards up to and
// including the innermost call context.  Hence, the body of a call cannot see
// the items of its caller.
type Stack struct {
	frames *stack.Stack[*Context]
	wires  Wires
	// Counter for anonymous items
	tmp uint
}

// NewStack constructs an empty context stack over a given circuit.
func NewStack(wires Wires) *Stack {
	return &Stack{stack.NewStack[*Context](), wires, 0}
}

// Depth returns the number of contexts on the stack.
func (p *Stack) Depth() uint {
	return p.frames.Len()
}

// PushContext enters a new (initially empty) context.
func (p *Stack) PushContext(call bool) {
	p.frames.Push(newContext(call))
}

// PopContext leaves the current context, returning it.  Signals declared in
// the context remain part of the circuit.
func (p *Stack) PopContext() *Context {
	return p.frames.Pop()
}

// Current returns the innermost context.
func (p *Stack) Current() *Context {
	return p.frames.Peek(0)
}

// DeclareItem declares a new item in the current context, allocating one
// identifier per cell.  The name must not already be declared in the current
// context, and the shape must not exceed MaxCells.
func (p *Stack) DeclareItem(kind DataType, name string, shape []uint32) ([]uint32, error) {
	if _, ok := p.Current().items[name]; ok {
		return nil, fault.New(fault.DUPLICATE_DECLARATION, "%s", name)
	}
	//
	size, err := CheckSize(shape)
	//
	if err != nil {
		return nil, err
	}
	//
	ids := make([]uint32, size)
	//
	for i := range ids {
		ids[i] = p.wires.NextId()
	}
	//
	if err := p.bind(kind, name, shape, ids); err != nil {
		return nil, err
	}
	//
	return ids, nil
}

// DeclareAlias declares a new signal item in the current context whose cells
// are existing wires.  This is used to pass signals into function calls.
func (p *Stack) DeclareAlias(name string, shape []uint32, ids []uint32) error {
	if uint32(len(ids)) != Size(shape) {
		panic(fmt.Sprintf("alias %s has %d wires for shape %v", name, len(ids), shape))
	}
	//
	return p.bind(SIGNAL, name, shape, ids)
}

// DeclareRandomItem declares an anonymous scalar item, returning its generated
// name and identifier.  Generated names are not valid identifiers, and so never
// clash with declared items.
func (p *Stack) DeclareRandomItem(kind DataType) (string, uint32, error) {
	name := fmt.Sprintf("#tmp%d", p.tmp)
	p.tmp++
	//
	ids, err := p.DeclareItem(kind, name, nil)
	//
	if err != nil {
		return "", 0, err
	}
	//
	return name, ids[0], nil
}

// Lookup finds the item for a given name.
func (p *Stack) Lookup(name string) (*Item, error) {
	for i := range p.frames.Len() {
		frame := p.frames.Peek(i)
		//
		if item, ok := frame.items[name]; ok {
			return item, nil
		} else if frame.call {
			break
		}
	}
	//
	return nil, fault.New(fault.UNDECLARED_ITEM, "%s", name)
}

// Resolve determines the cells addressed by a given access.  Every index must
// lie within its dimension, and member selectors must be applied to a single
// instantiated component.
func (p *Stack) Resolve(access Access) (Target, error) {
	item, err := p.Lookup(access.Name)
	//
	if err != nil {
		return Target{}, err
	}
	//
	target := Target{item, 0, item.Shape, false}
	//
	for _, sel := range access.Selectors {
		if sel.IsMember() {
			target, err = member(target, sel.member, access)
		} else {
			target, err = index(target, sel.index, access)
		}
		//
		if err != nil {
			return target, err
		}
	}
	//
	return target, nil
}

// GetVariable reads the value of a single variable cell.
func (p *Stack) GetVariable(access Access) (uint32, error) {
	target, err := p.variable(access)
	//
	if err != nil {
		return 0, err
	} else if val := target.Item.Values[target.Offset]; val.HasValue() {
		return val.Unwrap(), nil
	}
	//
	return 0, fault.New(fault.EMPTY_DATA_ITEM, "%s", access)
}

// SetVariable assigns the value of a single variable cell.
func (p *Stack) SetVariable(access Access, value uint32) error {
	target, err := p.variable(access)
	//
	if err != nil {
		return err
	}
	//
	target.Item.Values[target.Offset] = util.Some(value)
	//
	return nil
}

// AddConnection wires a source signal into a signal of some component, by
// merging the two wires such that the component's wire is canonical.
func (p *Stack) AddConnection(dst Access, src uint32) error {
	target, err := p.Resolve(dst)
	//
	switch {
	case err != nil:
		return err
	case !target.External || target.Kind() != SIGNAL:
		return fault.New(fault.INVALID_DATA_TYPE, "%s is not a component signal", dst)
	case target.Size() != 1:
		return fault.New(fault.INVALID_DATA_TYPE, "%s is not a single signal", dst)
	}
	//
	return p.wires.AddConnection(target.Item.Ids[target.Offset], src)
}

func (p *Stack) variable(access Access) (Target, error) {
	target, err := p.Resolve(access)
	//
	switch {
	case err != nil:
		return target, err
	case target.Kind() != VARIABLE:
		return target, fault.New(fault.UNDECLARED_ITEM, "%s is a %s, not a variable", access, target.Kind())
	case target.Size() != 1:
		return target, fault.New(fault.INVALID_DATA_TYPE, "%s is not a single variable", access)
	}
	//
	return target, nil
}

func (p *Stack) bind(kind DataType, name string, shape []uint32, ids []uint32) error {
	var (
		frame = p.frames.Peek(0)
		n     = len(ids)
	)
	//
	if _, ok := frame.items[name]; ok {
		return fault.New(fault.DUPLICATE_DECLARATION, "%s", name)
	}
	//
	item := &Item{Name: name, Kind: kind, Shape: shape, Ids: ids}
	//
	switch kind {
	case VARIABLE:
		item.Values = make([]util.Option[uint32], n)
	case SIGNAL:
		// nothing
	case COMPONENT:
		item.Instances = make([]*Instance, n)
	default:
		panic(fmt.Sprintf("unknown data type %d", kind))
	}
	//
	frame.items[name] = item
	frame.order = append(frame.order, name)
	//
	return nil
}

func index(target Target, i uint32, access Access) (Target, error) {
	if len(target.Shape) == 0 {
		return target, fault.New(fault.INDEX_OUT_OF_BOUNDS, "too many indices in %s", access)
	} else if i >= target.Shape[0] {
		return target, fault.New(fault.INDEX_OUT_OF_BOUNDS, "index %d in %s exceeds dimension %d", i,
			access, target.Shape[0])
	}
	//
	target.Offset += i * Size(target.Shape[1:])
	target.Shape = target.Shape[1:]
	//
	return target, nil
}

func member(target Target, name string, access Access) (Target, error) {
	if target.Kind() != COMPONENT || len(target.Shape) != 0 {
		return target, fault.New(fault.INVALID_DATA_TYPE, "member %s of non-component in %s", name, access)
	}
	//
	instance := target.Item.Instances[target.Offset]
	//
	if instance == nil {
		return target, fault.New(fault.EMPTY_DATA_ITEM, "component in %s not instantiated", access)
	}
	//
	port, ok := instance.Ports[name]
	//
	if !ok {
		return target, fault.New(fault.UNDECLARED_ITEM, "%s has no port %s", instance.Template, name)
	}
	//
	return Target{port, 0, port.Shape, true}, nil
}
