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
package circuit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Var is a wire registered with the circuit, either a (named) signal or an
// anonymous constant.
type Var struct {
	Name  string
	Value util.Option[uint32]
}

// Port associates a name with a wire, such as an input or output of the main
// component.
type Port struct {
	Name string `json:"name"`
	Wire uint32 `json:"wire"`
}

// Circuit is the gate-level circuit built up during interpretation.  Every
// wire has a unique identifier drawn from a single monotonic allocator, and
// wires may be merged into nodes when the program connects them.  A node has at
// most one producer: either a single gate writes it, or it holds a constant.
type Circuit struct {
	vars map[uint32]Var
	// Identifiers of constant wires, indexed by value.
	consts map[uint32]uint32
	// Gates in order of construction.  Gate fields hold the identifiers
	// supplied at construction, and are resolved through the node set on
	// access.
	gates []Gate
	nodes nodeSet
	// Next unused identifier
	next uint32
	// Ports of the main component
	inputs  []Port
	outputs []Port
}

// NewCircuit constructs an empty circuit.
func NewCircuit() *Circuit {
	return &Circuit{
		vars:   make(map[uint32]Var),
		consts: make(map[uint32]uint32),
		nodes:  newNodeSet(),
	}
}

// NextId allocates a fresh identifier.  Identifiers are never reused.
func (p *Circuit) NextId() uint32 {
	id := p.next
	p.next++
	//
	return id
}

// AddVar registers a new free wire with the given identifier and name.
func (p *Circuit) AddVar(id uint32, name string) error {
	if _, ok := p.vars[id]; ok {
		return fault.New(fault.DUPLICATE_DECLARATION, "wire %d (%s) already registered", id, name)
	}
	//
	p.vars[id] = Var{name, util.None[uint32]()}
	p.nodes.insert(id, util.None[uint32]())
	p.next = max(p.next, id+1)
	//
	return nil
}

// AddConstVar returns the wire holding a given constant value, allocating one
// if none exists yet.  Hence, there is at most one wire per distinct constant.
func (p *Circuit) AddConstVar(value uint32) uint32 {
	if id, ok := p.consts[value]; ok {
		return id
	}
	//
	id := p.NextId()
	p.vars[id] = Var{"", util.Some(value)}
	p.consts[value] = id
	p.nodes.insert(id, util.Some(value))
	//
	return id
}

// AddGate appends a new gate to the circuit.  All three wires must already be
// registered, and the output wire must not already have a producer.
func (p *Circuit) AddGate(kind GateType, lhs, rhs, out uint32) error {
	if !kind.IsValid() {
		return fault.New(fault.UNSUPPORTED_GATE_TYPE, "%s", kind)
	}
	//
	for _, id := range []uint32{lhs, rhs, out} {
		if !p.nodes.contains(id) {
			return fault.New(fault.VARIABLE_NOT_DECLARED, "wire %d", id)
		}
	}
	//
	node := p.nodes.node(out)
	//
	if node.HasProducer() {
		return fault.New(fault.CANNOT_MERGE_OUTPUT_NODES, "wire %s already has a producer", p.describe(out))
	}
	//
	node.driven = true
	p.gates = append(p.gates, Gate{kind, lhs, rhs, out})
	//
	return nil
}

// AddConnection merges the nodes of two wires so that they denote the same
// wire.  The canonical identifier of the merged node is that of the first
// wire's node.  Merging a node with itself has no effect.  Merging two nodes
// which both have a producer fails, leaving the circuit unchanged.
func (p *Circuit) AddConnection(dst, src uint32) error {
	if !p.nodes.contains(dst) {
		return fault.New(fault.NODE_NOT_FOUND, "wire %d", dst)
	} else if !p.nodes.contains(src) {
		return fault.New(fault.NODE_NOT_FOUND, "wire %d", src)
	}
	//
	ra, rb := p.nodes.root(dst), p.nodes.root(src)
	//
	if ra == rb {
		return nil
	} else if p.nodes.info[ra].HasProducer() && p.nodes.info[rb].HasProducer() {
		return fault.New(fault.CANNOT_MERGE_OUTPUT_NODES, "%s and %s", p.describe(dst), p.describe(src))
	}
	//
	merged := p.nodes.union(ra, rb)
	//
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("merged wire %s into %s", p.describe(src), p.describe(merged.id))
	}
	//
	return nil
}

// HasOutput checks whether the node of a given wire already has a producer,
// either a gate or a constant value.
func (p *Circuit) HasOutput(id uint32) bool {
	if !p.nodes.contains(id) {
		return false
	}
	//
	return p.nodes.node(id).HasProducer()
}

// Find returns the canonical identifier of the node containing a given wire.
func (p *Circuit) Find(id uint32) (uint32, error) {
	if !p.nodes.contains(id) {
		return 0, fault.New(fault.NODE_NOT_FOUND, "wire %d", id)
	}
	//
	return p.nodes.node(id).id, nil
}

// Node returns the node containing a given wire.
func (p *Circuit) Node(id uint32) (*Node, error) {
	if !p.nodes.contains(id) {
		return nil, fault.New(fault.NODE_NOT_FOUND, "wire %d", id)
	}
	//
	return p.nodes.node(id), nil
}

// Var returns the registration of a given wire.
func (p *Circuit) Var(id uint32) (Var, bool) {
	v, ok := p.vars[id]
	return v, ok
}

// Names returns the names of all signals merged into the node of a given wire,
// in merge order.
func (p *Circuit) Names(id uint32) []string {
	var names []string
	//
	if p.nodes.contains(id) {
		for _, m := range p.nodes.node(id).members {
			if name := p.vars[m].Name; name != "" {
				names = append(names, name)
			}
		}
	}
	//
	return names
}

// NumGates returns the number of gates in this circuit.
func (p *Circuit) NumGates() uint {
	return uint(len(p.gates))
}

// NumVars returns the number of wires registered with this circuit, including
// those since merged away.
func (p *Circuit) NumVars() uint {
	return uint(len(p.vars))
}

// Gates returns the gates of this circuit in construction order, with every
// wire replaced by the canonical identifier of its node.
func (p *Circuit) Gates() []Gate {
	gates := make([]Gate, len(p.gates))
	//
	for i, g := range p.gates {
		gates[i] = p.canonical(g)
	}
	//
	return gates
}

// SignalsWithPrefix returns every named signal whose hierarchical name is
// either the given path, or lies beneath it (e.g. "0.in" matches "0.in",
// "0.in[2]" and "0.in.x" but not "0.input").  Signals are returned in
// declaration order.
func (p *Circuit) SignalsWithPrefix(prefix string) []Port {
	var signals []Port
	//
	for _, id := range p.sortedIds() {
		name := p.vars[id].Name
		//
		if name == "" || !strings.HasPrefix(name, prefix) {
			continue
		} else if rest := name[len(prefix):]; rest == "" || rest[0] == '.' || rest[0] == '[' {
			signals = append(signals, Port{name, id})
		}
	}
	//
	return signals
}

// AddInput declares a wire as an input of the circuit.
func (p *Circuit) AddInput(name string, id uint32) error {
	if !p.nodes.contains(id) {
		return fault.New(fault.NODE_NOT_FOUND, "input %s (wire %d)", name, id)
	}
	//
	p.inputs = append(p.inputs, Port{name, id})
	//
	return nil
}

// AddOutput declares a wire as an output of the circuit.
func (p *Circuit) AddOutput(name string, id uint32) error {
	if !p.nodes.contains(id) {
		return fault.New(fault.NODE_NOT_FOUND, "output %s (wire %d)", name, id)
	}
	//
	p.outputs = append(p.outputs, Port{name, id})
	//
	return nil
}

// Inputs returns the declared inputs of this circuit.
func (p *Circuit) Inputs() []Port {
	return p.inputs
}

// Outputs returns the declared outputs of this circuit.
func (p *Circuit) Outputs() []Port {
	return p.outputs
}

func (p *Circuit) canonical(g Gate) Gate {
	return Gate{g.Kind, p.nodes.node(g.Lhs).id, p.nodes.node(g.Rhs).id, p.nodes.node(g.Out).id}
}

func (p *Circuit) sortedIds() []uint32 {
	ids := make([]uint32, 0, len(p.vars))
	//
	for id := range p.vars {
		ids = append(ids, id)
	}
	//
	slices.Sort(ids)
	//
	return ids
}

// describe a wire for error reporting.
func (p *Circuit) describe(id uint32) string {
	var v, ok = p.vars[id]
	//
	switch {
	case !ok:
		return fmt.Sprintf("%d", id)
	case v.Value.HasValue():
		return fmt.Sprintf("%d (constant %d)", id, v.Value.Unwrap())
	case v.Name != "":
		return fmt.Sprintf("%d (%s)", id, v.Name)
	default:
		return fmt.Sprintf("%d", id)
	}
}
