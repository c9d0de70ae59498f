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
	"cmp"
	"slices"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/util/topo"
	log "github.com/sirupsen/logrus"
)

// Constant associates a constant value with the wire holding it.
type Constant struct {
	Wire  uint32 `json:"wire"`
	Value uint32 `json:"value"`
}

// Ports describes how the wires of a netlist relate to the program: which
// wires carry named inputs and outputs, and which carry constants.
type Ports struct {
	Inputs    []Port     `json:"inputs"`
	Outputs   []Port     `json:"outputs"`
	Constants []Constant `json:"constants"`
}

// Netlist is a linearised circuit with densely numbered wires.  Wires
// 0..NumInputWires-1 are supplied externally: first the distinct input wires,
// then the constant wires, then any wires which are read but never written.
// Every other wire is written by exactly one gate, and gates are ordered such
// that each gate comes after the gates writing its operands.
type Netlist struct {
	NumWires      uint32
	NumInputWires uint32
	Ports
	Gates []Gate
}

// Export linearises this circuit into a netlist.  Nodes which are neither
// connected to a gate nor to a port are dropped.  This fails if the gates
// contain a cycle, or an input wire is written within the circuit.
func (p *Circuit) Export() (*Netlist, error) {
	var (
		gates = p.Gates()
		// Dense numbering of canonical identifiers
		wires = make(map[uint32]uint32)
		// Producing gate of each canonical identifier
		producer = make(map[uint32]uint, len(gates))
		netlist  Netlist
	)
	//
	for i, g := range gates {
		producer[g.Out] = uint(i)
	}
	// Inputs first
	for _, port := range p.inputs {
		node := p.nodes.node(port.Wire)
		//
		if node.HasProducer() {
			return nil, fault.New(fault.INVALID_INPUT, "input %s is assigned within the circuit", port.Name)
		}
		//
		allocate(wires, node.id)
	}
	// Constants and undriven wires
	constants, undriven := p.classify(gates)
	//
	for _, id := range constants {
		wire := allocate(wires, id)
		netlist.Constants = append(netlist.Constants, Constant{wire, p.nodes.node(id).value.Unwrap()})
	}
	//
	for _, id := range undriven {
		log.Warnf("wire %s is read but never assigned", p.describe(id))
		allocate(wires, id)
	}
	//
	netlist.NumInputWires = uint32(len(wires))
	// Gates in dependency order
	order, err := topo.Sort(uint(len(gates)), func(i uint) []uint {
		var deps []uint
		//
		for _, operand := range []uint32{gates[i].Lhs, gates[i].Rhs} {
			if j, ok := producer[operand]; ok {
				deps = append(deps, j)
			}
		}
		//
		return deps
	})
	//
	if err != nil {
		return nil, err
	}
	//
	netlist.Gates = make([]Gate, len(order))
	//
	for i, j := range order {
		g := gates[j]
		out := allocate(wires, g.Out)
		netlist.Gates[i] = Gate{g.Kind, wires[g.Lhs], wires[g.Rhs], out}
	}
	//
	netlist.NumWires = uint32(len(wires))
	netlist.Inputs = p.exportPorts(p.inputs, wires)
	netlist.Outputs = p.exportPorts(p.outputs, wires)
	//
	return &netlist, nil
}

// Identify the constant and undriven nodes which are actually used, in order of
// (respectively) value and canonical identifier.
func (p *Circuit) classify(gates []Gate) (constants []uint32, undriven []uint32) {
	var (
		inputs = make(map[uint32]bool)
		seen   = make(map[uint32]bool)
		used   []uint32
	)
	//
	for _, port := range p.inputs {
		inputs[p.nodes.node(port.Wire).id] = true
	}
	//
	for _, g := range gates {
		used = append(used, g.Lhs, g.Rhs)
	}
	//
	for _, port := range p.outputs {
		used = append(used, p.nodes.node(port.Wire).id)
	}
	//
	for _, id := range used {
		node := p.nodes.node(id)
		//
		if seen[id] || inputs[id] {
			continue
		}
		//
		seen[id] = true
		//
		switch {
		case node.value.HasValue():
			constants = append(constants, id)
		case !node.driven:
			undriven = append(undriven, id)
		}
	}
	//
	slices.SortFunc(constants, func(a, b uint32) int {
		return cmp.Compare(p.nodes.node(a).value.Unwrap(), p.nodes.node(b).value.Unwrap())
	})
	slices.Sort(undriven)
	//
	return constants, undriven
}

func (p *Circuit) exportPorts(ports []Port, wires map[uint32]uint32) []Port {
	exported := make([]Port, len(ports))
	//
	for i, port := range ports {
		exported[i] = Port{port.Name, wires[p.nodes.node(port.Wire).id]}
	}
	//
	return exported
}

// Allocate the next dense wire for a canonical identifier, unless it already
// has one.
func allocate(wires map[uint32]uint32, id uint32) uint32 {
	if w, ok := wires[id]; ok {
		return w
	}
	//
	w := uint32(len(wires))
	wires[id] = w
	//
	return w
}
