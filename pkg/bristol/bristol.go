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

// Package bristol reads and writes gate circuits in a Bristol-style text
// format.  A circuit file consists of a three line header followed by one line
// per gate:
//
//	<gate_count> <wire_count>
//	<input_count> 1 1 ... 1
//	<output_count> 1 1 ... 1
//
//	2 1 <lhs> <rhs> <out> <opcode>
//
// Every input and output has width 1 (i.e. one wire).  Blank lines are
// ignored.
package bristol

import (
	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
)

// Circuit is the content of a circuit file.
type Circuit struct {
	NumWires   uint32
	NumInputs  uint32
	NumOutputs uint32
	Gates      []circuit.Gate
}

// FromNetlist constructs the file representation of a linearised circuit.
// The inputs section covers every externally supplied wire, which includes
// constant wires.
func FromNetlist(netlist *circuit.Netlist) *Circuit {
	return &Circuit{
		NumWires:   netlist.NumWires,
		NumInputs:  netlist.NumInputWires,
		NumOutputs: uint32(len(netlist.Outputs)),
		Gates:      netlist.Gates,
	}
}

// ToNetlist reunites the content of a circuit file with the ports recorded
// alongside it.  This fails if the ports are inconsistent with the circuit
// (e.g. an output refers to a wire which does not exist).
func (c *Circuit) ToNetlist(ports circuit.Ports) (*circuit.Netlist, error) {
	if uint32(len(ports.Outputs)) != c.NumOutputs {
		return nil, fault.New(fault.INVALID_INPUT, "expected %d outputs, found %d", c.NumOutputs, len(ports.Outputs))
	}
	//
	for _, port := range ports.Inputs {
		if port.Wire >= c.NumInputs {
			return nil, fault.New(fault.INVALID_INPUT, "input %s on non-input wire %d", port.Name, port.Wire)
		}
	}
	//
	for _, k := range ports.Constants {
		if k.Wire >= c.NumInputs {
			return nil, fault.New(fault.INVALID_INPUT, "constant %d on non-input wire %d", k.Value, k.Wire)
		}
	}
	//
	for _, port := range ports.Outputs {
		if port.Wire >= c.NumWires {
			return nil, fault.New(fault.INVALID_INPUT, "output %s on unknown wire %d", port.Name, port.Wire)
		}
	}
	//
	return &circuit.Netlist{
		NumWires:      c.NumWires,
		NumInputWires: c.NumInputs,
		Ports:         ports,
		Gates:         c.Gates,
	}, nil
}
