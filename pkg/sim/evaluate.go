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
package sim

import (
	"strings"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
	log "github.com/sirupsen/logrus"
)

// Evaluate runs a netlist over a given set of named inputs, returning the value
// of each named output.  Inputs can be named either in full (e.g. "0.in[1]") or
// relative to the main component (e.g. "in[1]").  Constant wires are fed from
// the netlist itself, whilst any remaining externally supplied wire (i.e. one
// which is read but never assigned) defaults to zero.  A netlist with more wires
// than its inputs and gates can account for is rejected.
func Evaluate[T any](netlist *circuit.Netlist, sem Semantics[T], inputs map[string]T) (map[string]T, error) {
	// Every wire is either externally supplied or written by a gate
	if uint64(netlist.NumWires) > uint64(netlist.NumInputWires)+uint64(len(netlist.Gates)) {
		return nil, fault.New(fault.INVALID_INPUT, "%d wires exceeds %d input wire(s) and %d gate(s)",
			netlist.NumWires, netlist.NumInputWires, len(netlist.Gates))
	} else if netlist.NumInputWires > netlist.NumWires {
		return nil, fault.New(fault.INVALID_INPUT, "%d input wires exceeds %d wires",
			netlist.NumInputWires, netlist.NumWires)
	}
	//
	var (
		wires    = make([]T, netlist.NumWires)
		assigned = make([]bool, netlist.NumInputWires)
		used     = make(map[string]bool)
	)
	//
	for _, port := range netlist.Inputs {
		val, name, ok := lookup(inputs, port.Name)
		//
		if !ok {
			return nil, fault.New(fault.INVALID_INPUT, "missing input %s", port.Name)
		} else if port.Wire >= netlist.NumInputWires {
			return nil, fault.New(fault.NODE_NOT_FOUND, "input %s on wire %d", port.Name, port.Wire)
		}
		//
		wires[port.Wire] = val
		assigned[port.Wire] = true
		used[name] = true
	}
	//
	for name := range inputs {
		if !used[name] {
			log.Warnf("ignoring unknown input %s", name)
		}
	}
	//
	for _, c := range netlist.Constants {
		if c.Wire >= netlist.NumInputWires {
			return nil, fault.New(fault.NODE_NOT_FOUND, "constant %d on wire %d", c.Value, c.Wire)
		}
		//
		wires[c.Wire] = sem.FromUint64(uint64(c.Value))
		assigned[c.Wire] = true
	}
	//
	for w, ok := range assigned {
		if !ok {
			log.Debugf("wire %d has no value, defaulting to zero", w)
			wires[w] = sem.FromUint64(0)
		}
	}
	//
	for _, g := range netlist.Gates {
		if g.Lhs >= netlist.NumWires || g.Rhs >= netlist.NumWires || g.Out >= netlist.NumWires {
			return nil, fault.New(fault.NODE_NOT_FOUND, "gate %s", g)
		}
		//
		val, err := sem.Apply(g.Kind, wires[g.Lhs], wires[g.Rhs])
		//
		if err != nil {
			return nil, err
		}
		//
		wires[g.Out] = val
	}
	//
	outputs := make(map[string]T, len(netlist.Outputs))
	//
	for _, port := range netlist.Outputs {
		if port.Wire >= netlist.NumWires {
			return nil, fault.New(fault.NODE_NOT_FOUND, "output %s on wire %d", port.Name, port.Wire)
		}
		//
		outputs[port.Name] = wires[port.Wire]
	}
	//
	return outputs, nil
}

func lookup[T any](inputs map[string]T, name string) (T, string, bool) {
	if val, ok := inputs[name]; ok {
		return val, name, true
	}
	// Try relative to the main component
	if _, rest, found := strings.Cut(name, "."); found {
		val, ok := inputs[rest]
		return val, rest, ok
	}
	//
	var empty T
	//
	return empty, name, false
}
