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
	log "github.com/sirupsen/logrus"
)

// TruncateZeroAddGates removes every addition gate with a constant zero operand,
// merging its output into the other operand.  Gates for which the merge fails
// are kept unchanged.  This returns the number of gates removed.
func (p *Circuit) TruncateZeroAddGates() uint {
	var (
		kept    = make([]Gate, 0, len(p.gates))
		removed uint
	)
	//
	for _, gate := range p.gates {
		operand, ok := p.zeroAddOperand(gate)
		//
		if ok && p.bypass(gate, operand) {
			removed++
			continue
		}
		//
		kept = append(kept, gate)
	}
	//
	p.gates = kept
	//
	log.Debugf("removed %d zero addition gate(s)", removed)
	//
	return removed
}

// Determine the non-zero operand of an addition with zero (if applicable).
func (p *Circuit) zeroAddOperand(gate Gate) (uint32, bool) {
	if gate.Kind != ADD {
		return 0, false
	} else if p.isZero(gate.Rhs) {
		return gate.Lhs, true
	} else if p.isZero(gate.Lhs) {
		return gate.Rhs, true
	}
	//
	return 0, false
}

func (p *Circuit) isZero(id uint32) bool {
	val := p.nodes.node(id).value
	return val.HasValue() && val.Unwrap() == 0
}

// Remove a gate by merging its output node into the given operand.  If the
// merge fails, the output is marked driven again and false is returned.  A gate
// reading its own output is never bypassed, since that would leave the node
// without a producer and hide the cycle.
func (p *Circuit) bypass(gate Gate, operand uint32) bool {
	if p.nodes.root(operand) == p.nodes.root(gate.Out) {
		return false
	}
	//
	out := p.nodes.node(gate.Out)
	out.driven = false
	//
	if err := p.AddConnection(operand, gate.Out); err != nil {
		log.Debugf("cannot bypass %s: %s", gate, err)
		// restore
		p.nodes.node(gate.Out).driven = true
		//
		return false
	}
	//
	return true
}
