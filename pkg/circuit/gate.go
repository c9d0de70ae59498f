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

import "fmt"

// GateType identifies the operation computed by a gate.  The set of gate types
// is closed and corresponds one-to-one with the binary operators of the source
// language.
type GateType uint8

// ADD computes lhs + rhs.
const ADD GateType = 0

// SUB computes lhs - rhs.
const SUB GateType = 1

// MUL computes lhs * rhs.
const MUL GateType = 2

// DIV computes lhs / rhs.
const DIV GateType = 3

// INT_DIV computes the integer quotient lhs \ rhs.
const INT_DIV GateType = 4

// MOD computes lhs % rhs.
const MOD GateType = 5

// POW computes lhs ** rhs.
const POW GateType = 6

// SHL computes lhs << rhs.
const SHL GateType = 7

// SHR computes lhs >> rhs.
const SHR GateType = 8

// EQ computes lhs == rhs.
const EQ GateType = 9

// NEQ computes lhs != rhs.
const NEQ GateType = 10

// LT computes lhs < rhs.
const LT GateType = 11

// GT computes lhs > rhs.
const GT GateType = 12

// LTEQ computes lhs <= rhs.
const LTEQ GateType = 13

// GTEQ computes lhs >= rhs.
const GTEQ GateType = 14

// BOOL_OR computes lhs || rhs.
const BOOL_OR GateType = 15

// BOOL_AND computes lhs && rhs.
const BOOL_AND GateType = 16

// BIT_OR computes lhs | rhs.
const BIT_OR GateType = 17

// BIT_AND computes lhs & rhs.
const BIT_AND GateType = 18

// XOR computes lhs ^ rhs.
const XOR GateType = 19

// Opcode names as they appear in circuit files.
var gateNames = [...]string{
	"AAdd", "ASub", "AMul", "ADiv", "AIntDiv", "AMod", "APow", "AShiftL", "AShiftR",
	"AEq", "ANeq", "ALt", "AGt", "ALEq", "AGEq",
	"ABoolOr", "ABoolAnd", "ABitOr", "ABitAnd", "AXor",
}

// GATE_TYPES lists every gate type, in opcode order.
var GATE_TYPES = []GateType{
	ADD, SUB, MUL, DIV, INT_DIV, MOD, POW, SHL, SHR, EQ, NEQ, LT, GT, LTEQ, GTEQ,
	BOOL_OR, BOOL_AND, BIT_OR, BIT_AND, XOR,
}

// IsValid checks whether this is a member of the closed set of gate types.
func (g GateType) IsValid() bool {
	return int(g) < len(gateNames)
}

func (g GateType) String() string {
	if g.IsValid() {
		return gateNames[g]
	}
	//
	return fmt.Sprintf("AUnknown(%d)", uint8(g))
}

// ParseGateType determines the gate type for a given opcode name.
func ParseGateType(name string) (GateType, bool) {
	for i, n := range gateNames {
		if n == name {
			return GateType(i), true
		}
	}
	//
	return 0, false
}

// Gate is a two-input one-output operation over wires.
type Gate struct {
	Kind GateType
	Lhs  uint32
	Rhs  uint32
	Out  uint32
}

func (g Gate) String() string {
	return fmt.Sprintf("%d = %s(%d, %d)", g.Out, g.Kind, g.Lhs, g.Rhs)
}
