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

// Package sim evaluates a netlist on concrete inputs.  The value domain is
// chosen by a Semantics, such that the same circuit can be run over 32-bit
// words or over a prime field.
package sim

import (
	"math/big"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/util/field"
)

// Semantics determines how the values of wires are represented, and how each
// gate type computes over them.
type Semantics[T any] interface {
	// FromUint64 constructs a value from a constant.
	FromUint64(uint64) T
	// FromBigInt constructs a value from a (non-negative) supplied input,
	// failing if it cannot be represented.
	FromBigInt(*big.Int) (T, error)
	// Apply computes a gate of the given type.
	Apply(kind circuit.GateType, lhs T, rhs T) (T, error)
	// String returns a decimal representation of a value.
	String(T) string
}

// ============================================================================
// 32-bit words
// ============================================================================

// Uint32 evaluates gates over 32-bit words, using the same rules as constant
// folding during interpretation.
type Uint32 struct{}

// FromUint64 truncates a constant to 32 bits.
func (Uint32) FromUint64(val uint64) uint32 {
	return uint32(val)
}

// FromBigInt accepts only values which fit in 32 bits.
func (Uint32) FromBigInt(val *big.Int) (uint32, error) {
	if val.Sign() < 0 || !val.IsUint64() || val.Uint64() > 0xffffffff {
		return 0, fault.New(fault.INVALID_INPUT, "value %s does not fit in 32 bits", val)
	}
	//
	return uint32(val.Uint64()), nil
}

// Apply computes a gate over 32-bit words.
func (Uint32) Apply(kind circuit.GateType, lhs uint32, rhs uint32) (uint32, error) {
	return kind.Eval(lhs, rhs)
}

func (Uint32) String(val uint32) string {
	return big.NewInt(int64(val)).String()
}

// ============================================================================
// Prime fields
// ============================================================================

// Field evaluates gates over a prime field.  Addition, subtraction,
// multiplication and exponentiation are field operations, and division
// multiplies by the inverse.  Integer division, remainder, shifts, comparisons
// and bitwise operators act on the canonical representatives in [0,p), with the
// result reduced modulo p.
type Field[F field.Element[F]] struct{}

// FromUint64 constructs a field element from a constant.
func (Field[F]) FromUint64(val uint64) F {
	return field.Uint64[F](val)
}

// FromBigInt accepts only canonical representatives.
func (Field[F]) FromBigInt(val *big.Int) (F, error) {
	modulus := field.Zero[F]().Modulus()
	//
	if val.Sign() < 0 || val.Cmp(modulus) >= 0 {
		return field.Zero[F](), fault.New(fault.INVALID_INPUT, "value %s outside field", val)
	}
	//
	return field.BigInt[F](*val), nil
}

// Apply computes a gate over the field.
func (Field[F]) Apply(kind circuit.GateType, lhs F, rhs F) (F, error) {
	switch kind {
	case circuit.ADD:
		return lhs.Add(rhs), nil
	case circuit.SUB:
		return lhs.Sub(rhs), nil
	case circuit.MUL:
		return lhs.Mul(rhs), nil
	case circuit.DIV:
		if rhs.IsZero() {
			return lhs, fault.New(fault.DIVISION_BY_ZERO, "%s %s 0", lhs, kind)
		}
		//
		return lhs.Mul(rhs.Inverse()), nil
	case circuit.POW:
		return lhs.Exp(rhs.ToBigInt()), nil
	case circuit.SHL:
		two := field.Uint64[F](2)
		return lhs.Mul(two.Exp(rhs.ToBigInt())), nil
	case circuit.EQ:
		return field.Bool[F](lhs.Cmp(rhs) == 0), nil
	case circuit.NEQ:
		return field.Bool[F](lhs.Cmp(rhs) != 0), nil
	case circuit.LT:
		return field.Bool[F](lhs.Cmp(rhs) < 0), nil
	case circuit.GT:
		return field.Bool[F](lhs.Cmp(rhs) > 0), nil
	case circuit.LTEQ:
		return field.Bool[F](lhs.Cmp(rhs) <= 0), nil
	case circuit.GTEQ:
		return field.Bool[F](lhs.Cmp(rhs) >= 0), nil
	case circuit.BOOL_OR:
		return field.Bool[F](!lhs.IsZero() || !rhs.IsZero()), nil
	case circuit.BOOL_AND:
		return field.Bool[F](!lhs.IsZero() && !rhs.IsZero()), nil
	}
	// Remaining operators act on canonical integers
	var (
		x   = lhs.ToBigInt()
		y   = rhs.ToBigInt()
		res big.Int
	)
	//
	switch kind {
	case circuit.INT_DIV, circuit.MOD:
		if y.Sign() == 0 {
			return lhs, fault.New(fault.DIVISION_BY_ZERO, "%s %s 0", lhs, kind)
		} else if kind == circuit.INT_DIV {
			res.Quo(x, y)
		} else {
			res.Rem(x, y)
		}
	case circuit.SHR:
		if y.IsUint64() && y.Uint64() < uint64(x.BitLen()) {
			res.Rsh(x, uint(y.Uint64()))
		}
	case circuit.BIT_OR:
		res.Or(x, y)
	case circuit.BIT_AND:
		res.And(x, y)
	case circuit.XOR:
		res.Xor(x, y)
	default:
		return lhs, fault.New(fault.UNSUPPORTED_GATE_TYPE, "gate %s", kind)
	}
	//
	return field.BigInt[F](res), nil
}

func (Field[F]) String(val F) string {
	return val.Text(10)
}
