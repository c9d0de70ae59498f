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
	"github.com/consensys/go-arithc/pkg/fault"
)

// Eval computes this gate over 32-bit words.  Arithmetic wraps around,
// division and remainder truncate, shifts of 32 or more bits yield zero, and
// comparisons and boolean operators yield 0 or 1.  Dividing by zero is an
// error.
func (g GateType) Eval(lhs, rhs uint32) (uint32, error) {
	switch g {
	case ADD:
		return lhs + rhs, nil
	case SUB:
		return lhs - rhs, nil
	case MUL:
		return lhs * rhs, nil
	case DIV, INT_DIV:
		if rhs == 0 {
			return 0, fault.New(fault.DIVISION_BY_ZERO, "%d %s 0", lhs, g)
		}
		//
		return lhs / rhs, nil
	case MOD:
		if rhs == 0 {
			return 0, fault.New(fault.DIVISION_BY_ZERO, "%d %s 0", lhs, g)
		}
		//
		return lhs % rhs, nil
	case POW:
		return pow(lhs, rhs), nil
	case SHL:
		if rhs >= 32 {
			return 0, nil
		}
		//
		return lhs << rhs, nil
	case SHR:
		if rhs >= 32 {
			return 0, nil
		}
		//
		return lhs >> rhs, nil
	case EQ:
		return bit(lhs == rhs), nil
	case NEQ:
		return bit(lhs != rhs), nil
	case LT:
		return bit(lhs < rhs), nil
	case GT:
		return bit(lhs > rhs), nil
	case LTEQ:
		return bit(lhs <= rhs), nil
	case GTEQ:
		return bit(lhs >= rhs), nil
	case BOOL_OR:
		return bit(lhs != 0 || rhs != 0), nil
	case BOOL_AND:
		return bit(lhs != 0 && rhs != 0), nil
	case BIT_OR:
		return lhs | rhs, nil
	case BIT_AND:
		return lhs & rhs, nil
	case XOR:
		return lhs ^ rhs, nil
	default:
		return 0, fault.New(fault.UNSUPPORTED_GATE_TYPE, "%s", g)
	}
}

// Exponentiation by squaring, modulo 2^32.
func pow(base, exp uint32) uint32 {
	var result uint32 = 1
	//
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result *= base
		}
		//
		base *= base
	}
	//
	return result
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	//
	return 0
}
