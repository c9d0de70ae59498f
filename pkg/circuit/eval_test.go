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
	"math"
	"testing"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Eval_00(t *testing.T) {
	check_Eval(t, ADD, math.MaxUint32, 2, 1)
	check_Eval(t, SUB, 1, 2, math.MaxUint32)
	check_Eval(t, MUL, 0x10000, 0x10000, 0)
	check_Eval(t, DIV, 7, 2, 3)
	check_Eval(t, INT_DIV, 7, 2, 3)
	check_Eval(t, MOD, 7, 2, 1)
}

func Test_Eval_01(t *testing.T) {
	check_Eval(t, POW, 3, 4, 81)
	check_Eval(t, POW, 2, 32, 0)
	check_Eval(t, POW, 0, 0, 1)
	check_Eval(t, SHL, 1, 31, 0x80000000)
	check_Eval(t, SHL, 1, 32, 0)
	check_Eval(t, SHR, 0x80000000, 31, 1)
	check_Eval(t, SHR, 5, 40, 0)
}

func Test_Eval_02(t *testing.T) {
	check_Eval(t, EQ, 3, 3, 1)
	check_Eval(t, NEQ, 3, 3, 0)
	check_Eval(t, LT, 2, 3, 1)
	check_Eval(t, GT, 2, 3, 0)
	check_Eval(t, LTEQ, 3, 3, 1)
	check_Eval(t, GTEQ, 2, 3, 0)
	check_Eval(t, BOOL_OR, 0, 5, 1)
	check_Eval(t, BOOL_AND, 4, 5, 1)
	check_Eval(t, BOOL_AND, 0, 5, 0)
	check_Eval(t, BIT_OR, 0b1010, 0b0101, 0b1111)
	check_Eval(t, BIT_AND, 0b1110, 0b0111, 0b0110)
	check_Eval(t, XOR, 0b1110, 0b0111, 0b1001)
}

func Test_Eval_03(t *testing.T) {
	for _, g := range []GateType{DIV, INT_DIV, MOD} {
		_, err := g.Eval(1, 0)
		assert.ErrorIs(t, err, fault.ErrDivisionByZero)
	}
	//
	_, err := GateType(99).Eval(1, 1)
	assert.ErrorIs(t, err, fault.ErrUnsupportedGateType)
}

func check_Eval(t *testing.T, g GateType, lhs, rhs, expected uint32) {
	actual, err := g.Eval(lhs, rhs)
	require.NoError(t, err)
	assert.Equal(t, expected, actual, "%s(%d, %d)", g, lhs, rhs)
}
