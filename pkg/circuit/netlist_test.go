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
	"testing"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Peephole
// ============================================================================

func Test_Truncate_00(t *testing.T) {
	c := NewCircuit()
	a, b, tmp, out := check_Vars4(t, c)
	zero := c.AddConstVar(0)
	// tmp = a + 0; out = tmp * b
	require.NoError(t, c.AddGate(ADD, a, zero, tmp))
	require.NoError(t, c.AddGate(MUL, tmp, b, out))
	//
	assert.Equal(t, uint(1), c.TruncateZeroAddGates())
	assert.Equal(t, []Gate{{MUL, a, b, out}}, c.Gates())
	check_SameNode(t, c, a, tmp)
	assert.False(t, c.HasOutput(a))
}

func Test_Truncate_01(t *testing.T) {
	c := NewCircuit()
	a, b, x, y := check_Vars4(t, c)
	zero := c.AddConstVar(0)
	// Zero on the left, and additions of non-zero left alone
	require.NoError(t, c.AddGate(ADD, zero, a, x))
	require.NoError(t, c.AddGate(ADD, a, b, y))
	//
	assert.Equal(t, uint(1), c.TruncateZeroAddGates())
	assert.Equal(t, []Gate{{ADD, a, b, y}}, c.Gates())
}

func Test_Truncate_02(t *testing.T) {
	c := NewCircuit()
	a, b, x, y := check_Vars4(t, c)
	zero := c.AddConstVar(0)
	// x = a * b; y = x + 0.  Bypassing requires merging y into x.
	require.NoError(t, c.AddGate(MUL, a, b, x))
	require.NoError(t, c.AddGate(ADD, x, zero, y))
	//
	assert.Equal(t, uint(1), c.TruncateZeroAddGates())
	assert.Equal(t, []Gate{{MUL, a, b, x}}, c.Gates())
	check_SameNode(t, c, x, y)
	assert.True(t, c.HasOutput(y))
}

func Test_Truncate_03(t *testing.T) {
	c := NewCircuit()
	a, _, x, _ := check_Vars4(t, c)
	// Not applicable without a constant zero
	require.NoError(t, c.AddGate(ADD, a, c.AddConstVar(1), x))
	//
	assert.Equal(t, uint(0), c.TruncateZeroAddGates())
	assert.Equal(t, uint(1), c.NumGates())
}

func Test_Truncate_04(t *testing.T) {
	c := NewCircuit()
	x, _ := check_Vars2(t, c, "x", "y")
	// x = x + 0 is a cycle, and must survive to be rejected on export
	require.NoError(t, c.AddGate(ADD, x, c.AddConstVar(0), x))
	//
	assert.Equal(t, uint(0), c.TruncateZeroAddGates())
	assert.Equal(t, uint(1), c.NumGates())
	assert.True(t, c.HasOutput(x))
	require.NoError(t, c.AddOutput("0.x", x))
	//
	_, err := c.Export()
	assert.ErrorIs(t, err, fault.ErrCyclicDependency)
}

// ============================================================================
// Export
// ============================================================================

func Test_Export_00(t *testing.T) {
	c := NewCircuit()
	a, b, x, y := check_Vars4(t, c)
	// y = x + 5, x = a * b (out of order)
	five := c.AddConstVar(5)
	require.NoError(t, c.AddGate(ADD, x, five, y))
	require.NoError(t, c.AddGate(MUL, a, b, x))
	require.NoError(t, c.AddInput("0.a", a))
	require.NoError(t, c.AddInput("0.b", b))
	require.NoError(t, c.AddOutput("0.y", y))
	//
	n, err := c.Export()
	require.NoError(t, err)
	// Inputs, then constants, then gate outputs
	assert.Equal(t, uint32(5), n.NumWires)
	assert.Equal(t, uint32(3), n.NumInputWires)
	assert.Equal(t, []Port{{"0.a", 0}, {"0.b", 1}}, n.Inputs)
	assert.Equal(t, []Constant{{2, 5}}, n.Constants)
	assert.Equal(t, []Gate{{MUL, 0, 1, 3}, {ADD, 3, 2, 4}}, n.Gates)
	assert.Equal(t, []Port{{"0.y", 4}}, n.Outputs)
}

func Test_Export_01(t *testing.T) {
	c := NewCircuit()
	a, b, x, y := check_Vars4(t, c)
	// x = y + a; y = x + b
	require.NoError(t, c.AddGate(ADD, y, a, x))
	require.NoError(t, c.AddGate(ADD, x, b, y))
	//
	_, err := c.Export()
	require.ErrorIs(t, err, fault.ErrCyclicDependency)
}

func Test_Export_02(t *testing.T) {
	c := NewCircuit()
	a, out := check_Vars2(t, c, "0.a", "0.out")
	// Aliased output
	require.NoError(t, c.AddConnection(out, a))
	require.NoError(t, c.AddInput("0.a", a))
	require.NoError(t, c.AddOutput("0.out", out))
	//
	n, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n.NumWires)
	assert.Empty(t, n.Gates)
	assert.Equal(t, n.Inputs[0].Wire, n.Outputs[0].Wire)
}

func Test_Export_03(t *testing.T) {
	c := NewCircuit()
	a, b, x, _ := check_Vars4(t, c)
	// Input written within the circuit
	require.NoError(t, c.AddGate(ADD, a, b, x))
	require.NoError(t, c.AddInput("0.x", x))
	//
	_, err := c.Export()
	require.ErrorIs(t, err, fault.ErrInvalidInput)
}

func Test_Export_04(t *testing.T) {
	c := NewCircuit()
	a, b, x, _ := check_Vars4(t, c)
	// Unused constant dropped, undriven operand exported as extra input
	c.AddConstVar(9)
	require.NoError(t, c.AddGate(SUB, a, b, x))
	require.NoError(t, c.AddInput("0.a", a))
	require.NoError(t, c.AddOutput("0.x", x))
	//
	n, err := c.Export()
	require.NoError(t, err)
	assert.Empty(t, n.Constants)
	assert.Equal(t, uint32(2), n.NumInputWires)
	assert.Equal(t, []Gate{{SUB, 0, 1, 2}}, n.Gates)
}

func Test_Export_05(t *testing.T) {
	c := NewCircuit()
	a, b, x, _ := check_Vars4(t, c)
	// Every gate output appears after its operands are available
	require.NoError(t, c.AddGate(ADD, a, b, x))
	require.NoError(t, c.AddInput("0.a", a))
	require.NoError(t, c.AddInput("0.b", b))
	require.NoError(t, c.AddOutput("0.x", x))
	//
	n, err := c.Export()
	require.NoError(t, err)
	//
	written := make([]bool, n.NumWires)
	for i := range n.NumInputWires {
		written[i] = true
	}
	//
	for _, g := range n.Gates {
		assert.True(t, written[g.Lhs] && written[g.Rhs])
		assert.False(t, written[g.Out])
		written[g.Out] = true
	}
}
