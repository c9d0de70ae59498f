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
	"testing"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Registration
// ============================================================================

func Test_Circuit_00(t *testing.T) {
	c := NewCircuit()
	//
	require.NoError(t, c.AddVar(c.NextId(), "0.a"))
	require.ErrorIs(t, c.AddVar(0, "0.b"), fault.ErrDuplicateDeclaration)
	// Allocator continues past registered identifiers
	require.NoError(t, c.AddVar(5, "0.c"))
	assert.Equal(t, uint32(6), c.NextId())
}

func Test_Circuit_01(t *testing.T) {
	c := NewCircuit()
	// Constants are deduplicated by value
	three := c.AddConstVar(3)
	four := c.AddConstVar(4)
	//
	assert.NotEqual(t, three, four)
	assert.Equal(t, three, c.AddConstVar(3))
	assert.True(t, c.HasOutput(three))
}

func Test_Circuit_02(t *testing.T) {
	c := NewCircuit()
	a, b, out := check_Vars(t, c, "a", "b", "out")
	//
	require.NoError(t, c.AddGate(MUL, a, b, out))
	assert.True(t, c.HasOutput(out))
	assert.False(t, c.HasOutput(a))
	// Unknown wires
	require.ErrorIs(t, c.AddGate(ADD, a, 99, out), fault.ErrVariableNotDeclared)
	// Unknown gate type
	require.ErrorIs(t, c.AddGate(GateType(100), a, b, out), fault.ErrUnsupportedGateType)
	// Second producer for the same output
	require.ErrorIs(t, c.AddGate(ADD, a, b, out), fault.ErrCannotMergeOutputNodes)
	assert.Equal(t, uint(1), c.NumGates())
}

// ============================================================================
// Merging
// ============================================================================

func Test_Merge_00(t *testing.T) {
	c := NewCircuit()
	a, b := check_Vars2(t, c, "a", "b")
	// Idempotent
	require.NoError(t, c.AddConnection(a, b))
	require.NoError(t, c.AddConnection(a, b))
	require.NoError(t, c.AddConnection(a, a))
	check_SameNode(t, c, a, b)
	// Canonical is the destination
	id, err := c.Find(b)
	require.NoError(t, err)
	assert.Equal(t, a, id)
}

func Test_Merge_01(t *testing.T) {
	// Commutative (as partitions)
	for _, swap := range []bool{false, true} {
		c := NewCircuit()
		a, b := check_Vars2(t, c, "a", "b")
		//
		if swap {
			require.NoError(t, c.AddConnection(b, a))
		} else {
			require.NoError(t, c.AddConnection(a, b))
		}
		//
		check_SameNode(t, c, a, b)
	}
}

func Test_Merge_02(t *testing.T) {
	c := NewCircuit()
	a, b, d := check_Vars(t, c, "a", "b", "d")
	// Transitive
	require.NoError(t, c.AddConnection(a, b))
	require.NoError(t, c.AddConnection(b, d))
	check_SameNode(t, c, a, d)
	//
	node, err := c.Node(d)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{a, b, d}, node.Members())
	assert.Equal(t, []string{"a", "b", "d"}, c.Names(d))
}

func Test_Merge_03(t *testing.T) {
	c := NewCircuit()
	a, b, x, y := check_Vars4(t, c)
	//
	require.NoError(t, c.AddGate(ADD, a, b, x))
	require.NoError(t, c.AddGate(MUL, a, b, y))
	// Two producers cannot be merged
	require.ErrorIs(t, c.AddConnection(x, y), fault.ErrCannotMergeOutputNodes)
	// Circuit unchanged
	check_DistinctNodes(t, c, x, y)
	assert.Equal(t, uint(2), c.NumGates())
}

func Test_Merge_04(t *testing.T) {
	c := NewCircuit()
	a, b, out := check_Vars(t, c, "a", "b", "out")
	seven := c.AddConstVar(7)
	eight := c.AddConstVar(8)
	// Constants count as producers
	require.ErrorIs(t, c.AddConnection(seven, eight), fault.ErrCannotMergeOutputNodes)
	require.NoError(t, c.AddGate(SUB, a, b, out))
	require.ErrorIs(t, c.AddConnection(out, seven), fault.ErrCannotMergeOutputNodes)
	// But can be merged into free wires
	require.NoError(t, c.AddConnection(a, seven))
	assert.True(t, c.HasOutput(a))
	node, _ := c.Node(a)
	assert.Equal(t, uint32(7), node.Value().Unwrap())
}

func Test_Merge_05(t *testing.T) {
	c := NewCircuit()
	a, b, tmp, out := check_Vars4(t, c)
	// Gate output merged into a declared destination
	require.NoError(t, c.AddGate(ADD, a, b, tmp))
	require.NoError(t, c.AddConnection(out, tmp))
	//
	assert.Equal(t, []Gate{{ADD, a, b, out}}, c.Gates())
	// Merging inputs is reflected in gates
	require.NoError(t, c.AddConnection(a, b))
	assert.Equal(t, []Gate{{ADD, a, a, out}}, c.Gates())
}

func Test_Merge_06(t *testing.T) {
	c := NewCircuit()
	_, err := c.Find(42)
	require.ErrorIs(t, err, fault.ErrNodeNotFound)
	require.ErrorIs(t, c.AddConnection(42, 43), fault.ErrNodeNotFound)
}

func Test_Merge_07(t *testing.T) {
	// Long chains stay consistent
	c := NewCircuit()
	ids := make([]uint32, 1000)
	//
	for i := range ids {
		ids[i] = c.NextId()
		require.NoError(t, c.AddVar(ids[i], fmt.Sprintf("s[%d]", i)))
	}
	//
	for i := 1; i < len(ids); i++ {
		require.NoError(t, c.AddConnection(ids[i], ids[i-1]))
	}
	//
	for _, id := range ids {
		root, err := c.Find(id)
		require.NoError(t, err)
		assert.Equal(t, ids[len(ids)-1], root)
	}
}

// ============================================================================
// Signal listing
// ============================================================================

func Test_Signals_00(t *testing.T) {
	c := NewCircuit()
	//
	for _, name := range []string{"0.in[0]", "0.in[1]", "0.input", "0.in", "0.c.in", "0.out"} {
		require.NoError(t, c.AddVar(c.NextId(), name))
	}
	//
	c.AddConstVar(1)
	//
	assert.Equal(t, []Port{{"0.in[0]", 0}, {"0.in[1]", 1}, {"0.in", 3}}, c.SignalsWithPrefix("0.in"))
	assert.Equal(t, []Port{{"0.c.in", 4}}, c.SignalsWithPrefix("0.c"))
	assert.Len(t, c.SignalsWithPrefix("0"), 6)
	assert.Empty(t, c.SignalsWithPrefix("1"))
}

// ============================================================================
// Helpers
// ============================================================================

func check_Vars(t *testing.T, c *Circuit, a, b, d string) (uint32, uint32, uint32) {
	var ids [3]uint32
	//
	for i, name := range []string{a, b, d} {
		ids[i] = c.NextId()
		require.NoError(t, c.AddVar(ids[i], name))
	}
	//
	return ids[0], ids[1], ids[2]
}

func check_Vars2(t *testing.T, c *Circuit, a, b string) (uint32, uint32) {
	x, y, _ := check_Vars(t, c, a, b, "_")
	return x, y
}

func check_Vars4(t *testing.T, c *Circuit) (uint32, uint32, uint32, uint32) {
	a, b, x := check_Vars(t, c, "a", "b", "x")
	y := c.NextId()
	require.NoError(t, c.AddVar(y, "y"))
	//
	return a, b, x, y
}

func check_SameNode(t *testing.T, c *Circuit, a, b uint32) {
	ra, err := c.Find(a)
	require.NoError(t, err)
	rb, err := c.Find(b)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
}

func check_DistinctNodes(t *testing.T, c *Circuit, a, b uint32) {
	ra, err := c.Find(a)
	require.NoError(t, err)
	rb, err := c.Find(b)
	require.NoError(t, err)
	assert.NotEqual(t, ra, rb)
}
