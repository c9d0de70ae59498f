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
package topo

import (
	"testing"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sort_00(t *testing.T) {
	order, err := Sort(0, func(uint) []uint { return nil })
	require.NoError(t, err)
	assert.Empty(t, order)
}

func Test_Sort_01(t *testing.T) {
	// 0 <- 1 <- 2 (2 depends on 1, 1 depends on 0)
	check_Sort(t, [][]uint{{}, {0}, {1}})
}

func Test_Sort_02(t *testing.T) {
	// diamond
	check_Sort(t, [][]uint{{1, 2}, {3}, {3}, {}})
}

func Test_Sort_03(t *testing.T) {
	// disconnected components and shared dependencies
	check_Sort(t, [][]uint{{4}, {}, {1, 4}, {2, 0}, {}, {3, 1}})
}

func Test_Sort_04(t *testing.T) {
	order, err := Sort(3, func(uint) []uint { return nil })
	require.NoError(t, err)
	assert.Equal(t, []uint{0, 1, 2}, order)
}

func Test_Sort_05(t *testing.T) {
	check_SortFails(t, [][]uint{{0}}, fault.ErrCyclicDependency)
}

func Test_Sort_06(t *testing.T) {
	check_SortFails(t, [][]uint{{}, {2}, {3}, {1}}, fault.ErrCyclicDependency)
}

func Test_Sort_07(t *testing.T) {
	check_SortFails(t, [][]uint{{7}}, fault.ErrNodeNotFound)
}

func Test_Sort_08(t *testing.T) {
	// Long chain exercising the explicit stack
	const n = 10000
	//
	graph := make([][]uint, n)
	for i := uint(1); i < n; i++ {
		graph[i] = []uint{i - 1}
	}
	//
	check_Sort(t, graph)
}

func check_Sort(t *testing.T, graph [][]uint) {
	order, err := Sort(uint(len(graph)), func(i uint) []uint { return graph[i] })
	require.NoError(t, err)
	require.Len(t, order, len(graph))
	//
	position := make(map[uint]int)
	for i, node := range order {
		_, seen := position[node]
		require.False(t, seen, "node %d occurs twice", node)
		position[node] = i
	}
	//
	for node, deps := range graph {
		for _, dep := range deps {
			assert.Less(t, position[dep], position[uint(node)], "node %d before dependency %d", node, dep)
		}
	}
}

func check_SortFails(t *testing.T, graph [][]uint, expected error) {
	_, err := Sort(uint(len(graph)), func(i uint) []uint { return graph[i] })
	assert.ErrorIs(t, err, expected)
}
