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
	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/util/collection/stack"
)

const (
	unvisited uint8 = iota
	visiting
	visited
)

// frame records progress through the dependencies of a node currently on the
// depth-first search path.
type frame struct {
	node uint
	deps []uint
	next int
}

// Sort orders nodes 0..n-1 such that every node appears after all of the nodes
// it depends upon.  The dependencies of each node are obtained from deps, which
// is called at most once per node.  Nodes are explored in increasing order, and
// dependencies in the order returned, so the result is deterministic.  A cycle
// reachable from any node fails with a cyclic dependency error naming a
// participating node; a dependency outside 0..n-1 fails with node not found.
func Sort(n uint, deps func(uint) []uint) ([]uint, error) {
	var (
		state = make([]uint8, n)
		order = make([]uint, 0, n)
		path  = stack.NewStack[*frame]()
	)
	//
	for root := range n {
		if state[root] != unvisited {
			continue
		}
		//
		state[root] = visiting
		path.Push(&frame{root, deps(root), 0})
		//
		for !path.IsEmpty() {
			top := path.Peek(0)
			// Finished with this node?
			if top.next == len(top.deps) {
				path.Pop()
				state[top.node] = visited
				order = append(order, top.node)
				//
				continue
			}
			//
			dep := top.deps[top.next]
			top.next++
			//
			switch {
			case dep >= n:
				return nil, fault.New(fault.NODE_NOT_FOUND, "node %d depends on unknown node %d", top.node, dep)
			case state[dep] == visiting:
				return nil, fault.New(fault.CYCLIC_DEPENDENCY, "node %d (via %d)", dep, top.node)
			case state[dep] == unvisited:
				state[dep] = visiting
				path.Push(&frame{dep, deps(dep), 0})
			}
		}
	}
	//
	return order, nil
}
