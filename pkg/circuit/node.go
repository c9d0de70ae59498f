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
	"github.com/consensys/go-arithc/pkg/util"
)

// Node is an equivalence class of wire identifiers which have been merged
// together.  Every member denotes the same physical wire.
type Node struct {
	// Canonical identifier for this node.
	id uint32
	// Identifiers of all members (including the canonical one).
	members []uint32
	// Constant value held by this node (if any).
	value util.Option[uint32]
	// Indicates whether some gate writes this node.
	driven bool
}

// Id returns the canonical identifier of this node.
func (n *Node) Id() uint32 {
	return n.id
}

// Members returns the identifiers merged into this node, in merge order.
func (n *Node) Members() []uint32 {
	return n.members
}

// Value returns the constant value bound to this node, if any.
func (n *Node) Value() util.Option[uint32] {
	return n.value
}

// IsDriven checks whether this node is the output of some gate.
func (n *Node) IsDriven() bool {
	return n.driven
}

// HasProducer checks whether something already determines the value of this
// node, either a gate or a constant.  At most one producer is permitted.
func (n *Node) HasProducer() bool {
	return n.driven || n.value.HasValue()
}

// nodeSet is a disjoint-set forest over wire identifiers, with path
// compression and union by rank.  Node information is held only for roots.
// The canonical identifier of a class is recorded separately from its root, so
// that the caller chooses it independently of the balancing.
type nodeSet struct {
	parent map[uint32]uint32
	rank   map[uint32]uint8
	info   map[uint32]*Node
}

func newNodeSet() nodeSet {
	return nodeSet{
		make(map[uint32]uint32),
		make(map[uint32]uint8),
		make(map[uint32]*Node),
	}
}

func (p *nodeSet) contains(id uint32) bool {
	_, ok := p.parent[id]
	return ok
}

// insert a fresh singleton class.
func (p *nodeSet) insert(id uint32, value util.Option[uint32]) {
	p.parent[id] = id
	p.rank[id] = 0
	p.info[id] = &Node{id, []uint32{id}, value, false}
}

// root finds the representative of an identifier's class, compressing the path
// as it goes.  The identifier must be known.
func (p *nodeSet) root(id uint32) uint32 {
	var r = id
	//
	for p.parent[r] != r {
		r = p.parent[r]
	}
	// Compress path
	for id != r {
		next := p.parent[id]
		p.parent[id] = r
		id = next
	}
	//
	return r
}

// node returns the information for the class of a known identifier.
func (p *nodeSet) node(id uint32) *Node {
	return p.info[p.root(id)]
}

// union merges two distinct roots, such that the canonical identifier of the
// result is that of the first.
func (p *nodeSet) union(ra, rb uint32) *Node {
	var (
		a = p.info[ra]
		b = p.info[rb]
		// Merged node information
		merged = &Node{a.id, append(a.members, b.members...), a.value, a.driven || b.driven}
	)
	//
	if b.value.HasValue() {
		merged.value = b.value
	}
	//
	delete(p.info, ra)
	delete(p.info, rb)
	// Union by rank
	switch {
	case p.rank[ra] < p.rank[rb]:
		ra, rb = rb, ra
	case p.rank[ra] == p.rank[rb]:
		p.rank[ra]++
	}
	//
	p.parent[rb] = ra
	p.info[ra] = merged
	//
	return merged
}
