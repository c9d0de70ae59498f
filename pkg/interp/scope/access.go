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
package scope

import (
	"fmt"
	"strings"
)

// Selector is one step of an access into a named item: either an array index,
// or a member of a component.
type Selector struct {
	index  uint32
	member string
}

// Index constructs an array index selector.
func Index(index uint32) Selector {
	return Selector{index, ""}
}

// Member constructs a component member selector.
func Member(name string) Selector {
	return Selector{0, name}
}

// IsMember checks whether this selects a component member.
func (s Selector) IsMember() bool {
	return s.member != ""
}

// Access is a fully evaluated reference to (part of) a named item, such as
// "x", "a[1][2]" or "c[0].out[3]".
type Access struct {
	Name      string
	Selectors []Selector
}

// NewAccess constructs an access to a given name.
func NewAccess(name string, selectors ...Selector) Access {
	return Access{name, selectors}
}

func (a Access) String() string {
	var builder strings.Builder
	//
	builder.WriteString(a.Name)
	//
	for _, s := range a.Selectors {
		if s.IsMember() {
			builder.WriteString(".")
			builder.WriteString(s.member)
		} else {
			fmt.Fprintf(&builder, "[%d]", s.index)
		}
	}
	//
	return builder.String()
}

// Target is the result of resolving an access.  It identifies a contiguous
// range of cells of some item.
type Target struct {
	Item *Item
	// First cell addressed
	Offset uint32
	// Shape of the addressed cells (empty for a single cell).
	Shape []uint32
	// Indicates whether the access passed through a component member.
	External bool
}

// Kind returns the kind of the addressed cells.
func (t Target) Kind() DataType {
	return t.Item.Kind
}

// Size returns the number of cells addressed.
func (t Target) Size() uint32 {
	return Size(t.Shape)
}

// Ids returns the identifiers of the addressed cells.
func (t Target) Ids() []uint32 {
	return t.Item.Ids[t.Offset : t.Offset+t.Size()]
}
