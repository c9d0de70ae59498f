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
package fault

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Fault_00(t *testing.T) {
	err := New(UNDECLARED_ITEM, "unknown item %q", "x")
	//
	assert.ErrorIs(t, err, ErrUndeclaredItem)
	assert.NotErrorIs(t, err, ErrDuplicateDeclaration)
	assert.Equal(t, `undeclared item: unknown item "x"`, err.Error())
}

func Test_Fault_01(t *testing.T) {
	err := fmt.Errorf("template Foo: %w", New(INDEX_OUT_OF_BOUNDS, "index 4"))
	//
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
	//
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, INDEX_OUT_OF_BOUNDS, kind)
}

func Test_Fault_02(t *testing.T) {
	err := Wrap(IO_ERROR, io.ErrUnexpectedEOF, "reading header")
	//
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func Test_Fault_03(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, "cyclic dependency", ErrCyclicDependency.Error())
}
