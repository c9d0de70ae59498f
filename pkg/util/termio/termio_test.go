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
package termio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Escape_00(t *testing.T) {
	assert.Equal(t, "\033[1;31m", BoldAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[32m", NewAnsiEscape().FgColour(TERM_GREEN).Build())
	assert.Equal(t, "\033[36mx\033[0m", NewAnsiEscape().FgColour(TERM_CYAN).Wrap("x"))
}

func Test_Escape_01(t *testing.T) {
	// Extending an escape leaves the original unchanged
	bold := BoldAnsiEscape()
	_ = bold.FgColour(TERM_RED)
	assert.Equal(t, "\033[1m", bold.Build())
}

func Test_Table_00(t *testing.T) {
	var (
		tp  = NewTablePrinter(2, 2)
		out strings.Builder
	)
	//
	tp.SetRow(0, "AAdd", "12")
	tp.SetRow(1, "AMul", "3")
	require.NoError(t, tp.Print(&out))
	assert.Equal(t, "AAdd 12\nAMul  3\n", out.String())
}

func Test_Table_01(t *testing.T) {
	var (
		tp  = NewTablePrinter(2, 1)
		out strings.Builder
	)
	//
	tp.SetRow(0, "gates", "1")
	tp.SetEscape(1, 0, BoldAnsiEscape())
	// Escapes ignored unless enabled
	require.NoError(t, tp.Print(&out))
	assert.Equal(t, "gates 1\n", out.String())
	//
	out.Reset()
	tp.AnsiEscapes(true)
	require.NoError(t, tp.Print(&out))
	assert.Equal(t, "gates\033[1m 1\033[0m\n", out.String())
}
