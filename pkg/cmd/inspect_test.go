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
package cmd

import (
	"strings"
	"testing"

	"github.com/consensys/go-arithc/pkg/bristol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Inspect_00(t *testing.T) {
	c, err := bristol.Read(strings.NewReader("3 6\n2 1 1\n1 1\n\n2 1 0 1 3 AMul\n2 1 3 2 4 AAdd\n2 1 4 1 5 AMul\n"))
	require.NoError(t, err)
	//
	var out strings.Builder
	//
	require.NoError(t, summarise(c).Print(&out))
	assert.Equal(t, strings.Join([]string{
		"gates   3",
		"wires   6",
		"inputs  2",
		"outputs 1",
		"AAdd    1",
		"AMul    2",
		"",
	}, "\n"), out.String())
}
