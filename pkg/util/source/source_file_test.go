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
package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const text = "template T() {\n\tx = 1;\n}\n"

func Test_Line_00(t *testing.T) {
	check_Line(t, text, 0, 1, "template T() {")
	check_Line(t, text, 14, 1, "template T() {")
	check_Line(t, text, 15, 2, "\tx = 1;")
	check_Line(t, text, 20, 2, "\tx = 1;")
	check_Line(t, text, 23, 3, "}")
	// Beyond the end of the file
	check_Line(t, text, 100, 4, "")
	check_Line(t, "no newline", 5, 1, "no newline")
}

func Test_SyntaxError_00(t *testing.T) {
	file := NewSourceFile("t.circom", []byte(text))
	err := file.SyntaxError(NewSpan(16, 17), "unknown variable x")
	//
	assert.Equal(t, "t.circom:2:2: unknown variable x", err.Error())
	assert.Equal(t, "unknown variable x", err.Message())
	assert.Equal(t, file, err.SourceFile())
}

func check_Line(t *testing.T, text string, index int, number int, expected string) {
	file := NewSourceFile("test", []byte(text))
	line := file.FindFirstEnclosingLine(NewSpan(index, index))
	//
	assert.Equal(t, number, line.Number(), "index %d", index)
	assert.Equal(t, expected, line.String(), "index %d", index)
}
