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
package lang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-arithc/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_00(t *testing.T) {
	program, errs := Load(nil, check_File("main.circom", `
template Id() { signal input x; signal output y; y <== x; }
component main = Id();
`))
	require.Empty(t, errs)
	assert.Contains(t, program.Templates, "Id")
	assert.Equal(t, "Id()", program.Main.String())
}

func Test_Load_01(t *testing.T) {
	dir := t.TempDir()
	lib := t.TempDir()
	// Included files resolve relative to the includer, then library paths.
	check_Write(t, dir, "local.circom", `include "shared.circom"; function sq(x) { return x*x; }`)
	check_Write(t, lib, "shared.circom", `template Sq() { signal input a; }`)
	main := check_Write(t, dir, "main.circom", `include "local.circom"; include "shared.circom"; component main = Sq();`)
	//
	files, err := source.ReadFiles(main)
	require.NoError(t, err)
	//
	program, errs := Load([]string{lib}, files...)
	require.Empty(t, errs)
	assert.Contains(t, program.Templates, "Sq")
	assert.Contains(t, program.Functions, "sq")
}

func Test_Load_02(t *testing.T) {
	_, errs := Load(nil, check_File("main.circom", `include "missing.circom"; component main = T();`))
	require.Len(t, errs, 1)
	assert.Equal(t, "file not found", errs[0].Message())
}

func Test_Load_03(t *testing.T) {
	_, errs := Load(nil,
		check_File("a.circom", `template T() {} component main = T();`),
		check_File("b.circom", `function T() { return 1; }`))
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate declaration T", errs[0].Message())
}

func Test_Load_04(t *testing.T) {
	_, errs := Load(nil, check_File("a.circom", `template T() {}`))
	require.Len(t, errs, 1)
	assert.Equal(t, "missing main component", errs[0].Message())
}

func Test_Load_05(t *testing.T) {
	_, errs := Load(nil, check_File("a.circom", `template T(n) {} component main = U(1);`))
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown template U", errs[0].Message())
	//
	_, errs = Load(nil, check_File("a.circom", `template T(n) {} component main = T();`))
	require.Len(t, errs, 1)
	assert.Equal(t, "expected 1 arguments, found 0", errs[0].Message())
}

func check_File(name string, contents string) *source.File {
	return source.NewSourceFile(name, []byte(contents))
}

func check_Write(t *testing.T, dir string, name string, contents string) string {
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0o600))
	//
	return filename
}
