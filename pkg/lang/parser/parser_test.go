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
package parser

import (
	"testing"

	"github.com/consensys/go-arithc/pkg/lang/ast/expr"
	"github.com/consensys/go-arithc/pkg/lang/ast/stmt"
	"github.com/consensys/go-arithc/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lex_00(t *testing.T) {
	tokens, errs := Lex(source.NewSourceFile("test", []byte("a <== b*2; // done")))
	require.Empty(t, errs)
	//
	kinds := make([]uint, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	//
	assert.Equal(t, []uint{IDENTIFIER, LEFT_CONSTRAIN, IDENTIFIER, MUL, NUMBER, SEMICOLON, END_OF}, kinds)
}

func Test_Lex_01(t *testing.T) {
	tokens, errs := Lex(source.NewSourceFile("test", []byte("format for /* x\n y */ i-->j")))
	require.Empty(t, errs)
	//
	kinds := make([]uint, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	//
	assert.Equal(t, []uint{IDENTIFIER, KEYWORD_FOR, IDENTIFIER, RIGHT_WIRE, IDENTIFIER, END_OF}, kinds)
}

func Test_Lex_02(t *testing.T) {
	_, errs := Lex(source.NewSourceFile("test", []byte("a = #b;")))
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown text encountered", errs[0].Message())
}

func Test_Parse_00(t *testing.T) {
	file := check_Parse(t, `
pragma circom 2.0.0;
include "lib.circom";

template Add(n) {
	signal input a;
	signal input b;
	signal output c;
	c <== a + b;
}

component main {public [a]} = Add(1);
`)
	require.Len(t, file.Includes, 1)
	assert.Equal(t, "lib.circom", *file.Includes[0])
	require.Len(t, file.Templates, 1)
	//
	add := file.Templates[0]
	assert.Equal(t, "Add", add.Name)
	assert.Equal(t, []string{"n"}, add.Params)
	assert.Equal(t, []string{"a", "b"}, add.Inputs())
	assert.Equal(t, []string{"c"}, add.Outputs())
	assert.Equal(t, "Add(1)", file.Main.String())
	assert.Equal(t, []string{"a"}, file.Public)
}

func Test_Parse_01(t *testing.T) {
	body := check_Body(t, "x = 1 + 2 * 3 ** 2 ** 1;")
	assert.Equal(t, "x = (1 + (2 * (3 ** (2 ** 1))))", body[0].String())
}

func Test_Parse_02(t *testing.T) {
	body := check_Body(t, "x = a < b && c == d || !e;")
	assert.Equal(t, "x = (((a < b) && (c == d)) || !e)", body[0].String())
}

func Test_Parse_03(t *testing.T) {
	body := check_Body(t, "x = c ? a[i][j+1] : b.out;")
	assert.Equal(t, "x = (c ? a[i][(j + 1)] : b.out)", body[0].String())
}

func Test_Parse_04(t *testing.T) {
	body := check_Body(t, "x += 2; y--; a ==> b; c --> d; e === f;")
	//
	assert.Equal(t, "x = (x + 2)", body[0].String())
	assert.Equal(t, "y = (y - 1)", body[1].String())
	assert.Equal(t, "b <== a", body[2].String())
	assert.Equal(t, "d <-- c", body[3].String())
	assert.IsType(t, &stmt.ConstraintEquality{}, body[4])
}

func Test_Parse_05(t *testing.T) {
	body := check_Body(t, "var a[2] = [1, 0x10], b; signal output c[2] <== a;")
	//
	init, ok := body[0].(*stmt.InitializationBlock)
	require.True(t, ok)
	require.Len(t, init.Stmts, 3)
	assert.Equal(t, "var a[2]", init.Stmts[0].String())
	assert.Equal(t, "a = [1, 16]", init.Stmts[1].String())
	assert.Equal(t, "var b", init.Stmts[2].String())
	//
	sig, ok := body[1].(*stmt.InitializationBlock)
	require.True(t, ok)
	assert.Equal(t, "signal output c[2]", sig.Stmts[0].String())
	assert.Equal(t, "c <== a", sig.Stmts[1].String())
}

func Test_Parse_06(t *testing.T) {
	body := check_Body(t, "for (var i = 0; i < 3; i++) { x += i; }")
	// for loops become blocks containing a while loop
	block, ok := body[0].(*stmt.Block)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
	//
	loop, ok := block.Stmts[1].(*stmt.While)
	require.True(t, ok)
	assert.Equal(t, "(i < 3)", loop.Cond.String())
	assert.Equal(t, "{ { x = (x + i) }; i = (i + 1) }", loop.Body.String())
}

func Test_Parse_07(t *testing.T) {
	body := check_Body(t, "if (x == 0) { y = 1; } else if (x == 1) y = 2; else { y = 3; }")
	//
	ite, ok := body[0].(*stmt.IfThenElse)
	require.True(t, ok)
	assert.IsType(t, &stmt.IfThenElse{}, ite.Else)
}

func Test_Parse_08(t *testing.T) {
	file := check_Parse(t, "function sq(x) { return x * x; } template T() { component c[2]; c[0] = T(); }")
	//
	require.Len(t, file.Functions, 1)
	assert.Equal(t, "{ return (x * x) }", file.Functions[0].Body.String())
	assert.Equal(t, "{ component c[2]; c[0] = T() }", file.Templates[0].Body.String())
}

func Test_Parse_09(t *testing.T) {
	// Statements and expressions are mapped back to the source
	file := check_Parse(t, "template T() { x = 1 + y; }")
	s := file.Templates[0].Body.Stmts[0].(*stmt.Substitution)
	//
	assert.True(t, file.SourceMap.Has(s))
	assert.True(t, file.SourceMap.Has(s.Rhs))
	//
	span := file.SourceMap.Get(s.Rhs.(*expr.Infix).Rhs)
	assert.Equal(t, 23, span.Start())
	assert.Equal(t, 24, span.End())
}

func Test_Invalid_00(t *testing.T) {
	check_Invalid(t, "template T() { x = 4294967296; }", "malformed numeric literal")
}

func Test_Invalid_01(t *testing.T) {
	check_Invalid(t, "template T() { x = 1 }", "unexpected token")
}

func Test_Invalid_02(t *testing.T) {
	check_Invalid(t, "template T() { 1 = x; }", "invalid assignment target")
}

func Test_Invalid_03(t *testing.T) {
	check_Invalid(t, "component foo = T();", "expected main component")
}

func Test_Invalid_04(t *testing.T) {
	check_Invalid(t, "template T(a, a) {}", "duplicate parameter")
}

func Test_Invalid_05(t *testing.T) {
	check_Invalid(t, "signal x;", "unknown declaration")
}

func Test_Invalid_06(t *testing.T) {
	check_Invalid(t, "template T() { x = 1;", "missing }")
}

// ============================================================================
// Helpers
// ============================================================================

func check_Parse(t *testing.T, input string) UnlinkedSourceFile {
	file, errs := Parse(source.NewSourceFile("test.circom", []byte(input)))
	require.Empty(t, errs)
	//
	return file
}

func check_Body(t *testing.T, body string) []stmt.Stmt {
	file := check_Parse(t, "template T() { "+body+" }")
	require.Len(t, file.Templates, 1)
	//
	return file.Templates[0].Body.Stmts
}

func check_Invalid(t *testing.T, input string, msg string) {
	_, errs := Parse(source.NewSourceFile("test.circom", []byte(input)))
	require.Len(t, errs, 1)
	assert.Equal(t, msg, errs[0].Message())
}
