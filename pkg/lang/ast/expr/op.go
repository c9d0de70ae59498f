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
package expr

import "fmt"

// InfixOp identifies a binary operator.
type InfixOp uint8

// ADD represents "+"
const ADD InfixOp = 0

// SUB represents "-"
const SUB InfixOp = 1

// MUL represents "*"
const MUL InfixOp = 2

// DIV represents "/"
const DIV InfixOp = 3

// INT_DIV represents "\"
const INT_DIV InfixOp = 4

// MOD represents "%"
const MOD InfixOp = 5

// POW represents "**"
const POW InfixOp = 6

// SHL represents "<<"
const SHL InfixOp = 7

// SHR represents ">>"
const SHR InfixOp = 8

// EQ represents "=="
const EQ InfixOp = 9

// NEQ represents "!="
const NEQ InfixOp = 10

// LT represents "<"
const LT InfixOp = 11

// GT represents ">"
const GT InfixOp = 12

// LTEQ represents "<="
const LTEQ InfixOp = 13

// GTEQ represents ">="
const GTEQ InfixOp = 14

// BOOL_OR represents "||"
const BOOL_OR InfixOp = 15

// BOOL_AND represents "&&"
const BOOL_AND InfixOp = 16

// BIT_OR represents "|"
const BIT_OR InfixOp = 17

// BIT_AND represents "&"
const BIT_AND InfixOp = 18

// XOR represents "^"
const XOR InfixOp = 19

var infixSymbols = [...]string{
	"+", "-", "*", "/", "\\", "%", "**", "<<", ">>", "==", "!=", "<", ">", "<=", ">=",
	"||", "&&", "|", "&", "^",
}

func (op InfixOp) String() string {
	if int(op) < len(infixSymbols) {
		return infixSymbols[op]
	}
	//
	return fmt.Sprintf("?%d", uint8(op))
}

// PrefixOp identifies a unary operator.
type PrefixOp uint8

// NEG represents "-"
const NEG PrefixOp = 0

// NOT represents "!"
const NOT PrefixOp = 1

// COMPLEMENT represents "~"
const COMPLEMENT PrefixOp = 2

func (op PrefixOp) String() string {
	switch op {
	case NEG:
		return "-"
	case NOT:
		return "!"
	case COMPLEMENT:
		return "~"
	default:
		return fmt.Sprintf("?%d", uint8(op))
	}
}

// Infix represents a binary operation.
type Infix struct {
	Op  InfixOp
	Lhs Expr
	Rhs Expr
}

// NewInfix constructs a binary operation.
func NewInfix(op InfixOp, lhs, rhs Expr) *Infix {
	return &Infix{op, lhs, rhs}
}

func (p *Infix) String() string {
	return fmt.Sprintf("(%s %s %s)", p.Lhs, p.Op, p.Rhs)
}

// Prefix represents a unary operation.
type Prefix struct {
	Op  PrefixOp
	Arg Expr
}

// NewPrefix constructs a unary operation.
func NewPrefix(op PrefixOp, arg Expr) *Prefix {
	return &Prefix{op, arg}
}

func (p *Prefix) String() string {
	return fmt.Sprintf("%s%s", p.Op, p.Arg)
}
