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
	"slices"

	"github.com/consensys/go-arithc/pkg/util/source"
	"github.com/consensys/go-arithc/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "// ... \n" or "/* ... */"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LCURLY signals "{"
const LCURLY uint = 5

// RCURLY signals "}"
const RCURLY uint = 6

// LSQUARE signals "["
const LSQUARE uint = 7

// RSQUARE signals "]"
const RSQUARE uint = 8

// COMMA signals ","
const COMMA uint = 9

// SEMICOLON signals ";"
const SEMICOLON uint = 10

// DOT signals "."
const DOT uint = 11

// QUESTION signals "?"
const QUESTION uint = 12

// COLON signals ":"
const COLON uint = 13

// NUMBER signals an integer number
const NUMBER uint = 14

// STRING signals a quoted string
const STRING uint = 15

// IDENTIFIER signals a name
const IDENTIFIER uint = 20

// KEYWORD_PRAGMA signals "pragma"
const KEYWORD_PRAGMA uint = 21

// KEYWORD_INCLUDE signals "include"
const KEYWORD_INCLUDE uint = 22

// KEYWORD_TEMPLATE signals "template"
const KEYWORD_TEMPLATE uint = 23

// KEYWORD_FUNCTION signals "function"
const KEYWORD_FUNCTION uint = 24

// KEYWORD_COMPONENT signals "component"
const KEYWORD_COMPONENT uint = 25

// KEYWORD_SIGNAL signals "signal"
const KEYWORD_SIGNAL uint = 26

// KEYWORD_INPUT signals "input"
const KEYWORD_INPUT uint = 27

// KEYWORD_OUTPUT signals "output"
const KEYWORD_OUTPUT uint = 28

// KEYWORD_VAR signals "var"
const KEYWORD_VAR uint = 29

// KEYWORD_IF signals "if"
const KEYWORD_IF uint = 30

// KEYWORD_ELSE signals "else"
const KEYWORD_ELSE uint = 31

// KEYWORD_WHILE signals "while"
const KEYWORD_WHILE uint = 32

// KEYWORD_FOR signals "for"
const KEYWORD_FOR uint = 33

// KEYWORD_RETURN signals "return"
const KEYWORD_RETURN uint = 34

// KEYWORD_PUBLIC signals "public"
const KEYWORD_PUBLIC uint = 35

// EQUALS signals "="
const EQUALS uint = 40

// LEFT_CONSTRAIN signals "<=="
const LEFT_CONSTRAIN uint = 41

// RIGHT_CONSTRAIN signals "==>"
const RIGHT_CONSTRAIN uint = 42

// LEFT_WIRE signals "<--"
const LEFT_WIRE uint = 43

// RIGHT_WIRE signals "-->"
const RIGHT_WIRE uint = 44

// CONSTRAINT_EQUALS signals "==="
const CONSTRAINT_EQUALS uint = 45

// ADD_EQUALS signals "+="
const ADD_EQUALS uint = 46

// SUB_EQUALS signals "-="
const SUB_EQUALS uint = 47

// MUL_EQUALS signals "*="
const MUL_EQUALS uint = 48

// DIV_EQUALS signals "/="
const DIV_EQUALS uint = 49

// MOD_EQUALS signals "%="
const MOD_EQUALS uint = 50

// INCREMENT signals "++"
const INCREMENT uint = 51

// DECREMENT signals "--"
const DECREMENT uint = 52

// ADD signals "+"
const ADD uint = 60

// SUB signals "-"
const SUB uint = 61

// MUL signals "*"
const MUL uint = 62

// DIV signals "/"
const DIV uint = 63

// INT_DIV signals "\"
const INT_DIV uint = 64

// MOD signals "%"
const MOD uint = 65

// POW signals "**"
const POW uint = 66

// SHL signals "<<"
const SHL uint = 67

// SHR signals ">>"
const SHR uint = 68

// EQUALS_EQUALS signals "=="
const EQUALS_EQUALS uint = 69

// NOT_EQUALS signals "!="
const NOT_EQUALS uint = 70

// LESS_THAN signals "<"
const LESS_THAN uint = 71

// GREATER_THAN signals ">"
const GREATER_THAN uint = 72

// LESS_THAN_EQUALS signals "<="
const LESS_THAN_EQUALS uint = 73

// GREATER_THAN_EQUALS signals ">="
const GREATER_THAN_EQUALS uint = 74

// LOGICAL_OR signals "||"
const LOGICAL_OR uint = 75

// LOGICAL_AND signals "&&"
const LOGICAL_AND uint = 76

// BITWISE_OR signals "|"
const BITWISE_OR uint = 77

// BITWISE_AND signals "&"
const BITWISE_AND uint = 78

// BITWISE_XOR signals "^"
const BITWISE_XOR uint = 79

// LOGICAL_NOT signals "!"
const LOGICAL_NOT uint = 80

// BITWISE_NOT signals "~"
const BITWISE_NOT uint = 81

// Keywords are lexed as identifiers first, and then reclassified.  This avoids
// e.g. "format" being split into "for" and "mat".
var keywords = map[string]uint{
	"pragma":    KEYWORD_PRAGMA,
	"include":   KEYWORD_INCLUDE,
	"template":  KEYWORD_TEMPLATE,
	"function":  KEYWORD_FUNCTION,
	"component": KEYWORD_COMPONENT,
	"signal":    KEYWORD_SIGNAL,
	"input":     KEYWORD_INPUT,
	"output":    KEYWORD_OUTPUT,
	"var":       KEYWORD_VAR,
	"if":        KEYWORD_IF,
	"else":      KEYWORD_ELSE,
	"while":     KEYWORD_WHILE,
	"for":       KEYWORD_FOR,
	"return":    KEYWORD_RETURN,
	"public":    KEYWORD_PUBLIC,
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))

// Rule for describing numbers, which are either hexadecimal or decimal.
var (
	hexDigit = lex.Or(
		lex.Within('0', '9'),
		lex.Within('A', 'F'),
		lex.Within('a', 'f'),
	)
	hexStart = lex.Sequence(lex.String("0x"), hexDigit)

	number = lex.Or(
		lex.SequenceNullableLast(hexStart, lex.Many(hexDigit)),
		lex.SequenceNullableLast(lex.Within('0', '9'), lex.Many(lex.Within('0', '9'))),
	)
)

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Unit('$'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Unit('$'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.SequenceNullableLast(identifierStart, identifierRest)

// Rule for describing strings in quotes
var strung lex.Scanner[rune] = lex.Sequence(lex.Unit('"'), lex.Many(lex.Not('"', '\n')), lex.Unit('"'))

// Line comments continue until a newline or EOF, block comments until "*/".
var comment lex.Scanner[rune] = lex.Or(
	lex.SequenceNullableLast(lex.String("//"), lex.Until('\n')),
	lex.SequenceNullableLast(lex.String("/*"), lex.UntilString("*/")),
)

// lexing rules, where longer operators must precede their prefixes.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('.'), DOT),
	lex.Rule(lex.Unit('?'), QUESTION),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.String("<=="), LEFT_CONSTRAIN),
	lex.Rule(lex.String("==>"), RIGHT_CONSTRAIN),
	lex.Rule(lex.String("<--"), LEFT_WIRE),
	lex.Rule(lex.String("-->"), RIGHT_WIRE),
	lex.Rule(lex.String("==="), CONSTRAINT_EQUALS),
	lex.Rule(lex.String("=="), EQUALS_EQUALS),
	lex.Rule(lex.String("!="), NOT_EQUALS),
	lex.Rule(lex.String("<="), LESS_THAN_EQUALS),
	lex.Rule(lex.String(">="), GREATER_THAN_EQUALS),
	lex.Rule(lex.String("<<"), SHL),
	lex.Rule(lex.String(">>"), SHR),
	lex.Rule(lex.String("||"), LOGICAL_OR),
	lex.Rule(lex.String("&&"), LOGICAL_AND),
	lex.Rule(lex.String("**"), POW),
	lex.Rule(lex.String("++"), INCREMENT),
	lex.Rule(lex.String("--"), DECREMENT),
	lex.Rule(lex.String("+="), ADD_EQUALS),
	lex.Rule(lex.String("-="), SUB_EQUALS),
	lex.Rule(lex.String("*="), MUL_EQUALS),
	lex.Rule(lex.String("/="), DIV_EQUALS),
	lex.Rule(lex.String("%="), MOD_EQUALS),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('<'), LESS_THAN),
	lex.Rule(lex.Unit('>'), GREATER_THAN),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(lex.Unit('\\'), INT_DIV),
	lex.Rule(lex.Unit('%'), MOD),
	lex.Rule(lex.Unit('|'), BITWISE_OR),
	lex.Rule(lex.Unit('&'), BITWISE_AND),
	lex.Rule(lex.Unit('^'), BITWISE_XOR),
	lex.Rule(lex.Unit('!'), LOGICAL_NOT),
	lex.Rule(lex.Unit('~'), BITWISE_NOT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(strung, STRING),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		contents = srcfile.Contents()
		lexer    = lex.NewLexer(contents, rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		// errors
		return nil, []source.SyntaxError{*err}
	}
	// Remove whitespace and comments
	tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE || t.Kind == COMMENT })
	// Reclassify keywords
	for i, t := range tokens {
		if t.Kind == IDENTIFIER {
			if kind, ok := keywords[string(contents[t.Span.Start():t.Span.End()])]; ok {
				tokens[i].Kind = kind
			}
		}
	}
	//
	return tokens, nil
}
