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
)

// Kind identifies one member of the closed set of failures which compilation
// can report.
type Kind uint8

// DUPLICATE_DECLARATION indicates a name was declared twice in the same context.
const DUPLICATE_DECLARATION Kind = 0

// UNDECLARED_ITEM indicates a name which is not visible in the current context,
// or which is visible but has the wrong kind.
const UNDECLARED_ITEM Kind = 1

// INDEX_OUT_OF_BOUNDS indicates an array access outside its declared shape.
const INDEX_OUT_OF_BOUNDS Kind = 2

// INVALID_DATA_TYPE indicates an operation applied to a value of the wrong
// kind (e.g. a signal used where a concrete value is required).
const INVALID_DATA_TYPE Kind = 3

// EMPTY_DATA_ITEM indicates a variable read before it was ever assigned.
const EMPTY_DATA_ITEM Kind = 4

// CANNOT_MERGE_OUTPUT_NODES indicates an attempt to alias two wires which both
// already have a producer.
const CANNOT_MERGE_OUTPUT_NODES Kind = 5

// NODE_NOT_FOUND indicates a wire identifier unknown to the circuit.
const NODE_NOT_FOUND Kind = 6

// VARIABLE_NOT_DECLARED indicates a gate referring to an unregistered wire.
const VARIABLE_NOT_DECLARED Kind = 7

// CYCLIC_DEPENDENCY indicates gates whose dependencies form a cycle.
const CYCLIC_DEPENDENCY Kind = 8

// UNSUPPORTED_GATE_TYPE indicates an operator with no gate equivalent.
const UNSUPPORTED_GATE_TYPE Kind = 9

// INVALID_INPUT indicates a malformed circuit file.
const INVALID_INPUT Kind = 10

// IO_ERROR indicates a failure in the underlying reader or writer.
const IO_ERROR Kind = 11

// PARSING_ERROR indicates malformed source text (e.g. a numeric literal).
const PARSING_ERROR Kind = 12

// DIVISION_BY_ZERO indicates a concrete division or remainder by zero.
const DIVISION_BY_ZERO Kind = 13

// LOOP_BOUND_EXCEEDED indicates a loop which executed more iterations than
// permitted by the configured unrolling bound.
const LOOP_BOUND_EXCEEDED Kind = 14

var kindNames = [...]string{
	"duplicate declaration",
	"undeclared item",
	"index out of bounds",
	"invalid data type",
	"empty data item",
	"cannot merge output nodes",
	"node not found",
	"variable not declared",
	"cyclic dependency",
	"unsupported gate type",
	"invalid input",
	"i/o error",
	"parsing error",
	"division by zero",
	"loop bound exceeded",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return fmt.Sprintf("unknown(%d)", k)
}

var (
	// ErrDuplicateDeclaration matches any DUPLICATE_DECLARATION error.
	ErrDuplicateDeclaration = &Error{kind: DUPLICATE_DECLARATION}
	// ErrUndeclaredItem matches any UNDECLARED_ITEM error.
	ErrUndeclaredItem = &Error{kind: UNDECLARED_ITEM}
	// ErrIndexOutOfBounds matches any INDEX_OUT_OF_BOUNDS error.
	ErrIndexOutOfBounds = &Error{kind: INDEX_OUT_OF_BOUNDS}
	// ErrInvalidDataType matches any INVALID_DATA_TYPE error.
	ErrInvalidDataType = &Error{kind: INVALID_DATA_TYPE}
	// ErrEmptyDataItem matches any EMPTY_DATA_ITEM error.
	ErrEmptyDataItem = &Error{kind: EMPTY_DATA_ITEM}
	// ErrCannotMergeOutputNodes matches any CANNOT_MERGE_OUTPUT_NODES error.
	ErrCannotMergeOutputNodes = &Error{kind: CANNOT_MERGE_OUTPUT_NODES}
	// ErrNodeNotFound matches any NODE_NOT_FOUND error.
	ErrNodeNotFound = &Error{kind: NODE_NOT_FOUND}
	// ErrVariableNotDeclared matches any VARIABLE_NOT_DECLARED error.
	ErrVariableNotDeclared = &Error{kind: VARIABLE_NOT_DECLARED}
	// ErrCyclicDependency matches any CYCLIC_DEPENDENCY error.
	ErrCyclicDependency = &Error{kind: CYCLIC_DEPENDENCY}
	// ErrUnsupportedGateType matches any UNSUPPORTED_GATE_TYPE error.
	ErrUnsupportedGateType = &Error{kind: UNSUPPORTED_GATE_TYPE}
	// ErrInvalidInput matches any INVALID_INPUT error.
	ErrInvalidInput = &Error{kind: INVALID_INPUT}
	// ErrIO matches any IO_ERROR error.
	ErrIO = &Error{kind: IO_ERROR}
	// ErrParsing matches any PARSING_ERROR error.
	ErrParsing = &Error{kind: PARSING_ERROR}
	// ErrDivisionByZero matches any DIVISION_BY_ZERO error.
	ErrDivisionByZero = &Error{kind: DIVISION_BY_ZERO}
	// ErrLoopBoundExceeded matches any LOOP_BOUND_EXCEEDED error.
	ErrLoopBoundExceeded = &Error{kind: LOOP_BOUND_EXCEEDED}
)

// Error is a compilation failure of a given kind.  Errors of the same kind
// compare equal under errors.Is, hence callers can test against the sentinel
// values above regardless of the message.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// New constructs an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind, fmt.Sprintf(format, args...), nil}
}

// Wrap constructs an error of the given kind which records an underlying
// cause (e.g. the error returned from a reader).
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{kind, fmt.Sprintf(format, args...), cause}
}

// Kind returns the kind of this error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the message of this error, excluding its kind.
func (e *Error) Message() string {
	return e.msg
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.msg == "":
		return e.kind.String()
	case e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.cause)
	default:
		return fmt.Sprintf("%s: %s", e.kind, e.msg)
	}
}

// Unwrap returns the underlying cause (if any).
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target is an error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	//
	if errors.As(target, &t) {
		return t.kind == e.kind
	}
	//
	return false
}

// KindOf extracts the kind of the first fault found in the given error chain.
func KindOf(err error) (Kind, bool) {
	var f *Error
	//
	if errors.As(err, &f) {
		return f.kind, true
	}
	//
	return 0, false
}
