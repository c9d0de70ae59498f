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
package interp

import (
	"errors"

	"github.com/consensys/go-arithc/pkg/util/source"
)

// Error associates a failure arising during interpretation with the innermost
// statement or expression at which it arose.  The underlying fault remains
// accessible via errors.Is and errors.As.
type Error struct {
	cause error
	where *source.SyntaxError
}

// SyntaxError returns the source location of this error.
func (e *Error) SyntaxError() *source.SyntaxError {
	return e.where
}

func (e *Error) Error() string {
	return e.where.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Attach the source location of a given node to an error, unless it already
// has one or the node is not mapped.
func (p *Interpreter) locate(node any, err error) error {
	var located *Error
	//
	if err == nil || errors.As(err, &located) || p.program.SourceMap == nil {
		return err
	} else if where := p.program.SourceMap.SyntaxError(node, err.Error()); where != nil {
		return &Error{err, where}
	}
	//
	return err
}
