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
package sim

import (
	_ "embed"
	"fmt"
	"math/big"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/consensys/go-arithc/pkg/fault"
)

//go:embed inputs.cue
var inputSchema []byte

// ReadInputs reads a JSON file of named input values, validating it against
// the input schema.  List values are flattened in row-major order, such that
// {"in": [1, 2]} is equivalent to {"in[0]": 1, "in[1]": 2}.
func ReadInputs(filename string) (map[string]*big.Int, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, fault.Wrap(fault.IO_ERROR, err, "reading %s", filename)
	}
	//
	return ParseInputs(bytes)
}

// ParseInputs parses and validates input values given as JSON.
func ParseInputs(bytes []byte) (map[string]*big.Int, error) {
	var (
		ctx    = cuecontext.New()
		schema = ctx.CompileBytes(inputSchema)
		data   = ctx.CompileBytes(bytes)
	)
	//
	if schema.Err() != nil {
		return nil, fault.Wrap(fault.INVALID_INPUT, schema.Err(), "compiling input schema")
	} else if data.Err() != nil {
		return nil, fault.Wrap(fault.INVALID_INPUT, data.Err(), "parsing inputs")
	}
	//
	input := schema.LookupPath(cue.ParsePath("#Input")).Unify(data)
	//
	if err := input.Validate(cue.Concrete(true)); err != nil {
		return nil, fault.Wrap(fault.INVALID_INPUT, err, "validating inputs")
	}
	//
	fields, err := input.Fields()
	if err != nil {
		return nil, fault.Wrap(fault.INVALID_INPUT, err, "reading inputs")
	}
	//
	values := make(map[string]*big.Int)
	//
	for fields.Next() {
		if err := flatten(fields.Selector().Unquoted(), fields.Value(), values); err != nil {
			return nil, err
		}
	}
	//
	return values, nil
}

// Convert input values into those of a given semantics.
func Convert[T any](sem Semantics[T], values map[string]*big.Int) (map[string]T, error) {
	converted := make(map[string]T, len(values))
	//
	for name, val := range values {
		v, err := sem.FromBigInt(val)
		//
		if err != nil {
			return nil, fault.Wrap(fault.INVALID_INPUT, err, "input %s", name)
		}
		//
		converted[name] = v
	}
	//
	return converted, nil
}

func flatten(name string, value cue.Value, values map[string]*big.Int) error {
	switch value.Kind() {
	case cue.IntKind:
		val, err := value.Int(nil)
		if err != nil {
			return fault.Wrap(fault.INVALID_INPUT, err, "input %s", name)
		}
		//
		values[name] = val
	case cue.StringKind:
		str, err := value.String()
		if err != nil {
			return fault.Wrap(fault.INVALID_INPUT, err, "input %s", name)
		}
		//
		val, ok := new(big.Int).SetString(str, 0)
		if !ok {
			return fault.New(fault.INVALID_INPUT, "input %s: malformed number %q", name, str)
		}
		//
		values[name] = val
	case cue.ListKind:
		items, err := value.List()
		if err != nil {
			return fault.Wrap(fault.INVALID_INPUT, err, "input %s", name)
		}
		//
		for i := 0; items.Next(); i++ {
			if err := flatten(fmt.Sprintf("%s[%d]", name, i), items.Value(), values); err != nil {
				return err
			}
		}
	default:
		return fault.New(fault.INVALID_INPUT, "input %s: unexpected %s", name, value.Kind())
	}
	//
	return nil
}
