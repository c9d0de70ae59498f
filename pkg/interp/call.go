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
	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/interp/scope"
	"github.com/consensys/go-arithc/pkg/lang/ast"
	"github.com/consensys/go-arithc/pkg/lang/ast/expr"
	"github.com/consensys/go-arithc/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Evaluate a call within an expression, which must be a call to a function.
// Templates can only be instantiated by assigning a component.
func (p *Interpreter) evalCall(e *expr.Call) (Value, error) {
	if _, ok := p.program.Templates[e.Name]; ok {
		return Value{}, fault.New(fault.INVALID_DATA_TYPE, "template %s used as a value", e.Name)
	}
	//
	function, ok := p.program.Functions[e.Name]
	//
	if !ok {
		return Value{}, p.unknownCallable(e.Name)
	}
	// Arguments are evaluated in the caller's context
	args, err := p.evalArgs(e.Args)
	//
	if err != nil {
		return Value{}, err
	}
	//
	return p.call(function, args)
}

// Call a function with a given set of arguments.  The function body executes
// in a fresh call context, where each parameter is declared and assigned its
// argument.  Concrete arguments become variables, whilst any others become
// signals aliasing the caller's wires.
func (p *Interpreter) call(function *ast.Function, args []Value) (Value, error) {
	if err := checkArity(function.Callable, args); err != nil {
		return Value{}, err
	}
	//
	p.stack.PushContext(true)
	p.calls++
	//
	err := p.bindParameters(function.Callable, args, true)
	//
	if err == nil {
		err = p.execAll(function.Body.Stmts)
	}
	//
	p.calls--
	p.stack.PopContext()
	//
	result := p.result
	p.result = nil
	//
	switch {
	case err != nil:
		return Value{}, err
	case result == nil:
		return Value{}, fault.New(fault.EMPTY_DATA_ITEM, "function %s returned no value", function.Name)
	default:
		return *result, nil
	}
}

// Instantiate a template with a given set of (concrete) arguments as a
// component with a given path.  The template body executes in a fresh call
// context, and the input and output signals declared at its top level become
// the ports of the resulting instance.
func (p *Interpreter) instantiate(template *ast.Template, args []Value, path string) (*scope.Instance, error) {
	if err := checkArity(template.Callable, args); err != nil {
		return nil, err
	}
	//
	log.Debugf("instantiating %s as %s", template.Name, path)
	//
	var (
		caller   = p.path
		calls    = p.calls
		instance = scope.NewInstance(template.Name, path)
	)
	//
	p.stack.PushContext(true)
	p.path, p.calls = path, 0
	//
	err := p.bindParameters(template.Callable, args, false)
	//
	if err == nil {
		err = p.execAll(template.Body.Stmts)
	}
	//
	for _, item := range p.stack.Current().Items() {
		if item.Kind == scope.SIGNAL && item.Role != scope.INTERMEDIATE {
			instance.AddPort(item)
		}
	}
	//
	p.stack.PopContext()
	p.path, p.calls = caller, calls
	//
	if err != nil {
		return nil, err
	}
	//
	return instance, nil
}

// Declare each parameter in the current context, and assign it the
// corresponding argument.  Signal arguments are only permitted for functions.
func (p *Interpreter) bindParameters(callable ast.Callable, args []Value, signals bool) error {
	for i, param := range callable.Params {
		var arg = args[i]
		//
		if !arg.IsConcrete() {
			if !signals {
				return fault.New(fault.INVALID_DATA_TYPE, "argument %s of %s not known at compile time", param,
					callable.Name)
			}
			//
			wires := make([]uint32, len(arg.cells))
			//
			for j, c := range arg.cells {
				wires[j] = p.wire(c)
			}
			//
			if err := p.stack.DeclareAlias(param, arg.shape, wires); err != nil {
				return err
			}
			//
			continue
		}
		//
		if _, err := p.stack.DeclareItem(scope.VARIABLE, param, arg.shape); err != nil {
			return err
		}
		//
		item, err := p.stack.Lookup(param)
		//
		if err != nil {
			return err
		}
		//
		for j, c := range arg.cells {
			item.Values[j] = util.Some(c.Value())
		}
	}
	//
	return nil
}

func (p *Interpreter) unknownCallable(name string) error {
	return fault.New(fault.UNDECLARED_ITEM, "no template or function %s", name)
}

func checkArity(callable ast.Callable, args []Value) error {
	if len(callable.Params) != len(args) {
		return fault.New(fault.INVALID_DATA_TYPE, "%s expects %d arguments, found %d", callable.Name,
			len(callable.Params), len(args))
	}
	//
	return nil
}
