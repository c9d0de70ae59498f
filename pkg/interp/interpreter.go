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
	"slices"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/interp/scope"
	"github.com/consensys/go-arithc/pkg/lang/ast"
	log "github.com/sirupsen/logrus"
)

// MAIN_PATH is the hierarchical path of the main component.  The names of its
// signals take the form "0.in", "0.out[1]", etc.
const MAIN_PATH = "0"

// Interpreter walks a linked program, starting from its main component,
// evaluating all compile-time computation directly and emitting gates into a
// circuit for everything which depends upon signals.
type Interpreter struct {
	program *ast.Program
	circuit *circuit.Circuit
	stack   *scope.Stack
	// Maximum number of iterations of any single loop (0 = unbounded)
	maxUnroll uint
	// Hierarchical path of the component being instantiated
	path string
	// Depth of function calls currently being executed.
	calls uint
	// Set when a return statement has executed, but the enclosing function
	// has not yet been exited.
	result *Value
}

// Option configures an interpreter.
type Option func(*Interpreter)

// WithMaxUnroll bounds the number of iterations any single loop may execute.
// A loop which attempts more fails with a LOOP_BOUND_EXCEEDED error.  Zero
// means no bound.
func WithMaxUnroll(n uint) Option {
	return func(p *Interpreter) {
		p.maxUnroll = n
	}
}

// New constructs an interpreter for a given program.
func New(program *ast.Program, options ...Option) *Interpreter {
	var (
		c      = circuit.NewCircuit()
		interp = &Interpreter{program: program, circuit: c, stack: scope.NewStack(c)}
	)
	//
	for _, option := range options {
		option(interp)
	}
	//
	return interp
}

// Interpret is a convenience function which constructs an interpreter for a
// given program and runs it.
func Interpret(program *ast.Program, options ...Option) (*circuit.Circuit, error) {
	return New(program, options...).Run()
}

// Run instantiates the main component, and returns the resulting circuit.  The
// input and output signals of the main component become the inputs and outputs
// of the circuit.
func (p *Interpreter) Run() (*circuit.Circuit, error) {
	var main = p.program.Main
	//
	if main == nil {
		return nil, fault.New(fault.UNDECLARED_ITEM, "no main component")
	}
	//
	template, ok := p.program.Templates[main.Name]
	//
	if !ok {
		return nil, p.locate(main, fault.New(fault.UNDECLARED_ITEM, "template %s", main.Name))
	}
	// Arguments are evaluated in an (empty) top-level context.
	p.stack.PushContext(true)
	//
	args, err := p.evalArgs(main.Args)
	//
	if err != nil {
		return nil, err
	}
	//
	instance, err := p.instantiate(template, args, MAIN_PATH)
	//
	if err != nil {
		return nil, err
	}
	//
	p.stack.PopContext()
	//
	if err := p.registerPorts(instance); err != nil {
		return nil, p.locate(main, err)
	}
	//
	log.Debugf("interpreted %s with %d gates over %d wires", main, p.circuit.NumGates(), p.circuit.NumVars())
	//
	return p.circuit, nil
}

// Circuit returns the circuit constructed so far.
func (p *Interpreter) Circuit() *circuit.Circuit {
	return p.circuit
}

// Register the ports of the main component with the circuit, in declaration
// order, along with the cells of each in row-major order.
func (p *Interpreter) registerPorts(instance *scope.Instance) error {
	for _, name := range p.program.Public {
		if port, ok := instance.Ports[name]; !ok || port.Role != scope.INPUT {
			return fault.New(fault.UNDECLARED_ITEM, "public signal %s is not an input of %s", name,
				instance.Template)
		}
	}
	//
	for _, name := range instance.Order {
		var (
			port = instance.Ports[name]
			add  = p.circuit.AddInput
		)
		//
		if port.Role == scope.OUTPUT {
			add = p.circuit.AddOutput
		}
		//
		for _, signal := range p.circuit.SignalsWithPrefix(instance.Path + "." + name) {
			if !slices.Contains(port.Ids, signal.Wire) {
				// signal of a nested scope with the same name
				continue
			} else if err := add(signal.Name, signal.Wire); err != nil {
				return err
			}
		}
	}
	//
	return nil
}
