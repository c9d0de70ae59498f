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

// Package compiler ties together the stages which turn source files into a
// linearised gate circuit: loading, interpretation, optimisation and export.
package compiler

import (
	"fmt"
	"strings"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/interp"
	"github.com/consensys/go-arithc/pkg/lang"
	"github.com/consensys/go-arithc/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// SyntaxErrors groups together the syntax errors arising from loading a set of
// source files.
type SyntaxErrors []source.SyntaxError

func (p SyntaxErrors) Error() string {
	var builder strings.Builder
	//
	for i := range p {
		if i != 0 {
			builder.WriteString("\n")
		}
		//
		builder.WriteString(p[i].Error())
	}
	//
	return builder.String()
}

// CompileFiles reads and compiles a given set of source files.
func CompileFiles(config Config, filenames ...string) (*circuit.Netlist, error) {
	files, err := source.ReadFiles(filenames...)
	//
	if err != nil {
		return nil, fault.Wrap(fault.IO_ERROR, err, "reading source files")
	}
	//
	return Compile(config, files...)
}

// Compile a given set of source files into a netlist.  Syntax errors are
// reported as a PARSING_ERROR wrapping SyntaxErrors, whilst errors arising
// during interpretation identify the offending source location via
// interp.Error.
func Compile(config Config, files ...*source.File) (*circuit.Netlist, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	//
	program, errs := lang.Load(config.LibraryPaths, files...)
	//
	if len(errs) != 0 {
		return nil, fault.Wrap(fault.PARSING_ERROR, SyntaxErrors(errs), "%d syntax error(s)", len(errs))
	}
	//
	c, err := interp.Interpret(program, interp.WithMaxUnroll(config.MaxUnroll))
	//
	if err != nil {
		return nil, err
	}
	//
	Optimise(c, config.Optimisation)
	//
	netlist, err := c.Export()
	//
	if err != nil {
		return nil, err
	}
	//
	log.Infof("compiled %s into %d gates over %d wires (%d inputs, %d outputs)", describe(files),
		len(netlist.Gates), netlist.NumWires, len(netlist.Inputs), len(netlist.Outputs))
	//
	return netlist, nil
}

// Optimise a circuit at a given level, returning the number of gates removed.
func Optimise(c *circuit.Circuit, opt Optimisation) uint {
	var total uint
	//
	for round := uint(1); opt.Level > 0; round++ {
		n := c.TruncateZeroAddGates()
		total += n
		//
		log.Debugf("optimisation round %d removed %d gates", round, n)
		//
		if n == 0 || opt.Level == 1 || round == opt.Rounds {
			break
		}
	}
	//
	return total
}

func describe(files []*source.File) string {
	switch len(files) {
	case 0:
		return "nothing"
	case 1:
		return files[0].Filename()
	default:
		return fmt.Sprintf("%s (and %d more)", files[0].Filename(), len(files)-1)
	}
}
