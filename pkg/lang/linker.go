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
	"fmt"

	"github.com/consensys/go-arithc/pkg/lang/ast"
	"github.com/consensys/go-arithc/pkg/lang/parser"
	"github.com/consensys/go-arithc/pkg/util/source"
)

// Link a set of one or more parsed source files together to produce a complete
// program (or one or more errors).  Linking checks that every template and
// function name is declared exactly once across all files, and that exactly
// one file declares the main component, which must instantiate a known
// template.
func Link(files ...parser.UnlinkedSourceFile) (*ast.Program, []source.SyntaxError) {
	var (
		program = ast.NewProgram()
		errors  []source.SyntaxError
		mainSrc *source.Map[any]
	)
	// Constuct source mappings
	for _, item := range files {
		program.SourceMap.Join(item.SourceMap)
		//
		for _, t := range item.Templates {
			if exists(program, t.Name) {
				errors = append(errors, *program.SourceMap.SyntaxError(t, duplicate(t.Name)))
			} else {
				program.Templates[t.Name] = t
			}
		}
		//
		for _, f := range item.Functions {
			if exists(program, f.Name) {
				errors = append(errors, *program.SourceMap.SyntaxError(f, duplicate(f.Name)))
			} else {
				program.Functions[f.Name] = f
			}
		}
		//
		if item.Main == nil {
			continue
		} else if program.Main != nil {
			errors = append(errors, *program.SourceMap.SyntaxError(item.Main, "duplicate main component"))
		} else {
			program.Main, program.Public, mainSrc = item.Main, item.Public, item.SourceMap
		}
	}
	//
	switch {
	case len(errors) != 0:
		return nil, errors
	case program.Main == nil && len(files) > 0 && files[0].SourceMap != nil:
		srcfile := files[0].SourceMap.Source()
		return nil, []source.SyntaxError{*srcfile.SyntaxError(source.NewSpan(0, 0), "missing main component")}
	case program.Main == nil:
		return program, nil
	}
	// Check main instantiates a known template
	if t, ok := program.Templates[program.Main.Name]; !ok {
		msg := fmt.Sprintf("unknown template %s", program.Main.Name)
		errors = append(errors, *mainSrc.Source().SyntaxError(mainSrc.Get(program.Main), msg))
	} else if len(t.Params) != len(program.Main.Args) {
		msg := fmt.Sprintf("expected %d arguments, found %d", len(t.Params), len(program.Main.Args))
		errors = append(errors, *mainSrc.Source().SyntaxError(mainSrc.Get(program.Main), msg))
	}
	//
	if len(errors) != 0 {
		return nil, errors
	}
	//
	return program, nil
}

func exists(program *ast.Program, name string) bool {
	_, t := program.Templates[name]
	_, f := program.Functions[name]
	//
	return t || f
}

func duplicate(name string) string {
	return fmt.Sprintf("duplicate declaration %s", name)
}
