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
	"os"
	"path/filepath"

	"github.com/consensys/go-arithc/pkg/lang/ast"
	"github.com/consensys/go-arithc/pkg/lang/parser"
	"github.com/consensys/go-arithc/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Load takes a given set of source files, parses them along with any files
// they (transitively) include and links them into a single program.  Included
// files are resolved first relative to the including file, and then against
// each library path in turn.  Every file is loaded at most once.
func Load(libs []string, files ...*source.File) (*ast.Program, []source.SyntaxError) {
	//
	var (
		items   []parser.UnlinkedSourceFile
		errors  []source.SyntaxError
		visited map[string]bool = make(map[string]bool)
	)
	// Initialise visited map with all top-level files
	for _, sf := range files {
		visited[filepath.Clean(sf.Filename())] = true
	}
	// Parse each file in turn.
	for len(files) > 0 {
		var (
			file     = files[0]
			errs     []source.SyntaxError
			included []*source.File
			cs       parser.UnlinkedSourceFile
		)
		//
		files = files[1:]
		//
		log.Debugf("parsing %s", file.Filename())
		// Parse source file
		if cs, errs = parser.Parse(file); len(errs) == 0 {
			items = append(items, cs)
			// Process included source files
			included, errs = readIncludedFiles(file, cs, libs, visited)
			// Append any new files for processing
			files = append(files, included...)
		}
		// Include all errors
		errors = append(errors, errs...)
	}
	//
	if len(errors) != 0 {
		return nil, errors
	}
	// Link templates and functions together
	return Link(items...)
}

func readIncludedFiles(file *source.File, item parser.UnlinkedSourceFile, libs []string,
	visited map[string]bool) ([]*source.File, []source.SyntaxError) {
	//
	var (
		files  []*source.File
		errors []source.SyntaxError
	)
	//
	for _, include := range item.Includes {
		filename, ok := resolveInclude(file.Filename(), *include, libs)
		// Check filename not already parsed
		if !ok {
			errors = append(errors, *item.SourceMap.Source().SyntaxError(item.SourceMap.Get(include),
				"file not found"))
		} else if visited[filename] {
			// file already loaded, therefore ignore.
		} else if fs, err := source.ReadFiles(filename); err == nil {
			files = append(files, fs...)
		} else {
			errors = append(errors, *item.SourceMap.Source().SyntaxError(item.SourceMap.Get(include), err.Error()))
		}
		// Record that we've seen this file now.
		visited[filename] = true
	}
	//
	return files, errors
}

// Determine the file referred to by an include, by searching first the
// directory of the including file and then the library paths.
func resolveInclude(includer string, include string, libs []string) (string, bool) {
	var dirs = append([]string{filepath.Dir(includer)}, libs...)
	//
	for _, dir := range dirs {
		filename := filepath.Clean(filepath.Join(dir, include))
		//
		if info, err := os.Stat(filename); err == nil && !info.IsDir() {
			log.Debugf("resolved include %q as %s", include, filename)
			//
			return filename, true
		}
	}
	//
	return "", false
}
