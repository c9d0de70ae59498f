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
package source

import (
	"fmt"
	"os"
	"sort"
)

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]*File, error) {
	files := make([]*File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Line is a physical line of a source file, excluding its terminating newline.
type Line struct {
	text   []rune
	span   Span
	number int
}

func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, counting from 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the offset of the first character of this line.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// File represents a given source file (typically stored on disk).
type File struct {
	filename string
	contents []rune
	// Offset of the first character of each line, computed on demand.
	lines []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes)), nil}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// FindFirstEnclosingLine determines the line containing the start of a span.
// A span starting beyond the end of the file belongs to the last line.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	if s.lines == nil {
		s.lines = []int{0}
		//
		for i, c := range s.contents {
			if c == '\n' {
				s.lines = append(s.lines, i+1)
			}
		}
	}
	// Index of last line starting at or before the span
	n := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > span.start }) - 1
	n = max(0, n)
	start := s.lines[n]
	end := len(s.contents)
	//
	if n+1 < len(s.lines) {
		end = s.lines[n+1] - 1
	}
	//
	return Line{s.contents, Span{start, end}, n + 1}
}

// SyntaxError is an error message associated with a span of a source file.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the underlying source file that this syntax error covers.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface, reporting the file name and the line
// and column (counting from 1) at which the error starts.
func (p *SyntaxError) Error() string {
	line := p.FirstEnclosingLine()
	column := p.span.Start() - line.Start() + 1
	//
	return fmt.Sprintf("%s:%d:%d: %s", p.srcfile.Filename(), line.Number(), column, p.Message())
}

// FirstEnclosingLine determines the line of the source file on which this error
// starts.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}
