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
package bristol

import (
	"bufio"
	"compress/bzip2"
	"errors"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
)

// Maximum number of gates allocated ahead of reading them.
const maxPrealloc = 1 << 16

// Read a circuit in text form, checking it is well-formed: the header arities
// must match, every width must be 1, every gate must have arity "2 1", a known
// opcode and wires below the wire count, and nothing but blank lines may follow
// the last gate.
func Read(r io.Reader) (*Circuit, error) {
	var (
		reader = lineReader{bufio.NewReaderSize(r, 1024*128), 0}
		c      Circuit
	)
	// Header
	header, err := reader.fields(2)
	if err != nil {
		return nil, err
	}
	//
	ngates, err := reader.number(header[0])
	if err != nil {
		return nil, err
	} else if c.NumWires, err = reader.number(header[1]); err != nil {
		return nil, err
	} else if c.NumInputs, err = reader.widths("input"); err != nil {
		return nil, err
	} else if c.NumOutputs, err = reader.widths("output"); err != nil {
		return nil, err
	}
	// Gates, grown as they are read since the header count is untrusted
	c.Gates = make([]circuit.Gate, 0, min(ngates, maxPrealloc))
	//
	for range ngates {
		gate, err := reader.gate(c.NumWires)
		//
		if err != nil {
			return nil, err
		}
		//
		c.Gates = append(c.Gates, gate)
	}
	// Trailing content
	if line, err := reader.next(); err != nil {
		return nil, err
	} else if line != nil {
		return nil, reader.invalid("unexpected content after last gate")
	}
	//
	return &c, nil
}

// ReadFile reads a circuit in text form from a given file.  Files with the
// extension ".bz2" are decompressed.
func ReadFile(filename string) (*Circuit, error) {
	file, err := os.Open(filename)
	//
	if err != nil {
		return nil, fault.Wrap(fault.IO_ERROR, err, "opening %s", filename)
	}
	//
	defer file.Close()
	//
	var reader io.Reader = file
	// check extension
	if path.Ext(filename) == ".bz2" {
		reader = bzip2.NewReader(file)
	}
	//
	return Read(reader)
}

// lineReader splits its input into lines of whitespace separated fields,
// skipping blank lines.
type lineReader struct {
	reader *bufio.Reader
	// Number of the last line read (counting from 1)
	line uint
}

// Read the next non-blank line, returning nil at end of input.
func (p *lineReader) next() ([]string, error) {
	for {
		var (
			bytes []byte
			bit   []byte
			cont  = true
			err   error
		)
		//
		for cont {
			bit, cont, err = p.reader.ReadLine()
			if errors.Is(err, io.EOF) {
				return nil, nil
			} else if err != nil {
				return nil, fault.Wrap(fault.IO_ERROR, err, "reading line %d", p.line+1)
			}
			//
			bytes = append(bytes, bit...)
		}
		//
		p.line++
		//
		if fields := strings.Fields(string(bytes)); len(fields) > 0 {
			return fields, nil
		}
	}
}

// Read the next non-blank line, which must have a given number of fields.
func (p *lineReader) fields(n int) ([]string, error) {
	fields, err := p.next()
	//
	switch {
	case err != nil:
		return nil, err
	case fields == nil:
		return nil, fault.New(fault.INVALID_INPUT, "unexpected end of input after line %d", p.line)
	case len(fields) != n:
		return nil, p.invalid("expected %d fields, found %d", n, len(fields))
	}
	//
	return fields, nil
}

// Read an input or output section of the header.
func (p *lineReader) widths(section string) (uint32, error) {
	fields, err := p.next()
	//
	if err != nil {
		return 0, err
	} else if fields == nil {
		return 0, fault.New(fault.INVALID_INPUT, "missing %s section", section)
	}
	//
	n, err := p.number(fields[0])
	//
	if err != nil {
		return 0, err
	} else if uint64(len(fields)-1) != uint64(n) {
		return 0, p.invalid("%s count %d does not match %d width(s)", section, n, len(fields)-1)
	}
	//
	for _, f := range fields[1:] {
		if f != "1" {
			return 0, p.invalid("unsupported %s width %q", section, f)
		}
	}
	//
	return n, nil
}

func (p *lineReader) gate(nwires uint32) (circuit.Gate, error) {
	var gate circuit.Gate
	//
	fields, err := p.fields(6)
	if err != nil {
		return gate, err
	} else if fields[0] != "2" || fields[1] != "1" {
		return gate, p.invalid("unsupported gate arity %s %s", fields[0], fields[1])
	}
	//
	kind, ok := circuit.ParseGateType(fields[5])
	if !ok {
		return gate, p.invalid("unknown opcode %q", fields[5])
	}
	//
	gate.Kind = kind
	//
	for i, w := range []*uint32{&gate.Lhs, &gate.Rhs, &gate.Out} {
		if *w, err = p.number(fields[2+i]); err != nil {
			return gate, err
		} else if *w >= nwires {
			return gate, p.invalid("wire %d out of range", *w)
		}
	}
	//
	return gate, nil
}

func (p *lineReader) number(field string) (uint32, error) {
	n, err := strconv.ParseUint(field, 10, 32)
	//
	if err != nil {
		return 0, p.invalid("malformed number %q", field)
	}
	//
	return uint32(n), nil
}

func (p *lineReader) invalid(format string, args ...any) error {
	return fault.New(fault.INVALID_INPUT, "line %d: "+format, append([]any{p.line}, args...)...)
}
