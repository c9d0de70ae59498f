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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-arithc/pkg/fault"
)

// Write a circuit in text form.  Wires are written exactly as given.
func Write(w io.Writer, c *Circuit) error {
	var writer = bufio.NewWriter(w)
	//
	if _, err := fmt.Fprintf(writer, "%d %d\n", len(c.Gates), c.NumWires); err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "writing header")
	} else if err = writeWidths(writer, c.NumInputs); err != nil {
		return err
	} else if err = writeWidths(writer, c.NumOutputs); err != nil {
		return err
	} else if _, err = writer.WriteString("\n"); err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "writing header")
	}
	//
	for _, g := range c.Gates {
		if _, err := fmt.Fprintf(writer, "2 1 %d %d %d %s\n", g.Lhs, g.Rhs, g.Out, g.Kind); err != nil {
			return fault.Wrap(fault.IO_ERROR, err, "writing gate")
		}
	}
	//
	if err := writer.Flush(); err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "flushing circuit")
	}
	//
	return nil
}

// WriteFile writes a circuit in text form to a given file.
func WriteFile(filename string, c *Circuit) error {
	file, err := os.Create(filename)
	//
	if err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "creating %s", filename)
	}
	//
	if err = Write(file, c); err != nil {
		file.Close()
		return err
	} else if err = file.Close(); err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "closing %s", filename)
	}
	//
	return nil
}

func writeWidths(writer *bufio.Writer, n uint32) error {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "%d", n)
	//
	for range n {
		builder.WriteString(" 1")
	}
	//
	builder.WriteString("\n")
	//
	if _, err := writer.WriteString(builder.String()); err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "writing header")
	}
	//
	return nil
}
