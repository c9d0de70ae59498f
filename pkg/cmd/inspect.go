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
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-arithc/pkg/bristol"
	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/util/termio"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] circuit_file",
	Short: "summarise a gate circuit file.",
	Long:  `Print the header of a gate circuit file, along with the number of gates of each type.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		c, err := bristol.ReadFile(args[0])
		if err != nil {
			reportError(err, 3)
		}
		//
		tp := summarise(c)
		tp.AnsiEscapes(termio.IsTerminal(os.Stdout))
		//
		if err := tp.Print(os.Stdout); err != nil {
			reportError(err, 3)
		}
	},
}

// Construct a table summarising a circuit file, giving the header followed by
// the count of each gate type which occurs.
func summarise(c *bristol.Circuit) *termio.TablePrinter {
	var (
		counts = make([]uint, len(circuit.GATE_TYPES))
		rows   = 4
		header = termio.BoldAnsiEscape().FgColour(termio.TERM_WHITE)
		count  = termio.NewAnsiEscape().FgColour(termio.TERM_CYAN)
	)
	//
	for _, g := range c.Gates {
		if counts[g.Kind] == 0 {
			rows++
		}
		//
		counts[g.Kind]++
	}
	//
	tp := termio.NewTablePrinter(2, uint(rows))
	tp.SetRow(0, "gates", fmt.Sprintf("%d", len(c.Gates)))
	tp.SetRow(1, "wires", fmt.Sprintf("%d", c.NumWires))
	tp.SetRow(2, "inputs", fmt.Sprintf("%d", c.NumInputs))
	tp.SetRow(3, "outputs", fmt.Sprintf("%d", c.NumOutputs))
	//
	for row := uint(0); row < 4; row++ {
		tp.SetEscape(0, row, header)
	}
	//
	row := uint(4)
	//
	for _, kind := range circuit.GATE_TYPES {
		if counts[kind] > 0 {
			tp.SetRow(row, kind.String(), fmt.Sprintf("%d", counts[kind]))
			tp.SetEscape(1, row, count)
			row++
		}
	}
	//
	return tp
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
}
