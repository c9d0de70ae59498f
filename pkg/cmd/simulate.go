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
	"math/big"
	"os"
	"slices"

	"github.com/consensys/go-arithc/pkg/bristol"
	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/sim"
	"github.com/consensys/go-arithc/pkg/util/field"
	"github.com/consensys/go-arithc/pkg/util/field/bls12_377"
	"github.com/consensys/go-arithc/pkg/util/field/bn254"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [flags] circuit_file ports_file inputs_file",
	Short: "evaluate a gate circuit on given inputs.",
	Long: `Evaluate a compiled gate circuit on a given set of named inputs, and print the
	 value of each output.  Gates are evaluated either over 32-bit words or over a
	 prime field.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 3 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		netlist, inputs := readSimulation(args[0], args[1], args[2])
		//
		switch name := GetString(cmd, "field"); name {
		case "u32":
			simulate[uint32](netlist, sim.Uint32{}, inputs)
		case field.BN254.Name:
			simulate[bn254.Element](netlist, sim.Field[bn254.Element]{}, inputs)
		case field.BLS12_377.Name:
			simulate[bls12_377.Element](netlist, sim.Field[bls12_377.Element]{}, inputs)
		default:
			fmt.Printf("unknown field %s\n", name)
			os.Exit(2)
		}
	},
}

func readSimulation(circuitFile, portsFile, inputsFile string) (*circuit.Netlist, map[string]*big.Int) {
	c, err := bristol.ReadFile(circuitFile)
	if err != nil {
		reportError(err, 3)
	}
	//
	ports, err := bristol.ReadPortsFile(portsFile)
	if err != nil {
		reportError(err, 3)
	}
	//
	netlist, err := c.ToNetlist(ports)
	if err != nil {
		reportError(err, 3)
	}
	//
	inputs, err := sim.ReadInputs(inputsFile)
	if err != nil {
		reportError(err, 3)
	}
	//
	return netlist, inputs
}

func simulate[T any](netlist *circuit.Netlist, sem sim.Semantics[T], values map[string]*big.Int) {
	inputs, err := sim.Convert(sem, values)
	if err != nil {
		reportError(err, 3)
	}
	//
	outputs, err := sim.Evaluate(netlist, sem, inputs)
	if err != nil {
		reportError(err, 4)
	}
	// Print outputs in declaration order
	names := make([]string, 0, len(outputs))
	for _, port := range netlist.Outputs {
		if !slices.Contains(names, port.Name) {
			names = append(names, port.Name)
		}
	}
	//
	for _, name := range names {
		fmt.Printf("%s = %s\n", name, sem.String(outputs[name]))
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("field", "u32", "value domain (u32, bn254 or bls12-377).")
}
