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
	"path/filepath"
	"strings"

	"github.com/consensys/go-arithc/pkg/bristol"
	"github.com/consensys/go-arithc/pkg/compiler"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] source_file(s)",
	Short: "compile a program into a gate circuit.",
	Long: `Compile a given set of source file(s) into a gate circuit file, along with a
	 listing of the wires carrying each named input and output.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		config := readCompilerConfig(cmd)
		output := GetString(cmd, "output")
		// Compile source files
		netlist, err := compiler.CompileFiles(config, args...)
		if err != nil {
			reportError(err, 4)
		}
		//
		base := filepath.Join(output, strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])))
		//
		if err := os.MkdirAll(output, 0755); err != nil {
			reportError(err, 3)
		} else if err := bristol.WriteFile(base+".bristol", bristol.FromNetlist(netlist)); err != nil {
			reportError(err, 3)
		} else if err := bristol.WritePortsFile(base+".ports.json", netlist.Ports); err != nil {
			reportError(err, 3)
		}
		//
		log.Infof("wrote %s.bristol and %s.ports.json", base, base)
	},
}

// Construct the compiler configuration from the command-line flags.
func readCompilerConfig(cmd *cobra.Command) compiler.Config {
	config := compiler.DefaultConfig()
	//
	opt, err := compiler.ParseOptimisation(GetString(cmd, "opt"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	config.Optimisation = opt
	config.MaxUnroll = GetUint(cmd, "max-unroll")
	config.LibraryPaths = GetStringArray(cmd, "library")
	config.Prime = GetString(cmd, "prime")
	config.Outputs = compiler.Outputs{
		R1CS: GetFlag(cmd, "r1cs"),
		Sym:  GetFlag(cmd, "sym"),
		Wasm: GetFlag(cmd, "wasm"),
		C:    GetFlag(cmd, "c"),
		Json: GetFlag(cmd, "json"),
	}
	//
	return config
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", ".", "specify output directory.")
	compileCmd.Flags().StringP("opt", "O", "O1", "set optimisation level (O0, O1, O2 or O2,<rounds>).")
	compileCmd.Flags().StringArrayP("library", "l", []string{}, "add directory to search for included files.")
	compileCmd.Flags().String("prime", "bn128", "specify prime field.")
	compileCmd.Flags().Uint("max-unroll", 0, "bound iterations of any single loop (0 for unbounded).")
	compileCmd.Flags().Bool("r1cs", false, "output constraints (unsupported).")
	compileCmd.Flags().Bool("sym", false, "output symbols (unsupported).")
	compileCmd.Flags().Bool("wasm", false, "output wasm witness generator (unsupported).")
	compileCmd.Flags().Bool("c", false, "output C witness generator (unsupported).")
	compileCmd.Flags().Bool("json", false, "output constraints as JSON (unsupported).")
}
