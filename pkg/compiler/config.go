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
package compiler

import (
	"strconv"
	"strings"

	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/consensys/go-arithc/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// Optimisation determines which circuit optimisations are applied after
// interpretation.  At level 0 the circuit is exported as constructed.  At
// level 1 the peephole pass removing additions of zero is applied once.  At
// level 2 the pass is repeated, up to the given number of rounds or (when
// rounds is zero) until nothing changes.
type Optimisation struct {
	Level  uint
	Rounds uint
}

// O0 applies no optimisations.
var O0 = Optimisation{0, 0}

// O1 applies a single peephole pass.
var O1 = Optimisation{1, 1}

// O2 applies the peephole pass until a fixed point is reached.
var O2 = Optimisation{2, 0}

// ParseOptimisation parses an optimisation level of the form "O1" or "O2,4",
// where the latter bounds the number of rounds.
func ParseOptimisation(text string) (Optimisation, error) {
	level, rounds, hasRounds := strings.Cut(text, ",")
	//
	var opt Optimisation
	//
	switch level {
	case "O0":
		opt = O0
	case "O1":
		opt = O1
	case "O2":
		opt = O2
	default:
		return opt, fault.New(fault.INVALID_INPUT, "unknown optimisation level %q", level)
	}
	//
	if hasRounds {
		n, err := strconv.ParseUint(rounds, 10, 32)
		//
		if err != nil {
			return opt, fault.Wrap(fault.INVALID_INPUT, err, "malformed rounds %q", rounds)
		} else if opt.Level != 2 {
			return opt, fault.New(fault.INVALID_INPUT, "rounds only apply to O2")
		}
		//
		opt.Rounds = uint(n)
	}
	//
	return opt, nil
}

func (o Optimisation) String() string {
	if o.Level == 2 && o.Rounds != 0 {
		return "O2," + strconv.FormatUint(uint64(o.Rounds), 10)
	}
	//
	return "O" + strconv.FormatUint(uint64(o.Level), 10)
}

// Outputs identifies additional artefacts which a proof-system backend would
// produce.  None of these apply to gate circuits, and they are accepted only
// for command-line compatibility.
type Outputs struct {
	R1CS bool
	Sym  bool
	Wasm bool
	C    bool
	Json bool
}

// Config determines how source files are compiled into a circuit.
type Config struct {
	// Optimisation level
	Optimisation Optimisation
	// Maximum number of iterations for any single loop (0 means unbounded).
	MaxUnroll uint
	// Directories searched for included files.
	LibraryPaths []string
	// Name of the prime field.  This has no bearing on the constructed
	// circuit, but must identify a supported field.
	Prime string
	// Additional (inert) outputs.
	Outputs Outputs
}

// DefaultConfig returns the configuration used when none is specified.
func DefaultConfig() Config {
	return Config{Optimisation: O1, Prime: field.BN254.Name}
}

// Validate checks this configuration is sensible, and warns about any options
// which have no effect.
func (c Config) Validate() error {
	if field.GetConfig(c.Prime) == nil {
		return fault.New(fault.INVALID_INPUT, "unknown prime %q", c.Prime)
	}
	//
	for _, output := range []struct {
		name    string
		enabled bool
	}{
		{"r1cs", c.Outputs.R1CS}, {"sym", c.Outputs.Sym}, {"wasm", c.Outputs.Wasm},
		{"c", c.Outputs.C}, {"json", c.Outputs.Json},
	} {
		if output.enabled {
			log.Warnf("ignoring --%s (not supported for gate circuits)", output.name)
		}
	}
	//
	return nil
}
