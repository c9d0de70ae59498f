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
	"encoding/json"
	"os"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
)

// WritePortsFile writes the ports of a netlist as JSON, such that a circuit file
// can later be evaluated on named inputs.
func WritePortsFile(filename string, ports circuit.Ports) error {
	bytes, err := json.MarshalIndent(ports, "", "  ")
	//
	if err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "encoding ports")
	} else if err = os.WriteFile(filename, bytes, 0644); err != nil {
		return fault.Wrap(fault.IO_ERROR, err, "writing %s", filename)
	}
	//
	return nil
}

// ReadPortsFile reads ports previously written with WritePortsFile.
func ReadPortsFile(filename string) (circuit.Ports, error) {
	var ports circuit.Ports
	//
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return ports, fault.Wrap(fault.IO_ERROR, err, "reading %s", filename)
	} else if err = json.Unmarshal(bytes, &ports); err != nil {
		return ports, fault.Wrap(fault.INVALID_INPUT, err, "decoding %s", filename)
	}
	//
	return ports, nil
}
