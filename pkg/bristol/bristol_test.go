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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-arithc/pkg/circuit"
	"github.com/consensys/go-arithc/pkg/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adder = `2 5
2 1 1
1 1

2 1 0 1 3 AAdd
2 1 3 2 4 AMul
`

func Test_Read_00(t *testing.T) {
	c, err := Read(strings.NewReader(adder))
	require.NoError(t, err)
	//
	assert.Equal(t, uint32(5), c.NumWires)
	assert.Equal(t, uint32(2), c.NumInputs)
	assert.Equal(t, uint32(1), c.NumOutputs)
	assert.Equal(t, []circuit.Gate{{Kind: circuit.ADD, Lhs: 0, Rhs: 1, Out: 3}, {Kind: circuit.MUL, Lhs: 3, Rhs: 2, Out: 4}}, c.Gates)
}

func Test_Read_01(t *testing.T) {
	// Empty circuit, no trailing newline
	c, err := Read(strings.NewReader("0 0\n0\n0"))
	require.NoError(t, err)
	assert.Empty(t, c.Gates)
}

func Test_Read_02(t *testing.T) {
	// Trailing blank lines are fine
	_, err := Read(strings.NewReader(adder + "\n\n  \n"))
	require.NoError(t, err)
}

func Test_Read_03(t *testing.T) {
	check_Invalid(t, "1 3\n2 1 1\n1 1\n2 1 0 1 2 ANand\n")
}

func Test_Read_04(t *testing.T) {
	// Wire out of range
	check_Invalid(t, "1 3\n2 1 1\n1 1\n2 1 0 1 3 AAdd\n")
}

func Test_Read_05(t *testing.T) {
	// Arity mismatch in header
	check_Invalid(t, "1 3\n3 1 1\n1 1\n2 1 0 1 2 AAdd\n")
	// Width other than one
	check_Invalid(t, "1 3\n2 1 8\n1 1\n2 1 0 1 2 AAdd\n")
	// Gate arity
	check_Invalid(t, "1 3\n2 1 1\n1 1\n1 1 0 1 2 AAdd\n")
}

func Test_Read_06(t *testing.T) {
	// Trailing content
	check_Invalid(t, adder+"2 1 0 1 2 AAdd\n")
	// Missing gate
	check_Invalid(t, "2 3\n2 1 1\n1 1\n2 1 0 1 2 AAdd\n")
	// Malformed numbers
	check_Invalid(t, "x 3\n2 1 1\n1 1\n")
	check_Invalid(t, "1 3\n2 1 1\n1 1\n2 1 0 -1 2 AAdd\n")
	// Missing sections
	check_Invalid(t, "")
	check_Invalid(t, "0 0\n0\n")
}

func Test_Read_07(t *testing.T) {
	_, err := Read(failingReader{})
	require.ErrorIs(t, err, fault.ErrIO)
}

func Test_Read_08(t *testing.T) {
	// Gate count in the header far exceeds the gates present
	check_Invalid(t, "4294967295 3\n1 1\n1 1\n2 1 0 0 1 AAdd\n")
	check_Invalid(t, "70000 3\n1 1\n1 1\n2 1 0 0 1 AAdd\n")
}

func Test_Write_00(t *testing.T) {
	var (
		buf bytes.Buffer
		c   = &Circuit{5, 2, 1, []circuit.Gate{{Kind: circuit.ADD, Lhs: 0, Rhs: 1, Out: 3}, {Kind: circuit.MUL, Lhs: 3, Rhs: 2, Out: 4}}}
	)
	//
	require.NoError(t, Write(&buf, c))
	assert.Equal(t, adder, buf.String())
}

func Test_Write_01(t *testing.T) {
	// Round trip over every gate type
	var (
		buf bytes.Buffer
		c   = Circuit{NumWires: 3 + uint32(len(circuit.GATE_TYPES)), NumInputs: 3, NumOutputs: 2}
	)
	//
	for i, kind := range circuit.GATE_TYPES {
		c.Gates = append(c.Gates, circuit.Gate{Kind: kind, Lhs: uint32(i % 3), Rhs: 2, Out: 3 + uint32(i)})
	}
	//
	require.NoError(t, Write(&buf, &c))
	//
	d, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, *d)
}

func Test_Write_02(t *testing.T) {
	err := Write(failingWriter{}, &Circuit{})
	require.ErrorIs(t, err, fault.ErrIO)
}

func Test_Netlist_00(t *testing.T) {
	netlist := &circuit.Netlist{
		NumWires:      4,
		NumInputWires: 3,
		Ports: circuit.Ports{
			Inputs:    []circuit.Port{{Name: "0.a", Wire: 0}, {Name: "0.b", Wire: 1}},
			Outputs:   []circuit.Port{{Name: "0.c", Wire: 3}},
			Constants: []circuit.Constant{{Wire: 2, Value: 7}},
		},
		Gates: []circuit.Gate{{Kind: circuit.ADD, Lhs: 0, Rhs: 2, Out: 3}},
	}
	//
	c := FromNetlist(netlist)
	assert.Equal(t, uint32(3), c.NumInputs)
	assert.Equal(t, uint32(1), c.NumOutputs)
	assert.Equal(t, netlist.Gates, c.Gates)
}

func Test_Netlist_01(t *testing.T) {
	c, err := Read(strings.NewReader(adder))
	require.NoError(t, err)
	//
	ports := circuit.Ports{
		Inputs:  []circuit.Port{{Name: "0.a", Wire: 0}, {Name: "0.b", Wire: 1}},
		Outputs: []circuit.Port{{Name: "0.out", Wire: 4}},
	}
	netlist, err := c.ToNetlist(ports)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), netlist.NumInputWires)
	assert.Equal(t, ports, netlist.Ports)
	assert.Equal(t, c.Gates, netlist.Gates)
}

func Test_Netlist_02(t *testing.T) {
	c, err := Read(strings.NewReader(adder))
	require.NoError(t, err)
	// Output count mismatch
	_, err = c.ToNetlist(circuit.Ports{})
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
	// Output beyond last wire
	_, err = c.ToNetlist(circuit.Ports{Outputs: []circuit.Port{{Name: "0.out", Wire: 5}}})
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
	// Input beyond the input wires
	_, err = c.ToNetlist(circuit.Ports{
		Inputs:  []circuit.Port{{Name: "0.a", Wire: 0}, {Name: "0.c", Wire: 2}},
		Outputs: []circuit.Port{{Name: "0.out", Wire: 4}},
	})
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
	// Constant on a gate wire
	_, err = c.ToNetlist(circuit.Ports{
		Outputs:   []circuit.Port{{Name: "0.out", Wire: 4}},
		Constants: []circuit.Constant{{Wire: 3, Value: 1}},
	})
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
}

func Test_Ports_00(t *testing.T) {
	var (
		filename = filepath.Join(t.TempDir(), "adder.ports.json")
		ports    = circuit.Ports{
			Inputs:    []circuit.Port{{Name: "0.a", Wire: 0}},
			Outputs:   []circuit.Port{{Name: "0.c", Wire: 2}},
			Constants: []circuit.Constant{{Wire: 1, Value: 42}},
		}
	)
	//
	require.NoError(t, WritePortsFile(filename, ports))
	actual, err := ReadPortsFile(filename)
	require.NoError(t, err)
	assert.Equal(t, ports, actual)
}

func Test_Ports_01(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(filename, []byte("{\"inputs\": 3"), 0644))
	//
	_, err := ReadPortsFile(filename)
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
	//
	_, err = ReadPortsFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, fault.ErrIO)
}

func check_Invalid(t *testing.T, text string) {
	_, err := Read(strings.NewReader(text))
	assert.ErrorIs(t, err, fault.ErrInvalidInput, "input %q", text)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}
