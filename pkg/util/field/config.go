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
package field

import (
	"math/big"
	"slices"

	"github.com/consensys/go-arithc/pkg/util/field/bls12_377"
	"github.com/consensys/go-arithc/pkg/util/field/bn254"
)

// BN254 is the scalar field of the BN254 curve (also known as bn128), which
// is the default prime of circom.
var BN254 = Config{"bn254", []string{"bn128"}, bn254.Element{}.Modulus()}

// BLS12_377 is the scalar field of the BLS12-377 curve.
var BLS12_377 = Config{"bls12-377", []string{"bls12377"}, bls12_377.Element{}.Modulus()}

// FIELD_CONFIGS determines the set of supported fields.
var FIELD_CONFIGS = []Config{
	BN254,
	BLS12_377,
}

// Config identifies a supported prime field.
type Config struct {
	// Name suitable for identifying the config.
	Name string
	// Alternative names under which this field is known.
	Aliases []string
	// Prime modulus of the field.
	Modulus *big.Int
}

// GetConfig returns the field configuration corresponding with the given
// name (or alias), or nil no such config exists.
func GetConfig(name string) *Config {
	for i := range FIELD_CONFIGS {
		if FIELD_CONFIGS[i].Name == name || slices.Contains(FIELD_CONFIGS[i].Aliases, name) {
			return &FIELD_CONFIGS[i]
		}
	}
	//
	return nil
}
