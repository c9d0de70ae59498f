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
	"testing"

	"github.com/consensys/go-arithc/pkg/util/field/bls12_377"
	"github.com/consensys/go-arithc/pkg/util/field/bn254"
	"github.com/stretchr/testify/assert"
)

func Test_Element_00(t *testing.T) {
	check_Arithmetic[bn254.Element](t)
	check_Arithmetic[bls12_377.Element](t)
}

func Test_Element_01(t *testing.T) {
	check_Inverse[bn254.Element](t)
	check_Inverse[bls12_377.Element](t)
}

func Test_Element_02(t *testing.T) {
	// p - 1 wraps around to 0
	var (
		modulus = BN254.Modulus
		pm1     = new(big.Int).Sub(modulus, big.NewInt(1))
		x       = BigInt[bn254.Element](*pm1)
	)
	//
	assert.True(t, x.Add(One[bn254.Element]()).IsZero())
	assert.Equal(t, 0, pm1.Cmp(x.ToBigInt()))
}

func Test_Config_00(t *testing.T) {
	assert.Equal(t, "bn254", GetConfig("bn128").Name)
	assert.Equal(t, "bls12-377", GetConfig("bls12-377").Name)
	assert.Nil(t, GetConfig("goldilocks"))
	assert.NotEqual(t, BN254.Modulus, BLS12_377.Modulus)
}

func check_Arithmetic[F Element[F]](t *testing.T) {
	var (
		three = Uint64[F](3)
		five  = Uint64[F](5)
	)
	//
	assert.Equal(t, "8", three.Add(five).Text(10))
	assert.Equal(t, "15", three.Mul(five).Text(10))
	assert.Equal(t, "2", five.Sub(three).Text(10))
	assert.Equal(t, "243", three.Exp(big.NewInt(5)).Text(10))
	assert.Equal(t, "243", Pow(three, 5).Text(10))
	assert.Equal(t, -1, three.Cmp(five))
	assert.True(t, Zero[F]().IsZero())
	assert.True(t, Bool[F](true).Cmp(One[F]()) == 0)
}

func check_Inverse[F Element[F]](t *testing.T) {
	var (
		seven = Uint64[F](7)
		inv   = seven.Inverse()
	)
	//
	assert.Equal(t, 0, inv.Mul(seven).Cmp(One[F]()))
	assert.True(t, Zero[F]().Inverse().IsZero())
}
