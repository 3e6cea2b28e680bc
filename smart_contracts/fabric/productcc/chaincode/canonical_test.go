// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chaincode

import (
	"testing"

	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeOrderInvariant(t *testing.T) {
	b1, err := Canonicalize(map[string]interface{}{
		"Status": "Order Created", "ID": "p1", "Name": "n", "Description": "d",
	})
	assert.NoError(t, err)
	b2, err := Canonicalize(&pltypes.Product{ID: "p1", Name: "n", Status: "Order Created", Description: "d"})
	assert.NoError(t, err)
	assert.Equal(t, b1, b2)
	assert.Equal(t, `{"Description":"d","ID":"p1","Name":"n","Status":"Order Created"}`, string(b1))
}

func TestCanonicalizeNested(t *testing.T) {
	type inner struct {
		Z string `json:"z"`
		A []int  `json:"a"`
	}
	type outer struct {
		Inner inner                  `json:"inner"`
		Map   map[string]interface{} `json:"map"`
		First string                 `json:"first"`
	}
	b, err := Canonicalize(&outer{
		Inner: inner{Z: "z", A: []int{3, 1, 2}},
		Map:   map[string]interface{}{"y": map[string]interface{}{"b": 1, "a": 2}, "x": true},
		First: "<tag>&",
	})
	assert.NoError(t, err)
	assert.Equal(t, `{"first":"<tag>&","inner":{"a":[3,1,2],"z":"z"},"map":{"x":true,"y":{"a":2,"b":1}}}`, string(b))
}

func TestCanonicalizeKeepsNumbers(t *testing.T) {
	b, err := Canonicalize(map[string]interface{}{"big": uint64(12345678901234567890), "frac": 1.5})
	assert.NoError(t, err)
	assert.Equal(t, `{"big":12345678901234567890,"frac":1.5}`, string(b))
}

func TestCanonicalizeFail(t *testing.T) {
	_, err := Canonicalize(map[string]interface{}{"ch": make(chan bool)})
	assert.Error(t, err)
}
