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
	jsoniter "github.com/json-iterator/go"
)

// canonicalJSON sorts object keys, keeps number literals as written, and leaves
// HTML characters unescaped so the output matches a plain sorted-key JSON encoder
var canonicalJSON = jsoniter.Config{
	SortMapKeys: true,
	EscapeHTML:  false,
	UseNumber:   true,
}.Froze()

// Canonicalize serializes any JSON-compatible value with object keys sorted recursively.
// Two values with the same logical content always produce identical bytes, regardless of
// struct field order or map insertion order.
func Canonicalize(v interface{}) ([]byte, error) {
	b, err := canonicalJSON.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := canonicalJSON.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return canonicalJSON.Marshal(generic)
}
