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

package apiserver

const productProperties = `{
	"ID": {"type": "string", "minLength": 1},
	"Name": {"type": "string"},
	"Status": {"type": "string"},
	"Description": {"type": "string"}
}`

var productSchema = `{
	"type": "object",
	"properties": ` + productProperties + `
}`

var productCreateSchema = `{
	"type": "object",
	"required": ["ID", "Name", "Status", "Description"],
	"properties": ` + productProperties + `
}`

// The path carries the ID on update, so it can be omitted from the body
var productUpdateSchema = `{
	"type": "object",
	"required": ["Name", "Status", "Description"],
	"properties": {
		"ID": {"type": "string"},
		"Name": {"type": "string"},
		"Status": {"type": "string"},
		"Description": {"type": "string"}
	}
}`

var productListSchema = `{
	"type": "array",
	"items": ` + productSchema + `
}`

var successSchema = `{
	"type": "string",
	"enum": ["success"]
}`
