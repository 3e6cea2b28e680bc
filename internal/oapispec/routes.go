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

package oapispec

import (
	"github.com/kaleido-io/productledger/internal/i18n"
)

// Route defines each API operation on the REST API.
// Having a standard pluggable layer here on top of Gorilla allows us to automatically
// maintain the OpenAPI specification in-line with the code, while retaining the
// power of the Gorilla mux without a deep abstraction layer.
type Route struct {
	// Name is the operation name that will go into the Swagger definition
	Name string
	// Path is a Gorilla mux path spec
	Path string
	// PathParams is a list of documented path parameters
	PathParams []*PathParam
	// Method is the HTTP method
	Method string
	// Description is a message key to a translatable description of the operation
	Description i18n.MessageKey
	// JSONInputValue is a function that returns a pointer to a structure to take JSON input
	JSONInputValue func() interface{}
	// JSONInputSchema is a JSON schema that input is validated against before the handler is called, and that documents the input
	JSONInputSchema string
	// JSONOutputSchema is a JSON schema documenting the output
	JSONOutputSchema string
	// JSONOutputCode is the success response code
	JSONOutputCode int
	// JSONHandler is a function for handling JSON content type input. Input objects are returned by JSONInputValue
	JSONHandler func(r *APIRequest) (output interface{}, err error)
}

// PathParam is a description of a path parameter
type PathParam struct {
	// Name is the name of the parameter, from the Gorilla path mux
	Name string
	// Example is a field to fill in, in the helper UI
	Example string
	// Description is a message key to a translatable description of the parameter
	Description i18n.MessageKey
}
