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
	"fmt"
	"strconv"

	"github.com/kaleido-io/productledger/pkg/worldstate"
)

type transaction struct {
	args    int
	execute func(p *Products, ws worldstate.State, args []string) (string, error)
}

// transactions maps the Fabric function names of ProductContract onto Products, for
// runtimes that execute the chaincode in process
var transactions = map[string]transaction{
	"InitLedger": {0, func(p *Products, ws worldstate.State, args []string) (string, error) {
		return "", p.InitLedger(ws)
	}},
	"ProductExists": {1, func(p *Products, ws worldstate.State, args []string) (string, error) {
		exists, err := p.Exists(ws, args[0])
		return strconv.FormatBool(exists), err
	}},
	"CreateProduct": {4, func(p *Products, ws worldstate.State, args []string) (string, error) {
		return p.Create(ws, args[0], args[1], args[2], args[3])
	}},
	"ReadProduct": {1, func(p *Products, ws worldstate.State, args []string) (string, error) {
		return p.Read(ws, args[0])
	}},
	"UpdateProduct": {4, func(p *Products, ws worldstate.State, args []string) (string, error) {
		return "", p.Update(ws, args[0], args[1], args[2], args[3])
	}},
	"UpdateProductStatus": {2, func(p *Products, ws worldstate.State, args []string) (string, error) {
		return p.UpdateStatus(ws, args[0], args[1])
	}},
	"DeleteProduct": {1, func(p *Products, ws worldstate.State, args []string) (string, error) {
		return "", p.Delete(ws, args[0])
	}},
	"GetAllProducts": {0, func(p *Products, ws worldstate.State, args []string) (string, error) {
		return p.GetAll(ws)
	}},
}

// Invoke runs the named transaction against the supplied world state, returning the
// payload a Fabric peer would return for it
func (p *Products) Invoke(ws worldstate.State, fn string, args []string) ([]byte, error) {
	tx, ok := transactions[fn]
	if !ok {
		return nil, fmt.Errorf("Function %s not found in contract ProductContract", fn)
	}
	if len(args) != tx.args {
		return nil, fmt.Errorf("Incorrect number of params. Expected %d, received %d", tx.args, len(args))
	}
	result, err := tx.execute(p, ws, args)
	if err != nil {
		return nil, err
	}
	return []byte(result), nil
}
