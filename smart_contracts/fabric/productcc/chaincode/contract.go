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
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// ProductContract is the Fabric contract for the product registry. Each transaction
// resolves the world state of its own context, and delegates to Products.
type ProductContract struct {
	contractapi.Contract
	products Products
}

func NewProductContract() *ProductContract {
	pc := &ProductContract{}
	pc.Info.Title = "Product registry"
	pc.Info.Version = "1.0.0"
	return pc
}

func worldState(ctx contractapi.TransactionContextInterface) *stubState {
	return &stubState{stub: ctx.GetStub()}
}

// InitLedger seeds the ledger with example products
func (pc *ProductContract) InitLedger(ctx contractapi.TransactionContextInterface) error {
	return pc.products.InitLedger(worldState(ctx))
}

// ProductExists returns true when a product with the given ID exists in world state
func (pc *ProductContract) ProductExists(ctx contractapi.TransactionContextInterface, id string) (bool, error) {
	return pc.products.Exists(worldState(ctx), id)
}

// CreateProduct issues a new product to the world state with given details
func (pc *ProductContract) CreateProduct(ctx contractapi.TransactionContextInterface, id, name, status, description string) (string, error) {
	return pc.products.Create(worldState(ctx), id, name, status, description)
}

// ReadProduct returns the product stored in the world state with given id
func (pc *ProductContract) ReadProduct(ctx contractapi.TransactionContextInterface, id string) (string, error) {
	return pc.products.Read(worldState(ctx), id)
}

// UpdateProduct updates an existing product in the world state with provided parameters
func (pc *ProductContract) UpdateProduct(ctx contractapi.TransactionContextInterface, id, name, status, description string) error {
	return pc.products.Update(worldState(ctx), id, name, status, description)
}

// UpdateProductStatus moves a product to a new status, returning the old one
func (pc *ProductContract) UpdateProductStatus(ctx contractapi.TransactionContextInterface, id, status string) (string, error) {
	return pc.products.UpdateStatus(worldState(ctx), id, status)
}

// DeleteProduct deletes a given product from the world state
func (pc *ProductContract) DeleteProduct(ctx contractapi.TransactionContextInterface, id string) error {
	return pc.products.Delete(worldState(ctx), id)
}

// GetAllProducts returns all products found in world state
func (pc *ProductContract) GetAllProducts(ctx contractapi.TransactionContextInterface) (string, error) {
	return pc.products.GetAll(worldState(ctx))
}
