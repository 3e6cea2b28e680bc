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
	"encoding/json"
	"log"

	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/kaleido-io/productledger/pkg/worldstate"
)

// SeedProducts are written by InitLedger
var SeedProducts = []*pltypes.Product{
	{
		ID:          "asset1",
		Name:        "Example Product1",
		Status:      pltypes.ProductStatusOrderCreated,
		Description: "Example product description",
	},
}

// Products implements the product registry over an injected world state.
// It holds no state of its own, so a single instance can serve concurrent transactions.
type Products struct{}

func (p *Products) put(ws worldstate.State, product *pltypes.Product) ([]byte, error) {
	b, err := Canonicalize(product)
	if err != nil {
		return nil, err
	}
	return b, ws.PutState(product.ID, b)
}

// InitLedger writes the seed products, replacing any existing records with the same IDs
func (p *Products) InitLedger(ws worldstate.State) error {
	for _, product := range SeedProducts {
		if _, err := p.put(ws, product); err != nil {
			return err
		}
	}
	log.Printf("Ledger initialized with %d products", len(SeedProducts))
	return nil
}

// Exists returns true when a non-empty value is stored under the id
func (p *Products) Exists(ws worldstate.State, id string) (bool, error) {
	b, err := ws.GetState(id)
	if err != nil {
		return false, err
	}
	return len(b) > 0, nil
}

func (p *Products) mustExist(ws worldstate.State, id string) error {
	exists, err := p.Exists(ws, id)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{ID: id}
	}
	return nil
}

// Create stores a new product, and returns its canonical JSON
func (p *Products) Create(ws worldstate.State, id, name, status, description string) (string, error) {
	exists, err := p.Exists(ws, id)
	if err != nil {
		return "", err
	}
	if exists {
		return "", &AlreadyExistsError{ID: id}
	}
	b, err := p.put(ws, &pltypes.Product{
		ID:          id,
		Name:        name,
		Status:      status,
		Description: description,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Read returns the stored JSON of a product
func (p *Products) Read(ws worldstate.State, id string) (string, error) {
	b, err := ws.GetState(id)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", &NotFoundError{ID: id}
	}
	return string(b), nil
}

// Update replaces every field of an existing product
func (p *Products) Update(ws worldstate.State, id, name, status, description string) error {
	if err := p.mustExist(ws, id); err != nil {
		return err
	}
	_, err := p.put(ws, &pltypes.Product{
		ID:          id,
		Name:        name,
		Status:      status,
		Description: description,
	})
	return err
}

// UpdateStatus changes only the status of an existing product, returning the previous status
func (p *Products) UpdateStatus(ws worldstate.State, id, status string) (string, error) {
	existing, err := p.Read(ws, id)
	if err != nil {
		return "", err
	}
	var product pltypes.Product
	if err := json.Unmarshal([]byte(existing), &product); err != nil {
		return "", err
	}
	previous := product.Status
	product.Status = status
	if _, err := p.put(ws, &product); err != nil {
		return "", err
	}
	return previous, nil
}

// Delete removes a product
func (p *Products) Delete(ws worldstate.State, id string) error {
	if err := p.mustExist(ws, id); err != nil {
		return err
	}
	return ws.DelState(id)
}

// GetAll returns every record in world state as a JSON array, in key order.
// Records that are not valid JSON are included as strings.
func (p *Products) GetAll(ws worldstate.State) (string, error) {
	iter, err := ws.GetStateByRange("", "")
	if err != nil {
		return "", err
	}
	defer iter.Close()

	records := []interface{}{}
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return "", err
		}
		var record interface{}
		if err := canonicalJSON.Unmarshal(kv.Value, &record); err != nil {
			log.Printf("Record '%s' is not JSON: %s", kv.Key, err)
			record = string(kv.Value)
		}
		records = append(records, record)
	}
	b, err := canonicalJSON.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
