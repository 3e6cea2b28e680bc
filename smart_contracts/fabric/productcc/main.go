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

package main

import (
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/kaleido-io/productledger/smart_contracts/fabric/productcc/chaincode"
)

func main() {
	productChaincode, err := contractapi.NewChaincode(chaincode.NewProductContract())
	if err != nil {
		log.Panicf("Error creating product chaincode: %v", err)
	}

	productChaincode.Info.Title = "product"
	productChaincode.Info.Version = "1.0"

	if err := productChaincode.Start(); err != nil {
		log.Panicf("Error starting product chaincode: %v", err)
	}
}
