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

package i18n

//revive:disable
var (
	APISuccessResponse    = plm("api.success", "Success")
	APIErrorResponse      = plm("api.error", "Error, with the message and any detail returned by the ledger")
	APIRequestTimeoutDesc = plm("api.requestTimeout", "Server-side request timeout (milliseconds, or set a custom suffix like 10s)")
	APIProductIDDesc      = plm("api.productId", "The ID of the product, which is its key in world state")

	APIEndpointsGetInit           = plm("api.endpoints.getInit", "Seeds the ledger with the example products, replacing any existing records with the same IDs")
	APIEndpointsGetProducts       = plm("api.endpoints.getProducts", "Lists every product in world state, in key order")
	APIEndpointsGetProductByID    = plm("api.endpoints.getProductById", "Reads a single product")
	APIEndpointsPostProduct       = plm("api.endpoints.postProduct", "Creates a product, failing if the ID is already in use")
	APIEndpointsPutProductByID    = plm("api.endpoints.putProductById", "Replaces an existing product")
	APIEndpointsDeleteProductByID = plm("api.endpoints.deleteProductById", "Deletes an existing product")
)
