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

import (
	"net/http"

	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/oapispec"
	"github.com/kaleido-io/productledger/pkg/pltypes"
)

var postProduct = &oapispec.Route{
	Name:             "postProduct",
	Path:             "products",
	Method:           http.MethodPost,
	PathParams:       nil,
	Description:      i18n.APIEndpointsPostProduct,
	JSONInputValue:   func() interface{} { return &pltypes.Product{} },
	JSONInputSchema:  productCreateSchema,
	JSONOutputSchema: productSchema,
	JSONOutputCode:   http.StatusOK,
	JSONHandler: func(r *oapispec.APIRequest) (output interface{}, err error) {
		svc, err := r.Or.Products(r.Ctx)
		if err != nil {
			return nil, err
		}
		return svc.CreateProduct(r.Ctx, r.Input.(*pltypes.Product))
	},
}
