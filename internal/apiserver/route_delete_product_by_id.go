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
)

var deleteProductByID = &oapispec.Route{
	Name:   "deleteProductByID",
	Path:   "products/{id}",
	Method: http.MethodDelete,
	PathParams: []*oapispec.PathParam{
		{Name: "id", Example: "asset1", Description: i18n.APIProductIDDesc},
	},
	Description:      i18n.APIEndpointsDeleteProductByID,
	JSONInputValue:   nil,
	JSONOutputSchema: "",
	JSONOutputCode:   http.StatusNoContent,
	JSONHandler: func(r *oapispec.APIRequest) (output interface{}, err error) {
		svc, err := r.Or.Products(r.Ctx)
		if err == nil {
			err = svc.DeleteProduct(r.Ctx, r.PP["id"])
		}
		return nil, err
	},
}
