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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCorsPreflightAllOrigins(t *testing.T) {
	config.Reset()
	r := mux.NewRouter()
	h := wrapCorsIfEnabled(context.Background(), r)
	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPut, res.Header().Get("Access-Control-Allow-Methods"))
}

func TestCorsPreflightExplicitOrigin(t *testing.T) {
	config.Reset()
	config.Set(config.CorsAllowedOrigins, []string{"http://localhost:3000"})
	r := mux.NewRouter()
	h := wrapCorsIfEnabled(context.Background(), r)
	req := httptest.NewRequest(http.MethodOptions, "/products/asset1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, "http://localhost:3000", res.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodDelete, res.Header().Get("Access-Control-Allow-Methods"))
}

func TestCorsMethodsFromRoutes(t *testing.T) {
	config.Reset()
	assert.Equal(t, []string{http.MethodDelete, http.MethodGet, http.MethodPost, http.MethodPut}, corsMethods())

	config.Set(config.CorsAllowedMethods, []string{http.MethodGet})
	assert.Equal(t, []string{http.MethodGet}, corsMethods())
}

func TestCorsDisabled(t *testing.T) {
	config.Reset()
	config.Set(config.CorsEnabled, false)
	r := mux.NewRouter()
	h := wrapCorsIfEnabled(context.Background(), r)
	assert.Equal(t, http.Handler(r), h)
}
