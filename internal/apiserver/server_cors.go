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
	"sort"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/rs/cors"
)

// corsMethods returns the configured methods, or when none are configured the
// methods of the product route table
func corsMethods() []string {
	if methods := config.GetStringSlice(config.CorsAllowedMethods); len(methods) > 0 {
		return methods
	}
	seen := map[string]bool{}
	methods := []string{}
	for _, route := range routes {
		if !seen[route.Method] {
			seen[route.Method] = true
			methods = append(methods, route.Method)
		}
	}
	sort.Strings(methods)
	return methods
}

func wrapCorsIfEnabled(ctx context.Context, chain http.Handler) http.Handler {
	if !config.GetBool(config.CorsEnabled) {
		return chain
	}
	corsOptions := cors.Options{
		AllowedOrigins:   config.GetStringSlice(config.CorsAllowedOrigins),
		AllowedMethods:   corsMethods(),
		AllowedHeaders:   config.GetStringSlice(config.CorsAllowedHeaders),
		AllowCredentials: config.GetBool(config.CorsAllowCredentials),
		MaxAge:           config.GetInt(config.CorsMaxAge),
		Debug:            config.GetBool(config.CorsDebug),
	}
	log.L(log.WithLogField(ctx, "cors", "products")).Debugf("origins=%v methods=%v", corsOptions.AllowedOrigins, corsOptions.AllowedMethods)
	return cors.New(corsOptions).Handler(chain)
}
