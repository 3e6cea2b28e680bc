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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
)

type SwaggerGenConfig struct {
	BaseURL     string
	Title       string
	Version     string
	Description string
}

var customRegexRemoval = regexp.MustCompile(`{(\w+)\:[^}]+}`)

// ErrorSchema is the body of every non-2xx response
const ErrorSchema = `{
	"type": "object",
	"properties": {
		"error": {
			"type": "object",
			"properties": {
				"message": {"type": "string"},
				"details": {"type": "array", "items": {"type": "string"}}
			}
		}
	}
}`

func SwaggerGen(ctx context.Context, routes []*Route, conf *SwaggerGenConfig) *openapi3.T {

	doc := &openapi3.T{
		OpenAPI: "3.0.2",
		Servers: openapi3.Servers{
			{URL: conf.BaseURL},
		},
		Info: &openapi3.Info{
			Title:       conf.Title,
			Version:     conf.Version,
			Description: conf.Description,
		},
		Components: openapi3.Components{
			Schemas: openapi3.Schemas{
				"Error": parseSchema(ErrorSchema),
			},
		},
	}
	opIds := make(map[string]bool)
	for _, route := range routes {
		if route.Name == "" || opIds[route.Name] {
			log.Panicf("Duplicate/invalid name (used as operation ID in swagger): %s", route.Name)
		}
		addRoute(ctx, doc, route)
		opIds[route.Name] = true
	}
	return doc
}

func parseSchema(schema string) *openapi3.SchemaRef {
	var schemaRef *openapi3.SchemaRef
	if err := json.Unmarshal([]byte(schema), &schemaRef); err != nil {
		panic(fmt.Sprintf("invalid schema: %s", err))
	}
	return schemaRef
}

func getPathItem(doc *openapi3.T, path string) *openapi3.PathItem {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = customRegexRemoval.ReplaceAllString(path, `{$1}`)
	if doc.Paths == nil {
		doc.Paths = openapi3.Paths{}
	}
	pi, ok := doc.Paths[path]
	if ok {
		return pi
	}
	pi = &openapi3.PathItem{}
	doc.Paths[path] = pi
	return pi
}

func addInput(route *Route, op *openapi3.Operation) {
	var schemaRef *openapi3.SchemaRef
	if route.JSONInputSchema != "" {
		schemaRef = parseSchema(route.JSONInputSchema)
	}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: schemaRef,
				},
			},
		},
	}
}

func addOutput(ctx context.Context, doc *openapi3.T, route *Route, op *openapi3.Operation) {
	s := i18n.Expand(ctx, i18n.APISuccessResponse)
	var content openapi3.Content
	if route.JSONOutputSchema != "" {
		content = openapi3.Content{
			"application/json": &openapi3.MediaType{
				Schema: parseSchema(route.JSONOutputSchema),
			},
		}
	}
	op.Responses[strconv.FormatInt(int64(route.JSONOutputCode), 10)] = &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &s,
			Content:     content,
		},
	}
	e := i18n.Expand(ctx, i18n.APIErrorResponse)
	op.Responses["default"] = &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &e,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{
						Ref:   "#/components/schemas/Error",
						Value: doc.Components.Schemas["Error"].Value,
					},
				},
			},
		},
	}
}

func addParam(ctx context.Context, op *openapi3.Operation, in, name, def, example string, description i18n.MessageKey) {
	required := false
	if in == "path" {
		required = true
	}
	var defValue interface{}
	if def != "" {
		defValue = def
	}
	var exampleValue interface{}
	if example != "" {
		exampleValue = example
	}
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			In:          in,
			Name:        name,
			Required:    required,
			Description: i18n.Expand(ctx, description),
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type:    "string",
					Default: defValue,
					Example: exampleValue,
				},
			},
		},
	})
}

func addRoute(ctx context.Context, doc *openapi3.T, route *Route) {
	pi := getPathItem(doc, route.Path)
	op := &openapi3.Operation{
		Description: i18n.Expand(ctx, route.Description),
		OperationID: route.Name,
		Responses:   openapi3.NewResponses(),
	}
	if route.Method != http.MethodGet && route.Method != http.MethodDelete {
		addInput(route, op)
	}
	addOutput(ctx, doc, route, op)
	for _, p := range route.PathParams {
		addParam(ctx, op, "path", p.Name, "", p.Example, p.Description)
	}
	addParam(ctx, op, "header", "Request-Timeout", config.GetString(config.APIRequestTimeout), "", i18n.APIRequestTimeoutDesc)
	switch route.Method {
	case http.MethodGet:
		pi.Get = op
	case http.MethodPut:
		pi.Put = op
	case http.MethodPost:
		pi.Post = op
	case http.MethodDelete:
		pi.Delete = op
	}
}
