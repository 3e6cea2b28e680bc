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
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/kaleido-io/productledger/internal/log"
)

var swaggerUITemplate = template.Must(template.New("swaggerui").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3/swagger-ui.css">
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@3/swagger-ui-bundle.js" charset="UTF-8"></script>
    <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: {{.SpecURL}},
        dom_id: '#swagger-ui',
        deepLinking: true,
        supportedSubmitMethods: {{.SubmitMethods}},
        presets: [SwaggerUIBundle.presets.apis]
      });
    };
    </script>
  </body>
</html>
`))

type swaggerUIPage struct {
	Title         string
	SpecURL       string
	SubmitMethods []string
}

// SwaggerUIHTML renders a Swagger UI page loading the spec from specURL, with
// "try it out" enabled only for the methods the product routes expose
func SwaggerUIHTML(ctx context.Context, specURL string, routes []*Route) []byte {
	page := &swaggerUIPage{
		Title:   "Product Ledger API",
		SpecURL: specURL,
	}
	seen := map[string]bool{}
	for _, r := range routes {
		m := strings.ToLower(r.Method)
		if !seen[m] {
			seen[m] = true
			page.SubmitMethods = append(page.SubmitMethods, m)
		}
	}
	var buf bytes.Buffer
	if err := swaggerUITemplate.Execute(&buf, page); err != nil {
		log.L(ctx).Errorf("Failed to render swagger UI: %s", err)
		return nil
	}
	return buf.Bytes()
}
