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

package config

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/kaleido-io/productledger/internal/log"
	"github.com/spf13/viper"
)

type docSection struct {
	Name string
	Keys []docKey
}

type docKey struct {
	Name    string
	Default string
}

var configDocTemplate = template.Must(template.New("config").Parse(`# Configuration reference

Keys can be set in productledger.core.yaml, or as environment variables prefixed with PRODUCTLEDGER_
(for example PRODUCTLEDGER_HTTP_PORT).
{{range .}}
## {{.Name}}

|Key|Default|
|---|-------|
{{- range .Keys}}
|{{.Name}}|{{.Default}}|
{{- end}}
{{end}}`))

func docDefault(key string) string {
	v := viper.Get(key)
	if v == nil {
		return "`<nil>`"
	}
	return fmt.Sprintf("`%v`", v)
}

// GenerateConfigMarkdown renders every known key with its current value, grouped by parent section.
// Plugins must have registered their keys first.
func GenerateConfigMarkdown(ctx context.Context) ([]byte, error) {
	sections := make(map[string]*docSection)
	for _, k := range GetKnownKeys() {
		name, leaf := "root", k
		if i := strings.LastIndex(k, "."); i >= 0 {
			name, leaf = k[:i], k[i+1:]
		}
		s, ok := sections[name]
		if !ok {
			s = &docSection{Name: name}
			sections[name] = s
		}
		s.Keys = append(s.Keys, docKey{Name: leaf, Default: docDefault(k)})
	}
	ordered := make([]*docSection, 0, len(sections))
	for _, s := range sections {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	log.L(ctx).Debugf("Generating config docs for %d sections", len(ordered))
	buf := new(bytes.Buffer)
	if err := configDocTemplate.Execute(buf, ordered); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
