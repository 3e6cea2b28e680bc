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

package dbfactory

import (
	"context"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/database/memory"
	"github.com/kaleido-io/productledger/internal/database/postgres"
	"github.com/kaleido-io/productledger/internal/database/sqlite"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/pkg/worldstate"
)

var plugins = []worldstate.Plugin{
	&memory.Memory{},
	&postgres.Postgres{},
	&sqlite.SQLite{},
}

var pluginsByName = make(map[string]func() worldstate.Plugin)

func init() {
	pluginsByName[(*memory.Memory)(nil).Name()] = func() worldstate.Plugin { return &memory.Memory{} }
	pluginsByName[(*postgres.Postgres)(nil).Name()] = func() worldstate.Plugin { return &postgres.Postgres{} }
	pluginsByName[(*sqlite.SQLite)(nil).Name()] = func() worldstate.Plugin { return &sqlite.SQLite{} }
}

// PluginNames lists the world state databases available
func PluginNames() []string {
	names := make([]string, len(plugins))
	for i, p := range plugins {
		names[i] = p.Name()
	}
	return names
}

func GetPlugin(ctx context.Context, pluginType string) (worldstate.Plugin, error) {
	plugin, ok := pluginsByName[pluginType]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgUnknownDatabasePlugin, pluginType)
	}
	return plugin(), nil
}

// InitPrefix registers the configuration of every world state database, each under its own sub-prefix
func InitPrefix(prefix config.Prefix) {
	for _, plugin := range plugins {
		plugin.InitPrefix(prefix.SubPrefix(plugin.Name()))
	}
}
