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

package ledgerfactory

import (
	"context"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/ledger/devledger"
	"github.com/kaleido-io/productledger/internal/ledger/fabconnect"
	"github.com/kaleido-io/productledger/pkg/ledger"
)

var plugins = []ledger.Plugin{
	&devledger.DevLedger{},
	&fabconnect.Fabconnect{},
}

var pluginsByName = make(map[string]func() ledger.Plugin)

func init() {
	pluginsByName[(*devledger.DevLedger)(nil).Name()] = func() ledger.Plugin { return &devledger.DevLedger{} }
	pluginsByName[(*fabconnect.Fabconnect)(nil).Name()] = func() ledger.Plugin { return &fabconnect.Fabconnect{} }
}

// PluginNames lists the ledger gateways available
func PluginNames() []string {
	names := make([]string, len(plugins))
	for i, p := range plugins {
		names[i] = p.Name()
	}
	return names
}

func InitPrefix(prefix config.Prefix) {
	for _, plugin := range plugins {
		plugin.InitPrefix(prefix.SubPrefix(plugin.Name()))
	}
}

func GetPlugin(ctx context.Context, pluginType string) (ledger.Plugin, error) {
	plugin, ok := pluginsByName[pluginType]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgUnknownLedgerPlugin, pluginType)
	}
	return plugin(), nil
}
