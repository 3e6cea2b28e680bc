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

package orchestrator

import (
	"context"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/ledger/ledgerfactory"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/internal/metrics"
	"github.com/kaleido-io/productledger/internal/products"
	"github.com/kaleido-io/productledger/pkg/ledger"
)

var (
	ledgerConfig = config.NewPluginConfig("ledger")
)

// Orchestrator is the main interface behind the API and the CLI. It owns the connection to the
// ledger, and hands out a product service bound to the configured chaincode.
type Orchestrator interface {
	Init(ctx context.Context) error
	Start() error
	Close()

	LedgerType() string
	Products(ctx context.Context) (products.Service, error)
}

type orchestrator struct {
	ctx       context.Context
	cancelCtx context.CancelFunc
	ledger    ledger.Plugin
	chaincode string
	metrics   metrics.Manager
	started   bool
}

func NewOrchestrator() Orchestrator {
	return &orchestrator{}
}

// InitConfig registers the configuration of every ledger plugin. Must be called after the
// configuration has been reset or read, as that clears the plugin defaults.
func InitConfig() {
	ledgerfactory.InitPrefix(ledgerConfig)
}

func (o *orchestrator) Init(ctx context.Context) (err error) {
	o.ctx, o.cancelCtx = context.WithCancel(ctx)
	o.chaincode = config.GetString(config.LedgerChaincode)
	if o.chaincode == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, "chaincode", "ledger")
	}
	if o.ledger == nil {
		if o.ledger, err = o.initLedgerPlugin(o.ctx); err != nil {
			return err
		}
	}
	o.metrics = metrics.NewMetricsManager(o.ledger.Name())
	return nil
}

func (o *orchestrator) initLedgerPlugin(ctx context.Context) (ledger.Plugin, error) {
	InitConfig()
	pluginType := config.GetString(config.LedgerType)
	plugin, err := ledgerfactory.GetPlugin(ctx, pluginType)
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Connecting to ledger '%s' for chaincode '%s'", pluginType, o.chaincode)
	if err = plugin.Init(ctx, ledgerConfig.SubPrefix(pluginType)); err != nil {
		return nil, err
	}
	return plugin, nil
}

func (o *orchestrator) Start() error {
	if err := o.ledger.Start(); err != nil {
		return err
	}
	o.started = true
	return nil
}

func (o *orchestrator) Close() {
	if o.ledger != nil {
		o.ledger.Close()
		o.ledger = nil
	}
	if o.cancelCtx != nil {
		o.cancelCtx()
	}
}

func (o *orchestrator) LedgerType() string {
	return o.ledger.Name()
}

func (o *orchestrator) Products(ctx context.Context) (products.Service, error) {
	if !o.started {
		return nil, i18n.NewError(ctx, i18n.MsgLedgerStopped)
	}
	contract, err := o.ledger.Contract(ctx, o.chaincode)
	if err != nil {
		return nil, err
	}
	return products.NewService(contract, o.metrics), nil
}
