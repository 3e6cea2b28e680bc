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

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/mocks/ledgermocks"
	"github.com/kaleido-io/productledger/mocks/orchestratormocks"
	"github.com/kaleido-io/productledger/mocks/productsmocks"
	"github.com/kaleido-io/productledger/pkg/ledger"
	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDemoOnDevLedger(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"demo", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := Execute()
	assert.NoError(t, err)
	assert.Regexp(t, "Example Product1", out.String())
	assert.Regexp(t, "The product asset70 does not exist", out.String())
	assert.Regexp(t, "update status from Order Created to In Progress", out.String())
	assert.Regexp(t, "\"Status\": \"In Progress\"", out.String())
}

func TestDemoConfigFail(t *testing.T) {
	rootCmd.SetArgs([]string{"demo", "-f", "../test/config/missing.yaml"})
	defer rootCmd.SetArgs([]string{})
	err := Execute()
	assert.Regexp(t, "PL10101", err)
}

func TestDemoProductsFail(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything).Return(nil)
	o.On("Start").Return(nil)
	o.On("Close").Return()
	o.On("Products", mock.Anything).Return(nil, fmt.Errorf("pop"))
	_utOrchestrator = o
	defer func() { _utOrchestrator = nil }()
	rootCmd.SetArgs([]string{"demo", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := Execute()
	assert.EqualError(t, err, "pop")
}

func TestDemoUpdateDidNotFail(t *testing.T) {
	config.Reset()
	config.Set(config.DemoProductID, "asset2")
	msvc := &productsmocks.Service{}
	msvc.On("InitLedger", mock.Anything).Return(nil)
	msvc.On("GetAllProducts", mock.Anything).Return([]interface{}{}, nil)
	msvc.On("CreateProduct", mock.Anything, mock.Anything).Return(&pltypes.Product{}, nil)
	msvc.On("ReadProduct", mock.Anything, "asset2").Return(map[string]interface{}{"ID": "asset2"}, nil)
	msvc.On("UpdateProduct", mock.Anything, mock.Anything).Return(&pltypes.Product{}, nil)
	err := runDemo(context.Background(), &bytes.Buffer{}, msvc)
	assert.Regexp(t, "PL10140", err)
}

func TestDemoCommitFailed(t *testing.T) {
	config.Reset()
	config.Set(config.DemoProductID, "asset2")
	msvc := &productsmocks.Service{}
	mc := &ledgermocks.Commit{}
	msvc.On("InitLedger", mock.Anything).Return(nil)
	msvc.On("GetAllProducts", mock.Anything).Return([]interface{}{}, nil)
	msvc.On("CreateProduct", mock.Anything, mock.Anything).Return(&pltypes.Product{}, nil)
	msvc.On("ReadProduct", mock.Anything, "asset2").Return(map[string]interface{}{"ID": "asset2"}, nil)
	msvc.On("UpdateProduct", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("not there"))
	msvc.On("UpdateProductStatusAsync", mock.Anything, "asset2", pltypes.ProductStatusInProgress).Return(&pltypes.StatusChange{
		ID:             "asset2",
		PreviousStatus: pltypes.ProductStatusOrderCreated,
		Status:         pltypes.ProductStatusInProgress,
		TransactionID:  "tx1",
	}, mc, nil)
	mc.On("Status", mock.Anything).Return(&ledger.CommitStatus{
		TransactionID: "tx1",
		Code:          ledger.StatusMVCCReadConflict,
	}, nil)
	out := &bytes.Buffer{}
	err := runDemo(context.Background(), out, msvc)
	assert.Regexp(t, "PL10120.*MVCC_READ_CONFLICT", err)
	assert.Regexp(t, "not there", out.String())
}

func TestDemoSteps(t *testing.T) {
	config.Reset()
	ctx := context.Background()

	msvc := &productsmocks.Service{}
	msvc.On("InitLedger", mock.Anything).Return(fmt.Errorf("init"))
	assert.EqualError(t, runDemo(ctx, &bytes.Buffer{}, msvc), "init")

	msvc = &productsmocks.Service{}
	msvc.On("InitLedger", mock.Anything).Return(nil)
	msvc.On("GetAllProducts", mock.Anything).Return(nil, fmt.Errorf("getall"))
	assert.EqualError(t, runDemo(ctx, &bytes.Buffer{}, msvc), "getall")

	msvc = &productsmocks.Service{}
	msvc.On("InitLedger", mock.Anything).Return(nil)
	msvc.On("GetAllProducts", mock.Anything).Return([]interface{}{}, nil)
	msvc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *pltypes.Product) bool {
		return len(p.ID) > len("asset")
	})).Return(nil, fmt.Errorf("create"))
	assert.EqualError(t, runDemo(ctx, &bytes.Buffer{}, msvc), "create")
}
