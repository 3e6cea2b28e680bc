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

package products

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/internal/metrics"
	"github.com/kaleido-io/productledger/pkg/ledger"
	"github.com/kaleido-io/productledger/pkg/pltypes"
)

// Chaincode function names
const (
	FuncInitLedger          = "InitLedger"
	FuncGetAllProducts      = "GetAllProducts"
	FuncCreateProduct       = "CreateProduct"
	FuncReadProduct         = "ReadProduct"
	FuncUpdateProduct       = "UpdateProduct"
	FuncUpdateProductStatus = "UpdateProductStatus"
	FuncDeleteProduct       = "DeleteProduct"
	FuncProductExists       = "ProductExists"
)

// Service is the product registry, as seen by a client of the ledger
type Service interface {
	InitLedger(ctx context.Context) error
	GetAllProducts(ctx context.Context) ([]interface{}, error)
	CreateProduct(ctx context.Context, product *pltypes.Product) (*pltypes.Product, error)
	ReadProduct(ctx context.Context, id string) (interface{}, error)
	UpdateProduct(ctx context.Context, product *pltypes.Product) (*pltypes.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ProductExists(ctx context.Context, id string) (bool, error)

	// UpdateProductStatusAsync returns as soon as the status change is accepted for ordering,
	// with a handle that reports the commit status
	UpdateProductStatusAsync(ctx context.Context, id, status string) (*pltypes.StatusChange, ledger.Commit, error)
}

type service struct {
	contract ledger.Contract
	metrics  metrics.Manager
}

// NewService wraps a contract handle. The service is cheap, and is built per request.
func NewService(contract ledger.Contract, mm metrics.Manager) Service {
	return &service{
		contract: contract,
		metrics:  mm,
	}
}

func (s *service) submit(ctx context.Context, fn string, args ...string) ([]byte, error) {
	log.L(ctx).Debugf("Submitting %s %v", fn, args)
	s.metrics.LedgerTransaction(fn)
	res, err := s.contract.SubmitTransaction(ctx, fn, args...)
	if err != nil {
		s.metrics.LedgerFailure(fn)
		return nil, err
	}
	return res, nil
}

func (s *service) evaluate(ctx context.Context, fn string, args ...string) ([]byte, error) {
	log.L(ctx).Debugf("Evaluating %s %v", fn, args)
	s.metrics.LedgerQuery(fn)
	res, err := s.contract.EvaluateTransaction(ctx, fn, args...)
	if err != nil {
		s.metrics.LedgerFailure(fn)
		return nil, err
	}
	return res, nil
}

func (s *service) InitLedger(ctx context.Context) error {
	_, err := s.submit(ctx, FuncInitLedger)
	return err
}

func (s *service) GetAllProducts(ctx context.Context) ([]interface{}, error) {
	res, err := s.evaluate(ctx, FuncGetAllProducts)
	if err != nil {
		return nil, err
	}
	products := []interface{}{}
	if err := json.Unmarshal(res, &products); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgLedgerResultDecodeFailed, FuncGetAllProducts)
	}
	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, product *pltypes.Product) (*pltypes.Product, error) {
	_, err := s.submit(ctx, FuncCreateProduct, product.ID, product.Name, product.Status, product.Description)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) ReadProduct(ctx context.Context, id string) (interface{}, error) {
	res, err := s.evaluate(ctx, FuncReadProduct, id)
	if err != nil {
		return nil, err
	}
	var product interface{}
	if err := json.Unmarshal(res, &product); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgLedgerResultDecodeFailed, FuncReadProduct)
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, product *pltypes.Product) (*pltypes.Product, error) {
	_, err := s.submit(ctx, FuncUpdateProduct, product.ID, product.Name, product.Status, product.Description)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.submit(ctx, FuncDeleteProduct, id)
	return err
}

func (s *service) ProductExists(ctx context.Context, id string) (bool, error) {
	res, err := s.evaluate(ctx, FuncProductExists, id)
	if err != nil {
		return false, err
	}
	exists, err := strconv.ParseBool(string(res))
	if err != nil {
		return false, i18n.WrapError(ctx, err, i18n.MsgLedgerResultDecodeFailed, FuncProductExists)
	}
	return exists, nil
}

func (s *service) UpdateProductStatusAsync(ctx context.Context, id, status string) (*pltypes.StatusChange, ledger.Commit, error) {
	s.metrics.LedgerTransaction(FuncUpdateProductStatus)
	commit, err := s.contract.SubmitAsync(ctx, FuncUpdateProductStatus, id, status)
	if err != nil {
		s.metrics.LedgerFailure(FuncUpdateProductStatus)
		return nil, nil, err
	}
	change := &pltypes.StatusChange{
		ID:             id,
		PreviousStatus: string(commit.Result()),
		Status:         status,
		TransactionID:  commit.TransactionID(),
	}
	log.L(ctx).Infof("Status of %s changing from '%s' to '%s' in transaction %s", id, change.PreviousStatus, status, change.TransactionID)
	return change, &timedCommit{Commit: commit, metrics: s.metrics, submitted: time.Now()}, nil
}

// timedCommit records the time to finality the first time the status is known
type timedCommit struct {
	ledger.Commit
	metrics   metrics.Manager
	submitted time.Time
	recorded  sync.Once
}

func (tc *timedCommit) Status(ctx context.Context) (*ledger.CommitStatus, error) {
	status, err := tc.Commit.Status(ctx)
	if err == nil {
		tc.recorded.Do(func() {
			tc.metrics.LedgerCommit(status.Code, time.Since(tc.submitted))
		})
	}
	return status, err
}
