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

package metrics

import (
	"time"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var registry *prometheus.Registry
var restInstrumentation *RESTInstrumentation

var LedgerTransactionsCounter *prometheus.CounterVec
var LedgerQueriesCounter *prometheus.CounterVec
var LedgerFailuresCounter *prometheus.CounterVec
var LedgerCommitHistogram *prometheus.HistogramVec

// LedgerTransactionsCounterName is the prometheus metric for tracking the total number of submitted transactions
var LedgerTransactionsCounterName = "pl_ledger_transactions_total"

// LedgerQueriesCounterName is the prometheus metric for tracking the total number of evaluated transactions
var LedgerQueriesCounterName = "pl_ledger_queries_total"

// LedgerFailuresCounterName is the prometheus metric for tracking submits and evaluates that returned an error
var LedgerFailuresCounterName = "pl_ledger_failures_total"

// LedgerCommitHistogramName is the prometheus metric for the time from async submit to commit status
var LedgerCommitHistogramName = "pl_ledger_commit_seconds"

// RESTRequestsCounterName is the prometheus metric for tracking product API requests
var RESTRequestsCounterName = "pl_api_requests_total"

// RESTDurationHistogramName is the prometheus metric for product API request latency
var RESTDurationHistogramName = "pl_api_request_duration_seconds"

var RESTRequestSizeSummaryName = "pl_api_request_size_bytes"
var RESTResponseSizeSummaryName = "pl_api_response_size_bytes"

var LedgerLabelName = "ledger"
var FunctionLabelName = "function"
var CodeLabelName = "code"

func Registry() *prometheus.Registry {
	if registry == nil {
		initMetricsCollectors()
		registry = prometheus.NewRegistry()
		registerMetricsCollectors()
	}
	return registry
}

// GetRestServerInstrumentation returns the API middleware, labelling requests with the configured ledger type
func GetRestServerInstrumentation() *RESTInstrumentation {
	if restInstrumentation == nil {
		restInstrumentation = newRESTInstrumentation(config.GetString(config.LedgerType), Registry())
	}
	return restInstrumentation
}

// Clear drops the registry, so the next call to Registry starts again with fresh collectors
func Clear() {
	registry = nil
	restInstrumentation = nil
}

func initMetricsCollectors() {
	LedgerTransactionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: LedgerTransactionsCounterName,
		Help: "Number of transactions submitted to the ledger",
	}, []string{LedgerLabelName, FunctionLabelName})
	LedgerQueriesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: LedgerQueriesCounterName,
		Help: "Number of transactions evaluated against the ledger",
	}, []string{LedgerLabelName, FunctionLabelName})
	LedgerFailuresCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: LedgerFailuresCounterName,
		Help: "Number of ledger submits and evaluates that failed",
	}, []string{LedgerLabelName, FunctionLabelName})
	LedgerCommitHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    LedgerCommitHistogramName,
		Help:    "Time from asynchronous submit until the commit status is known",
		Buckets: prometheus.DefBuckets,
	}, []string{LedgerLabelName, CodeLabelName})
}

func registerMetricsCollectors() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(LedgerTransactionsCounter)
	registry.MustRegister(LedgerQueriesCounter)
	registry.MustRegister(LedgerFailuresCounter)
	registry.MustRegister(LedgerCommitHistogram)
}

// Manager records ledger activity for one ledger plugin
type Manager interface {
	LedgerTransaction(function string)
	LedgerQuery(function string)
	LedgerFailure(function string)
	LedgerCommit(code string, elapsed time.Duration)
	IsMetricsEnabled() bool
}

type metricsManager struct {
	ledgerType     string
	metricsEnabled bool
}

func NewMetricsManager(ledgerType string) Manager {
	mm := &metricsManager{
		ledgerType:     ledgerType,
		metricsEnabled: config.GetBool(config.MetricsEnabled),
	}
	if mm.metricsEnabled {
		Registry()
	}
	return mm
}

func (mm *metricsManager) LedgerTransaction(function string) {
	if mm.metricsEnabled {
		LedgerTransactionsCounter.WithLabelValues(mm.ledgerType, function).Inc()
	}
}

func (mm *metricsManager) LedgerQuery(function string) {
	if mm.metricsEnabled {
		LedgerQueriesCounter.WithLabelValues(mm.ledgerType, function).Inc()
	}
}

func (mm *metricsManager) LedgerFailure(function string) {
	if mm.metricsEnabled {
		LedgerFailuresCounter.WithLabelValues(mm.ledgerType, function).Inc()
	}
}

func (mm *metricsManager) LedgerCommit(code string, elapsed time.Duration) {
	if mm.metricsEnabled {
		LedgerCommitHistogram.WithLabelValues(mm.ledgerType, code).Observe(elapsed.Seconds())
	}
}

func (mm *metricsManager) IsMetricsEnabled() bool {
	return mm.metricsEnabled
}
