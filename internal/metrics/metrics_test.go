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
	"testing"
	"time"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetricsManager(enabled bool) Manager {
	config.Reset()
	config.Set(config.MetricsEnabled, enabled)
	return NewMetricsManager("devledger")
}

func TestLedgerCounters(t *testing.T) {
	Clear()
	mm := newTestMetricsManager(true)
	assert.True(t, mm.IsMetricsEnabled())

	mm.LedgerTransaction("CreateProduct")
	mm.LedgerTransaction("CreateProduct")
	mm.LedgerQuery("ReadProduct")
	mm.LedgerFailure("ReadProduct")
	mm.LedgerCommit("VALID", 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(LedgerTransactionsCounter.WithLabelValues("devledger", "CreateProduct")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LedgerQueriesCounter.WithLabelValues("devledger", "ReadProduct")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LedgerFailuresCounter.WithLabelValues("devledger", "ReadProduct")))
	assert.Equal(t, 1, testutil.CollectAndCount(LedgerCommitHistogram))
}

func TestLedgerCountersDisabled(t *testing.T) {
	Clear()
	Registry()
	mm := newTestMetricsManager(false)
	assert.False(t, mm.IsMetricsEnabled())
	mm.LedgerTransaction("CreateProduct")
	mm.LedgerCommit("VALID", time.Second)
	assert.Equal(t, float64(0), testutil.ToFloat64(LedgerTransactionsCounter.WithLabelValues("devledger", "CreateProduct")))
}

func TestRestInstrumentationSingleton(t *testing.T) {
	config.Reset()
	Clear()
	i := GetRestServerInstrumentation()
	assert.Same(t, i, GetRestServerInstrumentation())
	assert.Equal(t, "devledger", i.ledgerType)
	Clear()
	assert.NotSame(t, i, GetRestServerInstrumentation())
}
