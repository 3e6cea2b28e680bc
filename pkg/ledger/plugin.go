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

package ledger

import (
	"context"
	"strings"

	"github.com/kaleido-io/productledger/internal/config"
)

// Plugin is a connection to a ledger runtime, able to resolve contract handles for chaincodes
// deployed on its channel. Plugins hold the connection level resources, and are shared
// by all requests.
type Plugin interface {
	// Name returns the plugin type name
	Name() string

	// InitPrefix initializes the set of configuration options that are valid, with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with configuration
	Init(ctx context.Context, prefix config.Prefix) error

	// Start starts any background processing, such as listening for commit receipts
	Start() error

	// Capabilities returns capabilities - not called until after Init
	Capabilities() *Capabilities

	// Contract returns a lightweight handle to submit and evaluate transactions against a chaincode
	Contract(ctx context.Context, chaincode string) (Contract, error)

	// Close stops background processing, and releases resources
	Close()
}

// Capabilities the supported featureset of the ledger plugin
type Capabilities struct {
	// AsyncCommit is true if commit status is reported after SubmitAsync returns
	AsyncCommit bool
}

// Contract submits and evaluates named transactions against one chaincode
type Contract interface {
	// SubmitTransaction endorses and orders a transaction, returning the result once the
	// transaction is committed successfully
	SubmitTransaction(ctx context.Context, name string, args ...string) ([]byte, error)

	// EvaluateTransaction runs a transaction against current world state without ordering it
	EvaluateTransaction(ctx context.Context, name string, args ...string) ([]byte, error)

	// SubmitAsync returns once the transaction is accepted for ordering. The returned Commit
	// reports the final outcome.
	SubmitAsync(ctx context.Context, name string, args ...string) (Commit, error)
}

// Commit is a handle to a transaction that has been accepted for ordering
type Commit interface {
	TransactionID() string
	// Result is the result of the transaction from endorsement, which may be empty for gateways
	// that only return results on commit
	Result() []byte
	// Status blocks until the transaction is final, or the context is done
	Status(ctx context.Context) (*CommitStatus, error)
}

// Well known commit status codes
const (
	StatusValid               = "VALID"
	StatusMVCCReadConflict    = "MVCC_READ_CONFLICT"
	StatusPhantomReadConflict = "PHANTOM_READ_CONFLICT"
	StatusEndorsementFailed   = "ENDORSEMENT_POLICY_FAILURE"
	StatusInvalidOther        = "INVALID_OTHER_REASON"
)

// CommitStatus is the final outcome of a transaction
type CommitStatus struct {
	TransactionID string `json:"transactionId"`
	Successful    bool   `json:"successful"`
	Code          string `json:"code"`
	BlockNumber   uint64 `json:"blockNumber"`
	Message       string `json:"message,omitempty"`
}

// TransactionError is a failure reported by the ledger runtime, carrying the runtime's own
// error detail (such as the error returned by the chaincode)
type TransactionError struct {
	Message string
	Details []string
	Cause   error
}

func (e *TransactionError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

func (e *TransactionError) Unwrap() error {
	return e.Cause
}
