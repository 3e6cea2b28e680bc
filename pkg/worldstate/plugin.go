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

package worldstate

import (
	"context"

	"github.com/kaleido-io/productledger/internal/config"
)

// KV is a single entry of world state
type KV struct {
	Key   string
	Value []byte
}

// Iterator walks the results of a range query, in key order
type Iterator interface {
	HasNext() bool
	Next() (*KV, error)
	Close() error
}

// State is the key-value capability a chaincode transaction executes against.
// Keys are compared bytewise. An empty endKey means no upper bound.
type State interface {
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	DelState(key string) error
	GetStateByRange(startKey, endKey string) (Iterator, error)
}

// Write is one entry of a committed write set
type Write struct {
	Key      string
	Value    []byte
	IsDelete bool
}

// Plugin is a world state database, holding the committed state of one channel
type Plugin interface {
	// Name returns the plugin type name
	Name() string

	// InitPrefix initializes the set of configuration options that are valid, with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with configuration
	Init(ctx context.Context, prefix config.Prefix) error

	// Capabilities returns capabilities - not called until after Init
	Capabilities() *Capabilities

	// GetValue returns the committed value of a key, or nil if the key is not set
	GetValue(ctx context.Context, key string) ([]byte, error)

	// GetRange returns the committed entries with startKey <= key < endKey, in key order
	GetRange(ctx context.Context, startKey, endKey string) ([]*KV, error)

	// ApplyWrites atomically applies a write set
	ApplyWrites(ctx context.Context, writes []*Write) error

	// Close releases any resources
	Close()
}

// Capabilities the supported featureset of the world state database
type Capabilities struct {
	Persistent bool
}

// SliceIterator is an Iterator over a pre-fetched result set
type SliceIterator struct {
	entries []*KV
	pos     int
}

func NewSliceIterator(entries []*KV) *SliceIterator {
	return &SliceIterator{entries: entries}
}

func (si *SliceIterator) HasNext() bool {
	return si.pos < len(si.entries)
}

func (si *SliceIterator) Next() (*KV, error) {
	if !si.HasNext() {
		return nil, nil
	}
	kv := si.entries[si.pos]
	si.pos++
	return kv, nil
}

func (si *SliceIterator) Close() error {
	si.entries = nil
	return nil
}
