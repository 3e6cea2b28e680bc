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

package devledger

import (
	"context"
	"sort"

	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/kaleido-io/productledger/pkg/worldstate"
)

// readVersion records what a transaction observed for a key at simulation time
type readVersion struct {
	exists bool
	hash   pltypes.Bytes32
}

type rangeRead struct {
	startKey string
	endKey   string
	hash     pltypes.Bytes32
}

// simulator executes a transaction against committed state, without changing it.
// As in a Fabric peer, reads do not observe the transaction's own writes.
type simulator struct {
	ctx        context.Context
	db         worldstate.Plugin
	reads      map[string]readVersion
	rangeReads []*rangeRead
	writes     map[string]*worldstate.Write
}

func newSimulator(ctx context.Context, db worldstate.Plugin) *simulator {
	return &simulator{
		ctx:    ctx,
		db:     db,
		reads:  make(map[string]readVersion),
		writes: make(map[string]*worldstate.Write),
	}
}

func versionOf(value []byte) readVersion {
	if value == nil {
		return readVersion{}
	}
	return readVersion{exists: true, hash: pltypes.HashBytes(value)}
}

func hashRange(entries []*worldstate.KV) pltypes.Bytes32 {
	parts := make([][]byte, 0, len(entries)*2)
	for _, kv := range entries {
		h := pltypes.HashBytes(kv.Value)
		parts = append(parts, []byte(kv.Key), h[:])
	}
	return pltypes.HashBytes(parts...)
}

func (s *simulator) GetState(key string) ([]byte, error) {
	if key == "" {
		return nil, i18n.NewError(s.ctx, i18n.MsgEmptyStateKey)
	}
	value, err := s.db.GetValue(s.ctx, key)
	if err != nil {
		return nil, err
	}
	if _, seen := s.reads[key]; !seen {
		s.reads[key] = versionOf(value)
	}
	return value, nil
}

func (s *simulator) PutState(key string, value []byte) error {
	if key == "" {
		return i18n.NewError(s.ctx, i18n.MsgEmptyStateKey)
	}
	s.writes[key] = &worldstate.Write{Key: key, Value: value}
	return nil
}

func (s *simulator) DelState(key string) error {
	if key == "" {
		return i18n.NewError(s.ctx, i18n.MsgEmptyStateKey)
	}
	s.writes[key] = &worldstate.Write{Key: key, IsDelete: true}
	return nil
}

func (s *simulator) GetStateByRange(startKey, endKey string) (worldstate.Iterator, error) {
	entries, err := s.db.GetRange(s.ctx, startKey, endKey)
	if err != nil {
		return nil, err
	}
	s.rangeReads = append(s.rangeReads, &rangeRead{
		startKey: startKey,
		endKey:   endKey,
		hash:     hashRange(entries),
	})
	return worldstate.NewSliceIterator(entries), nil
}

// writeSet returns the writes in key order
func (s *simulator) writeSet() []*worldstate.Write {
	writes := make([]*worldstate.Write, 0, len(s.writes))
	for _, w := range s.writes {
		writes = append(writes, w)
	}
	sort.Slice(writes, func(i, j int) bool { return writes[i].Key < writes[j].Key })
	return writes
}
