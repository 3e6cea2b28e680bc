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

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/pkg/worldstate"
)

// Memory is a non-persistent world state, held in a sorted key index over a map
type Memory struct {
	mux          sync.RWMutex
	keys         []string
	values       map[string][]byte
	capabilities *worldstate.Capabilities
}

func (m *Memory) Name() string {
	return "memory"
}

func (m *Memory) InitPrefix(prefix config.Prefix) {}

func (m *Memory) Init(ctx context.Context, prefix config.Prefix) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.keys = []string{}
	m.values = make(map[string][]byte)
	m.capabilities = &worldstate.Capabilities{Persistent: false}
	log.L(ctx).Debugf("In-memory world state initialized")
	return nil
}

func (m *Memory) Capabilities() *worldstate.Capabilities { return m.capabilities }

func (m *Memory) GetValue(ctx context.Context, key string) ([]byte, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return copyBytes(v), nil
}

func (m *Memory) GetRange(ctx context.Context, startKey, endKey string) ([]*worldstate.KV, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	entries := []*worldstate.KV{}
	for i := sort.SearchStrings(m.keys, startKey); i < len(m.keys); i++ {
		k := m.keys[i]
		if endKey != "" && k >= endKey {
			break
		}
		entries = append(entries, &worldstate.KV{Key: k, Value: copyBytes(m.values[k])})
	}
	return entries, nil
}

func (m *Memory) ApplyWrites(ctx context.Context, writes []*worldstate.Write) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	for _, w := range writes {
		i := sort.SearchStrings(m.keys, w.Key)
		exists := i < len(m.keys) && m.keys[i] == w.Key
		switch {
		case w.IsDelete && exists:
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			delete(m.values, w.Key)
		case w.IsDelete:
			// nothing to delete
		default:
			if !exists {
				m.keys = append(m.keys, "")
				copy(m.keys[i+1:], m.keys[i:])
				m.keys[i] = w.Key
			}
			m.values[w.Key] = copyBytes(w.Value)
		}
	}
	log.L(ctx).Tracef("Applied %d writes (keys=%d)", len(writes), len(m.keys))
	return nil
}

func (m *Memory) Close() {}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
