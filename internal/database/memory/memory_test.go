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
	"testing"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/pkg/worldstate"
	"github.com/stretchr/testify/assert"
)

func newTestMemory(t *testing.T) *Memory {
	m := &Memory{}
	prefix := config.NewPluginConfig("unittest.memory")
	m.InitPrefix(prefix)
	err := m.Init(context.Background(), prefix)
	assert.NoError(t, err)
	return m
}

func TestMemoryPutGetDelete(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()
	assert.Equal(t, "memory", m.Name())
	assert.False(t, m.Capabilities().Persistent)

	v, err := m.GetValue(ctx, "asset1")
	assert.NoError(t, err)
	assert.Nil(t, v)

	err = m.ApplyWrites(ctx, []*worldstate.Write{
		{Key: "asset1", Value: []byte(`{"ID":"asset1"}`)},
	})
	assert.NoError(t, err)
	v, err = m.GetValue(ctx, "asset1")
	assert.NoError(t, err)
	assert.Equal(t, `{"ID":"asset1"}`, string(v))

	// returned values are copies
	v[0] = 'X'
	v, _ = m.GetValue(ctx, "asset1")
	assert.Equal(t, `{"ID":"asset1"}`, string(v))

	err = m.ApplyWrites(ctx, []*worldstate.Write{
		{Key: "asset1", IsDelete: true},
		{Key: "missing", IsDelete: true},
	})
	assert.NoError(t, err)
	v, err = m.GetValue(ctx, "asset1")
	assert.NoError(t, err)
	assert.Nil(t, v)
	m.Close()
}

func TestMemoryRangeOrdering(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()
	err := m.ApplyWrites(ctx, []*worldstate.Write{
		{Key: "c", Value: []byte("3")},
		{Key: "a", Value: []byte("1")},
		{Key: "B", Value: []byte("0")},
		{Key: "b", Value: []byte("2")},
		{Key: "a", Value: []byte("1a")},
	})
	assert.NoError(t, err)

	all, err := m.GetRange(ctx, "", "")
	assert.NoError(t, err)
	keys := []string{}
	for _, kv := range all {
		keys = append(keys, kv.Key)
	}
	assert.Equal(t, []string{"B", "a", "b", "c"}, keys)
	assert.Equal(t, "1a", string(all[1].Value))

	some, err := m.GetRange(ctx, "a", "c")
	assert.NoError(t, err)
	assert.Len(t, some, 2)
	assert.Equal(t, "a", some[0].Key)
	assert.Equal(t, "b", some[1].Key)

	none, err := m.GetRange(ctx, "d", "")
	assert.NoError(t, err)
	assert.Empty(t, none)
}
