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

package chaincode

import (
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/kaleido-io/productledger/pkg/worldstate"
)

// stubState exposes the world state of a Fabric transaction through worldstate.State
type stubState struct {
	stub shim.ChaincodeStubInterface
}

func (s *stubState) GetState(key string) ([]byte, error) {
	return s.stub.GetState(key)
}

func (s *stubState) PutState(key string, value []byte) error {
	return s.stub.PutState(key, value)
}

func (s *stubState) DelState(key string) error {
	return s.stub.DelState(key)
}

func (s *stubState) GetStateByRange(startKey, endKey string) (worldstate.Iterator, error) {
	iter, err := s.stub.GetStateByRange(startKey, endKey)
	if err != nil {
		return nil, err
	}
	return &stubIterator{iter: iter}, nil
}

type stubIterator struct {
	iter shim.StateQueryIteratorInterface
}

func (si *stubIterator) HasNext() bool {
	return si.iter.HasNext()
}

func (si *stubIterator) Next() (*worldstate.KV, error) {
	kv, err := si.iter.Next()
	if err != nil {
		return nil, err
	}
	return &worldstate.KV{Key: kv.Key, Value: kv.Value}, nil
}

func (si *stubIterator) Close() error {
	return si.iter.Close()
}
