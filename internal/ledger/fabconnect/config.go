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

package fabconnect

import (
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/wsclient"
)

const (
	defaultReceiptsCacheSize = "1Mb"
	defaultReceiptsCacheTTL  = "5m"
)

const (
	// FabconnectConfigChannel is the Fabric channel the chaincode is deployed on
	FabconnectConfigChannel = "channel"
	// FabconnectConfigSigner is the identity registered with fabconnect that signs every transaction
	FabconnectConfigSigner = "signer"
	// FabconnectConfigReceiptsCacheSize is the maximum size of the cache of receipts for async submissions
	FabconnectConfigReceiptsCacheSize = "receipts.cacheSize"
	// FabconnectConfigReceiptsCacheTTL is how long receipts are kept after they arrive
	FabconnectConfigReceiptsCacheTTL = "receipts.cacheTTL"
)

func (f *Fabconnect) InitPrefix(prefix config.Prefix) {
	wsclient.InitPrefix(prefix)
	prefix.AddKnownKey(FabconnectConfigChannel)
	prefix.AddKnownKey(FabconnectConfigSigner)
	prefix.AddKnownKey(FabconnectConfigReceiptsCacheSize, defaultReceiptsCacheSize)
	prefix.AddKnownKey(FabconnectConfigReceiptsCacheTTL, defaultReceiptsCacheTTL)
}
