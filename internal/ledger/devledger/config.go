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
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/database/dbfactory"
)

const (
	defaultDatabaseType      = "memory"
	defaultChannel           = "mychannel"
	defaultCommitQueueLength = 50
	defaultReceiptsCacheSize = "1Mb"
	defaultReceiptsCacheTTL  = "5m"
)

const (
	// DevLedgerConfDatabaseType selects the world state database, with plugin config under database.<type>
	DevLedgerConfDatabaseType = "database.type"
	// DevLedgerConfChannel is the channel name reported in logs and errors
	DevLedgerConfChannel = "channel"
	// DevLedgerConfCommitQueueLength is the number of endorsed transactions that can wait for the committer
	DevLedgerConfCommitQueueLength = "commitQueueLength"
	// DevLedgerConfReceiptsCacheSize is the maximum size of the receipt cache
	DevLedgerConfReceiptsCacheSize = "receipts.cacheSize"
	// DevLedgerConfReceiptsCacheTTL is how long receipts are kept after commit
	DevLedgerConfReceiptsCacheTTL = "receipts.cacheTTL"
)

func (d *DevLedger) InitPrefix(prefix config.Prefix) {
	prefix.AddKnownKey(DevLedgerConfDatabaseType, defaultDatabaseType)
	prefix.AddKnownKey(DevLedgerConfChannel, defaultChannel)
	prefix.AddKnownKey(DevLedgerConfCommitQueueLength, defaultCommitQueueLength)
	prefix.AddKnownKey(DevLedgerConfReceiptsCacheSize, defaultReceiptsCacheSize)
	prefix.AddKnownKey(DevLedgerConfReceiptsCacheTTL, defaultReceiptsCacheTTL)
	dbfactory.InitPrefix(prefix.SubPrefix("database"))
}
