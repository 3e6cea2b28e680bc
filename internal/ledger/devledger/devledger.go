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
	"sync"
	"time"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/database/dbfactory"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/pkg/ledger"
	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/kaleido-io/productledger/pkg/worldstate"
	"github.com/kaleido-io/productledger/smart_contracts/fabric/productcc/chaincode"
	"github.com/karlseguin/ccache"
)

// Chaincode is a chaincode that can be executed in process
type Chaincode interface {
	Invoke(ws worldstate.State, fn string, args []string) ([]byte, error)
}

// DevLedger is a single-peer ledger runtime for development. Transactions are simulated against
// committed world state, then validated and committed in order by a single committer.
type DevLedger struct {
	ctx           context.Context
	cancelCtx     context.CancelFunc
	channel       string
	database      worldstate.Plugin
	chaincodes    map[string]Chaincode
	capabilities  *ledger.Capabilities
	receipts      *ccache.Cache
	receiptTTL    time.Duration
	commits       chan *endorsedTx
	blockNumber   uint64
	startOnce     sync.Once
	committerDone chan struct{}
}

// endorsedTx is a simulated transaction, waiting for the committer
type endorsedTx struct {
	txID       string
	fn         string
	result     []byte
	reads      map[string]readVersion
	rangeReads []*rangeRead
	writes     []*worldstate.Write
	status     *ledger.CommitStatus
	done       chan struct{}
}

func (d *DevLedger) Name() string {
	return "devledger"
}

func (d *DevLedger) Init(ctx context.Context, prefix config.Prefix) (err error) {
	d.ctx, d.cancelCtx = context.WithCancel(log.WithLogField(ctx, "ledger", "devledger"))
	d.channel = prefix.GetString(DevLedgerConfChannel)
	d.capabilities = &ledger.Capabilities{AsyncCommit: true}
	d.committerDone = make(chan struct{})

	if d.database == nil {
		dbType := prefix.GetString(DevLedgerConfDatabaseType)
		if d.database, err = dbfactory.GetPlugin(ctx, dbType); err != nil {
			return err
		}
		if err = d.database.Init(d.ctx, prefix.SubPrefix("database").SubPrefix(dbType)); err != nil {
			return err
		}
	}

	// The product chaincode is installed under the name the gateway resolves contracts by
	d.chaincodes = map[string]Chaincode{
		config.GetString(config.LedgerChaincode): &chaincode.Products{},
	}

	d.receiptTTL = prefix.GetDuration(DevLedgerConfReceiptsCacheTTL)
	d.receipts = ccache.New(ccache.Configure().MaxSize(prefix.GetByteSize(DevLedgerConfReceiptsCacheSize)))
	d.commits = make(chan *endorsedTx, prefix.GetInt(DevLedgerConfCommitQueueLength))

	log.L(d.ctx).Infof("Development ledger initialized on channel '%s' with %s world state", d.channel, d.database.Name())
	return nil
}

func (d *DevLedger) install(name string, cc Chaincode) {
	d.chaincodes[name] = cc
}

func (d *DevLedger) Start() error {
	d.startOnce.Do(func() {
		go d.committer()
	})
	return nil
}

func (d *DevLedger) Capabilities() *ledger.Capabilities {
	return d.capabilities
}

func (d *DevLedger) Contract(ctx context.Context, name string) (ledger.Contract, error) {
	cc, ok := d.chaincodes[name]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgUnknownChaincode, name, d.channel)
	}
	return &contract{d: d, name: name, cc: cc}, nil
}

func (d *DevLedger) Close() {
	if d.cancelCtx == nil {
		return
	}
	d.cancelCtx()
	started := true
	d.startOnce.Do(func() { started = false })
	if started {
		<-d.committerDone
	}
	d.database.Close()
}

func (d *DevLedger) newTransactionID(chaincode string) string {
	nonce := pltypes.NewRandB32()
	txID := pltypes.HashBytes(nonce[:], []byte(d.channel), []byte(chaincode))
	return txID.String()
}

func (d *DevLedger) committer() {
	defer close(d.committerDone)
	l := log.L(d.ctx).WithField("role", "committer")
	ctx := log.WithLogger(d.ctx, l)
	for {
		select {
		case <-ctx.Done():
			l.Debugf("Committer exiting (context cancelled)")
			return
		case tx := <-d.commits:
			d.commit(ctx, tx)
		}
	}
}

func (d *DevLedger) validate(ctx context.Context, tx *endorsedTx) string {
	for key, observed := range tx.reads {
		value, err := d.database.GetValue(ctx, key)
		if err != nil {
			log.L(ctx).Errorf("Failed to validate read of '%s' in %s: %s", key, tx.txID, err)
			return ledger.StatusInvalidOther
		}
		if versionOf(value) != observed {
			log.L(ctx).Infof("Key '%s' changed since %s was endorsed", key, tx.txID)
			return ledger.StatusMVCCReadConflict
		}
	}
	for _, rr := range tx.rangeReads {
		entries, err := d.database.GetRange(ctx, rr.startKey, rr.endKey)
		if err != nil {
			log.L(ctx).Errorf("Failed to validate range read in %s: %s", tx.txID, err)
			return ledger.StatusInvalidOther
		}
		if hashRange(entries) != rr.hash {
			log.L(ctx).Infof("Range ['%s','%s') changed since %s was endorsed", rr.startKey, rr.endKey, tx.txID)
			return ledger.StatusPhantomReadConflict
		}
	}
	return ledger.StatusValid
}

func (d *DevLedger) commit(ctx context.Context, tx *endorsedTx) {
	code := d.validate(ctx, tx)
	if code == ledger.StatusValid && len(tx.writes) > 0 {
		if err := d.database.ApplyWrites(ctx, tx.writes); err != nil {
			log.L(ctx).Errorf("Failed to apply write set of %s: %s", tx.txID, err)
			code = ledger.StatusInvalidOther
		}
	}
	d.blockNumber++
	tx.status = &ledger.CommitStatus{
		TransactionID: tx.txID,
		Successful:    code == ledger.StatusValid,
		Code:          code,
		BlockNumber:   d.blockNumber,
	}
	d.receipts.Set(tx.txID, tx.status, d.receiptTTL)
	log.L(ctx).Infof("Block %d: %s %s (%s, writes=%d)", d.blockNumber, tx.fn, tx.txID, code, len(tx.writes))
	close(tx.done)
}

type contract struct {
	d    *DevLedger
	name string
	cc   Chaincode
}

func (c *contract) simulate(ctx context.Context, fn string, args []string) (*simulator, []byte, error) {
	if c.d.ctx.Err() != nil {
		return nil, nil, i18n.NewError(ctx, i18n.MsgLedgerStopped)
	}
	sim := newSimulator(ctx, c.d.database)
	result, err := c.cc.Invoke(sim, fn, args)
	if err != nil {
		log.L(ctx).Errorf("Chaincode %s failed to execute %s: %s", c.name, fn, err)
		return nil, nil, &ledger.TransactionError{
			Message: i18n.ExpandWithCode(ctx, i18n.MsgEndorsementFailed, fn),
			Details: []string{err.Error()},
			Cause:   err,
		}
	}
	return sim, result, nil
}

func (c *contract) EvaluateTransaction(ctx context.Context, name string, args ...string) ([]byte, error) {
	_, result, err := c.simulate(ctx, name, args)
	return result, err
}

func (c *contract) SubmitAsync(ctx context.Context, name string, args ...string) (ledger.Commit, error) {
	sim, result, err := c.simulate(ctx, name, args)
	if err != nil {
		return nil, err
	}
	tx := &endorsedTx{
		txID:       c.d.newTransactionID(c.name),
		fn:         name,
		result:     result,
		reads:      sim.reads,
		rangeReads: sim.rangeReads,
		writes:     sim.writeSet(),
		done:       make(chan struct{}),
	}
	select {
	case c.d.commits <- tx:
	case <-ctx.Done():
		return nil, i18n.NewError(ctx, i18n.MsgContextCanceled)
	case <-c.d.ctx.Done():
		return nil, i18n.NewError(ctx, i18n.MsgLedgerStopped)
	}
	log.L(ctx).Debugf("Submitted %s as %s", name, tx.txID)
	return &commit{d: c.d, tx: tx}, nil
}

func (c *contract) SubmitTransaction(ctx context.Context, name string, args ...string) ([]byte, error) {
	pending, err := c.SubmitAsync(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	status, err := pending.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Successful {
		return nil, &ledger.TransactionError{
			Message: i18n.ExpandWithCode(ctx, i18n.MsgCommitFailed, status.TransactionID, status.Code),
			Details: []string{status.Code},
		}
	}
	return pending.Result(), nil
}

type commit struct {
	d  *DevLedger
	tx *endorsedTx
}

func (c *commit) TransactionID() string {
	return c.tx.txID
}

func (c *commit) Result() []byte {
	return c.tx.result
}

func (c *commit) Status(ctx context.Context) (*ledger.CommitStatus, error) {
	if item := c.d.receipts.Get(c.tx.txID); item != nil && !item.Expired() {
		return item.Value().(*ledger.CommitStatus), nil
	}
	select {
	case <-c.tx.done:
		return c.tx.status, nil
	case <-ctx.Done():
		return nil, i18n.NewError(ctx, i18n.MsgCommitWaitTimeout, c.tx.txID)
	case <-c.d.ctx.Done():
		return nil, i18n.NewError(ctx, i18n.MsgLedgerStopped)
	}
}
