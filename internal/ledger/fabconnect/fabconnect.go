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
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/internal/restclient"
	"github.com/kaleido-io/productledger/internal/wsclient"
	"github.com/kaleido-io/productledger/pkg/ledger"
	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/kaleido-io/productledger/smart_contracts/fabric/productcc/chaincode"
	"github.com/karlseguin/ccache"
)

// Fabconnect submits and evaluates transactions through a fabconnect REST gateway.
// Receipts for asynchronous submissions are delivered over its websocket.
type Fabconnect struct {
	ctx          context.Context
	cancelCtx    context.CancelFunc
	channel      string
	signer       string
	capabilities *ledger.Capabilities
	client       *resty.Client
	wsconn       wsclient.WSClient
	receipts     *ccache.Cache
	receiptTTL   time.Duration
	pendingMux   sync.Mutex
	pending      map[string]*fabCommit
	closed       chan struct{}
}

type fabTxInputHeaders struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type,omitempty"`
	Signer    string `json:"signer,omitempty"`
	Channel   string `json:"channel,omitempty"`
	Chaincode string `json:"chaincode,omitempty"`
}

type fabTxInput struct {
	Headers    *fabTxInputHeaders `json:"headers"`
	Func       string             `json:"func"`
	Args       []string           `json:"args"`
	StrongRead bool               `json:"strongread,omitempty"`
}

type fabError struct {
	Error string `json:"error,omitempty"`
}

type fabAsyncResponse struct {
	ID   string `json:"id"`
	Sent bool   `json:"sent"`
	Msg  string `json:"msg,omitempty"`
}

type fabReceiptHeaders struct {
	RequestID string `json:"requestId"`
	Type      string `json:"type"`
}

type fabReceipt struct {
	Headers       fabReceiptHeaders `json:"headers"`
	TransactionID string            `json:"transactionID"`
	BlockNumber   uint64            `json:"blockNumber"`
	Status        string            `json:"status"`
	ErrorMessage  string            `json:"errorMessage"`
	Result        json.RawMessage   `json:"result"`
}

type fabQueryOutput struct {
	Result json.RawMessage `json:"result"`
}

type fabWSCommandPayload struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
}

const (
	replyTypeSuccess = "TransactionSuccess"
	txTypeSend       = "SendTransaction"
)

func (f *Fabconnect) Name() string {
	return "fabconnect"
}

func (f *Fabconnect) Init(ctx context.Context, prefix config.Prefix) (err error) {
	f.ctx, f.cancelCtx = context.WithCancel(log.WithLogField(ctx, "ledger", "fabconnect"))
	f.capabilities = &ledger.Capabilities{AsyncCommit: true}

	if prefix.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, "url", "ledger.fabconnect")
	}
	f.channel = prefix.GetString(FabconnectConfigChannel)
	if f.channel == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, "channel", "ledger.fabconnect")
	}
	f.signer = prefix.GetString(FabconnectConfigSigner)
	if f.signer == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, "signer", "ledger.fabconnect")
	}
	f.client = restclient.New(f.ctx, prefix)

	wsConfig := wsclient.GenerateConfigFromPrefix(prefix)
	if wsConfig.WSKeyPath == "" {
		wsConfig.WSKeyPath = "/ws"
	}
	if f.wsconn, err = wsclient.New(f.ctx, wsConfig, f.afterConnect); err != nil {
		return err
	}

	f.receiptTTL = prefix.GetDuration(FabconnectConfigReceiptsCacheTTL)
	f.receipts = ccache.New(ccache.Configure().MaxSize(prefix.GetByteSize(FabconnectConfigReceiptsCacheSize)))
	f.pending = make(map[string]*fabCommit)

	f.closed = make(chan struct{})
	go f.eventLoop()

	return nil
}

func (f *Fabconnect) Start() error {
	return f.wsconn.Connect()
}

func (f *Fabconnect) Capabilities() *ledger.Capabilities {
	return f.capabilities
}

func (f *Fabconnect) Contract(ctx context.Context, chaincode string) (ledger.Contract, error) {
	return &contract{f: f, chaincode: chaincode}, nil
}

func (f *Fabconnect) Close() {
	if f.cancelCtx != nil {
		f.cancelCtx()
		<-f.closed
	}
}

func (f *Fabconnect) afterConnect(ctx context.Context, w wsclient.WSClient) error {
	// Receipts for every submission are delivered as replies, so register for them after each connect/reconnect
	b, _ := json.Marshal(&fabWSCommandPayload{
		Type: "listenreplies",
	})
	return w.Send(ctx, b)
}

func (f *Fabconnect) eventLoop() {
	defer f.wsconn.Close()
	defer close(f.closed)
	l := log.L(f.ctx).WithField("role", "event-loop")
	ctx := log.WithLogger(f.ctx, l)
	for {
		select {
		case <-ctx.Done():
			l.Debugf("Event loop exiting (context cancelled)")
			return
		case msgBytes, ok := <-f.wsconn.Receive():
			if !ok {
				l.Debugf("Event loop exiting (receive channel closed)")
				return
			}

			var msgParsed interface{}
			err := json.Unmarshal(msgBytes, &msgParsed)
			if err != nil {
				l.Errorf("Message cannot be parsed as JSON: %s\n%s", err, string(msgBytes))
				continue // Swallow this and move on
			}
			switch msgTyped := msgParsed.(type) {
			case map[string]interface{}:
				f.handleReceipt(ctx, pltypes.JSONObject(msgTyped))
			default:
				l.Errorf("Message unexpected: %+v", msgTyped)
			}
		}
	}
}

// failureCode finds the validation code of a failed transaction, which fabconnect
// reports either as a status, or within the error message
func failureCode(status, message string) string {
	if status != "" && status != ledger.StatusValid {
		return status
	}
	for _, code := range []string{
		ledger.StatusMVCCReadConflict,
		ledger.StatusPhantomReadConflict,
		ledger.StatusEndorsementFailed,
	} {
		if strings.Contains(message, code) {
			return code
		}
	}
	return ledger.StatusInvalidOther
}

func (f *Fabconnect) handleReceipt(ctx context.Context, reply pltypes.JSONObject) {
	l := log.L(ctx)

	headers := reply.GetObject("headers")
	requestID := headers.GetString("requestId")
	replyType := headers.GetString("type")
	if requestID == "" || replyType == "" {
		l.Errorf("Reply cannot be processed: %+v", reply)
		return
	}
	txID := reply.GetString("transactionId")
	if txID == "" {
		txID = reply.GetString("transactionID")
	}
	status := &ledger.CommitStatus{
		TransactionID: txID,
		Successful:    replyType == replyTypeSuccess,
		Code:          ledger.StatusValid,
		BlockNumber:   uint64(reply.GetInt64("blockNumber")),
		Message:       reply.GetString("errorMessage"),
	}
	if !status.Successful {
		status.Code = failureCode(reply.GetString("status"), status.Message)
	}
	l.Infof("Received receipt: request=%s tx=%s type=%s code=%s", requestID, txID, replyType, status.Code)
	f.receipts.Set(requestID, status, f.receiptTTL)

	f.pendingMux.Lock()
	fc := f.pending[requestID]
	delete(f.pending, requestID)
	f.pendingMux.Unlock()
	if fc != nil {
		fc.status = status
		close(fc.done)
	}
}

func (f *Fabconnect) addPending(requestID string) *fabCommit {
	fc := &fabCommit{
		f:         f,
		requestID: requestID,
		done:      make(chan struct{}),
	}
	f.pendingMux.Lock()
	f.pending[requestID] = fc
	f.pendingMux.Unlock()
	return fc
}

func (f *Fabconnect) removePending(requestID string) {
	f.pendingMux.Lock()
	delete(f.pending, requestID)
	f.pendingMux.Unlock()
}

func wrapError(ctx context.Context, fn string, errRes *fabError, res *resty.Response, err error) error {
	if errRes != nil && errRes.Error != "" {
		return &ledger.TransactionError{
			Message: i18n.ExpandWithCode(ctx, i18n.MsgConnectorFailInvoke, fn, "fabconnect"),
			Details: []string{i18n.SanitizeLimit(errRes.Error, 2048)},
			Cause:   i18n.NewError(ctx, i18n.MsgFabconnectRESTErr, errRes.Error),
		}
	}
	return restclient.WrapRestErr(ctx, res, err, i18n.MsgFabconnectRESTErr)
}

// resultBytes converts a result decoded by fabconnect back into the bytes the chaincode returned.
// Strings are returned unquoted. JSON values are re-encoded canonically.
func resultBytes(ctx context.Context, fn string, raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []byte{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgLedgerResultDecodeFailed, fn)
		}
		return []byte(s), nil
	}
	b, err := chaincode.Canonicalize(raw)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgLedgerResultDecodeFailed, fn)
	}
	return b, nil
}

type contract struct {
	f         *Fabconnect
	chaincode string
}

func (c *contract) txInput(requestID, fn string, args []string) *fabTxInput {
	if args == nil {
		args = []string{}
	}
	return &fabTxInput{
		Headers: &fabTxInputHeaders{
			ID:        requestID,
			Type:      txTypeSend,
			Signer:    c.f.signer,
			Channel:   c.f.channel,
			Chaincode: c.chaincode,
		},
		Func: fn,
		Args: args,
	}
}

func (c *contract) SubmitTransaction(ctx context.Context, name string, args ...string) ([]byte, error) {
	var resErr fabError
	var receipt fabReceipt
	res, err := c.f.client.R().
		SetContext(ctx).
		SetQueryParam("fly-sync", "true").
		SetBody(c.txInput(pltypes.NewRequestID(), name, args)).
		SetResult(&receipt).
		SetError(&resErr).
		Post("/transactions")
	if err != nil || !res.IsSuccess() {
		return nil, wrapError(ctx, name, &resErr, res, err)
	}
	if receipt.Headers.Type != replyTypeSuccess {
		code := failureCode(receipt.Status, receipt.ErrorMessage)
		return nil, &ledger.TransactionError{
			Message: i18n.ExpandWithCode(ctx, i18n.MsgCommitFailed, receipt.TransactionID, code),
			Details: []string{i18n.SanitizeLimit(receipt.ErrorMessage, 2048)},
		}
	}
	log.L(ctx).Debugf("Transaction %s committed in block %d", receipt.TransactionID, receipt.BlockNumber)
	return resultBytes(ctx, name, receipt.Result)
}

func (c *contract) EvaluateTransaction(ctx context.Context, name string, args ...string) ([]byte, error) {
	input := c.txInput("", name, args)
	input.Headers.Type = ""
	input.StrongRead = true
	var resErr fabError
	var output fabQueryOutput
	res, err := c.f.client.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&output).
		SetError(&resErr).
		Post("/query")
	if err != nil || !res.IsSuccess() {
		return nil, wrapError(ctx, name, &resErr, res, err)
	}
	return resultBytes(ctx, name, output.Result)
}

func (c *contract) SubmitAsync(ctx context.Context, name string, args ...string) (ledger.Commit, error) {
	requestID := pltypes.NewRequestID()
	fc := c.f.addPending(requestID)
	var resErr fabError
	var accepted fabAsyncResponse
	res, err := c.f.client.R().
		SetContext(ctx).
		SetBody(c.txInput(requestID, name, args)).
		SetResult(&accepted).
		SetError(&resErr).
		Post("/transactions")
	if err != nil || !res.IsSuccess() {
		c.f.removePending(requestID)
		return nil, wrapError(ctx, name, &resErr, res, err)
	}
	if res.StatusCode() != http.StatusAccepted || !accepted.Sent {
		c.f.removePending(requestID)
		return nil, i18n.NewError(ctx, i18n.MsgAsyncSubmitNotAccepted, name)
	}
	log.L(ctx).Debugf("Submitted %s as request %s", name, requestID)
	return fc, nil
}

// fabCommit tracks an asynchronous submission. fabconnect assigns the Fabric transaction ID on
// submission to the orderer, so the request ID identifies the transaction until the receipt arrives.
type fabCommit struct {
	f         *Fabconnect
	requestID string
	done      chan struct{}
	status    *ledger.CommitStatus
}

func (fc *fabCommit) TransactionID() string {
	select {
	case <-fc.done:
		return fc.status.TransactionID
	default:
		return fc.requestID
	}
}

// Result is empty, as fabconnect does not return the endorsement result for async submissions
func (fc *fabCommit) Result() []byte {
	return []byte{}
}

func (fc *fabCommit) Status(ctx context.Context) (*ledger.CommitStatus, error) {
	if item := fc.f.receipts.Get(fc.requestID); item != nil && !item.Expired() {
		return item.Value().(*ledger.CommitStatus), nil
	}
	select {
	case <-fc.done:
		return fc.status, nil
	case <-ctx.Done():
		return nil, i18n.NewError(ctx, i18n.MsgCommitWaitTimeout, fc.requestID)
	case <-fc.f.closed:
		return nil, i18n.NewError(ctx, i18n.MsgLedgerStopped)
	}
}
