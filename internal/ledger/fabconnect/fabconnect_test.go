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
	"errors"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/restclient"
	"github.com/kaleido-io/productledger/internal/wsclient"
	"github.com/kaleido-io/productledger/mocks/wsmocks"
	"github.com/kaleido-io/productledger/pkg/ledger"
	"github.com/karlseguin/ccache"
	"github.com/stretchr/testify/assert"
)

var utConfPrefix = config.NewPluginConfig("fabconnect_unit_tests")

func resetConf() {
	config.Reset()
	f := &Fabconnect{}
	f.InitPrefix(utConfPrefix)
}

func newTestFabconnect() (*Fabconnect, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	wsm := &wsmocks.WSClient{}
	r := make(chan []byte)
	wsm.On("Receive").Return((<-chan []byte)(r))
	wsm.On("Close").Return()
	f := &Fabconnect{
		ctx:          ctx,
		cancelCtx:    cancel,
		channel:      "mychannel",
		signer:       "user1",
		capabilities: &ledger.Capabilities{AsyncCommit: true},
		client:       resty.New().SetHostURL("http://localhost:12345"),
		wsconn:       wsm,
		receipts:     ccache.New(ccache.Configure()),
		receiptTTL:   time.Minute,
		pending:      make(map[string]*fabCommit),
		closed:       make(chan struct{}),
	}
	go f.eventLoop()
	httpmock.ActivateNonDefault(f.client.GetClient())
	return f, func() {
		httpmock.DeactivateAndReset()
		f.Close()
	}
}

func jsonResponder(status int, body string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		res := httpmock.NewStringResponse(status, body)
		res.Header.Set("Content-Type", "application/json")
		return res, nil
	}
}

func testContract(t *testing.T, f *Fabconnect) ledger.Contract {
	c, err := f.Contract(context.Background(), "product")
	assert.NoError(t, err)
	return c
}

func TestName(t *testing.T) {
	f := &Fabconnect{}
	assert.Equal(t, "fabconnect", f.Name())
}

func TestInitMissingURL(t *testing.T) {
	resetConf()
	f := &Fabconnect{}
	err := f.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "PL10111.*url", err)
}

func TestInitMissingChannel(t *testing.T) {
	resetConf()
	utConfPrefix.Set(restclient.HTTPConfigURL, "http://localhost:12345")
	f := &Fabconnect{}
	err := f.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "PL10111.*channel", err)
}

func TestInitMissingSigner(t *testing.T) {
	resetConf()
	utConfPrefix.Set(restclient.HTTPConfigURL, "http://localhost:12345")
	utConfPrefix.Set(FabconnectConfigChannel, "mychannel")
	f := &Fabconnect{}
	err := f.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "PL10111.*signer", err)
}

func TestInitBadWebsocketURL(t *testing.T) {
	resetConf()
	utConfPrefix.Set(restclient.HTTPConfigURL, "!!!://")
	utConfPrefix.Set(FabconnectConfigChannel, "mychannel")
	utConfPrefix.Set(FabconnectConfigSigner, "user1")
	f := &Fabconnect{}
	err := f.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "PL10116", err)
}

func TestSubmitAsyncWithReceiptE2E(t *testing.T) {
	toServer, fromServer, wsURL, done := wsclient.NewTestWSServer(nil)
	defer done()

	resetConf()
	utConfPrefix.Set(restclient.HTTPConfigURL, wsURL)
	utConfPrefix.Set(FabconnectConfigChannel, "mychannel")
	utConfPrefix.Set(FabconnectConfigSigner, "user1")
	utConfPrefix.Set(wsclient.WSConfigKeyInitialConnectAttempts, 1)

	f := &Fabconnect{}
	err := f.Init(context.Background(), utConfPrefix)
	assert.NoError(t, err)
	defer f.Close()
	assert.True(t, f.Capabilities().AsyncCommit)

	httpmock.ActivateNonDefault(f.client.GetClient())
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder("POST", wsURL+"/transactions",
		func(req *http.Request) (*http.Response, error) {
			assert.Empty(t, req.URL.Query().Get("fly-sync"))
			var body fabTxInput
			b, _ := ioutil.ReadAll(req.Body)
			err := json.Unmarshal(b, &body)
			assert.NoError(t, err)
			assert.Equal(t, "SendTransaction", body.Headers.Type)
			assert.Equal(t, "user1", body.Headers.Signer)
			assert.Equal(t, "mychannel", body.Headers.Channel)
			assert.Equal(t, "product", body.Headers.Chaincode)
			assert.NotEmpty(t, body.Headers.ID)
			assert.Equal(t, "UpdateProduct", body.Func)
			assert.Equal(t, []string{"asset1", "Updated", "Desc", "Shipped"}, body.Args)
			return httpmock.NewJsonResponse(202, &fabAsyncResponse{ID: body.Headers.ID, Sent: true})
		})

	err = f.Start()
	assert.NoError(t, err)
	assert.Equal(t, `{"type":"listenreplies"}`, <-toServer)

	c := testContract(t, f)
	commit, err := c.SubmitAsync(context.Background(), "UpdateProduct", "asset1", "Updated", "Desc", "Shipped")
	assert.NoError(t, err)
	assert.Empty(t, commit.Result())
	requestID := commit.TransactionID()

	fromServer <- `{
		"headers": {"requestId": "` + requestID + `", "type": "TransactionSuccess"},
		"transactionId": "tx12345",
		"blockNumber": 10
	}`

	status, err := commit.Status(context.Background())
	assert.NoError(t, err)
	assert.True(t, status.Successful)
	assert.Equal(t, ledger.StatusValid, status.Code)
	assert.Equal(t, "tx12345", status.TransactionID)
	assert.Equal(t, uint64(10), status.BlockNumber)
	assert.Equal(t, "tx12345", commit.TransactionID())

	status, err = commit.Status(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "tx12345", status.TransactionID)
}

func TestSubmitAsyncFailedReceipt(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/transactions",
		jsonResponder(202, `{"id":"abc","sent":true}`))

	commit, err := testContract(t, f).SubmitAsync(context.Background(), "CreateProduct", "asset7", "n", "d", "s")
	assert.NoError(t, err)

	f.handleReceipt(context.Background(), map[string]interface{}{
		"headers": map[string]interface{}{
			"requestId": commit.TransactionID(),
			"type":      "TransactionFailure",
		},
		"transactionID": "tx999",
		"errorMessage":  "Transaction tx999 failed with code MVCC_READ_CONFLICT",
	})

	status, err := commit.Status(context.Background())
	assert.NoError(t, err)
	assert.False(t, status.Successful)
	assert.Equal(t, ledger.StatusMVCCReadConflict, status.Code)
	assert.Equal(t, "tx999", status.TransactionID)
	assert.Regexp(t, "MVCC_READ_CONFLICT", status.Message)
}

func TestSubmitAsyncNotAccepted(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/transactions",
		jsonResponder(200, `{"sent":false}`))

	_, err := testContract(t, f).SubmitAsync(context.Background(), "CreateProduct", "asset7", "n", "d", "s")
	assert.Regexp(t, "PL10143.*CreateProduct", err)
	assert.Empty(t, f.pending)
}

func TestSubmitAsyncRESTError(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/transactions",
		jsonResponder(500, `{"error":"signer unknown"}`))

	_, err := testContract(t, f).SubmitAsync(context.Background(), "CreateProduct", "asset7", "n", "d", "s")
	var txErr *ledger.TransactionError
	assert.True(t, errors.As(err, &txErr))
	assert.Equal(t, []string{"signer unknown"}, txErr.Details)
	assert.Regexp(t, "PL10118", txErr.Message)
	assert.Empty(t, f.pending)
}

func TestSubmitTransactionSync(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/transactions",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "true", req.URL.Query().Get("fly-sync"))
			res := httpmock.NewStringResponse(200, `{
				"headers": {"requestId": "abc", "type": "TransactionSuccess"},
				"transactionID": "tx1",
				"blockNumber": 3,
				"result": {"Status":"Order Created","Name":"Example Product1","ID":"asset1","Description":"Example product description"}
			}`)
			res.Header.Set("Content-Type", "application/json")
			return res, nil
		})

	res, err := testContract(t, f).SubmitTransaction(context.Background(), "ReadProduct", "asset1")
	assert.NoError(t, err)
	assert.Equal(t, `{"Description":"Example product description","ID":"asset1","Name":"Example Product1","Status":"Order Created"}`, string(res))
}

func TestSubmitTransactionSyncFailedCommit(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/transactions",
		jsonResponder(200, `{
			"headers": {"requestId": "abc", "type": "TransactionFailure"},
			"transactionID": "tx1",
			"status": "PHANTOM_READ_CONFLICT",
			"errorMessage": "phantom read"
		}`))

	_, err := testContract(t, f).SubmitTransaction(context.Background(), "InitLedger")
	var txErr *ledger.TransactionError
	assert.True(t, errors.As(err, &txErr))
	assert.Regexp(t, "PL10120.*tx1.*PHANTOM_READ_CONFLICT", txErr.Message)
	assert.Equal(t, []string{"phantom read"}, txErr.Details)
}

func TestSubmitTransactionChaincodeError(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/transactions",
		jsonResponder(500, `{"error":"the asset asset9 does not exist"}`))

	_, err := testContract(t, f).SubmitTransaction(context.Background(), "UpdateProduct", "asset9", "n", "d", "s")
	var txErr *ledger.TransactionError
	assert.True(t, errors.As(err, &txErr))
	assert.Equal(t, []string{"the asset asset9 does not exist"}, txErr.Details)
	assert.Regexp(t, "PL10112", txErr.Cause)
}

func TestSubmitTransactionNetworkError(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	_, err := testContract(t, f).SubmitTransaction(context.Background(), "InitLedger")
	assert.Regexp(t, "PL10112", err)
	var txErr *ledger.TransactionError
	assert.False(t, errors.As(err, &txErr))
}

func TestEvaluateTransactionResults(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	results := []string{
		`{"result":"Order Created"}`,
		`{"result":false}`,
		`{"result":null}`,
		`{"result":[{"b":1.50,"a":12345678901234567890}]}`,
	}
	expected := []string{
		`Order Created`,
		`false`,
		``,
		`[{"a":12345678901234567890,"b":1.50}]`,
	}
	call := 0
	httpmock.RegisterResponder("POST", "http://localhost:12345/query",
		func(req *http.Request) (*http.Response, error) {
			var body fabTxInput
			b, _ := ioutil.ReadAll(req.Body)
			err := json.Unmarshal(b, &body)
			assert.NoError(t, err)
			assert.True(t, body.StrongRead)
			assert.Empty(t, body.Headers.Type)
			assert.Equal(t, "product", body.Headers.Chaincode)
			res := httpmock.NewStringResponse(200, results[call])
			res.Header.Set("Content-Type", "application/json")
			call++
			return res, nil
		})

	c := testContract(t, f)
	for _, e := range expected {
		res, err := c.EvaluateTransaction(context.Background(), "GetAllProducts")
		assert.NoError(t, err)
		assert.Equal(t, e, string(res))
	}
}

func TestEvaluateTransactionError(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/query",
		jsonResponder(404, `{"error":"the asset asset9 does not exist"}`))

	_, err := testContract(t, f).EvaluateTransaction(context.Background(), "ReadProduct", "asset9")
	var txErr *ledger.TransactionError
	assert.True(t, errors.As(err, &txErr))
	assert.Equal(t, []string{"the asset asset9 does not exist"}, txErr.Details)
}

func TestStatusTimeout(t *testing.T) {
	f, done := newTestFabconnect()
	defer done()

	fc := f.addPending("req1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fc.Status(ctx)
	assert.Regexp(t, "PL10121.*req1", err)
	assert.Equal(t, "req1", fc.TransactionID())
}

func TestStatusAfterClose(t *testing.T) {
	f, done := newTestFabconnect()
	fc := f.addPending("req1")
	done()
	_, err := fc.Status(context.Background())
	assert.Regexp(t, "PL10136", err)
}

func TestEventLoopBadMessages(t *testing.T) {
	wsm := &wsmocks.WSClient{}
	r := make(chan []byte)
	wsm.On("Receive").Return((<-chan []byte)(r))
	wsm.On("Close").Return()
	f := &Fabconnect{
		ctx:     context.Background(),
		wsconn:  wsm,
		pending: make(map[string]*fabCommit),
		closed:  make(chan struct{}),
	}
	go f.eventLoop()
	r <- []byte(`!json`)
	r <- []byte(`[]`)
	r <- []byte(`{"headers":{}}`)
	close(r)
	<-f.closed
	wsm.AssertExpectations(t)
}

func TestAfterConnectSendsListenReplies(t *testing.T) {
	f := &Fabconnect{}
	wsm := &wsmocks.WSClient{}
	wsm.On("Send", context.Background(), []byte(`{"type":"listenreplies"}`)).Return(nil)
	err := f.afterConnect(context.Background(), wsm)
	assert.NoError(t, err)
	wsm.AssertExpectations(t)
}

func TestFailureCode(t *testing.T) {
	assert.Equal(t, ledger.StatusPhantomReadConflict, failureCode("PHANTOM_READ_CONFLICT", ""))
	assert.Equal(t, ledger.StatusEndorsementFailed, failureCode("", "ENDORSEMENT_POLICY_FAILURE for tx1"))
	assert.Equal(t, ledger.StatusInvalidOther, failureCode(ledger.StatusValid, "unknown"))
}
