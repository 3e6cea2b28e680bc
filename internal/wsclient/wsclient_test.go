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

package wsclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/restclient"
	"github.com/kaleido-io/productledger/internal/retry"
	"github.com/stretchr/testify/assert"
)

var utConfPrefix = config.NewPluginConfig("ws_unit_tests")

type testServer struct {
	svr        *httptest.Server
	toServer   chan string
	fromServer chan string
	connects   chan *websocket.Conn
}

func newTestServer() *testServer {
	ts := &testServer{
		toServer:   make(chan string, 10),
		fromServer: make(chan string, 10),
		connects:   make(chan *websocket.Conn, 10),
	}
	upgrader := &websocket.Upgrader{}
	ts.svr = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ts.connects <- conn
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				_, b, err := conn.ReadMessage()
				if err != nil {
					return
				}
				ts.toServer <- string(b)
			}
		}()
		for {
			select {
			case msg := <-ts.fromServer:
				_ = conn.WriteMessage(websocket.TextMessage, []byte(msg))
			case <-closed:
				return
			}
		}
	}))
	return ts
}

func (ts *testServer) url() string {
	return fmt.Sprintf("http://%s", ts.svr.Listener.Addr())
}

func TestWSClientE2E(t *testing.T) {

	ts := newTestServer()
	defer ts.svr.Close()

	wsClient, err := New(context.Background(), &WSConfig{
		HTTPURL:   ts.url(),
		WSKeyPath: "/ws",
	}, func(ctx context.Context, w WSClient) error {
		return w.Send(ctx, []byte(`{"type":"listen","topic":"topic1"}`))
	})
	assert.NoError(t, err)
	err = wsClient.Connect()
	assert.NoError(t, err)

	assert.Equal(t, `{"type":"listen","topic":"topic1"}`, <-ts.toServer)

	ts.fromServer <- `{"test":"message"}`
	assert.Equal(t, `{"test":"message"}`, string(<-wsClient.Receive()))

	err = wsClient.Send(context.Background(), []byte(`{"type":"ack","topic":"topic1"}`))
	assert.NoError(t, err)
	assert.Equal(t, `{"type":"ack","topic":"topic1"}`, <-ts.toServer)

	wsClient.Close()
	wsClient.Close() // idempotent
}

func TestWSClientReconnect(t *testing.T) {

	ts := newTestServer()
	defer ts.svr.Close()

	wsClient, err := New(context.Background(), &WSConfig{
		HTTPURL:      ts.url(),
		InitialDelay: time.Millisecond,
		MaximumDelay: time.Millisecond,
	}, func(ctx context.Context, w WSClient) error {
		return w.Send(ctx, []byte(`listen`))
	})
	assert.NoError(t, err)
	err = wsClient.Connect()
	assert.NoError(t, err)
	defer wsClient.Close()

	conn1 := <-ts.connects
	assert.Equal(t, `listen`, <-ts.toServer)
	conn1.Close()

	<-ts.connects
	assert.Equal(t, `listen`, <-ts.toServer)
}

func TestWSFailStartupHttp500(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(
		func(rw http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "custom value", r.Header.Get("Custom-Header"))
			assert.Equal(t, "Basic dXNlcjpwYXNz", r.Header.Get("Authorization"))
			rw.WriteHeader(500)
			rw.Write([]byte(`{"error": "pop"}`))
		},
	))
	defer svr.Close()

	w, err := New(context.Background(), &WSConfig{
		HTTPURL: fmt.Sprintf("http://%s", svr.Listener.Addr()),
		HTTPHeaders: map[string]interface{}{
			"custom-header": "custom value",
		},
		AuthUsername:           "user",
		AuthPassword:           "pass",
		InitialConnectAttempts: 1,
	}, nil)
	assert.NoError(t, err)
	err = w.Connect()
	assert.Regexp(t, "PL10115", err)
}

func TestWSFailStartupAfterConnectHandler(t *testing.T) {
	ts := newTestServer()
	defer ts.svr.Close()

	w, err := New(context.Background(), &WSConfig{
		HTTPURL:                ts.url(),
		InitialConnectAttempts: 2,
		InitialDelay:           time.Millisecond,
	}, func(ctx context.Context, w WSClient) error {
		return fmt.Errorf("pop")
	})
	assert.NoError(t, err)
	err = w.Connect()
	assert.Regexp(t, "pop", err)
}

func TestWSBadURL(t *testing.T) {
	_, err := New(context.Background(), &WSConfig{
		HTTPURL: ":::",
	}, nil)
	assert.Regexp(t, "PL10116", err)
}

func TestWSSendClosed(t *testing.T) {

	ts := newTestServer()
	defer ts.svr.Close()

	w, err := New(context.Background(), &WSConfig{
		HTTPURL: ts.url(),
	}, nil)
	assert.NoError(t, err)
	err = w.Connect()
	assert.NoError(t, err)
	w.Close()

	err = w.Send(context.Background(), []byte(`sent after close`))
	assert.Regexp(t, "PL10114", err)
}

func TestWSSendCancelledContext(t *testing.T) {

	w := &wsClient{
		send:    make(chan []byte),
		closing: make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := w.Send(ctx, []byte(`sent after close`))
	assert.Regexp(t, "PL10113", err)
}

func TestWSConnectClosed(t *testing.T) {

	w := &wsClient{
		ctx:    context.Background(),
		closed: true,
		retry:  retry.Retry{},
	}

	err := w.connect(false)
	assert.Regexp(t, "PL10114", err)
}

func TestWSSendFailPendingMessage(t *testing.T) {

	ts := newTestServer()
	defer ts.svr.Close()

	wsconn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s", ts.svr.Listener.Addr()), nil)
	assert.NoError(t, err)
	wsconn.Close()
	w := &wsClient{
		ctx:      context.Background(),
		receive:  make(chan []byte),
		send:     make(chan []byte),
		closing:  make(chan struct{}),
		sendDone: make(chan []byte, 1),
		wsconn:   wsconn,
	}

	w.sendLoop([]byte(`pending message`), make(chan struct{}))
	msg := <-w.sendDone
	assert.Equal(t, `pending message`, string(msg))
}

func TestWSSendLoopExitsWithReceiver(t *testing.T) {

	w := &wsClient{
		ctx:      context.Background(),
		send:     make(chan []byte),
		closing:  make(chan struct{}),
		sendDone: make(chan []byte, 1),
	}
	receiverDone := make(chan struct{})
	close(receiverDone)

	w.sendLoop(nil, receiverDone)
	_, ok := <-w.sendDone
	assert.False(t, ok)
}

func TestWSClientSendAfterReconnect(t *testing.T) {

	ts := newTestServer()
	defer ts.svr.Close()

	wsClient, err := New(context.Background(), &WSConfig{
		HTTPURL:      ts.url(),
		InitialDelay: time.Millisecond,
		MaximumDelay: time.Millisecond,
	}, nil)
	assert.NoError(t, err)
	err = wsClient.Connect()
	assert.NoError(t, err)
	defer wsClient.Close()

	conn1 := <-ts.connects
	conn1.Close()
	<-ts.connects

	err = wsClient.Send(context.Background(), []byte(`after reconnect`))
	assert.NoError(t, err)
	assert.Equal(t, `after reconnect`, <-ts.toServer)
}

func TestWSConfigGeneration(t *testing.T) {
	config.Reset()
	InitPrefix(utConfPrefix)

	utConfPrefix.Set(restclient.HTTPConfigURL, "https://test:12345")
	utConfPrefix.Set(restclient.HTTPConfigHeaders, map[string]interface{}{
		"custom-header": "custom value",
	})
	utConfPrefix.Set(restclient.HTTPConfigAuthUsername, "user")
	utConfPrefix.Set(restclient.HTTPConfigAuthPassword, "pass")
	utConfPrefix.Set(restclient.HTTPConfigRetryInitDelay, 1)
	utConfPrefix.Set(restclient.HTTPConfigRetryMaxDelay, 1)
	utConfPrefix.Set(WSConfigKeyReadBufferSize, "1kb")
	utConfPrefix.Set(WSConfigKeyWriteBufferSize, "1kb")
	utConfPrefix.Set(WSConfigKeyInitialConnectAttempts, 1)
	utConfPrefix.Set(WSConfigKeyPath, "/websocket")

	wsConfig := GenerateConfigFromPrefix(utConfPrefix)

	assert.Equal(t, "https://test:12345", wsConfig.HTTPURL)
	assert.Equal(t, "user", wsConfig.AuthUsername)
	assert.Equal(t, "pass", wsConfig.AuthPassword)
	assert.Equal(t, time.Millisecond, wsConfig.InitialDelay)
	assert.Equal(t, time.Millisecond, wsConfig.MaximumDelay)
	assert.Equal(t, 1, wsConfig.InitialConnectAttempts)
	assert.Equal(t, "/websocket", wsConfig.WSKeyPath)
	assert.Equal(t, "custom value", wsConfig.HTTPHeaders["custom-header"])
	assert.Equal(t, 1024, wsConfig.ReadBufferSize)
	assert.Equal(t, 1024, wsConfig.WriteBufferSize)
	assert.Equal(t, 30*time.Second, wsConfig.HeartbeatInterval)

	u, err := buildWSUrl(wsConfig)
	assert.NoError(t, err)
	assert.Equal(t, "wss://test:12345/websocket", u)
}
