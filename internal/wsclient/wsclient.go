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
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/internal/retry"
)

type WSConfig struct {
	HTTPURL                string
	WSKeyPath              string
	ReadBufferSize         int
	WriteBufferSize        int
	InitialDelay           time.Duration
	MaximumDelay           time.Duration
	InitialConnectAttempts int
	HeartbeatInterval      time.Duration
	AuthUsername           string
	AuthPassword           string
	HTTPHeaders            map[string]interface{}
}

// WSClient is a reconnecting websocket client. Messages passed to Send while the
// connection is down are delivered after reconnect.
type WSClient interface {
	Connect() error
	Receive() <-chan []byte
	Send(ctx context.Context, message []byte) error
	Close()
}

// WSPreConnectHandler is called on every connect, and can send messages on the new connection
// (such as a "listen" registration) before any other message is delivered
type WSPreConnectHandler func(ctx context.Context, w WSClient) error

type wsClient struct {
	ctx                  context.Context
	headers              http.Header
	url                  string
	initialRetryAttempts int
	wsdialer             *websocket.Dialer
	wsconn               *websocket.Conn
	retry                retry.Retry
	closed               bool
	closeMux             sync.Mutex
	receive              chan []byte
	send                 chan []byte
	sendDone             chan []byte
	closing              chan struct{}
	afterConnect         WSPreConnectHandler
	heartbeatInterval    time.Duration
}

// New creates a websocket client. Connect must be called to establish the connection.
func New(ctx context.Context, conf *WSConfig, afterConnect WSPreConnectHandler) (WSClient, error) {

	wsURL, err := buildWSUrl(conf)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgWSInvalidURL, conf.HTTPURL)
	}

	w := &wsClient{
		ctx: ctx,
		url: wsURL,
		wsdialer: &websocket.Dialer{
			ReadBufferSize:  conf.ReadBufferSize,
			WriteBufferSize: conf.WriteBufferSize,
		},
		retry: retry.Retry{
			InitialDelay: conf.InitialDelay,
			MaximumDelay: conf.MaximumDelay,
		},
		initialRetryAttempts: conf.InitialConnectAttempts,
		headers:              make(http.Header),
		receive:              make(chan []byte),
		send:                 make(chan []byte),
		closing:              make(chan struct{}),
		afterConnect:         afterConnect,
		heartbeatInterval:    conf.HeartbeatInterval,
	}
	for k, v := range conf.HTTPHeaders {
		if vs, ok := v.(string); ok {
			w.headers.Set(k, vs)
		}
	}
	if conf.AuthUsername != "" && conf.AuthPassword != "" {
		w.headers.Set("Authorization", fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", conf.AuthUsername, conf.AuthPassword)))))
	}

	return w, nil
}

// Connect makes the initial connection, retrying up to the configured number of attempts,
// then starts the receive loop which reconnects indefinitely until Close
func (w *wsClient) Connect() error {
	if err := w.connect(true); err != nil {
		return err
	}

	go w.receiveReconnectLoop()

	return nil
}

func (w *wsClient) Close() {
	w.closeMux.Lock()
	defer w.closeMux.Unlock()
	if !w.closed {
		w.closed = true
		close(w.closing)
		c := w.wsconn
		if c != nil {
			_ = c.Close()
		}
	}
}

func (w *wsClient) isClosed() bool {
	w.closeMux.Lock()
	defer w.closeMux.Unlock()
	return w.closed
}

// Receive returns the channel of inbound messages. It is closed when the client exits.
func (w *wsClient) Receive() <-chan []byte {
	return w.receive
}

func (w *wsClient) Send(ctx context.Context, message []byte) error {
	if w.isClosed() {
		return i18n.NewError(ctx, i18n.MsgWSClosing)
	}
	select {
	case w.send <- message:
		return nil
	case <-ctx.Done():
		return i18n.NewError(ctx, i18n.MsgWSSendTimedOut)
	case <-w.closing:
		return i18n.NewError(ctx, i18n.MsgWSClosing)
	}
}

func (w *wsClient) connect(initial bool) error {
	r := w.retry
	if initial {
		r.MaxAttempts = w.initialRetryAttempts
	}
	return r.Do(w.ctx, "websocket connect", func(attempt int) (retry bool, err error) {
		l := log.L(w.ctx)
		if w.isClosed() {
			return false, i18n.NewError(w.ctx, i18n.MsgWSClosing)
		}
		var res *http.Response
		w.wsconn, res, err = w.wsdialer.Dial(w.url, w.headers)
		if err != nil {
			var b []byte
			var status = -1
			if res != nil {
				b, _ = ioutil.ReadAll(res.Body)
				res.Body.Close()
				status = res.StatusCode
			}
			l.Warnf("WS %s connect attempt %d failed [%d]: %s", w.url, attempt, status, string(b))
			return true, i18n.WrapError(w.ctx, err, i18n.MsgWSConnectFailed)
		}
		if w.afterConnect != nil {
			if err = w.afterConnect(w.ctx, &directSender{conn: w.wsconn}); err != nil {
				_ = w.wsconn.Close()
				return true, err
			}
		}
		l.Infof("WS %s connected", w.url)
		return false, nil
	})
}

// directSender writes straight to a new connection, before the send loop is running
type directSender struct {
	conn *websocket.Conn
	WSClient
}

func (d *directSender) Send(ctx context.Context, message []byte) error {
	return d.conn.WriteMessage(websocket.TextMessage, message)
}

func (w *wsClient) readLoop() []byte {
	l := log.L(w.ctx)
	for {
		mt, message, err := w.wsconn.ReadMessage()

		// Check there's not a pending send message we need to return
		// before returning any error (do not block)
		select {
		case pendingMsg := <-w.sendDone:
			l.Debugf("WS %s closing reader after send error", w.url)
			return pendingMsg
		default:
		}

		if err != nil {
			l.Errorf("WS %s closed: %s", w.url, err)
			return nil
		}

		l.Tracef("WS %s read (mt=%d): %s", w.url, mt, message)
		select {
		case w.receive <- message:
		case <-w.closing:
			return nil
		}
	}
}

// sendLoop runs until the reader exits, the connection fails or the client closes.
// A message that could not be written is handed back on sendDone for the next connection.
func (w *wsClient) sendLoop(message []byte, receiverDone chan struct{}) {
	l := log.L(w.ctx)
	defer close(w.sendDone)

	var heartbeat <-chan time.Time
	if w.heartbeatInterval > 0 {
		ticker := time.NewTicker(w.heartbeatInterval)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		if message != nil {
			if err := w.wsconn.WriteMessage(websocket.TextMessage, message); err != nil {
				l.Errorf("WS %s send failed: %s", w.url, err)
				w.sendDone <- message
				return
			}
		}

		select {
		case message = <-w.send:
		case <-heartbeat:
			message = nil
			if err := w.wsconn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(w.heartbeatInterval)); err != nil {
				l.Errorf("WS %s heartbeat failed: %s", w.url, err)
				return
			}
		case <-receiverDone:
			l.Debugf("WS %s send loop exiting", w.url)
			return
		case <-w.closing:
			return
		}
	}
}

func (w *wsClient) receiveReconnectLoop() {
	l := log.L(w.ctx)
	defer close(w.receive)
	var pendingSend []byte
	for !w.isClosed() {
		// Start the sender, letting it close without blocking sending a notifiation on the sendDone
		w.sendDone = make(chan []byte, 1)
		receiverDone := make(chan struct{})
		go w.sendLoop(pendingSend, receiverDone)

		// Synchronously invoke the reader, as it's important we react immediately
		// to any error there.
		pendingSend = w.readLoop()
		close(receiverDone)

		// Ensure the connection is closed after the receiver exits
		err := w.wsconn.Close()
		if err != nil {
			l.Debugf("WS %s close failed: %s", w.url, err)
		}
		if unsent, ok := <-w.sendDone; ok && pendingSend == nil {
			pendingSend = unsent
		}
		w.sendDone = nil
		w.wsconn = nil

		if !w.isClosed() {
			if err = w.connect(false); err != nil {
				l.Debugf("WS %s exiting: %s", w.url, err)
				return
			}
		}
	}
}
