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

package apiserver

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/pkg/pltypes"
)

const (
	// HTTPConfAddress the local address to listen on
	HTTPConfAddress = "address"
	// HTTPConfPublicURL the public address advertised in the swagger
	HTTPConfPublicURL = "publicURL"
	// HTTPConfPort the local port to listen on for HTTP connections
	HTTPConfPort = "port"
	// HTTPConfReadTimeout the read timeout for the HTTP server
	HTTPConfReadTimeout = "readTimeout"
	// HTTPConfWriteTimeout the write timeout for the HTTP server
	HTTPConfWriteTimeout = "writeTimeout"
	// HTTPConfTLSCAFile the CA used to verify client certificates
	HTTPConfTLSCAFile = "tls.caFile"
	// HTTPConfTLSCertFile the TLS certificate file for the HTTP server
	HTTPConfTLSCertFile = "tls.certFile"
	// HTTPConfTLSClientAuth whether the HTTP server requires a mutual TLS connection
	HTTPConfTLSClientAuth = "tls.clientAuth"
	// HTTPConfTLSEnabled whether TLS is enabled for the HTTP server
	HTTPConfTLSEnabled = "tls.enabled"
	// HTTPConfTLSKeyFile the private key file for TLS on the server
	HTTPConfTLSKeyFile = "tls.keyFile"
)

// httpServer is one listener of the product ledger: the REST API, or the metrics endpoint
type httpServer struct {
	name            string
	s               *http.Server
	l               net.Listener
	conf            config.Prefix
	onClose         chan error
	shutdownTimeout time.Duration
}

func initHTTPConfPrefx(prefix config.Prefix, defaultPort int) {
	prefix.AddKnownKey(HTTPConfAddress, "127.0.0.1")
	prefix.AddKnownKey(HTTPConfPublicURL)
	prefix.AddKnownKey(HTTPConfPort, defaultPort)
	prefix.AddKnownKey(HTTPConfReadTimeout, "15s")
	prefix.AddKnownKey(HTTPConfWriteTimeout, "15s")
	prefix.AddKnownKey(HTTPConfTLSCAFile)
	prefix.AddKnownKey(HTTPConfTLSCertFile)
	prefix.AddKnownKey(HTTPConfTLSClientAuth)
	prefix.AddKnownKey(HTTPConfTLSEnabled, false)
	prefix.AddKnownKey(HTTPConfTLSKeyFile)
}

func newHTTPServer(ctx context.Context, name string, handler http.Handler, onClose chan error, conf config.Prefix) (hs *httpServer, err error) {
	ctx = log.WithLogField(ctx, "httpserver", name)
	hs = &httpServer{
		name:            name,
		onClose:         onClose,
		conf:            conf,
		shutdownTimeout: config.GetDuration(config.APIShutdownTimeout),
	}
	// TLS material is loaded before listening, so a bad certificate fails startup
	tlsConfig, err := hs.tlsConfig(ctx)
	if err != nil {
		return nil, err
	}
	if hs.l, err = hs.createListener(ctx); err != nil {
		return nil, err
	}
	hs.s = &http.Server{
		Handler:      handler,
		WriteTimeout: conf.GetDuration(HTTPConfWriteTimeout),
		ReadTimeout:  conf.GetDuration(HTTPConfReadTimeout),
		TLSConfig:    tlsConfig,
		ConnContext: func(newCtx context.Context, c net.Conn) context.Context {
			l := log.L(ctx).WithField("req", pltypes.ShortID())
			l.Debugf("New HTTP connection: remote=%s local=%s", c.RemoteAddr(), c.LocalAddr())
			return log.WithLogger(newCtx, l)
		},
	}
	return hs, nil
}

func (hs *httpServer) createListener(ctx context.Context) (net.Listener, error) {
	listenAddr := fmt.Sprintf("%s:%d", hs.conf.GetString(HTTPConfAddress), hs.conf.GetUint(HTTPConfPort))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgAPIServerStartFailed, listenAddr, err)
	}
	log.L(ctx).Infof("%s listening on HTTP %s", hs.name, listener.Addr())
	return listener, err
}

// tlsConfig returns nil when TLS is disabled
func (hs *httpServer) tlsConfig(ctx context.Context) (*tls.Config, error) {
	if !hs.conf.GetBool(HTTPConfTLSEnabled) {
		return nil, nil
	}
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		ClientAuth: tls.NoClientCert,
	}

	if caFile := hs.conf.GetString(HTTPConfTLSCAFile); caFile != "" {
		caBytes, err := ioutil.ReadFile(caFile)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgTLSConfigFailed)
		}
		tlsConfig.ClientCAs = x509.NewCertPool()
		if !tlsConfig.ClientCAs.AppendCertsFromPEM(caBytes) {
			return nil, i18n.NewError(ctx, i18n.MsgInvalidCAFile)
		}
	}
	if hs.conf.GetBool(HTTPConfTLSClientAuth) {
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}

	cert, err := tls.LoadX509KeyPair(hs.conf.GetString(HTTPConfTLSCertFile), hs.conf.GetString(HTTPConfTLSKeyFile))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgTLSConfigFailed)
	}
	tlsConfig.Certificates = []tls.Certificate{cert}
	return tlsConfig, nil
}

func (hs *httpServer) serveHTTP(ctx context.Context) {
	ctx = log.WithLogField(ctx, "httpserver", hs.name)
	serverEnded := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("%s server context cancelled - shutting down", hs.name)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), hs.shutdownTimeout)
			defer cancel()
			if err := hs.s.Shutdown(shutdownCtx); err != nil {
				log.L(ctx).Warnf("%s server did not drain within %s: %s", hs.name, hs.shutdownTimeout, err)
				_ = hs.s.Close()
			}
		case <-serverEnded:
			return
		}
	}()

	var err error
	if hs.s.TLSConfig != nil {
		// certificates are already in the TLS config
		err = hs.s.ServeTLS(hs.l, "", "")
	} else {
		err = hs.s.Serve(hs.l)
	}
	if err == http.ErrServerClosed {
		err = nil
	}
	close(serverEnded)
	log.L(ctx).Infof("%s server complete", hs.name)

	hs.onClose <- err
}
