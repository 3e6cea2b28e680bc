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
	"net/url"
	"strings"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/restclient"
)

const (
	defaultInitialConnectAttempts = 5
	defaultBufferSize             = "16Kb"
	defaultHeartbeatInterval      = "30s"
)

const (
	WSConfigKeyWriteBufferSize        = "ws.writeBufferSize"
	WSConfigKeyReadBufferSize         = "ws.readBufferSize"
	WSConfigKeyInitialConnectAttempts = "ws.initialConnectAttempts"
	WSConfigKeyPath                   = "ws.path"
	WSConfigKeyHeartbeatInterval      = "ws.heartbeatInterval"
)

// InitPrefix ensures the prefix is initialized for HTTP too, as WS and HTTP
// share the same tree of configuration (and all the HTTP options apply to the initial upgrade)
func InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix)
	prefix.AddKnownKey(WSConfigKeyWriteBufferSize, defaultBufferSize)
	prefix.AddKnownKey(WSConfigKeyReadBufferSize, defaultBufferSize)
	prefix.AddKnownKey(WSConfigKeyInitialConnectAttempts, defaultInitialConnectAttempts)
	prefix.AddKnownKey(WSConfigKeyPath)
	prefix.AddKnownKey(WSConfigKeyHeartbeatInterval, defaultHeartbeatInterval)
}

// GenerateConfigFromPrefix builds the websocket configuration from the REST configuration of the
// same connector, switching the scheme of the URL to ws/wss
func GenerateConfigFromPrefix(prefix config.Prefix) *WSConfig {
	return &WSConfig{
		HTTPURL:                prefix.GetString(restclient.HTTPConfigURL),
		WSKeyPath:              prefix.GetString(WSConfigKeyPath),
		ReadBufferSize:         int(prefix.GetByteSize(WSConfigKeyReadBufferSize)),
		WriteBufferSize:        int(prefix.GetByteSize(WSConfigKeyWriteBufferSize)),
		InitialDelay:           prefix.GetDuration(restclient.HTTPConfigRetryInitDelay),
		MaximumDelay:           prefix.GetDuration(restclient.HTTPConfigRetryMaxDelay),
		InitialConnectAttempts: prefix.GetInt(WSConfigKeyInitialConnectAttempts),
		HeartbeatInterval:      prefix.GetDuration(WSConfigKeyHeartbeatInterval),
		AuthUsername:           prefix.GetString(restclient.HTTPConfigAuthUsername),
		AuthPassword:           prefix.GetString(restclient.HTTPConfigAuthPassword),
		HTTPHeaders:            prefix.GetObject(restclient.HTTPConfigHeaders),
	}
}

func buildWSUrl(conf *WSConfig) (string, error) {
	u, err := url.Parse(conf.HTTPURL)
	if err != nil {
		return "", err
	}
	if conf.WSKeyPath != "" {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(conf.WSKeyPath, "/")
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	return u.String(), nil
}
