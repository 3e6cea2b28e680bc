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

package restclient

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/pkg/pltypes"
)

type ledgerReqKey struct{}

// ledgerReq tracks a single logical request to the ledger connector, across retries
type ledgerReq struct {
	id       string
	start    time.Time
	attempts int
}

// retryableStatus is the set of responses that mean the connector never
// processed the request. Anything else, including a 500 carrying a chaincode
// error, may already have been submitted for ordering and is not resent.
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:    true,
	http.StatusBadGateway:         true,
	http.StatusServiceUnavailable: true,
	http.StatusGatewayTimeout:     true,
}

func shouldRetry(r *resty.Response, err error) bool {
	if err != nil {
		// transport failure before a response
		return r == nil || r.RawResponse == nil
	}
	return r != nil && retryableStatus[r.StatusCode()]
}

func onBeforeRequest(ctx context.Context, baseURL string) resty.RequestMiddleware {
	return func(c *resty.Client, req *resty.Request) error {
		rctx := req.Context()
		if rctx.Value(ledgerReqKey{}) == nil {
			lr := &ledgerReq{id: pltypes.ShortID(), start: time.Now()}
			rctx = context.WithValue(rctx, ledgerReqKey{}, lr)
			rctx = log.WithLogger(rctx, log.L(ctx).WithField("lreq", lr.id))
			req.SetContext(rctx)
		}
		log.L(rctx).Infof("==> %s %s%s", req.Method, baseURL, req.URL)
		return nil
	}
}

func onAfterResponse(c *resty.Client, resp *resty.Response) error {
	if resp == nil || resp.Request == nil {
		return nil
	}
	rctx := resp.Request.Context()
	if lr, ok := rctx.Value(ledgerReqKey{}).(*ledgerReq); ok {
		elapsed := float64(time.Since(lr.start)) / float64(time.Millisecond)
		log.L(rctx).Infof("<== %s %s [%d] (%.2fms)", resp.Request.Method, resp.Request.URL, resp.StatusCode(), elapsed)
	}
	return nil
}

// New creates a Resty client for a ledger connector, from the static configuration
// under the given plugin prefix. The log fields of ctx (such as the ledger name)
// are carried onto every request.
func New(ctx context.Context, staticConfig config.Prefix) *resty.Client {
	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: staticConfig.GetInt(HTTPConfigMaxIdleConnsPer),
		},
	})

	baseURL := strings.TrimSuffix(staticConfig.GetString(HTTPConfigURL), "/")
	if baseURL != "" {
		client.SetHostURL(baseURL)
		log.L(ctx).Debugf("Created REST client to %s", baseURL)
	}
	client.SetTimeout(staticConfig.GetDuration(HTTPConfigRequestTimeout))
	client.OnBeforeRequest(onBeforeRequest(ctx, baseURL))
	client.OnAfterResponse(onAfterResponse)

	for k, v := range staticConfig.GetObject(HTTPConfigHeaders) {
		if vs, ok := v.(string); ok {
			client.SetHeader(k, vs)
		}
	}
	authUsername := staticConfig.GetString(HTTPConfigAuthUsername)
	authPassword := staticConfig.GetString(HTTPConfigAuthPassword)
	if authUsername != "" && authPassword != "" {
		client.SetBasicAuth(authUsername, authPassword)
	}

	if staticConfig.GetBool(HTTPConfigRetryEnabled) {
		retryCount := staticConfig.GetInt(HTTPConfigRetryCount)
		client.
			SetRetryCount(retryCount).
			SetRetryWaitTime(staticConfig.GetDuration(HTTPConfigRetryInitDelay)).
			SetRetryMaxWaitTime(staticConfig.GetDuration(HTTPConfigRetryMaxDelay)).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				if !shouldRetry(r, err) {
					return false
				}
				if r != nil && r.Request != nil {
					rctx := r.Request.Context()
					if lr, ok := rctx.Value(ledgerReqKey{}).(*ledgerReq); ok {
						lr.attempts++
						log.L(rctx).Infof("retry %d/%d status=%d", lr.attempts, retryCount, r.StatusCode())
					}
				}
				return true
			})
	}

	return client
}

// WrapRestErr builds an error from a failed response, including a limited portion of the response body
func WrapRestErr(ctx context.Context, res *resty.Response, err error, key i18n.MessageKey) error {
	var respData string
	if res != nil {
		if res.RawBody() != nil {
			defer func() { _ = res.RawBody().Close() }()
			if r, err := ioutil.ReadAll(res.RawBody()); err == nil {
				respData = string(r)
			}
		}
		if respData == "" {
			respData = res.String()
		}
		if len(respData) > 256 {
			respData = respData[0:256] + "..."
		}
	}
	if err != nil {
		return i18n.WrapError(ctx, err, key, respData)
	}
	return i18n.NewError(ctx, key, respData)
}
