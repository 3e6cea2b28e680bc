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
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/stretchr/testify/assert"
)

var utConfPrefix = config.NewPluginConfig("http_unit_tests")

func resetConf() {
	config.Reset()
	InitPrefix(utConfPrefix)
}

func TestRequestOK(t *testing.T) {
	resetConf()
	utConfPrefix.Set(HTTPConfigURL, "http://localhost:12345/")
	utConfPrefix.Set(HTTPConfigHeaders, map[string]interface{}{
		"someheader": "headervalue",
	})
	utConfPrefix.Set(HTTPConfigAuthUsername, "user")
	utConfPrefix.Set(HTTPConfigAuthPassword, "pass")
	utConfPrefix.Set(HTTPConfigRetryEnabled, true)

	c := New(context.Background(), utConfPrefix)
	httpmock.ActivateNonDefault(c.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://localhost:12345/test",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "headervalue", req.Header.Get("someheader"))
			assert.Equal(t, "Basic dXNlcjpwYXNz", req.Header.Get("Authorization"))
			return httpmock.NewStringResponder(200, `{"some": "data"}`)(req)
		})

	resp, err := c.R().Get("/test")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, `{"some": "data"}`, resp.String())

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestRequestTimeoutConfigured(t *testing.T) {
	resetConf()
	utConfPrefix.Set(HTTPConfigRequestTimeout, "5s")
	c := New(context.Background(), utConfPrefix)
	assert.Equal(t, 5*time.Second, c.GetClient().Timeout)
}

func TestRequestRetryUnavailable(t *testing.T) {

	ctx := context.Background()

	resetConf()
	utConfPrefix.Set(HTTPConfigURL, "http://localhost:12345")
	utConfPrefix.Set(HTTPConfigRetryEnabled, true)
	utConfPrefix.Set(HTTPConfigRetryInitDelay, 1)
	utConfPrefix.Set(HTTPConfigRetryMaxDelay, 1)

	c := New(ctx, utConfPrefix)
	httpmock.ActivateNonDefault(c.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://localhost:12345/test",
		httpmock.NewStringResponder(503, `{"message": "pop"}`))

	resp, err := c.R().Get("/test")
	assert.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode())
	assert.Equal(t, 6, httpmock.GetTotalCallCount())

	err = WrapRestErr(ctx, resp, err, i18n.MsgFabconnectRESTErr)
	assert.Regexp(t, "PL10112.*pop", err)
}

func TestRequestNoRetryOnChaincodeError(t *testing.T) {
	resetConf()
	utConfPrefix.Set(HTTPConfigURL, "http://localhost:12345")
	utConfPrefix.Set(HTTPConfigRetryEnabled, true)
	utConfPrefix.Set(HTTPConfigRetryInitDelay, 1)
	utConfPrefix.Set(HTTPConfigRetryMaxDelay, 1)

	c := New(context.Background(), utConfPrefix)
	httpmock.ActivateNonDefault(c.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "http://localhost:12345/transactions",
		httpmock.NewStringResponder(500, `{"error": "the asset asset1 already exists"}`))

	resp, err := c.R().Post("/transactions")
	assert.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode())
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, shouldRetry(nil, fmt.Errorf("pop")))
	assert.True(t, shouldRetry(&resty.Response{}, fmt.Errorf("pop")))
	assert.False(t, shouldRetry(nil, nil))
	assert.True(t, shouldRetry(&resty.Response{RawResponse: &http.Response{StatusCode: 429}}, nil))
	assert.True(t, shouldRetry(&resty.Response{RawResponse: &http.Response{StatusCode: 504}}, nil))
	assert.False(t, shouldRetry(&resty.Response{RawResponse: &http.Response{StatusCode: 500}}, nil))
	assert.False(t, shouldRetry(&resty.Response{RawResponse: &http.Response{StatusCode: 200}}, nil))
}

func TestLongResponse(t *testing.T) {

	ctx := context.Background()

	resetConf()
	utConfPrefix.Set(HTTPConfigURL, "http://localhost:12345")
	utConfPrefix.Set(HTTPConfigRetryEnabled, false)

	c := New(ctx, utConfPrefix)
	httpmock.ActivateNonDefault(c.GetClient())
	defer httpmock.DeactivateAndReset()

	resText := strings.Builder{}
	for i := 0; i < 512; i++ {
		resText.WriteByte(byte('a' + (i % 26)))
	}
	httpmock.RegisterResponder("GET", "http://localhost:12345/test",
		httpmock.NewStringResponder(500, resText.String()))

	resp, err := c.R().Get("/test")
	err = WrapRestErr(ctx, resp, err, i18n.MsgFabconnectRESTErr)
	assert.Regexp(t, "PL10112.*\\.\\.\\.$", err)
}

func TestErrResponse(t *testing.T) {

	ctx := context.Background()

	resetConf()
	utConfPrefix.Set(HTTPConfigURL, "http://localhost:12345")
	utConfPrefix.Set(HTTPConfigRetryEnabled, false)

	c := New(ctx, utConfPrefix)
	httpmock.ActivateNonDefault(c.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://localhost:12345/test",
		httpmock.NewErrorResponder(fmt.Errorf("pop")))

	resp, err := c.R().Get("/test")
	err = WrapRestErr(ctx, resp, err, i18n.MsgFabconnectRESTErr)
	assert.Regexp(t, "pop", err)
}

func TestOnAfterResponseNil(t *testing.T) {
	assert.NoError(t, onAfterResponse(nil, nil))
	assert.NoError(t, onAfterResponse(nil, &resty.Response{}))
}
