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
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gorilla/mux"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/internal/metrics"
	"github.com/kaleido-io/productledger/internal/oapispec"
	"github.com/kaleido-io/productledger/internal/orchestrator"
	"github.com/kaleido-io/productledger/pkg/ledger"
	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xeipuuv/gojsonschema"
)

var (
	apiConfigPrefix     = config.NewPluginConfig("http")
	metricsConfigPrefix = config.NewPluginConfig("metrics")
)

// Details echoed from the ledger are sanitized and truncated to this length
const maxErrorDetailLen = 2048

// Server is the external interface for the API Server
type Server interface {
	Serve(ctx context.Context, o orchestrator.Orchestrator) error
}

type apiServer struct {
	apiTimeout     time.Duration
	metricsEnabled bool
}

// InitConfig registers the listener keys. Must be called after the configuration has been reset or read.
func InitConfig() {
	initHTTPConfPrefx(apiConfigPrefix, 5001)
	initHTTPConfPrefx(metricsConfigPrefix, 6001)
}

func NewAPIServer() Server {
	return &apiServer{
		apiTimeout:     config.GetDuration(config.APIRequestTimeout),
		metricsEnabled: config.GetBool(config.MetricsEnabled),
	}
}

// Serve is the main entry point for the API Server
func (as *apiServer) Serve(ctx context.Context, o orchestrator.Orchestrator) (err error) {
	httpErrChan := make(chan error)
	metricsErrChan := make(chan error)

	apiHTTPServer, err := newHTTPServer(ctx, "api", wrapCorsIfEnabled(ctx, as.createMuxRouter(o)), httpErrChan, apiConfigPrefix)
	if err != nil {
		return err
	}
	go apiHTTPServer.serveHTTP(ctx)

	if as.metricsEnabled {
		metricsHTTPServer, err := newHTTPServer(ctx, "metrics", as.createMetricsMuxRouter(), metricsErrChan, metricsConfigPrefix)
		if err != nil {
			return err
		}
		go metricsHTTPServer.serveHTTP(ctx)
	}

	return as.waitForServerStop(httpErrChan, metricsErrChan)
}

func (as *apiServer) waitForServerStop(httpErrChan, metricsErrChan chan error) error {
	select {
	case err := <-httpErrChan:
		return err
	case err := <-metricsErrChan:
		return err
	}
}

func (as *apiServer) getParams(req *http.Request, route *oapispec.Route) (pathParams map[string]string) {
	pathParams = make(map[string]string)
	if len(route.PathParams) > 0 {
		v := mux.Vars(req)
		for _, pp := range route.PathParams {
			pathParams[pp.Name] = v[pp.Name]
		}
	}
	return pathParams
}

func compileInputSchema(route *oapispec.Route) *gojsonschema.Schema {
	if route.JSONInputSchema == "" {
		return nil
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(route.JSONInputSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid input schema for route %s: %s", route.Name, err))
	}
	return schema
}

func (as *apiServer) readJSONInput(req *http.Request, route *oapispec.Route, schema *gojsonschema.Schema) (interface{}, error) {
	ctx := req.Context()
	contentType := strings.ToLower(req.Header.Get("Content-Type"))
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidContentType)
	}
	body, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgRequestBodyReadFailed)
	}
	if schema != nil {
		result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgJSONDecodeFailed)
		}
		if !result.Valid() {
			problems := make([]string, len(result.Errors()))
			for i, re := range result.Errors() {
				problems[i] = re.String()
			}
			return nil, i18n.NewError(ctx, i18n.MsgProductSchemaInvalid, strings.Join(problems, ", "))
		}
	}
	jsonInput := route.JSONInputValue()
	if err := json.Unmarshal(body, jsonInput); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgJSONDecodeFailed)
	}
	return jsonInput, nil
}

func (as *apiServer) routeHandler(o orchestrator.Orchestrator, route *oapispec.Route) http.HandlerFunc {
	// Check the mandatory parts are ok at startup time
	schema := compileInputSchema(route)
	return as.apiWrapper(func(res http.ResponseWriter, req *http.Request) (int, error) {

		var jsonInput interface{}
		var err error
		if route.JSONInputValue != nil && req.Method != http.MethodGet && req.Method != http.MethodDelete {
			jsonInput, err = as.readJSONInput(req, route, schema)
		}

		var status = 400 // if fail parsing input
		var output interface{}
		if err == nil {
			r := &oapispec.APIRequest{
				Ctx:           req.Context(),
				Or:            o,
				Req:           req,
				PP:            as.getParams(req, route),
				Input:         jsonInput,
				SuccessStatus: http.StatusOK,
			}
			if route.JSONOutputCode != 0 {
				r.SuccessStatus = route.JSONOutputCode
			}
			output, err = route.JSONHandler(r)
			status = r.SuccessStatus // Can be updated by the route
		}
		if err == nil {
			status, err = as.handleOutput(req.Context(), res, status, output)
		}
		return status, err
	})
}

func (as *apiServer) handleOutput(ctx context.Context, res http.ResponseWriter, status int, output interface{}) (int, error) {
	vOutput := reflect.ValueOf(output)
	outputKind := vOutput.Kind()
	isPointer := outputKind == reflect.Ptr
	invalid := outputKind == reflect.Invalid
	isNil := output == nil || invalid || (isPointer && vOutput.IsNil())
	var marshalErr error
	switch {
	case isNil:
		if status != http.StatusNoContent {
			return 404, i18n.NewError(ctx, i18n.Msg404NotFound)
		}
		res.WriteHeader(http.StatusNoContent)
	default:
		res.Header().Add("Content-Type", "application/json")
		res.WriteHeader(status)
		marshalErr = json.NewEncoder(res).Encode(output)
	}
	if marshalErr != nil {
		err := i18n.WrapError(ctx, marshalErr, i18n.MsgResponseMarshalError)
		log.L(ctx).Errorf(err.Error())
		return 500, err
	}
	return status, nil
}

// parseRequestTimeout accepts a plain number of milliseconds, or a Go duration string
func parseRequestTimeout(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

func (as *apiServer) getTimeout(req *http.Request) time.Duration {
	// Configure a server-side timeout on each request, so a ledger call that hangs
	// is abandoned at roughly the time the requester gives up
	reqTimeout := as.apiTimeout
	reqTimeoutHeader := req.Header.Get("Request-Timeout")
	if reqTimeoutHeader != "" {
		customTimeout, err := parseRequestTimeout(reqTimeoutHeader)
		if err != nil || customTimeout <= 0 {
			log.L(req.Context()).Warnf("Invalid Request-Timeout header '%s'", reqTimeoutHeader)
		} else {
			reqTimeout = customTimeout
		}
	}
	return reqTimeout
}

// restError builds the body of an error response. Failures reported by the ledger keep the
// gateway message separate from the details returned by the peers.
func restError(err error) *pltypes.RESTError {
	var txErr *ledger.TransactionError
	if errors.As(err, &txErr) {
		details := make([]string, len(txErr.Details))
		for i, d := range txErr.Details {
			details[i] = i18n.SanitizeLimit(d, maxErrorDetailLen)
		}
		return &pltypes.RESTError{
			Error: pltypes.RESTErrorDetail{
				Message: txErr.Message,
				Details: details,
			},
		}
	}
	return &pltypes.RESTError{
		Error: pltypes.RESTErrorDetail{
			Message: err.Error(),
		},
	}
}

func (as *apiServer) apiWrapper(handler func(res http.ResponseWriter, req *http.Request) (status int, err error)) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {

		reqTimeout := as.getTimeout(req)
		ctx, cancel := context.WithTimeout(req.Context(), reqTimeout)
		httpReqID := pltypes.ShortID()
		ctx = log.WithLogField(ctx, "httpreq", httpReqID)
		req = req.WithContext(ctx)
		defer cancel()

		// Wrap the request itself in a log wrapper, that gives minimal request/response and timing info
		l := log.L(ctx)
		l.Infof("--> %s %s", req.Method, req.URL.Path)
		startTime := time.Now()
		status, err := handler(res, req)
		durationMS := float64(time.Since(startTime)) / float64(time.Millisecond)
		if err != nil {

			// Routes do not set error statuses. Input errors carry a status hint.
			if statusHint, ok := i18n.HTTPStatusFor(err); ok {
				status = statusHint
			}

			// If the context is done, we wrap in 408
			if status != http.StatusRequestTimeout {
				select {
				case <-ctx.Done():
					l.Errorf("Request failed and context is closed. Returning %d (overriding %d): %s", http.StatusRequestTimeout, status, err)
					status = http.StatusRequestTimeout
					err = i18n.WrapError(ctx, err, i18n.MsgRequestTimeout, httpReqID, durationMS)
				default:
				}
			}

			// ... or we default to 500
			if status < 300 {
				status = 500
			}
			l.Infof("<-- %s %s [%d] (%.2fms): %s", req.Method, req.URL.Path, status, durationMS, err)
			res.Header().Add("Content-Type", "application/json")
			res.WriteHeader(status)
			_ = json.NewEncoder(res).Encode(restError(err))
		} else {
			l.Infof("<-- %s %s [%d] (%.2fms)", req.Method, req.URL.Path, status, durationMS)
		}
	}
}

func (as *apiServer) notFoundHandler(res http.ResponseWriter, req *http.Request) (status int, err error) {
	res.Header().Add("Content-Type", "application/json")
	return 404, i18n.NewError(req.Context(), i18n.Msg404NotFound)
}

func (as *apiServer) swaggerUIHandler(routes []*oapispec.Route, specURL string) func(res http.ResponseWriter, req *http.Request) (status int, err error) {
	return func(res http.ResponseWriter, req *http.Request) (status int, err error) {
		res.Header().Add("Content-Type", "text/html")
		_, _ = res.Write(oapispec.SwaggerUIHTML(req.Context(), specURL, routes))
		return 200, nil
	}
}

func (as *apiServer) getPublicURL(conf config.Prefix) string {
	publicURL := conf.GetString(HTTPConfPublicURL)
	if publicURL == "" {
		proto := "https"
		if !conf.GetBool(HTTPConfTLSEnabled) {
			proto = "http"
		}
		publicURL = fmt.Sprintf("%s://%s:%s", proto, conf.GetString(HTTPConfAddress), conf.GetString(HTTPConfPort))
	}
	return publicURL
}

func (as *apiServer) swaggerGenConf(url string) *oapispec.SwaggerGenConfig {
	return &oapispec.SwaggerGenConfig{
		BaseURL:     url,
		Title:       "Product Ledger",
		Version:     "1.0",
		Description: "Product asset registry on a Hyperledger Fabric channel",
	}
}

func (as *apiServer) swaggerHandler(routes []*oapispec.Route, url string) func(res http.ResponseWriter, req *http.Request) (status int, err error) {
	return func(res http.ResponseWriter, req *http.Request) (status int, err error) {
		vars := mux.Vars(req)
		doc := oapispec.SwaggerGen(req.Context(), routes, as.swaggerGenConf(url))
		if vars["ext"] == ".json" {
			res.Header().Add("Content-Type", "application/json")
			b, _ := json.Marshal(&doc)
			_, _ = res.Write(b)
		} else {
			res.Header().Add("Content-Type", "application/x-yaml")
			b, _ := yaml.Marshal(&doc)
			_, _ = res.Write(b)
		}
		return 200, nil
	}
}

func (as *apiServer) createMuxRouter(o orchestrator.Orchestrator) *mux.Router {
	r := mux.NewRouter()
	if as.metricsEnabled {
		r.Use(metrics.GetRestServerInstrumentation().Middleware)
	}

	for _, route := range routes {
		if route.JSONHandler != nil {
			r.HandleFunc(fmt.Sprintf("/%s", route.Path), as.routeHandler(o, route)).
				Methods(route.Method)
		}
	}
	publicURL := as.getPublicURL(apiConfigPrefix)
	r.HandleFunc(`/api/swagger{ext:\.yaml|\.json|}`, as.apiWrapper(as.swaggerHandler(routes, publicURL)))
	r.HandleFunc(`/api`, as.apiWrapper(as.swaggerUIHandler(routes, publicURL+"/api/swagger.yaml")))

	r.NotFoundHandler = as.apiWrapper(as.notFoundHandler)
	return r
}

func (as *apiServer) createMetricsMuxRouter() *mux.Router {
	r := mux.NewRouter()

	r.Path(config.GetString(config.MetricsPath)).Handler(promhttp.InstrumentMetricHandler(metrics.Registry(),
		promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	return r
}
