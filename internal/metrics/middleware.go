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

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// UnmatchedRoute labels requests that no product route matched, so 404s do not add a series per URL
const UnmatchedRoute = "unmatched"

var restLabels = []string{LedgerLabelName, "method", "route", CodeLabelName}

// RESTInstrumentation records product API requests, labelled by the route template and the
// ledger type serving the API
type RESTInstrumentation struct {
	ledgerType    string
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	requestBytes  *prometheus.SummaryVec
	responseBytes *prometheus.SummaryVec
}

func newRESTInstrumentation(ledgerType string, reg prometheus.Registerer) *RESTInstrumentation {
	ri := &RESTInstrumentation{
		ledgerType: ledgerType,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RESTRequestsCounterName,
			Help: "Number of product API requests",
		}, restLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    RESTDurationHistogramName,
			Help:    "Time taken to serve product API requests, including the ledger round trip",
			Buckets: prometheus.DefBuckets,
		}, restLabels),
		requestBytes: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name: RESTRequestSizeSummaryName,
			Help: "Size of product API request bodies",
		}, restLabels),
		responseBytes: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name: RESTResponseSizeSummaryName,
			Help: "Size of product API response bodies",
		}, restLabels),
	}
	reg.MustRegister(ri.requests, ri.duration, ri.requestBytes, ri.responseBytes)
	return ri
}

func (ri *RESTInstrumentation) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		sw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{ri.ledgerType, r.Method, routeTemplate(r), strconv.Itoa(status)}
		ri.requests.WithLabelValues(labels...).Inc()
		ri.duration.WithLabelValues(labels...).Observe(time.Since(startTime).Seconds())
		if r.ContentLength > 0 {
			ri.requestBytes.WithLabelValues(labels...).Observe(float64(r.ContentLength))
		}
		ri.responseBytes.WithLabelValues(labels...).Observe(float64(sw.size))
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return UnmatchedRoute
}
