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

package pltypes

// Product is the single record type held in world state, keyed by ID
type Product struct {
	ID          string `json:"ID"`
	Name        string `json:"Name"`
	Status      string `json:"Status"`
	Description string `json:"Description"`
}

// Well known product statuses. The ledger stores status as free text, so other values are accepted.
const (
	ProductStatusOrderCreated    = "Order Created"
	ProductStatusInProgress      = "In Progress"
	ProductStatusSubmitForReview = "Submit For Review"
	ProductStatusInVerification  = "In Verification"
	ProductStatusChangeRequest   = "Change Request"
	ProductStatusProcessPayment  = "Process Payment"
	ProductStatusPaymentReceived = "Payment Received"
)

// StatusChange is returned from an asynchronous status update, before the change is committed
type StatusChange struct {
	ID             string `json:"id"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	TransactionID  string `json:"transactionId"`
}

// RESTError is the body of every error response from the API
type RESTError struct {
	Error RESTErrorDetail `json:"error"`
}

type RESTErrorDetail struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
