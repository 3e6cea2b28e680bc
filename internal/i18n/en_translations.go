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

package i18n

//revive:disable
var (
	MsgConfigFailed             = plm("PL10101", "Failed to read config: %s")
	MsgJSONDecodeFailed         = plm("PL10102", "Failed to decode input JSON", 400)
	MsgAPIServerStartFailed     = plm("PL10103", "Unable to start listener on %s: %s")
	MsgTLSConfigFailed          = plm("PL10104", "Failed to initialize TLS configuration")
	MsgInvalidCAFile            = plm("PL10105", "Invalid CA certificates file")
	MsgResponseMarshalError     = plm("PL10106", "Failed to serialize response data", 400)
	Msg404NotFound              = plm("PL10107", "Not found", 404)
	MsgRequestTimeout           = plm("PL10108", "The request with id '%s' timed out after %.2fms", 408)
	MsgUnknownLedgerPlugin      = plm("PL10109", "Unknown ledger plugin: %s")
	MsgUnknownDatabasePlugin    = plm("PL10110", "Unknown world state database plugin: %s")
	MsgMissingPluginConfig      = plm("PL10111", "Missing configuration '%s' for %s")
	MsgFabconnectRESTErr        = plm("PL10112", "Error from fabconnect: %s")
	MsgWSSendTimedOut           = plm("PL10113", "Websocket send timed out")
	MsgWSClosing                = plm("PL10114", "Websocket closing")
	MsgWSConnectFailed          = plm("PL10115", "Websocket connect failed")
	MsgWSInvalidURL             = plm("PL10116", "Invalid websocket URL: %s")
	MsgContextCanceled          = plm("PL10117", "Context cancelled")
	MsgConnectorFailInvoke      = plm("PL10118", "Failed to invoke connector method '%s' on %s")
	MsgCommitFailed             = plm("PL10120", "Transaction %s failed to commit with status code %s")
	MsgCommitWaitTimeout        = plm("PL10121", "Timed out waiting for commit of transaction %s")
	MsgLedgerResultDecodeFailed = plm("PL10124", "Failed to decode result of transaction '%s' as JSON")
	MsgDBInitFailed             = plm("PL10125", "Database initialization failed")
	MsgDBMigrationFailed        = plm("PL10126", "Database migration failed")
	MsgDBBeginFailed            = plm("PL10127", "Database begin transaction failed")
	MsgDBQueryBuildFailed       = plm("PL10128", "Database query builder failed")
	MsgDBQueryFailed            = plm("PL10129", "Database query failed")
	MsgDBInsertFailed           = plm("PL10130", "Database insert failed")
	MsgDBUpdateFailed           = plm("PL10131", "Database update failed")
	MsgDBDeleteFailed           = plm("PL10132", "Database delete failed")
	MsgDBCommitFailed           = plm("PL10133", "Database commit failed")
	MsgDBReadErr                = plm("PL10134", "Database resultset read error from table '%s'")
	MsgLedgerStopped            = plm("PL10136", "Ledger runtime is stopped")
	MsgProductSchemaInvalid     = plm("PL10137", "Invalid product: %s", 400)
	MsgProductIDMismatch        = plm("PL10138", "Product ID '%s' in the body does not match '%s' in the path", 400)
	MsgDemoUpdateDidNotFail     = plm("PL10140", "Update of non-existent product %s did not return an error")
	MsgAsyncSubmitNotAccepted   = plm("PL10143", "Asynchronous submit of '%s' was not accepted by the gateway")
	MsgUnknownChaincode         = plm("PL10144", "Chaincode '%s' is not installed on channel '%s'")
	MsgEmptyStateKey            = plm("PL10145", "State key must not be an empty string")
	MsgEndorsementFailed        = plm("PL10146", "Failed to endorse transaction '%s'")
	MsgInvalidContentType       = plm("PL10147", "Input must be JSON, with Content-Type application/json", 415)
	MsgRequestBodyReadFailed    = plm("PL10148", "Failed to read request body", 400)
	MsgInvalidOutputOption      = plm("PL10149", "Invalid output option '%s'")
)
