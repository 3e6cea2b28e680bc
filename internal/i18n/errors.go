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

import (
	"context"

	"github.com/pkg/errors"
)

// PLError is an error created from a registered message key
type PLError interface {
	error
	MessageKey() MessageKey
	HTTPStatus() int
}

type plError struct {
	error
	msgKey MessageKey
}

func (e *plError) MessageKey() MessageKey {
	return e.msgKey
}

// HTTPStatus returns the status hint of the message, or 500
func (e *plError) HTTPStatus() int {
	if status, ok := GetStatusHint(string(e.msgKey)); ok {
		return status
	}
	return 500
}

func (e *plError) Unwrap() error {
	return e.error
}

// NewError creates a new error
func NewError(ctx context.Context, msg MessageKey, inserts ...interface{}) error {
	return &plError{
		error:  errors.New(ExpandWithCode(ctx, msg, inserts...)),
		msgKey: msg,
	}
}

// WrapError wraps an error
func WrapError(ctx context.Context, err error, msg MessageKey, inserts ...interface{}) error {
	return &plError{
		error:  errors.Wrap(err, ExpandWithCode(ctx, msg, inserts...)),
		msgKey: msg,
	}
}
