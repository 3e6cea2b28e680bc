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

package retry

import (
	"context"
	"time"

	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
)

const (
	DefaultFactor = 2.0
)

// Retry is a concurrency safe exponential backoff configuration
type Retry struct {
	InitialDelay time.Duration
	MaximumDelay time.Duration
	Factor       float32
	// MaxAttempts stops the retry once reached, returning the last error. Zero means no limit.
	MaxAttempts int
}

// Do invokes the function until the function returns false, the attempts are exhausted, or the context is done.
// This simple interface doesn't pass through return values, on the basis you'll be using a closure for that.
func (r *Retry) Do(ctx context.Context, action string, f func(attempt int) (retry bool, err error)) error {
	attempt := 0
	delay := r.InitialDelay
	factor := r.Factor
	if factor < 1 { // Can't reduce
		factor = DefaultFactor
	}
	for {
		attempt++
		retry, err := f(attempt)
		if !retry || (r.MaxAttempts > 0 && attempt >= r.MaxAttempts) {
			return err
		}
		log.L(ctx).Debugf("%s attempt %d failed: %s", action, attempt, err)

		// Limit the delay based on the context deadline and maximum delay
		if delay > r.MaximumDelay {
			delay = r.MaximumDelay
		}
		if deadline, ok := ctx.Deadline(); ok {
			timeleft := time.Until(deadline)
			if timeleft < delay {
				delay = timeleft
			}
		}

		select {
		case <-ctx.Done():
			return i18n.NewError(ctx, i18n.MsgContextCanceled)
		case <-time.After(delay):
		}
		delay = time.Duration(float32(delay) * factor)
	}
}
