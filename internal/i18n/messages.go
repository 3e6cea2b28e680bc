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
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// MessageKey is a registered message: either an error code (PL10xxx) or an API description key
type MessageKey string

// registered holds the HTTP status hint of every key, or zero when it has none
var registered = map[MessageKey]int{}

var enLang = language.MustParse("en")

var langMatcher = language.NewMatcher([]language.Tag{language.AmericanEnglish})

var defaultPrinter *message.Printer

type ctxLangKey struct{}

func init() {
	SetLang("en")
}

// plm registers the english text of a message, and the HTTP status to use when an
// error carrying it is returned from the API
func plm(key, enTranslation string, statusHint ...int) MessageKey {
	mk := MessageKey(key)
	if _, dup := registered[mk]; dup {
		panic(fmt.Sprintf("Message ID %s re-used", key))
	}
	registered[mk] = 0
	if len(statusHint) > 0 {
		registered[mk] = statusHint[0]
	}
	_ = message.Set(enLang, key, catalog.String(enTranslation))
	return mk
}

// SetLang sets the language used when the context does not carry one
func SetLang(lang string) {
	tag, _, _ := langMatcher.Match(language.Make(lang))
	defaultPrinter = message.NewPrinter(tag)
}

// WithLang sets the language on the context
func WithLang(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, ctxLangKey{}, lang)
}

func printer(ctx context.Context) *message.Printer {
	if lang, ok := ctx.Value(ctxLangKey{}).(language.Tag); ok {
		return message.NewPrinter(lang)
	}
	return defaultPrinter
}

// Expand returns the message in the language of the context, for docs and logs
func Expand(ctx context.Context, key MessageKey, inserts ...interface{}) string {
	return printer(ctx).Sprintf(string(key), inserts...)
}

// ExpandWithCode prefixes the expanded message with its code, as in "PL10101: ..."
func ExpandWithCode(ctx context.Context, key MessageKey, inserts ...interface{}) string {
	return string(key) + ": " + Expand(ctx, key, inserts...)
}

// GetStatusHint returns the HTTP status registered against a message key, if any
func GetStatusHint(code string) (int, bool) {
	status := registered[MessageKey(code)]
	return status, status > 0
}

// HTTPStatusFor returns the status hint of the outermost coded error in the chain, if it has one.
// Ledger and transport failures carry no hint.
func HTTPStatusFor(err error) (int, bool) {
	var plErr PLError
	if !errors.As(err, &plErr) {
		return 0, false
	}
	return GetStatusHint(string(plErr.MessageKey()))
}
