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

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kaleido-io/productledger/internal/log"
)

// JSONObject is a holder of a parsed JSON object, with typed getters that log rather than fail
// when a field is of an unexpected type
type JSONObject map[string]interface{}

func (jd JSONObject) GetString(key string) string {
	vInterface := jd[key]
	switch vt := vInterface.(type) {
	case string:
		return vt
	case nil:
		return ""
	case json.Number:
		return vt.String()
	case float64:
		return strconv.FormatFloat(vt, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(vt)
	default:
		log.L(context.Background()).Errorf("Invalid string value '%+v' for key '%s'", vInterface, key)
		return fmt.Sprintf("%v", vt)
	}
}

func (jd JSONObject) GetInt64(key string) int64 {
	s := jd.GetString(key)
	if s == "" {
		return 0
	}
	i, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		log.L(context.Background()).Errorf("Invalid int value '%+v' for key '%s'", jd[key], key)
		return 0
	}
	return i
}

func (jd JSONObject) GetObject(key string) JSONObject {
	ob, _ := jd.GetObjectOk(key)
	return ob
}

func (jd JSONObject) GetObjectOk(key string) (JSONObject, bool) {
	vInterface := jd[key]
	switch vMap := vInterface.(type) {
	case map[string]interface{}:
		return JSONObject(vMap), true
	case JSONObject:
		return vMap, true
	default:
		if vInterface != nil {
			log.L(context.Background()).Errorf("Invalid object value '%+v' for key '%s'", vInterface, key)
		}
		return JSONObject{}, false
	}
}
