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

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigOK(t *testing.T) {
	viper.Reset()
	err := ReadConfig("")
	assert.Regexp(t, "Not Found", err)
}

func TestDefaults(t *testing.T) {
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir("../../test/config")
	err := ReadConfig("")
	assert.NoError(t, err)

	assert.Equal(t, "info", GetString(LogLevel))
	assert.True(t, GetBool(LogColor))
	assert.Equal(t, uint(0), GetUint(HTTPPort))
	assert.Equal(t, 30*time.Second, GetDuration(APIRequestTimeout))
	assert.Equal(t, "devledger", GetString(LedgerType))
	assert.Equal(t, []string{"*"}, GetStringSlice(CorsAllowedOrigins))
}

func TestSpecificConfigFileOk(t *testing.T) {
	err := ReadConfig("../../test/config/productledger.core.yaml")
	assert.NoError(t, err)
	assert.Equal(t, "product", GetString(LedgerChaincode))
}

func TestSpecificConfigFileFail(t *testing.T) {
	err := ReadConfig("../../test/config/no.hope.yaml")
	assert.Error(t, err)
}

func TestAttemptToAccessRandomKey(t *testing.T) {
	assert.Panics(t, func() {
		GetString("any.key")
	})
}

func TestSetGetMap(t *testing.T) {
	Set(LedgerChaincode, map[string]interface{}{"some": "map"})
	assert.Equal(t, map[string]interface{}{"some": "map"}, GetObject(LedgerChaincode))
}

func TestSetGetRawInterace(t *testing.T) {
	type myType struct{ name string }
	Set(LedgerChaincode, &myType{name: "test"})
	v := Get(LedgerChaincode)
	assert.Equal(t, myType{name: "test"}, *(v.(*myType)))
}

func TestDurations(t *testing.T) {
	Reset()
	Set(APIRequestTimeout, "1500")
	assert.Equal(t, 1500*time.Millisecond, GetDuration(APIRequestTimeout))
	Set(APIRequestTimeout, "2m")
	assert.Equal(t, 2*time.Minute, GetDuration(APIRequestTimeout))
	Set(APIRequestTimeout, "")
	assert.Equal(t, time.Duration(0), GetDuration(APIRequestTimeout))
	Set(APIRequestTimeout, "bad")
	assert.Equal(t, time.Duration(0), GetDuration(APIRequestTimeout))
}

func TestPluginConfig(t *testing.T) {
	pic := NewPluginConfig("my")
	pic.AddKnownKey("special.config", 12345)
	assert.Equal(t, 12345, pic.GetInt("special.config"))
	assert.Equal(t, "my.special.config", pic.Resolve("special.config"))
}

func TestPluginConfigArrayInit(t *testing.T) {
	pic := NewPluginConfig("my").SubPrefix("special")
	pic.AddKnownKey("config", "val1", "val2", "val3")
	assert.Equal(t, []string{"val1", "val2", "val3"}, pic.GetStringSlice("config"))
}

func TestPluginConfigByteSize(t *testing.T) {
	pic := NewPluginConfig("sized")
	pic.AddKnownKey("cache", "1Mb")
	pic.AddKnownKey("empty")
	assert.Equal(t, int64(1024*1024), pic.GetByteSize("cache"))
	assert.Equal(t, int64(0), pic.GetByteSize("empty"))
}

func TestGetKnownKeys(t *testing.T) {
	knownKeys := GetKnownKeys()
	assert.NotEmpty(t, knownKeys)
	for _, k := range knownKeys {
		assert.NotEmpty(t, root.Resolve(k))
	}
}

func TestGenerateConfigMarkdown(t *testing.T) {
	Reset()
	p := NewPluginConfig("unittest.docs")
	p.AddKnownKey("flag", true)
	p.AddKnownKey("unset")
	b, err := GenerateConfigMarkdown(context.Background())
	assert.NoError(t, err)
	md := string(b)
	assert.Regexp(t, "## unittest.docs", md)
	assert.Regexp(t, "\\|flag\\|`true`\\|", md)
	assert.Regexp(t, "\\|unset\\|`<nil>`\\|", md)
	assert.Regexp(t, "## root", md)
	assert.Regexp(t, "\\|lang\\|`en`\\|", md)
}
