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
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/spf13/viper"
)

// The following keys can be access from the root configuration.
// Plugins are resonsible for defining their own keys using the Prefix interface
var (
	Lang                 RootKey = ark("lang")
	LogLevel             RootKey = ark("log.level")
	LogColor             RootKey = ark("log.color")
	LogForceColor        RootKey = ark("log.forceColor")
	LogTimeFormat        RootKey = ark("log.timeFormat")
	LogUTC               RootKey = ark("log.utc")
	HTTPAddress          RootKey = ark("http.address")
	HTTPPort             RootKey = ark("http.port")
	HTTPReadTimeout      RootKey = ark("http.readTimeout")
	HTTPWriteTimeout     RootKey = ark("http.writeTimeout")
	HTTPTLSEnabled       RootKey = ark("http.tls.enabled")
	HTTPTLSClientAuth    RootKey = ark("http.tls.clientAuth")
	HTTPTLSCAFile        RootKey = ark("http.tls.caFile")
	HTTPTLSCertFile      RootKey = ark("http.tls.certFile")
	HTTPTLSKeyFile       RootKey = ark("http.tls.keyFile")
	CorsEnabled          RootKey = ark("cors.enabled")
	CorsAllowedOrigins   RootKey = ark("cors.origins")
	CorsAllowedMethods   RootKey = ark("cors.methods")
	CorsAllowedHeaders   RootKey = ark("cors.headers")
	CorsAllowCredentials RootKey = ark("cors.credentials")
	CorsMaxAge           RootKey = ark("cors.maxAge")
	CorsDebug            RootKey = ark("cors.debug")
	APIRequestTimeout    RootKey = ark("api.requestTimeout")
	APIShutdownTimeout   RootKey = ark("api.shutdownTimeout")
	MetricsEnabled       RootKey = ark("metrics.enabled")
	MetricsAddress       RootKey = ark("metrics.address")
	MetricsPort          RootKey = ark("metrics.port")
	MetricsPath          RootKey = ark("metrics.path")
	LedgerType           RootKey = ark("ledger.type")
	LedgerChaincode      RootKey = ark("ledger.chaincode")
	DemoProductID        RootKey = ark("demo.productId")
)

// Prefix represents the global configuration, at a nested point in
// the config heirarchy. This allows plugins to define their own keys.
//
// Note that all values are GLOBAL so this cannot be used for per-instance
// customization. Rather for global initialization of plugins.
type Prefix interface {
	AddKnownKey(key string, defValue ...interface{})
	SubPrefix(suffix string) Prefix
	Set(key string, value interface{})
	Resolve(key string) string

	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int
	GetUint(key string) uint
	GetDuration(key string) time.Duration
	GetByteSize(key string) int64
	GetStringSlice(key string) []string
	GetObject(key string) map[string]interface{}
	Get(key string) interface{}
}

// RootKey key are the known configuration keys
type RootKey string

// Reset clears all values, and sets the defaults for the root keys
func Reset() {
	viper.Reset()

	viper.SetDefault(string(Lang), "en")
	viper.SetDefault(string(LogLevel), "info")
	viper.SetDefault(string(LogColor), true)
	viper.SetDefault(string(LogForceColor), false)
	viper.SetDefault(string(LogTimeFormat), "2006-01-02T15:04:05.000Z07:00")
	viper.SetDefault(string(LogUTC), false)
	viper.SetDefault(string(HTTPAddress), "127.0.0.1")
	viper.SetDefault(string(HTTPPort), 5001)
	viper.SetDefault(string(HTTPReadTimeout), "15s")
	viper.SetDefault(string(HTTPWriteTimeout), "15s")
	viper.SetDefault(string(CorsEnabled), true)
	viper.SetDefault(string(CorsAllowedOrigins), []string{"*"})
	viper.SetDefault(string(CorsAllowedHeaders), []string{"*"})
	viper.SetDefault(string(CorsAllowCredentials), true)
	viper.SetDefault(string(CorsMaxAge), 600)
	viper.SetDefault(string(APIRequestTimeout), "120s")
	viper.SetDefault(string(APIShutdownTimeout), "10s")
	viper.SetDefault(string(MetricsEnabled), false)
	viper.SetDefault(string(MetricsAddress), "127.0.0.1")
	viper.SetDefault(string(MetricsPort), 6001)
	viper.SetDefault(string(MetricsPath), "/metrics")
	viper.SetDefault(string(LedgerType), "devledger")
	viper.SetDefault(string(LedgerChaincode), "product")
	viper.SetDefault(string(DemoProductID), "")

	i18n.SetLang(GetString(Lang))
}

// ReadConfig initializes the config
func ReadConfig(cfgFile string) error {
	Reset()

	// Set precedence order for reading config location
	viper.SetEnvPrefix("productledger")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetConfigType("yaml")
	if cfgFile != "" {
		f, err := os.Open(cfgFile)
		if err == nil {
			defer f.Close()
			err = viper.ReadConfig(f)
		}
		return err
	}
	viper.SetConfigName("productledger.core")
	viper.AddConfigPath("/etc/productledger/")
	viper.AddConfigPath("$HOME/.productledger")
	viper.AddConfigPath(".")
	return viper.ReadInConfig()
}

var root = &configPrefix{
	keys: map[string]bool{}, // All keys go here, including those defined in sub prefixies
}

// ark adds a root key, used to define the keys that are used within the core
func ark(k string) RootKey {
	root.AddKnownKey(k)
	return RootKey(k)
}

// configPrefix is the main config structure passed to plugins, and used for root to wrap viper
type configPrefix struct {
	prefix string
	keys   map[string]bool
}

// NewPluginConfig creates a new plugin configuration object, at the specified prefix
func NewPluginConfig(prefix string) Prefix {
	if !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return &configPrefix{
		prefix: prefix,
		keys:   root.keys,
	}
}

func (c *configPrefix) prefixKey(k string) string {
	key := c.prefix + k
	if !c.keys[key] {
		panic(fmt.Sprintf("Undefined configuration key '%s'", key))
	}
	return key
}

func (c *configPrefix) SubPrefix(suffix string) Prefix {
	return &configPrefix{
		prefix: c.prefix + suffix + ".",
		keys:   root.keys,
	}
}

func (c *configPrefix) AddKnownKey(k string, defValue ...interface{}) {
	key := c.prefix + k
	if len(defValue) == 1 {
		viper.SetDefault(key, defValue[0])
	} else if len(defValue) > 0 {
		viper.SetDefault(key, defValue)
	}
	c.keys[key] = true
}

// GetKnownKeys gets the known keys, sorted
func GetKnownKeys() []string {
	var keys []string
	for k := range root.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve gives the fully qualified path of a key
func (c *configPrefix) Resolve(key string) string {
	return c.prefixKey(key)
}

// GetString gets a configuration string
func GetString(key RootKey) string {
	return root.GetString(string(key))
}
func (c *configPrefix) GetString(key string) string {
	return viper.GetString(c.prefixKey(key))
}

// GetStringSlice gets a configuration string array
func GetStringSlice(key RootKey) []string {
	return root.GetStringSlice(string(key))
}
func (c *configPrefix) GetStringSlice(key string) []string {
	return viper.GetStringSlice(c.prefixKey(key))
}

// GetBool gets a configuration bool
func GetBool(key RootKey) bool {
	return root.GetBool(string(key))
}
func (c *configPrefix) GetBool(key string) bool {
	return viper.GetBool(c.prefixKey(key))
}

// GetDuration gets a configuration time duration with consistent semantics
func GetDuration(key RootKey) time.Duration {
	return root.GetDuration(string(key))
}
func (c *configPrefix) GetDuration(key string) time.Duration {
	return durationFromString(viper.GetString(c.prefixKey(key)))
}

// durationFromString treats a bare number as milliseconds, and otherwise uses Go duration syntax
func durationFromString(durationString string) time.Duration {
	if durationString == "" {
		return 0
	}
	if ms, err := strconv.ParseInt(durationString, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	duration, _ := time.ParseDuration(durationString)
	return duration
}

// GetByteSize get a size in bytes, such as "1Mb" or "256kb"
func GetByteSize(key RootKey) int64 {
	return root.GetByteSize(string(key))
}
func (c *configPrefix) GetByteSize(key string) int64 {
	sizeString := viper.GetString(c.prefixKey(key))
	if sizeString == "" {
		return 0
	}
	i, _ := units.RAMInBytes(sizeString)
	return i
}

// GetUint gets a configuration uint
func GetUint(key RootKey) uint {
	return root.GetUint(string(key))
}
func (c *configPrefix) GetUint(key string) uint {
	return viper.GetUint(c.prefixKey(key))
}

// GetInt gets a configuration uint
func GetInt(key RootKey) int {
	return root.GetInt(string(key))
}
func (c *configPrefix) GetInt(key string) int {
	return viper.GetInt(c.prefixKey(key))
}

// GetObject gets a configuration map
func GetObject(key RootKey) map[string]interface{} {
	return root.GetObject(string(key))
}
func (c *configPrefix) GetObject(key string) map[string]interface{} {
	return viper.GetStringMap(c.prefixKey(key))
}

// Get gets a configuration in raw form
func Get(key RootKey) interface{} {
	return root.Get(string(key))
}
func (c *configPrefix) Get(key string) interface{} {
	return viper.Get(c.prefixKey(key))
}

// Set allows runtime setting of config (used in unit tests)
func Set(key RootKey, value interface{}) {
	root.Set(string(key), value)
}
func (c *configPrefix) Set(key string, value interface{}) {
	viper.Set(c.prefixKey(key), value)
}
