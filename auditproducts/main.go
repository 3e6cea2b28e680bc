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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"reflect"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "auditproducts [flags] host",
	Short: "Product ledger auditor",
	Long:  "Tool for checking the products listed by a product ledger gateway are in key order, and match a point read of each key",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), args[0])
	},
}

func get(host, api string, result interface{}) (err error) {
	resp, err := http.Get(host + api)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned [%d]: %s", api, resp.StatusCode, body)
	}
	err = json.Unmarshal(body, &result)
	return err
}

func run(out io.Writer, host string) error {
	var products []interface{}
	err := get(host, "/products", &products)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Checking all products are in key order, and match a point read.\n\n")
	fmt.Fprintf(out, "Configuration:\n")
	fmt.Fprintf(out, "  host=%s\n\n", host)
	fmt.Fprintf(out, "%-24s %s\n", "ID", "Status")

	var validated int64
	var lastID string
	for _, entry := range products {
		product, _ := entry.(map[string]interface{})
		id, _ := product["ID"].(string)
		if id == "" {
			// Values that did not decode as a product are listed without a key to check
			fmt.Fprintf(out, "%-24s (skipped: %v)\n", "-", entry)
			continue
		}
		fmt.Fprintf(out, "%-24s %v\n", id, product["Status"])
		if validated > 0 && id <= lastID {
			return fmt.Errorf("out of order products detected: %s after %s", id, lastID)
		}
		var single map[string]interface{}
		if err := get(host, "/products/"+url.PathEscape(id), &single); err != nil {
			return err
		}
		if !reflect.DeepEqual(product, single) {
			return fmt.Errorf("product %s differs between list and point read", id)
		}
		lastID = id
		validated++
	}

	fmt.Fprintf(out, "%d products validated\n", validated)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
