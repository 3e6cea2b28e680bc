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

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/ghodss/yaml"
	"github.com/kaleido-io/productledger/internal/database/dbfactory"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/ledger/ledgerfactory"
	"github.com/spf13/cobra"
)

var shortened, output = false, "json"

var BuildDate string
var BuildCommit string
var BuildVersionOverride string

// Info describes the binary, and the ledger and world state plugins compiled into it
type Info struct {
	Version    string   `json:"version,omitempty"`
	Commit     string   `json:"commit,omitempty"`
	Date       string   `json:"date,omitempty"`
	Ledgers    []string `json:"ledgers"`
	WorldState []string `json:"worldState"`
}

func setBuildInfo(info *Info, buildInfo *debug.BuildInfo, ok bool) {
	if ok && buildInfo.Main.Version != "" {
		info.Version = buildInfo.Main.Version
	}
}

func buildInfo() *Info {
	info := &Info{
		Date:       BuildDate,
		Commit:     BuildCommit,
		Version:    BuildVersionOverride,
		Ledgers:    ledgerfactory.PluginNames(),
		WorldState: dbfactory.PluginNames(),
	}
	// go install embeds the module version, release builds pass it in explicitly
	if info.Version == "" {
		bi, ok := debug.ReadBuildInfo()
		setBuildInfo(info, bi, ok)
	}
	if info.Version == "" {
		info.Version = "(devel)"
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version info",
	Long:  "Prints the version of the productledger binary, and the ledger and world state plugins it supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildInfo()
		if shortened {
			fmt.Fprintln(cmd.OutOrStdout(), info.Version)
			return nil
		}

		var b []byte
		var err error
		switch output {
		case "json":
			b, err = json.MarshalIndent(info, "", "  ")
		case "yaml":
			// ghodss/yaml honours the json tags
			b, err = yaml.Marshal(info)
		default:
			err = i18n.NewError(context.Background(), i18n.MsgInvalidOutputOption, output)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortened, "short", "s", false, "Prints only the version number")
	versionCmd.Flags().StringVarP(&output, "output", "o", "json", "output format (\"yaml\"|\"json\")")
	rootCmd.AddCommand(versionCmd)
}
