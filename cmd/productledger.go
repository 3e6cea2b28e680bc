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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaleido-io/productledger/internal/apiserver"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/internal/orchestrator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sigs = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:   "productledger",
	Short: "Product asset registry gateway for Hyperledger Fabric",
	Long: `Serves a REST API over the product asset chaincode, submitting and evaluating
transactions through the configured ledger connector`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var cfgFile string

var showConfigCommand = &cobra.Command{
	Use:     "showconfig",
	Aliases: []string{"showconf"},
	Short:   "List out the configuration options",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Show the defaults, without reading any config file
		config.Reset()
		initPluginConfig()
		for _, k := range config.GetKnownKeys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-64s %v\n", k, config.Get(config.RootKey(k)))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(showConfigCommand)
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}

var _utOrchestrator orchestrator.Orchestrator

func getOrchestrator() orchestrator.Orchestrator {
	if _utOrchestrator != nil {
		return _utOrchestrator
	}
	return orchestrator.NewOrchestrator()
}

// initPluginConfig registers the plugin and listener keys, which the config reset clears
func initPluginConfig() {
	orchestrator.InitConfig()
	apiserver.InitConfig()
}

// initContext reads the configuration, and sets up logging even if that failed so the header is output correctly
func initContext() (context.Context, error) {
	err := config.ReadConfig(cfgFile)
	initPluginConfig()

	ctx := log.WithLogger(context.Background(), logrus.WithField("pid", os.Getpid()))
	log.SetLevel(config.GetString(config.LogLevel))
	log.SetFormatting(log.Formatting{
		DisableColor:    !config.GetBool(config.LogColor),
		ForceColor:      config.GetBool(config.LogForceColor),
		TimestampFormat: config.GetString(config.LogTimeFormat),
		UTC:             config.GetBool(config.LogUTC),
	})
	log.L(ctx).Infof("Product Ledger")
	log.L(ctx).Infof("© Copyright 2021 Kaleido, Inc.")

	// Deferred error return from reading config
	if err != nil {
		return ctx, i18n.WrapError(ctx, err, i18n.MsgConfigFailed, cfgFile)
	}
	return ctx, nil
}

func run() error {
	ctx, err := initContext()
	if err != nil {
		return err
	}
	ctx, cancelCtx := context.WithCancel(ctx)
	defer cancelCtx()

	o := getOrchestrator()
	if err = o.Init(ctx); err != nil {
		return err
	}
	defer o.Close()
	if err = o.Start(); err != nil {
		return err
	}

	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	errChan := make(chan error, 1)
	go func() {
		errChan <- apiserver.NewAPIServer().Serve(ctx, o)
	}()

	select {
	case sig := <-sigs:
		log.L(ctx).Infof("Shutting down due to %s", sig.String())
		cancelCtx()
		return <-errChan
	case err := <-errChan:
		return err
	}
}
