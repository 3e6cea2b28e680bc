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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/products"
	"github.com/kaleido-io/productledger/pkg/ledger"
	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Runs the product lifecycle against the configured ledger",
	Long: `Seeds the ledger, creates and reads back a product, shows the error returned by the
chaincode for an update of a missing product, then changes the product status asynchronously
and waits for the commit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := initContext()
		if err != nil {
			return err
		}
		o := getOrchestrator()
		if err = o.Init(ctx); err != nil {
			return err
		}
		defer o.Close()
		if err = o.Start(); err != nil {
			return err
		}
		svc, err := o.Products(ctx)
		if err != nil {
			return err
		}
		return runDemo(ctx, cmd.OutOrStdout(), svc)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func printResult(out io.Writer, v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintf(out, "*** Result: %s\n", b)
}

func runDemo(ctx context.Context, out io.Writer, svc products.Service) error {
	productID := config.GetString(config.DemoProductID)
	if productID == "" {
		productID = fmt.Sprintf("asset%d", time.Now().UnixNano()/int64(time.Millisecond))
	}

	fmt.Fprintln(out, "--> Submit Transaction: InitLedger, function creates the initial set of products on the ledger")
	if err := svc.InitLedger(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "*** Transaction committed successfully")

	fmt.Fprintln(out, "--> Evaluate Transaction: GetAllProducts, function returns all the current products on the ledger")
	all, err := svc.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	printResult(out, all)

	fmt.Fprintf(out, "--> Submit Transaction: CreateProduct, creates new product %s\n", productID)
	if _, err = svc.CreateProduct(ctx, &pltypes.Product{
		ID:          productID,
		Name:        "Example Product",
		Status:      pltypes.ProductStatusOrderCreated,
		Description: "Example product description",
	}); err != nil {
		return err
	}
	fmt.Fprintln(out, "*** Transaction committed successfully")

	fmt.Fprintf(out, "--> Evaluate Transaction: ReadProduct, function returns product %s\n", productID)
	product, err := svc.ReadProduct(ctx, productID)
	if err != nil {
		return err
	}
	printResult(out, product)

	fmt.Fprintln(out, "--> Submit Transaction: UpdateProduct asset70, asset70 does not exist and should return an error")
	_, err = svc.UpdateProduct(ctx, &pltypes.Product{
		ID:          "asset70",
		Name:        "Example Product",
		Status:      pltypes.ProductStatusInProgress,
		Description: "Example product description",
	})
	if err == nil {
		return i18n.NewError(ctx, i18n.MsgDemoUpdateDidNotFail, "asset70")
	}
	fmt.Fprintln(out, "*** Successfully caught the error:")
	var txErr *ledger.TransactionError
	if errors.As(err, &txErr) {
		fmt.Fprintf(out, "    %s\n", txErr.Message)
		for _, d := range txErr.Details {
			fmt.Fprintf(out, "    - %s\n", d)
		}
	} else {
		fmt.Fprintf(out, "    %s\n", err)
	}

	fmt.Fprintf(out, "--> Async Submit Transaction: UpdateProductStatus, updates product %s to %s\n", productID, pltypes.ProductStatusInProgress)
	change, commit, err := svc.UpdateProductStatusAsync(ctx, productID, pltypes.ProductStatusInProgress)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "*** Successfully submitted transaction to update status from %s to %s\n", change.PreviousStatus, change.Status)
	fmt.Fprintln(out, "*** Waiting for transaction commit")
	status, err := commit.Status(ctx)
	if err != nil {
		return err
	}
	if !status.Successful {
		return i18n.NewError(ctx, i18n.MsgCommitFailed, status.TransactionID, status.Code)
	}
	fmt.Fprintf(out, "*** Transaction %s committed successfully in block %d\n", status.TransactionID, status.BlockNumber)

	fmt.Fprintf(out, "--> Evaluate Transaction: ReadProduct, function returns product %s\n", productID)
	product, err = svc.ReadProduct(ctx, productID)
	if err != nil {
		return err
	}
	printResult(out, product)
	return nil
}
