// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/rgbcore/stash"
	"github.com/bitmark-inc/rgbcore/witness"
)

func runTransactionAdd(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	v, err := readValue(c, transactionEntity)
	if nil != err {
		return err
	}
	tx := v.(*witness.Transaction)

	if err := m.open(); nil != err {
		return err
	}
	if err := stash.AddTransaction(tx); nil != err {
		return err
	}
	m.log.Infof("transaction added: %s", tx.Txid)

	fmt.Fprintf(m.w, "%s\n", tx.Txid)
	return nil
}
