// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/rgbcore/disclosure"
	"github.com/bitmark-inc/rgbcore/stash"
)

func runDisclosureId(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	v, err := readValue(c, disclosureEntity)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", v.(*disclosure.Disclosure).Id())
	return nil
}

func runDisclosureStore(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	v, err := readValue(c, disclosureEntity)
	if nil != err {
		return err
	}
	if err := m.open(); nil != err {
		return err
	}

	id, err := stash.StoreDisclosure(v.(*disclosure.Disclosure))
	if nil != err {
		return err
	}
	m.log.Infof("disclosure stored: %s", id)

	fmt.Fprintf(m.w, "%s\n", id)
	return nil
}
