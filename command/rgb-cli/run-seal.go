// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/stash"
)

type sealResult struct {
	Kind      string         `json:"kind,omitempty"`
	Revealed  string         `json:"revealed,omitempty"`
	Concealed seal.Concealed `json:"concealed"`
}

func runSealNew(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	method, err := seal.ParseCloseMethod(c.String("method"))
	if nil != err {
		return err
	}
	revealed := seal.NewVoutSeal(method, uint32(c.Uint("vout"))).ToRevealed()

	if c.Bool("store") {
		if err := m.open(); nil != err {
			return err
		}
		if err := stash.AddSeal(revealed); nil != err {
			return err
		}
		m.log.Infof("new seal: %s", revealed.Conceal())
	}

	return printJson(m.w, sealResult{
		Revealed:  revealed.String(),
		Concealed: revealed.Conceal(),
	})
}

func runSealConceal(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := c.Args().First()
	if "" == s {
		return ErrMissingSeal
	}
	revealed, err := seal.ParseRevealed(s)
	if nil != err {
		return fmt.Errorf("seal: %q: %w", s, err)
	}

	fmt.Fprintf(m.w, "%s\n", revealed.Conceal())
	return nil
}

func runSealParse(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := c.Args().First()
	if "" == s {
		return ErrMissingSeal
	}
	terminal, err := seal.ParseTerminal(s)
	if nil != err {
		return fmt.Errorf("seal: %q: %w", s, err)
	}

	result := sealResult{
		Concealed: terminal.Conceal(),
	}
	switch t := terminal.(type) {
	case seal.ConcealedUtxo:
		result.Kind = "concealed-utxo"
	case seal.WitnessVout:
		result.Kind = "witness-vout"
		result.Revealed = t.ToRevealed().String()
	}
	return printJson(m.w, result)
}
