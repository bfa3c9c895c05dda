// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/rgbcore/consignment"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/stash"
	"github.com/bitmark-inc/rgbcore/validation"
)

type consignmentResult struct {
	Id     consignment.Id      `json:"id"`
	Valid  validation.Validity `json:"validity"`
	Status *validation.Status  `json:"status"`
}

func readConsignment(c *cli.Context) (*consignment.FullConsignment, error) {
	v, err := readValue(c, consignmentEntity)
	if nil != err {
		return nil, err
	}
	return v.(*consignment.FullConsignment), nil
}

func runConsignmentId(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	fc, err := readConsignment(c)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", fc.Id())
	if m.verbose {
		fmt.Fprintf(m.e, "contract: %s\n", fc.ContractId())
	}
	return nil
}

func runConsignmentValidate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	fc, err := readConsignment(c)
	if nil != err {
		return err
	}
	if err := m.open(); nil != err {
		return err
	}

	status := validation.Validate(fc, m.resolver())
	m.log.Infof("validate: %s  validity: %s", fc.Id(), status.Validity())

	return printJson(m.w, consignmentResult{
		Id:     fc.Id(),
		Status: status,
		Valid:  status.Validity(),
	})
}

func runConsignmentFinalize(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	seals := c.StringSlice("expose")
	if 0 == len(seals) {
		return ErrNoExposedSeals
	}
	expose := make([]seal.Terminal, 0, len(seals))
	for _, s := range seals {
		t, err := seal.ParseTerminal(s)
		if nil != err {
			return fmt.Errorf("seal: %q: %w", s, err)
		}
		expose = append(expose, t)
	}

	fc, err := readConsignment(c)
	if nil != err {
		return err
	}

	concealed := fc.Finalize(expose)
	if m.verbose {
		fmt.Fprintf(m.e, "fields concealed: %d\n", concealed)
	}
	return writeValue(c, m.w, fc)
}

func runConsignmentReveal(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	fc, err := readConsignment(c)
	if nil != err {
		return err
	}

	var known []seal.Revealed
	if seals := c.StringSlice("seal"); 0 != len(seals) {
		for _, s := range seals {
			r, err := seal.ParseRevealed(s)
			if nil != err {
				return fmt.Errorf("seal: %q: %w", s, err)
			}
			known = append(known, r)
		}
	} else {
		if err := m.open(); nil != err {
			return err
		}
		known, err = stash.KnownSeals()
		if nil != err {
			return err
		}
	}

	revealed := fc.RevealSeals(known)
	if m.verbose {
		fmt.Fprintf(m.e, "seals revealed: %d\n", revealed)
	}
	return writeValue(c, m.w, fc)
}

func runConsignmentAccept(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	fc, err := readConsignment(c)
	if nil != err {
		return err
	}
	if err := m.open(); nil != err {
		return err
	}

	status, err := stash.Accept(fc, m.resolver())
	if nil != err && fault.ErrConsignmentInvalid != err {
		return err
	}
	printJson(m.w, consignmentResult{
		Id:     fc.Id(),
		Status: status,
		Valid:  status.Validity(),
	})
	return err
}

func runConsignmentList(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	contractId, err := contract.ContractIdFromString(c.Args().First())
	if nil != err {
		return err
	}
	if err := m.open(); nil != err {
		return err
	}

	ids, err := stash.ConsignmentIds(contractId)
	if nil != err {
		return err
	}
	return printJson(m.w, ids)
}
