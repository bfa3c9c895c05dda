// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// convertCommand - a top level command whose only operation is convert
func convertCommand(name string, en entity, flags []cli.Flag) cli.Command {
	return cli.Command{
		Name:  name,
		Usage: "operations on " + name + " data",
		Subcommands: []cli.Command{
			{
				Name:   "convert",
				Usage:  "convert a " + name + " between formats",
				Flags:  flags,
				Action: convertAction(en),
			},
		},
	}
}

func convertAction(en entity) cli.ActionFunc {
	return func(c *cli.Context) error {
		m := c.App.Metadata["config"].(*metadata)

		v, err := readValue(c, en)
		if nil != err {
			return err
		}
		return writeValue(c, m.w, v)
	}
}
