// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "rgb-cli"
	app.Usage = "inspect, convert and accept RGB contract data"
	app.Version = version
	app.HideVersion = true
	app.Metadata = make(map[string]interface{})

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` [$XDG_CONFIG_HOME/rgb-cli/rgb-cli.conf]",
		},
	}

	fromFlag := cli.StringFlag{
		Name:  "from, f",
		Value: formatBinary,
		Usage: " input `FORMAT` [binary|hex|base58|json|yaml]",
	}
	toFlag := cli.StringFlag{
		Name:  "to, t",
		Value: formatYAML,
		Usage: " output `FORMAT` [binary|hex|base58|json|yaml|debug]",
	}
	inputFlag := cli.StringFlag{
		Name:  "input, i",
		Value: "-",
		Usage: " read from `FILE` [stdin]",
	}
	outputFlag := cli.StringFlag{
		Name:  "output, o",
		Value: "-",
		Usage: " write to `FILE` [stdout]",
	}
	readFlags := []cli.Flag{fromFlag, inputFlag}
	convertFlags := []cli.Flag{fromFlag, toFlag, inputFlag, outputFlag}

	app.Commands = []cli.Command{
		{
			Name:  "consignment",
			Usage: "operations on consignments",
			Subcommands: []cli.Command{
				{
					Name:   "id",
					Usage:  "print the consignment id",
					Flags:  readFlags,
					Action: runConsignmentId,
				},
				{
					Name:   "convert",
					Usage:  "convert a consignment between formats",
					Flags:  convertFlags,
					Action: convertAction(consignmentEntity),
				},
				{
					Name:   "validate",
					Usage:  "validate a consignment against the stored transactions",
					Flags:  readFlags,
					Action: runConsignmentValidate,
				},
				{
					Name:      "finalize",
					Usage:     "conceal everything except the exposed seals",
					ArgsUsage: "\n   (* = required)",
					Flags: append([]cli.Flag{
						cli.StringSliceFlag{
							Name:  "expose, e",
							Usage: "*terminal `SEAL` to keep revealed (repeatable)",
						},
					}, convertFlags...),
					Action: runConsignmentFinalize,
				},
				{
					Name:  "reveal",
					Usage: "reveal concealed seals",
					Flags: append([]cli.Flag{
						cli.StringSliceFlag{
							Name:  "seal, s",
							Usage: " revealed `SEAL` (repeatable) [seals held by the stash]",
						},
					}, convertFlags...),
					Action: runConsignmentReveal,
				},
				{
					Name:   "accept",
					Usage:  "reveal known seals, validate and store a consignment",
					Flags:  readFlags,
					Action: runConsignmentAccept,
				},
				{
					Name:      "list",
					Usage:     "list the stored consignments of a contract",
					ArgsUsage: "CONTRACT-ID",
					Action:    runConsignmentList,
				},
			},
		},
		{
			Name:  "seal",
			Usage: "operations on single-use seals",
			Subcommands: []cli.Command{
				{
					Name:  "new",
					Usage: "create a witness-relative seal with a random blinding factor",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "method, m",
							Value: "opret1st",
							Usage: " close `METHOD` [opret1st|tapret1st]",
						},
						cli.UintFlag{
							Name:  "vout",
							Value: 0,
							Usage: " witness output `NUMBER`",
						},
						cli.BoolFlag{
							Name:  "store, s",
							Usage: " remember the seal in the stash",
						},
					},
					Action: runSealNew,
				},
				{
					Name:      "conceal",
					Usage:     "conceal a revealed seal",
					ArgsUsage: "SEAL",
					Action:    runSealConceal,
				},
				{
					Name:      "parse",
					Usage:     "parse a terminal seal",
					ArgsUsage: "SEAL",
					Action:    runSealParse,
				},
			},
		},
		convertCommand("schema", schemaEntity, convertFlags),
		convertCommand("genesis", genesisEntity, convertFlags),
		convertCommand("transition", transitionEntity, convertFlags),
		convertCommand("extension", extensionEntity, convertFlags),
		{
			Name:  "disclosure",
			Usage: "operations on disclosures",
			Subcommands: []cli.Command{
				{
					Name:   "id",
					Usage:  "print the disclosure id",
					Flags:  readFlags,
					Action: runDisclosureId,
				},
				{
					Name:   "convert",
					Usage:  "convert a disclosure between formats",
					Flags:  convertFlags,
					Action: convertAction(disclosureEntity),
				},
				{
					Name:   "store",
					Usage:  "keep a disclosure in the stash",
					Flags:  readFlags,
					Action: runDisclosureStore,
				},
			},
		},
		{
			Name:  "transaction",
			Usage: "witness transactions held for resolution",
			Subcommands: []cli.Command{
				{
					Name:   "add",
					Usage:  "add a witness transaction to the stash",
					Flags:  readFlags,
					Action: runTransactionAdd,
				},
				{
					Name:   "convert",
					Usage:  "convert a transaction between formats",
					Flags:  convertFlags,
					Action: convertAction(transactionEntity),
				},
			},
		},
		{
			Name:      "version",
			Usage:     "display rgb-cli version",
			ArgsUsage: "\n   (* = required)",
			Action:    runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			file:    c.GlobalString("config"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	// close anything a command opened
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		return m.close()
	}

	return app
}

func runVersion(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	_, err := io.WriteString(m.w, version+"\n")
	return err
}
