// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/rgbcore/consignment"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/disclosure"
	"github.com/bitmark-inc/rgbcore/schema"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/util"
	"github.com/bitmark-inc/rgbcore/witness"
)

// data formats
const (
	formatBinary = "binary"
	formatHex    = "hex"
	formatBase58 = "base58"
	formatJSON   = "json"
	formatYAML   = "yaml"
	formatDebug  = "debug"
)

// anything with a canonical encoding
type packable interface {
	Pack() strict.Packed
}

// entity - how to decode one kind of data
type entity struct {
	name   string
	unpack func([]byte) (packable, error)
	empty  func() packable
}

var (
	consignmentEntity = entity{
		name: "consignment",
		unpack: func(b []byte) (packable, error) {
			return consignment.Unpack(b)
		},
		empty: func() packable { return &consignment.FullConsignment{} },
	}
	schemaEntity = entity{
		name: "schema",
		unpack: func(b []byte) (packable, error) {
			return schema.Unpack(b)
		},
		empty: func() packable { return &schema.Schema{} },
	}
	genesisEntity = entity{
		name: "genesis",
		unpack: func(b []byte) (packable, error) {
			return contract.UnpackGenesis(b)
		},
		empty: func() packable { return &contract.Genesis{} },
	}
	transitionEntity = entity{
		name: "transition",
		unpack: func(b []byte) (packable, error) {
			return contract.UnpackTransition(b)
		},
		empty: func() packable { return &contract.Transition{} },
	}
	extensionEntity = entity{
		name: "extension",
		unpack: func(b []byte) (packable, error) {
			return contract.UnpackExtension(b)
		},
		empty: func() packable { return &contract.Extension{} },
	}
	disclosureEntity = entity{
		name: "disclosure",
		unpack: func(b []byte) (packable, error) {
			return disclosure.Unpack(b)
		},
		empty: func() packable { return disclosure.New("") },
	}
	transactionEntity = entity{
		name: "transaction",
		unpack: func(b []byte) (packable, error) {
			return witness.Unpack(b)
		},
		empty: func() packable { return &witness.Transaction{} },
	}
)

// decode - turn input data of the given format into a value
func (en entity) decode(data []byte, format string) (packable, error) {
	switch format {
	case formatBinary:
		return en.unpackChecked(data)

	case formatHex:
		b, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if nil != err {
			return nil, err
		}
		return en.unpackChecked(b)

	case formatBase58:
		b, err := util.FromBase58Check(util.KindPacked, strings.TrimSpace(string(data)))
		if nil != err {
			return nil, err
		}
		return en.unpackChecked(b)

	case formatJSON:
		v := en.empty()
		if err := json.Unmarshal(data, v); nil != err {
			return nil, err
		}
		return v, nil

	case formatYAML:
		j, err := fromYAML(data)
		if nil != err {
			return nil, err
		}
		return en.decode(j, formatJSON)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInputFormat, format)
	}
}

// avoid a typed nil inside a non-nil interface
func (en entity) unpackChecked(data []byte) (packable, error) {
	v, err := en.unpack(data)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", en.name, err)
	}
	return v, nil
}

// encode - write a value in the given format
func encode(w io.Writer, format string, v packable) error {
	switch format {
	case formatBinary:
		_, err := w.Write(v.Pack())
		return err

	case formatHex:
		_, err := fmt.Fprintf(w, "%s\n", hex.EncodeToString(v.Pack()))
		return err

	case formatBase58:
		_, err := fmt.Fprintf(w, "%s\n", util.ToBase58Check(util.KindPacked, v.Pack()))
		return err

	case formatJSON:
		return printJson(w, v)

	case formatYAML:
		b, err := toYAML(v)
		if nil != err {
			return err
		}
		_, err = w.Write(b)
		return err

	case formatDebug:
		packed := v.Pack()
		_, err := fmt.Fprintf(w, "%T: %d bytes\n%s", v, len(packed), hex.Dump(packed))
		return err

	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
	}
}

// readValue - decode the --input file using --from
func readValue(c *cli.Context, en entity) (packable, error) {
	data, err := readInput(c.String("input"))
	if nil != err {
		return nil, err
	}
	return en.decode(data, c.String("from"))
}

// writeValue - encode to the --output file using --to
func writeValue(c *cli.Context, w io.Writer, v packable) error {
	name := c.String("output")
	if "" == name || "-" == name {
		return encode(w, c.String("to"), v)
	}

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if nil != err {
		return err
	}
	err = encode(f, c.String("to"), v)
	if closeErr := f.Close(); nil == err {
		err = closeErr
	}
	return err
}

func readInput(name string) ([]byte, error) {
	if "" == name || "-" == name {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(name)
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
