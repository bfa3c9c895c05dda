// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package witness - the on-chain view needed by client side validation
//
// Transactions are produced by an external resolver; only the fields
// needed to check anchors and seal closing are carried.
package witness

import (
	"fmt"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/util"
)

// TxidLength - number of bytes in a transaction id
const TxidLength = util.DigestLength

// limits to reject absurd records
const (
	maxInputs     = 1 << 16
	maxOutputs    = 1 << 16
	maxScriptSize = 10000
)

// script opcodes used to detect opret commitments
const (
	opReturn = 0x6a
	opPush32 = 0x20
)

// Txid - transaction id
// stored as little endian byte array
// represented as big endian hex value for print and JSON
type Txid [TxidLength]byte

// Outpoint - a specific output of a transaction
type Outpoint struct {
	Txid Txid   `json:"txid"`
	Vout uint32 `json:"vout"`
}

// Output - value and locking script
type Output struct {
	Value  uint64 `json:"value"`
	Script []byte `json:"script"`
}

// Transaction - resolved on-chain transaction
type Transaction struct {
	Txid    Txid       `json:"txid"`
	Inputs  []Outpoint `json:"inputs"`
	Outputs []Output   `json:"outputs"`
}

// String - big endian hex as displayed by block explorers
func (txid Txid) String() string {
	return util.DigestToHex(txid[:], true)
}

// GoString - for %#v
func (txid Txid) GoString() string {
	return "<txid:" + txid.String() + ">"
}

// MarshalText - convert txid to big endian hex text
func (txid Txid) MarshalText() ([]byte, error) {
	return []byte(txid.String()), nil
}

// UnmarshalText - convert big endian hex text into a txid
func (txid *Txid) UnmarshalText(s []byte) error {
	if err := util.DigestFromHex(txid[:], s, true); nil != err {
		return fault.ErrInvalidTxid
	}
	return nil
}

// TxidFromString - parse a big endian hex txid
func TxidFromString(s string) (Txid, error) {
	var txid Txid
	err := txid.UnmarshalText([]byte(s))
	return txid, err
}

// String - txid:vout
func (outpoint Outpoint) String() string {
	return fmt.Sprintf("%s:%d", outpoint.Txid, outpoint.Vout)
}

// OpretScript - the OP_RETURN script that carries a 32 byte commitment
func OpretScript(commitment [32]byte) []byte {
	script := make([]byte, 0, 2+len(commitment))
	script = append(script, opReturn, opPush32)
	return append(script, commitment[:]...)
}

// HasOpret - check whether any output commits to the value via OP_RETURN
func (tx *Transaction) HasOpret(commitment [32]byte) bool {
	expected := OpretScript(commitment)
	for _, output := range tx.Outputs {
		if string(expected) == string(output.Script) {
			return true
		}
	}
	return false
}

// Spends - check whether the transaction consumes an outpoint
func (tx *Transaction) Spends(outpoint Outpoint) bool {
	for _, input := range tx.Inputs {
		if input == outpoint {
			return true
		}
	}
	return false
}

// Pack - canonical binary form
func (tx *Transaction) Pack() strict.Packed {
	buffer := strict.AppendFixed(nil, tx.Txid[:])
	buffer = strict.AppendUint64(buffer, uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		buffer = strict.AppendFixed(buffer, input.Txid[:])
		buffer = strict.AppendUint64(buffer, uint64(input.Vout))
	}
	buffer = strict.AppendUint64(buffer, uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		buffer = strict.AppendUint64(buffer, output.Value)
		buffer = strict.AppendBytes(buffer, output.Script)
	}
	return buffer
}

// Unpack - decode a transaction produced by Pack
func Unpack(record []byte) (*Transaction, error) {
	r := strict.NewReader(record)

	tx := &Transaction{}
	if err := r.ReadFixed(tx.Txid[:]); nil != err {
		return nil, err
	}

	inputCount, err := r.ReadCount(maxInputs)
	if nil != err {
		return nil, err
	}
	tx.Inputs = make([]Outpoint, inputCount)
	for i := range tx.Inputs {
		if err := r.ReadFixed(tx.Inputs[i].Txid[:]); nil != err {
			return nil, err
		}
		vout, err := r.ReadUint64()
		if nil != err {
			return nil, err
		}
		if vout > 0xffffffff {
			return nil, fault.ErrValueTooLarge
		}
		tx.Inputs[i].Vout = uint32(vout)
	}

	outputCount, err := r.ReadCount(maxOutputs)
	if nil != err {
		return nil, err
	}
	tx.Outputs = make([]Output, outputCount)
	for i := range tx.Outputs {
		value, err := r.ReadUint64()
		if nil != err {
			return nil, err
		}
		script, err := r.ReadBytes(maxScriptSize)
		if nil != err {
			return nil, err
		}
		tx.Outputs[i] = Output{Value: value, Script: script}
	}

	if err := r.End(); nil != err {
		return nil, err
	}
	return tx, nil
}
