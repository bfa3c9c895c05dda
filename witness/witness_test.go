// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package witness_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/witness"
)

const txidText = "4bf8131ca2a32eadc0b7e14b48ecc7c87288a7b6b79757c8290834bacfda16aa"

func makeTransaction(t *testing.T) *witness.Transaction {
	txid, err := witness.TxidFromString(txidText)
	assert.Nil(t, err, "txid")

	var commitment [32]byte
	commitment[0] = 0x55
	commitment[31] = 0xaa

	return &witness.Transaction{
		Txid: txid,
		Inputs: []witness.Outpoint{
			{Txid: witness.Txid{1, 2, 3}, Vout: 7},
			{Txid: witness.Txid{4, 5, 6}, Vout: 0x12345},
		},
		Outputs: []witness.Output{
			{Value: 5000, Script: []byte{0x00, 0x14, 0xde, 0xad}},
			{Value: 0, Script: witness.OpretScript(commitment)},
		},
	}
}

func TestTxidText(t *testing.T) {
	txid, err := witness.TxidFromString(txidText)
	assert.Nil(t, err, "parse")
	assert.Equal(t, byte(0xaa), txid[0], "txid is not stored little endian")
	assert.Equal(t, txidText, txid.String(), "round trip")
	assert.Equal(t, "<txid:"+txidText+">", txid.GoString(), "go string")

	b, err := json.Marshal(txid)
	assert.Nil(t, err, "json marshal")
	assert.Equal(t, `"`+txidText+`"`, string(b), "json text")

	var decoded witness.Txid
	err = json.Unmarshal(b, &decoded)
	assert.Nil(t, err, "json unmarshal")
	assert.Equal(t, txid, decoded, "json round trip")

	_, err = witness.TxidFromString(txidText[2:])
	assert.Equal(t, fault.ErrInvalidTxid, err, "short txid accepted")
}

func TestOutpointString(t *testing.T) {
	txid, _ := witness.TxidFromString(txidText)
	outpoint := witness.Outpoint{Txid: txid, Vout: 3}
	assert.Equal(t, txidText+":3", outpoint.String(), "outpoint text")
}

func TestPackUnpack(t *testing.T) {
	tx := makeTransaction(t)

	packed := tx.Pack()
	decoded, err := witness.Unpack(packed)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, tx, decoded, "round trip")

	_, err = witness.Unpack(packed[:len(packed)-1])
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated record accepted")

	_, err = witness.Unpack(append(packed, 0x00))
	assert.Equal(t, fault.ErrTrailingBytes, err, "trailing bytes accepted")
}

func TestHasOpret(t *testing.T) {
	tx := makeTransaction(t)

	var commitment [32]byte
	commitment[0] = 0x55
	commitment[31] = 0xaa
	assert.True(t, tx.HasOpret(commitment), "commitment not found")

	commitment[1] = 0x01
	assert.False(t, tx.HasOpret(commitment), "wrong commitment found")
}

func TestSpends(t *testing.T) {
	tx := makeTransaction(t)

	assert.True(t, tx.Spends(witness.Outpoint{Txid: witness.Txid{1, 2, 3}, Vout: 7}), "input not detected")
	assert.False(t, tx.Spends(witness.Outpoint{Txid: witness.Txid{1, 2, 3}, Vout: 8}), "wrong vout detected")
	assert.False(t, tx.Spends(witness.Outpoint{Txid: tx.Txid, Vout: 0}), "own output detected as input")
}
