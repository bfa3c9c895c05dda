// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package anchor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rgbcore/anchor"
	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/witness"
)

func TestCommitVerify(t *testing.T) {
	c1 := contract.ContractId{1}
	c2 := contract.ContractId{2}
	b1 := bundle.Id{0x11}
	b2 := bundle.Id{0x22}

	commitment, err := anchor.Commit(map[contract.ContractId]bundle.Id{c1: b1, c2: b2}, 99)
	assert.Nil(t, err, "commit")

	tx := &witness.Transaction{
		Txid:    witness.Txid{0xee},
		Inputs:  []witness.Outpoint{{Txid: witness.Txid{0xdd}, Vout: 0}},
		Outputs: []witness.Output{{Value: 0, Script: commitment.Script()}},
	}

	a1, err := commitment.Anchor(tx.Txid, c1)
	assert.Nil(t, err, "anchor 1")
	a2, err := commitment.Anchor(tx.Txid, c2)
	assert.Nil(t, err, "anchor 2")

	assert.Nil(t, a1.Verify(c1, b1, tx), "anchor 1 verify")
	assert.Nil(t, a2.Verify(c2, b2, tx), "anchor 2 verify")

	assert.Equal(t, fault.ErrAnchorProofMismatch, a1.Verify(c2, b2, tx), "anchor used for another contract")
	assert.Equal(t, fault.ErrAnchorNotCommitted, a1.Verify(c1, b2, tx), "wrong bundle accepted")
	assert.Equal(t, fault.ErrWitnessTransactionMissing, a1.Verify(c1, b1, nil), "missing transaction")

	other := *tx
	other.Txid = witness.Txid{0xef}
	assert.Equal(t, fault.ErrWitnessTransactionMissing, a1.Verify(c1, b1, &other), "transaction mismatch")

	_, err = commitment.Anchor(tx.Txid, contract.ContractId{3})
	assert.Equal(t, fault.ErrNotFound, err, "anchor for absent contract")
}

func TestAnchorPack(t *testing.T) {
	commitment, err := anchor.Commit(map[contract.ContractId]bundle.Id{{5}: {6}}, 1)
	assert.Nil(t, err, "commit")
	a, err := commitment.Anchor(witness.Txid{7}, contract.ContractId{5})
	assert.Nil(t, err, "anchor")

	r := strict.NewReader(anchor.Append(nil, a))
	decoded, err := anchor.Read(r)
	assert.Nil(t, err, "read")
	assert.Nil(t, r.End(), "trailing")
	assert.Equal(t, a, decoded, "round trip")
}
