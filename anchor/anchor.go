// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package anchor - binding of transition bundles to a witness transaction
//
// Bundles of many contracts share one multi-message commitment whose root
// is carried in an OP_RETURN output; each contract keeps only the proof
// for its own bundle.
package anchor

import (
	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/merkle"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/witness"
)

// Anchor - proof that one bundle is committed in a transaction
type Anchor struct {
	Txid  witness.Txid `json:"txid"`
	Proof merkle.Proof `json:"proof"`
}

// Commitment - bundles of several contracts committed together
type Commitment struct {
	tree *merkle.Tree
}

// Commit - build the commitment for a set of bundles
func Commit(bundles map[contract.ContractId]bundle.Id, entropy uint64) (*Commitment, error) {
	messages := make(map[merkle.ProtocolId]merkle.Message, len(bundles))
	for contractId, bundleId := range bundles {
		messages[merkle.ProtocolId(contractId)] = merkle.Message(bundleId)
	}
	tree, err := merkle.Commit(messages, entropy)
	if nil != err {
		return nil, err
	}
	return &Commitment{
		tree: tree,
	}, nil
}

// Root - value to embed in the witness transaction
func (c *Commitment) Root() merkle.Digest {
	return c.tree.Root()
}

// Script - the OP_RETURN output script carrying the root
func (c *Commitment) Script() []byte {
	return witness.OpretScript(c.Root())
}

// Anchor - the anchor for one contract once the witness txid is known
func (c *Commitment) Anchor(txid witness.Txid, contractId contract.ContractId) (Anchor, error) {
	proof, err := c.tree.Proof(merkle.ProtocolId(contractId))
	if nil != err {
		return Anchor{}, err
	}
	return Anchor{
		Txid:  txid,
		Proof: proof,
	}, nil
}

// Root - commitment root implied by the anchor for a bundle
func (a Anchor) Root(contractId contract.ContractId, bundleId bundle.Id) (merkle.Digest, error) {
	root, err := a.Proof.Root(merkle.ProtocolId(contractId), merkle.Message(bundleId))
	if nil != err {
		return merkle.Digest{}, fault.ErrAnchorProofMismatch
	}
	return root, nil
}

// Verify - check the bundle is committed by the resolved witness
// transaction
func (a Anchor) Verify(contractId contract.ContractId, bundleId bundle.Id, tx *witness.Transaction) error {
	if nil == tx || tx.Txid != a.Txid {
		return fault.ErrWitnessTransactionMissing
	}
	root, err := a.Root(contractId, bundleId)
	if nil != err {
		return err
	}
	if !tx.HasOpret(root) {
		return fault.ErrAnchorNotCommitted
	}
	return nil
}

// Append - canonical encoding
func Append(buffer strict.Packed, a Anchor) strict.Packed {
	buffer = strict.AppendFixed(buffer, a.Txid[:])
	return a.Proof.Append(buffer)
}

// Read - decode an anchor written by Append
func Read(r *strict.Reader) (Anchor, error) {
	var a Anchor
	if err := r.ReadFixed(a.Txid[:]); nil != err {
		return Anchor{}, err
	}
	proof, err := merkle.ReadProof(r)
	if nil != err {
		return Anchor{}, err
	}
	a.Proof = proof
	return a, nil
}
