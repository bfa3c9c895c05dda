// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test data
//
// Chain is a contract of genesis followed by a number of transfers, each
// anchored in its own witness transaction that spends the previous seal.
package fixtures

import (
	"github.com/bitmark-inc/rgbcore/anchor"
	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/consignment"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/schema"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/witness"
)

// type ids used by the fixtures
const (
	AssetRight     = contract.OwnedRightType(1)
	TransferType   = contract.TransitionType(1)
	IssueExtension = contract.ExtensionType(2)
	TickerField    = contract.FieldType(10)
)

// GenesisOutpoint - the output the genesis assigns to
var GenesisOutpoint = witness.Outpoint{
	Txid: witness.Txid{0x01, 0x02, 0x03},
	Vout: 0,
}

// Chain - test contract history
type Chain struct {
	Schema       *schema.Schema
	Genesis      *contract.Genesis
	GenesisSeal  seal.Revealed
	Transitions  []*contract.Transition
	Seals        []seal.VoutSeal
	Bundles      []*bundle.TransitionBundle
	Anchors      []anchor.Anchor
	Transactions []*witness.Transaction
}

// NewChain - genesis plus the given number of transfers; transfer i
// spends the single output of the previous node
func NewChain(transfers int) *Chain {
	c := &Chain{
		Schema: &schema.Schema{
			Name: "test-asset",
			Data: []byte{0x01, 0x02},
		},
		GenesisSeal: seal.Revealed{
			Method:   seal.OpretFirst,
			Txid:     seal.ExplicitTx(GenesisOutpoint.Txid),
			Vout:     GenesisOutpoint.Vout,
			Blinding: 1000,
		},
	}

	c.Genesis = &contract.Genesis{
		SchemaId: c.Schema.SchemaId(),
		Chain:    "testnet",
		Metadata: contract.Metadata{
			TickerField: {[]byte("TST")},
		},
		OwnedRights: contract.OwnedRights{
			AssetRight: {
				{Seal: contract.RevealedSeal(c.GenesisSeal), State: contract.WithState([]byte{100}, 1)},
			},
		},
	}
	contractId := c.Genesis.ContractId()

	parent := c.Genesis.NodeId()
	spent := GenesisOutpoint
	for i := 0; i < transfers; i += 1 {
		s := seal.WithVoutSeal(seal.OpretFirst, 0, uint64(2000+i))
		t := &contract.Transition{
			TransitionType: TransferType,
			ParentOwnedRights: contract.ParentOwnedRights{
				parent: {AssetRight: {0}},
			},
			OwnedRights: contract.OwnedRights{
				AssetRight: {
					{Seal: contract.RevealedSeal(s.ToRevealed()), State: contract.WithState([]byte{100}, uint64(10+i))},
				},
			},
		}

		b, err := bundle.New([]bundle.Item{{Transition: t, Inputs: []uint16{0}}}, nil)
		if nil != err {
			panic(err)
		}

		commitment, err := anchor.Commit(map[contract.ContractId]bundle.Id{contractId: b.BundleId()}, uint64(i))
		if nil != err {
			panic(err)
		}

		tx := &witness.Transaction{
			Txid:   witness.Txid{0xa0, byte(i)},
			Inputs: []witness.Outpoint{spent},
			Outputs: []witness.Output{
				{Value: 0, Script: commitment.Script()},
				{Value: 546, Script: []byte{0x00, 0x14, byte(i)}},
			},
		}
		a, err := commitment.Anchor(tx.Txid, contractId)
		if nil != err {
			panic(err)
		}

		c.Transitions = append(c.Transitions, t)
		c.Seals = append(c.Seals, s)
		c.Bundles = append(c.Bundles, b)
		c.Anchors = append(c.Anchors, a)
		c.Transactions = append(c.Transactions, tx)

		parent = t.NodeId()
		spent = s.ToRevealed().Outpoint(tx.Txid)
	}
	return c
}

// Consignment - the full history with the last transfer as endpoint
//
// the result shares no memory with the chain
func (c *Chain) Consignment() *consignment.FullConsignment {
	anchored := make([]consignment.AnchoredBundle, len(c.Bundles))
	for i, b := range c.Bundles {
		anchored[i] = consignment.AnchoredBundle{
			Anchor: c.Anchors[i],
			Bundle: b,
		}
	}

	endpoints := []consignment.Endpoint{}
	if n := len(c.Bundles); n > 0 {
		endpoints = append(endpoints, consignment.Endpoint{
			BundleId: c.Bundles[n-1].BundleId(),
			Seal:     seal.WitnessVout{VoutSeal: c.Seals[n-1]},
		})
	}

	shared := consignment.New(c.Schema, c.Genesis, endpoints, anchored, nil)
	copied, err := consignment.Unpack(shared.Pack())
	if nil != err {
		panic(err)
	}
	return copied
}

// Last - the endpoint transition
func (c *Chain) Last() *contract.Transition {
	return c.Transitions[len(c.Transitions)-1]
}
