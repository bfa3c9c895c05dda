// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consignment

import (
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/witness"
)

// TransitionWitness - a transition with the txid of its witness
type TransitionWitness struct {
	Transition *contract.Transition
	Txid       witness.Txid
}

// ChainIter - walks from an endpoint towards genesis through one parent
// of a single owned right type at each step
//
// Next returns false at the end of the chain or on the first broken
// link; IsErr and Err report which
type ChainIter struct {
	consignment *FullConsignment
	connectedBy contract.OwnedRightType
	genesisId   contract.NodeId
	next        *TransitionWitness
	err         error
}

// ChainIter - start a chain walk at an endpoint transition
//
// a start node that is not an endpoint yields nothing and leaves the
// error in the iterator
func (c *FullConsignment) ChainIter(start contract.NodeId, connectedBy contract.OwnedRightType) *ChainIter {
	it := &ChainIter{
		consignment: c,
		connectedBy: connectedBy,
		genesisId:   c.Genesis.NodeId(),
	}
	if _, err := c.EndpointTransitionById(start); nil != err {
		it.err = err
		return it
	}
	it.step(start)
	return it
}

func (it *ChainIter) step(id contract.NodeId) {
	t, txid, err := it.consignment.TransitionWitnessById(id)
	if nil != err {
		it.err = err
		return
	}
	it.next = &TransitionWitness{
		Transition: t,
		Txid:       txid,
	}
}

// Next - the next transition in the chain
func (it *ChainIter) Next() (TransitionWitness, bool) {
	if nil == it.next {
		return TransitionWitness{}, false
	}
	item := *it.next
	it.next = nil

	outputs := item.Transition.ParentOutputsByType(it.connectedBy)
	if 0 != len(outputs) && it.genesisId != outputs[0].NodeId {
		it.step(outputs[0].NodeId)
	}
	return item, true
}

// IsErr - true if the walk stopped on a broken link
func (it *ChainIter) IsErr() bool {
	return nil != it.err
}

// Err - the error that stopped the walk, nil at a clean end
func (it *ChainIter) Err() error {
	return it.err
}

// MeshIter - every known transition of the selected types, bundle by
// bundle in consignment order
type MeshIter struct {
	bundles []AnchoredBundle
	types   map[contract.TransitionType]struct{}
	bundle  int
	item    int
}

// MeshIter - scan all bundles for transitions of the given types
func (c *FullConsignment) MeshIter(types ...contract.TransitionType) *MeshIter {
	wanted := make(map[contract.TransitionType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}
	return &MeshIter{
		bundles: c.AnchoredBundles,
		types:   wanted,
	}
}

// Next - the next matching transition
func (it *MeshIter) Next() (TransitionWitness, bool) {
	for it.bundle < len(it.bundles) {
		ab := it.bundles[it.bundle]
		transitions := ab.Bundle.KnownTransitions()
		for it.item < len(transitions) {
			t := transitions[it.item]
			it.item += 1
			if _, ok := it.types[t.TransitionType]; ok {
				return TransitionWitness{
					Transition: t,
					Txid:       ab.Anchor.Txid,
				}, true
			}
		}
		it.bundle += 1
		it.item = 0
	}
	return TransitionWitness{}, false
}
