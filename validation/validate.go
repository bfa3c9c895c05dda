// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validation - structural checks of a consignment against the
// chain
//
// the graph is walked from the endpoints back to genesis. Every anchor
// on the way must be committed in its resolved witness transaction and
// every revealed parent seal must be spent by it. Schema rules are left
// to higher layers.
package validation

import (
	"errors"

	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/consignment"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/resolver"
	"github.com/bitmark-inc/rgbcore/witness"
)

// where a revealed transition sits in the consignment
type location struct {
	anchored consignment.AnchoredBundle
	bundleId bundle.Id
}

type validator struct {
	consignment  *consignment.FullConsignment
	resolver     resolver.Resolver
	status       *Status
	contractId   contract.ContractId
	genesisId    contract.NodeId
	locations    map[contract.NodeId]location
	transactions map[witness.Txid]*witness.Transaction
	anchors      map[bundle.Id]struct{}
	visited      map[contract.NodeId]struct{}
	queue        []contract.NodeId
}

// Validate - check the consignment, resolving witness transactions
// through r
//
// never stops at the first problem: resolution errors and failures are
// collected for the whole graph
func Validate(c *consignment.FullConsignment, r resolver.Resolver) *Status {
	v := &validator{
		consignment:  c,
		resolver:     r,
		status:       &Status{},
		contractId:   c.ContractId(),
		genesisId:    c.Genesis.NodeId(),
		locations:    make(map[contract.NodeId]location),
		transactions: make(map[witness.Txid]*witness.Transaction),
		anchors:      make(map[bundle.Id]struct{}),
		visited:      make(map[contract.NodeId]struct{}),
	}
	for _, ab := range c.AnchoredBundles {
		bundleId := ab.Bundle.BundleId()
		for _, t := range ab.Bundle.KnownTransitions() {
			v.locations[t.NodeId()] = location{
				anchored: ab,
				bundleId: bundleId,
			}
		}
	}

	v.validateSchema()
	v.validateEndpoints()
	v.walk()
	v.validateExcess()
	return v.status
}

func (v *validator) validateSchema() {
	if v.consignment.Schema.SchemaId() != v.consignment.Genesis.SchemaId {
		v.status.fail(v.genesisId, witness.Txid{}, fault.ErrSchemaMismatch)
	}
}

// every endpoint must name a bundle in the consignment whose known
// transitions assign the endpoint seal
func (v *validator) validateEndpoints() {
	for _, e := range v.consignment.Endpoints {
		b, a, err := v.consignment.BundleById(e.BundleId)
		if nil != err {
			v.status.fail(contract.NodeId{}, witness.Txid{}, err)
			continue
		}

		concealed := e.Seal.Conceal()
		assigned := false
		for _, t := range b.KnownTransitions() {
			for _, rightType := range t.OwnedRights.Types() {
				for _, assignment := range t.OwnedRights[rightType] {
					if concealed == assignment.Seal.Conceal() {
						assigned = true
					}
				}
			}
			v.enqueue(t.NodeId())
		}
		if !assigned {
			v.status.fail(contract.NodeId{}, a.Txid, fault.ErrEndpointSealAbsent)
		}
	}
}

func (v *validator) enqueue(id contract.NodeId) {
	if _, ok := v.visited[id]; ok {
		return
	}
	v.visited[id] = struct{}{}
	v.queue = append(v.queue, id)
}

func (v *validator) walk() {
	for 0 != len(v.queue) {
		id := v.queue[0]
		v.queue = v.queue[1:]

		if id == v.genesisId {
			continue
		}
		if loc, ok := v.locations[id]; ok {
			t, _ := loc.anchored.Bundle.TransitionById(id)
			v.validateTransition(t, loc)
			continue
		}
		if e, err := v.consignment.ExtensionById(id); nil == err {
			v.validateExtension(e)
			continue
		}
		v.status.fail(id, witness.Txid{}, fault.ErrTransitionAbsent)
	}
}

func (v *validator) validateTransition(t *contract.Transition, loc location) {
	id := t.NodeId()
	txid := loc.anchored.Anchor.Txid
	tx := v.resolve(id, txid)

	if _, checked := v.anchors[loc.bundleId]; !checked && nil != tx {
		v.anchors[loc.bundleId] = struct{}{}
		if err := loc.anchored.Anchor.Verify(v.contractId, loc.bundleId, tx); nil != err {
			v.status.fail(id, txid, err)
		}
	}

	for _, output := range t.ParentOwnedRights.Outputs() {
		rights, parentTxid, ok := v.parent(id, output.NodeId)
		if !ok {
			continue
		}
		assignment, ok := rights.Assignment(output.Type, output.No)
		if !ok {
			v.status.fail(id, txid, fault.ErrParentOutputAbsent)
			continue
		}
		revealed, ok := assignment.Seal.Revealed()
		if !ok {
			v.status.warn(output.NodeId, fault.ErrSealConcealed)
			continue
		}
		if nil != tx && !tx.Spends(revealed.Outpoint(parentTxid)) {
			v.status.fail(id, txid, fault.ErrSealNotClosed)
		}
	}
}

func (v *validator) validateExtension(e *contract.Extension) {
	id := e.NodeId()
	if e.ContractId != v.contractId {
		v.status.fail(id, witness.Txid{}, fault.ErrContractMismatch)
	}
	for _, parentId := range e.ParentPublicRights.NodeIds() {
		v.parent(id, parentId)
	}
}

// owned rights of a parent node and the txid its witness-relative
// seals refer to; a parent that is not in the consignment is a failure
func (v *validator) parent(child contract.NodeId, id contract.NodeId) (contract.OwnedRights, witness.Txid, bool) {
	if id == v.genesisId {
		return v.consignment.Genesis.OwnedRights, witness.Txid{}, true
	}
	if loc, ok := v.locations[id]; ok {
		v.enqueue(id)
		t, _ := loc.anchored.Bundle.TransitionById(id)
		return t.OwnedRights, loc.anchored.Anchor.Txid, true
	}
	if e, err := v.consignment.ExtensionById(id); nil == err {
		v.enqueue(id)
		return e.OwnedRights, witness.Txid{}, true
	}
	v.status.fail(child, witness.Txid{}, fault.ErrTransitionAbsent)
	return nil, witness.Txid{}, false
}

// resolve a witness once; not found is recorded as unresolved, any
// other error as a failure
func (v *validator) resolve(id contract.NodeId, txid witness.Txid) *witness.Transaction {
	if tx, ok := v.transactions[txid]; ok {
		return tx
	}
	tx, err := v.resolver.ResolveTx(txid)
	if nil != err {
		tx = nil
		if errors.Is(err, fault.ErrTransactionNotFound) {
			v.status.unresolved(txid)
		} else {
			v.status.fail(id, txid, err)
		}
	}
	v.transactions[txid] = tx
	return tx
}

// revealed nodes that no endpoint depends on
func (v *validator) validateExcess() {
	for _, ab := range v.consignment.AnchoredBundles {
		for _, t := range ab.Bundle.KnownTransitions() {
			if _, ok := v.visited[t.NodeId()]; !ok {
				v.status.warn(t.NodeId(), fault.ErrExcessiveNode)
			}
		}
	}
	for _, e := range v.consignment.StateExtensions {
		if _, ok := v.visited[e.NodeId()]; !ok {
			v.status.warn(e.NodeId(), fault.ErrExcessiveNode)
		}
	}
}
