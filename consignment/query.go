// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consignment

import (
	"bytes"
	"sort"

	"github.com/bitmark-inc/rgbcore/anchor"
	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/witness"
)

// Txids - every witness transaction referenced by an anchor
func (c *FullConsignment) Txids() map[witness.Txid]struct{} {
	txids := make(map[witness.Txid]struct{}, len(c.AnchoredBundles))
	for _, ab := range c.AnchoredBundles {
		txids[ab.Anchor.Txid] = struct{}{}
	}
	return txids
}

// NodeIds - genesis, every bundle member and every extension
func (c *FullConsignment) NodeIds() map[contract.NodeId]struct{} {
	ids := map[contract.NodeId]struct{}{
		c.Genesis.NodeId(): {},
	}
	for _, ab := range c.AnchoredBundles {
		for id := range ab.Bundle.KnownNodeIds() {
			ids[id] = struct{}{}
		}
	}
	for _, e := range c.StateExtensions {
		ids[e.NodeId()] = struct{}{}
	}
	return ids
}

// EndpointBundleIds - distinct endpoint bundle ids in ascending order
func (c *FullConsignment) EndpointBundleIds() []bundle.Id {
	seen := make(map[bundle.Id]struct{}, len(c.Endpoints))
	ids := make([]bundle.Id, 0, len(c.Endpoints))
	for _, e := range c.Endpoints {
		if _, ok := seen[e.BundleId]; ok {
			continue
		}
		seen[e.BundleId] = struct{}{}
		ids = append(ids, e.BundleId)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	return ids
}

// EndpointBundles - the bundles named by endpoints
//
// fails if any endpoint names a bundle that is not present
func (c *FullConsignment) EndpointBundles() ([]*bundle.TransitionBundle, error) {
	ids := c.EndpointBundleIds()
	bundles := make([]*bundle.TransitionBundle, 0, len(ids))
	for _, id := range ids {
		b, _, err := c.BundleById(id)
		if nil != err {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}

// BundleById - bundle and its anchor
func (c *FullConsignment) BundleById(id bundle.Id) (*bundle.TransitionBundle, anchor.Anchor, error) {
	for _, ab := range c.AnchoredBundles {
		if id == ab.Bundle.BundleId() {
			return ab.Bundle, ab.Anchor, nil
		}
	}
	return nil, anchor.Anchor{}, fault.ErrBundleAbsent
}

// KnownTransitionsByBundleId - fully known transitions of one bundle
func (c *FullConsignment) KnownTransitionsByBundleId(id bundle.Id) ([]*contract.Transition, error) {
	b, _, err := c.BundleById(id)
	if nil != err {
		return nil, err
	}
	return b.KnownTransitions(), nil
}

// TransitionById - a fully known transition from any bundle
func (c *FullConsignment) TransitionById(id contract.NodeId) (*contract.Transition, error) {
	t, _, err := c.TransitionWitnessById(id)
	return t, err
}

// TransitionWitnessById - a transition with the txid of its witness
func (c *FullConsignment) TransitionWitnessById(id contract.NodeId) (*contract.Transition, witness.Txid, error) {
	for _, ab := range c.AnchoredBundles {
		if t, ok := ab.Bundle.TransitionById(id); ok {
			return t, ab.Anchor.Txid, nil
		}
	}
	return nil, witness.Txid{}, fault.ErrTransitionAbsent
}

// ExtensionById - a state extension
func (c *FullConsignment) ExtensionById(id contract.NodeId) (*contract.Extension, error) {
	for _, e := range c.StateExtensions {
		if id == e.NodeId() {
			return e, nil
		}
	}
	return nil, fault.ErrExtensionAbsent
}

// EndpointTransitionById - a transition that belongs to an endpoint
// bundle; any other node is rejected with fault.ErrNotEndpoint
func (c *FullConsignment) EndpointTransitionById(id contract.NodeId) (*contract.Transition, error) {
	bundles, err := c.EndpointBundles()
	if nil != err {
		return nil, err
	}
	for _, b := range bundles {
		if _, ok := b.KnownNodeIds()[id]; !ok {
			continue
		}
		if t, ok := b.TransitionById(id); ok {
			return t, nil
		}
		return nil, fault.ErrTransitionAbsent
	}
	return nil, fault.ErrNotEndpoint
}

// EndpointTransitionsByType - known endpoint transitions of one type
func (c *FullConsignment) EndpointTransitionsByType(t contract.TransitionType) ([]*contract.Transition, error) {
	return c.EndpointTransitionsByTypes(t)
}

// EndpointTransitionsByTypes - known endpoint transitions of any of the
// given types
func (c *FullConsignment) EndpointTransitionsByTypes(types ...contract.TransitionType) ([]*contract.Transition, error) {
	wanted := make(map[contract.TransitionType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}

	bundles, err := c.EndpointBundles()
	if nil != err {
		return nil, err
	}
	transitions := make([]*contract.Transition, 0)
	for _, b := range bundles {
		for _, t := range b.KnownTransitions() {
			if _, ok := wanted[t.TransitionType]; ok {
				transitions = append(transitions, t)
			}
		}
	}
	return transitions, nil
}
