// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consignment

import (
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/seal"
)

// Finalize - prepare the consignment for a single recipient
//
// endpoints not in expose are dropped and their seals concealed; every
// state not bound to an exposed seal is concealed. Bundles, anchors and
// node ids are unchanged. Returns the number of fields concealed, so a
// repeated call with the same expose set returns zero.
func (c *FullConsignment) Finalize(expose []seal.Terminal) int {
	exposed := contract.SealSet{}
	for _, t := range expose {
		exposed.Add(t.Conceal())
	}

	kept := make([]Endpoint, 0, len(c.Endpoints))
	removed := contract.SealSet{}
	for _, e := range c.Endpoints {
		concealed := e.Seal.Conceal()
		if exposed.Has(concealed) {
			kept = append(kept, e)
		} else {
			removed.Add(concealed)
		}
	}
	c.Endpoints = kept

	count := 0
	for _, ab := range c.AnchoredBundles {
		count += ab.Bundle.MapTransitions(func(t *contract.Transition) int {
			return t.ConcealStateExcept(exposed) + t.ConcealSeals(removed)
		})
	}

	for _, e := range c.StateExtensions {
		count += e.ConcealStateExcept(exposed)
	}
	return count
}

// RevealSeals - attach the preimages of concealed seals the caller knows
//
// strictly additive: unknown seals stay concealed. Returns the number of
// seals revealed.
func (c *FullConsignment) RevealSeals(known []seal.Revealed) int {
	count := 0
	for _, ab := range c.AnchoredBundles {
		count += ab.Bundle.MapTransitions(func(t *contract.Transition) int {
			return t.RevealSeals(known)
		})
	}
	for _, e := range c.StateExtensions {
		count += e.RevealSeals(known)
	}
	return count
}
