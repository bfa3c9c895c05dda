// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/seal"
)

const assetRight = contract.OwnedRightType(1)

func makeTransition(vout uint32) *contract.Transition {
	s := seal.WithVoutSeal(seal.OpretFirst, vout, uint64(vout)+100).ToRevealed()
	return &contract.Transition{
		TransitionType: 1,
		ParentOwnedRights: contract.ParentOwnedRights{
			contract.NodeId{0xaa}: {assetRight: {uint16(vout)}},
		},
		OwnedRights: contract.OwnedRights{
			assetRight: {
				{Seal: contract.RevealedSeal(s), State: contract.WithState([]byte{byte(vout)}, 1)},
			},
		},
	}
}

func makeBundle(t *testing.T) *bundle.TransitionBundle {
	b, err := bundle.New(
		[]bundle.Item{
			{Transition: makeTransition(1), Inputs: []uint16{0}},
			{Transition: makeTransition(2), Inputs: []uint16{1, 2}},
		},
		[]bundle.ConcealedItem{
			{NodeId: contract.NodeId{0x01}, Inputs: []uint16{3}},
		},
	)
	assert.Nil(t, err, "new")
	return b
}

func TestNew(t *testing.T) {
	b := makeBundle(t)
	assert.Equal(t, 3, b.Len(), "length")
	assert.Equal(t, 2, len(b.KnownTransitions()), "known transitions")
	assert.Equal(t, 3, len(b.KnownNodeIds()), "known node ids")

	known := b.KnownTransitions()
	assert.True(t, known[0].NodeId().Compare(known[1].NodeId()) < 0, "not sorted")

	tr := makeTransition(2)
	found, ok := b.TransitionById(tr.NodeId())
	assert.True(t, ok, "transition not found")
	assert.Equal(t, tr.NodeId(), found.NodeId(), "wrong transition")

	_, ok = b.TransitionById(contract.NodeId{0x01})
	assert.False(t, ok, "concealed transition returned")
}

func TestDuplicateRejected(t *testing.T) {
	tr := makeTransition(1)
	_, err := bundle.New(
		[]bundle.Item{{Transition: tr}},
		[]bundle.ConcealedItem{{NodeId: tr.NodeId()}},
	)
	assert.Equal(t, fault.ErrDuplicateNode, err, "duplicate accepted")
}

func TestBundleIdStable(t *testing.T) {
	b := makeBundle(t)
	id := b.BundleId()

	count := b.MapTransitions(func(tr *contract.Transition) int {
		return tr.ConcealStateExcept(contract.SealSet{})
	})
	assert.Equal(t, 2, count, "conceal count")
	assert.Equal(t, id, b.BundleId(), "bundle id changed by concealment")

	// holding a transition only by id commits identically
	tr1 := makeTransition(1)
	tr2 := makeTransition(2)
	partial, err := bundle.New(
		[]bundle.Item{{Transition: tr2, Inputs: []uint16{1, 2}}},
		[]bundle.ConcealedItem{
			{NodeId: tr1.NodeId(), Inputs: []uint16{0}},
			{NodeId: contract.NodeId{0x01}, Inputs: []uint16{3}},
		},
	)
	assert.Nil(t, err, "partial")
	assert.Equal(t, id, partial.BundleId(), "partial bundle id differs")

	other, _ := bundle.New([]bundle.Item{{Transition: tr2, Inputs: []uint16{1}}}, nil)
	assert.NotEqual(t, id, other.BundleId(), "inputs not committed")
}

func TestPackUnpack(t *testing.T) {
	b := makeBundle(t)
	packed := b.Pack()

	decoded, err := bundle.Unpack(packed)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, b, decoded, "round trip")
	assert.Equal(t, b.BundleId(), decoded.BundleId(), "bundle id")

	_, err = bundle.Unpack(append(packed, 0))
	assert.Equal(t, fault.ErrTrailingBytes, err, "trailing")
}

func TestJSON(t *testing.T) {
	b := makeBundle(t)
	data, err := json.Marshal(b)
	assert.Nil(t, err, "marshal")

	var decoded bundle.TransitionBundle
	assert.Nil(t, json.Unmarshal(data, &decoded), "unmarshal")
	assert.Equal(t, b.BundleId(), decoded.BundleId(), "bundle id")

	id := b.BundleId()
	parsed, err := bundle.IdFromString(id.String())
	assert.Nil(t, err, "id parse")
	assert.Equal(t, id, parsed, "id round trip")
}
