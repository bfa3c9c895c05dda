// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consignment_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/consignment"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/fixtures"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/witness"
)

func TestNodeIds(t *testing.T) {
	chain := fixtures.NewChain(1)
	c := chain.Consignment()

	expected := map[contract.NodeId]struct{}{
		chain.Genesis.NodeId(): {},
		chain.Last().NodeId():  {},
	}
	assert.Equal(t, expected, c.NodeIds(), "node ids")
	assert.Equal(t, uint8(consignment.Version), c.Version(), "version")
	assert.Equal(t, chain.Genesis.ContractId(), c.ContractId(), "contract id")
}

func TestNodeIdsIncludeConcealedMembers(t *testing.T) {
	chain := fixtures.NewChain(1)
	c := chain.Consignment()

	hidden := contract.NodeId{0xcc}
	b, err := bundle.New(
		[]bundle.Item{{Transition: chain.Last(), Inputs: []uint16{0}}},
		[]bundle.ConcealedItem{{NodeId: hidden, Inputs: []uint16{1}}},
	)
	assert.Nil(t, err, "bundle")
	c.AnchoredBundles[0].Bundle = b

	_, ok := c.NodeIds()[hidden]
	assert.True(t, ok, "concealed member missing")
	assert.Equal(t, 3, len(c.NodeIds()), "node id count")
}

func TestTxids(t *testing.T) {
	chain := fixtures.NewChain(2)
	c := chain.Consignment()

	expected := map[witness.Txid]struct{}{
		chain.Transactions[0].Txid: {},
		chain.Transactions[1].Txid: {},
	}
	assert.Equal(t, expected, c.Txids(), "txids")
}

func TestEndpointTransitionById(t *testing.T) {
	chain := fixtures.NewChain(2)
	c := chain.Consignment()

	endpoint, err := c.EndpointTransitionById(chain.Last().NodeId())
	assert.Nil(t, err, "endpoint")
	assert.Equal(t, chain.Last().NodeId(), endpoint.NodeId(), "wrong transition")

	_, err = c.EndpointTransitionById(chain.Transitions[0].NodeId())
	assert.Equal(t, fault.ErrNotEndpoint, err, "interior node accepted")
	assert.True(t, fault.IsErrConsistency(err), "not a consistency error")

	_, err = c.EndpointTransitionById(chain.Genesis.NodeId())
	assert.Equal(t, fault.ErrNotEndpoint, err, "genesis accepted")

	// interior nodes are still reachable by plain lookup
	interior, txid, err := c.TransitionWitnessById(chain.Transitions[0].NodeId())
	assert.Nil(t, err, "interior lookup")
	assert.Equal(t, chain.Transitions[0].NodeId(), interior.NodeId(), "interior")
	assert.Equal(t, chain.Transactions[0].Txid, txid, "interior witness")

	_, err = c.TransitionById(contract.NodeId{0xff})
	assert.Equal(t, fault.ErrTransitionAbsent, err, "absent transition")
}

func TestDanglingEndpoint(t *testing.T) {
	chain := fixtures.NewChain(1)
	c := chain.Consignment()
	c.Endpoints[0].BundleId = bundle.Id{0xff}

	_, err := c.EndpointBundles()
	assert.Equal(t, fault.ErrBundleAbsent, err, "dangling endpoint accepted")

	_, err = c.EndpointTransitionById(chain.Last().NodeId())
	assert.Equal(t, fault.ErrBundleAbsent, err, "dangling endpoint accepted")

	_, err = c.KnownTransitionsByBundleId(bundle.Id{0xff})
	assert.Equal(t, fault.ErrBundleAbsent, err, "absent bundle found")
}

func TestEndpointBundles(t *testing.T) {
	chain := fixtures.NewChain(2)
	c := chain.Consignment()

	// a second endpoint in the same bundle is not a second bundle
	c.Endpoints = append(c.Endpoints, consignment.Endpoint{
		BundleId: c.Endpoints[0].BundleId,
		Seal:     seal.NewWitnessVout(seal.OpretFirst, 1),
	})

	ids := c.EndpointBundleIds()
	assert.Equal(t, []bundle.Id{chain.Bundles[1].BundleId()}, ids, "endpoint bundle ids")

	bundles, err := c.EndpointBundles()
	assert.Nil(t, err, "endpoint bundles")
	assert.Equal(t, 1, len(bundles), "bundle count")
	assert.Equal(t, ids[0], bundles[0].BundleId(), "bundle")

	transitions, err := c.EndpointTransitionsByType(fixtures.TransferType)
	assert.Nil(t, err, "by type")
	assert.Equal(t, 1, len(transitions), "endpoint transitions")
	assert.Equal(t, chain.Last().NodeId(), transitions[0].NodeId(), "endpoint transition")

	transitions, err = c.EndpointTransitionsByTypes(contract.TransitionType(77), contract.TransitionType(78))
	assert.Nil(t, err, "by types")
	assert.Equal(t, 0, len(transitions), "type filter ignored")
}

func TestFinalizeExposed(t *testing.T) {
	chain := fixtures.NewChain(1)
	c := chain.Consignment()

	s1 := seal.WitnessVout{VoutSeal: chain.Seals[0]}
	count := c.Finalize([]seal.Terminal{s1})
	assert.Equal(t, 0, count, "exposed seal must not be concealed")
	assert.Equal(t, 1, len(c.Endpoints), "exposed endpoint removed")
}

func TestFinalizeNothingExposed(t *testing.T) {
	chain := fixtures.NewChain(1)
	c := chain.Consignment()

	bundleId := c.AnchoredBundles[0].Bundle.BundleId()
	nodeIds := c.NodeIds()

	count := c.Finalize(nil)
	assert.Equal(t, 2, count, "state and seal must be concealed")
	assert.Equal(t, 0, len(c.Endpoints), "endpoint kept")

	assert.Equal(t, 1, len(c.AnchoredBundles), "bundle count changed")
	assert.Equal(t, bundleId, c.AnchoredBundles[0].Bundle.BundleId(), "bundle id changed")
	assert.Equal(t, nodeIds, c.NodeIds(), "node ids changed")

	transition, err := c.TransitionById(chain.Last().NodeId())
	assert.Nil(t, err, "transition lost")
	a, _ := transition.OwnedRights.Assignment(fixtures.AssetRight, 0)
	assert.False(t, a.State.IsRevealed(), "state revealed")
	assert.False(t, a.Seal.IsRevealed(), "seal revealed")

	assert.Equal(t, 0, c.Finalize(nil), "second finalize not idempotent")
}

func TestFinalizeInterior(t *testing.T) {
	chain := fixtures.NewChain(3)
	c := chain.Consignment()

	last := seal.WitnessVout{VoutSeal: chain.Seals[2]}
	count := c.Finalize([]seal.Terminal{last})
	assert.Equal(t, 2, count, "interior states not concealed")
	assert.Equal(t, 0, c.Finalize([]seal.Terminal{last}), "not idempotent")

	endpoint, err := c.EndpointTransitionById(chain.Last().NodeId())
	assert.Nil(t, err, "endpoint")
	a, _ := endpoint.OwnedRights.Assignment(fixtures.AssetRight, 0)
	assert.True(t, a.State.IsRevealed(), "endpoint state concealed")
	assert.True(t, a.Seal.IsRevealed(), "endpoint seal concealed")
}

func TestFinalizeExtensions(t *testing.T) {
	chain := fixtures.NewChain(1)
	c := chain.Consignment()
	c.StateExtensions = []*contract.Extension{
		{
			ExtensionType: fixtures.IssueExtension,
			ContractId:    c.ContractId(),
			OwnedRights: contract.OwnedRights{
				fixtures.AssetRight: {
					{
						Seal:  contract.RevealedSeal(seal.WithVoutSeal(seal.OpretFirst, 3, 3).ToRevealed()),
						State: contract.WithState([]byte{5}, 5),
					},
				},
			},
		},
	}
	extensionId := c.StateExtensions[0].NodeId()

	s1 := seal.WitnessVout{VoutSeal: chain.Seals[0]}
	assert.Equal(t, 1, c.Finalize([]seal.Terminal{s1}), "extension state not concealed")

	e, err := c.ExtensionById(extensionId)
	assert.Nil(t, err, "extension lost")
	a, _ := e.OwnedRights.Assignment(fixtures.AssetRight, 0)
	assert.False(t, a.State.IsRevealed(), "extension state revealed")
	assert.True(t, a.Seal.IsRevealed(), "extension seal must not be concealed")

	_, err = c.ExtensionById(contract.NodeId{1})
	assert.Equal(t, fault.ErrExtensionAbsent, err, "absent extension")
}

func TestRevealSeals(t *testing.T) {
	chain := fixtures.NewChain(1)
	c := chain.Consignment()

	original := chain.Seals[0].ToRevealed()
	c.Finalize(nil)

	assert.Equal(t, 0, c.RevealSeals([]seal.Revealed{seal.WithVoutSeal(seal.OpretFirst, 9, 9).ToRevealed()}), "unknown seal revealed")
	assert.Equal(t, 1, c.RevealSeals([]seal.Revealed{original}), "known seal not revealed")
	assert.Equal(t, 0, c.RevealSeals([]seal.Revealed{original}), "reveal repeated")

	transition, _ := c.TransitionById(chain.Last().NodeId())
	a, _ := transition.OwnedRights.Assignment(fixtures.AssetRight, 0)
	revealed, ok := a.Seal.Revealed()
	assert.True(t, ok, "seal not revealed")
	assert.Equal(t, original.Conceal(), revealed.Conceal(), "reveal is not inverse of conceal")
}

func TestChainIter(t *testing.T) {
	chain := fixtures.NewChain(3)
	c := chain.Consignment()

	it := c.ChainIter(chain.Last().NodeId(), fixtures.AssetRight)
	for i := 2; i >= 0; i -= 1 {
		item, ok := it.Next()
		if !ok {
			t.Fatalf("chain ended early at: %d error: %v", i, it.Err())
		}
		assert.Equal(t, chain.Transitions[i].NodeId(), item.Transition.NodeId(), "transition")
		assert.Equal(t, chain.Transactions[i].Txid, item.Txid, "witness")
	}
	_, ok := it.Next()
	assert.False(t, ok, "chain did not stop at genesis")
	assert.False(t, it.IsErr(), "clean end reported as error")
	assert.Nil(t, it.Err(), "clean end error")
}

func TestChainIterNotEndpoint(t *testing.T) {
	chain := fixtures.NewChain(2)
	c := chain.Consignment()

	it := c.ChainIter(chain.Transitions[0].NodeId(), fixtures.AssetRight)
	_, ok := it.Next()
	assert.False(t, ok, "non endpoint yielded")
	assert.True(t, it.IsErr(), "error not recorded")
	assert.Equal(t, fault.ErrNotEndpoint, it.Err(), "wrong error")
}

func TestChainIterBrokenLink(t *testing.T) {
	chain := fixtures.NewChain(3)
	c := chain.Consignment()
	c.AnchoredBundles = []consignment.AnchoredBundle{c.AnchoredBundles[0], c.AnchoredBundles[2]}

	it := c.ChainIter(chain.Last().NodeId(), fixtures.AssetRight)
	item, ok := it.Next()
	assert.True(t, ok, "endpoint not yielded")
	assert.Equal(t, chain.Last().NodeId(), item.Transition.NodeId(), "endpoint")

	_, ok = it.Next()
	assert.False(t, ok, "missing parent yielded")
	assert.True(t, it.IsErr(), "broken link not reported")
	assert.Equal(t, fault.ErrTransitionAbsent, it.Err(), "wrong error")
}

func TestChainIterOtherRight(t *testing.T) {
	chain := fixtures.NewChain(2)
	c := chain.Consignment()

	it := c.ChainIter(chain.Last().NodeId(), contract.OwnedRightType(99))
	_, ok := it.Next()
	assert.True(t, ok, "endpoint not yielded")
	_, ok = it.Next()
	assert.False(t, ok, "followed a different right type")
	assert.False(t, it.IsErr(), "error")
}

func TestMeshIter(t *testing.T) {
	chain := fixtures.NewChain(3)
	c := chain.Consignment()

	it := c.MeshIter(fixtures.TransferType)
	for i := 0; i < 3; i += 1 {
		item, ok := it.Next()
		assert.True(t, ok, "mesh ended early")
		assert.Equal(t, chain.Transitions[i].NodeId(), item.Transition.NodeId(), "transition")
		assert.Equal(t, chain.Transactions[i].Txid, item.Txid, "witness")
	}
	_, ok := it.Next()
	assert.False(t, ok, "mesh did not end")

	_, ok = c.MeshIter(contract.TransitionType(99)).Next()
	assert.False(t, ok, "type filter ignored")
}

func TestPackUnpack(t *testing.T) {
	c := fixtures.NewChain(2).Consignment()

	packed := c.Pack()
	decoded, err := consignment.Unpack(packed)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, c, decoded, "round trip")
	assert.Equal(t, c.Id(), decoded.Id(), "id")

	_, err = consignment.Unpack(packed[:len(packed)-1])
	assert.True(t, fault.IsErrDecode(err), "truncated record accepted")

	_, err = consignment.Unpack(append(packed, 0))
	assert.Equal(t, fault.ErrTrailingBytes, err, "trailing bytes accepted")
}

func TestVersionGate(t *testing.T) {
	packed := fixtures.NewChain(1).Consignment().Pack()

	for _, version := range []byte{1, 2, 0x7f, 0xff} {
		bad := append([]byte{}, packed...)
		bad[0] = version
		c, err := consignment.Unpack(bad)
		assert.Nil(t, c, "partial result")
		assert.Equal(t, fault.ErrUnsupportedVersion, err, "version %d accepted", version)
		assert.True(t, fault.IsErrDecode(err), "not a decode error")
	}

	_, err := consignment.Unpack(nil)
	assert.Equal(t, fault.ErrTruncatedRecord, err, "empty record")
}

func TestIdDeterminism(t *testing.T) {
	c1 := fixtures.NewChain(2).Consignment()
	c2 := fixtures.NewChain(2).Consignment()
	assert.Equal(t, c1.Id(), c2.Id(), "equal content gives different ids")

	c2.Genesis.Metadata[fixtures.TickerField] = [][]byte{[]byte("TSU")}
	assert.NotEqual(t, c1.Id(), c2.Id(), "metadata not committed")

	c3 := fixtures.NewChain(2).Consignment()
	c3.Finalize(nil)
	assert.NotEqual(t, c1.Id(), c3.Id(), "id not recomputed after concealment")

	id := c1.Id()
	parsed, err := consignment.IdFromString(id.String())
	assert.Nil(t, err, "parse id")
	assert.Equal(t, id, parsed, "id text round trip")
}

func TestJSON(t *testing.T) {
	c := fixtures.NewChain(2).Consignment()

	data, err := json.Marshal(c)
	assert.Nil(t, err, "marshal")

	var decoded consignment.FullConsignment
	assert.Nil(t, json.Unmarshal(data, &decoded), "unmarshal")
	assert.Equal(t, c.Id(), decoded.Id(), "json round trip changed id")

	var wrongVersion map[string]interface{}
	assert.Nil(t, json.Unmarshal(data, &wrongVersion), "generic")
	wrongVersion["version"] = 1
	data, _ = json.Marshal(wrongVersion)
	assert.Equal(t, fault.ErrUnsupportedVersion, json.Unmarshal(data, &decoded), "json version gate")
}

func TestJSONMalformed(t *testing.T) {
	data, err := json.Marshal(fixtures.NewChain(2).Consignment())
	assert.Nil(t, err, "marshal")

	items := []struct {
		field string
		value interface{}
		err   error
	}{
		{"stateExtensions", []interface{}{nil}, fault.ErrInvalidFormat},
		{"genesis", nil, fault.ErrInvalidFormat},
		{"schema", nil, fault.ErrInvalidFormat},
		{"anchoredBundles", []interface{}{map[string]interface{}{"anchor": nil, "bundle": nil}}, fault.ErrInvalidFormat},
	}
	for i, item := range items {
		var doc map[string]interface{}
		assert.Nil(t, json.Unmarshal(data, &doc), "generic")
		doc[item.field] = item.value
		malformed, err := json.Marshal(doc)
		assert.Nil(t, err, "%d: marshal", i)

		var decoded consignment.FullConsignment
		err = json.Unmarshal(malformed, &decoded)
		if item.err != err {
			t.Errorf("%d: %s: actual: %v  expected: %v", i, item.field, err, item.err)
		}
	}
}
