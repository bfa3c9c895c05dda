// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bundle - transitions sharing a single witness transaction
//
// A bundle holds some transitions in full and others only by node id;
// both kinds commit identically so the bundle id does not depend on
// which transitions the holder knows.
package bundle

import (
	"sort"

	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/tagged"
	"github.com/bitmark-inc/rgbcore/util"
)

var bundleTag = tagged.New("rgb:bundle")

// Id - commitment to the bundle membership
type Id [tagged.Length]byte

// Item - a transition known in full with the inputs it consumes
type Item struct {
	Transition *contract.Transition `json:"transition"`
	Inputs     []uint16             `json:"inputs"`
}

// ConcealedItem - a transition known only by its node id
type ConcealedItem struct {
	NodeId contract.NodeId `json:"nodeId"`
	Inputs []uint16        `json:"inputs"`
}

// TransitionBundle - ordered by node id, each node appears once
type TransitionBundle struct {
	revealed  []Item
	concealed []ConcealedItem
}

// New - build a bundle, rejecting duplicate node ids
func New(revealed []Item, concealed []ConcealedItem) (*TransitionBundle, error) {
	b := &TransitionBundle{
		revealed:  make([]Item, len(revealed)),
		concealed: make([]ConcealedItem, len(concealed)),
	}
	copy(b.revealed, revealed)
	copy(b.concealed, concealed)

	seen := make(map[contract.NodeId]struct{}, len(revealed)+len(concealed))
	for _, item := range b.revealed {
		id := item.Transition.NodeId()
		if _, ok := seen[id]; ok {
			return nil, fault.ErrDuplicateNode
		}
		seen[id] = struct{}{}
	}
	for _, item := range b.concealed {
		if _, ok := seen[item.NodeId]; ok {
			return nil, fault.ErrDuplicateNode
		}
		seen[item.NodeId] = struct{}{}
	}

	b.sort()
	return b, nil
}

func (b *TransitionBundle) sort() {
	sort.Slice(b.revealed, func(i, j int) bool {
		return b.revealed[i].Transition.NodeId().Compare(b.revealed[j].Transition.NodeId()) < 0
	})
	sort.Slice(b.concealed, func(i, j int) bool {
		return b.concealed[i].NodeId.Compare(b.concealed[j].NodeId) < 0
	})
}

// Len - number of transitions, known or not
func (b *TransitionBundle) Len() int {
	return len(b.revealed) + len(b.concealed)
}

// Revealed - the fully known items
func (b *TransitionBundle) Revealed() []Item {
	return b.revealed
}

// Concealed - the items known only by id
func (b *TransitionBundle) Concealed() []ConcealedItem {
	return b.concealed
}

// KnownTransitions - fully known transitions in node id order
func (b *TransitionBundle) KnownTransitions() []*contract.Transition {
	transitions := make([]*contract.Transition, len(b.revealed))
	for i, item := range b.revealed {
		transitions[i] = item.Transition
	}
	return transitions
}

// KnownNodeIds - ids of every member, revealed or concealed
func (b *TransitionBundle) KnownNodeIds() map[contract.NodeId]struct{} {
	ids := make(map[contract.NodeId]struct{}, b.Len())
	for _, item := range b.revealed {
		ids[item.Transition.NodeId()] = struct{}{}
	}
	for _, item := range b.concealed {
		ids[item.NodeId] = struct{}{}
	}
	return ids
}

// TransitionById - a fully known transition
func (b *TransitionBundle) TransitionById(id contract.NodeId) (*contract.Transition, bool) {
	for _, item := range b.revealed {
		if id == item.Transition.NodeId() {
			return item.Transition, true
		}
	}
	return nil, false
}

// MapTransitions - apply f to every known transition and sum the counts
//
// the membership must be unchanged afterwards
func (b *TransitionBundle) MapTransitions(f func(*contract.Transition) int) int {
	before := b.Len()
	ids := b.memberIds()

	total := 0
	for _, item := range b.revealed {
		total += f(item.Transition)
	}

	if before != b.Len() {
		fault.Panicf("bundle.MapTransitions: size changed from: %d to: %d", before, b.Len())
	}
	after := b.memberIds()
	for i := range ids {
		if ids[i] != after[i] {
			fault.Panicf("bundle.MapTransitions: node id changed at: %d", i)
		}
	}
	return total
}

// BundleId - commitment over every member node id and its inputs in node
// id order
func (b *TransitionBundle) BundleId() Id {
	return Id(bundleTag.Sum(b.appendCommitment(nil)))
}

// members in node id order with inputs, as committed
type member struct {
	id     contract.NodeId
	inputs []uint16
}

func (b *TransitionBundle) members() []member {
	members := make([]member, 0, b.Len())
	for _, item := range b.revealed {
		members = append(members, member{id: item.Transition.NodeId(), inputs: item.Inputs})
	}
	for _, item := range b.concealed {
		members = append(members, member{id: item.NodeId, inputs: item.Inputs})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].id.Compare(members[j].id) < 0 })
	return members
}

func (b *TransitionBundle) memberIds() []contract.NodeId {
	members := b.members()
	ids := make([]contract.NodeId, len(members))
	for i, m := range members {
		ids[i] = m.id
	}
	return ids
}

func (b *TransitionBundle) appendCommitment(buffer strict.Packed) strict.Packed {
	members := b.members()
	buffer = strict.AppendUint64(buffer, uint64(len(members)))
	for _, m := range members {
		buffer = strict.AppendFixed(buffer, m.id[:])
		buffer = appendInputs(buffer, m.inputs)
	}
	return buffer
}

// String - base58check text
func (id Id) String() string {
	return util.ToBase58Check(util.KindBundleId, id[:])
}

// GoString - for %#v
func (id Id) GoString() string {
	return "<bundle:" + util.DigestToHex(id[:], false) + ">"
}

// MarshalText - for JSON
func (id Id) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON
func (id *Id) UnmarshalText(s []byte) error {
	payload, err := util.FromBase58Check(util.KindBundleId, string(s))
	if nil != err {
		return err
	}
	return util.CopyDigest(id[:], payload)
}

// IdFromString - parse base58check text
func IdFromString(s string) (Id, error) {
	var id Id
	err := id.UnmarshalText([]byte(s))
	return id, err
}
