// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"sort"

	"github.com/bitmark-inc/rgbcore/seal"
)

// OwnedRights - assignments produced by a node, grouped by right type
type OwnedRights map[OwnedRightType][]Assignment

// ParentOwnedRights - outputs of earlier nodes consumed by a transition
// indexed by node id, then right type, giving the output numbers
type ParentOwnedRights map[NodeId]map[OwnedRightType][]uint16

// ParentPublicRights - public rights of earlier nodes used by an extension
type ParentPublicRights map[NodeId][]PublicRightType

// Metadata - schema defined fields, each may repeat
type Metadata map[FieldType][][]byte

// SealSet - a set of concealed seals
type SealSet map[seal.Concealed]struct{}

// NodeOutput - one specific output of a node
type NodeOutput struct {
	NodeId NodeId         `json:"nodeId"`
	Type   OwnedRightType `json:"type"`
	No     uint16         `json:"no"`
}

// Add - insert a seal into the set
func (set SealSet) Add(c seal.Concealed) {
	set[c] = struct{}{}
}

// Has - check seal membership
func (set SealSet) Has(c seal.Concealed) bool {
	_, ok := set[c]
	return ok
}

// Types - the right types in ascending order
func (rights OwnedRights) Types() []OwnedRightType {
	types := make([]OwnedRightType, 0, len(rights))
	for t := range rights {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// ConcealStateExcept - conceal every revealed state whose seal is not in
// the expose set, returns the number of fields concealed
func (rights OwnedRights) ConcealStateExcept(expose SealSet) int {
	count := 0
	for _, assignments := range rights {
		for i := range assignments {
			if expose.Has(assignments[i].Seal.Conceal()) {
				continue
			}
			if assignments[i].concealState() {
				count += 1
			}
		}
	}
	return count
}

// ConcealSeals - conceal every revealed seal that is in the set, returns
// the number of seals concealed
func (rights OwnedRights) ConcealSeals(seals SealSet) int {
	count := 0
	for _, assignments := range rights {
		for i := range assignments {
			if !seals.Has(assignments[i].Seal.Conceal()) {
				continue
			}
			if assignments[i].concealSeal() {
				count += 1
			}
		}
	}
	return count
}

// RevealSeals - replace each concealed seal whose preimage is among the
// known seals, returns the number of seals revealed
func (rights OwnedRights) RevealSeals(known []seal.Revealed) int {
	if 0 == len(known) {
		return 0
	}
	preimages := make(map[seal.Concealed]seal.Revealed, len(known))
	for _, s := range known {
		preimages[s.Conceal()] = s
	}

	count := 0
	for _, assignments := range rights {
		for i := range assignments {
			if assignments[i].Seal.IsRevealed() {
				continue
			}
			if s, ok := preimages[assignments[i].Seal.Conceal()]; ok {
				assignments[i].Seal = RevealedSeal(s)
				count += 1
			}
		}
	}
	return count
}

// RevealedSeals - every revealed seal in deterministic order
func (rights OwnedRights) RevealedSeals() []seal.Revealed {
	seals := make([]seal.Revealed, 0)
	for _, t := range rights.Types() {
		for _, a := range rights[t] {
			if s, ok := a.Seal.Revealed(); ok {
				seals = append(seals, s)
			}
		}
	}
	return seals
}

// Assignment - a single output, false if it does not exist
func (rights OwnedRights) Assignment(t OwnedRightType, no uint16) (Assignment, bool) {
	assignments := rights[t]
	if int(no) >= len(assignments) {
		return Assignment{}, false
	}
	return assignments[no], true
}

// NodeIds - parent node ids in ascending order
func (parents ParentOwnedRights) NodeIds() []NodeId {
	ids := make([]NodeId, 0, len(parents))
	for id := range parents {
		ids = append(ids, id)
	}
	sortNodeIds(ids)
	return ids
}

// Outputs - every consumed output in deterministic order
func (parents ParentOwnedRights) Outputs() []NodeOutput {
	outputs := make([]NodeOutput, 0)
	for _, id := range parents.NodeIds() {
		byType := parents[id]
		for _, t := range sortedRightTypes(byType) {
			for _, no := range byType[t] {
				outputs = append(outputs, NodeOutput{NodeId: id, Type: t, No: no})
			}
		}
	}
	return outputs
}

// OutputsByType - consumed outputs of one right type in deterministic order
func (parents ParentOwnedRights) OutputsByType(t OwnedRightType) []NodeOutput {
	outputs := make([]NodeOutput, 0)
	for _, id := range parents.NodeIds() {
		for _, no := range parents[id][t] {
			outputs = append(outputs, NodeOutput{NodeId: id, Type: t, No: no})
		}
	}
	return outputs
}

// NodeIds - parent node ids in ascending order
func (parents ParentPublicRights) NodeIds() []NodeId {
	ids := make([]NodeId, 0, len(parents))
	for id := range parents {
		ids = append(ids, id)
	}
	sortNodeIds(ids)
	return ids
}

// Types - the field types in ascending order
func (m Metadata) Types() []FieldType {
	types := make([]FieldType, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func sortNodeIds(ids []NodeId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })
}

func sortedRightTypes(m map[OwnedRightType][]uint16) []OwnedRightType {
	types := make([]OwnedRightType, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func sortPublicRights(rights []PublicRightType) {
	sort.Slice(rights, func(i, j int) bool { return rights[i] < rights[j] })
}
