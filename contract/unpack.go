// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
)

// limits on decoded fields
const (
	maxChainLength = 64
	maxValueBytes  = strict.MaximumBytes
)

// UnpackGenesis - decode a complete genesis record
func UnpackGenesis(record []byte) (*Genesis, error) {
	r := strict.NewReader(record)
	g, err := ReadGenesis(r)
	if nil != err {
		return nil, err
	}
	if err := r.End(); nil != err {
		return nil, err
	}
	return g, nil
}

// UnpackTransition - decode a complete transition record
func UnpackTransition(record []byte) (*Transition, error) {
	r := strict.NewReader(record)
	t, err := ReadTransition(r)
	if nil != err {
		return nil, err
	}
	if err := r.End(); nil != err {
		return nil, err
	}
	return t, nil
}

// UnpackExtension - decode a complete extension record
func UnpackExtension(record []byte) (*Extension, error) {
	r := strict.NewReader(record)
	e, err := ReadExtension(r)
	if nil != err {
		return nil, err
	}
	if err := r.End(); nil != err {
		return nil, err
	}
	return e, nil
}

func readKind(r *strict.Reader, expected byte) error {
	kind, err := r.ReadByte()
	if nil != err {
		return err
	}
	if expected != kind {
		return fault.ErrUnknownTag
	}
	return nil
}

// ReadGenesis - decode a genesis embedded in a larger record
func ReadGenesis(r *strict.Reader) (*Genesis, error) {
	if err := readKind(r, genesisKind); nil != err {
		return nil, err
	}

	g := &Genesis{}
	var err error

	if err = r.ReadFixed(g.SchemaId[:]); nil != err {
		return nil, err
	}
	if g.Chain, err = r.ReadString(maxChainLength); nil != err {
		return nil, err
	}
	if g.Metadata, err = readMetadata(r); nil != err {
		return nil, err
	}
	if g.OwnedRights, err = readOwnedRights(r); nil != err {
		return nil, err
	}
	if g.PublicRights, err = readPublicRights(r); nil != err {
		return nil, err
	}
	return g, nil
}

// ReadTransition - decode a transition embedded in a larger record
func ReadTransition(r *strict.Reader) (*Transition, error) {
	if err := readKind(r, transitionKind); nil != err {
		return nil, err
	}

	t := &Transition{}

	transitionType, err := r.ReadUint16()
	if nil != err {
		return nil, err
	}
	t.TransitionType = TransitionType(transitionType)

	if t.Metadata, err = readMetadata(r); nil != err {
		return nil, err
	}
	if t.ParentOwnedRights, err = readParentOwnedRights(r); nil != err {
		return nil, err
	}
	if t.OwnedRights, err = readOwnedRights(r); nil != err {
		return nil, err
	}
	if t.PublicRights, err = readPublicRights(r); nil != err {
		return nil, err
	}
	return t, nil
}

// ReadExtension - decode an extension embedded in a larger record
func ReadExtension(r *strict.Reader) (*Extension, error) {
	if err := readKind(r, extensionKind); nil != err {
		return nil, err
	}

	e := &Extension{}

	extensionType, err := r.ReadUint16()
	if nil != err {
		return nil, err
	}
	e.ExtensionType = ExtensionType(extensionType)

	if err = r.ReadFixed(e.ContractId[:]); nil != err {
		return nil, err
	}
	if e.Metadata, err = readMetadata(r); nil != err {
		return nil, err
	}
	if e.ParentPublicRights, err = readParentPublicRights(r); nil != err {
		return nil, err
	}
	if e.OwnedRights, err = readOwnedRights(r); nil != err {
		return nil, err
	}
	if e.PublicRights, err = readPublicRights(r); nil != err {
		return nil, err
	}
	return e, nil
}

// ReadNodeId - decode a raw node id
func ReadNodeId(r *strict.Reader) (NodeId, error) {
	var id NodeId
	err := r.ReadFixed(id[:])
	return id, err
}

// map keys must be strictly ascending so that each value has exactly
// one encoding

func readMetadata(r *strict.Reader) (Metadata, error) {
	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err || 0 == n {
		return nil, err
	}
	m := make(Metadata, n)
	previous := -1
	for i := 0; i < n; i += 1 {
		t, err := r.ReadUint16()
		if nil != err {
			return nil, err
		}
		if int(t) <= previous {
			return nil, fault.ErrNotCanonical
		}
		previous = int(t)

		count, err := r.ReadCount(strict.MaximumCount)
		if nil != err {
			return nil, err
		}
		values := make([][]byte, count)
		for j := range values {
			if values[j], err = r.ReadBytes(maxValueBytes); nil != err {
				return nil, err
			}
		}
		m[FieldType(t)] = values
	}
	return m, nil
}

func readOwnedRights(r *strict.Reader) (OwnedRights, error) {
	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err || 0 == n {
		return nil, err
	}
	rights := make(OwnedRights, n)
	previous := -1
	for i := 0; i < n; i += 1 {
		t, err := r.ReadUint16()
		if nil != err {
			return nil, err
		}
		if int(t) <= previous {
			return nil, fault.ErrNotCanonical
		}
		previous = int(t)

		count, err := r.ReadCount(strict.MaximumCount)
		if nil != err {
			return nil, err
		}
		assignments := make([]Assignment, count)
		for j := range assignments {
			if assignments[j], err = readAssignment(r); nil != err {
				return nil, err
			}
		}
		rights[OwnedRightType(t)] = assignments
	}
	return rights, nil
}

func readParentOwnedRights(r *strict.Reader) (ParentOwnedRights, error) {
	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err || 0 == n {
		return nil, err
	}
	parents := make(ParentOwnedRights, n)
	var previous *NodeId
	for i := 0; i < n; i += 1 {
		id, err := ReadNodeId(r)
		if nil != err {
			return nil, err
		}
		if nil != previous && id.Compare(*previous) <= 0 {
			return nil, fault.ErrNotCanonical
		}
		previous = &id

		typeCount, err := r.ReadCount(strict.MaximumCount)
		if nil != err {
			return nil, err
		}
		byType := make(map[OwnedRightType][]uint16, typeCount)
		previousType := -1
		for j := 0; j < typeCount; j += 1 {
			t, err := r.ReadUint16()
			if nil != err {
				return nil, err
			}
			if int(t) <= previousType {
				return nil, fault.ErrNotCanonical
			}
			previousType = int(t)

			count, err := r.ReadCount(strict.MaximumCount)
			if nil != err {
				return nil, err
			}
			outputs := make([]uint16, count)
			for k := range outputs {
				if outputs[k], err = r.ReadUint16(); nil != err {
					return nil, err
				}
			}
			byType[OwnedRightType(t)] = outputs
		}
		parents[id] = byType
	}
	return parents, nil
}

func readParentPublicRights(r *strict.Reader) (ParentPublicRights, error) {
	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err || 0 == n {
		return nil, err
	}
	parents := make(ParentPublicRights, n)
	var previous *NodeId
	for i := 0; i < n; i += 1 {
		id, err := ReadNodeId(r)
		if nil != err {
			return nil, err
		}
		if nil != previous && id.Compare(*previous) <= 0 {
			return nil, fault.ErrNotCanonical
		}
		previous = &id

		rights, err := readPublicRights(r)
		if nil != err {
			return nil, err
		}
		parents[id] = rights
	}
	return parents, nil
}

func readPublicRights(r *strict.Reader) ([]PublicRightType, error) {
	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err || 0 == n {
		return nil, err
	}
	rights := make([]PublicRightType, n)
	previous := -1
	for i := range rights {
		v, err := r.ReadUint16()
		if nil != err {
			return nil, err
		}
		if int(v) <= previous {
			return nil, fault.ErrNotCanonical
		}
		previous = int(v)
		rights[i] = PublicRightType(v)
	}
	return rights, nil
}
