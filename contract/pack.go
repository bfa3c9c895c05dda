// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/rgbcore/strict"
)

// the commit flag selects the node id form where every assignment is
// reduced to its concealed seal and concealed state

func (g *Genesis) appendTo(buffer strict.Packed, commit bool) strict.Packed {
	buffer = strict.AppendByte(buffer, genesisKind)
	buffer = strict.AppendFixed(buffer, g.SchemaId[:])
	buffer = strict.AppendString(buffer, g.Chain)
	buffer = appendMetadata(buffer, g.Metadata)
	buffer = appendOwnedRights(buffer, g.OwnedRights, commit)
	return appendPublicRights(buffer, g.PublicRights)
}

func (t *Transition) appendTo(buffer strict.Packed, commit bool) strict.Packed {
	buffer = strict.AppendByte(buffer, transitionKind)
	buffer = strict.AppendUint16(buffer, uint16(t.TransitionType))
	buffer = appendMetadata(buffer, t.Metadata)
	buffer = appendParentOwnedRights(buffer, t.ParentOwnedRights)
	buffer = appendOwnedRights(buffer, t.OwnedRights, commit)
	return appendPublicRights(buffer, t.PublicRights)
}

func (e *Extension) appendTo(buffer strict.Packed, commit bool) strict.Packed {
	buffer = strict.AppendByte(buffer, extensionKind)
	buffer = strict.AppendUint16(buffer, uint16(e.ExtensionType))
	buffer = strict.AppendFixed(buffer, e.ContractId[:])
	buffer = appendMetadata(buffer, e.Metadata)
	buffer = appendParentPublicRights(buffer, e.ParentPublicRights)
	buffer = appendOwnedRights(buffer, e.OwnedRights, commit)
	return appendPublicRights(buffer, e.PublicRights)
}

// AppendTransition - embed a full transition in a larger record
func AppendTransition(buffer strict.Packed, t *Transition) strict.Packed {
	return t.appendTo(buffer, false)
}

// AppendExtension - embed a full extension in a larger record
func AppendExtension(buffer strict.Packed, e *Extension) strict.Packed {
	return e.appendTo(buffer, false)
}

// AppendGenesis - embed a full genesis in a larger record
func AppendGenesis(buffer strict.Packed, g *Genesis) strict.Packed {
	return g.appendTo(buffer, false)
}

func appendMetadata(buffer strict.Packed, m Metadata) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(len(m)))
	for _, t := range m.Types() {
		buffer = strict.AppendUint16(buffer, uint16(t))
		values := m[t]
		buffer = strict.AppendUint64(buffer, uint64(len(values)))
		for _, v := range values {
			buffer = strict.AppendBytes(buffer, v)
		}
	}
	return buffer
}

func appendOwnedRights(buffer strict.Packed, rights OwnedRights, commit bool) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(len(rights)))
	for _, t := range rights.Types() {
		buffer = strict.AppendUint16(buffer, uint16(t))
		assignments := rights[t]
		buffer = strict.AppendUint64(buffer, uint64(len(assignments)))
		for _, a := range assignments {
			if commit {
				buffer = appendAssignmentCommitment(buffer, a)
			} else {
				buffer = appendAssignment(buffer, a)
			}
		}
	}
	return buffer
}

func appendParentOwnedRights(buffer strict.Packed, parents ParentOwnedRights) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(len(parents)))
	for _, id := range parents.NodeIds() {
		buffer = strict.AppendFixed(buffer, id[:])
		byType := parents[id]
		buffer = strict.AppendUint64(buffer, uint64(len(byType)))
		for _, t := range sortedRightTypes(byType) {
			buffer = strict.AppendUint16(buffer, uint16(t))
			outputs := byType[t]
			buffer = strict.AppendUint64(buffer, uint64(len(outputs)))
			for _, no := range outputs {
				buffer = strict.AppendUint16(buffer, no)
			}
		}
	}
	return buffer
}

func appendParentPublicRights(buffer strict.Packed, parents ParentPublicRights) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(len(parents)))
	for _, id := range parents.NodeIds() {
		buffer = strict.AppendFixed(buffer, id[:])
		buffer = appendPublicRights(buffer, parents[id])
	}
	return buffer
}

// public rights are a set: encoded ascending without duplicates
func appendPublicRights(buffer strict.Packed, rights []PublicRightType) strict.Packed {
	sorted := make([]PublicRightType, len(rights))
	copy(sorted, rights)
	sortPublicRights(sorted)

	unique := make([]PublicRightType, 0, len(sorted))
	for _, r := range sorted {
		if 0 == len(unique) || r != unique[len(unique)-1] {
			unique = append(unique, r)
		}
	}

	buffer = strict.AppendUint64(buffer, uint64(len(unique)))
	for _, r := range unique {
		buffer = strict.AppendUint16(buffer, uint16(r))
	}
	return buffer
}
