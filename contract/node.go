// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/rgbcore/schema"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/tagged"
)

var nodeTag = tagged.New("rgb:node")

// node kinds, first byte of every node record
const (
	genesisKind    = 0
	transitionKind = 1
	extensionKind  = 2
)

// Node - common view of genesis, transitions and extensions
type Node interface {
	NodeId() NodeId
	Rights() OwnedRights
	Parents() ParentOwnedRights
	Pack() strict.Packed
}

// Genesis - root node of a contract
type Genesis struct {
	SchemaId     schema.Id         `json:"schemaId"`
	Chain        string            `json:"chain"`
	Metadata     Metadata          `json:"metadata,omitempty"`
	OwnedRights  OwnedRights       `json:"ownedRights,omitempty"`
	PublicRights []PublicRightType `json:"publicRights,omitempty"`
}

// Transition - state transformation consuming earlier outputs
type Transition struct {
	TransitionType    TransitionType    `json:"transitionType"`
	Metadata          Metadata          `json:"metadata,omitempty"`
	ParentOwnedRights ParentOwnedRights `json:"parentOwnedRights,omitempty"`
	OwnedRights       OwnedRights       `json:"ownedRights,omitempty"`
	PublicRights      []PublicRightType `json:"publicRights,omitempty"`
}

// Extension - state extension using public rights, needs no witness
// transaction of its own
type Extension struct {
	ExtensionType      ExtensionType      `json:"extensionType"`
	ContractId         ContractId         `json:"contractId"`
	Metadata           Metadata           `json:"metadata,omitempty"`
	ParentPublicRights ParentPublicRights `json:"parentPublicRights,omitempty"`
	OwnedRights        OwnedRights        `json:"ownedRights,omitempty"`
	PublicRights       []PublicRightType  `json:"publicRights,omitempty"`
}

// the node id commits to concealed assignments only, so concealing or
// revealing never changes it
func nodeId(commitment strict.Packed) NodeId {
	return NodeId(nodeTag.Sum(commitment))
}

// NodeId - commitment id of the genesis
func (g *Genesis) NodeId() NodeId {
	return nodeId(g.appendTo(nil, true))
}

// ContractId - the id of the contract this genesis issues
func (g *Genesis) ContractId() ContractId {
	return ContractId(g.NodeId())
}

// Rights - produced assignments
func (g *Genesis) Rights() OwnedRights {
	return g.OwnedRights
}

// Parents - genesis consumes nothing
func (g *Genesis) Parents() ParentOwnedRights {
	return nil
}

// Pack - full canonical form
func (g *Genesis) Pack() strict.Packed {
	return g.appendTo(nil, false)
}

// NodeId - commitment id of the transition
func (t *Transition) NodeId() NodeId {
	return nodeId(t.appendTo(nil, true))
}

// Rights - produced assignments
func (t *Transition) Rights() OwnedRights {
	return t.OwnedRights
}

// Parents - consumed outputs
func (t *Transition) Parents() ParentOwnedRights {
	return t.ParentOwnedRights
}

// Pack - full canonical form
func (t *Transition) Pack() strict.Packed {
	return t.appendTo(nil, false)
}

// ParentOutputsByType - consumed outputs of one right type
func (t *Transition) ParentOutputsByType(rightType OwnedRightType) []NodeOutput {
	return t.ParentOwnedRights.OutputsByType(rightType)
}

// NodeId - commitment id of the extension
func (e *Extension) NodeId() NodeId {
	return nodeId(e.appendTo(nil, true))
}

// Rights - produced assignments
func (e *Extension) Rights() OwnedRights {
	return e.OwnedRights
}

// Parents - extensions consume no owned rights
func (e *Extension) Parents() ParentOwnedRights {
	return nil
}

// Pack - full canonical form
func (e *Extension) Pack() strict.Packed {
	return e.appendTo(nil, false)
}

// ConcealStateExcept - see OwnedRights.ConcealStateExcept
func (t *Transition) ConcealStateExcept(expose SealSet) int {
	return t.OwnedRights.ConcealStateExcept(expose)
}

// ConcealSeals - see OwnedRights.ConcealSeals
func (t *Transition) ConcealSeals(seals SealSet) int {
	return t.OwnedRights.ConcealSeals(seals)
}

// RevealSeals - see OwnedRights.RevealSeals
func (t *Transition) RevealSeals(known []seal.Revealed) int {
	return t.OwnedRights.RevealSeals(known)
}

// ConcealStateExcept - see OwnedRights.ConcealStateExcept
func (e *Extension) ConcealStateExcept(expose SealSet) int {
	return e.OwnedRights.ConcealStateExcept(expose)
}

// RevealSeals - see OwnedRights.RevealSeals
func (e *Extension) RevealSeals(known []seal.Revealed) int {
	return e.OwnedRights.RevealSeals(known)
}
