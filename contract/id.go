// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"bytes"

	"github.com/bitmark-inc/rgbcore/tagged"
	"github.com/bitmark-inc/rgbcore/util"
)

// IdLength - number of bytes in node and contract ids
const IdLength = tagged.Length

// type ids assigned by the schema
type OwnedRightType uint16
type PublicRightType uint16
type TransitionType uint16
type ExtensionType uint16
type FieldType uint16

// NodeId - commitment derived id of genesis, transition or extension
type NodeId [IdLength]byte

// ContractId - the node id of the contract genesis
type ContractId [IdLength]byte

// Compare - total order for deterministic encoding
func (id NodeId) Compare(other NodeId) int {
	return bytes.Compare(id[:], other[:])
}

// String - hex text
func (id NodeId) String() string {
	return util.DigestToHex(id[:], false)
}

// GoString - for %#v
func (id NodeId) GoString() string {
	return "<node:" + id.String() + ">"
}

// Base58 - checksummed compact text
func (id NodeId) Base58() string {
	return util.ToBase58Check(util.KindNodeId, id[:])
}

// MarshalText - hex for JSON, also used for map keys
func (id NodeId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - accepts hex or base58check text
func (id *NodeId) UnmarshalText(s []byte) error {
	if err := util.DigestFromHex(id[:], s, false); nil == err {
		return nil
	}
	payload, err := util.FromBase58Check(util.KindNodeId, string(s))
	if nil != err {
		return err
	}
	return util.CopyDigest(id[:], payload)
}

// NodeIdFromString - parse hex or base58check text
func NodeIdFromString(s string) (NodeId, error) {
	var id NodeId
	err := id.UnmarshalText([]byte(s))
	return id, err
}

// NodeId - the genesis node id this contract id was derived from
func (id ContractId) NodeId() NodeId {
	return NodeId(id)
}

// Compare - total order for deterministic encoding
func (id ContractId) Compare(other ContractId) int {
	return bytes.Compare(id[:], other[:])
}

// String - base58check text
func (id ContractId) String() string {
	return util.ToBase58Check(util.KindContractId, id[:])
}

// GoString - for %#v
func (id ContractId) GoString() string {
	return "<contract:" + util.DigestToHex(id[:], false) + ">"
}

// MarshalText - for JSON
func (id ContractId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON
func (id *ContractId) UnmarshalText(s []byte) error {
	payload, err := util.FromBase58Check(util.KindContractId, string(s))
	if nil != err {
		return err
	}
	return util.CopyDigest(id[:], payload)
}

// ContractIdFromString - parse base58check text
func ContractIdFromString(s string) (ContractId, error) {
	var id ContractId
	err := id.UnmarshalText([]byte(s))
	return id, err
}
