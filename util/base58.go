// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
)

// number of checksum bytes at the end of the decoded text
const checksumLength = 4

// text kinds, encoded as a Varint64 in front of the payload
const (
	KindConcealedSeal  = 0x13
	KindNodeId         = 0x21
	KindBundleId       = 0x22
	KindContractId     = 0x23
	KindSchemaId       = 0x24
	KindConsignmentId  = 0x25
	KindDisclosureId   = 0x26
	KindConcealedState = 0x27
	KindPacked         = 0x30
)

// ToBase58Check - compact checksummed text for ids and small payloads
//
// structure: base58( Varint64(kind) || payload || sha3-256(kind||payload)[:4] )
func ToBase58Check(kind uint64, payload []byte) string {
	buffer := strict.AppendUint64(nil, kind)
	buffer = append(buffer, payload...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// FromBase58Check - decode text produced by ToBase58Check
//
// the kind must match the expected kind
func FromBase58Check(kind uint64, s string) ([]byte, error) {
	decoded, err := base58.Decode(s)
	if nil != err || 0 == len(decoded) {
		return nil, fault.ErrCannotDecodeBase58
	}

	decodedKind, kindLength := strict.FromVarint64(decoded)
	if 0 == kindLength || len(decoded) < kindLength+checksumLength {
		return nil, fault.ErrCannotDecodeBase58
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	if kind != decodedKind {
		return nil, fault.ErrWrongPrefix
	}

	payload := make([]byte, checksumStart-kindLength)
	copy(payload, decoded[kindLength:checksumStart])
	return payload, nil
}
