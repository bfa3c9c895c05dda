// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/util"
)

// number of bytes in the digest
const DigestLength = 32

// type for a digest
// stored as little endian byte array
// represented as big endian hex value for print and JSON
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// branch digest of two children
func branch(left Digest, right Digest) Digest {
	buffer := make([]byte, 0, 2*DigestLength)
	buffer = append(buffer, left[:]...)
	buffer = append(buffer, right[:]...)
	return NewDigest(buffer)
}

// convert a binary digest to hex string for use by the fmt package (for %s)
//
// the stored version is in little endian, but the output string is big endian
func (digest Digest) String() string {
	return util.DigestToHex(digest[:], true)
}

// convert a binary digest to big endian hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + digest.String() + ">"
}

// convert a big endian hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(DigestLength) {
		return fault.ErrInvalidDigest
	}
	return util.DigestFromHex(digest[:], token, true)
}

// convert digest to big endian hex text
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// convert big endian hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	return util.DigestFromHex(digest[:], s, true)
}

// DigestFromBytes - convert and validate little endian binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	return util.CopyDigest(digest[:], buffer)
}
