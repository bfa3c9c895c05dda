// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"

	"github.com/bitmark-inc/rgbcore/fault"
)

// DigestLength - size of every id in the protocol
const DigestLength = 32

// DigestFromHex - decode exactly DigestLength bytes of hex text
//
// if reversed is set the text is big endian and the stored form is
// little endian (transaction id convention)
func DigestFromHex(digest []byte, s []byte, reversed bool) error {
	if len(digest) != DigestLength || hex.EncodedLen(DigestLength) != len(s) {
		return fault.ErrInvalidDigest
	}
	buffer := make([]byte, DigestLength)
	if _, err := hex.Decode(buffer, s); nil != err {
		return fault.ErrInvalidDigest
	}
	for i, v := range buffer {
		if reversed {
			digest[DigestLength-1-i] = v
		} else {
			digest[i] = v
		}
	}
	return nil
}

// DigestToHex - hex text for a digest, optionally byte reversed
func DigestToHex(digest []byte, reversed bool) string {
	if !reversed {
		return hex.EncodeToString(digest)
	}
	buffer := make([]byte, len(digest))
	for i, v := range digest {
		buffer[len(digest)-1-i] = v
	}
	return hex.EncodeToString(buffer)
}

// CopyDigest - fill a digest from a decoded payload of exactly the same size
func CopyDigest(digest []byte, payload []byte) error {
	if len(digest) != len(payload) {
		return fault.ErrInvalidDigest
	}
	copy(digest, payload)
	return nil
}
