// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tagged - domain separated commitment hashes
//
// A tagged hash is SHA-256( SHA-256(tag) || SHA-256(tag) || message ).
// The 64 byte tag prefix is exactly one SHA-256 block so the engine state
// after absorbing it (the midstate) is computed once per tag and reused as
// the initialisation vector of every commitment under that tag.
package tagged

import (
	"crypto/sha256"
	"encoding"
	"hash"

	"github.com/bitmark-inc/rgbcore/fault"
)

// Length - number of bytes in a tagged digest
const Length = sha256.Size

// offsets of the chaining value inside a marshalled sha256 state
const (
	stateMagicLength = 4
	stateWordsEnd    = stateMagicLength + Length
)

// Tag - a protocol tag with its precomputed midstate
type Tag struct {
	name  string
	state []byte
}

// New - compute the midstate for a protocol tag
func New(name string) *Tag {
	tagHash := sha256.Sum256([]byte(name))

	engine := sha256.New()
	engine.Write(tagHash[:])
	engine.Write(tagHash[:])

	state, err := engine.(encoding.BinaryMarshaler).MarshalBinary()
	if nil != err {
		fault.Panicf("tagged.New: %q: marshal state: %s", name, err)
	}
	return &Tag{
		name:  name,
		state: state,
	}
}

// Name - the tag string
func (t *Tag) Name() string {
	return t.name
}

// Midstate - the chaining value after the tag prefix block, as big
// endian 32 bit words
func (t *Tag) Midstate() [Length]byte {
	var midstate [Length]byte
	copy(midstate[:], t.state[stateMagicLength:stateWordsEnd])
	return midstate
}

// Engine - a fresh hash engine already primed with the tag prefix
func (t *Tag) Engine() hash.Hash {
	engine := sha256.New()
	err := engine.(encoding.BinaryUnmarshaler).UnmarshalBinary(t.state)
	if nil != err {
		fault.Panicf("tagged.Engine: %q: unmarshal state: %s", t.name, err)
	}
	return engine
}

// Sum - commit to a message under this tag
func (t *Tag) Sum(message []byte) [Length]byte {
	engine := t.Engine()
	engine.Write(message)

	var digest [Length]byte
	copy(digest[:], engine.Sum(nil))
	return digest
}
