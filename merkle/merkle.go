// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/tagged"
)

// MaximumDepth - largest tree the commitment may grow to
const MaximumDepth = 16

var (
	leafTag    = tagged.New("lnpbp4:leaf")
	entropyTag = tagged.New("lnpbp4:entropy")
)

// ProtocolId - the message owner, typically a contract id
type ProtocolId [DigestLength]byte

// Message - the value committed for one protocol
type Message [DigestLength]byte

// Tree - multi-message commitment
//
// structure is a full binary tree of 2^depth leaves; each protocol owns
// the slot (protocol mod width) and every unused slot holds an entropy
// leaf so the number of protocols is not revealed
type Tree struct {
	depth   int
	entropy uint64
	leaves  []Digest
	slots   map[ProtocolId]int
}

// Proof - path from one leaf to the root
type Proof struct {
	Position uint32   `json:"position"`
	Depth    uint8    `json:"depth"`
	Path     []Digest `json:"path"`
}

// slot of a protocol in a tree of the given width
func slot(protocol ProtocolId, width int) int {
	return int(binary.LittleEndian.Uint64(protocol[:8]) % uint64(width))
}

func leaf(protocol ProtocolId, message Message) Digest {
	buffer := make([]byte, 0, 2*DigestLength)
	buffer = append(buffer, protocol[:]...)
	buffer = append(buffer, message[:]...)
	return Digest(leafTag.Sum(buffer))
}

func entropyLeaf(entropy uint64, position int) Digest {
	buffer := strict.AppendUint64(nil, entropy)
	buffer = strict.AppendUint64(buffer, uint64(position))
	return Digest(entropyTag.Sum(buffer))
}

// Commit - build the smallest tree in which no two protocols share a slot
func Commit(messages map[ProtocolId]Message, entropy uint64) (*Tree, error) {
	depth := 0
	for (1 << uint(depth)) < len(messages) {
		depth += 1
	}

search:
	for ; depth <= MaximumDepth; depth += 1 {
		width := 1 << uint(depth)
		slots := make(map[ProtocolId]int, len(messages))
		used := make(map[int]struct{}, len(messages))
		for protocol := range messages {
			n := slot(protocol, width)
			if _, ok := used[n]; ok {
				continue search
			}
			used[n] = struct{}{}
			slots[protocol] = n
		}

		leaves := make([]Digest, width)
		for i := range leaves {
			leaves[i] = entropyLeaf(entropy, i)
		}
		for protocol, n := range slots {
			leaves[n] = leaf(protocol, messages[protocol])
		}

		return &Tree{
			depth:   depth,
			entropy: entropy,
			leaves:  leaves,
			slots:   slots,
		}, nil
	}
	return nil, fault.ErrMerkleTreeTooDeep
}

// Depth - number of levels below the root
func (tree *Tree) Depth() int {
	return tree.depth
}

// Root - the single value placed in the witness transaction
func (tree *Tree) Root() Digest {
	level := tree.leaves
	for len(level) > 1 {
		next := make([]Digest, len(level)/2)
		for i := range next {
			next[i] = branch(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}

// Proof - inclusion proof for one committed protocol
func (tree *Tree) Proof(protocol ProtocolId) (Proof, error) {
	position, ok := tree.slots[protocol]
	if !ok {
		return Proof{}, fault.ErrNotFound
	}

	path := make([]Digest, 0, tree.depth)
	level := tree.leaves
	n := position
	for len(level) > 1 {
		path = append(path, level[n^1])
		next := make([]Digest, len(level)/2)
		for i := range next {
			next[i] = branch(level[2*i], level[2*i+1])
		}
		level = next
		n /= 2
	}

	return Proof{
		Position: uint32(position),
		Depth:    uint8(tree.depth),
		Path:     path,
	}, nil
}

// Root - recompute the tree root for a protocol and message
//
// fails if the proof is malformed or the protocol does not own the
// proven position
func (proof Proof) Root(protocol ProtocolId, message Message) (Digest, error) {
	if int(proof.Depth) > MaximumDepth || int(proof.Depth) != len(proof.Path) {
		return Digest{}, fault.ErrMerkleProofInvalid
	}
	width := 1 << uint(proof.Depth)
	if int(proof.Position) != slot(protocol, width) {
		return Digest{}, fault.ErrMerkleProofInvalid
	}

	d := leaf(protocol, message)
	n := proof.Position
	for _, sibling := range proof.Path {
		if 0 == n&1 {
			d = branch(d, sibling)
		} else {
			d = branch(sibling, d)
		}
		n >>= 1
	}
	return d, nil
}

// Append - canonical encoding of a proof
func (proof Proof) Append(buffer strict.Packed) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(proof.Position))
	buffer = strict.AppendByte(buffer, proof.Depth)
	for _, d := range proof.Path {
		buffer = strict.AppendFixed(buffer, d[:])
	}
	return buffer
}

// ReadProof - decode a proof written by Append
func ReadProof(r *strict.Reader) (Proof, error) {
	position, err := r.ReadUint64()
	if nil != err {
		return Proof{}, err
	}
	depth, err := r.ReadByte()
	if nil != err {
		return Proof{}, err
	}
	if depth > MaximumDepth {
		return Proof{}, fault.ErrValueTooLarge
	}
	if position >= 1<<uint(depth) {
		return Proof{}, fault.ErrValueTooLarge
	}
	path := make([]Digest, depth)
	for i := range path {
		if err := r.ReadFixed(path[i][:]); nil != err {
			return Proof{}, err
		}
	}
	return Proof{
		Position: uint32(position),
		Depth:    depth,
		Path:     path,
	}, nil
}

type proofJSON struct {
	Position uint32   `json:"position"`
	Depth    uint8    `json:"depth"`
	Path     []Digest `json:"path"`
}

// UnmarshalJSON - same limits as ReadProof, so the proof always packs
// to a decodable record
func (proof *Proof) UnmarshalJSON(b []byte) error {
	var j proofJSON
	if err := json.Unmarshal(b, &j); nil != err {
		return err
	}
	if j.Depth > MaximumDepth {
		return fault.ErrValueTooLarge
	}
	if uint64(j.Position) >= 1<<uint(j.Depth) {
		return fault.ErrValueTooLarge
	}
	if int(j.Depth) != len(j.Path) {
		return fault.ErrMerkleProofInvalid
	}
	*proof = Proof(j)
	return nil
}
