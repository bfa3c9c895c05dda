// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/tagged"
	"github.com/bitmark-inc/rgbcore/util"
)

var stateTag = tagged.New("rgb:state")

// ConcealedState - one way commitment to a state payload
type ConcealedState [tagged.Length]byte

// String - base58check text
func (c ConcealedState) String() string {
	return util.ToBase58Check(util.KindConcealedState, c[:])
}

// MarshalText - for JSON
func (c ConcealedState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText - for JSON
func (c *ConcealedState) UnmarshalText(s []byte) error {
	payload, err := util.FromBase58Check(util.KindConcealedState, string(s))
	if nil != err {
		return err
	}
	return util.CopyDigest(c[:], payload)
}

// RevealedState - plain state with the blinding that hides it once
// concealed
type RevealedState struct {
	Data     []byte `json:"data"`
	Blinding uint64 `json:"blinding,string"`
}

// Conceal - commitment over the canonical encoding
func (s RevealedState) Conceal() ConcealedState {
	buffer := strict.AppendUint64(nil, s.Blinding)
	buffer = strict.AppendBytes(buffer, s.Data)
	return ConcealedState(stateTag.Sum(buffer))
}

// StateField - state payload carried either revealed or concealed
type StateField struct {
	revealed  *RevealedState
	concealed ConcealedState
}

// NewState - revealed state with a random blinding factor
func NewState(data []byte) StateField {
	var buffer [8]byte
	if _, err := rand.Read(buffer[:]); nil != err {
		fault.Panicf("contract: random source failed: %s", err)
	}
	return WithState(data, binary.LittleEndian.Uint64(buffer[:]))
}

// WithState - revealed state with a known blinding factor
func WithState(data []byte, blinding uint64) StateField {
	d := make([]byte, len(data))
	copy(d, data)
	return StateField{
		revealed: &RevealedState{
			Data:     d,
			Blinding: blinding,
		},
	}
}

// HiddenState - state known only by its commitment
func HiddenState(c ConcealedState) StateField {
	return StateField{
		concealed: c,
	}
}

// IsRevealed - true if the plaintext is present
func (f StateField) IsRevealed() bool {
	return nil != f.revealed
}

// Revealed - the plaintext if known
func (f StateField) Revealed() (RevealedState, bool) {
	if nil == f.revealed {
		return RevealedState{}, false
	}
	return *f.revealed, true
}

// Conceal - the commitment, the same for either form
func (f StateField) Conceal() ConcealedState {
	if nil == f.revealed {
		return f.concealed
	}
	return f.revealed.Conceal()
}

// SealDefinition - seal carried either revealed or concealed
type SealDefinition struct {
	revealed  *seal.Revealed
	concealed seal.Concealed
}

// RevealedSeal - a seal definition with known preimage
func RevealedSeal(s seal.Revealed) SealDefinition {
	return SealDefinition{
		revealed: &s,
	}
}

// ConcealedSeal - a seal definition known only by commitment
func ConcealedSeal(c seal.Concealed) SealDefinition {
	return SealDefinition{
		concealed: c,
	}
}

// IsRevealed - true if the seal preimage is present
func (d SealDefinition) IsRevealed() bool {
	return nil != d.revealed
}

// Revealed - the seal if known
func (d SealDefinition) Revealed() (seal.Revealed, bool) {
	if nil == d.revealed {
		return seal.Revealed{}, false
	}
	return *d.revealed, true
}

// Conceal - the commitment, the same for either form
func (d SealDefinition) Conceal() seal.Concealed {
	if nil == d.revealed {
		return d.concealed
	}
	return d.revealed.Conceal()
}

// Assignment - one owned right: a unit of state bound to a seal
type Assignment struct {
	Seal  SealDefinition `json:"seal"`
	State StateField     `json:"state"`
}

// conceals the state payload, true if anything changed
func (a *Assignment) concealState() bool {
	if !a.State.IsRevealed() {
		return false
	}
	a.State = HiddenState(a.State.Conceal())
	return true
}

// conceals the seal, true if anything changed
func (a *Assignment) concealSeal() bool {
	if !a.Seal.IsRevealed() {
		return false
	}
	a.Seal = ConcealedSeal(a.Seal.Conceal())
	return true
}

// commitment form: both parts concealed
func appendAssignmentCommitment(buffer strict.Packed, a Assignment) strict.Packed {
	buffer = seal.AppendConcealed(buffer, a.Seal.Conceal())
	c := a.State.Conceal()
	return strict.AppendFixed(buffer, c[:])
}

// tags for the revealed/concealed variants
const (
	concealedTag = 0
	revealedTag  = 1
)

func appendAssignment(buffer strict.Packed, a Assignment) strict.Packed {
	if s, ok := a.Seal.Revealed(); ok {
		buffer = strict.AppendByte(buffer, revealedTag)
		buffer = seal.AppendRevealed(buffer, s)
	} else {
		buffer = strict.AppendByte(buffer, concealedTag)
		buffer = seal.AppendConcealed(buffer, a.Seal.Conceal())
	}
	if s, ok := a.State.Revealed(); ok {
		buffer = strict.AppendByte(buffer, revealedTag)
		buffer = strict.AppendUint64(buffer, s.Blinding)
		buffer = strict.AppendBytes(buffer, s.Data)
	} else {
		c := a.State.Conceal()
		buffer = strict.AppendByte(buffer, concealedTag)
		buffer = strict.AppendFixed(buffer, c[:])
	}
	return buffer
}

func readAssignment(r *strict.Reader) (Assignment, error) {
	a := Assignment{}

	tag, err := r.ReadByte()
	if nil != err {
		return a, err
	}
	switch tag {
	case revealedTag:
		s, err := seal.ReadRevealed(r)
		if nil != err {
			return a, err
		}
		a.Seal = RevealedSeal(s)
	case concealedTag:
		c, err := seal.ReadConcealed(r)
		if nil != err {
			return a, err
		}
		a.Seal = ConcealedSeal(c)
	default:
		return a, fault.ErrUnknownTag
	}

	tag, err = r.ReadByte()
	if nil != err {
		return a, err
	}
	switch tag {
	case revealedTag:
		blinding, err := r.ReadUint64()
		if nil != err {
			return a, err
		}
		data, err := r.ReadBytes(strict.MaximumBytes)
		if nil != err {
			return a, err
		}
		a.State = StateField{revealed: &RevealedState{Data: data, Blinding: blinding}}
	case concealedTag:
		var c ConcealedState
		if err := r.ReadFixed(c[:]); nil != err {
			return a, err
		}
		a.State = HiddenState(c)
	default:
		return a, fault.ErrUnknownTag
	}
	return a, nil
}

// JSON forms carry exactly one of the two fields
type stateJSON struct {
	Revealed  *RevealedState  `json:"revealed,omitempty"`
	Concealed *ConcealedState `json:"concealed,omitempty"`
}

type sealJSON struct {
	Revealed  *seal.Revealed  `json:"revealed,omitempty"`
	Concealed *seal.Concealed `json:"concealed,omitempty"`
}

// MarshalJSON - {"revealed":...} or {"concealed":...}
func (f StateField) MarshalJSON() ([]byte, error) {
	if nil != f.revealed {
		return json.Marshal(stateJSON{Revealed: f.revealed})
	}
	c := f.concealed
	return json.Marshal(stateJSON{Concealed: &c})
}

// UnmarshalJSON - exactly one form must be present
func (f *StateField) UnmarshalJSON(b []byte) error {
	var s stateJSON
	if err := json.Unmarshal(b, &s); nil != err {
		return err
	}
	switch {
	case nil != s.Revealed && nil == s.Concealed:
		*f = WithState(s.Revealed.Data, s.Revealed.Blinding)
	case nil == s.Revealed && nil != s.Concealed:
		*f = HiddenState(*s.Concealed)
	default:
		return fault.ErrMissingSealStatus
	}
	return nil
}

// MarshalJSON - {"revealed":...} or {"concealed":...}
func (d SealDefinition) MarshalJSON() ([]byte, error) {
	if nil != d.revealed {
		return json.Marshal(sealJSON{Revealed: d.revealed})
	}
	c := d.concealed
	return json.Marshal(sealJSON{Concealed: &c})
}

// UnmarshalJSON - exactly one form must be present
func (d *SealDefinition) UnmarshalJSON(b []byte) error {
	var s sealJSON
	if err := json.Unmarshal(b, &s); nil != err {
		return err
	}
	switch {
	case nil != s.Revealed && nil == s.Concealed:
		*d = RevealedSeal(*s.Revealed)
	case nil == s.Revealed && nil != s.Concealed:
		*d = ConcealedSeal(*s.Concealed)
	default:
		return fault.ErrMissingSealStatus
	}
	return nil
}
