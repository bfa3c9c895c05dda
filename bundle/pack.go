// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle

import (
	"encoding/json"

	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
)

func appendInputs(buffer strict.Packed, inputs []uint16) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(len(inputs)))
	for _, input := range inputs {
		buffer = strict.AppendUint16(buffer, input)
	}
	return buffer
}

func readInputs(r *strict.Reader) ([]uint16, error) {
	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	inputs := make([]uint16, n)
	for i := range inputs {
		if inputs[i], err = r.ReadUint16(); nil != err {
			return nil, err
		}
	}
	return inputs, nil
}

// Pack - full canonical form
func (b *TransitionBundle) Pack() strict.Packed {
	return Append(nil, b)
}

// Append - embed a bundle in a larger record
func Append(buffer strict.Packed, b *TransitionBundle) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(len(b.revealed)))
	for _, item := range b.revealed {
		buffer = contract.AppendTransition(buffer, item.Transition)
		buffer = appendInputs(buffer, item.Inputs)
	}
	buffer = strict.AppendUint64(buffer, uint64(len(b.concealed)))
	for _, item := range b.concealed {
		buffer = strict.AppendFixed(buffer, item.NodeId[:])
		buffer = appendInputs(buffer, item.Inputs)
	}
	return buffer
}

// Unpack - decode a complete bundle record
func Unpack(record []byte) (*TransitionBundle, error) {
	r := strict.NewReader(record)
	b, err := Read(r)
	if nil != err {
		return nil, err
	}
	if err := r.End(); nil != err {
		return nil, err
	}
	return b, nil
}

// Read - decode a bundle embedded in a larger record
//
// both lists must already be in node id order
func Read(r *strict.Reader) (*TransitionBundle, error) {
	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	revealed := make([]Item, n)
	for i := range revealed {
		transition, err := contract.ReadTransition(r)
		if nil != err {
			return nil, err
		}
		inputs, err := readInputs(r)
		if nil != err {
			return nil, err
		}
		revealed[i] = Item{Transition: transition, Inputs: inputs}
		if i > 0 && revealed[i-1].Transition.NodeId().Compare(transition.NodeId()) >= 0 {
			return nil, fault.ErrNotCanonical
		}
	}

	n, err = r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	concealed := make([]ConcealedItem, n)
	for i := range concealed {
		id, err := contract.ReadNodeId(r)
		if nil != err {
			return nil, err
		}
		inputs, err := readInputs(r)
		if nil != err {
			return nil, err
		}
		concealed[i] = ConcealedItem{NodeId: id, Inputs: inputs}
		if i > 0 && concealed[i-1].NodeId.Compare(id) >= 0 {
			return nil, fault.ErrNotCanonical
		}
	}

	return New(revealed, concealed)
}

type bundleJSON struct {
	Revealed  []Item          `json:"revealed"`
	Concealed []ConcealedItem `json:"concealed"`
}

// MarshalJSON - both lists in node id order
func (b *TransitionBundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(bundleJSON{
		Revealed:  b.revealed,
		Concealed: b.concealed,
	})
}

// UnmarshalJSON - rebuilt through New so duplicates are rejected
func (b *TransitionBundle) UnmarshalJSON(data []byte) error {
	var j bundleJSON
	if err := json.Unmarshal(data, &j); nil != err {
		return err
	}
	for _, item := range j.Revealed {
		if nil == item.Transition {
			return fault.ErrInvalidFormat
		}
	}
	decoded, err := New(j.Revealed, j.Concealed)
	if nil != err {
		return err
	}
	*b = *decoded
	return nil
}
