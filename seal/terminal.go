// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seal

import (
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
)

// variant tags of the terminal seal encoding
const (
	concealedUtxoTag = 0
	witnessVoutTag   = 1
)

// Terminal - seal endpoint of a consignment
//
// exactly two implementations exist: ConcealedUtxo for an external output
// known only by commitment, and WitnessVout for an output of the not yet
// known witness transaction; both project to the same concealed form
type Terminal interface {
	Conceal() Concealed
	String() string
	terminal()
}

// ConcealedUtxo - external transaction output in concealed form
type ConcealedUtxo Concealed

// WitnessVout - output of the witness transaction
type WitnessVout struct {
	VoutSeal
}

func (ConcealedUtxo) terminal() {}
func (WitnessVout) terminal()   {}

// Conceal - already concealed
func (c ConcealedUtxo) Conceal() Concealed {
	return Concealed(c)
}

// String - concealed text form
func (c ConcealedUtxo) String() string {
	return Concealed(c).String()
}

// Conceal - same commitment as the equivalent graph level seal
func (w WitnessVout) Conceal() Concealed {
	return w.ToRevealed().Conceal()
}

// String - revealed text form with "~" as txid
func (w WitnessVout) String() string {
	return w.ToRevealed().String()
}

// NewWitnessVout - terminal seal for the witness transaction with a
// random blinding factor
func NewWitnessVout(method CloseMethod, vout uint32) Terminal {
	return WitnessVout{NewVoutSeal(method, vout)}
}

// TerminalFrom - a seal with an explicit txid can only be an endpoint in
// concealed form, a witness relative seal stays revealed
func TerminalFrom(s Revealed) Terminal {
	if _, ok := s.Txid.Txid(); ok {
		return ConcealedUtxo(s.Conceal())
	}
	return WitnessVout{WithVoutSeal(s.Method, s.Vout, s.Blinding)}
}

// ParseTerminal - try the concealed grammar first, then the revealed one
func ParseTerminal(s string) (Terminal, error) {
	if concealed, err := ParseConcealed(s); nil == err {
		return ConcealedUtxo(concealed), nil
	}
	revealed, err := ParseRevealed(s)
	if nil != err {
		return nil, err
	}
	return TerminalFrom(revealed), nil
}

// AppendTerminal - tagged canonical encoding of a terminal seal
func AppendTerminal(buffer strict.Packed, t Terminal) strict.Packed {
	switch seal := t.(type) {
	case ConcealedUtxo:
		buffer = strict.AppendByte(buffer, concealedUtxoTag)
		return AppendConcealed(buffer, Concealed(seal))
	case WitnessVout:
		buffer = strict.AppendByte(buffer, witnessVoutTag)
		buffer = strict.AppendByte(buffer, byte(seal.Method))
		buffer = strict.AppendUint64(buffer, uint64(seal.Vout))
		return strict.AppendUint64(buffer, seal.Blinding)
	default:
		fault.Panicf("seal.AppendTerminal: unexpected type: %T", t)
		return nil
	}
}

// ReadTerminal - decode a seal written by AppendTerminal
func ReadTerminal(r *strict.Reader) (Terminal, error) {
	tag, err := r.ReadByte()
	if nil != err {
		return nil, err
	}
	switch tag {
	case concealedUtxoTag:
		concealed, err := ReadConcealed(r)
		if nil != err {
			return nil, err
		}
		return ConcealedUtxo(concealed), nil
	case witnessVoutTag:
		method, err := readMethod(r)
		if nil != err {
			return nil, err
		}
		vout, blinding, err := readVoutBlinding(r)
		if nil != err {
			return nil, err
		}
		return WitnessVout{WithVoutSeal(method, vout, blinding)}, nil
	default:
		return nil, fault.ErrUnknownTag
	}
}
