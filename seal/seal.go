// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seal

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/tagged"
	"github.com/bitmark-inc/rgbcore/util"
	"github.com/bitmark-inc/rgbcore/witness"
)

// ConcealedLength - number of bytes in a concealed seal
const ConcealedLength = tagged.Length

// commitment tag for concealing seals
var sealTag = tagged.New("rgb:seal")

// text form of a pointer to the witness transaction
const witnessTxText = "~"

// TxPtr - either the witness transaction of the node that defines the
// seal, or an explicit transaction id
type TxPtr struct {
	txid     witness.Txid
	explicit bool
}

// WitnessTx - pointer to the not yet known witness transaction
func WitnessTx() TxPtr {
	return TxPtr{}
}

// ExplicitTx - pointer to a known transaction
func ExplicitTx(txid witness.Txid) TxPtr {
	return TxPtr{
		txid:     txid,
		explicit: true,
	}
}

// Txid - the explicit txid, second value false if witness relative
func (p TxPtr) Txid() (witness.Txid, bool) {
	return p.txid, p.explicit
}

// String - "~" for the witness transaction or the txid hex
func (p TxPtr) String() string {
	if !p.explicit {
		return witnessTxText
	}
	return p.txid.String()
}

// MarshalText - for JSON
func (p TxPtr) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText - for JSON
func (p *TxPtr) UnmarshalText(s []byte) error {
	if witnessTxText == string(s) {
		*p = WitnessTx()
		return nil
	}
	txid, err := witness.TxidFromString(string(s))
	if nil != err {
		return err
	}
	*p = ExplicitTx(txid)
	return nil
}

// Revealed - graph level seal definition
type Revealed struct {
	Method   CloseMethod `json:"method"`
	Txid     TxPtr       `json:"txid"`
	Vout     uint32      `json:"vout"`
	Blinding uint64      `json:"blinding,string"`
}

// Concealed - one way commitment to a revealed seal
type Concealed [ConcealedLength]byte

// Outpoint - the output this seal is bound to, resolving a witness
// relative seal against the given witness txid
func (s Revealed) Outpoint(witnessTxid witness.Txid) witness.Outpoint {
	txid, ok := s.Txid.Txid()
	if !ok {
		txid = witnessTxid
	}
	return witness.Outpoint{
		Txid: txid,
		Vout: s.Vout,
	}
}

// Conceal - commit to the seal, pure and deterministic over the
// canonical encoding
func (s Revealed) Conceal() Concealed {
	return Concealed(sealTag.Sum(AppendRevealed(nil, s)))
}

// String - method:txid:vout#blinding where txid may be "~"
func (s Revealed) String() string {
	return fmt.Sprintf("%s:%s:%d#%d", s.Method, s.Txid, s.Vout, s.Blinding)
}

// ParseRevealed - inverse of Revealed.String
func ParseRevealed(s string) (Revealed, error) {
	hashSplit := strings.Split(s, "#")
	if 2 != len(hashSplit) {
		return Revealed{}, fault.ErrInvalidSeal
	}
	parts := strings.Split(hashSplit[0], ":")
	if 3 != len(parts) {
		return Revealed{}, fault.ErrInvalidSeal
	}

	method, err := ParseCloseMethod(parts[0])
	if nil != err {
		return Revealed{}, err
	}

	var txid TxPtr
	if err := txid.UnmarshalText([]byte(parts[1])); nil != err {
		return Revealed{}, err
	}

	vout, err := strconv.ParseUint(parts[2], 10, 32)
	if nil != err {
		return Revealed{}, fault.ErrInvalidVout
	}

	blinding, err := strconv.ParseUint(hashSplit[1], 10, 64)
	if nil != err {
		return Revealed{}, fault.ErrInvalidBlinding
	}

	return Revealed{
		Method:   method,
		Txid:     txid,
		Vout:     uint32(vout),
		Blinding: blinding,
	}, nil
}

// String - base58check text
func (c Concealed) String() string {
	return util.ToBase58Check(util.KindConcealedSeal, c[:])
}

// GoString - for %#v
func (c Concealed) GoString() string {
	return "<concealed-seal:" + util.DigestToHex(c[:], false) + ">"
}

// MarshalText - for JSON
func (c Concealed) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText - for JSON
func (c *Concealed) UnmarshalText(s []byte) error {
	concealed, err := ParseConcealed(string(s))
	if nil != err {
		return err
	}
	*c = concealed
	return nil
}

// ParseConcealed - inverse of Concealed.String
func ParseConcealed(s string) (Concealed, error) {
	payload, err := util.FromBase58Check(util.KindConcealedSeal, s)
	if nil != err {
		return Concealed{}, err
	}
	if ConcealedLength != len(payload) {
		return Concealed{}, fault.ErrInvalidSeal
	}
	var c Concealed
	copy(c[:], payload)
	return c, nil
}

// VoutSeal - seal definition re-using the witness transaction id of the
// defining node; only the output number is known at construction
type VoutSeal struct {
	Method   CloseMethod `json:"method"`
	Vout     uint32      `json:"vout"`
	Blinding uint64      `json:"blinding,string"`
}

// NewVoutSeal - new seal with a random blinding factor
func NewVoutSeal(method CloseMethod, vout uint32) VoutSeal {
	return WithVoutSeal(method, vout, randomBlinding())
}

// NewOpretSeal - new opret seal with a random blinding factor
func NewOpretSeal(vout uint32) VoutSeal {
	return NewVoutSeal(OpretFirst, vout)
}

// NewTapretSeal - new tapret seal with a random blinding factor
func NewTapretSeal(vout uint32) VoutSeal {
	return NewVoutSeal(TapretFirst, vout)
}

// WithVoutSeal - reconstruct a previously issued seal
func WithVoutSeal(method CloseMethod, vout uint32, blinding uint64) VoutSeal {
	return VoutSeal{
		Method:   method,
		Vout:     vout,
		Blinding: blinding,
	}
}

// ToRevealed - graph level seal, always witness relative
func (s VoutSeal) ToRevealed() Revealed {
	return Revealed{
		Method:   s.Method,
		Txid:     WitnessTx(),
		Vout:     s.Vout,
		Blinding: s.Blinding,
	}
}

// blinding factors must not be predictable
func randomBlinding() uint64 {
	var buffer [8]byte
	if _, err := rand.Read(buffer[:]); nil != err {
		fault.Panicf("seal: random source failed: %s", err)
	}
	return binary.LittleEndian.Uint64(buffer[:])
}

// AppendRevealed - canonical encoding of a revealed seal
func AppendRevealed(buffer strict.Packed, s Revealed) strict.Packed {
	buffer = strict.AppendByte(buffer, byte(s.Method))
	if txid, ok := s.Txid.Txid(); ok {
		buffer = strict.AppendByte(buffer, 1)
		buffer = strict.AppendFixed(buffer, txid[:])
	} else {
		buffer = strict.AppendByte(buffer, 0)
	}
	buffer = strict.AppendUint64(buffer, uint64(s.Vout))
	return strict.AppendUint64(buffer, s.Blinding)
}

// ReadRevealed - decode a seal written by AppendRevealed
func ReadRevealed(r *strict.Reader) (Revealed, error) {
	method, err := readMethod(r)
	if nil != err {
		return Revealed{}, err
	}

	txid := WitnessTx()
	explicit, err := r.ReadBool()
	if nil != err {
		return Revealed{}, err
	}
	if explicit {
		var id witness.Txid
		if err := r.ReadFixed(id[:]); nil != err {
			return Revealed{}, err
		}
		txid = ExplicitTx(id)
	}

	vout, blinding, err := readVoutBlinding(r)
	if nil != err {
		return Revealed{}, err
	}

	return Revealed{
		Method:   method,
		Txid:     txid,
		Vout:     vout,
		Blinding: blinding,
	}, nil
}

// AppendConcealed - a concealed seal is its raw digest
func AppendConcealed(buffer strict.Packed, c Concealed) strict.Packed {
	return strict.AppendFixed(buffer, c[:])
}

// ReadConcealed - decode a raw concealed seal
func ReadConcealed(r *strict.Reader) (Concealed, error) {
	var c Concealed
	err := r.ReadFixed(c[:])
	return c, err
}

func readMethod(r *strict.Reader) (CloseMethod, error) {
	b, err := r.ReadByte()
	if nil != err {
		return invalidMethod, err
	}
	method := CloseMethod(b)
	if !method.IsValid() {
		return invalidMethod, fault.ErrUnknownTag
	}
	return method, nil
}

func readVoutBlinding(r *strict.Reader) (uint32, uint64, error) {
	vout, err := r.ReadUint64()
	if nil != err {
		return 0, 0, err
	}
	if vout > 0xffffffff {
		return 0, 0, fault.ErrValueTooLarge
	}
	blinding, err := r.ReadUint64()
	if nil != err {
		return 0, 0, err
	}
	return uint32(vout), blinding, nil
}
