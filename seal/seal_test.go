// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seal_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/witness"
)

const txidText = "4bf8131ca2a32eadc0b7e14b48ecc7c87288a7b6b79757c8290834bacfda16aa"

func explicitSeal(t *testing.T) seal.Revealed {
	txid, err := witness.TxidFromString(txidText)
	assert.Nil(t, err, "txid")
	return seal.Revealed{
		Method:   seal.OpretFirst,
		Txid:     seal.ExplicitTx(txid),
		Vout:     2,
		Blinding: 0x1122334455667788,
	}
}

func TestCloseMethod(t *testing.T) {
	for _, method := range []seal.CloseMethod{seal.OpretFirst, seal.TapretFirst} {
		parsed, err := seal.ParseCloseMethod(method.String())
		assert.Nil(t, err, "parse")
		assert.Equal(t, method, parsed, "round trip")
	}
	_, err := seal.ParseCloseMethod("opret2nd")
	assert.Equal(t, fault.ErrInvalidCloseMethod, err, "bad method accepted")
	assert.False(t, seal.CloseMethod(7).IsValid(), "out of range method valid")
}

func TestRevealedText(t *testing.T) {
	s := explicitSeal(t)
	text := s.String()
	assert.Equal(t, "opret1st:"+txidText+":2#1234605616436508552", text, "text form")

	parsed, err := seal.ParseRevealed(text)
	assert.Nil(t, err, "parse")
	assert.Equal(t, s, parsed, "round trip")

	w := seal.WithVoutSeal(seal.TapretFirst, 5, 99).ToRevealed()
	assert.Equal(t, "tapret1st:~:5#99", w.String(), "witness text form")
	parsed, err = seal.ParseRevealed(w.String())
	assert.Nil(t, err, "parse witness")
	assert.Equal(t, w, parsed, "witness round trip")

	invalid := []struct {
		text string
		err  error
	}{
		{"opret1st:~:5", fault.ErrInvalidSeal},
		{"opret1st:5#1", fault.ErrInvalidSeal},
		{"opret1st:~:5#1#2", fault.ErrInvalidSeal},
		{"bad:~:5#1", fault.ErrInvalidCloseMethod},
		{"opret1st:abcd:5#1", fault.ErrInvalidTxid},
		{"opret1st:~:x#1", fault.ErrInvalidVout},
		{"opret1st:~:4294967296#1", fault.ErrInvalidVout},
		{"opret1st:~:5#-1", fault.ErrInvalidBlinding},
	}
	for i, item := range invalid {
		_, err := seal.ParseRevealed(item.text)
		if item.err != err {
			t.Errorf("%d: %q: expected: %v but got: %v", i, item.text, item.err, err)
		}
	}
}

func TestConcealDeterministic(t *testing.T) {
	s := explicitSeal(t)
	c1 := s.Conceal()
	c2 := explicitSeal(t).Conceal()
	assert.Equal(t, c1, c2, "not deterministic")

	s.Blinding += 1
	assert.NotEqual(t, c1, s.Conceal(), "blinding not committed")

	w := seal.WithVoutSeal(seal.OpretFirst, 2, 0x1122334455667788).ToRevealed()
	assert.NotEqual(t, c1, w.Conceal(), "txid pointer not committed")
}

func TestConcealedText(t *testing.T) {
	c := explicitSeal(t).Conceal()
	parsed, err := seal.ParseConcealed(c.String())
	assert.Nil(t, err, "parse")
	assert.Equal(t, c, parsed, "round trip")

	b, err := json.Marshal(c)
	assert.Nil(t, err, "json marshal")
	var decoded seal.Concealed
	assert.Nil(t, json.Unmarshal(b, &decoded), "json unmarshal")
	assert.Equal(t, c, decoded, "json round trip")

	_, err = seal.ParseConcealed("opret1st:~:1#2")
	assert.NotNil(t, err, "revealed text parsed as concealed")
}

func TestNewVoutSeal(t *testing.T) {
	s1 := seal.NewOpretSeal(1)
	s2 := seal.NewOpretSeal(1)
	assert.Equal(t, seal.OpretFirst, s1.Method, "method")
	assert.Equal(t, uint32(1), s1.Vout, "vout")
	assert.NotEqual(t, s1.Blinding, s2.Blinding, "blinding is not random")

	s3 := seal.NewTapretSeal(4)
	assert.Equal(t, seal.TapretFirst, s3.Method, "tapret method")

	r := s1.ToRevealed()
	_, explicit := r.Txid.Txid()
	assert.False(t, explicit, "vout seal must be witness relative")
	assert.Equal(t, s1.Blinding, r.Blinding, "blinding lost")
}

func TestOutpoint(t *testing.T) {
	witnessTxid := witness.Txid{9, 9, 9}

	w := seal.WithVoutSeal(seal.OpretFirst, 3, 1).ToRevealed()
	assert.Equal(t, witness.Outpoint{Txid: witnessTxid, Vout: 3}, w.Outpoint(witnessTxid), "witness relative")

	s := explicitSeal(t)
	txid, _ := s.Txid.Txid()
	assert.Equal(t, witness.Outpoint{Txid: txid, Vout: 2}, s.Outpoint(witnessTxid), "explicit")
}

func TestTerminalFrom(t *testing.T) {
	s := explicitSeal(t)
	terminal := seal.TerminalFrom(s)
	_, ok := terminal.(seal.ConcealedUtxo)
	assert.True(t, ok, "explicit seal must become concealed utxo")
	assert.Equal(t, s.Conceal(), terminal.Conceal(), "conceal projection")

	vs := seal.WithVoutSeal(seal.TapretFirst, 1, 42)
	terminal = seal.TerminalFrom(vs.ToRevealed())
	assert.Equal(t, seal.WitnessVout{vs}, terminal, "witness seal must stay revealed")
	assert.Equal(t, vs.ToRevealed().Conceal(), terminal.Conceal(), "both arms conceal identically")
}

func TestParseTerminal(t *testing.T) {
	s := explicitSeal(t)
	concealed := seal.ConcealedUtxo(s.Conceal())

	terminal, err := seal.ParseTerminal(concealed.String())
	assert.Nil(t, err, "parse concealed")
	assert.Equal(t, concealed, terminal, "concealed round trip")

	w := seal.NewWitnessVout(seal.OpretFirst, 6)
	terminal, err = seal.ParseTerminal(w.String())
	assert.Nil(t, err, "parse witness vout")
	assert.Equal(t, w, terminal, "witness vout round trip")

	// an explicit revealed seal parses into its concealed arm
	terminal, err = seal.ParseTerminal(s.String())
	assert.Nil(t, err, "parse explicit")
	assert.Equal(t, concealed, terminal, "explicit seal not concealed")

	_, err = seal.ParseTerminal("nonsense")
	assert.NotNil(t, err, "nonsense accepted")
}

func TestTerminalPack(t *testing.T) {
	terminals := []seal.Terminal{
		seal.ConcealedUtxo(explicitSeal(t).Conceal()),
		seal.WitnessVout{seal.WithVoutSeal(seal.TapretFirst, 300, 0xffffffffffffffff)},
	}
	for i, terminal := range terminals {
		packed := seal.AppendTerminal(nil, terminal)
		r := strict.NewReader(packed)
		decoded, err := seal.ReadTerminal(r)
		if nil != err {
			t.Fatalf("%d: read error: %s", i, err)
		}
		assert.Nil(t, r.End(), "trailing bytes")
		assert.Equal(t, terminal, decoded, "round trip")
	}

	_, err := seal.ReadTerminal(strict.NewReader([]byte{0x02}))
	assert.Equal(t, fault.ErrUnknownTag, err, "unknown tag accepted")

	_, err = seal.ReadTerminal(strict.NewReader([]byte{0x01, 0x09, 0x00, 0x00}))
	assert.Equal(t, fault.ErrUnknownTag, err, "unknown method accepted")
}

func TestRevealedPack(t *testing.T) {
	seals := []seal.Revealed{
		explicitSeal(t),
		seal.WithVoutSeal(seal.OpretFirst, 0, 0).ToRevealed(),
	}
	for i, s := range seals {
		r := strict.NewReader(seal.AppendRevealed(nil, s))
		decoded, err := seal.ReadRevealed(r)
		if nil != err {
			t.Fatalf("%d: read error: %s", i, err)
		}
		assert.Nil(t, r.End(), "trailing bytes")
		assert.Equal(t, s, decoded, "round trip")
	}
}

func TestRevealedJSON(t *testing.T) {
	s := explicitSeal(t)
	b, err := json.Marshal(s)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `{"method":"opret1st","txid":"`+txidText+`","vout":2,"blinding":"1234605616436508552"}`, string(b), "json")

	var decoded seal.Revealed
	assert.Nil(t, json.Unmarshal(b, &decoded), "unmarshal")
	assert.Equal(t, s, decoded, "round trip")
}
