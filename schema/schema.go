// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema - opaque contract schema
//
// The graph and seal machinery never looks inside a schema; only its id
// is compared against the one committed in genesis.
package schema

import (
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/tagged"
	"github.com/bitmark-inc/rgbcore/util"
)

// limits on decoded fields
const (
	maxNameLength = 256
	maxDataLength = strict.MaximumBytes
)

var schemaTag = tagged.New("rgb:schema")

// Id - commitment to a schema
type Id [tagged.Length]byte

// Schema - named opaque definition
type Schema struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// SchemaId - pure function of the encoded schema
func (s *Schema) SchemaId() Id {
	return Id(schemaTag.Sum(s.Pack()))
}

// Pack - canonical binary form
func (s *Schema) Pack() strict.Packed {
	buffer := strict.AppendString(nil, s.Name)
	return strict.AppendBytes(buffer, s.Data)
}

// Unpack - decode a complete record produced by Pack
func Unpack(record []byte) (*Schema, error) {
	r := strict.NewReader(record)
	s, err := Read(r)
	if nil != err {
		return nil, err
	}
	if err := r.End(); nil != err {
		return nil, err
	}
	return s, nil
}

// Read - decode a schema embedded in a larger record
func Read(r *strict.Reader) (*Schema, error) {
	name, err := r.ReadString(maxNameLength)
	if nil != err {
		return nil, err
	}
	data, err := r.ReadBytes(maxDataLength)
	if nil != err {
		return nil, err
	}
	return &Schema{
		Name: name,
		Data: data,
	}, nil
}

// String - base58check text
func (id Id) String() string {
	return util.ToBase58Check(util.KindSchemaId, id[:])
}

// GoString - for %#v
func (id Id) GoString() string {
	return "<schema:" + util.DigestToHex(id[:], false) + ">"
}

// MarshalText - for JSON
func (id Id) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON
func (id *Id) UnmarshalText(s []byte) error {
	payload, err := util.FromBase58Check(util.KindSchemaId, string(s))
	if nil != err {
		return err
	}
	return util.CopyDigest(id[:], payload)
}
