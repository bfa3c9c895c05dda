// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/schema"
)

func TestSchemaId(t *testing.T) {
	s1 := &schema.Schema{Name: "fungible", Data: []byte{1, 2, 3}}
	s2 := &schema.Schema{Name: "fungible", Data: []byte{1, 2, 3}}
	s3 := &schema.Schema{Name: "fungible", Data: []byte{1, 2, 4}}

	assert.Equal(t, s1.SchemaId(), s2.SchemaId(), "not deterministic")
	assert.NotEqual(t, s1.SchemaId(), s3.SchemaId(), "data not committed")
}

func TestPackUnpack(t *testing.T) {
	s := &schema.Schema{Name: "collectible", Data: []byte("opaque definition")}
	packed := s.Pack()

	decoded, err := schema.Unpack(packed)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, s, decoded, "round trip")

	_, err = schema.Unpack(packed[:5])
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated record accepted")

	_, err = schema.Unpack(append(packed, 0))
	assert.Equal(t, fault.ErrTrailingBytes, err, "trailing bytes accepted")
}

func TestIdText(t *testing.T) {
	id := (&schema.Schema{Name: "x"}).SchemaId()

	b, err := json.Marshal(id)
	assert.Nil(t, err, "marshal")

	var decoded schema.Id
	assert.Nil(t, json.Unmarshal(b, &decoded), "unmarshal")
	assert.Equal(t, id, decoded, "round trip")
}
