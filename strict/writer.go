// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package strict

// Packed - encoded records are just a byte slice
type Packed []byte

// AppendUint64 - append a Varint64 to buffer
func AppendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, ToVarint64(value)...)
}

// AppendUint16 - append a 16 bit value as Varint64
func AppendUint16(buffer Packed, value uint16) Packed {
	return AppendUint64(buffer, uint64(value))
}

// AppendByte - append a single raw byte, used for variant tags
func AppendByte(buffer Packed, b byte) Packed {
	return append(buffer, b)
}

// AppendBool - append a boolean as a single byte
func AppendBool(buffer Packed, flag bool) Packed {
	if flag {
		return append(buffer, 1)
	}
	return append(buffer, 0)
}

// AppendBytes - append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func AppendBytes(buffer Packed, data []byte) Packed {
	buffer = AppendUint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// AppendString - append a string to a buffer
//
// the field is prefixed by Varint64(length)
func AppendString(buffer Packed, s string) Packed {
	buffer = AppendUint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// AppendFixed - append a fixed size item (digest, id) without any prefix
func AppendFixed(buffer Packed, data []byte) Packed {
	return append(buffer, data...)
}
