// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package strict

import (
	"math"

	"github.com/bitmark-inc/rgbcore/fault"
)

// limits on variable sized fields
const (
	MaximumBytes = 1 << 24 // any single length prefixed field
	MaximumCount = 1 << 16 // any list or map
)

// Reader - sequential decoder over a packed record
//
// every method fails with a fault.DecodeError and never reads past
// the end of the buffer
type Reader struct {
	buffer []byte
	n      int
}

// NewReader - start decoding at the beginning of a record
func NewReader(record []byte) *Reader {
	return &Reader{
		buffer: record,
		n:      0,
	}
}

// Offset - number of bytes consumed so far
func (r *Reader) Offset() int {
	return r.n
}

// Remaining - number of bytes not yet consumed
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.n
}

// End - succeeds only if the whole record was consumed
func (r *Reader) End() error {
	if 0 != r.Remaining() {
		return fault.ErrTrailingBytes
	}
	return nil
}

// ReadUint64 - read a minimally encoded Varint64
func (r *Reader) ReadUint64() (uint64, error) {
	value, count := FromVarint64(r.buffer[r.n:])
	if 0 == count {
		return 0, fault.ErrTruncatedRecord
	}
	if count != len(ToVarint64(value)) {
		return 0, fault.ErrVarintNotMinimal
	}
	r.n += count
	return value, nil
}

// ReadUint16 - read a Varint64 that must fit in 16 bits
func (r *Reader) ReadUint16() (uint16, error) {
	value, err := r.ReadUint64()
	if nil != err {
		return 0, err
	}
	if value > math.MaxUint16 {
		return 0, fault.ErrValueTooLarge
	}
	return uint16(value), nil
}

// ReadByte - read a single raw byte
func (r *Reader) ReadByte() (byte, error) {
	if r.n >= len(r.buffer) {
		return 0, fault.ErrTruncatedRecord
	}
	b := r.buffer[r.n]
	r.n += 1
	return b, nil
}

// ReadBool - read a byte that must be 0 or 1
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if nil != err {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fault.ErrUnknownTag
	}
}

// ReadCount - read a list length bounded by maximum
func (r *Reader) ReadCount(maximum int) (int, error) {
	value, err := r.ReadUint64()
	if nil != err {
		return 0, err
	}
	if value > uint64(maximum) {
		return 0, fault.ErrValueTooLarge
	}
	return int(value), nil
}

// ReadBytes - read a Varint64(length) prefixed field
//
// the result is a copy and does not alias the record
func (r *Reader) ReadBytes(maximum int) ([]byte, error) {
	length, err := r.ReadCount(maximum)
	if nil != err {
		return nil, err
	}
	if length > r.Remaining() {
		return nil, fault.ErrTruncatedRecord
	}
	data := make([]byte, length)
	copy(data, r.buffer[r.n:r.n+length])
	r.n += length
	return data, nil
}

// ReadString - read a Varint64(length) prefixed string
func (r *Reader) ReadString(maximum int) (string, error) {
	data, err := r.ReadBytes(maximum)
	if nil != err {
		return "", err
	}
	return string(data), nil
}

// ReadFixed - fill the whole of dst from the record
func (r *Reader) ReadFixed(dst []byte) error {
	if len(dst) > r.Remaining() {
		return fault.ErrTruncatedRecord
	}
	copy(dst, r.buffer[r.n:r.n+len(dst)])
	r.n += len(dst)
	return nil
}
