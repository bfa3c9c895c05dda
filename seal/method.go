// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seal

import (
	"github.com/bitmark-inc/rgbcore/fault"
)

// CloseMethod - which commitment scheme closes the seal
type CloseMethod uint8

// enumerate the possible close methods
// this is encoded as a single byte in every seal record
const (
	OpretFirst  = CloseMethod(iota) // commitment in the first OP_RETURN output
	TapretFirst = CloseMethod(iota) // commitment in the first taproot output

	// this item must be last
	invalidMethod = CloseMethod(iota)
)

// String - text form used inside seal definitions
func (method CloseMethod) String() string {
	switch method {
	case OpretFirst:
		return "opret1st"
	case TapretFirst:
		return "tapret1st"
	default:
		return "*unknown*"
	}
}

// IsValid - check method is one of the enumerated values
func (method CloseMethod) IsValid() bool {
	return method < invalidMethod
}

// ParseCloseMethod - inverse of String
func ParseCloseMethod(s string) (CloseMethod, error) {
	switch s {
	case "opret1st":
		return OpretFirst, nil
	case "tapret1st":
		return TapretFirst, nil
	default:
		return invalidMethod, fault.ErrInvalidCloseMethod
	}
}

// MarshalText - method as text for JSON
func (method CloseMethod) MarshalText() ([]byte, error) {
	if !method.IsValid() {
		return nil, fault.ErrInvalidCloseMethod
	}
	return []byte(method.String()), nil
}

// UnmarshalText - method from JSON text
func (method *CloseMethod) UnmarshalText(s []byte) error {
	m, err := ParseCloseMethod(string(s))
	if nil != err {
		return err
	}
	*method = m
	return nil
}
