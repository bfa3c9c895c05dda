// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/rgbcore/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingSeal         = fault.InvalidError("seal argument is missing")
	ErrNoExposedSeals      = fault.InvalidError("no seals to expose")
	ErrUnknownInputFormat  = fault.InvalidError("unknown input format")
	ErrUnknownOutputFormat = fault.InvalidError("unknown output format")
)
