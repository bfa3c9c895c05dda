// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel
var log *logger.L

// Initialise - setup a log channel for last attempt to log something
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Panicf - abort on an internal invariant violation
//
// only for implementation bugs, never for conditions an untrusted
// consignment can trigger
func Panicf(format string, arguments ...interface{}) {
	message := fmt.Sprintf(format, arguments...)
	if _, file, line, ok := runtime.Caller(1); ok {
		message = fmt.Sprintf("(%q:%d) %s", file, line, message)
	}
	internalCritical(message)
	panic(InvariantViolation(message))
}

// InvariantViolation - value carried by a Panicf panic so a recover
// can tell an implementation bug apart from anything else
type InvariantViolation string

func (e InvariantViolation) Error() string { return "invariant violation: " + string(e) }

// internal routine to handle uninitialised logger channel
func internalCritical(message string) {
	if nil == log {
		fmt.Printf("*** %s\n", message)
		return
	}
	log.Critical(message)
	log.Flush()
	time.Sleep(10 * time.Millisecond) // to allow logging output
}
