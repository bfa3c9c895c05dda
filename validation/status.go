// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validation

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/witness"
)

// Validity - summary of a Status
type Validity int

// possible outcomes, in increasing severity
const (
	Valid Validity = iota
	UnresolvedTransactions
	Invalid
)

// String - for printing
func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case UnresolvedTransactions:
		return "unresolved-transactions"
	case Invalid:
		return "invalid"
	default:
		return "*unknown*"
	}
}

// MarshalText - for JSON
func (v Validity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Issue - one problem found during validation
//
// NodeId or Txid is zero when the problem is not tied to a node or a
// transaction
type Issue struct {
	NodeId contract.NodeId
	Txid   witness.Txid
	Err    error
}

type issueJSON struct {
	NodeId *contract.NodeId `json:"nodeId,omitempty"`
	Txid   *witness.Txid    `json:"txid,omitempty"`
	Error  string           `json:"error"`
}

// MarshalJSON - error as text, zero ids omitted
func (i Issue) MarshalJSON() ([]byte, error) {
	j := issueJSON{
		Error: i.Err.Error(),
	}
	if (contract.NodeId{}) != i.NodeId {
		j.NodeId = &i.NodeId
	}
	if (witness.Txid{}) != i.Txid {
		j.Txid = &i.Txid
	}
	return json.Marshal(j)
}

// Status - everything found while validating one consignment
type Status struct {
	UnresolvedTxids []witness.Txid `json:"unresolvedTxids"`
	Failures        []Issue        `json:"failures"`
	Warnings        []Issue        `json:"warnings"`
}

// Validity - Invalid if any failure, otherwise UnresolvedTransactions
// if any witness could not be found
func (s *Status) Validity() Validity {
	if 0 != len(s.Failures) {
		return Invalid
	}
	if 0 != len(s.UnresolvedTxids) {
		return UnresolvedTransactions
	}
	return Valid
}

// IsValid - no failures and nothing left unresolved
func (s *Status) IsValid() bool {
	return Valid == s.Validity()
}

// HasFailure - true if err was reported as a failure
func (s *Status) HasFailure(err error) bool {
	return hasIssue(s.Failures, err)
}

// HasWarning - true if err was reported as a warning
func (s *Status) HasWarning(err error) bool {
	return hasIssue(s.Warnings, err)
}

func hasIssue(issues []Issue, err error) bool {
	for _, i := range issues {
		if err == i.Err {
			return true
		}
	}
	return false
}

func (s *Status) fail(id contract.NodeId, txid witness.Txid, err error) {
	s.Failures = append(s.Failures, Issue{NodeId: id, Txid: txid, Err: err})
}

func (s *Status) warn(id contract.NodeId, err error) {
	s.Warnings = append(s.Warnings, Issue{NodeId: id, Err: err})
}

func (s *Status) unresolved(txid witness.Txid) {
	s.UnresolvedTxids = append(s.UnresolvedTxids, txid)
	sort.Slice(s.UnresolvedTxids, func(i, j int) bool {
		return bytes.Compare(s.UnresolvedTxids[i][:], s.UnresolvedTxids[j][:]) < 0
	})
}
