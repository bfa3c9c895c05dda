// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConsistencyError GenericError
type DecodeError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ParseError GenericError
type ProcessError GenericError
type ResolutionError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised        = ExistsError("already initialised")
	ErrAnchorNotCommitted        = ConsistencyError("anchor commitment not found in witness transaction")
	ErrAnchorProofMismatch       = ConsistencyError("anchor proof does not match bundle")
	ErrBundleAbsent              = ConsistencyError("bundle not found in consignment")
	ErrCannotDecodeBase58        = ParseError("cannot decode base58 text")
	ErrChecksumMismatch          = ParseError("checksum mismatch")
	ErrConsignmentInvalid        = ConsistencyError("consignment failed validation")
	ErrContractMismatch          = ConsistencyError("node belongs to another contract")
	ErrDisclosureConflict        = ConsistencyError("conflicting disclosure entry")
	ErrDuplicateNode             = ConsistencyError("duplicate node in bundle")
	ErrEndpointSealAbsent        = ConsistencyError("endpoint seal not assigned in bundle")
	ErrExcessiveNode             = ConsistencyError("node not reachable from any endpoint")
	ErrExtensionAbsent           = ConsistencyError("extension not found in consignment")
	ErrInvalidBlinding           = ParseError("invalid blinding factor")
	ErrInvalidCloseMethod        = ParseError("invalid close method")
	ErrInvalidConfiguration      = InvalidError("invalid configuration")
	ErrInvalidCursor             = InvalidError("invalid cursor")
	ErrInvalidDigest             = ParseError("invalid digest")
	ErrInvalidFormat             = InvalidError("invalid format")
	ErrInvalidLoggerChannel      = InvalidError("invalid logger channel")
	ErrInvalidSeal               = ParseError("invalid seal")
	ErrInvalidStructPointer      = InvalidError("invalid struct pointer")
	ErrInvalidTxid               = ParseError("invalid transaction id")
	ErrInvalidVout               = ParseError("invalid output number")
	ErrMerkleProofInvalid        = InvalidError("merkle proof is invalid")
	ErrMerkleTreeTooDeep         = ProcessError("merkle tree depth limit exceeded")
	ErrMissingSealStatus         = DecodeError("seal definition must be revealed or concealed")
	ErrNotCanonical              = DecodeError("non canonical encoding")
	ErrNotEndpoint               = ConsistencyError("node is not an endpoint")
	ErrNotFound                  = NotFoundError("not found")
	ErrNotInitialised            = NotFoundError("not initialised")
	ErrParentOutputAbsent        = ConsistencyError("parent output not found")
	ErrSchemaMismatch            = ConsistencyError("schema does not match genesis")
	ErrSealConcealed             = ConsistencyError("seal is concealed")
	ErrSealNotClosed             = ConsistencyError("seal not closed by witness transaction")
	ErrTrailingBytes             = DecodeError("trailing bytes after record")
	ErrTransactionInUse          = ProcessError("database transaction already in use")
	ErrTransactionNotFound       = ResolutionError("transaction not found")
	ErrTransactionRateLimited    = ResolutionError("transaction resolution rate limited")
	ErrTransitionAbsent          = ConsistencyError("transition not found in consignment")
	ErrTruncatedRecord           = DecodeError("truncated record")
	ErrUnknownTag                = DecodeError("unknown variant tag")
	ErrUnsupportedVersion        = DecodeError("unsupported consignment version")
	ErrValueTooLarge             = DecodeError("value exceeds allowed maximum")
	ErrVarintNotMinimal          = DecodeError("varint is not minimally encoded")
	ErrWitnessTransactionMissing = ResolutionError("witness transaction is missing")
	ErrWrongPrefix               = ParseError("wrong text prefix")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConsistencyError) Error() string { return string(e) }
func (e DecodeError) Error() string      { return string(e) }
func (e ExistsError) Error() string      { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ParseError) Error() string       { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e ResolutionError) Error() string  { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrConsistency(e error) bool { var x ConsistencyError; return errors.As(e, &x) }
func IsErrDecode(e error) bool      { var x DecodeError; return errors.As(e, &x) }
func IsErrExists(e error) bool      { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool     { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool    { var x NotFoundError; return errors.As(e, &x) }
func IsErrParse(e error) bool       { var x ParseError; return errors.As(e, &x) }
func IsErrProcess(e error) bool     { var x ProcessError; return errors.As(e, &x) }
func IsErrResolution(e error) bool  { var x ResolutionError; return errors.As(e, &x) }
