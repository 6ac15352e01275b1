// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type FundsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type SubmissionError GenericError
type TimeoutError GenericError

// common errors - keep in alphabetic order
var (
	ErrCannotDecodeAddress      = InvalidError("cannot decode address")
	ErrChecksumMismatch         = InvalidError("checksum mismatch")
	ErrConsensusTimeout         = TimeoutError("consensus was not established in time")
	ErrEmptyLink                = FundsError("there is no confirmed balance in this link")
	ErrFeeExceedsValue          = InvalidError("fee must be less than value")
	ErrImmutableLink            = InvalidError("link is immutable")
	ErrInsufficientFunds        = FundsError("insufficient funds")
	ErrInvalidChain             = InvalidError("invalid chain")
	ErrInvalidConfiguration     = InvalidError("invalid configuration")
	ErrInvalidFeePolicy         = InvalidError("invalid fee policy")
	ErrInvalidKeyLength         = InvalidError("invalid key length")
	ErrInvalidLink              = InvalidError("malformed link")
	ErrInvalidNonce             = InvalidError("invalid nonce")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrLinkClosed               = ProcessError("link closed")
	ErrMalformedValue           = InvalidError("value must be a non-zero amount")
	ErrMessageNotUTF8           = InvalidError("message is not valid UTF-8")
	ErrMessageTooLong           = InvalidError("message is too long")
	ErrMissingCollaborator      = InvalidError("required collaborator is missing")
	ErrNotEstablished           = ProcessError("consensus not established")
	ErrRelayFailed              = SubmissionError("failed to relay transaction")
	ErrSubmissionRejected       = SubmissionError("failed to push transaction into mempool")
	ErrTransactionAlreadyExists = ExistsError("transaction already exists")
	ErrValueOverflow            = InvalidError("value overflow")
	ErrWrongNetworkForAddress   = InvalidError("wrong network for address")
)

// the error interface methods
func (e GenericError) Error() string    { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e FundsError) Error() string      { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e SubmissionError) Error() string { return string(e) }
func (e TimeoutError) Error() string    { return string(e) }

// Submission - tag an error from the network as a submission failure
// while keeping the original cause reachable with errors.Is/As
func Submission(cause error) error {
	if nil == cause {
		return nil
	}
	var s SubmissionError
	if errors.As(cause, &s) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrRelayFailed, cause)
}

// determine the class of an error
func IsErrExists(e error) bool     { var x ExistsError; return errors.As(e, &x) }
func IsErrFunds(e error) bool      { var x FundsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool    { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool   { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool    { var x ProcessError; return errors.As(e, &x) }
func IsErrSubmission(e error) bool { var x SubmissionError; return errors.As(e, &x) }
func IsErrTimeout(e error) bool    { var x TimeoutError; return errors.As(e, &x) }
