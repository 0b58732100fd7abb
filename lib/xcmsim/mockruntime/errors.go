// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"errors"
	"fmt"
)

// ErrorCode is the outcome of a failed instruction, reported to
// other chains in query responses.
type ErrorCode uint8

const (
	// FailedToTransactAsset is returned when an account or the holding
	// register does not hold enough funds.
	FailedToTransactAsset ErrorCode = iota + 1
	// BadOrigin is returned when an instruction requires an origin
	// and the origin was cleared.
	BadOrigin
	// Unroutable is returned when a message cannot be sent to its destination.
	Unroutable
	// FailedToDecode is returned for payloads which are not an encoded Xcm.
	FailedToDecode
)

func (c ErrorCode) Error() string {
	switch c {
	case FailedToTransactAsset:
		return "failed to transact asset"
	case BadOrigin:
		return "bad origin"
	case Unroutable:
		return "unroutable"
	case FailedToDecode:
		return "failed to decode"
	default:
		return fmt.Sprintf("error code %d", uint8(c))
	}
}

var (
	errUnknownInstruction = errors.New("unknown instruction")
	errUnexpectedState    = errors.New("unexpected chain state")
	errLengthOverflow     = errors.New("instruction count overflows uint64")
)
