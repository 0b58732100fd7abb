// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"errors"
)

var (
	// ErrInvalidRoute is returned when a message channel does not match the
	// direction allowed between its sender and recipient.
	ErrInvalidRoute = errors.New("invalid route")
	// ErrDeliveryDidNotConverge is returned when messages are still pending
	// after the maximum number of dispatch rounds.
	ErrDeliveryDidNotConverge = errors.New("delivery did not converge")
	// ErrUnknownChain is returned for a chain id absent from the topology.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrUnknownChannel is returned for a channel value out of range.
	ErrUnknownChannel = errors.New("unknown channel")
	// ErrExecutorFailed wraps an error returned by a chain executor.
	ErrExecutorFailed = errors.New("executor failed")
	// ErrGenesisFailed wraps an error returned by a genesis provider.
	ErrGenesisFailed = errors.New("genesis failed")
	// ErrNetworkFailed is returned by harness calls made after a dispatch
	// failure and before the next reset.
	ErrNetworkFailed = errors.New("network failed, reset required")
	// ErrDispatchInProgress is returned when a chain scope is opened
	// from within a message delivery.
	ErrDispatchInProgress = errors.New("dispatch in progress")
	// ErrChainActive is returned when resetting while a chain scope is open.
	ErrChainActive = errors.New("chain scope is open")
	// ErrChainNotActive is the panic value when a guard is used after it
	// was released or while another chain is active.
	ErrChainNotActive = errors.New("chain is not active")
	// ErrPanicked latches the network when a scope or an executor panics.
	ErrPanicked = errors.New("panicked")
)

var (
	errDuplicateChain      = errors.New("duplicate chain id")
	errNoRelayChain        = errors.New("no relay chain designated")
	errMultipleRelayChains = errors.New("more than one relay chain designated")
	errReservedRelayID     = errors.New("chain id is reserved for the relay chain")
	errRelayIDMismatch     = errors.New("relay chain must use the reserved relay id")
)
