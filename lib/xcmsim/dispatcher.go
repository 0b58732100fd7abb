// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"fmt"

	"github.com/disiqueira/gotree"
)

// DefaultMaxRounds is the default maximum number of dispatch rounds.
const DefaultMaxRounds = 64

// NonConvergenceError is returned when messages are still pending after
// the maximum number of dispatch rounds. It wraps ErrDeliveryDidNotConverge.
type NonConvergenceError struct {
	Rounds uint
	// Pending holds the undelivered messages in delivery order.
	Pending []Message
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%s after %d rounds: %d message(s) pending",
		ErrDeliveryDidNotConverge, e.Rounds, len(e.Pending))
}

func (e *NonConvergenceError) Unwrap() error {
	return ErrDeliveryDidNotConverge
}

// Diagnostics utilizes github.com/disiqueira/gotree to print the pending
// messages grouped by recipient and channel.
func (e *NonConvergenceError) Diagnostics() string {
	tree := gotree.New(fmt.Sprintf("pending after %d rounds", e.Rounds))

	var recipient, channel gotree.Tree
	for i, msg := range e.Pending {
		newRecipient := i == 0 || msg.To != e.Pending[i-1].To
		if newRecipient {
			recipient = tree.Add(fmt.Sprintf("chain %d", msg.To))
		}
		if newRecipient || msg.Channel != e.Pending[i-1].Channel {
			channel = recipient.Add(msg.Channel.String())
		}
		channel.Add(fmt.Sprintf("#%d from %d: %s", msg.SequenceNo, msg.From, msg.Hash()))
	}

	return tree.Print()
}

func newNonConvergenceError(rounds uint, batches []batch) *NonConvergenceError {
	err := &NonConvergenceError{Rounds: rounds}
	for _, b := range batches {
		err.Pending = append(err.Pending, b.messages...)
	}
	return err
}

// dispatch routes and delivers messages until none is pending.
// Each round moves every outbound record into the inbound queues, then
// delivers each recipient its batch, which may produce new outbound
// messages for the next round.
func (n *Network) dispatch() (err error) {
	if n.failure != nil {
		return n.failedError()
	}

	n.dispatching = true
	defer func() {
		n.dispatching = false
		if r := recover(); r != nil {
			n.fail(fmt.Errorf("%w: during dispatch: %v", ErrPanicked, r))
			panic(r)
		}
		if err != nil {
			n.fail(err)
		}
	}()

	var rounds uint
	for {
		err = n.routeOutbound()
		if err != nil {
			return err
		}

		batches := n.queues.drainAll()
		if len(batches) == 0 {
			n.metrics.rounds.Observe(float64(rounds))
			if rounds > 0 {
				n.logger.Debugf("dispatch converged after %d rounds", rounds)
			}
			return nil
		}

		if rounds == n.maxRounds {
			nonConvergence := newNonConvergenceError(rounds, batches)
			n.logger.Errorf("%s\n%s", nonConvergence, nonConvergence.Diagnostics())
			return nonConvergence
		}
		rounds++

		n.logger.Debugf("dispatch round %d: delivering to %d chain(s)", rounds, len(batches))
		for _, b := range batches {
			err = n.deliver(b)
			if err != nil {
				return err
			}
		}
	}
}

// routeOutbound moves the outbound records of every chain, in chain order
// then send order, into the inbound queues of their recipients.
func (n *Network) routeOutbound() error {
	for _, id := range n.topology.ChainIDs() {
		chain := n.chains[id]
		outbound := chain.outbound
		chain.outbound = nil

		for _, msg := range outbound {
			err := n.queues.enqueue(msg)
			if err != nil {
				return fmt.Errorf("routing %s: %w", msg, err)
			}
		}
	}
	return nil
}

// deliver activates the recipient chain, records the batch as received
// and hands a copy of it to the chain executor.
func (n *Network) deliver(b batch) error {
	guard, err := n.activate(b.chain)
	if err != nil {
		return err
	}
	defer guard.Release()

	chain := guard.chain
	for _, msg := range b.messages {
		chain.absorb(msg)
		n.metrics.delivered.WithLabelValues(chainLabel(chain.id), msg.Channel.String()).Inc()
		n.logger.Tracef("delivered to %s: %s", chain, msg)
	}

	if chain.executor == nil {
		return nil
	}

	inbound := make([]Message, len(b.messages))
	for i, msg := range b.messages {
		inbound[i] = msg.clone()
	}

	err = chain.executor.Execute(guard, inbound)
	if err != nil {
		return fmt.Errorf("%w: on %s: %w", ErrExecutorFailed, chain, err)
	}
	return nil
}
