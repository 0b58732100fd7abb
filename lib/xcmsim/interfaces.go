// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

// Executor interprets the messages delivered to a chain.
// Execute receives the chain's inbound batch ordered by channel
// (downward, upward then horizontal) and by enqueue order within a channel.
// Messages sent through the chain guard during the call are the executor
// outbound messages, and are routed by the next dispatch round.
// A returned error aborts the dispatch; failures which are part of the
// executor's own protocol should be reported as outbound messages instead.
type Executor interface {
	Execute(chain *Guard, inbound []Message) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(chain *Guard, inbound []Message) error

// Execute calls f(chain, inbound).
func (f ExecutorFunc) Execute(chain *Guard, inbound []Message) error {
	return f(chain, inbound)
}

// Genesis builds the initial opaque state of a chain.
// It is called on network construction and on every reset, and must
// return a fresh state each time.
type Genesis interface {
	Build(id ChainID) (state any, err error)
}

// GenesisFunc adapts a function to the Genesis interface.
type GenesisFunc func(id ChainID) (state any, err error)

// Build calls f(id).
func (f GenesisFunc) Build(id ChainID) (state any, err error) {
	return f(id)
}
