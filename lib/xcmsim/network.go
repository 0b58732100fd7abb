// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/xcmsim/internal/log"
	"github.com/OneOfOne/xxhash"
	"github.com/disiqueira/gotree"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "xcmsim"))

// ChainConfig declares a chain of the network.
type ChainConfig struct {
	ID      ChainID
	Name    string
	IsRelay bool
	// Genesis builds the chain state on construction and reset.
	// A nil genesis gives the chain a nil state.
	Genesis Genesis
	// Executor handles the messages delivered to the chain.
	// With a nil executor delivered messages are only recorded.
	Executor Executor
}

// Config is the configuration of a network.
type Config struct {
	Chains []ChainConfig
	// MaxRounds is the maximum number of dispatch rounds before
	// a dispatch fails to converge. It defaults to DefaultMaxRounds.
	MaxRounds uint
	// Registerer is where the network metrics are registered.
	// It defaults to a registry private to the network.
	Registerer prometheus.Registerer
	// Logger defaults to the package logger.
	Logger log.LeveledLogger
}

// Network simulates a relay chain and its parachains exchanging messages.
// It runs every chain on the calling goroutine, one at a time, and is
// not safe for concurrent use. Scenarios running in parallel must each
// use their own network.
type Network struct {
	topology  *Topology
	chains    map[ChainID]*chainContext
	queues    *queues
	maxRounds uint
	metrics   *metrics
	logger    log.LeveledLogger

	// active is the activation stack, its top being the active chain.
	active      []*Guard
	dispatching bool
	// failure latches the first dispatch failure until the next reset.
	failure error
}

// NewNetwork builds the network topology and its chains,
// and resets every chain to its genesis state.
func NewNetwork(config Config) (*Network, error) {
	entries := make([]TopologyEntry, len(config.Chains))
	for i, chain := range config.Chains {
		entries[i] = TopologyEntry{ID: chain.ID, IsRelay: chain.IsRelay}
	}

	topology, err := NewTopology(entries)
	if err != nil {
		return nil, fmt.Errorf("building topology: %w", err)
	}

	metrics, err := newMetrics(config.Registerer)
	if err != nil {
		return nil, err
	}

	n := &Network{
		topology:  topology,
		chains:    make(map[ChainID]*chainContext, len(config.Chains)),
		queues:    newQueues(topology),
		maxRounds: config.MaxRounds,
		metrics:   metrics,
		logger:    config.Logger,
	}
	if n.maxRounds == 0 {
		n.maxRounds = DefaultMaxRounds
	}
	if n.logger == nil {
		n.logger = logger
	}

	for _, chain := range config.Chains {
		n.chains[chain.ID] = &chainContext{
			id:       chain.ID,
			name:     chain.Name,
			genesis:  chain.Genesis,
			executor: chain.Executor,
		}
	}

	err = n.Reset()
	if err != nil {
		return nil, err
	}

	n.logger.Debugf("network built with %d parachain(s)", len(topology.parachains))
	return n, nil
}

// Topology returns the network topology.
func (n *Network) Topology() *Topology {
	return n.topology
}

// Reset rebuilds the state of every chain from its genesis, and clears
// every queue, received log and sequence number. It also clears a
// latched dispatch failure. Resetting twice has the same effect as
// resetting once.
func (n *Network) Reset() error {
	if len(n.active) > 0 || n.dispatching {
		return ErrChainActive
	}

	ids := n.topology.ChainIDs()
	states := make([]any, len(ids))
	for i, id := range ids {
		chain := n.chains[id]
		if chain.genesis == nil {
			continue
		}

		state, err := chain.genesis.Build(id)
		if err != nil {
			return fmt.Errorf("%w: for %s: %w", ErrGenesisFailed, chain, err)
		}
		states[i] = state
	}

	for i, id := range ids {
		n.chains[id].reset(states[i])
	}
	n.queues.clear()
	n.failure = nil

	n.logger.Debug("network reset to genesis")
	return nil
}

// ExecuteWith runs fn with the given chain active, then dispatches every
// message sent until no message is pending. The dispatch also runs when
// fn returns an error, in which case both errors are joined.
// Scopes may be nested, in which case only the outermost scope dispatches.
func (n *Network) ExecuteWith(id ChainID, fn func(chain *Guard) error) error {
	_, err := ExecuteWithResult(n, id, func(chain *Guard) (struct{}, error) {
		return struct{}{}, fn(chain)
	})
	return err
}

// ExecuteWithResult is ExecuteWith for a closure returning a result.
func ExecuteWithResult[T any](n *Network, id ChainID, fn func(chain *Guard) (T, error)) (result T, err error) {
	if n.failure != nil {
		return result, n.failedError()
	}
	if n.dispatching {
		return result, ErrDispatchInProgress
	}

	guard, err := n.activate(id)
	if err != nil {
		return result, err
	}

	func() {
		defer func() {
			guard.Release()
			if r := recover(); r != nil {
				n.fail(fmt.Errorf("%w: in scope of %s: %v", ErrPanicked, guard.chain, r))
				panic(r)
			}
		}()
		result, err = fn(guard)
	}()

	if guard.depth > 0 {
		return result, err
	}

	dispatchErr := n.dispatch()
	if dispatchErr != nil {
		return result, errors.Join(err, dispatchErr)
	}
	return result, err
}

// Dispatch routes and delivers every pending message until none is left.
func (n *Network) Dispatch() error {
	if n.dispatching {
		return ErrDispatchInProgress
	}
	return n.dispatch()
}

// Received returns a copy of the messages the chain absorbed on the
// channel, in delivery order.
func (n *Network) Received(id ChainID, channel Channel) ([]Message, error) {
	chain, err := n.readableChain(id)
	if err != nil {
		return nil, err
	}
	if !channel.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}

	received := chain.received[channel]
	messages := make([]Message, len(received))
	for i, msg := range received {
		messages[i] = msg.clone()
	}
	return messages, nil
}

// Stats returns the message counters of the chain.
func (n *Network) Stats(id ChainID) (ChainStats, error) {
	chain, err := n.readableChain(id)
	if err != nil {
		return ChainStats{}, err
	}
	return chain.stats(), nil
}

// ActiveChain returns the id of the active chain, if any.
func (n *Network) ActiveChain() (id ChainID, ok bool) {
	if len(n.active) == 0 {
		return 0, false
	}
	return n.active[len(n.active)-1].chain.id, true
}

// Pending returns the number of messages sent and not yet delivered.
func (n *Network) Pending() (count int) {
	for _, chain := range n.chains {
		count += len(chain.outbound)
	}
	return count + n.queues.pending()
}

// Digest returns an xxhash fingerprint of every message received by every
// chain. Two networks given the same scenario have the same digest.
func (n *Network) Digest() (uint64, error) {
	if n.failure != nil {
		return 0, n.failedError()
	}

	hasher := xxhash.New64()
	for _, id := range n.topology.ChainIDs() {
		for _, received := range n.chains[id].received {
			for _, msg := range received {
				encoded, err := msg.Encode()
				if err != nil {
					return 0, err
				}
				_, _ = hasher.Write(encoded)
			}
		}
	}
	return hasher.Sum64(), nil
}

// String utilizes github.com/disiqueira/gotree to print the chains
// of the network with their message counters.
func (n *Network) String() string {
	relay := n.chains[RelayChainID]
	tree := gotree.New(chainSummary(relay))
	for _, id := range n.topology.parachains {
		tree.Add(chainSummary(n.chains[id]))
	}
	return tree.Print()
}

func chainSummary(chain *chainContext) string {
	stats := chain.stats()
	return fmt.Sprintf("%s downward=%d upward=%d horizontal=%d sent=%d",
		chain, stats.Downward, stats.Upward, stats.Horizontal, stats.Sent)
}

func (n *Network) readableChain(id ChainID) (*chainContext, error) {
	if n.failure != nil {
		return nil, n.failedError()
	}
	chain, ok := n.chains[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}
	return chain, nil
}

func (n *Network) fail(err error) {
	if n.failure == nil {
		n.failure = err
	}
}

func (n *Network) failedError() error {
	return fmt.Errorf("%w: %w", ErrNetworkFailed, n.failure)
}
