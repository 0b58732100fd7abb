// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"fmt"
)

// chainContext is the isolated execution environment of one chain.
type chainContext struct {
	id       ChainID
	name     string
	genesis  Genesis
	executor Executor

	state any
	// outbound holds the messages sent by the chain and not yet routed.
	outbound     []Message
	nextSequence [numChannels]uint64
	received     [numChannels][]Message
	sent         uint64
}

func (c *chainContext) reset(state any) {
	c.state = state
	c.outbound = nil
	c.nextSequence = [numChannels]uint64{}
	c.received = [numChannels][]Message{}
	c.sent = 0
}

func (c *chainContext) absorb(msg Message) {
	c.received[msg.Channel] = append(c.received[msg.Channel], msg)
}

func (c *chainContext) stats() ChainStats {
	return ChainStats{
		Downward:   uint64(len(c.received[Downward])),
		Upward:     uint64(len(c.received[Upward])),
		Horizontal: uint64(len(c.received[Horizontal])),
		Sent:       c.sent,
	}
}

func (c *chainContext) String() string {
	if c.name == "" {
		return fmt.Sprintf("chain %d", c.id)
	}
	return fmt.Sprintf("%s (%d)", c.name, c.id)
}

// Guard is the handle to the active chain of a network.
// It is handed to the closures given to ExecuteWith and to executors,
// and is only usable while its chain is the active one: using it after
// it was released or while a nested scope is open panics with
// ErrChainNotActive.
type Guard struct {
	network  *Network
	chain    *chainContext
	depth    int
	released bool
}

// activate makes the chain the active one until the returned guard
// is released, which restores the previously active chain.
func (n *Network) activate(id ChainID) (*Guard, error) {
	chain, ok := n.chains[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}

	guard := &Guard{
		network: n,
		chain:   chain,
		depth:   len(n.active),
	}
	n.active = append(n.active, guard)
	n.logger.Tracef("activated %s at depth %d", chain, guard.depth)
	return guard, nil
}

// Release restores the chain that was active before this guard was
// created. Guards opened on top of this one and not yet released are
// released with it. Release is idempotent.
func (g *Guard) Release() {
	if g.released {
		return
	}

	active := g.network.active
	for _, guard := range active[g.depth:] {
		guard.released = true
	}
	g.network.active = active[:g.depth]
}

func (g *Guard) mustBeActive() {
	active := g.network.active
	if g.released || len(active) == 0 || active[len(active)-1] != g {
		panic(fmt.Errorf("%w: %s", ErrChainNotActive, g.chain))
	}
}

// ChainID returns the id of the guarded chain.
func (g *Guard) ChainID() ChainID {
	return g.chain.id
}

// Name returns the configured name of the guarded chain.
func (g *Guard) Name() string {
	return g.chain.name
}

// Topology returns the topology of the network the chain belongs to.
func (g *Guard) Topology() *Topology {
	return g.network.topology
}

// State returns the opaque state of the guarded chain.
func (g *Guard) State() any {
	g.mustBeActive()
	return g.chain.state
}

// Send records a message from the guarded chain to be routed
// on the next dispatch round. It fails with ErrInvalidRoute if the
// channel does not match the direction between the two chains.
func (g *Guard) Send(to ChainID, channel Channel, payload []byte) (Message, error) {
	g.mustBeActive()
	return g.network.send(g.chain, to, channel, payload)
}

// SendTo sends a message on the only channel allowed from the guarded
// chain to the recipient.
func (g *Guard) SendTo(to ChainID, payload []byte) (Message, error) {
	g.mustBeActive()
	channel, err := g.network.topology.ChannelBetween(g.chain.id, to)
	if err != nil {
		return Message{}, err
	}
	return g.network.send(g.chain, to, channel, payload)
}

func (n *Network) send(from *chainContext, to ChainID, channel Channel, payload []byte) (Message, error) {
	err := n.topology.checkRoute(from.id, to, channel)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		From:       from.id,
		To:         to,
		Channel:    channel,
		Payload:    append([]byte(nil), payload...),
		SequenceNo: from.nextSequence[channel],
	}
	from.nextSequence[channel]++
	from.outbound = append(from.outbound, msg)
	from.sent++
	n.metrics.sent.WithLabelValues(chainLabel(from.id), channel.String()).Inc()
	n.logger.Tracef("%s queued %s", from, msg)

	return msg, nil
}
