// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"fmt"

	"github.com/disiqueira/gotree"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TopologyEntry declares one chain of the network.
type TopologyEntry struct {
	ID      ChainID
	IsRelay bool
}

// Topology is the fixed set of chains of a network together with
// the channel rules between them. It is immutable once built.
type Topology struct {
	parachains []ChainID
	members    map[ChainID]struct{}
}

// NewTopology builds a topology from its chain entries.
// Exactly one entry must be the relay chain and use RelayChainID,
// and ids must be unique.
func NewTopology(entries []TopologyEntry) (*Topology, error) {
	members := make(map[ChainID]struct{}, len(entries))
	relayFound := false

	for _, entry := range entries {
		if _, exists := members[entry.ID]; exists {
			return nil, fmt.Errorf("%w: %d", errDuplicateChain, entry.ID)
		}

		switch {
		case entry.IsRelay && relayFound:
			return nil, fmt.Errorf("%w: %d", errMultipleRelayChains, entry.ID)
		case entry.IsRelay && entry.ID != RelayChainID:
			return nil, fmt.Errorf("%w: got %d, want %d", errRelayIDMismatch, entry.ID, RelayChainID)
		case !entry.IsRelay && entry.ID == RelayChainID:
			return nil, fmt.Errorf("%w: %d", errReservedRelayID, entry.ID)
		}

		if entry.IsRelay {
			relayFound = true
		}
		members[entry.ID] = struct{}{}
	}

	if !relayFound {
		return nil, errNoRelayChain
	}

	ids := maps.Keys(members)
	slices.Sort(ids)
	// the relay chain id is the smallest possible id
	parachains := ids[1:]

	return &Topology{
		parachains: parachains,
		members:    members,
	}, nil
}

// ChainIDs returns the relay chain id followed by the
// parachain ids in ascending order.
func (t *Topology) ChainIDs() []ChainID {
	ids := make([]ChainID, 0, len(t.members))
	ids = append(ids, RelayChainID)
	return append(ids, t.parachains...)
}

// Parachains returns the parachain ids in ascending order.
func (t *Topology) Parachains() []ChainID {
	return slices.Clone(t.parachains)
}

// Has returns true if the chain is part of the network.
func (t *Topology) Has(id ChainID) bool {
	_, ok := t.members[id]
	return ok
}

// IsRelay returns true if id is the relay chain of the network.
func (t *Topology) IsRelay(id ChainID) bool {
	return id == RelayChainID
}

func (t *Topology) isParachain(id ChainID) bool {
	return id != RelayChainID && t.Has(id)
}

// IsValidRoute returns true if a message may travel from one chain
// to another on the given channel.
func (t *Topology) IsValidRoute(from, to ChainID, channel Channel) bool {
	switch channel {
	case Downward:
		return from == RelayChainID && t.isParachain(to)
	case Upward:
		return t.isParachain(from) && to == RelayChainID
	case Horizontal:
		return t.isParachain(from) && t.isParachain(to) && from != to
	default:
		return false
	}
}

// ChannelBetween returns the channel a message from one chain
// to another must use.
func (t *Topology) ChannelBetween(from, to ChainID) (Channel, error) {
	for _, channel := range Channels {
		if t.IsValidRoute(from, to, channel) {
			return channel, nil
		}
	}
	return 0, fmt.Errorf("%w: no channel from %d to %d", ErrInvalidRoute, from, to)
}

func (t *Topology) checkRoute(from, to ChainID, channel Channel) error {
	switch {
	case !channel.valid():
		return fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	case !t.Has(from):
		return fmt.Errorf("%w: sender %d", ErrUnknownChain, from)
	case !t.Has(to):
		return fmt.Errorf("%w: recipient %d", ErrUnknownChain, to)
	case !t.IsValidRoute(from, to, channel):
		return fmt.Errorf("%w: %s from %d to %d", ErrInvalidRoute, channel, from, to)
	}
	return nil
}

// String utilizes github.com/disiqueira/gotree to print the relay chain
// with its parachains.
func (t *Topology) String() string {
	tree := gotree.New(fmt.Sprintf("relay %d", RelayChainID))
	for _, id := range t.parachains {
		tree.Add(fmt.Sprintf("parachain %d", id))
	}
	return tree.Print()
}
