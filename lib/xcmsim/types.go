// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"bytes"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
)

// ChainID identifies a chain of the network.
type ChainID uint32

// RelayChainID is reserved for the relay chain.
const RelayChainID ChainID = 0

// Channel is the kind of channel a message travels on.
type Channel uint8

const (
	// Downward carries messages from the relay chain to a parachain.
	Downward Channel = iota
	// Upward carries messages from a parachain to the relay chain.
	Upward
	// Horizontal carries messages between two parachains.
	Horizontal
)

const numChannels = 3

// Channels lists the channel kinds in delivery order.
var Channels = [numChannels]Channel{Downward, Upward, Horizontal}

func (c Channel) String() string {
	switch c {
	case Downward:
		return "downward"
	case Upward:
		return "upward"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("channel(%d)", uint8(c))
	}
}

func (c Channel) valid() bool {
	return c < numChannels
}

// Message is a cross-chain message. It is immutable once created.
type Message struct {
	From    ChainID
	To      ChainID
	Channel Channel
	Payload []byte
	// SequenceNo increases by one for every message sent by From
	// on Channel since the last network reset.
	SequenceNo uint64
}

// Encode returns the SCALE encoding of the message.
func (m Message) Encode() ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	err := scale.NewEncoder(buffer).Encode(m)
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}
	return buffer.Bytes(), nil
}

// Hash returns the blake2b-256 hash of the SCALE encoded message.
func (m Message) Hash() (hash MessageHash) {
	encoded, err := m.Encode()
	if err != nil {
		// all message fields are fixed width integers or bytes
		panic(err)
	}
	return blake2b.Sum256(encoded)
}

// clone returns a copy of the message not sharing its payload.
func (m Message) clone() Message {
	m.Payload = slices.Clone(m.Payload)
	return m
}

func (m Message) String() string {
	return fmt.Sprintf("%s message #%d from %d to %d (%d bytes)",
		m.Channel, m.SequenceNo, m.From, m.To, len(m.Payload))
}

// MessageHash is the blake2b-256 hash of an encoded message.
type MessageHash [32]byte

func (h MessageHash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// ChainStats holds the number of messages a chain absorbed per channel,
// and the number of messages it sent.
type ChainStats struct {
	Downward   uint64
	Upward     uint64
	Horizontal uint64
	Sent       uint64
}
