// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

import (
	"fmt"
	"io"
	"testing"

	"github.com/ChainSafe/xcmsim/internal/log"
	"github.com/stretchr/testify/require"
)

var discardLogger = log.New(log.SetWriter(io.Discard))

// counter is the chain state used by tests.
type counter struct {
	value int
}

func counterGenesis(start int) GenesisFunc {
	return func(ChainID) (any, error) {
		return &counter{value: start}, nil
	}
}

// newTestNetwork builds a relay chain with the given parachains,
// each chain having a counter state and the executor found in executors.
func newTestNetwork(t *testing.T, maxRounds uint, executors map[ChainID]Executor,
	paraIDs ...ChainID) *Network {
	t.Helper()

	chains := []ChainConfig{{
		ID:       RelayChainID,
		Name:     "relay",
		IsRelay:  true,
		Genesis:  counterGenesis(0),
		Executor: executors[RelayChainID],
	}}
	for _, id := range paraIDs {
		chains = append(chains, ChainConfig{
			ID:       id,
			Name:     fmt.Sprintf("para-%d", id),
			Genesis:  counterGenesis(0),
			Executor: executors[id],
		})
	}

	network, err := NewNetwork(Config{
		Chains:    chains,
		MaxRounds: maxRounds,
		Logger:    discardLogger,
	})
	require.NoError(t, err)
	return network
}

// replyExecutor answers every `{amount:N}` payload with
// a `{delivered:N}` payload sent back to the sender.
var replyExecutor = ExecutorFunc(func(chain *Guard, inbound []Message) error {
	for _, msg := range inbound {
		var amount int
		_, err := fmt.Sscanf(string(msg.Payload), "{amount:%d}", &amount)
		if err != nil {
			continue
		}
		_, err = chain.SendTo(msg.From, []byte(fmt.Sprintf("{delivered:%d}", amount)))
		if err != nil {
			return err
		}
	}
	return nil
})

// echoExecutor sends every payload back to its sender, forever.
var echoExecutor = ExecutorFunc(func(chain *Guard, inbound []Message) error {
	for _, msg := range inbound {
		_, err := chain.SendTo(msg.From, msg.Payload)
		if err != nil {
			return err
		}
	}
	return nil
})

// countdownExecutor sends back payload[0]-1 until it reaches zero.
var countdownExecutor = ExecutorFunc(func(chain *Guard, inbound []Message) error {
	for _, msg := range inbound {
		if msg.Payload[0] == 0 {
			continue
		}
		_, err := chain.SendTo(msg.From, []byte{msg.Payload[0] - 1})
		if err != nil {
			return err
		}
	}
	return nil
})

// incrementExecutor increments the chain counter for every message.
var incrementExecutor = ExecutorFunc(func(chain *Guard, inbound []Message) error {
	chain.State().(*counter).value += len(inbound)
	return nil
})

func payloads(messages []Message) (out []string) {
	for _, msg := range messages {
		out = append(out, string(msg.Payload))
	}
	return out
}
