// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"io"
	"testing"

	"github.com/ChainSafe/xcmsim/internal/log"
	"github.com/ChainSafe/xcmsim/lib/xcmsim"
	"github.com/stretchr/testify/require"
)

const (
	paraA xcmsim.ChainID = 1
	paraB xcmsim.ChainID = 2
)

var discardLogger = log.New(log.SetWriter(io.Discard))

// newMockNet builds a relay chain with two parachains all running
// the mock runtime.
func newMockNet(t *testing.T) *xcmsim.Network {
	t.Helper()

	executor := NewExecutor(discardLogger)
	network, err := xcmsim.NewNetwork(xcmsim.Config{
		Chains: []xcmsim.ChainConfig{
			{
				ID:       xcmsim.RelayChainID,
				Name:     "relay",
				IsRelay:  true,
				Genesis:  RelayGenesis(paraA, paraB),
				Executor: executor,
			},
			{ID: paraA, Name: "para-a", Genesis: ParaGenesis(), Executor: executor},
			{ID: paraB, Name: "para-b", Genesis: ParaGenesis(), Executor: executor},
		},
		Logger: discardLogger,
	})
	require.NoError(t, err)
	return network
}

func ledgerOf(t *testing.T, network *xcmsim.Network, id xcmsim.ChainID) *Ledger {
	t.Helper()

	ledger, err := xcmsim.ExecuteWithResult(network, id,
		func(chain *xcmsim.Guard) (*Ledger, error) {
			return LedgerOf(chain)
		})
	require.NoError(t, err)
	return ledger
}

func sendFrom(t *testing.T, network *xcmsim.Network, from, dest xcmsim.ChainID, program Xcm) {
	t.Helper()

	err := network.ExecuteWith(from, func(chain *xcmsim.Guard) error {
		_, err := Send(chain, dest, program)
		return err
	})
	require.NoError(t, err)
}
