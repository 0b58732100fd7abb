// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"testing"

	"github.com/ChainSafe/xcmsim/config"
	"github.com/ChainSafe/xcmsim/lib/xcmsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewBinder(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("../../../config/testdata/network.toml")
	require.NoError(t, err)

	networkConfig, err := cfg.Build(NewBinder(cfg, NewExecutor(discardLogger)))
	require.NoError(t, err)
	networkConfig.Logger = discardLogger

	network, err := xcmsim.NewNetwork(networkConfig)
	require.NoError(t, err)

	sendFrom(t, network, paraA, paraB, Xcm{Transact{Remark: []byte("hello")}})

	relay := ledgerOf(t, network, xcmsim.RelayChainID)
	assert.Equal(t, InitialBalance, relay.FreeBalance(ChildAccount(paraA)))
	assert.Equal(t, InitialBalance, relay.FreeBalance(ChildAccount(paraB)))

	para := ledgerOf(t, network, paraB)
	assert.True(t, para.HasEvent(Remarked))
}
