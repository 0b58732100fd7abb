// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"github.com/ChainSafe/xcmsim/config"
	"github.com/ChainSafe/xcmsim/lib/xcmsim"
)

// NewBinder returns a binder running the mock runtime on every chain
// of the configuration. The relay chain funds the sovereign account
// of each configured parachain.
func NewBinder(cfg *config.Config, executor *Executor) config.Binder {
	var paraIDs []xcmsim.ChainID
	for _, entry := range cfg.Chains {
		if !entry.Relay {
			paraIDs = append(paraIDs, xcmsim.ChainID(entry.ID))
		}
	}

	relayGenesis := RelayGenesis(paraIDs...)
	paraGenesis := ParaGenesis()
	return config.BinderFunc(func(entry config.ChainEntry) (xcmsim.Genesis, xcmsim.Executor, error) {
		if entry.Relay {
			return relayGenesis, executor, nil
		}
		return paraGenesis, executor, nil
	})
}
