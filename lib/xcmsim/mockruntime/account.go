// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"encoding/binary"
	"fmt"

	"github.com/ChainSafe/xcmsim/lib/xcmsim"
)

// AccountID is a 32 bytes account identifier.
type AccountID [32]byte

// Alice is the account funded on every chain at genesis.
var Alice = AccountID{}

// ParentAccount is the sovereign account of the relay chain on a parachain.
func ParentAccount() (account AccountID) {
	copy(account[:], "Parent")
	return account
}

// ChildAccount is the sovereign account of a parachain on the relay chain.
func ChildAccount(para xcmsim.ChainID) AccountID {
	return prefixedAccount("para", para)
}

// SiblingAccount is the sovereign account of a parachain on another parachain.
func SiblingAccount(para xcmsim.ChainID) AccountID {
	return prefixedAccount("sibl", para)
}

func prefixedAccount(prefix string, para xcmsim.ChainID) (account AccountID) {
	copy(account[:], prefix)
	binary.LittleEndian.PutUint32(account[len(prefix):], uint32(para))
	return account
}

// SovereignAccount returns the account representing chain other on chain here.
func SovereignAccount(here, other xcmsim.ChainID) AccountID {
	switch {
	case other == xcmsim.RelayChainID:
		return ParentAccount()
	case here == xcmsim.RelayChainID:
		return ChildAccount(other)
	default:
		return SiblingAccount(other)
	}
}

func (a AccountID) String() string {
	return fmt.Sprintf("0x%x", a[:8])
}
