// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"fmt"

	"github.com/ChainSafe/xcmsim/internal/log"
	"github.com/ChainSafe/xcmsim/lib/xcmsim"
)

// Send encodes the program and sends it from the guarded chain to dest.
// Routing failures wrap both Unroutable and xcmsim.ErrInvalidRoute.
func Send(chain *xcmsim.Guard, dest xcmsim.ChainID, program Xcm) (xcmsim.Message, error) {
	ledger, err := LedgerOf(chain)
	if err != nil {
		return xcmsim.Message{}, err
	}
	return send(chain, ledger, logger, dest, program)
}

// ReserveTransfer moves amount from the account to the sovereign account
// of dest on the guarded chain, and sends dest a program depositing the
// same amount to the beneficiary.
func ReserveTransfer(chain *xcmsim.Guard, from AccountID, dest xcmsim.ChainID,
	beneficiary AccountID, amount uint64) error {
	ledger, err := LedgerOf(chain)
	if err != nil {
		return err
	}
	return reserveTransfer(chain, ledger, logger, from, dest, beneficiary, amount)
}

func reserveTransfer(chain *xcmsim.Guard, ledger *Ledger, logger log.LeveledLogger,
	from AccountID, dest xcmsim.ChainID, beneficiary AccountID, amount uint64) error {
	_, err := chain.Topology().ChannelBetween(chain.ChainID(), dest)
	if err != nil {
		return fmt.Errorf("%w: %w", Unroutable, err)
	}

	err = ledger.transfer(from, SovereignAccount(chain.ChainID(), dest), amount)
	if err != nil {
		return err
	}

	_, err = send(chain, ledger, logger, dest, Xcm{
		ReserveAssetDeposited{Amount: amount},
		ClearOrigin{},
		DepositAsset{Max: All, Beneficiary: beneficiary},
	})
	return err
}

func send(chain *xcmsim.Guard, ledger *Ledger, logger log.LeveledLogger,
	dest xcmsim.ChainID, program Xcm) (xcmsim.Message, error) {
	payload, err := EncodeXcm(program)
	if err != nil {
		return xcmsim.Message{}, fmt.Errorf("encoding program: %w", err)
	}

	msg, err := chain.SendTo(dest, payload)
	if err != nil {
		return xcmsim.Message{}, fmt.Errorf("%w: %w", Unroutable, err)
	}

	ledger.Events = append(ledger.Events, Event{
		Kind:    Sent,
		Chain:   dest,
		Channel: msg.Channel,
		Hash:    msg.Hash(),
	})
	logger.Tracef("chain %d sent %s", chain.ChainID(), msg)
	return msg, nil
}
