// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"fmt"

	"github.com/ChainSafe/xcmsim/lib/xcmsim"
)

// InitialBalance is the balance of every account funded at genesis.
const InitialBalance uint64 = 1_000_000_000

// EventKind is the kind of a ledger event.
type EventKind uint8

const (
	// Executed is emitted for every inbound message executed without error.
	Executed EventKind = iota
	// Fail is emitted for inbound messages which failed, the error code
	// and the instruction index are set on the event.
	Fail
	// Remarked is emitted by Transact.
	Remarked
	// AssetsTrapped is emitted when funds are left in the holding register
	// at the end of an execution.
	AssetsTrapped
	// ResponseReceived is emitted by QueryResponse.
	ResponseReceived
	// Sent is emitted for every message sent by the chain.
	Sent
)

func (k EventKind) String() string {
	switch k {
	case Executed:
		return "executed"
	case Fail:
		return "fail"
	case Remarked:
		return "remarked"
	case AssetsTrapped:
		return "assets trapped"
	case ResponseReceived:
		return "response received"
	case Sent:
		return "sent"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is an entry of the ledger event log.
type Event struct {
	Kind    EventKind
	Chain   xcmsim.ChainID
	Channel xcmsim.Channel
	Hash    xcmsim.MessageHash
	Amount  uint64
	Remark  []byte
	Index   uint32
	Error   ErrorCode
}

// QueryResult is a response received for a query.
type QueryResult struct {
	QueryID  uint64
	From     xcmsim.ChainID
	Response Response
}

// Ledger is the state of a chain running the mock runtime.
type Ledger struct {
	ChainID  xcmsim.ChainID
	Balances map[AccountID]uint64
	Events   []Event
	// Received holds every decoded inbound message, in delivery order.
	Received  []Xcm
	Responses []QueryResult
}

func newLedger(id xcmsim.ChainID, funded ...AccountID) *Ledger {
	ledger := &Ledger{
		ChainID:  id,
		Balances: make(map[AccountID]uint64, len(funded)),
	}
	for _, account := range funded {
		ledger.Balances[account] = InitialBalance
	}
	return ledger
}

// FreeBalance returns the balance of the account.
func (l *Ledger) FreeBalance(account AccountID) uint64 {
	return l.Balances[account]
}

// HasEvent returns true if an event of the given kind was emitted.
func (l *Ledger) HasEvent(kind EventKind) bool {
	for _, event := range l.Events {
		if event.Kind == kind {
			return true
		}
	}
	return false
}

// EventsOf returns the events of the given kind.
func (l *Ledger) EventsOf(kind EventKind) (events []Event) {
	for _, event := range l.Events {
		if event.Kind == kind {
			events = append(events, event)
		}
	}
	return events
}

func (l *Ledger) withdraw(account AccountID, amount uint64) error {
	balance := l.Balances[account]
	if balance < amount {
		return FailedToTransactAsset
	}
	l.Balances[account] = balance - amount
	return nil
}

func (l *Ledger) deposit(account AccountID, amount uint64) {
	l.Balances[account] += amount
}

func (l *Ledger) transfer(from, to AccountID, amount uint64) error {
	err := l.withdraw(from, amount)
	if err != nil {
		return err
	}
	l.deposit(to, amount)
	return nil
}

// RelayGenesis builds relay chain ledgers funding Alice and the
// sovereign account of each given parachain.
func RelayGenesis(paraIDs ...xcmsim.ChainID) xcmsim.Genesis {
	return xcmsim.GenesisFunc(func(id xcmsim.ChainID) (any, error) {
		funded := []AccountID{Alice}
		for _, para := range paraIDs {
			funded = append(funded, ChildAccount(para))
		}
		return newLedger(id, funded...), nil
	})
}

// ParaGenesis builds parachain ledgers funding Alice and the
// sovereign account of the relay chain.
func ParaGenesis() xcmsim.Genesis {
	return xcmsim.GenesisFunc(func(id xcmsim.ChainID) (any, error) {
		return newLedger(id, Alice, ParentAccount()), nil
	})
}

// LedgerOf returns the ledger of the chain guarded.
func LedgerOf(chain *xcmsim.Guard) (*Ledger, error) {
	ledger, ok := chain.State().(*Ledger)
	if !ok {
		return nil, fmt.Errorf("%w: %T on chain %d", errUnexpectedState, chain.State(), chain.ChainID())
	}
	return ledger, nil
}
