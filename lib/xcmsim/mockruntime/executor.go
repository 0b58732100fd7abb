// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/xcmsim/internal/log"
	"github.com/ChainSafe/xcmsim/lib/xcmsim"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "mockruntime"))

// Executor executes inbound messages as encoded Xcm programs
// against the Ledger state of the chain.
type Executor struct {
	logger log.LeveledLogger
}

// NewExecutor creates an executor. A nil logger defaults
// to the package logger.
func NewExecutor(l log.LeveledLogger) *Executor {
	if l == nil {
		l = logger
	}
	return &Executor{logger: l}
}

// Execute executes each inbound message in order. Failing programs
// are recorded as Fail events, only a chain state which is not a
// Ledger returns an error.
func (e *Executor) Execute(chain *xcmsim.Guard, inbound []xcmsim.Message) error {
	ledger, err := LedgerOf(chain)
	if err != nil {
		return err
	}

	for _, msg := range inbound {
		e.executeMessage(chain, ledger, msg)
	}
	return nil
}

func (e *Executor) executeMessage(chain *xcmsim.Guard, ledger *Ledger, msg xcmsim.Message) {
	event := Event{
		Kind:    Executed,
		Chain:   msg.From,
		Channel: msg.Channel,
		Hash:    msg.Hash(),
	}

	program, err := DecodeXcm(msg.Payload)
	if err != nil {
		e.logger.Debugf("cannot decode %s: %s", msg, err)
		event.Kind = Fail
		event.Error = FailedToDecode
		ledger.Events = append(ledger.Events, event)
		return
	}
	ledger.Received = append(ledger.Received, program)

	origin := SovereignAccount(ledger.ChainID, msg.From)
	x := &execution{
		chain:  chain,
		ledger: ledger,
		logger: e.logger,
		from:   msg.From,
		origin: &origin,
	}
	x.run(program)

	if x.outcome != nil {
		e.logger.Debugf("%s failed at instruction %d: %s", msg, x.outcome.index, x.outcome.code)
		event.Kind = Fail
		event.Index = x.outcome.index
		event.Error = x.outcome.code
	}
	ledger.Events = append(ledger.Events, event)

	if x.holding > 0 {
		ledger.Events = append(ledger.Events, Event{
			Kind:   AssetsTrapped,
			Chain:  msg.From,
			Hash:   event.Hash,
			Amount: x.holding,
		})
	}
}

type instructionError struct {
	index uint32
	code  ErrorCode
}

// execution is the register set of one program execution.
type execution struct {
	chain  *xcmsim.Guard
	ledger *Ledger
	logger log.LeveledLogger
	from   xcmsim.ChainID

	origin       *AccountID
	holding      uint64
	errorHandler Xcm
	// failure is the error register, it can be cleared by ClearError.
	failure *instructionError
	// outcome is the first failure, it is never cleared.
	outcome *instructionError
}

func (x *execution) run(program Xcm) {
	for i, instruction := range program {
		err := x.apply(instruction)
		if err == nil {
			continue
		}

		failure := &instructionError{index: uint32(i), code: errorCodeOf(err)}
		x.failure = failure
		if x.outcome == nil {
			x.outcome = failure
		}

		handler := x.errorHandler
		x.errorHandler = nil
		x.run(handler)
		return
	}
}

func errorCodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return FailedToDecode
}

func (x *execution) apply(instruction Instruction) error {
	switch instruction := instruction.(type) {
	case WithdrawAsset:
		if x.origin == nil {
			return BadOrigin
		}
		err := x.ledger.withdraw(*x.origin, instruction.Amount)
		if err != nil {
			return err
		}
		x.holding += instruction.Amount
	case ReserveAssetDeposited:
		if x.origin == nil {
			return BadOrigin
		}
		x.holding += instruction.Amount
	case QueryResponse:
		x.ledger.Responses = append(x.ledger.Responses, QueryResult{
			QueryID:  instruction.QueryID,
			From:     x.from,
			Response: instruction.Response,
		})
		x.ledger.Events = append(x.ledger.Events, Event{
			Kind:  ResponseReceived,
			Chain: x.from,
		})
	case TransferAsset:
		if x.origin == nil {
			return BadOrigin
		}
		return x.ledger.transfer(*x.origin, instruction.Beneficiary, instruction.Amount)
	case TransferReserveAsset:
		if x.origin == nil {
			return BadOrigin
		}
		return reserveTransfer(x.chain, x.ledger, x.logger, *x.origin, instruction.Dest,
			instruction.Beneficiary, instruction.Amount)
	case Transact:
		if x.origin == nil {
			return BadOrigin
		}
		x.ledger.Events = append(x.ledger.Events, Event{
			Kind:   Remarked,
			Chain:  x.from,
			Remark: instruction.Remark,
		})
	case DepositAsset:
		amount := min(instruction.Max, x.holding)
		x.holding -= amount
		x.ledger.deposit(instruction.Beneficiary, amount)
	case ReportHolding:
		response := Response{
			Kind:   ResponseAssets,
			Amount: min(instruction.Max, x.holding),
		}
		return x.respond(instruction.Dest, instruction.QueryID, response)
	case ReportError:
		response := Response{Kind: ResponseExecutionResult}
		if x.failure != nil {
			response.Failed = true
			response.ErrorIndex = x.failure.index
			response.Error = x.failure.code
		}
		return x.respond(instruction.Dest, instruction.QueryID, response)
	case ClearOrigin:
		x.origin = nil
	case ClearError:
		x.failure = nil
	case SetErrorHandler:
		x.errorHandler = instruction.Handler
	default:
		return fmt.Errorf("%w: %T", errUnknownInstruction, instruction)
	}
	return nil
}

func (x *execution) respond(dest xcmsim.ChainID, queryID uint64, response Response) error {
	_, err := send(x.chain, x.ledger, x.logger, dest, Xcm{QueryResponse{
		QueryID:  queryID,
		Response: response,
	}})
	return err
}
