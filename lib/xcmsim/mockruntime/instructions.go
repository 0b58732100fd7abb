// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"bytes"
	"fmt"
	"math"
	"math/big"

	"github.com/ChainSafe/xcmsim/lib/xcmsim"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// All is the asset limit selecting everything in the holding register.
const All = math.MaxUint64

// Instruction is a cross-chain instruction. Its index prefixes its
// encoding inside an Xcm.
type Instruction interface {
	Index() uint8
}

// WithdrawAsset moves funds from the origin account into the holding register.
type WithdrawAsset struct {
	Amount uint64
}

// ReserveAssetDeposited credits the holding register with funds the origin
// holds in reserve for this chain.
type ReserveAssetDeposited struct {
	Amount uint64
}

// QueryResponse carries the response to an earlier query.
type QueryResponse struct {
	QueryID  uint64
	Response Response
}

// TransferAsset moves funds from the origin account to the beneficiary.
type TransferAsset struct {
	Amount      uint64
	Beneficiary AccountID
}

// TransferReserveAsset moves funds from the origin account to the sovereign
// account of the destination, and notifies the destination with a deposit
// of the same amount for the beneficiary.
type TransferReserveAsset struct {
	Amount      uint64
	Dest        xcmsim.ChainID
	Beneficiary AccountID
}

// Transact dispatches a remark call with the origin.
type Transact struct {
	Remark []byte
}

// DepositAsset moves up to Max funds from the holding register
// to the beneficiary.
type DepositAsset struct {
	Max         uint64
	Beneficiary AccountID
}

// ReportHolding reports up to Max of the holding register to Dest.
type ReportHolding struct {
	QueryID uint64
	Dest    xcmsim.ChainID
	Max     uint64
}

// ReportError reports the current error state to Dest.
type ReportError struct {
	QueryID uint64
	Dest    xcmsim.ChainID
}

// ClearOrigin clears the origin, so following instructions
// requiring one fail with BadOrigin.
type ClearOrigin struct{}

// ClearError clears the error state.
type ClearError struct{}

// SetErrorHandler sets the instructions to run when an instruction fails.
type SetErrorHandler struct {
	Handler Xcm
}

const (
	withdrawAssetIndex uint8 = iota
	reserveAssetDepositedIndex
	queryResponseIndex
	transferAssetIndex
	transferReserveAssetIndex
	transactIndex
	depositAssetIndex
	reportHoldingIndex
	reportErrorIndex
	clearOriginIndex
	clearErrorIndex
	setErrorHandlerIndex
)

func (WithdrawAsset) Index() uint8         { return withdrawAssetIndex }
func (ReserveAssetDeposited) Index() uint8 { return reserveAssetDepositedIndex }
func (QueryResponse) Index() uint8         { return queryResponseIndex }
func (TransferAsset) Index() uint8         { return transferAssetIndex }
func (TransferReserveAsset) Index() uint8  { return transferReserveAssetIndex }
func (Transact) Index() uint8              { return transactIndex }
func (DepositAsset) Index() uint8          { return depositAssetIndex }
func (ReportHolding) Index() uint8         { return reportHoldingIndex }
func (ReportError) Index() uint8           { return reportErrorIndex }
func (ClearOrigin) Index() uint8           { return clearOriginIndex }
func (ClearError) Index() uint8            { return clearErrorIndex }
func (SetErrorHandler) Index() uint8       { return setErrorHandlerIndex }

var instructionDecoders = map[uint8]func(scale.Decoder) (Instruction, error){
	withdrawAssetIndex:         decodeInstruction[WithdrawAsset],
	reserveAssetDepositedIndex: decodeInstruction[ReserveAssetDeposited],
	queryResponseIndex:         decodeInstruction[QueryResponse],
	transferAssetIndex:         decodeInstruction[TransferAsset],
	transferReserveAssetIndex:  decodeInstruction[TransferReserveAsset],
	transactIndex:              decodeInstruction[Transact],
	depositAssetIndex:          decodeInstruction[DepositAsset],
	reportHoldingIndex:         decodeInstruction[ReportHolding],
	reportErrorIndex:           decodeInstruction[ReportError],
	clearOriginIndex:           decodeEmpty[ClearOrigin],
	clearErrorIndex:            decodeEmpty[ClearError],
	setErrorHandlerIndex:       decodeInstruction[SetErrorHandler],
}

func decodeInstruction[T Instruction](decoder scale.Decoder) (Instruction, error) {
	var instruction T
	err := decoder.Decode(&instruction)
	return instruction, err
}

func decodeEmpty[T Instruction](scale.Decoder) (Instruction, error) {
	var instruction T
	return instruction, nil
}

// ResponseKind is the kind of a query response.
type ResponseKind uint8

const (
	// ResponseNull is an empty response.
	ResponseNull ResponseKind = iota
	// ResponseAssets reports an amount of assets.
	ResponseAssets
	// ResponseExecutionResult reports the error state of an execution.
	ResponseExecutionResult
)

// Response is the content of a QueryResponse.
type Response struct {
	Kind   ResponseKind
	Amount uint64
	// Failed is set for an execution result holding an error,
	// in which case ErrorIndex and Error describe it.
	Failed     bool
	ErrorIndex uint32
	Error      ErrorCode
}

// Xcm is an ordered list of instructions.
type Xcm []Instruction

// Encode SCALE encodes the instructions, each prefixed by its index.
func (x Xcm) Encode(encoder scale.Encoder) error {
	err := encoder.EncodeUintCompact(*big.NewInt(int64(len(x))))
	if err != nil {
		return err
	}

	for _, instruction := range x {
		err = encoder.PushByte(instruction.Index())
		if err != nil {
			return err
		}

		switch instruction.(type) {
		case ClearOrigin, ClearError:
			continue
		}

		err = encoder.Encode(instruction)
		if err != nil {
			return fmt.Errorf("encoding %T: %w", instruction, err)
		}
	}
	return nil
}

// Decode SCALE decodes the instructions.
func (x *Xcm) Decode(decoder scale.Decoder) error {
	length, err := decoder.DecodeUintCompact()
	if err != nil {
		return err
	}

	if !length.IsUint64() {
		return fmt.Errorf("%w: %s", errLengthOverflow, length)
	}

	// the length prefix is not trusted for allocation,
	// every instruction takes at least one byte
	count := length.Uint64()
	instructions := Xcm{}
	for i := uint64(0); i < count; i++ {
		index, err := decoder.ReadOneByte()
		if err != nil {
			return fmt.Errorf("reading instruction %d of %d: %w", i, count, err)
		}

		decode, ok := instructionDecoders[index]
		if !ok {
			return fmt.Errorf("%w: index %d", errUnknownInstruction, index)
		}

		instruction, err := decode(decoder)
		if err != nil {
			return fmt.Errorf("decoding instruction %d: %w", index, err)
		}
		instructions = append(instructions, instruction)
	}

	*x = instructions
	return nil
}

// EncodeXcm returns the SCALE encoding of the instructions.
func EncodeXcm(xcm Xcm) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	err := scale.NewEncoder(buffer).Encode(xcm)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DecodeXcm decodes SCALE encoded instructions. Trailing bytes are an error.
func DecodeXcm(encoded []byte) (xcm Xcm, err error) {
	reader := bytes.NewReader(encoded)
	err = scale.NewDecoder(reader).Decode(&xcm)
	if err != nil {
		return nil, err
	}
	if reader.Len() > 0 {
		return nil, fmt.Errorf("%d trailing bytes", reader.Len())
	}
	return xcm, nil
}
