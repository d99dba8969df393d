// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package contracts

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	ErrOutOfGas                  = ConstError("out of gas")
	ErrMaxDepthReached           = ConstError("reached maximum depth")
	ErrContractEvicted           = ConstError("contract has been evicted")
	ErrContractExists            = ConstError("alive contract or tombstone already exists")
	ErrBalanceTooLow             = ConstError("balance too low to send value")
	ErrValueTooLowToCreate       = ConstError("value too low to create account")
	ErrDestinationBalanceTooHigh = ConstError("destination balance too high to receive value")
	ErrInsufficientRemaining     = ConstError("insufficient remaining balance")
	ErrValueTooLarge             = ConstError("value size exceeds maximum")
	ErrCodeNotFound              = ConstError("code is not found")
	ErrPristineCodeNotFound      = ConstError("pristine code is not found")
	ErrContractTrapped           = ConstError("contract trapped during execution")
	ErrBlockGasLimitReached      = ConstError("block gas limit is reached")
	ErrGasCostOverflow           = ConstError("gas cost overflows balance")
	ErrInvalidScheduleVersion    = ConstError("new schedule must have a greater version than current")
	ErrInvalidSurchargeClaim     = ConstError("invalid surcharge claim")
	ErrWithdrawFailed            = ConstError("currency rejected withdrawal")
	ErrInvalidConfig             = ConstError("invalid configuration")
)
