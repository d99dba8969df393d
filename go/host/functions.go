// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package host

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/wasm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
)

// Result codes of ext_call, ext_instantiate and ext_get_storage.
const (
	resultSuccess uint32 = 0
	resultFailure uint32 = 1
)

type hostFunction struct {
	signature wasm.FuncType
	handler   func(r *Runtime, args []Value) ([]Value, error)
}

func (f *hostFunction) accepts(args []Value) bool {
	if len(args) != len(f.signature.Params) {
		return false
	}
	for i, arg := range args {
		if arg.Type != f.signature.Params[i] {
			return false
		}
	}
	return true
}

// Environment resolves imports against the host function table. Modules
// may only import functions listed in it with exactly the listed
// signature.
type Environment struct{}

func (Environment) CanSatisfy(name string, signature wasm.FuncType) bool {
	f, found := hostFunctions[name]
	return found && f.signature.Equal(signature)
}

func sig(params []wasm.ValueType, results ...wasm.ValueType) wasm.FuncType {
	return wasm.FuncType{Params: params, Results: results}
}

func params(types ...wasm.ValueType) []wasm.ValueType {
	return types
}

var (
	i32 = wasm.I32
	i64 = wasm.I64
)

var hostFunctions = map[string]*hostFunction{
	"gas":                    {sig(params(i32)), extGas},
	"ext_set_storage":        {sig(params(i32, i32, i32)), extSetStorage},
	"ext_clear_storage":      {sig(params(i32)), extClearStorage},
	"ext_get_storage":        {sig(params(i32), i32), extGetStorage},
	"ext_call":               {sig(params(i32, i32, i64, i32, i32, i32, i32), i32), extCall},
	"ext_instantiate":        {sig(params(i32, i32, i64, i32, i32, i32, i32), i32), extInstantiate},
	"ext_return":             {sig(params(i32, i32)), extReturn},
	"ext_caller":             {sig(nil), extCaller},
	"ext_address":            {sig(nil), extAddress},
	"ext_gas_price":          {sig(nil), extGasPrice},
	"ext_gas_left":           {sig(nil), extGasLeft},
	"ext_balance":            {sig(nil), extBalance},
	"ext_value_transferred":  {sig(nil), extValueTransferred},
	"ext_random":             {sig(params(i32, i32)), extRandom},
	"ext_now":                {sig(nil), extNow},
	"ext_block_number":       {sig(nil), extBlockNumber},
	"ext_minimum_balance":    {sig(nil), extMinimumBalance},
	"ext_tombstone_deposit":  {sig(nil), extTombstoneDeposit},
	"ext_rent_allowance":     {sig(nil), extRentAllowance},
	"ext_set_rent_allowance": {sig(params(i32, i32)), extSetRentAllowance},
	"ext_dispatch_call":      {sig(params(i32, i32)), extDispatchCall},
	"ext_deposit_event":      {sig(params(i32, i32, i32, i32)), extDepositEvent},
	"ext_scratch_size":       {sig(nil, i32), extScratchSize},
	"ext_scratch_read":       {sig(params(i32, i32, i32)), extScratchRead},
	"ext_scratch_write":      {sig(params(i32, i32)), extScratchWrite},
	"ext_println":            {sig(params(i32, i32)), extPrintln},
	"ext_hash_keccak_256":    {sig(params(i32, i32, i32)), hashFunction(crypto.Keccak256)},
	"ext_hash_sha2_256":      {sig(params(i32, i32, i32)), hashFunction(sha2)},
	"ext_hash_blake2_256":    {sig(params(i32, i32, i32)), hashFunction(blake2256)},
	"ext_hash_blake2_128":    {sig(params(i32, i32, i32)), hashFunction(blake2128)},
}

func extGas(r *Runtime, args []Value) ([]Value, error) {
	return nil, r.charge(explicitToken(args[0].U32()))
}

func extSetStorage(r *Runtime, args []Value) ([]Value, error) {
	keyPtr, valuePtr, valueLen := args[0].U32(), args[1].U32(), args[2].U32()
	if valueLen > r.ext.MaxValueSize() {
		return nil, contracts.ErrValueTooLarge
	}
	var key contracts.StorageKey
	if err := r.readMemoryInto(keyPtr, key[:]); err != nil {
		return nil, err
	}
	value, err := r.readMemory(valuePtr, valueLen)
	if err != nil {
		return nil, err
	}
	return nil, r.ext.SetStorage(key, value)
}

func extClearStorage(r *Runtime, args []Value) ([]Value, error) {
	var key contracts.StorageKey
	if err := r.readMemoryInto(args[0].U32(), key[:]); err != nil {
		return nil, err
	}
	return nil, r.ext.SetStorage(key, nil)
}

// extGetStorage places the value stored under the given key into the
// scratch buffer. The result signals whether there is such a value.
func extGetStorage(r *Runtime, args []Value) ([]Value, error) {
	var key contracts.StorageKey
	if err := r.readMemoryInto(args[0].U32(), key[:]); err != nil {
		return nil, err
	}
	value, found := r.ext.GetStorage(key)
	if !found {
		r.setScratch(nil)
		return []Value{I32(resultFailure)}, nil
	}
	r.setScratch(value)
	return []Value{I32(resultSuccess)}, nil
}

// nestedGas is the gas forwarded to a nested call. Zero forwards all of it.
func (r *Runtime) nestedGas(requested uint64) contracts.Gas {
	if requested == 0 {
		return r.meter.GasLeft()
	}
	return contracts.Gas(requested)
}

func extCall(r *Runtime, args []Value) ([]Value, error) {
	callee, err := r.readAccountId(args[0].U32(), args[1].U32())
	if err != nil {
		return nil, err
	}
	value, err := r.readBalance(args[3].U32(), args[4].U32())
	if err != nil {
		return nil, err
	}
	input, err := r.readMemory(args[5].U32(), args[6].U32())
	if err != nil {
		return nil, err
	}

	var output []byte
	err = contracts.ErrOutOfGas
	r.meter.WithNested(r.nestedGas(args[2].U64()), func(nested *gas.Meter) {
		if nested != nil {
			output, err = r.ext.Call(callee, value, nested, input)
		}
	})
	if err != nil {
		log.Trace("Nested call failed", "callee", callee, "err", err)
		r.setScratch(nil)
		return []Value{I32(resultFailure)}, nil
	}
	r.setScratch(output)
	return []Value{I32(resultSuccess)}, nil
}

func extInstantiate(r *Runtime, args []Value) ([]Value, error) {
	codeHash, err := r.readHash(args[0].U32(), args[1].U32())
	if err != nil {
		return nil, err
	}
	endowment, err := r.readBalance(args[3].U32(), args[4].U32())
	if err != nil {
		return nil, err
	}
	input, err := r.readMemory(args[5].U32(), args[6].U32())
	if err != nil {
		return nil, err
	}

	var address contracts.AccountId
	err = contracts.ErrOutOfGas
	r.meter.WithNested(r.nestedGas(args[2].U64()), func(nested *gas.Meter) {
		if nested != nil {
			address, _, err = r.ext.Instantiate(codeHash, endowment, nested, input)
		}
	})
	if err != nil {
		log.Trace("Nested instantiation failed", "code", codeHash, "err", err)
		r.setScratch(nil)
		return []Value{I32(resultFailure)}, nil
	}
	r.setScratch(address[:])
	return []Value{I32(resultSuccess)}, nil
}

// extReturn ends the execution successfully with the given output.
func extReturn(r *Runtime, args []Value) ([]Value, error) {
	dataPtr, dataLen := args[0].U32(), args[1].U32()
	if err := r.charge(returnDataToken(dataLen)); err != nil {
		return nil, err
	}
	data, err := r.readMemory(dataPtr, dataLen)
	if err != nil {
		return nil, err
	}
	r.special = returnTrap
	r.returnData = data
	return nil, errReturn
}

func extCaller(r *Runtime, _ []Value) ([]Value, error) {
	caller := r.ext.Caller()
	r.setScratch(caller[:])
	return nil, nil
}

func extAddress(r *Runtime, _ []Value) ([]Value, error) {
	address := r.ext.Address()
	r.setScratch(address[:])
	return nil, nil
}

func extGasPrice(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratch(r.meter.GasPrice().EncodeLE())
	return nil, nil
}

func extGasLeft(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratchU64(uint64(r.meter.GasLeft()))
	return nil, nil
}

func extBalance(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratch(r.ext.Balance().EncodeLE())
	return nil, nil
}

func extValueTransferred(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratch(r.ext.ValueTransferred().EncodeLE())
	return nil, nil
}

func extRandom(r *Runtime, args []Value) ([]Value, error) {
	subjectPtr, subjectLen := args[0].U32(), args[1].U32()
	if subjectLen > r.schedule.MaxSubjectLen {
		return nil, errSubjectTooLong
	}
	subject, err := r.readMemory(subjectPtr, subjectLen)
	if err != nil {
		return nil, err
	}
	random := r.ext.Random(subject)
	r.setScratch(random[:])
	return nil, nil
}

func extNow(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratchU64(uint64(r.ext.Now()))
	return nil, nil
}

func extBlockNumber(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratchU64(uint64(r.ext.BlockNumber()))
	return nil, nil
}

func extMinimumBalance(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratch(r.ext.MinimumBalance().EncodeLE())
	return nil, nil
}

func extTombstoneDeposit(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratch(r.ext.TombstoneDeposit().EncodeLE())
	return nil, nil
}

func extRentAllowance(r *Runtime, _ []Value) ([]Value, error) {
	r.setScratch(r.ext.RentAllowance().EncodeLE())
	return nil, nil
}

func extSetRentAllowance(r *Runtime, args []Value) ([]Value, error) {
	allowance, err := r.readBalance(args[0].U32(), args[1].U32())
	if err != nil {
		return nil, err
	}
	r.ext.SetRentAllowance(allowance)
	return nil, nil
}

func extDispatchCall(r *Runtime, args []Value) ([]Value, error) {
	call, err := r.readMemory(args[0].U32(), args[1].U32())
	if err != nil {
		return nil, err
	}
	weight, err := r.ext.DispatchWeight(call)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errDispatchRejected, err)
	}
	if err := r.charge(dispatchToken(weight)); err != nil {
		return nil, err
	}
	r.ext.NoteDispatchCall(call)
	return nil, nil
}

func extDepositEvent(r *Runtime, args []Value) ([]Value, error) {
	topicsPtr, topicsLen := args[0].U32(), args[1].U32()
	dataPtr, dataLen := args[2].U32(), args[3].U32()

	hashSize := uint32(len(contracts.Hash{}))
	if topicsLen%hashSize != 0 {
		return nil, fmt.Errorf("%w: topics of %d bytes", errInvalidEncoding, topicsLen)
	}
	count := topicsLen / hashSize
	if count > r.schedule.MaxEventTopics {
		return nil, errTooManyTopics
	}

	raw, err := r.readMemory(topicsPtr, topicsLen)
	if err != nil {
		return nil, err
	}
	topics := make([]contracts.Hash, count)
	for i := range topics {
		copy(topics[i][:], raw[uint32(i)*hashSize:])
	}
	if hasDuplicates(topics) {
		return nil, errDuplicateTopics
	}

	data, err := r.readMemory(dataPtr, dataLen)
	if err != nil {
		return nil, err
	}
	if err := r.charge(depositEventToken{topics: count, dataLen: dataLen}); err != nil {
		return nil, err
	}
	r.ext.DepositEvent(topics, data)
	return nil, nil
}

func hasDuplicates(topics []contracts.Hash) bool {
	sorted := slices.Clone(topics)
	slices.SortFunc(sorted, func(a, b contracts.Hash) int {
		return bytes.Compare(a[:], b[:])
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}

func extScratchSize(r *Runtime, _ []Value) ([]Value, error) {
	return []Value{I32(uint32(len(r.scratch)))}, nil
}

// extScratchRead copies a range of the scratch buffer into the sandbox.
func extScratchRead(r *Runtime, args []Value) ([]Value, error) {
	destPtr, offset, length := args[0].U32(), uint64(args[1].U32()), uint64(args[2].U32())
	if offset+length > uint64(len(r.scratch)) {
		return nil, errScratchOutOfBounds
	}
	return nil, r.writeMemory(destPtr, r.scratch[offset:offset+length])
}

func extScratchWrite(r *Runtime, args []Value) ([]Value, error) {
	data, err := r.readMemory(args[0].U32(), args[1].U32())
	if err != nil {
		return nil, err
	}
	r.setScratch(data)
	return nil, nil
}

// extPrintln is only importable when the schedule enables it.
func extPrintln(r *Runtime, args []Value) ([]Value, error) {
	data, err := r.readMemory(args[0].U32(), args[1].U32())
	if err != nil {
		return nil, err
	}
	log.Info("Contract output", "address", r.ext.Address(), "message", string(data))
	return nil, nil
}

func hashFunction(hash func(...[]byte) []byte) func(*Runtime, []Value) ([]Value, error) {
	return func(r *Runtime, args []Value) ([]Value, error) {
		input, err := r.readMemory(args[0].U32(), args[1].U32())
		if err != nil {
			return nil, err
		}
		return nil, r.writeMemory(args[2].U32(), hash(input))
	}
}

func sha2(data ...[]byte) []byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

func blake2256(data ...[]byte) []byte {
	h, _ := blake2b.New256(nil)
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

func blake2128(data ...[]byte) []byte {
	h, _ := blake2b.New(16, nil)
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
