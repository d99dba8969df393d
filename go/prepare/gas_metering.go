// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package prepare

import (
	"fmt"
	"math"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/wasm"
)

// meteredBlock is a straight-line sequence of instructions charged for at
// its start.
type meteredBlock struct {
	start int
	ops   uint64
}

// injectGasMetering imports the host's gas function and inserts a call
// charging for each metered block. A block begins at the function entry and
// after every instruction that may transfer control. memory.grow is routed
// through a helper charging GrowMemCost per requested page.
func injectGasMetering(module *wasm.Module, schedule *contracts.Schedule) error {
	growCost, err := toI32(schedule.GrowMemCost)
	if err != nil {
		return err
	}

	gasType := module.AddType(wasm.FuncType{Params: []wasm.ValueType{wasm.I32}})
	gasIndex := module.ImportedFunctionCount()
	module.Imports = append(module.Imports, wasm.Import{
		Module: HostModule,
		Name:   gasFunction,
		Kind:   wasm.ExternalFunction,
		Func:   gasType,
	})
	shiftFunctionIndices(module, gasIndex)

	var growIndex *uint32
	if growCost > 0 && usesMemoryGrow(module) {
		index := module.FunctionCount()
		growIndex = &index
	}

	for i := range module.Code {
		code, err := meterBody(module.Code[i].Code, gasIndex, growIndex, schedule.RegularOpCost)
		if err != nil {
			return fmt.Errorf("function %d: %w", gasIndex+1+uint32(i), err)
		}
		module.Code[i].Code = code
	}

	if growIndex != nil {
		typeIndex := module.AddType(wasm.FuncType{
			Params:  []wasm.ValueType{wasm.I32},
			Results: []wasm.ValueType{wasm.I32},
		})
		module.Functions = append(module.Functions, typeIndex)
		module.Code = append(module.Code, wasm.Body{Code: []wasm.Instruction{
			wasm.Indexed(wasm.LocalGet, 0),
			wasm.ConstI32(growCost),
			wasm.Op(wasm.I32Mul),
			wasm.Indexed(wasm.Call, gasIndex),
			wasm.Indexed(wasm.LocalGet, 0),
			wasm.Op(wasm.MemoryGrow),
			wasm.Op(wasm.End),
		}})
	}
	return nil
}

func toI32(cost contracts.Gas) (int32, error) {
	if cost > math.MaxInt32 {
		return 0, fmt.Errorf("%w: cost %d exceeds 32 bit", ErrInstrumentation, cost)
	}
	return int32(cost), nil
}

// shiftFunctionIndices increments all references to functions with an index
// of at least from.
func shiftFunctionIndices(module *wasm.Module, from uint32) {
	shift := func(index *uint32) {
		if *index >= from {
			*index++
		}
	}
	for i := range module.Code {
		code := module.Code[i].Code
		for j := range code {
			if code[j].Op == wasm.Call {
				index := code[j].Index()
				shift(&index)
				code[j].Imm = uint64(index)
			}
		}
	}
	for i := range module.Exports {
		if module.Exports[i].Kind == wasm.ExternalFunction {
			shift(&module.Exports[i].Index)
		}
	}
	for i := range module.Elements {
		for j := range module.Elements[i].Funcs {
			shift(&module.Elements[i].Funcs[j])
		}
	}
	if module.Start != nil {
		start := *module.Start
		shift(&start)
		module.Start = &start
	}
}

func usesMemoryGrow(module *wasm.Module) bool {
	for _, body := range module.Code {
		for _, ins := range body.Code {
			if ins.Op == wasm.MemoryGrow {
				return true
			}
		}
	}
	return false
}

func splitMeteredBlocks(code []wasm.Instruction) []meteredBlock {
	var blocks []meteredBlock
	current := meteredBlock{}
	for i, ins := range code {
		current.ops++
		switch ins.Op {
		case wasm.Block, wasm.Loop, wasm.If, wasm.Else, wasm.End,
			wasm.Br, wasm.BrIf, wasm.BrTable, wasm.Return, wasm.Unreachable:
			blocks = append(blocks, current)
			current = meteredBlock{start: i + 1}
		}
	}
	return blocks
}

func meterBody(code []wasm.Instruction, gasIndex uint32, growIndex *uint32, opCost contracts.Gas) ([]wasm.Instruction, error) {
	blocks := splitMeteredBlocks(code)
	res := make([]wasm.Instruction, 0, len(code)+2*len(blocks))
	next := 0
	for i, ins := range code {
		if next < len(blocks) && blocks[next].start == i {
			cost, err := toI32(gas.SaturatingMul(opCost, contracts.Gas(blocks[next].ops)))
			if err != nil {
				return nil, err
			}
			if cost > 0 {
				res = append(res, wasm.ConstI32(cost), wasm.Indexed(wasm.Call, gasIndex))
			}
			next++
		}
		if ins.Op == wasm.MemoryGrow && growIndex != nil {
			ins = wasm.Indexed(wasm.Call, *growIndex)
		}
		res = append(res, ins)
	}
	return res, nil
}
