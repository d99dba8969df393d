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

	"github.com/Fantom-foundation/Quartz/go/wasm"
)

// injectStackHeightLimiter bounds the depth of the execution stack. Each
// module-defined function is assigned a cost covering its parameters,
// locals and maximum operand stack height. A mutable global tracks the sum
// of the costs of all active functions and every call traps when the sum
// would exceed the limit. Functions reachable from outside the code, via
// exports, tables or the start section, are wrapped by instrumented thunks.
func injectStackHeightLimiter(module *wasm.Module, limit uint32) error {
	if limit == 0 || limit > math.MaxInt32 {
		return fmt.Errorf("%w: invalid stack height limit %d", ErrInstrumentation, limit)
	}

	imported := module.ImportedFunctionCount()
	costs := make([]uint32, len(module.Code))
	for i := range module.Code {
		cost, err := stackCost(module, imported+uint32(i))
		if err != nil {
			return fmt.Errorf("function %d: %w", imported+uint32(i), err)
		}
		costs[i] = cost
	}
	costOf := func(index uint32) uint32 {
		if index < imported || index-imported >= uint32(len(costs)) {
			return 0
		}
		return costs[index-imported]
	}

	global := module.GlobalCount()
	module.Globals = append(module.Globals, wasm.Global{
		Type: wasm.GlobalType{Type: wasm.I32, Mutable: true},
		Init: []wasm.Instruction{wasm.ConstI32(0)},
	})

	for i := range module.Code {
		body := &module.Code[i]
		res := make([]wasm.Instruction, 0, len(body.Code))
		for _, ins := range body.Code {
			if ins.Op == wasm.Call {
				if cost := costOf(ins.Index()); cost > 0 {
					res = append(res, instrumentedCall(ins.Index(), cost, global, limit)...)
					continue
				}
			}
			res = append(res, ins)
		}
		body.Code = res
	}

	generateThunks(module, global, limit, costOf)
	return nil
}

func instrumentedCall(callee, cost, global, limit uint32) []wasm.Instruction {
	return []wasm.Instruction{
		wasm.Indexed(wasm.GlobalGet, global),
		wasm.ConstI32(int32(cost)),
		wasm.Op(wasm.I32Add),
		wasm.Indexed(wasm.GlobalSet, global),
		wasm.Indexed(wasm.GlobalGet, global),
		wasm.ConstI32(int32(limit)),
		wasm.Op(wasm.I32GtU),
		wasm.BlockOf(wasm.If, wasm.BlockEmpty),
		wasm.Op(wasm.Unreachable),
		wasm.Op(wasm.End),
		wasm.Indexed(wasm.Call, callee),
		wasm.Indexed(wasm.GlobalGet, global),
		wasm.ConstI32(int32(cost)),
		wasm.Op(wasm.I32Sub),
		wasm.Indexed(wasm.GlobalSet, global),
	}
}

// generateThunks redirects exports, table elements and the start function
// to thunks performing an instrumented call of the original function.
func generateThunks(module *wasm.Module, global, limit uint32, costOf func(uint32) uint32) {
	imported := module.ImportedFunctionCount()
	thunks := map[uint32]uint32{}
	thunkFor := func(index uint32) uint32 {
		cost := costOf(index)
		if cost == 0 {
			return index
		}
		if thunk, found := thunks[index]; found {
			return thunk
		}
		typeIndex := module.Functions[index-imported]
		code := []wasm.Instruction{}
		for i := range module.Types[typeIndex].Params {
			code = append(code, wasm.Indexed(wasm.LocalGet, uint32(i)))
		}
		code = append(code, instrumentedCall(index, cost, global, limit)...)
		code = append(code, wasm.Op(wasm.End))

		thunk := module.FunctionCount()
		module.Functions = append(module.Functions, typeIndex)
		module.Code = append(module.Code, wasm.Body{Code: code})
		thunks[index] = thunk
		return thunk
	}

	for i := range module.Exports {
		if export := &module.Exports[i]; export.Kind == wasm.ExternalFunction {
			export.Index = thunkFor(export.Index)
		}
	}
	for i := range module.Elements {
		funcs := module.Elements[i].Funcs
		for j := range funcs {
			funcs[j] = thunkFor(funcs[j])
		}
	}
	if module.Start != nil {
		start := thunkFor(*module.Start)
		module.Start = &start
	}
}

func stackCost(module *wasm.Module, index uint32) (uint32, error) {
	signature, _ := module.FunctionType(index)
	body := &module.Code[index-module.ImportedFunctionCount()]
	height, err := maxStackHeight(module, signature, body.Code)
	if err != nil {
		return 0, err
	}
	cost := uint64(len(signature.Params)) + body.LocalCount() + uint64(height)
	if cost > math.MaxInt32 {
		return 0, fmt.Errorf("%w: stack cost %d exceeds 32 bit", ErrInstrumentation, cost)
	}
	return uint32(cost), nil
}

type controlFrame struct {
	startHeight int
	endArity    int
	unreachable bool
}

func blockArity(t wasm.BlockType) int {
	if t == wasm.BlockEmpty {
		return 0
	}
	return 1
}

// maxStackHeight computes the maximum height of the operand stack reached
// while executing the given code. Code following an unconditional branch is
// polymorphic and may pop values down to the height at its block's start.
func maxStackHeight(module *wasm.Module, signature wasm.FuncType, code []wasm.Instruction) (int, error) {
	frames := []controlFrame{{endArity: len(signature.Results)}}
	height, highest := 0, 0

	push := func(n int) {
		height += n
		if height > highest {
			highest = height
		}
	}
	pop := func(pc, n int) error {
		top := &frames[len(frames)-1]
		if height-n < top.startHeight {
			if !top.unreachable {
				return fmt.Errorf("%w: operand stack underflow at %d", ErrInstrumentation, pc)
			}
			height = top.startHeight
			return nil
		}
		height -= n
		return nil
	}
	markUnreachable := func() {
		top := &frames[len(frames)-1]
		height = top.startHeight
		top.unreachable = true
	}

	for pc, ins := range code {
		if len(frames) == 0 {
			return 0, fmt.Errorf("%w: instruction after end of function at %d", ErrInstrumentation, pc)
		}
		var err error
		switch ins.Op {
		case wasm.Block, wasm.Loop:
			frames = append(frames, controlFrame{startHeight: height, endArity: blockArity(ins.BlockType())})
		case wasm.If:
			err = pop(pc, 1)
			frames = append(frames, controlFrame{startHeight: height, endArity: blockArity(ins.BlockType())})
		case wasm.Else:
			top := &frames[len(frames)-1]
			height = top.startHeight
			top.unreachable = false
		case wasm.End:
			top := frames[len(frames)-1]
			frames = frames[:len(frames)-1]
			height = top.startHeight
			push(top.endArity)
		case wasm.Unreachable, wasm.Br, wasm.Return:
			markUnreachable()
		case wasm.BrTable:
			err = pop(pc, 1)
			markUnreachable()
		case wasm.Call:
			callee, _ := module.FunctionType(ins.Index())
			err = pop(pc, len(callee.Params))
			push(len(callee.Results))
		case wasm.CallIndirect:
			callee := module.Types[ins.Index()]
			err = pop(pc, 1+len(callee.Params))
			push(len(callee.Results))
		default:
			pops, pushes := ins.Op.StackEffect()
			err = pop(pc, pops)
			push(pushes)
		}
		if err != nil {
			return 0, err
		}
	}
	return highest, nil
}
