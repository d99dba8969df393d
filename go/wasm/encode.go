// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package wasm

import "encoding/binary"

// Encode serializes the module in the WebAssembly binary format. Custom
// sections are emitted after all known sections.
func Encode(m *Module) []byte {
	res := append([]byte{}, magic...)
	res = binary.LittleEndian.AppendUint32(res, version)

	section := func(id byte, count int, content func(buf []byte, i int) []byte) {
		if count == 0 {
			return
		}
		buf := appendU32(nil, uint32(count))
		for i := 0; i < count; i++ {
			buf = content(buf, i)
		}
		res = append(res, id)
		res = appendU32(res, uint32(len(buf)))
		res = append(res, buf...)
	}

	section(sectionType, len(m.Types), func(buf []byte, i int) []byte {
		return appendFuncType(buf, m.Types[i])
	})
	section(sectionImport, len(m.Imports), func(buf []byte, i int) []byte {
		return appendImport(buf, m.Imports[i])
	})
	section(sectionFunction, len(m.Functions), func(buf []byte, i int) []byte {
		return appendU32(buf, m.Functions[i])
	})
	section(sectionTable, len(m.Tables), func(buf []byte, i int) []byte {
		return appendTableType(buf, m.Tables[i])
	})
	section(sectionMemory, len(m.Memories), func(buf []byte, i int) []byte {
		return appendLimits(buf, m.Memories[i])
	})
	section(sectionGlobal, len(m.Globals), func(buf []byte, i int) []byte {
		buf = appendGlobalType(buf, m.Globals[i].Type)
		return appendConstExpr(buf, m.Globals[i].Init)
	})
	section(sectionExport, len(m.Exports), func(buf []byte, i int) []byte {
		buf = appendName(buf, m.Exports[i].Name)
		buf = append(buf, byte(m.Exports[i].Kind))
		return appendU32(buf, m.Exports[i].Index)
	})
	if m.Start != nil {
		start := appendU32(nil, *m.Start)
		res = append(res, sectionStart)
		res = appendU32(res, uint32(len(start)))
		res = append(res, start...)
	}
	section(sectionElement, len(m.Elements), func(buf []byte, i int) []byte {
		element := m.Elements[i]
		buf = appendU32(buf, element.Table)
		buf = appendConstExpr(buf, element.Offset)
		buf = appendU32(buf, uint32(len(element.Funcs)))
		for _, index := range element.Funcs {
			buf = appendU32(buf, index)
		}
		return buf
	})
	section(sectionCode, len(m.Code), func(buf []byte, i int) []byte {
		body := appendBody(nil, &m.Code[i])
		buf = appendU32(buf, uint32(len(body)))
		return append(buf, body...)
	})
	section(sectionData, len(m.Data), func(buf []byte, i int) []byte {
		data := m.Data[i]
		buf = appendU32(buf, data.Memory)
		buf = appendConstExpr(buf, data.Offset)
		buf = appendU32(buf, uint32(len(data.Init)))
		return append(buf, data.Init...)
	})
	for _, custom := range m.Customs {
		buf := appendName(nil, custom.Name)
		buf = append(buf, custom.Data...)
		res = append(res, sectionCustom)
		res = appendU32(res, uint32(len(buf)))
		res = append(res, buf...)
	}
	return res
}

func appendValueTypes(buf []byte, types []ValueType) []byte {
	buf = appendU32(buf, uint32(len(types)))
	for _, t := range types {
		buf = append(buf, byte(t))
	}
	return buf
}

func appendFuncType(buf []byte, f FuncType) []byte {
	buf = append(buf, 0x60)
	buf = appendValueTypes(buf, f.Params)
	return appendValueTypes(buf, f.Results)
}

func appendLimits(buf []byte, limits Limits) []byte {
	if !limits.HasMax {
		return appendU32(append(buf, 0), limits.Min)
	}
	buf = appendU32(append(buf, 1), limits.Min)
	return appendU32(buf, limits.Max)
}

func appendTableType(buf []byte, table TableType) []byte {
	return appendLimits(append(buf, table.ElemType), table.Limits)
}

func appendGlobalType(buf []byte, global GlobalType) []byte {
	mutable := byte(0)
	if global.Mutable {
		mutable = 1
	}
	return append(buf, byte(global.Type), mutable)
}

func appendImport(buf []byte, imp Import) []byte {
	buf = appendName(buf, imp.Module)
	buf = appendName(buf, imp.Name)
	buf = append(buf, byte(imp.Kind))
	switch imp.Kind {
	case ExternalFunction:
		return appendU32(buf, imp.Func)
	case ExternalTable:
		return appendTableType(buf, imp.Table)
	case ExternalMemory:
		return appendLimits(buf, imp.Memory)
	case ExternalGlobal:
		return appendGlobalType(buf, imp.Global)
	}
	return buf
}

func appendConstExpr(buf []byte, code []Instruction) []byte {
	return AppendInstruction(appendInstructions(buf, code), Op(End))
}

func appendBody(buf []byte, body *Body) []byte {
	buf = appendU32(buf, uint32(len(body.Locals)))
	for _, local := range body.Locals {
		buf = appendU32(buf, local.Count)
		buf = append(buf, byte(local.Type))
	}
	return appendInstructions(buf, body.Code)
}

func appendInstructions(buf []byte, code []Instruction) []byte {
	for _, instruction := range code {
		buf = AppendInstruction(buf, instruction)
	}
	return buf
}

// AppendInstruction appends the binary encoding of the given instruction.
func AppendInstruction(buf []byte, instruction Instruction) []byte {
	buf = append(buf, byte(instruction.Op))
	info, found := instruction.Op.info()
	if !found {
		return buf
	}
	switch info.imm {
	case immBlockType:
		buf = append(buf, byte(instruction.Imm))
	case immIndex:
		buf = appendU32(buf, instruction.Index())
	case immBrTable:
		buf = appendU32(buf, uint32(len(instruction.Labels)))
		for _, label := range instruction.Labels {
			buf = appendU32(buf, label)
		}
		buf = appendU32(buf, instruction.Index())
	case immCallIndirect:
		buf = append(appendU32(buf, instruction.Index()), 0)
	case immMemArg:
		buf = appendU32(buf, instruction.Index())
		buf = appendU32(buf, instruction.Offset)
	case immReserved:
		buf = append(buf, 0)
	case immI32:
		buf = appendS64(buf, int64(instruction.I32()))
	case immI64:
		buf = appendS64(buf, instruction.I64())
	case immF32:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(instruction.Imm))
	case immF64:
		buf = binary.LittleEndian.AppendUint64(buf, instruction.Imm)
	}
	return buf
}
