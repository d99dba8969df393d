// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sandboxtest

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/host"
)

// Instance is a running contract as seen by its program.
type Instance struct {
	Memory  *LinearMemory
	Imports *host.Imports
}

// Call invokes a host function.
func (i *Instance) Call(name string, args ...host.Value) ([]host.Value, error) {
	f, found := i.Imports.Functions[name]
	if !found {
		return nil, fmt.Errorf("unknown host function %s", name)
	}
	return f(args)
}

// CallI32 invokes a host function taking only i32 arguments.
func (i *Instance) CallI32(name string, args ...uint32) ([]host.Value, error) {
	values := make([]host.Value, len(args))
	for j, arg := range args {
		values[j] = host.I32(arg)
	}
	return i.Call(name, values...)
}

// Scratch copies the scratch buffer to ptr and returns its content.
func (i *Instance) Scratch(ptr uint32) ([]byte, error) {
	results, err := i.Call("ext_scratch_size")
	if err != nil {
		return nil, err
	}
	size := results[0].U32()
	if _, err := i.CallI32("ext_scratch_read", ptr, 0, size); err != nil {
		return nil, err
	}
	res := make([]byte, size)
	return res, i.Memory.Get(ptr, res)
}

// Return places data at ptr and ends the execution with it as output. The
// returned error must be passed on by the program.
func (i *Instance) Return(ptr uint32, data []byte) error {
	if err := i.Memory.Set(ptr, data); err != nil {
		return err
	}
	_, err := i.CallI32("ext_return", ptr, uint32(len(data)))
	return err
}
