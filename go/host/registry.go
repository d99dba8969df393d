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
	"fmt"
	"strings"
	"sync"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ErrUnknownSandbox   = contracts.ConstError("unknown sandbox")
	ErrSandboxConflict  = contracts.ConstError("sandbox name already taken")
	ErrInvalidSandboxId = contracts.ConstError("invalid sandbox registration")
)

// SandboxFactory creates a Sandbox from an implementation specific
// configuration, which may be nil.
type SandboxFactory func(config any) (Sandbox, error)

// sandboxes holds the factories of all sandbox implementations linked into
// the binary, keyed by their lower-case names.
var sandboxes = struct {
	sync.RWMutex
	factories map[string]SandboxFactory
}{factories: map[string]SandboxFactory{}}

func sandboxKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterSandbox makes a sandbox implementation available under name.
// Names are matched case-insensitively.
func RegisterSandbox(name string, factory SandboxFactory) error {
	key := sandboxKey(name)
	if key == "" || factory == nil {
		return fmt.Errorf("%w: name %q, factory set %t", ErrInvalidSandboxId, name, factory != nil)
	}
	sandboxes.Lock()
	defer sandboxes.Unlock()
	if _, found := sandboxes.factories[key]; found {
		return fmt.Errorf("%w: %s", ErrSandboxConflict, key)
	}
	sandboxes.factories[key] = factory
	return nil
}

// MustRegisterSandbox is RegisterSandbox for package initialization. It
// panics if the registration fails.
func MustRegisterSandbox(name string, factory SandboxFactory) {
	if err := RegisterSandbox(name, factory); err != nil {
		panic(err)
	}
}

// NewSandbox creates an instance of the sandbox registered under name.
func NewSandbox(name string, config any) (Sandbox, error) {
	sandboxes.RLock()
	factory, found := sandboxes.factories[sandboxKey(name)]
	sandboxes.RUnlock()
	if !found {
		return nil, fmt.Errorf("%w: %q, available: %v", ErrUnknownSandbox, name, SandboxNames())
	}
	sandbox, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox %s: %w", sandboxKey(name), err)
	}
	return sandbox, nil
}

// SandboxNames lists the registered sandboxes in alphabetical order.
func SandboxNames() []string {
	sandboxes.RLock()
	defer sandboxes.RUnlock()
	names := maps.Keys(sandboxes.factories)
	slices.Sort(names)
	return names
}
