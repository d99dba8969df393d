// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"github.com/Fantom-foundation/Quartz/go/contracts"
)

func (l *Ledger) GetPristineCode(hash contracts.Hash) ([]byte, bool) {
	return l.get(join(pristinePrefix, hash[:]))
}

func (l *Ledger) PutPristineCode(hash contracts.Hash, code []byte) {
	l.put(join(pristinePrefix, hash[:]), code)
}

func (l *Ledger) GetPrefabModule(hash contracts.Hash) (*contracts.PrefabModule, bool) {
	var module contracts.PrefabModule
	if !l.getRLP(join(prefabPrefix, hash[:]), &module) {
		return nil, false
	}
	return &module, true
}

func (l *Ledger) PutPrefabModule(hash contracts.Hash, module *contracts.PrefabModule) {
	l.putRLP(join(prefabPrefix, hash[:]), module)
}
