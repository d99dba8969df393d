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

import "testing"

func TestValue_Accessors(t *testing.T) {
	if v := I32(7); v.U32() != 7 || v.Type.String() != "i32" {
		t.Errorf("unexpected value %v", v)
	}
	if v := I64(1 << 40); v.U64() != 1<<40 || v.Type.String() != "i64" {
		t.Errorf("unexpected value %v", v)
	}
}
