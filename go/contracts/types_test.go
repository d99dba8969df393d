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

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestBalance_NewBalance(t *testing.T) {
	b := NewBalance(42)
	if got, ok := b.Uint64(); !ok || got != 42 {
		t.Errorf("unexpected value, wanted 42, got %d (fits: %t)", got, ok)
	}
	if b.ToUint256().Cmp(uint256.NewInt(42)) != 0 {
		t.Errorf("conversion to uint256 failed")
	}
}

func TestBalance_CheckedArithmetic(t *testing.T) {
	tests := map[string]struct {
		op     func(a, b Balance) (Balance, bool)
		a, b   Balance
		want   Balance
		wantOk bool
	}{
		"add":            {Balance.CheckedAdd, NewBalance(1), NewBalance(2), NewBalance(3), true},
		"add overflow":   {Balance.CheckedAdd, MaxBalance, NewBalance(1), Balance{}, false},
		"sub":            {Balance.CheckedSub, NewBalance(5), NewBalance(2), NewBalance(3), true},
		"sub underflow":  {Balance.CheckedSub, NewBalance(1), NewBalance(2), Balance{}, false},
		"mul":            {Balance.CheckedMul, NewBalance(6), NewBalance(7), NewBalance(42), true},
		"mul overflow":   {Balance.CheckedMul, MaxBalance, NewBalance(2), Balance{}, false},
		"div":            {Balance.CheckedDiv, NewBalance(42), NewBalance(5), NewBalance(8), true},
		"div by zero":    {Balance.CheckedDiv, NewBalance(42), Balance{}, Balance{}, false},
		"sub to zero":    {Balance.CheckedSub, NewBalance(5), NewBalance(5), Balance{}, true},
		"add zero":       {Balance.CheckedAdd, NewBalance(5), Balance{}, NewBalance(5), true},
		"mul with zero":  {Balance.CheckedMul, MaxBalance, Balance{}, Balance{}, true},
		"div max by max": {Balance.CheckedDiv, MaxBalance, MaxBalance, NewBalance(1), true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := test.op(test.a, test.b)
			if ok != test.wantOk {
				t.Fatalf("unexpected success flag, wanted %t, got %t", test.wantOk, ok)
			}
			if ok && got != test.want {
				t.Errorf("unexpected result, wanted %v, got %v", test.want, got)
			}
		})
	}
}

func TestBalance_SaturatingArithmetic(t *testing.T) {
	if got := MaxBalance.SaturatingAdd(NewBalance(1)); got != MaxBalance {
		t.Errorf("addition did not saturate, got %v", got)
	}
	if got := NewBalance(1).SaturatingSub(NewBalance(2)); !got.IsZero() {
		t.Errorf("subtraction did not saturate, got %v", got)
	}
	if got := MaxBalance.SaturatingMul(NewBalance(3)); got != MaxBalance {
		t.Errorf("multiplication did not saturate, got %v", got)
	}
	if got := NewBalance(3).Min(NewBalance(2)); got != NewBalance(2) {
		t.Errorf("unexpected minimum, got %v", got)
	}
}

func TestBalance_TextEncoding(t *testing.T) {
	tests := map[string]struct {
		text string
		want Balance
	}{
		"zero":    {"0", Balance{}},
		"decimal": {"1000", NewBalance(1000)},
		"hex":     {"0x3e8", NewBalance(1000)},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var b Balance
			if err := b.UnmarshalText([]byte(test.text)); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if b != test.want {
				t.Errorf("unexpected value, wanted %v, got %v", test.want, b)
			}
			text, err := b.MarshalText()
			if err != nil {
				t.Fatalf("failed to encode: %v", err)
			}
			var restored Balance
			if err := restored.UnmarshalText(text); err != nil || restored != b {
				t.Errorf("round trip failed, got %v, err %v", restored, err)
			}
		})
	}
}

func TestBalance_InvalidTextIsRejected(t *testing.T) {
	for _, text := range []string{"", "abc", "-1", "0xzz"} {
		var b Balance
		if err := b.UnmarshalText([]byte(text)); err == nil {
			t.Errorf("expected %q to be rejected", text)
		}
	}
}

func TestBalance_LittleEndianEncoding(t *testing.T) {
	b := NewBalance(0x0102)
	encoded := b.EncodeLE()
	if len(encoded) != 32 || encoded[0] != 0x02 || encoded[1] != 0x01 {
		t.Fatalf("unexpected encoding %x", encoded)
	}
	decoded, err := DecodeBalanceLE(encoded)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if decoded != b {
		t.Errorf("unexpected decoded value %v", decoded)
	}
	if _, err := DecodeBalanceLE(encoded[:16]); err == nil {
		t.Errorf("short encoding should be rejected")
	}
}

func TestAccountId_TextEncoding(t *testing.T) {
	id := AccountId{1, 2, 3}
	text, err := id.MarshalText()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	var restored AccountId
	if err := restored.UnmarshalText(text); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if restored != id {
		t.Errorf("unexpected restored value, wanted %v, got %v", id, restored)
	}
	if err := restored.UnmarshalText([]byte("0x0102")); err == nil {
		t.Errorf("short identifier should be rejected")
	}
}
