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

import "testing"

func TestNegativeImbalance_Offset(t *testing.T) {
	tests := map[string]struct {
		negative, positive uint64
		wantNeg, wantPos   uint64
	}{
		"negative dominates": {10, 3, 7, 0},
		"positive dominates": {3, 10, 0, 7},
		"balanced":           {5, 5, 0, 0},
		"nothing to offset":  {5, 0, 5, 0},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			neg, pos := NewNegativeImbalance(NewBalance(test.negative)).Offset(NewPositiveImbalance(NewBalance(test.positive)))
			if want, got := NewBalance(test.wantNeg), neg.Peek(); want != got {
				t.Errorf("unexpected negative remainder, wanted %v, got %v", want, got)
			}
			if want, got := NewBalance(test.wantPos), pos.Peek(); want != got {
				t.Errorf("unexpected positive remainder, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestSignedImbalance_Merge(t *testing.T) {
	tests := map[string]struct {
		a, b         SignedImbalance
		wantAmount   uint64
		wantNegative bool
	}{
		"both positive":        {PositiveSigned(NewBalance(2)), PositiveSigned(NewBalance(3)), 5, false},
		"both negative":        {NegativeSigned(NewBalance(2)), NegativeSigned(NewBalance(3)), 5, true},
		"negative wins":        {NegativeSigned(NewBalance(5)), PositiveSigned(NewBalance(3)), 2, true},
		"positive wins":        {NegativeSigned(NewBalance(3)), PositiveSigned(NewBalance(5)), 2, false},
		"cancel out":           {NegativeSigned(NewBalance(3)), PositiveSigned(NewBalance(3)), 0, false},
		"positive then larger": {PositiveSigned(NewBalance(3)), NegativeSigned(NewBalance(5)), 2, true},
		"zero values":          {SignedImbalance{}, NegativeSigned(Balance{}), 0, false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := test.a.Merge(test.b)
			if want := NewBalance(test.wantAmount); got.Peek() != want {
				t.Errorf("unexpected amount, wanted %v, got %v", want, got.Peek())
			}
			if got.IsNegative() != test.wantNegative {
				t.Errorf("unexpected sign, wanted negative=%t", test.wantNegative)
			}
			if got.IsPositive() && got.IsNegative() {
				t.Errorf("imbalance cannot be both positive and negative")
			}
		})
	}
}
