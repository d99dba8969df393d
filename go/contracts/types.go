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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// AccountId identifies an account on the ledger. Contracts and plain
// accounts share the same identifier space.
type AccountId [32]byte

// Hash is a 32-byte digest. Code hashes, event topics, and child storage
// roots are all of this type.
type Hash [32]byte

// StorageKey addresses a single value in a contract's storage.
type StorageKey [32]byte

// TrieId is an opaque identifier of a contract's storage subtree.
type TrieId []byte

// Gas is the unit of execution cost. All gas arithmetic saturates.
type Gas uint64

// BlockNumber is the height of a block.
type BlockNumber uint64

// Moment is a block timestamp.
type Moment uint64

// Balance is an amount of currency. It is a 256-bit unsigned integer stored
// in big-endian order. Arithmetic on balances is checked or saturating, it
// never wraps silently.
type Balance [32]byte

// MaxBalance is the largest representable balance.
var MaxBalance = func() (b Balance) {
	for i := range b {
		b[i] = 0xff
	}
	return b
}()

// NewBalance creates a balance from a uint64.
func NewBalance(v uint64) (b Balance) {
	binary.BigEndian.PutUint64(b[24:], v)
	return b
}

// BalanceFromUint256 converts a *uint256.Int to a Balance. A nil input
// results in a zero balance.
func BalanceFromUint256(v *uint256.Int) Balance {
	if v == nil {
		return Balance{}
	}
	return v.Bytes32()
}

func (b Balance) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes32(b[:])
}

func (b Balance) IsZero() bool {
	return b == Balance{}
}

// Uint64 returns the balance as uint64 and whether it fits.
func (b Balance) Uint64() (uint64, bool) {
	v := b.ToUint256()
	return v.Uint64(), v.IsUint64()
}

func (b Balance) Cmp(o Balance) int {
	return b.ToUint256().Cmp(o.ToUint256())
}

func (b Balance) Lt(o Balance) bool {
	return b.Cmp(o) < 0
}

// CheckedAdd returns b+o and false if the addition overflows.
func (b Balance) CheckedAdd(o Balance) (Balance, bool) {
	res, overflow := new(uint256.Int).AddOverflow(b.ToUint256(), o.ToUint256())
	if overflow {
		return Balance{}, false
	}
	return BalanceFromUint256(res), true
}

// CheckedSub returns b-o and false if the subtraction underflows.
func (b Balance) CheckedSub(o Balance) (Balance, bool) {
	res, underflow := new(uint256.Int).SubOverflow(b.ToUint256(), o.ToUint256())
	if underflow {
		return Balance{}, false
	}
	return BalanceFromUint256(res), true
}

// CheckedMul returns b*o and false if the multiplication overflows.
func (b Balance) CheckedMul(o Balance) (Balance, bool) {
	res, overflow := new(uint256.Int).MulOverflow(b.ToUint256(), o.ToUint256())
	if overflow {
		return Balance{}, false
	}
	return BalanceFromUint256(res), true
}

// CheckedDiv returns b/o and false if o is zero.
func (b Balance) CheckedDiv(o Balance) (Balance, bool) {
	if o.IsZero() {
		return Balance{}, false
	}
	return BalanceFromUint256(new(uint256.Int).Div(b.ToUint256(), o.ToUint256())), true
}

func (b Balance) SaturatingAdd(o Balance) Balance {
	if res, ok := b.CheckedAdd(o); ok {
		return res
	}
	return MaxBalance
}

func (b Balance) SaturatingSub(o Balance) Balance {
	if res, ok := b.CheckedSub(o); ok {
		return res
	}
	return Balance{}
}

func (b Balance) SaturatingMul(o Balance) Balance {
	if res, ok := b.CheckedMul(o); ok {
		return res
	}
	return MaxBalance
}

// Min returns the smaller of the two balances.
func (b Balance) Min(o Balance) Balance {
	if o.Lt(b) {
		return o
	}
	return b
}

func (b Balance) String() string {
	return b.ToUint256().Dec()
}

// MarshalText encodes the balance as a decimal number.
func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts decimal numbers and 0x-prefixed hex numbers.
func (b *Balance) UnmarshalText(data []byte) error {
	s := string(data)
	var v *uint256.Int
	var err error
	if strings.HasPrefix(s, "0x") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", s, err)
	}
	*b = BalanceFromUint256(v)
	return nil
}

// EncodeLE encodes the balance in the little-endian layout used across the
// sandbox boundary.
func (b Balance) EncodeLE() []byte {
	res := make([]byte, len(b))
	for i := range b {
		res[i] = b[len(b)-1-i]
	}
	return res
}

// DecodeBalanceLE decodes a balance written by a contract. The input must
// be exactly 32 bytes.
func DecodeBalanceLE(data []byte) (Balance, error) {
	var b Balance
	if len(data) != len(b) {
		return b, fmt.Errorf("invalid balance encoding, wanted %d bytes, got %d", len(b), len(data))
	}
	for i := range b {
		b[i] = data[len(b)-1-i]
	}
	return b, nil
}

func (a AccountId) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a AccountId) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *AccountId) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

func (k StorageKey) String() string {
	return fmt.Sprintf("0x%x", k[:])
}

func (t TrieId) String() string {
	return fmt.Sprintf("0x%x", []byte(t))
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg, data)
	return nil
}
