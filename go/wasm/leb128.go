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

import (
	"fmt"
	"unicode/utf8"

	"github.com/Fantom-foundation/Quartz/go/contracts"
)

const ErrMalformedModule = contracts.ConstError("malformed module")

var (
	errUnexpectedEnd = fmt.Errorf("%w: unexpected end of input", ErrMalformedModule)
	errInvalidLEB    = fmt.Errorf("%w: invalid LEB128 encoding", ErrMalformedModule)
	errInvalidName   = fmt.Errorf("%w: name is not valid UTF-8", ErrMalformedModule)
)

type reader struct {
	data []byte
	pos  int
}

func (r *reader) done() bool {
	return r.pos >= len(r.data)
}

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errUnexpectedEnd
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) bytes(n uint32) ([]byte, error) {
	if uint64(len(r.data)-r.pos) < uint64(n) {
		return nil, errUnexpectedEnd
	}
	res := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return res, nil
}

func (r *reader) u32() (uint32, error) {
	res, err := r.uleb(32)
	return uint32(res), err
}

func (r *reader) s32() (int32, error) {
	res, err := r.sleb(32)
	return int32(res), err
}

func (r *reader) s64() (int64, error) {
	return r.sleb(64)
}

func (r *reader) name() (string, error) {
	length, err := r.u32()
	if err != nil {
		return "", err
	}
	raw, err := r.bytes(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errInvalidName
	}
	return string(raw), nil
}

// uleb reads an unsigned LEB128 value of at most the given bit width. Unused
// bits of the final byte must be zero.
func (r *reader) uleb(bits uint) (uint64, error) {
	var res uint64
	for shift := uint(0); shift < bits; shift += 7 {
		b, err := r.byte()
		if err != nil {
			return 0, err
		}
		if shift+7 > bits && b>>(bits-shift) != 0 {
			return 0, errInvalidLEB
		}
		res |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return res, nil
		}
	}
	return 0, errInvalidLEB
}

// sleb reads a signed LEB128 value of at most the given bit width. Unused
// bits of the final byte must be a sign extension.
func (r *reader) sleb(bits uint) (int64, error) {
	var res int64
	for shift := uint(0); shift < bits; shift += 7 {
		b, err := r.byte()
		if err != nil {
			return 0, err
		}
		if shift+7 >= bits {
			if b&0x80 != 0 {
				return 0, errInvalidLEB
			}
			used := bits - shift
			mask := byte(0x7f) >> (used - 1) << (used - 1)
			if top := b & mask; top != 0 && top != mask {
				return 0, errInvalidLEB
			}
		}
		res |= int64(b&0x7f) << shift
		if b&0x80 == 0 {
			if shift+7 < 64 && b&0x40 != 0 {
				res |= -1 << (shift + 7)
			}
			return res, nil
		}
	}
	return 0, errInvalidLEB
}

func appendU32(buf []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if v == 0 {
			return buf
		}
	}
}

func appendS64(buf []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		if !done {
			b |= 0x80
		}
		buf = append(buf, b)
		if done {
			return buf
		}
	}
}

func appendName(buf []byte, name string) []byte {
	buf = appendU32(buf, uint32(len(name)))
	return append(buf, name...)
}
